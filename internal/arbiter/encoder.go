package arbiter

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/bitvec"
	"github.com/vk/arbenchgo/internal/coding"
)

// RoundRobinEncoder is a RoundRobinSelector whose output is encoded to a
// binary index. The none flag is raised on ticks where no request is granted.
type RoundRobinEncoder struct {
	robin *RoundRobinSelector
	enc   *coding.Encoder
}

// NewRoundRobinEncoder returns an encoder-wrapped round-robin selector for
// the given request width and advance policy.
func NewRoundRobinEncoder(width int, policy Policy) (*RoundRobinEncoder, error) {
	robin, err := NewRoundRobinSelector(width, policy)
	if err != nil {
		return nil, fmt.Errorf("arbiter: round robin encoder: %w", err)
	}
	enc, err := coding.NewEncoder(width)
	if err != nil {
		return nil, fmt.Errorf("arbiter: round robin encoder: %w", err)
	}
	return &RoundRobinEncoder{robin: robin, enc: enc}, nil
}

// Width returns the number of requesters.
func (e *RoundRobinEncoder) Width() int { return e.robin.width }

// Policy returns the advance policy fixed at construction.
func (e *RoundRobinEncoder) Policy() Policy { return e.robin.policy }

// Eval computes this tick's granted index. As with the underlying selector,
// requests can be presented and granted in the same tick.
func (e *RoundRobinEncoder) Eval(req bitvec.Vector, enable bool) (index int, none bool) {
	return e.enc.Encode(e.robin.Eval(req, enable))
}

// Commit latches the register update produced by the most recent Eval.
func (e *RoundRobinEncoder) Commit() {
	e.robin.Commit()
}

// Step runs one full tick: Eval then Commit.
func (e *RoundRobinEncoder) Step(req bitvec.Vector, enable bool) (index int, none bool) {
	index, none = e.Eval(req, enable)
	e.Commit()
	return index, none
}
