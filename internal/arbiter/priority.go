package arbiter

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/bitvec"
	"github.com/vk/arbenchgo/internal/coding"
)

// PriorityArbiter grants the lowest-numbered asserted request. It holds no
// state; repeated ties always resolve to the same requester.
type PriorityArbiter struct {
	width int
	psel  *coding.PrioritySelector
}

// NewPriorityArbiter returns an arbiter for the given request width.
func NewPriorityArbiter(width int) (*PriorityArbiter, error) {
	if width < 1 {
		return nil, fmt.Errorf("arbiter: priority arbiter width must be positive, got %d", width)
	}
	psel, err := coding.NewPrioritySelector(width)
	if err != nil {
		return nil, fmt.Errorf("arbiter: priority arbiter: %w", err)
	}
	return &PriorityArbiter{width: width, psel: psel}, nil
}

// Width returns the number of requesters.
func (a *PriorityArbiter) Width() int { return a.width }

// Step returns the grant for one tick.
func (a *PriorityArbiter) Step(req bitvec.Vector) bitvec.Vector {
	return a.psel.Select(req)
}

// ProgrammablePriorityArbiter grants the lowest-numbered request within the
// most important active priority tier. Each requester carries an integer
// priority level in [0, maxPriority), owned by the caller and sampled fresh
// on every tick; smaller levels are more important. The arbiter holds no
// state, so ties within a tier always resolve to the lowest index.
type ProgrammablePriorityArbiter struct {
	width       int
	maxPriority int
	tierSel     *coding.PrioritySelector // over tier-nonempty flags
	reqSel      *coding.PrioritySelector // within the winning tier
}

// NewProgrammablePriorityArbiter returns an arbiter for the given request
// width and number of priority tiers. The conventional default for
// maxPriority is the width.
func NewProgrammablePriorityArbiter(width, maxPriority int) (*ProgrammablePriorityArbiter, error) {
	if width < 1 {
		return nil, fmt.Errorf("arbiter: programmable priority width must be positive, got %d", width)
	}
	if maxPriority < 1 {
		return nil, fmt.Errorf("arbiter: max priority must be positive, got %d", maxPriority)
	}
	tierSel, err := coding.NewPrioritySelector(maxPriority)
	if err != nil {
		return nil, fmt.Errorf("arbiter: programmable priority: %w", err)
	}
	reqSel, err := coding.NewPrioritySelector(width)
	if err != nil {
		return nil, fmt.Errorf("arbiter: programmable priority: %w", err)
	}
	return &ProgrammablePriorityArbiter{
		width:       width,
		maxPriority: maxPriority,
		tierSel:     tierSel,
		reqSel:      reqSel,
	}, nil
}

// Width returns the number of requesters.
func (a *ProgrammablePriorityArbiter) Width() int { return a.width }

// MaxPriority returns the number of priority tiers.
func (a *ProgrammablePriorityArbiter) MaxPriority() int { return a.maxPriority }

// Step returns the grant for one tick given the request vector and the live
// priority levels. pri must have one entry per requester; a level outside
// [0, maxPriority) never matches any tier, masking that requester for the
// tick.
func (a *ProgrammablePriorityArbiter) Step(req bitvec.Vector, pri []int) bitvec.Vector {
	tier, ok := a.winningTier(req, pri)
	if !ok {
		return bitvec.New(a.width)
	}
	return a.reqSel.Select(tier)
}

// winningTier isolates the requests of the most important active tier. The
// second return is false when no request matches any tier.
func (a *ProgrammablePriorityArbiter) winningTier(req bitvec.Vector, pri []int) (bitvec.Vector, bool) {
	if req.Width() != a.width {
		panic(fmt.Sprintf("arbiter: got width %d request, arbiter is width %d", req.Width(), a.width))
	}
	if len(pri) != a.width {
		panic(fmt.Sprintf("arbiter: got %d priority levels, arbiter is width %d", len(pri), a.width))
	}

	tiers := make([]bitvec.Vector, a.maxPriority)
	for p := range tiers {
		tiers[p] = bitvec.FromFunc(a.width, func(i int) bool {
			return req.Bit(i) && pri[i] == p
		})
	}

	active := bitvec.FromFunc(a.maxPriority, func(p int) bool {
		return !tiers[p].IsZero()
	})
	winner, ok := a.tierSel.Select(active).LowestSet()
	if !ok {
		return bitvec.Vector{}, false
	}
	return tiers[winner], true
}
