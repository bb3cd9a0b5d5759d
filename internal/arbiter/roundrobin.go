package arbiter

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/bitvec"
	"github.com/vk/arbenchgo/internal/coding"
)

// RoundRobinSelector grants each of a set of requests in turn, in a rotating
// fashion. In each round only requests strictly higher-numbered than the most
// recently granted one are considered, with priority to the lowest-numbered
// of these; if there are none, arbitration wraps around to the
// lowest-numbered request overall. The rotation is starvation free.
type RoundRobinSelector struct {
	width  int
	policy Policy
	psel   *coding.PrioritySelector // width*2, for the wraparound trick

	lastGrant bitvec.Vector
	next      bitvec.Vector
}

// NewRoundRobinSelector returns a selector for the given request width and
// advance policy. The last-grant register starts at zero, so the first round
// behaves as a plain priority select over all requests.
func NewRoundRobinSelector(width int, policy Policy) (*RoundRobinSelector, error) {
	if width < 1 {
		return nil, fmt.Errorf("arbiter: round robin width must be positive, got %d", width)
	}
	if !policy.valid() {
		return nil, fmt.Errorf("arbiter: unrecognized policy %d", int(policy))
	}
	psel, err := coding.NewPrioritySelector(width * 2)
	if err != nil {
		return nil, fmt.Errorf("arbiter: round robin: %w", err)
	}
	return &RoundRobinSelector{
		width:     width,
		policy:    policy,
		psel:      psel,
		lastGrant: bitvec.New(width),
		next:      bitvec.New(width),
	}, nil
}

// Width returns the number of requesters.
func (s *RoundRobinSelector) Width() int { return s.width }

// Policy returns the advance policy fixed at construction.
func (s *RoundRobinSelector) Policy() Policy { return s.policy }

// Eval computes this tick's grant from req and the current register. There
// is no register on the req-to-grant path: a request can be presented and
// granted in the same tick. Under PolicyWithdraw the enable input is ignored.
//
// On a hold tick the retained grant is passed through combinationally, with
// no extra tick of latency.
func (s *RoundRobinSelector) Eval(req bitvec.Vector, enable bool) bitvec.Vector {
	s.checkWidth(req)

	advance := enable
	if s.policy == PolicyWithdraw {
		advance = s.lastGrant.And(req).IsZero()
	}
	if !advance {
		s.next = s.lastGrant
		return s.lastGrant
	}

	grant := rotateSelect(s.psel, req, s.lastGrant)
	s.next = grant
	return grant
}

// Commit latches the register update produced by the most recent Eval. It is
// the tick boundary: the new last grant is visible to the next Eval only.
func (s *RoundRobinSelector) Commit() {
	s.lastGrant = s.next
}

// Step runs one full tick: Eval then Commit.
func (s *RoundRobinSelector) Step(req bitvec.Vector, enable bool) bitvec.Vector {
	out := s.Eval(req, enable)
	s.Commit()
	return out
}

func (s *RoundRobinSelector) checkWidth(v bitvec.Vector) {
	if v.Width() != s.width {
		panic(fmt.Sprintf("arbiter: got width %d request, arbiter is width %d", v.Width(), s.width))
	}
}

// rotateSelect picks the lowest-indexed request strictly above the last
// granted index, wrapping to the lowest-indexed request overall when there is
// none. Requests above the last grant are placed in the low half of a
// double-width vector with the full request vector in the high half; a single
// priority select then honors "above last" first and "any" second, and the
// halves are ORed back to the original width.
func rotateSelect(psel *coding.PrioritySelector, req, lastGrant bitvec.Vector) bitvec.Vector {
	width := req.Width()
	above := req.And(lastGrant.SmearLX())
	sel := psel.Select(above.Concat(req))
	return sel.Slice(0, width).Or(sel.Slice(width, width*2))
}
