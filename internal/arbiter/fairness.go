package arbiter

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/bitvec"
	"github.com/vk/arbenchgo/internal/coding"
)

// FairAmongEqualsArbiter combines dynamic priority tiering with round-robin
// fairness inside the winning tier: the most important active tier is
// isolated exactly as in ProgrammablePriorityArbiter, then the rotating
// selection of RoundRobinSelector is applied to the tier-masked requests.
// A new round is arbitrated on every tick; there is no hold policy.
//
// The last-grant register is shared across tiers. When tier membership
// changes between ticks, eligibility is computed fresh relative to whatever
// index was granted last, even if that requester is no longer in the active
// tier.
type FairAmongEqualsArbiter struct {
	width   int
	tiering *ProgrammablePriorityArbiter
	psel    *coding.PrioritySelector // width*2, for the wraparound trick

	lastGrant bitvec.Vector
	next      bitvec.Vector
}

// NewFairAmongEqualsArbiter returns an arbiter for the given request width
// and number of priority tiers. The conventional default for maxPriority is
// the width.
func NewFairAmongEqualsArbiter(width, maxPriority int) (*FairAmongEqualsArbiter, error) {
	tiering, err := NewProgrammablePriorityArbiter(width, maxPriority)
	if err != nil {
		return nil, fmt.Errorf("arbiter: fair among equals: %w", err)
	}
	psel, err := coding.NewPrioritySelector(width * 2)
	if err != nil {
		return nil, fmt.Errorf("arbiter: fair among equals: %w", err)
	}
	return &FairAmongEqualsArbiter{
		width:     width,
		tiering:   tiering,
		psel:      psel,
		lastGrant: bitvec.New(width),
		next:      bitvec.New(width),
	}, nil
}

// Width returns the number of requesters.
func (a *FairAmongEqualsArbiter) Width() int { return a.width }

// MaxPriority returns the number of priority tiers.
func (a *FairAmongEqualsArbiter) MaxPriority() int { return a.tiering.maxPriority }

// Eval computes this tick's grant from the request vector, the live priority
// levels and the current register. The candidate register update is always
// the fresh grant.
func (a *FairAmongEqualsArbiter) Eval(req bitvec.Vector, pri []int) bitvec.Vector {
	tier, ok := a.tiering.winningTier(req, pri)
	if !ok {
		a.next = bitvec.New(a.width)
		return a.next
	}
	grant := rotateSelect(a.psel, tier, a.lastGrant)
	a.next = grant
	return grant
}

// Commit latches the register update produced by the most recent Eval.
func (a *FairAmongEqualsArbiter) Commit() {
	a.lastGrant = a.next
}

// Step runs one full tick: Eval then Commit.
func (a *FairAmongEqualsArbiter) Step(req bitvec.Vector, pri []int) bitvec.Vector {
	out := a.Eval(req, pri)
	a.Commit()
	return out
}
