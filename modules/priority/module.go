// Package priority exposes the priority arbiters as bench component kinds:
// "priority" (fixed lowest-index-wins) and "programmable_priority"
// (per-requester live priority levels).
package priority

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/arbiter"
	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/registry"
	"github.com/vk/arbenchgo/internal/sim"
)

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the priority component kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterArbiter("priority", newFixed)
	r.RegisterArbiter("programmable_priority", newProgrammable)
}

// MaxPriorityFor applies the bench-file default: omitting max_priority
// selects the conventional default of the request width.
func MaxPriorityFor(cfg *config.Arbiter) int {
	if cfg.MaxPriority == 0 {
		return cfg.Width
	}
	return cfg.MaxPriority
}

type fixedComponent struct {
	name string
	arb  *arbiter.PriorityArbiter
}

func newFixed(cfg *config.Arbiter) (sim.Component, error) {
	arb, err := arbiter.NewPriorityArbiter(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("arbiter %q: %w", cfg.Name, err)
	}
	return &fixedComponent{name: cfg.Name, arb: arb}, nil
}

func (c *fixedComponent) Name() string { return c.name }

func (c *fixedComponent) Width() int { return c.arb.Width() }

func (c *fixedComponent) Eval(in sim.Inputs) sim.Outputs {
	return sim.Outputs{Grant: c.arb.Step(in.Req), HasGrant: true}
}

func (c *fixedComponent) Commit() {}

type programmableComponent struct {
	name string
	arb  *arbiter.ProgrammablePriorityArbiter
}

func newProgrammable(cfg *config.Arbiter) (sim.Component, error) {
	arb, err := arbiter.NewProgrammablePriorityArbiter(cfg.Width, MaxPriorityFor(cfg))
	if err != nil {
		return nil, fmt.Errorf("arbiter %q: %w", cfg.Name, err)
	}
	return &programmableComponent{name: cfg.Name, arb: arb}, nil
}

func (c *programmableComponent) Name() string { return c.name }

func (c *programmableComponent) Width() int { return c.arb.Width() }

func (c *programmableComponent) Eval(in sim.Inputs) sim.Outputs {
	return sim.Outputs{Grant: c.arb.Step(in.Req, in.Pri), HasGrant: true}
}

func (c *programmableComponent) Commit() {}
