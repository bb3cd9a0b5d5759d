// Package fairness exposes the tiered round-robin arbiter as the
// "fair_among_equals" bench component kind.
package fairness

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/arbiter"
	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/registry"
	"github.com/vk/arbenchgo/internal/sim"
	"github.com/vk/arbenchgo/modules/priority"
)

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the fair-among-equals component kind.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterArbiter("fair_among_equals", newComponent)
}

type component struct {
	name string
	arb  *arbiter.FairAmongEqualsArbiter
}

func newComponent(cfg *config.Arbiter) (sim.Component, error) {
	arb, err := arbiter.NewFairAmongEqualsArbiter(cfg.Width, priority.MaxPriorityFor(cfg))
	if err != nil {
		return nil, fmt.Errorf("arbiter %q: %w", cfg.Name, err)
	}
	return &component{name: cfg.Name, arb: arb}, nil
}

func (c *component) Name() string { return c.name }

func (c *component) Width() int { return c.arb.Width() }

func (c *component) Eval(in sim.Inputs) sim.Outputs {
	return sim.Outputs{Grant: c.arb.Eval(in.Req, in.Pri), HasGrant: true}
}

func (c *component) Commit() { c.arb.Commit() }
