// Package roundrobin exposes the rotating arbiters as bench component kinds:
// "round_robin" (grant vector output) and "round_robin_encoder" (encoded
// index output).
package roundrobin

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/arbiter"
	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/registry"
	"github.com/vk/arbenchgo/internal/sim"
)

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the round-robin component kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterArbiter("round_robin", newSelector)
	r.RegisterArbiter("round_robin_encoder", newEncoder)
}

// policyFor applies the bench-file default: omitting the policy attribute
// selects "ce", matching the arbiter's conventional default.
func policyFor(cfg *config.Arbiter) (arbiter.Policy, error) {
	if cfg.Policy == "" {
		return arbiter.PolicyCE, nil
	}
	return arbiter.ParsePolicy(cfg.Policy)
}

type selectorComponent struct {
	name string
	sel  *arbiter.RoundRobinSelector
}

func newSelector(cfg *config.Arbiter) (sim.Component, error) {
	policy, err := policyFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("arbiter %q: %w", cfg.Name, err)
	}
	sel, err := arbiter.NewRoundRobinSelector(cfg.Width, policy)
	if err != nil {
		return nil, fmt.Errorf("arbiter %q: %w", cfg.Name, err)
	}
	return &selectorComponent{name: cfg.Name, sel: sel}, nil
}

func (c *selectorComponent) Name() string { return c.name }

func (c *selectorComponent) Width() int { return c.sel.Width() }

func (c *selectorComponent) Eval(in sim.Inputs) sim.Outputs {
	return sim.Outputs{Grant: c.sel.Eval(in.Req, in.Enable), HasGrant: true}
}

func (c *selectorComponent) Commit() { c.sel.Commit() }

type encoderComponent struct {
	name string
	enc  *arbiter.RoundRobinEncoder
}

func newEncoder(cfg *config.Arbiter) (sim.Component, error) {
	policy, err := policyFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("arbiter %q: %w", cfg.Name, err)
	}
	enc, err := arbiter.NewRoundRobinEncoder(cfg.Width, policy)
	if err != nil {
		return nil, fmt.Errorf("arbiter %q: %w", cfg.Name, err)
	}
	return &encoderComponent{name: cfg.Name, enc: enc}, nil
}

func (c *encoderComponent) Name() string { return c.name }

func (c *encoderComponent) Width() int { return c.enc.Width() }

func (c *encoderComponent) Eval(in sim.Inputs) sim.Outputs {
	index, none := c.enc.Eval(in.Req, in.Enable)
	return sim.Outputs{Index: index, Invalid: none, HasIndex: true}
}

func (c *encoderComponent) Commit() { c.enc.Commit() }
