// Package coding exposes the codecs as probe kinds that observe another
// instance's output: "priority_selector", "encoder", "priority_encoder",
// "decoder", "gray_encoder" and "gray_decoder". Vector-consuming probes read
// their source's grant vector; "decoder" reads its source's index and
// invalid flag instead.
package coding

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/coding"
	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/registry"
	"github.com/vk/arbenchgo/internal/sim"
)

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the codec probe kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProbe("priority_selector", newPrioritySelector)
	r.RegisterProbe("encoder", newEncoder)
	r.RegisterProbe("priority_encoder", newPriorityEncoder)
	r.RegisterProbe("decoder", newDecoder)
	r.RegisterProbe("gray_encoder", newGrayEncoder)
	r.RegisterProbe("gray_decoder", newGrayDecoder)
}

// vectorProbe adapts a vector-in, vector-out codec.
type vectorProbe struct {
	name  string
	width int
	fn    func(sim.Inputs) sim.Outputs
}

func (p *vectorProbe) Name() string { return p.name }

func (p *vectorProbe) Width() int { return p.width }

func (p *vectorProbe) Eval(in sim.Inputs) sim.Outputs { return p.fn(in) }

func (p *vectorProbe) Commit() {}

func newPrioritySelector(cfg *config.Probe) (sim.Component, error) {
	sel, err := coding.NewPrioritySelector(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", cfg.Name, err)
	}
	return &vectorProbe{name: cfg.Name, width: cfg.Width, fn: func(in sim.Inputs) sim.Outputs {
		return sim.Outputs{Grant: sel.Select(in.Req), HasGrant: true}
	}}, nil
}

func newEncoder(cfg *config.Probe) (sim.Component, error) {
	enc, err := coding.NewEncoder(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", cfg.Name, err)
	}
	return &vectorProbe{name: cfg.Name, width: cfg.Width, fn: func(in sim.Inputs) sim.Outputs {
		index, invalid := enc.Encode(in.Req)
		return sim.Outputs{Index: index, Invalid: invalid, HasIndex: true}
	}}, nil
}

func newPriorityEncoder(cfg *config.Probe) (sim.Component, error) {
	enc, err := coding.NewPriorityEncoder(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", cfg.Name, err)
	}
	return &vectorProbe{name: cfg.Name, width: cfg.Width, fn: func(in sim.Inputs) sim.Outputs {
		index, invalid := enc.Encode(in.Req)
		return sim.Outputs{Index: index, Invalid: invalid, HasIndex: true}
	}}, nil
}

func newDecoder(cfg *config.Probe) (sim.Component, error) {
	dec, err := coding.NewDecoder(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", cfg.Name, err)
	}
	return &vectorProbe{name: cfg.Name, width: cfg.Width, fn: func(in sim.Inputs) sim.Outputs {
		return sim.Outputs{Grant: dec.Decode(in.Index, in.Invalid), HasGrant: true}
	}}, nil
}

func newGrayEncoder(cfg *config.Probe) (sim.Component, error) {
	enc, err := coding.NewGrayEncoder(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", cfg.Name, err)
	}
	return &vectorProbe{name: cfg.Name, width: cfg.Width, fn: func(in sim.Inputs) sim.Outputs {
		return sim.Outputs{Grant: enc.Encode(in.Req), HasGrant: true}
	}}, nil
}

func newGrayDecoder(cfg *config.Probe) (sim.Component, error) {
	dec, err := coding.NewGrayDecoder(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", cfg.Name, err)
	}
	return &vectorProbe{name: cfg.Name, width: cfg.Width, fn: func(in sim.Inputs) sim.Outputs {
		return sim.Outputs{Grant: dec.Decode(in.Req), HasGrant: true}
	}}, nil
}
