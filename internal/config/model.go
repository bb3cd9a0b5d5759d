package config

import (
	"context"
	"fmt"
)

// Loader translates bench files at a path into the agnostic model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// Model is the complete description of a bench.
type Model struct {
	Arbiters []*Arbiter
	Probes   []*Probe
	Stimuli  []*Stimulus
	Expects  []*Expect
}

// Arbiter describes one arbiter instance to construct.
type Arbiter struct {
	Kind string // registered arbiter kind, e.g. "round_robin"
	Name string
	Width int

	// Policy applies to round-robin kinds; empty selects the kind's default.
	Policy string

	// MaxPriority applies to priority kinds; 0 selects the conventional
	// default of Width.
	MaxPriority int
}

// Probe describes a codec instance observing another instance's output.
type Probe struct {
	Kind   string // registered probe kind, e.g. "encoder"
	Name   string
	Source string // name of the observed instance
	Width  int
}

// Stimulus is the ordered per-tick input script for one instance.
type Stimulus struct {
	Target string
	Ticks  []*StimulusTick
}

// StimulusTick holds the input values driven on one tick. Vector values stay
// textual in the model; they are parsed against the target's width when
// instances are built.
type StimulusTick struct {
	Req    string
	Enable *bool
	Pri    []int
}

// Expect is the ordered per-tick expectation script for one instance.
type Expect struct {
	Target string
	Ticks  []*ExpectTick
}

// ExpectTick holds the output values asserted on one tick. Nil fields are
// not checked.
type ExpectTick struct {
	Grant   *string
	Index   *int
	Invalid *bool
}

// Validate performs the structural checks that do not need the registry:
// name uniqueness and referential integrity between blocks.
func (m *Model) Validate() error {
	names := make(map[string]bool)
	for _, a := range m.Arbiters {
		if names[a.Name] {
			return fmt.Errorf("config: duplicate instance name %q", a.Name)
		}
		names[a.Name] = true
	}
	for _, p := range m.Probes {
		if names[p.Name] {
			return fmt.Errorf("config: duplicate instance name %q", p.Name)
		}
		names[p.Name] = true
	}

	for _, p := range m.Probes {
		if !names[p.Source] {
			return fmt.Errorf("config: probe %q observes unknown instance %q", p.Name, p.Source)
		}
	}

	stimTargets := make(map[string]bool)
	for _, s := range m.Stimuli {
		if !names[s.Target] {
			return fmt.Errorf("config: stimulus targets unknown instance %q", s.Target)
		}
		if stimTargets[s.Target] {
			return fmt.Errorf("config: multiple stimulus blocks for instance %q", s.Target)
		}
		stimTargets[s.Target] = true
	}

	expectTargets := make(map[string]bool)
	for _, e := range m.Expects {
		if !names[e.Target] {
			return fmt.Errorf("config: expect targets unknown instance %q", e.Target)
		}
		if expectTargets[e.Target] {
			return fmt.Errorf("config: multiple expect blocks for instance %q", e.Target)
		}
		expectTargets[e.Target] = true
	}

	return nil
}
