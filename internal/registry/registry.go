// Package registry is the glue between bench files and compiled component
// implementations. It maps the kind names used in `arbiter` and `probe`
// blocks to the Go factories that build instances of them, and validates up
// front that every kind a bench uses is actually compiled in.
package registry

import (
	"context"
	"fmt"

	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/ctxlog"
	"github.com/vk/arbenchgo/internal/sim"
)

// ArbiterFactory builds an arbiter component from its bench configuration.
type ArbiterFactory func(cfg *config.Arbiter) (sim.Component, error)

// ProbeFactory builds a probe component from its bench configuration.
type ProbeFactory func(cfg *config.Probe) (sim.Component, error)

// Module is implemented by every compiled-in component package.
type Module interface {
	Register(r *Registry)
}

// Registry holds the factories for a single application instance.
type Registry struct {
	arbiters map[string]ArbiterFactory
	probes   map[string]ProbeFactory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		arbiters: make(map[string]ArbiterFactory),
		probes:   make(map[string]ProbeFactory),
	}
}

// RegisterArbiter adds a factory for an arbiter kind. Registering the same
// kind twice is a programmer error and panics.
func (r *Registry) RegisterArbiter(kind string, f ArbiterFactory) {
	if _, ok := r.arbiters[kind]; ok {
		panic(fmt.Sprintf("registry: arbiter kind %q registered twice", kind))
	}
	r.arbiters[kind] = f
}

// RegisterProbe adds a factory for a probe kind. Registering the same kind
// twice is a programmer error and panics.
func (r *Registry) RegisterProbe(kind string, f ProbeFactory) {
	if _, ok := r.probes[kind]; ok {
		panic(fmt.Sprintf("registry: probe kind %q registered twice", kind))
	}
	r.probes[kind] = f
}

// ArbiterFactory looks up the factory for an arbiter kind.
func (r *Registry) ArbiterFactory(kind string) (ArbiterFactory, bool) {
	f, ok := r.arbiters[kind]
	return f, ok
}

// ProbeFactory looks up the factory for a probe kind.
func (r *Registry) ProbeFactory(kind string) (ProbeFactory, bool) {
	f, ok := r.probes[kind]
	return f, ok
}

// ArbiterKinds returns the number of registered arbiter kinds.
func (r *Registry) ArbiterKinds() int { return len(r.arbiters) }

// ProbeKinds returns the number of registered probe kinds.
func (r *Registry) ProbeKinds() int { return len(r.probes) }

// Validate checks that every kind the model references is registered.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)

	for _, a := range model.Arbiters {
		if _, ok := r.arbiters[a.Kind]; !ok {
			return fmt.Errorf("registry: arbiter %q uses unknown kind %q", a.Name, a.Kind)
		}
	}
	for _, p := range model.Probes {
		if _, ok := r.probes[p.Kind]; !ok {
			return fmt.Errorf("registry: probe %q uses unknown kind %q", p.Name, p.Kind)
		}
	}

	logger.Debug("Registry validation passed.",
		"arbiter_kinds", len(r.arbiters), "probe_kinds", len(r.probes))
	return nil
}
