package app

import (
	"context"
	"fmt"

	"github.com/vk/arbenchgo/internal/bitvec"
	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/ctxlog"
	"github.com/vk/arbenchgo/internal/sim"
)

// buildInstances turns the loaded model into live engine instances: every
// arbiter and probe block is constructed through its registered factory, and
// the textual vectors of stimulus and expect scripts are parsed against the
// target's width. All construction is eager; a bad block fails the whole
// build before a single tick runs.
func (a *App) buildInstances(ctx context.Context) ([]*sim.Instance, error) {
	logger := ctxlog.FromContext(ctx)

	stimFor := make(map[string]*config.Stimulus)
	for _, s := range a.model.Stimuli {
		stimFor[s.Target] = s
	}
	expectFor := make(map[string]*config.Expect)
	for _, e := range a.model.Expects {
		expectFor[e.Target] = e
	}

	var instances []*sim.Instance

	for _, cfg := range a.model.Arbiters {
		factory, ok := a.registry.ArbiterFactory(cfg.Kind)
		if !ok {
			return nil, fmt.Errorf("app: arbiter %q uses unknown kind %q", cfg.Name, cfg.Kind)
		}
		comp, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}

		inst := &sim.Instance{Component: comp}
		if s := stimFor[cfg.Name]; s != nil {
			inst.Stimulus, err = parseStimulus(s, comp.Width())
			if err != nil {
				return nil, fmt.Errorf("app: %w", err)
			}
		}
		if e := expectFor[cfg.Name]; e != nil {
			inst.Checks, err = parseExpect(e, comp.Width())
			if err != nil {
				return nil, fmt.Errorf("app: %w", err)
			}
		}
		instances = append(instances, inst)
	}

	for _, cfg := range a.model.Probes {
		factory, ok := a.registry.ProbeFactory(cfg.Kind)
		if !ok {
			return nil, fmt.Errorf("app: probe %q uses unknown kind %q", cfg.Name, cfg.Kind)
		}
		comp, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}

		// Probes are fed by their source, never by a script.
		if stimFor[cfg.Name] != nil {
			return nil, fmt.Errorf("app: probe %q cannot have a stimulus block; it is driven by %q",
				cfg.Name, cfg.Source)
		}

		inst := &sim.Instance{Component: comp, Source: cfg.Source}
		if e := expectFor[cfg.Name]; e != nil {
			inst.Checks, err = parseExpect(e, comp.Width())
			if err != nil {
				return nil, fmt.Errorf("app: %w", err)
			}
		}
		instances = append(instances, inst)
	}

	logger.Debug("Bench instances built.", "count", len(instances))
	return instances, nil
}

func parseStimulus(s *config.Stimulus, width int) ([]*sim.Tick, error) {
	out := make([]*sim.Tick, 0, len(s.Ticks))
	for n, st := range s.Ticks {
		tick := &sim.Tick{Enable: st.Enable, Pri: st.Pri}
		if st.Req != "" {
			req, err := bitvec.Parse(width, st.Req)
			if err != nil {
				return nil, fmt.Errorf("stimulus %q tick %d: %w", s.Target, n, err)
			}
			tick.Req = &req
		}
		if st.Pri != nil && len(st.Pri) != width {
			return nil, fmt.Errorf("stimulus %q tick %d: pri has %d levels, want %d",
				s.Target, n, len(st.Pri), width)
		}
		out = append(out, tick)
	}
	return out, nil
}

func parseExpect(e *config.Expect, width int) ([]*sim.Check, error) {
	out := make([]*sim.Check, 0, len(e.Ticks))
	for n, et := range e.Ticks {
		check := &sim.Check{Index: et.Index, Invalid: et.Invalid}
		if et.Grant != nil {
			grant, err := bitvec.Parse(width, *et.Grant)
			if err != nil {
				return nil, fmt.Errorf("expect %q tick %d: %w", e.Target, n, err)
			}
			check.Grant = &grant
		}
		out = append(out, check)
	}
	return out, nil
}
