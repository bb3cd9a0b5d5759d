package sim

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/arbenchgo/internal/bitvec"
	"github.com/vk/arbenchgo/internal/ctxlog"
	"github.com/vk/arbenchgo/internal/dag"
	"github.com/vk/arbenchgo/internal/trace"
)

// Engine drives a set of instances through a fixed number of ticks.
type Engine struct {
	order  []*Instance // signal-flow evaluation order
	byName map[string]*Instance
	ticks  int
}

// New wires the instances into a signal-flow graph and prepares the engine.
// ticks == 0 selects the length of the longest stimulus or expectation
// script. Wiring errors (dangling sources, width mismatches, combinational
// cycles, an empty run) are reported here, before any tick runs.
func New(instances []*Instance, ticks int) (*Engine, error) {
	byName := make(map[string]*Instance, len(instances))
	graph := dag.New()
	for _, inst := range instances {
		name := inst.Component.Name()
		if _, ok := byName[name]; ok {
			return nil, fmt.Errorf("sim: duplicate instance %q", name)
		}
		byName[name] = inst
		graph.AddNode(name)
	}

	for _, inst := range instances {
		if inst.Source == "" {
			continue
		}
		src, ok := byName[inst.Source]
		if !ok {
			return nil, fmt.Errorf("sim: instance %q observes unknown instance %q",
				inst.Component.Name(), inst.Source)
		}
		if src.Component.Width() != inst.Component.Width() {
			return nil, fmt.Errorf("sim: instance %q is width %d but observes %q of width %d",
				inst.Component.Name(), inst.Component.Width(),
				inst.Source, src.Component.Width())
		}
		if err := graph.AddEdge(inst.Source, inst.Component.Name()); err != nil {
			return nil, err
		}
	}

	names, err := graph.TopoOrder()
	if err != nil {
		return nil, err
	}
	order := make([]*Instance, len(names))
	for i, name := range names {
		order[i] = byName[name]
	}

	if ticks == 0 {
		for _, inst := range instances {
			ticks = max(ticks, len(inst.Stimulus), len(inst.Checks))
		}
	}
	if ticks < 1 {
		return nil, fmt.Errorf("sim: bench has no ticks to run")
	}

	return &Engine{order: order, byName: byName, ticks: ticks}, nil
}

// Ticks returns the number of ticks the engine will run.
func (e *Engine) Ticks() int { return e.ticks }

// Run executes the bench and returns the full trace. Expectation mismatches
// do not stop the run; they are collected and returned as a single error
// alongside the complete trace.
func (e *Engine) Run(ctx context.Context) (*trace.Trace, error) {
	logger := ctxlog.FromContext(ctx)

	// Input lines hold their driven values across ticks, starting all-zero.
	drives := make(map[string]*Inputs, len(e.order))
	for name, inst := range e.byName {
		drives[name] = &Inputs{
			Req: bitvec.New(inst.Component.Width()),
			Pri: make([]int, inst.Component.Width()),
		}
	}

	tr := &trace.Trace{}
	var mismatches []string

	for n := 0; n < e.ticks; n++ {
		outs := make(map[string]Outputs, len(e.order))
		tick := trace.Tick{N: n}

		// Phase 1: combinational evaluation in signal-flow order.
		for _, inst := range e.order {
			name := inst.Component.Name()
			in := e.inputsFor(inst, n, drives[name], outs)
			out := inst.Component.Eval(in)
			outs[name] = out
			tick.Signals = append(tick.Signals, signalFor(inst, in, out))
		}

		// Phase 2: every register update lands at once.
		for _, inst := range e.order {
			inst.Component.Commit()
		}

		for _, inst := range e.order {
			mismatches = append(mismatches, checkTick(inst, n, outs[inst.Component.Name()])...)
		}

		tr.Ticks = append(tr.Ticks, tick)
		logger.Debug("Tick complete.", "tick", n)
	}

	if len(mismatches) > 0 {
		return tr, fmt.Errorf("sim: %d expectation mismatch(es):\n  %s",
			len(mismatches), strings.Join(mismatches, "\n  "))
	}
	return tr, nil
}

// inputsFor resolves one instance's inputs for this tick: stimulus-driven
// instances update their held lines from the script, observers sample their
// source's just-computed outputs.
func (e *Engine) inputsFor(inst *Instance, n int, held *Inputs, outs map[string]Outputs) Inputs {
	if inst.Source != "" {
		srcOut := outs[inst.Source]
		in := Inputs{Req: bitvec.New(inst.Component.Width())}
		if srcOut.HasGrant {
			in.Req = srcOut.Grant
		}
		in.Index = srcOut.Index
		in.Invalid = srcOut.Invalid
		return in
	}

	if n < len(inst.Stimulus) {
		st := inst.Stimulus[n]
		if st.Req != nil {
			held.Req = *st.Req
		}
		if st.Enable != nil {
			held.Enable = *st.Enable
		}
		if st.Pri != nil {
			held.Pri = st.Pri
		}
	}
	return *held
}

func signalFor(inst *Instance, in Inputs, out Outputs) trace.Signal {
	sig := trace.Signal{Instance: inst.Component.Name()}

	if inst.Source == "" && len(inst.Stimulus) > 0 {
		sig.Req = in.Req.String()
		if stimulusSets(inst, func(t *Tick) bool { return t.Enable != nil }) {
			enable := in.Enable
			sig.Enable = &enable
		}
		if stimulusSets(inst, func(t *Tick) bool { return t.Pri != nil }) {
			sig.Pri = in.Pri
		}
	}

	if out.HasGrant {
		sig.Grant = out.Grant.String()
	}
	if out.HasIndex {
		index, invalid := out.Index, out.Invalid
		sig.Index = &index
		sig.Invalid = &invalid
	}
	return sig
}

func stimulusSets(inst *Instance, f func(*Tick) bool) bool {
	for _, t := range inst.Stimulus {
		if f(t) {
			return true
		}
	}
	return false
}

func checkTick(inst *Instance, n int, out Outputs) []string {
	if n >= len(inst.Checks) {
		return nil
	}
	check := inst.Checks[n]
	name := inst.Component.Name()

	var bad []string
	if check.Grant != nil {
		switch {
		case !out.HasGrant:
			bad = append(bad, fmt.Sprintf("tick %d: %s has no grant output, want %s", n, name, check.Grant))
		case !out.Grant.Equal(*check.Grant):
			bad = append(bad, fmt.Sprintf("tick %d: %s grant = %s, want %s", n, name, out.Grant, check.Grant))
		}
	}
	if check.Index != nil {
		switch {
		case !out.HasIndex:
			bad = append(bad, fmt.Sprintf("tick %d: %s has no index output, want %d", n, name, *check.Index))
		case out.Index != *check.Index:
			bad = append(bad, fmt.Sprintf("tick %d: %s index = %d, want %d", n, name, out.Index, *check.Index))
		}
	}
	if check.Invalid != nil {
		switch {
		case !out.HasIndex:
			bad = append(bad, fmt.Sprintf("tick %d: %s has no invalid output, want %v", n, name, *check.Invalid))
		case out.Invalid != *check.Invalid:
			bad = append(bad, fmt.Sprintf("tick %d: %s invalid = %v, want %v", n, name, out.Invalid, *check.Invalid))
		}
	}
	return bad
}
