// Package hclbench loads bench files written in HCL into the agnostic config
// model.
package hclbench

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/ctxlog"
	"github.com/vk/arbenchgo/internal/fsutil"
	"github.com/vk/arbenchgo/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL bench loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under path (a single file or a directory) and
// merges all discovered blocks into one model. The merged model is validated
// structurally before it is returned.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("hclbench: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("hclbench: no .hcl files found under %s", path)
	}
	logger.Debug("Discovered bench files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("hclbench: parsing %s: %s", file, diags.Error())
		}

		var root schema.FileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("hclbench: decoding %s: %s", file, diags.Error())
		}

		for _, a := range root.Arbiters {
			model.Arbiters = append(model.Arbiters, translateArbiter(a))
		}
		for _, p := range root.Probes {
			model.Probes = append(model.Probes, translateProbe(p))
		}
		for _, s := range root.Stimuli {
			stim, err := translateStimulus(s)
			if err != nil {
				return nil, fmt.Errorf("hclbench: %s: %w", file, err)
			}
			model.Stimuli = append(model.Stimuli, stim)
		}
		for _, e := range root.Expects {
			exp, err := translateExpect(e)
			if err != nil {
				return nil, fmt.Errorf("hclbench: %s: %w", file, err)
			}
			model.Expects = append(model.Expects, exp)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Bench model loaded.",
		"arbiters", len(model.Arbiters),
		"probes", len(model.Probes),
		"stimuli", len(model.Stimuli),
		"expects", len(model.Expects))
	return model, nil
}

func translateArbiter(a *schema.Arbiter) *config.Arbiter {
	return &config.Arbiter{
		Kind:        a.Kind,
		Name:        a.Name,
		Width:       a.Width,
		Policy:      a.Policy,
		MaxPriority: a.MaxPriority,
	}
}

func translateProbe(p *schema.Probe) *config.Probe {
	return &config.Probe{
		Kind:   p.Kind,
		Name:   p.Name,
		Source: p.Source,
		Width:  p.Width,
	}
}

func translateStimulus(s *schema.Stimulus) (*config.Stimulus, error) {
	out := &config.Stimulus{Target: s.Target}
	for n, tick := range s.Ticks {
		st, err := translateStimulusTick(tick.Body)
		if err != nil {
			return nil, fmt.Errorf("stimulus %q tick %d: %w", s.Target, n, err)
		}
		out.Ticks = append(out.Ticks, st)
	}
	return out, nil
}

func translateStimulusTick(body hcl.Body) (*config.StimulusTick, error) {
	attrs, err := tickAttributes(body)
	if err != nil {
		return nil, err
	}

	out := &config.StimulusTick{}
	for name, attr := range attrs {
		switch name {
		case "req":
			s, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			out.Req = s
		case "enable":
			b, err := boolAttr(attr)
			if err != nil {
				return nil, err
			}
			out.Enable = &b
		case "pri":
			levels, err := intListAttr(attr)
			if err != nil {
				return nil, err
			}
			out.Pri = levels
		default:
			return nil, fmt.Errorf("unknown stimulus attribute %q (want req, enable or pri)", name)
		}
	}
	return out, nil
}

func translateExpect(e *schema.Expect) (*config.Expect, error) {
	out := &config.Expect{Target: e.Target}
	for n, tick := range e.Ticks {
		et, err := translateExpectTick(tick.Body)
		if err != nil {
			return nil, fmt.Errorf("expect %q tick %d: %w", e.Target, n, err)
		}
		out.Ticks = append(out.Ticks, et)
	}
	return out, nil
}

func translateExpectTick(body hcl.Body) (*config.ExpectTick, error) {
	attrs, err := tickAttributes(body)
	if err != nil {
		return nil, err
	}

	out := &config.ExpectTick{}
	for name, attr := range attrs {
		switch name {
		case "grant":
			s, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			out.Grant = &s
		case "index":
			i, err := intAttr(attr)
			if err != nil {
				return nil, err
			}
			out.Index = &i
		case "invalid":
			b, err := boolAttr(attr)
			if err != nil {
				return nil, err
			}
			out.Invalid = &b
		default:
			return nil, fmt.Errorf("unknown expect attribute %q (want grant, index or invalid)", name)
		}
	}
	return out, nil
}

func tickAttributes(body hcl.Body) (hcl.Attributes, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading tick attributes: %s", diags.Error())
	}
	return attrs, nil
}
