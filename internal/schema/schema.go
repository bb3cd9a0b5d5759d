// Package schema holds the HCL shapes of bench files. These structs mirror
// the file syntax exactly; the loader translates them into the agnostic
// config model.
package schema

import "github.com/hashicorp/hcl/v2"

// Arbiter represents an `arbiter "<kind>" "<name>"` block.
type Arbiter struct {
	Kind        string `hcl:"kind,label"`
	Name        string `hcl:"instance_name,label"`
	Width       int    `hcl:"width"`
	Policy      string `hcl:"policy,optional"`
	MaxPriority int    `hcl:"max_priority,optional"`
}

// Probe represents a `probe "<kind>" "<name>"` block. A probe attaches a
// codec to the output of the named source instance.
type Probe struct {
	Kind   string `hcl:"kind,label"`
	Name   string `hcl:"instance_name,label"`
	Source string `hcl:"source"`
	Width  int    `hcl:"width"`
}

// Tick represents one `tick` block inside a stimulus or expect block. Its
// attributes are free-form and evaluated by the loader: stimulus ticks accept
// req, enable and pri; expect ticks accept grant, index and invalid.
type Tick struct {
	Body hcl.Body `hcl:",remain"`
}

// Stimulus represents a `stimulus "<target>"` block: the ordered input
// script for one instance.
type Stimulus struct {
	Target string  `hcl:"target,label"`
	Ticks  []*Tick `hcl:"tick,block"`
}

// Expect represents an `expect "<target>"` block: the ordered output
// assertions for one instance.
type Expect struct {
	Target string  `hcl:"target,label"`
	Ticks  []*Tick `hcl:"tick,block"`
}

// FileRoot is the top-level structure decoded from every bench file; any
// block may appear in any file.
type FileRoot struct {
	Arbiters []*Arbiter  `hcl:"arbiter,block"`
	Probes   []*Probe    `hcl:"probe,block"`
	Stimuli  []*Stimulus `hcl:"stimulus,block"`
	Expects  []*Expect   `hcl:"expect,block"`
	Remain   hcl.Body    `hcl:",remain"`
}
