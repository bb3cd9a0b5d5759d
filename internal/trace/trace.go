// Package trace records what every bench instance saw and produced on every
// tick, and renders the recording as YAML for offline inspection and diffing.
package trace

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Trace is a complete recording of a bench run.
type Trace struct {
	RunID string `yaml:"run_id,omitempty"`
	Ticks []Tick `yaml:"ticks"`
}

// Tick holds one signal sample per instance for a single tick.
type Tick struct {
	N       int      `yaml:"tick"`
	Signals []Signal `yaml:"signals"`
}

// Signal is the per-instance sample: driven inputs (when the instance is
// stimulus-fed) and produced outputs. Vector values are rendered in their
// "0b..." textual form.
type Signal struct {
	Instance string `yaml:"instance"`

	Req    string `yaml:"req,omitempty"`
	Enable *bool  `yaml:"enable,omitempty"`
	Pri    []int  `yaml:"pri,omitempty,flow"`

	Grant   string `yaml:"grant,omitempty"`
	Index   *int   `yaml:"index,omitempty"`
	Invalid *bool  `yaml:"invalid,omitempty"`
}

// WriteYAML renders the trace to w.
func (t *Trace) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("trace: encoding: %w", err)
	}
	return enc.Close()
}
