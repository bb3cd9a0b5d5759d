package sim

import "github.com/vk/arbenchgo/internal/bitvec"

// Inputs carries everything a component may sample on one tick. Which fields
// matter depends on the component: arbiters read Req (and Enable or Pri),
// vector codecs read Req, index codecs read Index and Invalid.
type Inputs struct {
	Req    bitvec.Vector
	Enable bool
	Pri    []int

	Index   int
	Invalid bool
}

// Outputs carries what a component produced on one tick. HasGrant and
// HasIndex report which of the two output shapes the component drives.
type Outputs struct {
	Grant    bitvec.Vector
	HasGrant bool

	Index    int
	Invalid  bool
	HasIndex bool
}

// Component is one evaluatable bench instance. Eval must be a pure function
// of its inputs and of register state as it stood at the start of the tick;
// Commit latches the register update computed by the preceding Eval.
// Stateless components implement Commit as a no-op.
type Component interface {
	Name() string
	Width() int
	Eval(in Inputs) Outputs
	Commit()
}

// Tick is one parsed stimulus entry. Nil fields leave the corresponding
// input line holding its previous value.
type Tick struct {
	Req    *bitvec.Vector
	Enable *bool
	Pri    []int
}

// Check is one parsed expectation entry. Nil fields are not asserted.
type Check struct {
	Grant   *bitvec.Vector
	Index   *int
	Invalid *bool
}

// Instance binds a component to its stimulus and expectation scripts. Source
// names the instance whose outputs feed this one; it is empty for
// stimulus-driven instances.
type Instance struct {
	Component Component
	Source    string
	Stimulus  []*Tick
	Checks    []*Check
}
