// Package coding provides combinational converters between binary, one-hot
// and Gray-code representations, plus the priority selector the arbiters are
// built on. Every converter is a pure function of its inputs: objects carry
// only their configured width, never state.
package coding
