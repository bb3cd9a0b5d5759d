// Package config defines the format-agnostic model of a loaded bench: the
// component instances to build, the per-tick stimulus driving them, and the
// expectations checked against their outputs. Loaders for concrete file
// formats translate into this model; everything downstream (registry
// validation, instance building, the engine) works from it and never sees
// format-specific types.
package config
