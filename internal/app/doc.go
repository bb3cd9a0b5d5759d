// Package app wires the application together: it configures logging, loads
// the bench model through a config.Loader, registers the compiled-in
// component modules, builds the instances and hands them to the tick engine.
package app
