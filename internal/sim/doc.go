// Package sim is the synchronous tick engine. It evaluates a bench's
// component instances once per tick in signal-flow order, then commits all
// register updates at the tick boundary, so no component can ever observe a
// partially updated register. Ticks are strictly sequential; each one is
// bounded work with no goroutines and no blocking.
package sim
