// Package bitvec provides a fixed-width bit vector, the value type carried
// between arbiters, codecs and the tick engine.
//
// A Vector's width is fixed when it is created; every operation that combines
// two vectors requires their widths to match. Vectors behave as values: no
// operation mutates its receiver, so a Vector held across a tick boundary
// cannot be changed behind the holder's back.
package bitvec
