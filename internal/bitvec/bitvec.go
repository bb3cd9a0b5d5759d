package bitvec

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// Vector is an immutable fixed-width bit vector. The zero value is a
// zero-width vector; use New or FromUint64 to obtain a usable one.
type Vector struct {
	width int
	words []uint64
}

// New returns an all-zero vector of the given width. Width must be positive;
// a non-positive width is a programmer error and panics.
func New(width int) Vector {
	if width < 1 {
		panic(fmt.Sprintf("bitvec: width must be positive, got %d", width))
	}
	return Vector{
		width: width,
		words: make([]uint64, (width+wordBits-1)/wordBits),
	}
}

// FromUint64 returns a vector of the given width holding the low bits of v.
// Bits of v at or above the width are discarded.
func FromUint64(width int, v uint64) Vector {
	out := New(width)
	out.words[0] = v
	out.maskTop()
	return out
}

// FromFunc returns a vector of the given width with bit i set when f(i) is
// true.
func FromFunc(width int, f func(i int) bool) Vector {
	out := New(width)
	for i := 0; i < width; i++ {
		if f(i) {
			out.words[i/wordBits] |= 1 << (i % wordBits)
		}
	}
	return out
}

// Parse reads a vector from its textual form: an optional "0b" prefix
// followed by binary digits, most significant bit first. Underscores are
// permitted as separators. The digit count must equal the vector width.
func Parse(width int, s string) (Vector, error) {
	digits := strings.TrimPrefix(s, "0b")
	digits = strings.ReplaceAll(digits, "_", "")
	if len(digits) != width {
		return Vector{}, fmt.Errorf("bitvec: %q has %d digits, want %d", s, len(digits), width)
	}
	out := New(width)
	for i, c := range digits {
		switch c {
		case '0':
		case '1':
			out = out.SetBit(width-1-i, true)
		default:
			return Vector{}, fmt.Errorf("bitvec: invalid digit %q in %q", c, s)
		}
	}
	return out, nil
}

// Width returns the vector's width in bits.
func (v Vector) Width() int { return v.width }

// Bit reports whether bit i is set. Indexes outside [0, width) panic.
func (v Vector) Bit(i int) bool {
	v.checkIndex(i)
	return v.words[i/wordBits]&(1<<(i%wordBits)) != 0
}

// SetBit returns a copy of v with bit i forced to b.
func (v Vector) SetBit(i int, b bool) Vector {
	v.checkIndex(i)
	out := v.clone()
	if b {
		out.words[i/wordBits] |= 1 << (i % wordBits)
	} else {
		out.words[i/wordBits] &^= 1 << (i % wordBits)
	}
	return out
}

// IsZero reports whether no bit is set.
func (v Vector) IsZero() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// OnesCount returns the number of set bits.
func (v Vector) OnesCount() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// LowestSet returns the index of the least significant set bit. The second
// return is false when the vector is all zeroes.
func (v Vector) LowestSet() (int, bool) {
	for wi, w := range v.words {
		if w != 0 {
			return wi*wordBits + bits.TrailingZeros64(w), true
		}
	}
	return 0, false
}

// And returns the bitwise AND of v and o. Widths must match.
func (v Vector) And(o Vector) Vector {
	v.checkWidth(o)
	out := v.clone()
	for i := range out.words {
		out.words[i] &= o.words[i]
	}
	return out
}

// AndNot returns v with every bit set in o cleared. Widths must match.
func (v Vector) AndNot(o Vector) Vector {
	v.checkWidth(o)
	out := v.clone()
	for i := range out.words {
		out.words[i] &^= o.words[i]
	}
	return out
}

// Or returns the bitwise OR of v and o. Widths must match.
func (v Vector) Or(o Vector) Vector {
	v.checkWidth(o)
	out := v.clone()
	for i := range out.words {
		out.words[i] |= o.words[i]
	}
	return out
}

// Xor returns the bitwise XOR of v and o. Widths must match.
func (v Vector) Xor(o Vector) Vector {
	v.checkWidth(o)
	out := v.clone()
	for i := range out.words {
		out.words[i] ^= o.words[i]
	}
	return out
}

// Not returns the bitwise complement of v within its width.
func (v Vector) Not() Vector {
	out := v.clone()
	for i := range out.words {
		out.words[i] = ^out.words[i]
	}
	out.maskTop()
	return out
}

// ShiftRight returns v shifted right (towards bit 0) by n bits, with zeroes
// shifted in at the top. n must be non-negative.
func (v Vector) ShiftRight(n int) Vector {
	if n < 0 {
		panic(fmt.Sprintf("bitvec: negative shift %d", n))
	}
	out := New(v.width)
	for i := 0; i+n < v.width; i++ {
		if v.Bit(i + n) {
			out.words[i/wordBits] |= 1 << (i % wordBits)
		}
	}
	return out
}

// SmearLX returns the exclusive left smear of v: output bit i is set when
// any input bit strictly below i is set. Bit 0 is always clear.
func (v Vector) SmearLX() Vector {
	out := New(v.width)
	seen := false
	for i := 0; i < v.width; i++ {
		if seen {
			out.words[i/wordBits] |= 1 << (i % wordBits)
		}
		seen = seen || v.Bit(i)
	}
	return out
}

// Concat returns the concatenation of v (low half) and hi (high half), a
// vector of width v.Width()+hi.Width().
func (v Vector) Concat(hi Vector) Vector {
	out := New(v.width + hi.width)
	for i := 0; i < v.width; i++ {
		if v.Bit(i) {
			out.words[i/wordBits] |= 1 << (i % wordBits)
		}
	}
	for i := 0; i < hi.width; i++ {
		if hi.Bit(i) {
			j := v.width + i
			out.words[j/wordBits] |= 1 << (j % wordBits)
		}
	}
	return out
}

// Slice returns bits [from, to) of v as a vector of width to-from.
func (v Vector) Slice(from, to int) Vector {
	if from < 0 || to > v.width || from >= to {
		panic(fmt.Sprintf("bitvec: invalid slice [%d, %d) of width %d", from, to, v.width))
	}
	out := New(to - from)
	for i := from; i < to; i++ {
		if v.Bit(i) {
			j := i - from
			out.words[j/wordBits] |= 1 << (j % wordBits)
		}
	}
	return out
}

// Equal reports whether v and o have the same width and the same bits.
func (v Vector) Equal(o Vector) bool {
	if v.width != o.width {
		return false
	}
	for i := range v.words {
		if v.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Uint64 returns the low 64 bits of v.
func (v Vector) Uint64() uint64 {
	if len(v.words) == 0 {
		return 0
	}
	return v.words[0]
}

// String renders v as "0b..." with the most significant bit first.
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteString("0b")
	for i := v.width - 1; i >= 0; i-- {
		if v.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (v Vector) clone() Vector {
	out := Vector{width: v.width, words: make([]uint64, len(v.words))}
	copy(out.words, v.words)
	return out
}

// maskTop clears the unused bits of the top word so that Not and FromUint64
// cannot leak bits past the width.
func (v Vector) maskTop() {
	if rem := v.width % wordBits; rem != 0 {
		v.words[len(v.words)-1] &= (1 << rem) - 1
	}
}

func (v Vector) checkIndex(i int) {
	if i < 0 || i >= v.width {
		panic(fmt.Sprintf("bitvec: index %d out of range for width %d", i, v.width))
	}
}

func (v Vector) checkWidth(o Vector) {
	if v.width != o.width {
		panic(fmt.Sprintf("bitvec: width mismatch %d vs %d", v.width, o.width))
	}
}
