package coding

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/bitvec"
)

// PrioritySelector reduces a request bitmap to at most one set bit, keeping
// only the least significant one.
type PrioritySelector struct {
	width int
}

// NewPrioritySelector returns a selector for vectors of the given width.
func NewPrioritySelector(width int) (*PrioritySelector, error) {
	if width < 1 {
		return nil, fmt.Errorf("coding: selector width must be positive, got %d", width)
	}
	return &PrioritySelector{width: width}, nil
}

// Width returns the configured vector width.
func (s *PrioritySelector) Width() int { return s.width }

// Select returns a vector with only the lowest set bit of req retained.
// An all-zero input yields an all-zero output. Each bit strictly below a set
// bit denies everything above it: out = req AND NOT SmearLX(req).
func (s *PrioritySelector) Select(req bitvec.Vector) bitvec.Vector {
	s.checkWidth(req)
	return req.AndNot(req.SmearLX())
}

func (s *PrioritySelector) checkWidth(v bitvec.Vector) {
	if v.Width() != s.width {
		panic(fmt.Sprintf("coding: got width %d vector, selector is width %d", v.Width(), s.width))
	}
}

// Encoder converts a one-hot vector to the index of its set bit. The invalid
// flag reports inputs that are not one-hot (zero or multiple bits set); the
// index is 0 in that case.
type Encoder struct {
	width int
}

// NewEncoder returns an encoder for one-hot vectors of the given width.
func NewEncoder(width int) (*Encoder, error) {
	if width < 1 {
		return nil, fmt.Errorf("coding: encoder width must be positive, got %d", width)
	}
	return &Encoder{width: width}, nil
}

// Width returns the configured vector width.
func (e *Encoder) Width() int { return e.width }

// Encode returns the index of the single set bit of in, or invalid=true when
// in is not one-hot.
func (e *Encoder) Encode(in bitvec.Vector) (index int, invalid bool) {
	if in.Width() != e.width {
		panic(fmt.Sprintf("coding: got width %d vector, encoder is width %d", in.Width(), e.width))
	}
	if in.OnesCount() != 1 {
		return 0, true
	}
	i, _ := in.LowestSet()
	return i, false
}

// PriorityEncoder converts a request vector to the index of its least
// significant set bit. Unlike Encoder it accepts any number of set bits; the
// invalid flag is raised only for an all-zero input.
type PriorityEncoder struct {
	width int
}

// NewPriorityEncoder returns a priority encoder for vectors of the given width.
func NewPriorityEncoder(width int) (*PriorityEncoder, error) {
	if width < 1 {
		return nil, fmt.Errorf("coding: priority encoder width must be positive, got %d", width)
	}
	return &PriorityEncoder{width: width}, nil
}

// Width returns the configured vector width.
func (e *PriorityEncoder) Width() int { return e.width }

// Encode returns the lowest set index of in, or invalid=true when in is zero.
func (e *PriorityEncoder) Encode(in bitvec.Vector) (index int, invalid bool) {
	if in.Width() != e.width {
		panic(fmt.Sprintf("coding: got width %d vector, priority encoder is width %d", in.Width(), e.width))
	}
	i, ok := in.LowestSet()
	return i, !ok
}

// Decoder converts an index to a one-hot vector. A suppressed decode, or an
// index outside [0, width), yields an all-zero output.
type Decoder struct {
	width int
}

// NewDecoder returns a decoder producing vectors of the given width.
func NewDecoder(width int) (*Decoder, error) {
	if width < 1 {
		return nil, fmt.Errorf("coding: decoder width must be positive, got %d", width)
	}
	return &Decoder{width: width}, nil
}

// Width returns the configured vector width.
func (d *Decoder) Width() int { return d.width }

// Decode returns a one-hot vector with bit index set, or an all-zero vector
// when suppress is true or index is out of range.
func (d *Decoder) Decode(index int, suppress bool) bitvec.Vector {
	out := bitvec.New(d.width)
	if suppress || index < 0 || index >= d.width {
		return out
	}
	return out.SetBit(index, true)
}

// PriorityDecoder decodes a binary index to a priority request bitmap. It is
// identical to Decoder.
type PriorityDecoder = Decoder

// NewPriorityDecoder returns a priority decoder producing vectors of the
// given width.
func NewPriorityDecoder(width int) (*PriorityDecoder, error) {
	d, err := NewDecoder(width)
	if err != nil {
		return nil, fmt.Errorf("coding: priority decoder: %w", err)
	}
	return d, nil
}
