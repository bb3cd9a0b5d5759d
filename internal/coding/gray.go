package coding

import (
	"fmt"

	"github.com/vk/arbenchgo/internal/bitvec"
)

// GrayEncoder converts natural binary to reflected Gray code.
type GrayEncoder struct {
	width int
}

// NewGrayEncoder returns a Gray encoder for vectors of the given width.
func NewGrayEncoder(width int) (*GrayEncoder, error) {
	if width < 1 {
		return nil, fmt.Errorf("coding: gray encoder width must be positive, got %d", width)
	}
	return &GrayEncoder{width: width}, nil
}

// Width returns the configured vector width.
func (e *GrayEncoder) Width() int { return e.width }

// Encode returns the Gray code of bin: gray = bin XOR (bin >> 1).
func (e *GrayEncoder) Encode(bin bitvec.Vector) bitvec.Vector {
	if bin.Width() != e.width {
		panic(fmt.Sprintf("coding: got width %d vector, gray encoder is width %d", bin.Width(), e.width))
	}
	return bin.Xor(bin.ShiftRight(1))
}

// GrayDecoder converts reflected Gray code back to natural binary.
type GrayDecoder struct {
	width int
}

// NewGrayDecoder returns a Gray decoder for vectors of the given width.
func NewGrayDecoder(width int) (*GrayDecoder, error) {
	if width < 1 {
		return nil, fmt.Errorf("coding: gray decoder width must be positive, got %d", width)
	}
	return &GrayDecoder{width: width}, nil
}

// Width returns the configured vector width.
func (d *GrayDecoder) Width() int { return d.width }

// Decode inverts Encode by an XOR prefix scan from the top bit down:
// bin[msb] = gray[msb], then bin[i] = bin[i+1] XOR gray[i].
func (d *GrayDecoder) Decode(gray bitvec.Vector) bitvec.Vector {
	if gray.Width() != d.width {
		panic(fmt.Sprintf("coding: got width %d vector, gray decoder is width %d", gray.Width(), d.width))
	}
	out := bitvec.New(d.width)
	prev := false
	for i := d.width - 1; i >= 0; i-- {
		prev = prev != gray.Bit(i)
		out = out.SetBit(i, prev)
	}
	return out
}
