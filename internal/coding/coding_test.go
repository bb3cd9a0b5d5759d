package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/arbenchgo/internal/bitvec"
)

func TestNewPrioritySelector(t *testing.T) {
	s, err := NewPrioritySelector(4)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Width())

	_, err = NewPrioritySelector(0)
	assert.ErrorContains(t, err, "width must be positive")
}

func TestPrioritySelectorSelect(t *testing.T) {
	s, err := NewPrioritySelector(4)
	require.NoError(t, err)

	cases := []struct {
		in, want uint64
	}{
		{0b0000, 0b0000},
		{0b0110, 0b0010},
		{0b1111, 0b0001},
		{0b1000, 0b1000},
		{0b1010, 0b0010},
	}
	for _, tc := range cases {
		got := s.Select(bitvec.FromUint64(4, tc.in))
		assert.Equal(t, tc.want, got.Uint64(), "select of %04b", tc.in)
	}

	t.Run("lowest set bit wins for every nonzero input", func(t *testing.T) {
		s, err := NewPrioritySelector(6)
		require.NoError(t, err)
		for in := uint64(1); in < 1<<6; in++ {
			out := s.Select(bitvec.FromUint64(6, in))
			require.Equal(t, 1, out.OnesCount(), "input %06b", in)
			lowIn, _ := bitvec.FromUint64(6, in).LowestSet()
			lowOut, _ := out.LowestSet()
			require.Equal(t, lowIn, lowOut, "input %06b", in)
		}
	})

	t.Run("width mismatch panics", func(t *testing.T) {
		assert.Panics(t, func() { s.Select(bitvec.New(5)) })
	})
}

func TestEncoder(t *testing.T) {
	enc, err := NewEncoder(4)
	require.NoError(t, err)

	_, err = NewEncoder(-1)
	assert.ErrorContains(t, err, "width must be positive")

	idx, invalid := enc.Encode(bitvec.FromUint64(4, 0b0100))
	assert.False(t, invalid)
	assert.Equal(t, 2, idx)

	idx, invalid = enc.Encode(bitvec.FromUint64(4, 0b0001))
	assert.False(t, invalid)
	assert.Equal(t, 0, idx)

	t.Run("zero and multi-bit inputs are invalid", func(t *testing.T) {
		idx, invalid := enc.Encode(bitvec.New(4))
		assert.True(t, invalid)
		assert.Equal(t, 0, idx)

		idx, invalid = enc.Encode(bitvec.FromUint64(4, 0b0110))
		assert.True(t, invalid)
		assert.Equal(t, 0, idx)
	})
}

func TestPriorityEncoder(t *testing.T) {
	enc, err := NewPriorityEncoder(4)
	require.NoError(t, err)

	idx, invalid := enc.Encode(bitvec.FromUint64(4, 0b0110))
	assert.False(t, invalid)
	assert.Equal(t, 1, idx)

	idx, invalid = enc.Encode(bitvec.FromUint64(4, 0b0100))
	assert.False(t, invalid)
	assert.Equal(t, 2, idx)

	_, invalid = enc.Encode(bitvec.New(4))
	assert.True(t, invalid)
}

func TestDecoder(t *testing.T) {
	dec, err := NewDecoder(4)
	require.NoError(t, err)

	assert.Equal(t, uint64(0b0001), dec.Decode(0, false).Uint64())
	assert.Equal(t, uint64(0b0010), dec.Decode(1, false).Uint64())
	assert.Equal(t, uint64(0b1000), dec.Decode(3, false).Uint64())

	t.Run("suppressed decode is zero", func(t *testing.T) {
		assert.True(t, dec.Decode(3, true).IsZero())
	})

	t.Run("out of range index is zero", func(t *testing.T) {
		assert.True(t, dec.Decode(4, false).IsZero())
		assert.True(t, dec.Decode(-1, false).IsZero())
	})
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	const width = 7
	enc, err := NewEncoder(width)
	require.NoError(t, err)
	dec, err := NewDecoder(width)
	require.NoError(t, err)

	for i := 0; i < width; i++ {
		onehot := bitvec.New(width).SetBit(i, true)
		idx, invalid := enc.Encode(onehot)
		require.False(t, invalid, "bit %d", i)
		require.Equal(t, i, idx)
		require.True(t, dec.Decode(idx, invalid).Equal(onehot), "bit %d", i)
	}
}

func TestGrayRoundTrip(t *testing.T) {
	const width = 5
	enc, err := NewGrayEncoder(width)
	require.NoError(t, err)
	dec, err := NewGrayDecoder(width)
	require.NoError(t, err)

	for x := uint64(0); x < 1<<width; x++ {
		bin := bitvec.FromUint64(width, x)
		gray := enc.Encode(bin)
		require.True(t, dec.Decode(gray).Equal(bin), "value %d", x)
	}
}

func TestGrayAdjacency(t *testing.T) {
	const width = 5
	enc, err := NewGrayEncoder(width)
	require.NoError(t, err)

	// Codes of adjacent binary values differ in exactly one bit.
	for x := uint64(0); x+1 < 1<<width; x++ {
		a := enc.Encode(bitvec.FromUint64(width, x))
		b := enc.Encode(bitvec.FromUint64(width, x+1))
		require.Equal(t, 1, a.Xor(b).OnesCount(), "values %d and %d", x, x+1)
	}
}

func TestGrayKnownValues(t *testing.T) {
	enc, err := NewGrayEncoder(4)
	require.NoError(t, err)

	cases := []struct {
		bin, gray uint64
	}{
		{0b0000, 0b0000},
		{0b0001, 0b0001},
		{0b0010, 0b0011},
		{0b0011, 0b0010},
		{0b0100, 0b0110},
		{0b1111, 0b1000},
	}
	for _, tc := range cases {
		got := enc.Encode(bitvec.FromUint64(4, tc.bin))
		assert.Equal(t, tc.gray, got.Uint64(), "gray of %04b", tc.bin)
	}
}
