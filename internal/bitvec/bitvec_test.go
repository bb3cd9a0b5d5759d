package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := New(4)
	assert.Equal(t, 4, v.Width())
	assert.True(t, v.IsZero())

	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(-3) })
}

func TestFromUint64(t *testing.T) {
	v := FromUint64(4, 0b0110)
	assert.Equal(t, "0b0110", v.String())

	t.Run("bits above the width are discarded", func(t *testing.T) {
		v := FromUint64(3, 0b1111)
		assert.Equal(t, "0b111", v.String())
		assert.Equal(t, uint64(0b111), v.Uint64())
	})

	t.Run("widths past one word", func(t *testing.T) {
		v := New(130).SetBit(129, true).SetBit(0, true)
		assert.Equal(t, 2, v.OnesCount())
		assert.True(t, v.Bit(129))
		assert.True(t, v.Bit(0))
		assert.False(t, v.Bit(64))
	})
}

func TestFromFunc(t *testing.T) {
	v := FromFunc(6, func(i int) bool { return i%2 == 0 })
	assert.Equal(t, uint64(0b010101), v.Uint64())
}

func TestParse(t *testing.T) {
	v, err := Parse(4, "0b0110")
	require.NoError(t, err)
	assert.Equal(t, uint64(0b0110), v.Uint64())

	v, err = Parse(8, "0b1010_0001")
	require.NoError(t, err)
	assert.Equal(t, uint64(0b10100001), v.Uint64())

	t.Run("error cases", func(t *testing.T) {
		_, err := Parse(4, "0b011")
		assert.ErrorContains(t, err, "3 digits, want 4")

		_, err = Parse(4, "0b0120")
		assert.ErrorContains(t, err, "invalid digit")
	})
}

func TestBitwiseOps(t *testing.T) {
	a := FromUint64(4, 0b0110)
	b := FromUint64(4, 0b0011)

	assert.Equal(t, uint64(0b0010), a.And(b).Uint64())
	assert.Equal(t, uint64(0b0111), a.Or(b).Uint64())
	assert.Equal(t, uint64(0b0101), a.Xor(b).Uint64())
	assert.Equal(t, uint64(0b0100), a.AndNot(b).Uint64())
	assert.Equal(t, uint64(0b1001), a.Not().Uint64())

	t.Run("operands are not mutated", func(t *testing.T) {
		assert.Equal(t, uint64(0b0110), a.Uint64())
		assert.Equal(t, uint64(0b0011), b.Uint64())
	})

	t.Run("width mismatch panics", func(t *testing.T) {
		assert.Panics(t, func() { a.And(FromUint64(5, 1)) })
	})
}

func TestShiftRight(t *testing.T) {
	v := FromUint64(4, 0b1100)
	assert.Equal(t, uint64(0b0110), v.ShiftRight(1).Uint64())
	assert.Equal(t, uint64(0b0011), v.ShiftRight(2).Uint64())
	assert.Equal(t, uint64(0), v.ShiftRight(4).Uint64())
	assert.Equal(t, uint64(0b1100), v.ShiftRight(0).Uint64())
}

func TestSmearLX(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0b0000, 0b0000},
		{0b0001, 0b1110},
		{0b0100, 0b1000},
		{0b0110, 0b1100},
		{0b1000, 0b0000},
	}
	for _, tc := range cases {
		got := FromUint64(4, tc.in).SmearLX()
		assert.Equal(t, tc.want, got.Uint64(), "smear of %04b", tc.in)
	}

	t.Run("smear crosses word boundaries", func(t *testing.T) {
		v := New(96).SetBit(3, true)
		s := v.SmearLX()
		assert.False(t, s.Bit(3))
		assert.True(t, s.Bit(4))
		assert.True(t, s.Bit(95))
	})
}

func TestConcatAndSlice(t *testing.T) {
	lo := FromUint64(4, 0b0010)
	hi := FromUint64(4, 0b1001)

	cat := lo.Concat(hi)
	require.Equal(t, 8, cat.Width())
	assert.Equal(t, uint64(0b1001_0010), cat.Uint64())

	assert.True(t, cat.Slice(0, 4).Equal(lo))
	assert.True(t, cat.Slice(4, 8).Equal(hi))

	assert.Panics(t, func() { cat.Slice(4, 2) })
	assert.Panics(t, func() { cat.Slice(0, 9) })
}

func TestLowestSet(t *testing.T) {
	_, ok := New(4).LowestSet()
	assert.False(t, ok)

	i, ok := FromUint64(4, 0b0110).LowestSet()
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = New(100).SetBit(70, true).LowestSet()
	require.True(t, ok)
	assert.Equal(t, 70, i)
}

func TestString(t *testing.T) {
	assert.Equal(t, "0b0000", New(4).String())
	assert.Equal(t, "0b101", FromUint64(3, 0b101).String())
}
