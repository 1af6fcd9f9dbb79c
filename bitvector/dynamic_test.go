package bitvector

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitRejectsOtherShapes(t *testing.T) {
	initVal, err := ParseInit("not valid")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "init_val must be an integer or a sequence of integers")
	assert.Nil(t, initVal)

	_, err = ParseInit(3.5)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ParseInit(map[int]int{1: 1})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseInitRejectsNonIntegerElements(t *testing.T) {
	initVal, err := ParseInit([]interface{}{1, "x", 2})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "sequence elements must be integers")
	assert.Nil(t, initVal)
}

func TestParseInitNegativeInteger(t *testing.T) {
	initVal, err := ParseInit(-2)
	require.NoError(t, err)
	bitVector, err := NewBitVectorMem(4, initVal)
	require.NoError(t, err)
	str, _ := bitVector.BinaryString()
	assert.Equal(t, "1110", str)
	count, _ := bitVector.BitCount()
	assert.Equal(t, 3, count)

	initVal, err = ParseInit(big.NewInt(-1))
	require.NoError(t, err)
	bitVector, err = NewBitVectorMem(8, initVal)
	require.NoError(t, err)
	value, _ := bitVector.Uint64()
	assert.Equal(t, uint64(0xFF), value)
}

func TestParseBoolAsInteger(t *testing.T) {
	initVal, err := ParseInit(true)
	require.NoError(t, err)
	bitVector, err := NewBitVectorMem(4, initVal)
	require.NoError(t, err)
	value, _ := bitVector.Uint64()
	assert.Equal(t, uint64(1), value)

	initVal, err = ParseInit([]interface{}{false, true, 3})
	require.NoError(t, err)
	bitVector, err = NewBitVectorMem(4, initVal)
	require.NoError(t, err)
	str, _ := bitVector.BinaryString()
	assert.Equal(t, "1011", str)

	index, err := ParseIndex(true)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	index, err = ParseIndex(false)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestParseInitInteger(t *testing.T) {
	for _, v := range []interface{}{300, int64(300), uint16(300), big.NewInt(300)} {
		initVal, err := ParseInit(v)
		require.NoError(t, err)
		bitVector, err := NewBitVectorMem(16, initVal)
		require.NoError(t, err)
		value, _ := bitVector.Uint64()
		assert.Equal(t, uint64(300), value, "%T", v)
	}
}

func TestParseInitSequence(t *testing.T) {
	for _, v := range []interface{}{[]int{0, 4}, []uint8{0, 4}, [2]int64{0, 4}, []interface{}{0, uint(4)}} {
		initVal, err := ParseInit(v)
		require.NoError(t, err)
		bitVector, err := NewBitVectorMem(5, initVal)
		require.NoError(t, err)
		str, _ := bitVector.BinaryString()
		assert.Equal(t, "10001", str, "%T", v)
	}

	initVal, err := ParseInit([]int{1, 7})
	require.NoError(t, err)
	bitVector, err := NewBitVectorMem(5, initVal)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Nil(t, bitVector)
}

func TestParseInitOmitted(t *testing.T) {
	initVal, err := ParseInit(nil)
	require.NoError(t, err)
	assert.Nil(t, initVal)

	passthrough, err := ParseInit(FromInteger(1))
	require.NoError(t, err)
	assert.Equal(t, FromInteger(1), passthrough)
}

func TestParseBit(t *testing.T) {
	cases := []struct {
		value interface{}
		want  bool
	}{
		{0, false},
		{1, true},
		{-2, true},
		{uint8(7), true},
		{0.5, false},
		{2.5, true},
		{true, true},
		{false, false},
	}
	for _, c := range cases {
		bit, err := ParseBit(c.value)
		require.NoError(t, err)
		assert.Equal(t, c.want, bit, "%v", c.value)
	}

	_, err := ParseBit("1")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseIndex(t *testing.T) {
	index, err := ParseIndex(int32(3))
	require.NoError(t, err)
	assert.Equal(t, 3, index)

	_, err = ParseIndex(1.0)
	assert.ErrorIs(t, err, ErrInvalidValue)

	bitVector, _ := NewBitVectorMem(4, FromBitPositions(3))
	index, _ = ParseIndex(3)
	ok, err := bitVector.Contains(index)
	require.NoError(t, err)
	assert.True(t, ok)

	huge := new(big.Int).Lsh(big.NewInt(1), 80)
	_, err = ParseIndex(huge)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
