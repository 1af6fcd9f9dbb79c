package bitvector

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBitSet(t *testing.T) {
	bitVector, _ := NewBitVectorMem(70, FromBitPositions(1, 9, 64, 69))
	set, err := ToBitSet(bitVector)
	require.NoError(t, err)
	assert.Equal(t, uint(70), set.Len())
	assert.Equal(t, uint(4), set.Count())
	for _, i := range []uint{1, 9, 64, 69} {
		assert.True(t, set.Test(i), "index %d", i)
	}
	assert.False(t, set.Test(2))
}

func TestFromBitSet(t *testing.T) {
	set := bitset.New(10).Set(1).Set(9)
	bitVector, err := FromBitSet(10, set)
	require.NoError(t, err)
	str, _ := bitVector.BinaryString()
	assert.Equal(t, "1000000010", str)

	_, err = FromBitSet(5, set)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestPositions(t *testing.T) {
	bitVector, _ := NewBitVectorMem(30, FromBitPositions(29, 0, 15, 15))
	positions, err := Positions(bitVector)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 15, 29}, positions)

	empty, _ := NewBitVectorMem(0, nil)
	positions, err = Positions(empty)
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestRoaringRoundTrip(t *testing.T) {
	bitVector, _ := NewBitVectorRedis(40, FromBitPositions(3, 17, 39))
	rb, err := ToRoaring(bitVector)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rb.GetCardinality())
	assert.True(t, rb.Contains(39))

	back, err := FromRoaring(40, rb)
	require.NoError(t, err)
	ok, err := back.Equals(bitVector)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = FromRoaring(20, roaring.BitmapOf(3, 25))
	assert.ErrorIs(t, err, ErrInvalidValue)
}
