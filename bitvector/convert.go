package bitvector

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// ToBitSet copies v into a bits-and-blooms BitSet of length v.Size()
func ToBitSet(v IBitVector) (*bitset.BitSet, error) {
	buf, err := v.Bytes()
	if err != nil {
		return nil, err
	}
	words := make([]uint64, (len(buf)+7)/8)
	for i, b := range buf {
		words[i>>3] |= uint64(b) << (8 * (i & 7))
	}
	return bitset.FromWithLength(uint(v.Size()), words), nil
}

// FromBitSet creates a BitVectorMem of size bits holding the bits of set.
// Every set bit must lie below size.
func FromBitSet(size int, set *bitset.BitSet) (*BitVectorMem, error) {
	positions := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		positions = append(positions, int(i))
	}
	return NewBitVectorMem(size, FromBitPositions(positions...))
}

// Positions returns the indexes of the set bits of v in ascending order
func Positions(v IBitVector) ([]int, error) {
	set, err := ToBitSet(v)
	if err != nil {
		return nil, err
	}
	indexes := make([]uint, set.Count())
	_, indexes = set.NextSetMany(0, indexes)
	positions := make([]int, len(indexes))
	for i, index := range indexes {
		positions[i] = int(index)
	}
	return positions, nil
}

// ToRoaring copies the set bits of v into a roaring bitmap. v must not
// address more than 1<<32 bits.
func ToRoaring(v IBitVector) (*roaring.Bitmap, error) {
	if uint64(v.Size()) > math.MaxUint32+1 {
		return nil, invalidValue("size %d exceeds the roaring bitmap range", v.Size())
	}
	positions, err := Positions(v)
	if err != nil {
		return nil, err
	}
	rb := roaring.New()
	for _, p := range positions {
		rb.Add(uint32(p))
	}
	return rb, nil
}

// FromRoaring creates a BitVectorMem of size bits holding the bits of rb.
// Every member of rb must lie below size.
func FromRoaring(size int, rb *roaring.Bitmap) (*BitVectorMem, error) {
	members := rb.ToArray()
	positions := make([]int, len(members))
	for i, m := range members {
		positions[i] = int(m)
	}
	return NewBitVectorMem(size, FromBitPositions(positions...))
}
