package bitvector

import (
	"math/big"
)

// Init is the optional initial content of a new bit vector. A nil Init
// leaves every bit cleared.
type Init interface {
	fill(buf []byte, size int) error
}

type integerInit struct {
	value *big.Int
}

type positionsInit []int

// FromInteger initializes a vector from the little-endian bits of value.
// Byte i of the vector receives bits [8i, 8i+8) of value; bits past the
// vector's size are discarded.
func FromInteger(value uint64) Init {
	return integerInit{new(big.Int).SetUint64(value)}
}

// FromBigInt is FromInteger for values wider than 64 bits. A negative
// value fills the vector with its two's complement bytes, so -1 sets
// every bit.
func FromBigInt(value *big.Int) Init {
	return integerInit{value}
}

// FromBitPositions initializes a vector with the bits at positions set.
// Every position must lie in [0, size). Duplicates set the same bit.
func FromBitPositions(positions ...int) Init {
	return positionsInit(positions)
}

func (in integerInit) fill(buf []byte, size int) error {
	if in.value == nil {
		return invalidValue("init_val must be an integer or a sequence of integers")
	}
	value := in.value
	if value.Sign() < 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(8*len(buf)))
		value = new(big.Int).Mod(value, modulus)
	}
	be := value.Bytes()
	for i := 0; i < len(buf) && i < len(be); i++ {
		buf[i] = be[len(be)-1-i]
	}
	clearPadding(buf, size)
	return nil
}

func (in positionsInit) fill(buf []byte, size int) error {
	for _, p := range in {
		if p < 0 || p >= size {
			return invalidValue("values must be between zero (inclusive) and size (exclusive), got %d", p)
		}
	}
	for _, p := range in {
		buf[p>>3] |= 1 << (p & 7)
	}
	return nil
}

// newBuffer allocates the byte buffer of a size-bit vector and applies initVal.
func newBuffer(size int, initVal Init) ([]byte, error) {
	if size < 0 {
		return nil, invalidValue("size must be non-negative, got %d", size)
	}
	buf := make([]byte, byteLen(size))
	if initVal == nil {
		return buf, nil
	}
	if err := initVal.fill(buf, size); err != nil {
		return nil, err
	}
	return buf, nil
}
