package bitvector

import (
	"fmt"
	"math/big"
	"math/bits"

	metro "github.com/dgryski/go-metro"
)

// Bits are packed least-significant-bit first: bit i lives in byte i>>3
// under mask 1<<(i&7). Every function here works on a buffer of exactly
// byteLen(size) bytes.

func byteLen(size int) int {
	return (size + 7) >> 3
}

// tailMask returns the addressable bits of the final byte
func tailMask(size int) byte {
	if r := size & 7; r != 0 {
		return byte(1)<<r - 1
	}
	return 0xFF
}

func checkIndex(index, size int) error {
	if index < 0 || index >= size {
		return &IndexError{Index: index, Size: size}
	}
	return nil
}

// normalizeIndex accepts -size <= index < size and maps negative
// indices onto index+size.
func normalizeIndex(index, size int) (int, error) {
	if index < -size || index >= size {
		return 0, &IndexError{Index: index, Size: size}
	}
	if index < 0 {
		index += size
	}
	return index, nil
}

func getBit(buf []byte, index int) uint8 {
	return (buf[index>>3] >> (index & 7)) & 1
}

// setBit reports whether the bit actually changed.
func setBit(buf []byte, index int, value bool) bool {
	mask := byte(1) << (index & 7)
	old := buf[index>>3]&mask != 0
	if value {
		buf[index>>3] |= mask
	} else {
		buf[index>>3] &^= mask
	}
	return old != value
}

// flipBit reports the new value of the bit.
func flipBit(buf []byte, index int) bool {
	mask := byte(1) << (index & 7)
	buf[index>>3] ^= mask
	return buf[index>>3]&mask != 0
}

func clearPadding(buf []byte, size int) {
	if len(buf) > 0 {
		buf[len(buf)-1] &= tailMask(size)
	}
}

func hasDirtyPadding(buf []byte, size int) bool {
	return len(buf) > 0 && buf[len(buf)-1]&^tailMask(size) != 0
}

// flipAllBytes inverts the first size bits in place and returns the new
// population count.
func flipAllBytes(buf []byte, size int) int {
	for i := range buf {
		buf[i] = ^buf[i]
	}
	clearPadding(buf, size)
	return popCount(buf)
}

func popCount(buf []byte) int {
	count := 0
	for _, b := range buf {
		count += bits.OnesCount8(b)
	}
	return count
}

// toBigInt reads buf as a little-endian unsigned integer
func toBigInt(buf []byte) *big.Int {
	be := make([]byte, len(buf))
	for i, b := range buf {
		be[len(buf)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

func toUint64(buf []byte) (uint64, error) {
	var value uint64
	for i, b := range buf {
		if i >= 8 {
			if b != 0 {
				return 0, ErrOverflow
			}
			continue
		}
		value |= uint64(b) << (8 * i)
	}
	return value, nil
}

// binaryString renders bit size-1 first and bit 0 last
func binaryString(buf []byte, size int) string {
	str := make([]byte, size)
	for i, b := range buf {
		for j := 0; j < 8; j++ {
			index := i<<3 + j
			if index > size-1 {
				return string(str)
			}
			str[size-index-1] = '0' + (b>>j)&1
		}
	}
	return string(str)
}

func fingerprint(buf []byte, size int) uint64 {
	return metro.Hash64(buf, uint64(size))
}

func formatString(size int, buf []byte, nnz int) string {
	return fmt.Sprintf("Bitset: size=%d, buf=%v, non-zero=%d", size, buf, nnz)
}
