/*
Package bitvector implements fixed-size bit vectors, both in-memory and redis.

A bit vector of size n addresses the bits 0..n-1, packed least significant
bit first into ceil(n/8) bytes. BitVectorMem keeps the bytes in process;
BitVectorRedis keeps the identical byte layout in a redis string so both
backends export, fingerprint and compare the same way.
*/
package bitvector

import "math/big"

type IBitVector interface {
	// Size returns the number of addressable bits
	Size() int

	// Get returns the bit at index as 0 or 1
	Get(index int) (uint8, error)

	// Contains reports whether the bit at index is set
	Contains(index int) (bool, error)

	// Set sets or clears the bit at index
	Set(index int, value bool) error

	// FlipOne toggles the bit at index. Negative indices count from the end.
	FlipOne(index int) error

	// FlipAll toggles every bit
	FlipAll() error

	// BitCount returns the number of set bits
	BitCount() (int, error)

	// ToInteger returns the vector read as a little-endian unsigned integer
	ToInteger() (*big.Int, error)

	// Uint64 is ToInteger for vectors whose value fits in 64 bits
	Uint64() (uint64, error)

	// BinaryString returns size '0'/'1' characters, highest bit first
	BinaryString() (string, error)

	// Bytes returns a copy of the packed bytes
	Bytes() ([]byte, error)

	// Fingerprint returns a hash of the size and the packed bytes
	Fingerprint() (uint64, error)

	// Equals checks if two bit vectors have the same size and bits
	Equals(other IBitVector) (bool, error)

	// Export returns the size and the json marshalling of the vector
	Export() (int, []byte, error)

	// Import replaces the bits with the json produced by Export
	Import(data []byte) (bool, error)

	String() string
}

// IsBitVectorMem is used to check if the passed variable t
// is of type *BitVectorMem or not
func IsBitVectorMem(t interface{}) bool {
	_, ok := t.(*BitVectorMem)
	return ok
}
