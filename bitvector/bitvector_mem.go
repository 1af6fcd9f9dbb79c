package bitvector

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/big"
)

// BitVectorMem is the in-memory implementation of IBitVector.
// buf holds the packed bits, size the number of addressable bits and
// nnz the number of set bits. A BitVectorMem is not safe for concurrent
// use; callers mutating it from several goroutines must serialize access.
type BitVectorMem struct {
	buf  []byte
	size int
	nnz  int
}

// NewBitVectorMem creates a BitVectorMem of size bits initialized
// from initVal, which may be nil.
func NewBitVectorMem(size int, initVal Init) (*BitVectorMem, error) {
	buf, err := newBuffer(size, initVal)
	if err != nil {
		return nil, err
	}
	return &BitVectorMem{buf: buf, size: size, nnz: popCount(buf)}, nil
}

// FromExport creates a BitVectorMem from the output of Export
func FromExport(data []byte) (*BitVectorMem, error) {
	size, buf, err := unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &BitVectorMem{buf: buf, size: size, nnz: popCount(buf)}, nil
}

func (bitVector *BitVectorMem) Size() int {
	return bitVector.size
}

func (bitVector *BitVectorMem) Get(index int) (uint8, error) {
	if err := checkIndex(index, bitVector.size); err != nil {
		return 0, err
	}
	return getBit(bitVector.buf, index), nil
}

func (bitVector *BitVectorMem) Contains(index int) (bool, error) {
	bit, err := bitVector.Get(index)
	return bit == 1, err
}

func (bitVector *BitVectorMem) Set(index int, value bool) error {
	if err := checkIndex(index, bitVector.size); err != nil {
		return err
	}
	if setBit(bitVector.buf, index, value) {
		if value {
			bitVector.nnz++
		} else {
			bitVector.nnz--
		}
	}
	return nil
}

// HasMulti returns the bits at the queried indexes
func (bitVector *BitVectorMem) HasMulti(indexes []int) ([]bool, error) {
	if len(indexes) == 0 {
		return nil, invalidValue("at least 1 index is required")
	}
	result := make([]bool, len(indexes))
	for i, index := range indexes {
		ok, err := bitVector.Contains(index)
		if err != nil {
			return nil, err
		}
		result[i] = ok
	}
	return result, nil
}

// SetMulti sets the bits at indexes. No bit changes if any index is invalid.
func (bitVector *BitVectorMem) SetMulti(indexes []int) error {
	if len(indexes) == 0 {
		return invalidValue("at least 1 index is required")
	}
	for _, index := range indexes {
		if err := checkIndex(index, bitVector.size); err != nil {
			return err
		}
	}
	for _, index := range indexes {
		if setBit(bitVector.buf, index, true) {
			bitVector.nnz++
		}
	}
	return nil
}

func (bitVector *BitVectorMem) FlipOne(index int) error {
	index, err := normalizeIndex(index, bitVector.size)
	if err != nil {
		return err
	}
	if flipBit(bitVector.buf, index) {
		bitVector.nnz++
	} else {
		bitVector.nnz--
	}
	return nil
}

func (bitVector *BitVectorMem) FlipAll() error {
	bitVector.nnz = flipAllBytes(bitVector.buf, bitVector.size)
	return nil
}

func (bitVector *BitVectorMem) BitCount() (int, error) {
	return bitVector.nnz, nil
}

func (bitVector *BitVectorMem) ToInteger() (*big.Int, error) {
	return toBigInt(bitVector.buf), nil
}

func (bitVector *BitVectorMem) Uint64() (uint64, error) {
	return toUint64(bitVector.buf)
}

func (bitVector *BitVectorMem) BinaryString() (string, error) {
	return binaryString(bitVector.buf, bitVector.size), nil
}

func (bitVector *BitVectorMem) Bytes() ([]byte, error) {
	return bytes.Clone(bitVector.buf), nil
}

func (bitVector *BitVectorMem) Fingerprint() (uint64, error) {
	return fingerprint(bitVector.buf, bitVector.size), nil
}

// Equals checks if bitVector and other hold the same bits. other may be
// of any backend.
func (bitVector *BitVectorMem) Equals(other IBitVector) (bool, error) {
	if other == nil || bitVector.size != other.Size() {
		return false, nil
	}
	otherBytes, err := other.Bytes()
	if err != nil {
		return false, err
	}
	return bytes.Equal(bitVector.buf, otherBytes), nil
}

// Export returns the json marshalling of the vector
func (bitVector *BitVectorMem) Export() (int, []byte, error) {
	data, err := marshal(bitVector.size, bitVector.buf)
	if err != nil {
		return 0, nil, err
	}
	return bitVector.size, data, nil
}

// Import replaces the bits of the vector with the json produced by Export.
// The exported size must match the size of the vector.
func (bitVector *BitVectorMem) Import(data []byte) (bool, error) {
	size, buf, err := unmarshal(data)
	if err != nil {
		return false, err
	}
	if size != bitVector.size {
		return false, invalidData("size %d doesn't match vector size %d", size, bitVector.size)
	}
	bitVector.buf = buf
	bitVector.nnz = popCount(buf)
	return true, nil
}

// WriteTo writes the vector to a stream and returns the number of bytes written
func (bitVector *BitVectorMem) WriteTo(stream io.Writer) (int64, error) {
	err := binary.Write(stream, binary.BigEndian, uint64(bitVector.size))
	if err != nil {
		return 0, err
	}
	n, err := stream.Write(bitVector.buf)
	if err != nil {
		return int64(headerBytes + n), err
	}
	return int64(headerBytes + n), nil
}

// ReadFrom reads a vector written by WriteTo and returns the number of
// bytes read. The stored size must match the size of the vector.
func (bitVector *BitVectorMem) ReadFrom(stream io.Reader) (int64, error) {
	var size uint64
	err := binary.Read(stream, binary.BigEndian, &size)
	if err != nil {
		return 0, err
	}
	if size != uint64(bitVector.size) {
		return headerBytes, invalidData("size %d doesn't match vector size %d", size, bitVector.size)
	}
	buf := make([]byte, byteLen(bitVector.size))
	n, err := io.ReadFull(stream, buf)
	if err != nil {
		return int64(headerBytes + n), err
	}
	if hasDirtyPadding(buf, bitVector.size) {
		return int64(headerBytes + n), invalidData("padding bits past size %d are set", bitVector.size)
	}
	bitVector.buf = buf
	bitVector.nnz = popCount(buf)
	return int64(headerBytes + n), nil
}

func (bitVector *BitVectorMem) String() string {
	return formatString(bitVector.size, bitVector.buf, bitVector.nnz)
}
