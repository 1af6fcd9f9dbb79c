package bitvector

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is wrapped by every *IndexError.
	ErrIndexOutOfRange = errors.New("bitvec: invalid index")

	// ErrInvalidValue is returned for arguments of the wrong shape or
	// outside their permitted range.
	ErrInvalidValue = errors.New("bitvec: invalid value")

	// ErrOverflow is returned by Uint64 when the vector doesn't fit in 64 bits.
	ErrOverflow = errors.New("bitvec: value overflows uint64")

	// ErrInvalidData is returned when serialized or stored data doesn't
	// describe a valid bit vector.
	ErrInvalidData = errors.New("bitvec: invalid bit vector data")
)

// IndexError reports an index outside the addressable range of a vector.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bitvec: invalid index %d for size %d", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func invalidValue(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}

func invalidData(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, fmt.Sprintf(format, args...))
}
