package bitvector

import (
	"math"
	"math/big"
	"reflect"
)

// ParseInit converts an untyped initial value into an Init. It accepts
// nil, an Init, any Go integer, a *big.Int, and slices or arrays whose
// elements are integers. Anything else fails with ErrInvalidValue.
func ParseInit(v interface{}) (Init, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Init:
		return x, nil
	case *big.Int:
		if x == nil {
			return nil, invalidValue("init_val must be an integer or a sequence of integers")
		}
		return FromBigInt(x), nil
	}
	if n, ok := asInteger(v); ok {
		return FromBigInt(n), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, invalidValue("init_val must be an integer or a sequence of integers")
	}
	positions := make([]int, rv.Len())
	for i := range positions {
		n, ok := asInteger(rv.Index(i).Interface())
		if !ok {
			return nil, invalidValue("sequence elements must be integers")
		}
		if !n.IsInt64() || n.Int64() < math.MinInt || n.Int64() > math.MaxInt {
			return nil, invalidValue("values must be between zero (inclusive) and size (exclusive)")
		}
		positions[i] = int(n.Int64())
	}
	return FromBitPositions(positions...), nil
}

// ParseIndex converts an untyped index into an int. Only integers are accepted.
func ParseIndex(v interface{}) (int, error) {
	n, ok := asInteger(v)
	if !ok {
		return 0, invalidValue("index accepts only integer values, got %T", v)
	}
	if !n.IsInt64() || n.Int64() < math.MinInt || n.Int64() > math.MaxInt {
		return 0, invalidValue("index %s doesn't fit in an int", n)
	}
	return int(n.Int64()), nil
}

// ParseBit converts an untyped numeric value into a bit. Zero clears,
// everything else sets; floats are truncated toward zero first.
func ParseBit(v interface{}) (bool, error) {
	switch x := v.(type) {
	case float32:
		return math.Trunc(float64(x)) != 0, nil
	case float64:
		return math.Trunc(x) != 0, nil
	}
	n, ok := asInteger(v)
	if !ok {
		return false, invalidValue("set accepts only numeric values, got %T", v)
	}
	return n.Sign() != 0, nil
}

func asInteger(v interface{}) (*big.Int, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	case int:
		return big.NewInt(int64(x)), true
	case int8:
		return big.NewInt(int64(x)), true
	case int16:
		return big.NewInt(int64(x)), true
	case int32:
		return big.NewInt(int64(x)), true
	case int64:
		return big.NewInt(x), true
	case uint:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint64:
		return new(big.Int).SetUint64(x), true
	case *big.Int:
		return x, x != nil
	}
	return nil, false
}
