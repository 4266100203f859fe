package wasmfn

import (
	"math"

	"github.com/tetratelabs/wazero/api"
)

const twoTo32 = 1 << 32

// numeric reports whether every type in types is a number type.
func numeric(types []api.ValueType) bool {
	for _, t := range types {
		switch t {
		case api.ValueTypeI32, api.ValueTypeI64, api.ValueTypeF32, api.ValueTypeF64:
		default:
			return false
		}
	}
	return true
}

// encode converts a runtime number to the stack representation of t.
// Integers truncate toward zero; i32 wraps modulo 2^32 and non-finite
// values become 0.
func encode(t api.ValueType, f float64) uint64 {
	switch t {
	case api.ValueTypeI32:
		return api.EncodeI32(toInt32(f))
	case api.ValueTypeI64:
		return api.EncodeI64(toInt64(f))
	case api.ValueTypeF32:
		return api.EncodeF32(float32(f))
	default:
		return api.EncodeF64(f)
	}
}

// decode converts a stack value of type t to a runtime number. Integers are
// read as signed.
func decode(t api.ValueType, v uint64) float64 {
	switch t {
	case api.ValueTypeI32:
		return float64(api.DecodeI32(v))
	case api.ValueTypeI64:
		return float64(int64(v))
	case api.ValueTypeF32:
		return float64(api.DecodeF32(v))
	default:
		return api.DecodeF64(v)
	}
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), twoTo32)
	if m < 0 {
		m += twoTo32
	}
	return int32(uint32(m))
}

func toInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
