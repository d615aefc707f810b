package record

import (
	"math"

	"github.com/BlueZeeKing/allwpilib/internal/encoding"
)

// Array payloads below always encode element by element through
// encoding.EncodeFixed32/64, which writes explicit little-endian bytes.
// This is the byte-swap-safe path the spec requires on big-endian hosts;
// unlike a bulk unsafe cast of the slice's backing array, it is correct on
// every GOARCH, so there is no separate little-endian fast path to choose
// between.

// EncodeBoolean returns the 1-byte payload for a boolean value.
func EncodeBoolean(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// EncodeInteger returns the 8-byte little-endian payload for a signed
// 64-bit integer.
func EncodeInteger(v int64) []byte {
	buf := make([]byte, 8)
	encoding.EncodeFixed64(buf, uint64(v))
	return buf
}

// EncodeFloat returns the 4-byte little-endian IEEE 754 payload for a
// float32.
func EncodeFloat(v float32) []byte {
	buf := make([]byte, 4)
	encoding.EncodeFixed32(buf, math.Float32bits(v))
	return buf
}

// EncodeDouble returns the 8-byte little-endian IEEE 754 payload for a
// float64.
func EncodeDouble(v float64) []byte {
	buf := make([]byte, 8)
	encoding.EncodeFixed64(buf, math.Float64bits(v))
	return buf
}

// EncodeBooleanArray returns the N-byte payload for a []bool, one byte per
// element.
func EncodeBooleanArray(v []bool) []byte {
	buf := make([]byte, len(v))
	for i, b := range v {
		if b {
			buf[i] = 1
		}
	}
	return buf
}

// EncodeIntegerArray returns the 8N-byte little-endian payload for a
// []int64.
func EncodeIntegerArray(v []int64) []byte {
	buf := make([]byte, 8*len(v))
	for i, x := range v {
		encoding.EncodeFixed64(buf[8*i:], uint64(x))
	}
	return buf
}

// EncodeFloatArray returns the 4N-byte little-endian payload for a
// []float32.
func EncodeFloatArray(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		encoding.EncodeFixed32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

// EncodeDoubleArray returns the 8N-byte little-endian payload for a
// []float64.
func EncodeDoubleArray(v []float64) []byte {
	buf := make([]byte, 8*len(v))
	for i, x := range v {
		encoding.EncodeFixed64(buf[8*i:], math.Float64bits(x))
	}
	return buf
}

// EncodeStringArray returns the payload for a []string: a little-endian
// u32 count followed by, for each element, a little-endian u32 byte length
// and the UTF-8 bytes.
func EncodeStringArray(v []string) []byte {
	size := 4
	for _, s := range v {
		size += 4 + len(s)
	}
	buf := make([]byte, 0, size)
	buf = encoding.AppendFixed32(buf, uint32(len(v)))
	for _, s := range v {
		buf = encoding.AppendFixed32(buf, uint32(len(s)))
		buf = append(buf, s...)
	}
	return buf
}
