// Package varnum implements the variable-length integer codecs of the
// TsFile format.
//
// Unsigned values use LEB128: seven bits per byte, low-order group first,
// with the high bit set on every byte except the last. Signed values are
// zig-zag mapped ((n << 1) ^ (n >> 31)) before unsigned emission. All
// length prefixes in the format are the unsigned form; string lengths are
// the signed form.
//
// The codec is bounded to 32-bit values: every length and string size in
// the format fits, and the encoded width is at most MaxUvarintLen32 bytes.
package varnum

import (
	"github.com/dennwc/varint"
)

// MaxUvarintLen32 is the maximum encoded length of a 32-bit varuint.
const MaxUvarintLen32 = 5

// AppendUvarint appends the LEB128 encoding of v to dst and returns the
// extended slice.
func AppendUvarint(dst []byte, v uint32) []byte {
	for (v & 0xFFFFFF80) != 0 {
		dst = append(dst, byte(v&0x7F|0x80))
		v >>= 7
	}

	return append(dst, byte(v&0x7F))
}

// UvarintSize returns the encoded length of v in bytes, in [1, MaxUvarintLen32].
func UvarintSize(v uint32) int {
	return varint.UvarintSize(uint64(v))
}

// Uvarint decodes a varuint from the start of b. It returns the value and
// the number of bytes consumed; n == 0 indicates truncated or oversized
// input.
func Uvarint(b []byte) (uint32, int) {
	u, n := varint.Uvarint(b)
	if n <= 0 || u > 0xFFFFFFFF {
		return 0, 0
	}

	return uint32(u), n
}

// ZigZag maps a signed 32-bit value onto the unsigned domain so that small
// magnitudes of either sign encode short.
func ZigZag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31)) //nolint:gosec
}

// UnZigZag inverts ZigZag.
func UnZigZag(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1) //nolint:gosec
}

// AppendVarint appends the zig-zag LEB128 encoding of v to dst.
func AppendVarint(dst []byte, v int32) []byte {
	return AppendUvarint(dst, ZigZag(v))
}

// VarintSize returns the encoded length of the zig-zag form of v.
func VarintSize(v int32) int {
	return UvarintSize(ZigZag(v))
}

// Varint decodes a zig-zag varint from the start of b.
func Varint(b []byte) (int32, int) {
	u, n := Uvarint(b)
	if n == 0 {
		return 0, 0
	}

	return UnZigZag(u), n
}

// AppendString appends the format's string framing: the UTF-8 byte length
// as a zig-zag varint followed by the bytes.
func AppendString(dst []byte, s string) []byte {
	dst = AppendVarint(dst, int32(len(s))) //nolint:gosec

	return append(dst, s...)
}

// StringSize returns the serialized length of s under AppendString framing.
func StringSize(s string) int {
	return VarintSize(int32(len(s))) + len(s) //nolint:gosec
}

// String decodes a framed string from the start of b. It returns the string
// and the number of bytes consumed; n == 0 indicates malformed input.
func String(b []byte) (string, int) {
	l, n := Varint(b)
	if n == 0 || l < 0 || int(l) > len(b)-n {
		return "", 0
	}

	return string(b[n : n+int(l)]), n + int(l)
}
