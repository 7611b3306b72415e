// Package bloom implements the timeseries-path bloom filter embedded in the
// TsFile footer.
//
// The filter is built over the fully-qualified "device.measurement" paths
// of every series written to the file. Bit and hash-function counts are
// derived from a target false-positive rate; the hash family is seeded
// 128-bit MurmurHash3 (x64 variant) with a fixed seed table, so a reader
// reconstructing the filter from the serialized bytes applies the same
// functions.
package bloom

import (
	"fmt"
	"math"

	"github.com/spaolacci/murmur3"

	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/varnum"
)

const (
	// MinErrorRate and MaxErrorRate clamp the configured false-positive rate.
	MinErrorRate = 0.01
	MaxErrorRate = 0.10

	// MinimalSize is the floor on the bit count.
	MinimalSize = 256

	// MaximalHashFunctionSize caps the number of hash functions.
	MaximalHashFunctionSize = 8
)

// seeds is the fixed seed table; the first k entries key the k hash
// functions. Readers rely on the same order.
var seeds = [MaximalHashFunctionSize]uint32{5, 7, 11, 19, 31, 37, 43, 59}

// Filter is a bloom filter over timeseries paths. The bitset is packed
// LSB-first within each byte: bit i lives at byte i/8, bit position i%8.
type Filter struct {
	size      int // bit count
	hashCount int
	bits      []byte
}

// New creates an empty filter with an explicit bit count and hash-function
// count. Most callers should use Build, which sizes the filter from an
// error rate.
func New(size, hashCount int) *Filter {
	return &Filter{
		size:      size,
		hashCount: hashCount,
		bits:      make([]byte, (size+7)/8),
	}
}

// Build creates a filter sized for the given path count and target error
// rate, then adds every path. The rate is clamped to
// [MinErrorRate, MaxErrorRate].
func Build(paths []string, errorRate float64) *Filter {
	f := empty(errorRate, len(paths))
	for _, p := range paths {
		f.Add(p)
	}

	return f
}

// empty derives the filter geometry from the target error rate p and the
// expected path count n: m = ceil(-n*ln(p)/ln(2)^2)+1 bits, floored at
// MinimalSize, and k = floor(-ln(p)/ln(2)+1) functions, capped at
// MaximalHashFunctionSize.
func empty(errorRate float64, n int) *Filter {
	p := math.Min(math.Max(errorRate, MinErrorRate), MaxErrorRate)

	size := int(math.Ceil(-float64(n)*math.Log(p)/math.Ln2/math.Ln2)) + 1
	hashCount := int(math.Floor(-math.Log(p)/math.Ln2 + 1))

	return New(max(size, MinimalSize), min(hashCount, MaximalHashFunctionSize))
}

// Add sets the k bits addressed by the path.
func (f *Filter) Add(path string) {
	for i := 0; i < f.hashCount; i++ {
		f.setBit(f.bitIndex(path, seeds[i]))
	}
}

// Contains reports whether every bit addressed by the path is set. False
// positives occur at roughly the configured error rate; false negatives
// never.
func (f *Filter) Contains(path string) bool {
	for i := 0; i < f.hashCount; i++ {
		if !f.bit(f.bitIndex(path, seeds[i])) {
			return false
		}
	}

	return true
}

// Size returns the bit count m.
func (f *Filter) Size() int {
	return f.size
}

// HashCount returns the number of hash functions k.
func (f *Filter) HashCount() int {
	return f.hashCount
}

func (f *Filter) bitIndex(path string, seed uint32) int {
	h1, _ := murmur3.Sum128WithSeed([]byte(path), seed)

	v := int64(h1) //nolint:gosec
	if v == math.MinInt64 {
		v = 0
	} else if v < 0 {
		v = -v
	}

	return int(v % int64(f.size))
}

func (f *Filter) setBit(i int) {
	f.bits[i/8] |= 1 << (i % 8)
}

func (f *Filter) bit(i int) bool {
	return f.bits[i/8]&(1<<(i%8)) != 0
}

// SerializedSize returns the byte length of the on-disk representation.
func (f *Filter) SerializedSize() int {
	return varnum.UvarintSize(uint32(len(f.bits))) + len(f.bits) + //nolint:gosec
		varnum.UvarintSize(uint32(f.size)) + varnum.UvarintSize(uint32(f.hashCount)) //nolint:gosec
}

// AppendTo appends the on-disk representation to dst: the packed bitset
// with a varuint byte-length prefix, then the bit count and hash-function
// count as varuints.
func (f *Filter) AppendTo(dst []byte) []byte {
	dst = varnum.AppendUvarint(dst, uint32(len(f.bits))) //nolint:gosec
	dst = append(dst, f.bits...)
	dst = varnum.AppendUvarint(dst, uint32(f.size))      //nolint:gosec
	dst = varnum.AppendUvarint(dst, uint32(f.hashCount)) //nolint:gosec

	return dst
}

// FromBytes parses a filter from the start of data, returning the filter
// and the number of bytes consumed. It is the reader-side inverse of
// AppendTo.
func FromBytes(data []byte) (*Filter, int, error) {
	byteLen, n := varnum.Uvarint(data)
	if n == 0 || int(byteLen) > len(data)-n {
		return nil, 0, fmt.Errorf("%w: truncated bitset", errs.ErrInvalidFilterData)
	}

	pos := n
	bits := make([]byte, byteLen)
	copy(bits, data[pos:pos+int(byteLen)])
	pos += int(byteLen)

	size, n := varnum.Uvarint(data[pos:])
	if n == 0 {
		return nil, 0, fmt.Errorf("%w: missing bit count", errs.ErrInvalidFilterData)
	}
	pos += n

	hashCount, n := varnum.Uvarint(data[pos:])
	if n == 0 {
		return nil, 0, fmt.Errorf("%w: missing hash function count", errs.ErrInvalidFilterData)
	}
	pos += n

	if (int(size)+7)/8 != int(byteLen) || hashCount > MaximalHashFunctionSize {
		return nil, 0, fmt.Errorf("%w: inconsistent geometry", errs.ErrInvalidFilterData)
	}

	return &Filter{
		size:      int(size),
		hashCount: int(hashCount),
		bits:      bits,
	}, pos, nil
}
