// Package stats maintains the per-chunk running aggregates of the TsFile
// writer.
//
// Statistics is a tagged variant indexed by the column's data type: integer
// columns keep their extremes in 64-bit integer slots, floating-point
// columns in 64-bit float slots, and the serialization switches on the tag
// to restore the exact on-disk widths. The sum is a float64 for every
// numeric kind.
package stats

import (
	"fmt"
	"math"

	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
)

// Statistics accumulates count, time bounds, value extremes, first/last
// values and the running sum of one column.
//
// Update applies one sample in the fixed ordering: first value and start
// time are captured on the first sample, last value and end time on every
// sample, extremes by comparison, then the sum and the count. Merge
// combines the aggregates of two disjoint sample runs of the same type.
type Statistics struct {
	dataType  format.DataType
	count     int64
	startTime int64
	endTime   int64

	// Integer kinds use the i-slots, floating-point kinds the f-slots.
	minI, maxI, firstI, lastI int64
	minF, maxF, firstF, lastF float64

	sum float64
}

// New creates empty statistics for the given column type. Reserved types
// fail with ErrUnsupportedDataType.
func New(dataType format.DataType) (*Statistics, error) {
	switch dataType {
	case format.TypeInt32, format.TypeInt64, format.TypeFloat, format.TypeDouble:
		return &Statistics{dataType: dataType}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedDataType, dataType.String())
	}
}

// DataType returns the column type the statistics are tagged with.
func (s *Statistics) DataType() format.DataType {
	return s.dataType
}

// Count returns the number of samples applied.
func (s *Statistics) Count() int64 {
	return s.count
}

// StartTime returns the timestamp of the first sample.
func (s *Statistics) StartTime() int64 {
	return s.startTime
}

// EndTime returns the timestamp of the last sample.
func (s *Statistics) EndTime() int64 {
	return s.endTime
}

// Sum returns the running sum as a float64.
func (s *Statistics) Sum() float64 {
	return s.sum
}

// Min returns the minimum value seen, as a tagged Value.
func (s *Statistics) Min() format.Value {
	return s.value(s.minI, s.minF)
}

// Max returns the maximum value seen, as a tagged Value.
func (s *Statistics) Max() format.Value {
	return s.value(s.maxI, s.maxF)
}

// First returns the first value applied, as a tagged Value.
func (s *Statistics) First() format.Value {
	return s.value(s.firstI, s.firstF)
}

// Last returns the last value applied, as a tagged Value.
func (s *Statistics) Last() format.Value {
	return s.value(s.lastI, s.lastF)
}

func (s *Statistics) value(i int64, f float64) format.Value {
	switch s.dataType {
	case format.TypeInt32:
		return format.Int32Value(int32(i)) //nolint:gosec
	case format.TypeInt64:
		return format.Int64Value(i)
	case format.TypeFloat:
		return format.FloatValue(float32(f))
	default:
		return format.DoubleValue(f)
	}
}

// Update applies one sample. The value's variant must match the statistics'
// tag; a mismatch fails with ErrTypeMismatch and leaves the state unchanged.
func (s *Statistics) Update(ts int64, v format.Value) error {
	if v.DataType() != s.dataType {
		return fmt.Errorf("%w: statistics hold %s, got %s", errs.ErrTypeMismatch, s.dataType.String(), v.DataType().String())
	}

	switch s.dataType {
	case format.TypeInt32:
		s.updateInt(ts, int64(v.Int32()))
	case format.TypeInt64:
		s.updateInt(ts, v.Int64())
	case format.TypeFloat:
		s.updateFloat(ts, float64(v.Float()))
	case format.TypeDouble:
		s.updateFloat(ts, v.Double())
	}

	return nil
}

func (s *Statistics) updateInt(ts int64, v int64) {
	if s.count == 0 {
		s.firstI = v
		s.startTime = ts
		s.minI = v
		s.maxI = v
	}

	s.lastI = v
	s.endTime = ts

	if v < s.minI {
		s.minI = v
	}
	if v > s.maxI {
		s.maxI = v
	}

	s.sum += float64(v)
	s.count++
}

func (s *Statistics) updateFloat(ts int64, v float64) {
	if s.count == 0 {
		s.firstF = v
		s.startTime = ts
		s.minF = v
		s.maxF = v
	}

	s.lastF = v
	s.endTime = ts

	if v < s.minF {
		s.minF = v
	}
	if v > s.maxF {
		s.maxF = v
	}

	s.sum += v
	s.count++
}

// Merge combines the aggregates of another run into s. The runs must cover
// disjoint time ranges of the same column type: counts and sums add, the
// first/start pair comes from the earlier-starting operand, the last/end
// pair from the later-ending one, and extremes combine pairwise.
func (s *Statistics) Merge(other *Statistics) error {
	if other.dataType != s.dataType {
		return fmt.Errorf("%w: cannot merge %s statistics into %s", errs.ErrTypeMismatch, other.dataType.String(), s.dataType.String())
	}

	if other.count == 0 {
		return nil
	}

	if s.count == 0 {
		*s = *other
		return nil
	}

	if other.startTime < s.startTime {
		s.startTime = other.startTime
		s.firstI = other.firstI
		s.firstF = other.firstF
	}

	if other.endTime > s.endTime {
		s.endTime = other.endTime
		s.lastI = other.lastI
		s.lastF = other.lastF
	}

	if other.minI < s.minI {
		s.minI = other.minI
	}
	if other.maxI > s.maxI {
		s.maxI = other.maxI
	}
	if other.minF < s.minF {
		s.minF = other.minF
	}
	if other.maxF > s.maxF {
		s.maxF = other.maxF
	}

	s.sum += other.sum
	s.count += other.count

	return nil
}

// Clone returns an independent copy.
func (s *Statistics) Clone() *Statistics {
	c := *s
	return &c
}

// SerializedSize returns the byte length of the on-disk representation:
// three 8-byte time/count fields, four fixed-width extremes, and the 8-byte
// sum.
func (s *Statistics) SerializedSize() int {
	return 3*8 + 4*s.dataType.ValueWidth() + 8
}

// AppendTo appends the on-disk representation to dst: count, start time and
// end time as int64 big-endian, then min, max, first and last fixed-width
// big-endian in the column type's width, then the sum as a float64.
func (s *Statistics) AppendTo(dst []byte) []byte {
	engine := endian.GetBigEndianEngine()

	dst = engine.AppendUint64(dst, uint64(s.count))     //nolint:gosec
	dst = engine.AppendUint64(dst, uint64(s.startTime)) //nolint:gosec
	dst = engine.AppendUint64(dst, uint64(s.endTime))   //nolint:gosec

	switch s.dataType {
	case format.TypeInt32:
		for _, v := range [4]int64{s.minI, s.maxI, s.firstI, s.lastI} {
			dst = engine.AppendUint32(dst, uint32(int32(v))) //nolint:gosec
		}
	case format.TypeInt64:
		for _, v := range [4]int64{s.minI, s.maxI, s.firstI, s.lastI} {
			dst = engine.AppendUint64(dst, uint64(v)) //nolint:gosec
		}
	case format.TypeFloat:
		for _, v := range [4]float64{s.minF, s.maxF, s.firstF, s.lastF} {
			dst = engine.AppendUint32(dst, math.Float32bits(float32(v)))
		}
	case format.TypeDouble:
		for _, v := range [4]float64{s.minF, s.maxF, s.firstF, s.lastF} {
			dst = engine.AppendUint64(dst, math.Float64bits(v))
		}
	}

	return engine.AppendUint64(dst, math.Float64bits(s.sum))
}
