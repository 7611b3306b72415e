package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
)

func int32Stats(t *testing.T, samples ...[2]int64) *Statistics {
	t.Helper()

	s, err := New(format.TypeInt32)
	require.NoError(t, err)

	for _, sample := range samples {
		require.NoError(t, s.Update(sample[0], format.Int32Value(int32(sample[1]))))
	}

	return s
}

func TestNew_ReservedType(t *testing.T) {
	_, err := New(format.TypeText)
	require.ErrorIs(t, err, errs.ErrUnsupportedDataType)
}

func TestStatistics_Update(t *testing.T) {
	s := int32Stats(t, [2]int64{1, 13}, [2]int64{10, 14}, [2]int64{100, 15})

	require.Equal(t, int64(3), s.Count())
	require.Equal(t, int64(1), s.StartTime())
	require.Equal(t, int64(100), s.EndTime())
	require.Equal(t, int32(13), s.Min().Int32())
	require.Equal(t, int32(15), s.Max().Int32())
	require.Equal(t, int32(13), s.First().Int32())
	require.Equal(t, int32(15), s.Last().Int32())
	require.Equal(t, 42.0, s.Sum())
}

func TestStatistics_Update_SingleSample(t *testing.T) {
	s, err := New(format.TypeFloat)
	require.NoError(t, err)
	require.NoError(t, s.Update(1, format.FloatValue(15.0)))

	require.Equal(t, int64(1), s.Count())
	require.Equal(t, int64(1), s.StartTime())
	require.Equal(t, int64(1), s.EndTime())
	require.Equal(t, float32(15.0), s.Min().Float())
	require.Equal(t, float32(15.0), s.Max().Float())
	require.Equal(t, float32(15.0), s.First().Float())
	require.Equal(t, float32(15.0), s.Last().Float())
	require.Equal(t, 15.0, s.Sum())
}

func TestStatistics_Update_TypeMismatch(t *testing.T) {
	s, err := New(format.TypeInt32)
	require.NoError(t, err)

	require.ErrorIs(t, s.Update(1, format.FloatValue(1.0)), errs.ErrTypeMismatch)
	require.Zero(t, s.Count())
}

func TestStatistics_Update_NegativeValues(t *testing.T) {
	s, err := New(format.TypeInt64)
	require.NoError(t, err)
	require.NoError(t, s.Update(1, format.Int64Value(-5)))
	require.NoError(t, s.Update(2, format.Int64Value(3)))

	require.Equal(t, int64(-5), s.Min().Int64())
	require.Equal(t, int64(3), s.Max().Int64())
	require.Equal(t, -2.0, s.Sum())
}

func TestStatistics_Merge(t *testing.T) {
	a := int32Stats(t, [2]int64{1, 13}, [2]int64{10, 14})
	b := int32Stats(t, [2]int64{100, 15})

	merged := a.Clone()
	require.NoError(t, merged.Merge(b))

	require.Equal(t, int64(3), merged.Count())
	require.Equal(t, int64(1), merged.StartTime())
	require.Equal(t, int64(100), merged.EndTime())
	require.Equal(t, int32(13), merged.First().Int32())
	require.Equal(t, int32(15), merged.Last().Int32())
	require.Equal(t, 42.0, merged.Sum())
}

func TestStatistics_Merge_Commutative(t *testing.T) {
	a := int32Stats(t, [2]int64{1, 20}, [2]int64{5, 10})
	b := int32Stats(t, [2]int64{50, 7}, [2]int64{60, 30})

	ab := a.Clone()
	require.NoError(t, ab.Merge(b))

	ba := b.Clone()
	require.NoError(t, ba.Merge(a))

	require.Equal(t, ab.AppendTo(nil), ba.AppendTo(nil))
}

func TestStatistics_Merge_Associative(t *testing.T) {
	a := int32Stats(t, [2]int64{1, 5})
	b := int32Stats(t, [2]int64{10, -3}, [2]int64{20, 8})
	c := int32Stats(t, [2]int64{30, 100})

	left := a.Clone()
	require.NoError(t, left.Merge(b))
	require.NoError(t, left.Merge(c))

	bc := b.Clone()
	require.NoError(t, bc.Merge(c))
	right := a.Clone()
	require.NoError(t, right.Merge(bc))

	require.Equal(t, left.AppendTo(nil), right.AppendTo(nil))
}

func TestStatistics_Merge_Empty(t *testing.T) {
	a := int32Stats(t, [2]int64{1, 13})
	empty, err := New(format.TypeInt32)
	require.NoError(t, err)

	merged := a.Clone()
	require.NoError(t, merged.Merge(empty))
	require.Equal(t, a.AppendTo(nil), merged.AppendTo(nil))

	intoEmpty := empty.Clone()
	require.NoError(t, intoEmpty.Merge(a))
	require.Equal(t, a.AppendTo(nil), intoEmpty.AppendTo(nil))
}

func TestStatistics_Merge_TypeMismatch(t *testing.T) {
	a, err := New(format.TypeInt32)
	require.NoError(t, err)
	b, err := New(format.TypeInt64)
	require.NoError(t, err)

	require.ErrorIs(t, a.Merge(b), errs.ErrTypeMismatch)
}

func TestStatistics_AppendTo_Int32(t *testing.T) {
	s := int32Stats(t, [2]int64{1, 13}, [2]int64{10, 14}, [2]int64{100, 15})

	require.Equal(t, 48, s.SerializedSize())
	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, // count
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, // start time
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64, // end time
		0x00, 0x00, 0x00, 0x0D, // min
		0x00, 0x00, 0x00, 0x0F, // max
		0x00, 0x00, 0x00, 0x0D, // first
		0x00, 0x00, 0x00, 0x0F, // last
		0x40, 0x45, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // sum = 42.0
	}, s.AppendTo(nil))
}

func TestStatistics_AppendTo_Widths(t *testing.T) {
	for _, tc := range []struct {
		dataType format.DataType
		size     int
	}{
		{format.TypeInt32, 48},
		{format.TypeInt64, 64},
		{format.TypeFloat, 48},
		{format.TypeDouble, 64},
	} {
		s, err := New(tc.dataType)
		require.NoError(t, err)
		require.Equal(t, tc.size, s.SerializedSize(), tc.dataType.String())
		require.Len(t, s.AppendTo(nil), tc.size, tc.dataType.String())
	}
}

func TestStatistics_Clone_Independent(t *testing.T) {
	s := int32Stats(t, [2]int64{1, 13})
	c := s.Clone()

	require.NoError(t, s.Update(2, format.Int32Value(99)))
	require.Equal(t, int64(1), c.Count())
	require.Equal(t, int32(13), c.Max().Int32())
}
