package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
)

func TestTimestampPlainEncoder(t *testing.T) {
	enc := NewTimestampPlainEncoder(endian.GetBigEndianEngine())
	defer enc.Finish()

	enc.Write(1)
	enc.Write(10)
	enc.Write(100)

	require.Equal(t, 3, enc.Count())
	require.Equal(t, 24, enc.Size())
	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64,
	}, enc.Bytes())
}

func TestTimestampPlainEncoder_Negative(t *testing.T) {
	enc := NewTimestampPlainEncoder(endian.GetBigEndianEngine())
	defer enc.Finish()

	enc.Write(-1)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, enc.Bytes())
}

func TestInt32PlainEncoder(t *testing.T) {
	enc, err := NewValueEncoder(format.TypeInt32, format.EncodingPlain, endian.GetBigEndianEngine())
	require.NoError(t, err)
	defer enc.Finish()

	enc.Write(format.Int32Value(13))
	enc.Write(format.Int32Value(-1))

	require.Equal(t, 2, enc.Count())
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x0D, 0xFF, 0xFF, 0xFF, 0xFF}, enc.Bytes())
}

func TestInt64PlainEncoder(t *testing.T) {
	enc, err := NewValueEncoder(format.TypeInt64, format.EncodingPlain, endian.GetBigEndianEngine())
	require.NoError(t, err)
	defer enc.Finish()

	enc.Write(format.Int64Value(14))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0E}, enc.Bytes())
}

func TestFloatPlainEncoder(t *testing.T) {
	enc, err := NewValueEncoder(format.TypeFloat, format.EncodingPlain, endian.GetBigEndianEngine())
	require.NoError(t, err)
	defer enc.Finish()

	// 15.0f == 0x41700000
	enc.Write(format.FloatValue(15.0))
	require.Equal(t, []byte{0x41, 0x70, 0x00, 0x00}, enc.Bytes())
}

func TestDoublePlainEncoder(t *testing.T) {
	enc, err := NewValueEncoder(format.TypeDouble, format.EncodingPlain, endian.GetBigEndianEngine())
	require.NoError(t, err)
	defer enc.Finish()

	// 42.0 == 0x4045000000000000
	enc.Write(format.DoubleValue(42.0))
	require.Equal(t, []byte{0x40, 0x45, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, enc.Bytes())
}

func TestValueEncoder_Reset(t *testing.T) {
	enc, err := NewValueEncoder(format.TypeInt32, format.EncodingPlain, endian.GetBigEndianEngine())
	require.NoError(t, err)
	defer enc.Finish()

	enc.Write(format.Int32Value(1))
	enc.Reset()
	require.Zero(t, enc.Count())
	require.Zero(t, enc.Size())
}

func TestNewValueEncoder_ReservedTags(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	_, err := NewValueEncoder(format.TypeInt32, format.EncodingGorilla, engine)
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)

	_, err = NewValueEncoder(format.TypeText, format.EncodingPlain, engine)
	require.ErrorIs(t, err, errs.ErrUnsupportedDataType)
}
