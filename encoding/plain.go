// Package encoding implements the column encoders of the TsFile writer.
//
// An encoder buffers one page's worth of a single column. Encoded bytes
// carry no length prefix; the page writer frames the columns itself.
// Encoders are stateless across chunks: one instance serves one open page
// and is released when the chunk is serialized.
//
// Only the PLAIN family is implemented: every value is stored fixed-width
// in the byte order of the supplied endian engine (big-endian on the wire).
// The remaining encoding tags are reserved and rejected by the factory.
package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
	"github.com/arloliu/tsfile/internal/pool"
)

// ValueEncoder is the contract shared by all value-column encoders.
//
// Write appends one value to the internal buffer; the value's variant has
// already been checked against the column type by the chunk writer. Bytes
// exposes the encoded column and stays valid until the next Write, Reset or
// Finish. Finish releases the internal buffer; the encoder must not be used
// afterwards.
type ValueEncoder interface {
	Write(v format.Value)
	Bytes() []byte
	Size() int
	Count() int
	Reset()
	Finish()
}

// NewValueEncoder creates the value encoder for the given column type and
// encoding tag. Reserved encoding tags fail with ErrUnsupportedEncoding;
// reserved data types with ErrUnsupportedDataType.
func NewValueEncoder(dataType format.DataType, enc format.Encoding, engine endian.EndianEngine) (ValueEncoder, error) {
	if enc != format.EncodingPlain {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, enc.String())
	}

	switch dataType {
	case format.TypeInt32:
		return &Int32PlainEncoder{plainEncoder: newPlainEncoder(engine)}, nil
	case format.TypeInt64:
		return &Int64PlainEncoder{plainEncoder: newPlainEncoder(engine)}, nil
	case format.TypeFloat:
		return &FloatPlainEncoder{plainEncoder: newPlainEncoder(engine)}, nil
	case format.TypeDouble:
		return &DoublePlainEncoder{plainEncoder: newPlainEncoder(engine)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedDataType, dataType.String())
	}
}

var (
	_ ValueEncoder = (*Int32PlainEncoder)(nil)
	_ ValueEncoder = (*Int64PlainEncoder)(nil)
	_ ValueEncoder = (*FloatPlainEncoder)(nil)
	_ ValueEncoder = (*DoublePlainEncoder)(nil)
)

// plainEncoder carries the buffer bookkeeping shared by the fixed-width
// encoders.
type plainEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

func newPlainEncoder(engine endian.EndianEngine) plainEncoder {
	return plainEncoder{
		engine: engine,
		buf:    pool.GetPageBuffer(),
	}
}

func (e *plainEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *plainEncoder) Size() int {
	return e.buf.Len()
}

func (e *plainEncoder) Count() int {
	return e.count
}

func (e *plainEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the internal buffer to the pool. The encoder and any slice
// previously obtained from Bytes are invalid afterwards.
func (e *plainEncoder) Finish() {
	pool.PutPageBuffer(e.buf)
	e.buf = nil
}

// TimestampPlainEncoder encodes the time column: each timestamp is a fixed
// 8-byte integer in the engine's byte order.
type TimestampPlainEncoder struct {
	plainEncoder
}

// NewTimestampPlainEncoder creates a plain timestamp encoder using the
// specified endian engine.
func NewTimestampPlainEncoder(engine endian.EndianEngine) *TimestampPlainEncoder {
	return &TimestampPlainEncoder{plainEncoder: newPlainEncoder(engine)}
}

// Write appends a single timestamp.
func (e *TimestampPlainEncoder) Write(ts int64) {
	e.buf.Grow(8)
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(ts)) //nolint:gosec
	e.count++
}

// Int32PlainEncoder encodes INT32 values as 4-byte integers.
type Int32PlainEncoder struct {
	plainEncoder
}

func (e *Int32PlainEncoder) Write(v format.Value) {
	e.buf.Grow(4)
	e.buf.B = e.engine.AppendUint32(e.buf.B, uint32(v.Int32())) //nolint:gosec
	e.count++
}

// Int64PlainEncoder encodes INT64 values as 8-byte integers.
type Int64PlainEncoder struct {
	plainEncoder
}

func (e *Int64PlainEncoder) Write(v format.Value) {
	e.buf.Grow(8)
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(v.Int64())) //nolint:gosec
	e.count++
}

// FloatPlainEncoder encodes FLOAT values as 4-byte IEEE 754 words.
type FloatPlainEncoder struct {
	plainEncoder
}

func (e *FloatPlainEncoder) Write(v format.Value) {
	e.buf.Grow(4)
	e.buf.B = e.engine.AppendUint32(e.buf.B, math.Float32bits(v.Float()))
	e.count++
}

// DoublePlainEncoder encodes DOUBLE values as 8-byte IEEE 754 words.
type DoublePlainEncoder struct {
	plainEncoder
}

func (e *DoublePlainEncoder) Write(v format.Value) {
	e.buf.Grow(8)
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v.Double()))
	e.count++
}
