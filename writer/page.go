package writer

import (
	"github.com/arloliu/tsfile/encoding"
	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/format"
	"github.com/arloliu/tsfile/internal/pool"
	"github.com/arloliu/tsfile/varnum"
)

// pageWriter buffers one page of (time, value) pairs in a pair of column
// encoders. The prepared page body is laid out as
//
//	varuint(len(time-bytes)) | time-bytes | value-bytes
//
// and is framed by the owning chunk writer.
type pageWriter struct {
	timeEncoder  *encoding.TimestampPlainEncoder
	valueEncoder encoding.ValueEncoder
}

func newPageWriter(dataType format.DataType, enc format.Encoding, engine endian.EndianEngine) (*pageWriter, error) {
	valueEncoder, err := encoding.NewValueEncoder(dataType, enc, engine)
	if err != nil {
		return nil, err
	}

	return &pageWriter{
		timeEncoder:  encoding.NewTimestampPlainEncoder(engine),
		valueEncoder: valueEncoder,
	}, nil
}

// write forwards the sample to both column encoders. Type checking happened
// in the chunk writer.
func (p *pageWriter) write(ts int64, v format.Value) {
	p.timeEncoder.Write(ts)
	p.valueEncoder.Write(v)
}

// count returns the number of buffered samples.
func (p *pageWriter) count() int {
	return p.timeEncoder.Count()
}

// size returns the current serialized length of the page body.
func (p *pageWriter) size() int {
	timeSize := p.timeEncoder.Size()

	return varnum.UvarintSize(uint32(timeSize)) + timeSize + p.valueEncoder.Size() //nolint:gosec
}

// prepareBuffer assembles the page body into buf.
func (p *pageWriter) prepareBuffer(buf *pool.ByteBuffer) {
	timeBytes := p.timeEncoder.Bytes()

	buf.Grow(p.size())
	buf.B = varnum.AppendUvarint(buf.B, uint32(len(timeBytes))) //nolint:gosec
	buf.B = append(buf.B, timeBytes...)
	buf.B = append(buf.B, p.valueEncoder.Bytes()...)
}

// release returns the encoder buffers to the pool. The page writer must not
// be used afterwards.
func (p *pageWriter) release() {
	p.timeEncoder.Finish()
	p.valueEncoder.Finish()
}
