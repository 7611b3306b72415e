package writer

import (
	"fmt"

	"github.com/arloliu/tsfile/compress"
	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
	"github.com/arloliu/tsfile/internal/pool"
	"github.com/arloliu/tsfile/schema"
	"github.com/arloliu/tsfile/stats"
	"github.com/arloliu/tsfile/varnum"
)

// chunkWriter owns one measurement's current page and its running
// statistics. Serialization emits the chunk header followed by the single
// page region and records the header's byte offset for the footer metadata.
type chunkWriter struct {
	measurementID string
	dataType      format.DataType
	encoding      format.Encoding
	compression   format.Compression

	codec  compress.Codec
	engine endian.EndianEngine

	pageSizeThreshold int
	page              *pageWriter
	statistics        *stats.Statistics

	// offset is the position of the chunk header marker, captured when the
	// chunk is serialized.
	offset int64
}

func newChunkWriter(measurementID string, ms schema.MeasurementSchema, engine endian.EndianEngine, pageSizeThreshold int) (*chunkWriter, error) {
	if ms.Encoding != format.EncodingPlain {
		return nil, fmt.Errorf("%w: measurement %q declares %s", errs.ErrUnsupportedEncoding, measurementID, ms.Encoding.String())
	}

	statistics, err := stats.New(ms.DataType)
	if err != nil {
		return nil, fmt.Errorf("measurement %q: %w", measurementID, err)
	}

	codec, err := compress.CodecFor(ms.Compression)
	if err != nil {
		return nil, fmt.Errorf("measurement %q: %w", measurementID, err)
	}

	return &chunkWriter{
		measurementID:     measurementID,
		dataType:          ms.DataType,
		encoding:          ms.Encoding,
		compression:       ms.Compression,
		codec:             codec,
		engine:            engine,
		pageSizeThreshold: pageSizeThreshold,
		statistics:        statistics,
	}, nil
}

// write applies one sample: the value variant is checked against the column
// type, the single-page budget is enforced, then statistics and the page
// are updated. On any error the chunk state is unchanged.
func (c *chunkWriter) write(ts int64, v format.Value) error {
	if v.DataType() != c.dataType {
		return fmt.Errorf("%w: measurement %q expects %s, got %s",
			errs.ErrTypeMismatch, c.measurementID, c.dataType.String(), v.DataType().String())
	}

	if c.page == nil {
		page, err := newPageWriter(c.dataType, c.encoding, c.engine)
		if err != nil {
			return err
		}
		c.page = page
	}

	nextTimeSize := c.page.timeEncoder.Size() + 8
	nextSize := varnum.UvarintSize(uint32(nextTimeSize)) + nextTimeSize + //nolint:gosec
		c.page.valueEncoder.Size() + c.dataType.ValueWidth()
	if nextSize > c.pageSizeThreshold {
		return fmt.Errorf("%w: measurement %q at %d bytes", errs.ErrPageOverflow, c.measurementID, c.page.size())
	}

	if err := c.statistics.Update(ts, v); err != nil {
		return err
	}

	c.page.write(ts, v)

	return nil
}

// empty reports whether no sample has been written.
func (c *chunkWriter) empty() bool {
	return c.page == nil || c.page.count() == 0
}

// serializeTo emits the chunk: header marker, measurement id, declared page
// region length, the three tag bytes, then the page region
// (varuint(U) | varuint(C) | page-body). Empty chunks emit nothing.
//
// The header offset is captured from the sink immediately before the first
// header byte, so the recorded position always matches the emitted marker.
func (c *chunkWriter) serializeTo(sink PositionedSink) error {
	if c.empty() {
		return nil
	}

	body := pool.GetPageBuffer()
	defer pool.PutPageBuffer(body)
	c.page.prepareBuffer(body)

	compressed, err := c.codec.Compress(body.Bytes())
	if err != nil {
		return fmt.Errorf("compress page of %q: %w", c.measurementID, err)
	}

	uncompressedSize := body.Len()
	compressedSize := len(compressed)
	pageRegionLen := varnum.UvarintSize(uint32(uncompressedSize)) + //nolint:gosec
		varnum.UvarintSize(uint32(compressedSize)) + compressedSize //nolint:gosec

	header := pool.GetMetaBuffer()
	defer pool.PutMetaBuffer(header)

	header.B = append(header.B, format.ChunkHeaderMarker)
	header.B = varnum.AppendString(header.B, c.measurementID)
	header.B = varnum.AppendUvarint(header.B, uint32(pageRegionLen)) //nolint:gosec
	header.B = append(header.B, byte(c.dataType), byte(c.compression), byte(c.encoding))
	header.B = varnum.AppendUvarint(header.B, uint32(uncompressedSize)) //nolint:gosec
	header.B = varnum.AppendUvarint(header.B, uint32(compressedSize))   //nolint:gosec

	c.offset = sink.Position()

	if _, err := sink.Write(header.Bytes()); err != nil {
		return fmt.Errorf("write chunk header of %q: %w", c.measurementID, err)
	}

	if _, err := sink.Write(compressed); err != nil {
		return fmt.Errorf("write page region of %q: %w", c.measurementID, err)
	}

	c.page.release()
	c.page = nil

	return nil
}

// metadata returns the chunk-metadata record for the footer. The second
// return is false for chunks that emitted nothing.
func (c *chunkWriter) metadata() (ChunkMetadata, bool) {
	if c.statistics.Count() == 0 {
		return ChunkMetadata{}, false
	}

	return ChunkMetadata{
		MeasurementID: c.measurementID,
		DataType:      c.dataType,
		Mask:          0,
		Offset:        c.offset,
		Statistics:    c.statistics.Clone(),
	}, true
}
