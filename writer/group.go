package writer

import (
	"fmt"

	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
	"github.com/arloliu/tsfile/internal/collision"
	"github.com/arloliu/tsfile/internal/hash"
	"github.com/arloliu/tsfile/internal/pool"
	"github.com/arloliu/tsfile/schema"
	"github.com/arloliu/tsfile/varnum"
)

// groupWriter owns one chunk writer per measurement of one device, in
// schema insertion order. Measurement dispatch is keyed by the 64-bit hash
// of the measurement id; a collision tracker verifies at construction that
// the hashes are distinct inside the device.
type groupWriter struct {
	deviceID string
	chunks   []*chunkWriter
	index    map[uint64]int
}

func newGroupWriter(deviceID string, device *schema.Device, engine endian.EndianEngine, pageSizeThreshold int) (*groupWriter, error) {
	g := &groupWriter{
		deviceID: deviceID,
		chunks:   make([]*chunkWriter, 0, device.Len()),
		index:    make(map[uint64]int, device.Len()),
	}

	tracker := collision.NewTracker()

	for i := 0; i < device.Len(); i++ {
		measurementID, ms := device.At(i)

		id := hash.ID(measurementID)
		if err := tracker.Track(id, measurementID); err != nil {
			return nil, fmt.Errorf("device %q, measurement %q: %w", deviceID, measurementID, err)
		}

		chunk, err := newChunkWriter(measurementID, ms, engine, pageSizeThreshold)
		if err != nil {
			return nil, fmt.Errorf("device %q: %w", deviceID, err)
		}

		g.index[id] = i
		g.chunks = append(g.chunks, chunk)
	}

	return g, nil
}

// write dispatches a sample to the named measurement's chunk writer.
func (g *groupWriter) write(measurementID string, ts int64, v format.Value) error {
	i, ok := g.index[hash.ID(measurementID)]
	if !ok || g.chunks[i].measurementID != measurementID {
		return fmt.Errorf("%w: %q in device %q", errs.ErrUnknownMeasurement, measurementID, g.deviceID)
	}

	return g.chunks[i].write(ts, v)
}

// empty reports whether no measurement of the device holds data.
func (g *groupWriter) empty() bool {
	for _, c := range g.chunks {
		if !c.empty() {
			return false
		}
	}

	return true
}

// serializeTo emits the chunk-group header followed by every non-empty
// chunk in schema order. A group with no data emits nothing and returns
// false.
func (g *groupWriter) serializeTo(sink PositionedSink) (bool, error) {
	if g.empty() {
		return false, nil
	}

	header := pool.GetMetaBuffer()
	header.B = append(header.B, format.ChunkGroupHeaderMarker)
	header.B = varnum.AppendString(header.B, g.deviceID)

	_, err := sink.Write(header.Bytes())
	pool.PutMetaBuffer(header)
	if err != nil {
		return false, fmt.Errorf("write chunk group header of %q: %w", g.deviceID, err)
	}

	for _, c := range g.chunks {
		if err := c.serializeTo(sink); err != nil {
			return false, err
		}
	}

	return true, nil
}

// metadata gathers the chunk metadata of every chunk that emitted data.
func (g *groupWriter) metadata() ChunkGroupMetadata {
	meta := ChunkGroupMetadata{DeviceID: g.deviceID}

	for _, c := range g.chunks {
		if cm, ok := c.metadata(); ok {
			meta.Chunks = append(meta.Chunks, cm)
		}
	}

	return meta
}
