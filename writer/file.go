package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/tsfile/bloom"
	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
	"github.com/arloliu/tsfile/internal/collision"
	"github.com/arloliu/tsfile/internal/hash"
	"github.com/arloliu/tsfile/internal/options"
	"github.com/arloliu/tsfile/internal/pool"
	"github.com/arloliu/tsfile/schema"
)

// Point pairs a measurement id with a value for WriteMany.
type Point struct {
	Measurement string
	Value       format.Value
}

// TsFileWriter produces one TsFile. It is constructed over a schema and a
// destination sink, fed time-ordered samples through Write/WriteMany, and
// finalized by Close, which emits the footer metadata and seals the file.
//
// The writer is single-threaded: it owns the sink exclusively for its
// lifetime and performs no internal locking. Timestamps within one
// measurement must be supplied in nondecreasing order; violations are not
// detected and only degrade the statistics, never the framing.
type TsFileWriter struct {
	sink   PositionedSink
	engine endian.EndianEngine
	cfg    config

	groups []*groupWriter
	index  map[uint64]int

	// file is set when the writer owns the destination (Create); Close
	// closes it after the epilogue.
	file *os.File

	closed bool
}

// NewWriter creates a writer over an arbitrary destination and emits the
// file prologue (magic and version byte). If w is not already a
// PositionedSink it is wrapped in a CountingSink.
func NewWriter(w io.Writer, sch *schema.Schema, opts ...Option) (*TsFileWriter, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	sink, ok := w.(PositionedSink)
	if !ok {
		sink = NewCountingSink(w)
	}

	engine := endian.GetBigEndianEngine()

	fw := &TsFileWriter{
		sink:   sink,
		engine: engine,
		cfg:    cfg,
		groups: make([]*groupWriter, 0, sch.Len()),
		index:  make(map[uint64]int, sch.Len()),
	}

	tracker := collision.NewTracker()

	for i := 0; i < sch.Len(); i++ {
		deviceID, device := sch.At(i)

		id := hash.ID(deviceID)
		if err := tracker.Track(id, deviceID); err != nil {
			return nil, fmt.Errorf("device %q: %w", deviceID, err)
		}

		group, err := newGroupWriter(deviceID, device, engine, cfg.pageSizeThreshold)
		if err != nil {
			return nil, err
		}

		fw.index[id] = i
		fw.groups = append(fw.groups, group)
	}

	if _, err := sink.Write([]byte(format.MagicString)); err != nil {
		return nil, fmt.Errorf("write magic: %w", err)
	}
	if _, err := sink.Write([]byte{format.VersionNumber}); err != nil {
		return nil, fmt.Errorf("write version: %w", err)
	}

	return fw, nil
}

// Create creates the file at path and a writer over it. Close syncs and
// closes the file.
func Create(path string, sch *schema.Schema, opts ...Option) (*TsFileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	fw, err := NewWriter(f, sch, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}

	fw.file = f

	return fw, nil
}

// Write routes one sample to its measurement's chunk writer. Routing and
// type failures leave the writer state unchanged.
func (w *TsFileWriter) Write(deviceID, measurementID string, ts int64, v format.Value) error {
	if w.closed {
		return errs.ErrAlreadyClosed
	}

	group, err := w.group(deviceID)
	if err != nil {
		return err
	}

	return group.write(measurementID, ts, v)
}

// WriteMany writes several measurements of one device at a shared
// timestamp. Points are applied in order; the first failure stops the batch
// and leaves earlier points applied.
func (w *TsFileWriter) WriteMany(deviceID string, ts int64, points []Point) error {
	if w.closed {
		return errs.ErrAlreadyClosed
	}

	group, err := w.group(deviceID)
	if err != nil {
		return err
	}

	for _, p := range points {
		if err := group.write(p.Measurement, ts, p.Value); err != nil {
			return err
		}
	}

	return nil
}

func (w *TsFileWriter) group(deviceID string) (*groupWriter, error) {
	i, ok := w.index[hash.ID(deviceID)]
	if !ok || w.groups[i].deviceID != deviceID {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownDevice, deviceID)
	}

	return w.groups[i], nil
}

// Close finalizes the file: it serializes every chunk group, streams the
// footer metadata (timeseries records and the index tree), emits the
// TsFile metadata record, the bloom filter, the footer length and the
// trailing magic, then flushes the sink once. A failed Close leaves the
// file invalid; the writer accepts no further calls either way.
func (w *TsFileWriter) Close() error {
	if w.closed {
		return errs.ErrAlreadyClosed
	}
	w.closed = true

	if err := w.writeEpilogue(); err != nil {
		if w.file != nil {
			w.file.Close()
		}

		return err
	}

	if w.file != nil {
		if err := w.file.Sync(); err != nil {
			w.file.Close()
			return err
		}

		return w.file.Close()
	}

	return nil
}

func (w *TsFileWriter) writeEpilogue() error {
	groupsMeta := make([]ChunkGroupMetadata, 0, len(w.groups))

	for _, g := range w.groups {
		written, err := g.serializeTo(w.sink)
		if err != nil {
			return err
		}

		if written {
			groupsMeta = append(groupsMeta, g.metadata())
		}
	}

	metaOffset := w.sink.Position()

	if _, err := w.sink.Write([]byte{format.SeparatorMarker}); err != nil {
		return fmt.Errorf("write separator: %w", err)
	}

	roots := make([]deviceIndexRoot, 0, len(groupsMeta))
	paths := make([]string, 0, len(groupsMeta))
	seenPaths := make(map[string]struct{}, len(groupsMeta))

	for _, gm := range groupsMeta {
		records, err := buildTimeseriesMetadata(gm, w.engine)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}

		for _, record := range records {
			path := gm.DeviceID + "." + record.measurementID
			if _, ok := seenPaths[path]; ok {
				continue
			}
			seenPaths[path] = struct{}{}
			paths = append(paths, path)
		}

		root, err := buildMeasurementIndex(records, w.sink, w.engine, w.cfg.maxDegreeOfIndexNode)
		if err != nil {
			return err
		}

		roots = append(roots, deviceIndexRoot{deviceID: gm.DeviceID, node: root})
	}

	rootNode, err := buildDeviceIndex(roots, w.sink, w.engine, w.cfg.maxDegreeOfIndexNode)
	if err != nil {
		return err
	}

	footerIndex := w.sink.Position()

	buf := pool.GetMetaBuffer()
	defer pool.PutMetaBuffer(buf)

	// TsFile metadata record: the index root (a zero sentinel when there is
	// none) followed by the metadata region offset.
	if rootNode != nil {
		buf.B = rootNode.appendTo(buf.B, w.engine)
	} else {
		buf.B = append(buf.B, 0x00, 0x00, 0x00, 0x00)
	}
	buf.B = w.engine.AppendUint64(buf.B, uint64(metaOffset)) //nolint:gosec

	filter := bloom.Build(paths, w.cfg.bloomFilterErrorRate)
	buf.B = filter.AppendTo(buf.B)

	if _, err := w.sink.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	footerLen := uint32(w.sink.Position() - footerIndex) //nolint:gosec

	tail := make([]byte, 0, 4+len(format.MagicString))
	tail = w.engine.AppendUint32(tail, footerLen)
	tail = append(tail, format.MagicString...)

	if _, err := w.sink.Write(tail); err != nil {
		return fmt.Errorf("write trailing magic: %w", err)
	}

	if f, ok := w.sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush sink: %w", err)
		}
	}

	return nil
}
