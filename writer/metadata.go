package writer

import (
	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/format"
	"github.com/arloliu/tsfile/stats"
	"github.com/arloliu/tsfile/varnum"
)

// ChunkMetadata records where one chunk landed in the file and what it
// holds. Offset is the byte position of the chunk's header marker at the
// time it was written.
type ChunkMetadata struct {
	MeasurementID string
	DataType      format.DataType
	Mask          byte
	Offset        int64
	Statistics    *stats.Statistics
}

// serializedSize returns the on-disk length of the record inside a
// timeseries-metadata chunk list. Single-chunk series store only the header
// offset; multi-chunk series embed per-chunk statistics.
func (m ChunkMetadata) serializedSize(includeStatistics bool) int {
	size := 8
	if includeStatistics {
		size += m.Statistics.SerializedSize()
	}

	return size
}

func (m ChunkMetadata) appendTo(dst []byte, includeStatistics bool, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint64(dst, uint64(m.Offset)) //nolint:gosec
	if includeStatistics {
		dst = m.Statistics.AppendTo(dst)
	}

	return dst
}

// ChunkGroupMetadata aggregates the chunk metadata of one device.
type ChunkGroupMetadata struct {
	DeviceID string
	Chunks   []ChunkMetadata
}

// timeseriesMetadata is the per-measurement footer record: merged
// statistics plus the serialized chunk-metadata list. The type byte's low
// bit is set when the series spans more than one chunk.
type timeseriesMetadata struct {
	typeByte      byte
	measurementID string
	dataType      format.DataType
	statistics    *stats.Statistics
	chunkListData []byte
}

// buildTimeseriesMetadata synthesizes the footer records of one device from
// its chunk metadata, grouped by measurement id in emission order.
func buildTimeseriesMetadata(gm ChunkGroupMetadata, engine endian.EndianEngine) ([]*timeseriesMetadata, error) {
	order := make([]string, 0, len(gm.Chunks))
	byMeasurement := make(map[string][]ChunkMetadata, len(gm.Chunks))

	for _, cm := range gm.Chunks {
		if _, ok := byMeasurement[cm.MeasurementID]; !ok {
			order = append(order, cm.MeasurementID)
		}
		byMeasurement[cm.MeasurementID] = append(byMeasurement[cm.MeasurementID], cm)
	}

	records := make([]*timeseriesMetadata, 0, len(order))

	for _, measurementID := range order {
		chunks := byMeasurement[measurementID]
		multiChunk := len(chunks) > 1

		merged, err := stats.New(chunks[0].DataType)
		if err != nil {
			return nil, err
		}

		listSize := 0
		for _, cm := range chunks {
			listSize += cm.serializedSize(multiChunk)
		}

		listData := make([]byte, 0, listSize)
		for _, cm := range chunks {
			if err := merged.Merge(cm.Statistics); err != nil {
				return nil, err
			}
			listData = cm.appendTo(listData, multiChunk, engine)
		}

		var typeByte byte
		if multiChunk {
			typeByte |= 0x01
		}

		records = append(records, &timeseriesMetadata{
			typeByte:      typeByte,
			measurementID: measurementID,
			dataType:      chunks[0].DataType,
			statistics:    merged,
			chunkListData: listData,
		})
	}

	return records, nil
}

// appendTo appends the on-disk record: type byte, measurement id, data type
// tag, chunk-list byte length, merged statistics, then the chunk list.
func (t *timeseriesMetadata) appendTo(dst []byte) []byte {
	dst = append(dst, t.typeByte)
	dst = varnum.AppendString(dst, t.measurementID)
	dst = append(dst, byte(t.dataType))
	dst = varnum.AppendUvarint(dst, uint32(len(t.chunkListData))) //nolint:gosec
	dst = t.statistics.AppendTo(dst)

	return append(dst, t.chunkListData...)
}
