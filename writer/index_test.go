package writer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
	"github.com/arloliu/tsfile/stats"
)

func testRecords(t *testing.T, n int) []*timeseriesMetadata {
	t.Helper()

	engine := endian.GetBigEndianEngine()
	records := make([]*timeseriesMetadata, 0, n)

	for i := 0; i < n; i++ {
		s, err := stats.New(format.TypeInt32)
		require.NoError(t, err)
		require.NoError(t, s.Update(int64(i), format.Int32Value(int32(i))))

		records = append(records, &timeseriesMetadata{
			measurementID: fmt.Sprintf("s%02d", i),
			dataType:      format.TypeInt32,
			statistics:    s,
			chunkListData: engine.AppendUint64(nil, uint64(i)),
		})
	}

	return records
}

func TestMetadataIndexNode_AppendTo(t *testing.T) {
	node := &MetadataIndexNode{
		Children:  []MetadataIndexEntry{{Name: "s1", Offset: 59}},
		EndOffset: 121,
		NodeType:  NodeTypeLeafMeasurement,
	}

	want := []byte{
		0x01,
		0x04, 's', '1',
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x3B,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x79,
		0x03,
	}
	got := node.appendTo(nil, endian.GetBigEndianEngine())
	require.Equal(t, want, got)
	require.Len(t, got, node.serializedSize())
}

func TestBuildMeasurementIndex_SingleLeaf(t *testing.T) {
	records := testRecords(t, 3)
	sink := NewBufferSink()

	root, err := buildMeasurementIndex(records, sink, endian.GetBigEndianEngine(), 256)
	require.NoError(t, err)

	// All records fit one leaf; the root is the unserialized leaf itself.
	require.Equal(t, NodeTypeLeafMeasurement, root.NodeType)
	require.Len(t, root.Children, 3)
	require.Equal(t, "s00", root.Children[0].Name)
	require.Equal(t, sink.Position(), root.EndOffset)

	// Entry offsets point at the serialized records in order.
	for i := 1; i < len(root.Children); i++ {
		require.Greater(t, root.Children[i].Offset, root.Children[i-1].Offset)
	}
	require.Equal(t, int64(0), root.Children[0].Offset)
}

func TestBuildMeasurementIndex_Reduction(t *testing.T) {
	records := testRecords(t, 5)
	sink := NewBufferSink()

	root, err := buildMeasurementIndex(records, sink, endian.GetBigEndianEngine(), 2)
	require.NoError(t, err)

	// Five records over degree-2 nodes: three leaves, two mid-level
	// parents, one root.
	require.Equal(t, NodeTypeInternalMeasurement, root.NodeType)
	require.Len(t, root.Children, 2)

	// Parent entry names borrow the first grouped child's first entry,
	// bottoming out at leaf measurement ids.
	require.Equal(t, "s00", root.Children[0].Name)
	require.Equal(t, "s04", root.Children[1].Name)

	require.Equal(t, sink.Position(), root.EndOffset)
}

func TestReduceIndexNodes_EmptyNode(t *testing.T) {
	sink := NewBufferSink()
	queue := []*MetadataIndexNode{
		newMetadataIndexNode(NodeTypeLeafMeasurement),
		newMetadataIndexNode(NodeTypeLeafMeasurement),
	}

	_, err := reduceIndexNodes(queue, sink, endian.GetBigEndianEngine(), NodeTypeInternalMeasurement, 2)
	require.ErrorIs(t, err, errs.ErrEmptyIndexNode)
}

func TestBuildDeviceIndex_SmallFanout(t *testing.T) {
	sink := NewBufferSink()
	engine := endian.GetBigEndianEngine()

	var roots []deviceIndexRoot
	for _, device := range []string{"d1", "d2"} {
		records := testRecords(t, 1)
		node, err := buildMeasurementIndex(records, sink, engine, 256)
		require.NoError(t, err)
		roots = append(roots, deviceIndexRoot{deviceID: device, node: node})
	}

	root, err := buildDeviceIndex(roots, sink, engine, 256)
	require.NoError(t, err)

	require.Equal(t, NodeTypeLeafDevice, root.NodeType)
	require.Len(t, root.Children, 2)
	require.Equal(t, "d1", root.Children[0].Name)
	require.Equal(t, "d2", root.Children[1].Name)
	require.Equal(t, sink.Position(), root.EndOffset)

	// The device entries point at the serialized measurement roots.
	require.Greater(t, root.Children[1].Offset, root.Children[0].Offset)
}

func TestBuildDeviceIndex_Reduction(t *testing.T) {
	sink := NewBufferSink()
	engine := endian.GetBigEndianEngine()

	var roots []deviceIndexRoot
	for i := 0; i < 5; i++ {
		records := testRecords(t, 1)
		node, err := buildMeasurementIndex(records, sink, engine, 2)
		require.NoError(t, err)
		roots = append(roots, deviceIndexRoot{deviceID: fmt.Sprintf("d%d", i), node: node})
	}

	root, err := buildDeviceIndex(roots, sink, engine, 2)
	require.NoError(t, err)

	require.Equal(t, NodeTypeInternalDevice, root.NodeType)
	require.Equal(t, "d0", root.Children[0].Name)
	require.Equal(t, sink.Position(), root.EndOffset)
}

func TestBuildDeviceIndex_NoDevices(t *testing.T) {
	sink := NewBufferSink()

	root, err := buildDeviceIndex(nil, sink, endian.GetBigEndianEngine(), 256)
	require.NoError(t, err)
	require.Equal(t, NodeTypeLeafDevice, root.NodeType)
	require.Empty(t, root.Children)
	require.Zero(t, sink.Len())
}
