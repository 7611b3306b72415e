package writer

import (
	"fmt"

	"github.com/arloliu/tsfile/endian"
	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/internal/pool"
	"github.com/arloliu/tsfile/varnum"
)

// MetadataIndexNodeType identifies a node's role in the two-level footer
// index: device nodes above, measurement nodes below.
type MetadataIndexNodeType byte

const (
	NodeTypeInternalDevice      MetadataIndexNodeType = 0
	NodeTypeLeafDevice          MetadataIndexNodeType = 1
	NodeTypeInternalMeasurement MetadataIndexNodeType = 2
	NodeTypeLeafMeasurement     MetadataIndexNodeType = 3
)

func (t MetadataIndexNodeType) String() string {
	switch t {
	case NodeTypeInternalDevice:
		return "InternalDevice"
	case NodeTypeLeafDevice:
		return "LeafDevice"
	case NodeTypeInternalMeasurement:
		return "InternalMeasurement"
	case NodeTypeLeafMeasurement:
		return "LeafMeasurement"
	default:
		return "Unknown"
	}
}

// MetadataIndexEntry points a name at the byte offset where the referenced
// record was written.
type MetadataIndexEntry struct {
	Name   string
	Offset int64
}

// MetadataIndexNode is one node of the footer index tree. EndOffset is the
// sink position captured when the node was flushed, i.e. the end of the
// region its entries cover.
type MetadataIndexNode struct {
	Children  []MetadataIndexEntry
	EndOffset int64
	NodeType  MetadataIndexNodeType
}

func newMetadataIndexNode(t MetadataIndexNodeType) *MetadataIndexNode {
	return &MetadataIndexNode{NodeType: t}
}

func (n *MetadataIndexNode) isFull(maxDegree int) bool {
	return len(n.Children) >= maxDegree
}

// firstEntryName returns the name a parent entry borrows for this node.
// Parents borrow recursively from their first grouped child, so the name
// always bottoms out at a leaf's first measurement id (or device path).
func (n *MetadataIndexNode) firstEntryName() (string, error) {
	if len(n.Children) == 0 {
		return "", fmt.Errorf("%w: %s node", errs.ErrEmptyIndexNode, n.NodeType.String())
	}

	return n.Children[0].Name, nil
}

func (n *MetadataIndexNode) serializedSize() int {
	size := varnum.UvarintSize(uint32(len(n.Children))) //nolint:gosec
	for _, c := range n.Children {
		size += varnum.StringSize(c.Name) + 8
	}

	return size + 8 + 1
}

// appendTo appends the node encoding: child count, the entries as
// name + int64 BE offset, the int64 BE end offset, then the node type byte.
func (n *MetadataIndexNode) appendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = varnum.AppendUvarint(dst, uint32(len(n.Children))) //nolint:gosec

	for _, c := range n.Children {
		dst = varnum.AppendString(dst, c.Name)
		dst = engine.AppendUint64(dst, uint64(c.Offset)) //nolint:gosec
	}

	dst = engine.AppendUint64(dst, uint64(n.EndOffset)) //nolint:gosec

	return append(dst, byte(n.NodeType))
}

func (n *MetadataIndexNode) serializeTo(sink PositionedSink, engine endian.EndianEngine) error {
	buf := pool.GetMetaBuffer()
	defer pool.PutMetaBuffer(buf)

	buf.B = n.appendTo(buf.B, engine)

	if _, err := sink.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s index node: %w", n.NodeType.String(), err)
	}

	return nil
}

// buildMeasurementIndex streams one device's timeseries-metadata records to
// the sink while collecting leaf index nodes, then reduces the leaves into
// a single root. The returned root is not yet serialized; the device-level
// index writes it and records its position.
func buildMeasurementIndex(records []*timeseriesMetadata, sink PositionedSink, engine endian.EndianEngine, maxDegree int) (*MetadataIndexNode, error) {
	var queue []*MetadataIndexNode
	current := newMetadataIndexNode(NodeTypeLeafMeasurement)

	buf := pool.GetMetaBuffer()
	defer pool.PutMetaBuffer(buf)

	for _, record := range records {
		if current.isFull(maxDegree) {
			current.EndOffset = sink.Position()
			queue = append(queue, current)
			current = newMetadataIndexNode(NodeTypeLeafMeasurement)
		}

		current.Children = append(current.Children, MetadataIndexEntry{
			Name:   record.measurementID,
			Offset: sink.Position(),
		})

		buf.Reset()
		buf.B = record.appendTo(buf.B)
		if _, err := sink.Write(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("write timeseries metadata of %q: %w", record.measurementID, err)
		}
	}

	current.EndOffset = sink.Position()
	queue = append(queue, current)

	return reduceIndexNodes(queue, sink, engine, NodeTypeInternalMeasurement, maxDegree)
}

// reduceIndexNodes collapses sibling nodes level by level until a single
// root remains: each pass serializes the current level's nodes and groups
// up to maxDegree of them under parents carried into the next pass. The
// surviving root is returned unserialized.
func reduceIndexNodes(queue []*MetadataIndexNode, sink PositionedSink, engine endian.EndianEngine, internalType MetadataIndexNodeType, maxDegree int) (*MetadataIndexNode, error) {
	for len(queue) > 1 {
		next := make([]*MetadataIndexNode, 0, (len(queue)+maxDegree-1)/maxDegree)
		current := newMetadataIndexNode(internalType)

		for _, node := range queue {
			if current.isFull(maxDegree) {
				current.EndOffset = sink.Position()
				next = append(next, current)
				current = newMetadataIndexNode(internalType)
			}

			name, err := node.firstEntryName()
			if err != nil {
				return nil, err
			}

			current.Children = append(current.Children, MetadataIndexEntry{
				Name:   name,
				Offset: sink.Position(),
			})

			if err := node.serializeTo(sink, engine); err != nil {
				return nil, err
			}
		}

		current.EndOffset = sink.Position()
		next = append(next, current)
		queue = next
	}

	return queue[0], nil
}

// deviceIndexRoot pairs a device with its measurement-index root.
type deviceIndexRoot struct {
	deviceID string
	node     *MetadataIndexNode
}

// buildDeviceIndex writes every device's measurement-index root and builds
// the device level above them. With at most maxDegree devices a single
// LeafDevice node suffices; larger files go through the same leaf-and-
// reduce pass as the measurement level, producing InternalDevice parents.
func buildDeviceIndex(roots []deviceIndexRoot, sink PositionedSink, engine endian.EndianEngine, maxDegree int) (*MetadataIndexNode, error) {
	if len(roots) <= maxDegree {
		node := newMetadataIndexNode(NodeTypeLeafDevice)

		for _, root := range roots {
			node.Children = append(node.Children, MetadataIndexEntry{
				Name:   root.deviceID,
				Offset: sink.Position(),
			})

			if err := root.node.serializeTo(sink, engine); err != nil {
				return nil, err
			}
		}

		node.EndOffset = sink.Position()

		return node, nil
	}

	var queue []*MetadataIndexNode
	current := newMetadataIndexNode(NodeTypeLeafDevice)

	for _, root := range roots {
		if current.isFull(maxDegree) {
			current.EndOffset = sink.Position()
			queue = append(queue, current)
			current = newMetadataIndexNode(NodeTypeLeafDevice)
		}

		current.Children = append(current.Children, MetadataIndexEntry{
			Name:   root.deviceID,
			Offset: sink.Position(),
		})

		if err := root.node.serializeTo(sink, engine); err != nil {
			return nil, err
		}
	}

	current.EndOffset = sink.Position()
	queue = append(queue, current)

	return reduceIndexNodes(queue, sink, engine, NodeTypeInternalDevice, maxDegree)
}
