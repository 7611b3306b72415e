// Package format defines the on-disk tag values and the primitive value
// model of the TsFile binary format.
//
// Every tag occupies exactly one byte in the file. The assignments are fixed
// by the format and must never be renumbered: readers identify column types,
// encodings and compression schemes purely by these values.
package format

type (
	DataType    uint8
	Encoding    uint8
	Compression uint8
)

const (
	TypeInt32   DataType = 1 // TypeInt32 represents a 32-bit signed integer column.
	TypeInt64   DataType = 2 // TypeInt64 represents a 64-bit signed integer column.
	TypeFloat   DataType = 3 // TypeFloat represents a 32-bit IEEE 754 column.
	TypeDouble  DataType = 4 // TypeDouble represents a 64-bit IEEE 754 column.
	TypeBoolean DataType = 5 // TypeBoolean is a reserved tag; the writer does not produce it.
	TypeText    DataType = 6 // TypeText is a reserved tag; the writer does not produce it.

	EncodingPlain   Encoding = 0 // EncodingPlain stores each value fixed-width big-endian.
	EncodingRLE     Encoding = 2 // EncodingRLE is a reserved tag value.
	EncodingTS2Diff Encoding = 4 // EncodingTS2Diff is a reserved tag value.
	EncodingGorilla Encoding = 8 // EncodingGorilla is a reserved tag value.

	CompressionUncompressed Compression = 0 // CompressionUncompressed emits page bodies verbatim.
	CompressionSnappy       Compression = 1 // CompressionSnappy represents Snappy block compression.
	CompressionGzip         Compression = 2 // CompressionGzip represents gzip compression.
	CompressionLZ4          Compression = 3 // CompressionLZ4 represents LZ4 block compression.
)

// File framing constants. The magic string brackets the file; the version
// byte follows the opening magic.
const (
	MagicString   = "TsFile"
	VersionNumber = 0x03
)

// Record markers. Each top-level record in the data region is introduced by
// a one-byte marker so a sequential reader can re-scan the file.
const (
	ChunkGroupHeaderMarker byte = 0x00
	SeparatorMarker        byte = 0x02
	ChunkHeaderMarker      byte = 0x05
)

func (t DataType) String() string {
	switch t {
	case TypeInt32:
		return "INT32"
	case TypeInt64:
		return "INT64"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeText:
		return "TEXT"
	default:
		return "Unknown"
	}
}

// ValueWidth returns the fixed serialized width in bytes of one value of
// this type under plain encoding, or 0 for types without a fixed width.
func (t DataType) ValueWidth() int {
	switch t {
	case TypeInt32, TypeFloat:
		return 4
	case TypeInt64, TypeDouble:
		return 8
	case TypeBoolean:
		return 1
	default:
		return 0
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "PLAIN"
	case EncodingRLE:
		return "RLE"
	case EncodingTS2Diff:
		return "TS_2DIFF"
	case EncodingGorilla:
		return "GORILLA"
	default:
		return "Unknown"
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionUncompressed:
		return "UNCOMPRESSED"
	case CompressionSnappy:
		return "SNAPPY"
	case CompressionGzip:
		return "GZIP"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
