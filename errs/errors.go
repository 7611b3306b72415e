// Package errs defines the sentinel errors returned by the tsfile module.
//
// Callers match them with errors.Is; most call sites wrap them with
// fmt.Errorf("%w: ...") to add the offending identifier or limit.
package errs

import "errors"

var (
	// ErrUnknownDevice is returned when a write names a device that is not
	// part of the schema. The writer state is unchanged.
	ErrUnknownDevice = errors.New("unknown device")

	// ErrUnknownMeasurement is returned when a write names a measurement
	// that is not declared for the target device. The writer state is
	// unchanged.
	ErrUnknownMeasurement = errors.New("unknown measurement")

	// ErrTypeMismatch is returned when a sample's value variant does not
	// match the measurement's declared data type.
	ErrTypeMismatch = errors.New("data type mismatch")

	// ErrPageOverflow is returned when a write would push a chunk's single
	// page past the configured page size threshold. The chunk is unchanged.
	ErrPageOverflow = errors.New("page size threshold exceeded")

	// ErrAlreadyClosed is returned by any write or close after Close has
	// been called.
	ErrAlreadyClosed = errors.New("writer already closed")

	// ErrHashCollision is returned when two distinct identifiers map to the
	// same 64-bit routing ID within one lookup table.
	ErrHashCollision = errors.New("hash collision detected")

	// ErrEmptyIdentifier is returned when a device path or measurement id
	// is empty.
	ErrEmptyIdentifier = errors.New("identifier must not be empty")

	// ErrDuplicateIdentifier is returned when a device or measurement is
	// registered twice in one scope.
	ErrDuplicateIdentifier = errors.New("identifier already registered")

	// ErrNoDeviceScope is returned when a schema builder declares a
	// measurement before any device.
	ErrNoDeviceScope = errors.New("no device scope open")

	// ErrUnsupportedDataType is returned for reserved data type tags the
	// writer cannot encode.
	ErrUnsupportedDataType = errors.New("unsupported data type")

	// ErrUnsupportedEncoding is returned for reserved encoding tags.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrUnsupportedCompression is returned for compression tags with no
	// registered codec.
	ErrUnsupportedCompression = errors.New("unsupported compression type")

	// ErrEmptyIndexNode is returned when index-tree reduction encounters a
	// node with no entries; emitting it would corrupt the index.
	ErrEmptyIndexNode = errors.New("metadata index node has no entries")

	// ErrInvalidFilterData is returned when a serialized bloom filter
	// cannot be parsed back.
	ErrInvalidFilterData = errors.New("invalid bloom filter data")
)
