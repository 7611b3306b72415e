package compress

import "fmt"

// NoOpCompressor is the UNCOMPRESSED codec. It returns its input unchanged,
// which keeps the uncompressed page region bit-exact: the declared
// uncompressed and compressed sizes coincide and the page body is emitted
// verbatim.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without processing or copying.
//
// Note: the returned slice shares the input's memory; callers must not
// modify the input while the result is in use.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is. The declared size must match
// the data, since nothing was transformed.
func (c NoOpCompressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) != uncompressedSize {
		return nil, fmt.Errorf("uncompressed region is %d bytes, framing declares %d", len(data), uncompressedSize)
	}

	return data, nil
}
