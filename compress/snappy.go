package compress

import (
	"fmt"

	"github.com/klauspost/compress/snappy"
)

type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

// NewSnappyCompressor creates a new Snappy block compressor, backing the
// SNAPPY compression tag.
func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

// Compress compresses the input data using Snappy block compression.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Encode(nil, data), nil
}

// Decompress decompresses a Snappy block into a buffer sized from the
// framing-declared length, and verifies the block restores exactly that
// many bytes.
func (c SnappyCompressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		if uncompressedSize != 0 {
			return nil, fmt.Errorf("empty snappy region, framing declares %d bytes", uncompressedSize)
		}

		return nil, nil
	}

	out, err := snappy.Decode(make([]byte, uncompressedSize), data)
	if err != nil {
		return nil, err
	}

	if len(out) != uncompressedSize {
		return nil, fmt.Errorf("snappy region restored %d bytes, framing declares %d", len(out), uncompressedSize)
	}

	return out, nil
}
