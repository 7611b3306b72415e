package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 block compressor, backing the LZ4
// compression tag.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block. An LZ4 block does not record its
// own decoded length, so the buffer is sized exactly from the
// framing-declared length; a block that decodes to any other size is
// corrupt.
func (c LZ4Compressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		if uncompressedSize != 0 {
			return nil, fmt.Errorf("empty lz4 region, framing declares %d bytes", uncompressedSize)
		}

		return nil, nil
	}

	dst := make([]byte, uncompressedSize)

	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	if n != uncompressedSize {
		return nil, fmt.Errorf("lz4 region restored %d bytes, framing declares %d", n, uncompressedSize)
	}

	return dst[:n], nil
}
