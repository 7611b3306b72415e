package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor, backing the GZIP
// compression tag.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses the input data into a complete gzip stream.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)

	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a complete gzip stream into a buffer sized from the
// framing-declared length. Reading one byte past that length distinguishes
// a stream that is exactly the declared size from one that was truncated
// short or overruns the framing.
func (c GzipCompressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		if uncompressedSize != 0 {
			return nil, fmt.Errorf("empty gzip region, framing declares %d bytes", uncompressedSize)
		}

		return nil, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := make([]byte, uncompressedSize+1)
	n, err := io.ReadFull(zr, out)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	if n != uncompressedSize {
		return nil, fmt.Errorf("gzip region restored %d bytes, framing declares %d", n, uncompressedSize)
	}

	return out[:n], nil
}
