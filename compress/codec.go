// Package compress provides the codecs behind the TsFile compression tag
// space.
//
// A chunk writer resolves its schema-declared compression tag to a Codec
// once at construction and pipes every prepared page body through it. The
// UNCOMPRESSED codec is a strict no-op so the required byte-exact
// uncompressed pass is preserved; the remaining tags delegate to block
// codecs from the ecosystem.
//
// The chunk framing records the uncompressed page-body length next to the
// compressed one, so decompression receives the exact output size and
// allocates once instead of guessing.
package compress

import (
	"fmt"

	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
)

// Compressor compresses a complete page body into its on-disk form.
//
// Memory management:
//   - The returned slice is owned by the caller; it may alias the input for
//     codecs that do not transform the data.
//   - The input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a page body from its on-disk form.
//
// uncompressedSize is the original body length as recorded in the chunk
// framing; implementations size their output from it and fail when the
// restored data does not match. Separate from Compressor because the two
// directions have asymmetric resource needs.
type Decompressor interface {
	Decompress(data []byte, uncompressedSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CodecFor resolves a compression tag to its codec. Tags without a
// registered codec fail with ErrUnsupportedCompression.
func CodecFor(c format.Compression) (Codec, error) {
	switch c {
	case format.CompressionUncompressed:
		return NewNoOpCompressor(), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, c.String())
	}
}
