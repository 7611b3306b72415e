// Package writer implements the TsFile write path: the positioned sink,
// the page/chunk/chunk-group pipeline, the footer metadata index and the
// orchestrating TsFileWriter.
package writer

import (
	"bytes"
	"io"
)

// PositionedSink is a write-only byte sink that reports its current offset.
//
// Position must always equal the total number of successfully written
// bytes: every offset embedded in file metadata is captured from it
// immediately before the referenced record is emitted.
type PositionedSink interface {
	io.Writer
	Position() int64
}

// Flusher is implemented by sinks that buffer writes. The file writer
// flushes such a sink exactly once, at the end of Close.
type Flusher interface {
	Flush() error
}

// CountingSink wraps an io.Writer and counts the bytes that were actually
// written, including the prefix accepted before a short-write error.
type CountingSink struct {
	w        io.Writer
	position int64
}

var _ PositionedSink = (*CountingSink)(nil)

// NewCountingSink wraps w in a position-tracking sink starting at offset 0.
func NewCountingSink(w io.Writer) *CountingSink {
	return &CountingSink{w: w}
}

func (s *CountingSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.position += int64(n)

	return n, err
}

// Position returns the running byte offset.
func (s *CountingSink) Position() int64 {
	return s.position
}

// Flush forwards to the underlying writer when it buffers.
func (s *CountingSink) Flush() error {
	if f, ok := s.w.(Flusher); ok {
		return f.Flush()
	}

	return nil
}

// BufferSink is an in-memory PositionedSink. The test harness uses it to
// capture the exact emitted bytes.
type BufferSink struct {
	buf bytes.Buffer
}

var _ PositionedSink = (*BufferSink)(nil)

// NewBufferSink creates an empty in-memory sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

func (s *BufferSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// Position returns the running byte offset.
func (s *BufferSink) Position() int64 {
	return int64(s.buf.Len())
}

// Bytes returns the captured file contents.
func (s *BufferSink) Bytes() []byte {
	return s.buf.Bytes()
}

// Len returns the number of captured bytes.
func (s *BufferSink) Len() int {
	return s.buf.Len()
}
