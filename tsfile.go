// Package tsfile implements a writer for the TsFile columnar time-series
// file format.
//
// A TsFile stores typed, time-stamped samples addressed by
// (device, measurement). The writer buffers samples per measurement into
// pages, frames them into chunks grouped by device, and seals the file
// with a footer holding per-series statistics, a two-level metadata index
// over devices and measurements, and a bloom filter over the
// fully-qualified series paths.
//
// # File layout
//
//	"TsFile" 0x03                              file prologue
//	[chunk groups: 0x00 device | chunks ...]   data region
//	0x02                                       metadata separator
//	[timeseries metadata + index tree]         footer metadata
//	root index node | meta offset | bloom      TsFile metadata record
//	footer length | "TsFile"                   file epilogue
//
// # Basic Usage
//
//	sch, err := schema.NewBuilder().
//	    Device("d1").
//	    Measurement("s1", format.TypeInt32, format.EncodingPlain, format.CompressionUncompressed).
//	    Build()
//	if err != nil {
//	    return err
//	}
//
//	w, err := tsfile.Create("data.tsfile", sch)
//	if err != nil {
//	    return err
//	}
//
//	if err := w.Write("d1", "s1", 1, format.Int32Value(13)); err != nil {
//	    return err
//	}
//
//	if err := w.Close(); err != nil {
//	    return err
//	}
//
// This package provides convenient top-level wrappers around the writer
// package. For sink-level control (custom PositionedSink implementations,
// in-memory capture) use the writer package directly.
package tsfile

import (
	"io"

	"github.com/arloliu/tsfile/schema"
	"github.com/arloliu/tsfile/writer"
)

// New creates a TsFileWriter over an arbitrary destination and emits the
// file prologue.
//
// Available options:
//   - writer.WithPageSizeThreshold(bytes)
//   - writer.WithBloomFilterErrorRate(rate)
//   - writer.WithMaxDegreeOfIndexNode(degree)
func New(w io.Writer, sch *schema.Schema, opts ...writer.Option) (*writer.TsFileWriter, error) {
	return writer.NewWriter(w, sch, opts...)
}

// Create creates the file at path and a TsFileWriter over it. Close syncs
// and closes the file.
func Create(path string, sch *schema.Schema, opts ...writer.Option) (*writer.TsFileWriter, error) {
	return writer.Create(path, sch, opts...)
}
