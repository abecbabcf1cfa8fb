// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package compr provides a unified interface wrapping the compression
// codecs an FST file may use: gzip (hierarchy blocks and whole-file
// wrapping), zlib (geometry and VCD sub-regions), and LZ4 (hierarchy
// blocks, single or double pass).
package compr

import (
	"bytes"
	"fmt"
	"io"
	"unsafe"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// Compressor describes a compression algorithm that appends its
// compressed output to a caller-supplied buffer.
type Compressor interface {
	// Name is the name of the compression algorithm.
	Name() string
	// Compress should append the compressed contents
	// of src to dst and return the result.
	Compress(src, dst []byte) []byte
}

// Decompressor is the interface a reader uses to decompress blocks.
type Decompressor interface {
	// Name is the name of the compression algorithm.
	// See also Compressor.Name.
	Name() string
	// Decompress decompresses source data
	// into dst. It should error out if
	// dst is not large enough to fit the
	// encoded source data.
	//
	// It must be safe to make multiple
	// calls to Decompress simultaneously
	// from different goroutines.
	Decompress(src, dst []byte) error
}

type gzipCompressor struct{}

func (gzipCompressor) Name() string { return "gzip" }

func (gzipCompressor) Compress(src, dst []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write(src)
	_ = w.Close()
	return append(dst, buf.Bytes()...)
}

type gzipDecompressor struct{}

func (gzipDecompressor) Name() string { return "gzip" }

func (gzipDecompressor) Decompress(src, dst []byte) error {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer r.Close()
	into := dst[:0:len(dst)]
	n, err := io.ReadFull(r, into[:cap(into)])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("gzip decompress: %w", err)
	}
	if n != len(dst) {
		return fmt.Errorf("gzip decompress: expected %d bytes, got %d", len(dst), n)
	}
	if m, _ := r.Read(make([]byte, 1)); m != 0 {
		return fmt.Errorf("gzip decompress: output exceeds %d bytes", len(dst))
	}
	return nil
}

type zlibCompressor struct{}

func (zlibCompressor) Name() string { return "zlib" }

func (zlibCompressor) Compress(src, dst []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(src)
	_ = w.Close()
	return append(dst, buf.Bytes()...)
}

type zlibDecompressor struct{}

func (zlibDecompressor) Name() string { return "zlib" }

func (zlibDecompressor) Decompress(src, dst []byte) error {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("zlib: %w", err)
	}
	defer r.Close()
	into := dst[:0:len(dst)]
	n, err := io.ReadFull(r, into[:cap(into)])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("zlib decompress: %w", err)
	}
	if n != len(dst) {
		return fmt.Errorf("zlib decompress: expected %d bytes, got %d", len(dst), n)
	}
	if m, _ := r.Read(make([]byte, 1)); m != 0 {
		return fmt.Errorf("zlib decompress: output exceeds %d bytes", len(dst))
	}
	return nil
}

type lz4Compressor struct{}

func (lz4Compressor) Name() string { return "lz4" }

func (lz4Compressor) Compress(src, dst []byte) []byte {
	bound := lz4.CompressBlockBound(len(src))
	tail := dst[len(dst):cap(dst)]
	reused := len(tail) >= bound && !overlaps(src, tail)
	// lz4 requires non-overlapping src and dst, same constraint
	// as s2's block compressor
	if !reused {
		tail = make([]byte, bound)
	}
	var c lz4.Compressor
	n, err := c.CompressBlock(src, tail)
	if err != nil || n == 0 {
		// incompressible input: the lz4 block format has no
		// raw/stored fallback here, so surface nothing
		// compressed rather than a corrupt frame
		return dst
	}
	if reused {
		return dst[:len(dst)+n]
	}
	return append(dst, tail[:n]...)
}

type lz4Decompressor struct{}

func (lz4Decompressor) Name() string { return "lz4" }

func (lz4Decompressor) Decompress(src, dst []byte) error {
	into := dst[:0:len(dst)]
	n, err := lz4.UncompressBlock(src, into[:cap(into)])
	if err != nil {
		return fmt.Errorf("lz4 decompress: %w", err)
	}
	if n != len(dst) {
		return fmt.Errorf("lz4 decompress: expected %d bytes, got %d", len(dst), n)
	}
	return nil
}

// Compression selects a compression algorithm by name. The returned
// Compressor will return the same value for Compressor.Name as the
// specified name.
func Compression(name string) Compressor {
	switch name {
	case "gzip":
		return gzipCompressor{}
	case "zlib":
		return zlibCompressor{}
	case "lz4":
		return lz4Compressor{}
	default:
		return nil
	}
}

// Decompression selects a decompression algorithm by name.
func Decompression(name string) Decompressor {
	switch name {
	case "gzip":
		return gzipDecompressor{}
	case "zlib":
		return zlibDecompressor{}
	case "lz4":
		return lz4Decompressor{}
	default:
		return nil
	}
}

func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(&a[0]))
	a1 := a0 + uintptr(len(a))
	b0 := uintptr(unsafe.Pointer(&b[0]))
	b1 := b0 + uintptr(len(b))
	return a0 < b1 && b0 < a1
}
