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

package fst

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/fstfile/fst/compr"
)

// defaultMaxDecompressed bounds how large a gzip stream may grow to
// when Options.MaxDecompressedSize is zero.
const defaultMaxDecompressed = 1 << 30 // 1 GiB

func checkSizeCap(declared uint64, max int64, base int64) error {
	if max > 0 && declared > uint64(max) {
		return newErrorf(base, DecompressError, "size cap exceeded: declared %d bytes, cap is %d", declared, max)
	}
	return nil
}

// gzipDecompressLenient decodes a gzip stream to completion. It does
// not require the actual decoded length to match want; mismatches are
// reported to log as a warning, matching the reference decoder's
// extract_data_gz behavior, and the bytes actually produced are
// returned regardless.
func gzipDecompressLenient(log Logger, stream []byte, want uint64, max int64, base int64) ([]byte, error) {
	if err := checkSizeCap(want, max, base); err != nil {
		return nil, err
	}
	r, err := gzip.NewReader(bytes.NewReader(stream))
	if err != nil {
		return nil, wrap(base, DecompressError, "gzip: "+err.Error(), nil)
	}
	defer r.Close()
	limit := max
	if limit <= 0 {
		limit = defaultMaxDecompressed
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, wrap(base, DecompressError, "gzip: "+err.Error(), nil)
	}
	if int64(len(data)) > limit {
		return nil, newErrorf(base, DecompressError, "size cap exceeded: decompressed beyond %d bytes", limit)
	}
	if uint64(len(data)) != want {
		log.Warnf("gzip block at offset %d: declared %d decompressed bytes, got %d", base, want, len(data))
	}
	return data, nil
}

// lz4DecompressLenient decompresses a single LZ4 block into a buffer
// sized for want bytes, warning (not failing) if the actual output is
// shorter than declared. Output longer than want does not fit the
// buffer and fails with DecompressError.
func lz4DecompressLenient(log Logger, block []byte, want uint64, max int64, base int64) ([]byte, error) {
	if err := checkSizeCap(want, max, base); err != nil {
		return nil, err
	}
	dst := make([]byte, want)
	n, err := lz4.UncompressBlock(block, dst)
	if err != nil {
		return nil, wrap(base, DecompressError, "lz4: "+err.Error(), nil)
	}
	if uint64(n) != want {
		log.Warnf("lz4 block at offset %d: declared %d decompressed bytes, got %d", base, want, n)
	}
	return dst[:n], nil
}

// lz4DoubleDecompressLenient decompresses an LZ4-block payload twice:
// once into an intermediate buffer of size mid, then again into a
// final buffer of size want, per HierarchyLz4Duo's two-pass encoding.
func lz4DoubleDecompressLenient(log Logger, block []byte, mid, want uint64, max int64, base int64) ([]byte, error) {
	intermediate, err := lz4DecompressLenient(log, block, mid, max, base)
	if err != nil {
		return nil, err
	}
	final, err := lz4DecompressLenient(log, intermediate, want, max, base)
	if err != nil {
		return nil, err
	}
	return final, nil
}

// zlibDecompressIfNeeded decompresses payload with zlib when
// uncompressedLen differs from len(payload) (the FST convention used
// by Geometry and the VCD bits/time regions), otherwise returns
// payload unchanged. Unlike the hierarchy decompressors above, the
// declared length here is load-bearing: it sizes the destination
// buffer exactly, and a mismatch is a hard failure since the caller
// goes on to parse a fixed count of varints out of the result.
func zlibDecompressIfNeeded(payload []byte, uncompressedLen uint64, max int64, base int64) ([]byte, error) {
	if uint64(len(payload)) == uncompressedLen {
		return payload, nil
	}
	if err := checkSizeCap(uncompressedLen, max, base); err != nil {
		return nil, err
	}
	dst := make([]byte, uncompressedLen)
	dec := compr.Decompression("zlib")
	if err := dec.Decompress(payload, dst); err != nil {
		return nil, wrap(base, DecompressError, "zlib: "+err.Error(), nil)
	}
	return dst, nil
}
