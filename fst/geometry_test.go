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
	"encoding/binary"
	"testing"

	"github.com/fstfile/fst/compr"
)

func TestDecodeGeometryUncompressed(t *testing.T) {
	widths := appendVarint(nil, 1)
	widths = appendVarint(widths, 8)
	widths = appendVarint(widths, 0) // real

	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:], uint64(len(widths)))
	binary.BigEndian.PutUint64(buf[8:], 3)
	buf = append(buf, widths...)

	g, err := decodeGeometry(buf, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Widths) != 3 {
		t.Fatalf("got %d widths, want 3", len(g.Widths))
	}
	if g.Widths[0] != 1 || g.Widths[1] != 8 {
		t.Errorf("unexpected widths %v", g.Widths)
	}
	if !g.IsReal(2) {
		t.Error("index 2 should be real (width 0)")
	}
	if g.IsReal(0) {
		t.Error("index 0 should not be real")
	}
}

func TestDecodeGeometryCompressed(t *testing.T) {
	// 100,000 identical widths, the kind of input that compresses far
	// below 1 byte/element and must not be rejected by a check against
	// the compressed buffer's length.
	const n = 100000
	var widths []byte
	for i := 0; i < n; i++ {
		widths = appendVarint(widths, 4)
	}
	compressed := compr.Compression("zlib").Compress(widths, nil)

	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:], uint64(len(widths)))
	binary.BigEndian.PutUint64(buf[8:], n)
	buf = append(buf, compressed...)

	g, err := decodeGeometry(buf, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Widths) != n {
		t.Fatalf("got %d widths, want %d", len(g.Widths), n)
	}
	for i, w := range g.Widths {
		if w != 4 {
			t.Fatalf("widths[%d] = %d, want 4", i, w)
		}
	}
}

func TestDecodeGeometryCountOverSizeCap(t *testing.T) {
	// a declared element count that would require allocating far more
	// than the configured cap fails fast rather than attempting it.
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:], 0)
	binary.BigEndian.PutUint64(buf[8:], 1<<40)
	_, err := decodeGeometry(buf, 1<<20, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(DecompressError) {
		t.Errorf("expected DecompressError, got %v", fe)
	}
}

func TestDecodeGeometryNoSizeCapFailsTruncatedInstead(t *testing.T) {
	// with no cap configured, a large declared count is not rejected
	// up front; it runs out of varints to read and fails Truncated,
	// matching the reference decoder's plain usize::try_from.
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:], 0)
	binary.BigEndian.PutUint64(buf[8:], 1<<20)
	_, err := decodeGeometry(buf, 0, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(Truncated) {
		t.Errorf("expected Truncated, got %v", fe)
	}
}
