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
	"testing"
)

func TestReadVarint(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint64
		rest int
	}{
		{"two-byte", []byte{0xC5, 0x18}, 3141, 0},
		{"one-byte", []byte{0x01}, 1, 0},
		{"trailing-bytes", []byte{0x01, 0xAA, 0xBB}, 1, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, rest, err := readVarint(c.in, 0)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
			if len(rest) != c.rest {
				t.Errorf("got %d trailing bytes, want %d", len(rest), c.rest)
			}
		})
	}
}

func TestReadVarintOverflow(t *testing.T) {
	in := append(bytes.Repeat([]byte{0xFF}, 11), 0x01)
	_, _, err := readVarint(in, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(VarintOverflow) {
		t.Errorf("expected VarintOverflow, got %v", fe)
	}
}

func TestReadVarintTruncated(t *testing.T) {
	in := []byte{0xC5}
	_, _, err := readVarint(in, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(Truncated) {
		t.Errorf("expected Truncated, got %v", fe)
	}
}

func TestReadSVarint(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want int64
	}{
		{"negative-two-byte", []byte{0xC5, 0x58}, -59},
		{"negative-three-byte", []byte{0xBB, 0x87, 0x7F}, -15429},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, _, err := readSVarint(c.in, 0)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

func appendVarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 3141, 1 << 20, 1 << 40, ^uint64(0) >> 1}
	for _, v := range values {
		enc := appendVarint(nil, v)
		got, rest, err := readVarint(enc, 0)
		if err != nil {
			t.Fatalf("value %d: %s", v, err)
		}
		if len(rest) != 0 {
			t.Fatalf("value %d: %d bytes left over", v, len(rest))
		}
		if got != v {
			t.Fatalf("round-trip %d got %d", v, got)
		}
	}
}
