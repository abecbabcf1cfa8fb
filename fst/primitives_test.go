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
	"math"
	"testing"
)

func TestReadBoundedCStringTerminated(t *testing.T) {
	buf := append([]byte("clk"), 0, 0xAA, 0xBB)
	got, rest, err := readBoundedCString(buf, 512, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "clk" {
		t.Errorf("got %q, want clk", got)
	}
	if len(rest) != 2 {
		t.Errorf("expected 2 trailing bytes, got %d", len(rest))
	}
}

func TestReadBoundedCStringNoTerminator(t *testing.T) {
	buf := make([]byte, 8)
	for i := range buf {
		buf[i] = 'a'
	}
	got, rest, err := readBoundedCString(buf, 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "aaaaaaaa" {
		t.Errorf("got %q", got)
	}
	if len(rest) != 0 {
		t.Errorf("expected no trailing bytes, got %d", len(rest))
	}
}

func TestReadBoundedCStringTruncated(t *testing.T) {
	buf := []byte("ab")
	_, _, err := readBoundedCString(buf, 8, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(Truncated) {
		t.Errorf("expected Truncated, got %v", fe)
	}
}

func TestIsEulersNumber(t *testing.T) {
	if !isEulersNumber(math.E) {
		t.Error("math.E should match")
	}
	if isEulersNumber(3.0) {
		t.Error("3.0 should not match")
	}
}

func TestReadF64LE(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(math.E))
	f, rest, err := readF64LE(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !isEulersNumber(f) {
		t.Errorf("got %v, want e", f)
	}
	if len(rest) != 0 {
		t.Errorf("expected no trailing bytes, got %d", len(rest))
	}
}
