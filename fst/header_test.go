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

func buildHeaderPayload(t *testing.T, endianness float64) []byte {
	t.Helper()
	buf := make([]byte, 321)
	binary.BigEndian.PutUint64(buf[0:], 100)  // start_time
	binary.BigEndian.PutUint64(buf[8:], 2000) // end_time
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(endianness))
	binary.BigEndian.PutUint64(buf[24:], 4096) // writer_memory_use
	binary.BigEndian.PutUint64(buf[32:], 3)    // num_scopes
	binary.BigEndian.PutUint64(buf[40:], 5)    // num_hierarchy_vars
	binary.BigEndian.PutUint64(buf[48:], 5)    // num_vars
	binary.BigEndian.PutUint64(buf[56:], 1)    // num_vc_blocks
	buf[64] = 0xFF                             // timescale = -1
	copy(buf[65:], "simtool")
	copy(buf[193:], "2026-07-30")
	// 93 reserved bytes at buf[219:312] left zero
	buf[312] = byte(FileVerilog)
	binary.BigEndian.PutUint64(buf[313:], 0) // time_zero
	return buf
}

func TestDecodeHeader(t *testing.T) {
	buf := buildHeaderPayload(t, math.E)
	h, err := decodeHeader(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if h.StartTime != 100 || h.EndTime != 2000 {
		t.Errorf("unexpected times: %+v", h)
	}
	if h.Timescale != -1 {
		t.Errorf("got timescale %d, want -1", h.Timescale)
	}
	if h.Writer != "simtool" {
		t.Errorf("got writer %q", h.Writer)
	}
	if h.Date != "2026-07-30" {
		t.Errorf("got date %q", h.Date)
	}
	if h.FileKind != FileVerilog {
		t.Errorf("got file kind %s", h.FileKind)
	}
}

func TestDecodeHeaderBadEndianness(t *testing.T) {
	buf := buildHeaderPayload(t, 3.0)
	_, err := decodeHeader(buf, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(EndiannessMismatch) {
		t.Errorf("expected EndiannessMismatch, got %v", fe)
	}
}

func TestDecodeHeaderTrailingBytes(t *testing.T) {
	buf := append(buildHeaderPayload(t, math.E), 0x00)
	_, err := decodeHeader(buf, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(TrailingBytes) {
		t.Errorf("expected TrailingBytes, got %v", fe)
	}
}

func TestDecodeHeaderBadFileKind(t *testing.T) {
	buf := buildHeaderPayload(t, math.E)
	buf[312] = 0xFF
	_, err := decodeHeader(buf, 0)
	fe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !fe.HasKind(UnknownFileKind) {
		t.Errorf("expected UnknownFileKind, got %v", fe)
	}
}
