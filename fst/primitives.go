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
)

const hierarchyNameMax = 512

// readU64 reads a big-endian u64 from the front of buf.
func readU64(buf []byte, base int64) (uint64, []byte, error) {
	if len(buf) < 8 {
		return 0, nil, newError(base, Truncated, "need 8 bytes for u64")
	}
	return binary.BigEndian.Uint64(buf), buf[8:], nil
}

// readI64 reads a big-endian i64 from the front of buf.
func readI64(buf []byte, base int64) (int64, []byte, error) {
	v, rest, err := readU64(buf, base)
	return int64(v), rest, err
}

// readI8 reads a single signed byte.
func readI8(buf []byte, base int64) (int8, []byte, error) {
	if len(buf) < 1 {
		return 0, nil, newError(base, Truncated, "need 1 byte for i8")
	}
	return int8(buf[0]), buf[1:], nil
}

// readU8 reads a single unsigned byte.
func readU8(buf []byte, base int64) (byte, []byte, error) {
	if len(buf) < 1 {
		return 0, nil, newError(base, Truncated, "need 1 byte for u8")
	}
	return buf[0], buf[1:], nil
}

// readF64LE reads a little-endian IEEE-754 double, used only for the
// header's endianness probe.
func readF64LE(buf []byte, base int64) (float64, []byte, error) {
	if len(buf) < 8 {
		return 0, nil, newError(base, Truncated, "need 8 bytes for f64")
	}
	bits := binary.LittleEndian.Uint64(buf)
	return math.Float64frombits(bits), buf[8:], nil
}

// readBoundedCString reads a NUL-terminated string of at most max
// bytes (not counting the NUL) per the bounded-C-string primitive: if
// a NUL appears within the first max bytes, the string ends there and
// the NUL is consumed; otherwise the first max bytes are taken
// verbatim as best-effort text and no terminator is consumed.
func readBoundedCString(buf []byte, max int, base int64) (string, []byte, error) {
	bound := buf
	if len(bound) > max {
		bound = bound[:max]
	}
	for i, b := range bound {
		if b == 0 {
			return string(buf[:i]), buf[i+1:], nil
		}
	}
	if len(buf) < max {
		return "", nil, newError(base+int64(len(buf)), Truncated, "string not terminated before input exhausted")
	}
	return string(bound), buf[max:], nil
}

// readHierarchyName reads a hierarchy name/component field, bounded
// at 512 bytes per the FST hierarchy token layout.
func readHierarchyName(buf []byte, base int64) (string, []byte, error) {
	return readBoundedCString(buf, hierarchyNameMax, base)
}

const eulersNumber = 2.718281828459045235360287471352662497757247093699959574966

// isEulersNumber reports whether f matches the header's endianness
// probe constant within one f64 ulp.
func isEulersNumber(f float64) bool {
	if f == eulersNumber {
		return true
	}
	diff := math.Abs(f - eulersNumber)
	ulp := math.Nextafter(eulersNumber, math.Inf(1)) - eulersNumber
	return diff <= ulp
}
