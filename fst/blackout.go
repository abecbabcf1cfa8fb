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

// BlackoutRecord marks a point where the dump either stops or resumes
// recording value changes.
type BlackoutRecord struct {
	Active    bool
	TimeDelta uint64
}

// Blackout is the decoded content of a Blackout block.
type Blackout struct {
	Records []BlackoutRecord
}

// decodeBlackout decodes a Blackout block's payload: a varint record
// count followed by that many (active-flag byte, varint time delta)
// pairs, with no bytes left over.
func decodeBlackout(payload []byte, max int64, base int64) (Blackout, error) {
	var bo Blackout
	buf := payload
	off := base

	count, rest, err := readVarint(buf, off)
	if err != nil {
		return bo, err
	}
	if err := checkSizeCap(count, max, off); err != nil {
		return bo, err
	}
	off += int64(len(buf) - len(rest))
	buf = rest

	bo.Records = make([]BlackoutRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		active, rest, err := readU8(buf, off)
		if err != nil {
			return bo, err
		}
		off += int64(len(buf) - len(rest))
		buf = rest

		delta, rest, err := readVarint(buf, off)
		if err != nil {
			return bo, err
		}
		off += int64(len(buf) - len(rest))
		buf = rest

		bo.Records = append(bo.Records, BlackoutRecord{Active: active == 1, TimeDelta: delta})
	}

	if len(buf) != 0 {
		return bo, newErrorf(off, TrailingBytes, "%d bytes remain after blackout records", len(buf))
	}
	return bo, nil
}
