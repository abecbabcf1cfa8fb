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

// Block is one framed section of an FST file: a one-byte kind, the
// total on-wire length (kind byte + length field + payload), and the
// payload itself, a slice borrowed from the input buffer.
type Block struct {
	Kind        BlockKind
	StartOffset int64
	TotalLength uint64
	Payload     []byte
}

// FrameAll walks buf and returns every block it contains, in file
// order. It performs no semantic validation and never decompresses;
// it only establishes that the byte layout is self-consistent. It is
// total: either every block in buf is accounted for, or the returned
// error localises the first inconsistency by byte offset.
func FrameAll(buf []byte) ([]Block, error) {
	var blocks []Block
	off := int64(0)
	for len(buf) > 0 {
		b, rest, err := frameOne(buf, off)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
		consumed := int64(len(buf) - len(rest))
		off += consumed
		buf = rest
	}
	return blocks, nil
}

func frameOne(buf []byte, off int64) (Block, []byte, error) {
	if len(buf) < 1 {
		return Block{}, nil, newError(off, Truncated, "need 1 byte for block kind")
	}
	kind := BlockKind(buf[0])
	if !kind.valid() {
		return Block{}, nil, newErrorf(off, UnknownBlockKind, "block kind byte %d", buf[0])
	}
	rest := buf[1:]

	length, rest, err := readU64(rest, off+1)
	if err != nil {
		return Block{}, nil, err
	}
	if length < 8 {
		return Block{}, nil, newErrorf(off+1, BlockLengthUnderflow, "length field %d is less than 8", length)
	}
	payloadLen := length - 8
	if payloadLen > uint64(len(rest)) {
		return Block{}, nil, newErrorf(off+9, Truncated,
			"block declares %d payload bytes but only %d remain", payloadLen, len(rest))
	}
	payload := rest[:payloadLen]
	remainder := rest[payloadLen:]

	return Block{
		Kind:        kind,
		StartOffset: off,
		TotalLength: length + 1,
		Payload:     payload,
	}, remainder, nil
}
