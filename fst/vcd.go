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

// VcBlock is the region-split content of a value-change-data block,
// before time deltas are accumulated or the chain table is built.
type VcBlock struct {
	StartTime      uint64
	EndTime        uint64
	MemoryRequired uint64
	BitsData       []byte
	WavesCount     uint64
	WavesPack      WriterPack
	WavesData      []byte
	PositionData   []byte
	TimeDeltas     []uint64
}

// ValueChangeData is a fully decoded value-change-data block: absolute
// timestamps and the chain table locating each variable's waveform
// payload within WavesData.
type ValueChangeData struct {
	Times       []uint64
	ChainOffset []int64
	ChainLength []uint32
}

// decodeVcBlock splits a value-change-data block's payload into its
// five regions (bits, waves header, waves data, position data, time
// data), decompressing the bits and time regions when their declared
// uncompressed length differs from the region's on-disk size.
func decodeVcBlock(payload []byte, max int64, base int64) (VcBlock, error) {
	var vc VcBlock
	buf := payload
	off := base

	startTime, rest, err := readU64(buf, off)
	if err != nil {
		return vc, err
	}
	vc.StartTime = startTime
	off += int64(len(buf) - len(rest))
	buf = rest

	endTime, rest, err := readU64(buf, off)
	if err != nil {
		return vc, err
	}
	vc.EndTime = endTime
	off += int64(len(buf) - len(rest))
	buf = rest

	memReq, rest, err := readU64(buf, off)
	if err != nil {
		return vc, err
	}
	vc.MemoryRequired = memReq
	off += int64(len(buf) - len(rest))
	buf = rest

	bitsUncompressedLen, rest, err := readVarint(buf, off)
	if err != nil {
		return vc, err
	}
	off += int64(len(buf) - len(rest))
	buf = rest

	bitsCompressedLen, rest, err := readVarint(buf, off)
	if err != nil {
		return vc, err
	}
	off += int64(len(buf) - len(rest))
	buf = rest

	// bits_count: cardinality of the bits vector, not needed to locate
	// further regions.
	_, rest, err = readVarint(buf, off)
	if err != nil {
		return vc, err
	}
	off += int64(len(buf) - len(rest))
	buf = rest

	if bitsCompressedLen > uint64(len(buf)) {
		return vc, newErrorf(off, ChainTableMalformed, "bits region length %d exceeds %d remaining bytes", bitsCompressedLen, len(buf))
	}
	bitsRaw := buf[:bitsCompressedLen]
	buf = buf[bitsCompressedLen:]
	bitsData, err := zlibDecompressIfNeeded(bitsRaw, bitsUncompressedLen, max, off)
	if err != nil {
		return vc, err
	}
	vc.BitsData = bitsData
	off += int64(bitsCompressedLen)

	wavesCount, rest, err := readVarint(buf, off)
	if err != nil {
		return vc, err
	}
	vc.WavesCount = wavesCount
	off += int64(len(buf) - len(rest))
	buf = rest

	packByte, rest, err := readU8(buf, off)
	if err != nil {
		return vc, err
	}
	pack, ok := writerPackFromByte(packByte)
	if !ok {
		return vc, newErrorf(off, UnknownWriterPack, "waves pack type byte %d", packByte)
	}
	vc.WavesPack = pack
	off += int64(len(buf) - len(rest))
	buf = rest

	const trailerLen = 24
	if len(buf) < trailerLen {
		return vc, newError(off, Truncated, "value-change-data trailer truncated")
	}
	tailOff := off + int64(len(buf)-trailerLen)
	trailer := buf[len(buf)-trailerLen:]
	buf = buf[:len(buf)-trailerLen]

	timeUncompressedLen, trest, err := readU64(trailer, tailOff)
	if err != nil {
		return vc, err
	}
	timeCompressedLen, trest, err := readU64(trest, tailOff+8)
	if err != nil {
		return vc, err
	}
	timeCount, _, err := readU64(trest, tailOff+16)
	if err != nil {
		return vc, err
	}

	if timeCompressedLen > uint64(len(buf)) {
		return vc, newErrorf(off, ChainTableMalformed, "time region length %d exceeds %d remaining bytes", timeCompressedLen, len(buf))
	}
	timeSplit := len(buf) - int(timeCompressedLen)
	timeRaw := buf[timeSplit:]
	buf = buf[:timeSplit]
	timeOff := off + int64(timeSplit)
	timeData, err := zlibDecompressIfNeeded(timeRaw, timeUncompressedLen, max, timeOff)
	if err != nil {
		return vc, err
	}

	deltas := make([]uint64, 0, timeCount)
	tdOff := timeOff
	tbuf := timeData
	for i := uint64(0); i < timeCount; i++ {
		v, r, err := readVarint(tbuf, tdOff)
		if err != nil {
			return vc, err
		}
		deltas = append(deltas, v)
		tdOff += int64(len(tbuf) - len(r))
		tbuf = r
	}
	vc.TimeDeltas = deltas

	const positionLenFieldSize = 8
	if len(buf) < positionLenFieldSize {
		return vc, newError(off, Truncated, "value-change-data missing position length field")
	}
	posLenOff := off + int64(len(buf)-positionLenFieldSize)
	positionLength, _, err := readU64(buf[len(buf)-positionLenFieldSize:], posLenOff)
	if err != nil {
		return vc, err
	}
	buf = buf[:len(buf)-positionLenFieldSize]

	if positionLength > uint64(len(buf)) {
		return vc, newErrorf(off, ChainTableMalformed, "position region length %d exceeds %d remaining bytes", positionLength, len(buf))
	}
	posSplit := len(buf) - int(positionLength)
	vc.PositionData = buf[posSplit:]
	vc.WavesData = buf[:posSplit]

	return vc, nil
}

// ExpandTimes turns a VcBlock's raw time deltas into cumulative,
// absolute timestamps.
func (vc VcBlock) ExpandTimes() []uint64 {
	times := make([]uint64, len(vc.TimeDeltas))
	var running uint64
	for i, d := range vc.TimeDeltas {
		running += d
		times[i] = running
	}
	return times
}

// buildChainTable runs the position-region state machine described
// for VcDataAlias2 blocks, producing a pair of parallel tables
// indexed by variable handle: ChainOffset[i] is either the byte offset
// of variable i's waveform payload within WavesData, or zero meaning
// aliased (in which case ChainLength[i] encodes the alias target);
// ChainLength[i] otherwise holds the byte length of that payload.
func buildChainTable(vc VcBlock, kind BlockKind) (ValueChangeData, error) {
	if kind != VcDataAlias2 {
		return ValueChangeData{}, newErrorf(0, ChainTableMalformed, "chain-table decode not implemented for %s position encoding", kind)
	}

	n := int(vc.WavesCount) + 1
	chainOffset := make([]int64, n)
	chainLength := make([]uint32, n)

	var pval int64
	var pidx, idx int
	var prevAlias uint32

	buf := vc.PositionData
	var off int64
	for len(buf) > 0 {
		if idx >= n {
			return ValueChangeData{}, newError(off, ChainTableMalformed, "position region produced more entries than waves_count")
		}
		if buf[0]&1 != 0 {
			val, rest, err := readSVarint(buf, off)
			if err != nil {
				return ValueChangeData{}, err
			}
			off += int64(len(buf) - len(rest))
			buf = rest

			shval := val >> 1
			switch {
			case shval > 0:
				pval += shval
				chainOffset[idx] = pval
				if idx != 0 {
					chainLength[pidx] = uint32(pval - chainOffset[pidx])
				}
				pidx = idx
				idx++
			case shval < 0:
				chainOffset[idx] = 0
				// keep the low 32 bits of the negative alias value; the
				// int32 step makes the two's-complement truncation explicit
				alias := uint32(int32(shval))
				prevAlias = alias
				chainLength[idx] = alias
				idx++
			default:
				chainOffset[idx] = 0
				chainLength[idx] = prevAlias
				idx++
			}
		} else {
			v, rest, err := readVarint(buf, off)
			if err != nil {
				return ValueChangeData{}, err
			}
			off += int64(len(buf) - len(rest))
			buf = rest

			loopCount := v >> 1
			for i := uint64(0); i < loopCount; i++ {
				if idx >= n {
					return ValueChangeData{}, newError(off, ChainTableMalformed, "position region run-length overruns waves_count")
				}
				chainOffset[idx] = 0
				idx++
			}
		}
	}

	if idx >= n {
		return ValueChangeData{}, newError(off, ChainTableMalformed, "position region produced more entries than waves_count")
	}
	chainOffset[idx] = int64(len(vc.WavesData)) + 1
	chainLength[pidx] = uint32(chainOffset[idx] - chainOffset[pidx])

	if idx != int(vc.WavesCount) {
		return ValueChangeData{}, newErrorf(off, ChainTableMalformed, "chain table produced %d entries, want %d", idx, vc.WavesCount)
	}

	return ValueChangeData{
		Times:       vc.ExpandTimes(),
		ChainOffset: chainOffset,
		ChainLength: chainLength,
	}, nil
}
