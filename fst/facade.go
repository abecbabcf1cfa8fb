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
)

// VcEntry is one value-change-data block in file order, held in
// Content.Vcd and decoded lazily on the first call to Block or Data.
type VcEntry struct {
	Kind        BlockKind
	StartOffset int64

	rawPayload []byte
	maxSize    int64

	block    VcBlock
	blockErr error
	blockSet bool

	data    ValueChangeData
	dataErr error
	dataSet bool
}

// Content groups every block found in an FST file: at most one of
// each singleton kind (header, hierarchy, blackout, geometry), plus
// the value-change-data blocks in the order they appear. Each
// accessor decodes its block on first call and caches the result, so
// a failure in one block never prevents inspecting the others.
type Content struct {
	opts Options

	headerBlock *Block
	header      Header
	headerErr   error
	headerSet   bool

	hierarchyBlock *Block
	hierarchy      Scope
	hierarchyErr   error
	hierarchySet   bool

	blackoutBlock *Block
	blackout      Blackout
	blackoutErr   error
	blackoutSet   bool

	geometryBlock *Block
	geometry      Geometry
	geometryErr   error
	geometrySet   bool

	Vcd []*VcEntry
}

// Parse frames buf and classifies every block into a Content. A
// top-level GzipWrapper block's payload is decompressed and parsed in
// place of buf; the other blocks framed in buf are then not kept. Framing errors (a
// corrupt length field, a truncated block) are fatal and returned
// directly; per-block content errors are deferred to that block's
// accessor.
func Parse(buf []byte, opts Options) (*Content, error) {
	blocks, err := FrameAll(buf)
	if err != nil {
		return nil, err
	}
	return parseBlocks(blocks, opts)
}

func parseBlocks(blocks []Block, opts Options) (*Content, error) {
	c := &Content{opts: opts}
	for i := range blocks {
		b := &blocks[i]
		switch {
		case b.Kind == GzipWrapper:
			inner, err := unwrapGzipWrapper(b.Payload, opts)
			if err != nil {
				return nil, err
			}
			return Parse(inner, opts)
		case b.Kind == Skip:
			// carries no content; file order is otherwise unaffected.
		case b.Kind == Header:
			if c.headerBlock != nil {
				opts.logger().Warnf("duplicate header block at offset %d, overwriting earlier one", b.StartOffset)
			}
			c.headerBlock = b
		case b.Kind == HierarchyGz || b.Kind == HierarchyLz4 || b.Kind == HierarchyLz4Duo:
			if c.hierarchyBlock != nil {
				opts.logger().Warnf("duplicate hierarchy block at offset %d, overwriting earlier one", b.StartOffset)
			}
			c.hierarchyBlock = b
		case b.Kind == Blackout:
			if c.blackoutBlock != nil {
				opts.logger().Warnf("duplicate blackout block at offset %d, overwriting earlier one", b.StartOffset)
			}
			c.blackoutBlock = b
		case b.Kind == Geometry:
			if c.geometryBlock != nil {
				opts.logger().Warnf("duplicate geometry block at offset %d, overwriting earlier one", b.StartOffset)
			}
			c.geometryBlock = b
		case b.Kind.isVcData():
			c.Vcd = append(c.Vcd, &VcEntry{Kind: b.Kind, StartOffset: b.StartOffset, rawPayload: b.Payload, maxSize: opts.maxSize()})
		default:
			return nil, newErrorf(b.StartOffset, UnknownBlockKind, "block kind byte %d", byte(b.Kind))
		}
	}
	return c, nil
}

func unwrapGzipWrapper(payload []byte, opts Options) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, wrap(0, DecompressError, "gzip wrapper: "+err.Error(), nil)
	}
	defer r.Close()
	limit := opts.maxSize()
	if limit <= 0 {
		limit = defaultMaxDecompressed
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, wrap(0, DecompressError, "gzip wrapper: "+err.Error(), nil)
	}
	if int64(len(data)) > limit {
		return nil, newErrorf(0, DecompressError, "gzip wrapper exceeds %d byte cap", limit)
	}
	return data, nil
}

// Header returns the file's Header block, decoding it on first call.
// Reports (false, nil) when no header block was present in the file.
func (c *Content) Header() (Header, bool, error) {
	if c.headerBlock == nil {
		return Header{}, false, nil
	}
	if !c.headerSet {
		c.header, c.headerErr = decodeHeader(c.headerBlock.Payload, c.headerBlock.StartOffset+9)
		c.headerSet = true
	}
	return c.header, true, c.headerErr
}

// Geometry returns the file's Geometry block, decoding it on first
// call.
func (c *Content) Geometry() (Geometry, bool, error) {
	if c.geometryBlock == nil {
		return Geometry{}, false, nil
	}
	if !c.geometrySet {
		c.geometry, c.geometryErr = decodeGeometry(c.geometryBlock.Payload, c.opts.maxSize(), c.geometryBlock.StartOffset+9)
		c.geometrySet = true
	}
	return c.geometry, true, c.geometryErr
}

// Blackout returns the file's Blackout block, decoding it on first
// call.
func (c *Content) Blackout() (Blackout, bool, error) {
	if c.blackoutBlock == nil {
		return Blackout{}, false, nil
	}
	if !c.blackoutSet {
		c.blackout, c.blackoutErr = decodeBlackout(c.blackoutBlock.Payload, c.opts.maxSize(), c.blackoutBlock.StartOffset+9)
		c.blackoutSet = true
	}
	return c.blackout, true, c.blackoutErr
}

// Hierarchy returns the file's signal hierarchy as a folded scope
// tree, decompressing and tokenizing it on first call.
func (c *Content) Hierarchy() (Scope, bool, error) {
	if c.hierarchyBlock == nil {
		return Scope{}, false, nil
	}
	if !c.hierarchySet {
		c.hierarchy, c.hierarchyErr = decodeHierarchyBlock(*c.hierarchyBlock, c.opts)
		c.hierarchySet = true
	}
	return c.hierarchy, true, c.hierarchyErr
}

func decodeHierarchyBlock(b Block, opts Options) (Scope, error) {
	data, err := decompressHierarchyPayload(b, opts)
	if err != nil {
		return Scope{}, err
	}
	if tokens, err := tokenizeHierarchy(data, 0); err == nil {
		for _, tok := range tokens {
			if tok.kind == tokUnknown {
				opts.logger().Warnf("hierarchy block at offset %d: skipping unknown token byte %d", b.StartOffset, tok.unknown)
			}
		}
	}
	return decodeHierarchy(data, 0)
}

func decompressHierarchyPayload(b Block, opts Options) ([]byte, error) {
	log := opts.logger()
	max := opts.maxSize()
	payload := b.Payload
	base := b.StartOffset + 9

	switch b.Kind {
	case HierarchyGz:
		want, rest, err := readU64(payload, base)
		if err != nil {
			return nil, err
		}
		return gzipDecompressLenient(log, rest, want, max, base+8)
	case HierarchyLz4:
		want, rest, err := readU64(payload, base)
		if err != nil {
			return nil, err
		}
		return lz4DecompressLenient(log, rest, want, max, base+8)
	case HierarchyLz4Duo:
		final, rest, err := readU64(payload, base)
		if err != nil {
			return nil, err
		}
		mid, rest, err := readU64(rest, base+8)
		if err != nil {
			return nil, err
		}
		return lz4DoubleDecompressLenient(log, rest, mid, final, max, base+16)
	default:
		return nil, newErrorf(b.StartOffset, UnknownBlockKind, "block kind %s is not a hierarchy kind", b.Kind)
	}
}

// Block returns the region-split value-change-data content for this
// entry, decoding it on first call.
func (e *VcEntry) Block() (VcBlock, error) {
	if !e.blockSet {
		e.block, e.blockErr = decodeVcBlock(e.rawPayload, e.maxSize, e.StartOffset+9)
		e.blockSet = true
	}
	return e.block, e.blockErr
}

// Data returns the fully decoded value-change-data (absolute times and
// chain table) for this entry, decoding it on first call.
func (e *VcEntry) Data() (ValueChangeData, error) {
	if !e.dataSet {
		block, err := e.Block()
		if err != nil {
			e.dataErr = err
		} else {
			e.data, e.dataErr = buildChainTable(block, e.Kind)
		}
		e.dataSet = true
	}
	return e.data, e.dataErr
}
