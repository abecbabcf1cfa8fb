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

// Package fst decodes FST (Fast Signal Trace) waveform files: a compact
// binary container used by digital-hardware simulators to record signal
// transitions over time.
package fst

// BlockKind identifies the content of a framed Block.
type BlockKind byte

const (
	Header          BlockKind = 0
	VcData          BlockKind = 1
	Blackout        BlockKind = 2
	Geometry        BlockKind = 3
	HierarchyGz     BlockKind = 4
	VcDataAlias     BlockKind = 5
	HierarchyLz4    BlockKind = 6
	HierarchyLz4Duo BlockKind = 7
	VcDataAlias2    BlockKind = 8
	GzipWrapper     BlockKind = 254
	Skip            BlockKind = 255
)

func (k BlockKind) String() string {
	switch k {
	case Header:
		return "Header"
	case VcData:
		return "VcData"
	case Blackout:
		return "Blackout"
	case Geometry:
		return "Geometry"
	case HierarchyGz:
		return "HierarchyGz"
	case VcDataAlias:
		return "VcDataAlias"
	case HierarchyLz4:
		return "HierarchyLz4"
	case HierarchyLz4Duo:
		return "HierarchyLz4Duo"
	case VcDataAlias2:
		return "VcDataAlias2"
	case GzipWrapper:
		return "GzipWrapper"
	case Skip:
		return "Skip"
	default:
		return "BlockKind(unknown)"
	}
}

// isVcData reports whether k is one of the three value-change-data
// block kinds (VcData, VcDataAlias, VcDataAlias2).
func (k BlockKind) isVcData() bool {
	return k == VcData || k == VcDataAlias || k == VcDataAlias2
}

// valid reports whether k is one of the eleven recognized block kinds.
func (k BlockKind) valid() bool {
	switch k {
	case Header, VcData, Blackout, Geometry, HierarchyGz, VcDataAlias,
		HierarchyLz4, HierarchyLz4Duo, VcDataAlias2, GzipWrapper, Skip:
		return true
	default:
		return false
	}
}
