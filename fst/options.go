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

// Options configures a single Parse call. The zero value is usable:
// it sets no caller cap (see MaxDecompressedSize) and warnings go
// nowhere.
type Options struct {
	// MaxDecompressedSize caps the declared size of any single
	// decompression and the declared element counts of Geometry and
	// Blackout blocks; gzip output is also cut off at this many bytes.
	// Zero means no caller cap: declared sizes and counts go
	// unchecked, and gzip output is bounded at defaultMaxDecompressed
	// (1 GiB).
	MaxDecompressedSize int64

	// Log receives non-fatal decode warnings. A nil Log discards
	// them.
	Log Logger
}

func (o Options) logger() Logger {
	if o.Log == nil {
		return discardLogger{}
	}
	return o.Log
}

func (o Options) maxSize() int64 {
	return o.MaxDecompressedSize
}
