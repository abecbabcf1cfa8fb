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
	"fmt"
	"strings"
)

// Kind identifies one member of the closed error taxonomy. It is a
// pure classification: all contextual data (offending byte values,
// decompression failure reasons) lives in the Frame that carries it.
type Kind int

const (
	UnknownBlockKind Kind = iota
	BlockLengthUnderflow
	LengthExceedsMachineWord
	StringNotTerminated
	EndiannessMismatch
	UnknownScopeType
	UnknownAttrType
	UnknownMiscType
	UnknownVarType
	UnknownVarDir
	UnknownFileKind
	UnknownWriterPack
	VarintOverflow
	TrailingBytes
	Truncated
	ChainTableMalformed
	DecompressError
)

var kindNames = [...]string{
	"UnknownBlockKind", "BlockLengthUnderflow", "LengthExceedsMachineWord",
	"StringNotTerminated", "EndiannessMismatch", "UnknownScopeType",
	"UnknownAttrType", "UnknownMiscType", "UnknownVarType", "UnknownVarDir",
	"UnknownFileKind", "UnknownWriterPack", "VarintOverflow", "TrailingBytes",
	"Truncated", "ChainTableMalformed", "DecompressError",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(unknown)"
}

// Frame is one layer of parse-error context: the kind of failure and
// the byte offset (relative to whichever buffer the reporting layer
// was working against: the original file buffer for framing and block
// content, or the decompressed hierarchy stream for hierarchy tokens)
// at which it was detected.
type Frame struct {
	Offset int64
	Kind   Kind
	Detail string
}

func (f Frame) String() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s at offset %d", f.Kind, f.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", f.Kind, f.Offset, f.Detail)
}

// Error is a chain of Frames, newest cause first. It implements the
// standard error interface plus Unwrap, which yields the chain without
// its newest frame; HasKind tests the Kind of every frame.
type Error struct {
	Frames []Frame
}

func newError(offset int64, kind Kind, detail string) *Error {
	return &Error{Frames: []Frame{{Offset: offset, Kind: kind, Detail: detail}}}
}

func newErrorf(offset int64, kind Kind, format string, args ...any) *Error {
	return newError(offset, kind, fmt.Sprintf(format, args...))
}

// wrap prepends a new frame onto an existing error, keeping newest
// cause first, and returns the combined chain. If cause is nil, wrap
// returns a fresh single-frame error.
func wrap(offset int64, kind Kind, detail string, cause error) *Error {
	e := newError(offset, kind, detail)
	if cause == nil {
		return e
	}
	if ce, ok := cause.(*Error); ok {
		e.Frames = append(e.Frames, ce.Frames...)
		return e
	}
	e.Frames = append(e.Frames, Frame{Offset: offset, Kind: DecompressError, Detail: cause.Error()})
	return e
}

func (e *Error) Error() string {
	if e == nil || len(e.Frames) == 0 {
		return "fst: empty error"
	}
	parts := make([]string, len(e.Frames))
	for i, f := range e.Frames {
		parts[i] = f.String()
	}
	return "fst: " + strings.Join(parts, "; caused by: ")
}

// Unwrap exposes the chain's immediate cause (the frames after the
// newest one) as a new *Error, so the chain can be walked one frame at
// a time rather than as an opaque blob.
func (e *Error) Unwrap() error {
	if e == nil || len(e.Frames) < 2 {
		return nil
	}
	return &Error{Frames: e.Frames[1:]}
}

// HasKind reports whether any frame in the chain has the given Kind.
// Kind is not an error value, so errors.Is cannot test for it.
func (e *Error) HasKind(k Kind) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Frames {
		if f.Kind == k {
			return true
		}
	}
	return false
}
