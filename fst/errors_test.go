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
	"errors"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	if got := Truncated.String(); got != "Truncated" {
		t.Errorf("got %q, want Truncated", got)
	}
	if got := Kind(999).String(); got != "Kind(unknown)" {
		t.Errorf("got %q for out-of-range kind", got)
	}
}

func TestFrameString(t *testing.T) {
	f := Frame{Offset: 12, Kind: Truncated}
	if got := f.String(); got != "Truncated at offset 12" {
		t.Errorf("got %q", got)
	}
	f.Detail = "ran out of bytes"
	if got := f.String(); got != "Truncated at offset 12: ran out of bytes" {
		t.Errorf("got %q", got)
	}
}

func TestNewErrorAndError(t *testing.T) {
	e := newErrorf(5, UnknownBlockKind, "block kind byte %d", 250)
	if !strings.Contains(e.Error(), "UnknownBlockKind") || !strings.Contains(e.Error(), "250") {
		t.Errorf("got %q", e.Error())
	}
	if !e.HasKind(UnknownBlockKind) {
		t.Error("expected HasKind(UnknownBlockKind)")
	}
	if e.HasKind(Truncated) {
		t.Error("did not expect HasKind(Truncated)")
	}
}

func TestWrapChainsFrames(t *testing.T) {
	inner := newError(1, DecompressError, "zlib: invalid header")
	outer := wrap(10, ChainTableMalformed, "position region malformed", inner)
	if len(outer.Frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(outer.Frames))
	}
	if outer.Frames[0].Kind != ChainTableMalformed || outer.Frames[1].Kind != DecompressError {
		t.Errorf("unexpected frame order: %+v", outer.Frames)
	}
	if !outer.HasKind(DecompressError) {
		t.Error("expected HasKind(DecompressError) to see through to the wrapped cause")
	}
}

func TestWrapWithNilCause(t *testing.T) {
	e := wrap(0, Truncated, "eof", nil)
	if len(e.Frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(e.Frames))
	}
}

func TestWrapWithPlainError(t *testing.T) {
	e := wrap(3, DecompressError, "lz4", errors.New("boom"))
	if len(e.Frames) != 2 || e.Frames[1].Kind != DecompressError {
		t.Fatalf("unexpected frames: %+v", e.Frames)
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := newError(1, DecompressError, "zlib")
	outer := wrap(10, ChainTableMalformed, "bad", inner)
	u := errors.Unwrap(outer)
	fe, ok := u.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", u)
	}
	if len(fe.Frames) != 1 || fe.Frames[0].Kind != DecompressError {
		t.Errorf("unexpected unwrapped frames: %+v", fe.Frames)
	}
	if errors.Unwrap(fe) != nil {
		t.Error("expected nil Unwrap at chain end")
	}
}

func TestNilErrorIsSafe(t *testing.T) {
	var e *Error
	if e.HasKind(Truncated) {
		t.Error("nil *Error should never HasKind")
	}
	if e.Error() != "fst: empty error" {
		t.Errorf("got %q", e.Error())
	}
}
