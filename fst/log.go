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
	"log"
	"os"
)

// Logger receives non-fatal diagnostics produced while decoding: a
// declared-vs-actual decompressed size mismatch, an unknown hierarchy
// token skipped, a duplicate singleton block overwritten. Nothing in
// the core requires a Logger to be supplied; the zero value of
// Options uses discardLogger, so library use with no wiring produces
// no output.
type Logger interface {
	Warnf(format string, args ...any)
}

type discardLogger struct{}

func (discardLogger) Warnf(string, ...any) {}

// StdLogger adapts the standard library's *log.Logger to the Logger
// interface, for callers (such as the command-line collaborator) that
// want warnings written to stderr.
type StdLogger struct {
	*log.Logger
}

// NewStdLogger returns a StdLogger writing to os.Stderr with no
// timestamp prefix, matching the terse diagnostic style expected of a
// decode library's warnings.
func NewStdLogger() StdLogger {
	return StdLogger{log.New(os.Stderr, "fst: ", 0)}
}

func (s StdLogger) Warnf(format string, args ...any) {
	s.Printf(format, args...)
}
