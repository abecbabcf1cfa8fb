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

import "golang.org/x/exp/maps"

const (
	attrBeginTag  byte = 252
	attrEndTag    byte = 253
	scopeBeginTag byte = 254
	scopeEndTag   byte = 255
)

// Vcd is a signal declaration carried by a hierarchy token of the same
// name (the overload with the block kind VcData is unrelated).
type Vcd struct {
	VarType VarType
	Dir     VarDir
	Name    string
	Length  uint64
	AliasID uint64
}

// Attribute is a decoded AttrBegin hierarchy token.
type Attribute struct {
	Kind  AttributeKind
	Misc  MiscKind
	Name  string
	Value uint64
}

// Scope is one node of the folded hierarchy tree: a named container
// holding attributes, signal declarations, and nested scopes.
type Scope struct {
	Kind       ScopeKind
	Name       string
	Component  string
	Attributes []Attribute
	Signals    []Vcd
	Scopes     []Scope
}

// SignalIndex maps a fully-qualified signal name to its declaration,
// built by walking a folded Scope tree.
type SignalIndex map[string]Vcd

// Index walks the scope tree and returns a flat name-to-signal lookup,
// using dotted scope-qualified names.
func (s Scope) Index() SignalIndex {
	idx := make(SignalIndex)
	s.index("", idx)
	return idx
}

func (s Scope) index(prefix string, idx SignalIndex) {
	qualified := s.Name
	if prefix != "" {
		qualified = prefix + "." + s.Name
	}
	for _, v := range s.Signals {
		idx[qualified+"."+v.Name] = v
	}
	for _, child := range s.Scopes {
		child.index(qualified, idx)
	}
}

// Names returns the signal names held in the index, in no particular
// order.
func (idx SignalIndex) Names() []string {
	return maps.Keys(idx)
}

type tokenKind int

const (
	tokAttribute tokenKind = iota
	tokAttributeEnd
	tokScopeBegin
	tokScopeEnd
	tokVcd
	tokUnknown
)

type hierarchyToken struct {
	kind       tokenKind
	attribute  Attribute
	scopeBegin Scope
	vcd        Vcd
	unknown    byte
}

// tokenizeHierarchy splits a decompressed hierarchy payload into a
// flat token stream, consuming the entire buffer.
func tokenizeHierarchy(data []byte, base int64) ([]hierarchyToken, error) {
	var tokens []hierarchyToken
	off := base
	for len(data) > 0 {
		tok, rest, n, err := parseHierarchyToken(data, off)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		data = rest
		off += n
	}
	return tokens, nil
}

func parseHierarchyToken(buf []byte, off int64) (hierarchyToken, []byte, int64, error) {
	start := len(buf)
	tag := buf[0]

	switch tag {
	case attrBeginTag:
		rest := buf[1:]
		o := off + 1

		attrByte, r, err := readU8(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		ak := AttributeKind(attrByte)
		if !ak.valid() {
			return hierarchyToken{}, nil, 0, newErrorf(o, UnknownAttrType, "attribute kind byte %d", attrByte)
		}
		o += int64(len(rest) - len(r))
		rest = r

		miscByte, r, err := readU8(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		mk := MiscKind(miscByte)
		if !mk.valid() {
			return hierarchyToken{}, nil, 0, newErrorf(o, UnknownMiscType, "misc kind byte %d", miscByte)
		}
		o += int64(len(rest) - len(r))
		rest = r

		name, r, err := readHierarchyName(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		o += int64(len(rest) - len(r))
		rest = r

		val, r, err := readVarint(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		o += int64(len(rest) - len(r))
		rest = r

		tok := hierarchyToken{kind: tokAttribute, attribute: Attribute{Kind: ak, Misc: mk, Name: name, Value: val}}
		return tok, rest, int64(start - len(rest)), nil

	case attrEndTag:
		return hierarchyToken{kind: tokAttributeEnd}, buf[1:], 1, nil

	case scopeBeginTag:
		rest := buf[1:]
		o := off + 1

		stByte, r, err := readU8(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		sk := ScopeKind(stByte)
		if !sk.valid() {
			return hierarchyToken{}, nil, 0, newErrorf(o, UnknownScopeType, "scope kind byte %d", stByte)
		}
		o += int64(len(rest) - len(r))
		rest = r

		name, r, err := readHierarchyName(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		o += int64(len(rest) - len(r))
		rest = r

		component, r, err := readHierarchyName(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		o += int64(len(rest) - len(r))
		rest = r

		tok := hierarchyToken{kind: tokScopeBegin, scopeBegin: Scope{Kind: sk, Name: name, Component: component}}
		return tok, rest, int64(start - len(rest)), nil

	case scopeEndTag:
		return hierarchyToken{kind: tokScopeEnd}, buf[1:], 1, nil

	default:
		vt := VarType(tag)
		if !vt.valid() {
			return hierarchyToken{kind: tokUnknown, unknown: tag}, buf[1:], 1, nil
		}
		rest := buf[1:]
		o := off + 1

		dirByte, r, err := readU8(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		vd := VarDir(dirByte)
		if !vd.valid() {
			return hierarchyToken{}, nil, 0, newErrorf(o, UnknownVarDir, "var dir byte %d", dirByte)
		}
		o += int64(len(rest) - len(r))
		rest = r

		name, r, err := readHierarchyName(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		o += int64(len(rest) - len(r))
		rest = r

		length, r, err := readVarint(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		o += int64(len(rest) - len(r))
		rest = r

		alias, r, err := readVarint(rest, o)
		if err != nil {
			return hierarchyToken{}, nil, 0, err
		}
		o += int64(len(rest) - len(r))
		rest = r

		tok := hierarchyToken{kind: tokVcd, vcd: Vcd{VarType: vt, Dir: vd, Name: name, Length: length, AliasID: alias}}
		return tok, rest, int64(start - len(rest)), nil
	}
}

// foldHierarchy folds a flat token stream into a tree of nested
// scopes. AttrBegin/AttrEnd pairs are treated as a flat bracketed
// group: every attribute seen between a ScopeBegin and the matching
// ScopeEnd (at any nesting depth below it) is attached to the
// innermost open scope, rather than preserving separate open/close
// spans.
func foldHierarchy(tokens []hierarchyToken) (Scope, []hierarchyToken, error) {
	if len(tokens) == 0 || tokens[0].kind != tokScopeBegin {
		return Scope{}, nil, newError(0, ChainTableMalformed, "hierarchy does not start with a scope")
	}
	scope := tokens[0].scopeBegin
	rest := tokens[1:]

	for {
		if len(rest) == 0 {
			return Scope{}, nil, newError(0, Truncated, "hierarchy ended before closing scope")
		}
		switch rest[0].kind {
		case tokAttribute:
			scope.Attributes = append(scope.Attributes, rest[0].attribute)
			rest = rest[1:]
		case tokAttributeEnd:
			rest = rest[1:]
		case tokVcd:
			scope.Signals = append(scope.Signals, rest[0].vcd)
			rest = rest[1:]
		case tokUnknown:
			rest = rest[1:]
		case tokScopeBegin:
			child, next, err := foldHierarchy(rest)
			if err != nil {
				return Scope{}, nil, err
			}
			scope.Scopes = append(scope.Scopes, child)
			rest = next
		case tokScopeEnd:
			return scope, rest[1:], nil
		}
	}
}

// decodeHierarchy tokenizes a decompressed hierarchy payload and folds
// it into its root Scope.
func decodeHierarchy(data []byte, base int64) (Scope, error) {
	tokens, err := tokenizeHierarchy(data, base)
	if err != nil {
		return Scope{}, err
	}
	root, trailing, err := foldHierarchy(tokens)
	if err != nil {
		return Scope{}, err
	}
	if len(trailing) != 0 {
		return Scope{}, newErrorf(base, TrailingBytes, "%d hierarchy tokens remain after root scope closes", len(trailing))
	}
	return root, nil
}
