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

// ScopeKind is the scope_type field carried by a ScopeBegin hierarchy
// token: what sort of named container this scope is (module, task,
// VHDL block, and so on).
type ScopeKind byte

const (
	ScopeVcdModule      ScopeKind = 0
	ScopeVcdTask        ScopeKind = 1
	ScopeVcdFunction    ScopeKind = 2
	ScopeVcdBegin       ScopeKind = 3
	ScopeVcdFork        ScopeKind = 4
	ScopeVcdGenerate    ScopeKind = 5
	ScopeVcdStruct      ScopeKind = 6
	ScopeVcdUnion       ScopeKind = 7
	ScopeVcdClass       ScopeKind = 8
	ScopeVcdInterface   ScopeKind = 9
	ScopeVcdPackage     ScopeKind = 10
	ScopeVcdProgram     ScopeKind = 11
	ScopeVhdlArchitecture ScopeKind = 12
	ScopeVhdlProcedure  ScopeKind = 13
	ScopeVhdlFunction   ScopeKind = 14
	ScopeVhdlRecord     ScopeKind = 15
	ScopeVhdlProcess    ScopeKind = 16
	ScopeVhdlBlock      ScopeKind = 17
	ScopeVhdlGorGenerate ScopeKind = 18
	ScopeVhdlIfGenerate ScopeKind = 19
	ScopeVhdlGenerate   ScopeKind = 20
	ScopeVhdlPackage    ScopeKind = 21
)

var scopeKindNames = [...]string{
	"VcdModule", "VcdTask", "VcdFunction", "VcdBegin", "VcdFork",
	"VcdGenerate", "VcdStruct", "VcdUnion", "VcdClass", "VcdInterface",
	"VcdPackage", "VcdProgram", "VhdlArchitecture", "VhdlProcedure",
	"VhdlFunction", "VhdlRecord", "VhdlProcess", "VhdlBlock",
	"VhdlGorGenerate", "VhdlIfGenerate", "VhdlGenerate", "VhdlPackage",
}

func (s ScopeKind) String() string {
	if int(s) < len(scopeKindNames) {
		return scopeKindNames[s]
	}
	return "ScopeKind(unknown)"
}

func (s ScopeKind) valid() bool { return int(s) < len(scopeKindNames) }

// VarType is the var_type field of a Vcd hierarchy token: the source
// language type of the signal.
type VarType byte

const (
	VarVcdEvent        VarType = 0
	VarVcdInteger      VarType = 1
	VarVcdParameter    VarType = 2
	VarVcdReal         VarType = 3
	VarVcdRealParameter VarType = 4
	VarVcdReg          VarType = 5
	VarVcdSupply0      VarType = 6
	VarVcdSupply1      VarType = 7
	VarVcdTime         VarType = 8
	VarVcdTri          VarType = 9
	VarVcdTriAnd       VarType = 10
	VarVcdTriOr        VarType = 11
	VarVcdTriReg       VarType = 12
	VarVcdTri0         VarType = 13
	VarVcdTri1         VarType = 14
	VarVcdWand         VarType = 15
	VarVcdWire         VarType = 16
	VarVcdWor          VarType = 17
	VarVcdPort         VarType = 18
	VarVcdSparray      VarType = 19
	VarVcdRealtime     VarType = 20
	VarGenString       VarType = 21
	VarSvBit           VarType = 22
	VarSvLogic         VarType = 23
	VarSvInt           VarType = 24
	VarSvShortInt      VarType = 25
	VarSvLongInt       VarType = 26
	VarSvByte          VarType = 27
	VarSvEnum          VarType = 28
	VarSvShortReal     VarType = 29
)

var varTypeNames = [...]string{
	"VcdEvent", "VcdInteger", "VcdParameter", "VcdReal", "VcdRealParameter",
	"VcdReg", "VcdSupply0", "VcdSupply1", "VcdTime", "VcdTri", "VcdTriAnd",
	"VcdTriOr", "VcdTriReg", "VcdTri0", "VcdTri1", "VcdWand", "VcdWire",
	"VcdWor", "VcdPort", "VcdSparray", "VcdRealtime", "GenString", "SvBit",
	"SvLogic", "SvInt", "SvShortInt", "SvLongInt", "SvByte", "SvEnum",
	"SvShortReal",
}

func (v VarType) String() string {
	if int(v) < len(varTypeNames) {
		return varTypeNames[v]
	}
	return "VarType(unknown)"
}

func (v VarType) valid() bool { return int(v) < len(varTypeNames) }

// VarDir is the direction field of a Vcd hierarchy token.
type VarDir byte

const (
	DirImplicit VarDir = 0
	DirInput    VarDir = 1
	DirOutput   VarDir = 2
	DirInout    VarDir = 3
	DirBuffer   VarDir = 4
	DirLinkage  VarDir = 5
)

var varDirNames = [...]string{
	"Implicit", "Input", "Output", "Inout", "Buffer", "Linkage",
}

func (d VarDir) String() string {
	if int(d) < len(varDirNames) {
		return varDirNames[d]
	}
	return "VarDir(unknown)"
}

func (d VarDir) valid() bool { return int(d) < len(varDirNames) }

// AttributeKind is the attr_type field of an AttrBegin hierarchy token.
type AttributeKind byte

const (
	AttrMisc  AttributeKind = 0
	AttrArray AttributeKind = 1
	AttrEnum  AttributeKind = 2
	AttrPack  AttributeKind = 3
)

var attributeKindNames = [...]string{"Misc", "Array", "Enum", "Pack"}

func (a AttributeKind) String() string {
	if int(a) < len(attributeKindNames) {
		return attributeKindNames[a]
	}
	return "AttributeKind(unknown)"
}

func (a AttributeKind) valid() bool { return int(a) < len(attributeKindNames) }

// MiscKind is the misc_type field of a Misc-kind attribute token.
type MiscKind byte

const (
	MiscComment     MiscKind = 0
	MiscEnvVar      MiscKind = 1
	MiscSupVar      MiscKind = 2
	MiscPathName    MiscKind = 3
	MiscSourceStem  MiscKind = 4
	MiscSourceIStem MiscKind = 5
	MiscValueList   MiscKind = 6
	MiscEnumTable   MiscKind = 7
	MiscUnknown     MiscKind = 8
)

var miscKindNames = [...]string{
	"Comment", "EnvVar", "SupVar", "PathName", "SourceStem", "SourceIStem",
	"ValueList", "EnumTable", "Unknown",
}

func (m MiscKind) String() string {
	if int(m) < len(miscKindNames) {
		return miscKindNames[m]
	}
	return "MiscKind(unknown)"
}

func (m MiscKind) valid() bool { return int(m) < len(miscKindNames) }

// FileKind is the header's file-kind byte.
type FileKind byte

const (
	FileVerilog     FileKind = 0
	FileVhdl        FileKind = 1
	FileVerilogVhdl FileKind = 2
)

var fileKindNames = [...]string{"Verilog", "Vhdl", "VerilogVhdl"}

func (f FileKind) String() string {
	if int(f) < len(fileKindNames) {
		return fileKindNames[f]
	}
	return "FileKind(unknown)"
}

func (f FileKind) valid() bool { return int(f) < len(fileKindNames) }

// WriterPack identifies the compression scheme used for the VCD block's
// waves region, taken from the waves_pack_type byte.
type WriterPack byte

const (
	PackZlib   WriterPack = 'Z'
	PackFastLZ WriterPack = 'F'
	PackLz4    WriterPack = '4'
)

func (w WriterPack) String() string {
	switch w {
	case PackZlib, '!':
		return "Zlib"
	case PackFastLZ:
		return "FastLZ"
	case PackLz4:
		return "Lz4"
	default:
		return "WriterPack(unknown)"
	}
}

func writerPackFromByte(b byte) (WriterPack, bool) {
	switch b {
	case '!', 'Z':
		return PackZlib, true
	case 'F':
		return PackFastLZ, true
	case '4':
		return PackLz4, true
	default:
		return 0, false
	}
}
