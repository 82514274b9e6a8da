package dwarfinfo

import (
	"bytes"
	"debug/dwarf"
	"debug/elf"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo/leb128"
	"github.com/kprobelower/kprobelower/pkg/logflags"
)

// ErrNotFound is returned by StructMemberInfo when either the named
// struct type or the named field within it cannot be located in the
// binary's DWARF info. It is deliberately not an ir.DwarfError: a field
// lookup against a name the caller supplied is a user-input-shaped
// failure (spec: UnknownField), not an adapter malfunction.
var ErrNotFound = errors.New("dwarfinfo: not found")

// memberCacheSize bounds the struct-member LRU; a handful of structs with
// a handful of fields each is the common case, this just avoids unbounded
// growth across a deployment with many probes touching the same types.
const memberCacheSize = 512

// opFbreg and opPlusUconst are the two DWARF location-expression opcodes
// this adapter understands: DW_OP_fbreg for a parameter's frame-relative
// offset, and DW_OP_plus_uconst for a struct member's offset within its
// parent when the compiler emits it as an expression rather than a plain
// constant.
const (
	opFbreg      = 0x91
	opPlusUconst = 0x23
)

// ELFReader is the concrete Reader (C2) backed by debug/elf and
// debug/dwarf, the same pair delve itself parses directly rather than
// reaching for a third-party DWARF library (see pkg/dwarf/godwarf).
type ELFReader struct {
	elfFile   *elf.File
	dwarfData *dwarf.Data
	members   *lru.Cache
}

// Open reads the ELF and DWARF sections of the binary at path. The
// returned Reader owns both and must be Closed when the pass finishes.
func Open(path string) (*ELFReader, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, &ir.DwarfError{Context: "open " + path, Err: err}
	}
	d, err := f.DWARF()
	if err != nil {
		f.Close()
		return nil, &ir.DwarfError{Context: "parse dwarf in " + path, Err: err}
	}
	cache, err := lru.New(memberCacheSize)
	if err != nil {
		f.Close()
		return nil, &ir.DwarfError{Context: "allocate member cache", Err: err}
	}
	return &ELFReader{elfFile: f, dwarfData: d, members: cache}, nil
}

// Close releases the underlying ELF file.
func (r *ELFReader) Close() error {
	return r.elfFile.Close()
}

// FunctionArgInfo implements Reader.
func (r *ELFReader) FunctionArgInfo(symbol string) (map[string]ArgInfo, error) {
	log := logflags.DwarfLogger()
	log.Debugf("resolving argument layout for %s", symbol)

	fn, err := r.findSubprogram(symbol)
	if err != nil {
		return nil, err
	}

	args := make(map[string]ArgInfo)
	err = r.forEachChild(fn, func(e *dwarf.Entry) error {
		if e.Tag != dwarf.TagFormalParameter {
			return nil
		}
		name, _ := e.Val(dwarf.AttrName).(string)
		if name == "" {
			return nil
		}
		kind, typeName, err := r.classifyAttrType(e)
		if err != nil {
			return err
		}
		offset, err := r.frameOffset(e)
		if err != nil {
			return err
		}
		args[name] = ArgInfo{Name: name, Kind: kind, TypeName: typeName, Offset: offset}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return args, nil
}

// FunctionRetInfo implements Reader. For C/C++ the subprogram's own
// AttrType names the return type; Go return values never reach this
// path (the Argument/Return Binder looks them up as synthesized ~rN
// ArgInfo entries instead, since the Go compiler places them in the
// arguments frame).
func (r *ELFReader) FunctionRetInfo(symbol string) (RetInfo, error) {
	fn, err := r.findSubprogram(symbol)
	if err != nil {
		return RetInfo{}, err
	}
	if _, ok := fn.Val(dwarf.AttrType).(dwarf.Offset); !ok {
		return RetInfo{Kind: KindVoid}, nil
	}
	kind, typeName, err := r.classifyAttrType(fn)
	if err != nil {
		return RetInfo{}, err
	}
	return RetInfo{Kind: kind, TypeName: typeName}, nil
}

// StructMemberInfo implements Reader.
func (r *ELFReader) StructMemberInfo(typeName, field string) (MemberInfo, error) {
	cacheKey := typeName + "#" + field
	if v, ok := r.members.Get(cacheKey); ok {
		return v.(MemberInfo), nil
	}

	structEntry, err := r.findStruct(typeName)
	if err != nil {
		return MemberInfo{}, err
	}

	var found *MemberInfo
	err = r.forEachChild(structEntry, func(e *dwarf.Entry) error {
		if found != nil || e.Tag != dwarf.TagMember {
			return nil
		}
		name, _ := e.Val(dwarf.AttrName).(string)
		if name != field {
			return nil
		}
		kind, memberType, err := r.classifyAttrType(e)
		if err != nil {
			return err
		}
		offset, err := r.memberOffset(e)
		if err != nil {
			return err
		}
		found = &MemberInfo{Kind: kind, TypeName: memberType, Offset: offset}
		return nil
	})
	if err != nil {
		return MemberInfo{}, err
	}
	if found == nil {
		return MemberInfo{}, ErrNotFound
	}
	r.members.Add(cacheKey, *found)
	return *found, nil
}

// findSubprogram scans the DWARF tree for a TagSubprogram entry whose
// AttrName matches symbol.
func (r *ELFReader) findSubprogram(symbol string) (*dwarf.Entry, error) {
	rdr := r.dwarfData.Reader()
	for {
		e, err := rdr.Next()
		if err != nil {
			return nil, &ir.DwarfError{Context: "scan for function " + symbol, Err: err}
		}
		if e == nil {
			break
		}
		if e.Tag == dwarf.TagSubprogram {
			name, _ := e.Val(dwarf.AttrName).(string)
			if name == symbol {
				return e, nil
			}
		}
	}
	return nil, &ir.DwarfError{Context: "function " + symbol, Err: fmt.Errorf("not found")}
}

// findStruct scans the DWARF tree for a TagStructType/TagClassType/
// TagUnionType entry whose AttrName matches typeName.
func (r *ELFReader) findStruct(typeName string) (*dwarf.Entry, error) {
	rdr := r.dwarfData.Reader()
	for {
		e, err := rdr.Next()
		if err != nil {
			return nil, &ir.DwarfError{Context: "scan for type " + typeName, Err: err}
		}
		if e == nil {
			break
		}
		switch e.Tag {
		case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType:
			name, _ := e.Val(dwarf.AttrName).(string)
			if name == typeName {
				return e, nil
			}
		}
	}
	return nil, ErrNotFound
}

// forEachChild visits every direct child of parent (one level of nesting;
// grandchildren are consumed from the flat entry stream but not visited),
// following the same Next-until-zero-Tag walk delve's own tree loader
// uses (pkg/dwarf/godwarf/tree.go's loadTreeChildren).
func (r *ELFReader) forEachChild(parent *dwarf.Entry, fn func(*dwarf.Entry) error) error {
	if !parent.Children {
		return nil
	}
	rdr := r.dwarfData.Reader()
	rdr.Seek(parent.Offset)
	if _, err := rdr.Next(); err != nil { // re-read parent to position the cursor
		return &ir.DwarfError{Context: "seek to " + parent.Tag.String(), Err: err}
	}
	for {
		e, err := rdr.Next()
		if err != nil {
			return &ir.DwarfError{Context: "walk children", Err: err}
		}
		if e == nil || e.Tag == 0 {
			return nil
		}
		if err := fn(e); err != nil {
			return err
		}
		if e.Children {
			if err := skipChildren(rdr); err != nil {
				return &ir.DwarfError{Context: "skip nested children", Err: err}
			}
		}
	}
}

// skipChildren consumes entries from rdr until the matching zero-Tag
// terminator for the subtree just entered, recursing into any further
// nested Children along the way.
func skipChildren(rdr *dwarf.Reader) error {
	for {
		e, err := rdr.Next()
		if err != nil {
			return err
		}
		if e == nil || e.Tag == 0 {
			return nil
		}
		if e.Children {
			if err := skipChildren(rdr); err != nil {
				return err
			}
		}
	}
}

// classifyAttrType resolves e's AttrType reference down through any
// typedef/const/volatile qualifiers to the "real" underlying tag, and
// returns the Kind plus the interesting type name for that kind: the
// base type's own name, the pointee's name for a pointer, or the
// struct/class/union's own tag name.
func (r *ELFReader) classifyAttrType(e *dwarf.Entry) (Kind, string, error) {
	off, ok := e.Val(dwarf.AttrType).(dwarf.Offset)
	if !ok {
		return KindVoid, "", nil
	}
	return r.classifyTypeOffset(off)
}

func (r *ELFReader) classifyTypeOffset(off dwarf.Offset) (Kind, string, error) {
	rdr := r.dwarfData.Reader()
	rdr.Seek(off)
	e, err := rdr.Next()
	if err != nil {
		return KindOther, "", &ir.DwarfError{Context: "resolve type", Err: err}
	}
	if e == nil {
		return KindOther, "", &ir.DwarfError{Context: "resolve type", Err: fmt.Errorf("dangling type offset")}
	}
	switch e.Tag {
	case dwarf.TagTypedef, dwarf.TagConstType, dwarf.TagVolatileType, dwarf.TagRestrictType:
		if inner, ok := e.Val(dwarf.AttrType).(dwarf.Offset); ok {
			return r.classifyTypeOffset(inner)
		}
		return KindVoid, "", nil
	case dwarf.TagPointerType:
		// The pointee's own name is the "interesting" type name for a
		// pointer: the expression lowerer needs it to look up members
		// once it has dereferenced through this pointer.
		pointeeOff, ok := e.Val(dwarf.AttrType).(dwarf.Offset)
		if !ok {
			return KindPointer, "", nil
		}
		_, pointeeName, err := r.classifyTypeOffset(pointeeOff)
		if err != nil {
			return KindOther, "", err
		}
		return KindPointer, pointeeName, nil
	case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType:
		name, _ := e.Val(dwarf.AttrName).(string)
		return KindStruct, name, nil
	case dwarf.TagBaseType:
		name, _ := e.Val(dwarf.AttrName).(string)
		return KindBase, name, nil
	default:
		return KindOther, "", nil
	}
}

// frameOffset decodes a formal parameter's AttrLocation, which for a
// stack-resident parameter is a DW_OP_fbreg expression: opcode 0x91
// followed by an SLEB128 displacement from the function's frame base.
func (r *ELFReader) frameOffset(e *dwarf.Entry) (int64, error) {
	loc, ok := e.Val(dwarf.AttrLocation).([]byte)
	if !ok || len(loc) == 0 {
		return 0, nil
	}
	if loc[0] != opFbreg {
		return 0, &ir.DwarfError{Context: "frame offset", Err: fmt.Errorf("unsupported location opcode %#x", loc[0])}
	}
	off, _ := leb128.DecodeSLEB128(bytes.NewBuffer(loc[1:]))
	return off, nil
}

// memberOffset decodes a struct member's byte offset, either from a
// plain AttrDataMemberLocation constant or, if the compiler emitted an
// expression, a DW_OP_plus_uconst.
func (r *ELFReader) memberOffset(e *dwarf.Entry) (int64, error) {
	switch v := e.Val(dwarf.AttrDataMemberLoc).(type) {
	case int64:
		return v, nil
	case []byte:
		if len(v) == 0 {
			return 0, nil
		}
		if v[0] != opPlusUconst {
			return 0, &ir.DwarfError{Context: "member offset", Err: fmt.Errorf("unsupported location opcode %#x", v[0])}
		}
		off, _ := leb128.DecodeULEB128(bytes.NewBuffer(v[1:]))
		return int64(off), nil
	default:
		return 0, nil
	}
}
