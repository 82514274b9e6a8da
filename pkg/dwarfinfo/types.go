// Package dwarfinfo is the DWARF Adapter (C2): a narrow collaborator
// interface over an external DWARF reader. It answers three questions —
// a function's argument layout, its return-value layout, and a struct's
// member layout — and nothing else; no caller reaches into a dwarf.Data
// or elf.File directly. This mirrors the boundary delve draws around
// debug/dwarf in pkg/dwarf/godwarf: the rest of the debugger never walks
// raw DWARF entries itself, it calls into a handful of typed accessors.
package dwarfinfo

// Kind coarsely classifies a DWARF type for the purposes of lowering: it
// is either a base (scalar) type, a pointer, a struct/union/class, void,
// or something this pass has no opinion about (arrays, functions, ...).
type Kind int

const (
	KindBase Kind = iota
	KindPointer
	KindStruct
	KindVoid
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindPointer:
		return "pointer"
	case KindStruct:
		return "struct"
	case KindVoid:
		return "void"
	default:
		return "other"
	}
}

// ArgInfo describes one formal parameter of a traced function: its kind,
// its "interesting" type name (the base type's spelling, or — for a
// pointer — the pointee's type name, so a lowering step that has just
// dereferenced the pointer can immediately look up a member on it), and
// its byte offset from the function's frame base.
type ArgInfo struct {
	Name     string
	Kind     Kind
	TypeName string
	Offset   int64
}

// RetInfo describes a function's return value the same way, minus a
// frame-base offset (C/C++ base returns come back in a register; Go
// return values are modeled as ArgInfo, see the Argument/Return Binder).
type RetInfo struct {
	Kind     Kind
	TypeName string
}

// MemberInfo describes one field of a struct: its kind, interesting type
// name (same convention as ArgInfo), and byte offset within the parent
// struct.
type MemberInfo struct {
	Kind     Kind
	TypeName string
	Offset   int64
}

// Reader is the collaborator contract the rest of the pass depends on.
// Only a narrow DWARF-shaped accessor surface is exposed; the concrete
// implementation (ELFReader) and any test double both satisfy it.
type Reader interface {
	// FunctionArgInfo returns the formal-parameter layout of the named
	// function, keyed by parameter name.
	FunctionArgInfo(symbol string) (map[string]ArgInfo, error)
	// FunctionRetInfo returns the named function's return-value layout.
	FunctionRetInfo(symbol string) (RetInfo, error)
	// StructMemberInfo returns the layout of one field of a named
	// struct/class/union type.
	StructMemberInfo(typeName, field string) (MemberInfo, error)
	// Close releases the underlying binary and DWARF data.
	Close() error
}
