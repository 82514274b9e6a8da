// Package typemap is the Type Mapper (C1): it turns a DWARF kind+name
// tuple into a scalar output type, per source language.
package typemap

import (
	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
)

// goBaseTypes maps the base-type names the Go compiler emits in DWARF to
// their scalar type.
var goBaseTypes = map[string]ir.ScalarType{
	"bool":    ir.ScalarBool,
	"int":     ir.ScalarInt64, // Go's int is platform-width; gc emits 64-bit on every target this pass cares about.
	"int8":    ir.ScalarInt8,
	"int16":   ir.ScalarInt16,
	"int32":   ir.ScalarInt32,
	"int64":   ir.ScalarInt64,
	"uint":    ir.ScalarUint64,
	"uint8":   ir.ScalarUint8,
	"uint16":  ir.ScalarUint16,
	"uint32":  ir.ScalarUint32,
	"uint64":  ir.ScalarUint64,
	"uintptr": ir.ScalarUint64,
	"byte":    ir.ScalarUint8,
	"rune":    ir.ScalarInt32,
	"float32": ir.ScalarFloat,
	"float64": ir.ScalarDouble,
}

// cBaseTypes maps the canonical C/C++ base-type spellings clang/gcc emit
// in DWARF (DW_AT_name of a DW_TAG_base_type) to their scalar type.
var cBaseTypes = map[string]ir.ScalarType{
	"_Bool":                   ir.ScalarBool,
	"bool":                    ir.ScalarBool,
	"char":                    ir.ScalarChar,
	"signed char":             ir.ScalarChar,
	"unsigned char":           ir.ScalarUChar,
	"short":                   ir.ScalarShort,
	"short int":               ir.ScalarShort,
	"short unsigned int":      ir.ScalarUShort,
	"unsigned short":          ir.ScalarUShort,
	"int":                     ir.ScalarInt,
	"unsigned int":            ir.ScalarUint,
	"long":                    ir.ScalarLong,
	"long int":                ir.ScalarLong,
	"long unsigned int":       ir.ScalarULong,
	"unsigned long":           ir.ScalarULong,
	"long long":               ir.ScalarLongLong,
	"long long int":           ir.ScalarLongLong,
	"long long unsigned int":  ir.ScalarULongLong,
	"unsigned long long":     ir.ScalarULongLong,
	"float":                   ir.ScalarFloat,
	"double":                  ir.ScalarDouble,
	"long double":             ir.ScalarDouble,
}

// goStructLeaves are the only two struct-kind DWARF types this pass can
// treat as a scalar leaf, and only for Go: a string header and a slice of
// bytes, both of which the probe runtime knows how to copy out as a
// length-prefixed blob rather than a real nested aggregate.
var goStructLeaves = map[string]ir.ScalarType{
	"string":  ir.ScalarString,
	"[]uint8": ir.ScalarByteArray,
	"[]byte":  ir.ScalarByteArray,
}

// Map returns the scalar type for a DWARF kind+name tuple in the given
// language, or a *ir.TypeUnsupportedError if no mapping exists.
func Map(lang ir.Language, kind dwarfinfo.Kind, typeName string) (ir.ScalarType, error) {
	switch kind {
	case dwarfinfo.KindPointer:
		// A pointer always maps to VOID_POINTER regardless of pointee;
		// the pointee's shape only matters to the expression lowerer's
		// dereference step, never to the type mapper.
		return ir.ScalarVoidPointer, nil

	case dwarfinfo.KindBase:
		table := baseTableFor(lang)
		if table == nil {
			return ir.ScalarUnknown, unsupported(lang, kind, typeName)
		}
		if t, ok := table[typeName]; ok {
			return t, nil
		}
		return ir.ScalarUnknown, unsupported(lang, kind, typeName)

	case dwarfinfo.KindStruct:
		if lang == ir.LangGo {
			if t, ok := goStructLeaves[typeName]; ok {
				return t, nil
			}
		}
		// Any other struct kind may only appear as an interior node of
		// an expression (dereferenced and field-selected further); it
		// is never itself a valid leaf.
		return ir.ScalarUnknown, unsupported(lang, kind, typeName)

	default: // KindVoid, KindOther
		return ir.ScalarUnknown, unsupported(lang, kind, typeName)
	}
}

func baseTableFor(lang ir.Language) map[string]ir.ScalarType {
	switch lang {
	case ir.LangGo:
		return goBaseTypes
	case ir.LangC, ir.LangCPP:
		return cBaseTypes
	default:
		return nil
	}
}

func unsupported(lang ir.Language, kind dwarfinfo.Kind, typeName string) error {
	return &ir.TypeUnsupportedError{Language: lang.String(), Kind: kind.String(), TypeName: typeName}
}
