package lower

import (
	"errors"

	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
	"github.com/kprobelower/kprobelower/pkg/typemap"
)

// cursor tracks the walking state of the Expression Lowerer (C5) as it
// descends a dotted path: the DWARF kind/type name reached so far, the
// accumulated byte offset from the current base variable, the name of
// that base variable, and the decorated internal name built up for
// diagnostic/intermediate-variable purposes.
type cursor struct {
	kind     dwarfinfo.Kind
	typeName string
	offset   int64
	base     string
	name     string
}

// lowerExpression is the Expression Lowerer (C5). root is the
// DWARF-derived layout of the path's first component (an argument or a
// return value); baseVar is the variable the root's offset is relative
// to (sp_ for arguments and Go return values, rc_ for a C/C++ pointer
// return). components is the full dotted path, including the root as
// components[0]. leafID is the user-facing id the final scalar variable
// is emitted under.
func (p *Probe) lowerExpression(leafID string, root dwarfinfo.ArgInfo, baseVar string, components []string) error {
	if len(components) == 0 {
		return &ir.InvalidArgumentError{Context: "probe " + p.name, Reason: "empty expression"}
	}

	cur := cursor{
		kind:     root.Kind,
		typeName: root.TypeName,
		offset:   stackPointerBias + root.Offset,
		base:     baseVar,
		name:     components[0],
	}

	for _, field := range components[1:] {
		if cur.kind == dwarfinfo.KindPointer {
			if err := p.emitDereference(&cur); err != nil {
				return err
			}
			// The pointee's kind is refreshed by the upcoming member
			// lookup; assume struct in the meantime since the only
			// reason to keep walking is to select a field off it. If
			// that assumption is wrong, the lookup below fails with
			// UnknownField rather than silently miscomputing an
			// offset.
			cur.kind = dwarfinfo.KindStruct
		}

		member, err := p.sess.DWARF.StructMemberInfo(cur.typeName, field)
		if err != nil {
			if errors.Is(err, dwarfinfo.ErrNotFound) {
				return &ir.UnknownFieldError{Probe: p.name, Type: cur.typeName, Field: field}
			}
			return &ir.DwarfError{Context: "probe " + p.name + ": struct member " + cur.typeName + "." + field, Err: err}
		}
		cur.offset += member.Offset
		cur.kind = member.Kind
		cur.typeName = member.TypeName
		cur.name = cur.name + dotDecoration + field
	}

	if cur.kind == dwarfinfo.KindPointer {
		if err := p.emitDereference(&cur); err != nil {
			return err
		}
		// We are the leaf: force the kind to base so the type mapper
		// either accepts the pointee as a scalar or rejects it — a
		// struct-typed leaf is never valid (spec invariant 3).
		cur.kind = dwarfinfo.KindBase
	}

	leafType, err := typemap.Map(p.sess.Language, cur.kind, cur.typeName)
	if err != nil {
		return err
	}
	p.addVariable(&ir.MemoryVariable{Name: leafID, Base: cur.base, Offset: cur.offset, Type: leafType}, leafType)
	return nil
}

// emitDereference appends the dereference decoration to cur's name,
// emits the intermediate Memory variable for it, and resets cur's base
// and offset to read relative to the freshly dereferenced pointer.
func (p *Probe) emitDereference(cur *cursor) error {
	ptrType, err := typemap.Map(p.sess.Language, dwarfinfo.KindPointer, cur.typeName)
	if err != nil {
		return err
	}
	cur.name = cur.name + derefDecoration
	p.addVariable(&ir.MemoryVariable{Name: cur.name, Base: cur.base, Offset: cur.offset, Type: ptrType}, ptrType)
	cur.base = cur.name
	cur.offset = 0
	return nil
}
