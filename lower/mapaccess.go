package lower

import (
	"github.com/kprobelower/kprobelower/ir"
)

// BindMapValue is the read half of Map Access/Update/Delete (C7): look up
// an entry in a registered map and bind each requested field to a
// user-facing id, in declared field order.
func (p *Probe) BindMapValue(ref *ir.MapValueRef) error {
	m, ok := p.sess.Maps[ref.Map]
	if !ok {
		return &ir.UnknownMapError{Probe: p.name, Map: ref.Map}
	}
	if m.ValueType == "" {
		return &ir.UnknownMapError{Probe: p.name, Map: ref.Map}
	}
	st, ok := p.sess.Structs.Get(m.ValueType)
	if !ok {
		return &ir.InvariantViolationError{Context: "probe " + p.name, Reason: "map " + ref.Map + " references unregistered struct " + m.ValueType}
	}
	if len(ref.ValueIDs) > len(st.Fields) {
		return &ir.InvariantViolationError{Context: "probe " + p.name, Reason: "map " + ref.Map + " value read requests more fields than its struct has"}
	}

	keyName, err := builtinVarName(ref.Key)
	if err != nil {
		return err
	}
	if _, err := p.requireVariable(keyName); err != nil {
		return err
	}

	ptrName := mapPtrVarName(ref.Map)
	p.addVariable(&ir.MapLookupVariable{Name: ptrName, Map: ref.Map, Key: keyName}, ir.ScalarVoidPointer)

	for i, id := range ref.ValueIDs {
		field := st.Fields[i]
		p.addVariable(&ir.MemberVariable{Name: id, Struct: ptrName, Field: field.Name, Pointer: true, Type: field.Type}, field.Type)
	}
	return nil
}

// BindStash is the write half of C7: assemble a struct from the named
// source variables, register it as the map's value type, and emit a
// MapStashAction.
func (p *Probe) BindStash(a *ir.StashAction) error {
	fields := make([]ir.StructField, len(a.SourceIDs))
	assignments := make([]ir.StructAssignment, len(a.SourceIDs))
	for i, id := range a.SourceIDs {
		t, err := p.requireVariable(id)
		if err != nil {
			return err
		}
		fields[i] = ir.StructField{Name: id, Type: t}
		assignments[i] = ir.StructAssignment{Field: id, Source: id}
	}

	structName := StructTypeName(a.Map)
	st := &ir.Struct{Name: structName, Fields: fields}
	if err := p.sess.Structs.Register(st); err != nil {
		return err
	}

	m, ok := p.sess.Maps[a.Map]
	if !ok {
		return &ir.UnknownMapError{Probe: p.name, Map: a.Map}
	}
	m.KeyType = ir.ScalarUint64
	m.ValueType = structName

	keyName, err := builtinVarName(a.Key)
	if err != nil {
		return err
	}
	if _, err := p.requireVariable(keyName); err != nil {
		return err
	}

	valueVar := valueVarName(a.Map)
	p.addVariable(&ir.StructVariable{Name: valueVar, StructType: structName, Assignments: assignments}, ir.ScalarUnknown)

	p.stashes = append(p.stashes, &ir.StashAction{Map: a.Map, Key: a.Key, SourceIDs: []string{valueVar}, Condition: a.Condition})
	return nil
}

// BindDelete is the delete half of C7: resolve the built-in key and emit
// a MapDeleteAction.
func (p *Probe) BindDelete(a *ir.DeleteAction) error {
	keyName, err := builtinVarName(a.Key)
	if err != nil {
		return err
	}
	if _, err := p.requireVariable(keyName); err != nil {
		return err
	}
	p.deletes = append(p.deletes, &ir.DeleteAction{Map: a.Map, Key: a.Key})
	return nil
}
