package lower

import "github.com/kprobelower/kprobelower/ir"

// BindOutput is the Output Record Emitter (C8): build the output's value
// struct (implicit columns first, then declared fields), register it,
// and emit the Struct variable and OutputAction that copy it out.
func (p *Probe) BindOutput(a *ir.OutputAction) error {
	out, ok := p.sess.Outputs[a.Output]
	if !ok {
		return &ir.UnknownOutputError{Probe: p.name, Output: a.Output}
	}
	if len(a.SourceIDs) != len(out.Fields) {
		return &ir.InvalidArgumentError{Context: "probe " + p.name + " output " + a.Output, Reason: "source id count does not match declared field count"}
	}

	fields := make([]ir.StructField, 0, len(p.sess.ImplicitCols)+len(out.Fields))
	assignments := make([]ir.StructAssignment, 0, len(p.sess.ImplicitCols)+len(out.Fields))

	for _, col := range p.sess.ImplicitCols {
		t, err := p.requireVariable(col)
		if err != nil {
			return err
		}
		fields = append(fields, ir.StructField{Name: col, Type: t})
		assignments = append(assignments, ir.StructAssignment{Field: col, Source: col})
	}
	for i, id := range a.SourceIDs {
		t, err := p.requireVariable(id)
		if err != nil {
			return err
		}
		fieldName := out.Fields[i]
		fields = append(fields, ir.StructField{Name: fieldName, Type: t})
		assignments = append(assignments, ir.StructAssignment{Field: fieldName, Source: id})
	}

	structName := StructTypeName(a.Output)
	st := &ir.Struct{Name: structName, Fields: fields}
	if err := p.sess.Structs.Register(st); err != nil {
		return err
	}

	if out.StructType == "" {
		out.StructType = structName
	} else if out.StructType != structName {
		return &ir.InvariantViolationError{Context: "probe " + p.name, Reason: "output " + a.Output + " struct type already set to " + out.StructType}
	}

	valueVar := valueVarName(a.Output)
	p.addVariable(&ir.StructVariable{Name: valueVar, StructType: structName, Assignments: assignments}, ir.ScalarUnknown)

	p.outputs = append(p.outputs, &ir.OutputAction{Output: a.Output, SourceIDs: []string{valueVar}})
	return nil
}
