package lower

import "github.com/kprobelower/kprobelower/ir"

// AddSpecialVariables emits the fixed set of implicit variables every
// probe needs (C4), unconditionally and in this exact order: stack
// pointer, thread-group id, thread-group id + task id, process start
// time, kernel time, then language/direction-specific extras.
func (p *Probe) AddSpecialVariables(target ir.ProbeTarget) error {
	p.addVariable(&ir.RegisterVariable{
		Name:     spVarName,
		Register: ir.RegStackPointer,
		Type:     ir.ScalarVoidPointer,
	}, ir.ScalarVoidPointer)

	p.addVariable(&ir.BuiltinVariable{Name: tgidVarName, Helper: ir.HelperTGID, Type: ir.ScalarInt32}, ir.ScalarInt32)
	p.addVariable(&ir.BuiltinVariable{Name: tgidPIDVarName, Helper: ir.HelperTGIDPID, Type: ir.ScalarUint64}, ir.ScalarUint64)
	p.addVariable(&ir.BuiltinVariable{Name: tgidStartTimeVarName, Helper: ir.HelperTGIDStartTime, Type: ir.ScalarUint64}, ir.ScalarUint64)
	p.addVariable(&ir.BuiltinVariable{Name: ktimeVarName, Helper: ir.HelperKTime, Type: ir.ScalarUint64}, ir.ScalarUint64)

	if p.sess.Language == ir.LangGo {
		p.addVariable(&ir.BuiltinVariable{Name: goidVarName, Helper: ir.HelperGOID, Type: ir.ScalarInt64}, ir.ScalarInt64)
	}

	if target.At == ir.AttachReturn && (p.sess.Language == ir.LangC || p.sess.Language == ir.LangCPP) {
		p.addVariable(&ir.RegisterVariable{
			Name:     rcVarName,
			Register: ir.RegReturnValue,
			Type:     ir.ScalarVoidPointer,
		}, ir.ScalarVoidPointer)
	}

	return nil
}

// AddConstant emits a literal constant variable of its declared scalar
// type.
func (p *Probe) AddConstant(c *ir.Constant) error {
	p.addVariable(&ir.ConstantVariable{Name: c.ID, Type: c.Type, Value: c.Value}, c.Type)
	return nil
}
