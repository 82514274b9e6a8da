package lower

import "github.com/kprobelower/kprobelower/ir"

// BindLatency emits the BinaryExpr variable time_ - start_ktime_ns. Unlike
// the source this is grounded on, it checks start_ktime_ns is actually in
// the symbol table first and raises UnknownVariable if it is not, rather
// than trusting an earlier map lookup populated it.
func (p *Probe) BindLatency(r *ir.LatencyRequest) error {
	if _, err := p.requireVariable(startKTimeNSVarName); err != nil {
		return err
	}
	if _, err := p.requireVariable(ktimeVarName); err != nil {
		return err
	}
	p.addVariable(&ir.BinaryExprVariable{
		Name: r.ID,
		Op:   ir.OpSub,
		LHS:  ktimeVarName,
		RHS:  startKTimeNSVarName,
		Type: ir.ScalarInt64,
	}, ir.ScalarInt64)
	p.latencyVar = r.ID
	return nil
}
