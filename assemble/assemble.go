// Package assemble is the Program Assembler (C9): the top-level entry
// point that turns a LogicalDeployment into a PhysicalProgram, owning the
// DWARF reader's lifetime and driving every other component in the order
// the lowering pass requires.
package assemble

import (
	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/lower"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
	"github.com/kprobelower/kprobelower/pkg/logflags"
)

// openDWARF is a seam tests override to assemble against a FakeReader
// instead of a real binary; production callers always get dwarfinfo.Open.
var openDWARF = func(path string) (dwarfinfo.Reader, error) {
	return dwarfinfo.Open(path)
}

// Assemble lowers dep into a PhysicalProgram. dep must carry exactly one
// tracepoint; anything else is an *ir.InvalidArgumentError with no
// output produced.
func Assemble(dep *ir.LogicalDeployment) (*ir.PhysicalProgram, error) {
	log := logflags.AssembleLogger()

	if len(dep.Tracepoints) != 1 {
		return nil, &ir.InvalidArgumentError{
			Context: "program assembly",
			Reason:  "a deployment must carry exactly one tracepoint",
		}
	}
	tp := dep.Tracepoints[0]
	prog := tp.Program

	dw, err := openDWARF(dep.DeploymentSpec.BinaryPath)
	if err != nil {
		return nil, err
	}
	defer dw.Close()

	maps := make(map[string]*ir.Map, len(prog.Maps))
	for _, m := range prog.Maps {
		maps[m.Name] = m
	}
	outputs := make(map[string]*ir.Output, len(prog.Outputs))
	for _, o := range prog.Outputs {
		outputs[o.Name] = o
	}

	sess := lower.NewSession(prog.Language, dw, maps, outputs)

	out := &ir.PhysicalProgram{
		DeploymentSpec: dep.DeploymentSpec,
		Language:       prog.Language,
		Maps:           prog.Maps,
		Outputs:        prog.Outputs,
	}

	for _, lp := range prog.Probes {
		log.Debugf("assembling probe %s on %s", lp.Name, lp.Target.Symbol)
		pp, err := assembleProbe(sess, lp)
		if err != nil {
			return nil, err
		}
		out.Probes = append(out.Probes, pp)
	}

	out.Structs = sess.Structs.All()
	return out, nil
}

// assembleProbe drives one logical probe through C4-C8 in the exact order
// spec §4.9 requires: special variables, constants, argument expressions,
// return-value expressions, map-value reads, optional latency, stash
// actions, delete actions, output actions, then print directives (copied
// through verbatim — C8 is the last component that emits variables).
func assembleProbe(sess *lower.Session, lp *ir.LogicalProbe) (*ir.PhysicalProbe, error) {
	p := sess.NewProbe(lp.Name)

	if err := p.AddSpecialVariables(lp.Target); err != nil {
		return nil, err
	}
	for _, c := range lp.Constants {
		if err := p.AddConstant(c); err != nil {
			return nil, err
		}
	}
	for _, a := range lp.Args {
		if err := p.BindArg(lp.Target.Symbol, a); err != nil {
			return nil, err
		}
	}
	for _, r := range lp.RetVals {
		if err := p.BindRetVal(lp.Target.Symbol, r); err != nil {
			return nil, err
		}
	}
	for _, mv := range lp.MapValues {
		if err := p.BindMapValue(mv); err != nil {
			return nil, err
		}
	}
	if lp.Latency != nil {
		if err := p.BindLatency(lp.Latency); err != nil {
			return nil, err
		}
	}
	for _, s := range lp.Stashes {
		if err := p.BindStash(s); err != nil {
			return nil, err
		}
	}
	for _, d := range lp.Deletes {
		if err := p.BindDelete(d); err != nil {
			return nil, err
		}
	}
	for _, o := range lp.Outputs {
		if err := p.BindOutput(o); err != nil {
			return nil, err
		}
	}

	pp := p.Build(lp.Target)
	pp.Prints = lp.Prints
	return pp, nil
}
