package lower

import (
	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
	"github.com/kprobelower/kprobelower/pkg/logflags"
	"github.com/kprobelower/kprobelower/pkg/symtab"
)

// Session is the state shared across every probe in one program
// assembly: the struct registry and the map/output indices (spec
// Lifecycle: "Struct and map/output registries persist across probes
// within one program assembly"), plus the single DWARF reader the
// assembler opened for the deployment's binary.
type Session struct {
	Language      ir.Language
	ImplicitCols  []string
	Structs       *symtab.StructRegistry
	Maps          map[string]*ir.Map
	Outputs       map[string]*ir.Output
	DWARF         dwarfinfo.Reader
}

// NewSession builds the shared lowering state for one program assembly.
// ImplicitCols is derived from language per spec §4.4.
func NewSession(lang ir.Language, dw dwarfinfo.Reader, maps map[string]*ir.Map, outputs map[string]*ir.Output) *Session {
	cols := []string{tgidVarName, tgidStartTimeVarName, ktimeVarName}
	if lang == ir.LangGo {
		cols = append(cols, goidVarName)
	}
	return &Session{
		Language:     lang,
		ImplicitCols: cols,
		Structs:      symtab.NewStructRegistry(),
		Maps:         maps,
		Outputs:      outputs,
		DWARF:        dw,
	}
}

// Probe accumulates the physical variables and actions for one logical
// probe. Its SymbolTable is fresh for every probe (spec Lifecycle);
// everything else is borrowed from the shared Session.
type Probe struct {
	sess *Session
	name string
	sym  *symtab.SymbolTable
	vars []ir.Variable

	stashes    []*ir.StashAction
	deletes    []*ir.DeleteAction
	outputs    []*ir.OutputAction
	prints     []*ir.PrintDirective
	latencyVar string
}

// NewProbe starts lowering a probe named name against sess's shared
// state. Its symbol table starts empty — callers are expected to call
// AddSpecialVariables next, as C9 does (spec §4.9: "clear the per-probe
// symbol table; run in order: C4 → ...").
func (s *Session) NewProbe(name string) *Probe {
	return &Probe{sess: s, name: name, sym: symtab.New()}
}

// Build returns the finished PhysicalProbe for everything emitted so far.
func (p *Probe) Build(target ir.ProbeTarget) *ir.PhysicalProbe {
	return &ir.PhysicalProbe{
		Name:       p.name,
		Target:     target,
		Variables:  p.vars,
		Stashes:    p.stashes,
		Deletes:    p.deletes,
		Outputs:    p.outputs,
		Prints:     p.prints,
		LatencyVar: p.latencyVar,
	}
}

// addVariable appends v to the probe's variable list and records its
// name/type in the symbol table, in one step — every emission path in
// C4-C8 goes through this so the two never drift apart.
func (p *Probe) addVariable(v ir.Variable, t ir.ScalarType) {
	p.vars = append(p.vars, v)
	p.sym.Define(v.VarName(), t)
	logflags.LowerLogger().Debugf("probe %s: emitted %T %s (%s)", p.name, v, v.VarName(), t)
}

// requireVariable looks a name up in the symbol table, returning
// *ir.UnknownVariableError (tagged with this probe's name) if it is
// absent — the check invariant 1 in spec §3 requires before any action
// references a variable.
func (p *Probe) requireVariable(name string) (ir.ScalarType, error) {
	t, ok := p.sym.Lookup(name)
	if !ok {
		return ir.ScalarUnknown, &ir.UnknownVariableError{Probe: p.name, Name: name}
	}
	return t, nil
}
