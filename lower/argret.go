package lower

import (
	"strconv"
	"strings"

	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
	"github.com/kprobelower/kprobelower/pkg/typemap"
)

// BindArg is the argument half of the Argument/Return Binder (C6): split
// the expression on '.', look the first component up in the function's
// DWARF argument map, and delegate the walk to the Expression Lowerer.
func (p *Probe) BindArg(symbol string, a *ir.ArgExpr) error {
	components := strings.Split(a.Expression, ".")
	if len(components) == 0 || components[0] == "" {
		return &ir.InvalidArgumentError{Context: "probe " + p.name + " arg " + a.ID, Reason: "empty expression"}
	}

	args, err := p.sess.DWARF.FunctionArgInfo(symbol)
	if err != nil {
		return &ir.DwarfError{Context: "probe " + p.name + ": function args of " + symbol, Err: err}
	}
	root, ok := args[components[0]]
	if !ok {
		return &ir.UnknownArgumentError{Probe: p.name, Name: components[0]}
	}
	return p.lowerExpression(a.ID, root, spVarName, components)
}

// BindRetVal is the return-value half of C6. The expression's first
// component must be "$<index>"; the rest of the handling is entirely
// language-specific.
func (p *Probe) BindRetVal(symbol string, r *ir.RetValExpr) error {
	components := strings.Split(r.Expression, ".")
	if len(components) == 0 || !strings.HasPrefix(components[0], "$") {
		return &ir.InvalidArgumentError{Context: "probe " + p.name + " retval " + r.ID, Reason: "return expression must start with $<index>"}
	}
	index, err := strconv.Atoi(components[0][1:])
	if err != nil {
		return &ir.InvalidArgumentError{Context: "probe " + p.name + " retval " + r.ID, Reason: "malformed return index " + components[0]}
	}

	switch p.sess.Language {
	case ir.LangGo:
		return p.bindGoRetVal(symbol, index, components, r.ID)
	case ir.LangC, ir.LangCPP:
		return p.bindCRetVal(symbol, index, components, r.ID)
	default:
		return &ir.UnimplementedError{Context: "probe " + p.name, Reason: "return-value lowering unsupported for " + p.sess.Language.String()}
	}
}

// bindGoRetVal synthesizes the DWARF-ordering root name "~r<index>" Go
// places in the arguments frame and delegates the rest of the path to C5,
// exactly as an argument expression would be. Named returns are not
// resolved to their declared name; a caller must use the synthesized
// ~rN form.
//
// TODO: accept a named return's declared identifier as an alias for ~rN.
func (p *Probe) bindGoRetVal(symbol string, index int, components []string, leafID string) error {
	rootName := "~r" + strconv.Itoa(index)
	args, err := p.sess.DWARF.FunctionArgInfo(symbol)
	if err != nil {
		return &ir.DwarfError{Context: "probe " + p.name + ": function args of " + symbol, Err: err}
	}
	root, ok := args[rootName]
	if !ok {
		return &ir.UnknownArgumentError{Probe: p.name, Name: rootName}
	}
	rewritten := append([]string{rootName}, components[1:]...)
	return p.lowerExpression(leafID, root, spVarName, rewritten)
}

// bindCRetVal implements C/C++ return-value binding. Only index 0 is
// accepted; a Base return resolves to a single Register leaf, a Pointer
// return is delegated to C5 rooted at rc_, and Void is an error.
func (p *Probe) bindCRetVal(symbol string, index int, components []string, leafID string) error {
	if index != 0 {
		return &ir.UnimplementedError{Context: "probe " + p.name, Reason: "C/C++ return index must be 0, got " + strconv.Itoa(index)}
	}

	ret, err := p.sess.DWARF.FunctionRetInfo(symbol)
	if err != nil {
		return &ir.DwarfError{Context: "probe " + p.name + ": function return of " + symbol, Err: err}
	}

	switch ret.Kind {
	case dwarfinfo.KindBase:
		t, err := typemap.Map(p.sess.Language, dwarfinfo.KindBase, ret.TypeName)
		if err != nil {
			return err
		}
		p.addVariable(&ir.RegisterVariable{Name: leafID, Register: ir.RegReturnValue, Type: t}, t)
		return nil

	case dwarfinfo.KindPointer:
		root := dwarfinfo.ArgInfo{Name: "$0", Kind: dwarfinfo.KindPointer, TypeName: ret.TypeName, Offset: 0}
		rewritten := append([]string{"$0"}, components[1:]...)
		return p.lowerExpression(leafID, root, rcVarName, rewritten)

	case dwarfinfo.KindVoid:
		return &ir.UnimplementedError{Context: "probe " + p.name, Reason: "cannot bind a return value on a void function"}

	default:
		return &ir.TypeUnsupportedError{Language: p.sess.Language.String(), Kind: ret.Kind.String(), TypeName: ret.TypeName}
	}
}
