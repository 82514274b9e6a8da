package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
)

// Scenario 3 (spec §8): C return value, Base kind.
func TestBindRetValCBase(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	dw.Rets["f"] = dwarfinfo.RetInfo{Kind: dwarfinfo.KindBase, TypeName: "int"}
	sess := newTestSession(ir.LangC, dw)
	p := sess.NewProbe("f")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "f", At: ir.AttachReturn}))

	require.NoError(t, p.BindRetVal("f", &ir.RetValExpr{ID: "R", Expression: "$0"}))

	pp := p.Build(ir.ProbeTarget{})
	leaf := pp.Variables[len(pp.Variables)-1].(*ir.RegisterVariable)
	assert.Equal(t, "R", leaf.Name)
	assert.Equal(t, ir.RegReturnValue, leaf.Register)
	assert.Equal(t, ir.ScalarInt, leaf.Type)
}

// Scenario 4 (spec §8): C++ pointer return, one dereference through rc_.
func TestBindRetValCPPPointer(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	dw.Rets["g"] = dwarfinfo.RetInfo{Kind: dwarfinfo.KindPointer, TypeName: "S"}
	dw.Members["S"] = map[string]dwarfinfo.MemberInfo{
		"k": {Kind: dwarfinfo.KindBase, TypeName: "int", Offset: 0},
	}
	sess := newTestSession(ir.LangCPP, dw)
	p := sess.NewProbe("g")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "g", At: ir.AttachReturn}))

	require.NoError(t, p.BindRetVal("g", &ir.RetValExpr{ID: "K", Expression: "$0.k"}))

	pp := p.Build(ir.ProbeTarget{})
	n := len(pp.Variables)
	deref := pp.Variables[n-2].(*ir.MemoryVariable)
	leaf := pp.Variables[n-1].(*ir.MemoryVariable)

	assert.Equal(t, rcVarName, deref.Base)
	assert.Equal(t, int64(8), deref.Offset)
	assert.Equal(t, ir.ScalarVoidPointer, deref.Type)

	assert.Equal(t, "K", leaf.Name)
	assert.Equal(t, deref.Name, leaf.Base)
	assert.Equal(t, int64(0), leaf.Offset)
	assert.Equal(t, ir.ScalarInt, leaf.Type)
}

func TestBindRetValCVoidIsError(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	dw.Rets["noop"] = dwarfinfo.RetInfo{Kind: dwarfinfo.KindVoid}
	sess := newTestSession(ir.LangC, dw)
	p := sess.NewProbe("noop")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "noop", At: ir.AttachReturn}))

	err := p.BindRetVal("noop", &ir.RetValExpr{ID: "R", Expression: "$0"})
	require.Error(t, err)
	var unimpl *ir.UnimplementedError
	assert.ErrorAs(t, err, &unimpl)
}

func TestBindRetValCNonZeroIndexUnimplemented(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	sess := newTestSession(ir.LangC, dw)
	p := sess.NewProbe("f")

	err := p.BindRetVal("f", &ir.RetValExpr{ID: "R", Expression: "$1"})
	require.Error(t, err)
	var unimpl *ir.UnimplementedError
	assert.ErrorAs(t, err, &unimpl)
}

func TestBindRetValGoSynthesizesRootName(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	dw.Args["pkg.Add"] = map[string]dwarfinfo.ArgInfo{
		"~r0": {Name: "~r0", Kind: dwarfinfo.KindBase, TypeName: "int64", Offset: 32},
	}
	sess := newTestSession(ir.LangGo, dw)
	p := sess.NewProbe("add")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "pkg.Add", At: ir.AttachReturn}))

	require.NoError(t, p.BindRetVal("pkg.Add", &ir.RetValExpr{ID: "Sum", Expression: "$0"}))

	pp := p.Build(ir.ProbeTarget{})
	leaf := pp.Variables[len(pp.Variables)-1].(*ir.MemoryVariable)
	assert.Equal(t, "Sum", leaf.Name)
	assert.Equal(t, int64(8+32), leaf.Offset)
	assert.Equal(t, ir.ScalarInt64, leaf.Type)
}

func TestBindRetValMalformedIndex(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	sess := newTestSession(ir.LangGo, dw)
	p := sess.NewProbe("add")

	err := p.BindRetVal("pkg.Add", &ir.RetValExpr{ID: "R", Expression: "notadollar"})
	require.Error(t, err)
	var invErr *ir.InvalidArgumentError
	assert.ErrorAs(t, err, &invErr)
}
