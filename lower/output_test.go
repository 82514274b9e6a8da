package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
)

func TestBindOutputImplicitColumnsFirst(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	outputs := map[string]*ir.Output{"O": {Name: "O", Fields: []string{"latency_ns"}}}
	sess := NewSession(ir.LangGo, dw, map[string]*ir.Map{}, outputs)

	p := sess.NewProbe("p")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "x", At: ir.AttachEntry}))
	require.NoError(t, p.AddConstant(&ir.Constant{ID: "lat", Type: ir.ScalarInt64, Value: "0"}))

	require.NoError(t, p.BindOutput(&ir.OutputAction{Output: "O", SourceIDs: []string{"lat"}}))

	// P3: the implicit columns are the first |implicit_columns| fields, in order.
	st, ok := sess.Structs.Get("O_value_t")
	require.True(t, ok)
	require.True(t, len(st.Fields) >= len(sess.ImplicitCols)+1)
	for i, col := range sess.ImplicitCols {
		assert.Equal(t, col, st.Fields[i].Name)
	}
	assert.Equal(t, "latency_ns", st.Fields[len(sess.ImplicitCols)].Name)

	assert.Equal(t, "O_value_t", outputs["O"].StructType)

	pp := p.Build(ir.ProbeTarget{})
	require.Len(t, pp.Outputs, 1)
	assert.Equal(t, "O", pp.Outputs[0].Output)
}

func TestBindOutputArityMismatch(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	outputs := map[string]*ir.Output{"O": {Name: "O", Fields: []string{"a", "b"}}}
	sess := NewSession(ir.LangGo, dw, map[string]*ir.Map{}, outputs)
	p := sess.NewProbe("p")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "x", At: ir.AttachEntry}))
	require.NoError(t, p.AddConstant(&ir.Constant{ID: "x", Type: ir.ScalarInt64, Value: "0"}))

	err := p.BindOutput(&ir.OutputAction{Output: "O", SourceIDs: []string{"x"}})
	require.Error(t, err)
	var invErr *ir.InvalidArgumentError
	assert.ErrorAs(t, err, &invErr)
}

func TestBindOutputUnknownOutput(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	sess := NewSession(ir.LangGo, dw, map[string]*ir.Map{}, map[string]*ir.Output{})
	p := sess.NewProbe("p")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "x", At: ir.AttachEntry}))

	err := p.BindOutput(&ir.OutputAction{Output: "missing", SourceIDs: nil})
	require.Error(t, err)
	var unk *ir.UnknownOutputError
	assert.ErrorAs(t, err, &unk)
}

func TestBindOutputDoubleSetMismatchIsError(t *testing.T) {
	dw := dwarfinfo.NewFakeReader()
	outputs := map[string]*ir.Output{"O": {Name: "O", Fields: []string{"a"}, StructType: "something_else"}}
	sess := NewSession(ir.LangGo, dw, map[string]*ir.Map{}, outputs)
	p := sess.NewProbe("p")
	require.NoError(t, p.AddSpecialVariables(ir.ProbeTarget{Symbol: "x", At: ir.AttachEntry}))
	require.NoError(t, p.AddConstant(&ir.Constant{ID: "a", Type: ir.ScalarInt64, Value: "0"}))

	err := p.BindOutput(&ir.OutputAction{Output: "O", SourceIDs: []string{"a"}})
	require.Error(t, err)
	var invErr *ir.InvariantViolationError
	assert.ErrorAs(t, err, &invErr)
}
