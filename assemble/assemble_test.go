package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
)

// P6: zero or more than one tracepoint yields InvalidArgument and no output.
func TestAssembleOneTracepointRule(t *testing.T) {
	zero := &ir.LogicalDeployment{DeploymentSpec: ir.DeploymentSpec{BinaryPath: "/bin/x"}}
	_, err := Assemble(zero)
	require.Error(t, err)
	var invErr *ir.InvalidArgumentError
	assert.ErrorAs(t, err, &invErr)

	two := &ir.LogicalDeployment{
		DeploymentSpec: ir.DeploymentSpec{BinaryPath: "/bin/x"},
		Tracepoints: []*ir.Tracepoint{
			{Program: &ir.LogicalProgram{Language: ir.LangGo}},
			{Program: &ir.LogicalProgram{Language: ir.LangGo}},
		},
	}
	_, err = Assemble(two)
	require.Error(t, err)
	assert.ErrorAs(t, err, &invErr)
}

func TestAssembleOpenDwarfFailurePropagates(t *testing.T) {
	dep := &ir.LogicalDeployment{
		DeploymentSpec: ir.DeploymentSpec{BinaryPath: "/nonexistent/binary/path/for/this/test"},
		Tracepoints: []*ir.Tracepoint{
			{Program: &ir.LogicalProgram{Language: ir.LangGo}},
		},
	}
	_, err := Assemble(dep)
	require.Error(t, err)
	var dwErr *ir.DwarfError
	assert.ErrorAs(t, err, &dwErr)
}

// withFakeDWARF swaps the package's DWARF-opening seam for the duration of
// one test, so a full end-to-end assembly can run without a compiled
// binary fixture.
func withFakeDWARF(t *testing.T, fr *dwarfinfo.FakeReader) {
	prev := openDWARF
	openDWARF = func(path string) (dwarfinfo.Reader, error) { return fr, nil }
	t.Cleanup(func() { openDWARF = prev })
}

// End-to-end: one Go probe driven by C9 through special variables (C4), one
// base argument (C5/C6, scenario 1 of spec §8) and one output record (C8).
// No map stash, map read or latency is exercised here.
func TestAssembleEndToEnd(t *testing.T) {
	fr := dwarfinfo.NewFakeReader()
	fr.Args["pkg.Work"] = map[string]dwarfinfo.ArgInfo{
		"a": {Name: "a", Kind: dwarfinfo.KindBase, TypeName: "int64", Offset: 16},
	}
	withFakeDWARF(t, fr)

	dep := &ir.LogicalDeployment{
		DeploymentSpec: ir.DeploymentSpec{BinaryPath: "/fake/binary"},
		Tracepoints: []*ir.Tracepoint{{
			Program: &ir.LogicalProgram{
				Language: ir.LangGo,
				Maps:     []*ir.Map{{Name: "M"}},
				Outputs:  []*ir.Output{{Name: "O", Fields: []string{"a_value"}}},
				Probes: []*ir.LogicalProbe{
					{
						Name:   "work",
						Target: ir.ProbeTarget{Symbol: "pkg.Work", At: ir.AttachEntry},
						Args:   []*ir.ArgExpr{{ID: "A", Expression: "a"}},
						Outputs: []*ir.OutputAction{
							{Output: "O", SourceIDs: []string{"A"}},
						},
					},
				},
			},
		}},
	}

	prog, err := Assemble(dep)
	require.NoError(t, err)
	require.Len(t, prog.Probes, 1)

	probe := prog.Probes[0]
	var names []string
	for _, v := range probe.Variables {
		names = append(names, v.VarName())
	}
	assert.Contains(t, names, "A")
	assert.Contains(t, names, "O_value")
	require.Len(t, probe.Outputs, 1)
	assert.Equal(t, "O", probe.Outputs[0].Output)

	st, ok := findStruct(prog.Structs, "O_value_t")
	require.True(t, ok)
	require.Len(t, st.Fields, 5) // 4 implicit columns (Go) + 1 declared field
	assert.Equal(t, "a_value", st.Fields[len(st.Fields)-1].Name)
	assert.Equal(t, "O_value_t", dep.Tracepoints[0].Program.Outputs[0].StructType)
}

func findStruct(structs []*ir.Struct, name string) (*ir.Struct, bool) {
	for _, s := range structs {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
