// Package config loads a LogicalDeployment from a YAML file for the
// kprobelowerctl demo CLI, the same role delve's own dlv command gives a
// thin command-specific config layer in front of its core types.
package config

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/kprobelower/kprobelower/ir"
)

// File is the top-level YAML shape: one binary path and one tracepoint,
// mirroring spec §6's LogicalDeployment exactly (one tracepoint, no more).
type File struct {
	BinaryPath string           `yaml:"binary_path"`
	Tracepoint TracepointConfig `yaml:"tracepoint"`
}

type TracepointConfig struct {
	Language string         `yaml:"language"`
	Maps     []MapConfig    `yaml:"maps"`
	Outputs  []OutputConfig `yaml:"outputs"`
	Probes   []ProbeConfig  `yaml:"probes"`
}

type MapConfig struct {
	Name string `yaml:"name"`
}

type OutputConfig struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
}

type ProbeConfig struct {
	Name      string             `yaml:"name"`
	Target    TargetConfig       `yaml:"target"`
	Constants []ConstantConfig   `yaml:"constants,omitempty"`
	Args      []ArgConfig        `yaml:"args,omitempty"`
	RetVals   []RetValConfig     `yaml:"ret_vals,omitempty"`
	MapValues []MapValueConfig   `yaml:"map_values,omitempty"`
	Latency   *LatencyConfig     `yaml:"latency,omitempty"`
	Stashes   []StashConfig      `yaml:"stashes,omitempty"`
	Deletes   []DeleteConfig     `yaml:"deletes,omitempty"`
	Outputs   []OutputActionConf `yaml:"outputs,omitempty"`
	Prints    []PrintConfig      `yaml:"prints,omitempty"`
}

type TargetConfig struct {
	Symbol string `yaml:"symbol"`
	At     string `yaml:"at"` // "entry" or "return"
}

type ConstantConfig struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

type ArgConfig struct {
	ID   string `yaml:"id"`
	Expr string `yaml:"expr"`
}

type RetValConfig struct {
	ID   string `yaml:"id"`
	Expr string `yaml:"expr"`
}

type MapValueConfig struct {
	Map      string   `yaml:"map"`
	Key      string   `yaml:"key"`
	ValueIDs []string `yaml:"value_ids"`
}

type LatencyConfig struct {
	ID string `yaml:"id"`
}

type StashConfig struct {
	Map       string   `yaml:"map"`
	Key       string   `yaml:"key"`
	SourceIDs []string `yaml:"source_ids"`
	Condition string   `yaml:"condition,omitempty"`
}

type DeleteConfig struct {
	Map string `yaml:"map"`
	Key string `yaml:"key"`
}

type OutputActionConf struct {
	Output    string   `yaml:"output"`
	SourceIDs []string `yaml:"source_ids"`
}

type PrintConfig struct {
	VariableIDs []string `yaml:"variable_ids"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ToLogical converts f into the LogicalDeployment the lowering pass
// consumes.
func (f *File) ToLogical() (*ir.LogicalDeployment, error) {
	lang, err := parseLanguage(f.Tracepoint.Language)
	if err != nil {
		return nil, err
	}

	prog := &ir.LogicalProgram{Language: lang}
	for _, m := range f.Tracepoint.Maps {
		prog.Maps = append(prog.Maps, &ir.Map{Name: m.Name})
	}
	for _, o := range f.Tracepoint.Outputs {
		prog.Outputs = append(prog.Outputs, &ir.Output{Name: o.Name, Fields: o.Fields})
	}
	for _, pc := range f.Tracepoint.Probes {
		lp, err := pc.toLogical()
		if err != nil {
			return nil, err
		}
		prog.Probes = append(prog.Probes, lp)
	}

	return &ir.LogicalDeployment{
		DeploymentSpec: ir.DeploymentSpec{BinaryPath: f.BinaryPath},
		Tracepoints:    []*ir.Tracepoint{{Program: prog}},
	}, nil
}

func (pc *ProbeConfig) toLogical() (*ir.LogicalProbe, error) {
	at, err := parseAttach(pc.Target.At)
	if err != nil {
		return nil, err
	}
	lp := &ir.LogicalProbe{
		Name:   pc.Name,
		Target: ir.ProbeTarget{Symbol: pc.Target.Symbol, At: at},
	}

	for _, c := range pc.Constants {
		t, err := parseScalar(c.Type)
		if err != nil {
			return nil, err
		}
		lp.Constants = append(lp.Constants, &ir.Constant{ID: c.ID, Type: t, Value: c.Value})
	}
	for _, a := range pc.Args {
		lp.Args = append(lp.Args, &ir.ArgExpr{ID: a.ID, Expression: a.Expr})
	}
	for _, r := range pc.RetVals {
		lp.RetVals = append(lp.RetVals, &ir.RetValExpr{ID: r.ID, Expression: r.Expr})
	}
	for _, mv := range pc.MapValues {
		key, err := parseHelper(mv.Key)
		if err != nil {
			return nil, err
		}
		lp.MapValues = append(lp.MapValues, &ir.MapValueRef{Map: mv.Map, Key: key, ValueIDs: mv.ValueIDs})
	}
	if pc.Latency != nil {
		lp.Latency = &ir.LatencyRequest{ID: pc.Latency.ID}
	}
	for _, s := range pc.Stashes {
		key, err := parseHelper(s.Key)
		if err != nil {
			return nil, err
		}
		lp.Stashes = append(lp.Stashes, &ir.StashAction{Map: s.Map, Key: key, SourceIDs: s.SourceIDs, Condition: s.Condition})
	}
	for _, d := range pc.Deletes {
		key, err := parseHelper(d.Key)
		if err != nil {
			return nil, err
		}
		lp.Deletes = append(lp.Deletes, &ir.DeleteAction{Map: d.Map, Key: key})
	}
	for _, o := range pc.Outputs {
		lp.Outputs = append(lp.Outputs, &ir.OutputAction{Output: o.Output, SourceIDs: o.SourceIDs})
	}
	for _, p := range pc.Prints {
		lp.Prints = append(lp.Prints, &ir.PrintDirective{VariableIDs: p.VariableIDs})
	}
	return lp, nil
}

func parseLanguage(s string) (ir.Language, error) {
	switch s {
	case "go":
		return ir.LangGo, nil
	case "c":
		return ir.LangC, nil
	case "cpp", "c++":
		return ir.LangCPP, nil
	default:
		return ir.LangUnknown, &ir.InvalidArgumentError{Context: "config", Reason: "unknown language " + s}
	}
}

func parseAttach(s string) (ir.AttachPoint, error) {
	switch s {
	case "entry", "":
		return ir.AttachEntry, nil
	case "return":
		return ir.AttachReturn, nil
	default:
		return ir.AttachEntry, &ir.InvalidArgumentError{Context: "config", Reason: "unknown attach point " + s}
	}
}

func parseHelper(s string) (ir.BPFHelper, error) {
	switch s {
	case "GOID":
		return ir.HelperGOID, nil
	case "TGID":
		return ir.HelperTGID, nil
	case "TGID_PID":
		return ir.HelperTGIDPID, nil
	case "TGID_START_TIME":
		return ir.HelperTGIDStartTime, nil
	case "KTIME":
		return ir.HelperKTime, nil
	default:
		return ir.HelperUnknown, &ir.InvalidArgumentError{Context: "config", Reason: "unknown builtin " + s}
	}
}

var scalarNamesByConfig = map[string]ir.ScalarType{
	"BOOL": ir.ScalarBool, "INT8": ir.ScalarInt8, "INT16": ir.ScalarInt16,
	"INT32": ir.ScalarInt32, "INT64": ir.ScalarInt64, "UINT8": ir.ScalarUint8,
	"UINT16": ir.ScalarUint16, "UINT32": ir.ScalarUint32, "UINT64": ir.ScalarUint64,
	"INT": ir.ScalarInt, "UINT": ir.ScalarUint, "FLOAT": ir.ScalarFloat, "DOUBLE": ir.ScalarDouble,
}

func parseScalar(s string) (ir.ScalarType, error) {
	if t, ok := scalarNamesByConfig[s]; ok {
		return t, nil
	}
	return ir.ScalarUnknown, &ir.InvalidArgumentError{Context: "config", Reason: "unknown constant type " + s}
}
