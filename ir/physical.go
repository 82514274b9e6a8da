package ir

// Variable is implemented by each of the eight physical variable variants
// (Register, Builtin, Constant, Memory, MapLookup, Member, Struct,
// BinaryExpr). The variant set is modeled as a tagged union of concrete
// Go types behind a small interface rather than a class hierarchy — the
// same shape delve's own godwarf.Type takes (CommonType-embedding structs
// such as PtrType, StructType, IntType all satisfying one Type interface)
// — so a downstream consumer can switch over the concrete type
// exhaustively instead of walking a virtual dispatch chain.
type Variable interface {
	// VarName is the name this variable is emitted and referenced under.
	VarName() string
	isVariable()
}

// RegisterVariable binds a name to a machine register: the stack pointer
// (every probe) or the return-value register (C/C++ return probes only).
type RegisterVariable struct {
	Name     string
	Register RegisterKind
	Type     ScalarType
}

func (v *RegisterVariable) VarName() string { return v.Name }
func (*RegisterVariable) isVariable()       {}

// BuiltinVariable binds a name to one of the fixed probe-runtime helpers.
type BuiltinVariable struct {
	Name   string
	Helper BPFHelper
	Type   ScalarType
}

func (v *BuiltinVariable) VarName() string { return v.Name }
func (*BuiltinVariable) isVariable()       {}

// ConstantVariable binds a name to a literal of a declared scalar type.
type ConstantVariable struct {
	Name  string
	Type  ScalarType
	Value string
}

func (v *ConstantVariable) VarName() string { return v.Name }
func (*ConstantVariable) isVariable()       {}

// MemoryVariable is defined by a (base, offset) pair: read Type's worth of
// bytes at Base's value plus Offset. Base must name a variable defined
// strictly earlier in the same probe (spec invariant P1).
type MemoryVariable struct {
	Name   string
	Base   string
	Offset int64
	Type   ScalarType
}

func (v *MemoryVariable) VarName() string { return v.Name }
func (*MemoryVariable) isVariable()       {}

// MapLookupVariable yields a pointer into a map's value struct, looked up
// by a named key variable.
type MapLookupVariable struct {
	Name string
	Map  string
	Key  string
}

func (v *MapLookupVariable) VarName() string { return v.Name }
func (*MapLookupVariable) isVariable()       {}

// MemberVariable extracts one field from a named struct-typed variable.
// Pointer indicates the struct variable holds a pointer to the struct
// rather than the struct itself (as with a MapLookupVariable's result).
type MemberVariable struct {
	Name    string
	Struct  string
	Field   string
	Pointer bool
	Type    ScalarType
}

func (v *MemberVariable) VarName() string { return v.Name }
func (*MemberVariable) isVariable()       {}

// StructAssignment assigns one field of a StructVariable from a named
// source variable.
type StructAssignment struct {
	Field  string
	Source string
}

// StructVariable is a stack-allocated aggregate of a named, registered
// struct type, with its fields assigned from named variables.
type StructVariable struct {
	Name        string
	StructType  string
	Assignments []StructAssignment
}

func (v *StructVariable) VarName() string { return v.Name }
func (*StructVariable) isVariable()       {}

// BinaryExprVariable computes Name = LHS Op RHS over two named variables.
// Used only for latency (time_ - start_ktime_ns).
type BinaryExprVariable struct {
	Name string
	Op   BinaryOp
	LHS  string
	RHS  string
	Type ScalarType
}

func (v *BinaryExprVariable) VarName() string { return v.Name }
func (*BinaryExprVariable) isVariable()       {}

// PhysicalProbe is one fully-lowered probe: an ordered variable list (later
// variables may reference earlier ones by name) plus its actions.
type PhysicalProbe struct {
	Name       string
	Target     ProbeTarget
	Variables  []Variable
	Stashes    []*StashAction
	Deletes    []*DeleteAction
	Outputs    []*OutputAction
	Prints     []*PrintDirective
	LatencyVar string // name of the BinaryExpr variable, if a latency was requested
}

// PhysicalProgram is the lowering pass's output.
type PhysicalProgram struct {
	DeploymentSpec DeploymentSpec
	Language       Language
	Maps           []*Map
	Outputs        []*Output
	Structs        []*Struct
	Probes         []*PhysicalProbe
}
