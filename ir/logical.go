package ir

// DeploymentSpec names the traced binary. It is the only field the
// assembler needs before it can open a DWARF reader.
type DeploymentSpec struct {
	BinaryPath string
}

// ProbeTarget is where a single logical probe attaches: a function symbol
// in the traced binary, and whether it fires on entry or on return.
type ProbeTarget struct {
	Symbol string
	At     AttachPoint
}

// Constant is a literal of a declared scalar type, emitted as a Constant
// variable with no DWARF lookup involved.
type Constant struct {
	ID    string
	Type  ScalarType
	Value string
}

// ArgExpr requests that a dotted path against one of the function's
// arguments (e.g. "arg1.inner.field") be lowered and bound to ID.
type ArgExpr struct {
	ID         string
	Expression string
}

// RetValExpr requests that a dotted path rooted at a return value index
// (e.g. "$0.result") be lowered and bound to ID.
type RetValExpr struct {
	ID         string
	Expression string
}

// MapValueRef requests a read from a map: the key is resolved through a
// built-in helper, and each entry of ValueIDs names the user-facing id the
// corresponding field of the map's registered value struct is bound to,
// in field order.
type MapValueRef struct {
	Map      string
	Key      BPFHelper
	ValueIDs []string
}

// LatencyRequest asks for a BinaryExpr variable computing
// time_ - start_ktime_ns, bound to ID.
type LatencyRequest struct {
	ID string
}

// StashAction writes a struct assembled from SourceIDs into Map, keyed by
// the resolved built-in. Condition is carried through opaquely to the
// physical action; this pass does not interpret it.
type StashAction struct {
	Map       string
	Key       BPFHelper
	SourceIDs []string
	Condition string
}

// DeleteAction removes an entry from Map, keyed by the resolved built-in.
type DeleteAction struct {
	Map string
	Key BPFHelper
}

// OutputAction emits a record to Output, whose fields are bound from
// SourceIDs, in declared field order.
type OutputAction struct {
	Output    string
	SourceIDs []string
}

// PrintDirective asks the generated probe to format and print the named
// variables for local debugging; it never touches a map or a perf buffer.
type PrintDirective struct {
	VariableIDs []string
}

// LogicalProbe is one probe definition within a logical program: where it
// attaches and what it should capture, stash, delete, and emit.
type LogicalProbe struct {
	Name       string
	Target     ProbeTarget
	Constants  []*Constant
	Args       []*ArgExpr
	RetVals    []*RetValExpr
	MapValues  []*MapValueRef
	Latency    *LatencyRequest
	Stashes    []*StashAction
	Deletes    []*DeleteAction
	Outputs    []*OutputAction
	Prints     []*PrintDirective
}

// LogicalProgram is the language-scoped collection of maps, outputs, and
// probes that make up one tracepoint's deployment.
type LogicalProgram struct {
	Language Language
	Maps     []*Map
	Outputs  []*Output
	Probes   []*LogicalProbe
}

// Tracepoint wraps the single LogicalProgram a deployment may carry; spec
// invariant 5 requires a LogicalDeployment to contain exactly one of
// these.
type Tracepoint struct {
	Program *LogicalProgram
}

// LogicalDeployment is the top-level input to the lowering pass.
type LogicalDeployment struct {
	DeploymentSpec DeploymentSpec
	Tracepoints    []*Tracepoint
}
