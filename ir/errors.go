package ir

import "fmt"

// Every fallible operation in this module returns one of the error types
// below, each carrying the context (probe, map/output, variable id) the
// caller needs without parsing a message string. This mirrors the typed
// struct errors delve defines for its own domain (for example
// BreakpointExistsError, NoBreakpointError, ProcessExitedError): a distinct
// Go type per failure mode rather than a single generic error wrapping a
// string, so callers can recover structured context with errors.As.

// InvalidArgumentError reports malformed input: an empty expression, the
// wrong tracepoint count, a return-index parse failure, an output arity
// mismatch.
type InvalidArgumentError struct {
	Context string
	Reason  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument in %s: %s", e.Context, e.Reason)
}

// UnknownArgumentError reports that an expression's root component does
// not name a known DWARF function argument.
type UnknownArgumentError struct {
	Probe string
	Name  string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("probe %q: unknown argument %q", e.Probe, e.Name)
}

// UnknownFieldError reports that a path component does not name a member
// of the struct type reached at that point in the expression.
type UnknownFieldError struct {
	Probe string
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("probe %q: type %q has no field %q", e.Probe, e.Type, e.Field)
}

// UnknownVariableError reports a reference to a variable not present in
// the enclosing probe's symbol table at emission time.
type UnknownVariableError struct {
	Probe string
	Name  string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("probe %q: unknown variable %q", e.Probe, e.Name)
}

// UnknownMapError reports a reference to a map name absent from the
// program's map registry.
type UnknownMapError struct {
	Probe string
	Map   string
}

func (e *UnknownMapError) Error() string {
	return fmt.Sprintf("probe %q: unknown map %q", e.Probe, e.Map)
}

// UnknownOutputError reports a reference to an output name absent from
// the program's output registry.
type UnknownOutputError struct {
	Probe  string
	Output string
}

func (e *UnknownOutputError) Error() string {
	return fmt.Sprintf("probe %q: unknown output %q", e.Probe, e.Output)
}

// TypeUnsupportedError reports that the type mapper (C1) has no scalar
// mapping for a DWARF kind/name pair in the given language.
type TypeUnsupportedError struct {
	Language string
	Kind     string
	TypeName string
}

func (e *TypeUnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported type (kind=%s, name=%q)", e.Language, e.Kind, e.TypeName)
}

// DwarfError wraps an error surfaced verbatim from the DWARF adapter (C2),
// tagged with the operation that failed.
type DwarfError struct {
	Context string
	Err     error
}

func (e *DwarfError) Error() string {
	return fmt.Sprintf("dwarf error in %s: %v", e.Context, e.Err)
}

func (e *DwarfError) Unwrap() error { return e.Err }

// InvariantViolationError reports an internal consistency failure: a
// non-base leaf left unresolved, an inconsistent struct redefinition, a
// map-value id count exceeding the registered struct's field count.
type InvariantViolationError struct {
	Context string
	Reason  string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Context, e.Reason)
}

// UnimplementedError reports a code path this pass intentionally does not
// support: return-value lowering for a language other than Go/C/C++, a
// C/C++ return index other than 0, or a void return with a value request.
type UnimplementedError struct {
	Context string
	Reason  string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented in %s: %s", e.Context, e.Reason)
}
