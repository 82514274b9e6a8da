// Package lower is the heart of the compiler: the Special-Variable
// Injector (C4), the Expression Lowerer (C5), the Argument/Return Binder
// (C6), Map Access/Update/Delete (C7), and the Output Record Emitter
// (C8). All of it operates on one probe at a time through a Probe value
// built by a shared Session.
package lower

import "github.com/kprobelower/kprobelower/ir"

// Special variables all end with an underscore to keep them out of the
// way of user-supplied ids. startKTimeNSVarName is the exception: it is not
// a special variable but the id the latency lowerer expects an earlier map
// read to have bound.
const (
	spVarName              = "sp_"
	tgidVarName             = "tgid_"
	tgidPIDVarName          = "tgid_pid_"
	tgidStartTimeVarName    = "tgid_start_time_"
	goidVarName             = "goid_"
	ktimeVarName            = "time_" // implicitly used by the downstream query engine as the time column; must not be renamed.
	rcVarName               = "rc_"
	startKTimeNSVarName     = "start_ktime_ns"
)

// dotDecoration and derefDecoration are appended to a variable's internal
// name by the expression lowerer for, respectively, a field-selection hop
// and a dereference hop. They affect only internal variable names, never
// a user-supplied id.
const (
	dotDecoration   = "_D_"
	derefDecoration = "_X_"
)

// stackPointerBias reconciles DWARF's frame-base convention with the
// probe runtime's notion of the stack-pointer register: an 8 byte
// constant disagreement between the two.
const stackPointerBias int64 = 8

// builtinVarName resolves the fixed built-in-to-variable-name mapping C4
// establishes and C7 reuses for map keys.
func builtinVarName(h ir.BPFHelper) (string, error) {
	switch h {
	case ir.HelperGOID:
		return goidVarName, nil
	case ir.HelperTGID:
		return tgidVarName, nil
	case ir.HelperTGIDPID:
		return tgidPIDVarName, nil
	case ir.HelperTGIDStartTime:
		return tgidStartTimeVarName, nil
	case ir.HelperKTime:
		return ktimeVarName, nil
	default:
		return "", &ir.InvalidArgumentError{Context: "builtin variable", Reason: "no predefined variable for helper " + h.String()}
	}
}

// StructTypeName is the value-struct name convention shared by maps and
// outputs: "<object>_value_t".
func StructTypeName(objectName string) string {
	return objectName + "_value_t"
}

// valueVarName is the value-variable name convention: "<object>_value".
func valueVarName(objectName string) string {
	return objectName + "_value"
}

// mapPtrVarName is the map-pointer variable name convention:
// "<map>_ptr".
func mapPtrVarName(mapName string) string {
	return mapName + "_ptr"
}
