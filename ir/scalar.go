// Package ir defines the logical and physical intermediate representations
// the lowering pass translates between, along with the closed set of scalar
// types and typed errors shared across every component.
package ir

// ScalarType is the closed set of leaf value types a variable, struct
// field, or map/output column may carry.
type ScalarType int

const (
	ScalarUnknown ScalarType = iota
	ScalarBool
	ScalarInt8
	ScalarInt16
	ScalarInt32
	ScalarInt64
	ScalarUint8
	ScalarUint16
	ScalarUint32
	ScalarUint64
	ScalarInt
	ScalarUint
	ScalarShort
	ScalarUShort
	ScalarLong
	ScalarULong
	ScalarLongLong
	ScalarULongLong
	ScalarChar
	ScalarUChar
	ScalarFloat
	ScalarDouble
	ScalarVoidPointer
	ScalarString
	ScalarByteArray
)

var scalarNames = map[ScalarType]string{
	ScalarUnknown:     "UNKNOWN",
	ScalarBool:        "BOOL",
	ScalarInt8:        "INT8",
	ScalarInt16:       "INT16",
	ScalarInt32:       "INT32",
	ScalarInt64:       "INT64",
	ScalarUint8:       "UINT8",
	ScalarUint16:      "UINT16",
	ScalarUint32:      "UINT32",
	ScalarUint64:      "UINT64",
	ScalarInt:         "INT",
	ScalarUint:        "UINT",
	ScalarShort:       "SHORT",
	ScalarUShort:      "USHORT",
	ScalarLong:        "LONG",
	ScalarULong:       "ULONG",
	ScalarLongLong:    "LONGLONG",
	ScalarULongLong:   "ULONGLONG",
	ScalarChar:        "CHAR",
	ScalarUChar:       "UCHAR",
	ScalarFloat:       "FLOAT",
	ScalarDouble:      "DOUBLE",
	ScalarVoidPointer: "VOID_POINTER",
	ScalarString:      "STRING",
	ScalarByteArray:   "BYTE_ARRAY",
}

func (t ScalarType) String() string {
	if s, ok := scalarNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsAggregate reports whether t is not a usable leaf scalar (i.e. it is
// the zero value, meaning no scalar mapping was ever assigned).
func (t ScalarType) IsAggregate() bool {
	return t == ScalarUnknown
}

// Language is the source language of the traced binary; it drives both
// type-name tables (C1) and special-variable synthesis (C4).
type Language int

const (
	LangUnknown Language = iota
	LangGo
	LangC
	LangCPP
)

func (l Language) String() string {
	switch l {
	case LangGo:
		return "go"
	case LangC:
		return "c"
	case LangCPP:
		return "cpp"
	default:
		return "unknown"
	}
}

// BPFHelper enumerates the fixed set of helper functions the probe runtime
// exposes, each returning a well-known quantity without any DWARF lookup.
type BPFHelper int

const (
	HelperUnknown BPFHelper = iota
	HelperGOID
	HelperTGID
	HelperTGIDPID
	HelperTGIDStartTime
	HelperKTime
)

func (h BPFHelper) String() string {
	switch h {
	case HelperGOID:
		return "GOID"
	case HelperTGID:
		return "TGID"
	case HelperTGIDPID:
		return "TGID_PID"
	case HelperTGIDStartTime:
		return "TGID_START_TIME"
	case HelperKTime:
		return "KTIME"
	default:
		return "UNKNOWN"
	}
}

// AttachPoint is where within a traced function a probe fires.
type AttachPoint int

const (
	AttachEntry AttachPoint = iota
	AttachReturn
)

func (a AttachPoint) String() string {
	if a == AttachReturn {
		return "return"
	}
	return "entry"
}

// BinaryOp is the operator of a BinaryExpr variable. Only subtraction is
// used today (function-latency computation), but the type is kept open
// the way the rest of the variant set is.
type BinaryOp int

const (
	OpSub BinaryOp = iota
)

func (o BinaryOp) String() string {
	switch o {
	case OpSub:
		return "-"
	default:
		return "?"
	}
}

// RegisterKind names the two machine registers a Register variable may be
// bound to.
type RegisterKind int

const (
	RegStackPointer RegisterKind = iota
	RegReturnValue
)

func (r RegisterKind) String() string {
	if r == RegReturnValue {
		return "RC"
	}
	return "SP"
}
