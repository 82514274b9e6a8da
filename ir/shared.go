package ir

// Map is a kernel-side associative array used to pass state between an
// entry probe and its matching return probe. KeyType and ValueType start
// unset on a logical declaration and are assigned in place by the first
// stash action that targets the map (C7), which is why the same struct is
// reused for both the logical and the physical representation instead of
// being copied into a separate physical type.
type Map struct {
	Name      string
	KeyType   ScalarType
	ValueType string // struct name, empty until first stash
}

// Output is a perf-buffer declaration: a name and a declared field list.
// StructType is assigned once, by C8, the first time the output is
// targeted by an OutputAction.
type Output struct {
	Name       string
	Fields     []string
	StructType string
}

// StructField is one member of a registered Struct.
type StructField struct {
	Name string
	Type ScalarType
}

// Struct is a content-addressed aggregate type: once registered under a
// name it must not be redefined with a different shape (spec invariant,
// C3).
type Struct struct {
	Name   string
	Fields []StructField
}

// SameShape reports whether two structs have identical field
// names/types/order, used to detect an incompatible redefinition attempt.
func (s *Struct) SameShape(other *Struct) bool {
	if len(s.Fields) != len(other.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}
