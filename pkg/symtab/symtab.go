// Package symtab implements the Symbol Table & Struct Registry (C3): a
// per-probe name-to-scalar-type map, reset at the start of every probe,
// and a struct registry shared across all probes in one program assembly.
package symtab

import "github.com/kprobelower/kprobelower/ir"

// SymbolTable tracks every variable name emitted so far in one probe and
// its scalar type. It is reset at the start of each probe (spec
// Lifecycle); implicit columns are re-synthesized rather than carried
// over, since a fresh SymbolTable has no memory of the previous probe.
type SymbolTable struct {
	types map[string]ir.ScalarType
}

// New returns an empty SymbolTable.
func New() *SymbolTable {
	return &SymbolTable{types: make(map[string]ir.ScalarType)}
}

// Define records name's scalar type, overwriting any prior definition
// under the same name (the lowering pass never redefines a name within
// one probe in practice, but SymbolTable itself does not enforce that;
// callers that care check Lookup first).
func (s *SymbolTable) Define(name string, t ir.ScalarType) {
	s.types[name] = t
}

// Lookup returns the scalar type name was defined with, and whether it
// was defined at all.
func (s *SymbolTable) Lookup(name string) (ir.ScalarType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Has reports whether name has been defined.
func (s *SymbolTable) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// StructRegistry is the program-wide, content-addressed struct namespace
// shared across every probe in one program assembly (spec invariant 4:
// exactly one value struct schema exists per map/output name).
type StructRegistry struct {
	byName map[string]*ir.Struct
	order  []string
}

// NewStructRegistry returns an empty StructRegistry.
func NewStructRegistry() *StructRegistry {
	return &StructRegistry{byName: make(map[string]*ir.Struct)}
}

// Register adds s to the registry. If a struct with the same name is
// already registered, its shape must match exactly s's, or an
// *ir.InvariantViolationError is returned — redefining a struct with a
// different shape is never allowed (spec §4.3).
func (r *StructRegistry) Register(s *ir.Struct) error {
	if existing, ok := r.byName[s.Name]; ok {
		if !existing.SameShape(s) {
			return &ir.InvariantViolationError{
				Context: "struct " + s.Name,
				Reason:  "redefined with a different shape",
			}
		}
		return nil
	}
	r.byName[s.Name] = s
	r.order = append(r.order, s.Name)
	return nil
}

// Get returns the struct registered under name, if any.
func (r *StructRegistry) Get(name string) (*ir.Struct, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// All returns every registered struct in registration order.
func (r *StructRegistry) All() []*ir.Struct {
	out := make([]*ir.Struct, len(r.order))
	for i, name := range r.order {
		out[i] = r.byName[name]
	}
	return out
}
