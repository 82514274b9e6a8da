package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kprobelower/kprobelower/ir"
)

func TestSymbolTableDefineLookup(t *testing.T) {
	s := New()
	assert.False(t, s.Has("a"))

	s.Define("a", ir.ScalarInt64)
	typ, ok := s.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, ir.ScalarInt64, typ)
	assert.True(t, s.Has("a"))
}

func TestSymbolTableLookupMissing(t *testing.T) {
	s := New()
	_, ok := s.Lookup("nope")
	assert.False(t, ok)
}

func TestStructRegistryRegisterAndGet(t *testing.T) {
	r := NewStructRegistry()
	st := &ir.Struct{Name: "M_value_t", Fields: []ir.StructField{{Name: "x", Type: ir.ScalarUint64}}}

	require.NoError(t, r.Register(st))
	got, ok := r.Get("M_value_t")
	require.True(t, ok)
	assert.Equal(t, st, got)
	assert.Len(t, r.All(), 1)
}

func TestStructRegistrySameShapeReRegisterIsNoop(t *testing.T) {
	r := NewStructRegistry()
	st1 := &ir.Struct{Name: "M_value_t", Fields: []ir.StructField{{Name: "x", Type: ir.ScalarUint64}}}
	st2 := &ir.Struct{Name: "M_value_t", Fields: []ir.StructField{{Name: "x", Type: ir.ScalarUint64}}}

	require.NoError(t, r.Register(st1))
	require.NoError(t, r.Register(st2))
	assert.Len(t, r.All(), 1)
}

func TestStructRegistryIncompatibleRedefinitionErrors(t *testing.T) {
	r := NewStructRegistry()
	st1 := &ir.Struct{Name: "M_value_t", Fields: []ir.StructField{{Name: "x", Type: ir.ScalarUint64}}}
	st2 := &ir.Struct{Name: "M_value_t", Fields: []ir.StructField{{Name: "x", Type: ir.ScalarInt32}}}

	require.NoError(t, r.Register(st1))
	err := r.Register(st2)
	require.Error(t, err)
	var invErr *ir.InvariantViolationError
	assert.ErrorAs(t, err, &invErr)
}
