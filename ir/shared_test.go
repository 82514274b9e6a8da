package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructSameShape(t *testing.T) {
	a := &Struct{Name: "M_value_t", Fields: []StructField{{Name: "x", Type: ScalarUint64}}}
	b := &Struct{Name: "M_value_t", Fields: []StructField{{Name: "x", Type: ScalarUint64}}}
	c := &Struct{Name: "M_value_t", Fields: []StructField{{Name: "x", Type: ScalarInt32}}}
	d := &Struct{Name: "M_value_t", Fields: []StructField{{Name: "x", Type: ScalarUint64}, {Name: "y", Type: ScalarInt32}}}

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
	assert.False(t, a.SameShape(d))
}
