package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kprobelower/kprobelower/ir"
	"github.com/kprobelower/kprobelower/pkg/dwarfinfo"
)

func TestMapGoBaseTypes(t *testing.T) {
	got, err := Map(ir.LangGo, dwarfinfo.KindBase, "int64")
	require.NoError(t, err)
	assert.Equal(t, ir.ScalarInt64, got)
}

func TestMapCBaseTypes(t *testing.T) {
	got, err := Map(ir.LangC, dwarfinfo.KindBase, "unsigned long")
	require.NoError(t, err)
	assert.Equal(t, ir.ScalarULong, got)
}

func TestMapPointerAlwaysVoidPointer(t *testing.T) {
	got, err := Map(ir.LangGo, dwarfinfo.KindPointer, "main.S")
	require.NoError(t, err)
	assert.Equal(t, ir.ScalarVoidPointer, got)
}

func TestMapGoStructLeaves(t *testing.T) {
	s, err := Map(ir.LangGo, dwarfinfo.KindStruct, "string")
	require.NoError(t, err)
	assert.Equal(t, ir.ScalarString, s)

	b, err := Map(ir.LangGo, dwarfinfo.KindStruct, "[]uint8")
	require.NoError(t, err)
	assert.Equal(t, ir.ScalarByteArray, b)
}

func TestMapUnsupportedStructIsError(t *testing.T) {
	_, err := Map(ir.LangGo, dwarfinfo.KindStruct, "main.S")
	require.Error(t, err)
	var typeErr *ir.TypeUnsupportedError
	assert.ErrorAs(t, err, &typeErr)
}

func TestMapUnknownCTypeNameIsError(t *testing.T) {
	_, err := Map(ir.LangC, dwarfinfo.KindBase, "nonexistent_type")
	require.Error(t, err)
}

func TestMapUnsupportedLanguageIsError(t *testing.T) {
	_, err := Map(ir.LangUnknown, dwarfinfo.KindBase, "int")
	require.Error(t, err)
}
