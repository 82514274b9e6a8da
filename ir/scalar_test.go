package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarTypeString(t *testing.T) {
	assert.Equal(t, "INT64", ScalarInt64.String())
	assert.Equal(t, "VOID_POINTER", ScalarVoidPointer.String())
	assert.Equal(t, "UNKNOWN", ScalarType(999).String())
}

func TestScalarTypeIsAggregate(t *testing.T) {
	assert.True(t, ScalarUnknown.IsAggregate())
	assert.False(t, ScalarInt32.IsAggregate())
}

func TestLanguageString(t *testing.T) {
	assert.Equal(t, "go", LangGo.String())
	assert.Equal(t, "c", LangC.String())
	assert.Equal(t, "cpp", LangCPP.String())
	assert.Equal(t, "unknown", LangUnknown.String())
}

func TestBPFHelperString(t *testing.T) {
	assert.Equal(t, "GOID", HelperGOID.String())
	assert.Equal(t, "TGID_PID", HelperTGIDPID.String())
	assert.Equal(t, "UNKNOWN", HelperUnknown.String())
}

func TestAttachPointString(t *testing.T) {
	assert.Equal(t, "entry", AttachEntry.String())
	assert.Equal(t, "return", AttachReturn.String())
}

func TestRegisterKindString(t *testing.T) {
	assert.Equal(t, "SP", RegStackPointer.String())
	assert.Equal(t, "RC", RegReturnValue.String())
}
