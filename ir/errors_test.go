package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessagesCarryContext(t *testing.T) {
	assert.Contains(t, (&InvalidArgumentError{Context: "probe p", Reason: "empty"}).Error(), "empty")
	assert.Contains(t, (&UnknownArgumentError{Probe: "p", Name: "x"}).Error(), "x")
	assert.Contains(t, (&UnknownFieldError{Probe: "p", Type: "S", Field: "f"}).Error(), "f")
	assert.Contains(t, (&UnknownVariableError{Probe: "p", Name: "v"}).Error(), "v")
	assert.Contains(t, (&UnknownMapError{Probe: "p", Map: "M"}).Error(), "M")
	assert.Contains(t, (&UnknownOutputError{Probe: "p", Output: "O"}).Error(), "O")
	assert.Contains(t, (&TypeUnsupportedError{Language: "go", Kind: "struct", TypeName: "T"}).Error(), "T")
	assert.Contains(t, (&InvariantViolationError{Context: "c", Reason: "r"}).Error(), "r")
	assert.Contains(t, (&UnimplementedError{Context: "c", Reason: "r"}).Error(), "r")
}

func TestDwarfErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	wrapped := &DwarfError{Context: "reading", Err: inner}
	assert.ErrorIs(t, wrapped, inner)
}
