package errors

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFatal(t *testing.T) {
	assert.True(t, KindMalformed.Fatal())
	assert.True(t, KindUnsupported.Fatal())
	assert.True(t, KindInternal.Fatal())
	assert.False(t, KindIrreducible.Fatal())
}

func TestErrorMessageIncludesOffset(t *testing.T) {
	err := Malformed(CodeUnknownOpcode, "opcode 200 is not recognized", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instruction 7")
	assert.Contains(t, err.Error(), CodeUnknownOpcode)
}

func TestInternalWrapsCause(t *testing.T) {
	cause := stderrors.New("successor set diverged from terminator targets")
	err := Internal("graph invariant violated", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIrreducibleIsNonFatalAndHasNoOffset(t *testing.T) {
	err := Irreducible(3)
	assert.False(t, err.Kind.Fatal())
	assert.Equal(t, -1, err.Offset)
	assert.Contains(t, err.Msg, "3")
}

func TestReportRendersOffsetLine(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, Malformed(CodeTruncatedStream, "stream ended mid-instruction", 12))
	out := buf.String()
	assert.Contains(t, out, "instruction 12")
	assert.Contains(t, out, CodeTruncatedStream)
}
