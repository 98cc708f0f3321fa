package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFunctionRoundTripsConstants(t *testing.T) {
	data := []byte(`{
		"maxStackSize": 2,
		"numParameters": 0,
		"constants": [{"kind":"number","num":1}, {"kind":"string","str":"x"}],
		"code": [
			{"op":"LoadConstant","a":0,"const":0},
			{"op":"Return","a":0,"b":1}
		]
	}`)

	fn, err := ParseFunction(data)
	require.NoError(t, err)
	assert.Equal(t, 2, fn.MaxStackSize)
	assert.Len(t, fn.Constants, 2)
	assert.Equal(t, KindNumber, fn.Constants[0].Kind)
	assert.Equal(t, 1.0, fn.Constants[0].Num)
	assert.Equal(t, KindString, fn.Constants[1].Kind)
	assert.Equal(t, "x", fn.Constants[1].Str)
	assert.Len(t, fn.Code, 2)
	assert.Equal(t, OpReturn, fn.Code[1].Op)
}

func TestParseFunctionRejectsStackSizeSmallerThanParams(t *testing.T) {
	data := []byte(`{"maxStackSize": 1, "numParameters": 3, "code": [], "constants": []}`)
	_, err := ParseFunction(data)
	assert.Error(t, err)
}

func TestValueStringFormatsEachKind(t *testing.T) {
	assert.Equal(t, "nil", Value{Kind: KindNil}.String())
	assert.Equal(t, "true", Value{Kind: KindBoolean, Bool: true}.String())
	assert.Equal(t, "3", Value{Kind: KindNumber, Num: 3}.String())
	assert.Equal(t, "1.5", Value{Kind: KindNumber, Num: 1.5}.String())
}
