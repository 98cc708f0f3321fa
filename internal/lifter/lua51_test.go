package lifter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luadec/internal/bytecode"
	"luadec/internal/ssa"
	"luadec/internal/structurer"
)

// TestLiftAddConstantsReturns exercises a minimal straight-line function:
// load two constants, add them, return the result.
func TestLiftAddConstantsReturns(t *testing.T) {
	bc := &bytecode.Function{
		MaxStackSize: 3,
		Constants: []bytecode.Value{
			{Kind: bytecode.KindNumber, Num: 1},
			{Kind: bytecode.KindNumber, Num: 2},
		},
		Code: []bytecode.Instruction{
			{Op: bytecode.OpLoadConstant, A: 0, Const: 0},
			{Op: bytecode.OpLoadConstant, A: 1, Const: 1},
			{Op: bytecode.OpAdd, A: 2, B: 0, C: 1},
			{Op: bytecode.OpReturn, A: 2, B: 2},
		},
	}

	fn, err := LiftLua51(bc)
	require.Nil(t, err)
	assert.Equal(t, 1, fn.Graph.Len(), "a function with no branches lifts to a single block")

	ssa.Destruct(fn)
	body, structErr := structurer.New(fn).Run()
	require.Nil(t, structErr)
	assert.Contains(t, body.String(), "return")
}

// TestLiftEmptyFunctionReturns exercises the degenerate empty function from
// spec §8's scenario list.
func TestLiftEmptyFunctionReturns(t *testing.T) {
	bc := &bytecode.Function{
		MaxStackSize: 0,
		Code: []bytecode.Instruction{
			{Op: bytecode.OpReturn, A: 0, B: 1},
		},
	}

	fn, err := LiftLua51(bc)
	require.Nil(t, err)

	ssa.Destruct(fn)
	body, structErr := structurer.New(fn).Run()
	require.Nil(t, structErr)
	assert.Equal(t, "return", body.String())
}

// TestLiftIfThenElse exercises a two-armed branch that both sides return
// from, joining at a shared exit.
func TestLiftIfThenElse(t *testing.T) {
	bc := &bytecode.Function{
		MaxStackSize: 2,
		Constants: []bytecode.Value{
			{Kind: bytecode.KindNumber, Num: 1},
			{Kind: bytecode.KindNumber, Num: 2},
		},
		Code: []bytecode.Instruction{
			{Op: bytecode.OpTest, A: 0, C: 0}, // 0
			{Op: bytecode.OpJump, Step: bytecode.JumpBias + 3},
			{Op: bytecode.OpLoadConstant, A: 1, Const: 0}, // 2: then
			{Op: bytecode.OpJump, Step: bytecode.JumpBias + 2},
			{Op: bytecode.OpLoadConstant, A: 1, Const: 1}, // 4: else
			{Op: bytecode.OpReturn, A: 1, B: 2},           // 5: merge
		},
	}

	fn, err := LiftLua51(bc)
	require.Nil(t, err)

	ssa.Destruct(fn)
	body, structErr := structurer.New(fn).Run()
	require.Nil(t, structErr)
	assert.Contains(t, body.String(), "if ")
}
