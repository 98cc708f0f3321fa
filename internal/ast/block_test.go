package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestReplaceLocalIsSelfInverse exercises the invariant from spec §8: for
// any local x, replace_local(x, y) followed by replace_local(y, x) is the
// identity on every statement.
func TestReplaceLocalIsSelfInverse(t *testing.T) {
	x := NewUnnamedLocal()
	y := NewUnnamedLocal()

	block := &Block{Statements: []Statement{
		&AssignStmt{
			Left:  []AssignTarget{{Target: &LocalExpr{Local: x}}},
			Right: []RValue{&BinaryExpr{Op: OpAdd, LHS: &LocalExpr{Local: x}, RHS: &LiteralExpr{Value: NumberLiteral{Value: 1}}}},
		},
		&ReturnStmt{Values: []RValue{&LocalExpr{Local: x}}},
	}}

	before := block.String()
	block.ReplaceLocal(x, y)
	assert.NotEqual(t, before, block.String(), "replacement should have changed display output")
	block.ReplaceLocal(y, x)
	assert.Equal(t, before, block.String())
}

func TestBlockStringJoinsStatements(t *testing.T) {
	block := &Block{Statements: []Statement{
		BreakStmt{},
		CommentStmt{Text: "unreachable"},
	}}
	assert.Equal(t, "break\n-- unreachable", block.String())
}
