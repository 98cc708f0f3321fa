package typeinfer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"luadec/internal/ast"
)

func TestInferWidensAcrossBranches(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	x := alloc.Allocate()

	thenBlock := &ast.Block{Statements: []ast.Statement{&ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: x}}},
		Right: []ast.RValue{&ast.LiteralExpr{Value: ast.NumberLiteral{Value: 1}}},
	}}}
	elseBlock := &ast.Block{Statements: []ast.Statement{&ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: x}}},
		Right: []ast.RValue{&ast.LiteralExpr{Value: ast.StringLiteral{Value: "oops"}}},
	}}}

	body := &ast.Block{Statements: []ast.Statement{&ast.IfStmt{
		Condition: &ast.LiteralExpr{Value: ast.BoolLiteral{Value: true}},
		Then:      thenBlock,
		Else:      elseBlock,
	}}}

	locals := Infer(body)
	xType, ok := locals[x]
	require := assert.New(t)
	require.True(ok)
	require.Equal("number|string", xType.String())

	assign := thenBlock.Statements[0].(*ast.AssignStmt)
	assert.Equal(t, "number", assign.Left[0].Type)
}

func TestInferNumericForTypesLoopVar(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	v := alloc.Allocate()

	body := &ast.Block{Statements: []ast.Statement{&ast.NumericForStmt{
		Var:  v,
		Body: ast.Block{},
	}}}

	locals := Infer(body)
	assert.Equal(t, Primitive{Kind: KindNumber}, locals[v])
}

func TestTableWidenMergesFieldsAndIndexer(t *testing.T) {
	a := Table{Fields: map[string]Type{"x": Primitive{Kind: KindNumber}}}
	b := Table{Indexer: Primitive{Kind: KindString}, Fields: map[string]Type{"y": Primitive{Kind: KindBoolean}}}

	merged := a.Widen(b).(Table)
	assert.Equal(t, Primitive{Kind: KindString}, merged.Indexer)
	assert.Equal(t, Primitive{Kind: KindNumber}, merged.Fields["x"])
	assert.Equal(t, Primitive{Kind: KindBoolean}, merged.Fields["y"])
}

func TestAnyAbsorbsEverything(t *testing.T) {
	assert.Equal(t, Any{}, Primitive{Kind: KindNumber}.Widen(Any{}))
	assert.Equal(t, Any{}, Any{}.Widen(Primitive{Kind: KindString}))
}
