package ssa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"luadec/internal/ast"
	"luadec/internal/cfg"
)

// TestDestructCoalescesSimplePhi builds a two-predecessor diamond joining on
// a φ and checks that Destruct removes the φ from the merge block.
func TestDestructCoalescesSimplePhi(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	entry := fn.Entry

	left := fn.Graph.NewBlock()
	right := fn.Graph.NewBlock()
	merge := fn.Graph.NewBlock()

	x := alloc.Allocate()
	y := alloc.Allocate()
	phiDest := alloc.Allocate()

	entryBlock := fn.Graph.Block(entry)
	entryBlock.AST.Statements = append(entryBlock.AST.Statements, &ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: x}}},
		Right: []ast.RValue{&ast.LiteralExpr{Value: ast.NumberLiteral{Value: 1}}},
	})
	fn.Graph.SetTerminator(entry, &cfg.Conditional{
		Cond: &ast.LocalExpr{Local: x},
		Then: left,
		Else: right,
	})

	leftBlock := fn.Graph.Block(left)
	leftBlock.AST.Statements = append(leftBlock.AST.Statements, &ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: y}}},
		Right: []ast.RValue{&ast.LiteralExpr{Value: ast.NumberLiteral{Value: 2}}},
	})
	fn.Graph.SetTerminator(left, &cfg.Jump{Target: merge})
	fn.Graph.SetTerminator(right, &cfg.Jump{Target: merge})

	mergeBlock := fn.Graph.Block(merge)
	mergeBlock.Phis = []*cfg.Phi{{
		Dest: phiDest,
		Incoming: map[cfg.BlockID]*ast.Local{
			left:  y,
			right: x,
		},
	}}
	mergeBlock.AST.Statements = append(mergeBlock.AST.Statements, &ast.ReturnStmt{
		Values: []ast.RValue{&ast.LocalExpr{Local: phiDest}},
	})
	fn.Graph.SetTerminator(merge, &cfg.Return{Values: []ast.RValue{&ast.LocalExpr{Local: phiDest}}})

	Destruct(fn)

	assert.Empty(t, mergeBlock.Phis, "destruction should remove every phi")
}
