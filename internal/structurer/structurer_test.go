package structurer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luadec/internal/ast"
	"luadec/internal/cfg"
)

func TestStructurerSplicesStraightLine(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	entry := fn.Entry
	next := fn.Graph.NewBlock()

	x := alloc.Allocate()
	entryBlock := fn.Graph.Block(entry)
	entryBlock.AST.Statements = append(entryBlock.AST.Statements, &ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: x}}},
		Right: []ast.RValue{&ast.LiteralExpr{Value: ast.NumberLiteral{Value: 1}}},
	})
	fn.Graph.SetTerminator(entry, &cfg.Jump{Target: next})

	nextBlock := fn.Graph.Block(next)
	nextBlock.AST.Statements = append(nextBlock.AST.Statements, &ast.ReturnStmt{
		Values: []ast.RValue{&ast.LocalExpr{Local: x}},
	})
	fn.Graph.SetTerminator(next, &cfg.Return{Values: []ast.RValue{&ast.LocalExpr{Local: x}}})

	body, err := New(fn).Run()
	require.Nil(t, err)
	assert.Len(t, body.Statements, 2)
	assert.Equal(t, fn.Graph.Len(), 1, "splicing should have merged the two blocks into one")
}

func TestStructurerBuildsIfThenElse(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	entry := fn.Entry
	then := fn.Graph.NewBlock()
	els := fn.Graph.NewBlock()
	merge := fn.Graph.NewBlock()

	cond := alloc.Allocate()
	fn.Graph.SetTerminator(entry, &cfg.Conditional{Cond: &ast.LocalExpr{Local: cond}, Then: then, Else: els})
	fn.Graph.SetTerminator(then, &cfg.Jump{Target: merge})
	fn.Graph.SetTerminator(els, &cfg.Jump{Target: merge})
	fn.Graph.Block(merge).AST.Statements = append(fn.Graph.Block(merge).AST.Statements, &ast.ReturnStmt{})
	fn.Graph.SetTerminator(merge, &cfg.Return{})

	body, err := New(fn).Run()
	require.Nil(t, err)
	require.Len(t, body.Statements, 2)
	_, ok := body.Statements[0].(*ast.IfStmt)
	assert.True(t, ok, "expected the first statement to be the folded IfStmt")
}

func TestStructurerBuildsWhileLoop(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	header := fn.Entry
	body := fn.Graph.NewBlock()
	done := fn.Graph.NewBlock()

	cond := alloc.Allocate()
	fn.Graph.SetTerminator(header, &cfg.Conditional{Cond: &ast.LocalExpr{Local: cond}, Then: body, Else: done})
	fn.Graph.SetTerminator(body, &cfg.Jump{Target: header})
	fn.Graph.Block(done).AST.Statements = append(fn.Graph.Block(done).AST.Statements, &ast.ReturnStmt{})
	fn.Graph.SetTerminator(done, &cfg.Return{})

	result, err := New(fn).Run()
	require.Nil(t, err)
	require.NotEmpty(t, result.Statements)
	_, ok := result.Statements[0].(*ast.WhileStmt)
	assert.True(t, ok, "expected the loop to collapse into a WhileStmt")
}

func TestStructurerBuildsNumericForLoop(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	header := fn.Entry
	loopBody := fn.Graph.NewBlock()
	done := fn.Graph.NewBlock()

	v := alloc.Allocate()
	start := alloc.Allocate()
	limit := alloc.Allocate()
	step := alloc.Allocate()
	fn.Graph.SetTerminator(header, &cfg.NumericForLoop{
		Var:   v,
		Start: &ast.LocalExpr{Local: start},
		Limit: &ast.LocalExpr{Local: limit},
		Step:  &ast.LocalExpr{Local: step},
		Body:  loopBody,
		Done:  done,
	})
	fn.Graph.Block(loopBody).AST.Statements = append(fn.Graph.Block(loopBody).AST.Statements, ast.CommentStmt{Text: "stmt"})
	fn.Graph.SetTerminator(loopBody, &cfg.Jump{Target: header})
	fn.Graph.Block(done).AST.Statements = append(fn.Graph.Block(done).AST.Statements, &ast.ReturnStmt{})
	fn.Graph.SetTerminator(done, &cfg.Return{})

	result, err := New(fn).Run()
	require.Nil(t, err)
	assert.Equal(t, 1, fn.Graph.Len(), "a plain numeric for-loop should fully reduce")
	require.NotEmpty(t, result.Statements)
	forStmt, ok := result.Statements[0].(*ast.NumericForStmt)
	require.True(t, ok, "expected the loop to collapse into a NumericForStmt")
	assert.Same(t, v, forStmt.Var)
}

func TestStructurerBuildsGenericForLoop(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	header := fn.Entry
	loopBody := fn.Graph.NewBlock()
	done := fn.Graph.NewBlock()

	k := alloc.Allocate()
	iter := alloc.Allocate()
	state := alloc.Allocate()
	control := alloc.Allocate()
	fn.Graph.SetTerminator(header, &cfg.GenericForLoop{
		Vars:     []*ast.Local{k},
		Iterator: &ast.LocalExpr{Local: iter},
		State:    &ast.LocalExpr{Local: state},
		Control:  &ast.LocalExpr{Local: control},
		Body:     loopBody,
		Done:     done,
	})
	fn.Graph.Block(loopBody).AST.Statements = append(fn.Graph.Block(loopBody).AST.Statements, ast.CommentStmt{Text: "stmt"})
	fn.Graph.SetTerminator(loopBody, &cfg.Jump{Target: header})
	fn.Graph.Block(done).AST.Statements = append(fn.Graph.Block(done).AST.Statements, &ast.ReturnStmt{})
	fn.Graph.SetTerminator(done, &cfg.Return{})

	result, err := New(fn).Run()
	require.Nil(t, err)
	assert.Equal(t, 1, fn.Graph.Len(), "a plain generic for-loop should fully reduce")
	require.NotEmpty(t, result.Statements)
	forStmt, ok := result.Statements[0].(*ast.GenericForStmt)
	require.True(t, ok, "expected the loop to collapse into a GenericForStmt")
	require.Len(t, forStmt.Exprs, 3)
}

// TestStructurerInsertsBreakInWhileLoop builds the CFG for
// `while c1 do if c2 then break end; rest() end`, where the break target
// (done) is also the loop's own Else exit — the zero-hop divergent case,
// where the arm block is the shared exit itself and must not be removed.
func TestStructurerInsertsBreakInWhileLoop(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	header := fn.Entry
	body := fn.Graph.NewBlock()
	rest := fn.Graph.NewBlock()
	done := fn.Graph.NewBlock()

	c1 := alloc.Allocate()
	c2 := alloc.Allocate()
	fn.Graph.SetTerminator(header, &cfg.Conditional{Cond: &ast.LocalExpr{Local: c1}, Then: body, Else: done})
	fn.Graph.SetTerminator(body, &cfg.Conditional{Cond: &ast.LocalExpr{Local: c2}, Then: done, Else: rest})
	fn.Graph.Block(rest).AST.Statements = append(fn.Graph.Block(rest).AST.Statements, ast.CommentStmt{Text: "stmt"})
	fn.Graph.SetTerminator(rest, &cfg.Jump{Target: header})
	fn.Graph.Block(done).AST.Statements = append(fn.Graph.Block(done).AST.Statements, &ast.ReturnStmt{})
	fn.Graph.SetTerminator(done, &cfg.Return{})

	result, err := New(fn).Run()
	require.Nil(t, err)
	assert.Equal(t, 1, fn.Graph.Len(), "a while-loop with a break exit should still fully reduce")
	require.NotEmpty(t, result.Statements)
	whileStmt, ok := result.Statements[0].(*ast.WhileStmt)
	require.True(t, ok, "expected the loop to collapse into a WhileStmt")
	require.NotEmpty(t, whileStmt.Body.Statements)
	ifStmt, ok := whileStmt.Body.Statements[0].(*ast.IfStmt)
	require.True(t, ok, "expected the break to be guarded by an IfStmt")
	require.Len(t, ifStmt.Then.Statements, 1)
	_, ok = ifStmt.Then.Statements[0].(ast.BreakStmt)
	assert.True(t, ok, "expected the diverging arm to hold a BreakStmt")
	assert.Nil(t, ifStmt.Else)
}

// TestStructurerInsertsContinueInWhileLoop builds the CFG for
// `while c1 do if c2 then skip() else other(); trail() end end`, where the
// then-arm jumps straight back to the header — the one-hop divergent case,
// where the arm is a dedicated intermediate block safe to remove.
func TestStructurerInsertsContinueInWhileLoop(t *testing.T) {
	alloc := ast.NewLocalAllocator()
	fn := cfg.NewFunction(alloc)
	header := fn.Entry
	body := fn.Graph.NewBlock()
	cont := fn.Graph.NewBlock()
	trail := fn.Graph.NewBlock()
	latch := fn.Graph.NewBlock()
	done := fn.Graph.NewBlock()

	c1 := alloc.Allocate()
	c2 := alloc.Allocate()
	fn.Graph.SetTerminator(header, &cfg.Conditional{Cond: &ast.LocalExpr{Local: c1}, Then: body, Else: done})
	fn.Graph.SetTerminator(body, &cfg.Conditional{Cond: &ast.LocalExpr{Local: c2}, Then: cont, Else: trail})
	fn.Graph.Block(cont).AST.Statements = append(fn.Graph.Block(cont).AST.Statements, ast.CommentStmt{Text: "stmt"})
	fn.Graph.SetTerminator(cont, &cfg.Jump{Target: header})
	fn.Graph.Block(trail).AST.Statements = append(fn.Graph.Block(trail).AST.Statements, ast.CommentStmt{Text: "stmt"})
	fn.Graph.SetTerminator(trail, &cfg.Jump{Target: latch})
	fn.Graph.Block(latch).AST.Statements = append(fn.Graph.Block(latch).AST.Statements, ast.CommentStmt{Text: "stmt"})
	fn.Graph.SetTerminator(latch, &cfg.Jump{Target: header})
	fn.Graph.Block(done).AST.Statements = append(fn.Graph.Block(done).AST.Statements, &ast.ReturnStmt{})
	fn.Graph.SetTerminator(done, &cfg.Return{})

	result, err := New(fn).Run()
	require.Nil(t, err)
	assert.Equal(t, 1, fn.Graph.Len(), "a while-loop with a continue edge should still fully reduce")
	require.NotEmpty(t, result.Statements)
	whileStmt, ok := result.Statements[0].(*ast.WhileStmt)
	require.True(t, ok, "expected the loop to collapse into a WhileStmt")
	require.NotEmpty(t, whileStmt.Body.Statements)
	ifStmt, ok := whileStmt.Body.Statements[0].(*ast.IfStmt)
	require.True(t, ok, "expected the continue to be guarded by an IfStmt")
	require.NotEmpty(t, ifStmt.Then.Statements)
	_, ok = ifStmt.Then.Statements[len(ifStmt.Then.Statements)-1].(ast.ContinueStmt)
	assert.True(t, ok, "expected the diverging arm to end in a ContinueStmt")
	assert.Nil(t, ifStmt.Else)
}
