package lifter

import (
	"luadec/internal/ast"
	"luadec/internal/bytecode"
	"luadec/internal/cfg"
	"luadec/internal/ssa"
	"luadec/internal/structurer"
)

// handleClosure recursively lifts a nested function prototype, runs it
// through the same SSA-destruction and structuring pipeline the top-level
// function goes through, and embeds the result as a closure literal. An
// irreducible nested closure is non-fatal: its partial, unstructured body is
// still embedded.
func (c *Context) handleClosure(block *cfg.Block, insn bytecode.Instruction) {
	proto := c.bc.Closures[insn.B]

	nestedFn, err := LiftLua51(proto)
	if err != nil && err.Kind.Fatal() {
		c.assign(block, c.local(insn.A), &ast.ClosureExpr{
			Parameters: nil,
			Body:       ast.Block{Statements: []ast.Statement{ast.CommentStmt{Text: "closure lift failed: " + err.Msg}}},
		})
		return
	}

	ssa.Destruct(nestedFn)
	body, structErr := structurer.New(nestedFn).Run()
	if structErr != nil {
		body.Statements = append(body.Statements, ast.CommentStmt{Text: structErr.Msg})
	}

	c.assign(block, c.local(insn.A), &ast.ClosureExpr{
		Parameters: nestedFn.Parameters,
		Body:       body,
		Upvalues:   nestedFn.Upvalues,
	})
}
