package lifter

import (
	"luadec/internal/ast"
	"luadec/internal/bytecode"
	"luadec/internal/cfg"
)

// handleCall implements the Call row of spec §4.3's translation table:
// nret==1 is a bare statement call, nret>1 assigns into a contiguous
// register run, and nret==0 (variadic) is left as a CallStmt so a
// subsequent SetList or Return can absorb its multi-return.
func (c *Context) handleCall(block *cfg.Block, insn bytecode.Instruction) {
	callee := ast.RValue(&ast.LocalExpr{Local: c.local(insn.A)})
	var args []ast.RValue
	if insn.B == 0 {
		args = append(args, &ast.VarArgExpr{})
	} else {
		for r := insn.A + 1; r < insn.A+insn.B; r++ {
			args = append(args, &ast.LocalExpr{Local: c.local(r)})
		}
	}
	call := &ast.CallExpr{Callee: callee, Args: args}

	if insn.C <= 1 {
		block.AST.Statements = append(block.AST.Statements, &ast.CallStmt{Call: call})
		return
	}
	nret := insn.C - 1
	targets := make([]ast.AssignTarget, nret)
	for i := 0; i < nret; i++ {
		targets[i] = ast.AssignTarget{Target: &ast.LocalExpr{Local: c.local(insn.A + i)}}
	}
	block.AST.Statements = append(block.AST.Statements, &ast.AssignStmt{
		Left:  targets,
		Right: []ast.RValue{call},
	})
}

// handleReturn appends a ReturnStmt to the block and installs the matching
// Return terminator. A B==0 encoding is variadic: the trailing call
// statement (if any) supplies the tail, absorbed the same way SetList
// absorbs one.
func (c *Context) handleReturn(block *cfg.Block, insn bytecode.Instruction) {
	var values []ast.RValue
	variadic := insn.Variadic || insn.B == 0
	if variadic {
		if last, ok := popTrailingCall(block); ok {
			values = []ast.RValue{last}
		} else {
			values = []ast.RValue{&ast.VarArgExpr{}}
		}
	} else {
		for r := insn.A; r < insn.A+insn.B-1; r++ {
			values = append(values, &ast.LocalExpr{Local: c.local(r)})
		}
	}
	block.AST.Statements = append(block.AST.Statements, &ast.ReturnStmt{Values: values})
	c.fn.Graph.SetTerminator(block.ID, &cfg.Return{Values: values, Variadic: variadic})
}

// handleTestSet implements the TestSet row: the current block's terminator
// becomes a Conditional between a freshly split block (which performs the
// conditional assignment and jumps to the merge target) and the not-taken
// fallthrough. This bytecode format always follows TestSet with an
// unconditional Jump encoding that merge target.
func (c *Context) handleTestSet(id cfg.BlockID, block *cfg.Block, insn bytecode.Instruction, i int) {
	value := ast.RValue(&ast.LocalExpr{Local: c.local(insn.B)})
	cond := value
	if insn.C == 0 {
		cond = &ast.UnaryExpr{Op: ast.OpNot, Value: value}
	}

	jumpIndex := i + 1
	jumpInsn := c.bc.Code[jumpIndex]
	mergeTarget := jumpIndex + jumpInsn.Step - bytecode.JumpBias
	mergeID := c.nodes[mergeTarget]
	fallthroughID := c.nodes[jumpIndex+1]

	assignBlockID := c.fn.Graph.NewBlock()
	assignBlock := c.fn.Graph.Block(assignBlockID)
	assignBlock.AST.Statements = append(assignBlock.AST.Statements, &ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: c.local(insn.A)}}},
		Right: []ast.RValue{value},
	})
	c.fn.Graph.SetTerminator(assignBlockID, &cfg.Jump{Target: mergeID})

	c.fn.Graph.SetTerminator(id, &cfg.Conditional{Cond: cond, Then: assignBlockID, Else: fallthroughID})
}
