package lifter

import (
	"luadec/internal/ast"
	"luadec/internal/bytecode"
	"luadec/internal/cfg"
	"luadec/internal/errors"
)

// startTable implements the `NewTable` half of table construction: it
// records the statement's position so later SetTable/SetList stores into
// the same register can be folded back into the same literal.
func (c *Context) startTable(block *cfg.Block, reg int) {
	stmtIndex := len(block.AST.Statements)
	block.AST.Statements = append(block.AST.Statements, &ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: c.local(reg)}}},
		Right: []ast.RValue{&ast.TableExpr{}},
	})
	c.tables[reg] = &tableBuilder{reg: reg, stmtIndex: stmtIndex}
}

// handleSetTable folds a literal-string-keyed store into the table under
// construction (if reg has one open), otherwise emits a plain Index store.
func (c *Context) handleSetTable(block *cfg.Block, insn bytecode.Instruction) {
	key := c.registerOrConstant(insn.B)
	value := c.registerOrConstant(insn.C)

	if tb, ok := c.tables[insn.A]; ok {
		if name, ok := stringLiteralKey(key); ok {
			tb.named = append(tb.named, ast.TableField{Name: &name, Value: value})
			c.rebuildTable(block, tb)
			return
		}
	}
	c.assignTo(block, &ast.IndexExpr{Table: &ast.LocalExpr{Local: c.local(insn.A)}, Key: key}, value)
}

func stringLiteralKey(v ast.RValue) (string, bool) {
	lit, ok := v.(*ast.LiteralExpr)
	if !ok {
		return "", false
	}
	s, ok := lit.Value.(ast.StringLiteral)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// handleSetList folds a contiguous run of array-slot stores into the table's
// positional entries, per the three SetList shapes named in spec §4.3:
// block_number==0 overflow (count in AuxCount), n==0 variadic tail, and the
// ordinary n/block batch.
func (c *Context) handleSetList(block *cfg.Block, insn bytecode.Instruction, insnIndex int) *errors.Error {
	tb, ok := c.tables[insn.A]
	if !ok {
		return errors.Unsupported(errors.CodeUnsupportedSetList, "SetList on a register with no open table literal", insnIndex)
	}

	switch {
	case insn.C == 0:
		if insn.AuxCount == 0 {
			return errors.Unsupported(errors.CodeUnsupportedSetList, "SetList block_number==0 overflow with no AuxCount", insnIndex)
		}
		base := insn.A + 1
		for r := base; r < base+insn.AuxCount; r++ {
			tb.positional = append(tb.positional, &ast.LocalExpr{Local: c.local(r)})
		}

	case insn.B == 0:
		if last, ok := popTrailingCall(block); ok {
			tb.positional = append(tb.positional, last)
		} else {
			tb.positional = append(tb.positional, &ast.VarArgExpr{})
		}

	default:
		base := insn.A + 1
		if insn.C == 1 {
			tb.positional = tb.positional[:0]
		}
		for r := base; r < base+insn.B; r++ {
			tb.positional = append(tb.positional, &ast.LocalExpr{Local: c.local(r)})
		}
	}

	c.rebuildTable(block, tb)
	return nil
}

// popTrailingCall removes the block's last statement if it is a bare call
// statement, returning the call expression so its multi-return can be
// absorbed as the table's final positional entry.
func popTrailingCall(block *cfg.Block) (ast.RValue, bool) {
	n := len(block.AST.Statements)
	if n == 0 {
		return nil, false
	}
	call, ok := block.AST.Statements[n-1].(*ast.CallStmt)
	if !ok {
		return nil, false
	}
	block.AST.Statements = block.AST.Statements[:n-1]
	return call.Call, true
}

// rebuildTable rewrites the table's Assign statement in place: named fields
// precede the positional tail, matching how NewTable+SetTable+SetList is
// actually emitted by the reference compiler.
func (c *Context) rebuildTable(block *cfg.Block, tb *tableBuilder) {
	fields := make([]ast.TableField, 0, len(tb.named)+len(tb.positional))
	fields = append(fields, tb.named...)
	for _, v := range tb.positional {
		fields = append(fields, ast.TableField{Value: v})
	}
	assign := block.AST.Statements[tb.stmtIndex].(*ast.AssignStmt)
	assign.Right[0] = &ast.TableExpr{Fields: fields}
}
