package lifter

import (
	"fmt"

	"luadec/internal/ast"
	"luadec/internal/bytecode"
	"luadec/internal/cfg"
	"luadec/internal/errors"
)

// LiftLua51 translates a Lua 5.1 bytecode.Function into a cfg.Function ready
// for SSA destruction and structuring.
func LiftLua51(bc *bytecode.Function) (*cfg.Function, *errors.Error) {
	c := newContext(bc)
	c.allocateLocals()
	if err := c.discoverBlocksLua51(); err != nil {
		return nil, err
	}
	for _, r := range c.codeRanges() {
		if err := c.translateRangeLua51(r.start, r.end); err != nil {
			return nil, err
		}
	}
	c.postProcess()
	return c.fn, nil
}

// discoverBlocksLua51 implements phase (a): a single pass over the
// instruction stream marking block heads per opcode family.
func (c *Context) discoverBlocksLua51() *errors.Error {
	c.ensureBlock(0)
	code := c.bc.Code
	for i, insn := range code {
		switch insn.Op {
		case bytecode.OpEqual, bytecode.OpLessThan, bytecode.OpLessThanOrEqual,
			bytecode.OpTest, bytecode.OpIterateGenericForLoop:
			c.ensureBlock(i + 1)
			c.ensureBlock(i + 2)

		case bytecode.OpJump:
			target := i + insn.Step - bytecode.JumpBias
			if target < 0 || target >= len(code) {
				return errors.Malformed(errors.CodeInvalidRegister, fmt.Sprintf("jump target %d out of range", target), i)
			}
			targetID := c.ensureBlock(target)
			c.ensureBlock(i + 1)
			if existing, ok := c.nodes[i]; ok {
				c.fn.Graph.RemoveBlock(existing)
				c.nodes[i] = targetID
				c.skip[i] = true
			}

		case bytecode.OpPrepareNumericForLoop, bytecode.OpIterateNumericForLoop:
			target := i + insn.Step - bytecode.JumpBias
			if target < 0 || target >= len(code) {
				return errors.Malformed(errors.CodeInvalidRegister, fmt.Sprintf("for-loop target %d out of range", target), i)
			}
			c.ensureBlock(target)
			c.ensureBlock(i + 1)

		case bytecode.OpLoadBoolean:
			if insn.SkipNext {
				c.ensureBlock(i + 2)
			}

		case bytecode.OpReturn:
			c.ensureBlock(i + 1)
		}
	}
	return nil
}

// translateRangeLua51 lifts the instruction span [start,end] to statements
// in its block, then installs the block's terminator from the span's final
// instruction.
func (c *Context) translateRangeLua51(start, end int) *errors.Error {
	id := c.nodes[start]
	block := c.fn.Graph.Block(id)

	for i := start; i <= end; i++ {
		advance, err := c.translateInsn(id, block, i)
		if err != nil {
			return err
		}
		i += advance
	}

	if block.Terminator == nil {
		// Fell off the end of the range without an explicit terminator
		// (straight-line block): fall through to the next discovered block.
		if next, ok := c.nodes[end+1]; ok {
			c.fn.Graph.SetTerminator(id, &cfg.Jump{Target: next})
		}
	}
	return nil
}

// translateInsn lifts a single instruction at index i of block id, returning
// how many extra instructions it consumed (TestSet also consumes its
// following Jump). Shared by both Lua 5.1 and Luau, which differ only in a
// handful of opcodes handled before falling back here.
func (c *Context) translateInsn(id cfg.BlockID, block *cfg.Block, i int) (int, *errors.Error) {
	insn := c.bc.Code[i]
	switch insn.Op {
	case bytecode.OpMove:
			c.assign(block, c.local(insn.A), &ast.LocalExpr{Local: c.local(insn.B)})

		case bytecode.OpLoadConstant:
			c.assign(block, c.local(insn.A), &ast.LiteralExpr{Value: c.literal(insn.Const)})

		case bytecode.OpLoadBoolean:
			c.assign(block, c.local(insn.A), &ast.LiteralExpr{Value: ast.BoolLiteral{Value: insn.B != 0}})

		case bytecode.OpLoadNil:
			for r := insn.A; r <= insn.B; r++ {
				c.assign(block, c.local(r), &ast.LiteralExpr{Value: ast.NilLiteral{}})
			}

		case bytecode.OpGetGlobal:
			name := c.literal(insn.Const).String()
			c.assign(block, c.local(insn.A), &ast.GlobalExpr{Name: name})

		case bytecode.OpSetGlobal:
			name := c.literal(insn.Const).String()
			c.assignTo(block, &ast.GlobalExpr{Name: name}, &ast.LocalExpr{Local: c.local(insn.A)})

		case bytecode.OpGetUpvalue:
			c.assign(block, c.local(insn.A), &ast.UpvalueExpr{Local: c.upvalueLocal(insn.B)})

		case bytecode.OpSetUpvalue:
			c.assignTo(block, &ast.UpvalueExpr{Local: c.upvalueLocal(insn.B)}, &ast.LocalExpr{Local: c.local(insn.A)})

		case bytecode.OpGetTable:
			key := c.registerOrConstant(insn.C)
			c.assign(block, c.local(insn.A), &ast.IndexExpr{Table: &ast.LocalExpr{Local: c.local(insn.B)}, Key: key})

		case bytecode.OpSetTable:
			c.handleSetTable(block, insn)

		case bytecode.OpNewTable:
			c.startTable(block, insn.A)

		case bytecode.OpSetList:
			if err := c.handleSetList(block, insn, i); err != nil {
				return 0, err
			}

		case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod, bytecode.OpPow:
			lhs := c.registerOrConstant(insn.B)
			rhs := c.registerOrConstant(insn.C)
			c.assign(block, c.local(insn.A), &ast.BinaryExpr{Op: arithOp(insn.Op), LHS: lhs, RHS: rhs})

		case bytecode.OpNot:
			c.assign(block, c.local(insn.A), &ast.UnaryExpr{Op: ast.OpNot, Value: &ast.LocalExpr{Local: c.local(insn.B)}})

		case bytecode.OpNeg:
			c.assign(block, c.local(insn.A), &ast.UnaryExpr{Op: ast.OpNeg, Value: &ast.LocalExpr{Local: c.local(insn.B)}})

		case bytecode.OpLen:
			c.assign(block, c.local(insn.A), &ast.UnaryExpr{Op: ast.OpLen, Value: &ast.LocalExpr{Local: c.local(insn.B)}})

		case bytecode.OpConcat:
			parts := make([]ast.RValue, 0, insn.C-insn.B+1)
			for r := insn.B; r <= insn.C; r++ {
				parts = append(parts, &ast.LocalExpr{Local: c.local(r)})
			}
			c.assign(block, c.local(insn.A), &ast.ConcatExpr{Parts: parts})

		case bytecode.OpCall:
			c.handleCall(block, insn)

		case bytecode.OpReturn:
			c.handleReturn(block, insn)

		case bytecode.OpEqual, bytecode.OpLessThan, bytecode.OpLessThanOrEqual:
			cond := c.comparisonCondition(insn)
			c.fn.Graph.SetTerminator(id, &cfg.Conditional{Cond: cond, Then: c.nodes[i+1], Else: c.nodes[i+2]})

		case bytecode.OpTest:
			value := ast.RValue(&ast.LocalExpr{Local: c.local(insn.A)})
			if insn.C == 0 {
				value = &ast.UnaryExpr{Op: ast.OpNot, Value: value}
			}
			c.fn.Graph.SetTerminator(id, &cfg.Conditional{Cond: value, Then: c.nodes[i+1], Else: c.nodes[i+2]})

		case bytecode.OpTestSet:
			c.handleTestSet(id, block, insn, i)
			return 1, nil // the following Jump is consumed as part of the split

		case bytecode.OpJump:
			if block.Terminator == nil {
				target := i + insn.Step - bytecode.JumpBias
				c.fn.Graph.SetTerminator(id, &cfg.Jump{Target: c.nodes[target]})
			}

		case bytecode.OpClosure:
			c.handleClosure(block, insn)

		case bytecode.OpPrepareNumericForLoop:
			c.handlePrepareNumericFor(id, insn, i)

		case bytecode.OpIterateNumericForLoop:
			c.handleNumericFor(id, block, insn, i)

		case bytecode.OpPrepareGenericForLoop:
			// No statement.

		case bytecode.OpIterateGenericForLoop:
			c.handleGenericFor(id, block, insn, i)

		case bytecode.OpVarArg:
			c.assign(block, c.local(insn.A), &ast.VarArgExpr{})

		default:
			block.AST.Statements = append(block.AST.Statements, ast.CommentStmt{Text: fmt.Sprintf("unhandled opcode %s at %d", insn.Op, i)})
		}
	return 0, nil
}

func arithOp(op bytecode.Op) ast.BinaryOp {
	switch op {
	case bytecode.OpAdd:
		return ast.OpAdd
	case bytecode.OpSub:
		return ast.OpSub
	case bytecode.OpMul:
		return ast.OpMul
	case bytecode.OpDiv:
		return ast.OpDiv
	case bytecode.OpMod:
		return ast.OpMod
	case bytecode.OpPow:
		return ast.OpPow
	default:
		return ast.OpAdd
	}
}

func (c *Context) comparisonCondition(insn bytecode.Instruction) ast.RValue {
	lhs := c.registerOrConstant(insn.B)
	rhs := c.registerOrConstant(insn.C)
	var op ast.BinaryOp
	switch insn.Op {
	case bytecode.OpEqual:
		op = ast.OpEqual
	case bytecode.OpLessThan:
		op = ast.OpLessThan
	case bytecode.OpLessThanOrEqual:
		op = ast.OpLessThanOrEqual
	}
	cond := ast.RValue(&ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs})
	if insn.A == 0 {
		cond = &ast.UnaryExpr{Op: ast.OpNot, Value: cond}
	}
	return cond
}

func (c *Context) registerOrConstant(r int) ast.RValue {
	if r < 0 {
		return &ast.LiteralExpr{Value: c.literal(-r - 1)}
	}
	return &ast.LocalExpr{Local: c.local(r)}
}

func (c *Context) upvalueLocal(index int) *ast.Local {
	for len(c.fn.Upvalues) <= index {
		c.fn.Upvalues = append(c.fn.Upvalues, c.fn.Locals.AllocateNamed(c.bc.Upvalues[len(c.fn.Upvalues)]))
	}
	return c.fn.Upvalues[index]
}

func (c *Context) assign(block *cfg.Block, dest *ast.Local, value ast.RValue) {
	c.assignTo(block, &ast.LocalExpr{Local: dest}, value)
}

func (c *Context) assignTo(block *cfg.Block, target ast.LValue, value ast.RValue) {
	c.clearTableIfWritten(target)
	block.AST.Statements = append(block.AST.Statements, &ast.AssignStmt{
		Left:  []ast.AssignTarget{{Target: target}},
		Right: []ast.RValue{value},
	})
}

func (c *Context) clearTableIfWritten(target ast.LValue) {
	if local, ok := target.(*ast.LocalExpr); ok {
		for reg, l := range c.locals {
			if l == local.Local {
				delete(c.tables, reg)
			}
		}
	}
}
