package lifter

import (
	"luadec/internal/ast"
	"luadec/internal/bytecode"
	"luadec/internal/cfg"
	"luadec/internal/errors"
)

// LiftLuau translates a Luau bytecode.Function into a cfg.Function. Luau
// shares almost the entire instruction set with Lua 5.1 (arithmetic, table
// ops, calls, jumps, numeric/generic for); only FastCall gets VM-specific
// handling. Closure goes through the shared translator, and Capture has no
// dedicated translation.
func LiftLuau(bc *bytecode.Function) (*cfg.Function, *errors.Error) {
	c := newContext(bc)
	c.allocateLocals()
	if err := c.discoverBlocksLuau(); err != nil {
		return nil, err
	}
	for _, r := range c.codeRanges() {
		if err := c.translateRangeLuau(r.start, r.end); err != nil {
			return nil, err
		}
	}
	c.postProcess()
	return c.fn, nil
}

// discoverBlocksLuau runs the same discovery pass as Lua 5.1 and additionally
// marks a FastCall's fallback target as a block head, so post-processing can
// prune it: the decompiler always takes the conservative non-fastcall call
// form and never falls back.
func (c *Context) discoverBlocksLuau() *errors.Error {
	if err := c.discoverBlocksLua51(); err != nil {
		return err
	}
	for i, insn := range c.bc.Code {
		if insn.Op == bytecode.OpFastCall {
			target := i + insn.Step - bytecode.JumpBias
			if target < 0 || target >= len(c.bc.Code) {
				return errors.Malformed(errors.CodeInvalidRegister, "FastCall fallback target out of range", i)
			}
			c.ensureBlock(target)
			c.ensureBlock(i + 1)
		}
	}
	return nil
}

// translateRangeLuau handles FastCall before delegating every other
// opcode to the shared Lua 5.1 instruction translator.
func (c *Context) translateRangeLuau(start, end int) *errors.Error {
	id := c.nodes[start]
	block := c.fn.Graph.Block(id)

	for i := start; i <= end; i++ {
		insn := c.bc.Code[i]
		if insn.Op == bytecode.OpFastCall {
			c.handleFastCall(block, insn)
			continue
		}
		advance, err := c.translateInsn(id, block, i)
		if err != nil {
			return err
		}
		i += advance
	}

	if block.Terminator == nil {
		if next, ok := c.nodes[end+1]; ok {
			c.fn.Graph.SetTerminator(id, &cfg.Jump{Target: next})
		}
	}
	return nil
}

// handleFastCall lowers to the same ast.CallExpr shape as a regular Call:
// the decompiler never emits the fallback path a real VM would take when the
// builtin precondition check fails, since the fallback block is unreachable
// once the original call site is always assumed to take the fast path.
func (c *Context) handleFastCall(block *cfg.Block, insn bytecode.Instruction) {
	c.handleCall(block, insn)
}
