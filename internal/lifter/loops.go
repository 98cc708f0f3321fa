package lifter

import (
	"luadec/internal/ast"
	"luadec/internal/bytecode"
	"luadec/internal/cfg"
)

// handleNumericFor installs the NumericForLoop terminator at the bottom of a
// numeric for's body (the IterateNumericForLoop back-edge instruction): the
// loop's three internal registers (start, limit, step) sit at base, base+1,
// base+2, with the user-visible loop variable at base+3, per the reference
// compiler's register layout.
func (c *Context) handleNumericFor(id cfg.BlockID, block *cfg.Block, insn bytecode.Instruction, i int) {
	base := insn.A
	target := i + insn.Step - bytecode.JumpBias
	body := c.nodes[target]
	done := c.nodes[i+1]

	c.fn.Graph.SetTerminator(id, &cfg.NumericForLoop{
		Var:   c.local(base + 3),
		Start: &ast.LocalExpr{Local: c.local(base)},
		Limit: &ast.LocalExpr{Local: c.local(base + 1)},
		Step:  &ast.LocalExpr{Local: c.local(base + 2)},
		Body:  body,
		Done:  done,
	})
}

// handlePrepareNumericFor installs the straight-line jump from a numeric
// for's prep block to its matching IterateNumericForLoop test, mirroring how
// the reference compiler's FORPREP only initializes and never tests.
func (c *Context) handlePrepareNumericFor(id cfg.BlockID, insn bytecode.Instruction, i int) {
	target := i + insn.Step - bytecode.JumpBias
	c.fn.Graph.SetTerminator(id, &cfg.Jump{Target: c.nodes[target]})
}

// handleGenericFor installs the GenericForLoop terminator at the
// IterateGenericForLoop instruction, whose taken branch (the loop body) is
// encoded by the unconditional Jump immediately following it and whose
// control triple (iterator, state, control var) sits at base, base+1, base+2.
func (c *Context) handleGenericFor(id cfg.BlockID, block *cfg.Block, insn bytecode.Instruction, i int) {
	base := insn.A
	nvars := insn.B
	if nvars <= 0 {
		nvars = 1
	}
	vars := make([]*ast.Local, nvars)
	for k := 0; k < nvars; k++ {
		vars[k] = c.local(base + 3 + k)
	}

	c.fn.Graph.SetTerminator(id, &cfg.GenericForLoop{
		Vars:     vars,
		Iterator: &ast.LocalExpr{Local: c.local(base)},
		State:    &ast.LocalExpr{Local: c.local(base + 1)},
		Control:  &ast.LocalExpr{Local: c.local(base + 2)},
		Body:     c.nodes[i+1],
		Done:     c.nodes[i+2],
	})
}
