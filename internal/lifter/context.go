// Package lifter translates a decoded bytecode.Function into a cfg.Function
// whose graph is ready for SSA destruction and structuring. Lua 5.1 and
// Luau share almost the entire instruction set and all of the block
// discovery / local allocation / table-construction machinery; only a
// handful of opcodes differ, so both front ends share one Context and each
// contributes its own per-instruction translation entry point.
package lifter

import (
	"luadec/internal/ast"
	"luadec/internal/bytecode"
	"luadec/internal/cfg"
	"luadec/internal/errors"
)

// tableBuilder accumulates the field list of a table literal under
// construction: a NewTable at stmtIndex, folded together with every
// contiguous SetTable/SetList store into the same register that follows it
// in program order.
type tableBuilder struct {
	reg        int
	named      []ast.TableField
	positional []ast.RValue
	stmtIndex  int // index within the owning block's AST where the table's Assign lives
}

// Context is the VM-agnostic lifting scaffold shared by LiftLua51 and
// LiftLuau.
type Context struct {
	bc *bytecode.Function
	fn *cfg.Function

	// nodes maps an instruction index that starts a block to that block's
	// id. Populated during block discovery; jump-threading (skip blocks)
	// rewrites an entry to point at its ultimate target.
	nodes map[int]cfg.BlockID
	skip  map[int]bool

	locals    map[int]*ast.Local // register -> local
	constants map[int]ast.Literal

	tables map[int]*tableBuilder // register -> open table builder, cleared when the register is overwritten

	err *errors.Error
}

func newContext(bc *bytecode.Function) *Context {
	alloc := ast.NewLocalAllocator()
	return &Context{
		bc:        bc,
		fn:        cfg.NewFunction(alloc),
		nodes:     make(map[int]cfg.BlockID),
		skip:      make(map[int]bool),
		locals:    make(map[int]*ast.Local),
		constants: make(map[int]ast.Literal),
		tables:    make(map[int]*tableBuilder),
	}
}

func (c *Context) local(reg int) *ast.Local {
	return c.locals[reg]
}

func (c *Context) literal(constIndex int) ast.Literal {
	if lit, ok := c.constants[constIndex]; ok {
		return lit
	}
	lit := convertConstant(c.bc.Constants[constIndex])
	c.constants[constIndex] = lit
	return lit
}

func convertConstant(v bytecode.Value) ast.Literal {
	switch v.Kind {
	case bytecode.KindNil:
		return ast.NilLiteral{}
	case bytecode.KindBoolean:
		return ast.BoolLiteral{Value: v.Bool}
	case bytecode.KindNumber:
		return ast.NumberLiteral{Value: v.Num}
	case bytecode.KindString:
		return ast.StringLiteral{Value: v.Str}
	default:
		return ast.NilLiteral{}
	}
}

// allocateLocals implements phase (b): one fresh Local per register,
// [0, param_count) become the function's parameter list.
func (c *Context) allocateLocals() {
	for r := 0; r < c.bc.MaxStackSize; r++ {
		local := c.fn.Locals.Allocate()
		c.locals[r] = local
		if r < c.bc.NumParameters {
			c.fn.Parameters = append(c.fn.Parameters, local)
		}
	}
	c.fn.IsVararg = c.bc.IsVararg
}

// ensureBlock returns the block id starting at insn, allocating one if this
// is the first time insn has been marked as a block head.
func (c *Context) ensureBlock(insn int) cfg.BlockID {
	if id, ok := c.nodes[insn]; ok {
		return id
	}
	id := c.fn.Graph.NewBlock()
	c.nodes[insn] = id
	return id
}

// codeRanges returns the sorted list of (start, end) instruction spans, one
// per discovered block, skipping any block-discovery entries jump-threading
// marked as pure skip blocks and any block head past the last instruction
// (a branch or return in the final slot marks one); such a head gets no
// range, so post-processing prunes it.
func (c *Context) codeRanges() []struct{ start, end int } {
	starts := make([]int, 0, len(c.nodes))
	for s := range c.nodes {
		starts = append(starts, s)
	}
	sortInts(starts)

	ranges := make([]struct{ start, end int }, 0, len(starts))
	for i, s := range starts {
		if c.skip[s] || s >= len(c.bc.Code) {
			continue
		}
		end := len(c.bc.Code) - 1
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		ranges = append(ranges, struct{ start, end int }{s, end})
	}
	return ranges
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// postProcess implements the lifter's post-processing phase: drop every
// non-entry block with no predecessors, then fix the entry to the block at
// offset 0.
func (c *Context) postProcess() {
	entryID := c.nodes[0]
	c.fn.Entry = entryID
	c.fn.Graph.SetEntry(entryID)

	for changed := true; changed; {
		changed = false
		for _, id := range c.fn.Graph.Blocks() {
			if id == entryID {
				continue
			}
			if len(c.fn.Graph.Predecessors(id)) == 0 {
				c.fn.Graph.RemoveBlock(id)
				changed = true
			}
		}
	}
}
