package cfg

import "luadec/internal/ast"

// Function is the lifter's output: a graph of basic blocks ready for SSA
// destruction and structuring, plus the locals that parameterize it.
type Function struct {
	Graph      *Graph
	Entry      BlockID
	Parameters []*ast.Local
	Upvalues   []*ast.Local
	Locals     *ast.LocalAllocator
	IsVararg   bool
}

// NewFunction returns an empty function with a fresh, empty entry block.
func NewFunction(alloc *ast.LocalAllocator) *Function {
	g := NewGraph()
	entry := g.NewBlock()
	g.SetEntry(entry)
	return &Function{Graph: g, Entry: entry, Locals: alloc}
}
