// Package cfg implements the control-flow graph model a lifted function is
// built from: basic blocks holding φ-instructions and straight-line
// statements, joined by typed terminators, with stable ids that survive
// block removal.
package cfg

import (
	"fmt"

	"luadec/internal/ast"
)

// BlockID identifies a block within a Graph. Ids are never reused within a
// graph's lifetime and never encode array position.
type BlockID uint32

// Block is one basic block: an optional φ-list, a straight-line statement
// body, and at most one terminator (nil only transiently, before
// SetTerminator has run for the first time).
type Block struct {
	ID         BlockID
	Phis       []*Phi
	AST        ast.Block
	Terminator Terminator
}

// Phi selects a value per predecessor at a join point. Incoming's keys must
// equal the owning block's predecessor set at all times; the lifter and
// structurer are both responsible for keeping this in sync when they add or
// remove edges.
type Phi struct {
	Dest     *ast.Local
	Incoming map[BlockID]*ast.Local
}

// Graph is a slotted arena of blocks: a map keyed by a monotonic counter, so
// ids remain stable across RemoveBlock. Predecessor sets are maintained
// incrementally by SetTerminator rather than recomputed.
type Graph struct {
	blocks  map[BlockID]*Block
	preds   map[BlockID]map[BlockID]bool
	nextID  BlockID
	entry   BlockID
	hasEntry bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		blocks: make(map[BlockID]*Block),
		preds:  make(map[BlockID]map[BlockID]bool),
	}
}

// NewBlock allocates a fresh block with no terminator and returns its id.
func (g *Graph) NewBlock() BlockID {
	id := g.nextID
	g.nextID++
	g.blocks[id] = &Block{ID: id}
	g.preds[id] = make(map[BlockID]bool)
	return id
}

// Block returns the block for id, or nil if it does not exist (removed or
// never allocated).
func (g *Graph) Block(id BlockID) *Block {
	return g.blocks[id]
}

// Blocks returns every live block id. Order is unspecified; callers that
// need determinism should sort.
func (g *Graph) Blocks() []BlockID {
	out := make([]BlockID, 0, len(g.blocks))
	for id := range g.blocks {
		out = append(out, id)
	}
	return out
}

// Len reports the number of live blocks.
func (g *Graph) Len() int { return len(g.blocks) }

// Entry returns the graph's entry block id.
func (g *Graph) Entry() BlockID { return g.entry }

// SetEntry designates id as the graph's sole entry point.
func (g *Graph) SetEntry(id BlockID) {
	g.entry = id
	g.hasEntry = true
}

// Predecessors returns every block with an edge into id.
func (g *Graph) Predecessors(id BlockID) []BlockID {
	set := g.preds[id]
	out := make([]BlockID, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// Successors returns every block id targets, per its terminator.
func (g *Graph) Successors(id BlockID) []BlockID {
	b := g.blocks[id]
	if b == nil || b.Terminator == nil {
		return nil
	}
	return b.Terminator.Targets()
}

// SetTerminator installs t on id's block, updating predecessor bookkeeping
// for the old and new successor sets atomically.
func (g *Graph) SetTerminator(id BlockID, t Terminator) {
	b := g.blocks[id]
	if b == nil {
		panic(fmt.Sprintf("cfg: SetTerminator on unknown block %d", id))
	}
	if b.Terminator != nil {
		for _, old := range b.Terminator.Targets() {
			delete(g.preds[old], id)
		}
	}
	b.Terminator = t
	if t != nil {
		for _, next := range t.Targets() {
			if g.preds[next] == nil {
				g.preds[next] = make(map[BlockID]bool)
			}
			g.preds[next][id] = true
		}
	}
}

// RemoveBlock deletes id. Its outgoing edges are removed here: id is dropped
// from each successor's predecessor set. Incoming edges are not: every
// surviving predecessor's terminator must already have been rewritten by the
// caller to no longer target id.
func (g *Graph) RemoveBlock(id BlockID) {
	b := g.blocks[id]
	if b == nil {
		return
	}
	if b.Terminator != nil {
		for _, next := range b.Terminator.Targets() {
			delete(g.preds[next], id)
		}
	}
	delete(g.preds, id)
	delete(g.blocks, id)
}
