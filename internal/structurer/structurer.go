package structurer

import (
	"strconv"

	"luadec/internal/ast"
	"luadec/internal/cfg"
	"luadec/internal/errors"
)

// Structurer reduces a function's CFG to a single block whose AST becomes
// the function body.
type Structurer struct {
	fn    *cfg.Function
	dom   *Dominators
	loops map[cfg.BlockID]loopInfo
}

// New returns a structurer for fn. It computes nothing up front: matchBlocks
// recomputes dominators and loop information at the start of every pass,
// since block removal changes the graph shape.
func New(fn *cfg.Function) *Structurer {
	return &Structurer{fn: fn}
}

// Run repeatedly applies reduction rules until a fixpoint. It returns the
// function's single remaining block's AST on success, or the partially
// structured body plus a non-fatal *errors.Error when the CFG is
// irreducible.
func (s *Structurer) Run() (ast.Block, *errors.Error) {
	for s.matchBlocks() {
	}

	if s.fn.Graph.Len() == 1 {
		entry := s.fn.Graph.Block(s.fn.Entry)
		return entry.AST, nil
	}
	return s.emitUnstructured(), errors.Irreducible(s.fn.Graph.Len())
}

// matchBlocks enumerates reachable nodes in reverse post-order from entry
// (entry first; nodes are not visited in plain DFS post-order), prunes
// unreachable ones, and tries a reduction at each reached node, OR-ing
// together whether any rule fired.
func (s *Structurer) matchBlocks() bool {
	s.dom = ComputeDominators(s.fn.Graph, s.fn.Entry)
	s.loops = computeLoops(s.fn.Graph, s.dom)
	order, _ := postOrderFrom(s.fn.Graph, s.fn.Entry)

	reached := map[cfg.BlockID]bool{}
	for _, id := range order {
		reached[id] = true
	}
	for _, id := range s.fn.Graph.Blocks() {
		if !reached[id] && id != s.fn.Entry {
			s.fn.Graph.RemoveBlock(id)
		}
	}

	changed := false
	for _, id := range order {
		if s.fn.Graph.Block(id) == nil {
			continue
		}
		if s.tryMatchPattern(id) {
			changed = true
		}
	}
	return changed
}

// tryMatchPattern dispatches on n's out-degree per the structurer's rule set.
// The lifter-installed for-loop terminators are matched directly by type
// before falling into the generic successor-count dispatch, since they carry
// their own loop header/body/done shape rather than a plain Conditional.
func (s *Structurer) tryMatchPattern(n cfg.BlockID) bool {
	block := s.fn.Graph.Block(n)
	if block == nil || block.Terminator == nil {
		return false
	}
	switch term := block.Terminator.(type) {
	case *cfg.NumericForLoop:
		return s.tryNumericForLoop(n, term)
	case *cfg.GenericForLoop:
		return s.tryGenericForLoop(n, term)
	}
	succs := block.Terminator.Targets()
	switch len(succs) {
	case 0:
		return false
	case 1:
		return s.trySplice(n, succs[0])
	case 2:
		if s.tryCompoundConditional(n, succs[0], succs[1]) {
			return true
		}
		if s.tryIfThenElse(n, succs[0], succs[1]) {
			return true
		}
		if s.tryDivergentIf(n, succs[0], succs[1]) {
			return true
		}
		return s.tryLoop(n, succs[0], succs[1])
	default:
		return false
	}
}

// trySplice implements the 1-successor rule: if s's only predecessor is n,
// append s's body into n and adopt its terminator. If s is a pure no-op jump
// block (body empty, single successor) it is bypassed instead, whoever else
// points at it. The entry block is never spliced or bypassed, so an entry
// loop header stays in place when its latch is visited.
func (s *Structurer) trySplice(n, succ cfg.BlockID) bool {
	if succ == n || succ == s.fn.Entry {
		return false
	}
	target := s.fn.Graph.Block(succ)
	if target == nil {
		return false
	}
	preds := s.fn.Graph.Predecessors(succ)
	if len(preds) == 1 && preds[0] == n && len(target.Phis) == 0 {
		block := s.fn.Graph.Block(n)
		block.AST.Statements = append(block.AST.Statements, target.AST.Statements...)
		s.fn.Graph.SetTerminator(n, target.Terminator)
		s.fn.Graph.RemoveBlock(succ)
		return true
	}

	if isNoOpJump(target) {
		jumpTarget := target.Terminator.(*cfg.Jump).Target
		block := s.fn.Graph.Block(n)
		block.Terminator.ReplaceTarget(succ, jumpTarget)
		rewirePhis(s.fn.Graph, succ, jumpTarget, n)
		return true
	}
	return false
}

func isNoOpJump(b *cfg.Block) bool {
	if len(b.AST.Statements) != 0 || len(b.Phis) != 0 {
		return false
	}
	_, ok := b.Terminator.(*cfg.Jump)
	return ok
}

// rewirePhis updates merge's φ-incoming map when a predecessor edge that
// used to arrive directly from `from` now effectively arrives from
// `newPred` (a bypassed skip block's real predecessor).
func rewirePhis(g *cfg.Graph, from, merge, newPred cfg.BlockID) {
	target := g.Block(merge)
	if target == nil {
		return
	}
	for _, phi := range target.Phis {
		if v, ok := phi.Incoming[from]; ok {
			delete(phi.Incoming, from)
			phi.Incoming[newPred] = v
		}
	}
}

// emitUnstructured renders every remaining block as a labeled sequence
// joined by explicit jump comments, for the irreducible case.
func (s *Structurer) emitUnstructured() ast.Block {
	var out ast.Block
	out.Statements = append(out.Statements, ast.CommentStmt{
		Text: "unstructured: " + strconv.Itoa(s.fn.Graph.Len()) + " nodes",
	})
	for _, id := range s.fn.Graph.Blocks() {
		b := s.fn.Graph.Block(id)
		out.Statements = append(out.Statements, ast.CommentStmt{Text: "block " + strconv.Itoa(int(id)) + ":"})
		out.Statements = append(out.Statements, b.AST.Statements...)
		if b.Terminator != nil {
			out.Statements = append(out.Statements, ast.CommentStmt{Text: "-> " + b.Terminator.String()})
		}
	}
	return out
}
