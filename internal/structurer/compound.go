package structurer

import (
	"luadec/internal/ast"
	"luadec/internal/cfg"
)

// tryCompoundConditional implements the short-circuit fold: when one of n's
// two successors is itself a no-op two-successor conditional block whose
// only predecessor is n, and one of its targets rejoins n's other target,
// the two tests are folded into a single `and`/`or` condition. Per spec,
// this only fires when the inner block's body is comment-only (or empty) —
// folding across a side-effecting inner block would reorder observable
// effects.
//
// The two canonical shapes are handled: `a and b` (n's true edge leads into
// the inner test, whose false edge rejoins n's false edge) and `a or b`
// (the mirror image on n's false edge). The two opposite-polarity shapes (n's
// true edge into an inner test whose true edge rejoins n's false edge, and
// its mirror on n's false edge) are not folded and remain nested ifs.
func (s *Structurer) tryCompoundConditional(n, t, e cfg.BlockID) bool {
	cond, ok := s.conditionOf(n)
	if !ok {
		return false
	}
	if s.foldAnd(n, cond, t, e) {
		return true
	}
	return s.foldOr(n, cond, t, e)
}

// foldAnd handles `a and b`: n's true edge is the inner test; the inner
// test's false edge rejoins n's false edge (the shared short-circuit exit).
func (s *Structurer) foldAnd(n cfg.BlockID, outerCond ast.RValue, thenID, elseID cfg.BlockID) bool {
	inner, ok := s.noOpConditional(n, thenID)
	if !ok || inner.Else != elseID {
		return false
	}
	folded := &ast.BinaryExpr{Op: ast.OpAnd, LHS: outerCond, RHS: inner.Cond}
	s.fn.Graph.SetTerminator(n, &cfg.Conditional{Cond: folded, Then: inner.Then, Else: elseID})
	s.fn.Graph.RemoveBlock(thenID)
	return true
}

// foldOr handles `a or b`: n's false edge is the inner test; the inner
// test's true edge rejoins n's true edge.
func (s *Structurer) foldOr(n cfg.BlockID, outerCond ast.RValue, thenID, elseID cfg.BlockID) bool {
	inner, ok := s.noOpConditional(n, elseID)
	if !ok || inner.Then != thenID {
		return false
	}
	folded := &ast.BinaryExpr{Op: ast.OpOr, LHS: outerCond, RHS: inner.Cond}
	s.fn.Graph.SetTerminator(n, &cfg.Conditional{Cond: folded, Then: thenID, Else: inner.Else})
	s.fn.Graph.RemoveBlock(elseID)
	return true
}

// noOpConditional returns candidate's Conditional terminator if candidate's
// only predecessor is n, it carries no φs, and its body is comment-only
// (isNoOpBody).
func (s *Structurer) noOpConditional(n, candidate cfg.BlockID) (*cfg.Conditional, bool) {
	block := s.fn.Graph.Block(candidate)
	if block == nil || len(block.Phis) != 0 {
		return nil, false
	}
	preds := s.fn.Graph.Predecessors(candidate)
	if len(preds) != 1 || preds[0] != n {
		return nil, false
	}
	if !isNoOpBody(block.AST) {
		return nil, false
	}
	cond, ok := block.Terminator.(*cfg.Conditional)
	return cond, ok
}

// isNoOpBody reports whether a block's statements are all comments (no
// observable side effects), the condition under which short-circuit folding
// is allowed to reorder evaluation.
func isNoOpBody(b ast.Block) bool {
	for _, stmt := range b.Statements {
		if _, ok := stmt.(ast.CommentStmt); !ok {
			return false
		}
	}
	return true
}
