package structurer

import (
	"luadec/internal/ast"
	"luadec/internal/cfg"
)

// tryLoop implements the loop rule: when one of n's two out-edges is a
// back-edge, rewrite into While{cond, body} or Repeat{body, cond} depending
// on whether the test sits at the loop's top (a distinct header block) or
// its bottom (n loops back to itself once its body has already been spliced
// into it by repeated straight-line reduction).
func (s *Structurer) tryLoop(n, t, e cfg.BlockID) bool {
	if s.trySelfLoop(n, t, e) {
		return true
	}
	return s.tryHeaderLoop(n, t, e)
}

// trySelfLoop handles `repeat ... until cond`: after straight-line splicing,
// the loop body and its trailing test collapse into a single block n whose
// terminator branches back to itself. The back-edge branch is the one that
// continues the loop; the other branch exits.
func (s *Structurer) trySelfLoop(n, t, e cfg.BlockID) bool {
	cond, ok := s.conditionOf(n)
	if !ok {
		return false
	}
	var exit cfg.BlockID
	var negate bool
	switch {
	case t == n: // true continues (back-edge on Then), false exits
		exit, negate = e, true
	case e == n: // false continues (back-edge on Else), true exits
		exit, negate = t, false
	default:
		return false
	}

	block := s.fn.Graph.Block(n)
	untilCond := cond
	if negate {
		untilCond = &ast.UnaryExpr{Op: ast.OpNot, Value: cond}
	}
	body := block.AST
	block.AST = ast.Block{Statements: []ast.Statement{&ast.RepeatStmt{Body: body, Condition: untilCond}}}
	s.fn.Graph.SetTerminator(n, &cfg.Jump{Target: exit})
	return true
}

// tryHeaderLoop handles `while cond do body end`: n is a distinct header
// with a body arm whose single predecessor is n and which jumps straight
// back to n (a genuine back-edge, confirmed via dominance).
func (s *Structurer) tryHeaderLoop(n, t, e cfg.BlockID) bool {
	cond, ok := s.conditionOf(n)
	if !ok {
		return false
	}
	if s.buildWhile(n, t, e, cond, false) {
		return true
	}
	return s.buildWhile(n, e, t, cond, true)
}

// buildWhile tries bodyID as the loop body and exitID as the done target,
// with negate indicating whether bodyID was n's Else edge (so the natural
// `while` condition must be negated to read as "continue while true").
func (s *Structurer) buildWhile(n, bodyID, exitID cfg.BlockID, cond ast.RValue, negate bool) bool {
	body, ok := s.loopBody(n, bodyID)
	if !ok {
		return false
	}

	whileCond := cond
	if negate {
		whileCond = &ast.UnaryExpr{Op: ast.OpNot, Value: cond}
	}

	header := s.fn.Graph.Block(n)
	header.AST.Statements = append(header.AST.Statements, &ast.WhileStmt{
		Condition: whileCond,
		Body:      *body,
	})
	s.fn.Graph.SetTerminator(n, &cfg.Jump{Target: exitID})
	s.fn.Graph.RemoveBlock(bodyID)
	return true
}

// loopBody reports whether bodyID is a reducible loop body for header n: a
// single-predecessor block (n), carrying no φs, whose terminator is a plain
// jump back to n, confirmed as a genuine back-edge by dominance.
func (s *Structurer) loopBody(n, bodyID cfg.BlockID) (*ast.Block, bool) {
	body := s.fn.Graph.Block(bodyID)
	if body == nil || len(body.Phis) != 0 {
		return nil, false
	}
	preds := s.fn.Graph.Predecessors(bodyID)
	if len(preds) != 1 || preds[0] != n {
		return nil, false
	}
	jmp, ok := body.Terminator.(*cfg.Jump)
	if !ok || jmp.Target != n {
		return nil, false
	}
	if s.dom == nil || !s.dom.Dominates(n, bodyID) {
		return nil, false
	}
	return &body.AST, true
}

// tryNumericForLoop collapses a NumericForLoop terminator into an
// ast.NumericForStmt once its body has reduced to a single block that jumps
// straight back to the test: n is itself the loop's header (the
// IterateNumericForLoop test the lifter installed this terminator at).
func (s *Structurer) tryNumericForLoop(n cfg.BlockID, term *cfg.NumericForLoop) bool {
	body, ok := s.loopBody(n, term.Body)
	if !ok {
		return false
	}
	header := s.fn.Graph.Block(n)
	header.AST.Statements = append(header.AST.Statements, &ast.NumericForStmt{
		Var:   term.Var,
		Start: term.Start,
		Limit: term.Limit,
		Step:  term.Step,
		Body:  *body,
	})
	s.fn.Graph.SetTerminator(n, &cfg.Jump{Target: term.Done})
	s.fn.Graph.RemoveBlock(term.Body)
	return true
}

// tryGenericForLoop is tryNumericForLoop's twin for GenericForLoop
// terminators, folding the iterator/state/control triple back into the
// `in` expression list ast.GenericForStmt expects.
func (s *Structurer) tryGenericForLoop(n cfg.BlockID, term *cfg.GenericForLoop) bool {
	body, ok := s.loopBody(n, term.Body)
	if !ok {
		return false
	}
	header := s.fn.Graph.Block(n)
	header.AST.Statements = append(header.AST.Statements, &ast.GenericForStmt{
		Vars:  term.Vars,
		Exprs: []ast.RValue{term.Iterator, term.State, term.Control},
		Body:  *body,
	})
	s.fn.Graph.SetTerminator(n, &cfg.Jump{Target: term.Done})
	s.fn.Graph.RemoveBlock(term.Body)
	return true
}
