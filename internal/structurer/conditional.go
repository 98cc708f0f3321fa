package structurer

import (
	"luadec/internal/ast"
	"luadec/internal/cfg"
)

// tryIfThenElse implements the simple if-then-else rule: heads t, e with a
// common merge m. Each arm that has n as its only predecessor and a single
// successor equal to m is spliced in as a branch body; an arm may also be m
// itself directly, in which case that side of the If is omitted (one-armed
// If).
func (s *Structurer) tryIfThenElse(n, t, e cfg.BlockID) bool {
	cond, ok := s.conditionOf(n)
	if !ok {
		return false
	}

	thenArm, thenMerge, thenOK := s.asArm(n, t)
	elseArm, elseMerge, elseOK := s.asArm(n, e)

	switch {
	case thenOK && elseOK && thenMerge == elseMerge:
		return s.spliceIf(n, cond, thenArm, t, elseArm, e, thenMerge)
	case thenOK && thenMerge == e:
		return s.spliceIf(n, cond, thenArm, t, nil, 0, e)
	case elseOK && elseMerge == t:
		return s.spliceIf(n, cond, nil, 0, elseArm, e, t)
	default:
		return false
	}
}

// conditionOf returns n's branch condition if its terminator is Conditional.
func (s *Structurer) conditionOf(n cfg.BlockID) (ast.RValue, bool) {
	block := s.fn.Graph.Block(n)
	cond, ok := block.Terminator.(*cfg.Conditional)
	if !ok {
		return nil, false
	}
	return cond.Cond, true
}

// asArm reports whether candidate is a single-predecessor (n), single-
// successor arm block, returning its body and merge target.
func (s *Structurer) asArm(n, candidate cfg.BlockID) (*ast.Block, cfg.BlockID, bool) {
	block := s.fn.Graph.Block(candidate)
	if block == nil || len(block.Phis) != 0 {
		return nil, 0, false
	}
	preds := s.fn.Graph.Predecessors(candidate)
	if len(preds) != 1 || preds[0] != n {
		return nil, 0, false
	}
	jmp, ok := block.Terminator.(*cfg.Jump)
	if !ok {
		return nil, 0, false
	}
	return &block.AST, jmp.Target, true
}

func (s *Structurer) spliceIf(n cfg.BlockID, cond ast.RValue, thenArm *ast.Block, thenID cfg.BlockID, elseArm *ast.Block, elseID cfg.BlockID, merge cfg.BlockID) bool {
	block := s.fn.Graph.Block(n)
	block.AST.Statements = append(block.AST.Statements, &ast.IfStmt{
		Condition: cond,
		Then:      thenArm,
		Else:      elseArm,
	})
	s.fn.Graph.SetTerminator(n, &cfg.Jump{Target: merge})
	if thenArm != nil {
		s.fn.Graph.RemoveBlock(thenID)
	}
	if elseArm != nil {
		s.fn.Graph.RemoveBlock(elseID)
	}
	return true
}
