package structurer

import (
	"luadec/internal/ast"
	"luadec/internal/cfg"
)

// loopInfo is a loop header's natural loop body set and, when recognizable,
// the single target its loop exits to.
type loopInfo struct {
	body    map[cfg.BlockID]bool
	exit    cfg.BlockID
	hasExit bool
}

// computeLoops finds every back edge (a successor that dominates its own
// predecessor) and records each header's natural loop body, unioned across
// every latch that shares the header, plus the loop's exit target when the
// header's terminator has exactly one successor inside that body and one
// outside. This runs once per matchBlocks pass so tryDivergentIf can
// recognize a break/continue edge deep inside a loop body before repeated
// straight-line reduction has collapsed it down to the header itself.
func computeLoops(g *cfg.Graph, dom *Dominators) map[cfg.BlockID]loopInfo {
	backEdges := map[cfg.BlockID][]cfg.BlockID{}
	for _, latch := range g.Blocks() {
		block := g.Block(latch)
		if block == nil || block.Terminator == nil {
			continue
		}
		for _, header := range block.Terminator.Targets() {
			if header == latch || !dom.Dominates(header, latch) {
				continue
			}
			backEdges[header] = append(backEdges[header], latch)
		}
	}

	loops := make(map[cfg.BlockID]loopInfo, len(backEdges))
	for header, latches := range backEdges {
		body := map[cfg.BlockID]bool{header: true}
		for _, latch := range latches {
			for id := range naturalLoop(g, header, latch) {
				body[id] = true
			}
		}
		info := loopInfo{body: body}
		if headerBlock := g.Block(header); headerBlock != nil && headerBlock.Terminator != nil {
			succs := headerBlock.Terminator.Targets()
			if len(succs) == 2 {
				in0, in1 := body[succs[0]], body[succs[1]]
				switch {
				case in0 && !in1:
					info.exit, info.hasExit = succs[1], true
				case in1 && !in0:
					info.exit, info.hasExit = succs[0], true
				}
			}
		}
		loops[header] = info
	}
	return loops
}

// naturalLoop returns header's natural loop for the back edge latch->header:
// header plus every node that can reach latch by predecessor traversal
// without going back through header.
func naturalLoop(g *cfg.Graph, header, latch cfg.BlockID) map[cfg.BlockID]bool {
	loop := map[cfg.BlockID]bool{header: true}
	if header == latch {
		return loop
	}
	loop[latch] = true
	stack := []cfg.BlockID{latch}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range g.Predecessors(n) {
			if !loop[p] {
				loop[p] = true
				stack = append(stack, p)
			}
		}
	}
	return loop
}

// divergentKind reports the control statement for an edge from n to target
// when target is the header (continue) or recorded exit (break) of the
// innermost loop enclosing n. n is never treated as enclosed by a loop it is
// itself the header of — that edge is the loop's own test, not an early
// exit.
func (s *Structurer) divergentKind(n, target cfg.BlockID) (ast.Statement, bool) {
	var innermost loopInfo
	var innermostHeader cfg.BlockID
	found := false
	for header, info := range s.loops {
		if header == n || !info.body[n] {
			continue
		}
		if !found || len(info.body) < len(innermost.body) {
			innermost, innermostHeader, found = info, header, true
		}
	}
	if !found {
		return nil, false
	}
	if target == innermostHeader {
		return ast.ContinueStmt{}, true
	}
	if innermost.hasExit && target == innermost.exit {
		return ast.BreakStmt{}, true
	}
	return nil, false
}

// asDivergentArm reports whether candidate is a recognized break/continue
// edge from n: either candidate itself is the enclosing loop's header or
// exit (an empty arm carrying just the control statement), or candidate is a
// single-predecessor block whose own unconditional jump lands on one.
// removable tells the caller whether candidate is safe to remove from the
// graph: only true when candidate was a dedicated intermediate block, never
// when candidate is the shared header/exit block itself, which other edges
// still target.
func (s *Structurer) asDivergentArm(n, candidate cfg.BlockID) (arm *ast.Block, removable bool, ok bool) {
	if stmt, divergent := s.divergentKind(n, candidate); divergent {
		return &ast.Block{Statements: []ast.Statement{stmt}}, false, true
	}
	block := s.fn.Graph.Block(candidate)
	if block == nil || len(block.Phis) != 0 {
		return nil, false, false
	}
	preds := s.fn.Graph.Predecessors(candidate)
	if len(preds) != 1 || preds[0] != n {
		return nil, false, false
	}
	jmp, isJump := block.Terminator.(*cfg.Jump)
	if !isJump {
		return nil, false, false
	}
	stmt, divergent := s.divergentKind(n, jmp.Target)
	if !divergent {
		return nil, false, false
	}
	statements := append(append([]ast.Statement{}, block.AST.Statements...), stmt)
	return &ast.Block{Statements: statements}, true, true
}

// tryDivergentIf matches an if whose one arm diverges out of an enclosing
// loop — a break or continue — instead of rejoining n's other successor.
// The arm is spliced in as a one-armed if ending in that control statement,
// and n's terminator continues straight to the non-diverging successor.
func (s *Structurer) tryDivergentIf(n, t, e cfg.BlockID) bool {
	cond, ok := s.conditionOf(n)
	if !ok {
		return false
	}
	if arm, removable, ok := s.asDivergentArm(n, t); ok {
		return s.spliceDivergentArm(n, cond, arm, t, removable, e)
	}
	if arm, removable, ok := s.asDivergentArm(n, e); ok {
		negated := &ast.UnaryExpr{Op: ast.OpNot, Value: cond}
		return s.spliceDivergentArm(n, negated, arm, e, removable, t)
	}
	return false
}

func (s *Structurer) spliceDivergentArm(n cfg.BlockID, cond ast.RValue, arm *ast.Block, armID cfg.BlockID, removable bool, continueTo cfg.BlockID) bool {
	block := s.fn.Graph.Block(n)
	block.AST.Statements = append(block.AST.Statements, &ast.IfStmt{Condition: cond, Then: arm})
	s.fn.Graph.SetTerminator(n, &cfg.Jump{Target: continueTo})
	if removable {
		s.fn.Graph.RemoveBlock(armID)
	}
	return true
}
