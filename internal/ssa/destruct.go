package ssa

import (
	"luadec/internal/ast"
	"luadec/internal/cfg"
)

// Destruct eliminates every φ-instruction in fn by coalescing its sources
// into its destination, per block in reverse φ-order. It assumes
// conventional SSA (no two coalesced locals have overlapping live ranges);
// conventionalize runs first to restore that property where the lifter's
// one-local-per-register allocation does not already guarantee it.
func Destruct(fn *cfg.Function) {
	du := Build(fn)
	conventionalize(fn, du)

	for _, id := range fn.Graph.Blocks() {
		block := fn.Graph.Block(id)
		for i := len(block.Phis) - 1; i >= 0; i-- {
			phi := block.Phis[i]
			for _, src := range phi.Incoming {
				if src == phi.Dest {
					continue
				}
				du.Rewrite(src, phi.Dest)
			}
			block.Phis = append(block.Phis[:i], block.Phis[i+1:]...)
		}
		du.Refresh(id)
	}
}

// conventionalize detects φ sources whose live range plausibly overlaps
// another use of the same local beyond feeding the φ, and for those inserts
// a parallel-copy assignment at the end of the corresponding predecessor
// block instead of letting Destruct coalesce directly. This resolves the
// CSSA precondition the destructor otherwise assumes.
//
// The overlap test is conservative rather than a full liveness fixpoint: a
// source is treated as potentially overlapping if it is mentioned in any
// block other than the predecessor block that defines the value flowing
// into the φ. Register reuse by the lifter is the only realistic source of
// overlap here, and this catches it without a separate dataflow pass.
func conventionalize(fn *cfg.Function, du *DefUse) {
	for _, id := range fn.Graph.Blocks() {
		block := fn.Graph.Block(id)
		for _, phi := range block.Phis {
			for predID, src := range phi.Incoming {
				if !overlapsElsewhere(du, src, predID) {
					continue
				}
				copyLocal := fn.Locals.Allocate()
				predBlock := fn.Graph.Block(predID)
				predBlock.AST.Statements = append(predBlock.AST.Statements, &ast.AssignStmt{
					Left:  []ast.AssignTarget{{Target: &ast.LocalExpr{Local: copyLocal}}},
					Right: []ast.RValue{&ast.LocalExpr{Local: src}},
				})
				phi.Incoming[predID] = copyLocal
				du.Refresh(predID)
			}
		}
	}
}

func overlapsElsewhere(du *DefUse, src *ast.Local, definingBlock cfg.BlockID) bool {
	for _, id := range du.BlocksMentioning(src) {
		if id != definingBlock {
			return true
		}
	}
	return false
}
