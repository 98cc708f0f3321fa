// Package ssa destroys φ-instructions by coalescing their sources into their
// destinations, producing a non-SSA CFG the structurer can consume.
package ssa

import (
	"github.com/bits-and-blooms/bitset"

	"luadec/internal/ast"
	"luadec/internal/cfg"
)

// DefUse indexes which locals are read or written in which blocks. It exists
// to avoid rescanning every block of a function on every coalesce: a bitset
// per block records which locals (by dense index) the block mentions at
// all, so Mentions is an O(1) test and only blocks that actually need
// rewriting are walked.
type DefUse struct {
	fn         *cfg.Function
	localIndex map[*ast.Local]uint
	nextIndex  uint
	mentions   map[cfg.BlockID]*bitset.BitSet
}

// Build scans every block of fn (φ-list, AST body, terminator operands) and
// returns a populated DefUse oracle.
func Build(fn *cfg.Function) *DefUse {
	du := &DefUse{
		fn:         fn,
		localIndex: make(map[*ast.Local]uint),
		mentions:   make(map[cfg.BlockID]*bitset.BitSet),
	}
	for _, id := range fn.Graph.Blocks() {
		du.Refresh(id)
	}
	return du
}

func (du *DefUse) indexOf(l *ast.Local) uint {
	if idx, ok := du.localIndex[l]; ok {
		return idx
	}
	idx := du.nextIndex
	du.localIndex[l] = idx
	du.nextIndex++
	return idx
}

// Refresh rebuilds the mention bitset for id from its current contents. Call
// this after any mutation to the block's φ-list, AST, or terminator.
func (du *DefUse) Refresh(id cfg.BlockID) {
	block := du.fn.Graph.Block(id)
	if block == nil {
		delete(du.mentions, id)
		return
	}
	bs := bitset.New(du.nextIndex)
	mark := func(l *ast.Local) {
		bs.Set(du.indexOf(l))
	}

	for _, phi := range block.Phis {
		mark(phi.Dest)
		for _, src := range phi.Incoming {
			mark(src)
		}
	}
	for _, stmt := range block.AST.Statements {
		for _, l := range stmt.ValuesRead() {
			mark(l)
		}
		for _, l := range stmt.ValuesWritten() {
			mark(l)
		}
	}
	switch t := block.Terminator.(type) {
	case *cfg.Conditional:
		for _, l := range t.Cond.ValuesRead() {
			mark(l)
		}
	case *cfg.Return:
		for _, v := range t.Values {
			for _, l := range v.ValuesRead() {
				mark(l)
			}
		}
	case *cfg.NumericForLoop:
		mark(t.Var)
		for _, v := range []ast.RValue{t.Start, t.Limit, t.Step} {
			if v == nil {
				continue
			}
			for _, l := range v.ValuesRead() {
				mark(l)
			}
		}
	case *cfg.GenericForLoop:
		for _, v := range t.Vars {
			mark(v)
		}
	}
	du.mentions[id] = bs
}

// Mentions reports whether block id reads or writes l anywhere: φ-list,
// body, or terminator.
func (du *DefUse) Mentions(id cfg.BlockID, l *ast.Local) bool {
	idx, ok := du.localIndex[l]
	if !ok {
		return false
	}
	bs := du.mentions[id]
	if bs == nil {
		return false
	}
	return bs.Test(idx)
}

// BlocksMentioning returns every block id whose mention set contains l.
func (du *DefUse) BlocksMentioning(l *ast.Local) []cfg.BlockID {
	var out []cfg.BlockID
	for _, id := range du.fn.Graph.Blocks() {
		if du.Mentions(id, l) {
			out = append(out, id)
		}
	}
	return out
}

// Rewrite replaces every occurrence of from with to across the whole
// function — φ-lists, bodies, and terminator operands — then refreshes the
// mention sets for the affected blocks.
func (du *DefUse) Rewrite(from, to *ast.Local) {
	for _, id := range du.BlocksMentioning(from) {
		block := du.fn.Graph.Block(id)
		for _, phi := range block.Phis {
			if phi.Dest == from {
				phi.Dest = to
			}
			for pred, src := range phi.Incoming {
				if src == from {
					phi.Incoming[pred] = to
				}
			}
		}
		block.AST.ReplaceLocal(from, to)
		switch t := block.Terminator.(type) {
		case *cfg.Conditional:
			replaceInRValue(&t.Cond, from, to)
		case *cfg.Return:
			for i := range t.Values {
				replaceInRValue(&t.Values[i], from, to)
			}
		case *cfg.NumericForLoop:
			if t.Var == from {
				t.Var = to
			}
			for _, slot := range []*ast.RValue{&t.Start, &t.Limit, &t.Step} {
				if *slot != nil {
					replaceInRValue(slot, from, to)
				}
			}
		case *cfg.GenericForLoop:
			for i, v := range t.Vars {
				if v == from {
					t.Vars[i] = to
				}
			}
		}
		du.Refresh(id)
	}
}

func replaceInRValue(slot *ast.RValue, from, to *ast.Local) {
	for _, ref := range (*slot).ValuesReadMut() {
		if *ref == from {
			*ref = to
		}
	}
}
