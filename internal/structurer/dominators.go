// Package structurer collapses a function's CFG into a single structured
// ast.Block by iteratively matching reducible control-flow patterns
// (straight-line splice, if-then-else, short-circuit compound conditional,
// while/repeat) until a fixpoint, per the same reduction order a hand-built
// graph grammar would use.
package structurer

import "luadec/internal/cfg"

// Dominators holds each block's immediate dominator, computed with the
// iterative Cooper/Harvey/Kennedy algorithm rather than Lengauer-Tarjan:
// functions here are small, and the iterative form is far simpler to get
// right.
type Dominators struct {
	idom     map[cfg.BlockID]cfg.BlockID
	postOrder map[cfg.BlockID]int
}

// ComputeDominators returns the dominator tree of g rooted at entry.
func ComputeDominators(g *cfg.Graph, entry cfg.BlockID) *Dominators {
	order, postOrder := postOrderFrom(g, entry)

	idom := map[cfg.BlockID]cfg.BlockID{entry: entry}
	changed := true
	for changed {
		changed = false
		// Process in reverse post-order (entry first).
		for i := len(order) - 1; i >= 0; i-- {
			b := order[i]
			if b == entry {
				continue
			}
			var newIdom cfg.BlockID
			found := false
			for _, p := range g.Predecessors(b) {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !found {
					newIdom = p
					found = true
					continue
				}
				newIdom = intersect(idom, postOrder, newIdom, p)
			}
			if !found {
				continue
			}
			if old, ok := idom[b]; !ok || old != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}
	return &Dominators{idom: idom, postOrder: postOrder}
}

func intersect(idom map[cfg.BlockID]cfg.BlockID, postOrder map[cfg.BlockID]int, a, b cfg.BlockID) cfg.BlockID {
	for a != b {
		for postOrder[a] < postOrder[b] {
			a = idom[a]
		}
		for postOrder[b] < postOrder[a] {
			b = idom[b]
		}
	}
	return a
}

// postOrderFrom returns block ids reachable from entry in reverse-post-order
// (index 0 is entry), plus a map from block id to its DFS post-order number
// (higher = finished later; entry has the highest number), used by intersect.
func postOrderFrom(g *cfg.Graph, entry cfg.BlockID) ([]cfg.BlockID, map[cfg.BlockID]int) {
	visited := map[cfg.BlockID]bool{}
	var post []cfg.BlockID

	var visit func(cfg.BlockID)
	visit = func(b cfg.BlockID) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, s := range g.Successors(b) {
			visit(s)
		}
		post = append(post, b)
	}
	visit(entry)

	postOrder := make(map[cfg.BlockID]int, len(post))
	for i, b := range post {
		postOrder[b] = i
	}

	// Reverse post-order for the RPO worklist.
	rpo := make([]cfg.BlockID, len(post))
	for i, b := range post {
		rpo[len(post)-1-i] = b
	}
	return rpo, postOrder
}

// Dominates reports whether a dominates b (reflexively: a dominates a).
func (d *Dominators) Dominates(a, b cfg.BlockID) bool {
	if a == b {
		return true
	}
	for {
		idom, ok := d.idom[b]
		if !ok {
			return false
		}
		if idom == b {
			return false
		}
		if idom == a {
			return true
		}
		b = idom
	}
}

// ImmediateDominator returns id's immediate dominator and whether one
// exists (the entry block has none).
func (d *Dominators) ImmediateDominator(id cfg.BlockID) (cfg.BlockID, bool) {
	idom, ok := d.idom[id]
	if !ok || idom == id {
		return 0, false
	}
	return idom, true
}

// IsBackEdge reports whether u->v is a back-edge: v dominates u.
func (d *Dominators) IsBackEdge(u, v cfg.BlockID) bool {
	return d.Dominates(v, u)
}

// reachable returns the set of block ids the DFS from entry reached.
func (d *Dominators) reachable() map[cfg.BlockID]bool {
	out := make(map[cfg.BlockID]bool, len(d.postOrder))
	for id := range d.postOrder {
		out[id] = true
	}
	return out
}
