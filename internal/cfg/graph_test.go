package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetTerminatorMaintainsPredecessors(t *testing.T) {
	g := NewGraph()
	a := g.NewBlock()
	b := g.NewBlock()
	c := g.NewBlock()

	g.SetTerminator(a, &Jump{Target: b})
	assert.Equal(t, []BlockID{a}, g.Predecessors(b))

	g.SetTerminator(a, &Jump{Target: c})
	assert.Empty(t, g.Predecessors(b))
	assert.Equal(t, []BlockID{a}, g.Predecessors(c))
}

func TestConditionalTracksBothTargets(t *testing.T) {
	g := NewGraph()
	a := g.NewBlock()
	t1 := g.NewBlock()
	t2 := g.NewBlock()

	g.SetTerminator(a, &Conditional{Then: t1, Else: t2})
	assert.ElementsMatch(t, []BlockID{t1, t2}, g.Successors(a))
	assert.Equal(t, []BlockID{a}, g.Predecessors(t1))
	assert.Equal(t, []BlockID{a}, g.Predecessors(t2))
}

func TestRemoveBlockClearsIncidentEdges(t *testing.T) {
	g := NewGraph()
	a := g.NewBlock()
	b := g.NewBlock()
	g.SetTerminator(a, &Jump{Target: b})

	g.RemoveBlock(b)
	assert.Nil(t, g.Block(b))
	assert.Empty(t, g.Predecessors(b))
}

func TestBlockIDsStableAcrossRemoval(t *testing.T) {
	g := NewGraph()
	a := g.NewBlock()
	b := g.NewBlock()
	g.RemoveBlock(a)
	c := g.NewBlock()
	assert.NotEqual(t, a, c)
	assert.NotNil(t, g.Block(b))
}
