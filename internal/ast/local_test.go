package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalIdentityNotName(t *testing.T) {
	a := NewLocal("x")
	b := NewLocal("x")
	assert.NotSame(t, a, b)
	assert.True(t, a != b)
}

func TestUnnamedLocalStringIsStable(t *testing.T) {
	l := NewUnnamedLocal()
	first := l.String()
	second := l.String()
	assert.Equal(t, first, second)
	assert.Contains(t, first, "UNNAMED_")
}

func TestLocalAllocatorOwnsLocals(t *testing.T) {
	alloc := NewLocalAllocator()
	a := alloc.Allocate()
	b := alloc.AllocateNamed("count")
	assert.ElementsMatch(t, []*Local{a, b}, alloc.Locals())
}

func TestRenameDoesNotChangeIdentity(t *testing.T) {
	l := NewUnnamedLocal()
	_, hasName := l.Name()
	assert.False(t, hasName)
	l.SetName("total")
	name, hasName := l.Name()
	assert.True(t, hasName)
	assert.Equal(t, "total", name)
}
