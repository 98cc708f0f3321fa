// Package ast defines the typed expression and statement tree produced by
// the lifter and consumed by the structurer, the SSA destructor, and
// ultimately an external pretty-printer.
package ast

import (
	"fmt"
	"unsafe"
)

// Local is a variable slot with an optional human-readable name. Locals are
// compared and hashed by identity (the pointer), never by name: two locals
// sharing a name (shadowing, or a renamed/coalesced pair) remain distinct
// unless they are literally the same *Local.
type Local struct {
	name *string
}

// NewLocal returns a named local. Passing "" is different from an unnamed
// local produced by NewUnnamedLocal: use the latter when no name exists.
func NewLocal(name string) *Local {
	return &Local{name: &name}
}

// NewUnnamedLocal returns a local with no known name.
func NewUnnamedLocal() *Local {
	return &Local{}
}

// Name reports the local's name and whether it has one.
func (l *Local) Name() (string, bool) {
	if l.name == nil {
		return "", false
	}
	return *l.name, true
}

// SetName assigns the local's display name. SetName("") stores an empty name,
// which Name still reports as set; it does not make the local unnamed.
// Renaming does not change identity: every existing reference to this *Local
// still refers to the same variable.
func (l *Local) SetName(name string) {
	l.name = &name
}

// String renders the local for display. An unnamed local falls back to a
// stable identity hash so that output is deterministic for a given pointer
// without requiring two different locals to ever collide.
func (l *Local) String() string {
	if l.name != nil {
		return *l.name
	}
	return fmt.Sprintf("UNNAMED_%d", identityHash(l))
}

func identityHash(l *Local) uint32 {
	// FNV-1a over the pointer's bit pattern. This is stable for the lifetime
	// of the process and only needs to disambiguate unnamed locals in debug
	// output; it is never used for equality.
	h := uint32(2166136261)
	v := uint64(uintptr(unsafe.Pointer(l)))
	for i := 0; i < 8; i++ {
		h ^= uint32(v & 0xff)
		h *= 16777619
		v >>= 8
	}
	return h
}

// LocalAllocator hands out fresh Locals for the lifetime of one function. A
// Local outlives every reference to it because the allocator, not the
// callers, owns the backing records.
type LocalAllocator struct {
	locals []*Local
}

// NewLocalAllocator returns an empty allocator.
func NewLocalAllocator() *LocalAllocator {
	return &LocalAllocator{}
}

// Allocate mints a fresh, unnamed local owned by this allocator.
func (a *LocalAllocator) Allocate() *Local {
	l := NewUnnamedLocal()
	a.locals = append(a.locals, l)
	return l
}

// AllocateNamed mints a fresh local with the given name.
func (a *LocalAllocator) AllocateNamed(name string) *Local {
	l := NewLocal(name)
	a.locals = append(a.locals, l)
	return l
}

// Locals returns every local this allocator owns, in allocation order.
func (a *LocalAllocator) Locals() []*Local {
	return a.locals
}
