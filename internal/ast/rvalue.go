package ast

// RValue is any expression that produces a value: a local read, a literal, a
// global or upvalue reference, a table index, a binary/unary/concat
// expression, a call, a table constructor, a nested closure, or `...`.
//
// Every RValue exposes the locals it reads and writes (the write lists are
// empty for every RValue variant, nested closures included), a
// child-traversal hook for rewriting passes, and a conservative side-effect
// flag.
type RValue interface {
	ValuesRead() []*Local
	ValuesReadMut() []**Local
	ValuesWritten() []*Local
	ValuesWrittenMut() []**Local
	Children() []RValue
	HasSideEffects() bool
	String() string
}

// LValue is an assignable expression: a local, a global, a table index, or
// an upvalue.
type LValue interface {
	RValue
	isLValue()
}

// LocalExpr reads (or, as an LValue, is assigned to) a local.
type LocalExpr struct{ Local *Local }

func (e *LocalExpr) isLValue() {}

func (e *LocalExpr) ValuesRead() []*Local        { return []*Local{e.Local} }
func (e *LocalExpr) ValuesReadMut() []**Local    { return []**Local{&e.Local} }
func (e *LocalExpr) ValuesWritten() []*Local     { return nil }
func (e *LocalExpr) ValuesWrittenMut() []**Local { return nil }
func (e *LocalExpr) Children() []RValue          { return nil }
func (e *LocalExpr) HasSideEffects() bool        { return false }
func (e *LocalExpr) String() string              { return e.Local.String() }

// LiteralExpr wraps a Literal so it satisfies RValue uniformly alongside the
// other expression kinds (Literal already implements RValue directly, but
// lifter code constructs this wrapper when it needs a concrete *LiteralExpr
// to splice into a child slot).
type LiteralExpr struct{ Value Literal }

func (e *LiteralExpr) ValuesRead() []*Local        { return nil }
func (e *LiteralExpr) ValuesReadMut() []**Local    { return nil }
func (e *LiteralExpr) ValuesWritten() []*Local     { return nil }
func (e *LiteralExpr) ValuesWrittenMut() []**Local { return nil }
func (e *LiteralExpr) Children() []RValue          { return nil }
func (e *LiteralExpr) HasSideEffects() bool        { return false }
func (e *LiteralExpr) String() string              { return e.Value.String() }

// GlobalExpr reads or writes a named global.
type GlobalExpr struct{ Name string }

func (e *GlobalExpr) isLValue() {}

func (e *GlobalExpr) ValuesRead() []*Local        { return nil }
func (e *GlobalExpr) ValuesReadMut() []**Local    { return nil }
func (e *GlobalExpr) ValuesWritten() []*Local     { return nil }
func (e *GlobalExpr) ValuesWrittenMut() []**Local { return nil }
func (e *GlobalExpr) Children() []RValue          { return nil }
func (e *GlobalExpr) HasSideEffects() bool        { return false }
func (e *GlobalExpr) String() string              { return e.Name }

// UpvalueExpr reads or writes a value captured from an enclosing function.
// Upvalues are represented by the captured Local's shared handle, exactly as
// locals are, so replace_local also rewrites upvalue references transparently.
type UpvalueExpr struct{ Local *Local }

func (e *UpvalueExpr) isLValue() {}

func (e *UpvalueExpr) ValuesRead() []*Local        { return []*Local{e.Local} }
func (e *UpvalueExpr) ValuesReadMut() []**Local    { return []**Local{&e.Local} }
func (e *UpvalueExpr) ValuesWritten() []*Local     { return nil }
func (e *UpvalueExpr) ValuesWrittenMut() []**Local { return nil }
func (e *UpvalueExpr) Children() []RValue          { return nil }
func (e *UpvalueExpr) HasSideEffects() bool        { return false }
func (e *UpvalueExpr) String() string              { return e.Local.String() }

// VarArgExpr is the `...` expression: a multi-valued, side-effecting tail
// expression (its value depends on the calling context of a vararg function).
type VarArgExpr struct{}

func (e *VarArgExpr) ValuesRead() []*Local        { return nil }
func (e *VarArgExpr) ValuesReadMut() []**Local    { return nil }
func (e *VarArgExpr) ValuesWritten() []*Local     { return nil }
func (e *VarArgExpr) ValuesWrittenMut() []**Local { return nil }
func (e *VarArgExpr) Children() []RValue          { return nil }
func (e *VarArgExpr) HasSideEffects() bool        { return true }
func (e *VarArgExpr) String() string              { return "..." }
