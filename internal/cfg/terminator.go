package cfg

import (
	"fmt"

	"luadec/internal/ast"
)

// Terminator is the closed sum of ways a block can end: an unconditional
// jump, a two-way conditional branch, a return, or one of the two loop
// terminators the lifter installs directly from numeric/generic-for
// bytecode rather than synthesizing them later in the structurer.
type Terminator interface {
	// Targets returns every block this terminator can transfer control to,
	// in a stable order (branch-taken before fall-through where relevant).
	Targets() []BlockID
	// ReplaceTarget rewrites every occurrence of old to new. Used by the
	// structurer when splicing or removing blocks.
	ReplaceTarget(old, new BlockID)
	String() string
}

// Jump is an unconditional transfer to Target.
type Jump struct{ Target BlockID }

func (t *Jump) Targets() []BlockID { return []BlockID{t.Target} }
func (t *Jump) ReplaceTarget(old, new BlockID) {
	if t.Target == old {
		t.Target = new
	}
}
func (t *Jump) String() string { return fmt.Sprintf("jump %d", t.Target) }

// Conditional branches to Then when Cond is truthy, Else otherwise.
type Conditional struct {
	Cond ast.RValue
	Then BlockID
	Else BlockID
}

func (t *Conditional) Targets() []BlockID { return []BlockID{t.Then, t.Else} }
func (t *Conditional) ReplaceTarget(old, new BlockID) {
	if t.Then == old {
		t.Then = new
	}
	if t.Else == old {
		t.Else = new
	}
}
func (t *Conditional) String() string {
	return fmt.Sprintf("if %s then %d else %d", t.Cond.String(), t.Then, t.Else)
}

// Return ends the function, yielding Values. Variadic marks a call/vararg
// tail whose result count is not fixed at lift time.
type Return struct {
	Values   []ast.RValue
	Variadic bool
}

func (t *Return) Targets() []BlockID          { return nil }
func (t *Return) ReplaceTarget(old, new BlockID) {}
func (t *Return) String() string {
	parts := make([]string, len(t.Values))
	for i, v := range t.Values {
		parts[i] = v.String()
	}
	return fmt.Sprintf("return %v", parts)
}

// NumericForLoop is installed from a numeric-for prepare/iterate pair: Body
// is entered once per iteration, Done is the exit once the loop variable
// passes Limit.
type NumericForLoop struct {
	Var                *ast.Local
	Start, Limit, Step ast.RValue
	Body, Done         BlockID
}

func (t *NumericForLoop) Targets() []BlockID { return []BlockID{t.Body, t.Done} }
func (t *NumericForLoop) ReplaceTarget(old, new BlockID) {
	if t.Body == old {
		t.Body = new
	}
	if t.Done == old {
		t.Done = new
	}
}
func (t *NumericForLoop) String() string {
	return fmt.Sprintf("numfor %s -> body %d done %d", t.Var.String(), t.Body, t.Done)
}

// GenericForLoop is installed from a generic-for iterate instruction: Body
// runs with Vars bound from the iterator call's results, Done exits when the
// first result is nil.
type GenericForLoop struct {
	Vars       []*ast.Local
	Iterator   ast.RValue
	State      ast.RValue
	Control    ast.RValue
	Body, Done BlockID
}

func (t *GenericForLoop) Targets() []BlockID { return []BlockID{t.Body, t.Done} }
func (t *GenericForLoop) ReplaceTarget(old, new BlockID) {
	if t.Body == old {
		t.Body = new
	}
	if t.Done == old {
		t.Done = new
	}
}
func (t *GenericForLoop) String() string {
	return fmt.Sprintf("genfor -> body %d done %d", t.Body, t.Done)
}
