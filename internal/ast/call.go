package ast

import "strings"

// CallExpr is a function call `callee(args...)`. Calls are always treated as
// side-effecting and potentially multi-valued: the lifter decides, from the
// bytecode's declared return count, whether a call is embedded as a single
// RValue, assigned into several locals, or used as a bare statement.
type CallExpr struct {
	Callee RValue
	Args   []RValue
}

func (e *CallExpr) ValuesRead() []*Local {
	out := append([]*Local{}, e.Callee.ValuesRead()...)
	for _, a := range e.Args {
		out = append(out, a.ValuesRead()...)
	}
	return out
}

func (e *CallExpr) ValuesReadMut() []**Local {
	out := append([]**Local{}, e.Callee.ValuesReadMut()...)
	for _, a := range e.Args {
		out = append(out, a.ValuesReadMut()...)
	}
	return out
}

func (e *CallExpr) ValuesWritten() []*Local {
	out := append([]*Local{}, e.Callee.ValuesWritten()...)
	for _, a := range e.Args {
		out = append(out, a.ValuesWritten()...)
	}
	return out
}

func (e *CallExpr) ValuesWrittenMut() []**Local {
	out := append([]**Local{}, e.Callee.ValuesWrittenMut()...)
	for _, a := range e.Args {
		out = append(out, a.ValuesWrittenMut()...)
	}
	return out
}

func (e *CallExpr) Children() []RValue {
	return append([]RValue{e.Callee}, e.Args...)
}

func (e *CallExpr) HasSideEffects() bool { return true }

func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}
