package ast

import "strings"

// ConcatExpr is the concatenation of a contiguous register range, `r[lo] ..
// r[lo+1] .. ... .. r[hi]`.
type ConcatExpr struct {
	Parts []RValue
}

func (e *ConcatExpr) ValuesRead() []*Local {
	var out []*Local
	for _, p := range e.Parts {
		out = append(out, p.ValuesRead()...)
	}
	return out
}

func (e *ConcatExpr) ValuesReadMut() []**Local {
	var out []**Local
	for _, p := range e.Parts {
		out = append(out, p.ValuesReadMut()...)
	}
	return out
}

func (e *ConcatExpr) ValuesWritten() []*Local {
	var out []*Local
	for _, p := range e.Parts {
		out = append(out, p.ValuesWritten()...)
	}
	return out
}

func (e *ConcatExpr) ValuesWrittenMut() []**Local {
	var out []**Local
	for _, p := range e.Parts {
		out = append(out, p.ValuesWrittenMut()...)
	}
	return out
}

func (e *ConcatExpr) Children() []RValue { return e.Parts }

func (e *ConcatExpr) HasSideEffects() bool {
	for _, p := range e.Parts {
		if p.HasSideEffects() {
			return true
		}
	}
	return false
}

func (e *ConcatExpr) String() string {
	parts := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " .. ")
}
