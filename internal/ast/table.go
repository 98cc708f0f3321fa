package ast

import "strings"

// TableField is one entry of a table constructor. Name is nil for a
// positional (array-part) entry.
type TableField struct {
	Name  *string
	Value RValue
}

// TableExpr is a table constructor `{ ... }`. The lifter places every named
// field folded from SetTable stores first, followed by the positional
// entries folded from SetList; named and positional entries are not
// interleaved by their order in the bytecode.
type TableExpr struct {
	Fields []TableField
}

func (e *TableExpr) ValuesRead() []*Local {
	var out []*Local
	for _, f := range e.Fields {
		out = append(out, f.Value.ValuesRead()...)
	}
	return out
}

func (e *TableExpr) ValuesReadMut() []**Local {
	var out []**Local
	for i := range e.Fields {
		out = append(out, e.Fields[i].Value.ValuesReadMut()...)
	}
	return out
}

func (e *TableExpr) ValuesWritten() []*Local {
	var out []*Local
	for _, f := range e.Fields {
		out = append(out, f.Value.ValuesWritten()...)
	}
	return out
}

func (e *TableExpr) ValuesWrittenMut() []**Local {
	var out []**Local
	for i := range e.Fields {
		out = append(out, e.Fields[i].Value.ValuesWrittenMut()...)
	}
	return out
}

func (e *TableExpr) Children() []RValue {
	out := make([]RValue, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Value
	}
	return out
}

// HasSideEffects is conservative: table construction itself is pure, but a
// field's value expression (e.g. a call) may not be.
func (e *TableExpr) HasSideEffects() bool {
	for _, f := range e.Fields {
		if f.Value.HasSideEffects() {
			return true
		}
	}
	return false
}

func (e *TableExpr) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Name != nil {
			parts[i] = *f.Name + " = " + f.Value.String()
		} else {
			parts[i] = f.Value.String()
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
