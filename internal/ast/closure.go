package ast

import "strings"

// ClosureExpr embeds a fully lifted and structured nested function. By the
// time a ClosureExpr exists, its Body has already been through SSA
// destruction and structuring — recursive closure lifting never shares
// mutable state with the enclosing function.
type ClosureExpr struct {
	Parameters []*Local
	Body       Block
	Upvalues   []*Local
}

func (e *ClosureExpr) ValuesRead() []*Local        { return nil }
func (e *ClosureExpr) ValuesReadMut() []**Local    { return nil }
func (e *ClosureExpr) ValuesWritten() []*Local     { return nil }
func (e *ClosureExpr) ValuesWrittenMut() []**Local { return nil }
func (e *ClosureExpr) Children() []RValue          { return nil }
func (e *ClosureExpr) HasSideEffects() bool        { return false }

func (e *ClosureExpr) String() string {
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.String()
	}
	var sb strings.Builder
	sb.WriteString("function(")
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteString(")\n")
	sb.WriteString(indent(e.Body.String()))
	sb.WriteString("\nend")
	return sb.String()
}
