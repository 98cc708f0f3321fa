package ast

import "strings"

// Statement is any high-level statement: assignment, conditional, loop
// forms, return/break/continue, a bare call, or a comment.
type Statement interface {
	ValuesRead() []*Local
	ValuesReadMut() []**Local
	ValuesWritten() []*Local
	ValuesWrittenMut() []**Local
	Children() []RValue
	HasSideEffects() bool
	String() string
}

// AssignTarget pairs an LValue with an optional type annotation produced by
// type inference (empty when inference did not run or declined to annotate).
type AssignTarget struct {
	Target LValue
	Type   string
}

// AssignStmt is `left... = right...`, used for single and multiple
// assignments alike. String prefixes it with `local` only when every target
// is a local.
type AssignStmt struct {
	Left  []AssignTarget
	Right []RValue
}

func (s *AssignStmt) ValuesRead() []*Local {
	var out []*Local
	for _, l := range s.Left {
		if idx, ok := l.Target.(*IndexExpr); ok {
			out = append(out, idx.Table.ValuesRead()...)
			out = append(out, idx.Key.ValuesRead()...)
		}
	}
	for _, r := range s.Right {
		out = append(out, r.ValuesRead()...)
	}
	return out
}

func (s *AssignStmt) ValuesReadMut() []**Local {
	var out []**Local
	for i := range s.Left {
		if idx, ok := s.Left[i].Target.(*IndexExpr); ok {
			out = append(out, idx.Table.ValuesReadMut()...)
			out = append(out, idx.Key.ValuesReadMut()...)
		}
	}
	for i := range s.Right {
		out = append(out, s.Right[i].ValuesReadMut()...)
	}
	return out
}

func (s *AssignStmt) ValuesWritten() []*Local {
	var out []*Local
	for _, l := range s.Left {
		if local, ok := l.Target.(*LocalExpr); ok {
			out = append(out, local.Local)
		}
	}
	return out
}

func (s *AssignStmt) ValuesWrittenMut() []**Local {
	var out []**Local
	for i := range s.Left {
		if local, ok := s.Left[i].Target.(*LocalExpr); ok {
			out = append(out, &local.Local)
		}
	}
	return out
}

func (s *AssignStmt) Children() []RValue {
	out := make([]RValue, 0, len(s.Left)+len(s.Right))
	for _, l := range s.Left {
		out = append(out, l.Target)
	}
	return append(out, s.Right...)
}

func (s *AssignStmt) HasSideEffects() bool {
	for _, l := range s.Left {
		if _, ok := l.Target.(*LocalExpr); !ok {
			return true
		}
	}
	for _, r := range s.Right {
		if r.HasSideEffects() {
			return true
		}
	}
	return false
}

func (s *AssignStmt) String() string {
	left := make([]string, len(s.Left))
	for i, l := range s.Left {
		if l.Type != "" {
			left[i] = l.Target.String() + ": " + l.Type
		} else {
			left[i] = l.Target.String()
		}
	}
	right := make([]string, len(s.Right))
	for i, r := range s.Right {
		right[i] = r.String()
	}
	prefix := "local "
	for _, l := range s.Left {
		if _, ok := l.Target.(*LocalExpr); !ok {
			prefix = ""
			break
		}
	}
	return prefix + strings.Join(left, ", ") + " = " + strings.Join(right, ", ")
}

// IfStmt is a one- or two-armed conditional. Either branch may be nil.
type IfStmt struct {
	Condition RValue
	Then      *Block
	Else      *Block
}

func (s *IfStmt) ValuesRead() []*Local      { return s.Condition.ValuesRead() }
func (s *IfStmt) ValuesReadMut() []**Local  { return s.Condition.ValuesReadMut() }
func (s *IfStmt) ValuesWritten() []*Local   { return nil }
func (s *IfStmt) ValuesWrittenMut() []**Local { return nil }
func (s *IfStmt) Children() []RValue        { return []RValue{s.Condition} }
func (s *IfStmt) HasSideEffects() bool      { return s.Condition.HasSideEffects() }

func (s *IfStmt) String() string {
	var sb strings.Builder
	sb.WriteString("if ")
	sb.WriteString(s.Condition.String())
	sb.WriteString(" then\n")
	if s.Then != nil {
		sb.WriteString(indent(s.Then.String()))
		sb.WriteString("\n")
	}
	if s.Else != nil {
		sb.WriteString("else\n")
		sb.WriteString(indent(s.Else.String()))
		sb.WriteString("\n")
	}
	sb.WriteString("end")
	return sb.String()
}

// NumericForStmt is `for var = start, limit[, step] do body end`.
type NumericForStmt struct {
	Var                *Local
	Start, Limit, Step RValue
	Body               Block
}

func (s *NumericForStmt) ValuesRead() []*Local {
	out := append([]*Local{}, s.Start.ValuesRead()...)
	out = append(out, s.Limit.ValuesRead()...)
	if s.Step != nil {
		out = append(out, s.Step.ValuesRead()...)
	}
	return out
}
func (s *NumericForStmt) ValuesReadMut() []**Local {
	out := append([]**Local{}, s.Start.ValuesReadMut()...)
	out = append(out, s.Limit.ValuesReadMut()...)
	if s.Step != nil {
		out = append(out, s.Step.ValuesReadMut()...)
	}
	return out
}
func (s *NumericForStmt) ValuesWritten() []*Local     { return []*Local{s.Var} }
func (s *NumericForStmt) ValuesWrittenMut() []**Local { return []**Local{&s.Var} }
func (s *NumericForStmt) Children() []RValue {
	children := []RValue{s.Start, s.Limit}
	if s.Step != nil {
		children = append(children, s.Step)
	}
	return children
}
func (s *NumericForStmt) HasSideEffects() bool { return true }

func (s *NumericForStmt) String() string {
	var sb strings.Builder
	sb.WriteString("for ")
	sb.WriteString(s.Var.String())
	sb.WriteString(" = ")
	sb.WriteString(s.Start.String())
	sb.WriteString(", ")
	sb.WriteString(s.Limit.String())
	if s.Step != nil {
		sb.WriteString(", ")
		sb.WriteString(s.Step.String())
	}
	sb.WriteString(" do\n")
	sb.WriteString(indent(s.Body.String()))
	sb.WriteString("\nend")
	return sb.String()
}

// GenericForStmt is `for vars... in exprs... do body end`.
type GenericForStmt struct {
	Vars  []*Local
	Exprs []RValue
	Body  Block
}

func (s *GenericForStmt) ValuesRead() []*Local {
	var out []*Local
	for _, e := range s.Exprs {
		out = append(out, e.ValuesRead()...)
	}
	return out
}
func (s *GenericForStmt) ValuesReadMut() []**Local {
	var out []**Local
	for i := range s.Exprs {
		out = append(out, s.Exprs[i].ValuesReadMut()...)
	}
	return out
}
func (s *GenericForStmt) ValuesWritten() []*Local { return s.Vars }
func (s *GenericForStmt) ValuesWrittenMut() []**Local {
	out := make([]**Local, len(s.Vars))
	for i := range s.Vars {
		out[i] = &s.Vars[i]
	}
	return out
}
func (s *GenericForStmt) Children() []RValue   { return s.Exprs }
func (s *GenericForStmt) HasSideEffects() bool { return true }

func (s *GenericForStmt) String() string {
	vars := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		vars[i] = v.String()
	}
	exprs := make([]string, len(s.Exprs))
	for i, e := range s.Exprs {
		exprs[i] = e.String()
	}
	var sb strings.Builder
	sb.WriteString("for ")
	sb.WriteString(strings.Join(vars, ", "))
	sb.WriteString(" in ")
	sb.WriteString(strings.Join(exprs, ", "))
	sb.WriteString(" do\n")
	sb.WriteString(indent(s.Body.String()))
	sb.WriteString("\nend")
	return sb.String()
}

// WhileStmt is `while cond do body end`.
type WhileStmt struct {
	Condition RValue
	Body      Block
}

func (s *WhileStmt) ValuesRead() []*Local          { return s.Condition.ValuesRead() }
func (s *WhileStmt) ValuesReadMut() []**Local      { return s.Condition.ValuesReadMut() }
func (s *WhileStmt) ValuesWritten() []*Local       { return nil }
func (s *WhileStmt) ValuesWrittenMut() []**Local   { return nil }
func (s *WhileStmt) Children() []RValue            { return []RValue{s.Condition} }
func (s *WhileStmt) HasSideEffects() bool          { return true }

func (s *WhileStmt) String() string {
	var sb strings.Builder
	sb.WriteString("while ")
	sb.WriteString(s.Condition.String())
	sb.WriteString(" do\n")
	sb.WriteString(indent(s.Body.String()))
	sb.WriteString("\nend")
	return sb.String()
}

// RepeatStmt is `repeat body until cond` — the condition can read locals
// declared in Body, matching Lua's scoping rule for repeat/until.
type RepeatStmt struct {
	Body      Block
	Condition RValue
}

func (s *RepeatStmt) ValuesRead() []*Local          { return s.Condition.ValuesRead() }
func (s *RepeatStmt) ValuesReadMut() []**Local      { return s.Condition.ValuesReadMut() }
func (s *RepeatStmt) ValuesWritten() []*Local       { return nil }
func (s *RepeatStmt) ValuesWrittenMut() []**Local   { return nil }
func (s *RepeatStmt) Children() []RValue            { return []RValue{s.Condition} }
func (s *RepeatStmt) HasSideEffects() bool          { return true }

func (s *RepeatStmt) String() string {
	var sb strings.Builder
	sb.WriteString("repeat\n")
	sb.WriteString(indent(s.Body.String()))
	sb.WriteString("\nuntil ")
	sb.WriteString(s.Condition.String())
	return sb.String()
}

// ReturnStmt returns zero or more values.
type ReturnStmt struct{ Values []RValue }

func (s *ReturnStmt) ValuesRead() []*Local {
	var out []*Local
	for _, v := range s.Values {
		out = append(out, v.ValuesRead()...)
	}
	return out
}
func (s *ReturnStmt) ValuesReadMut() []**Local {
	var out []**Local
	for i := range s.Values {
		out = append(out, s.Values[i].ValuesReadMut()...)
	}
	return out
}
func (s *ReturnStmt) ValuesWritten() []*Local     { return nil }
func (s *ReturnStmt) ValuesWrittenMut() []**Local { return nil }
func (s *ReturnStmt) Children() []RValue          { return s.Values }
func (s *ReturnStmt) HasSideEffects() bool        { return true }

func (s *ReturnStmt) String() string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = v.String()
	}
	if len(parts) == 0 {
		return "return"
	}
	return "return " + strings.Join(parts, ", ")
}

// BreakStmt exits the nearest enclosing loop.
type BreakStmt struct{}

func (BreakStmt) ValuesRead() []*Local        { return nil }
func (BreakStmt) ValuesReadMut() []**Local    { return nil }
func (BreakStmt) ValuesWritten() []*Local     { return nil }
func (BreakStmt) ValuesWrittenMut() []**Local { return nil }
func (BreakStmt) Children() []RValue          { return nil }
func (BreakStmt) HasSideEffects() bool        { return true }
func (BreakStmt) String() string              { return "break" }

// ContinueStmt jumps to the next iteration of the nearest enclosing loop.
// Lua itself has no `continue` keyword; the structurer emits this when a
// loop has an exit edge back to its own header guarded by nothing else, and
// the printer is expected to lower it to a goto or restructure the test.
type ContinueStmt struct{}

func (ContinueStmt) ValuesRead() []*Local        { return nil }
func (ContinueStmt) ValuesReadMut() []**Local    { return nil }
func (ContinueStmt) ValuesWritten() []*Local     { return nil }
func (ContinueStmt) ValuesWrittenMut() []**Local { return nil }
func (ContinueStmt) Children() []RValue          { return nil }
func (ContinueStmt) HasSideEffects() bool        { return true }
func (ContinueStmt) String() string              { return "continue" }

// CallStmt is a call used as a bare statement (its results, if any, are
// discarded).
type CallStmt struct{ Call *CallExpr }

func (s *CallStmt) ValuesRead() []*Local        { return s.Call.ValuesRead() }
func (s *CallStmt) ValuesReadMut() []**Local    { return s.Call.ValuesReadMut() }
func (s *CallStmt) ValuesWritten() []*Local     { return nil }
func (s *CallStmt) ValuesWrittenMut() []**Local { return nil }
func (s *CallStmt) Children() []RValue          { return []RValue{s.Call} }
func (s *CallStmt) HasSideEffects() bool        { return true }
func (s *CallStmt) String() string              { return s.Call.String() }

// CommentStmt carries diagnostic text for an opcode the lifter could not
// translate, or a structuring marker (e.g. "-- unstructured: N nodes"). It
// is never emitted as executable output and is always side-effect free so
// that short-circuit folding may treat a comment-only block as a no-op.
type CommentStmt struct{ Text string }

func (CommentStmt) ValuesRead() []*Local        { return nil }
func (CommentStmt) ValuesReadMut() []**Local    { return nil }
func (CommentStmt) ValuesWritten() []*Local     { return nil }
func (CommentStmt) ValuesWrittenMut() []**Local { return nil }
func (CommentStmt) Children() []RValue          { return nil }
func (CommentStmt) HasSideEffects() bool        { return false }
func (s CommentStmt) String() string            { return "-- " + s.Text }

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
