package ast

import "fmt"

// IndexExpr is a table index `table[key]`, usable as both an RValue (read)
// and an LValue (the left side of `table[key] = value`).
type IndexExpr struct {
	Table RValue
	Key   RValue
}

func (e *IndexExpr) isLValue() {}

func (e *IndexExpr) ValuesRead() []*Local {
	return append(e.Table.ValuesRead(), e.Key.ValuesRead()...)
}

func (e *IndexExpr) ValuesReadMut() []**Local {
	return append(e.Table.ValuesReadMut(), e.Key.ValuesReadMut()...)
}

func (e *IndexExpr) ValuesWritten() []*Local {
	return append(e.Table.ValuesWritten(), e.Key.ValuesWritten()...)
}

func (e *IndexExpr) ValuesWrittenMut() []**Local {
	return append(e.Table.ValuesWrittenMut(), e.Key.ValuesWrittenMut()...)
}

func (e *IndexExpr) Children() []RValue { return []RValue{e.Table, e.Key} }

func (e *IndexExpr) HasSideEffects() bool {
	return e.Table.HasSideEffects() || e.Key.HasSideEffects()
}

func (e *IndexExpr) String() string {
	if key, ok := e.Key.(*LiteralExpr); ok {
		if s, ok := key.Value.(StringLiteral); ok && isIdentifier(s.Value) {
			return fmt.Sprintf("%s.%s", e.Table, s.Value)
		}
	}
	if s, ok := e.Key.(StringLiteral); ok && isIdentifier(s.Value) {
		return fmt.Sprintf("%s.%s", e.Table, s.Value)
	}
	return fmt.Sprintf("%s[%s]", e.Table, e.Key)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}
