package typeinfer

import (
	"luadec/internal/ast"
)

// Infer walks a structured function body bottom-up, typing every local from
// its assignments and annotating each AssignTarget.Type in place. It never
// fails: an opaque or unobserved value simply types as Any.
func Infer(body *ast.Block) map[*ast.Local]Type {
	locals := make(map[*ast.Local]Type)
	walkBlock(body, locals)
	return locals
}

func walkBlock(b *ast.Block, locals map[*ast.Local]Type) {
	for _, stmt := range b.Statements {
		walkStmt(stmt, locals)
	}
}

func walkStmt(stmt ast.Statement, locals map[*ast.Local]Type) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		walkAssign(s, locals)
	case *ast.IfStmt:
		if s.Then != nil {
			walkBlock(s.Then, locals)
		}
		if s.Else != nil {
			walkBlock(s.Else, locals)
		}
	case *ast.NumericForStmt:
		typeOfLocal(s.Var, Primitive{Kind: KindNumber}, locals)
		walkBlock(&s.Body, locals)
	case *ast.GenericForStmt:
		for _, v := range s.Vars {
			typeOfLocal(v, Any{}, locals)
		}
		walkBlock(&s.Body, locals)
	case *ast.WhileStmt:
		walkBlock(&s.Body, locals)
	case *ast.RepeatStmt:
		walkBlock(&s.Body, locals)
	}
}

func walkAssign(s *ast.AssignStmt, locals map[*ast.Local]Type) {
	for i, target := range s.Left {
		local, ok := target.Target.(*ast.LocalExpr)
		if !ok {
			continue
		}
		var rhs Type = Any{}
		if i < len(s.Right) {
			rhs = typeOfRValue(s.Right[i], locals)
		}
		t := typeOfLocal(local.Local, rhs, locals)
		s.Left[i].Type = t.String()
	}
}

// typeOfLocal widens a local's current type with observed, monotonic once
// the first assignment has run.
func typeOfLocal(l *ast.Local, observed Type, locals map[*ast.Local]Type) Type {
	if existing, ok := locals[l]; ok {
		widened := existing.Widen(observed)
		locals[l] = widened
		return widened
	}
	locals[l] = observed
	return observed
}

func typeOfRValue(v ast.RValue, locals map[*ast.Local]Type) Type {
	switch e := v.(type) {
	case *ast.LiteralExpr:
		return typeOfLiteral(e.Value)
	case *ast.LocalExpr:
		if t, ok := locals[e.Local]; ok {
			return t
		}
		return Any{}
	case *ast.BinaryExpr:
		return typeOfBinary(e)
	case *ast.UnaryExpr:
		return typeOfUnary(e)
	case *ast.ConcatExpr:
		return Primitive{Kind: KindString}
	case *ast.TableExpr:
		return typeOfTable(e, locals)
	default:
		return Any{}
	}
}

func typeOfLiteral(l ast.Literal) Type {
	switch l.(type) {
	case ast.NilLiteral:
		return Primitive{Kind: KindNil}
	case ast.BoolLiteral:
		return Primitive{Kind: KindBoolean}
	case ast.NumberLiteral:
		return Primitive{Kind: KindNumber}
	case ast.StringLiteral:
		return Primitive{Kind: KindString}
	default:
		return Any{}
	}
}

func typeOfBinary(e *ast.BinaryExpr) Type {
	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return Primitive{Kind: KindNumber}
	case ast.OpEqual, ast.OpLessThan, ast.OpLessThanOrEqual, ast.OpAnd, ast.OpOr:
		return Primitive{Kind: KindBoolean}
	default:
		return Any{}
	}
}

func typeOfUnary(e *ast.UnaryExpr) Type {
	switch e.Op {
	case ast.OpNot:
		return Primitive{Kind: KindBoolean}
	case ast.OpNeg:
		return Primitive{Kind: KindNumber}
	case ast.OpLen:
		return Primitive{Kind: KindNumber}
	default:
		return Any{}
	}
}

func typeOfTable(e *ast.TableExpr, locals map[*ast.Local]Type) Type {
	t := Table{Fields: make(map[string]Type)}
	for _, f := range e.Fields {
		v := typeOfRValue(f.Value, locals)
		if f.Name != nil {
			t.Fields[*f.Name] = v
			continue
		}
		if t.Indexer == nil {
			t.Indexer = v
		} else {
			t.Indexer = t.Indexer.Widen(v)
		}
	}
	return t
}
