package ast

import "fmt"

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpAnd
	OpOr
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd:                "+",
	OpSub:                "-",
	OpMul:                "*",
	OpDiv:                "/",
	OpMod:                "%",
	OpPow:                "^",
	OpEqual:              "==",
	OpNotEqual:           "~=",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
	OpAnd:                "and",
	OpOr:                 "or",
}

func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// BinaryExpr is `lhs op rhs`. Built either directly from an arithmetic or
// comparison opcode, or synthesized by the structurer when folding a
// short-circuit compound conditional into `and`/`or`.
type BinaryExpr struct {
	Op       BinaryOp
	LHS, RHS RValue
}

func (e *BinaryExpr) ValuesRead() []*Local {
	return append(e.LHS.ValuesRead(), e.RHS.ValuesRead()...)
}

func (e *BinaryExpr) ValuesReadMut() []**Local {
	return append(e.LHS.ValuesReadMut(), e.RHS.ValuesReadMut()...)
}

func (e *BinaryExpr) ValuesWritten() []*Local {
	return append(e.LHS.ValuesWritten(), e.RHS.ValuesWritten()...)
}

func (e *BinaryExpr) ValuesWrittenMut() []**Local {
	return append(e.LHS.ValuesWrittenMut(), e.RHS.ValuesWrittenMut()...)
}

func (e *BinaryExpr) Children() []RValue { return []RValue{e.LHS, e.RHS} }

func (e *BinaryExpr) HasSideEffects() bool {
	return e.LHS.HasSideEffects() || e.RHS.HasSideEffects()
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", e.LHS, e.Op, e.RHS)
}

// UnaryOp is a unary operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpLen
)

var unaryOpSymbols = map[UnaryOp]string{OpNot: "not ", OpNeg: "-", OpLen: "#"}

func (op UnaryOp) String() string { return unaryOpSymbols[op] }

// UnaryExpr is `op value`.
type UnaryExpr struct {
	Op    UnaryOp
	Value RValue
}

func (e *UnaryExpr) ValuesRead() []*Local          { return e.Value.ValuesRead() }
func (e *UnaryExpr) ValuesReadMut() []**Local      { return e.Value.ValuesReadMut() }
func (e *UnaryExpr) ValuesWritten() []*Local       { return e.Value.ValuesWritten() }
func (e *UnaryExpr) ValuesWrittenMut() []**Local   { return e.Value.ValuesWrittenMut() }
func (e *UnaryExpr) Children() []RValue            { return []RValue{e.Value} }
func (e *UnaryExpr) HasSideEffects() bool          { return e.Value.HasSideEffects() }
func (e *UnaryExpr) String() string                { return fmt.Sprintf("%s%s", e.Op, e.Value) }
