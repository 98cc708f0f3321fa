package errors

import "fmt"

// Kind classifies a decompiler error per the four kinds this toolchain
// distinguishes: only KindIrreducible is non-fatal.
type Kind int

const (
	KindMalformed Kind = iota
	KindUnsupported
	KindIrreducible
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed bytecode"
	case KindUnsupported:
		return "unsupported construct"
	case KindIrreducible:
		return "irreducible CFG"
	case KindInternal:
		return "internal error"
	default:
		return "error"
	}
}

// Fatal reports whether an error of this kind should abort the pipeline.
// KindIrreducible is the sole non-fatal kind: the structurer finishes and
// emits partial output alongside the error.
func (k Kind) Fatal() bool { return k != KindIrreducible }

// Error is a structured, coded decompiler diagnostic carrying enough context
// to point at the offending instruction without requiring access to
// original source text (there is none — the input is already bytecode).
type Error struct {
	Kind   Kind
	Code   string
	Msg    string
	Offset int // index into the owning function's instruction stream, or -1
	Cause  error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s[%s]: %s (at instruction %d)", e.Kind, e.Code, e.Msg, e.Offset)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Malformed reports bytecode that is structurally invalid — unknown opcode,
// out-of-range constant, truncated stream.
func Malformed(code, msg string, offset int) *Error {
	return &Error{Kind: KindMalformed, Code: code, Msg: msg, Offset: offset}
}

// Unsupported reports a construct the lifter recognizes but declines to
// translate.
func Unsupported(code, msg string, offset int) *Error {
	return &Error{Kind: KindUnsupported, Code: code, Msg: msg, Offset: offset}
}

// Irreducible reports a CFG the structurer could not fully reduce. It is
// non-fatal: callers still get the partially structured AST.
func Irreducible(remaining int) *Error {
	return &Error{Kind: KindIrreducible, Code: CodeIrreducibleCFG, Msg: fmt.Sprintf("%d node(s) remained unstructured", remaining), Offset: -1}
}

// Internal wraps a cause that indicates a bug in the decompiler itself
// rather than a problem with the input.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInvariantViolation, Msg: msg, Offset: -1, Cause: cause}
}
