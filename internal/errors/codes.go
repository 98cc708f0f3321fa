package errors

// Error code ranges, mirroring how the rest of this toolchain partitions its
// codes by concern:
//
// E1000-E1999: malformed bytecode (fatal)
// E2000-E2999: unsupported construct (fatal)
// E3000-E3999: irreducible CFG (non-fatal)
// E9000-E9999: internal invariant violation (fatal, indicates a bug)
const (
	CodeUnknownOpcode       = "E1001"
	CodeConstantOutOfRange  = "E1002"
	CodeTruncatedStream     = "E1003"
	CodeInvalidRegister     = "E1004"

	CodeUnsupportedSetList = "E2001"
	CodeUnsupportedOpcode  = "E2002"

	CodeIrreducibleCFG = "E3001"

	CodeInvariantViolation = "E9001"
)
