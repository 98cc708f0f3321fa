package bytecode

// Op names the opcode family an Instruction belongs to. The field layout
// below is a superset sized to whichever fields a given Op actually uses;
// unused fields are zero.
type Op string

const (
	OpMove                   Op = "Move"
	OpLoadConstant           Op = "LoadConstant"
	OpLoadBoolean            Op = "LoadBoolean"
	OpLoadNil                Op = "LoadNil"
	OpGetGlobal              Op = "GetGlobal"
	OpSetGlobal              Op = "SetGlobal"
	OpGetUpvalue             Op = "GetUpvalue"
	OpSetUpvalue             Op = "SetUpvalue"
	OpGetTable               Op = "GetTable"
	OpSetTable               Op = "SetTable"
	OpNewTable               Op = "NewTable"
	OpSetList                Op = "SetList"
	OpAdd                    Op = "Add"
	OpSub                    Op = "Sub"
	OpMul                    Op = "Mul"
	OpDiv                    Op = "Div"
	OpMod                    Op = "Mod"
	OpPow                    Op = "Pow"
	OpNot                    Op = "Not"
	OpNeg                    Op = "Neg"
	OpLen                    Op = "Len"
	OpConcat                 Op = "Concat"
	OpCall                   Op = "Call"
	OpReturn                 Op = "Return"
	OpEqual                  Op = "Equal"
	OpLessThan               Op = "LessThan"
	OpLessThanOrEqual        Op = "LessThanOrEqual"
	OpTest                   Op = "Test"
	OpTestSet                Op = "TestSet"
	OpJump                   Op = "Jump"
	OpClosure                Op = "Closure"
	OpCapture                Op = "Capture"
	OpFastCall               Op = "FastCall"
	OpPrepareNumericForLoop  Op = "PrepareNumericForLoop"
	OpIterateNumericForLoop  Op = "IterateNumericForLoop"
	OpPrepareGenericForLoop  Op = "PrepareGenericForLoop"
	OpIterateGenericForLoop  Op = "IterateGenericForLoop"
	OpVarArg                 Op = "VarArg"
)

// JumpBias is the signed-jump bias of the studied VM: an effective jump
// target is InstructionIndex + Step - JumpBias.
const JumpBias = 131070

// Instruction is one decoded bytecode instruction. It is a flat struct
// rather than a tagged union because the JSON producer boundary emits flat
// objects with an "op" discriminator; internal/lifter is what gives each Op
// its narrow, typed meaning.
type Instruction struct {
	Op Op `json:"op"`

	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`

	// Const indexes into the owning Function's Constants pool.
	Const int `json:"const,omitempty"`

	// Step is a signed, biased jump offset (see JumpBias).
	Step int `json:"step,omitempty"`

	// SkipNext is LoadBoolean's "skip the next instruction" flag.
	SkipNext bool `json:"skipNext,omitempty"`

	// Variadic marks Return/Call instructions whose argument or result
	// count is not fixed (nargs/nret encode -1 in the source VM).
	Variadic bool `json:"variadic,omitempty"`

	// AuxCount resolves SetList's block_number == 0 overflow encoding: the
	// true element count, carried by the following raw instruction word in
	// the source format and surfaced here by the decoder instead.
	AuxCount int `json:"auxCount,omitempty"`

	// Upvalues lists capture descriptors for a Closure instruction (Luau's
	// Capture form folded in by the decoder): each entry is either a parent
	// register or a parent upvalue index, tagged by FromStack.
	Upvalues []UpvalueCapture `json:"upvalues,omitempty"`
}

// UpvalueCapture describes one upvalue a nested closure captures from its
// parent at the point the Closure instruction executes.
type UpvalueCapture struct {
	Index     int  `json:"index"`
	FromStack bool `json:"fromStack"`
}

// Function is one decoded compiled function: the producer boundary named in
// the external-interfaces contract. It decodes from JSON so the lifter and
// its tests have a concrete artifact to exercise without a real bytecode
// chunk parser, which remains out of scope.
type Function struct {
	Code          []Instruction `json:"code"`
	Constants     []Value       `json:"constants"`
	Upvalues      []string      `json:"upvalues"`
	Closures      []*Function   `json:"closures"`
	MaxStackSize  int           `json:"maxStackSize"`
	NumParameters int           `json:"numParameters"`
	IsVararg      bool          `json:"isVararg"`
}
