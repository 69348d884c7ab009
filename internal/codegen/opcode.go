package codegen

// Opcode is a core instruction of the target stack machine. Commands share
// the single OpCommand opcode and carry their own number in a CommandRef.
type Opcode uint8

const (
	OpInvalid Opcode = iota

	OpPushIntConstant
	OpPushStringConstant
	OpPushLongConstant

	OpPopIntDiscard
	OpPopStringDiscard
	OpPopLongDiscard

	OpPushIntLocal
	OpPushStringLocal
	OpPushLongLocal
	OpPopIntLocal
	OpPopStringLocal
	OpPopLongLocal

	OpPushVarp
	OpPushVarbit
	OpPushVarcInt
	OpPushVarcString
	OpPopVarp
	OpPopVarbit
	OpPopVarcInt
	OpPopVarcString

	OpDefineArray
	OpPushArrayInt
	OpPopArrayInt

	OpBranch
	OpBranchEquals
	OpBranchNot
	OpBranchLessThan
	OpBranchGreaterThan
	OpBranchLessThanOrEquals
	OpBranchGreaterThanOrEquals
	OpBranchIfTrue
	OpBranchIfFalse

	OpLongBranchEquals
	OpLongBranchNot
	OpLongBranchLessThan
	OpLongBranchGreaterThan
	OpLongBranchLessThanOrEquals
	OpLongBranchGreaterThanOrEquals

	OpStringBranchEquals
	OpStringBranchNot

	OpSwitch
	OpReturn
	OpJoinString
	OpGosubWithParams
	OpJumpWithParams

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr

	OpLongAdd
	OpLongSub
	OpLongMul
	OpLongDiv
	OpLongMod
	OpLongAnd
	OpLongOr

	OpCommand

	opcodeCount
)

type opcodeInfo struct {
	name string
	code int // номер по умолчанию, если instructions.toml его не задаёт
}

var opcodes = [opcodeCount]opcodeInfo{
	OpInvalid: {name: "invalid", code: -1},

	OpPushIntConstant:    {name: "push_int_constant", code: 0},
	OpPushStringConstant: {name: "push_string_constant", code: 3},
	OpPushLongConstant:   {name: "push_long_constant", code: 54},

	OpPopIntDiscard:    {name: "pop_int_discard", code: 38},
	OpPopStringDiscard: {name: "pop_string_discard", code: 39},
	OpPopLongDiscard:   {name: "pop_long_discard", code: 55},

	OpPushIntLocal:    {name: "push_int_local", code: 33},
	OpPushStringLocal: {name: "push_string_local", code: 35},
	OpPushLongLocal:   {name: "push_long_local", code: 66},
	OpPopIntLocal:     {name: "pop_int_local", code: 34},
	OpPopStringLocal:  {name: "pop_string_local", code: 36},
	OpPopLongLocal:    {name: "pop_long_local", code: 67},

	OpPushVarp:       {name: "push_varp", code: 1},
	OpPushVarbit:     {name: "push_varbit", code: 25},
	OpPushVarcInt:    {name: "push_varc_int", code: 42},
	OpPushVarcString: {name: "push_varc_string", code: 47},
	OpPopVarp:        {name: "pop_varp", code: 2},
	OpPopVarbit:      {name: "pop_varbit", code: 27},
	OpPopVarcInt:     {name: "pop_varc_int", code: 43},
	OpPopVarcString:  {name: "pop_varc_string", code: 48},

	OpDefineArray:  {name: "define_array", code: 44},
	OpPushArrayInt: {name: "push_array_int", code: 45},
	OpPopArrayInt:  {name: "pop_array_int", code: 46},

	OpBranch:                    {name: "branch", code: 6},
	OpBranchEquals:              {name: "branch_equals", code: 8},
	OpBranchNot:                 {name: "branch_not", code: 7},
	OpBranchLessThan:            {name: "branch_less_than", code: 9},
	OpBranchGreaterThan:         {name: "branch_greater_than", code: 10},
	OpBranchLessThanOrEquals:    {name: "branch_less_than_or_equals", code: 31},
	OpBranchGreaterThanOrEquals: {name: "branch_greater_than_or_equals", code: 32},
	OpBranchIfTrue:              {name: "branch_if_true", code: 86},
	OpBranchIfFalse:             {name: "branch_if_false", code: 87},

	OpLongBranchEquals:              {name: "long_branch_equals", code: 68},
	OpLongBranchNot:                 {name: "long_branch_not", code: 69},
	OpLongBranchLessThan:            {name: "long_branch_less_than", code: 70},
	OpLongBranchGreaterThan:         {name: "long_branch_greater_than", code: 71},
	OpLongBranchLessThanOrEquals:    {name: "long_branch_less_than_or_equals", code: 72},
	OpLongBranchGreaterThanOrEquals: {name: "long_branch_greater_than_or_equals", code: 73},

	OpStringBranchEquals: {name: "string_branch_equals", code: 74},
	OpStringBranchNot:    {name: "string_branch_not", code: 75},

	OpSwitch:          {name: "switch", code: 60},
	OpReturn:          {name: "return", code: 21},
	OpJoinString:      {name: "join_string", code: 37},
	OpGosubWithParams: {name: "gosub_with_params", code: 40},
	OpJumpWithParams:  {name: "jump_with_params", code: 41},

	OpAdd: {name: "add", code: 4000},
	OpSub: {name: "sub", code: 4001},
	OpMul: {name: "mul", code: 4002},
	OpDiv: {name: "div", code: 4003},
	OpMod: {name: "mod", code: 4011},
	OpAnd: {name: "and", code: 4014},
	OpOr:  {name: "or", code: 4015},

	OpLongAdd: {name: "long_add", code: 4100},
	OpLongSub: {name: "long_sub", code: 4101},
	OpLongMul: {name: "long_mul", code: 4102},
	OpLongDiv: {name: "long_div", code: 4103},
	OpLongMod: {name: "long_mod", code: 4111},
	OpLongAnd: {name: "long_and", code: 4114},
	OpLongOr:  {name: "long_or", code: 4115},

	OpCommand: {name: "command", code: -1},
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, opcodeCount)
	for op := OpInvalid + 1; op < opcodeCount; op++ {
		m[opcodes[op].name] = op
	}
	return m
}()

func (op Opcode) String() string {
	if op < opcodeCount {
		return opcodes[op].name
	}
	return "opcode(?)"
}

// DefaultCode returns the built-in numeric opcode, -1 for OpCommand whose
// number comes from the command itself.
func (op Opcode) DefaultCode() int {
	if op < opcodeCount {
		return opcodes[op].code
	}
	return -1
}

// LookupOpcode resolves a snake_case core opcode name such as
// "gosub_with_params".
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// Opcodes lists every core opcode in declaration order, OpCommand excluded.
func Opcodes() []Opcode {
	out := make([]Opcode, 0, opcodeCount)
	for op := OpInvalid + 1; op < OpCommand; op++ {
		out = append(out, op)
	}
	return out
}

// IsBranch reports whether op transfers control to a label operand.
func (op Opcode) IsBranch() bool {
	return op >= OpBranch && op <= OpStringBranchNot
}

// IsConditionalBranch reports a branch that may fall through.
func (op Opcode) IsConditionalBranch() bool {
	return op.IsBranch() && op != OpBranch
}

// Terminates reports whether control never continues past op in its block.
// SWITCH is not one: an unmatched key runs the inline default that follows.
func (op Opcode) Terminates() bool {
	return op == OpBranch || op == OpReturn
}
