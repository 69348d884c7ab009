package optimize

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
)

// ConstantFolding evaluates arithmetic and branch compares whose two operands
// are immediate pushes. Division and modulo by zero are left for the runtime.
type ConstantFolding struct{}

func (ConstantFolding) Name() string { return "constant-folding" }

func (ConstantFolding) Run(s *codegen.BinaryScript) int {
	n := 0
	for _, b := range s.Blocks.Blocks() {
		for foldOnce(b) {
			n++
		}
	}
	return n
}

func foldOnce(b *codegen.Block) bool {
	ins := b.Instructions
	for i := 2; i < len(ins); i++ {
		x, y, op := ins[i-2], ins[i-1], ins[i]
		if xi, ok := intPush(x); ok {
			yi, ok := intPush(y)
			if !ok {
				continue
			}
			if v, ok := foldInt(op.Op, xi, yi); ok {
				replace(b, x, y, op, codegen.OpPushIntConstant, codegen.IntOperand(v))
				return true
			}
			if taken, ok := compareInt(op.Op, xi, yi); ok {
				settle(b, x, y, op, taken)
				return true
			}
			continue
		}
		if xl, ok := longPush(x); ok {
			yl, ok := longPush(y)
			if !ok {
				continue
			}
			if v, ok := foldLong(op.Op, xl, yl); ok {
				replace(b, x, y, op, codegen.OpPushLongConstant, codegen.LongOperand(v))
				return true
			}
			if taken, ok := compareLong(op.Op, xl, yl); ok {
				settle(b, x, y, op, taken)
				return true
			}
		}
	}
	return false
}

// intPush matches PUSH_INT_CONSTANT with a numeric operand. Hook script
// references share the opcode and are not foldable.
func intPush(in *codegen.Instruction) (int32, bool) {
	if !in.Is(codegen.OpPushIntConstant) {
		return 0, false
	}
	return in.Int()
}

func longPush(in *codegen.Instruction) (int64, bool) {
	if !in.Is(codegen.OpPushLongConstant) {
		return 0, false
	}
	return in.Long()
}

// replace turns the operator into a push of the folded value and drops both
// operand pushes.
func replace(b *codegen.Block, x, y, op *codegen.Instruction, push codegen.Opcode, v codegen.Operand) {
	b.Remove(x)
	b.Remove(y)
	op.Op = push
	op.Operand = v
}

// settle resolves a compare that is known at compile time: taken keeps an
// unconditional BRANCH to the same label, otherwise the compare disappears.
func settle(b *codegen.Block, x, y, op *codegen.Instruction, taken bool) {
	b.Remove(x)
	b.Remove(y)
	if taken {
		op.Op = codegen.OpBranch
		return
	}
	b.Remove(op)
}

func foldInt(op codegen.Opcode, a, b int32) (int32, bool) {
	switch op {
	case codegen.OpAdd:
		return a + b, true
	case codegen.OpSub:
		return a - b, true
	case codegen.OpMul:
		return a * b, true
	case codegen.OpDiv:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case codegen.OpMod:
		if b == 0 {
			return 0, false
		}
		return a % b, true
	case codegen.OpAnd:
		return a & b, true
	case codegen.OpOr:
		return a | b, true
	}
	return 0, false
}

func foldLong(op codegen.Opcode, a, b int64) (int64, bool) {
	switch op {
	case codegen.OpLongAdd:
		return a + b, true
	case codegen.OpLongSub:
		return a - b, true
	case codegen.OpLongMul:
		return a * b, true
	case codegen.OpLongDiv:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case codegen.OpLongMod:
		if b == 0 {
			return 0, false
		}
		return a % b, true
	case codegen.OpLongAnd:
		return a & b, true
	case codegen.OpLongOr:
		return a | b, true
	}
	return 0, false
}

func compareInt(op codegen.Opcode, a, b int32) (bool, bool) {
	switch op {
	case codegen.OpBranchEquals:
		return a == b, true
	case codegen.OpBranchNot:
		return a != b, true
	case codegen.OpBranchLessThan:
		return a < b, true
	case codegen.OpBranchGreaterThan:
		return a > b, true
	case codegen.OpBranchLessThanOrEquals:
		return a <= b, true
	case codegen.OpBranchGreaterThanOrEquals:
		return a >= b, true
	}
	return false, false
}

func compareLong(op codegen.Opcode, a, b int64) (bool, bool) {
	switch op {
	case codegen.OpLongBranchEquals:
		return a == b, true
	case codegen.OpLongBranchNot:
		return a != b, true
	case codegen.OpLongBranchLessThan:
		return a < b, true
	case codegen.OpLongBranchGreaterThan:
		return a > b, true
	case codegen.OpLongBranchLessThanOrEquals:
		return a <= b, true
	case codegen.OpLongBranchGreaterThanOrEquals:
		return a >= b, true
	}
	return false, false
}
