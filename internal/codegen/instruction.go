package codegen

import (
	"fmt"
	"strconv"
)

// Operand is the single argument of an instruction.
type Operand interface {
	fmt.Stringer
	isOperand()
}

type IntOperand int32

type LongOperand int64

type StringOperand string

// ScriptRef points at another script by key. ID stays -1 until the script is
// assigned one.
type ScriptRef struct {
	Trigger string
	Name    string
	ID      int32
}

// CommandRef is the operand of OpCommand.
type CommandRef struct {
	Name        string
	Opcode      int
	Alternative bool
}

func (IntOperand) isOperand()    {}
func (LongOperand) isOperand()   {}
func (StringOperand) isOperand() {}
func (*Local) isOperand()        {}
func (Label) isOperand()         {}
func (*SwitchTable) isOperand()  {}
func (ScriptRef) isOperand()     {}
func (CommandRef) isOperand()    {}

func (v IntOperand) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v LongOperand) String() string   { return strconv.FormatInt(int64(v), 10) + "L" }
func (v StringOperand) String() string { return strconv.Quote(string(v)) }

func (r ScriptRef) String() string {
	return "[" + r.Trigger + "," + r.Name + "]"
}

func (c CommandRef) String() string {
	if c.Alternative {
		return "." + c.Name
	}
	return c.Name
}

// Instruction is one opcode with its operand. Owner is the block holding it,
// nil while detached.
type Instruction struct {
	Op      Opcode
	Operand Operand
	Owner   *Block
}

func (in *Instruction) String() string {
	if in.Operand == nil {
		return in.Op.String()
	}
	return in.Op.String() + " " + in.Operand.String()
}

// Int returns the operand of an int push, ok=false for any other operand.
func (in *Instruction) Int() (int32, bool) {
	v, ok := in.Operand.(IntOperand)
	return int32(v), ok
}

// Long returns the operand of a long push.
func (in *Instruction) Long() (int64, bool) {
	v, ok := in.Operand.(LongOperand)
	return int64(v), ok
}

// Target returns the label operand of a branch.
func (in *Instruction) Target() (Label, bool) {
	l, ok := in.Operand.(Label)
	return l, ok
}

// Is reports whether the instruction has opcode op.
func (in *Instruction) Is(op Opcode) bool {
	return in != nil && in.Op == op
}
