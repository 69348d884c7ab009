package project

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
)

// Instruction is the numeric encoding of one core opcode. Large marks an
// operand written in the wide form.
type Instruction struct {
	Code  int
	Large bool
}

// InstructionMap resolves core opcodes to their numbers. Opcodes that the
// table does not list keep the built-in numbering.
type InstructionMap struct {
	codes map[codegen.Opcode]Instruction
}

func (m *InstructionMap) set(op codegen.Opcode, in Instruction) {
	if m.codes == nil {
		m.codes = make(map[codegen.Opcode]Instruction)
	}
	m.codes[op] = in
}

// Lookup returns the encoding of op and whether the table defined it.
func (m InstructionMap) Lookup(op codegen.Opcode) (Instruction, bool) {
	if in, ok := m.codes[op]; ok {
		return in, true
	}
	return Instruction{Code: op.DefaultCode()}, false
}

// Code is Lookup without the flag.
func (m InstructionMap) Code(op codegen.Opcode) int {
	in, _ := m.Lookup(op)
	return in.Code
}

func (m InstructionMap) Len() int { return len(m.codes) }
