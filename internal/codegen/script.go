package codegen

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
)

// BinaryScript is the generated form of one script.
type BinaryScript struct {
	Extension string
	Name      string // "[trigger,name]"
	Blocks    *BlockList
	Locals    Locals
	Switches  []*SwitchTable
	Arrays    int
	Info      symbols.Script
}

// Instructions counts the instructions of every block.
func (s *BinaryScript) Instructions() int {
	n := 0
	for _, b := range s.Blocks.Blocks() {
		n += len(b.Instructions)
	}
	return n
}

// Each calls fn for every instruction in emission order.
func (s *BinaryScript) Each(fn func(*Block, *Instruction)) {
	for _, b := range s.Blocks.Blocks() {
		for _, in := range b.Instructions {
			fn(b, in)
		}
	}
}
