package codegen

import (
	"fmt"
	"slices"
)

// Block is a labelled run of instructions. Control enters only at the top.
type Block struct {
	Label        Label
	Instructions []*Instruction
}

// Add appends in and takes ownership of it. Adding an instruction that
// already belongs to a block is a programming error.
func (b *Block) Add(in *Instruction) {
	if in.Owner != nil {
		panic(Invariantf("instruction %s already belongs to block %s", in, in.Owner.Label))
	}
	b.Instructions = append(b.Instructions, in)
	in.Owner = b
}

// Remove detaches in from the block.
func (b *Block) Remove(in *Instruction) {
	if in.Owner != b {
		panic(Invariantf("instruction %s does not belong to block %s", in, b.Label))
	}
	i := slices.Index(b.Instructions, in)
	if i < 0 {
		panic(Invariantf("instruction %s missing from block %s", in, b.Label))
	}
	b.Instructions = slices.Delete(b.Instructions, i, i+1)
	in.Owner = nil
}

// Last returns the final instruction or nil for an empty block.
func (b *Block) Last() *Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	return b.Instructions[len(b.Instructions)-1]
}

// FallsThrough reports whether control may run off the end of the block.
func (b *Block) FallsThrough() bool {
	last := b.Last()
	return last == nil || !last.Op.Terminates()
}

// Terminated reports whether the block ends in a branch or return.
func (b *Block) Terminated() bool { return !b.FallsThrough() }

// BlockList keeps blocks in emission order with lookup by label.
type BlockList struct {
	order []*Block
	index map[int]*Block
}

func NewBlockList() *BlockList {
	return &BlockList{index: make(map[int]*Block)}
}

// Generate creates and appends an empty block for label.
func (l *BlockList) Generate(label Label) *Block {
	if _, dup := l.index[label.ID]; dup {
		panic(Invariantf("block %s generated twice", label))
	}
	b := &Block{Label: label}
	l.order = append(l.order, b)
	l.index[label.ID] = b
	return b
}

func (l *BlockList) Get(label Label) *Block { return l.index[label.ID] }

func (l *BlockList) Contains(label Label) bool {
	_, ok := l.index[label.ID]
	return ok
}

// Remove deletes the block with label, keeping the order of the rest.
func (l *BlockList) Remove(label Label) {
	b, ok := l.index[label.ID]
	if !ok {
		return
	}
	delete(l.index, label.ID)
	l.order = slices.DeleteFunc(l.order, func(x *Block) bool { return x == b })
}

// Blocks returns the blocks in emission order. The slice is shared.
func (l *BlockList) Blocks() []*Block { return l.order }

func (l *BlockList) Len() int { return len(l.order) }

// Entry returns the first block, nil for an empty list.
func (l *BlockList) Entry() *Block {
	if len(l.order) == 0 {
		return nil
	}
	return l.order[0]
}

// Next returns the block emitted right after label, nil at the end.
func (l *BlockList) Next(label Label) *Block {
	for i, b := range l.order {
		if b.Label.ID == label.ID {
			if i+1 < len(l.order) {
				return l.order[i+1]
			}
			return nil
		}
	}
	return nil
}

// IsNextTo reports whether next directly follows label in emission order.
func (l *BlockList) IsNextTo(label, next Label) bool {
	b := l.Next(label)
	return b != nil && b.Label.ID == next.ID
}

func (l *BlockList) String() string {
	return fmt.Sprintf("blocks=%d", len(l.order))
}
