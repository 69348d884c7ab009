package optimize

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
)

// NaturalFlow drops a trailing BRANCH to the block emitted right after it.
type NaturalFlow struct{}

func (NaturalFlow) Name() string { return "natural-flow" }

func (NaturalFlow) Run(s *codegen.BinaryScript) int {
	n := 0
	for _, b := range s.Blocks.Blocks() {
		for {
			last := b.Last()
			if !last.Is(codegen.OpBranch) {
				break
			}
			if l, ok := last.Target(); !ok || !s.Blocks.IsNextTo(b.Label, l) {
				break
			}
			b.Remove(last)
			n++
		}
	}
	return n
}

// DeadBlock removes blocks nothing can reach: no label or switch case names
// them and the block before them does not fall through. The entry block
// always stays.
type DeadBlock struct{}

func (DeadBlock) Name() string { return "dead-block" }

func (DeadBlock) Run(s *codegen.BinaryScript) int {
	n := 0
	for {
		removed := sweep(s)
		if removed == 0 {
			break
		}
		n += removed
	}
	dropDeadTables(s)
	checkDangling(s)
	return n
}

// sweep removes one generation of dead blocks. References are counted over
// the blocks that survive, so a block kept alive only by a dead one goes in
// the next sweep.
func sweep(s *codegen.BinaryScript) int {
	refs := references(s)
	var dead []codegen.Label
	var prev *codegen.Block
	for _, b := range s.Blocks.Blocks() {
		if b.Label.IsEntry() || refs[b.Label.ID] > 0 || prev.FallsThrough() {
			prev = b
			continue
		}
		dead = append(dead, b.Label)
	}
	for _, l := range dead {
		s.Blocks.Remove(l)
	}
	return len(dead)
}

func checkDangling(s *codegen.BinaryScript) {
	retarget(s, func(l codegen.Label) codegen.Label {
		if !s.Blocks.Contains(l) {
			panic(codegen.Invariantf("%s references removed block %s", s.Name, l.Name))
		}
		return l
	})
}
