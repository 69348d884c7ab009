package optimize

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
)

// DeadBranch settles branches on constant booleans, drops instructions that
// follow an unconditional transfer, and collapses chains of blocks that only
// branch onward.
type DeadBranch struct{}

func (DeadBranch) Name() string { return "dead-branch" }

func (DeadBranch) Run(s *codegen.BinaryScript) int {
	n := 0
	for _, b := range s.Blocks.Blocks() {
		n += constantConditions(b)
		n += truncate(b)
	}
	ends := chainEnds(s.Blocks)
	n += retarget(s, func(l codegen.Label) codegen.Label {
		if to, ok := ends[l.ID]; ok {
			return to
		}
		return l
	})
	return n
}

// constantConditions rewrites `PUSH_INT_CONSTANT c; BRANCH_IF_TRUE L` and its
// BRANCH_IF_FALSE twin.
func constantConditions(b *codegen.Block) int {
	n := 0
	for i := 1; i < len(b.Instructions); i++ {
		push, br := b.Instructions[i-1], b.Instructions[i]
		if !br.Is(codegen.OpBranchIfTrue) && !br.Is(codegen.OpBranchIfFalse) {
			continue
		}
		c, ok := intPush(push)
		if !ok {
			continue
		}
		taken := (c != 0) == br.Is(codegen.OpBranchIfTrue)
		b.Remove(push)
		if taken {
			br.Op = codegen.OpBranch
		} else {
			b.Remove(br)
		}
		n++
		i = 0
	}
	return n
}

func truncate(b *codegen.Block) int {
	for i, in := range b.Instructions {
		if !in.Op.Terminates() {
			continue
		}
		dead := b.Instructions[i+1:]
		n := len(dead)
		for len(b.Instructions) > i+1 {
			b.Remove(b.Instructions[len(b.Instructions)-1])
		}
		return n
	}
	return 0
}

// chainEnds maps every block to where its run of BRANCH-only blocks ends.
// All ends are computed before any branch is rewritten.
func chainEnds(blocks *codegen.BlockList) map[int]codegen.Label {
	ends := make(map[int]codegen.Label, blocks.Len())
	for _, b := range blocks.Blocks() {
		ends[b.Label.ID] = chainEnd(blocks, b.Label)
	}
	return ends
}

// chainEnd follows BRANCH-only blocks from l. A run that closes into a cycle
// ends at the cycle member with the lowest label id, whichever member the
// walk entered first.
func chainEnd(blocks *codegen.BlockList, l codegen.Label) codegen.Label {
	path := []codegen.Label{l}
	at := map[int]int{l.ID: 0}
	for {
		next, ok := trivialTarget(blocks.Get(l))
		if !ok {
			return l
		}
		if i, seen := at[next.ID]; seen {
			low := path[i]
			for _, m := range path[i+1:] {
				if m.ID < low.ID {
					low = m
				}
			}
			return low
		}
		at[next.ID] = len(path)
		path = append(path, next)
		l = next
	}
}
