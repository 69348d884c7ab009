package optimize

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
)

// retarget rewrites every label reference of s, branch operands and switch
// cases alike, and returns how many changed.
func retarget(s *codegen.BinaryScript, fn func(codegen.Label) codegen.Label) int {
	n := 0
	s.Each(func(_ *codegen.Block, in *codegen.Instruction) {
		l, ok := in.Target()
		if !ok {
			return
		}
		if to := fn(l); to.ID != l.ID {
			in.Operand = to
			n++
		}
	})
	for _, t := range s.Switches {
		for i := range t.Cases {
			if to := fn(t.Cases[i].Label); to.ID != t.Cases[i].Label.ID {
				t.Cases[i].Label = to
				n++
			}
		}
	}
	return n
}

// references counts the label references held by the blocks still in s. A
// switch table counts only while a surviving SWITCH uses it.
func references(s *codegen.BinaryScript) map[int]int {
	refs := make(map[int]int)
	s.Each(func(_ *codegen.Block, in *codegen.Instruction) {
		if l, ok := in.Target(); ok {
			refs[l.ID]++
		}
	})
	live := liveTables(s)
	for _, t := range s.Switches {
		if !live[t] {
			continue
		}
		for _, c := range t.Cases {
			refs[c.Label.ID]++
		}
	}
	return refs
}

func liveTables(s *codegen.BinaryScript) map[*codegen.SwitchTable]bool {
	live := make(map[*codegen.SwitchTable]bool, len(s.Switches))
	s.Each(func(_ *codegen.Block, in *codegen.Instruction) {
		if t, ok := in.Operand.(*codegen.SwitchTable); ok && in.Is(codegen.OpSwitch) {
			live[t] = true
		}
	})
	return live
}

// dropDeadTables removes the switch tables no SWITCH uses any more. Table ids
// are kept as they are.
func dropDeadTables(s *codegen.BinaryScript) {
	live := liveTables(s)
	kept := s.Switches[:0]
	for _, t := range s.Switches {
		if live[t] {
			kept = append(kept, t)
		}
	}
	clear(s.Switches[len(kept):])
	s.Switches = kept
}

// trivialTarget reports the destination of a block made of a single BRANCH.
func trivialTarget(b *codegen.Block) (codegen.Label, bool) {
	if b == nil || len(b.Instructions) != 1 || !b.Instructions[0].Is(codegen.OpBranch) {
		return codegen.Label{}, false
	}
	return b.Instructions[0].Target()
}
