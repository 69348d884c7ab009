package codegen

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

type varKey struct {
	Global bool
	Domain symbols.Domain // только для глобальных
	Stack  types.StackType
	Push   bool
}

var varOpcodes = map[varKey]Opcode{
	{Stack: types.StackInt, Push: true}:    OpPushIntLocal,
	{Stack: types.StackString, Push: true}: OpPushStringLocal,
	{Stack: types.StackLong, Push: true}:   OpPushLongLocal,
	{Stack: types.StackInt}:                OpPopIntLocal,
	{Stack: types.StackString}:             OpPopStringLocal,
	{Stack: types.StackLong}:               OpPopLongLocal,

	{Global: true, Domain: symbols.DomainPlayer, Stack: types.StackInt, Push: true}:          OpPushVarp,
	{Global: true, Domain: symbols.DomainPlayer, Stack: types.StackInt}:                      OpPopVarp,
	{Global: true, Domain: symbols.DomainPlayerBit, Stack: types.StackInt, Push: true}:       OpPushVarbit,
	{Global: true, Domain: symbols.DomainPlayerBit, Stack: types.StackInt}:                   OpPopVarbit,
	{Global: true, Domain: symbols.DomainClientInt, Stack: types.StackInt, Push: true}:       OpPushVarcInt,
	{Global: true, Domain: symbols.DomainClientInt, Stack: types.StackInt}:                   OpPopVarcInt,
	{Global: true, Domain: symbols.DomainClientString, Stack: types.StackString, Push: true}: OpPushVarcString,
	{Global: true, Domain: symbols.DomainClientString, Stack: types.StackString}:             OpPopVarcString,
}

func varOpcode(k varKey) Opcode {
	op, ok := varOpcodes[k]
	if !ok {
		scope := "local"
		if k.Global {
			scope = k.Domain.String()
		}
		dir := "pop"
		if k.Push {
			dir = "push"
		}
		panic(Invariantf("no %s opcode for %s variable on the %s stack", dir, scope, k.Stack))
	}
	return op
}

var constantOpcodes = [...]Opcode{
	types.StackInt:    OpPushIntConstant,
	types.StackString: OpPushStringConstant,
	types.StackLong:   OpPushLongConstant,
}

var discardOpcodes = [...]Opcode{
	types.StackInt:    OpPopIntDiscard,
	types.StackString: OpPopStringDiscard,
	types.StackLong:   OpPopLongDiscard,
}

// Discards returns the instructions that drop every value t leaves on the
// stacks: ints first, then strings, then longs.
func Discards(t types.Type) []Opcode {
	var counts [len(discardOpcodes)]int
	for _, st := range types.Stacks(t) {
		if st != types.StackNone {
			counts[st]++
		}
	}
	var out []Opcode
	for _, st := range types.StackTypes {
		for range counts[st] {
			out = append(out, discardOpcodes[st])
		}
	}
	return out
}
