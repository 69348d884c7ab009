package codegen

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// Local is a scalar local slot. Index counts within its stack channel,
// parameters first.
type Local struct {
	Name  string
	Type  types.Primitive
	Index int
	Param bool
}

func (l *Local) String() string { return "$" + l.Name }

// Stack returns the stack channel of the local.
func (l *Local) Stack() types.StackType { return l.Type.StackType() }

// Locals groups the locals of a script by stack channel.
type Locals struct {
	Params map[types.StackType][]*Local
	Vars   map[types.StackType][]*Local
}

func newLocals() Locals {
	return Locals{
		Params: make(map[types.StackType][]*Local),
		Vars:   make(map[types.StackType][]*Local),
	}
}

// Count returns the number of slots a stack channel needs.
func (l Locals) Count(stack types.StackType) int {
	return len(l.Params[stack]) + len(l.Vars[stack])
}

type localMap struct {
	locals Locals
	byID   map[int]*Local
}

func newLocalMap() *localMap {
	return &localMap{locals: newLocals(), byID: make(map[int]*Local)}
}

// register adds a local for the analyzer variable id. Parameters must be
// registered before any variable of the same stack.
func (m *localMap) register(id int, name string, t types.Primitive, param bool) *Local {
	stack := t.StackType()
	if stack == types.StackNone {
		panic(Invariantf("local $%s has no stack type (%s)", name, t))
	}
	l := &Local{Name: name, Type: t, Index: m.locals.Count(stack), Param: param}
	if param {
		m.locals.Params[stack] = append(m.locals.Params[stack], l)
	} else {
		m.locals.Vars[stack] = append(m.locals.Vars[stack], l)
	}
	m.byID[id] = l
	return l
}

func (m *localMap) lookup(id int) *Local {
	l, ok := m.byID[id]
	if !ok {
		panic(Invariantf("local #%d was never registered", id))
	}
	return l
}
