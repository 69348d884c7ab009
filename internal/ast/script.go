package ast

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// Name is an identifier together with where it was written.
type Name struct {
	Text string
	Span source.Span
}

func (n Name) Empty() bool { return n.Text == "" }

// Annotation is a `#name: value` line above a script header.
type Annotation struct {
	Name  Name
	Value int32
	Span  source.Span
}

// TypeRef is a type written in a script header.
type TypeRef struct {
	Type types.Primitive
	Span source.Span
}

// Param is one `type $name` entry of a script header. Array parameters are
// written as `intarray $name`.
type Param struct {
	Type  types.Primitive
	Array bool
	Name  Name
	Span  source.Span
}

// Script is one `[trigger,name]` declaration with its body.
type Script struct {
	Annotations []Annotation
	Trigger     Name
	Name        Name
	Params      []ParamID
	Returns     []TypeRef
	Body        []StmtID
	HeaderSpan  source.Span
	Span        source.Span
}

type Scripts struct {
	Arena  *Arena[Script]
	Params *Arena[Param]
}

func NewScripts(capHint uint) *Scripts {
	return &Scripts{
		Arena:  NewArena[Script](capHint),
		Params: NewArena[Param](capHint * 2),
	}
}

func (s *Scripts) New(script Script) ScriptID {
	return ScriptID(s.Arena.Allocate(script))
}

func (s *Scripts) Get(id ScriptID) *Script {
	return s.Arena.Get(uint32(id))
}

func (s *Scripts) NewParam(p Param) ParamID {
	return ParamID(s.Params.Allocate(p))
}

func (s *Scripts) Param(id ParamID) *Param {
	return s.Params.Get(uint32(id))
}

// ParamTypes returns the declared parameter types in order. Array parameters
// become array references numbered by their position among array parameters.
func (s *Scripts) ParamTypes(id ScriptID) []types.Type {
	script := s.Get(id)
	if script == nil {
		return nil
	}
	out := make([]types.Type, 0, len(script.Params))
	arrays := 0
	for _, pid := range script.Params {
		p := s.Param(pid)
		if p.Array {
			out = append(out, types.ArrayReference{Elem: p.Type, Index: arrays})
			arrays++
			continue
		}
		out = append(out, p.Type)
	}
	return out
}

// ReturnType folds the declared returns into one type: void, a primitive or
// a tuple.
func (s *Scripts) ReturnType(id ScriptID) types.Type {
	script := s.Get(id)
	if script == nil {
		return types.Void
	}
	elems := make([]types.Type, len(script.Returns))
	for i, r := range script.Returns {
		elems[i] = r.Type
	}
	return types.NewTuple(elems...)
}
