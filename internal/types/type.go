package types

import (
	"strconv"
	"strings"
)

// Type is implemented by Primitive, *Tuple and ArrayReference only.
type Type interface {
	String() string
	isType()
}

// Tuple is an ordered list of component types. Build it with NewTuple.
type Tuple struct {
	Elems []Type
}

func (t *Tuple) isType() {}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// ArrayReference is a local array of Elem living in slot Index.
type ArrayReference struct {
	Elem  Primitive
	Index int
}

func (a ArrayReference) isType() {}

func (a ArrayReference) String() string {
	return a.Elem.Representation() + "array#" + strconv.Itoa(a.Index)
}

// NewTuple flattens elems into one tuple-free sequence. Zero components give
// Void, one component gives that component unchanged.
func NewTuple(elems ...Type) Type {
	flat := make([]Type, 0, len(elems))
	for _, e := range elems {
		flat = append(flat, Flatten(e)...)
	}
	switch len(flat) {
	case 0:
		return Void
	case 1:
		return flat[0]
	}
	return &Tuple{Elems: flat}
}

// Flatten expands nested tuples into a flat sequence. Void flattens to nothing.
// Flattening an already flat sequence returns an equal sequence.
func Flatten(t Type) []Type {
	switch v := t.(type) {
	case nil:
		return nil
	case *Tuple:
		out := make([]Type, 0, len(v.Elems))
		for _, e := range v.Elems {
			out = append(out, Flatten(e)...)
		}
		return out
	case Primitive:
		if v == Void {
			return nil
		}
	}
	return []Type{t}
}

// FlattenAll flattens a list of types as if they formed one tuple.
func FlattenAll(ts []Type) []Type {
	out := make([]Type, 0, len(ts))
	for _, t := range ts {
		out = append(out, Flatten(t)...)
	}
	return out
}

// Join renders a flat list the way diagnostics print argument lists: "int,string".
func Join(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// StackTypeOf returns the stack channel of a non-tuple type.
func StackTypeOf(t Type) StackType {
	switch v := t.(type) {
	case Primitive:
		return v.StackType()
	case ArrayReference:
		// массив передаётся как номер слота
		return StackInt
	}
	return StackNone
}

// Stacks lists the stack channel of every flattened component in order.
func Stacks(t Type) []StackType {
	flat := Flatten(t)
	out := make([]StackType, len(flat))
	for i, e := range flat {
		out[i] = StackTypeOf(e)
	}
	return out
}

// LookupArray resolves an array type spelling such as "intarray" to its
// component primitive.
func LookupArray(name string) (Primitive, bool) {
	base, ok := strings.CutSuffix(name, "array")
	if !ok || base == "" {
		return Undefined, false
	}
	p, ok := Lookup(base)
	if !ok || !p.IsArrayable() {
		return Undefined, false
	}
	return p, true
}
