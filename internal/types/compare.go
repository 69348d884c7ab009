package types

// Equal compares two types structurally after flattening.
func Equal(a, b Type) bool {
	fa, fb := Flatten(a), Flatten(b)
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if !equalLeaf(fa[i], fb[i]) {
			return false
		}
	}
	return true
}

// EqualLists compares two argument lists by their flattened form.
func EqualLists(a, b []Type) bool {
	return Equal(&Tuple{Elems: a}, &Tuple{Elems: b})
}

func equalLeaf(a, b Type) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av == bv
	case ArrayReference:
		bv, ok := b.(ArrayReference)
		return ok && av == bv
	}
	return false
}

// Assignable reports whether a value of type got may be stored where want is
// expected: equal after flattening, NULL into a nullable primitive, or an array
// reference into an array of the same component type.
func Assignable(want, got Type) bool {
	fw, fg := Flatten(want), Flatten(got)
	if len(fw) != len(fg) {
		return false
	}
	for i := range fw {
		if !assignableLeaf(fw[i], fg[i]) {
			return false
		}
	}
	return true
}

// AssignableLists is Assignable over argument lists.
func AssignableLists(want, got []Type) bool {
	return Assignable(&Tuple{Elems: want}, &Tuple{Elems: got})
}

func assignableLeaf(want, got Type) bool {
	if equalLeaf(want, got) {
		return true
	}
	if gp, ok := got.(Primitive); ok && gp == Null {
		wp, ok := want.(Primitive)
		return ok && wp.IsNullable()
	}
	wa, ok1 := want.(ArrayReference)
	ga, ok2 := got.(ArrayReference)
	return ok1 && ok2 && wa.Elem == ga.Elem
}

// HasUndefined reports whether any flattened component is Undefined. Such types
// come from already reported errors, so checks against them are skipped.
func HasUndefined(t Type) bool {
	for _, e := range Flatten(t) {
		if p, ok := e.(Primitive); ok && p == Undefined {
			return true
		}
	}
	return false
}

// IsPrimitive reports whether t is exactly the primitive p.
func IsPrimitive(t Type, p Primitive) bool {
	got, ok := t.(Primitive)
	return ok && got == p
}
