package types

import "testing"

func TestNewTupleCollapses(t *testing.T) {
	if got := NewTuple(); got != Void {
		t.Fatalf("empty tuple = %v, want void", got)
	}
	if got := NewTuple(Int); got != Int {
		t.Fatalf("single tuple = %v, want int", got)
	}
	if got := NewTuple(Void, String, Void); got != String {
		t.Fatalf("void components must vanish, got %v", got)
	}
}

func TestFlatten(t *testing.T) {
	nested := NewTuple(Int, &Tuple{Elems: []Type{String, Long}})
	flat := Flatten(nested)
	want := []Type{Int, String, Long}
	if len(flat) != len(want) {
		t.Fatalf("flatten len = %d, want %d", len(flat), len(want))
	}
	for i := range want {
		if flat[i] != want[i] {
			t.Fatalf("flatten[%d] = %v, want %v", i, flat[i], want[i])
		}
	}
	again := FlattenAll(flat)
	if !EqualLists(again, flat) {
		t.Fatalf("flatten is not idempotent: %v vs %v", again, flat)
	}
	if nested.String() != "(int,string,long)" {
		t.Fatalf("tuple string = %q", nested.String())
	}
}

func TestAssignable(t *testing.T) {
	tests := []struct {
		name      string
		want, got Type
		ok        bool
	}{
		{"same", Int, Int, true},
		{"different", Int, String, false},
		{"null into obj", Obj, Null, true},
		{"null into string", String, Null, false},
		{"null into int", Int, Null, true},
		{"array slots ignored", ArrayReference{Elem: Int, Index: 0}, ArrayReference{Elem: Int, Index: 3}, true},
		{"array elem differs", ArrayReference{Elem: Int}, ArrayReference{Elem: Obj}, false},
		{"tuple arity", NewTuple(Int, Int), Int, false},
		{"tuple ok", NewTuple(Int, Obj), NewTuple(Int, Null), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assignable(tt.want, tt.got); got != tt.ok {
				t.Fatalf("Assignable(%v, %v) = %v, want %v", tt.want, tt.got, got, tt.ok)
			}
		})
	}
}

func TestPrimitiveTraits(t *testing.T) {
	if !Int.IsDeclarable() || Void.IsDeclarable() || Hook.IsDeclarable() {
		t.Fatal("declarable traits wrong")
	}
	if !Obj.IsArrayable() || String.IsArrayable() || Boolean.IsArrayable() {
		t.Fatal("arrayable traits wrong")
	}
	if !Enum.IsConfig() || !Param.IsConfig() || Int.IsConfig() {
		t.Fatal("config traits wrong")
	}
	if StackTypeOf(Coordgrid) != StackInt || StackTypeOf(Long) != StackLong {
		t.Fatal("stack types wrong")
	}
	if StackTypeOf(ArrayReference{Elem: Obj}) != StackInt {
		t.Fatal("array reference must travel on the int stack")
	}
	if d, ok := Obj.Default(); !ok || d.Int != -1 {
		t.Fatalf("obj default = %v", d)
	}
	if _, ok := Void.Default(); ok {
		t.Fatal("void has no default")
	}
	if Null.String() != "null" {
		t.Fatalf("null string = %q", Null.String())
	}
}

func TestLookup(t *testing.T) {
	if p, ok := Lookup("namedobj"); !ok || p != NamedObj {
		t.Fatalf("lookup namedobj = %v %v", p, ok)
	}
	if _, ok := Lookup("type"); ok {
		t.Fatal("type literal must not be referencable")
	}
	if p, ok := LookupArray("objarray"); !ok || p != Obj {
		t.Fatalf("lookup objarray = %v %v", p, ok)
	}
	if _, ok := LookupArray("stringarray"); ok {
		t.Fatal("string is not arrayable")
	}
	if _, ok := LookupArray("array"); ok {
		t.Fatal("bare array must not resolve")
	}
}

func TestStacks(t *testing.T) {
	got := Stacks(NewTuple(Int, String, Obj, Long))
	want := []StackType{StackInt, StackString, StackInt, StackLong}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stacks[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
