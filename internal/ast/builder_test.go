package ast

import (
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("id 0 must be invalid")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("first id = %d", id)
	}
	if a.Get(2) != nil {
		t.Fatal("out of range id must be nil")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{File: 1, Start: 0, End: 1}
	lit := b.Exprs.NewLiteral(ExprInt, sp, ExprLiteralData{Int: 5})
	if _, ok := b.Exprs.Binary(lit); ok {
		t.Fatal("literal must not decode as binary")
	}
	bin := b.Exprs.NewBinary(sp, ExprBinaryData{Op: OpAdd, Left: lit, Right: lit})
	d, ok := b.Exprs.Binary(bin)
	if !ok || d.Op != OpAdd {
		t.Fatalf("binary payload = %+v %v", d, ok)
	}
	if kids := b.ExprChildren(bin); len(kids) != 2 || kids[0] != lit {
		t.Fatalf("children = %v", kids)
	}
}

func TestScriptSignature(t *testing.T) {
	b := NewBuilder(Hints{})
	p1 := b.Scripts.NewParam(Param{Type: types.Int, Name: Name{Text: "a"}})
	p2 := b.Scripts.NewParam(Param{Type: types.Obj, Array: true, Name: Name{Text: "b"}})
	p3 := b.Scripts.NewParam(Param{Type: types.Int, Array: true, Name: Name{Text: "c"}})
	id := b.Scripts.New(Script{
		Params:  []ParamID{p1, p2, p3},
		Returns: []TypeRef{{Type: types.Int}, {Type: types.String}},
	})
	params := b.Scripts.ParamTypes(id)
	if len(params) != 3 {
		t.Fatalf("params = %v", params)
	}
	if ref, ok := params[2].(types.ArrayReference); !ok || ref.Index != 1 {
		t.Fatalf("second array param slot = %v", params[2])
	}
	if got := b.Scripts.ReturnType(id).String(); got != "(int,string)" {
		t.Fatalf("return type = %s", got)
	}
	empty := b.Scripts.New(Script{})
	if b.Scripts.ReturnType(empty) != types.Void {
		t.Fatal("no returns must be void")
	}
}
