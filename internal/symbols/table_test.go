package symbols

import (
	"errors"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func TestSubTableIsolation(t *testing.T) {
	tables := NewTables()
	root := tables.Root()
	if err := tables.DefineCommand(root, Command{Name: "cc_settext", Type: types.Void}); err != nil {
		t.Fatal(err)
	}
	sub := tables.Sub(root)
	if _, ok := tables.LookupCommand(sub, "cc_settext"); !ok {
		t.Fatal("sub-table must see parent entries")
	}
	if err := tables.DefineConfig(sub, Config{Name: "coins", Type: types.Obj, ID: 995}); err != nil {
		t.Fatal(err)
	}
	if _, ok := tables.LookupConfig(root, "coins"); ok {
		t.Fatal("writes to a sub-table must not leak into the parent")
	}
	other := tables.Sub(root)
	if _, ok := tables.LookupConfig(other, "coins"); ok {
		t.Fatal("sibling tables must not see each other")
	}
}

func TestDefineRejectsVisibleDuplicates(t *testing.T) {
	tables := NewTables()
	root := tables.Root()
	s := &Script{Trigger: "proc", Name: "foo", Returns: types.Void, ID: -1}
	if err := tables.DefineScript(root, s); err != nil {
		t.Fatal(err)
	}
	sub := tables.Sub(root)
	err := tables.DefineScript(sub, &Script{Trigger: "proc", Name: "foo", Returns: types.Int})
	if !errors.Is(err, ErrAlreadyDefined) {
		t.Fatalf("err = %v, want ErrAlreadyDefined", err)
	}
	got, ok := tables.LookupScript(sub, "proc", "foo")
	if !ok || got != s {
		t.Fatal("first declaration must stay resolvable")
	}
	if len(tables.Scripts(sub)) != 0 {
		t.Fatal("rejected script must not be recorded")
	}
	if got.Key() != "[proc,foo]" {
		t.Fatalf("key = %s", got.Key())
	}
}

func TestTriggerLookups(t *testing.T) {
	tables := NewTables()
	root := tables.Root()
	for _, tr := range []Trigger{
		{Name: "proc", Operator: "~", Opcode: "gosub_with_params"},
		{Name: "label", Operator: "@", Opcode: "jump_with_params"},
		{Name: "clientscript", Hook: true},
	} {
		if err := tables.DefineTrigger(root, tr); err != nil {
			t.Fatal(err)
		}
	}
	if tr, ok := tables.LookupTriggerByOperator(root, "@"); !ok || tr.Name != "label" {
		t.Fatalf("operator lookup = %+v %v", tr, ok)
	}
	if _, ok := tables.LookupTriggerByOperator(root, ""); ok {
		t.Fatal("empty operator must not match")
	}
	if tr, ok := tables.HookTrigger(tables.Sub(root)); !ok || tr.Name != "clientscript" {
		t.Fatalf("hook trigger = %+v %v", tr, ok)
	}
}

func TestScopes(t *testing.T) {
	scopes := NewScopes()
	root := scopes.New(NoScopeID)
	a, err := scopes.DeclareVar(root, LocalVar{Name: "a", Type: types.Int})
	if err != nil || a.ID != 0 {
		t.Fatalf("declare a = %+v %v", a, err)
	}
	inner := scopes.New(root)
	if _, err := scopes.DeclareVar(inner, LocalVar{Name: "a", Type: types.Int}); !errors.Is(err, ErrAlreadyDefined) {
		t.Fatalf("shadowing an enclosing local must fail, got %v", err)
	}
	b, _ := scopes.DeclareVar(inner, LocalVar{Name: "b", Type: types.String})
	if b.ID != 1 {
		t.Fatalf("b id = %d", b.ID)
	}
	if _, ok := scopes.LookupVar(root, "b"); ok {
		t.Fatal("inner locals must not be visible outside")
	}
	arr, _ := scopes.DeclareArray(inner, LocalArray{Name: "a", Type: types.Obj})
	if arr.Slot != 0 || arr.Ref().String() != "objarray#0" {
		t.Fatalf("array = %+v", arr)
	}
	if scopes.VarCount() != 2 || scopes.ArrayCount() != 1 {
		t.Fatalf("counts = %d %d", scopes.VarCount(), scopes.ArrayCount())
	}
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("client_string")
	if err != nil || d != DomainClientString {
		t.Fatalf("domain = %v %v", d, err)
	}
	if _, err := ParseDomain("server"); err == nil {
		t.Fatal("unknown domain must fail")
	}
}
