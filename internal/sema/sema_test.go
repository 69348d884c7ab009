package sema

import (
	"strings"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/testkit"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func TestDuplicateScriptKeepsFirst(t *testing.T) {
	a := analyze(t, `[proc,foo](int $a) mes("a");`, `[proc,foo](string $s) mes($s);`)
	a.expectOnly(t, diag.SemaScriptAlreadyDefined, 1)
	s, ok := a.tables.LookupScript(a.table, "proc", "foo")
	if !ok {
		t.Fatal("first declaration is gone")
	}
	if !types.EqualLists(s.Params, []types.Type{types.Int}) {
		t.Fatalf("params = %v", s.Params)
	}
	if _, ok := a.tables.LookupScript(a.tables.Root(), "proc", "foo"); ok {
		t.Fatal("batch scripts leaked into the root table")
	}
}

func TestDuplicateLocal(t *testing.T) {
	a := analyze(t, `[proc,t] def_int $x = 1; def_int $x = 2;`)
	a.expectOnly(t, diag.SemaDuplicateLocal, 1)
	_, info := a.script(t, 0, 0)
	if len(info.Locals) != 1 || info.Locals[0].ID != 0 {
		t.Fatalf("locals = %+v", info.Locals)
	}
}

func TestDuplicateLocalInNestedScope(t *testing.T) {
	a := analyze(t, `[proc,t](int $x) if (true) { def_int $x = 2; } def_int $y = 0; { def_int $z = 1; } def_int $z = 2;`)
	// $z из вложенного блока уже не виден
	a.expectOnly(t, diag.SemaDuplicateLocal, 1)
	_, info := a.script(t, 0, 0)
	if len(info.Locals) != 4 {
		t.Fatalf("locals = %+v", info.Locals)
	}
	for i, v := range info.Locals {
		if v.ID != i {
			t.Fatalf("local %s has id %d, want %d", v.Name, v.ID, i)
		}
	}
}

func TestArithmeticOnlyInsideCalc(t *testing.T) {
	a := analyze(t, `[proc,t] calc(5 + 3); 5 + 3;`)
	a.expectOnly(t, diag.SemaArithmeticOutsideCalc, 1)
	sid, _ := a.script(t, 0, 0)
	if got := a.res.TypeOf(a.stmtExpr(t, sid, 0)); got != types.Int {
		t.Fatalf("calc type = %v", got)
	}
}

func TestCalcTypes(t *testing.T) {
	a := analyze(t, `[proc,t](long $l) def_long $m = calc($l * 2L); def_int $b = calc(6 & 3 | 8); def_int $c = calc("x");`)
	a.expectOnly(t, diag.SemaTypeMismatch, 1)
}

func TestReturnsAndConditions(t *testing.T) {
	a := analyze(t, `[myscript,main](int $a)(int) if ($a > 0) { return(1); } return(0);`)
	a.noErrors(t)
	_, info := a.script(t, 0, 0)
	if info.Returns != types.Int || len(info.Locals) != 1 || !info.Locals[0].Param {
		t.Fatalf("info = %+v", info)
	}
}

func TestTypeMismatches(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"return", `[proc,t](int $a)(string) return($a);`, diag.SemaTypeMismatch, "cannot convert from int to string"},
		{"return arity", `[proc,t](int $a)(int,string) return($a);`, diag.SemaTypeMismatch, "cannot convert from int to (int,string)"},
		{"condition", `[proc,t](int $a) if ($a) mes("x");`, diag.SemaTypeMismatch, "cannot convert from int to boolean"},
		{"init", `[proc,t] def_string $s = 1;`, diag.SemaTypeMismatch, "cannot convert from int to string"},
		{"operator", `[proc,t](string $s) if ($s < "a") mes("x");`, diag.SemaOperatorMismatch, "The operator '<' is undefined for the argument type(s) string, string"},
		{"logical", `[proc,t](int $a) if ($a & true) mes("x");`, diag.SemaOperatorMismatch, "The operator '&' is undefined"},
		{"equality", `[proc,t](int $a, string $s) if ($a = $s) mes("x");`, diag.SemaOperatorMismatch, "int, string"},
		{"concat", `[proc,t](int $a) mes("a<$a>b");`, diag.SemaTypeMismatch, "cannot convert from int to string"},
		{"assign", `[proc,t](int $a, string $s) $a, $s = 1, 2;`, diag.SemaAssignmentMismatch, "cannot assign (int,int) to (int,string)"},
		{"tuple into array element", "[proc,pair]()(int,int) return(1, 2);\n[proc,t](int $a) def_int $arr(4); $a, $arr(0) = ~pair;", diag.SemaAssignmentMismatch, "array element cannot be assigned from a multi-value expression"},
		{"command", `[proc,t] mes(1);`, diag.SemaCommandNotApplicable, "The command mes(string) is not applicable for the arguments (int)"},
		{"array index", `[proc,t] def_int $arr(4); mes(tostring($arr("x")));`, diag.SemaTypeMismatch, "cannot convert from string to int"},
		{"array type", `[proc,t] def_boolean $arr(4);`, diag.SemaNotArrayable, "boolean"},
		{"break", `[proc,t] break;`, diag.SemaLoopControlOutsideLoop, "break cannot be used outside of a loop"},
		{"continue", `[proc,t] continue;`, diag.SemaLoopControlOutsideLoop, "continue cannot be used outside of a loop"},
		{"alternative", `[proc,t] .mes("x");`, diag.SemaNoAlternative, "mes does not support alternative calls"},
		{"bare command", `[proc,t] mes;`, diag.SemaCommandNotApplicable, "The command mes(string) is not applicable for the arguments ()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze(t, tt.src)
			a.expectOnly(t, tt.code, 1)
			if msg := a.bag.Items()[0].Message; !strings.Contains(msg, tt.msg) {
				t.Fatalf("message = %q, want it to contain %q", msg, tt.msg)
			}
		})
	}
}

func TestNullEquality(t *testing.T) {
	a := analyze(t, `[proc,t](obj $o, string $s) if ($o = null) mes("x"); if (null ! $o) mes("y"); if ($s = null) mes("z");`)
	a.expectOnly(t, diag.SemaOperatorMismatch, 1)
}

func TestLoopControlInsideLoops(t *testing.T) {
	a := analyze(t, `[proc,t](int $a) while ($a > 0) { if ($a = 3) break; continue; } do { break; } while (true);`)
	a.noErrors(t)
}

func TestResolution(t *testing.T) {
	a := analyze(t, `[proc,t] mes(tostring(getqueue)); mes(^greeting); mes(tostring(^max)); mes(tostring(^build));
mes(tostring(%gold)); if_settext(bank:title, "x"); .if_settext(bank:title, "y"); mes(tostring(inv_total(bank_inv, coins)));`)
	a.noErrors(t)

	sid, _ := a.script(t, 0, 0)
	tests := []struct {
		stmt int
		arg  int // путь до аргумента: команда -> args[arg]
		kind BindingKind
	}{
		{5, 0, BindConfig},
	}
	for _, tt := range tests {
		cmd, _ := a.b.Exprs.Command(a.stmtExpr(t, sid, tt.stmt))
		b := a.res.Bindings[cmd.Args[tt.arg]]
		if b.Kind != tt.kind || b.Config.ID != testkit.BankTitleID {
			t.Fatalf("binding = %+v", b)
		}
	}
	first, _ := a.b.Exprs.Command(a.stmtExpr(t, sid, 0))
	inner, _ := a.b.Exprs.Command(first.Args[0])
	if b := a.res.Bindings[inner.Args[0]]; b.Kind != BindCommand || b.Command.Name != "getqueue" {
		t.Fatalf("getqueue binding = %+v", b)
	}
	runtime, _ := a.b.Exprs.Command(a.stmtExpr(t, sid, 3))
	rt, _ := a.b.Exprs.Command(runtime.Args[0])
	if b := a.res.Bindings[rt.Args[0]]; b.Kind != BindConstant || !b.Runtime {
		t.Fatalf("^build binding = %+v", b)
	}
}

func TestUnresolvedNames(t *testing.T) {
	a := analyze(t, `[proc,t] mes($nope); mes(tostring(%nope)); mes(tostring(^nope)); foo(1); mes(tostring(nothing)); ~missing; mes(tostring($arr(0)));`)
	for _, code := range []diag.Code{
		diag.SemaUnresolvedConstant, diag.SemaUnresolvedCommand,
		diag.SemaUnresolvedSymbol, diag.SemaUnresolvedScript, diag.SemaUnresolvedArray,
	} {
		if a.count(code) != 1 {
			t.Fatalf("code %d:\n%s", code, a.dump())
		}
	}
	if a.count(diag.SemaUnresolvedVariable) != 2 || a.bag.Len() != 7 {
		t.Fatalf("diagnostics:\n%s", a.dump())
	}
}

func TestGraphicLiteral(t *testing.T) {
	a := analyze(t, `[proc,t] if_setgraphic("icon"); mes("icon"); if_setgraphic("nope");`)
	a.expectOnly(t, diag.SemaCommandNotApplicable, 1)
	sid, _ := a.script(t, 0, 0)
	set, _ := a.b.Exprs.Command(a.stmtExpr(t, sid, 0))
	if got := a.res.TypeOf(set.Args[0]); got != types.Graphic {
		t.Fatalf("graphic arg type = %v", got)
	}
	if b := a.res.Bindings[set.Args[0]]; b.Kind != BindGraphic || b.Config.ID != testkit.IconID {
		t.Fatalf("graphic binding = %+v", b)
	}
	mes, _ := a.b.Exprs.Command(a.stmtExpr(t, sid, 1))
	if got := a.res.TypeOf(mes.Args[0]); got != types.String {
		t.Fatalf("string arg type = %v", got)
	}
}

func TestScriptCalls(t *testing.T) {
	a := analyze(t, `[proc,add](int $a, int $b)(int) return(calc($a + $b));
[proc,t] def_int $x = ~add(1, 2); ~add("a");`)
	a.expectOnly(t, diag.SemaScriptNotApplicable, 1)
	if msg := a.bag.Items()[0].Message; msg != "The script add(int,int) is not applicable for the arguments (string)" {
		t.Fatalf("message = %q", msg)
	}
	sid, _ := a.script(t, 0, 1)
	decl, _ := a.b.Stmts.VarDecl(a.b.Scripts.Get(sid).Body[0])
	b := a.res.Bindings[decl.Init]
	if b.Kind != BindScript || b.Script.Name != "add" || b.Trigger.Opcode != "gosub_with_params" {
		t.Fatalf("call binding = %+v", b)
	}
}

func TestCallBeforeDeclaration(t *testing.T) {
	a := analyze(t, `[proc,t] ~later(1);`, `[proc,later](int $n) mes(tostring($n));`)
	a.noErrors(t)
}

func TestArrays(t *testing.T) {
	a := analyze(t, `[proc,t](intarray $list, int $n) def_obj $objs(3); $objs(0) = coins; def_int $y = $list($n); def_int $objs(2);`)
	a.expectOnly(t, diag.SemaDuplicateArray, 1)
	_, info := a.script(t, 0, 0)
	if len(info.Arrays) != 2 || !info.Arrays[0].Param || info.Arrays[1].Slot != 1 || info.Arrays[1].Type != types.Obj {
		t.Fatalf("arrays = %+v", info.Arrays)
	}
	if len(info.Locals) != 2 || info.Locals[0].Name != "n" {
		t.Fatalf("locals = %+v", info.Locals)
	}
}

func TestSwitchKeys(t *testing.T) {
	a := analyze(t, `[proc,t](int $a) switch_int ($a) { case 1, 2: mes("a"); case ^max: mes("b"); case 1: mes("c"); case $a: mes("d"); case default: mes("e"); }`)
	if a.count(diag.SemaDuplicateCase) != 1 || a.count(diag.SemaCaseNotConstant) != 1 || a.bag.Len() != 2 {
		t.Fatalf("diagnostics:\n%s", a.dump())
	}
	got := make(map[int32]bool)
	for _, v := range a.res.SwitchKeys {
		got[v] = true
	}
	if len(got) != 3 || !got[1] || !got[2] || !got[testkit.MaxConst] {
		t.Fatalf("keys = %v", a.res.SwitchKeys)
	}
}

func TestSwitchOnConfig(t *testing.T) {
	a := analyze(t, `[proc,t](obj $o) switch_obj ($o) { case coins: mes("coins"); case 1: mes("int"); }`)
	a.expectOnly(t, diag.SemaTypeMismatch, 1)
	for _, v := range a.res.SwitchKeys {
		if v != testkit.CoinsID {
			t.Fatalf("key = %d", v)
		}
	}
	for _, st := range a.res.SwitchTypes {
		if st != types.Obj {
			t.Fatalf("switch type = %v", st)
		}
	}
}

func TestSwitchCaseScopes(t *testing.T) {
	a := analyze(t, `[proc,t](int $a) switch_int ($a) { case 1: def_int $x = 1; case 2: def_int $x = 2; }`)
	a.noErrors(t)
}

func TestHooks(t *testing.T) {
	tests := []struct {
		name string
		call string
		code diag.Code // 0: без ошибок
	}{
		{"plain", `cc_setonclick("onclick(1)")`, 0},
		{"null", `cc_setonclick(null)`, 0},
		{"empty", `cc_setonclick("")`, 0},
		{"forbidden", `cc_setonclick("onclick(1){%gold}")`, diag.SemaHookTransmitForbidden},
		{"required", `cc_setonvartransmit("onclick(1)")`, diag.SemaHookTransmitRequired},
		{"varp", `cc_setonvartransmit("onclick(1){%gold}")`, 0},
		{"varc", `cc_setonvartransmit("onclick(1){%clientflag}")`, diag.SemaTypeMismatch},
		{"inv", `cc_setoninvtransmit("onclick(1){bank_inv}")`, 0},
		{"wrong inv", `cc_setoninvtransmit("onclick(1){coins}")`, diag.SemaTypeMismatch},
		{"unresolved", `cc_setonclick("missing(1)")`, diag.SemaUnresolvedHook},
		{"args", `cc_setonclick("onclick(true)")`, diag.SemaScriptNotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze(t, `[clientscript,onclick](int $n) mes(tostring($n));
[proc,t] `+tt.call+`;`)
			if tt.code == 0 {
				a.noErrors(t)
				return
			}
			a.expectOnly(t, tt.code, 1)
		})
	}
}

func TestHookBinding(t *testing.T) {
	a := analyze(t, `[clientscript,onclick](int $n) mes(tostring($n));
[proc,t] cc_setonclick("onclick(1)");`)
	a.noErrors(t)
	sid, _ := a.script(t, 0, 1)
	cmd, _ := a.b.Exprs.Command(a.stmtExpr(t, sid, 0))
	b := a.res.Bindings[cmd.Args[0]]
	if b.Kind != BindHook || b.Script.Key() != "[clientscript,onclick]" {
		t.Fatalf("hook binding = %+v", b)
	}
	if a.res.TypeOf(cmd.Args[0]) != types.Hook {
		t.Fatalf("hook type = %v", a.res.TypeOf(cmd.Args[0]))
	}
}

func TestTriggerContract(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"no arguments", `[opnpc1,t](int $a) mes("x");`, diag.SemaTriggerNoArguments},
		{"no returns", `[label,t](int $a)(int) return(1);`, diag.SemaTriggerNoReturns},
		{"required returns", `[logout,t] return;`, diag.SemaTriggerReturnMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze(t, tt.src)
			a.expectOnly(t, tt.code, 1)
		})
	}
	analyze(t, `[logout,t](boolean) return(true);`).noErrors(t)
}

func TestUnknownTriggerReportedOnce(t *testing.T) {
	src := `[nosuch,t] mes("x");`
	a := analyzeLoose(t, Options{TriggersChecked: true}, src)
	if a.bag.Len() != 1 || a.count(diag.SynUnknownTrigger) != 1 {
		t.Fatalf("diagnostics:\n%s", a.dump())
	}
	a = analyzeLoose(t, Options{}, src)
	if a.bag.Len() != 2 || a.count(diag.SemaUnknownTrigger) != 1 {
		t.Fatalf("diagnostics:\n%s", a.dump())
	}
	if _, ok := a.tables.LookupScript(a.table, "nosuch", "t"); ok {
		t.Fatal("a script of an unknown trigger must not be declared")
	}
}

func TestAnnotations(t *testing.T) {
	a := analyze(t, "#ID: 5\n#id: 6\n[proc,t] mes(\"x\");")
	a.expectOnly(t, diag.SemaDuplicateAnnotation, 1)
	s, _ := a.tables.LookupScript(a.table, "proc", "t")
	if s.ID != 5 || s.Annotations["id"] != 5 {
		t.Fatalf("script = %+v", s)
	}
	b := analyze(t, `[proc,u] mes("x");`)
	if s, _ := b.tables.LookupScript(b.table, "proc", "u"); s.ID != -1 {
		t.Fatalf("unannotated id = %d", s.ID)
	}
}

func TestOverride(t *testing.T) {
	first := `[proc,foo](int $a) mes("a");`
	opts := Options{AllowOverride: true, TriggersChecked: true}

	a := analyzeWith(t, opts, first, `[proc,foo](int $b) mes("b");`)
	a.noErrors(t)
	_, one := a.script(t, 0, 0)
	_, two := a.script(t, 1, 0)
	if one.Symbol != two.Symbol {
		t.Fatal("override must compile into the existing symbol")
	}

	a = analyzeWith(t, opts, first, `[proc,foo](string $b) mes($b);`)
	a.expectOnly(t, diag.SemaOverrideMismatch, 1)

	a = analyzeWith(t, opts, first, "#id: 4\n[proc,foo](int $b) mes(\"b\");")
	a.expectOnly(t, diag.SemaOverrideWithID, 1)
}

func TestDeclarationDefaults(t *testing.T) {
	a := analyze(t, `[proc,t] def_string $s; def_int $i; def_obj $o;`)
	a.noErrors(t)
	_, info := a.script(t, 0, 0)
	if len(info.Locals) != 3 || info.Locals[2].Type != types.Obj {
		t.Fatalf("locals = %+v", info.Locals)
	}
}
