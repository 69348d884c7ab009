package codegen

import (
	"fortio.org/safecast"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/sema"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func (g *generator) stmt(id ast.StmtID) {
	stmts := g.builder.Stmts
	st := stmts.Get(id)
	if st == nil {
		panic(Invariantf("statement #%d does not exist", id))
	}
	switch st.Kind {
	case ast.StmtBlock:
		data, _ := stmts.Block(id)
		for _, s := range data.Stmts {
			g.stmt(s)
		}
	case ast.StmtIf:
		g.ifStmt(id)
	case ast.StmtWhile:
		g.whileStmt(id)
	case ast.StmtDoWhile:
		g.doWhileStmt(id)
	case ast.StmtSwitch:
		g.switchStmt(id)
	case ast.StmtReturn:
		data, _ := stmts.Return(id)
		for _, v := range data.Values {
			g.expr(v)
		}
		g.emit(OpReturn, nil)
	case ast.StmtBreak:
		g.branch(g.loop("break").breakTarget)
	case ast.StmtContinue:
		g.branch(g.loop("continue").continueTarget)
	case ast.StmtExpr:
		data, _ := stmts.Expr(id)
		g.expr(data.Expr)
		g.discard(g.typeOf(data.Expr))
	case ast.StmtVarDecl:
		g.varDecl(id)
	case ast.StmtArrayDecl:
		g.arrayDecl(id)
	case ast.StmtVarInit:
		g.varInit(id)
	default:
		panic(Invariantf("cannot generate %s statement", st.Kind))
	}
}

func (g *generator) loop(what string) loopCtx {
	if len(g.loops) == 0 {
		panic(Invariantf("%s outside of a loop", what))
	}
	return g.loops[len(g.loops)-1]
}

func (g *generator) discard(t types.Type) {
	for _, op := range Discards(t) {
		g.emit(op, nil)
	}
}

func (g *generator) ifStmt(id ast.StmtID) {
	data, _ := g.builder.Stmts.If(id)
	trueLabel := g.labels.Generate("if_true")
	hasElse := data.Else.IsValid()
	var elseLabel Label
	if hasElse {
		elseLabel = g.labels.Generate("if_else")
	}
	endLabel := g.labels.Generate("if_end")

	falseTarget := endLabel
	if hasElse {
		falseTarget = elseLabel
	}
	g.condition(data.Cond, trueLabel, &falseTarget)

	g.bind(trueLabel)
	g.stmt(data.Then)
	g.branch(endLabel)
	if hasElse {
		g.bind(elseLabel)
		g.stmt(data.Else)
		g.branch(endLabel)
	}
	g.bind(endLabel)
}

func (g *generator) whileStmt(id ast.StmtID) {
	data, _ := g.builder.Stmts.Loop(id)
	start := g.labels.Generate("while_start")
	body := g.labels.Generate("while_true")
	end := g.labels.Generate("while_end")

	g.branch(start)
	g.bind(start)
	g.condition(data.Cond, body, &end)
	g.bind(body)
	g.loops = append(g.loops, loopCtx{breakTarget: end, continueTarget: start})
	g.stmt(data.Body)
	g.loops = g.loops[:len(g.loops)-1]
	g.branch(start)
	g.bind(end)
}

func (g *generator) doWhileStmt(id ast.StmtID) {
	data, _ := g.builder.Stmts.Loop(id)
	body := g.labels.Generate("do_body")
	cond := g.labels.Generate("do_cond")
	end := g.labels.Generate("do_end")

	g.branch(body)
	g.bind(body)
	g.loops = append(g.loops, loopCtx{breakTarget: end, continueTarget: cond})
	g.stmt(data.Body)
	g.loops = g.loops[:len(g.loops)-1]
	g.branch(cond)
	g.bind(cond)
	g.condition(data.Cond, body, &end)
	g.bind(end)
}

func (g *generator) switchStmt(id ast.StmtID) {
	data, _ := g.builder.Stmts.Switch(id)
	g.expr(data.Cond)

	end := g.labels.Generate("switch_end")
	type keyed struct {
		label Label
		body  []ast.StmtID
	}
	var arms []keyed
	var cases []SwitchCase
	for _, c := range data.Cases {
		if c.Default {
			continue
		}
		keys := make([]int32, len(c.Keys))
		for i, k := range c.Keys {
			v, ok := g.res.SwitchKeys[k]
			if !ok {
				panic(Invariantf("case key #%d has no value", k))
			}
			keys[i] = v
		}
		l := g.labels.Generate("switch_case")
		arms = append(arms, keyed{label: l, body: c.Body})
		cases = append(cases, SwitchCase{Keys: keys, Label: l})
	}
	g.emit(OpSwitch, g.switches.generate(cases))

	if def := data.DefaultCase(); def >= 0 {
		for _, s := range data.Cases[def].Body {
			g.stmt(s)
		}
	}
	g.branch(end)
	for _, arm := range arms {
		g.bind(arm.label)
		for _, s := range arm.body {
			g.stmt(s)
		}
		g.branch(end)
	}
	g.bind(end)
}

func (g *generator) declBinding(id ast.StmtID, want sema.BindingKind) sema.Binding {
	b, ok := g.res.Decls[id]
	if !ok || b.Kind != want {
		panic(Invariantf("declaration #%d has no %s binding", id, want))
	}
	return b
}

func (g *generator) varDecl(id ast.StmtID) {
	data, _ := g.builder.Stmts.VarDecl(id)
	b := g.declBinding(id, sema.BindLocal)
	if data.Init.IsValid() {
		g.expr(data.Init)
	} else {
		g.pushDefault(data.Type)
	}
	local := g.locals.register(b.Local.ID, b.Local.Name, b.Local.Type, false)
	g.emit(varOpcode(varKey{Stack: local.Stack()}), local)
}

func (g *generator) arrayDecl(id ast.StmtID) {
	data, _ := g.builder.Stmts.ArrayDecl(id)
	b := g.declBinding(id, sema.BindArray)
	g.expr(data.Size)
	g.emit(OpDefineArray, IntOperand(arrayOperand(b.Array.Slot, b.Array.Type)))
}

// arrayOperand packs slot<<16 | type code.
func arrayOperand(slot int, t types.Primitive) int32 {
	v, err := safecast.Conv[int32](slot<<16 | int(t.Code()))
	if err != nil {
		panic(Invariantf("array slot %d of %s does not fit an operand: %v", slot, t, err))
	}
	return v
}

func slotOperand(slot int) int32 {
	v, err := safecast.Conv[int32](slot)
	if err != nil {
		panic(Invariantf("array slot %d: %v", slot, err))
	}
	return v
}

// varInit pushes every value, then pops into the targets right to left. An
// element target takes its index right before its own value so the pair is
// on top of the stack when it is popped.
func (g *generator) varInit(id ast.StmtID) {
	data, _ := g.builder.Stmts.VarInit(id)
	paired := len(data.Targets) == len(data.Values)
	for i, v := range data.Values {
		if paired {
			if elem, ok := g.builder.Exprs.ArrayElem(data.Targets[i]); ok {
				g.expr(elem.Index)
			}
		}
		g.expr(v)
	}
	if !paired {
		for _, t := range data.Targets {
			if _, ok := g.builder.Exprs.ArrayElem(t); ok {
				panic(Invariantf("array element assigned from a tuple value"))
			}
		}
	}
	for i := len(data.Targets) - 1; i >= 0; i-- {
		g.store(data.Targets[i])
	}
}

func (g *generator) store(target ast.ExprID) {
	b := g.binding(target)
	switch b.Kind {
	case sema.BindLocal:
		local := g.locals.lookup(b.Local.ID)
		g.emit(varOpcode(varKey{Stack: local.Stack()}), local)
	case sema.BindGlobal:
		g.emit(varOpcode(varKey{Global: true, Domain: b.Variable.Domain, Stack: b.Variable.Type.StackType()}), IntOperand(b.Variable.ID))
	case sema.BindArray:
		if _, ok := g.builder.Exprs.ArrayElem(target); !ok {
			panic(Invariantf("cannot assign to array %s as a whole", b.Array.Name))
		}
		g.emit(OpPopArrayInt, IntOperand(slotOperand(b.Array.Slot)))
	default:
		panic(Invariantf("cannot assign to a %s", b.Kind))
	}
}
