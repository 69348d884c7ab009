package ast

// ExprChildren lists the direct sub-expressions of an expression in source
// order.
func (b *Builder) ExprChildren(id ExprID) []ExprID {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprConcat:
		d, _ := b.Exprs.Concat(id)
		return d.Parts
	case ExprParen, ExprCalc:
		d, _ := b.Exprs.Inner(id)
		return []ExprID{d.Inner}
	case ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return []ExprID{d.Left, d.Right}
	case ExprArrayElem:
		d, _ := b.Exprs.ArrayElem(id)
		return []ExprID{d.Index}
	case ExprCommand:
		d, _ := b.Exprs.Command(id)
		return d.Args
	case ExprCall:
		d, _ := b.Exprs.Call(id)
		return d.Args
	case ExprHook:
		d, _ := b.Exprs.Hook(id)
		out := make([]ExprID, 0, len(d.Args)+len(d.Transmits))
		out = append(out, d.Args...)
		return append(out, d.Transmits...)
	}
	return nil
}

// StmtChildren lists the direct sub-statements and expressions of a
// statement. Switch case keys come before their bodies.
func (b *Builder) StmtChildren(id StmtID) (stmts []StmtID, exprs []ExprID) {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil, nil
	}
	switch st.Kind {
	case StmtBlock:
		d, _ := b.Stmts.Block(id)
		return d.Stmts, nil
	case StmtIf:
		d, _ := b.Stmts.If(id)
		stmts = []StmtID{d.Then}
		if d.Else.IsValid() {
			stmts = append(stmts, d.Else)
		}
		return stmts, []ExprID{d.Cond}
	case StmtWhile, StmtDoWhile:
		d, _ := b.Stmts.Loop(id)
		return []StmtID{d.Body}, []ExprID{d.Cond}
	case StmtSwitch:
		d, _ := b.Stmts.Switch(id)
		exprs = []ExprID{d.Cond}
		for _, c := range d.Cases {
			exprs = append(exprs, c.Keys...)
			stmts = append(stmts, c.Body...)
		}
		return stmts, exprs
	case StmtReturn:
		d, _ := b.Stmts.Return(id)
		return nil, d.Values
	case StmtExpr:
		d, _ := b.Stmts.Expr(id)
		return nil, []ExprID{d.Expr}
	case StmtVarDecl:
		d, _ := b.Stmts.VarDecl(id)
		if d.Init.IsValid() {
			return nil, []ExprID{d.Init}
		}
	case StmtArrayDecl:
		d, _ := b.Stmts.ArrayDecl(id)
		return nil, []ExprID{d.Size}
	case StmtVarInit:
		d, _ := b.Stmts.VarInit(id)
		exprs = append(exprs, d.Targets...)
		return nil, append(exprs, d.Values...)
	}
	return nil, nil
}
