package sema

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func (tc *typeChecker) walkStmt(id ast.StmtID) {
	st := tc.builder.Stmts.Get(id)
	if st == nil {
		return
	}
	stmts := tc.builder.Stmts
	switch st.Kind {
	case ast.StmtBlock:
		data, _ := stmts.Block(id)
		pop := tc.pushScope()
		for _, child := range data.Stmts {
			tc.walkStmt(child)
		}
		pop()
	case ast.StmtIf:
		data, _ := stmts.If(id)
		tc.checkCondition(data.Cond)
		tc.walkStmt(data.Then)
		if data.Else.IsValid() {
			tc.walkStmt(data.Else)
		}
	case ast.StmtWhile, ast.StmtDoWhile:
		data, _ := stmts.Loop(id)
		if st.Kind == ast.StmtWhile {
			tc.checkCondition(data.Cond)
		}
		tc.loopDepth++
		tc.walkStmt(data.Body)
		tc.loopDepth--
		if st.Kind == ast.StmtDoWhile {
			tc.checkCondition(data.Cond)
		}
	case ast.StmtSwitch:
		tc.checkSwitch(id)
	case ast.StmtReturn:
		tc.checkReturn(id)
	case ast.StmtBreak:
		tc.loopControl(st, "break")
	case ast.StmtContinue:
		tc.loopControl(st, "continue")
	case ast.StmtExpr:
		data, _ := stmts.Expr(id)
		tc.checkExpr(data.Expr)
	case ast.StmtVarDecl:
		tc.checkVarDecl(id)
	case ast.StmtArrayDecl:
		tc.checkArrayDecl(id)
	case ast.StmtVarInit:
		tc.checkVarInit(id)
	case ast.StmtError:
		// уже сообщено парсером
	}
}

func (tc *typeChecker) checkCondition(cond ast.ExprID) {
	got := tc.checkExpr(cond)
	tc.expect(tc.exprSpan(cond), types.Boolean, got)
}

func (tc *typeChecker) loopControl(st *ast.Stmt, keyword string) {
	if tc.loopDepth == 0 {
		tc.report(diag.SemaLoopControlOutsideLoop, st.Span, "%s cannot be used outside of a loop", keyword)
	}
}

func (tc *typeChecker) checkReturn(id ast.StmtID) {
	data, _ := tc.builder.Stmts.Return(id)
	want := tc.info.Returns
	wantFlat := types.Flatten(want)
	got := make([]types.Type, len(data.Values))
	for i, v := range data.Values {
		got[i] = tc.checkExpr(v)
		if len(data.Values) == len(wantFlat) {
			got[i] = tc.coerce(wantFlat[i], v, got[i])
		}
	}
	value := types.NewTuple(got...)
	if !types.Assignable(want, value) {
		tc.mismatch(tc.builder.Stmts.Get(id).Span, want, value)
	}
}

func (tc *typeChecker) checkVarDecl(id ast.StmtID) {
	data, _ := tc.builder.Stmts.VarDecl(id)
	var init types.Type
	if data.Init.IsValid() {
		init = tc.coerce(data.Type, data.Init, tc.checkExpr(data.Init))
	}
	if !data.Type.IsDeclarable() {
		tc.report(diag.SemaNotDeclarable, data.Name.Span, "The type %s cannot be used for local variables", data.Type)
		return
	}
	v, err := tc.scopes.DeclareVar(tc.scope, symbols.LocalVar{
		Name: data.Name.Text, Type: data.Type, Span: data.Name.Span,
	})
	if err != nil {
		tc.report(diag.SemaDuplicateLocal, data.Name.Span, "Duplicate local variable %s", data.Name.Text)
		return
	}
	tc.result.Decls[id] = Binding{Kind: BindLocal, Local: v}
	tc.info.Locals = append(tc.info.Locals, v)

	if !data.Init.IsValid() {
		if _, ok := data.Type.Default(); !ok {
			tc.report(diag.SemaNoDefaultValue, data.Name.Span, "The type %s has no default value", data.Type)
		}
		return
	}
	tc.expect(tc.exprSpan(data.Init), data.Type, init)
}

func (tc *typeChecker) checkArrayDecl(id ast.StmtID) {
	data, _ := tc.builder.Stmts.ArrayDecl(id)
	size := tc.checkExpr(data.Size)
	tc.expect(tc.exprSpan(data.Size), types.Int, size)
	if !data.Type.IsArrayable() {
		tc.report(diag.SemaNotArrayable, data.Name.Span, "The type %s cannot be used for arrays", data.Type)
		return
	}
	arr, err := tc.scopes.DeclareArray(tc.scope, symbols.LocalArray{
		Name: data.Name.Text, Type: data.Type, Span: data.Name.Span,
	})
	if err != nil {
		tc.report(diag.SemaDuplicateArray, data.Name.Span, "Duplicate array %s", data.Name.Text)
		return
	}
	tc.result.Decls[id] = Binding{Kind: BindArray, Array: arr}
	tc.info.Arrays = append(tc.info.Arrays, arr)
}

// checkVarInit проверяет множественное присваивание: типы значений после
// раскрытия кортежей должны совпасть с типами целей.
func (tc *typeChecker) checkVarInit(id ast.StmtID) {
	data, _ := tc.builder.Stmts.VarInit(id)
	targets := make([]types.Type, len(data.Targets))
	for i, t := range data.Targets {
		targets[i] = tc.checkTarget(t)
	}
	values := make([]types.Type, len(data.Values))
	for i, v := range data.Values {
		values[i] = tc.checkExpr(v)
		if len(data.Values) == len(data.Targets) {
			values[i] = tc.coerce(targets[i], v, values[i])
		}
	}
	want, got := types.NewTuple(targets...), types.NewTuple(values...)
	if types.HasUndefined(want) || types.HasUndefined(got) {
		return
	}
	if len(data.Values) != len(data.Targets) {
		// у элемента массива должна быть своя пара target/value
		for _, t := range data.Targets {
			if _, ok := tc.builder.Exprs.ArrayElem(t); ok {
				tc.report(diag.SemaAssignmentMismatch, tc.builder.Exprs.Get(t).Span,
					"An array element cannot be assigned from a multi-value expression")
				return
			}
		}
	}
	if !types.Assignable(want, got) {
		tc.report(diag.SemaAssignmentMismatch, tc.builder.Stmts.Get(id).Span,
			"Type mismatch: cannot assign (%s) to (%s)", types.Join(types.Flatten(got)), types.Join(types.Flatten(want)))
	}
}

// checkTarget types the left side of an assignment. Only variables and array
// elements can be stored to.
func (tc *typeChecker) checkTarget(id ast.ExprID) types.Type {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.Undefined
	}
	switch expr.Kind {
	case ast.ExprLocalVar, ast.ExprGlobalVar, ast.ExprArrayElem:
		return tc.checkExpr(id)
	case ast.ExprError:
		return tc.record(id, types.Undefined)
	}
	tc.checkExpr(id)
	tc.report(diag.SemaAssignmentMismatch, expr.Span, "The left-hand side of an assignment must be a variable")
	return tc.record(id, types.Undefined)
}
