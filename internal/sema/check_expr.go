package sema

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// checkExpr types id, records the type and returns it. Failures type as
// Undefined after one diagnostic.
func (tc *typeChecker) checkExpr(id ast.ExprID) types.Type {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.Undefined
	}
	return tc.record(id, tc.exprType(id, expr))
}

func (tc *typeChecker) record(id ast.ExprID, t types.Type) types.Type {
	if t == nil {
		t = types.Undefined
	}
	tc.result.ExprTypes[id] = t
	return t
}

func (tc *typeChecker) bind(id ast.ExprID, b Binding) {
	tc.result.Bindings[id] = b
}

func (tc *typeChecker) exprType(id ast.ExprID, expr *ast.Expr) types.Type {
	exprs := tc.builder.Exprs
	switch expr.Kind {
	case ast.ExprBool:
		return types.Boolean
	case ast.ExprInt:
		return types.Int
	case ast.ExprLong:
		return types.Long
	case ast.ExprString:
		return types.String
	case ast.ExprCoord:
		return types.Coordgrid
	case ast.ExprNull:
		return types.Null
	case ast.ExprTypeLit:
		return types.TypeLit
	case ast.ExprIdent:
		name, _ := exprs.Name(id)
		return tc.checkDynamic(id, name.Name, false)
	case ast.ExprDynamic:
		name, _ := exprs.Name(id)
		return tc.checkDynamic(id, name.Name, true)
	case ast.ExprLocalVar:
		return tc.checkLocal(id)
	case ast.ExprArrayElem:
		return tc.checkArrayElem(id)
	case ast.ExprGlobalVar:
		return tc.checkGlobal(id)
	case ast.ExprConstant:
		return tc.checkConstant(id)
	case ast.ExprConcat:
		data, _ := exprs.Concat(id)
		for _, part := range data.Parts {
			got := tc.checkExpr(part)
			tc.expect(tc.exprSpan(part), types.String, got)
		}
		return types.String
	case ast.ExprParen:
		data, _ := exprs.Inner(id)
		return tc.checkExpr(data.Inner)
	case ast.ExprCalc:
		return tc.checkCalc(id)
	case ast.ExprBinary:
		return tc.checkBinary(id)
	case ast.ExprCommand:
		return tc.checkCommand(id)
	case ast.ExprCall:
		return tc.checkCall(id)
	case ast.ExprHook:
		// хук вне аргумента команды: проверяем без transmit-ограничений
		tc.checkHook(id, nil)
		return types.Hook
	}
	return types.Undefined
}

// coerce retypes a string literal naming a graphic when want is GRAPHIC.
func (tc *typeChecker) coerce(want types.Type, id ast.ExprID, got types.Type) types.Type {
	if !types.IsPrimitive(want, types.Graphic) || !types.IsPrimitive(got, types.String) {
		return got
	}
	expr := tc.builder.Exprs.Get(id)
	if expr == nil || expr.Kind != ast.ExprString {
		return got
	}
	lit, _ := tc.builder.Exprs.Literal(id)
	g, ok := tc.tables.LookupGraphic(tc.table, lit.Str)
	if !ok {
		return got
	}
	tc.bind(id, Binding{Kind: BindGraphic, Config: g})
	return tc.record(id, types.Graphic)
}

// checkDynamic resolves a bare name: a local array, a command called without
// arguments, a config, a graphic or an interface entry, in that order.
func (tc *typeChecker) checkDynamic(id ast.ExprID, name ast.Name, scoped bool) types.Type {
	text := name.Text
	if !scoped {
		if arr, ok := tc.scopes.LookupArray(tc.scope, text); ok {
			tc.bind(id, Binding{Kind: BindArray, Array: arr})
			return arr.Ref()
		}
		if cmd, ok := tc.tables.LookupCommand(tc.table, text); ok {
			tc.bind(id, Binding{Kind: BindCommand, Command: cmd})
			if len(types.FlattenAll(cmd.Args)) > 0 {
				tc.report(diag.SemaCommandNotApplicable, name.Span, "The command %s(%s) is not applicable for the arguments ()",
					text, types.Join(types.FlattenAll(cmd.Args)))
			}
			return commandType(cmd.Type)
		}
	}
	if cfg, ok := tc.tables.LookupConfig(tc.table, text); ok {
		tc.bind(id, Binding{Kind: BindConfig, Config: cfg})
		return cfg.Type
	}
	if g, ok := tc.tables.LookupGraphic(tc.table, text); ok {
		tc.bind(id, Binding{Kind: BindGraphic, Config: g})
		return types.Graphic
	}
	if iface, ok := tc.tables.LookupInterface(tc.table, text); ok {
		tc.bind(id, Binding{Kind: BindConfig, Config: iface})
		return iface.Type
	}
	tc.report(diag.SemaUnresolvedSymbol, name.Span, "%s cannot be resolved to a symbol", text)
	return types.Undefined
}

func (tc *typeChecker) checkLocal(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.Name(id)
	if v, ok := tc.scopes.LookupVar(tc.scope, data.Name.Text); ok {
		tc.bind(id, Binding{Kind: BindLocal, Local: v})
		return v.Type
	}
	if arr, ok := tc.scopes.LookupArray(tc.scope, data.Name.Text); ok {
		tc.bind(id, Binding{Kind: BindArray, Array: arr})
		return arr.Ref()
	}
	tc.report(diag.SemaUnresolvedVariable, data.Name.Span, "%s cannot be resolved to a variable", data.Name.Text)
	return types.Undefined
}

func (tc *typeChecker) checkArrayElem(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.ArrayElem(id)
	index := tc.checkExpr(data.Index)
	tc.expect(tc.exprSpan(data.Index), types.Int, index)
	arr, ok := tc.scopes.LookupArray(tc.scope, data.Name.Text)
	if !ok {
		tc.report(diag.SemaUnresolvedArray, data.Name.Span, "%s cannot be resolved to an array", data.Name.Text)
		return types.Undefined
	}
	tc.bind(id, Binding{Kind: BindArray, Array: arr})
	return arr.Type
}

func (tc *typeChecker) checkGlobal(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.Name(id)
	v, ok := tc.tables.LookupVariable(tc.table, data.Name.Text)
	if !ok {
		tc.report(diag.SemaUnresolvedVariable, data.Name.Span, "%s cannot be resolved to a variable", data.Name.Text)
		return types.Undefined
	}
	tc.bind(id, Binding{Kind: BindGlobal, Variable: v})
	return v.Type
}

func (tc *typeChecker) checkConstant(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.Name(id)
	if c, ok := tc.tables.LookupConstant(tc.table, data.Name.Text); ok {
		tc.bind(id, Binding{Kind: BindConstant, Constant: c})
		return c.Type
	}
	if c, ok := tc.tables.LookupRuntimeConstant(tc.table, data.Name.Text); ok {
		tc.bind(id, Binding{Kind: BindConstant, Constant: c, Runtime: true})
		return c.Type
	}
	tc.report(diag.SemaUnresolvedConstant, data.Name.Span, "%s cannot be resolved to a constant", data.Name.Text)
	return types.Undefined
}

func (tc *typeChecker) checkCalc(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.Inner(id)
	tc.calcDepth++
	inner := tc.checkExpr(data.Inner)
	tc.calcDepth--
	if types.HasUndefined(inner) {
		return types.Undefined
	}
	if !types.IsPrimitive(inner, types.Int) && !types.IsPrimitive(inner, types.Long) {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Inner), "Type mismatch: cannot convert from %s to int", inner)
		return types.Undefined
	}
	return inner
}

func commandType(t types.Type) types.Type {
	if t == nil {
		return types.Void
	}
	return t
}
