package sema

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func (tc *typeChecker) checkSwitch(id ast.StmtID) {
	data, _ := tc.builder.Stmts.Switch(id)
	tc.result.SwitchTypes[id] = data.Type

	cond := tc.coerce(data.Type, data.Cond, tc.checkExpr(data.Cond))
	tc.expect(tc.exprSpan(data.Cond), data.Type, cond)

	seen := make(map[int32]struct{})
	for _, c := range data.Cases {
		for _, key := range c.Keys {
			got := tc.coerce(data.Type, key, tc.checkExpr(key))
			if !tc.expect(tc.exprSpan(key), data.Type, got) {
				continue
			}
			value, ok := tc.constKey(key)
			if !ok {
				tc.report(diag.SemaCaseNotConstant, tc.exprSpan(key), "Case keys must be known at compile-time.")
				continue
			}
			if _, dup := seen[value]; dup {
				tc.report(diag.SemaDuplicateCase, tc.exprSpan(key), "Duplicate case")
				continue
			}
			seen[value] = struct{}{}
			tc.result.SwitchKeys[key] = value
		}
		pop := tc.pushScope()
		for _, st := range c.Body {
			tc.walkStmt(st)
		}
		pop()
	}
}

// constKey resolves an already checked case key to its int32 value.
func (tc *typeChecker) constKey(id ast.ExprID) (int32, bool) {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return 0, false
	}
	switch expr.Kind {
	case ast.ExprInt, ast.ExprCoord:
		lit, _ := tc.builder.Exprs.Literal(id)
		return lit.Int, true
	case ast.ExprBool:
		lit, _ := tc.builder.Exprs.Literal(id)
		if lit.Bool {
			return 1, true
		}
		return 0, true
	case ast.ExprNull:
		return -1, true
	case ast.ExprParen:
		inner, _ := tc.builder.Exprs.Inner(id)
		return tc.constKey(inner.Inner)
	}
	b, ok := tc.result.Bindings[id]
	if !ok {
		return 0, false
	}
	switch b.Kind {
	case BindConstant:
		if b.Constant.Value.Stack != types.StackInt {
			return 0, false
		}
		return b.Constant.Value.Int, true
	case BindConfig, BindGraphic:
		return b.Config.ID, true
	}
	return 0, false
}
