package sema

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func (tc *typeChecker) checkBinary(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.Binary(id)
	left := tc.checkExpr(data.Left)
	right := tc.checkExpr(data.Right)
	op := data.Op

	boolean := op.IsComparison() || op.IsLogical()
	if types.HasUndefined(left) || types.HasUndefined(right) {
		if boolean {
			return types.Boolean
		}
		return types.Undefined
	}

	if op.IsArithmetic() && tc.calcDepth == 0 {
		tc.report(diag.SemaArithmeticOutsideCalc, data.OpSpan, "Arithmetic operations are only allowed inside calc")
		return types.Undefined
	}
	if !operatorApplies(op, left, right) {
		tc.report(diag.SemaOperatorMismatch, data.OpSpan, "The operator '%s' is undefined for the argument type(s) %s, %s",
			op, left, right)
		if boolean {
			return types.Boolean
		}
		return types.Undefined
	}
	if boolean {
		return types.Boolean
	}
	return left
}

func operatorApplies(op ast.BinaryOp, left, right types.Type) bool {
	switch {
	case op.IsEquality():
		return equalityApplies(left, right)
	case op.IsRelational(), op.IsArithmetic():
		return numeric(left) && types.Equal(left, right)
	case op.IsLogical():
		return types.IsPrimitive(left, types.Boolean) && types.IsPrimitive(right, types.Boolean)
	}
	return false
}

func numeric(t types.Type) bool {
	return types.IsPrimitive(t, types.Int) || types.IsPrimitive(t, types.Long)
}

// equalityApplies: оба операнда скаляры одного типа, либо один из них null
// и другой допускает null.
func equalityApplies(left, right types.Type) bool {
	lp, ok1 := left.(types.Primitive)
	rp, ok2 := right.(types.Primitive)
	if !ok1 || !ok2 {
		return false
	}
	switch {
	case lp == types.Null && rp == types.Null:
		return false
	case lp == types.Null:
		return rp.IsNullable()
	case rp == types.Null:
		return lp.IsNullable()
	}
	return lp == rp && lp.StackType() != types.StackNone
}
