package codegen

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

var intBranches = map[ast.BinaryOp]Opcode{
	ast.OpEq: OpBranchEquals,
	ast.OpNe: OpBranchNot,
	ast.OpLt: OpBranchLessThan,
	ast.OpGt: OpBranchGreaterThan,
	ast.OpLe: OpBranchLessThanOrEquals,
	ast.OpGe: OpBranchGreaterThanOrEquals,
}

var longBranches = map[ast.BinaryOp]Opcode{
	ast.OpEq: OpLongBranchEquals,
	ast.OpNe: OpLongBranchNot,
	ast.OpLt: OpLongBranchLessThan,
	ast.OpGt: OpLongBranchGreaterThan,
	ast.OpLe: OpLongBranchLessThanOrEquals,
	ast.OpGe: OpLongBranchGreaterThanOrEquals,
}

var stringBranches = map[ast.BinaryOp]Opcode{
	ast.OpEq: OpStringBranchEquals,
	ast.OpNe: OpStringBranchNot,
}

// condition jumps to t when the boolean id holds and to f otherwise. A nil f
// lets the false path fall through into whatever block is bound next.
func (g *generator) condition(id ast.ExprID, t Label, f *Label) {
	exprs := g.builder.Exprs
	e := exprs.Get(id)
	if e == nil {
		panic(Invariantf("condition #%d does not exist", id))
	}
	switch e.Kind {
	case ast.ExprParen:
		data, _ := exprs.Inner(id)
		g.condition(data.Inner, t, f)
		return
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		switch {
		case data.Op.IsComparison():
			op := g.branchOpcode(data)
			g.expr(data.Left)
			g.expr(data.Right)
			g.emit(op, t)
			if f != nil {
				g.branch(*f)
			}
			return
		case data.Op == ast.OpOr:
			retry := g.labels.Generate("cond_or")
			g.condition(data.Left, t, &retry)
			g.bind(retry)
			g.condition(data.Right, t, f)
			return
		case data.Op == ast.OpAnd:
			next := g.labels.Generate("cond_and")
			if f == nil {
				end := g.labels.Generate("cond_end")
				g.condition(data.Left, next, &end)
				g.bind(next)
				g.condition(data.Right, t, &end)
				g.bind(end)
				return
			}
			g.condition(data.Left, next, f)
			g.bind(next)
			g.condition(data.Right, t, f)
			return
		}
	}
	g.expr(id)
	g.emit(OpBranchIfTrue, t)
	if f != nil {
		g.branch(*f)
	}
}

// branchOpcode picks the compare family from the operand stack. A null side
// takes the stack of the other side.
func (g *generator) branchOpcode(data *ast.ExprBinaryData) Opcode {
	left := g.typeOf(data.Left)
	if types.IsPrimitive(left, types.Null) {
		left = g.typeOf(data.Right)
	}
	table := intBranches
	switch types.StackTypeOf(left) {
	case types.StackLong:
		table = longBranches
	case types.StackString:
		table = stringBranches
	}
	op, ok := table[data.Op]
	if !ok {
		panic(Invariantf("no branch opcode for %s on %s", data.Op, left))
	}
	return op
}

// conditionValue materializes a boolean as 1 or 0 on the int stack.
func (g *generator) conditionValue(id ast.ExprID) {
	yes := g.labels.Generate("cond_true")
	no := g.labels.Generate("cond_false")
	end := g.labels.Generate("cond_value")
	g.condition(id, yes, &no)
	g.bind(yes)
	g.emit(OpPushIntConstant, IntOperand(1))
	g.branch(end)
	g.bind(no)
	g.emit(OpPushIntConstant, IntOperand(0))
	g.branch(end)
	g.bind(end)
}
