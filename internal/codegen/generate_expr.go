package codegen

import (
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/sema"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func (g *generator) expr(id ast.ExprID) {
	exprs := g.builder.Exprs
	e := exprs.Get(id)
	if e == nil {
		panic(Invariantf("expression #%d does not exist", id))
	}
	switch e.Kind {
	case ast.ExprBool:
		lit, _ := exprs.Literal(id)
		g.emit(OpPushIntConstant, IntOperand(boolInt(lit.Bool)))
	case ast.ExprInt, ast.ExprCoord:
		lit, _ := exprs.Literal(id)
		g.emit(OpPushIntConstant, IntOperand(lit.Int))
	case ast.ExprLong:
		lit, _ := exprs.Literal(id)
		g.emit(OpPushLongConstant, LongOperand(lit.Long))
	case ast.ExprString:
		lit, _ := exprs.Literal(id)
		if b, ok := g.res.Bindings[id]; ok && b.Kind == sema.BindGraphic {
			g.emit(OpPushIntConstant, IntOperand(b.Config.ID))
			return
		}
		g.emit(OpPushStringConstant, StringOperand(lit.Str))
	case ast.ExprNull:
		g.emit(OpPushIntConstant, IntOperand(-1))
	case ast.ExprTypeLit:
		lit, _ := exprs.Literal(id)
		g.emit(OpPushIntConstant, IntOperand(lit.Type.Code()))
	case ast.ExprIdent, ast.ExprDynamic:
		g.dynamic(id)
	case ast.ExprLocalVar:
		g.local(id)
	case ast.ExprGlobalVar:
		b := g.binding(id)
		v := b.Variable
		g.emit(varOpcode(varKey{Global: true, Domain: v.Domain, Stack: v.Type.StackType(), Push: true}), IntOperand(v.ID))
	case ast.ExprArrayElem:
		data, _ := exprs.ArrayElem(id)
		b := g.binding(id)
		g.expr(data.Index)
		g.emit(OpPushArrayInt, IntOperand(slotOperand(b.Array.Slot)))
	case ast.ExprConstant:
		g.pushValue(g.binding(id).Constant.Value)
	case ast.ExprConcat:
		data, _ := exprs.Concat(id)
		for _, part := range data.Parts {
			g.expr(part)
		}
		g.emit(OpJoinString, IntOperand(int32(len(data.Parts))))
	case ast.ExprParen, ast.ExprCalc:
		data, _ := exprs.Inner(id)
		g.expr(data.Inner)
	case ast.ExprBinary:
		g.binary(id)
	case ast.ExprCommand:
		data, _ := exprs.Command(id)
		b := g.binding(id)
		for _, arg := range data.Args {
			g.expr(arg)
		}
		g.emit(OpCommand, CommandRef{Name: b.Command.Name, Opcode: b.Command.Opcode, Alternative: data.Alternative})
	case ast.ExprCall:
		g.call(id)
	case ast.ExprHook:
		g.hook(id)
	default:
		panic(Invariantf("cannot generate %s expression", e.Kind))
	}
}

func boolInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

func (g *generator) dynamic(id ast.ExprID) {
	b := g.binding(id)
	switch b.Kind {
	case sema.BindArray:
		g.emit(OpPushIntConstant, IntOperand(slotOperand(b.Array.Slot)))
	case sema.BindCommand:
		g.emit(OpCommand, CommandRef{Name: b.Command.Name, Opcode: b.Command.Opcode})
	case sema.BindConfig, sema.BindGraphic:
		g.emit(OpPushIntConstant, IntOperand(b.Config.ID))
	default:
		panic(Invariantf("cannot generate a dynamic bound to a %s", b.Kind))
	}
}

func (g *generator) local(id ast.ExprID) {
	b := g.binding(id)
	switch b.Kind {
	case sema.BindLocal:
		l := g.locals.lookup(b.Local.ID)
		g.emit(varOpcode(varKey{Stack: l.Stack(), Push: true}), l)
	case sema.BindArray:
		g.emit(OpPushIntConstant, IntOperand(slotOperand(b.Array.Slot)))
	default:
		panic(Invariantf("local bound to a %s", b.Kind))
	}
}

var intArith = map[ast.BinaryOp]Opcode{
	ast.OpAdd:    OpAdd,
	ast.OpSub:    OpSub,
	ast.OpMul:    OpMul,
	ast.OpDiv:    OpDiv,
	ast.OpMod:    OpMod,
	ast.OpBitAnd: OpAnd,
	ast.OpBitOr:  OpOr,
}

var longArith = map[ast.BinaryOp]Opcode{
	ast.OpAdd:    OpLongAdd,
	ast.OpSub:    OpLongSub,
	ast.OpMul:    OpLongMul,
	ast.OpDiv:    OpLongDiv,
	ast.OpMod:    OpLongMod,
	ast.OpBitAnd: OpLongAnd,
	ast.OpBitOr:  OpLongOr,
}

func (g *generator) binary(id ast.ExprID) {
	data, _ := g.builder.Exprs.Binary(id)
	if data.Op.IsComparison() || data.Op.IsLogical() {
		g.conditionValue(id)
		return
	}
	table := intArith
	if types.StackTypeOf(g.typeOf(data.Left)) == types.StackLong {
		table = longArith
	}
	op, ok := table[data.Op]
	if !ok {
		panic(Invariantf("no opcode for operator %s", data.Op))
	}
	g.expr(data.Left)
	g.expr(data.Right)
	g.emit(op, nil)
}

func (g *generator) call(id ast.ExprID) {
	data, _ := g.builder.Exprs.Call(id)
	b := g.binding(id)
	op, ok := LookupOpcode(b.Trigger.Opcode)
	if !ok {
		panic(Invariantf("trigger %s has no call opcode (%q)", b.Trigger.Name, b.Trigger.Opcode))
	}
	for _, arg := range data.Args {
		g.expr(arg)
	}
	g.emit(op, ScriptRef{Trigger: b.Script.Trigger, Name: b.Script.Name, ID: b.Script.ID})
}

// hook pushes the target script, its arguments, the transmit list and the
// descriptor string the client decodes them with.
func (g *generator) hook(id ast.ExprID) {
	data, _ := g.builder.Exprs.Hook(id)
	if data.Empty() {
		g.emit(OpPushStringConstant, StringOperand(""))
		return
	}
	b := g.binding(id)
	if b.Kind != sema.BindHook {
		panic(Invariantf("hook bound to a %s", b.Kind))
	}
	g.emit(OpPushIntConstant, ScriptRef{Trigger: b.Script.Trigger, Name: b.Script.Name, ID: b.Script.ID})
	for _, arg := range data.Args {
		g.expr(arg)
	}
	for _, tr := range data.Transmits {
		g.emit(OpPushIntConstant, IntOperand(g.transmitID(tr)))
	}
	if data.HasTransmits {
		g.emit(OpPushIntConstant, IntOperand(int32(len(data.Transmits))))
	}
	g.emit(OpPushStringConstant, StringOperand(hookDescriptor(b.Script.FlatParams(), data.HasTransmits)))
}

func hookDescriptor(params []types.Type, transmits bool) string {
	var sb strings.Builder
	for _, p := range params {
		switch t := p.(type) {
		case types.Primitive:
			sb.WriteRune(t.Code())
		case types.ArrayReference:
			sb.WriteRune(t.Elem.Code())
		}
	}
	if transmits {
		sb.WriteByte('Y')
	}
	return sb.String()
}

func (g *generator) transmitID(id ast.ExprID) int32 {
	b := g.binding(id)
	switch b.Kind {
	case sema.BindGlobal:
		return b.Variable.ID
	case sema.BindConfig, sema.BindGraphic:
		return b.Config.ID
	case sema.BindConstant:
		if b.Constant.Value.Stack == types.StackInt {
			return b.Constant.Value.Int
		}
	}
	panic(Invariantf("transmit entry bound to a %s", b.Kind))
}
