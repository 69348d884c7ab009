package ast

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

type ExprKind uint8

const (
	ExprError ExprKind = iota
	ExprBool
	ExprInt
	ExprLong
	ExprString
	ExprCoord
	ExprNull
	ExprTypeLit
	ExprIdent
	ExprConcat
	ExprParen
	ExprBinary
	ExprLocalVar
	ExprGlobalVar
	ExprArrayElem
	ExprConstant
	ExprDynamic
	ExprCommand
	ExprCall
	ExprHook
	ExprCalc
)

var exprKindNames = [...]string{
	ExprError:     "Error",
	ExprBool:      "Bool",
	ExprInt:       "Int",
	ExprLong:      "Long",
	ExprString:    "String",
	ExprCoord:     "Coord",
	ExprNull:      "Null",
	ExprTypeLit:   "TypeLit",
	ExprIdent:     "Ident",
	ExprConcat:    "Concat",
	ExprParen:     "Paren",
	ExprBinary:    "Binary",
	ExprLocalVar:  "LocalVar",
	ExprGlobalVar: "GlobalVar",
	ExprArrayElem: "ArrayElem",
	ExprConstant:  "Constant",
	ExprDynamic:   "Dynamic",
	ExprCommand:   "Command",
	ExprCall:      "Call",
	ExprHook:      "Hook",
	ExprCalc:      "Calc",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// IsLiteral reports whether the kind is one of the literal kinds.
func (k ExprKind) IsLiteral() bool {
	return k >= ExprBool && k <= ExprTypeLit
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprLiteralData holds the decoded value of any literal; only the field
// matching the expression kind is meaningful.
type ExprLiteralData struct {
	Bool bool
	Int  int32 // также упакованная координата
	Long int64
	Str  string
	Type types.Primitive
}

// ExprNameData is the payload of every expression that is just a name:
// identifiers, $local, %global, ^constant and interface:component.
type ExprNameData struct {
	Name Name
}

type ExprConcatData struct {
	Parts []ExprID
}

// ExprInnerData wraps a single child: parens and calc.
type ExprInnerData struct {
	Inner ExprID
}

type BinaryOp uint8

const (
	OpEq BinaryOp = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd // логическое
	OpOr  // логическое
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
)

var binaryOpText = [...]string{
	OpEq:     "=",
	OpNe:     "!",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpAnd:    "&",
	OpOr:     "|",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpBitAnd: "&",
	OpBitOr:  "|",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

func (op BinaryOp) IsEquality() bool   { return op == OpEq || op == OpNe }
func (op BinaryOp) IsRelational() bool { return op >= OpLt && op <= OpGe }
func (op BinaryOp) IsLogical() bool    { return op == OpAnd || op == OpOr }

// IsArithmetic covers the calc-only operators, bitwise included.
func (op BinaryOp) IsArithmetic() bool { return op >= OpAdd }

// IsComparison reports whether the operator produces a boolean from two
// operands of equal kind.
func (op BinaryOp) IsComparison() bool { return op.IsEquality() || op.IsRelational() }

type ExprBinaryData struct {
	Op     BinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprArrayElemData struct {
	Name  Name
	Index ExprID
}

type ExprCommandData struct {
	Name        Name
	Args        []ExprID
	Alternative bool
}

// ExprCallData is `~name(args)`: a call through a trigger operator.
type ExprCallData struct {
	Operator string
	Trigger  string
	Name     Name
	Args     []ExprID
}

// ExprHookData is the parsed content of a hook string. Null hooks come
// from a `null` argument; empty hooks from "".
type ExprHookData struct {
	Null         bool
	Name         Name
	Args         []ExprID
	HasTransmits bool
	Transmits    []ExprID
}

// Empty reports whether the hook has no target script.
func (h *ExprHookData) Empty() bool { return h.Null || h.Name.Empty() }
