package ast

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Literals   *Arena[ExprLiteralData]
	Names      *Arena[ExprNameData]
	Concats    *Arena[ExprConcatData]
	Inners     *Arena[ExprInnerData]
	Binaries   *Arena[ExprBinaryData]
	ArrayElems *Arena[ExprArrayElemData]
	Commands   *Arena[ExprCommandData]
	Calls      *Arena[ExprCallData]
	Hooks      *Arena[ExprHookData]
}

// NewExprs creates per-kind arenas preallocated with capHint; 0 means 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Literals:   NewArena[ExprLiteralData](capHint),
		Names:      NewArena[ExprNameData](capHint),
		Concats:    NewArena[ExprConcatData](capHint / 8),
		Inners:     NewArena[ExprInnerData](capHint / 8),
		Binaries:   NewArena[ExprBinaryData](capHint / 2),
		ArrayElems: NewArena[ExprArrayElemData](capHint / 8),
		Commands:   NewArena[ExprCommandData](capHint / 2),
		Calls:      NewArena[ExprCallData](capHint / 8),
		Hooks:      NewArena[ExprHookData](capHint / 8),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewError(span source.Span) ExprID {
	return e.new(ExprError, span, NoPayloadID)
}

// NewLiteral creates a literal of any literal kind.
func (e *Exprs) NewLiteral(kind ExprKind, span source.Span, data ExprLiteralData) ExprID {
	p := e.Literals.Allocate(data)
	return e.new(kind, span, PayloadID(p))
}

// Literal returns the literal data for a literal expression.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || !expr.Kind.IsLiteral() {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewName creates an identifier, $local, %global, ^constant or scoped
// dynamic reference, depending on kind.
func (e *Exprs) NewName(kind ExprKind, span source.Span, name Name) ExprID {
	p := e.Names.Allocate(ExprNameData{Name: name})
	return e.new(kind, span, PayloadID(p))
}

// Name returns the name payload for name-shaped expressions.
func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprIdent, ExprLocalVar, ExprGlobalVar, ExprConstant, ExprDynamic:
		return e.Names.Get(uint32(expr.Payload)), true
	}
	return nil, false
}

func (e *Exprs) NewConcat(span source.Span, parts []ExprID) ExprID {
	p := e.Concats.Allocate(ExprConcatData{Parts: parts})
	return e.new(ExprConcat, span, PayloadID(p))
}

func (e *Exprs) Concat(id ExprID) (*ExprConcatData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprConcat {
		return nil, false
	}
	return e.Concats.Get(uint32(expr.Payload)), true
}

// NewInner creates a paren or calc wrapper.
func (e *Exprs) NewInner(kind ExprKind, span source.Span, inner ExprID) ExprID {
	p := e.Inners.Allocate(ExprInnerData{Inner: inner})
	return e.new(kind, span, PayloadID(p))
}

func (e *Exprs) Inner(id ExprID) (*ExprInnerData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprParen && expr.Kind != ExprCalc) {
		return nil, false
	}
	return e.Inners.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, data ExprBinaryData) ExprID {
	p := e.Binaries.Allocate(data)
	return e.new(ExprBinary, span, PayloadID(p))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewArrayElem(span source.Span, name Name, index ExprID) ExprID {
	p := e.ArrayElems.Allocate(ExprArrayElemData{Name: name, Index: index})
	return e.new(ExprArrayElem, span, PayloadID(p))
}

func (e *Exprs) ArrayElem(id ExprID) (*ExprArrayElemData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrayElem {
		return nil, false
	}
	return e.ArrayElems.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCommand(span source.Span, data ExprCommandData) ExprID {
	p := e.Commands.Allocate(data)
	return e.new(ExprCommand, span, PayloadID(p))
}

func (e *Exprs) Command(id ExprID) (*ExprCommandData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCommand {
		return nil, false
	}
	return e.Commands.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, data ExprCallData) ExprID {
	p := e.Calls.Allocate(data)
	return e.new(ExprCall, span, PayloadID(p))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewHook(span source.Span, data ExprHookData) ExprID {
	p := e.Hooks.Allocate(data)
	return e.new(ExprHook, span, PayloadID(p))
}

func (e *Exprs) Hook(id ExprID) (*ExprHookData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprHook {
		return nil, false
	}
	return e.Hooks.Get(uint32(expr.Payload)), true
}
