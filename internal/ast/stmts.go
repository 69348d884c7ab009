package ast

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

type Stmts struct {
	Arena      *Arena[Stmt]
	Blocks     *Arena[StmtBlockData]
	Ifs        *Arena[StmtIfData]
	Loops      *Arena[StmtLoopData]
	Switches   *Arena[StmtSwitchData]
	Returns    *Arena[StmtReturnData]
	Exprs      *Arena[StmtExprData]
	VarDecls   *Arena[StmtVarDeclData]
	ArrayDecls *Arena[StmtArrayDeclData]
	VarInits   *Arena[StmtVarInitData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		Blocks:     NewArena[StmtBlockData](capHint / 4),
		Ifs:        NewArena[StmtIfData](capHint / 4),
		Loops:      NewArena[StmtLoopData](capHint / 8),
		Switches:   NewArena[StmtSwitchData](capHint / 8),
		Returns:    NewArena[StmtReturnData](capHint / 4),
		Exprs:      NewArena[StmtExprData](capHint),
		VarDecls:   NewArena[StmtVarDeclData](capHint / 4),
		ArrayDecls: NewArena[StmtArrayDeclData](capHint / 8),
		VarInits:   NewArena[StmtVarInitData](capHint / 4),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewError(span source.Span) StmtID {
	return s.new(StmtError, span, NoPayloadID)
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	p := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(p))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	p := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(p))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

// NewLoop creates a while or do-while statement.
func (s *Stmts) NewLoop(kind StmtKind, span source.Span, cond ExprID, body StmtID) StmtID {
	p := s.Loops.Allocate(StmtLoopData{Cond: cond, Body: body})
	return s.new(kind, span, PayloadID(p))
}

func (s *Stmts) Loop(id StmtID) (*StmtLoopData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtWhile && st.Kind != StmtDoWhile) {
		return nil, false
	}
	return s.Loops.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewSwitch(span source.Span, data StmtSwitchData) StmtID {
	p := s.Switches.Allocate(data)
	return s.new(StmtSwitch, span, PayloadID(p))
}

func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	p, ok := s.payload(id, StmtSwitch)
	if !ok {
		return nil, false
	}
	return s.Switches.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, values []ExprID) StmtID {
	p := s.Returns.Allocate(StmtReturnData{Values: values})
	return s.new(StmtReturn, span, PayloadID(p))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	p := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(p))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewVarDecl(span source.Span, data StmtVarDeclData) StmtID {
	p := s.VarDecls.Allocate(data)
	return s.new(StmtVarDecl, span, PayloadID(p))
}

func (s *Stmts) VarDecl(id StmtID) (*StmtVarDeclData, bool) {
	p, ok := s.payload(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.VarDecls.Get(p), true
}

func (s *Stmts) NewArrayDecl(span source.Span, data StmtArrayDeclData) StmtID {
	p := s.ArrayDecls.Allocate(data)
	return s.new(StmtArrayDecl, span, PayloadID(p))
}

func (s *Stmts) ArrayDecl(id StmtID) (*StmtArrayDeclData, bool) {
	p, ok := s.payload(id, StmtArrayDecl)
	if !ok {
		return nil, false
	}
	return s.ArrayDecls.Get(p), true
}

func (s *Stmts) NewVarInit(span source.Span, targets, values []ExprID) StmtID {
	p := s.VarInits.Allocate(StmtVarInitData{Targets: targets, Values: values})
	return s.new(StmtVarInit, span, PayloadID(p))
}

func (s *Stmts) VarInit(id StmtID) (*StmtVarInitData, bool) {
	p, ok := s.payload(id, StmtVarInit)
	if !ok {
		return nil, false
	}
	return s.VarInits.Get(p), true
}
