package ast

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

type StmtKind uint8

const (
	StmtError StmtKind = iota
	StmtBlock
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtSwitch
	StmtReturn
	StmtBreak
	StmtContinue
	StmtExpr
	StmtVarDecl
	StmtArrayDecl
	StmtVarInit
)

var stmtKindNames = [...]string{
	StmtError:     "Error",
	StmtBlock:     "Block",
	StmtIf:        "If",
	StmtWhile:     "While",
	StmtDoWhile:   "DoWhile",
	StmtSwitch:    "Switch",
	StmtReturn:    "Return",
	StmtBreak:     "Break",
	StmtContinue:  "Continue",
	StmtExpr:      "Expr",
	StmtVarDecl:   "VarDecl",
	StmtArrayDecl: "ArrayDecl",
	StmtVarInit:   "VarInit",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID без else
}

// StmtLoopData is shared by while and do-while.
type StmtLoopData struct {
	Cond ExprID
	Body StmtID
}

// SwitchCase is one `case` arm. Default arms have no keys.
type SwitchCase struct {
	Keys    []ExprID
	Default bool
	Body    []StmtID
	Span    source.Span
}

type StmtSwitchData struct {
	Type     types.Primitive // из суффикса switch_<type>
	TypeSpan source.Span
	Cond     ExprID
	Cases    []SwitchCase
}

// DefaultCase returns the index of the default arm or -1.
func (d *StmtSwitchData) DefaultCase() int {
	for i := range d.Cases {
		if d.Cases[i].Default {
			return i
		}
	}
	return -1
}

type StmtReturnData struct {
	Values []ExprID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtVarDeclData struct {
	Type types.Primitive
	Name Name
	Init ExprID // NoExprID без инициализатора
}

type StmtArrayDeclData struct {
	Type types.Primitive
	Name Name
	Size ExprID
}

// StmtVarInitData is `$a, $b(1), %c = expr, expr;`.
type StmtVarInitData struct {
	Targets []ExprID
	Values  []ExprID
}
