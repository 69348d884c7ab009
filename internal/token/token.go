package token

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token starts a literal expression.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, LongLit, CoordLit, StringLit, ConcatBegin, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwTrue && t.Kind <= KwCalc
}

// IsName reports whether the token may be used where a name is expected.
// Type words double as names: a config may be called "coord", a script "int".
func (t Token) IsName() bool {
	switch t.Kind {
	case Ident, TypeName, ArrayTypeName:
		return true
	default:
		return false
	}
}

// EndsOperand reports whether a token can end an operand. The lexer uses it
// to tell a binary minus from the sign of a number literal.
func (t Token) EndsOperand() bool {
	switch t.Kind {
	case Ident, IntLit, LongLit, CoordLit, StringLit, ConcatEnd, KwTrue, KwFalse, KwNull,
		TypeName, RParen, RBracket, RBrace:
		return true
	default:
		return false
	}
}
