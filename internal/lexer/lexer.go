package lexer

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// Lexer turns one file (or a byte range of it) into tokens.
//
// Strings with `<expr>` parts are split into ConcatBegin, STRING and
// expression tokens, and ConcatEnd. Every open interpolation is one entry
// on the interps stack; inside an interpolation '>' always closes it.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	pending []token.Token // уже отсканированные, но ещё не выданные токены
	interps []uint32      // смещения открывающих '<'
	prev    token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewSub creates a lexer bounded to [start, end) of file. Spans keep the
// offsets of the enclosing file.
func NewSub(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewRangeCursor(file, start, end),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	tok := lx.next()
	lx.prev = tok
	return tok
}

func (lx *Lexer) next() token.Token {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		if len(lx.interps) > 0 {
			off := lx.interps[len(lx.interps)-1]
			lx.interps = lx.interps[:0]
			lx.errLex(diag.LexUnterminatedInterpolation,
				source.Span{File: lx.file.ID, Start: off, End: off + 1},
				"String interpolation is not closed by '>'")
		}
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '>' && len(lx.interps) > 0:
		lx.interps = lx.interps[:len(lx.interps)-1]
		lx.cursor.Bump()
		return lx.scanStringPart(true)
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case (ch == '-' || ch == '+') && isDec(lx.cursor.PeekAt(1)) && !lx.prev.EndsOperand():
		return lx.scanNumber()
	case ch == '"':
		lx.cursor.Bump()
		return lx.scanStringPart(false)
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// All drains the lexer up to and including EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
