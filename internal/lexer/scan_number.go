package lexer

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// Поддержка: 123, -5, 0x1F, 10L, 0x10L и координаты 0_50_50_0_0.
// Text хранит лексему без суффикса L; разбор значения делает парсер.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if b := lx.cursor.Peek(); b == '-' || b == '+' {
		lx.cursor.Bump()
	}

	kind := token.IntLit
	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if !isHex(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "Expected a hexadecimal digit after '0x'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '_' && isDec(lx.cursor.PeekAt(1)) {
			kind = token.CoordLit
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	text := string(lx.file.Content[uint32(start):lx.cursor.Off])
	if kind == token.IntLit && (lx.cursor.Peek() == 'L' || lx.cursor.Peek() == 'l') {
		lx.cursor.Bump()
		kind = token.LongLit
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: text}
}
