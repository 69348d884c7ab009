package lexer

import "github.com/waleedyaseen/RuneScript-sub000/internal/diag"

// skipTrivia пропускает пробелы, // и /* */ комментарии.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			lx.cursor.Bump()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed := false
			for !lx.cursor.EOF() {
				if lx.try2('*', '/') {
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "Unexpected end of comment")
			}
		default:
			return
		}
	}
}
