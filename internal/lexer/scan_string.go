package lexer

import (
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// scanStringPart сканирует тело строки до '"' или '<'. Курсор стоит после
// открывающей кавычки (cont=false) или после закрывающего '>' (cont=true).
//
// Обычная строка "abc" даёт один StringLit со Span, включающим кавычки.
// Строка с интерполяцией даёт ConcatBegin, затем куски StringLit и токены
// выражений, затем ConcatEnd. Пустые куски не выдаются.
func (lx *Lexer) scanStringPart(cont bool) token.Token {
	quote := lx.cursor.Off - 1
	bodyStart := lx.cursor.Mark()
	var sb strings.Builder

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(Mark(quote))
			lx.errLex(diag.LexUnterminatedString, sp, "String literal is not properly closed by a double-quote")
			return lx.closeString(cont, quote, bodyStart, sb.String(), lx.emptySpan())
		}
		b := lx.cursor.Peek()
		switch b {
		case '"':
			bodyEnd := lx.cursor.Off
			lx.cursor.Bump()
			closing := source.Span{File: lx.file.ID, Start: bodyEnd, End: lx.cursor.Off}
			return lx.closeString(cont, quote, bodyStart, sb.String(), closing)
		case '<':
			seg := lx.segment(bodyStart, sb.String())
			lt := lx.cursor.Off
			lx.cursor.Bump()
			lx.interps = append(lx.interps, lt)
			if cont {
				if seg.Text == "" {
					return lx.next()
				}
				return seg
			}
			begin := token.Token{
				Kind: token.ConcatBegin,
				Span: source.Span{File: lx.file.ID, Start: quote, End: quote + 1},
			}
			if seg.Text != "" {
				lx.pending = append(lx.pending, seg)
			}
			return begin
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			r, ok := unescape(lx.cursor.Peek())
			if !ok {
				lx.cursor.Bump()
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart),
					`Invalid escape sequence (valid ones are \b \t \n \f \" \\ \< \>)`)
				continue
			}
			lx.cursor.Bump()
			sb.WriteByte(r)
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}
}

// closeString выдаёт хвост строки. Для продолжения интерполяции это
// кусок StringLit (если не пуст) и ConcatEnd.
func (lx *Lexer) closeString(cont bool, quote uint32, bodyStart Mark, text string, closing source.Span) token.Token {
	if !cont {
		return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(Mark(quote)), Text: text}
	}
	end := token.Token{Kind: token.ConcatEnd, Span: closing}
	if text == "" {
		return end
	}
	seg := token.Token{
		Kind: token.StringLit,
		Span: source.Span{File: lx.file.ID, Start: uint32(bodyStart), End: closing.Start},
		Text: text,
	}
	lx.pending = append(lx.pending, end)
	return seg
}

func (lx *Lexer) segment(bodyStart Mark, text string) token.Token {
	return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(bodyStart), Text: text}
}

func unescape(b byte) (byte, bool) {
	switch b {
	case 'b':
		return '\b', true
	case 't':
		return '\t', true
	case 'n':
		return '\n', true
	case 'f':
		return '\f', true
	case '"', '\\', '<', '>':
		return b, true
	}
	return 0, false
}
