package lexer

import (
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и классифицирует слово:
// ключевое слово, def_<type>, switch_<type>, имя типа, имя массива или Ident.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	return token.Token{Kind: classifyWord(text), Span: sp, Text: text}
}

func classifyWord(text string) token.Kind {
	if k, ok := token.LookupKeyword(text); ok {
		return k
	}
	if rest, ok := strings.CutPrefix(text, "def_"); ok {
		if p, ok := types.Lookup(rest); ok && p.IsDeclarable() {
			return token.Define
		}
	}
	if rest, ok := strings.CutPrefix(text, "switch_"); ok {
		if p, ok := types.Lookup(rest); ok && p.IsDeclarable() {
			return token.Switch
		}
	}
	if _, ok := types.Lookup(text); ok {
		return token.TypeName
	}
	if _, ok := types.LookupArray(text); ok {
		return token.ArrayTypeName
	}
	return token.Ident
}
