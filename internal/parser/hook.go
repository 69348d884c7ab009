package parser

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/lexer"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// parseHook разбирает содержимое строки-хука вложенным лексером.
// Спаны остаются в координатах исходного файла.
//
//	hook := name? ('(' args ')')? ('{' exprlist '}')?
func (p *Parser) parseHook(tok token.Token) ast.ExprID {
	if tok.Kind == token.KwNull {
		return p.arenas.Exprs.NewHook(tok.Span, ast.ExprHookData{Null: true})
	}
	if tok.Text == "" {
		return p.arenas.Exprs.NewHook(tok.Span, ast.ExprHookData{})
	}

	lx := lexer.NewSub(p.src, tok.Span.Start+1, tok.Span.End-1, lexer.Options{Reporter: p.opts.Reporter})
	sub := newParser(lx, p.src, p.arenas, p.opts)
	sub.lastSpan = tok.Span

	var data ast.ExprHookData
	if sub.peek().IsName() {
		name := sub.advance()
		data.Name = ast.Name{Text: name.Text, Span: name.Span}
	}
	if sub.at(token.LParen) {
		data.Args = sub.parseArgs("")
	}
	if sub.at(token.LBrace) {
		sub.advance()
		data.HasTransmits = true
		if !sub.at(token.RBrace) {
			data.Transmits = sub.parseExprList()
		}
		sub.expect(token.RBrace, diag.SynBadHook, "Expected '}' to close the transmit list")
	}
	if !sub.at(token.EOF) {
		sub.errf(diag.SynBadHook, sub.peek().Span, "Unexpected %s in hook", describe(sub.peek()))
	}
	return p.arenas.Exprs.NewHook(tok.Span, data)
}
