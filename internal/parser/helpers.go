package parser

import (
	"fmt"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.ts.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan: лучший span для диагностики; на EOF указываем за последним токеном.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.EndPoint()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectName accepts any token usable as a name.
func (p *Parser) expectName(what string) (ast.Name, bool) {
	if p.peek().IsName() {
		tok := p.advance()
		return ast.Name{Text: tok.Text, Span: tok.Span}, true
	}
	p.report(diag.SynExpectIdentifier, p.diagSpan(), fmt.Sprintf("Expected %s but got %s", what, describe(p.peek())))
	return ast.Name{Span: p.diagSpan()}, false
}

func (p *Parser) errf(code diag.Code, sp source.Span, format string, args ...any) {
	p.report(code, sp, fmt.Sprintf(format, args...))
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

// resyncStmt прокручивает до ';' (съедая его), '}' или границы скрипта.
func (p *Parser) resyncStmt() {
	for !p.atBoundary() && !p.at(token.RBrace) {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

// resyncScript прокручивает до начала следующего скрипта.
func (p *Parser) resyncScript() {
	for !p.atBoundary() {
		p.advance()
	}
}

// spanFrom covers everything from start up to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.StringLit:
		return fmt.Sprintf("%q", tok.Text)
	}
	if tok.Text != "" {
		return "'" + tok.Text + "'"
	}
	return tok.Kind.String()
}
