package parser

import (
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// parseStmt никогда не возвращает NoStmtID: при ошибке синтезируется StmtError.
func (p *Parser) parseStmt() ast.StmtID {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.Switch:
		return p.parseSwitch()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak, token.KwContinue:
		tok := p.advance()
		if !p.semicolon() {
			return p.errorStmt(start)
		}
		if tok.Kind == token.KwBreak {
			return p.arenas.Stmts.NewBreak(p.spanFrom(start))
		}
		return p.arenas.Stmts.NewContinue(p.spanFrom(start))
	case token.Define:
		return p.parseDeclaration()
	case token.Dollar, token.Percent:
		if p.isAssignment() {
			return p.parseAssignment()
		}
	case token.RBrace, token.Semicolon, token.RParen, token.Comma, token.Colon, token.KwElse, token.KwCase:
		tok := p.advance()
		p.errf(diag.SynExpectStatement, tok.Span, "Expected a statement but got %s", describe(tok))
		return p.arenas.Stmts.NewError(tok.Span)
	}

	expr := p.parseExpr()
	if !p.semicolon() {
		return p.errorStmt(start)
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr)
}

func (p *Parser) semicolon() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "Expected ';' at the end of the statement")
	return ok
}

func (p *Parser) errorStmt(start source.Span) ast.StmtID {
	p.resyncStmt()
	return p.arenas.Stmts.NewError(p.spanFrom(start))
}

// stmt := '{' stmt* '}'
func (p *Parser) parseBlock() ast.StmtID {
	open := p.advance()
	var stmts []ast.StmtID
	for !p.at(token.RBrace) {
		if p.atBoundary() {
			p.report(diag.SynUnclosedBrace, open.Span, "The block is not closed by '}'")
			return p.arenas.Stmts.NewBlock(p.spanFrom(open.Span), stmts)
		}
		before := p.peek().Span
		stmts = append(stmts, p.parseStmt())
		if p.peek().Span == before && !p.atBoundary() && !p.at(token.RBrace) {
			p.advance()
		}
	}
	p.advance() // }
	return p.arenas.Stmts.NewBlock(p.spanFrom(open.Span), stmts)
}

// parenExpr := '(' expr ')'
func (p *Parser) parenExpr() ast.ExprID {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expected '('")
	if !ok {
		return p.arenas.Exprs.NewError(open.Span)
	}
	e := p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')'")
	return e
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.advance().Span
	cond := p.parenExpr()
	then := p.parseStmt()
	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els = p.parseStmt()
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(start), cond, then, els)
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.advance().Span
	cond := p.parenExpr()
	body := p.parseStmt()
	return p.arenas.Stmts.NewLoop(ast.StmtWhile, p.spanFrom(start), cond, body)
}

// 'do' stmt 'while' '(' expr ')' ';'
func (p *Parser) parseDoWhile() ast.StmtID {
	start := p.advance().Span
	body := p.parseStmt()
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "Expected 'while' after the do body"); !ok {
		return p.errorStmt(start)
	}
	cond := p.parenExpr()
	if !p.semicolon() {
		return p.errorStmt(start)
	}
	return p.arenas.Stmts.NewLoop(ast.StmtDoWhile, p.spanFrom(start), cond, body)
}

// Switch '(' expr ')' '{' case* '}'
func (p *Parser) parseSwitch() ast.StmtID {
	tok := p.advance()
	data := ast.StmtSwitchData{TypeSpan: tok.Span}
	data.Type, _ = types.Lookup(strings.TrimPrefix(tok.Text, "switch_"))
	data.Cond = p.parenExpr()
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "Expected '{' to open the switch body")
	if !ok {
		return p.errorStmt(tok.Span)
	}
	hasDefault := false
	for !p.at(token.RBrace) {
		if p.atBoundary() {
			p.report(diag.SynUnclosedBrace, open.Span, "The switch is not closed by '}'")
			return p.arenas.Stmts.NewSwitch(p.spanFrom(tok.Span), data)
		}
		c, ok := p.parseCase()
		if !ok {
			continue
		}
		if c.Default {
			if hasDefault {
				p.report(diag.SynDuplicateDefault, c.Span, "Duplicate default case")
				continue
			}
			hasDefault = true
		}
		data.Cases = append(data.Cases, c)
	}
	p.advance() // }
	return p.arenas.Stmts.NewSwitch(p.spanFrom(tok.Span), data)
}

// case := 'case' ('default' | expr (',' expr)*) ':' stmt*
func (p *Parser) parseCase() (ast.SwitchCase, bool) {
	start, ok := p.expect(token.KwCase, diag.SynUnexpectedToken, "Expected 'case'")
	if !ok {
		p.resyncStmt()
		for !p.atOr(token.KwCase, token.RBrace) && !p.atBoundary() {
			p.advance()
		}
		return ast.SwitchCase{}, false
	}
	var c ast.SwitchCase
	if p.at(token.KwDefault) {
		p.advance()
		c.Default = true
	} else {
		p.caseKeys++
		c.Keys = append(c.Keys, p.parseExpr())
		for p.at(token.Comma) {
			p.advance()
			c.Keys = append(c.Keys, p.parseExpr())
		}
		p.caseKeys--
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "Expected ':' after the case keys"); !ok {
		p.resyncStmt()
	}
	for !p.atOr(token.KwCase, token.RBrace) && !p.atBoundary() {
		before := p.peek().Span
		c.Body = append(c.Body, p.parseStmt())
		if p.peek().Span == before && !p.atBoundary() {
			p.advance()
		}
	}
	c.Span = p.spanFrom(start.Span)
	return c, true
}

// 'return' ('(' exprlist? ')')? ';'
func (p *Parser) parseReturn() ast.StmtID {
	start := p.advance().Span
	var values []ast.ExprID
	if p.at(token.LParen) {
		p.advance()
		if !p.at(token.RParen) {
			values = p.parseExprList()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')' after the return values"); !ok {
			return p.errorStmt(start)
		}
	}
	if !p.semicolon() {
		return p.errorStmt(start)
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(start), values)
}

// Define '$' name ('=' expr)? ';' | Define '$' name '(' expr ')' ';'
func (p *Parser) parseDeclaration() ast.StmtID {
	tok := p.advance()
	prim, _ := types.Lookup(strings.TrimPrefix(tok.Text, "def_"))
	if _, ok := p.expect(token.Dollar, diag.SynUnexpectedToken, "Expected '$' before the variable name"); !ok {
		return p.errorStmt(tok.Span)
	}
	name, ok := p.expectName("a variable name")
	if !ok {
		return p.errorStmt(tok.Span)
	}
	if p.at(token.LParen) {
		p.advance()
		size := p.parseExpr()
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')' after the array size"); !ok {
			return p.errorStmt(tok.Span)
		}
		if !p.semicolon() {
			return p.errorStmt(tok.Span)
		}
		return p.arenas.Stmts.NewArrayDecl(p.spanFrom(tok.Span), ast.StmtArrayDeclData{Type: prim, Name: name, Size: size})
	}
	init := ast.NoExprID
	if p.at(token.Equal) {
		p.advance()
		init = p.parseExpr()
	}
	if !p.semicolon() {
		return p.errorStmt(tok.Span)
	}
	return p.arenas.Stmts.NewVarDecl(p.spanFrom(tok.Span), ast.StmtVarDeclData{Type: prim, Name: name, Init: init})
}

// isAssignment смотрит вперёд: target (',' target)* '='.
func (p *Parser) isAssignment() bool {
	i := 0
	for {
		sigil := p.ts.Kind(i)
		if sigil != token.Dollar && sigil != token.Percent {
			return false
		}
		if !p.ts.Peek(i + 1).IsName() {
			return false
		}
		i += 2
		if sigil == token.Dollar && p.ts.Kind(i) == token.LParen {
			depth := 0
			for {
				switch p.ts.Kind(i) {
				case token.LParen:
					depth++
				case token.RParen:
					depth--
				case token.EOF, token.Semicolon:
					return false
				}
				i++
				if depth == 0 {
					break
				}
			}
		}
		switch p.ts.Kind(i) {
		case token.Equal:
			return true
		case token.Comma:
			i++
		default:
			return false
		}
	}
}

// target (',' target)* '=' exprlist ';'
func (p *Parser) parseAssignment() ast.StmtID {
	start := p.peek().Span
	var targets []ast.ExprID
	for {
		targets = append(targets, p.parseTarget())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Equal, diag.SynUnexpectedToken, "Expected '=' in the assignment"); !ok {
		return p.errorStmt(start)
	}
	values := p.parseExprList()
	if !p.semicolon() {
		return p.errorStmt(start)
	}
	return p.arenas.Stmts.NewVarInit(p.spanFrom(start), targets, values)
}

func (p *Parser) parseTarget() ast.ExprID {
	sigil := p.advance()
	name, _ := p.expectName("a variable name")
	if sigil.Kind == token.Percent {
		return p.arenas.Exprs.NewName(ast.ExprGlobalVar, sigil.Span.Cover(name.Span), name)
	}
	if p.at(token.LParen) {
		p.advance()
		index := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')' after the array index")
		return p.arenas.Exprs.NewArrayElem(p.spanFrom(sigil.Span), name, index)
	}
	return p.arenas.Exprs.NewName(ast.ExprLocalVar, sigil.Span.Cover(name.Span), name)
}
