package parser

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinary(1)
}

func (p *Parser) parseExprList() []ast.ExprID {
	list := []ast.ExprID{p.parseExpr()}
	for p.at(token.Comma) {
		p.advance()
		list = append(list, p.parseExpr())
	}
	return list
}

// parseBinary: precedence climbing начиная с minPrec.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parsePrimary()
	for {
		tok := p.peek()
		info, ok := p.binaryOperator(tok.Kind)
		if !ok || info.prec < minPrec {
			return left
		}
		p.advance()
		next := info.prec + 1
		if info.assoc == assocRight {
			next = info.prec
		}
		right := p.parseBinary(next)
		sp := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(sp, ast.ExprBinaryData{Op: info.op, OpSpan: tok.Span, Left: left, Right: right})
	}
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	exprs := p.arenas.Exprs
	switch tok.Kind {
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')' to close the parenthesized expression")
		return exprs.NewInner(ast.ExprParen, p.spanFrom(tok.Span), inner)
	case token.IntLit:
		p.advance()
		v, _ := p.intValue(tok)
		return exprs.NewLiteral(ast.ExprInt, tok.Span, ast.ExprLiteralData{Int: v})
	case token.LongLit:
		p.advance()
		v, _ := p.longValue(tok)
		return exprs.NewLiteral(ast.ExprLong, tok.Span, ast.ExprLiteralData{Long: v})
	case token.CoordLit:
		p.advance()
		v, _ := p.coordValue(tok)
		return exprs.NewLiteral(ast.ExprCoord, tok.Span, ast.ExprLiteralData{Int: v})
	case token.StringLit:
		p.advance()
		return exprs.NewLiteral(ast.ExprString, tok.Span, ast.ExprLiteralData{Str: tok.Text})
	case token.KwTrue, token.KwFalse:
		p.advance()
		return exprs.NewLiteral(ast.ExprBool, tok.Span, ast.ExprLiteralData{Bool: tok.Kind == token.KwTrue})
	case token.KwNull:
		p.advance()
		return exprs.NewLiteral(ast.ExprNull, tok.Span, ast.ExprLiteralData{})
	case token.TypeName:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCommand(tok, ast.Name{Text: tok.Text, Span: tok.Span}, false)
		}
		prim, _ := types.Lookup(tok.Text)
		return exprs.NewLiteral(ast.ExprTypeLit, tok.Span, ast.ExprLiteralData{Type: prim})
	case token.ConcatBegin:
		return p.parseConcat()
	case token.Dollar:
		p.advance()
		name, ok := p.expectName("a local variable name")
		if !ok {
			return exprs.NewError(tok.Span)
		}
		if p.at(token.LParen) {
			p.advance()
			index := p.parseExpr()
			p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')' after the array index")
			return exprs.NewArrayElem(p.spanFrom(tok.Span), name, index)
		}
		return exprs.NewName(ast.ExprLocalVar, tok.Span.Cover(name.Span), name)
	case token.Percent:
		return p.parseSigilName(ast.ExprGlobalVar, "a global variable name")
	case token.Caret:
		return p.parseSigilName(ast.ExprConstant, "a constant name")
	case token.Dot:
		p.advance()
		name, ok := p.expectName("a command name")
		if !ok {
			return exprs.NewError(tok.Span)
		}
		return p.parseCommand(tok, name, true)
	case token.KwCalc:
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expected '(' after calc"); !ok {
			return exprs.NewError(tok.Span)
		}
		p.calcDepth++
		inner := p.parseExpr()
		p.calcDepth--
		p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')' to close calc")
		return exprs.NewInner(ast.ExprCalc, p.spanFrom(tok.Span), inner)
	case token.Ident, token.ArrayTypeName:
		p.advance()
		name := ast.Name{Text: tok.Text, Span: tok.Span}
		if p.at(token.LParen) {
			return p.parseCommand(tok, name, false)
		}
		if p.caseKeys == 0 && p.at(token.Colon) && p.ts.Peek(1).IsName() {
			p.advance()
			comp := p.advance()
			full := ast.Name{Text: tok.Text + ":" + comp.Text, Span: tok.Span.Cover(comp.Span)}
			return exprs.NewName(ast.ExprDynamic, full.Span, full)
		}
		return exprs.NewName(ast.ExprIdent, tok.Span, name)
	}

	if p.opts.Env != nil {
		if trigger, ok := p.opts.Env.TriggerByOperator(tok.Text); ok && p.ts.Peek(1).IsName() {
			return p.parseCall(trigger)
		}
	}

	p.errf(diag.SynExpectExpression, p.diagSpan(), "Expected an expression but got %s", describe(tok))
	switch tok.Kind {
	case token.Semicolon, token.RParen, token.RBrace, token.Comma, token.EOF, token.LBracket, token.Hash:
	default:
		p.advance()
	}
	return exprs.NewError(tok.Span)
}

func (p *Parser) parseSigilName(kind ast.ExprKind, what string) ast.ExprID {
	sigil := p.advance()
	name, ok := p.expectName(what)
	if !ok {
		return p.arenas.Exprs.NewError(sigil.Span)
	}
	return p.arenas.Exprs.NewName(kind, sigil.Span.Cover(name.Span), name)
}

// ConcatBegin part* ConcatEnd
func (p *Parser) parseConcat() ast.ExprID {
	begin := p.advance()
	var parts []ast.ExprID
	for !p.atOr(token.ConcatEnd, token.EOF) {
		if p.at(token.StringLit) {
			tok := p.advance()
			parts = append(parts, p.arenas.Exprs.NewLiteral(ast.ExprString, tok.Span, ast.ExprLiteralData{Str: tok.Text}))
			continue
		}
		before := p.peek().Span
		parts = append(parts, p.parseExpr())
		if p.peek().Span == before {
			p.advance()
		}
	}
	p.expect(token.ConcatEnd, diag.SynUnexpectedToken, "Expected the end of the interpolated string")
	return p.arenas.Exprs.NewConcat(p.spanFrom(begin.Span), parts)
}

// name '(' args ')'. Аргументы на позициях hook разбираются как хуки.
func (p *Parser) parseCommand(start token.Token, name ast.Name, alternative bool) ast.ExprID {
	var args []ast.ExprID
	if p.at(token.LParen) {
		args = p.parseArgs(name.Text)
	}
	return p.arenas.Exprs.NewCommand(p.spanFrom(start.Span), ast.ExprCommandData{
		Name: name, Args: args, Alternative: alternative,
	})
}

func (p *Parser) parseArgs(command string) []ast.ExprID {
	p.advance() // (
	var args []ast.ExprID
	for !p.at(token.RParen) {
		if len(args) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "Expected ',' between arguments"); !ok {
				break
			}
		}
		if command != "" && p.atOr(token.StringLit, token.KwNull) && p.isHookArg(command, len(args)) {
			args = append(args, p.parseHook(p.advance()))
			continue
		}
		args = append(args, p.parseExpr())
		if p.atBoundary() {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')' after the arguments")
	return args
}

func (p *Parser) isHookArg(command string, index int) bool {
	return p.opts.Env != nil && p.opts.Env.IsHookArgument(command, index)
}

// <op> name ('(' args ')')?
func (p *Parser) parseCall(trigger string) ast.ExprID {
	op := p.advance()
	name := p.advance()
	var args []ast.ExprID
	if p.at(token.LParen) {
		args = p.parseArgs("")
	}
	return p.arenas.Exprs.NewCall(p.spanFrom(op.Span), ast.ExprCallData{
		Operator: op.Text,
		Trigger:  trigger,
		Name:     ast.Name{Text: name.Text, Span: name.Span},
		Args:     args,
	})
}
