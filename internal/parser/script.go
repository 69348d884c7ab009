package parser

import (
	"strconv"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// ParseScript разбирает один скрипт: аннотации, заголовок [trigger,name],
// группы параметров/возвращаемых типов и тело до следующей границы.
// Возвращает false, если заголовок не удалось разобрать; в этом случае
// вход уже прокручен до следующего скрипта.
func (p *Parser) ParseScript() (ast.ScriptID, bool) {
	start := p.peek().Span
	var script ast.Script

	for p.at(token.Hash) {
		if ann, ok := p.parseAnnotation(); ok {
			script.Annotations = append(script.Annotations, ann)
		}
	}

	if _, ok := p.expect(token.LBracket, diag.SynBadScriptHeader, "Expected '[' to start a script declaration"); !ok {
		p.resyncScript()
		return ast.NoScriptID, false
	}
	trigger, ok := p.expectName("a trigger name")
	if !ok {
		p.resyncScript()
		return ast.NoScriptID, false
	}
	script.Trigger = trigger
	if p.at(token.Comma) {
		p.advance()
		if p.peek().IsName() {
			tok := p.advance()
			script.Name = ast.Name{Text: tok.Text, Span: tok.Span}
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynBadScriptHeader, "Expected ']' after the script name"); !ok {
		p.resyncScript()
		return ast.NoScriptID, false
	}
	if p.opts.Env != nil && !p.opts.Env.IsTrigger(trigger.Text) {
		p.errf(diag.SynUnknownTrigger, trigger.Span, "%s cannot be resolved to a trigger", trigger.Text)
	}

	if !p.parseHeader(&script) {
		p.resyncScript()
		return ast.NoScriptID, false
	}
	script.HeaderSpan = p.spanFrom(start)

	for !p.atBoundary() {
		before := p.peek().Span
		script.Body = append(script.Body, p.parseStmt())
		if p.peek().Span == before && !p.atBoundary() {
			p.advance()
		}
	}
	script.Span = p.spanFrom(start)
	return p.arenas.Scripts.New(script), true
}

// annotation := '#' name ':' IntLit
func (p *Parser) parseAnnotation() (ast.Annotation, bool) {
	hash := p.advance()
	name, ok := p.expectName("an annotation name")
	if !ok {
		p.skipAnnotation()
		return ast.Annotation{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynBadAnnotation, "Expected ':' after the annotation name"); !ok {
		p.skipAnnotation()
		return ast.Annotation{}, false
	}
	if !p.at(token.IntLit) {
		p.errf(diag.SynBadAnnotation, p.diagSpan(), "Expected an integer value for annotation %s", name.Text)
		p.skipAnnotation()
		return ast.Annotation{}, false
	}
	tok := p.advance()
	v, ok := p.intValue(tok)
	if !ok {
		return ast.Annotation{}, false
	}
	return ast.Annotation{Name: name, Value: v, Span: hash.Span.Cover(tok.Span)}, true
}

func (p *Parser) skipAnnotation() {
	for !p.atOr(token.LBracket, token.Hash, token.EOF) {
		p.advance()
	}
}

type groupKind uint8

const (
	groupEmpty groupKind = iota
	groupParams
	groupReturns
)

// header := group group?; каждая группа определяется по содержимому.
func (p *Parser) parseHeader(script *ast.Script) bool {
	var seen [3]bool
	for i := 0; i < 2 && p.at(token.LParen); i++ {
		kind := p.classifyGroup()
		if kind == groupEmpty {
			p.advance()
			p.advance()
			continue
		}
		if seen[kind] {
			p.report(diag.SynBadScriptHeader, p.peek().Span, "Duplicate parameter or return type list")
			return false
		}
		seen[kind] = true
		var ok bool
		if kind == groupParams {
			ok = p.parseParams(script)
		} else {
			ok = p.parseReturns(script)
		}
		if !ok {
			return false
		}
	}
	return true
}

// classifyGroup смотрит внутрь '(' ... ')' не потребляя токены.
// Пустая группа ничего не объявляет и не занимает ни одно место.
func (p *Parser) classifyGroup() groupKind {
	switch p.ts.Kind(1) {
	case token.RParen:
		return groupEmpty
	case token.ArrayTypeName:
		return groupParams
	case token.TypeName:
		if p.ts.Kind(2) == token.Dollar {
			return groupParams
		}
	}
	return groupReturns
}

// params := param (',' param)*; param := (TypeName|ArrayTypeName) '$' name
func (p *Parser) parseParams(script *ast.Script) bool {
	p.advance() // (
	for !p.at(token.RParen) {
		if len(script.Params) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "Expected ',' between parameters"); !ok {
				return false
			}
		}
		tok := p.advance()
		var param ast.Param
		switch tok.Kind {
		case token.TypeName:
			param.Type, _ = types.Lookup(tok.Text)
		case token.ArrayTypeName:
			param.Type, _ = types.LookupArray(tok.Text)
			param.Array = true
		default:
			p.errf(diag.SynUnknownType, tok.Span, "Expected a parameter type but got %s", describe(tok))
			return false
		}
		if _, ok := p.expect(token.Dollar, diag.SynUnexpectedToken, "Expected '$' before the parameter name"); !ok {
			return false
		}
		name, ok := p.expectName("a parameter name")
		if !ok {
			return false
		}
		param.Name = name
		param.Span = tok.Span.Cover(name.Span)
		script.Params = append(script.Params, p.arenas.Scripts.NewParam(param))
	}
	p.advance() // )
	return true
}

// returns := TypeName (',' TypeName)*
func (p *Parser) parseReturns(script *ast.Script) bool {
	p.advance() // (
	for !p.at(token.RParen) {
		if len(script.Returns) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "Expected ',' between return types"); !ok {
				return false
			}
		}
		tok := p.advance()
		if tok.Kind != token.TypeName {
			p.errf(diag.SynUnknownType, tok.Span, "Expected a return type but got %s", describe(tok))
			return false
		}
		prim, _ := types.Lookup(tok.Text)
		script.Returns = append(script.Returns, ast.TypeRef{Type: prim, Span: tok.Span})
	}
	p.advance() // )
	return true
}

// intValue разбирает десятичный или 0x литерал в int32.
func (p *Parser) intValue(tok token.Token) (int32, bool) {
	v, err := parseInt(tok.Text, 32)
	if err != nil {
		p.errf(diag.SynBadIntLiteral, tok.Span, "The literal %s of type int is out of range", tok.Text)
		return 0, false
	}
	return int32(v), true
}

func (p *Parser) longValue(tok token.Token) (int64, bool) {
	v, err := parseInt(tok.Text, 64)
	if err != nil {
		p.errf(diag.SynBadIntLiteral, tok.Span, "The literal %s of type long is out of range", tok.Text)
		return 0, false
	}
	return v, true
}

func parseInt(text string, bits int) (int64, error) {
	neg := false
	switch {
	case len(text) > 0 && text[0] == '-':
		neg, text = true, text[1:]
	case len(text) > 0 && text[0] == '+':
		text = text[1:]
	}
	base := 10
	if len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X") {
		base, text = 16, text[2:]
	}
	if neg {
		text = "-" + text
	}
	return strconv.ParseInt(text, base, bits)
}

// coordValue упаковывает level_x_y_tx_ty в l<<28 | x<<20 | y<<14 | tx<<6 | ty.
func (p *Parser) coordValue(tok token.Token) (int32, bool) {
	parts, err := splitCoord(tok.Text)
	if err != nil {
		p.report(diag.SynBadCoordgrid, tok.Span, err.Error())
		return 0, false
	}
	for i, lim := range coordLimits {
		if parts[i] < 0 || parts[i] > lim.max {
			p.errf(diag.SynBadCoordgrid, tok.Span,
				"Expected the %s component value to be between [0-%d] inclusively", lim.name, lim.max)
			return 0, false
		}
	}
	return parts[0]<<28 | parts[1]<<20 | parts[2]<<14 | parts[3]<<6 | parts[4], true
}

var coordLimits = [5]struct {
	name string
	max  int32
}{
	{"level", 3},
	{"square-x", 127},
	{"square-y", 255},
	{"tile-x", 63},
	{"tile-y", 63},
}

func splitCoord(text string) ([5]int32, error) {
	var out [5]int32
	n := 0
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '_' {
			continue
		}
		if n == len(out) {
			return out, errCoordParts
		}
		v, err := strconv.ParseInt(text[start:i], 10, 32)
		if err != nil {
			return out, errCoordRange(text)
		}
		out[n] = int32(v)
		n++
		start = i + 1
	}
	if n != len(out) {
		return out, errCoordParts
	}
	return out, nil
}

type coordError string

func (e coordError) Error() string { return string(e) }

const errCoordParts = coordError("Expected 5 components for literal of type coordgrid")

func errCoordRange(text string) error {
	return coordError("The literal " + text + " of type coordgrid is out of range")
}
