package parser

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет.
const (
	precLogicalOr      = 1 // | ||
	precLogicalAnd     = 2 // & &&
	precEquality       = 3 // = !
	precRelational     = 4 // < > <= >=
	precBitwiseOr      = 5 // | внутри calc
	precBitwiseAnd     = 6 // & внутри calc
	precAdditive       = 7 // + -
	precMultiplicative = 8 // * / %
)

type assoc uint8

const (
	assocLeft assoc = iota
	assocRight
)

type binaryOpInfo struct {
	prec  int
	assoc assoc
	op    ast.BinaryOp
}

// binaryOperator returns the operator a token denotes at the current calc
// depth. Inside calc(...) '&' and '|' are bitwise.
func (p *Parser) binaryOperator(kind token.Kind) (binaryOpInfo, bool) {
	inCalc := p.calcDepth > 0
	switch kind {
	case token.Pipe, token.OrOr:
		if inCalc {
			return binaryOpInfo{precBitwiseOr, assocLeft, ast.OpBitOr}, true
		}
		return binaryOpInfo{precLogicalOr, assocLeft, ast.OpOr}, true
	case token.Amp, token.AndAnd:
		if inCalc {
			return binaryOpInfo{precBitwiseAnd, assocLeft, ast.OpBitAnd}, true
		}
		return binaryOpInfo{precLogicalAnd, assocLeft, ast.OpAnd}, true
	case token.Equal:
		return binaryOpInfo{precEquality, assocLeft, ast.OpEq}, true
	case token.Bang:
		return binaryOpInfo{precEquality, assocLeft, ast.OpNe}, true
	case token.Lt:
		return binaryOpInfo{precRelational, assocLeft, ast.OpLt}, true
	case token.Gt:
		return binaryOpInfo{precRelational, assocLeft, ast.OpGt}, true
	case token.LtEq:
		return binaryOpInfo{precRelational, assocLeft, ast.OpLe}, true
	case token.GtEq:
		return binaryOpInfo{precRelational, assocLeft, ast.OpGe}, true
	case token.Plus:
		return binaryOpInfo{precAdditive, assocLeft, ast.OpAdd}, true
	case token.Minus:
		return binaryOpInfo{precAdditive, assocLeft, ast.OpSub}, true
	case token.Star:
		return binaryOpInfo{precMultiplicative, assocLeft, ast.OpMul}, true
	case token.Slash:
		return binaryOpInfo{precMultiplicative, assocLeft, ast.OpDiv}, true
	case token.Percent:
		return binaryOpInfo{precMultiplicative, assocLeft, ast.OpMod}, true
	}
	return binaryOpInfo{}, false
}
