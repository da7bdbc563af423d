package parser

import (
	"go.creack.net/pemdas/ast"
	"go.creack.net/pemdas/lexer"
)

type bindingPower int

const (
	bpDefault bindingPower = iota
	bpAdditive
	bpMultiplicative
	bpExponent
)

type nudHandler func(*parser) (ast.Node, error)
type ledHandler func(*parser, ast.Node, bindingPower) (ast.Node, error)

type lookupTable[T any] map[lexer.TokenType]T

// grammar holds the Pratt tables. It is built once and only read afterwards.
type grammar struct {
	nudLookupTable          lookupTable[nudHandler]
	ledLookupTable          lookupTable[ledHandler]
	bindingPowerLookupTable lookupTable[bindingPower]
	operationLookupTable    lookupTable[ast.Operation]
}

var defaultGrammar = newGrammar()

func (g *grammar) led(kind lexer.TokenType, bp bindingPower, op ast.Operation, fn ledHandler) {
	if _, ok := g.ledLookupTable[kind]; ok {
		panic("duplicate led handler")
	}
	g.ledLookupTable[kind] = fn
	g.bindingPowerLookupTable[kind] = bp
	g.operationLookupTable[kind] = op
}

func (g *grammar) nud(kind lexer.TokenType, fn nudHandler) {
	if _, ok := g.nudLookupTable[kind]; ok {
		panic("duplicate nud handler")
	}
	g.nudLookupTable[kind] = fn
}

func newGrammar() *grammar {
	g := &grammar{
		nudLookupTable:          lookupTable[nudHandler]{},
		ledLookupTable:          lookupTable[ledHandler]{},
		bindingPowerLookupTable: lookupTable[bindingPower]{},
		operationLookupTable:    lookupTable[ast.Operation]{},
	}

	// Additive & multiplicative, left associative.
	g.led(lexer.TokPlus, bpAdditive, ast.OpAdd, parseBinaryExpr)
	g.led(lexer.TokMinus, bpAdditive, ast.OpSubtract, parseBinaryExpr)
	g.led(lexer.TokAsterisk, bpMultiplicative, ast.OpMultiply, parseBinaryExpr)
	g.led(lexer.TokSlash, bpMultiplicative, ast.OpDivide, parseBinaryExpr)

	// Exponent, right associative.
	g.led(lexer.TokCaret, bpExponent, ast.OpExponent, parseRightBinaryExpr)

	// Literals & grouping.
	g.nud(lexer.TokNumber, parsePrimaryExpr)
	g.nud(lexer.TokParenLeft, parseGroupingExpr)

	return g
}
