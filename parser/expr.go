package parser

import (
	"go.creack.net/pemdas/ast"
	"go.creack.net/pemdas/lexer"
)

func parseExpr(p *parser, bp bindingPower) (ast.Node, error) {
	// Parse the primary expression, always start with nud.
	tok := p.cur.peek()
	nudFn, exists := p.grammar.nudLookupTable[tok.Type]
	if !exists {
		return nil, p.unexpected(tok)
	}
	left, err := nudFn(p)
	if err != nil {
		return nil, err
	}

	// While we have tokens with a higher binding power, parse them using led.
	for {
		tok := p.cur.peek()
		nextBP := p.grammar.bindingPowerLookupTable[tok.Type]
		if nextBP <= bp {
			return left, nil
		}
		ledFn, exists := p.grammar.ledLookupTable[tok.Type]
		if !exists {
			return nil, p.unexpected(tok)
		}
		if left, err = ledFn(p, left, nextBP); err != nil {
			return nil, err
		}
	}
}

func parsePrimaryExpr(p *parser) (ast.Node, error) {
	tok := p.cur.next()
	if tok.Type != lexer.TokNumber {
		return nil, p.unexpected(tok)
	}
	return &ast.Constant{
		Value: tok.Num,
		Text:  tok.Value,
	}, nil
}

func parseGroupingExpr(p *parser) (ast.Node, error) {
	open, err := p.expect(lexer.TokParenLeft)
	if err != nil {
		return nil, err
	}
	if err := p.nest(open); err != nil {
		return nil, err
	}
	defer p.unnest()
	if tok := p.cur.peek(); tok.Type == lexer.TokParenRight {
		return nil, p.malformed(tok, "empty parentheses")
	}
	inner, err := parseExpr(p, bpDefault)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokParenRight); err != nil {
		return nil, err
	}
	return inner, nil
}

// parseBinaryExpr parses the right operand with the operator's own binding
// power, so operators of equal strength group to the left.
func parseBinaryExpr(p *parser, left ast.Node, bp bindingPower) (ast.Node, error) {
	operator := p.cur.next()
	right, err := parseExpr(p, bp)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{
		Operation: p.grammar.operationLookupTable[operator.Type],
		Left:      left,
		Right:     right,
	}, nil
}

// parseRightBinaryExpr lowers the binding power by one for the right operand,
// so a following operator of equal strength binds there first.
func parseRightBinaryExpr(p *parser, left ast.Node, bp bindingPower) (ast.Node, error) {
	operator := p.cur.next()
	if err := p.nest(operator); err != nil {
		return nil, err
	}
	defer p.unnest()
	right, err := parseExpr(p, bp-1)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{
		Operation: p.grammar.operationLookupTable[operator.Type],
		Left:      left,
		Right:     right,
	}, nil
}
