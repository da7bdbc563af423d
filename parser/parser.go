// Package parser builds the tree of an arithmetic expression.
//
//	Sum     := Sum ('+'|'-') Product | Product
//	Product := Product ('*'|'/') Power | Power
//	Power   := Atom '^' Power | Atom
//	Atom    := '(' Sum ')' | NUMBER
//
// It is a Pratt parser: each operator token carries a binding power, and
// '^' lowers its own for the right operand to group to the right.
package parser

import (
	"fmt"

	"go.creack.net/pemdas/ast"
	"go.creack.net/pemdas/lexer"
)

// DefaultMaxDepth is the default nesting limit.
const DefaultMaxDepth = 1000

// cursor walks a token slice. Past the end it returns an EOF token located
// right after the last token.
type cursor struct {
	tokens []lexer.Token
	pos    int
	end    lexer.Token
}

func newCursor(tokens []lexer.Token) *cursor {
	end := 0
	if n := len(tokens); n > 0 {
		end = tokens[n-1].Pos() + len(tokens[n-1].Value)
	}
	return &cursor{tokens: tokens, end: lexer.NewToken(lexer.TokEOF, "", end)}
}

func (c *cursor) peek() lexer.Token {
	if c.pos >= len(c.tokens) {
		return c.end
	}
	return c.tokens[c.pos]
}

func (c *cursor) next() lexer.Token {
	tok := c.peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

type parser struct {
	cur     *cursor
	grammar *grammar

	depth    int
	maxDepth int
}

// Option configures parsing.
type Option func(*options)

type options struct {
	maxDepth int
	lexOpts  []lexer.Option
}

// WithMaxDepth bounds how deeply an expression may nest. Each enclosing pair
// of parentheses and each right associative operator on the way to a token
// counts as one level. Zero or less disables the limit.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithLexerOptions forwards options to the lexer used by ParseString.
func WithLexerOptions(opts ...lexer.Option) Option {
	return func(o *options) { o.lexOpts = append(o.lexOpts, opts...) }
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse builds the tree of the given token sequence. The parentheses are
// checked for balance before anything else, then the whole sequence must
// reduce to a single root node.
func Parse(tokens []lexer.Token, opts ...Option) (ast.Node, error) {
	o := newOptions(opts)
	if err := checkBalance(tokens); err != nil {
		return nil, err
	}

	p := &parser{
		cur:      newCursor(tokens),
		grammar:  defaultGrammar,
		maxDepth: o.maxDepth,
	}
	if p.cur.done() {
		return nil, p.malformed(p.cur.peek(), "empty expression")
	}
	root, err := parseExpr(p, bpDefault)
	if err != nil {
		return nil, err
	}
	if !p.cur.done() {
		return nil, p.malformed(p.cur.peek(), "unexpected trailing %s", p.cur.peek().Type)
	}
	return root, nil
}

// ParseString tokenizes and parses input.
func ParseString(input string, opts ...Option) (ast.Node, error) {
	o := newOptions(opts)
	tokens, err := lexer.Tokenize(input, o.lexOpts...)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return Parse(tokens, opts...)
}

// checkBalance counts parentheses over the whole sequence. On mismatch the
// error points at the first close without an open, or else at the outermost
// open left unclosed.
func checkBalance(tokens []lexer.Token) error {
	var opens []int
	firstStray := -1
	balance := 0
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.TokParenLeft:
			balance++
			opens = append(opens, tok.Pos())
		case lexer.TokParenRight:
			balance--
			if len(opens) > 0 {
				opens = opens[:len(opens)-1]
			} else if firstStray < 0 {
				firstStray = tok.Pos()
			}
		}
	}
	if balance == 0 {
		return nil
	}
	index := firstStray
	if index < 0 && len(opens) > 0 {
		index = opens[0]
	}
	reason := "more opening than closing parentheses"
	if balance < 0 {
		reason = "more closing than opening parentheses"
	}
	return &Error{Kind: UnbalancedParenthesis, Index: index, Reason: reason}
}

// expect consumes the current token if it is of the expected type.
func (p *parser) expect(kind lexer.TokenType) (lexer.Token, error) {
	tok := p.cur.peek()
	if tok.Type != kind {
		return tok, p.malformed(tok, "expected %s but got %s", kind, tok.Type)
	}
	return p.cur.next(), nil
}

func (p *parser) unexpected(tok lexer.Token) error {
	if tok.Type == lexer.TokEOF {
		return p.malformed(tok, "unexpected end of expression")
	}
	return p.malformed(tok, "unexpected %s", tok.Type)
}

// nest enters one nesting level opened at tok.
func (p *parser) nest(tok lexer.Token) error {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return &Error{
			Kind:   MalformedExpression,
			Index:  tok.Pos(),
			Reason: fmt.Sprintf("nesting deeper than %d", p.maxDepth),
			Err:    ErrMaxDepth,
		}
	}
	p.depth++
	return nil
}

func (p *parser) unnest() { p.depth-- }

func (p *parser) malformed(tok lexer.Token, format string, args ...any) error {
	return &Error{
		Kind:   MalformedExpression,
		Index:  tok.Pos(),
		Reason: fmt.Sprintf(format, args...),
	}
}
