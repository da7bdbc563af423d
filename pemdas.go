// Package pemdas evaluates arithmetic expressions made of numbers, the binary
// operators + - * / ^ and parentheses, following the usual precedence rules:
// ^ binds tightest and groups to the right, then * and /, then + and -, which
// group to the left.
//
// Evaluation runs text → tokens → tree → value:
//
//	lexer.Tokenize → parser.Parse → evaluator.Evaluate
//
// Every call is independent; nothing is shared between calls.
package pemdas

import (
	"fmt"
	"math/big"

	"go.creack.net/pemdas/evaluator"
	"go.creack.net/pemdas/lexer"
	"go.creack.net/pemdas/parser"
)

// Option configures a Calculator.
type Option func(*Calculator)

// WithPermissive makes the lexer skip unknown symbols instead of failing.
func WithPermissive() Option {
	return func(c *Calculator) { c.mode = lexer.Permissive }
}

// WithPrecision evaluates with bits of mantissa using arbitrary precision
// floats. Zero keeps float64.
func WithPrecision(bits uint) Option {
	return func(c *Calculator) { c.precision = bits }
}

// WithMaxDepth bounds expression nesting. Zero or less disables the limit.
func WithMaxDepth(n int) Option {
	return func(c *Calculator) { c.maxDepth = n }
}

// Calculator holds evaluation settings. It is immutable and safe for
// concurrent use.
type Calculator struct {
	mode      lexer.Mode
	precision uint
	maxDepth  int
}

// New returns a Calculator with strict lexing, float64 arithmetic and the
// default nesting limit, then applies opts.
func New(opts ...Option) Calculator {
	c := Calculator{maxDepth: parser.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Precision returns the mantissa size in bits, zero meaning float64.
func (c Calculator) Precision() uint { return c.precision }

// Mode returns the lexer mode.
func (c Calculator) Mode() lexer.Mode { return c.mode }

// Result is the value of an expression.
type Result struct {
	Value float64    // Always set, rounded when Exact is set.
	Exact *big.Float // Only set for arbitrary precision evaluation.
}

// Format renders the result with a fmt verb such as "%.2f" or "%g".
// An empty verb selects DefaultFormat.
func (r Result) Format(verb string) string {
	if verb == "" {
		verb = DefaultFormat
	}
	if r.Exact != nil {
		return fmt.Sprintf(verb, r.Exact)
	}
	return fmt.Sprintf(verb, r.Value)
}

// Eval evaluates text.
func (c Calculator) Eval(text string) (Result, error) {
	node, err := parser.ParseString(text,
		parser.WithLexerOptions(lexer.WithMode(c.mode)),
		parser.WithMaxDepth(c.maxDepth),
	)
	if err != nil {
		return Result{}, fmt.Errorf("parse: %w", err)
	}
	if c.precision == 0 {
		return Result{Value: evaluator.Evaluate(node)}, nil
	}
	exact, err := evaluator.EvaluateBig(node, c.precision)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate: %w", err)
	}
	value, _ := exact.Float64()
	return Result{Value: value, Exact: exact}, nil
}

// Evaluate evaluates text as float64 with the given options, ignoring any
// precision option.
func Evaluate(text string, opts ...Option) (float64, error) {
	c := New(opts...)
	c.precision = 0
	res, err := c.Eval(text)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// EvaluateFromString evaluates text with strict lexing and float64
// arithmetic. The error is a *lexer.Error or a *parser.Error, to be
// inspected with errors.As.
func EvaluateFromString(text string) (float64, error) {
	return Evaluate(text)
}

// EvaluateBig evaluates text with arbitrary precision. Without a
// WithPrecision option, evaluator.DefaultPrecision bits are used. Besides
// lexer and parser errors it may return an *evaluator.DomainError.
func EvaluateBig(text string, opts ...Option) (*big.Float, error) {
	c := New(opts...)
	if c.precision == 0 {
		c.precision = evaluator.DefaultPrecision
	}
	res, err := c.Eval(text)
	if err != nil {
		return nil, err
	}
	return res.Exact, nil
}
