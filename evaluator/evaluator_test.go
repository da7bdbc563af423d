package evaluator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/pemdas/ast"
	"go.creack.net/pemdas/evaluator"
	"go.creack.net/pemdas/parser"
)

type testCase struct {
	name  string
	input string
	want  float64
}

func run(tt testCase) func(t *testing.T) {
	return func(t *testing.T) {
		t.Helper()
		defer func() { require.Nil(t, recover(), "panic") }()

		node, err := parser.ParseString(tt.input)
		require.NoError(t, err, "parse %q", tt.input)
		got := evaluator.Evaluate(node)
		switch {
		case math.IsNaN(tt.want):
			assert.True(t, math.IsNaN(got), "want NaN, got %v", got)
		case math.IsInf(tt.want, 0):
			assert.Equal(t, tt.want, got)
		default:
			assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.input)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []testCase{
		{name: "constant", input: "5", want: 5},
		{name: "paren constant", input: "((5))", want: 5},
		{name: "add", input: "5+7", want: 12},
		{name: "left assoc subtract", input: "2-3-4", want: -5},
		{name: "left assoc divide", input: "8/4/2", want: 1},
		{name: "right assoc exponent", input: "2^3^2", want: 512},
		{name: "precedence", input: "2+5*9/3^2", want: 7},
		{name: "precedence 2", input: "4^2/8+2*4", want: 10},
		{name: "grouping", input: "5*(9+3)", want: 60},
		{name: "grouping 2", input: "(5-2)*5", want: 15},
		{name: "fractional exponent", input: "((10*(1)))^0.2", want: math.Pow(10, 0.2)},
		{name: "mixed precedence", input: "2*9+7", want: 25},
		{name: "decimals", input: "9*(69.5/0.3)", want: 9 * (69.5 / 0.3)},
		{name: "negative result", input: "1-10", want: -9},
		{name: "negative exponent", input: "2^(0-1)", want: 0.5},
		{name: "divide by zero", input: "1/0", want: math.Inf(1)},
		{name: "negative divide by zero", input: "(0-1)/0", want: math.Inf(-1)},
		{name: "zero by zero", input: "0/0", want: math.NaN()},
		{name: "negative root", input: "(0-8)^0.5", want: math.NaN()},
		{name: "zero to zero", input: "0^0", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, run(tt))
	}
}

func TestEvaluateHandBuilt(t *testing.T) {
	node := ast.NewBinary(ast.OpAdd,
		ast.NewBinary(ast.OpMultiply, ast.NewConstant(2), ast.NewConstant(9)),
		ast.NewConstant(7),
	)
	assert.Equal(t, 25.0, evaluator.Evaluate(node))
}

func TestEvaluateUnknownOperationPanics(t *testing.T) {
	node := ast.NewBinary(ast.Operation(99), ast.NewConstant(1), ast.NewConstant(2))
	assert.Panics(t, func() { evaluator.Evaluate(node) })
}

func TestEvaluateIsDeterministic(t *testing.T) {
	node, err := parser.ParseString("((10*(1)))^0.2+4^2/8")
	require.NoError(t, err)
	first := evaluator.Evaluate(node)
	for range 10 {
		assert.Equal(t, first, evaluator.Evaluate(node))
	}
}
