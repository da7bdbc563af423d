package evaluator_test

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/pemdas/ast"
	"go.creack.net/pemdas/evaluator"
	"go.creack.net/pemdas/parser"
)

func TestEvaluateBig(t *testing.T) {
	type bigCase struct {
		name  string
		input string
		want  float64
	}
	tests := []bigCase{
		{name: "add", input: "5+7", want: 12},
		{name: "left assoc subtract", input: "2-3-4", want: -5},
		{name: "right assoc exponent", input: "2^3^2", want: 512},
		{name: "precedence", input: "2+5*9/3^2", want: 7},
		{name: "precedence 2", input: "4^2/8+2*4", want: 10},
		{name: "grouping", input: "5*(9+3)", want: 60},
		{name: "fractional exponent", input: "((10*(1)))^0.2", want: math.Pow(10, 0.2)},
		{name: "negative base odd exponent", input: "(0-2)^3", want: -8},
		{name: "negative base even exponent", input: "(0-2)^2", want: 4},
		{name: "negative base unit exponent", input: "(0-2)^1", want: -2},
		{name: "negative base unit exponent 2", input: "(0-5)^1", want: -5},
		{name: "negative base negative exponent", input: "(0-2)^(0-3)", want: -0.125},
		{name: "minus one odd", input: "(0-1)^7", want: -1},
		{name: "minus one even", input: "(0-1)^8", want: 1},
		{name: "fraction to negative", input: "0.5^(0-2)", want: 4},
		{name: "square root", input: "2^0.5", want: math.Sqrt2},
		{name: "zero exponent", input: "7^0", want: 1},
		{name: "zero base", input: "0^3", want: 0},
		{name: "negative exponent", input: "2^(0-2)", want: 0.25},
		{name: "divide by zero", input: "1/0", want: math.Inf(1)},
		{name: "zero to negative", input: "0^(0-1)", want: math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parser.ParseString(tt.input)
			require.NoError(t, err)
			got, err := evaluator.EvaluateBig(node, 128)
			require.NoError(t, err)
			f, _ := got.Float64()
			if math.IsInf(tt.want, 0) {
				assert.Equal(t, tt.want, f)
				return
			}
			assert.InDelta(t, tt.want, f, 1e-12)
		})
	}
}

func TestEvaluateBigPrecision(t *testing.T) {
	node, err := parser.ParseString("0.1+0.2")
	require.NoError(t, err)

	got, err := evaluator.EvaluateBig(node, 200)
	require.NoError(t, err)
	assert.Equal(t, uint(200), got.Prec())
	assert.Equal(t, "0.3000000000", got.Text('f', 10))

	got, err = evaluator.EvaluateBig(node, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(evaluator.DefaultPrecision), got.Prec())
}

func TestEvaluateBigDomainErrors(t *testing.T) {
	type errCase struct {
		name  string
		input string
		op    ast.Operation
	}
	tests := []errCase{
		{name: "zero by zero", input: "0/0", op: ast.OpDivide},
		{name: "negative root", input: "(0-8)^0.5", op: ast.OpExponent},
		{name: "infinity minus infinity", input: "1/0-1/0", op: ast.OpSubtract},
		{name: "zero times infinity", input: "0*(1/0)", op: ast.OpMultiply},
		{name: "infinite base", input: "(1/0)^2", op: ast.OpExponent},
		{name: "huge fractional power", input: "2^100000000.5", op: ast.OpExponent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() { require.Nil(t, recover(), "panic") }()

			node, err := parser.ParseString(tt.input)
			require.NoError(t, err)
			got, err := evaluator.EvaluateBig(node, 64)
			assert.Nil(t, got)
			var domainErr *evaluator.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.op, domainErr.Operation)
		})
	}
}

func TestEvaluateBigHandBuiltConstant(t *testing.T) {
	got, err := evaluator.EvaluateBig(ast.NewConstant(2.5), 64)
	require.NoError(t, err)
	f, _ := got.Float64()
	assert.Equal(t, 2.5, f)

	_, err = evaluator.EvaluateBig(ast.NewConstant(math.NaN()), 64)
	assert.Error(t, err)
}

func TestEvaluateBigLargeExponents(t *testing.T) {
	type largeCase struct {
		name  string
		input string
		sign  int
		exp   int // Binary exponent of the result, whose mantissa is 0.5.
	}
	tests := []largeCase{
		{name: "negative base", input: "(0-2)^1000001", sign: -1, exp: 1000002},
		{name: "negative base huge", input: "(0-2)^1000000001", sign: -1, exp: 1000000002},
		{name: "positive base huge", input: "2^1000000001", sign: 1, exp: 1000000002},
		{name: "negative base even", input: "(0-2)^100000000", sign: 1, exp: 100000001},
		{name: "reciprocal", input: "2^(0-100000000)", sign: 1, exp: -99999999},
	}
	start := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parser.ParseString(tt.input)
			require.NoError(t, err)
			got, err := evaluator.EvaluateBig(node, 64)
			require.NoError(t, err)
			assert.Equal(t, tt.sign, got.Sign())
			mant := new(big.Float)
			assert.Equal(t, tt.exp, got.MantExp(mant))
			assert.Equal(t, "0.5", mant.Abs(mant).Text('g', 10))
		})
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestEvaluateBigSaturates(t *testing.T) {
	type saturateCase struct {
		name  string
		input string
		want  float64
	}
	tests := []saturateCase{
		{name: "overflow", input: "2^3000000000", want: math.Inf(1)},
		{name: "negative overflow", input: "(0-2)^3000000001", want: math.Inf(-1)},
		{name: "fractional overflow", input: "2^3000000000.5", want: math.Inf(1)},
		{name: "underflow", input: "2^(0-3000000000)", want: 0},
		{name: "fraction underflow", input: "0.5^3000000000", want: 0},
		{name: "one to a huge power", input: "1^100000000000000000000.5", want: 1},
		{name: "minus one to a huge odd power", input: "(0-1)^100000000001", want: -1},
	}
	start := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parser.ParseString(tt.input)
			require.NoError(t, err)
			got, err := evaluator.EvaluateBig(node, 64)
			require.NoError(t, err)
			f, _ := got.Float64()
			assert.Equal(t, tt.want, f)
		})
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}
