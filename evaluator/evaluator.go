// Package evaluator collapses an expression tree into a number.
package evaluator

import (
	"fmt"
	"math"

	"go.creack.net/pemdas/ast"
)

func evaluateBinary(b *ast.Binary) float64 {
	left := Evaluate(b.Left)
	right := Evaluate(b.Right)
	return apply(b.Operation, left, right)
}

func apply(op ast.Operation, left, right float64) float64 {
	switch op {
	case ast.OpAdd:
		return left + right
	case ast.OpSubtract:
		return left - right
	case ast.OpMultiply:
		return left * right
	case ast.OpDivide:
		return left / right
	case ast.OpExponent:
		return math.Pow(left, right)
	default:
		panic(fmt.Errorf("unsupported operation %s", op))
	}
}

// Evaluate computes the value of the tree, children before parents. It has
// no failure mode of its own: division by zero and friends follow IEEE 754,
// yielding ±Inf or NaN.
func Evaluate(node ast.Node) float64 {
	switch n := node.(type) {
	case *ast.Constant:
		return n.Value
	case *ast.Binary:
		return evaluateBinary(n)
	default:
		panic(fmt.Errorf("unsupported node type %T", n))
	}
}
