package evaluator

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"

	"go.creack.net/pemdas/ast"
)

// DefaultPrecision is the mantissa size in bits used when EvaluateBig is
// given a zero precision.
const DefaultPrecision = 64

var errNaNConstant = errors.New("NaN constant has no arbitrary precision value")

// DomainError is an operation whose result big.Float cannot represent, e.g.
// 0/0 or a negative base with a fractional exponent.
type DomainError struct {
	Operation ast.Operation
	Reason    string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", e.Operation.Name(), e.Reason)
}

// EvaluateBig computes the value of the tree with prec bits of mantissa.
// Literals are re-read from their text so they are exact to the requested
// precision. Since big.Float has no NaN, operations that would produce one
// return a *DomainError instead.
func EvaluateBig(node ast.Node, prec uint) (*big.Float, error) {
	if prec == 0 {
		prec = DefaultPrecision
	}
	return evaluateBig(node, prec)
}

func evaluateBig(node ast.Node, prec uint) (*big.Float, error) {
	switch n := node.(type) {
	case *ast.Constant:
		return bigConstant(n, prec)
	case *ast.Binary:
		left, err := evaluateBig(n.Left, prec)
		if err != nil {
			return nil, err
		}
		right, err := evaluateBig(n.Right, prec)
		if err != nil {
			return nil, err
		}
		return applyBig(n.Operation, left, right, prec)
	default:
		panic(fmt.Errorf("unsupported node type %T", n))
	}
}

func bigConstant(c *ast.Constant, prec uint) (*big.Float, error) {
	out := new(big.Float).SetPrec(prec)
	if c.Text != "" {
		if _, ok := out.SetString(c.Text); ok {
			return out, nil
		}
	}
	if math.IsNaN(c.Value) {
		return nil, errNaNConstant
	}
	return out.SetFloat64(c.Value), nil
}

func applyBig(op ast.Operation, left, right *big.Float, prec uint) (res *big.Float, err error) {
	// big.Float panics with ErrNaN on Inf-Inf, 0*Inf, 0/0 and Inf/Inf.
	defer func() {
		if r := recover(); r != nil {
			nan, ok := r.(big.ErrNaN)
			if !ok {
				panic(r)
			}
			res, err = nil, &DomainError{Operation: op, Reason: nan.Error()}
		}
	}()

	out := new(big.Float).SetPrec(prec)
	switch op {
	case ast.OpAdd:
		return out.Add(left, right), nil
	case ast.OpSubtract:
		return out.Sub(left, right), nil
	case ast.OpMultiply:
		return out.Mul(left, right), nil
	case ast.OpDivide:
		return out.Quo(left, right), nil
	case ast.OpExponent:
		return powBig(out, left, right)
	default:
		panic(fmt.Errorf("unsupported operation %s", op))
	}
}

// maxFracPowBits bounds the binary exponent of a power with a fractional
// exponent. bigfloat.Pow slows down sharply past it.
const maxFracPowBits = 1 << 20

// powGuardBits is the extra precision carried through repeated squaring.
const powGuardBits = 64

func powBig(out, base, exp *big.Float) (*big.Float, error) {
	if base.IsInf() || exp.IsInf() {
		return nil, &DomainError{Operation: ast.OpExponent, Reason: "infinite operand"}
	}
	switch {
	case exp.Sign() == 0:
		return out.SetInt64(1), nil
	case base.Sign() == 0 && exp.Sign() > 0:
		return out.SetInt64(0), nil
	case base.Sign() == 0:
		return out.SetInf(false), nil
	case base.Sign() < 0 && !exp.IsInt():
		return nil, &DomainError{Operation: ast.OpExponent, Reason: "negative base with non-integer exponent"}
	}

	neg := base.Sign() < 0 && isOdd(exp)
	abs := new(big.Float).Abs(base)
	if abs.Cmp(bigOne) == 0 {
		out.SetInt64(1)
		if neg {
			out.Neg(out)
		}
		return out, nil
	}

	// Results past the big.Float exponent range saturate like the other
	// operations do.
	bits := resultBits(abs, exp)
	switch {
	case bits > big.MaxExp:
		return out.SetInf(neg), nil
	case bits < big.MinExp:
		out.SetInt64(0)
		if neg {
			out.Neg(out)
		}
		return out, nil
	}

	if exp.IsInt() {
		return powInt(out, base, exp, neg), nil
	}
	if math.IsNaN(bits) || math.Abs(bits) > maxFracPowBits {
		return nil, &DomainError{
			Operation: ast.OpExponent,
			Reason:    fmt.Sprintf("fractional power magnitude exceeds 2^%d", maxFracPowBits),
		}
	}
	return bigfloat.Pow(out, base, exp), nil
}

var bigOne = big.NewFloat(1)

// resultBits estimates log2(abs^exp) for abs > 0, abs != 1.
func resultBits(abs, exp *big.Float) float64 {
	mant := new(big.Float)
	e := abs.MantExp(mant)
	m, _ := mant.Float64()
	l := float64(e) + math.Log2(m)
	if l == 0 {
		// abs is within float64 rounding of 1: log2(1+d) ~ d/ln2.
		d, _ := new(big.Float).Sub(abs, bigOne).Float64()
		l = d / math.Ln2
	}
	y, _ := exp.Float64()
	return y * l
}

// isOdd reports whether the integer x is odd: its lowest set bit is the
// units bit.
func isOdd(x *big.Float) bool {
	return x.Sign() != 0 && x.MantExp(nil) == int(x.MinPrec())
}

// powInt computes |base|^exp by repeated squaring, negated when neg is set.
// The result is assumed to be within the big.Float exponent range.
func powInt(out, base, exp *big.Float, neg bool) *big.Float {
	n, _ := exp.Int(nil)
	inverse := n.Sign() < 0
	n.Abs(n)

	prec := out.Prec() + powGuardBits
	acc := new(big.Float).SetPrec(prec).SetInt64(1)
	sq := new(big.Float).SetPrec(prec).Abs(base)
	for i := range n.BitLen() {
		if n.Bit(i) == 1 {
			acc.Mul(acc, sq)
		}
		if i+1 < n.BitLen() {
			sq.Mul(sq, sq)
		}
	}
	if inverse {
		acc.Quo(new(big.Float).SetPrec(prec).SetInt64(1), acc)
	}
	out.Set(acc)
	if neg {
		out.Neg(out)
	}
	return out
}
