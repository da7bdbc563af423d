// Package ast defines the tree an arithmetic expression parses into.
//
// A tree is either a Constant leaf or a Binary node owning its two subtrees.
// Trees are built once by the parser and never mutated nor shared.
package ast

import (
	"fmt"
	"strconv"
)

// Node is any node of the tree. The set of implementations is closed.
type Node interface {
	Dump() string
	node()
}

// Operation is a binary arithmetic operation.
type Operation int

// Operations as constants.
const (
	OpAdd Operation = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
	OpExponent
)

// String returns the operator symbol.
func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpExponent:
		return "^"
	default:
		return "Operation(" + strconv.Itoa(int(op)) + ")"
	}
}

// Name returns the long name of the operation.
func (op Operation) Name() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSubtract:
		return "Subtract"
	case OpMultiply:
		return "Multiply"
	case OpDivide:
		return "Divide"
	case OpExponent:
		return "Exponent"
	default:
		panic(fmt.Errorf("unsupported operation %d", int(op)))
	}
}

// Walk traverses the tree in post-order: both subtrees of a Binary node are
// visited, left first, before the node itself. It stops early and returns
// false as soon as fn returns false.
func Walk(n Node, fn func(Node) bool) bool {
	switch n := n.(type) {
	case *Constant:
		return fn(n)
	case *Binary:
		if !Walk(n.Left, fn) || !Walk(n.Right, fn) {
			return false
		}
		return fn(n)
	default:
		panic(fmt.Errorf("unsupported node type %T", n))
	}
}

// Depth returns the height of the tree. A single constant has depth 1.
func Depth(n Node) int {
	switch n := n.(type) {
	case *Constant:
		return 1
	case *Binary:
		return 1 + max(Depth(n.Left), Depth(n.Right))
	default:
		panic(fmt.Errorf("unsupported node type %T", n))
	}
}
