package ast

import (
	"fmt"
	"strconv"
)

// Constant is a number literal.
type Constant struct {
	Value float64
	Text  string // Literal as written, kept for arbitrary precision evaluation.
}

func (*Constant) node() {}

func (c *Constant) Dump() string {
	if c.Text != "" {
		return c.Text
	}
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// Binary is an operation applied to two exclusively owned subtrees.
type Binary struct {
	Operation Operation
	Left      Node
	Right     Node
}

func (*Binary) node() {}

// Dump renders the node fully parenthesized, e.g. "((2 - 3) - 4)".
func (b *Binary) Dump() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.Dump(), b.Operation, b.Right.Dump())
}

// NewConstant returns a leaf holding v.
func NewConstant(v float64) *Constant {
	return &Constant{Value: v}
}

// NewBinary returns a node applying op to left and right.
func NewBinary(op Operation, left, right Node) *Binary {
	return &Binary{Operation: op, Left: left, Right: right}
}
