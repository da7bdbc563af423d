package parser

import (
	"errors"
	"fmt"
)

// ErrMaxDepth is wrapped by the error of an expression nested past the
// configured limit.
var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

// ErrorKind classifies structural errors.
type ErrorKind int

const (
	// UnbalancedParenthesis means the counts of '(' and ')' differ.
	UnbalancedParenthesis ErrorKind = iota + 1
	// MalformedExpression means the tokens do not reduce to one root node.
	MalformedExpression
)

func (k ErrorKind) String() string {
	switch k {
	case UnbalancedParenthesis:
		return "UnbalancedParenthesis"
	case MalformedExpression:
		return "MalformedExpression"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a structural error. Index is the byte index in the input of the
// token the error was detected at.
type Error struct {
	Kind   ErrorKind
	Index  int
	Reason string
	Err    error // Underlying cause, if any.
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s at index %d", e.Kind, e.Index)
	}
	return fmt.Sprintf("%s at index %d: %s", e.Kind, e.Index, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }
