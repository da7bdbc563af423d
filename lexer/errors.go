package lexer

import "fmt"

// ErrorKind classifies lexical errors.
type ErrorKind int

const (
	// InvalidConstant is a number literal that does not parse, e.g. "1.2.3".
	InvalidConstant ErrorKind = iota + 1
	// UnknownSymbol is a rune that is neither part of a number, an operator,
	// a parenthesis nor whitespace.
	UnknownSymbol
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidConstant:
		return "InvalidConstant"
	case UnknownSymbol:
		return "UnknownSymbol"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a lexical error. Index is the byte index of the fault in the input.
type Error struct {
	Kind  ErrorKind
	Index int
	Text  string // Offending literal or rune, quoted.
}

func (e *Error) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s at index %d", e.Kind, e.Index)
	}
	return fmt.Sprintf("%s at index %d: %s", e.Kind, e.Index, e.Text)
}
