package pemdas

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go.creack.net/pemdas/evaluator"
	"go.creack.net/pemdas/lexer"
	"go.creack.net/pemdas/parser"
)

// DefaultFormat renders results with two decimals.
const DefaultFormat = "%.2f"

// NoIndex is the index reported for errors without a position.
const NoIndex = -1

// Details is the flattened form of an evaluation error.
type Details struct {
	Kind    string // e.g. "UnknownSymbol", "UnbalancedParenthesis", "Domain".
	Index   int    // Byte index in the input, NoIndex if none.
	Message string
}

// Inspect flattens an error returned by this package. ok is false for errors
// not produced by the pipeline.
func Inspect(err error) (d Details, ok bool) {
	var lexErr *lexer.Error
	var parseErr *parser.Error
	var domainErr *evaluator.DomainError
	switch {
	case errors.As(err, &lexErr):
		return Details{Kind: lexErr.Kind.String(), Index: lexErr.Index, Message: lexErr.Error()}, true
	case errors.As(err, &parseErr):
		return Details{Kind: parseErr.Kind.String(), Index: parseErr.Index, Message: parseErr.Error()}, true
	case errors.As(err, &domainErr):
		return Details{Kind: "Domain", Index: NoIndex, Message: domainErr.Error()}, true
	case err == nil:
		return Details{}, false
	default:
		return Details{Kind: "Internal", Index: NoIndex, Message: err.Error()}, false
	}
}

// Describe renders an evaluation error of input for an interactive user:
//
//	UnknownSymbol at index: 1 => '&'
//	Semantic error: UnbalancedParenthesis
func Describe(input string, err error) string {
	var lexErr *lexer.Error
	var parseErr *parser.Error
	var domainErr *evaluator.DomainError
	switch {
	case errors.As(err, &lexErr):
		return fmt.Sprintf("%s at index: %d => %s", lexErr.Kind, lexErr.Index, at(input, lexErr.Index))
	case errors.As(err, &parseErr) && parseErr.Kind == parser.UnbalancedParenthesis:
		return fmt.Sprintf("Semantic error: %s", parseErr.Kind)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("%s at index: %d => %s (%s)", parseErr.Kind, parseErr.Index, at(input, parseErr.Index), parseErr.Reason)
	case errors.As(err, &domainErr):
		return fmt.Sprintf("Domain error: %s", domainErr.Reason)
	default:
		return fmt.Sprintf("Error: %s", err)
	}
}

// at quotes the rune at byte index i of s, or names the end of input.
func at(s string, i int) string {
	if i < 0 || i >= len(s) {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return fmt.Sprintf("%q", r)
}
