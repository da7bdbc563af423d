package lexer

import (
	"fmt"
	"slices"
	"strconv"
)

// TokenType is the type of token.
type TokenType int

// Token types as constants.
const (
	TokError TokenType = iota
	TokEOF

	// Literals.
	TokNumber

	// Operators.
	TokMinus    // '-'.
	TokPlus     // '+'.
	TokAsterisk // '*'.
	TokSlash    // '/'.
	TokCaret    // '^'.

	// Delimiters.
	TokParenLeft  // '('.
	TokParenRight // ')'.

	// End of tokens.
	FinalToken
)

// String returns the string representation of the token type.
func (tt TokenType) String() string {
	return tokenTypeStrings[tt]
}

// Map of token types to their string representation for debugging.
var tokenTypeStrings = map[TokenType]string{
	TokError: "ERROR",
	TokEOF:   "EOF",

	TokNumber: "NUMBER",

	TokMinus:    "MINUS",
	TokPlus:     "PLUS",
	TokAsterisk: "ASTERISK",
	TokSlash:    "SLASH",
	TokCaret:    "CARET",

	TokParenLeft:  "PAREN_LEFT",
	TokParenRight: "PAREN_RIGHT",
}

// singles maps the runes that advance one and emit a token.
var singles = map[rune]TokenType{
	'-': TokMinus,
	'+': TokPlus,
	'*': TokAsterisk,
	'/': TokSlash,
	'^': TokCaret,
	'(': TokParenLeft,
	')': TokParenRight,
}

func (tt TokenType) IsOneOf(t ...TokenType) bool {
	return slices.Contains(t, tt)
}

// IsOperator reports whether the token type is one of the binary operators.
func (tt TokenType) IsOperator() bool {
	return tt.IsOneOf(TokMinus, TokPlus, TokAsterisk, TokSlash, TokCaret)
}

// Token represents a lexical token of an arithmetic expression.
type Token struct {
	Type  TokenType
	Value string  // Raw text of the token, or the error message for TokError.
	Num   float64 // Parsed value, only set for TokNumber.

	pos int
}

// NewToken returns a token of the given type starting at byte index pos.
// Number tokens get their value parsed from value; an unparsable value
// leaves Num at zero.
func NewToken(tt TokenType, value string, pos int) Token {
	t := Token{Type: tt, Value: value, pos: pos}
	if tt == TokNumber {
		t.Num, _ = strconv.ParseFloat(value, 64)
	}
	return t
}

// Pos returns the byte index in the input where the token starts.
func (t Token) Pos() int { return t.pos }

func (t Token) String() string {
	switch {
	case t.Type == TokEOF:
		return "EOF"
	case t.Type == TokError:
		return t.errorString()
	case len(t.Value) > 16:
		return fmt.Sprintf("%s[%d]: %.16q", t.Type, t.pos, t.Value)
	}
	return fmt.Sprintf("%s[%d]: %q", t.Type, t.pos, t.Value)
}

func (t Token) errorString() string {
	out := fmt.Sprintf("ERROR [%d]: %s", t.pos, t.Value)
	return out
}
