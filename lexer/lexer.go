// Package lexer provides a lexical analyzer for arithmetic expressions.
//
// Digits and '.' accumulate into number literals, the runes "+-*/^()" are
// operators and delimiters, and ASCII whitespace is skipped. Anything else is
// an unknown symbol: reported in Strict mode, dropped in Permissive mode.
package lexer

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"
)

const (
	digitChars  = "0123456789"
	numberChars = digitChars + "."
	spaceChars  = " \t\r\n"
)

// eof is returned by next once the input is exhausted.
const eof rune = -1

// Mode controls how the lexer treats unknown symbols.
type Mode int

const (
	// Strict reports the first unknown symbol as an error.
	Strict Mode = iota
	// Permissive silently skips unknown symbols.
	Permissive
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithMode sets the unknown symbol handling mode. Default is Strict.
func WithMode(m Mode) Option {
	return func(l *Lexer) { l.mode = m }
}

type Lexer struct {
	input string
	mode  Mode

	curToken Token
	err      *Error

	atEOF bool

	pos   int // Current position in input.
	start int // Position of the start of the current token.
}

// New creates a new Lexer for the given input.
// Tokens are produced lazily, one per NextToken call.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		input: input,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NextToken scans and returns the next token. Once the input is exhausted it
// keeps returning TokEOF. Once an error is hit it keeps returning the same
// TokError token; Err returns the typed error.
func (l *Lexer) NextToken() Token {
	if l.err != nil {
		return l.curToken
	}
	l.curToken = Token{Type: TokEOF, Value: "", pos: l.pos}
	state := lexText
	for {
		state = state(l)
		if state == nil {
			return l.curToken
		}
	}
}

// Err returns the error that stopped the lexer, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.atEOF = true
		return eof
	}
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += n
	return r
}

func (l *Lexer) backup() {
	// If we reached eof, next did not advance so there is nothing to undo.
	// If we are at the beginning of the input, we can't back up.
	if l.atEOF || l.pos == 0 {
		l.atEOF = false
		return
	}
	_, n := utf8.DecodeLastRuneInString(l.input[:l.pos])
	l.pos -= n
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) acceptRun(valid string) bool {
	accepted := false
	for strings.ContainsRune(valid, l.next()) {
		accepted = true
	}
	l.backup()
	return accepted
}

func (l *Lexer) thisToken(tt TokenType) Token {
	t := Token{
		Type:  tt,
		Value: l.input[l.start:l.pos],
		pos:   l.start,
	}
	l.start = l.pos
	return t
}

func (l *Lexer) emitToken(t Token) stateFn {
	l.curToken = t
	return nil
}

func (l *Lexer) emit(tt TokenType) stateFn {
	return l.emitToken(l.thisToken(tt))
}

func (l *Lexer) ignore() {
	l.start = l.pos
}

func (l *Lexer) errorf(kind ErrorKind, index int, format string, args ...any) stateFn {
	l.err = &Error{
		Kind:  kind,
		Index: index,
		Text:  fmt.Sprintf(format, args...),
	}
	l.curToken = Token{
		Type:  TokError,
		Value: l.err.Error(),
		pos:   index,
	}
	return nil
}

// Tokens returns the lazy token sequence of input, without the final EOF
// token. Every range over the result restarts scanning from the beginning.
// On error the sequence yields the error token with the typed error and stops.
func Tokens(input string, opts ...Option) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		l := New(input, opts...)
		for {
			tok := l.NextToken()
			switch tok.Type {
			case TokEOF:
				return
			case TokError:
				yield(tok, l.Err())
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokenize scans the whole input and returns its tokens, without the final
// EOF token.
func Tokenize(input string, opts ...Option) ([]Token, error) {
	var tokens []Token
	for tok, err := range Tokens(input, opts...) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
