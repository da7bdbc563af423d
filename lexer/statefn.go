package lexer

import (
	"errors"
	"strconv"
	"strings"
)

type stateFn func(*Lexer) stateFn

func lexText(l *Lexer) stateFn {
	switch r := l.peek(); {
	case r == eof:
		return l.emit(TokEOF)
	case strings.ContainsRune(spaceChars, r):
		// Whitespace is the one documented skip rule.
		l.acceptRun(spaceChars)
		l.ignore()
		return lexText
	case strings.ContainsRune(numberChars, r):
		return lexNumber
	default:
		if tok, ok := singles[r]; ok {
			l.next()
			return l.emit(tok)
		}
		if l.mode == Permissive {
			l.next()
			l.ignore()
			return lexText
		}
		return l.errorf(UnknownSymbol, l.pos, "%q", r)
	}
}

func lexNumber(l *Lexer) stateFn {
	l.acceptRun(numberChars)
	tok := l.thisToken(TokNumber)
	number, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The failure is reported where the literal stopped: the rune that
		// ended it, or the last rune of the input.
		index := l.pos
		if index >= len(l.input) {
			index = len(l.input) - 1
		}
		return l.errorf(InvalidConstant, index, "%q", tok.Value)
	}
	// Out of range literals saturate to ±Inf.
	tok.Num = number
	return l.emitToken(tok)
}
