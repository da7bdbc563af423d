package lexer

import (
	"testing"
)

func FuzzTokenize(f *testing.F) {
	f.Add("2+5*9/3^2")
	f.Add("((10*(1)))^0.2")
	f.Add("1.2.3")
	f.Add("2&3")
	f.Fuzz(func(t *testing.T, s string) {
		first, err1 := Tokenize(s)
		second, err2 := Tokenize(s)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("non deterministic error for %q: %v / %v", s, err1, err2)
		}
		if len(first) != len(second) {
			t.Fatalf("non deterministic tokens for %q", s)
		}
		if err1 != nil {
			var lexErr *Error
			if e, ok := err1.(*Error); ok {
				lexErr = e
			}
			if lexErr == nil || lexErr.Index < 0 || lexErr.Index >= len(s) {
				t.Fatalf("bad error for %q: %v", s, err1)
			}
		}
	})
}
