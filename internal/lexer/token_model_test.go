package lexer

import (
	"testing"
)

func nextNonWhitespaceToken(t *testing.T, l *Lexer) Token {
	t.Helper()
	for {
		tok := l.NextToken()
		if tok.Type == WHITESPACE || tok.Type == NEWLINE {
			continue
		}
		return tok
	}
}

func expectTokenType(t *testing.T, tok Token, want TokenType) {
	t.Helper()
	if tok.Type != want {
		t.Fatalf("expected token %q, got %q", want, tok.Type)
	}
}

// TestTokenSpan_Basic tests that tokens have correct span information
func TestTokenSpan_Basic(t *testing.T) {
	input := `Motor := 10;`

	l := New(input)
	tok := l.NextToken() // Motor

	if tok.Span.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Span.Line)
	}
	if tok.Span.Column != 1 {
		t.Fatalf("expected column 1, got %d", tok.Span.Column)
	}
	if tok.Span.Start != 0 {
		t.Fatalf("expected start 0, got %d", tok.Span.Start)
	}
	if tok.Span.End != 5 {
		t.Fatalf("expected end 5, got %d", tok.Span.End)
	}

	tok = l.NextToken() // :=
	if tok.Span.Column != 7 {
		t.Fatalf("expected column 7, got %d", tok.Span.Column)
	}
	if tok.Span.Start != 6 || tok.Span.End != 8 {
		t.Fatalf("expected span [6,8), got [%d,%d)", tok.Span.Start, tok.Span.End)
	}
}

func TestTokenSpan_MultiLine(t *testing.T) {
	input := "IF x THEN\n  y := 1;\nEND_IF;"

	l := New(input)

	// Skip to 'y' on line 2.
	for {
		tok := l.NextToken()
		if tok.Type == IDENT && tok.Raw == "y" {
			if tok.Span.Line != 2 {
				t.Fatalf("expected line 2, got %d", tok.Span.Line)
			}
			if tok.Span.Column != 3 {
				t.Fatalf("expected column 3, got %d", tok.Span.Column)
			}
			break
		}
		if tok.Type == EOF {
			t.Fatal("never saw identifier y")
		}
	}

	// END_IF starts line 3.
	for {
		tok := l.NextToken()
		if tok.Type == END_IF {
			if tok.Span.Line != 3 {
				t.Fatalf("expected line 3, got %d", tok.Span.Line)
			}
			if tok.Span.Column != 1 {
				t.Fatalf("expected column 1, got %d", tok.Span.Column)
			}
			break
		}
		if tok.Type == EOF {
			t.Fatal("never saw END_IF")
		}
	}
}

func TestTokenSpan_ByteOffsetsAreHalfOpen(t *testing.T) {
	input := "a + bc"

	l := New(input)

	tok := l.NextToken() // a
	if tok.Span.Start != 0 || tok.Span.End != 1 {
		t.Fatalf("a: expected span [0,1), got [%d,%d)", tok.Span.Start, tok.Span.End)
	}
	tok = l.NextToken() // +
	if tok.Span.Start != 2 || tok.Span.End != 3 {
		t.Fatalf("+: expected span [2,3), got [%d,%d)", tok.Span.Start, tok.Span.End)
	}
	tok = l.NextToken() // bc
	if tok.Span.Start != 4 || tok.Span.End != 6 {
		t.Fatalf("bc: expected span [4,6), got [%d,%d)", tok.Span.Start, tok.Span.End)
	}
}

func TestTokenRawVersusValue(t *testing.T) {
	tests := []struct {
		input string
		raw   string
		value string
	}{
		{"16#FF", "16#FF", "255"},
		{"'a$Nb'", "'a$Nb'", "a\nb"},
		{"End_If", "End_If", "End_If"},
		{"1_000", "1_000", "1000"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Raw != tt.raw {
			t.Errorf("%q - raw wrong. expected=%q, got=%q", tt.input, tt.raw, tok.Raw)
		}
		if tok.Value != tt.value {
			t.Errorf("%q - value wrong. expected=%q, got=%q", tt.input, tt.value, tok.Value)
		}
	}
}

func TestTokenFilenamePropagation(t *testing.T) {
	l := New("x := 1;")
	l.SetFilename("Pump.st")

	tok := nextNonWhitespaceToken(t, l)
	expectTokenType(t, tok, IDENT)
	if tok.Span.Filename != "Pump.st" {
		t.Fatalf("expected filename on token span, got %q", tok.Span.Filename)
	}
}

func TestEOFTokenSpan(t *testing.T) {
	l := New("x")
	l.NextToken() // x
	tok := l.NextToken()

	expectTokenType(t, tok, EOF)
	if tok.Span.Start != 1 || tok.Span.End != 1 {
		t.Fatalf("expected empty EOF span at 1, got [%d,%d)", tok.Span.Start, tok.Span.End)
	}
}

func TestEmptyInput(t *testing.T) {
	l := New("")
	tok := l.NextToken()

	expectTokenType(t, tok, EOF)
	if tok.Span.Line != 1 || tok.Span.Column != 1 {
		t.Fatalf("expected EOF at 1:1, got %d:%d", tok.Span.Line, tok.Span.Column)
	}
}
