package lexer

import (
	"testing"
)

func TestSCL_Pragma(t *testing.T) {
	input := `{ S7_Optimized_Access := 'TRUE' }
FUNCTION_BLOCK "Motor Control"`

	l := NewWithDialect(input, DialectSCL)

	tok := l.NextToken()
	expectTokenType(t, tok, PRAGMA)
	if tok.Value != `S7_Optimized_Access := 'TRUE'` {
		t.Fatalf("pragma value wrong, got %q", tok.Value)
	}

	tok = l.NextToken()
	expectTokenType(t, tok, FUNCTION_BLOCK)

	tok = l.NextToken()
	expectTokenType(t, tok, IDENT)
	if tok.Value != "Motor Control" {
		t.Fatalf("quoted identifier value wrong, got %q", tok.Value)
	}
	if tok.Raw != `"Motor Control"` {
		t.Fatalf("quoted identifier raw wrong, got %q", tok.Raw)
	}
}

func TestSCL_QuotedIdentifierNotAWideString(t *testing.T) {
	l := NewWithDialect(`"DB_Settings".Speed`, DialectSCL)

	tok := l.NextToken()
	expectTokenType(t, tok, IDENT)
	if tok.Value != "DB_Settings" {
		t.Fatalf("expected DB_Settings, got %q", tok.Value)
	}

	tok = l.NextToken()
	expectTokenType(t, tok, DOT)

	tok = l.NextToken()
	expectTokenType(t, tok, IDENT)
	if tok.Raw != "Speed" {
		t.Fatalf("expected Speed, got %q", tok.Raw)
	}
}

func TestSCL_CompoundAssignments(t *testing.T) {
	input := `x += 1; x -= 2; x *= 3; x /= 4;`

	expected := []TokenType{
		IDENT, PLUS_ASSIGN, INT, SEMICOLON,
		IDENT, MINUS_ASSIGN, INT, SEMICOLON,
		IDENT, STAR_ASSIGN, INT, SEMICOLON,
		IDENT, SLASH_ASSIGN, INT, SEMICOLON,
		EOF,
	}

	l := NewWithDialect(input, DialectSCL)
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestSCL_CompoundAssignmentsOffInGeneric(t *testing.T) {
	l := New("x += 1;")

	expected := []TokenType{IDENT, PLUS, EQ, INT, SEMICOLON, EOF}
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestSCL_BlockKeywords(t *testing.T) {
	input := `DATA_BLOCK ORGANIZATION_BLOCK BEGIN REGION END_REGION GOTO LABEL END_DATA_BLOCK END_ORGANIZATION_BLOCK`

	expected := []TokenType{
		DATA_BLOCK, ORGANIZATION_BLOCK, BEGIN, REGION, END_REGION,
		GOTO, LABEL, END_DATA_BLOCK, END_ORGANIZATION_BLOCK, EOF,
	}

	l := NewWithDialect(input, DialectSCL)
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestSCL_BlockKeywordsAreIdentsInGeneric(t *testing.T) {
	// Vendor keywords stay plain identifiers outside the SCL dialect.
	l := New("BEGIN REGION GOTO")

	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != IDENT {
			t.Fatalf("step %d - expected IDENT, got %q", i, tok.Type)
		}
	}
}

func TestSCL_ByteOrderMarkSkipped(t *testing.T) {
	input := "\uFEFFFUNCTION_BLOCK FB1"
	l := NewWithDialect(input, DialectSCL)

	tok := l.NextToken()
	expectTokenType(t, tok, FUNCTION_BLOCK)
	// The BOM is skipped but not trimmed: spans keep indexing the
	// original string, so the keyword starts after the 3-byte BOM.
	if tok.Span.Start != 3 {
		t.Fatalf("expected start offset 3 past the BOM, got %d", tok.Span.Start)
	}
	if got := input[tok.Span.Start:tok.Span.End]; got != "FUNCTION_BLOCK" {
		t.Fatalf("span slices %q, want FUNCTION_BLOCK", got)
	}
	if tok.Span.Column != 1 {
		t.Fatalf("expected column 1 after the BOM, got %d", tok.Span.Column)
	}
}

func TestSCL_UnterminatedPragma(t *testing.T) {
	l := NewWithDialect("{ S7_Optimized", DialectSCL)
	tok := l.NextToken()

	expectTokenType(t, tok, ILLEGAL)
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrUnterminatedPragma {
		t.Fatalf("expected ErrUnterminatedPragma, got %v", l.Errors)
	}
}

func TestRockwell_MatchesGenericLexing(t *testing.T) {
	input := `MOV(Counter, Dest); x := y AND z;`

	generic := New(input)
	rockwell := NewWithDialect(input, DialectRockwell)

	for {
		g := generic.NextToken()
		r := rockwell.NextToken()
		if g.Type != r.Type || g.Raw != r.Raw {
			t.Fatalf("dialect divergence: generic %q %q vs rockwell %q %q",
				g.Type, g.Raw, r.Type, r.Raw)
		}
		if g.Type == EOF {
			break
		}
	}
}

func TestDialectString(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{DialectGeneric, "generic"},
		{DialectSCL, "scl"},
		{DialectRockwell, "rockwell"},
	}

	for _, tt := range tests {
		if got := tt.dialect.String(); got != tt.want {
			t.Errorf("Dialect(%d).String() = %q, want %q", tt.dialect, got, tt.want)
		}
	}
}
