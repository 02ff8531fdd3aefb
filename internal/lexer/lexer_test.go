package lexer

import (
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `Motor := 10;`

	tests := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{IDENT, "Motor"},
		{ASSIGN, ":="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestTriviaEmitsSingleSpaceWhitespace(t *testing.T) {
	input := `Motor := 10;`

	expected := []TokenType{
		IDENT,
		WHITESPACE,
		ASSIGN,
		WHITESPACE,
		INT,
		SEMICOLON,
		EOF,
	}

	l := NewWithTrivia(input)

	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `:= => + - * / ** = <> < > <= >= & ^ .. .`

	tests := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{ASSIGN, ":="},
		{OUTPUT, "=>"},
		{PLUS, "+"},
		{MINUS, "-"},
		{STAR, "*"},
		{SLASH, "/"},
		{POWER, "**"},
		{EQ, "="},
		{NE, "<>"},
		{LT, "<"},
		{GT, ">"},
		{LE, "<="},
		{GE, ">="},
		{AMPERSAND, "&"},
		{CARET, "^"},
		{DOTDOT, ".."},
		{DOT, "."},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestNextToken_ForLoop(t *testing.T) {
	input := `FOR i := 1 TO 10 DO y := 1.5; END_FOR;`

	tests := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{FOR, "FOR"},
		{IDENT, "i"},
		{ASSIGN, ":="},
		{INT, "1"},
		{TO, "TO"},
		{INT, "10"},
		{DO, "DO"},
		{IDENT, "y"},
		{ASSIGN, ":="},
		{REAL, "1.5"},
		{SEMICOLON, ";"},
		{END_FOR, "END_FOR"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestKeywords_CaseInsensitive(t *testing.T) {
	// IEC keywords match in any case; the original spelling is preserved
	// in Raw.
	input := `if If IF iF end_if End_If VAR var Function_Block`

	tests := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{IF, "if"},
		{IF, "If"},
		{IF, "IF"},
		{IF, "iF"},
		{END_IF, "end_if"},
		{END_IF, "End_If"},
		{VAR, "VAR"},
		{VAR, "var"},
		{FUNCTION_BLOCK, "Function_Block"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestBasedLiterals(t *testing.T) {
	tests := []struct {
		input         string
		expectedType  TokenType
		expectedValue string
	}{
		{"16#FF", INT, "255"},
		{"16#ff_ff", INT, "65535"},
		{"2#1010_1010", INT, "170"},
		{"8#777", INT, "511"},
		{"10#42", INT, "42"},
		{"42", INT, "42"},
		{"1_000_000", INT, "1000000"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("%q - tokentype wrong. expected=%q, got=%q",
				tt.input, tt.expectedType, tok.Type)
		}
		if tok.Value != tt.expectedValue {
			t.Errorf("%q - value wrong. expected=%q, got=%q",
				tt.input, tt.expectedValue, tok.Value)
		}
		if tok.Raw != tt.input {
			t.Errorf("%q - raw wrong. got=%q", tt.input, tok.Raw)
		}
		if len(l.Errors) != 0 {
			t.Errorf("%q - unexpected lexer errors: %v", tt.input, l.Errors)
		}
	}
}

func TestRealLiterals(t *testing.T) {
	tests := []struct {
		input         string
		expectedType  TokenType
		expectedValue string
	}{
		{"3.14", REAL, "3.14"},
		{"0.5", REAL, "0.5"},
		{"1.0e-3", REAL, "1.0e-3"},
		{"2.5E+10", REAL, "2.5E+10"},
		{"1_000.5", REAL, "1000.5"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("%q - tokentype wrong. expected=%q, got=%q",
				tt.input, tt.expectedType, tok.Type)
		}
		if tok.Value != tt.expectedValue {
			t.Errorf("%q - value wrong. expected=%q, got=%q",
				tt.input, tt.expectedValue, tok.Value)
		}
	}
}

func TestSubrangeIsNotAReal(t *testing.T) {
	// 1..10 must lex as INT DOTDOT INT, never as a real literal.
	l := New("1..10")

	expected := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{INT, "1"},
		{DOTDOT, ".."},
		{INT, "10"},
		{EOF, ""},
	}

	for i, tt := range expected {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestTimeAndDateLiterals(t *testing.T) {
	tests := []struct {
		input        string
		expectedType TokenType
	}{
		{"T#5s", TIME_LIT},
		{"t#1h30m", TIME_LIT},
		{"TIME#100ms", TIME_LIT},
		{"LTIME#10ns", TIME_LIT},
		{"D#2024-01-01", DATE_LIT},
		{"DATE#2024-12-31", DATE_LIT},
		{"TOD#12:00:00", TOD_LIT},
		{"TIME_OF_DAY#23:59:59.999", TOD_LIT},
		{"DT#2024-01-01-12:00:00", DT_LIT},
		{"DATE_AND_TIME#2024-01-01-00:00:00", DT_LIT},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("%q - tokentype wrong. expected=%q, got=%q",
				tt.input, tt.expectedType, tok.Type)
		}
		// The literal body is kept verbatim.
		if tok.Raw != tt.input {
			t.Errorf("%q - raw wrong. got=%q", tt.input, tok.Raw)
		}
		if tok.Value != tt.input {
			t.Errorf("%q - value wrong. got=%q", tt.input, tok.Value)
		}
	}
}

func TestTimePrefixWithoutHashIsAnIdent(t *testing.T) {
	// T, TOD, DT only introduce literals when directly followed by '#'.
	l := New("T := TOD;")

	expected := []TokenType{IDENT, ASSIGN, IDENT, SEMICOLON, EOF}
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestDirectAddresses(t *testing.T) {
	tests := []struct {
		input        string
		expectedType TokenType
	}{
		{"%IX0.0", ADDRESS},
		{"%QW10", ADDRESS},
		{"%M5", ADDRESS},
		{"%id4", ADDRESS},
		{"%QL100.7", ADDRESS},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("%q - tokentype wrong. expected=%q, got=%q",
				tt.input, tt.expectedType, tok.Type)
		}
		if tok.Raw != tt.input {
			t.Errorf("%q - raw wrong. got=%q", tt.input, tok.Raw)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input         string
		expectedType  TokenType
		expectedValue string
	}{
		{`'hello'`, STRING_LIT, "hello"},
		{`''`, STRING_LIT, ""},
		{`'it''s'`, STRING_LIT, "it's"},
		{`'line$Nnext'`, STRING_LIT, "line\nnext"},
		{`'tab$There'`, STRING_LIT, "tab\there"},
		{`'cr$R'`, STRING_LIT, "cr\r"},
		{`'page$P'`, STRING_LIT, "page\f"},
		{`'100$$'`, STRING_LIT, "100$"},
		{`'quote$''`, STRING_LIT, "quote'"},
		{`'A$41B'`, STRING_LIT, "AAB"},
		{`"wide"`, WSTRING_LIT, "wide"},
		{`"it""s"`, WSTRING_LIT, `it"s`},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("%q - tokentype wrong. expected=%q, got=%q",
				tt.input, tt.expectedType, tok.Type)
		}
		if tok.Value != tt.expectedValue {
			t.Errorf("%q - value wrong. expected=%q, got=%q",
				tt.input, tt.expectedValue, tok.Value)
		}
		if len(l.Errors) != 0 {
			t.Errorf("%q - unexpected lexer errors: %v", tt.input, l.Errors)
		}
	}
}

func TestComments(t *testing.T) {
	input := "a // line comment\nb (* paren\ncomment *) c /* slash */ d"

	expected := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{IDENT, "a"},
		{IDENT, "b"},
		{IDENT, "c"},
		{IDENT, "d"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range expected {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestTriviaEmitsComments(t *testing.T) {
	input := "x // note\ny"

	expected := []TokenType{
		IDENT,
		WHITESPACE,
		LINE_COMMENT,
		NEWLINE,
		IDENT,
		EOF,
	}

	l := NewWithTrivia(input)
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestSpansAreByteOffsets(t *testing.T) {
	input := "(* überwachung *) x := 42;"
	l := New(input)

	tok := l.NextToken()
	if tok.Type != IDENT || tok.Raw != "x" {
		t.Fatalf("expected identifier x, got %q %q", tok.Type, tok.Raw)
	}
	// The two-byte ü shifts byte offsets past rune indices.
	if tok.Span.Start != 19 {
		t.Errorf("start offset = %d, want 19", tok.Span.Start)
	}
	if got := input[tok.Span.Start:tok.Span.End]; got != "x" {
		t.Errorf("span slices %q, want x", got)
	}

	l.NextToken() // :=
	num := l.NextToken()
	if got := input[num.Span.Start:num.Span.End]; got != "42" {
		t.Errorf("literal span slices %q, want 42", got)
	}
}
