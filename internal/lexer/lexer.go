package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/plclens/plclens/internal/diag"
)

// Dialect selects the lexical extensions recognized while scanning.
type Dialect int

const (
	// DialectGeneric is plain IEC 61131-3 structured text.
	DialectGeneric Dialect = iota
	// DialectSCL adds Siemens extensions: pragmas, quoted identifiers,
	// compound assignment operators, and extra block keywords.
	DialectSCL
	// DialectRockwell is the Logix flavor of structured text. Its lexical
	// grammar matches generic ST; the differences live in the parser.
	DialectRockwell
)

func (d Dialect) String() string {
	switch d {
	case DialectSCL:
		return "scl"
	case DialectRockwell:
		return "rockwell"
	default:
		return "generic"
	}
}

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrUnterminatedComment
	ErrUnterminatedPragma
	ErrInvalidNumber
	ErrInvalidAddress
	ErrIllegalRune
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedComment, ErrUnterminatedPragma:
		return diag.CodeLexerUnterminatedComment
	case ErrInvalidNumber:
		return diag.CodeLexerInvalidNumber
	case ErrInvalidAddress:
		return diag.CodeLexerInvalidAddress
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input      []rune
	byteOff    []int // byte offset of each rune in the original string
	pos        int   // index of the current rune
	ch         rune  // current rune (0 = EOF)
	line       int  // current line number (1-based)
	column     int  // current column number (1-based)
	dialect    Dialect
	filename   string
	emitTrivia bool // whether to emit trivia tokens (comments, whitespace)

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	span.Filename = l.filename
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// newLexer is the single internal constructor that sets up all lexer state
func newLexer(input string, dialect Dialect, emitTrivia bool) *Lexer {
	r := []rune(input)
	byteOff := make([]int, 0, len(r)+1)
	for i := range input {
		byteOff = append(byteOff, i)
	}
	byteOff = append(byteOff, len(input))

	l := &Lexer{
		input:      r,
		byteOff:    byteOff,
		pos:        -1, // start before first rune
		ch:         0,
		line:       1,
		column:     0, // will be 1 after first read()
		dialect:    dialect,
		emitTrivia: emitTrivia,
	}
	l.read() // move to first character

	// Siemens TIA exports frequently start with a UTF-8 BOM. Skip it
	// without trimming so spans still index the original string.
	if l.ch == '\uFEFF' {
		l.read()
		l.column = 1
	}
	return l
}

// New creates a new lexer for generic structured text (trivia mode disabled)
func New(input string) *Lexer {
	return newLexer(input, DialectGeneric, false)
}

// NewWithDialect creates a new lexer for the given dialect
func NewWithDialect(input string, dialect Dialect) *Lexer {
	return newLexer(input, dialect, false)
}

// NewWithTrivia creates a new lexer that emits trivia tokens
func NewWithTrivia(input string) *Lexer {
	return newLexer(input, DialectGeneric, true)
}

// SetFilename attaches a filename to all subsequently produced spans.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Dialect returns the dialect the lexer was constructed with.
func (l *Lexer) Dialect() Dialect {
	return l.dialect
}

// read advances the lexer to the next character.
// Line/column always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// We've moved past the last rune; normalize position to virtual EOF
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			// Empty input: column should point to the first position
			l.column = 1
		}
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && prevPos < inputLen && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// currentSpanStart returns the current position for span tracking
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// byteAt maps a rune index to its byte offset in the original string.
func (l *Lexer) byteAt(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(l.byteOff) {
		return l.byteOff[len(l.byteOff)-1]
	}
	return l.byteOff[pos]
}

// makeToken creates a token with span information. Positions arrive as
// rune indices and are stored as byte offsets.
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, raw, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    l.byteAt(startPos),
			End:      l.byteAt(endPos),
		},
	}
}

// operator emits a single-rune operator or delimiter token.
func (l *Lexer) operator(tokType TokenType) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw, raw)
}

// operator2 emits a two-rune operator token (the peeked rune is consumed).
func (l *Lexer) operator2(tokType TokenType) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch) + string(l.peek())
	l.read()
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw, raw)
}

// skipWhitespace skips whitespace characters, optionally returning a trivia token
func (l *Lexer) skipWhitespace() *Token {
	if !l.emitTrivia {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.read()
		}
		return nil
	}

	startLine, startColumn, startPos := l.currentSpanStart()

	if l.ch == '\n' || l.ch == '\r' {
		raw := string(l.ch)
		l.read()
		if l.ch == '\n' && raw == "\r" {
			raw = "\r\n"
			l.read()
		}
		endPos := l.pos
		tok := l.makeToken(NEWLINE, startLine, startColumn, startPos, endPos, raw, raw)
		return &tok
	}

	if l.ch == ' ' || l.ch == '\t' {
		for l.ch == ' ' || l.ch == '\t' {
			l.read()
		}
		endPos := l.pos
		raw := string(l.input[startPos:endPos])
		tok := l.makeToken(WHITESPACE, startLine, startColumn, startPos, endPos, raw, raw)
		return &tok
	}

	return nil
}

// skipLineCommentWithStart skips a // comment; the slashes are already consumed.
func (l *Lexer) skipLineCommentWithStart(startLine, startColumn, startPos int) *Token {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.read()
	}
	endPos := l.pos
	raw := string(l.input[startPos:endPos])

	if l.emitTrivia {
		tok := l.makeToken(LINE_COMMENT, startLine, startColumn, startPos, endPos, raw, raw)
		return &tok
	}
	return nil
}

// skipParenComment skips a (* ... *) comment, honoring nesting.
// The opening (* is already consumed.
func (l *Lexer) skipParenComment(startLine, startColumn, startPos int) *Token {
	depth := 1
	for depth > 0 {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedComment,
				"unterminated block comment",
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)},
			)
			break
		}
		if l.ch == '(' && l.peek() == '*' {
			l.read()
			l.read()
			depth++
		} else if l.ch == '*' && l.peek() == ')' {
			l.read()
			l.read()
			depth--
		} else {
			l.read()
		}
	}

	endPos := l.pos
	raw := string(l.input[startPos:endPos])

	if l.emitTrivia {
		tok := l.makeToken(BLOCK_COMMENT, startLine, startColumn, startPos, endPos, raw, raw)
		return &tok
	}
	return nil
}

// skipSlashComment skips a /* ... */ comment. Unlike (* *), this form
// does not nest.
func (l *Lexer) skipSlashComment(startLine, startColumn, startPos int) *Token {
	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedComment,
				"unterminated block comment",
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)},
			)
			break
		}
		if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			break
		}
		l.read()
	}

	endPos := l.pos
	raw := string(l.input[startPos:endPos])

	if l.emitTrivia {
		tok := l.makeToken(BLOCK_COMMENT, startLine, startColumn, startPos, endPos, raw, raw)
		return &tok
	}
	return nil
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readDigits consumes digits and underscore separators, returning the
// digits with underscores stripped.
func (l *Lexer) readDigits() string {
	var sb strings.Builder
	for isDigit(l.ch) || l.ch == '_' {
		if l.ch != '_' {
			sb.WriteRune(l.ch)
		}
		l.read()
	}
	return sb.String()
}

// readNumber reads a numeric literal: decimal ints, based ints (2#, 8#,
// 10#, 16#), and reals with an optional exponent. The decoded value of a
// based int is its decimal form.
func (l *Lexer) readNumber() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	digits := l.readDigits()

	// Based literal: the leading digits name the radix.
	if l.ch == '#' {
		l.read() // consume '#'
		var sb strings.Builder
		for isHexDigit(l.ch) || l.ch == '_' {
			if l.ch != '_' {
				sb.WriteRune(l.ch)
			}
			l.read()
		}
		raw := string(l.input[startPos:l.pos])
		base, err := strconv.Atoi(digits)
		if err != nil || (base != 2 && base != 8 && base != 10 && base != 16) {
			l.addError(ErrInvalidNumber, "invalid base "+strconv.Quote(digits)+" in based literal",
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
		}
		v, err := strconv.ParseInt(sb.String(), base, 64)
		if err != nil {
			l.addError(ErrInvalidNumber, "invalid digits in base "+digits+" literal "+strconv.Quote(raw),
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
		}
		return l.makeToken(INT, startLine, startColumn, startPos, l.pos, raw, strconv.FormatInt(v, 10))
	}

	// Decimal point: a '.' followed by a digit makes this a real.
	// A '.' followed by another '.' is the start of a subrange (1..10).
	isReal := false
	value := digits
	if l.ch == '.' && isDigit(l.peek()) {
		isReal = true
		l.read() // consume '.'
		value += "." + l.readDigits()
	}

	if isReal && (l.ch == 'e' || l.ch == 'E') {
		exp := string(l.ch)
		l.read()
		if l.ch == '+' || l.ch == '-' {
			exp += string(l.ch)
			l.read()
		}
		if !isDigit(l.ch) {
			raw := string(l.input[startPos:l.pos])
			l.addError(ErrInvalidNumber, "exponent has no digits in "+strconv.Quote(raw),
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
		}
		value += exp + l.readDigits()
	}

	raw := string(l.input[startPos:l.pos])
	if isReal {
		return l.makeToken(REAL, startLine, startColumn, startPos, l.pos, raw, value)
	}
	return l.makeToken(INT, startLine, startColumn, startPos, l.pos, raw, value)
}

// readTimeLiteral reads the content of a time/date literal after its
// prefix identifier. The prefix is kept verbatim, content and all;
// duration arithmetic is not this layer's job.
func (l *Lexer) readTimeLiteral(tokType TokenType, startLine, startColumn, startPos int) Token {
	l.read() // consume '#'
	for isTimeRune(l.ch) {
		l.read()
	}
	raw := string(l.input[startPos:l.pos])
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw, raw)
}

// readAddress reads a direct address such as %IX0.0 or %QW10.
func (l *Lexer) readAddress() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // consume '%'

	switch l.ch {
	case 'I', 'i', 'Q', 'q', 'M', 'm':
		l.read()
	default:
		raw := string(l.input[startPos:l.pos])
		l.addError(ErrInvalidAddress, "invalid direct address: expected I, Q, or M after '%'",
			Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
		return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
	}

	switch l.ch {
	case 'X', 'x', 'B', 'b', 'W', 'w', 'D', 'd', 'L', 'l':
		l.read()
	}

	if !isDigit(l.ch) {
		raw := string(l.input[startPos:l.pos])
		l.addError(ErrInvalidAddress, "invalid direct address: missing location digits",
			Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
		return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
	}
	for isDigit(l.ch) {
		l.read()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.read()
		for isDigit(l.ch) {
			l.read()
		}
	}

	raw := string(l.input[startPos:l.pos])
	return l.makeToken(ADDRESS, startLine, startColumn, startPos, l.pos, raw, raw)
}

// readString reads a single- or double-quoted string literal, decoding
// IEC $-escapes and doubled quotes.
func (l *Lexer) readString(quote rune) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	tokType := STRING_LIT
	if quote == '"' {
		tokType = WSTRING_LIT
	}

	var decoded []rune
	l.read() // skip opening quote

	for {
		if l.ch == 0 {
			l.addError(ErrUnterminatedString, "unterminated string literal",
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
			raw := string(l.input[startPos:l.pos])
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, string(decoded))
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.addError(ErrUnterminatedString, "newline in string literal",
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
			raw := string(l.input[startPos:l.pos])
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, string(decoded))
		}
		if l.ch == quote {
			// A doubled quote is an escaped quote character.
			if l.peek() == quote {
				decoded = append(decoded, quote)
				l.read()
				l.read()
				continue
			}
			l.read() // consume closing quote
			raw := string(l.input[startPos:l.pos])
			return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw, string(decoded))
		}
		if l.ch == '$' {
			l.read() // skip '$'
			switch l.ch {
			case '$':
				decoded = append(decoded, '$')
				l.read()
			case '\'', '"':
				decoded = append(decoded, l.ch)
				l.read()
			case 'L', 'l', 'N', 'n':
				decoded = append(decoded, '\n')
				l.read()
			case 'P', 'p':
				decoded = append(decoded, '\f')
				l.read()
			case 'R', 'r':
				decoded = append(decoded, '\r')
				l.read()
			case 'T', 't':
				decoded = append(decoded, '\t')
				l.read()
			default:
				if isHexDigit(l.ch) && isHexDigit(l.peek()) {
					hi := l.ch
					l.read()
					lo := l.ch
					l.read()
					v, err := strconv.ParseInt(string([]rune{hi, lo}), 16, 32)
					if err == nil {
						decoded = append(decoded, rune(v))
						continue
					}
				}
				// Unknown escape: keep the '$' and the character as written.
				decoded = append(decoded, '$')
				if l.ch != 0 {
					decoded = append(decoded, l.ch)
					l.read()
				}
			}
			continue
		}
		decoded = append(decoded, l.ch)
		l.read()
	}
}

// readQuotedIdent reads a Siemens quoted identifier such as "Motor Data".
func (l *Lexer) readQuotedIdent() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // skip opening quote

	var name []rune
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' || l.ch == '\r' {
			l.addError(ErrUnterminatedString, "unterminated quoted identifier",
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
			raw := string(l.input[startPos:l.pos])
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, string(name))
		}
		name = append(name, l.ch)
		l.read()
	}
	l.read() // consume closing quote
	raw := string(l.input[startPos:l.pos])
	return l.makeToken(IDENT, startLine, startColumn, startPos, l.pos, raw, string(name))
}

// readPragma reads a Siemens attribute pragma { ... }.
func (l *Lexer) readPragma() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // skip '{'

	var content []rune
	for l.ch != '}' {
		if l.ch == 0 {
			l.addError(ErrUnterminatedPragma, "unterminated pragma",
				Span{Line: startLine, Column: startColumn, Start: l.byteAt(startPos), End: l.byteAt(l.pos)})
			raw := string(l.input[startPos:l.pos])
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, string(content))
		}
		content = append(content, l.ch)
		l.read()
	}
	l.read() // consume '}'
	raw := string(l.input[startPos:l.pos])
	return l.makeToken(PRAGMA, startLine, startColumn, startPos, l.pos, raw, strings.TrimSpace(string(content)))
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		if triviaTok := l.skipWhitespace(); triviaTok != nil {
			return *triviaTok
		}

		switch l.ch {
		case 0:
			startLine, startColumn, startPos := l.currentSpanStart()
			if startColumn == 0 {
				startColumn = 1
			}
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "", "")

		case ':':
			if l.peek() == '=' {
				return l.operator2(ASSIGN)
			}
			return l.operator(COLON)

		case '=':
			if l.peek() == '>' {
				return l.operator2(OUTPUT)
			}
			return l.operator(EQ)

		case '<':
			switch l.peek() {
			case '=':
				return l.operator2(LE)
			case '>':
				return l.operator2(NE)
			default:
				return l.operator(LT)
			}

		case '>':
			if l.peek() == '=' {
				return l.operator2(GE)
			}
			return l.operator(GT)

		case '+':
			if l.dialect == DialectSCL && l.peek() == '=' {
				return l.operator2(PLUS_ASSIGN)
			}
			return l.operator(PLUS)

		case '-':
			if l.dialect == DialectSCL && l.peek() == '=' {
				return l.operator2(MINUS_ASSIGN)
			}
			return l.operator(MINUS)

		case '*':
			if l.peek() == '*' {
				return l.operator2(POWER)
			}
			if l.dialect == DialectSCL && l.peek() == '=' {
				return l.operator2(STAR_ASSIGN)
			}
			return l.operator(STAR)

		case '/':
			startLine, startColumn, startPos := l.currentSpanStart()
			switch l.peek() {
			case '/':
				l.read() // consume first '/'
				l.read() // consume second '/'
				if triviaTok := l.skipLineCommentWithStart(startLine, startColumn, startPos); triviaTok != nil {
					return *triviaTok
				}
				continue
			case '*':
				l.read() // consume '/'
				l.read() // consume '*'
				if triviaTok := l.skipSlashComment(startLine, startColumn, startPos); triviaTok != nil {
					return *triviaTok
				}
				continue
			case '=':
				if l.dialect == DialectSCL {
					return l.operator2(SLASH_ASSIGN)
				}
				return l.operator(SLASH)
			default:
				return l.operator(SLASH)
			}

		case '(':
			if l.peek() == '*' {
				startLine, startColumn, startPos := l.currentSpanStart()
				l.read() // consume '('
				l.read() // consume '*'
				if triviaTok := l.skipParenComment(startLine, startColumn, startPos); triviaTok != nil {
					return *triviaTok
				}
				continue
			}
			return l.operator(LPAREN)

		case ')':
			return l.operator(RPAREN)
		case '[':
			return l.operator(LBRACKET)
		case ']':
			return l.operator(RBRACKET)
		case ';':
			return l.operator(SEMICOLON)
		case ',':
			return l.operator(COMMA)
		case '^':
			return l.operator(CARET)
		case '&':
			return l.operator(AMPERSAND)

		case '.':
			if l.peek() == '.' {
				return l.operator2(DOTDOT)
			}
			return l.operator(DOT)

		case '%':
			return l.readAddress()

		case '\'':
			return l.readString('\'')

		case '"':
			if l.dialect == DialectSCL {
				return l.readQuotedIdent()
			}
			return l.readString('"')

		case '{':
			if l.dialect == DialectSCL {
				return l.readPragma()
			}
			tok := l.operator(ILLEGAL)
			l.addError(ErrIllegalRune, "illegal character \"{\"", tok.Span)
			return tok

		default:
			if isLetter(l.ch) {
				startLine, startColumn, startPos := l.currentSpanStart()
				literal := l.readIdentifier()
				// A '#' directly after certain identifiers introduces a
				// time, date, or date-and-time literal (T#5s, DT#...).
				if l.ch == '#' {
					if tokType, ok := timeLiteralPrefixes[strings.ToUpper(literal)]; ok {
						return l.readTimeLiteral(tokType, startLine, startColumn, startPos)
					}
				}
				tokType := LookupIdent(literal, l.dialect)
				return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal, literal)
			} else if isDigit(l.ch) {
				return l.readNumber()
			} else {
				startLine, startColumn, startPos := l.currentSpanStart()
				raw := string(l.ch)
				l.read()
				tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
				l.addError(
					ErrIllegalRune,
					"illegal character "+strconv.Quote(raw),
					tok.Span,
				)
				return tok
			}
		}
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

// isHexDigit checks if a rune is a hexadecimal digit
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

// isTimeRune reports whether a rune may appear inside a time or date
// literal body. The content is kept verbatim.
func isTimeRune(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == ':' || ch == '.' || ch == '-'
}
