package lexer

import "strings"

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // byte offset into the original string
	End      int    // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source
	Value string // decoded value (strings without quotes/escapes, based ints in decimal)
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT       TokenType = "IDENT"       // Motor_Run, x, Timer1
	INT         TokenType = "INT"         // 42, 16#FF, 2#1010_1010
	REAL        TokenType = "REAL"        // 3.14, 1.0e-3
	STRING_LIT  TokenType = "STRING_LIT"  // 'hello'
	WSTRING_LIT TokenType = "WSTRING_LIT" // "hello"
	TIME_LIT    TokenType = "TIME_LIT"    // T#5s, TIME#1h30m
	DATE_LIT    TokenType = "DATE_LIT"    // D#2024-01-01
	TOD_LIT     TokenType = "TOD_LIT"     // TOD#12:00:00
	DT_LIT      TokenType = "DT_LIT"      // DT#2024-01-01-12:00:00
	ADDRESS     TokenType = "ADDRESS"     // %IX0.0, %QW10, %M5
	PRAGMA      TokenType = "PRAGMA"      // { S7_Optimized := 'TRUE' } (SCL)

	// Operators
	ASSIGN       TokenType = ":="
	OUTPUT       TokenType = "=>"
	PLUS         TokenType = "+"
	MINUS        TokenType = "-"
	STAR         TokenType = "*"
	SLASH        TokenType = "/"
	POWER        TokenType = "**"
	AMPERSAND    TokenType = "&"
	PLUS_ASSIGN  TokenType = "+="
	MINUS_ASSIGN TokenType = "-="
	STAR_ASSIGN  TokenType = "*="
	SLASH_ASSIGN TokenType = "/="

	EQ TokenType = "="
	NE TokenType = "<>"
	LT TokenType = "<"
	LE TokenType = "<="
	GT TokenType = ">"
	GE TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	DOTDOT    TokenType = ".."
	CARET     TokenType = "^"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords - control flow
	IF         TokenType = "IF"
	THEN       TokenType = "THEN"
	ELSIF      TokenType = "ELSIF"
	ELSE       TokenType = "ELSE"
	END_IF     TokenType = "END_IF"
	CASE       TokenType = "CASE"
	OF         TokenType = "OF"
	END_CASE   TokenType = "END_CASE"
	FOR        TokenType = "FOR"
	TO         TokenType = "TO"
	BY         TokenType = "BY"
	DO         TokenType = "DO"
	END_FOR    TokenType = "END_FOR"
	WHILE      TokenType = "WHILE"
	END_WHILE  TokenType = "END_WHILE"
	REPEAT     TokenType = "REPEAT"
	UNTIL      TokenType = "UNTIL"
	END_REPEAT TokenType = "END_REPEAT"
	EXIT       TokenType = "EXIT"
	CONTINUE   TokenType = "CONTINUE"
	RETURN     TokenType = "RETURN"
	GOTO       TokenType = "GOTO" // SCL only
	LABEL      TokenType = "LABEL"

	// Keywords - POU declarations
	FUNCTION               TokenType = "FUNCTION"
	END_FUNCTION           TokenType = "END_FUNCTION"
	FUNCTION_BLOCK         TokenType = "FUNCTION_BLOCK"
	END_FUNCTION_BLOCK     TokenType = "END_FUNCTION_BLOCK"
	PROGRAM                TokenType = "PROGRAM"
	END_PROGRAM            TokenType = "END_PROGRAM"
	CLASS                  TokenType = "CLASS"
	END_CLASS              TokenType = "END_CLASS"
	INTERFACE              TokenType = "INTERFACE"
	END_INTERFACE          TokenType = "END_INTERFACE"
	METHOD                 TokenType = "METHOD"
	END_METHOD             TokenType = "END_METHOD"
	NAMESPACE              TokenType = "NAMESPACE"
	END_NAMESPACE          TokenType = "END_NAMESPACE"
	TYPE                   TokenType = "TYPE"
	END_TYPE               TokenType = "END_TYPE"
	DATA_BLOCK             TokenType = "DATA_BLOCK" // SCL only
	END_DATA_BLOCK         TokenType = "END_DATA_BLOCK"
	ORGANIZATION_BLOCK     TokenType = "ORGANIZATION_BLOCK" // SCL only
	END_ORGANIZATION_BLOCK TokenType = "END_ORGANIZATION_BLOCK"
	BEGIN                  TokenType = "BEGIN" // SCL body marker
	REGION                 TokenType = "REGION"
	END_REGION             TokenType = "END_REGION"

	// Keywords - header modifiers
	EXTENDS    TokenType = "EXTENDS"
	IMPLEMENTS TokenType = "IMPLEMENTS"
	ABSTRACT   TokenType = "ABSTRACT"
	FINAL      TokenType = "FINAL"

	// Keywords - variable blocks
	VAR          TokenType = "VAR"
	VAR_INPUT    TokenType = "VAR_INPUT"
	VAR_OUTPUT   TokenType = "VAR_OUTPUT"
	VAR_IN_OUT   TokenType = "VAR_IN_OUT"
	VAR_TEMP     TokenType = "VAR_TEMP"
	VAR_GLOBAL   TokenType = "VAR_GLOBAL"
	VAR_EXTERNAL TokenType = "VAR_EXTERNAL"
	VAR_ACCESS   TokenType = "VAR_ACCESS"
	VAR_CONFIG   TokenType = "VAR_CONFIG"
	END_VAR      TokenType = "END_VAR"
	CONSTANT     TokenType = "CONSTANT"
	RETAIN       TokenType = "RETAIN"
	NON_RETAIN   TokenType = "NON_RETAIN"
	AT           TokenType = "AT"

	// Keywords - type constructors
	ARRAY      TokenType = "ARRAY"
	STRUCT     TokenType = "STRUCT"
	END_STRUCT TokenType = "END_STRUCT"
	REF_TO     TokenType = "REF_TO"
	STRING_KW  TokenType = "STRING"
	WSTRING_KW TokenType = "WSTRING"

	// Keywords - operators and literals
	AND   TokenType = "AND"
	OR    TokenType = "OR"
	XOR   TokenType = "XOR"
	NOT   TokenType = "NOT"
	MOD   TokenType = "MOD"
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
	NULL  TokenType = "NULL"

	// Trivia tokens (comments, whitespace, newlines)
	LINE_COMMENT  TokenType = "LINE_COMMENT"  // //
	BLOCK_COMMENT TokenType = "BLOCK_COMMENT" // (* *) and /* */
	WHITESPACE    TokenType = "WHITESPACE"    // spaces, tabs
	NEWLINE       TokenType = "NEWLINE"       // \n, \r\n
)

// keywords maps upper-cased lexemes to token types. IEC keywords are
// case-insensitive, so LookupIdent normalizes before probing this table.
var keywords = map[string]TokenType{
	"IF":                     IF,
	"THEN":                   THEN,
	"ELSIF":                  ELSIF,
	"ELSE":                   ELSE,
	"END_IF":                 END_IF,
	"CASE":                   CASE,
	"OF":                     OF,
	"END_CASE":               END_CASE,
	"FOR":                    FOR,
	"TO":                     TO,
	"BY":                     BY,
	"DO":                     DO,
	"END_FOR":                END_FOR,
	"WHILE":                  WHILE,
	"END_WHILE":              END_WHILE,
	"REPEAT":                 REPEAT,
	"UNTIL":                  UNTIL,
	"END_REPEAT":             END_REPEAT,
	"EXIT":                   EXIT,
	"CONTINUE":               CONTINUE,
	"RETURN":                 RETURN,
	"FUNCTION":               FUNCTION,
	"END_FUNCTION":           END_FUNCTION,
	"FUNCTION_BLOCK":         FUNCTION_BLOCK,
	"END_FUNCTION_BLOCK":     END_FUNCTION_BLOCK,
	"PROGRAM":                PROGRAM,
	"END_PROGRAM":            END_PROGRAM,
	"CLASS":                  CLASS,
	"END_CLASS":              END_CLASS,
	"INTERFACE":              INTERFACE,
	"END_INTERFACE":          END_INTERFACE,
	"METHOD":                 METHOD,
	"END_METHOD":             END_METHOD,
	"NAMESPACE":              NAMESPACE,
	"END_NAMESPACE":          END_NAMESPACE,
	"TYPE":                   TYPE,
	"END_TYPE":               END_TYPE,
	"EXTENDS":                EXTENDS,
	"IMPLEMENTS":             IMPLEMENTS,
	"ABSTRACT":               ABSTRACT,
	"FINAL":                  FINAL,
	"VAR":                    VAR,
	"VAR_INPUT":              VAR_INPUT,
	"VAR_OUTPUT":             VAR_OUTPUT,
	"VAR_IN_OUT":             VAR_IN_OUT,
	"VAR_TEMP":               VAR_TEMP,
	"VAR_GLOBAL":             VAR_GLOBAL,
	"VAR_EXTERNAL":           VAR_EXTERNAL,
	"VAR_ACCESS":             VAR_ACCESS,
	"VAR_CONFIG":             VAR_CONFIG,
	"END_VAR":                END_VAR,
	"CONSTANT":               CONSTANT,
	"RETAIN":                 RETAIN,
	"NON_RETAIN":             NON_RETAIN,
	"AT":                     AT,
	"ARRAY":                  ARRAY,
	"STRUCT":                 STRUCT,
	"END_STRUCT":             END_STRUCT,
	"REF_TO":                 REF_TO,
	"STRING":                 STRING_KW,
	"WSTRING":                WSTRING_KW,
	"AND":                    AND,
	"OR":                     OR,
	"XOR":                    XOR,
	"NOT":                    NOT,
	"MOD":                    MOD,
	"TRUE":                   TRUE,
	"FALSE":                  FALSE,
	"NULL":                   NULL,
}

// sclKeywords extends the table for the Siemens dialect.
var sclKeywords = map[string]TokenType{
	"DATA_BLOCK":             DATA_BLOCK,
	"END_DATA_BLOCK":         END_DATA_BLOCK,
	"ORGANIZATION_BLOCK":     ORGANIZATION_BLOCK,
	"END_ORGANIZATION_BLOCK": END_ORGANIZATION_BLOCK,
	"BEGIN":                  BEGIN,
	"REGION":                 REGION,
	"END_REGION":             END_REGION,
	"GOTO":                   GOTO,
	"LABEL":                  LABEL,
}

// timeLiteralPrefixes maps literal prefixes (before '#') to their token types.
var timeLiteralPrefixes = map[string]TokenType{
	"T":              TIME_LIT,
	"TIME":           TIME_LIT,
	"LTIME":          TIME_LIT,
	"LT":             TIME_LIT,
	"D":              DATE_LIT,
	"DATE":           DATE_LIT,
	"LDATE":          DATE_LIT,
	"LD":             DATE_LIT,
	"TOD":            TOD_LIT,
	"TIME_OF_DAY":    TOD_LIT,
	"LTOD":           TOD_LIT,
	"LTIME_OF_DAY":   TOD_LIT,
	"DT":             DT_LIT,
	"DATE_AND_TIME":  DT_LIT,
	"LDT":            DT_LIT,
	"LDATE_AND_TIME": DT_LIT,
}

// LookupIdent checks if the identifier is a keyword for the given dialect.
// Matching is case-insensitive; the caller keeps the original spelling.
func LookupIdent(ident string, dialect Dialect) TokenType {
	upper := strings.ToUpper(ident)
	if dialect == DialectSCL {
		if tok, ok := sclKeywords[upper]; ok {
			return tok
		}
	}
	if tok, ok := keywords[upper]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether the token type is any IEC keyword.
func IsKeyword(tt TokenType) bool {
	switch tt {
	case ILLEGAL, EOF, IDENT, INT, REAL, STRING_LIT, WSTRING_LIT,
		TIME_LIT, DATE_LIT, TOD_LIT, DT_LIT, ADDRESS, PRAGMA,
		LINE_COMMENT, BLOCK_COMMENT, WHITESPACE, NEWLINE:
		return false
	}
	// Operator and delimiter token types render as their punctuation.
	s := string(tt)
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}
