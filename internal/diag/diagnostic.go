package diag

import "fmt"

// Stage identifies which analysis phase produced the diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageTypeCheck Stage = "typecheck"
	StageAnalysis  Stage = "analysis"
	StageProject   Stage = "project"
)

// Severity captures how impactful the diagnostic is.
// Ordering is Hint < Warning < Error; Rank exposes it for sorting.
type Severity string

const (
	SeverityHint    Severity = "hint"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank returns the numeric order of the severity for filtering and sorting.
func (s Severity) Rank() int {
	switch s {
	case SeverityHint:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return 1
	}
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerUnterminatedString  Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedComment Code = "LEXER_UNTERMINATED_COMMENT"
	CodeLexerInvalidNumber       Code = "LEXER_INVALID_NUMBER"
	CodeLexerInvalidAddress      Code = "LEXER_INVALID_ADDRESS"
	CodeLexerIllegalRune         Code = "LEXER_ILLEGAL_RUNE"

	// Parser errors
	CodeParseUnexpectedToken    Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnexpectedEOF      Code = "PARSE_UNEXPECTED_EOF"
	CodeParseInvalidStatement   Code = "PARSE_INVALID_STATEMENT"
	CodeParseInvalidExpression  Code = "PARSE_INVALID_EXPRESSION"
	CodeParseInvalidDeclaration Code = "PARSE_INVALID_DECLARATION"
	CodeParseMissingTerminator  Code = "PARSE_MISSING_TERMINATOR"
	CodeParseSecurityLimit      Code = "PARSE_SECURITY_LIMIT"

	// Symbol and type diagnostics
	CodeUndefinedIdentifier   Code = "UNDEFINED_IDENTIFIER"
	CodeDuplicateDefinition   Code = "DUPLICATE_DEFINITION"
	CodeUnusedVariable        Code = "UNUSED_VARIABLE"
	CodeUninitializedVariable Code = "UNINITIALIZED_VARIABLE"
	CodeAssignToConstant      Code = "ASSIGN_TO_CONSTANT"
	CodeAssignToInput         Code = "ASSIGN_TO_INPUT"
	CodeTypeMismatch          Code = "TYPE_MISMATCH"
	CodeIncompatibleTypes     Code = "INCOMPATIBLE_TYPES"
	CodeWrongArgumentCount    Code = "WRONG_ARGUMENT_COUNT"
	CodeWrongArgumentType     Code = "WRONG_ARGUMENT_TYPE"
	CodeInvalidOperator       Code = "INVALID_OPERATOR"
	CodeNonIntegerIndex       Code = "NON_INTEGER_INDEX"
	CodeDimensionMismatch     Code = "DIMENSION_MISMATCH"
	CodeNonBoolCondition      Code = "NON_BOOL_CONDITION"
	CodeShadowedVariable      Code = "SHADOWED_VARIABLE"

	// Smell diagnostics
	CodeEmptyBlock        Code = "EMPTY_BLOCK"
	CodeDeepNesting       Code = "DEEP_NESTING"
	CodeLongFunction      Code = "LONG_FUNCTION"
	CodeComplexCondition  Code = "COMPLEX_CONDITION"
	CodeMagicNumber       Code = "MAGIC_NUMBER"
	CodeConstantCondition Code = "CONSTANT_CONDITION"
	CodeEmptyCaseBranch   Code = "EMPTY_CASE_BRANCH"
	CodeMissingCaseElse   Code = "MISSING_CASE_ELSE"
	CodeDeadCode          Code = "DEAD_CODE"
)

// Span represents a location in source code. Start and End are byte offsets
// into the original text; Line and Column are 1-based and used for display.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Merge returns a span covering both s and other: min start, max end.
// The receiver's display position wins unless it is unset.
func (s Span) Merge(other Span) Span {
	out := s
	if out.Filename == "" {
		out.Filename = other.Filename
	}
	if out.Line == 0 && other.Line != 0 {
		out.Line = other.Line
		out.Column = other.Column
	}
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Diagnostic is an analysis finding surfaced to end-users.
type Diagnostic struct {
	Stage      Stage
	Severity   Severity
	Code       Code
	Message    string
	Span       Span
	Suggestion string // Optional suggestion for fixing the finding
	Related    []Span // Optional related spans (e.g. the original definition)
	Notes      []string
	Help       string
}

// Error constructs an error-severity diagnostic.
func Error(stage Stage, code Code, msg string, span Span) Diagnostic {
	return Diagnostic{Stage: stage, Severity: SeverityError, Code: code, Message: msg, Span: span}
}

// Warning constructs a warning-severity diagnostic.
func Warning(stage Stage, code Code, msg string, span Span) Diagnostic {
	return Diagnostic{Stage: stage, Severity: SeverityWarning, Code: code, Message: msg, Span: span}
}

// Hint constructs a hint-severity diagnostic.
func Hint(stage Stage, code Code, msg string, span Span) Diagnostic {
	return Diagnostic{Stage: stage, Severity: SeverityHint, Code: code, Message: msg, Span: span}
}

// String renders the diagnostic as "severity: message at span".
func (d Diagnostic) String() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s at %s", d.Severity, d.Message, d.Span)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// WithSuggestion returns a new diagnostic with the given suggestion.
func (d Diagnostic) WithSuggestion(suggestion string) Diagnostic {
	d.Suggestion = suggestion
	return d
}

// WithRelated returns a new diagnostic with the given related span added.
func (d Diagnostic) WithRelated(span Span) Diagnostic {
	d.Related = append(d.Related, span)
	return d
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
