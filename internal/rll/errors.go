package rll

import (
	"fmt"
	"strings"
)

// ErrorKind classifies rung parse failures.
type ErrorKind int

const (
	ErrUnexpectedChar ErrorKind = iota
	ErrExpected
	ErrUnclosedBracket
	ErrUnclosedParen
	ErrEmptyInput
	ErrMissingTerminator
	ErrInvalidInstruction
	ErrUnexpectedEOF
)

// Error is a single rung parse failure. Pos is a byte offset into the
// rung text, or -1 when the error has no position.
type Error struct {
	Kind ErrorKind
	Pos  int
	Ch   byte   // for ErrUnexpectedChar
	Want string // for ErrExpected
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("unexpected character %q at position %d", e.Ch, e.Pos)
	case ErrExpected:
		return fmt.Sprintf("expected %s at position %d", e.Want, e.Pos)
	case ErrUnclosedBracket:
		return fmt.Sprintf("unclosed bracket '[' at position %d", e.Pos)
	case ErrUnclosedParen:
		return fmt.Sprintf("unclosed parenthesis '(' at position %d", e.Pos)
	case ErrEmptyInput:
		return "empty input"
	case ErrMissingTerminator:
		return "missing rung terminator ';'"
	case ErrInvalidInstruction:
		return fmt.Sprintf("invalid instruction at position %d", e.Pos)
	default:
		return "unexpected end of input"
	}
}

// FormatWithContext renders the error as a multi-line report: the
// message, the source line, and a caret under the failing position.
// Long lines are windowed around the error.
func (e *Error) FormatWithContext(source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", e.Error())

	if e.Pos < 0 || e.Pos >= len(source) {
		return b.String()
	}

	lineStart, lineNum := lineAt(source, e.Pos)
	lineEnd := len(source)
	if i := strings.IndexByte(source[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
	}
	line := source[lineStart:lineEnd]
	col := e.Pos - lineStart

	display, caret := line, col
	if len(line) > 80 {
		start := col - 30
		if start < 0 {
			start = 0
		}
		end := col + 50
		if end > len(line) {
			end = len(line)
		}
		prefix, suffix := "", ""
		if start > 0 {
			prefix = "..."
		}
		if end < len(line) {
			suffix = "..."
		}
		display = prefix + line[start:end] + suffix
		caret = col - start + len(prefix)
	}

	fmt.Fprintf(&b, " --> position %d:%d\n", lineNum, col)
	gutter := fmt.Sprintf("%d | ", lineNum)
	b.WriteString(gutter)
	b.WriteString(display)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", len(gutter)+caret))
	b.WriteString("^ here")
	return b.String()
}

// lineAt returns the start offset and 1-based number of the line
// containing pos.
func lineAt(source string, pos int) (start, num int) {
	start, num = 0, 1
	for i := 0; i < pos && i < len(source); i++ {
		if source[i] == '\n' {
			start = i + 1
			num++
		}
	}
	return start, num
}

// RungError bundles a parse failure with its source text and project
// location, so reports can name the failing rung.
type RungError struct {
	Err     *Error
	Source  string
	Program string
	Routine string
	Rung    int
}

// Path renders the location as Program/Routine/Rung#N.
func (e *RungError) Path() string {
	return fmt.Sprintf("%s/%s/Rung#%d", e.Program, e.Routine, e.Rung)
}

func (e *RungError) Error() string { return e.Format() }

func (e *RungError) Unwrap() error { return e.Err }

// Format renders the full report: a location header when the error
// carries one, then the underlying error with source context.
func (e *RungError) Format() string {
	var b strings.Builder
	if e.Program != "" || e.Routine != "" {
		fmt.Fprintf(&b, "in %s\n", e.Path())
	}
	b.WriteString(e.Err.FormatWithContext(e.Source))
	return b.String()
}
