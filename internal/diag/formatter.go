package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics with source code excerpts and carets.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string // cache of source files by filename
}

// NewFormatter creates a formatter writing to stderr.
func NewFormatter() *Formatter {
	return &Formatter{
		out:         os.Stderr,
		sourceCache: make(map[string]string),
	}
}

// NewFormatterTo creates a formatter writing to the given writer.
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{
		out:         w,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers source text for a filename so excerpts can be rendered
// without touching the filesystem.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format prints a diagnostic with a source excerpt when the source is known.
func (f *Formatter) Format(d Diagnostic) {
	src, err := f.LoadSource(d.Span.Filename)
	if err != nil || src == "" || !d.Span.IsValid() {
		f.formatSimple(d)
		return
	}
	fmt.Fprint(f.out, FormatWithSource(d, src))
	f.printHelp(d)
}

// FormatWithSource renders a diagnostic against the original source text,
// producing a header, the offending line, and a caret underline.
func FormatWithSource(d Diagnostic, src string) string {
	var b strings.Builder

	if d.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", d.Severity, d.Message)
	}

	line, col := lineColumn(src, d.Span.Start)
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return b.String()
	}

	width := len(fmt.Sprintf("%d", line))
	if d.Span.Filename != "" {
		fmt.Fprintf(&b, "%s--> %s:%d:%d\n", strings.Repeat(" ", width+1), d.Span.Filename, line, col)
	} else {
		fmt.Fprintf(&b, "%s--> %d:%d\n", strings.Repeat(" ", width+1), line, col)
	}

	text := lines[line-1]
	fmt.Fprintf(&b, "%s |\n", strings.Repeat(" ", width+1))
	fmt.Fprintf(&b, " %d | %s\n", line, text)

	carets := d.Span.End - d.Span.Start
	if carets < 1 {
		carets = 1
	}
	if col-1+carets > len(text)+1 {
		carets = len(text) - col + 2
		if carets < 1 {
			carets = 1
		}
	}
	fmt.Fprintf(&b, "%s | %s%s\n",
		strings.Repeat(" ", width+1),
		strings.Repeat(" ", col-1),
		strings.Repeat("^", carets))

	return b.String()
}

// lineColumn computes the 1-based line and column of a byte offset.
func lineColumn(src string, offset int) (line, col int) {
	line, col = 1, 1
	if offset > len(src) {
		offset = len(src)
	}
	for _, ch := range src[:offset] {
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", d.Severity, d.Message)
	}
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}

// printHelp prints notes, help and related spans after the excerpt.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	} else if d.Suggestion != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Suggestion)
	}
	for _, related := range d.Related {
		if related.IsValid() {
			fmt.Fprintf(f.out, "  = note: related location at %s\n", related.String())
		}
	}
}
