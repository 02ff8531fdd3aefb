package project

import (
	"fmt"
	"sort"

	"github.com/plclens/plclens/internal/analysis"
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
	"github.com/plclens/plclens/internal/parser"
)

// StLocation names an ST routine within a project.
type StLocation struct {
	Program string
	Routine string
}

// Path renders the location as Program/Routine.
func (l StLocation) Path() string {
	return fmt.Sprintf("%s/%s", l.Program, l.Routine)
}

// StRoutine is one parsed and analyzed ST routine.
type StRoutine struct {
	Location    StLocation
	Source      string
	Pou         *ast.Pou
	ParseErrors []parser.ParseError
	Diagnostics []diag.Diagnostic
}

// Parsed reports whether the routine parsed without errors.
func (r *StRoutine) Parsed() bool {
	return r.Pou != nil && len(r.ParseErrors) == 0
}

// HasErrors reports a parse failure or an error-level diagnostic.
func (r *StRoutine) HasErrors() bool {
	if len(r.ParseErrors) > 0 {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-level diagnostics.
func (r *StRoutine) Errors() []diag.Diagnostic {
	return r.filter(diag.SeverityError)
}

// Warnings returns the warning-level diagnostics.
func (r *StRoutine) Warnings() []diag.Diagnostic {
	return r.filter(diag.SeverityWarning)
}

func (r *StRoutine) filter(sev diag.Severity) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// parseStRoutine wraps the routine's bare statements in a synthetic
// PROGRAM, parses them in the Rockwell dialect, and runs the per-POU
// analysis pipeline on the result.
func parseStRoutine(routine *Routine, program string) *StRoutine {
	source := routine.Source()
	wrapped := fmt.Sprintf("PROGRAM %s\nVAR\nEND_VAR\n%s\nEND_PROGRAM", routine.Name, source)

	parsed := &StRoutine{
		Location: StLocation{Program: program, Routine: routine.Name},
		Source:   source,
	}

	unit, errs := parser.Parse(wrapped, parser.WithDialect(lexer.DialectRockwell))
	parsed.ParseErrors = errs
	if len(errs) > 0 {
		return parsed
	}
	if pous := unit.Pous(); len(pous) > 0 {
		parsed.Pou = pous[0]
	}
	if parsed.Pou != nil {
		parsed.Diagnostics = analysis.AnalyzePou(parsed.Pou).Diagnostics
	}
	return parsed
}

// stCallNames collects every distinct callee name in the routine's
// body, sorted; these are matched against AOI definitions.
func stCallNames(pou *ast.Pou) []string {
	seen := map[string]bool{}
	var names []string
	for _, stmt := range pou.Body {
		ast.Walk(stmt, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if name := call.Callee(); name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return true
		})
	}
	sort.Strings(names)
	return names
}
