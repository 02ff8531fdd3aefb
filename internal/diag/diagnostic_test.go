package diag_test

import (
	"strings"
	"testing"

	"github.com/plclens/plclens/internal/diag"
)

func TestSeverityOrdering(t *testing.T) {
	if !(diag.SeverityHint.Rank() < diag.SeverityWarning.Rank()) {
		t.Fatalf("expected hint < warning")
	}
	if !(diag.SeverityWarning.Rank() < diag.SeverityError.Rank()) {
		t.Fatalf("expected warning < error")
	}
}

func TestSpanMerge(t *testing.T) {
	a := diag.Span{Line: 1, Column: 3, Start: 2, End: 6}
	b := diag.Span{Line: 1, Column: 9, Start: 8, End: 14}

	got := a.Merge(b)
	if got.Start != 2 || got.End != 14 {
		t.Fatalf("expected merged span [2,14), got [%d,%d)", got.Start, got.End)
	}
	if got.Line != 1 || got.Column != 3 {
		t.Fatalf("expected merged span to keep receiver position, got %d:%d", got.Line, got.Column)
	}

	// Merge is symmetric in offsets regardless of argument order.
	rev := b.Merge(a)
	if rev.Start != 2 || rev.End != 14 {
		t.Fatalf("expected reversed merge [2,14), got [%d,%d)", rev.Start, rev.End)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := diag.Error(diag.StageTypeCheck, diag.CodeUndefinedIdentifier,
		"undefined identifier 'motor'", diag.Span{Line: 3, Column: 5, Start: 20, End: 25})

	got := d.String()
	if !strings.Contains(got, "error") || !strings.Contains(got, "undefined identifier 'motor'") {
		t.Fatalf("unexpected diagnostic string: %q", got)
	}
	if !strings.Contains(got, "3:5") {
		t.Fatalf("expected span in diagnostic string, got %q", got)
	}
}

func TestFormatWithSource(t *testing.T) {
	src := "x := 1;\ny := undef + 2;\n"
	start := strings.Index(src, "undef")
	d := diag.Error(diag.StageTypeCheck, diag.CodeUndefinedIdentifier,
		"undefined identifier 'undef'",
		diag.Span{Line: 2, Column: 6, Start: start, End: start + 5})

	out := diag.FormatWithSource(d, src)

	if !strings.Contains(out, "y := undef + 2;") {
		t.Fatalf("expected excerpt to contain the source line, got:\n%s", out)
	}
	if !strings.Contains(out, "^^^^^") {
		t.Fatalf("expected five carets under the identifier, got:\n%s", out)
	}
	if !strings.Contains(out, "2:6") {
		t.Fatalf("expected line:column header, got:\n%s", out)
	}
}

func TestBuilderMethods(t *testing.T) {
	orig := diag.Span{Line: 1, Column: 1, Start: 0, End: 4}
	d := diag.Warning(diag.StageAnalysis, diag.CodeDuplicateDefinition, "duplicate definition of 'x'", diag.Span{Line: 4, Column: 1}).
		WithRelated(orig).
		WithNote("first defined here").
		WithHelp("rename one of the declarations")

	if len(d.Related) != 1 || d.Related[0] != orig {
		t.Fatalf("expected related span to be recorded")
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(d.Notes))
	}
	if d.Help == "" {
		t.Fatalf("expected help text")
	}
}
