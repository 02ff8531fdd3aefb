package analysis

import (
	"strings"
	"testing"

	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/parser"
)

func parsePou(t *testing.T, src string) *ast.Pou {
	t.Helper()
	unit, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	pous := unit.Pous()
	if len(pous) != 1 {
		t.Fatalf("expected one POU, got %d", len(pous))
	}
	return pous[0]
}

func detectSmells(t *testing.T, body string) []diag.Diagnostic {
	t.Helper()
	pou := parsePou(t, "PROGRAM Scratch\n"+body+"\nEND_PROGRAM")
	return NewSmellDetector(DefaultSmellConfig()).AnalyzePou(pou)
}

func smellCodes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestDeadCodeAfterReturn(t *testing.T) {
	diags := detectSmells(t, "x := 1;\nRETURN;\ny := 2;")

	if len(diags) != 1 || diags[0].Code != diag.CodeDeadCode {
		t.Fatalf("diagnostics = %v, want one DEAD_CODE", smellCodes(diags))
	}
	if diags[0].Severity != diag.SeverityWarning {
		t.Errorf("severity = %v, want warning", diags[0].Severity)
	}
	if diags[0].Span.Line != 4 {
		t.Errorf("dead code flagged on line %d, want the trailing assignment", diags[0].Span.Line)
	}
	if !strings.Contains(diags[0].Message, "RETURN") {
		t.Errorf("message should name the terminator: %q", diags[0].Message)
	}
}

func TestDeadCodeAfterExit(t *testing.T) {
	diags := detectSmells(t, `
WHILE b DO
    EXIT;
    x := 1;
END_WHILE;`)

	if len(diags) != 1 || diags[0].Code != diag.CodeDeadCode {
		t.Fatalf("diagnostics = %v, want one DEAD_CODE", smellCodes(diags))
	}
	if !strings.Contains(diags[0].Message, "EXIT") {
		t.Errorf("message should name the terminator: %q", diags[0].Message)
	}
}

func TestEmptyBlocks(t *testing.T) {
	diags := detectSmells(t, `
IF b THEN
END_IF;
WHILE c DO
END_WHILE;`)

	var kinds []string
	for _, d := range diags {
		if d.Code != diag.CodeEmptyBlock {
			t.Errorf("unexpected code %v", d.Code)
			continue
		}
		kinds = append(kinds, strings.Fields(d.Message)[0])
	}
	if len(kinds) != 2 || kinds[0] != "IF" || kinds[1] != "WHILE" {
		t.Errorf("empty block kinds = %v, want [IF WHILE]", kinds)
	}
}

func TestConstantCondition(t *testing.T) {
	diags := detectSmells(t, `
IF TRUE THEN
    x := 1;
END_IF;`)

	if len(diags) != 1 || diags[0].Code != diag.CodeConstantCondition {
		t.Fatalf("diagnostics = %v, want one CONSTANT_CONDITION", smellCodes(diags))
	}
	if !strings.Contains(diags[0].Message, "TRUE") {
		t.Errorf("message should state the constant value: %q", diags[0].Message)
	}
}

func TestDeepNesting(t *testing.T) {
	diags := detectSmells(t, `
IF a THEN
    IF b THEN
        IF c THEN
            IF d THEN
                IF e THEN
                    x := 1;
                END_IF;
            END_IF;
        END_IF;
    END_IF;
END_IF;`)

	if len(diags) != 1 || diags[0].Code != diag.CodeDeepNesting {
		t.Fatalf("diagnostics = %v, want one DEEP_NESTING", smellCodes(diags))
	}
	// Depth 5 against a maximum of 4 stays in the hint tier.
	if diags[0].Severity != diag.SeverityHint {
		t.Errorf("severity = %v, want hint", diags[0].Severity)
	}
}

func TestComplexCondition(t *testing.T) {
	diags := detectSmells(t, `
IF a AND b AND c AND d AND e AND f THEN
    x := 1;
END_IF;`)

	if len(diags) != 1 || diags[0].Code != diag.CodeComplexCondition {
		t.Fatalf("diagnostics = %v, want one COMPLEX_CONDITION", smellCodes(diags))
	}
}

func TestMagicNumbers(t *testing.T) {
	diags := detectSmells(t, "x := 42;\ny := 10;\nz := arr[7];")

	var raws []string
	for _, d := range diags {
		if d.Code != diag.CodeMagicNumber {
			t.Errorf("unexpected code %v", d.Code)
			continue
		}
		raws = append(raws, strings.Fields(d.Message)[2])
	}
	// 10 is in the exception set; 42 and the array index 7 are not.
	if len(raws) != 2 || raws[0] != "42" || raws[1] != "7" {
		t.Errorf("magic numbers = %v, want [42 7]", raws)
	}
}

func TestCaseSmells(t *testing.T) {
	diags := detectSmells(t, `
CASE n OF
    1:
        x := 1;
    2:
END_CASE;`)

	codes := smellCodes(diags)
	if len(codes) != 2 || codes[0] != diag.CodeEmptyCaseBranch || codes[1] != diag.CodeMissingCaseElse {
		t.Fatalf("diagnostics = %v, want [EMPTY_CASE_BRANCH MISSING_CASE_ELSE]", codes)
	}
	if diags[1].Severity != diag.SeverityHint {
		t.Errorf("missing ELSE should be a hint, got %v", diags[1].Severity)
	}
}

func TestCaseWithElseIsQuiet(t *testing.T) {
	diags := detectSmells(t, `
CASE n OF
    1:
        x := 1;
ELSE
    x := 2;
END_CASE;`)

	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", smellCodes(diags))
	}
}

func TestLongFunction(t *testing.T) {
	body := strings.Repeat("x := 1;\n", 60)
	diags := detectSmells(t, body)

	if len(diags) != 1 || diags[0].Code != diag.CodeLongFunction {
		t.Fatalf("diagnostics = %v, want one LONG_FUNCTION", smellCodes(diags))
	}
	if !strings.Contains(diags[0].Message, "60") {
		t.Errorf("message should carry the measured size: %q", diags[0].Message)
	}
}

func TestSeverityTiers(t *testing.T) {
	tests := []struct {
		value, threshold int
		want             diag.Severity
	}{
		{5, 4, diag.SeverityHint},
		{6, 4, diag.SeverityHint},
		{7, 4, diag.SeverityWarning},
		{8, 4, diag.SeverityWarning},
		{9, 4, diag.SeverityError},
		{51, 50, diag.SeverityHint},
		{120, 50, diag.SeverityError},
	}
	for _, tt := range tests {
		if got := tier(tt.value, tt.threshold); got != tt.want {
			t.Errorf("tier(%d, %d) = %v, want %v", tt.value, tt.threshold, got, tt.want)
		}
	}
}
