package parser

import (
	"strings"
	"testing"

	"github.com/plclens/plclens/internal/diag"
)

func securityErrors(errs []ParseError) []ParseError {
	var out []ParseError
	for _, e := range errs {
		if e.Code == diag.CodeParseSecurityLimit {
			out = append(out, e)
		}
	}
	return out
}

func TestLimitPresets(t *testing.T) {
	balanced := BalancedLimits()
	if balanced.MaxDepth != 256 || balanced.MaxNodes != 10_000_000 {
		t.Errorf("balanced preset changed: %+v", balanced)
	}

	strict := StrictLimits()
	if strict.MaxDepth != 64 || strict.MaxInputSize != 10*1024*1024 {
		t.Errorf("strict preset changed: %+v", strict)
	}

	relaxed := RelaxedLimits()
	if relaxed.MaxDepth != 512 {
		t.Errorf("relaxed preset changed: %+v", relaxed)
	}

	if !(strict.MaxDepth < balanced.MaxDepth && balanced.MaxDepth < relaxed.MaxDepth) {
		t.Errorf("presets are not ordered strict < balanced < relaxed")
	}
}

func TestMaxInputSize(t *testing.T) {
	limits := BalancedLimits()
	limits.MaxInputSize = 16

	_, errs := Parse("PROGRAM P\nx := 1;\nEND_PROGRAM", WithLimits(limits))

	sec := securityErrors(errs)
	if len(sec) != 1 {
		t.Fatalf("expected 1 security error, got %v", errs)
	}
	if !strings.Contains(sec[0].Message, "size") {
		t.Errorf("message = %q", sec[0].Message)
	}
}

func TestMaxDepth(t *testing.T) {
	limits := BalancedLimits()
	limits.MaxDepth = 8

	expr := strings.Repeat("(", 32) + "1" + strings.Repeat(")", 32)
	_, errs := Parse("PROGRAM P\nx := "+expr+";\nEND_PROGRAM", WithLimits(limits))

	if len(securityErrors(errs)) != 1 {
		t.Fatalf("expected exactly 1 security error, got %v", errs)
	}
}

func TestMaxDepthAllowsShallowInput(t *testing.T) {
	limits := BalancedLimits()
	limits.MaxDepth = 64

	expr := strings.Repeat("(", 8) + "1" + strings.Repeat(")", 8)
	_, errs := Parse("PROGRAM P\nx := "+expr+";\nEND_PROGRAM", WithLimits(limits))

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestMaxStringLength(t *testing.T) {
	limits := BalancedLimits()
	limits.MaxStringLength = 4

	_, errs := Parse("PROGRAM P\nmsg := 'ABCDEFGH';\nEND_PROGRAM", WithLimits(limits))

	if len(securityErrors(errs)) != 1 {
		t.Fatalf("expected exactly 1 security error, got %v", errs)
	}
}

func TestMaxCollectionSize(t *testing.T) {
	limits := BalancedLimits()
	limits.MaxCollectionSize = 3

	_, errs := Parse("PROGRAM P\nF(a, b, c, d, e);\nEND_PROGRAM", WithLimits(limits))

	if len(securityErrors(errs)) != 1 {
		t.Fatalf("expected exactly 1 security error, got %v", errs)
	}
}

func TestMaxNodes(t *testing.T) {
	limits := BalancedLimits()
	limits.MaxNodes = 4

	_, errs := Parse(`PROGRAM P
a := 1;
b := 2;
c := 3;
d := 4;
e := 5;
END_PROGRAM`, WithLimits(limits))

	if len(securityErrors(errs)) != 1 {
		t.Fatalf("expected exactly 1 security error, got %v", errs)
	}
}

func TestMaxIterations(t *testing.T) {
	limits := BalancedLimits()
	limits.MaxIterations = 5

	var sb strings.Builder
	sb.WriteString("PROGRAM P\n")
	for i := 0; i < 50; i++ {
		sb.WriteString("x := 1;\n")
	}
	sb.WriteString("END_PROGRAM")

	_, errs := Parse(sb.String(), WithLimits(limits))

	if len(securityErrors(errs)) != 1 {
		t.Fatalf("expected exactly 1 security error, got %v", errs)
	}
}
