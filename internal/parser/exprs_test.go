package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/plclens/plclens/internal/ast"
)

// parseBody parses a statement list wrapped in a scratch program.
func parseBody(t *testing.T, stmts string, opts ...Option) []ast.Stmt {
	t.Helper()

	input := "PROGRAM Scratch\n" + stmts + "\nEND_PROGRAM"
	pou := singlePou(t, input, opts...)
	return pou.Body
}

// parseValueExpr parses a single expression via an assignment statement.
func parseValueExpr(t *testing.T, src string, opts ...Option) ast.Expr {
	t.Helper()

	body := parseBody(t, "x := "+src+";", opts...)
	if len(body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body))
	}
	assign, ok := body[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("statement is %T, not *ast.AssignStmt", body[0])
	}
	return assign.Value
}

// exprString renders an expression with full parenthesization so
// precedence tests can compare shapes directly.
func exprString(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.IntLit:
		return e.Raw
	case *ast.RealLit:
		return e.Raw
	case *ast.BoolLit:
		if e.Value {
			return "TRUE"
		}
		return "FALSE"
	case *ast.StringLit:
		return "'" + e.Value + "'"
	case *ast.TimeLit:
		return e.Raw
	case *ast.AddressLit:
		return e.Raw
	case *ast.NullLit:
		return "NULL"
	case *ast.PrefixExpr:
		return "(" + e.Op + " " + exprString(e.Operand) + ")"
	case *ast.BinaryExpr:
		return "(" + exprString(e.Left) + " " + e.Op + " " + exprString(e.Right) + ")"
	case *ast.MemberExpr:
		return exprString(e.X) + "." + e.Member.Name
	case *ast.DerefExpr:
		return exprString(e.X) + "^"
	case *ast.IndexExpr:
		parts := make([]string, len(e.Indexes))
		for i, idx := range e.Indexes {
			parts[i] = exprString(idx)
		}
		return exprString(e.X) + "[" + strings.Join(parts, ", ") + "]"
	case *ast.CallExpr:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			if a.Value == nil {
				parts[i] = "_"
				continue
			}
			parts[i] = exprString(a.Value)
		}
		return exprString(e.Fn) + "(" + strings.Join(parts, ", ") + ")"
	case *ast.RangeExpr:
		return exprString(e.Low) + ".." + exprString(e.High)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b * c", "((a / b) * c)"},
		{"a MOD 2 = 0", "((a MOD 2) = 0)"},
		{"a OR b AND c", "(a OR (b AND c))"},
		{"a AND b = c", "(a AND (b = c))"},
		{"a XOR b OR c", "((a XOR b) OR c)"},
		{"a = b + c * d", "(a = (b + (c * d)))"},
		{"a < b OR c > d", "((a < b) OR (c > d))"},
		{"a <= b AND b <> c", "((a <= b) AND (b <> c))"},
		{"a & b OR c", "((a AND b) OR c)"},
		{"NOT a AND b", "((NOT a) AND b)"},
		{"NOT a OR NOT b", "((NOT a) OR (NOT b))"},
		{"-x + y", "((- x) + y)"},
		{"-x ** 2", "((- x) ** 2)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"2 * 3 ** 2", "(2 * (3 ** 2))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"NOT (a OR b)", "(NOT (a OR b))"},
		{
			"a OR b AND NOT c = d + e * f ** g",
			"(a OR (b AND ((NOT c) = (d + (e * (f ** g))))))",
		},
	}

	for _, tt := range tests {
		expr := parseValueExpr(t, tt.input)
		got := exprString(expr)
		if got != tt.want {
			t.Errorf("%q parsed as %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestPostfixChain(t *testing.T) {
	expr := parseValueExpr(t, "Axes[1, 2].Pos^")

	if got := exprString(expr); got != "Axes[1, 2].Pos^" {
		t.Errorf("parsed as %s", got)
	}
	deref, ok := expr.(*ast.DerefExpr)
	if !ok {
		t.Fatalf("expression is %T, not *ast.DerefExpr", expr)
	}
	member, ok := deref.X.(*ast.MemberExpr)
	if !ok {
		t.Fatalf("deref target is %T, not *ast.MemberExpr", deref.X)
	}
	if _, ok := member.X.(*ast.IndexExpr); !ok {
		t.Errorf("member base is %T, not *ast.IndexExpr", member.X)
	}
}

func TestLiteralExpressions(t *testing.T) {
	if lit, ok := parseValueExpr(t, "16#FF").(*ast.IntLit); !ok || lit.Value != 255 {
		t.Errorf("16#FF did not parse to 255")
	}
	if lit, ok := parseValueExpr(t, "1.5e3").(*ast.RealLit); !ok || lit.Value != 1500.0 {
		t.Errorf("1.5e3 did not parse to 1500.0")
	}
	if lit, ok := parseValueExpr(t, "'hello'").(*ast.StringLit); !ok || lit.Value != "hello" || lit.Wide {
		t.Errorf("'hello' did not parse to a narrow string")
	}
	if lit, ok := parseValueExpr(t, "T#5s").(*ast.TimeLit); !ok || lit.Kind != ast.TimeDuration {
		t.Errorf("T#5s did not parse to a duration literal")
	}
	if lit, ok := parseValueExpr(t, "DT#2024-01-01-00:00:00").(*ast.TimeLit); !ok || lit.Kind != ast.TimeDateTime {
		t.Errorf("DT literal did not parse to a date-time literal")
	}
	if lit, ok := parseValueExpr(t, "TRUE").(*ast.BoolLit); !ok || !lit.Value {
		t.Errorf("TRUE did not parse to a bool literal")
	}
	if lit, ok := parseValueExpr(t, "%IX0.0").(*ast.AddressLit); !ok || lit.Raw != "%IX0.0" {
		t.Errorf("%%IX0.0 did not parse to an address literal")
	}
	if _, ok := parseValueExpr(t, "NULL").(*ast.NullLit); !ok {
		t.Errorf("NULL did not parse to a null literal")
	}
}

func callFromBody(t *testing.T, stmts string, opts ...Option) *ast.CallExpr {
	t.Helper()

	body := parseBody(t, stmts, opts...)
	if len(body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body))
	}
	call, ok := body[0].(*ast.CallStmt)
	if !ok {
		t.Fatalf("statement is %T, not *ast.CallStmt", body[0])
	}
	return call.Call
}

func TestCallArguments(t *testing.T) {
	call := callFromBody(t, "Timer1(IN := Start, PT := T#500ms, Q => Running, NOT ET => Idle);")

	if call.Callee() != "Timer1" {
		t.Errorf("callee = %q, want Timer1", call.Callee())
	}
	if len(call.Args) != 4 {
		t.Fatalf("expected 4 arguments, got %d", len(call.Args))
	}

	in := call.Args[0]
	if in.Name == nil || in.Name.Name != "IN" || in.Output {
		t.Errorf("first argument should be the named input IN")
	}
	if v, ok := in.Value.(*ast.Ident); !ok || v.Name != "Start" {
		t.Errorf("IN value = %v, want Start", in.Value)
	}

	pt := call.Args[1]
	if pt.Name == nil || pt.Name.Name != "PT" {
		t.Errorf("second argument should be the named input PT")
	}
	if _, ok := pt.Value.(*ast.TimeLit); !ok {
		t.Errorf("PT value is %T, not *ast.TimeLit", pt.Value)
	}

	q := call.Args[2]
	if !q.Output || q.Negated || q.Name == nil || q.Name.Name != "Q" {
		t.Errorf("third argument should be the output Q")
	}
	if v, ok := q.Value.(*ast.Ident); !ok || v.Name != "Running" {
		t.Errorf("Q destination = %v, want Running", q.Value)
	}

	et := call.Args[3]
	if !et.Output || !et.Negated || et.Name == nil || et.Name.Name != "ET" {
		t.Errorf("fourth argument should be the negated output ET")
	}
}

func TestCallPositionalArguments(t *testing.T) {
	call := callFromBody(t, "MOV(Source, Dest);")

	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}
	for i, a := range call.Args {
		if a.Name != nil || a.Output {
			t.Errorf("argument %d should be positional", i)
		}
	}
}

func TestCallEmptySlots(t *testing.T) {
	call := callFromBody(t, "MOV(Source, , Dest);")

	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Args))
	}
	if call.Args[0].Value == nil || call.Args[2].Value == nil {
		t.Errorf("outer arguments should carry values")
	}
	if call.Args[1].Value != nil {
		t.Errorf("middle argument should be an empty slot")
	}

	call = callFromBody(t, "Scan(a, );")
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}
	if call.Args[1].Value != nil {
		t.Errorf("trailing slot should be empty")
	}
}

func TestCallNoArguments(t *testing.T) {
	call := callFromBody(t, "Housekeeping();")

	if len(call.Args) != 0 {
		t.Errorf("expected no arguments, got %d", len(call.Args))
	}
}

func TestNestedCalls(t *testing.T) {
	expr := parseValueExpr(t, "MAX(MIN(a, b), c)")

	if got := exprString(expr); got != "MAX(MIN(a, b), c)" {
		t.Errorf("parsed as %s", got)
	}
}

func TestMethodCallOnMember(t *testing.T) {
	call := callFromBody(t, "Axis.Reset(hard := TRUE);")

	if call.Callee() != "Reset" {
		t.Errorf("callee = %q, want Reset", call.Callee())
	}
	if _, ok := call.Fn.(*ast.MemberExpr); !ok {
		t.Errorf("call target is %T, not *ast.MemberExpr", call.Fn)
	}
}
