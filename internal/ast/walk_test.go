package ast

import (
	"testing"

	"github.com/plclens/plclens/internal/lexer"
)

func TestWalkVisitsEveryNode(t *testing.T) {
	// IF Start THEN Motor := Speed + 10; END_IF
	span := lexer.Span{}
	cond := NewIdent("Start", span)
	target := NewIdent("Motor", span)
	left := NewIdent("Speed", span)
	right := NewIntLit(10, "10", span)
	sum := NewBinaryExpr(left, "+", right, span)
	assign := NewAssignStmt(target, AssignPlain, sum, span)
	ifStmt := NewIfStmt(cond, span)
	ifStmt.Then = []Stmt{assign}

	var idents []string
	count := 0
	Walk(ifStmt, func(n Node) bool {
		count++
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})

	// ifStmt, cond, assign, target, sum, left, right
	if count != 7 {
		t.Fatalf("expected 7 nodes visited, got %d", count)
	}
	want := []string{"Start", "Motor", "Speed"}
	if len(idents) != len(want) {
		t.Fatalf("expected idents %v, got %v", want, idents)
	}
	for i := range want {
		if idents[i] != want[i] {
			t.Fatalf("ident %d: expected %q, got %q", i, want[i], idents[i])
		}
	}
}

func TestWalkStopsOnFalse(t *testing.T) {
	span := lexer.Span{}
	inner := NewBinaryExpr(NewIdent("a", span), "AND", NewIdent("b", span), span)
	outer := NewPrefixExpr("NOT", inner, span)

	count := 0
	Walk(outer, func(n Node) bool {
		count++
		_, isBinary := n.(*BinaryExpr)
		return !isBinary
	})

	// outer and inner only; the idents under inner are pruned.
	if count != 2 {
		t.Fatalf("expected traversal to stop at the binary node, got %d visits", count)
	}
}

func TestWalkCallArguments(t *testing.T) {
	span := lexer.Span{}
	arg1 := NewCallArg(span)
	arg1.Name = NewIdent("IN", span)
	arg1.Value = NewIdent("Start", span)
	arg2 := NewCallArg(span)
	arg2.Name = NewIdent("Q", span)
	arg2.Output = true
	arg2.Value = NewIdent("Running", span)
	call := NewCallExpr(NewIdent("Timer1", span), []*CallArg{arg1, arg2}, span)

	var names []string
	Walk(call, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})

	want := []string{"Timer1", "IN", "Start", "Q", "Running"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ident %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}
