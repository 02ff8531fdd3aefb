package types

import (
	"testing"

	"github.com/plclens/plclens/internal/diag"
)

func TestDefineAndLookup(t *testing.T) {
	table := NewSymbolTable()
	if d := table.Define(&Symbol{Name: "Speed", Kind: SymbolVariable, Type: TypeReal}); d != nil {
		t.Fatalf("unexpected diagnostic on first define: %v", d)
	}

	sym := table.Lookup("Speed")
	if sym == nil {
		t.Fatalf("lookup of a defined name returned nil")
	}
	if sym.Name != "Speed" || sym.Kind != SymbolVariable {
		t.Errorf("lookup returned wrong symbol: %+v", sym)
	}
	if table.Lookup("missing") != nil {
		t.Errorf("lookup of an undefined name should return nil")
	}
}

func TestLookupMatchesExactSpelling(t *testing.T) {
	table := NewSymbolTable()
	if d := table.Define(&Symbol{Name: "motor", Kind: SymbolVariable, Type: TypeBool}); d != nil {
		t.Fatalf("unexpected diagnostic on define: %v", d)
	}

	if table.Lookup("MOTOR") != nil {
		t.Errorf("lookup folded case; identifiers match by exact spelling")
	}
	if table.Lookup("Motor") != nil {
		t.Errorf("lookup folded case; identifiers match by exact spelling")
	}
	if table.Lookup("motor") == nil {
		t.Errorf("exact spelling should resolve")
	}
}

func TestDuplicateDefinition(t *testing.T) {
	table := NewSymbolTable()
	first := &Symbol{Name: "Count", Kind: SymbolVariable, Span: diag.Span{Line: 1}}
	table.Define(first)

	d := table.Define(&Symbol{Name: "Count", Kind: SymbolVariable, Span: diag.Span{Line: 5}})
	if d == nil {
		t.Fatalf("redefining a name in the same scope should produce a diagnostic")
	}
	if d.Code != diag.CodeDuplicateDefinition {
		t.Errorf("code = %v, want %v", d.Code, diag.CodeDuplicateDefinition)
	}
	if len(d.Related) == 0 || d.Related[0].Line != 1 {
		t.Errorf("duplicate diagnostic should point at the first definition")
	}
}

func TestScopeNesting(t *testing.T) {
	table := NewSymbolTable()
	table.Define(&Symbol{Name: "g", Kind: SymbolVariable, Type: TypeDInt})

	table.EnterScope("MotorCtl")
	table.Define(&Symbol{Name: "local", Kind: SymbolVariable, Type: TypeBool})

	if table.Lookup("g") == nil {
		t.Errorf("inner scope should see outer symbols")
	}
	if table.Lookup("local") == nil {
		t.Errorf("inner scope should see its own symbols")
	}

	// Shadowing is a new definition, not a duplicate.
	if d := table.Define(&Symbol{Name: "g", Kind: SymbolVariable, Type: TypeBool}); d != nil {
		t.Errorf("shadowing an outer name should not be a duplicate: %v", d)
	}

	table.ExitScope()
	if table.Lookup("local") != nil {
		t.Errorf("outer scope should not see inner symbols")
	}
	if sym := table.Lookup("g"); sym == nil || sym.Type != Type(TypeDInt) {
		t.Errorf("outer definition should be restored after ExitScope")
	}
}

func TestMarkUsedAndAssigned(t *testing.T) {
	table := NewSymbolTable()
	table.Define(&Symbol{Name: "x", Kind: SymbolVariable})

	table.MarkUsed("X")
	table.MarkAssigned("x")

	sym := table.Lookup("x")
	if !sym.Used || !sym.Assigned {
		t.Errorf("marks did not stick: used=%v assigned=%v", sym.Used, sym.Assigned)
	}

	// Marking an undefined name is a no-op.
	table.MarkUsed("nothing")
	table.MarkAssigned("nothing")
}

func TestCheckUnused(t *testing.T) {
	table := NewSymbolTable()
	table.Define(&Symbol{Name: "dead", Kind: SymbolVariable, Span: diag.Span{Start: 10}})
	table.Define(&Symbol{Name: "live", Kind: SymbolVariable, Used: true, Assigned: true, Span: diag.Span{Start: 20}})
	table.Define(&Symbol{Name: "out", Kind: SymbolOutput, Span: diag.Span{Start: 30}})
	table.Define(&Symbol{Name: "io", Kind: SymbolInOut, Span: diag.Span{Start: 40}})
	table.Define(&Symbol{Name: "readOnly", Kind: SymbolVariable, Used: true, Span: diag.Span{Start: 50}})

	diags := table.CheckUnused()

	var unused, uninit []int
	for _, d := range diags {
		switch d.Code {
		case diag.CodeUnusedVariable:
			unused = append(unused, d.Span.Start)
		case diag.CodeUninitializedVariable:
			uninit = append(uninit, d.Span.Start)
		default:
			t.Errorf("unexpected code %v", d.Code)
		}
	}

	// "dead" is never read, "readOnly" is read but never written.
	// Outputs and in-outs are exempt from the sweep.
	if len(unused) != 1 || unused[0] != 10 {
		t.Errorf("unused = %v, want [10]", unused)
	}
	if len(uninit) != 2 || uninit[0] != 10 || uninit[1] != 50 {
		t.Errorf("uninitialized = %v, want [10 50]", uninit)
	}

	for _, d := range diags {
		if d.Severity != diag.SeverityWarning {
			t.Errorf("unused findings should be warnings, got %v", d.Severity)
		}
	}
}
