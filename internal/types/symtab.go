package types

import (
	"github.com/plclens/plclens/internal/diag"
)

// SymbolKind classifies a named entity.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolOutput
	SymbolInOut
	SymbolConstant
	SymbolFunction
	SymbolFunctionBlock
	SymbolProgram
	SymbolType
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolOutput:
		return "output"
	case SymbolInOut:
		return "in-out"
	case SymbolConstant:
		return "constant"
	case SymbolFunction:
		return "function"
	case SymbolFunctionBlock:
		return "function block"
	case SymbolProgram:
		return "program"
	case SymbolType:
		return "type"
	default:
		return "symbol"
	}
}

// Symbol is a named entity with its resolved type and usage flags.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Type     Type
	Span     diag.Span
	Used     bool
	Assigned bool
}

// Mutable reports whether the symbol may be assigned to.
func (s *Symbol) Mutable() bool {
	return s.Kind != SymbolConstant && s.Kind != SymbolFunction &&
		s.Kind != SymbolFunctionBlock && s.Kind != SymbolProgram &&
		s.Kind != SymbolType
}

// Scope is one lexical scope. Parent is an index into the owning
// table's scope vector, or -1 for the root.
type Scope struct {
	Name    string
	Parent  int
	symbols map[string]*Symbol
}

// SymbolTable stores scopes in a flat vector so parent lookups are by
// index. Identifiers match by exact spelling; case folding happens only
// for keywords, in the lexer.
type SymbolTable struct {
	scopes  []*Scope
	current int
}

// NewSymbolTable creates a table with a single global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopes: []*Scope{{
			Name:    "global",
			Parent:  -1,
			symbols: make(map[string]*Symbol),
		}},
	}
}

// EnterScope pushes a child of the current scope and makes it current.
func (t *SymbolTable) EnterScope(name string) {
	t.scopes = append(t.scopes, &Scope{
		Name:    name,
		Parent:  t.current,
		symbols: make(map[string]*Symbol),
	})
	t.current = len(t.scopes) - 1
}

// ExitScope makes the parent of the current scope current. The scope
// itself stays in the vector so its symbols remain sweepable.
func (t *SymbolTable) ExitScope() {
	if parent := t.scopes[t.current].Parent; parent >= 0 {
		t.current = parent
	}
}

// CurrentScope returns the name of the current scope.
func (t *SymbolTable) CurrentScope() string {
	return t.scopes[t.current].Name
}

// Define adds a symbol to the current scope. A duplicate in the same
// scope produces a diagnostic pointing at the original definition.
func (t *SymbolTable) Define(sym *Symbol) *diag.Diagnostic {
	scope := t.scopes[t.current]

	if prev, ok := scope.symbols[sym.Name]; ok {
		d := diag.Error(diag.StageTypeCheck, diag.CodeDuplicateDefinition,
			"'"+sym.Name+"' is already defined in this scope", sym.Span).
			WithRelated(prev.Span)
		return &d
	}

	scope.symbols[sym.Name] = sym
	return nil
}

// Lookup resolves a name in the current scope or any ancestor.
func (t *SymbolTable) Lookup(name string) *Symbol {
	for i := t.current; i >= 0; i = t.scopes[i].Parent {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// MarkUsed flags the named symbol as read. Unknown names are ignored.
func (t *SymbolTable) MarkUsed(name string) {
	if sym := t.Lookup(name); sym != nil {
		sym.Used = true
	}
}

// MarkAssigned flags the named symbol as written.
func (t *SymbolTable) MarkAssigned(name string) {
	if sym := t.Lookup(name); sym != nil {
		sym.Assigned = true
	}
}

// CheckUnused sweeps every scope and reports variables that were never
// read, and mutable variables that were never assigned. Outputs and
// in-outs are exempt because they may be consumed externally.
func (t *SymbolTable) CheckUnused() []diag.Diagnostic {
	var out []diag.Diagnostic

	for _, scope := range t.scopes {
		for _, sym := range sortedSymbols(scope) {
			if sym.Kind == SymbolOutput || sym.Kind == SymbolInOut {
				continue
			}
			if sym.Kind == SymbolVariable && !sym.Used {
				out = append(out, diag.Warning(diag.StageTypeCheck, diag.CodeUnusedVariable,
					"variable '"+sym.Name+"' is declared but never used", sym.Span))
			}
			if sym.Kind == SymbolVariable && sym.Mutable() && !sym.Assigned {
				out = append(out, diag.Warning(diag.StageTypeCheck, diag.CodeUninitializedVariable,
					"variable '"+sym.Name+"' is never assigned a value", sym.Span))
			}
		}
	}

	return out
}

// sortedSymbols returns a scope's symbols in declaration order, using
// the span offset since maps do not preserve insertion order.
func sortedSymbols(scope *Scope) []*Symbol {
	syms := make([]*Symbol, 0, len(scope.symbols))
	for _, s := range scope.symbols {
		syms = append(syms, s)
	}
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && syms[j-1].Span.Start > syms[j].Span.Start; j-- {
			syms[j-1], syms[j] = syms[j], syms[j-1]
		}
	}
	return syms
}
