package types

import (
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
)

func toDiagSpan(s lexer.Span) diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// Resolve maps a syntactic type reference onto the analysis lattice.
// User-defined names resolve through the table when they are known
// types; otherwise they become Named stubs.
func (t *SymbolTable) Resolve(ref ast.TypeRef) Type {
	switch ref := ref.(type) {
	case *ast.NamedType:
		if el := FromName(ref.Name.Name); el != nil {
			return el
		}
		if sym := t.Lookup(ref.Name.Name); sym != nil && sym.Kind == SymbolType && sym.Type != nil {
			return sym.Type
		}
		if fb := LookupBuiltinFunctionBlock(ref.Name.Name); fb != nil {
			return fb
		}
		return &Named{Name: ref.Name.Name}
	case *ast.StringType:
		length := 0
		if lit, ok := ref.Length.(*ast.IntLit); ok {
			length = int(lit.Value)
		}
		if ref.Wide {
			if length == 0 {
				return TypeWString
			}
			return &String{Wide: true, Length: length}
		}
		if length == 0 {
			return TypeString
		}
		return &String{Length: length}
	case *ast.ArrayType:
		arr := &Array{Elem: t.Resolve(ref.Elem)}
		for _, d := range ref.Dimensions {
			arr.Dims = append(arr.Dims, Dimension{
				Low:  constInt(d.Low),
				High: constInt(d.High),
			})
		}
		return arr
	case *ast.SubrangeType:
		base := t.Resolve(ref.Base)
		return &Subrange{
			Base: base,
			Low:  constInt(ref.Range.Low),
			High: constInt(ref.Range.High),
		}
	case *ast.StructType:
		st := &Struct{}
		for _, field := range ref.Fields {
			ft := t.Resolve(field.Type)
			for _, name := range field.Names {
				st.Fields = append(st.Fields, Field{Name: name.Name, Type: ft})
			}
		}
		return st
	case *ast.EnumType:
		en := &Enum{}
		for _, v := range ref.Values {
			en.Tags = append(en.Tags, v.Name.Name)
		}
		return en
	case *ast.RefType:
		return &Ref{To: t.Resolve(ref.To)}
	default:
		return TypeUnknown
	}
}

// constInt evaluates the constant integer bounds that appear in array
// dimensions and subranges. Non-constant bounds yield 0.
func constInt(e ast.Expr) int64 {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Value
	case *ast.PrefixExpr:
		if e.Op == "-" {
			return -constInt(e.Operand)
		}
	}
	return 0
}

var varBlockSymbolKinds = map[ast.VarBlockKind]SymbolKind{
	ast.VarLocal:    SymbolVariable,
	ast.VarInput:    SymbolParameter,
	ast.VarOutput:   SymbolOutput,
	ast.VarInOut:    SymbolInOut,
	ast.VarTemp:     SymbolVariable,
	ast.VarGlobal:   SymbolVariable,
	ast.VarExternal: SymbolVariable,
	ast.VarAccess:   SymbolVariable,
	ast.VarConfig:   SymbolVariable,
}

// FromPou builds the symbol table for one POU: a scope named after the
// POU holding every declared variable. Inputs and in-outs are assigned
// by the caller; a variable with an initializer starts assigned. The
// function name itself is defined as the return slot for functions.
func FromPou(pou *ast.Pou) (*SymbolTable, []diag.Diagnostic) {
	table := NewSymbolTable()
	var diags []diag.Diagnostic

	table.EnterScope(pou.Name.Name)

	if pou.Kind == ast.PouFunction && pou.ReturnType != nil {
		ret := &Symbol{
			Name:     pou.Name.Name,
			Kind:     SymbolOutput,
			Type:     table.Resolve(pou.ReturnType),
			Span:     toDiagSpan(pou.Name.Span()),
			Assigned: false,
		}
		if d := table.Define(ret); d != nil {
			diags = append(diags, *d)
		}
	}

	for _, block := range pou.VarBlocks {
		kind := varBlockSymbolKinds[block.Kind]
		if block.Constant {
			kind = SymbolConstant
		}
		for _, decl := range block.Decls {
			declType := table.Resolve(decl.Type)
			for _, name := range decl.Names {
				sym := &Symbol{
					Name:     name.Name,
					Kind:     kind,
					Type:     declType,
					Span:     toDiagSpan(name.Span()),
					Assigned: decl.Init != nil,
				}
				switch block.Kind {
				case ast.VarInput, ast.VarInOut, ast.VarExternal, ast.VarGlobal:
					sym.Assigned = true
				}
				if d := table.Define(sym); d != nil {
					diags = append(diags, *d)
				}
			}
		}
	}

	return table, diags
}

// DefineTypeBlock registers user-defined types in the current scope so
// later declarations and CASE labels resolve. Enum tags are defined as
// constants of their enum type.
func (t *SymbolTable) DefineTypeBlock(block *ast.TypeBlock) []diag.Diagnostic {
	var diags []diag.Diagnostic

	for _, decl := range block.Decls {
		resolved := t.Resolve(decl.Type)
		switch typ := resolved.(type) {
		case *Struct:
			typ.Name = decl.Name.Name
		case *Enum:
			typ.Name = decl.Name.Name
		}

		sym := &Symbol{
			Name: decl.Name.Name,
			Kind: SymbolType,
			Type: resolved,
			Span: toDiagSpan(decl.Name.Span()),
		}
		if d := t.Define(sym); d != nil {
			diags = append(diags, *d)
			continue
		}

		if en, ok := resolved.(*Enum); ok {
			for _, tag := range en.Tags {
				tagSym := &Symbol{
					Name:     tag,
					Kind:     SymbolConstant,
					Type:     en,
					Span:     toDiagSpan(decl.Name.Span()),
					Assigned: true,
					Used:     true,
				}
				if d := t.Define(tagSym); d != nil {
					diags = append(diags, *d)
				}
			}
		}
	}

	return diags
}
