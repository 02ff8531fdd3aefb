package plcmodel

import (
	"fmt"
	"strings"

	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/lexer"
)

// FromCompilationUnit converts a parsed ST unit into the neutral
// model. The conversion is structural: type names and initializers are
// copied as text, not reinterpreted.
func FromCompilationUnit(unit *ast.CompilationUnit) *Project {
	project := &Project{}
	project.addDecls(unit.Decls, unit.Source)
	return project
}

func (project *Project) addDecls(decls []ast.Decl, source string) {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.Pou:
			project.Pous = append(project.Pous, convertPou(d, source)...)
		case *ast.VarBlock:
			class := blockClass(d.Kind)
			for _, v := range d.Decls {
				project.Globals = append(project.Globals,
					convertVars(v, class, d.Constant, source)...)
			}
		case *ast.TypeBlock:
			for _, t := range d.Decls {
				project.DataTypes = append(project.DataTypes, t.Name.Name)
			}
		case *ast.Namespace:
			project.addDecls(d.Decls, source)
		}
	}
}

// convertPou flattens one POU; methods become sibling POUs named
// Parent.Method, since the neutral model has no method concept.
func convertPou(pou *ast.Pou, source string) []*Pou {
	out := &Pou{
		Name: pou.Name.Name,
		Kind: pouKind(pou.Kind),
	}
	if pou.ReturnType != nil {
		out.ReturnType = typeName(pou.ReturnType)
	}

	for _, block := range pou.VarBlocks {
		class := blockClass(block.Kind)
		for _, decl := range block.Decls {
			vars := convertVars(decl, class, block.Constant, source)
			switch class {
			case ClassInput:
				out.Interface.Inputs = append(out.Interface.Inputs, vars...)
			case ClassOutput:
				out.Interface.Outputs = append(out.Interface.Outputs, vars...)
			case ClassInOut:
				out.Interface.InOuts = append(out.Interface.InOuts, vars...)
			case ClassTemp:
				out.Interface.Temps = append(out.Interface.Temps, vars...)
			default:
				out.Interface.Locals = append(out.Interface.Locals, vars...)
			}
		}
	}

	if len(pou.Body) > 0 {
		out.Body = &StBody{Text: bodyText(pou.Body, source)}
	}

	result := []*Pou{out}
	for _, m := range pou.Methods {
		for _, mp := range convertPou(m, source) {
			mp.Name = pou.Name.Name + "." + mp.Name
			mp.Kind = KindFunction
			result = append(result, mp)
		}
	}
	return result
}

func pouKind(k ast.PouKind) PouKind {
	switch k {
	case ast.PouProgram, ast.PouOrganizationBlock:
		return KindProgram
	case ast.PouFunction, ast.PouMethod:
		return KindFunction
	default:
		return KindFunctionBlock
	}
}

func blockClass(k ast.VarBlockKind) VariableClass {
	switch k {
	case ast.VarInput:
		return ClassInput
	case ast.VarOutput:
		return ClassOutput
	case ast.VarInOut:
		return ClassInOut
	case ast.VarTemp:
		return ClassTemp
	case ast.VarGlobal:
		return ClassGlobal
	case ast.VarExternal:
		return ClassExternal
	case ast.VarConfig:
		return ClassConfig
	case ast.VarAccess:
		return ClassAccess
	default:
		return ClassLocal
	}
}

// convertVars expands one declaration into one Variable per declared
// name; a, b : INT yields two entries sharing the type.
func convertVars(decl *ast.VarDecl, class VariableClass, constant bool, source string) []Variable {
	v := Variable{
		DataType:   typeName(decl.Type),
		Class:      class,
		Dimensions: dimensions(decl.Type),
		Constant:   constant,
	}
	if decl.Address != nil {
		v.Address = decl.Address.Raw
	}
	if decl.Init != nil {
		v.Initial = sliceSpan(source, decl.Init.Span())
	}

	out := make([]Variable, 0, len(decl.Names))
	for _, name := range decl.Names {
		nv := v
		nv.Name = name.Name
		out = append(out, nv)
	}
	return out
}

// typeName renders a type reference back to its declared textual name.
func typeName(t ast.TypeRef) string {
	switch t := t.(type) {
	case *ast.NamedType:
		return t.Name.Name
	case *ast.StringType:
		name := "STRING"
		if t.Wide {
			name = "WSTRING"
		}
		return name
	case *ast.ArrayType:
		return "ARRAY OF " + typeName(t.Elem)
	case *ast.SubrangeType:
		return t.Base.Name.Name
	case *ast.StructType:
		return "STRUCT"
	case *ast.EnumType:
		return "ENUM"
	case *ast.RefType:
		return "REF_TO " + typeName(t.To)
	default:
		return ""
	}
}

// dimensions extracts array extents when the bounds are integer
// literals; unknown bounds yield a zero extent.
func dimensions(t ast.TypeRef) []int {
	arr, ok := t.(*ast.ArrayType)
	if !ok {
		return nil
	}
	dims := make([]int, len(arr.Dimensions))
	for i, d := range arr.Dimensions {
		lo, okLo := constInt(d.Low)
		hi, okHi := constInt(d.High)
		if okLo && okHi && hi >= lo {
			dims[i] = int(hi-lo) + 1
		}
	}
	return dims
}

func constInt(e ast.Expr) (int64, bool) {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Value, true
	case *ast.PrefixExpr:
		if lit, ok := e.Operand.(*ast.IntLit); ok && e.Op == "-" {
			return -lit.Value, true
		}
	}
	return 0, false
}

// bodyText slices the statement list's source text back out of the
// original input.
func bodyText(stmts []ast.Stmt, source string) string {
	start := stmts[0].Span().Start
	end := stmts[len(stmts)-1].Span().End
	return strings.TrimSpace(sliceRange(source, start, end))
}

func sliceSpan(source string, span lexer.Span) string {
	return sliceRange(source, span.Start, span.End)
}

func sliceRange(source string, start, end int) string {
	if start < 0 || end > len(source) || start > end {
		return ""
	}
	return source[start:end]
}

// DescribeVariable renders a variable the way declaration listings
// print it.
func DescribeVariable(v Variable) string {
	var b strings.Builder
	b.WriteString(v.Name)
	if v.Address != "" {
		fmt.Fprintf(&b, " AT %s", v.Address)
	}
	b.WriteString(" : ")
	b.WriteString(v.DataType)
	if v.Initial != "" {
		b.WriteString(" := ")
		b.WriteString(v.Initial)
	}
	return b.String()
}
