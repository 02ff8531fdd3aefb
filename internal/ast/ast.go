package ast

import "github.com/plclens/plclens/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// TypeRef represents a type reference in a declaration.
type TypeRef interface {
	Node
	typeNode()
}

// CompilationUnit represents a parsed source file: a sequence of POUs,
// type blocks, and global variable blocks. Source holds the original
// input so consumers can slice body text back out via spans.
type CompilationUnit struct {
	Decls  []Decl
	Source string
	span   lexer.Span
}

// Span returns the span covering the entire unit.
func (u *CompilationUnit) Span() lexer.Span { return u.span }

// NewCompilationUnit constructs a compilation unit node.
func NewCompilationUnit(span lexer.Span) *CompilationUnit {
	return &CompilationUnit{span: span}
}

// SetSpan updates the unit span.
func (u *CompilationUnit) SetSpan(span lexer.Span) {
	u.span = span
}

// Pous returns the POU declarations of the unit, in source order,
// descending into namespaces.
func (u *CompilationUnit) Pous() []*Pou {
	return collectPous(u.Decls)
}

func collectPous(decls []Decl) []*Pou {
	var pous []*Pou
	for _, d := range decls {
		switch n := d.(type) {
		case *Pou:
			pous = append(pous, n)
		case *Namespace:
			pous = append(pous, collectPous(n.Decls)...)
		}
	}
	return pous
}

// PouKind distinguishes the kinds of program organization units.
type PouKind int

const (
	PouProgram PouKind = iota
	PouFunctionBlock
	PouFunction
	PouClass
	PouMethod
	PouInterface
	PouDataBlock         // Siemens DATA_BLOCK
	PouOrganizationBlock // Siemens ORGANIZATION_BLOCK
)

func (k PouKind) String() string {
	switch k {
	case PouProgram:
		return "PROGRAM"
	case PouFunctionBlock:
		return "FUNCTION_BLOCK"
	case PouFunction:
		return "FUNCTION"
	case PouClass:
		return "CLASS"
	case PouMethod:
		return "METHOD"
	case PouInterface:
		return "INTERFACE"
	case PouDataBlock:
		return "DATA_BLOCK"
	case PouOrganizationBlock:
		return "ORGANIZATION_BLOCK"
	default:
		return "POU"
	}
}

// Pou represents a program organization unit declaration.
type Pou struct {
	Kind       PouKind
	Name       *Ident
	ReturnType TypeRef  // functions and methods only
	Extends    *Ident   // classes and function blocks
	Implements []*Ident // classes
	Abstract   bool
	Final      bool
	Pragmas    []*Pragma
	VarBlocks  []*VarBlock
	Methods    []*Pou // classes, interfaces, function blocks
	Body       []Stmt
	span       lexer.Span
}

// Span returns the declaration span.
func (p *Pou) Span() lexer.Span { return p.span }

// NewPou constructs a POU declaration node.
func NewPou(kind PouKind, name *Ident, span lexer.Span) *Pou {
	return &Pou{
		Kind: kind,
		Name: name,
		span: span,
	}
}

// SetSpan updates the POU span.
func (p *Pou) SetSpan(span lexer.Span) {
	p.span = span
}

// declNode marks Pou as a declaration.
func (*Pou) declNode() {}

// Namespace represents a NAMESPACE block grouping declarations under a
// dotted name.
type Namespace struct {
	Name  *Ident // dotted path as written, e.g. "Plant.Conveyors"
	Decls []Decl
	span  lexer.Span
}

// Span returns the namespace span.
func (n *Namespace) Span() lexer.Span { return n.span }

// NewNamespace constructs a namespace declaration node.
func NewNamespace(name *Ident, span lexer.Span) *Namespace {
	return &Namespace{Name: name, span: span}
}

// SetSpan updates the namespace span.
func (n *Namespace) SetSpan(span lexer.Span) {
	n.span = span
}

// declNode marks Namespace as a declaration.
func (*Namespace) declNode() {}

// BlocksOf returns the variable blocks of the given kind, in source order.
func (p *Pou) BlocksOf(kind VarBlockKind) []*VarBlock {
	var blocks []*VarBlock
	for _, b := range p.VarBlocks {
		if b.Kind == kind {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Pragma represents a vendor attribute pragma attached to a declaration.
type Pragma struct {
	Content string
	span    lexer.Span
}

// Span returns the pragma span.
func (p *Pragma) Span() lexer.Span { return p.span }

// NewPragma constructs a pragma node.
func NewPragma(content string, span lexer.Span) *Pragma {
	return &Pragma{Content: content, span: span}
}

// SetSpan updates the pragma span.
func (p *Pragma) SetSpan(span lexer.Span) {
	p.span = span
}

// VarBlockKind distinguishes the kinds of variable declaration blocks.
type VarBlockKind int

const (
	VarLocal VarBlockKind = iota
	VarInput
	VarOutput
	VarInOut
	VarTemp
	VarGlobal
	VarExternal
	VarAccess
	VarConfig
)

func (k VarBlockKind) String() string {
	switch k {
	case VarLocal:
		return "VAR"
	case VarInput:
		return "VAR_INPUT"
	case VarOutput:
		return "VAR_OUTPUT"
	case VarInOut:
		return "VAR_IN_OUT"
	case VarTemp:
		return "VAR_TEMP"
	case VarGlobal:
		return "VAR_GLOBAL"
	case VarExternal:
		return "VAR_EXTERNAL"
	case VarAccess:
		return "VAR_ACCESS"
	case VarConfig:
		return "VAR_CONFIG"
	default:
		return "VAR"
	}
}

// VarBlock represents a VAR ... END_VAR block.
type VarBlock struct {
	Kind      VarBlockKind
	Constant  bool
	Retain    bool
	NonRetain bool
	Decls     []*VarDecl
	span      lexer.Span
}

// Span returns the block span.
func (b *VarBlock) Span() lexer.Span { return b.span }

// NewVarBlock constructs a variable block node.
func NewVarBlock(kind VarBlockKind, span lexer.Span) *VarBlock {
	return &VarBlock{Kind: kind, span: span}
}

// SetSpan updates the block span.
func (b *VarBlock) SetSpan(span lexer.Span) {
	b.span = span
}

// declNode marks VarBlock as a declaration (global blocks appear at the
// top level of a unit).
func (*VarBlock) declNode() {}

// VarDecl represents one declaration line inside a variable block:
// one or more names, an optional AT address binding, a type, and an
// optional initializer.
type VarDecl struct {
	Names   []*Ident
	Address *AddressLit // AT %QX0.0 binding, nil if absent
	Type    TypeRef
	Init    Expr
	span    lexer.Span
}

// Span returns the declaration span.
func (d *VarDecl) Span() lexer.Span { return d.span }

// NewVarDecl constructs a variable declaration node.
func NewVarDecl(span lexer.Span) *VarDecl {
	return &VarDecl{span: span}
}

// SetSpan updates the declaration span.
func (d *VarDecl) SetSpan(span lexer.Span) {
	d.span = span
}

// TypeBlock represents a TYPE ... END_TYPE block of type declarations.
type TypeBlock struct {
	Decls []*TypeDecl
	span  lexer.Span
}

// Span returns the block span.
func (b *TypeBlock) Span() lexer.Span { return b.span }

// NewTypeBlock constructs a type block node.
func NewTypeBlock(span lexer.Span) *TypeBlock {
	return &TypeBlock{span: span}
}

// SetSpan updates the block span.
func (b *TypeBlock) SetSpan(span lexer.Span) {
	b.span = span
}

// declNode marks TypeBlock as a declaration.
func (*TypeBlock) declNode() {}

// TypeDecl represents a single named type declaration.
type TypeDecl struct {
	Name *Ident
	Type TypeRef
	Init Expr // optional default value
	span lexer.Span
}

// Span returns the declaration span.
func (d *TypeDecl) Span() lexer.Span { return d.span }

// NewTypeDecl constructs a type declaration node.
func NewTypeDecl(name *Ident, typ TypeRef, span lexer.Span) *TypeDecl {
	return &TypeDecl{Name: name, Type: typ, span: span}
}

// SetSpan updates the declaration span.
func (d *TypeDecl) SetSpan(span lexer.Span) {
	d.span = span
}

// NamedType references a type by name: BOOL, DINT, a UDT, or a
// function block type.
type NamedType struct {
	Name *Ident
	span lexer.Span
}

// Span returns the reference span.
func (t *NamedType) Span() lexer.Span { return t.span }

// NewNamedType constructs a named type reference.
func NewNamedType(name *Ident, span lexer.Span) *NamedType {
	return &NamedType{Name: name, span: span}
}

// SetSpan updates the reference span.
func (t *NamedType) SetSpan(span lexer.Span) {
	t.span = span
}

func (*NamedType) typeNode() {}

// StringType represents STRING or WSTRING with an optional length.
type StringType struct {
	Wide   bool
	Length Expr // nil means the default length
	span   lexer.Span
}

// Span returns the reference span.
func (t *StringType) Span() lexer.Span { return t.span }

// NewStringType constructs a string type reference.
func NewStringType(wide bool, length Expr, span lexer.Span) *StringType {
	return &StringType{Wide: wide, Length: length, span: span}
}

// SetSpan updates the reference span.
func (t *StringType) SetSpan(span lexer.Span) {
	t.span = span
}

func (*StringType) typeNode() {}

// Subrange represents a low..high range in array dimensions and
// subrange types.
type Subrange struct {
	Low  Expr
	High Expr
	span lexer.Span
}

// Span returns the range span.
func (t *Subrange) Span() lexer.Span { return t.span }

// NewSubrange constructs a subrange node.
func NewSubrange(low, high Expr, span lexer.Span) *Subrange {
	return &Subrange{Low: low, High: high, span: span}
}

// SetSpan updates the range span.
func (t *Subrange) SetSpan(span lexer.Span) {
	t.span = span
}

// ArrayType represents ARRAY[lo..hi, ...] OF element.
type ArrayType struct {
	Dimensions []*Subrange
	Elem       TypeRef
	span       lexer.Span
}

// Span returns the reference span.
func (t *ArrayType) Span() lexer.Span { return t.span }

// NewArrayType constructs an array type reference.
func NewArrayType(dims []*Subrange, elem TypeRef, span lexer.Span) *ArrayType {
	return &ArrayType{Dimensions: dims, Elem: elem, span: span}
}

// SetSpan updates the reference span.
func (t *ArrayType) SetSpan(span lexer.Span) {
	t.span = span
}

func (*ArrayType) typeNode() {}

// SubrangeType represents a constrained base type: INT (0..100).
type SubrangeType struct {
	Base  *NamedType
	Range *Subrange
	span  lexer.Span
}

// Span returns the reference span.
func (t *SubrangeType) Span() lexer.Span { return t.span }

// NewSubrangeType constructs a subrange type reference.
func NewSubrangeType(base *NamedType, rng *Subrange, span lexer.Span) *SubrangeType {
	return &SubrangeType{Base: base, Range: rng, span: span}
}

// SetSpan updates the reference span.
func (t *SubrangeType) SetSpan(span lexer.Span) {
	t.span = span
}

func (*SubrangeType) typeNode() {}

// EnumValue is one named value in an enumeration type.
type EnumValue struct {
	Name  *Ident
	Value Expr // optional explicit value
	span  lexer.Span
}

// Span returns the value span.
func (v *EnumValue) Span() lexer.Span { return v.span }

// NewEnumValue constructs an enumeration value node.
func NewEnumValue(name *Ident, value Expr, span lexer.Span) *EnumValue {
	return &EnumValue{Name: name, Value: value, span: span}
}

// SetSpan updates the value span.
func (v *EnumValue) SetSpan(span lexer.Span) {
	v.span = span
}

// EnumType represents an enumeration: (Stopped, Starting, Running).
type EnumType struct {
	Values []*EnumValue
	span   lexer.Span
}

// Span returns the reference span.
func (t *EnumType) Span() lexer.Span { return t.span }

// NewEnumType constructs an enumeration type reference.
func NewEnumType(values []*EnumValue, span lexer.Span) *EnumType {
	return &EnumType{Values: values, span: span}
}

// SetSpan updates the reference span.
func (t *EnumType) SetSpan(span lexer.Span) {
	t.span = span
}

func (*EnumType) typeNode() {}

// StructType represents STRUCT ... END_STRUCT.
type StructType struct {
	Fields []*VarDecl
	span   lexer.Span
}

// Span returns the reference span.
func (t *StructType) Span() lexer.Span { return t.span }

// NewStructType constructs a structure type reference.
func NewStructType(fields []*VarDecl, span lexer.Span) *StructType {
	return &StructType{Fields: fields, span: span}
}

// SetSpan updates the reference span.
func (t *StructType) SetSpan(span lexer.Span) {
	t.span = span
}

func (*StructType) typeNode() {}

// RefType represents REF_TO target.
type RefType struct {
	To   TypeRef
	span lexer.Span
}

// Span returns the reference span.
func (t *RefType) Span() lexer.Span { return t.span }

// NewRefType constructs a reference type node.
func NewRefType(to TypeRef, span lexer.Span) *RefType {
	return &RefType{To: to, span: span}
}

// SetSpan updates the reference span.
func (t *RefType) SetSpan(span lexer.Span) {
	t.span = span
}

func (*RefType) typeNode() {}
