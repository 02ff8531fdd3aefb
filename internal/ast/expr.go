package ast

import "github.com/plclens/plclens/internal/lexer"

// Ident represents an identifier reference.
type Ident struct {
	Name   string
	Quoted bool // Siemens "Quoted Name" form
	span   lexer.Span
}

// Span returns the identifier span.
func (e *Ident) Span() lexer.Span { return e.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// SetSpan updates the identifier span.
func (e *Ident) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}

// IntLit represents an integer literal. Value holds the decoded number;
// based literals keep their source form in Raw.
type IntLit struct {
	Value int64
	Raw   string
	span  lexer.Span
}

// Span returns the literal span.
func (e *IntLit) Span() lexer.Span { return e.span }

// NewIntLit constructs an integer literal node.
func NewIntLit(value int64, raw string, span lexer.Span) *IntLit {
	return &IntLit{Value: value, Raw: raw, span: span}
}

// SetSpan updates the literal span.
func (e *IntLit) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks IntLit as an expression.
func (*IntLit) exprNode() {}

// RealLit represents a floating point literal.
type RealLit struct {
	Value float64
	Raw   string
	span  lexer.Span
}

// Span returns the literal span.
func (e *RealLit) Span() lexer.Span { return e.span }

// NewRealLit constructs a real literal node.
func NewRealLit(value float64, raw string, span lexer.Span) *RealLit {
	return &RealLit{Value: value, Raw: raw, span: span}
}

// SetSpan updates the literal span.
func (e *RealLit) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks RealLit as an expression.
func (*RealLit) exprNode() {}

// BoolLit represents TRUE or FALSE.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (e *BoolLit) Span() lexer.Span { return e.span }

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// SetSpan updates the literal span.
func (e *BoolLit) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks BoolLit as an expression.
func (*BoolLit) exprNode() {}

// StringLit represents a string literal with escapes already decoded.
type StringLit struct {
	Value string
	Wide  bool
	span  lexer.Span
}

// Span returns the literal span.
func (e *StringLit) Span() lexer.Span { return e.span }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, wide bool, span lexer.Span) *StringLit {
	return &StringLit{Value: value, Wide: wide, span: span}
}

// SetSpan updates the literal span.
func (e *StringLit) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks StringLit as an expression.
func (*StringLit) exprNode() {}

// TimeKind distinguishes the families of time and date literals.
type TimeKind int

const (
	TimeDuration  TimeKind = iota // T#, TIME#, LTIME#
	TimeDate                      // D#, DATE#
	TimeTimeOfDay                 // TOD#, TIME_OF_DAY#
	TimeDateTime                  // DT#, DATE_AND_TIME#
)

// TimeLit represents a time, date, time-of-day, or date-and-time
// literal. The body is kept verbatim.
type TimeLit struct {
	Kind TimeKind
	Raw  string
	span lexer.Span
}

// Span returns the literal span.
func (e *TimeLit) Span() lexer.Span { return e.span }

// NewTimeLit constructs a time literal node.
func NewTimeLit(kind TimeKind, raw string, span lexer.Span) *TimeLit {
	return &TimeLit{Kind: kind, Raw: raw, span: span}
}

// SetSpan updates the literal span.
func (e *TimeLit) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks TimeLit as an expression.
func (*TimeLit) exprNode() {}

// AddressLit represents a direct address: %IX0.0, %QW10.
type AddressLit struct {
	Raw  string
	span lexer.Span
}

// Span returns the literal span.
func (e *AddressLit) Span() lexer.Span { return e.span }

// NewAddressLit constructs a direct address node.
func NewAddressLit(raw string, span lexer.Span) *AddressLit {
	return &AddressLit{Raw: raw, span: span}
}

// SetSpan updates the literal span.
func (e *AddressLit) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks AddressLit as an expression.
func (*AddressLit) exprNode() {}

// NullLit represents NULL.
type NullLit struct {
	span lexer.Span
}

// Span returns the literal span.
func (e *NullLit) Span() lexer.Span { return e.span }

// NewNullLit constructs a null literal node.
func NewNullLit(span lexer.Span) *NullLit {
	return &NullLit{span: span}
}

// SetSpan updates the literal span.
func (e *NullLit) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks NullLit as an expression.
func (*NullLit) exprNode() {}

// PrefixExpr represents a unary operation: NOT x, -x, +x.
type PrefixExpr struct {
	Op      string
	Operand Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *PrefixExpr) Span() lexer.Span { return e.span }

// NewPrefixExpr constructs a prefix expression node.
func NewPrefixExpr(op string, operand Expr, span lexer.Span) *PrefixExpr {
	return &PrefixExpr{Op: op, Operand: operand, span: span}
}

// SetSpan updates the expression span.
func (e *PrefixExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks PrefixExpr as an expression.
func (*PrefixExpr) exprNode() {}

// BinaryExpr represents a binary operation. Op is the upper-cased
// keyword or the operator lexeme: AND, OR, XOR, MOD, +, **, <=.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(left Expr, op string, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right, span: span}
}

// SetSpan updates the expression span.
func (e *BinaryExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks BinaryExpr as an expression.
func (*BinaryExpr) exprNode() {}

// CallArg is one argument of a call. Plain positional arguments have
// only Value set; named inputs use Name with Output false; outputs use
// Name with Output true and Value holding the destination lvalue. A nil
// Value is an empty slot (Rockwell inferred argument).
type CallArg struct {
	Name    *Ident
	Output  bool // name => lvalue
	Negated bool // NOT name => lvalue
	Value   Expr
	span    lexer.Span
}

// Span returns the argument span.
func (a *CallArg) Span() lexer.Span { return a.span }

// NewCallArg constructs a call argument node.
func NewCallArg(span lexer.Span) *CallArg {
	return &CallArg{span: span}
}

// SetSpan updates the argument span.
func (a *CallArg) SetSpan(span lexer.Span) {
	a.span = span
}

// CallExpr represents fn(args) or instance(args).
type CallExpr struct {
	Fn   Expr
	Args []*CallArg
	span lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(fn Expr, args []*CallArg, span lexer.Span) *CallExpr {
	return &CallExpr{Fn: fn, Args: args, span: span}
}

// SetSpan updates the expression span.
func (e *CallExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks CallExpr as an expression.
func (*CallExpr) exprNode() {}

// Callee returns the called name when the call target is a plain or
// member identifier, and "" otherwise.
func (e *CallExpr) Callee() string {
	switch fn := e.Fn.(type) {
	case *Ident:
		return fn.Name
	case *MemberExpr:
		return fn.Member.Name
	default:
		return ""
	}
}

// IndexExpr represents arr[i] or arr[i, j].
type IndexExpr struct {
	X       Expr
	Indexes []Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *IndexExpr) Span() lexer.Span { return e.span }

// NewIndexExpr constructs an index expression node.
func NewIndexExpr(x Expr, indexes []Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{X: x, Indexes: indexes, span: span}
}

// SetSpan updates the expression span.
func (e *IndexExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks IndexExpr as an expression.
func (*IndexExpr) exprNode() {}

// MemberExpr represents x.field.
type MemberExpr struct {
	X      Expr
	Member *Ident
	span   lexer.Span
}

// Span returns the expression span.
func (e *MemberExpr) Span() lexer.Span { return e.span }

// NewMemberExpr constructs a member access node.
func NewMemberExpr(x Expr, member *Ident, span lexer.Span) *MemberExpr {
	return &MemberExpr{X: x, Member: member, span: span}
}

// SetSpan updates the expression span.
func (e *MemberExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks MemberExpr as an expression.
func (*MemberExpr) exprNode() {}

// DerefExpr represents pointer dereference: ref^.
type DerefExpr struct {
	X    Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *DerefExpr) Span() lexer.Span { return e.span }

// NewDerefExpr constructs a dereference node.
func NewDerefExpr(x Expr, span lexer.Span) *DerefExpr {
	return &DerefExpr{X: x, span: span}
}

// SetSpan updates the expression span.
func (e *DerefExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks DerefExpr as an expression.
func (*DerefExpr) exprNode() {}

// RangeExpr represents low..high in CASE labels.
type RangeExpr struct {
	Low  Expr
	High Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *RangeExpr) Span() lexer.Span { return e.span }

// NewRangeExpr constructs a range expression node.
func NewRangeExpr(low, high Expr, span lexer.Span) *RangeExpr {
	return &RangeExpr{Low: low, High: high, span: span}
}

// SetSpan updates the expression span.
func (e *RangeExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks RangeExpr as an expression.
func (*RangeExpr) exprNode() {}
