package ast

import "github.com/plclens/plclens/internal/lexer"

// AssignOp distinguishes plain and compound assignment.
type AssignOp int

const (
	AssignPlain AssignOp = iota // :=
	AssignAdd                   // += (SCL)
	AssignSub                   // -= (SCL)
	AssignMul                   // *= (SCL)
	AssignDiv                   // /= (SCL)
)

func (op AssignOp) String() string {
	switch op {
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	default:
		return ":="
	}
}

// AssignStmt represents target := value.
type AssignStmt struct {
	Target Expr
	Op     AssignOp
	Value  Expr
	span   lexer.Span
}

// Span returns the statement span.
func (s *AssignStmt) Span() lexer.Span { return s.span }

// NewAssignStmt constructs an assignment statement node.
func NewAssignStmt(target Expr, op AssignOp, value Expr, span lexer.Span) *AssignStmt {
	return &AssignStmt{
		Target: target,
		Op:     op,
		Value:  value,
		span:   span,
	}
}

// SetSpan updates the statement span.
func (s *AssignStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks AssignStmt as a statement.
func (*AssignStmt) stmtNode() {}

// CallStmt represents a standalone invocation: MyTimer(IN := x, PT := t).
type CallStmt struct {
	Call *CallExpr
	span lexer.Span
}

// Span returns the statement span.
func (s *CallStmt) Span() lexer.Span { return s.span }

// NewCallStmt constructs a call statement node.
func NewCallStmt(call *CallExpr, span lexer.Span) *CallStmt {
	return &CallStmt{Call: call, span: span}
}

// SetSpan updates the statement span.
func (s *CallStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks CallStmt as a statement.
func (*CallStmt) stmtNode() {}

// ElsifBranch is one ELSIF arm of an IF statement.
type ElsifBranch struct {
	Cond Expr
	Body []Stmt
	span lexer.Span
}

// Span returns the branch span.
func (b *ElsifBranch) Span() lexer.Span { return b.span }

// NewElsifBranch constructs an ELSIF branch node.
func NewElsifBranch(cond Expr, span lexer.Span) *ElsifBranch {
	return &ElsifBranch{Cond: cond, span: span}
}

// SetSpan updates the branch span.
func (b *ElsifBranch) SetSpan(span lexer.Span) {
	b.span = span
}

// IfStmt represents IF ... ELSIF ... ELSE ... END_IF.
type IfStmt struct {
	Cond   Expr
	Then   []Stmt
	Elsifs []*ElsifBranch
	Else   []Stmt
	span   lexer.Span
}

// Span returns the statement span.
func (s *IfStmt) Span() lexer.Span { return s.span }

// NewIfStmt constructs an if statement node.
func NewIfStmt(cond Expr, span lexer.Span) *IfStmt {
	return &IfStmt{Cond: cond, span: span}
}

// SetSpan updates the statement span.
func (s *IfStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks IfStmt as a statement.
func (*IfStmt) stmtNode() {}

// CaseBranch is one labeled arm of a CASE statement. A label is either
// a constant expression or a RangeExpr.
type CaseBranch struct {
	Labels []Expr
	Body   []Stmt
	span   lexer.Span
}

// Span returns the branch span.
func (b *CaseBranch) Span() lexer.Span { return b.span }

// NewCaseBranch constructs a case branch node.
func NewCaseBranch(labels []Expr, span lexer.Span) *CaseBranch {
	return &CaseBranch{Labels: labels, span: span}
}

// SetSpan updates the branch span.
func (b *CaseBranch) SetSpan(span lexer.Span) {
	b.span = span
}

// CaseStmt represents CASE selector OF ... END_CASE.
type CaseStmt struct {
	Selector Expr
	Branches []*CaseBranch
	Else     []Stmt
	HasElse  bool
	span     lexer.Span
}

// Span returns the statement span.
func (s *CaseStmt) Span() lexer.Span { return s.span }

// NewCaseStmt constructs a case statement node.
func NewCaseStmt(selector Expr, span lexer.Span) *CaseStmt {
	return &CaseStmt{Selector: selector, span: span}
}

// SetSpan updates the statement span.
func (s *CaseStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks CaseStmt as a statement.
func (*CaseStmt) stmtNode() {}

// ForStmt represents FOR var := from TO to [BY step] DO ... END_FOR.
type ForStmt struct {
	Var  *Ident
	From Expr
	To   Expr
	By   Expr // nil means step 1
	Body []Stmt
	span lexer.Span
}

// Span returns the statement span.
func (s *ForStmt) Span() lexer.Span { return s.span }

// NewForStmt constructs a for statement node.
func NewForStmt(v *Ident, span lexer.Span) *ForStmt {
	return &ForStmt{Var: v, span: span}
}

// SetSpan updates the statement span.
func (s *ForStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks ForStmt as a statement.
func (*ForStmt) stmtNode() {}

// WhileStmt represents WHILE cond DO ... END_WHILE.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
	span lexer.Span
}

// Span returns the statement span.
func (s *WhileStmt) Span() lexer.Span { return s.span }

// NewWhileStmt constructs a while statement node.
func NewWhileStmt(cond Expr, span lexer.Span) *WhileStmt {
	return &WhileStmt{Cond: cond, span: span}
}

// SetSpan updates the statement span.
func (s *WhileStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks WhileStmt as a statement.
func (*WhileStmt) stmtNode() {}

// RepeatStmt represents REPEAT ... UNTIL cond END_REPEAT. The body runs
// before the condition is evaluated.
type RepeatStmt struct {
	Body  []Stmt
	Until Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *RepeatStmt) Span() lexer.Span { return s.span }

// NewRepeatStmt constructs a repeat statement node.
func NewRepeatStmt(span lexer.Span) *RepeatStmt {
	return &RepeatStmt{span: span}
}

// SetSpan updates the statement span.
func (s *RepeatStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks RepeatStmt as a statement.
func (*RepeatStmt) stmtNode() {}

// ExitStmt represents EXIT.
type ExitStmt struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *ExitStmt) Span() lexer.Span { return s.span }

// NewExitStmt constructs an exit statement node.
func NewExitStmt(span lexer.Span) *ExitStmt {
	return &ExitStmt{span: span}
}

// SetSpan updates the statement span.
func (s *ExitStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks ExitStmt as a statement.
func (*ExitStmt) stmtNode() {}

// ContinueStmt represents CONTINUE.
type ContinueStmt struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *ContinueStmt) Span() lexer.Span { return s.span }

// NewContinueStmt constructs a continue statement node.
func NewContinueStmt(span lexer.Span) *ContinueStmt {
	return &ContinueStmt{span: span}
}

// SetSpan updates the statement span.
func (s *ContinueStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks ContinueStmt as a statement.
func (*ContinueStmt) stmtNode() {}

// ReturnStmt represents RETURN with an optional value expression.
type ReturnStmt struct {
	Value Expr // nil for a bare RETURN
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(span lexer.Span) *ReturnStmt {
	return &ReturnStmt{span: span}
}

// SetSpan updates the statement span.
func (s *ReturnStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks ReturnStmt as a statement.
func (*ReturnStmt) stmtNode() {}

// EmptyStmt represents a bare semicolon.
type EmptyStmt struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *EmptyStmt) Span() lexer.Span { return s.span }

// NewEmptyStmt constructs an empty statement node.
func NewEmptyStmt(span lexer.Span) *EmptyStmt {
	return &EmptyStmt{span: span}
}

// SetSpan updates the statement span.
func (s *EmptyStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks EmptyStmt as a statement.
func (*EmptyStmt) stmtNode() {}

// GotoStmt represents GOTO label (SCL).
type GotoStmt struct {
	Label *Ident
	span  lexer.Span
}

// Span returns the statement span.
func (s *GotoStmt) Span() lexer.Span { return s.span }

// NewGotoStmt constructs a goto statement node.
func NewGotoStmt(label *Ident, span lexer.Span) *GotoStmt {
	return &GotoStmt{Label: label, span: span}
}

// SetSpan updates the statement span.
func (s *GotoStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks GotoStmt as a statement.
func (*GotoStmt) stmtNode() {}

// LabelStmt represents a jump target: name: (SCL).
type LabelStmt struct {
	Name *Ident
	span lexer.Span
}

// Span returns the statement span.
func (s *LabelStmt) Span() lexer.Span { return s.span }

// NewLabelStmt constructs a label statement node.
func NewLabelStmt(name *Ident, span lexer.Span) *LabelStmt {
	return &LabelStmt{Name: name, span: span}
}

// SetSpan updates the statement span.
func (s *LabelStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks LabelStmt as a statement.
func (*LabelStmt) stmtNode() {}

// RegionStmt represents REGION name ... END_REGION (SCL). Regions are
// editor folding markers; the body statements execute unconditionally.
type RegionStmt struct {
	Name string
	Body []Stmt
	span lexer.Span
}

// Span returns the statement span.
func (s *RegionStmt) Span() lexer.Span { return s.span }

// NewRegionStmt constructs a region statement node.
func NewRegionStmt(name string, span lexer.Span) *RegionStmt {
	return &RegionStmt{Name: name, span: span}
}

// SetSpan updates the statement span.
func (s *RegionStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks RegionStmt as a statement.
func (*RegionStmt) stmtNode() {}
