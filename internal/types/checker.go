package types

import (
	"fmt"

	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
)

// TypeInfo is the result of typing one expression.
type TypeInfo struct {
	Type     Type
	Constant bool
	LValue   bool
}

func unknownInfo() TypeInfo {
	return TypeInfo{Type: TypeUnknown}
}

// Checker walks statements and types every expression against a symbol
// table, appending diagnostics as it goes. Unknown is sticky and
// accepting: once a subexpression fails, its parents stay silent.
type Checker struct {
	table  *SymbolTable
	Errors []diag.Diagnostic
}

// NewChecker creates a checker over the given symbol table.
func NewChecker(table *SymbolTable) *Checker {
	return &Checker{table: table}
}

func (c *Checker) report(severity diag.Severity, code diag.Code, msg string, span lexer.Span) {
	d := diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: severity,
		Code:     code,
		Message:  msg,
		Span:     toDiagSpan(span),
	}
	c.Errors = append(c.Errors, d)
}

func (c *Checker) errorf(code diag.Code, msg string, span lexer.Span) {
	c.report(diag.SeverityError, code, msg, span)
}

func (c *Checker) warnf(code diag.Code, msg string, span lexer.Span) {
	c.report(diag.SeverityWarning, code, msg, span)
}

// CheckStatements checks a statement list in order.
func (c *Checker) CheckStatements(stmts []ast.Stmt) {
	for _, s := range stmts {
		c.CheckStatement(s)
	}
}

// CheckStatement type-checks one statement and its children.
func (c *Checker) CheckStatement(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.AssignStmt:
		c.checkAssign(stmt)
	case *ast.CallStmt:
		c.ExprType(stmt.Call)
	case *ast.IfStmt:
		c.checkCondition(stmt.Cond)
		c.CheckStatements(stmt.Then)
		for _, e := range stmt.Elsifs {
			c.checkCondition(e.Cond)
			c.CheckStatements(e.Body)
		}
		c.CheckStatements(stmt.Else)
	case *ast.CaseStmt:
		c.ExprType(stmt.Selector)
		for _, branch := range stmt.Branches {
			for _, label := range branch.Labels {
				c.ExprType(label)
			}
			c.CheckStatements(branch.Body)
		}
		c.CheckStatements(stmt.Else)
	case *ast.ForStmt:
		c.checkForHeader(stmt)
		c.CheckStatements(stmt.Body)
	case *ast.WhileStmt:
		c.checkCondition(stmt.Cond)
		c.CheckStatements(stmt.Body)
	case *ast.RepeatStmt:
		c.CheckStatements(stmt.Body)
		c.checkCondition(stmt.Until)
	case *ast.RegionStmt:
		c.CheckStatements(stmt.Body)
	case *ast.ReturnStmt:
		c.checkReturn(stmt)
	}
	// Exit, continue, goto, labels and empty statements carry nothing
	// to type.
}

// checkReturn types an optional RETURN value against the function's
// return slot, which FromPou defines under the POU's own name.
func (c *Checker) checkReturn(stmt *ast.ReturnStmt) {
	if stmt.Value == nil {
		return
	}
	value := c.ExprType(stmt.Value)

	ret := c.table.Lookup(c.table.CurrentScope())
	if ret == nil || ret.Kind != SymbolOutput {
		return
	}
	ret.Assigned = true

	if IsUnknown(ret.Type) || IsUnknown(value.Type) {
		return
	}
	if !AssignableFrom(ret.Type, value.Type) {
		c.errorf(diag.CodeTypeMismatch,
			"cannot return "+value.Type.String()+" from a function of type "+
				ret.Type.String(), stmt.Value.Span())
	}
}

func (c *Checker) checkAssign(stmt *ast.AssignStmt) {
	// A plain write is not a read: type the bare identifier target
	// without marking it used, so write-only variables still sweep.
	var target TypeInfo
	if ident, ok := stmt.Target.(*ast.Ident); ok {
		target = c.targetIdentType(ident)
		if stmt.Op != ast.AssignPlain {
			c.table.MarkUsed(ident.Name)
		}
	} else {
		target = c.ExprType(stmt.Target)
	}
	value := c.ExprType(stmt.Value)

	if sym := c.rootSymbol(stmt.Target); sym != nil {
		switch sym.Kind {
		case SymbolConstant:
			c.errorf(diag.CodeAssignToConstant,
				"cannot assign to constant '"+sym.Name+"'", stmt.Target.Span())
		case SymbolParameter:
			c.errorf(diag.CodeAssignToInput,
				"cannot assign to input parameter '"+sym.Name+"'", stmt.Target.Span())
		default:
			sym.Assigned = true
		}
	}

	if IsUnknown(target.Type) || IsUnknown(value.Type) {
		return
	}

	if stmt.Op != ast.AssignPlain {
		if !IsNumeric(target.Type) || !IsNumeric(value.Type) {
			c.errorf(diag.CodeIncompatibleTypes,
				"compound assignment requires numeric operands, got "+
					target.Type.String()+" and "+value.Type.String(), stmt.Span())
		}
		return
	}

	if !AssignableFrom(target.Type, value.Type) {
		c.errorf(diag.CodeTypeMismatch,
			"cannot assign "+value.Type.String()+" to "+target.Type.String(), stmt.Span())
	}
}

func (c *Checker) checkForHeader(stmt *ast.ForStmt) {
	if sym := c.table.Lookup(stmt.Var.Name); sym != nil {
		sym.Used = true
		sym.Assigned = true
		if sym.Type != nil && !IsUnknown(sym.Type) && !IsInteger(sym.Type) {
			c.errorf(diag.CodeIncompatibleTypes,
				"loop variable '"+sym.Name+"' must be an integer, got "+sym.Type.String(),
				stmt.Var.Span())
		}
	} else {
		c.errorf(diag.CodeUndefinedIdentifier,
			"undefined identifier '"+stmt.Var.Name+"'", stmt.Var.Span())
	}

	c.requireNumeric(stmt.From)
	c.requireNumeric(stmt.To)
	if stmt.By != nil {
		c.requireNumeric(stmt.By)
	}
}

func (c *Checker) requireNumeric(e ast.Expr) {
	info := c.ExprType(e)
	if IsUnknown(info.Type) || IsNumeric(info.Type) {
		return
	}
	c.errorf(diag.CodeIncompatibleTypes,
		"expected a numeric expression, got "+info.Type.String(), e.Span())
}

// checkCondition types a control-flow condition. Non-BOOL conditions
// warn rather than error; these dialects coerce liberally.
func (c *Checker) checkCondition(cond ast.Expr) {
	if cond == nil {
		return
	}
	info := c.ExprType(cond)
	if IsBool(info.Type) {
		return
	}
	c.warnf(diag.CodeNonBoolCondition,
		"condition is "+info.Type.String()+", expected BOOL", cond.Span())
}

// rootSymbol walks member/index/deref chains down to the base
// identifier and resolves it, without marking usage.
func (c *Checker) rootSymbol(e ast.Expr) *Symbol {
	for {
		switch x := e.(type) {
		case *ast.Ident:
			return c.table.Lookup(x.Name)
		case *ast.MemberExpr:
			e = x.X
		case *ast.IndexExpr:
			e = x.X
		case *ast.DerefExpr:
			e = x.X
		default:
			return nil
		}
	}
}

// ExprType computes the TypeInfo of an expression, reporting any
// violations found along the way.
func (c *Checker) ExprType(e ast.Expr) TypeInfo {
	switch e := e.(type) {
	case *ast.IntLit:
		return TypeInfo{Type: TypeDInt, Constant: true}
	case *ast.RealLit:
		return TypeInfo{Type: TypeLReal, Constant: true}
	case *ast.BoolLit:
		return TypeInfo{Type: TypeBool, Constant: true}
	case *ast.StringLit:
		if e.Wide {
			return TypeInfo{Type: TypeWString, Constant: true}
		}
		return TypeInfo{Type: TypeString, Constant: true}
	case *ast.TimeLit:
		return TypeInfo{Type: timeLitType(e.Kind), Constant: true}
	case *ast.AddressLit:
		// Direct addresses read and write as BOOL points.
		return TypeInfo{Type: TypeBool, LValue: true}
	case *ast.NullLit:
		return TypeInfo{Type: TypeUnknown, Constant: true}
	case *ast.Ident:
		return c.identType(e)
	case *ast.PrefixExpr:
		return c.prefixType(e)
	case *ast.BinaryExpr:
		return c.binaryType(e)
	case *ast.CallExpr:
		return c.callType(e)
	case *ast.IndexExpr:
		return c.indexType(e)
	case *ast.MemberExpr:
		return c.memberType(e)
	case *ast.DerefExpr:
		return c.derefType(e)
	case *ast.RangeExpr:
		c.ExprType(e.Low)
		c.ExprType(e.High)
		return TypeInfo{Type: TypeDInt, Constant: true}
	default:
		return unknownInfo()
	}
}

func timeLitType(kind ast.TimeKind) Type {
	switch kind {
	case ast.TimeDate:
		return TypeDate
	case ast.TimeTimeOfDay:
		return TypeTimeOfDay
	case ast.TimeDateTime:
		return TypeDateTime
	default:
		return TypeTime
	}
}

// targetIdentType resolves an assignment target identifier without
// flagging it as read.
func (c *Checker) targetIdentType(e *ast.Ident) TypeInfo {
	sym := c.table.Lookup(e.Name)
	if sym == nil {
		c.errorf(diag.CodeUndefinedIdentifier,
			"undefined identifier '"+e.Name+"'", e.Span())
		return unknownInfo()
	}
	info := TypeInfo{Type: sym.Type, LValue: sym.Mutable()}
	if info.Type == nil {
		info.Type = TypeUnknown
	}
	return info
}

func (c *Checker) identType(e *ast.Ident) TypeInfo {
	sym := c.table.Lookup(e.Name)
	if sym == nil {
		c.errorf(diag.CodeUndefinedIdentifier,
			"undefined identifier '"+e.Name+"'", e.Span())
		return unknownInfo()
	}

	sym.Used = true

	info := TypeInfo{Type: sym.Type}
	if info.Type == nil {
		info.Type = TypeUnknown
	}
	switch sym.Kind {
	case SymbolConstant:
		info.Constant = true
	case SymbolVariable, SymbolParameter, SymbolOutput, SymbolInOut:
		info.LValue = true
	}
	return info
}

func (c *Checker) prefixType(e *ast.PrefixExpr) TypeInfo {
	operand := c.ExprType(e.Operand)
	if IsUnknown(operand.Type) {
		return unknownInfo()
	}

	switch e.Op {
	case "NOT":
		if IsBool(operand.Type) {
			return TypeInfo{Type: TypeBool, Constant: operand.Constant}
		}
		if IsInteger(operand.Type) {
			// Bitwise complement.
			return TypeInfo{Type: operand.Type, Constant: operand.Constant}
		}
		c.errorf(diag.CodeInvalidOperator,
			"NOT requires BOOL or an integer, got "+operand.Type.String(), e.Span())
		return unknownInfo()
	case "-", "+":
		if IsNumeric(operand.Type) {
			return TypeInfo{Type: operand.Type, Constant: operand.Constant}
		}
		c.errorf(diag.CodeInvalidOperator,
			"unary '"+e.Op+"' requires a numeric operand, got "+operand.Type.String(), e.Span())
		return unknownInfo()
	default:
		return unknownInfo()
	}
}

func (c *Checker) binaryType(e *ast.BinaryExpr) TypeInfo {
	left := c.ExprType(e.Left)
	right := c.ExprType(e.Right)

	constant := left.Constant && right.Constant

	switch e.Op {
	case "+", "-", "*", "/", "MOD", "**":
		if IsUnknown(left.Type) || IsUnknown(right.Type) {
			return unknownInfo()
		}
		if e.Op == "+" && IsString(left.Type) && IsString(right.Type) {
			return TypeInfo{Type: left.Type, Constant: constant}
		}
		if (e.Op == "+" || e.Op == "-") && isTime(left.Type) && isTime(right.Type) {
			return TypeInfo{Type: TypeTime, Constant: constant}
		}
		if IsNumeric(left.Type) && IsNumeric(right.Type) {
			if IsReal(left.Type) || IsReal(right.Type) || e.Op == "**" {
				return TypeInfo{Type: TypeLReal, Constant: constant}
			}
			return TypeInfo{Type: TypeDInt, Constant: constant}
		}
		c.errorf(diag.CodeIncompatibleTypes,
			"operator '"+e.Op+"' cannot combine "+left.Type.String()+" and "+right.Type.String(),
			e.Span())
		return unknownInfo()

	case "=", "<>", "<", "<=", ">", ">=":
		if !Comparable(left.Type, right.Type) {
			c.errorf(diag.CodeIncompatibleTypes,
				"cannot compare "+left.Type.String()+" with "+right.Type.String(), e.Span())
		}
		return TypeInfo{Type: TypeBool, Constant: constant}

	case "AND", "OR", "XOR":
		if IsUnknown(left.Type) || IsUnknown(right.Type) {
			return unknownInfo()
		}
		if IsBool(left.Type) && IsBool(right.Type) {
			return TypeInfo{Type: TypeBool, Constant: constant}
		}
		if IsInteger(left.Type) && IsInteger(right.Type) {
			// Bitwise interpretation widens to DINT.
			return TypeInfo{Type: TypeDInt, Constant: constant}
		}
		c.errorf(diag.CodeIncompatibleTypes,
			"operator '"+e.Op+"' requires BOOL or integer operands, got "+
				left.Type.String()+" and "+right.Type.String(), e.Span())
		return unknownInfo()

	default:
		return unknownInfo()
	}
}

func isTime(t Type) bool {
	e, ok := t.(*Elementary)
	return ok && e.Kind == KindTime
}

func (c *Checker) callType(e *ast.CallExpr) TypeInfo {
	for _, arg := range e.Args {
		if arg.Value == nil {
			continue
		}
		if arg.Output {
			// Output destinations are written, not read.
			if sym := c.rootSymbol(arg.Value); sym != nil {
				sym.Assigned = true
			}
			continue
		}
		c.ExprType(arg.Value)
	}

	name := e.Callee()
	if name == "" {
		c.ExprType(e.Fn)
		return unknownInfo()
	}

	if ident, ok := e.Fn.(*ast.Ident); ok {
		if sym := c.table.Lookup(ident.Name); sym != nil {
			sym.Used = true
			switch t := sym.Type.(type) {
			case *Function:
				return TypeInfo{Type: t.Return}
			case *FunctionBlock:
				// Instance invocation yields no value.
				return TypeInfo{Type: TypeVoid}
			default:
				return TypeInfo{Type: TypeVoid}
			}
		}
	}

	if fn := LookupBuiltinFunction(name); fn != nil {
		return TypeInfo{Type: fn.Return}
	}
	if LookupBuiltinFunctionBlock(name) != nil {
		return TypeInfo{Type: TypeVoid}
	}

	// Vendor instructions and AOIs go unchecked rather than flagged.
	return unknownInfo()
}

func (c *Checker) indexType(e *ast.IndexExpr) TypeInfo {
	base := c.ExprType(e.X)

	for _, idx := range e.Indexes {
		info := c.ExprType(idx)
		if !IsUnknown(info.Type) && !IsInteger(info.Type) {
			c.errorf(diag.CodeNonIntegerIndex,
				"array index must be an integer, got "+info.Type.String(), idx.Span())
		}
	}

	if IsUnknown(base.Type) {
		return unknownInfo()
	}

	arr, ok := base.Type.(*Array)
	if !ok {
		if _, named := base.Type.(*Named); named {
			return unknownInfo()
		}
		c.errorf(diag.CodeIncompatibleTypes,
			"cannot index a value of type "+base.Type.String(), e.Span())
		return unknownInfo()
	}

	if len(e.Indexes) != len(arr.Dims) {
		c.errorf(diag.CodeDimensionMismatch,
			fmt.Sprintf("array has %d dimensions, got %d indices", len(arr.Dims), len(e.Indexes)),
			e.Span())
	}

	return TypeInfo{Type: arr.Elem, LValue: base.LValue}
}

func (c *Checker) memberType(e *ast.MemberExpr) TypeInfo {
	base := c.ExprType(e.X)

	if IsUnknown(base.Type) {
		return unknownInfo()
	}

	switch t := base.Type.(type) {
	case *Struct:
		if f := t.Field(e.Member.Name); f != nil {
			return TypeInfo{Type: f.Type, LValue: base.LValue}
		}
		c.errorf(diag.CodeUndefinedIdentifier,
			"type "+t.String()+" has no member '"+e.Member.Name+"'", e.Member.Span())
		return unknownInfo()
	case *FunctionBlock:
		if f := t.Field(e.Member.Name); f != nil {
			return TypeInfo{Type: f.Type, LValue: base.LValue}
		}
		c.errorf(diag.CodeUndefinedIdentifier,
			"function block "+t.Name+" has no member '"+e.Member.Name+"'", e.Member.Span())
		return unknownInfo()
	case *Named:
		// Members of unresolved vendor types stay unknown, silently.
		return unknownInfo()
	default:
		c.errorf(diag.CodeIncompatibleTypes,
			"type "+base.Type.String()+" has no members", e.Span())
		return unknownInfo()
	}
}

func (c *Checker) derefType(e *ast.DerefExpr) TypeInfo {
	base := c.ExprType(e.X)
	if IsUnknown(base.Type) {
		return unknownInfo()
	}
	if ref, ok := base.Type.(*Ref); ok {
		return TypeInfo{Type: ref.To, LValue: true}
	}
	c.errorf(diag.CodeIncompatibleTypes,
		"cannot dereference a value of type "+base.Type.String(), e.Span())
	return unknownInfo()
}
