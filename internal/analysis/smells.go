package analysis

import (
	"fmt"

	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
)

// SmellConfig holds the detector thresholds. The zero value is not
// usable; start from DefaultSmellConfig.
type SmellConfig struct {
	MaxNestingDepth        int
	MaxPouLength           int
	MaxConditionComplexity int
	MagicNumberExceptions  []int64
}

// DefaultSmellConfig returns the stock thresholds.
func DefaultSmellConfig() SmellConfig {
	return SmellConfig{
		MaxNestingDepth:        4,
		MaxPouLength:           50,
		MaxConditionComplexity: 4,
		MagicNumberExceptions:  []int64{-1, 0, 1, 2, 10, 100},
	}
}

func (c SmellConfig) isException(v int64) bool {
	for _, e := range c.MagicNumberExceptions {
		if v == e {
			return true
		}
	}
	return false
}

// SmellDetector walks a POU body looking for structural smells. It
// never aborts; every finding lands in the returned diagnostic list.
type SmellDetector struct {
	config   SmellConfig
	depth    int
	findings []diag.Diagnostic
}

// NewSmellDetector returns a detector with the given thresholds.
func NewSmellDetector(config SmellConfig) *SmellDetector {
	return &SmellDetector{config: config}
}

// AnalyzePou runs every smell rule over the POU and returns the
// findings in source-scan order.
func (d *SmellDetector) AnalyzePou(pou *ast.Pou) []diag.Diagnostic {
	d.depth = 0
	d.findings = nil

	if size := countStatements(pou.Body); size > d.config.MaxPouLength {
		d.report(tier(size, d.config.MaxPouLength), diag.CodeLongFunction,
			fmt.Sprintf("%s '%s' has %d statements, recommended maximum is %d",
				pou.Kind, pou.Name.Name, size, d.config.MaxPouLength),
			pou.Name.Span())
	}

	d.walkList(pou.Body)
	return d.findings
}

func (d *SmellDetector) report(severity diag.Severity, code diag.Code, msg string, span lexer.Span) {
	d.findings = append(d.findings, diag.Diagnostic{
		Stage:    diag.StageAnalysis,
		Severity: severity,
		Code:     code,
		Message:  msg,
		Span:     toDiagSpan(span),
	})
}

// tier picks a severity by how far a measurement exceeds its threshold.
func tier(value, threshold int) diag.Severity {
	switch {
	case float64(value) <= 1.5*float64(threshold):
		return diag.SeverityHint
	case float64(value) <= 2*float64(threshold):
		return diag.SeverityWarning
	default:
		return diag.SeverityError
	}
}

// walkList visits one statement list, flagging statements that follow a
// RETURN or EXIT in the same list.
func (d *SmellDetector) walkList(stmts []ast.Stmt) {
	dead := false
	var reason string
	for _, s := range stmts {
		if dead {
			d.report(diag.SeverityWarning, diag.CodeDeadCode,
				"unreachable code after "+reason, s.Span())
		}
		d.walkStmt(s)
		switch s.(type) {
		case *ast.ReturnStmt:
			dead, reason = true, "RETURN"
		case *ast.ExitStmt:
			dead, reason = true, "EXIT"
		}
	}
}

func (d *SmellDetector) walkStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.IfStmt:
		d.enterNesting(s.Span())
		d.checkCondition(s.Cond)
		d.checkEmptyBody(s.Then, "IF", s.Span())
		d.walkList(s.Then)
		for _, elsif := range s.Elsifs {
			d.checkCondition(elsif.Cond)
			d.checkEmptyBody(elsif.Body, "ELSIF", elsif.Span())
			d.walkList(elsif.Body)
		}
		d.walkList(s.Else)
		d.depth--

	case *ast.CaseStmt:
		d.enterNesting(s.Span())
		d.checkMagicNumbers(s.Selector)
		for _, branch := range s.Branches {
			if len(branch.Body) == 0 {
				d.report(diag.SeverityWarning, diag.CodeEmptyCaseBranch,
					"CASE branch has no statements", branch.Span())
			}
			d.walkList(branch.Body)
		}
		if !s.HasElse {
			d.report(diag.SeverityHint, diag.CodeMissingCaseElse,
				"CASE statement has no ELSE branch", s.Span())
		}
		d.walkList(s.Else)
		d.depth--

	case *ast.ForStmt:
		d.enterNesting(s.Span())
		d.checkMagicNumbers(s.From)
		d.checkMagicNumbers(s.To)
		if s.By != nil {
			d.checkMagicNumbers(s.By)
		}
		d.checkEmptyBody(s.Body, "FOR", s.Span())
		d.walkList(s.Body)
		d.depth--

	case *ast.WhileStmt:
		d.enterNesting(s.Span())
		d.checkCondition(s.Cond)
		d.checkEmptyBody(s.Body, "WHILE", s.Span())
		d.walkList(s.Body)
		d.depth--

	case *ast.RepeatStmt:
		d.enterNesting(s.Span())
		d.checkEmptyBody(s.Body, "REPEAT", s.Span())
		d.walkList(s.Body)
		d.checkCondition(s.Until)
		d.depth--

	case *ast.RegionStmt:
		// Folding markers do not nest control flow.
		d.walkList(s.Body)

	case *ast.AssignStmt:
		d.checkMagicNumbers(s.Target)
		d.checkMagicNumbers(s.Value)

	case *ast.CallStmt:
		d.checkMagicNumbers(s.Call)
	}
}

// enterNesting bumps the depth counter and flags the structure when it
// crosses the configured maximum.
func (d *SmellDetector) enterNesting(span lexer.Span) {
	d.depth++
	if d.depth > d.config.MaxNestingDepth {
		d.report(tier(d.depth, d.config.MaxNestingDepth), diag.CodeDeepNesting,
			fmt.Sprintf("nesting depth %d exceeds recommended maximum of %d",
				d.depth, d.config.MaxNestingDepth), span)
	}
}

func (d *SmellDetector) checkEmptyBody(body []ast.Stmt, kind string, span lexer.Span) {
	if len(body) == 0 {
		d.report(diag.SeverityWarning, diag.CodeEmptyBlock,
			kind+" body has no statements", span)
	}
}

// checkCondition runs the condition-specific rules: constant
// conditions, boolean operator complexity, and magic numbers.
func (d *SmellDetector) checkCondition(cond ast.Expr) {
	if cond == nil {
		return
	}
	if lit, ok := cond.(*ast.BoolLit); ok {
		value := "FALSE"
		if lit.Value {
			value = "TRUE"
		}
		d.report(diag.SeverityWarning, diag.CodeConstantCondition,
			"condition is always "+value, lit.Span())
	}
	if n := countBoolOperators(cond); n > d.config.MaxConditionComplexity {
		d.report(tier(n, d.config.MaxConditionComplexity), diag.CodeComplexCondition,
			fmt.Sprintf("condition has %d boolean operators, recommended maximum is %d",
				n, d.config.MaxConditionComplexity), cond.Span())
	}
	d.checkMagicNumbers(cond)
}

func (d *SmellDetector) checkMagicNumbers(e ast.Expr) {
	if e == nil {
		return
	}
	ast.Walk(e, func(n ast.Node) bool {
		// CASE labels and subrange bounds never reach here; only value
		// positions are scanned.
		if lit, ok := n.(*ast.IntLit); ok && !d.config.isException(lit.Value) {
			d.report(diag.SeverityHint, diag.CodeMagicNumber,
				"magic number "+lit.Raw+" should be a named constant", lit.Span())
		}
		return true
	})
}

// countBoolOperators counts AND, OR, and XOR nodes in a condition.
// Unlike CountExpressionDecisions it includes XOR, since the rule
// measures how hard the condition reads, not branch count.
func countBoolOperators(e ast.Expr) int {
	count := 0
	ast.Walk(e, func(n ast.Node) bool {
		if bin, ok := n.(*ast.BinaryExpr); ok {
			switch bin.Op {
			case "AND", "OR", "XOR":
				count++
			}
		}
		return true
	})
	return count
}

// countStatements counts statements recursively, including the bodies
// of control structures.
func countStatements(stmts []ast.Stmt) int {
	count := 0
	for _, s := range stmts {
		ast.Walk(s, func(n ast.Node) bool {
			if _, ok := n.(ast.Stmt); ok {
				count++
			}
			return true
		})
	}
	return count
}
