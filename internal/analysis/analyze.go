package analysis

import (
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
	"github.com/plclens/plclens/internal/types"
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

// PouAnalysis is the result of running the full per-POU pipeline.
type PouAnalysis struct {
	Pou         *ast.Pou
	Table       *types.SymbolTable
	Cfg         *Cfg
	Complexity  int
	Diagnostics []diag.Diagnostic
}

// AnalyzePou runs the whole pipeline over one POU: build the symbol
// table, type-check the body, detect smells, then sweep unused
// symbols. Diagnostics are appended in that order.
func AnalyzePou(pou *ast.Pou) *PouAnalysis {
	table, diags := types.FromPou(pou)

	checker := types.NewChecker(table)
	checker.CheckStatements(pou.Body)
	diags = append(diags, checker.Errors...)

	detector := NewSmellDetector(DefaultSmellConfig())
	diags = append(diags, detector.AnalyzePou(pou)...)

	diags = append(diags, table.CheckUnused()...)

	cfg := BuildCFG(pou.Body)
	return &PouAnalysis{
		Pou:         pou,
		Table:       table,
		Cfg:         cfg,
		Complexity:  cfg.CyclomaticComplexity(),
		Diagnostics: diags,
	}
}
