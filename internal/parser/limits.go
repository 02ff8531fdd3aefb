package parser

// Limits bounds parser resource consumption on untrusted input. Every
// limit is a hard cap: crossing one records a security diagnostic and
// aborts the parse with the AST built so far.
type Limits struct {
	MaxInputSize      int // bytes of source text
	MaxDepth          int // nesting depth of expressions and statements
	MaxCollectionSize int // elements in one list (args, decls, statements)
	MaxNodes          int // total AST nodes
	MaxStringLength   int // bytes in one string literal
	MaxIterations     int // parser loop iterations
}

// BalancedLimits suits typical controller exports: large enough for any
// real project, small enough to stop hostile input.
func BalancedLimits() Limits {
	return Limits{
		MaxInputSize:      100 * 1024 * 1024,
		MaxDepth:          256,
		MaxCollectionSize: 100_000,
		MaxNodes:          10_000_000,
		MaxStringLength:   1024 * 1024,
		MaxIterations:     1_000_000,
	}
}

// StrictLimits suits untrusted single files, such as service endpoints
// accepting uploads.
func StrictLimits() Limits {
	return Limits{
		MaxInputSize:      10 * 1024 * 1024,
		MaxDepth:          64,
		MaxCollectionSize: 10_000,
		MaxNodes:          1_000_000,
		MaxStringLength:   64 * 1024,
		MaxIterations:     100_000,
	}
}

// RelaxedLimits suits trusted batch processing of very large projects.
func RelaxedLimits() Limits {
	return Limits{
		MaxInputSize:      1024 * 1024 * 1024,
		MaxDepth:          512,
		MaxCollectionSize: 1_000_000,
		MaxNodes:          100_000_000,
		MaxStringLength:   10 * 1024 * 1024,
		MaxIterations:     10_000_000,
	}
}
