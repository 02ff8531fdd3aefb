package parser

import (
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

type Option func(*options)

type options struct {
	filename string
	dialect  lexer.Dialect
	limits   Limits
	recover  bool
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithDialect selects the structured text dialect to parse.
func WithDialect(d lexer.Dialect) Option {
	return func(o *options) {
		o.dialect = d
	}
}

// WithLimits overrides the resource limits enforced while parsing.
func WithLimits(l Limits) Option {
	return func(o *options) {
		o.limits = l
	}
}

// WithRecovery enables statement-level error recovery: after a bad
// statement the parser resynchronizes at the next terminator and keeps
// going instead of abandoning the enclosing POU body.
func WithRecovery() Option {
	return func(o *options) {
		o.recover = true
	}
}

// Operator precedence, lowest binds loosest. Exponentiation is
// right-associative and handled in parseInfixExpr.
const (
	precedenceLowest = iota
	precedenceOr
	precedenceXor
	precedenceAnd
	precedenceComparison
	precedenceSum
	precedenceProduct
	precedencePower
	precedencePrefix
	precedencePostfix
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:        precedenceOr,
	lexer.XOR:       precedenceXor,
	lexer.AND:       precedenceAnd,
	lexer.AMPERSAND: precedenceAnd,
	lexer.EQ:        precedenceComparison,
	lexer.NE:        precedenceComparison,
	lexer.LT:        precedenceComparison,
	lexer.LE:        precedenceComparison,
	lexer.GT:        precedenceComparison,
	lexer.GE:        precedenceComparison,
	lexer.PLUS:      precedenceSum,
	lexer.MINUS:     precedenceSum,
	lexer.STAR:      precedenceProduct,
	lexer.SLASH:     precedenceProduct,
	lexer.MOD:       precedenceProduct,
	lexer.POWER:     precedencePower,
	lexer.LPAREN:    precedencePostfix,
	lexer.LBRACKET:  precedencePostfix,
	lexer.DOT:       precedencePostfix,
	lexer.CARET:     precedencePostfix,
}

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
	Help     string
}

// ToDiagnostic converts a parse error into the shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	code := e.Code
	if code == "" {
		code = diag.CodeParseUnexpectedToken
	}
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     code,
		Message:  e.Message,
		Help:     e.Help,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Parser implements a Pratt-style recursive descent parser for IEC
// structured text. Invariants:
//   - Lookahead: curTok always reflects the token currently under
//     examination; peekTok mirrors the next token pulled from the lexer.
//     The pair forms the parser's sole lookahead window and is only
//     mutated via nextToken.
//   - Diagnostics: errors is an append-only accumulator of recoverable
//     diagnostics. Callers are expected to consult Errors() after
//     ParseUnit to surface them.
//   - Spans: AST node spans are monotonic and composed via mergeSpan so
//     that tail.End is never less than head.End.
type Parser struct {
	lx      *lexer.Lexer
	input   string
	curTok  lexer.Token
	peekTok lexer.Token

	errors []ParseError

	filename string
	dialect  lexer.Dialect
	recovery bool

	limits  Limits
	depth   int
	nodes   int
	iters   int
	aborted bool

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{limits: BalancedLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:        lexer.NewWithDialect(input, cfg.dialect),
		input:     input,
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
		dialect:   cfg.dialect,
		recovery:  cfg.recover,
		limits:    cfg.limits,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	if len(input) > p.limits.MaxInputSize {
		p.reportSecurityLimit("input exceeds maximum size", lexer.Span{Line: 1, Column: 1})
		p.aborted = true
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntLiteral)
	p.registerPrefix(lexer.REAL, p.parseRealLiteral)
	p.registerPrefix(lexer.STRING_LIT, p.parseStringLiteral)
	p.registerPrefix(lexer.WSTRING_LIT, p.parseStringLiteral)
	p.registerPrefix(lexer.TIME_LIT, p.parseTimeLiteral)
	p.registerPrefix(lexer.DATE_LIT, p.parseTimeLiteral)
	p.registerPrefix(lexer.TOD_LIT, p.parseTimeLiteral)
	p.registerPrefix(lexer.DT_LIT, p.parseTimeLiteral)
	p.registerPrefix(lexer.ADDRESS, p.parseAddressLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.PLUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.NOT, p.parsePrefixExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)

	p.registerInfix(lexer.OR, p.parseInfixExpr)
	p.registerInfix(lexer.XOR, p.parseInfixExpr)
	p.registerInfix(lexer.AND, p.parseInfixExpr)
	p.registerInfix(lexer.AMPERSAND, p.parseInfixExpr)
	p.registerInfix(lexer.EQ, p.parseInfixExpr)
	p.registerInfix(lexer.NE, p.parseInfixExpr)
	p.registerInfix(lexer.LT, p.parseInfixExpr)
	p.registerInfix(lexer.LE, p.parseInfixExpr)
	p.registerInfix(lexer.GT, p.parseInfixExpr)
	p.registerInfix(lexer.GE, p.parseInfixExpr)
	p.registerInfix(lexer.PLUS, p.parseInfixExpr)
	p.registerInfix(lexer.MINUS, p.parseInfixExpr)
	p.registerInfix(lexer.STAR, p.parseInfixExpr)
	p.registerInfix(lexer.SLASH, p.parseInfixExpr)
	p.registerInfix(lexer.MOD, p.parseInfixExpr)
	p.registerInfix(lexer.POWER, p.parseInfixExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)
	p.registerInfix(lexer.DOT, p.parseMemberExpr)
	p.registerInfix(lexer.CARET, p.parseDerefExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a full compilation unit. Without recovery, parsing stops
// at the first error and the partially built unit is dropped.
func Parse(input string, opts ...Option) (*ast.CompilationUnit, []ParseError) {
	p := New(input, opts...)
	unit := p.ParseUnit()
	errs := p.Errors()
	if !p.recovery && len(errs) > 0 {
		return nil, errs
	}
	return unit, errs
}

// ParseRecovering parses with statement-level error recovery enabled,
// producing a best-effort AST alongside all accumulated errors.
func ParseRecovering(input string, opts ...Option) (*ast.CompilationUnit, []ParseError) {
	opts = append(opts, WithRecovery())
	return Parse(input, opts...)
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Diagnostics converts accumulated lexer and parser errors into shared
// diagnostics, in encounter order.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	var ds []diag.Diagnostic
	for _, le := range p.lx.Errors {
		ds = append(ds, le.ToDiagnostic())
	}
	for _, pe := range p.errors {
		ds = append(ds, pe.ToDiagnostic())
	}
	return ds
}

// ParseUnit parses a full compilation unit and returns its AST.
func (p *Parser) ParseUnit() *ast.CompilationUnit {
	unit := ast.NewCompilationUnit(p.curTok.Span)
	unit.Source = p.input

	var pendingPragmas []*ast.Pragma

	for p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			break
		}

		if p.curTok.Type == lexer.PRAGMA {
			pendingPragmas = append(pendingPragmas,
				ast.NewPragma(p.curTok.Value, p.curTok.Span))
			p.nextToken()
			continue
		}

		prevTok := p.curTok
		decl := p.parseDecl(pendingPragmas)
		pendingPragmas = nil
		if decl != nil {
			unit.Decls = append(unit.Decls, decl)
			unit.SetSpan(mergeSpan(unit.Span(), decl.Span()))
			continue
		}

		if p.curTok.Type == lexer.EOF || !p.recovery {
			break
		}

		p.recoverDecl(prevTok)
	}

	unit.SetSpan(mergeSpan(unit.Span(), p.curTok.Span))

	return unit
}

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). The lexer is
// only queried from this hop to keep lookahead bookkeeping centralized.
func (p *Parser) nextToken() {
	if p.lx == nil {
		p.curTok = p.peekTok
		p.peekTok = lexer.Token{}
		return
	}

	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	lexeme := string(tt)
	msg := "expected '" + lexeme + "'"
	if p.peekTok.Type == lexer.EOF {
		p.reportCoded(msg, diag.CodeParseUnexpectedEOF, p.peekTok.Span)
	} else {
		msg += ", found '" + p.peekTok.Raw + "'"
		p.reportError(msg, p.peekTok.Span)
	}
	return false
}

func (p *Parser) emitParseDiagnostic(msg string, span lexer.Span, severity diag.Severity, code diag.Code) {
	span = p.spanWithFilename(span)
	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Span:     span,
		Severity: severity,
		Code:     code,
	})
}

func (p *Parser) spanWithFilename(span lexer.Span) lexer.Span {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}
	return span
}

func (p *Parser) reportError(msg string, span lexer.Span) {
	p.emitParseDiagnostic(msg, span, diag.SeverityError, diag.CodeParseUnexpectedToken)
}

func (p *Parser) reportCoded(msg string, code diag.Code, span lexer.Span) {
	p.emitParseDiagnostic(msg, span, diag.SeverityError, code)
}

func (p *Parser) reportSecurityLimit(msg string, span lexer.Span) {
	p.emitParseDiagnostic(msg, span, diag.SeverityError, diag.CodeParseSecurityLimit)
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixFns[tokenType] = fn
}

func sameTokenPosition(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

func isDeclStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.PROGRAM, lexer.FUNCTION, lexer.FUNCTION_BLOCK, lexer.CLASS,
		lexer.INTERFACE, lexer.METHOD, lexer.NAMESPACE, lexer.TYPE,
		lexer.DATA_BLOCK, lexer.ORGANIZATION_BLOCK,
		lexer.VAR_GLOBAL, lexer.VAR_CONFIG, lexer.VAR_ACCESS:
		return true
	default:
		return false
	}
}

// recoverDecl skips tokens until the next plausible declaration start.
func (p *Parser) recoverDecl(prev lexer.Token) {
	if p.curTok.Type == lexer.EOF {
		return
	}

	if sameTokenPosition(p.curTok, prev) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF {
		if !p.countIteration(p.curTok.Span) {
			return
		}
		if isDeclStart(p.curTok.Type) {
			return
		}
		p.nextToken()
	}
}

// recoverStatement skips tokens until the next statement boundary: a
// semicolon (consumed) or a block-structure keyword (left in place).
func (p *Parser) recoverStatement(prev lexer.Token) {
	if sameTokenPosition(p.curTok, prev) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF {
		if !p.countIteration(p.curTok.Span) {
			return
		}
		switch p.curTok.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			return
		case lexer.END_IF, lexer.END_CASE, lexer.END_FOR, lexer.END_WHILE,
			lexer.END_REPEAT, lexer.ELSE, lexer.ELSIF, lexer.UNTIL,
			lexer.END_PROGRAM, lexer.END_FUNCTION, lexer.END_FUNCTION_BLOCK,
			lexer.END_METHOD, lexer.END_REGION:
			return
		}
		p.nextToken()
	}
}

// enterDepth guards recursion depth. Callers must pair a successful call
// with exitDepth.
func (p *Parser) enterDepth(span lexer.Span) bool {
	p.depth++
	if p.depth > p.limits.MaxDepth {
		if !p.aborted {
			p.reportSecurityLimit("nesting exceeds maximum depth", span)
			p.aborted = true
		}
		p.depth--
		return false
	}
	return true
}

func (p *Parser) exitDepth() {
	p.depth--
}

// countNode guards total AST size.
func (p *Parser) countNode(span lexer.Span) bool {
	p.nodes++
	if p.nodes > p.limits.MaxNodes {
		if !p.aborted {
			p.reportSecurityLimit("program exceeds maximum node count", span)
			p.aborted = true
		}
		return false
	}
	return true
}

// countIteration guards parser loops.
func (p *Parser) countIteration(span lexer.Span) bool {
	p.iters++
	if p.iters > p.limits.MaxIterations {
		if !p.aborted {
			p.reportSecurityLimit("parse exceeds maximum iteration count", span)
			p.aborted = true
		}
		return false
	}
	return !p.aborted
}

// checkCollection guards the size of a single list (arguments,
// declarations, statements).
func (p *Parser) checkCollection(n int, span lexer.Span) bool {
	if n > p.limits.MaxCollectionSize {
		if !p.aborted {
			p.reportSecurityLimit("collection exceeds maximum size", span)
			p.aborted = true
		}
		return false
	}
	return true
}

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// The parser relies on lexer spans being half-open; callers should pass the
// earliest start span first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}
