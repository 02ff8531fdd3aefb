package parser

import (
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
)

// stopSet names the tokens that terminate a statement list. The stop
// token is left as curTok for the caller to consume.
type stopSet map[lexer.TokenType]bool

func stops(tts ...lexer.TokenType) stopSet {
	s := make(stopSet, len(tts))
	for _, tt := range tts {
		s[tt] = true
	}
	return s
}

// parseStatements parses statements until a stop token or EOF.
func (p *Parser) parseStatements(stop stopSet) []ast.Stmt {
	var stmts []ast.Stmt

	for !stop[p.curTok.Type] && p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			break
		}

		prevTok := p.curTok
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
			if !p.checkCollection(len(stmts), p.curTok.Span) {
				break
			}
			p.nextToken()
			continue
		}

		if !p.recovery {
			// Leave the bad token for the enclosing declaration to
			// resynchronize on.
			break
		}
		p.recoverStatement(prevTok)
	}

	return stmts
}

// parseStatement parses one statement. On success curTok is the last
// token of the statement (usually its semicolon).
func (p *Parser) parseStatement() ast.Stmt {
	if !p.enterDepth(p.curTok.Span) {
		return nil
	}
	defer p.exitDepth()

	if !p.countNode(p.curTok.Span) {
		return nil
	}

	switch p.curTok.Type {
	case lexer.SEMICOLON:
		return ast.NewEmptyStmt(p.curTok.Span)
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.CASE:
		return p.parseCaseStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.REPEAT:
		return p.parseRepeatStmt()
	case lexer.EXIT:
		stmt := ast.NewExitStmt(p.curTok.Span)
		return p.finishSimpleStmt(stmt)
	case lexer.CONTINUE:
		stmt := ast.NewContinueStmt(p.curTok.Span)
		return p.finishSimpleStmt(stmt)
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.GOTO:
		return p.parseGotoStmt()
	case lexer.LABEL:
		return p.parseLabelDecl()
	case lexer.REGION:
		return p.parseRegionStmt()
	case lexer.IDENT:
		// A label target: name followed by a bare colon (SCL).
		if p.dialect == lexer.DialectSCL && p.peekTok.Type == lexer.COLON {
			return p.parseLabelStmt()
		}
		return p.parseAssignOrCallStmt()
	case lexer.ADDRESS:
		return p.parseAssignOrCallStmt()
	default:
		p.reportCoded("unexpected token at start of statement '"+string(p.curTok.Type)+"'",
			diag.CodeParseInvalidStatement, p.curTok.Span)
		return nil
	}
}

// parseReturnStmt parses RETURN, optionally followed by the value
// expression a function returns.
func (p *Parser) parseReturnStmt() ast.Stmt {
	stmt := ast.NewReturnStmt(p.curTok.Span)

	if p.peekTok.Type != lexer.SEMICOLON {
		p.nextToken()
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		stmt.Value = value
	}
	return p.finishSimpleStmt(stmt)
}

// finishSimpleStmt consumes the trailing semicolon of a keyword-only
// statement and extends its span.
func (p *Parser) finishSimpleStmt(stmt ast.Stmt) ast.Stmt {
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	if s, ok := stmt.(interface{ SetSpan(lexer.Span) }); ok {
		s.SetSpan(mergeSpan(stmt.Span(), p.curTok.Span))
	}
	return stmt
}

func (p *Parser) parseAssignOrCallStmt() ast.Stmt {
	start := p.curTok.Span

	target := p.parseExpr()
	if target == nil {
		return nil
	}

	var op ast.AssignOp
	switch p.peekTok.Type {
	case lexer.ASSIGN:
		op = ast.AssignPlain
	case lexer.PLUS_ASSIGN:
		op = ast.AssignAdd
	case lexer.MINUS_ASSIGN:
		op = ast.AssignSub
	case lexer.STAR_ASSIGN:
		op = ast.AssignMul
	case lexer.SLASH_ASSIGN:
		op = ast.AssignDiv
	default:
		// No assignment operator: the expression must be a call.
		call, ok := target.(*ast.CallExpr)
		if !ok {
			p.reportCoded("expected ':=' or a call", diag.CodeParseInvalidStatement, p.peekTok.Span)
			return nil
		}
		if !p.expect(lexer.SEMICOLON) {
			return nil
		}
		return ast.NewCallStmt(call, mergeSpan(start, p.curTok.Span))
	}

	p.nextToken() // move to the assignment operator
	p.nextToken() // move to the value

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	return ast.NewAssignStmt(target, op, value, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.curTok.Span

	p.nextToken()
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if !p.expect(lexer.THEN) {
		return nil
	}

	stmt := ast.NewIfStmt(cond, start)

	p.nextToken()
	stmt.Then = p.parseStatements(stops(lexer.ELSIF, lexer.ELSE, lexer.END_IF))

	for p.curTok.Type == lexer.ELSIF {
		branchStart := p.curTok.Span
		p.nextToken()
		branchCond := p.parseExpr()
		if branchCond == nil {
			return nil
		}
		if !p.expect(lexer.THEN) {
			return nil
		}
		branch := ast.NewElsifBranch(branchCond, branchStart)
		p.nextToken()
		branch.Body = p.parseStatements(stops(lexer.ELSIF, lexer.ELSE, lexer.END_IF))
		branch.SetSpan(mergeSpan(branchStart, p.curTok.Span))
		stmt.Elsifs = append(stmt.Elsifs, branch)
	}

	if p.curTok.Type == lexer.ELSE {
		p.nextToken()
		stmt.Else = p.parseStatements(stops(lexer.END_IF))
	}

	if p.curTok.Type != lexer.END_IF {
		p.reportCoded("expected 'END_IF'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	p.consumeOptionalSemicolon(stmt)

	return stmt
}

// consumeOptionalSemicolon eats a trailing ';' after an END_x keyword
// and extends the statement span over it.
func (p *Parser) consumeOptionalSemicolon(stmt ast.Stmt) {
	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
		if s, ok := stmt.(interface{ SetSpan(lexer.Span) }); ok {
			s.SetSpan(mergeSpan(stmt.Span(), p.curTok.Span))
		}
	}
}

// atCaseLabel reports whether curTok starts a CASE label. Labels are
// constants (integers, negated integers, enum identifiers followed by
// ':', ',' or '..') so the check is a two-token decision.
func (p *Parser) atCaseLabel() bool {
	switch p.curTok.Type {
	case lexer.INT:
		return true
	case lexer.MINUS:
		return p.peekTok.Type == lexer.INT
	case lexer.IDENT:
		return p.peekTok.Type == lexer.COLON ||
			p.peekTok.Type == lexer.COMMA ||
			p.peekTok.Type == lexer.DOTDOT
	default:
		return false
	}
}

func (p *Parser) parseCaseStmt() ast.Stmt {
	start := p.curTok.Span

	p.nextToken()
	selector := p.parseExpr()
	if selector == nil {
		return nil
	}

	if !p.expect(lexer.OF) {
		return nil
	}

	stmt := ast.NewCaseStmt(selector, start)
	p.nextToken()

	for p.curTok.Type != lexer.END_CASE && p.curTok.Type != lexer.ELSE &&
		p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			break
		}

		branch := p.parseCaseBranch()
		if branch == nil {
			if !p.recovery {
				break
			}
			p.recoverStatement(p.curTok)
			continue
		}
		stmt.Branches = append(stmt.Branches, branch)
		if !p.checkCollection(len(stmt.Branches), p.curTok.Span) {
			break
		}
	}

	if p.curTok.Type == lexer.ELSE {
		stmt.HasElse = true
		p.nextToken()
		stmt.Else = p.parseStatements(stops(lexer.END_CASE))
	}

	if p.curTok.Type != lexer.END_CASE {
		p.reportCoded("expected 'END_CASE'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	p.consumeOptionalSemicolon(stmt)

	return stmt
}

func (p *Parser) parseCaseBranch() *ast.CaseBranch {
	start := p.curTok.Span

	var labels []ast.Expr
	for {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}

		label := p.parseExpr()
		if label == nil {
			return nil
		}
		if p.peekTok.Type == lexer.DOTDOT {
			p.nextToken() // move to '..'
			p.nextToken() // move to high bound
			high := p.parseExpr()
			if high == nil {
				return nil
			}
			label = ast.NewRangeExpr(label, high, mergeSpan(label.Span(), high.Span()))
		}
		labels = append(labels, label)

		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(lexer.COLON) {
		return nil
	}

	branch := ast.NewCaseBranch(labels, start)

	p.nextToken()
	branch.Body = p.parseCaseBranchBody()
	branch.SetSpan(mergeSpan(start, p.curTok.Span))

	return branch
}

// parseCaseBranchBody parses statements until the next label, ELSE, or
// END_CASE. Unlike parseStatements the stop condition needs lookahead:
// a new label is detected from the token pair at the boundary.
func (p *Parser) parseCaseBranchBody() []ast.Stmt {
	var stmts []ast.Stmt

	for p.curTok.Type != lexer.END_CASE && p.curTok.Type != lexer.ELSE &&
		p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			break
		}
		if p.atCaseLabel() {
			break
		}

		prevTok := p.curTok
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
			if !p.checkCollection(len(stmts), p.curTok.Span) {
				break
			}
			p.nextToken()
			continue
		}

		if !p.recovery {
			break
		}
		p.recoverStatement(prevTok)
	}

	return stmts
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	loopVar := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	if !p.expect(lexer.ASSIGN) {
		return nil
	}

	stmt := ast.NewForStmt(loopVar, start)

	p.nextToken()
	stmt.From = p.parseExpr()
	if stmt.From == nil {
		return nil
	}

	if !p.expect(lexer.TO) {
		return nil
	}

	p.nextToken()
	stmt.To = p.parseExpr()
	if stmt.To == nil {
		return nil
	}

	if p.peekTok.Type == lexer.BY {
		p.nextToken()
		p.nextToken()
		stmt.By = p.parseExpr()
		if stmt.By == nil {
			return nil
		}
	}

	if !p.expect(lexer.DO) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatements(stops(lexer.END_FOR))

	if p.curTok.Type != lexer.END_FOR {
		p.reportCoded("expected 'END_FOR'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	p.consumeOptionalSemicolon(stmt)

	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span

	p.nextToken()
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if !p.expect(lexer.DO) {
		return nil
	}

	stmt := ast.NewWhileStmt(cond, start)

	p.nextToken()
	stmt.Body = p.parseStatements(stops(lexer.END_WHILE))

	if p.curTok.Type != lexer.END_WHILE {
		p.reportCoded("expected 'END_WHILE'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	p.consumeOptionalSemicolon(stmt)

	return stmt
}

func (p *Parser) parseRepeatStmt() ast.Stmt {
	start := p.curTok.Span

	stmt := ast.NewRepeatStmt(start)

	p.nextToken()
	stmt.Body = p.parseStatements(stops(lexer.UNTIL))

	if p.curTok.Type != lexer.UNTIL {
		p.reportCoded("expected 'UNTIL'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	p.nextToken()
	stmt.Until = p.parseExpr()
	if stmt.Until == nil {
		return nil
	}

	if !p.expect(lexer.END_REPEAT) {
		return nil
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	p.consumeOptionalSemicolon(stmt)

	return stmt
}

func (p *Parser) parseGotoStmt() ast.Stmt {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	label := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	stmt := ast.NewGotoStmt(label, start)
	return p.finishSimpleStmt(stmt)
}

// parseLabelDecl skips a Siemens LABEL declaration list. The declared
// names carry no semantics beyond their later ':' definitions, so the
// statement collapses to an empty one covering the list.
func (p *Parser) parseLabelDecl() ast.Stmt {
	start := p.curTok.Span

	for {
		if !p.expect(lexer.IDENT) {
			return nil
		}
		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	return ast.NewEmptyStmt(mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseLabelStmt() ast.Stmt {
	start := p.curTok.Span
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	p.nextToken() // move to ':'

	return ast.NewLabelStmt(name, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseRegionStmt() ast.Stmt {
	start := p.curTok.Span

	// The region name is free text up to the end of the line; accept a
	// run of identifiers on the REGION line itself.
	var name string
	for p.peekTok.Type == lexer.IDENT && p.peekTok.Span.Line == start.Line {
		p.nextToken()
		if name != "" {
			name += " "
		}
		name += p.curTok.Raw
	}

	stmt := ast.NewRegionStmt(name, start)

	p.nextToken()
	stmt.Body = p.parseStatements(stops(lexer.END_REGION))

	if p.curTok.Type != lexer.END_REGION {
		p.reportCoded("expected 'END_REGION'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))

	return stmt
}
