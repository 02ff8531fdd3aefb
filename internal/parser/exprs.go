package parser

import (
	"strconv"
	"strings"

	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrecedence(precedenceLowest)
}

func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	if !p.enterDepth(p.curTok.Span) {
		return nil
	}
	defer p.exitDepth()

	if !p.countNode(p.curTok.Span) {
		return nil
	}

	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportCoded("unexpected token in expression '"+string(p.curTok.Type)+"'",
			diag.CodeParseInvalidExpression, p.curTok.Span)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekTok.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Type]; ok {
		return prec
	}
	return precedenceLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Type]; ok {
		return prec
	}
	return precedenceLowest
}

func (p *Parser) parseIdentifier() ast.Expr {
	id := ast.NewIdent(p.curTok.Value, p.curTok.Span)
	id.Quoted = strings.HasPrefix(p.curTok.Raw, `"`)
	return id
}

func (p *Parser) parseIntLiteral() ast.Expr {
	v, err := strconv.ParseInt(p.curTok.Value, 10, 64)
	if err != nil {
		p.reportCoded("integer literal out of range: "+p.curTok.Raw,
			diag.CodeParseInvalidExpression, p.curTok.Span)
		return nil
	}
	return ast.NewIntLit(v, p.curTok.Raw, p.curTok.Span)
}

func (p *Parser) parseRealLiteral() ast.Expr {
	v, err := strconv.ParseFloat(strings.ReplaceAll(p.curTok.Value, "_", ""), 64)
	if err != nil {
		p.reportCoded("real literal out of range: "+p.curTok.Raw,
			diag.CodeParseInvalidExpression, p.curTok.Span)
		return nil
	}
	return ast.NewRealLit(v, p.curTok.Raw, p.curTok.Span)
}

func (p *Parser) parseStringLiteral() ast.Expr {
	if len(p.curTok.Value) > p.limits.MaxStringLength {
		p.reportSecurityLimit("string literal exceeds maximum length", p.curTok.Span)
		p.aborted = true
		return nil
	}
	wide := p.curTok.Type == lexer.WSTRING_LIT
	return ast.NewStringLit(p.curTok.Value, wide, p.curTok.Span)
}

func (p *Parser) parseTimeLiteral() ast.Expr {
	var kind ast.TimeKind
	switch p.curTok.Type {
	case lexer.DATE_LIT:
		kind = ast.TimeDate
	case lexer.TOD_LIT:
		kind = ast.TimeTimeOfDay
	case lexer.DT_LIT:
		kind = ast.TimeDateTime
	default:
		kind = ast.TimeDuration
	}
	return ast.NewTimeLit(kind, p.curTok.Raw, p.curTok.Span)
}

func (p *Parser) parseAddressLiteral() ast.Expr {
	return ast.NewAddressLit(p.curTok.Raw, p.curTok.Span)
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	return ast.NewBoolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span)
}

func (p *Parser) parseNullLiteral() ast.Expr {
	return ast.NewNullLit(p.curTok.Span)
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opTok := p.curTok
	op := strings.ToUpper(opTok.Raw)
	if opTok.Type != lexer.NOT {
		op = opTok.Raw
	}

	p.nextToken()

	operand := p.parseExprPrecedence(precedencePrefix)
	if operand == nil {
		return nil
	}

	return ast.NewPrefixExpr(op, operand, mergeSpan(opTok.Span, operand.Span()))
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	start := p.curTok.Span

	p.nextToken()

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	// The group's extent is kept on the inner node.
	if s, ok := expr.(interface{ SetSpan(lexer.Span) }); ok {
		s.SetSpan(mergeSpan(start, p.curTok.Span))
	}

	return expr
}

// parseInfixExpr handles all binary operators. Keyword operators are
// normalized to upper case; '&' is recorded as AND.
func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opTok := p.curTok
	prec := p.curPrecedence()

	op := opTok.Raw
	switch opTok.Type {
	case lexer.AND, lexer.OR, lexer.XOR, lexer.MOD:
		op = strings.ToUpper(opTok.Raw)
	case lexer.AMPERSAND:
		op = "AND"
	}

	// Exponentiation is right-associative.
	if opTok.Type == lexer.POWER {
		prec--
	}

	p.nextToken()

	right := p.parseExprPrecedence(prec)
	if right == nil {
		return nil
	}

	return ast.NewBinaryExpr(left, op, right, mergeSpan(left.Span(), right.Span()))
}

// parseCallExpr parses an argument list. Arguments may be positional,
// named inputs (name := expr), outputs (name => lvalue, optionally
// NOT-negated), or empty slots between commas.
func (p *Parser) parseCallExpr(fn ast.Expr) ast.Expr {
	var args []*ast.CallArg

	for p.peekTok.Type != lexer.RPAREN {
		if !p.countIteration(p.peekTok.Span) {
			return nil
		}
		if p.peekTok.Type == lexer.EOF {
			p.reportCoded("unterminated argument list", diag.CodeParseUnexpectedEOF, p.peekTok.Span)
			return nil
		}

		// Empty slot: an inferred argument.
		if p.peekTok.Type == lexer.COMMA {
			arg := ast.NewCallArg(p.peekTok.Span)
			args = append(args, arg)
			p.nextToken() // move to ','
			if p.peekTok.Type == lexer.RPAREN {
				args = append(args, ast.NewCallArg(p.peekTok.Span))
			}
			continue
		}

		p.nextToken()
		arg := p.parseCallArg()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if !p.checkCollection(len(args), p.curTok.Span) {
			return nil
		}

		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			if p.peekTok.Type == lexer.RPAREN {
				args = append(args, ast.NewCallArg(p.peekTok.Span))
			}
			continue
		}
		if p.peekTok.Type != lexer.RPAREN {
			p.reportError("expected ',' or ')' in argument list", p.peekTok.Span)
			return nil
		}
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	return ast.NewCallExpr(fn, args, mergeSpan(fn.Span(), p.curTok.Span))
}

func (p *Parser) parseCallArg() *ast.CallArg {
	start := p.curTok.Span
	arg := ast.NewCallArg(start)

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	switch p.peekTok.Type {
	case lexer.ASSIGN:
		name, ok := expr.(*ast.Ident)
		if !ok {
			p.reportError("argument name must be an identifier", expr.Span())
			return nil
		}
		arg.Name = name
		p.nextToken() // move to ':='
		p.nextToken() // move to value
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		arg.Value = value
		arg.SetSpan(mergeSpan(start, value.Span()))

	case lexer.OUTPUT:
		switch target := expr.(type) {
		case *ast.Ident:
			arg.Name = target
		case *ast.PrefixExpr:
			name, ok := target.Operand.(*ast.Ident)
			if !ok || target.Op != "NOT" {
				p.reportError("output argument name must be an identifier", expr.Span())
				return nil
			}
			arg.Name = name
			arg.Negated = true
		default:
			p.reportError("output argument name must be an identifier", expr.Span())
			return nil
		}
		arg.Output = true
		p.nextToken() // move to '=>'
		p.nextToken() // move to destination
		dest := p.parseExpr()
		if dest == nil {
			return nil
		}
		arg.Value = dest
		arg.SetSpan(mergeSpan(start, dest.Span()))

	default:
		arg.Value = expr
		arg.SetSpan(mergeSpan(start, expr.Span()))
	}

	return arg
}

func (p *Parser) parseIndexExpr(x ast.Expr) ast.Expr {
	var indexes []ast.Expr

	p.nextToken() // move past '['

	for {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}
		idx := p.parseExpr()
		if idx == nil {
			return nil
		}
		indexes = append(indexes, idx)
		if !p.checkCollection(len(indexes), p.curTok.Span) {
			return nil
		}

		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	return ast.NewIndexExpr(x, indexes, mergeSpan(x.Span(), p.curTok.Span))
}

func (p *Parser) parseMemberExpr(x ast.Expr) ast.Expr {
	if !p.expect(lexer.IDENT) {
		return nil
	}

	member := ast.NewIdent(p.curTok.Value, p.curTok.Span)
	member.Quoted = strings.HasPrefix(p.curTok.Raw, `"`)

	return ast.NewMemberExpr(x, member, mergeSpan(x.Span(), member.Span()))
}

func (p *Parser) parseDerefExpr(x ast.Expr) ast.Expr {
	return ast.NewDerefExpr(x, mergeSpan(x.Span(), p.curTok.Span))
}
