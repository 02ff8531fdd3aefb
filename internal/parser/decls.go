package parser

import (
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
)

func (p *Parser) parseDecl(pragmas []*ast.Pragma) ast.Decl {
	switch p.curTok.Type {
	case lexer.PROGRAM:
		return p.parsePou(ast.PouProgram, lexer.END_PROGRAM, pragmas)
	case lexer.FUNCTION_BLOCK:
		return p.parsePou(ast.PouFunctionBlock, lexer.END_FUNCTION_BLOCK, pragmas)
	case lexer.FUNCTION:
		return p.parsePou(ast.PouFunction, lexer.END_FUNCTION, pragmas)
	case lexer.CLASS:
		return p.parsePou(ast.PouClass, lexer.END_CLASS, pragmas)
	case lexer.INTERFACE:
		return p.parsePou(ast.PouInterface, lexer.END_INTERFACE, pragmas)
	case lexer.DATA_BLOCK:
		return p.parsePou(ast.PouDataBlock, lexer.END_DATA_BLOCK, pragmas)
	case lexer.ORGANIZATION_BLOCK:
		return p.parsePou(ast.PouOrganizationBlock, lexer.END_ORGANIZATION_BLOCK, pragmas)
	case lexer.METHOD:
		return p.parsePou(ast.PouMethod, lexer.END_METHOD, pragmas)
	case lexer.NAMESPACE:
		return p.parseNamespace()
	case lexer.TYPE:
		return p.parseTypeBlock()
	case lexer.VAR_GLOBAL, lexer.VAR_CONFIG, lexer.VAR_ACCESS:
		block := p.parseVarBlock()
		if block == nil {
			return nil
		}
		p.nextToken()
		return block
	default:
		p.reportCoded("expected a declaration, found '"+string(p.curTok.Type)+"'",
			diag.CodeParseInvalidDeclaration, p.curTok.Span)
		return nil
	}
}

var varBlockKinds = map[lexer.TokenType]ast.VarBlockKind{
	lexer.VAR:          ast.VarLocal,
	lexer.VAR_INPUT:    ast.VarInput,
	lexer.VAR_OUTPUT:   ast.VarOutput,
	lexer.VAR_IN_OUT:   ast.VarInOut,
	lexer.VAR_TEMP:     ast.VarTemp,
	lexer.VAR_GLOBAL:   ast.VarGlobal,
	lexer.VAR_EXTERNAL: ast.VarExternal,
	lexer.VAR_ACCESS:   ast.VarAccess,
	lexer.VAR_CONFIG:   ast.VarConfig,
}

var pouEndTokens = map[lexer.TokenType]bool{
	lexer.END_PROGRAM:            true,
	lexer.END_FUNCTION:           true,
	lexer.END_FUNCTION_BLOCK:     true,
	lexer.END_CLASS:              true,
	lexer.END_METHOD:             true,
	lexer.END_INTERFACE:          true,
	lexer.END_DATA_BLOCK:         true,
	lexer.END_ORGANIZATION_BLOCK: true,
}

// parsePou parses one program organization unit up to its end keyword.
func (p *Parser) parsePou(kind ast.PouKind, end lexer.TokenType, pragmas []*ast.Pragma) ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	pou := ast.NewPou(kind, name, start)
	pou.Pragmas = pragmas

	// Return type of a function or method.
	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to type start
		pou.ReturnType = p.parseTypeRef()
		if pou.ReturnType == nil {
			return nil
		}
	}

	if p.peekTok.Type == lexer.EXTENDS {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		pou.Extends = ast.NewIdent(p.curTok.Value, p.curTok.Span)
	}

	if p.peekTok.Type == lexer.IMPLEMENTS {
		p.nextToken()
		for {
			if !p.expect(lexer.IDENT) {
				return nil
			}
			pou.Implements = append(pou.Implements, ast.NewIdent(p.curTok.Value, p.curTok.Span))
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}

	p.nextToken()

	// Interface and declaration sections before the body.
	for !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}

		if p.curTok.Type == lexer.PRAGMA {
			pou.Pragmas = append(pou.Pragmas, ast.NewPragma(p.curTok.Value, p.curTok.Span))
			p.nextToken()
			continue
		}

		if _, ok := varBlockKinds[p.curTok.Type]; ok {
			block := p.parseVarBlock()
			if block == nil {
				return nil
			}
			pou.VarBlocks = append(pou.VarBlocks, block.(*ast.VarBlock))
			p.nextToken()
			continue
		}

		if p.curTok.Type == lexer.METHOD || p.curTok.Type == lexer.ABSTRACT ||
			p.curTok.Type == lexer.FINAL {
			method := p.parseMethod()
			if method == nil {
				return nil
			}
			pou.Methods = append(pou.Methods, method)
			continue
		}

		break
	}

	// Siemens sources mark the body start explicitly.
	if p.curTok.Type == lexer.BEGIN {
		p.nextToken()
	}

	pou.Body = p.parseStatements(stops(end))

	if p.curTok.Type != end {
		p.reportCoded("expected '"+string(end)+"'", diag.CodeParseMissingTerminator, p.curTok.Span)
		if !pouEndTokens[p.curTok.Type] {
			return nil
		}
	}

	pou.SetSpan(mergeSpan(start, p.curTok.Span))
	p.nextToken()
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	return pou
}

// parseMethod parses a METHOD inside a class, interface, or function
// block, including leading ABSTRACT/FINAL modifiers.
func (p *Parser) parseMethod() *ast.Pou {
	abstract := false
	final := false
	for p.curTok.Type == lexer.ABSTRACT || p.curTok.Type == lexer.FINAL {
		if p.curTok.Type == lexer.ABSTRACT {
			abstract = true
		} else {
			final = true
		}
		p.nextToken()
	}

	if p.curTok.Type != lexer.METHOD {
		p.reportCoded("expected 'METHOD'", diag.CodeParseInvalidDeclaration, p.curTok.Span)
		return nil
	}

	decl := p.parsePou(ast.PouMethod, lexer.END_METHOD, nil)
	if decl == nil {
		return nil
	}
	method := decl.(*ast.Pou)
	method.Abstract = abstract
	method.Final = final

	return method
}

// parseNamespace parses NAMESPACE Dotted.Name ... END_NAMESPACE. The
// contained declarations use the same dispatch as the top level.
func (p *Parser) parseNamespace() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := p.curTok.Value
	nameSpan := p.curTok.Span
	for p.peekTok.Type == lexer.DOT {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		name += "." + p.curTok.Value
		nameSpan = mergeSpan(nameSpan, p.curTok.Span)
	}

	ns := ast.NewNamespace(ast.NewIdent(name, nameSpan), start)
	p.nextToken()

	var pendingPragmas []*ast.Pragma
	for p.curTok.Type != lexer.END_NAMESPACE && p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}

		if p.curTok.Type == lexer.PRAGMA {
			pendingPragmas = append(pendingPragmas,
				ast.NewPragma(p.curTok.Value, p.curTok.Span))
			p.nextToken()
			continue
		}

		decl := p.parseDecl(pendingPragmas)
		pendingPragmas = nil
		if decl == nil {
			return nil
		}
		ns.Decls = append(ns.Decls, decl)
	}

	if p.curTok.Type != lexer.END_NAMESPACE {
		p.reportCoded("expected 'END_NAMESPACE'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	ns.SetSpan(mergeSpan(start, p.curTok.Span))
	p.nextToken()
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	return ns
}

// parseVarBlock parses VAR ... END_VAR. On success curTok is END_VAR.
func (p *Parser) parseVarBlock() ast.Decl {
	start := p.curTok.Span

	kind, ok := varBlockKinds[p.curTok.Type]
	if !ok {
		p.reportCoded("expected a variable block", diag.CodeParseInvalidDeclaration, p.curTok.Span)
		return nil
	}

	block := ast.NewVarBlock(kind, start)

	for {
		switch p.peekTok.Type {
		case lexer.CONSTANT:
			block.Constant = true
			p.nextToken()
			continue
		case lexer.RETAIN:
			block.Retain = true
			p.nextToken()
			continue
		case lexer.NON_RETAIN:
			block.NonRetain = true
			p.nextToken()
			continue
		}
		break
	}

	p.nextToken()

	for p.curTok.Type != lexer.END_VAR && p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}

		if p.curTok.Type == lexer.PRAGMA {
			p.nextToken()
			continue
		}

		decl := p.parseVarDecl()
		if decl == nil {
			if !p.recovery {
				return nil
			}
			p.recoverStatement(p.curTok)
			continue
		}
		block.Decls = append(block.Decls, decl)
		if !p.checkCollection(len(block.Decls), p.curTok.Span) {
			return nil
		}
		p.nextToken()
	}

	if p.curTok.Type != lexer.END_VAR {
		p.reportCoded("expected 'END_VAR'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	block.SetSpan(mergeSpan(start, p.curTok.Span))

	return block
}

// parseVarDecl parses one declaration line:
// name {, name} [AT address] : type [:= init] ;
// On success curTok is the terminating semicolon.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	start := p.curTok.Span

	decl := ast.NewVarDecl(start)

	if p.curTok.Type != lexer.IDENT {
		p.reportCoded("expected a variable name", diag.CodeParseInvalidDeclaration, p.curTok.Span)
		return nil
	}

	decl.Names = append(decl.Names, ast.NewIdent(p.curTok.Value, p.curTok.Span))
	for p.peekTok.Type == lexer.COMMA {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		decl.Names = append(decl.Names, ast.NewIdent(p.curTok.Value, p.curTok.Span))
		if !p.checkCollection(len(decl.Names), p.curTok.Span) {
			return nil
		}
	}

	if p.peekTok.Type == lexer.AT {
		p.nextToken()
		if !p.expect(lexer.ADDRESS) {
			return nil
		}
		decl.Address = ast.NewAddressLit(p.curTok.Raw, p.curTok.Span)
	}

	if !p.expect(lexer.COLON) {
		return nil
	}

	p.nextToken()
	decl.Type = p.parseTypeRef()
	if decl.Type == nil {
		return nil
	}

	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken()
		p.nextToken()
		decl.Init = p.parseInitializer()
		if decl.Init == nil {
			return nil
		}
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	decl.SetSpan(mergeSpan(start, p.curTok.Span))

	return decl
}

// parseInitializer parses a declaration initializer: an expression or a
// bracketed aggregate [a, b, 3(c)]. Aggregates are kept as a call-less
// index-like structure via nested expressions; the analyzer only needs
// the referenced names, so the aggregate is parsed as its elements and
// folded into the last one for span purposes.
func (p *Parser) parseInitializer() ast.Expr {
	if p.curTok.Type != lexer.LBRACKET {
		return p.parseExpr()
	}

	start := p.curTok.Span
	p.nextToken()

	var last ast.Expr
	for p.curTok.Type != lexer.RBRACKET && p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}
		elem := p.parseExpr()
		if elem == nil {
			return nil
		}
		// Repetition syntax: 3(value).
		last = elem
		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			continue
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		break
	}

	if last == nil {
		last = ast.NewIntLit(0, "", start)
	}
	if s, ok := last.(interface{ SetSpan(lexer.Span) }); ok {
		s.SetSpan(mergeSpan(start, p.curTok.Span))
	}

	return last
}

// parseTypeBlock parses TYPE ... END_TYPE. Each entry is
// name : type-spec [:= init] ;
func (p *Parser) parseTypeBlock() ast.Decl {
	start := p.curTok.Span
	block := ast.NewTypeBlock(start)

	p.nextToken()

	for p.curTok.Type != lexer.END_TYPE && p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}

		if p.curTok.Type == lexer.PRAGMA {
			p.nextToken()
			continue
		}

		if p.curTok.Type != lexer.IDENT {
			p.reportCoded("expected a type name", diag.CodeParseInvalidDeclaration, p.curTok.Span)
			if !p.recovery {
				return nil
			}
			p.recoverStatement(p.curTok)
			continue
		}

		declStart := p.curTok.Span
		name := ast.NewIdent(p.curTok.Value, p.curTok.Span)

		if !p.expect(lexer.COLON) {
			return nil
		}

		p.nextToken()
		typ := p.parseTypeRef()
		if typ == nil {
			return nil
		}

		decl := ast.NewTypeDecl(name, typ, declStart)

		if p.peekTok.Type == lexer.ASSIGN {
			p.nextToken()
			p.nextToken()
			decl.Init = p.parseInitializer()
			if decl.Init == nil {
				return nil
			}
		}

		if !p.expect(lexer.SEMICOLON) {
			return nil
		}
		decl.SetSpan(mergeSpan(declStart, p.curTok.Span))
		block.Decls = append(block.Decls, decl)
		if !p.checkCollection(len(block.Decls), p.curTok.Span) {
			return nil
		}

		p.nextToken()
	}

	if p.curTok.Type != lexer.END_TYPE {
		p.reportCoded("expected 'END_TYPE'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	block.SetSpan(mergeSpan(start, p.curTok.Span))
	p.nextToken()

	return block
}

// parseTypeRef parses a type reference. On success curTok is the last
// token of the reference.
func (p *Parser) parseTypeRef() ast.TypeRef {
	if !p.enterDepth(p.curTok.Span) {
		return nil
	}
	defer p.exitDepth()

	switch p.curTok.Type {
	case lexer.ARRAY:
		return p.parseArrayType()
	case lexer.STRUCT:
		return p.parseStructType()
	case lexer.STRING_KW, lexer.WSTRING_KW:
		return p.parseStringType()
	case lexer.REF_TO:
		return p.parseRefType()
	case lexer.LPAREN:
		return p.parseEnumType()
	case lexer.IDENT:
		return p.parseNamedOrSubrangeType()
	default:
		p.reportCoded("expected a type", diag.CodeParseInvalidDeclaration, p.curTok.Span)
		return nil
	}
}

func (p *Parser) parseNamedOrSubrangeType() ast.TypeRef {
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Value, nameTok.Span)
	named := ast.NewNamedType(name, nameTok.Span)

	// A parenthesized range after the name constrains it: INT (0..100).
	if p.peekTok.Type != lexer.LPAREN {
		return named
	}

	p.nextToken() // move to '('
	p.nextToken() // move to low bound

	low := p.parseExprPrecedence(precedencePrefix)
	if low == nil {
		return nil
	}
	if !p.expect(lexer.DOTDOT) {
		return nil
	}
	p.nextToken()
	high := p.parseExprPrecedence(precedencePrefix)
	if high == nil {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	rng := ast.NewSubrange(low, high, mergeSpan(low.Span(), high.Span()))
	return ast.NewSubrangeType(named, rng, mergeSpan(nameTok.Span, p.curTok.Span))
}

func (p *Parser) parseArrayType() ast.TypeRef {
	start := p.curTok.Span

	if !p.expect(lexer.LBRACKET) {
		return nil
	}

	var dims []*ast.Subrange
	for {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}

		p.nextToken()
		low := p.parseExprPrecedence(precedencePrefix)
		if low == nil {
			return nil
		}
		if !p.expect(lexer.DOTDOT) {
			return nil
		}
		p.nextToken()
		high := p.parseExprPrecedence(precedencePrefix)
		if high == nil {
			return nil
		}
		dims = append(dims, ast.NewSubrange(low, high, mergeSpan(low.Span(), high.Span())))
		if !p.checkCollection(len(dims), p.curTok.Span) {
			return nil
		}

		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	if !p.expect(lexer.OF) {
		return nil
	}

	p.nextToken()
	elem := p.parseTypeRef()
	if elem == nil {
		return nil
	}

	return ast.NewArrayType(dims, elem, mergeSpan(start, elem.Span()))
}

func (p *Parser) parseStructType() ast.TypeRef {
	start := p.curTok.Span

	var fields []*ast.VarDecl

	p.nextToken()
	for p.curTok.Type != lexer.END_STRUCT && p.curTok.Type != lexer.EOF && !p.aborted {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}

		field := p.parseVarDecl()
		if field == nil {
			return nil
		}
		fields = append(fields, field)
		if !p.checkCollection(len(fields), p.curTok.Span) {
			return nil
		}
		p.nextToken()
	}

	if p.curTok.Type != lexer.END_STRUCT {
		p.reportCoded("expected 'END_STRUCT'", diag.CodeParseMissingTerminator, p.curTok.Span)
		return nil
	}

	return ast.NewStructType(fields, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseStringType() ast.TypeRef {
	start := p.curTok.Span
	wide := p.curTok.Type == lexer.WSTRING_KW

	var length ast.Expr
	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		p.nextToken()
		length = p.parseExpr()
		if length == nil {
			return nil
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
	}

	return ast.NewStringType(wide, length, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseRefType() ast.TypeRef {
	start := p.curTok.Span

	p.nextToken()
	to := p.parseTypeRef()
	if to == nil {
		return nil
	}

	return ast.NewRefType(to, mergeSpan(start, to.Span()))
}

func (p *Parser) parseEnumType() ast.TypeRef {
	start := p.curTok.Span

	var values []*ast.EnumValue

	for {
		if !p.countIteration(p.curTok.Span) {
			return nil
		}
		if !p.expect(lexer.IDENT) {
			return nil
		}
		value := ast.NewEnumValue(ast.NewIdent(p.curTok.Value, p.curTok.Span), nil, p.curTok.Span)

		if p.peekTok.Type == lexer.ASSIGN {
			p.nextToken()
			p.nextToken()
			v := p.parseExprPrecedence(precedencePrefix)
			if v == nil {
				return nil
			}
			value.Value = v
			value.SetSpan(mergeSpan(value.Span(), v.Span()))
		}

		values = append(values, value)
		if !p.checkCollection(len(values), p.curTok.Span) {
			return nil
		}

		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	return ast.NewEnumType(values, mergeSpan(start, p.curTok.Span))
}
