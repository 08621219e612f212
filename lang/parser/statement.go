// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"rilllang.org/ls/lang/ast"
	"rilllang.org/ls/lang/token"
)

// parseStatement dispatches on the leading keyword lexeme, covering
// every statement AST kind rather than leaving the less common ones as
// stubs.
func (p *Parser) parseStatement() ast.Stmt {
	p.skipTrivia()
	switch {
	case p.check(token.LBRACE):
		return p.parseCompoundStmt()
	case p.checkKeyword("return"):
		return p.parseReturn()
	case p.checkKeyword("if"):
		return p.parseIf()
	case p.checkKeyword("while"):
		return p.parseWhile()
	case p.checkKeyword("for"):
		return p.parseFor()
	case p.checkKeyword("foreach"):
		return p.parseForeach()
	case p.checkKeyword("switch"):
		return p.parseSwitch()
	case p.checkKeyword("break"):
		return p.parseBreak()
	case p.checkKeyword("continue"):
		return p.parseContinue()
	case p.checkKeyword("defer"):
		return p.parseDefer()
	case p.checkKeyword("assert"):
		return p.parseAssert()
	case p.checkKeyword("var") || p.checkKeyword("const"):
		return p.parseLocalDecl()
	default:
		return p.parseExpressionStmt()
	}
}

// parseCompound parses a brace-delimited block as *ast.Compound, for
// call sites (function bodies) that need the concrete type rather than
// the ast.Stmt interface.
func (p *Parser) parseCompound() *ast.Compound {
	s := p.parseCompoundStmt()
	c, _ := s.(*ast.Compound)
	return c
}

func (p *Parser) parseCompoundStmt() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "{"

	var stmts []ast.Stmt
	for {
		p.skipTrivia()
		if p.check(token.RBRACE) || p.check(token.EOF) {
			break
		}
		stmts = append(stmts, p.parseStatement())
		if p.panicMode {
			p.synchronize()
		}
	}

	end := p.current.Span
	if p.check(token.RBRACE) {
		p.advance()
		end = p.previous.Span
	} else {
		for !p.check(token.RBRACE) && !p.check(token.EOF) {
			p.advance()
		}
		if p.check(token.RBRACE) {
			p.advance()
			end = p.previous.Span
		}
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewCompound(span, stmts)
}

// atStatementTerminator reports whether current can silently stand in
// for a missing ';' (expression-statement recovery rule).
func (p *Parser) atStatementTerminator() bool {
	switch p.current.Kind {
	case token.LBRACE, token.RBRACE, token.EOF, token.NEWLINE:
		return true
	case token.IDENT:
		return declKeywords[p.current.Text]
	}
	return false
}

func (p *Parser) parseExpressionStmt() ast.Stmt {
	start := p.current.Span
	expr := p.parseExpression()
	p.skipWhitespaceOnly()

	end := expr.Span()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	} else if !p.atStatementTerminator() {
		p.errorAt(p.current, "Expected ';'")
		p.synchronize()
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewExpressionStmt(span, expr)
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "return"

	var value ast.Expr
	p.skipTrivia()
	if !p.check(token.SEMICOLON) && !p.atStatementTerminator() {
		value = p.parseExpression()
	}

	end := p.previous.Span
	p.skipTrivia()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewReturn(span, value)
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "if"

	p.skipTrivia()
	p.expect(token.LPAREN, "'('")
	p.skipTrivia()
	cond := p.parseExpression()
	p.skipTrivia()
	p.expect(token.RPAREN, "')'")
	p.skipTrivia()
	then := p.parseStatement()

	var els ast.Stmt
	p.skipTrivia()
	if p.matchKeyword("else") {
		p.skipTrivia()
		els = p.parseStatement()
	}

	end := p.previous.Span
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewIf(span, cond, then, els)
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "while"

	p.skipTrivia()
	p.expect(token.LPAREN, "'('")
	p.skipTrivia()
	cond := p.parseExpression()
	p.skipTrivia()
	p.expect(token.RPAREN, "')'")
	p.skipTrivia()
	body := p.parseStatement()

	span := token.NewSpan(start.File, start.Start, p.previous.Span.End)
	return ast.NewWhile(span, cond, body)
}

// parseFor implements a conventional three-clause `for (init; cond;
// update) body`; init may be a local declaration or an expression.
func (p *Parser) parseFor() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "for"

	p.skipTrivia()
	p.expect(token.LPAREN, "'('")

	var init ast.Node
	p.skipTrivia()
	if !p.check(token.SEMICOLON) {
		if p.checkKeyword("var") || p.checkKeyword("const") {
			init = p.parseLocalDecl()
		} else {
			init = p.parseExpressionStmt()
		}
	} else {
		p.advance() // bare ';'
	}

	var cond ast.Expr
	p.skipTrivia()
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.skipTrivia()
	p.expect(token.SEMICOLON, "';'")

	var update ast.Expr
	p.skipTrivia()
	if !p.check(token.RPAREN) {
		update = p.parseExpression()
	}
	p.skipTrivia()
	p.expect(token.RPAREN, "')'")
	p.skipTrivia()
	body := p.parseStatement()

	span := token.NewSpan(start.File, start.Start, p.previous.Span.End)
	return ast.NewFor(span, init, cond, update, body)
}

// parseForeach implements `foreach (IDENT in expr) body`.
func (p *Parser) parseForeach() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "foreach"

	p.skipTrivia()
	p.expect(token.LPAREN, "'('")

	varName := "<missing>"
	p.skipTrivia()
	if p.current.IsName() {
		varName = p.current.Text
		p.advance()
	} else {
		p.errorAt(p.current, "Expected loop variable name")
	}

	p.skipTrivia()
	p.matchKeyword("in")
	p.skipTrivia()
	iter := p.parseExpression()
	p.skipTrivia()
	p.expect(token.RPAREN, "')'")
	p.skipTrivia()
	body := p.parseStatement()

	span := token.NewSpan(start.File, start.Start, p.previous.Span.End)
	return ast.NewForeach(span, varName, iter, body)
}

func (p *Parser) parseSwitch() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "switch"

	p.skipTrivia()
	p.expect(token.LPAREN, "'('")
	p.skipTrivia()
	tag := p.parseExpression()
	p.skipTrivia()
	p.expect(token.RPAREN, "')'")

	p.skipTrivia()
	var clauses []ast.Stmt
	if _, ok := p.expect(token.LBRACE, "'{'"); ok {
	clauseLoop:
		for {
			p.skipTrivia()
			switch {
			case p.checkKeyword("case"):
				clauses = append(clauses, p.parseCase())
			case p.checkKeyword("default"):
				clauses = append(clauses, p.parseDefault())
			default:
				break clauseLoop
			}
		}
		p.skipTrivia()
		if p.check(token.RBRACE) {
			p.advance()
		} else {
			p.errorAt(p.current, "Expected '}'")
		}
	}

	span := token.NewSpan(start.File, start.Start, p.previous.Span.End)
	return ast.NewSwitch(span, tag, clauses)
}

func (p *Parser) parseCase() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "case"

	var values []ast.Expr
	for {
		p.skipTrivia()
		values = append(values, p.parseExpression())
		p.skipTrivia()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.skipTrivia()
	p.expect(token.COLON, "':'")

	var body []ast.Stmt
	for {
		p.skipTrivia()
		if p.checkKeyword("case") || p.checkKeyword("default") || p.check(token.RBRACE) || p.check(token.EOF) {
			break
		}
		body = append(body, p.parseStatement())
	}

	span := token.NewSpan(start.File, start.Start, p.previous.Span.End)
	return ast.NewCase(span, values, body)
}

func (p *Parser) parseDefault() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "default"
	p.skipTrivia()
	p.expect(token.COLON, "':'")

	var body []ast.Stmt
	for {
		p.skipTrivia()
		if p.checkKeyword("case") || p.checkKeyword("default") || p.check(token.RBRACE) || p.check(token.EOF) {
			break
		}
		body = append(body, p.parseStatement())
	}

	span := token.NewSpan(start.File, start.Start, p.previous.Span.End)
	return ast.NewDefault(span, body)
}

func (p *Parser) parseBreak() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "break"

	label := ""
	p.skipTrivia()
	if p.current.Kind == token.IDENT && !p.atStatementTerminator() {
		label = p.current.Text
		p.advance()
	}
	end := p.previous.Span
	p.skipTrivia()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewBreak(span, label)
}

func (p *Parser) parseContinue() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "continue"

	label := ""
	p.skipTrivia()
	if p.current.Kind == token.IDENT && !p.atStatementTerminator() {
		label = p.current.Text
		p.advance()
	}
	end := p.previous.Span
	p.skipTrivia()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewContinue(span, label)
}

func (p *Parser) parseDefer() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "defer"

	p.skipTrivia()
	call := p.parseExpression()

	end := call.Span()
	p.skipTrivia()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewDefer(span, call)
}

func (p *Parser) parseAssert() ast.Stmt {
	start := p.current.Span
	p.advance() // consume "assert"

	p.skipTrivia()
	cond := p.parseExpression()

	var message ast.Expr
	p.skipTrivia()
	if p.match(token.COMMA) {
		p.skipTrivia()
		message = p.parseExpression()
	}

	end := p.previous.Span
	p.skipTrivia()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewAssert(span, cond, message)
}

// parseLocalDecl parses a local "var"/"const" declaration for use both
// as a statement and as a for-loop initializer.
func (p *Parser) parseLocalDecl() ast.Stmt {
	start := p.current.Span
	var decl ast.Decl
	if p.checkKeyword("const") {
		decl = p.parseConst()
	} else {
		decl = p.parseVariable()
	}
	span := token.NewSpan(start.File, start.Start, p.previous.Span.End)
	return ast.NewDeclStmt(span, decl)
}
