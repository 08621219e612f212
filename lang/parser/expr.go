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
	"strings"

	"rilllang.org/ls/lang/ast"
	"rilllang.org/ls/lang/scanner"
	"rilllang.org/ls/lang/token"
)

// Precedence levels, low to high:
// NONE < ASSIGNMENT < OR < AND < EQUALITY < COMPARISON < TERM < FACTOR
// < UNARY < CALL < PRIMARY.
const (
	precNone = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

// binaryPrecedence maps an infix operator token to its ladder level, or
// precNone if tok is not a binary operator.
func binaryPrecedence(tok token.Token) int {
	switch tok {
	case token.ASSIGN:
		return precAssignment
	case token.LOR:
		return precOr
	case token.LAND:
		return precAnd
	case token.EQL, token.NEQ:
		return precEquality
	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		return precComparison
	case token.ADD, token.SUB, token.OR, token.XOR, token.SHL, token.SHR:
		return precTerm
	case token.MUL, token.QUO, token.REM, token.AND:
		return precFactor
	}
	return precNone
}

func isUnaryPrefix(tok token.Token) bool {
	switch tok {
	case token.SUB, token.ADD, token.NOT, token.TILDE, token.MUL, token.AND, token.INC, token.DEC:
		return true
	}
	return false
}

// parseExpression is the top-level entry point. Ternary (`cond ? then :
// else`) sits above assignment in precedence, parsed as a wrapper
// around the assignment-level result rather than a ladder rung of its
// own.
func (p *Parser) parseExpression() ast.Expr {
	expr := p.parsePrecedence(precAssignment)
	p.skipWhitespaceOnly()
	if p.match(token.QUESTION) {
		p.skipTrivia()
		then := p.parseExpression()
		p.skipTrivia()
		p.expect(token.COLON, "':'")
		p.skipTrivia()
		els := p.parseExpression()
		span := token.NewSpan(expr.Span().File, expr.Span().Start, els.Span().End)
		return ast.NewTernary(span, expr, then, els)
	}
	return expr
}

// parsePrecedence is the Pratt/precedence-climbing core: parse one
// prefix expression, apply postfix suffixes, then fold in binary
// operators at or above minPrec.
func (p *Parser) parsePrecedence(minPrec int) ast.Expr {
	p.skipTrivia()
	p.advance() // consume the prefix token
	prefix := p.previous

	left := p.parsePrefix(prefix)
	left = p.parsePostfix(left, minPrec)

	for {
		p.skipWhitespaceOnly()
		prec := binaryPrecedence(p.current.Kind)
		if prec == precNone || prec < minPrec {
			break
		}
		op := p.current
		p.advance()
		p.skipTrivia()
		right := p.parsePrecedence(prec + 1)
		span := token.NewSpan(left.Span().File, left.Span().Start, right.Span().End)
		left = ast.NewBinaryOp(span, op.Kind, left, right)
		left = p.parsePostfix(left, minPrec)
	}
	return left
}

// parsePrefix dispatches on the just-consumed prefix token.
func (p *Parser) parsePrefix(prefix token.Lexeme) ast.Expr {
	switch {
	case prefix.Kind == token.INTEGER || prefix.Kind == token.REAL ||
		prefix.Kind == token.STRING || prefix.Kind == token.CHAR_LITERAL:
		return p.parseLiteral(prefix)

	case prefix.Kind == token.IDENT && prefix.Text == "true":
		return ast.NewLiteral(prefix.Span, prefix.Text, ast.LiteralValue{ValueKind: ast.BoolValue, Bool: true})
	case prefix.Kind == token.IDENT && prefix.Text == "false":
		return ast.NewLiteral(prefix.Span, prefix.Text, ast.LiteralValue{ValueKind: ast.BoolValue, Bool: false})

	case prefix.IsName() || prefix.Kind == token.INTERP_IDENT ||
		prefix.Kind == token.ANNOTATION_IDENT || prefix.Kind == token.DIRECTIVE_IDENT:
		return ast.NewIdentifier(prefix.Span, prefix.Text)

	case prefix.Kind == token.LPAREN:
		inner := p.parseExpression()
		p.skipTrivia()
		if !p.check(token.RPAREN) {
			p.errorAt(p.current, "Expected ')'")
			return ast.ErrorIdent(p.previous.Span)
		}
		p.advance()
		return inner

	case prefix.Kind == token.LBRACE:
		return p.parseInitializerList(prefix)

	case isUnaryPrefix(prefix.Kind):
		operand := p.parsePrecedence(precUnary)
		span := token.NewSpan(prefix.Span.File, prefix.Span.Start, operand.Span().End)
		return ast.NewUnaryOp(span, prefix.Kind, operand, false)

	default:
		p.errorAt(prefix, "Expected expression")
		return ast.ErrorIdent(prefix.Span)
	}
}

// parsePostfix handles the CALL-precedence suffix chain: member access
// (`.`), call (`(...)`), subscript (`[...]`), postfix `++`/`--`, and
// the `as Type` cast form, all left-associative and binding tighter
// than any binary operator.
func (p *Parser) parsePostfix(left ast.Expr, minPrec int) ast.Expr {
	if minPrec > precCall {
		return left
	}
	for {
		p.skipWhitespaceOnly()
		switch {
		case p.check(token.PERIOD):
			p.advance()
			p.skipTrivia()
			member := "<missing>"
			if p.current.IsName() {
				member = p.current.Text
				p.advance()
			} else {
				p.errorAt(p.current, "Expected member name")
			}
			span := token.NewSpan(left.Span().File, left.Span().Start, p.previous.Span.End)
			left = ast.NewAccess(span, left, member)

		case p.check(token.LPAREN):
			p.advance()
			args := p.parseArgList()
			end := p.current.Span
			if p.check(token.RPAREN) {
				p.advance()
				end = p.previous.Span
			} else {
				p.errorAt(p.current, "Expected ')'")
			}
			span := token.NewSpan(left.Span().File, left.Span().Start, end.End)
			left = ast.NewCall(span, left, args)

		case p.check(token.LBRACK):
			p.advance()
			p.skipTrivia()
			index := p.parseExpression()
			p.skipTrivia()
			end := p.current.Span
			if p.check(token.RBRACK) {
				p.advance()
				end = p.previous.Span
			} else {
				p.errorAt(p.current, "Expected ']'")
			}
			span := token.NewSpan(left.Span().File, left.Span().Start, end.End)
			left = ast.NewSubscript(span, left, index)

		case p.check(token.INC) || p.check(token.DEC):
			op := p.current
			p.advance()
			span := token.NewSpan(left.Span().File, left.Span().Start, op.Span.End)
			left = ast.NewUnaryOp(span, op.Kind, left, true)

		case p.checkKeyword("as"):
			p.advance()
			p.skipTrivia()
			typ := p.parseType()
			span := token.NewSpan(left.Span().File, left.Span().Start, p.previous.Span.End)
			left = ast.NewCast(span, typ, left)

		default:
			return left
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	p.skipTrivia()
	if p.check(token.RPAREN) {
		return args
	}
	for {
		p.skipTrivia()
		args = append(args, p.parseExpression())
		p.skipTrivia()
		if !p.match(token.COMMA) {
			break
		}
	}
	return args
}

func (p *Parser) parseInitializerList(open token.Lexeme) ast.Expr {
	var elems []ast.Expr
	p.skipTrivia()
	if !p.check(token.RBRACE) {
		for {
			p.skipTrivia()
			elems = append(elems, p.parseExpression())
			p.skipTrivia()
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.skipTrivia()
	end := p.current.Span
	if p.check(token.RBRACE) {
		p.advance()
		end = p.previous.Span
	} else {
		p.errorAt(p.current, "Expected '}'")
	}
	span := token.NewSpan(open.Span.File, open.Span.Start, end.End)
	return ast.NewInitializerList(span, elems)
}

// parseLiteral converts a scanned numeric/string/char lexeme into a
// Literal node. Parse failure on a well-formed literal from this
// scanner is a scanner bug, not a recoverable parser condition.
func (p *Parser) parseLiteral(tok token.Lexeme) ast.Expr {
	switch tok.Kind {
	case token.INTEGER:
		return ast.NewLiteral(tok.Span, tok.Text, ast.LiteralValue{ValueKind: ast.IntValue, Number: scanner.ParseNumber(tok.Text)})
	case token.REAL:
		return ast.NewLiteral(tok.Span, tok.Text, ast.LiteralValue{ValueKind: ast.RealValue, Number: scanner.ParseNumber(tok.Text)})
	case token.STRING:
		return ast.NewLiteral(tok.Span, tok.Text, ast.LiteralValue{ValueKind: ast.StringValue, String: unquoteString(tok.Text)})
	default: // token.CHAR_LITERAL
		return ast.NewLiteral(tok.Span, tok.Text, ast.LiteralValue{ValueKind: ast.CharValue, Char: unquoteChar(tok.Text)})
	}
}

// unquoteString strips the surrounding quotes and resolves the minimal
// backslash escapes this language's grammar recognizes.
func unquoteString(lexeme string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(lexeme, `"`), `"`)
	return unescape(inner)
}

func unquoteChar(lexeme string) rune {
	inner := strings.TrimSuffix(strings.TrimPrefix(lexeme, "'"), "'")
	unescaped := unescape(inner)
	for _, r := range unescaped {
		return r
	}
	return 0
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case '\'':
				b.WriteByte('\'')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
