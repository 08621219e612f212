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

// parseType parses a leading type token plus the pointer/array/function
// forms, returning nil for "missing type" as callers expect.
func (p *Parser) parseType() ast.Type {
	p.skipTrivia()
	switch {
	case p.check(token.MUL):
		start := p.current.Span
		p.advance()
		p.skipTrivia()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return ast.NewPointerType(token.NewSpan(start.File, start.Start, elem.Span().End), elem)

	case p.check(token.LBRACK):
		start := p.current.Span
		p.advance()
		p.skipTrivia()
		var size ast.Expr
		if !p.check(token.RBRACK) {
			size = p.parseExpression()
			p.skipTrivia()
		}
		p.expect(token.RBRACK, "']'")
		p.skipTrivia()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return ast.NewArrayType(token.NewSpan(start.File, start.Start, elem.Span().End), elem, size)

	case p.checkKeyword("fn"):
		start := p.current.Span
		p.advance()
		p.skipTrivia()
		var params []ast.Type
		if _, ok := p.expect(token.LPAREN, "'('"); ok {
			p.skipTrivia()
			if !p.check(token.RPAREN) {
				for {
					p.skipTrivia()
					t := p.parseType()
					if t != nil {
						params = append(params, t)
					}
					p.skipTrivia()
					if !p.match(token.COMMA) {
						break
					}
				}
			}
			p.expect(token.RPAREN, "')'")
		}
		var ret ast.Type
		end := p.previous.Span
		p.skipTrivia()
		if p.match(token.ARROW) {
			p.skipTrivia()
			ret = p.parseType()
			if ret != nil {
				end = ret.Span()
			}
		}
		return ast.NewFunctionType(token.NewSpan(start.File, start.Start, end.End), params, ret)

	case p.current.IsName():
		tok := p.current
		p.advance()
		return ast.NewTypeIdentifier(tok.Span, tok.Text)

	default:
		return nil
	}
}
