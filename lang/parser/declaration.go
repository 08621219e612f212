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
	"golang.org/x/mod/semver"

	"rilllang.org/ls/lang/ast"
	"rilllang.org/ls/lang/token"
)

// parseImport implements import-declaration: `import path (',' path)*
// ';'`, each path a `::`-separated identifier chain.
func (p *Parser) parseImport() ast.Decl {
	start := p.current.Span
	p.advance() // consume "import"

	var paths [][]*ast.Identifier
pathLoop:
	for {
		p.skipTrivia()
		path, ok := p.parseImportPath()
		if !ok {
			p.synchronize()
			break pathLoop
		}
		paths = append(paths, path)

		p.skipTrivia()
		if !p.match(token.COMMA) {
			break
		}
	}

	end := p.previous.Span
	if semi, ok := p.expect(token.SEMICOLON, "';'"); ok {
		end = semi.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewImport(span, paths)
}

// parseImportPath parses one `::`-separated identifier chain.
func (p *Parser) parseImportPath() ([]*ast.Identifier, bool) {
	var ids []*ast.Identifier
	id, ok := p.parseIdentOfAnyKind()
	if !ok {
		return nil, false
	}
	ids = append(ids, id)

	for p.match(token.COLON2) {
		p.skipTrivia()
		id, ok := p.parseIdentOfAnyKind()
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// parseIdentOfAnyKind accepts any of the plain identifier lexical
// families (IDENT, TYPE_IDENT, CONST_IDENT) as a name reference.
func (p *Parser) parseIdentOfAnyKind() (*ast.Identifier, bool) {
	switch p.current.Kind {
	case token.IDENT, token.TYPE_IDENT, token.CONST_IDENT:
		tok := p.current
		p.advance()
		return ast.NewIdentifier(tok.Span, tok.Text), true
	}
	p.errorAt(p.current, "Expected identifier")
	return nil, false
}

// parseModule implements the module declaration: `module a::b::c (@
// vX.Y.Z)? ;`. An invalid version literal is recorded as a parse
// error, not a crash.
func (p *Parser) parseModule() ast.Decl {
	start := p.current.Span
	p.advance() // consume "module"

	var segs []string
	p.skipTrivia()
	if id, ok := p.parseIdentOfAnyKind(); ok {
		segs = append(segs, id.Name)
	}
	for p.match(token.COLON2) {
		p.skipTrivia()
		if id, ok := p.parseIdentOfAnyKind(); ok {
			segs = append(segs, id.Name)
		}
	}

	version := ""
	p.skipTrivia()
	if p.match(token.AT) {
		p.skipTrivia()
		if p.current.Kind == token.IDENT || p.current.Kind == token.REAL || p.current.Kind == token.INTEGER {
			v := p.current.Text
			p.advance()
			// A dotted version such as v1.2.3 scans as several tokens.
			for p.check(token.PERIOD) || p.check(token.REAL) || p.check(token.INTEGER) || p.check(token.IDENT) {
				v += p.current.Text
				p.advance()
			}
			if !semver.IsValid(v) {
				p.errorAt(p.previous, "Invalid semantic version "+v)
			} else {
				version = v
			}
		} else {
			p.errorAt(p.current, "Expected version literal")
		}
	}

	p.skipTrivia()
	end := p.previous.Span
	if semi, ok := p.expect(token.SEMICOLON, "';'"); ok {
		end = semi.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewModule(span, segs, version)
}

// parseTypedef implements `typedef Name = Type ;`, giving the Typedef
// AST node a concrete grammar.
func (p *Parser) parseTypedef() ast.Decl {
	start := p.current.Span
	p.advance() // consume "typedef"

	name := "<missing>"
	p.skipTrivia()
	if p.current.Kind == token.IDENT || p.current.Kind == token.TYPE_IDENT || p.current.Kind == token.CONST_IDENT {
		name = p.current.Text
		p.advance()
	} else {
		p.errorAt(p.current, "Expected type name")
	}

	p.skipTrivia()
	p.match(token.ASSIGN)
	p.skipTrivia()
	typ := p.parseType()

	end := p.previous.Span
	if semi, ok := p.expect(token.SEMICOLON, "';'"); ok {
		end = semi.Span
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewTypedef(span, name, typ)
}

// parseFunction implements `fn Name(Type Name, ...) -> Type? { body }`.
func (p *Parser) parseFunction() ast.Decl {
	start := p.current.Span
	p.advance() // consume "fn"

	name := "<missing>"
	p.skipTrivia()
	if p.current.IsName() {
		name = p.current.Text
		p.advance()
	} else {
		p.errorAt(p.current, "Expected function name")
		p.synchronize()
		return nil
	}

	p.skipTrivia()
	var params []ast.Param
	if _, ok := p.expect(token.LPAREN, "'('"); ok {
		params = p.parseParamList()
		p.expect(token.RPAREN, "')'")
	}

	var ret ast.Type
	p.skipTrivia()
	if p.match(token.ARROW) {
		p.skipTrivia()
		ret = p.parseType()
	}

	p.skipTrivia()
	var body *ast.Compound
	if p.check(token.LBRACE) {
		body = p.parseCompound()
	} else {
		p.errorAt(p.current, "Expected '{'")
	}

	end := p.previous.Span
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewFunction(span, name, params, ret, body)
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	p.skipTrivia()
	if p.check(token.RPAREN) {
		return params
	}
	for {
		p.skipTrivia()
		typ := p.parseType()
		p.skipTrivia()
		name := "<missing>"
		if p.current.IsName() {
			name = p.current.Text
			p.advance()
		} else {
			p.errorAt(p.current, "Expected parameter name")
		}
		params = append(params, ast.Param{Name: name, Type: typ})

		p.skipTrivia()
		if !p.match(token.COMMA) {
			break
		}
	}
	return params
}

// parseStructOrUnion implements struct/union declaration.
func (p *Parser) parseStructOrUnion() ast.Decl {
	start := p.current.Span
	isUnion := p.checkKeyword("union")
	p.advance() // consume "struct" | "union"

	name := "<missing>"
	p.skipTrivia()
	if p.current.IsName() {
		name = p.current.Text
		p.advance()
	} else {
		p.errorAt(p.current, "Expected type name")
		p.synchronize()
	}

	p.skipTrivia()
	if !p.check(token.LBRACE) {
		p.errorAt(p.current, "Expected '{'")
		p.synchronize()
		end := p.previous.Span
		return ast.NewStruct(token.NewSpan(start.File, start.Start, end.End), name, isUnion, nil)
	}
	p.advance() // consume "{"

	var members []*ast.StructMember
	for {
		p.skipTrivia()
		if p.check(token.RBRACE) || p.check(token.EOF) {
			break
		}
		if m, ok := p.parseStructMember(); ok {
			members = append(members, m)
		}
	}

	if p.panicMode {
		for !p.check(token.RBRACE) && !p.check(token.EOF) {
			p.advance()
		}
	}
	if p.check(token.RBRACE) {
		p.advance()
	} else {
		p.errorAt(p.current, "Expected '}'")
	}
	p.panicMode = false

	end := p.previous.Span
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewStruct(span, name, isUnion, members)
}

func (p *Parser) parseStructMember() (*ast.StructMember, bool) {
	start := p.current.Span
	isInline := p.matchKeyword("inline")
	p.skipTrivia()

	typ := p.parseType()
	if typ == nil {
		p.errorAt(p.current, "Expected type")
		p.synchronize()
		return nil, false
	}

	p.skipTrivia()
	if p.current.Kind != token.IDENT && p.current.Kind != token.TYPE_IDENT && p.current.Kind != token.CONST_IDENT {
		p.errorAt(p.current, "Expected member name")
		p.synchronize()
		return nil, false
	}
	name := p.current.Text
	p.advance()

	p.skipTrivia()
	if _, ok := p.expect(token.SEMICOLON, "';'"); !ok {
		p.synchronize()
		return nil, false
	}

	end := p.previous.Span
	span := token.NewSpan(start.File, start.Start, end.End)
	m := ast.NewStructMember(span, typ, name, isInline)
	return m, true
}

// parseEnum implements `enum Name { MEMBER (= expr)? , ... }`.
func (p *Parser) parseEnum() ast.Decl {
	start := p.current.Span
	p.advance() // consume "enum"

	name := "<missing>"
	p.skipTrivia()
	if p.current.IsName() {
		name = p.current.Text
		p.advance()
	} else {
		p.errorAt(p.current, "Expected type name")
		p.synchronize()
	}

	p.skipTrivia()
	var members []ast.EnumMember
	if _, ok := p.expect(token.LBRACE, "'{'"); ok {
		for {
			p.skipTrivia()
			if p.check(token.RBRACE) || p.check(token.EOF) {
				break
			}
			if p.current.IsName() {
				mname := p.current.Text
				p.advance()
				var value ast.Expr
				p.skipTrivia()
				if p.match(token.ASSIGN) {
					p.skipTrivia()
					value = p.parseExpression()
				}
				members = append(members, ast.EnumMember{Name: mname, Value: value})
			} else {
				p.errorAt(p.current, "Expected enum member name")
				p.advance()
			}
			p.skipTrivia()
			if !p.match(token.COMMA) {
				break
			}
		}
		if p.check(token.RBRACE) {
			p.advance()
		} else {
			p.errorAt(p.current, "Expected '}'")
		}
	}
	p.panicMode = false

	p.skipTrivia()
	p.match(token.SEMICOLON)

	end := p.previous.Span
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewEnum(span, name, members)
}

// parseConst implements `const Type Name = expr ;`.
func (p *Parser) parseConst() ast.Decl {
	start := p.current.Span
	p.advance() // consume "const"

	p.skipTrivia()
	typ := p.parseType()

	p.skipTrivia()
	name := "<missing>"
	if p.current.IsName() {
		name = p.current.Text
		p.advance()
	} else {
		p.errorAt(p.current, "Expected constant name")
	}

	p.skipTrivia()
	var value ast.Expr
	if _, ok := p.expect(token.ASSIGN, "'='"); ok {
		p.skipTrivia()
		value = p.parseExpression()
	} else {
		p.synchronize()
	}

	end := p.previous.Span
	p.skipWhitespaceOnly()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	} else if !p.atStatementTerminator() {
		p.errorAt(p.current, "Expected ';'")
		p.synchronize()
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewConstant(span, name, typ, value)
}

// parseVariable implements the fallback "otherwise fall through to
// variable declaration" branch: `var? Type Name (= expr)? ;`. The
// leading "var" keyword is optional.
func (p *Parser) parseVariable() ast.Decl {
	start := p.current.Span
	p.matchKeyword("var")

	p.skipTrivia()
	typ := p.parseType()

	p.skipTrivia()
	name := "<missing>"
	if p.current.IsName() {
		name = p.current.Text
		p.advance()
	} else {
		p.errorAt(p.current, "Expected variable name")
		p.synchronize()
	}

	p.skipTrivia()
	var value ast.Expr
	if p.match(token.ASSIGN) {
		p.skipTrivia()
		value = p.parseExpression()
	}

	end := p.previous.Span
	p.skipWhitespaceOnly()
	if p.match(token.SEMICOLON) {
		end = p.previous.Span
	} else if !p.atStatementTerminator() {
		p.errorAt(p.current, "Expected ';'")
		p.synchronize()
	}
	span := token.NewSpan(start.File, start.Start, end.End)
	return ast.NewVariable(span, name, typ, value)
}
