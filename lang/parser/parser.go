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

// Package parser implements a panic-mode recursive-descent parser that
// turns a token stream into a fully parented AST.
//
// Diagnostics never escape a parse: every syntax error is recorded on
// the parser's error list and recovered from via synchronize, following
// the corpus's own posError/list accumulation style (cue/parser) rather
// than propagating exceptions or early-return errors up the call stack.
package parser

import (
	"rilllang.org/ls/lang/ast"
	rillerrors "rilllang.org/ls/lang/errors"
	"rilllang.org/ls/lang/token"
)

// Lexer is the token source a Parser consumes. *scanner.Scanner
// satisfies it; tests may substitute a canned token stream.
type Lexer interface {
	Scan() token.Lexeme
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithMaxErrors overrides the default cap of 100 recorded errors before
// further diagnostics are suppressed (parsing itself never aborts).
func WithMaxErrors(n int) Option {
	return func(p *Parser) { p.maxErrors = n }
}

// Parser holds all state for one parse of one file.
type Parser struct {
	file *token.File
	lex  Lexer

	current  token.Lexeme
	previous token.Lexeme

	hadError  bool
	panicMode bool

	errorCount int
	maxErrors  int

	errors rillerrors.List
}

// New creates a Parser reading from lex over file. Construction primes
// current by advancing once.
func New(file *token.File, lex Lexer, opts ...Option) *Parser {
	p := &Parser{file: file, lex: lex, maxErrors: 100}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	return p
}

// HadError reports whether any syntax error was recorded.
func (p *Parser) HadError() bool { return p.hadError }

// ErrorCount reports how many syntax errors were recorded (capped
// reporting past maxErrors does not stop this counter).
func (p *Parser) ErrorCount() int { return p.errorCount }

// Errors returns the accumulated, never-propagated diagnostic list.
func (p *Parser) Errors() rillerrors.List { return p.errors }

// advance pulls the next non-invalid token into current, reporting
// "Invalid token" for each INVALID_TOKEN encountered along the way.
func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lex.Scan()
		if p.current.Kind != token.INVALID_TOKEN {
			break
		}
		p.errorAt(p.current, "Invalid token")
	}
}

// skipTrivia advances past WHITESPACE, NEWLINE and COMMENT tokens.
// Every declaration, struct-member, and import-path entry point calls
// this first.
func (p *Parser) skipTrivia() {
	for p.current.Kind == token.WHITESPACE || p.current.Kind == token.NEWLINE || p.current.Kind == token.COMMENT {
		p.advance()
	}
}

// skipWhitespaceOnly advances past WHITESPACE and COMMENT tokens but
// leaves NEWLINE in place. Expression continuation points (deciding whether a binary
// operator or postfix suffix follows) use this instead of skipTrivia:
// a bare newline is one of the implicit statement/declaration
// terminators (missing-';' recovery rule), and silently
// skipping it while scanning for a continuation would swallow that
// signal before the caller ever sees it.
func (p *Parser) skipWhitespaceOnly() {
	for p.current.Kind == token.WHITESPACE || p.current.Kind == token.COMMENT {
		p.advance()
	}
}

// checkKeyword reports whether current is an IDENT-kind token whose lexeme
// equals kw (the target language has no lexically reserved words).
func (p *Parser) checkKeyword(kw string) bool {
	return p.current.Kind == token.IDENT && p.current.Text == kw
}

// matchKeyword consumes current if it is the keyword kw, reporting
// whether it did.
func (p *Parser) matchKeyword(kw string) bool {
	if p.checkKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(k token.Token) bool { return p.current.Kind == k }

func (p *Parser) match(k token.Token) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// errorAt records a diagnostic at lex's position, suppressing cascades
// while panicMode is set.
func (p *Parser) errorAt(lex token.Lexeme, msg string) {
	if p.panicMode {
		return
	}
	p.errorCount++
	p.hadError = true
	p.panicMode = true
	if p.errorCount <= p.maxErrors {
		p.errors.AddNewf(lex.Span.Pos(), "%s (got %q)", msg, lex.Text)
	}
}

// expect consumes current if it matches k, else records an error and
// leaves current untouched for recovery to handle.
func (p *Parser) expect(k token.Token, what string) (token.Lexeme, bool) {
	if p.check(k) {
		tok := p.current
		p.advance()
		return tok, true
	}
	p.errorAt(p.current, "Expected "+what)
	return token.Lexeme{}, false
}

// declKeywords is the set of leading keywords synchronize treats as a
// safe resumption point after a parse error.
var declKeywords = map[string]bool{
	"fn": true, "struct": true, "union": true, "enum": true,
	"const": true, "module": true, "import": true,
	"if": true, "while": true, "for": true, "switch": true,
	"return": true, "break": true, "continue": true, "defer": true,
}

// synchronize discards tokens until it reaches a statement boundary
// (a consumed ';' or '}') or the lexeme of a declaration/statement
// keyword, so the next parse attempt resumes from clean ground.
func (p *Parser) synchronize() {
	p.panicMode = false
	for {
		if p.previous.Kind == token.SEMICOLON || p.previous.Kind == token.RBRACE {
			return
		}
		switch p.current.Kind {
		case token.LBRACE, token.RBRACE, token.EOF:
			return
		case token.IDENT:
			if declKeywords[p.current.Text] {
				return
			}
		}
		p.advance()
	}
}

// Parse is the entry point ("parse(filename)"): it builds the
// TranslationUnit and drives declaration parsing with the livelock
// guard, returning the resulting root node.
func (p *Parser) Parse(filename string) *ast.TranslationUnit {
	tu := ast.NewTranslationUnit(p.file)
	tu.Filename = filename

	for {
		p.skipTrivia()
		if p.current.Kind == token.EOF {
			break
		}

		before := p.current.Span.Start
		decl := p.parseDeclaration()
		if decl != nil {
			tu.AddDecl(decl)
		}
		if p.panicMode {
			p.synchronize()
		}
		if p.current.Span.Start == before {
			p.errorAt(p.current, "Unexpected token, skipping")
			p.advance()
		}
	}
	return tu
}

// parseDeclaration dispatches on the leading keyword lexeme, with the
// module and typedef forms folded in alongside the core set.
func (p *Parser) parseDeclaration() ast.Decl {
	p.skipTrivia()
	switch {
	case p.checkKeyword("import"):
		return p.parseImport()
	case p.checkKeyword("fn"):
		return p.parseFunction()
	case p.checkKeyword("struct"), p.checkKeyword("union"):
		return p.parseStructOrUnion()
	case p.checkKeyword("enum"):
		return p.parseEnum()
	case p.checkKeyword("const"):
		return p.parseConst()
	case p.checkKeyword("module"):
		return p.parseModule()
	case p.checkKeyword("typedef"):
		return p.parseTypedef()
	default:
		return p.parseVariable()
	}
}
