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

// Package ast declares the types used to represent syntax trees for Rill
// source files.
//
// Every node is one of a fixed, closed set of concrete Go types (Kind
// enumerates them); dispatch is by Kind tag or, equivalently, by Go type
// switch. This deliberately avoids the leading-struct-embedding/pointer-cast
// style of open polymorphism some C-derived parsers use for their AST:
// there is a single common header (kind, span, parent) and the rest of
// each node's payload is exclusively accessible through its own type, so a
// node's Kind uniquely determines which payload fields are reachable
// through it.
package ast

import (
	"github.com/cockroachdb/apd/v3"

	"rilllang.org/ls/lang/token"
)

// Kind tags every node with its position in the closed variant set
// enumerated below.
type Kind int

const (
	Bad Kind = iota
	TranslationUnitNode

	// Expressions
	LiteralExpr
	IdentifierExpr
	BinaryOpExpr
	UnaryOpExpr
	CallExpr
	AccessExpr
	SubscriptExpr
	CastExpr
	TernaryExpr
	InitializerListExpr

	// Statements
	CompoundStmt
	ExpressionStmt
	ReturnStmt
	IfStmt
	WhileStmt
	ForStmt
	ForeachStmt
	SwitchStmt
	CaseClause
	DefaultClause
	BreakStmt
	ContinueStmt
	DeferStmt
	AssertStmt
	DeclarationStmt

	// Declarations
	FunctionDecl
	VariableDecl
	ConstantDecl
	StructDecl
	EnumDecl
	TypedefDecl
	ImportDecl
	ModuleDecl
	StructMemberNode

	// Types
	TypeIdentifierNode
	PointerTypeNode
	ArrayTypeNode
	FunctionTypeNode

	Poisoned
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	Bad:                 "BAD",
	TranslationUnitNode: "TRANSLATION_UNIT",
	LiteralExpr:         "LITERAL",
	IdentifierExpr:      "IDENTIFIER",
	BinaryOpExpr:        "BINARY_OP",
	UnaryOpExpr:         "UNARY_OP",
	CallExpr:            "CALL",
	AccessExpr:          "ACCESS",
	SubscriptExpr:       "SUBSCRIPT",
	CastExpr:            "CAST",
	TernaryExpr:         "TERNARY",
	InitializerListExpr: "INITIALIZER_LIST",
	CompoundStmt:        "COMPOUND",
	ExpressionStmt:      "EXPRESSION_STMT",
	ReturnStmt:          "RETURN",
	IfStmt:              "IF",
	WhileStmt:           "WHILE",
	ForStmt:             "FOR",
	ForeachStmt:         "FOREACH",
	SwitchStmt:          "SWITCH",
	CaseClause:          "CASE",
	DefaultClause:       "DEFAULT",
	BreakStmt:           "BREAK",
	ContinueStmt:        "CONTINUE",
	DeferStmt:           "DEFER",
	AssertStmt:          "ASSERT",
	DeclarationStmt:     "DECLARATION_STMT",
	FunctionDecl:        "FUNCTION",
	VariableDecl:        "VARIABLE",
	ConstantDecl:        "CONSTANT",
	StructDecl:          "STRUCT",
	EnumDecl:            "ENUM",
	TypedefDecl:         "TYPEDEF",
	ImportDecl:          "IMPORT",
	ModuleDecl:          "MODULE",
	StructMemberNode:    "STRUCT_MEMBER",
	TypeIdentifierNode:  "TYPE_IDENTIFIER",
	PointerTypeNode:     "POINTER_TYPE",
	ArrayTypeNode:       "ARRAY_TYPE",
	FunctionTypeNode:    "FUNCTION_TYPE",
	Poisoned:            "POISONED",
}

// Node is implemented by every AST node. Parent is a non-owning (weak,
// lookup-only) reference: the node's owning parent in the tree, or nil
// for the translation unit root.
type Node interface {
	Kind() Kind
	Span() token.Span
	Parent() Node
	// Children returns this node's direct children in structural
	// (left-to-right, declaration) order, for use by generic
	// traversals such as FindNodeAtOffset. It never returns nil
	// elements.
	Children() []Node

	setParent(Node)
}

// base is embedded in every concrete node type and implements the common
// (kind, span, parent) header.
type base struct {
	kind   Kind
	span   token.Span
	parent Node
}

func (b *base) Kind() Kind { return b.kind }
func (b *base) Span() token.Span { return b.span }
func (b *base) Parent() Node { return b.parent }
func (b *base) setParent(p Node) { b.parent = p }

// Attach is the sole parent-(re)assignment entry point outside of the
// constructors in this package. The parser does not call it; it is
// used by tests. Ordinary construction wires parent pointers
// automatically via the NewXxx functions below.
func Attach(parent, child Node) {
	if child != nil {
		child.setParent(parent)
	}
}

func attachAll(parent Node, children ...Node) {
	for _, c := range children {
		if c != nil {
			c.setParent(parent)
		}
	}
}

func nonNil(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// ---------------------------------------------------------------------
// Literal values

// LiteralValueKind distinguishes the payload carried by a Literal node.
type LiteralValueKind int

const (
	IntValue LiteralValueKind = iota
	RealValue
	StringValue
	CharValue
	BoolValue
)

// LiteralValue is the parsed value carried by a Literal expression.
// Numeric values are stored as arbitrary-precision decimals (via apd) so
// that large integer literals and exact decimal reals survive round
// trips through hover text without silent precision loss.
type LiteralValue struct {
	ValueKind LiteralValueKind
	Number    *apd.Decimal // set when ValueKind is IntValue or RealValue
	String    string       // set when ValueKind is StringValue (unescaped)
	Char      rune         // set when ValueKind is CharValue
	Bool      bool         // set when ValueKind is BoolValue
}

// ---------------------------------------------------------------------
// Expressions

type Literal struct {
	base
	Lexeme string
	Value  LiteralValue
}

func NewLiteral(span token.Span, lexeme string, value LiteralValue) *Literal {
	return &Literal{base: base{kind: LiteralExpr, span: span}, Lexeme: lexeme, Value: value}
}

func (n *Literal) Children() []Node { return nil }

// Identifier is used both for genuine identifier expressions and for
// the "<error>"/"<missing>" synthesized placeholders the parser emits
// in place of a name it failed to recover.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(span token.Span, name string) *Identifier {
	return &Identifier{base: base{kind: IdentifierExpr, span: span}, Name: name}
}

func (n *Identifier) Children() []Node { return nil }

// ErrorIdent is the canonical "<error>" placeholder node.
func ErrorIdent(span token.Span) *Identifier { return NewIdentifier(span, "<error>") }

type BinaryOp struct {
	base
	Op    token.Token
	Left  Expr
	Right Expr
}

func NewBinaryOp(span token.Span, op token.Token, left, right Expr) *BinaryOp {
	n := &BinaryOp{base: base{kind: BinaryOpExpr, span: span}, Op: op, Left: left, Right: right}
	attachAll(n, left, right)
	return n
}

func (n *BinaryOp) Children() []Node { return nonNil(n.Left, n.Right) }

type UnaryOp struct {
	base
	Op      token.Token
	Postfix bool // true for postfix ++/--
	Operand Expr
}

func NewUnaryOp(span token.Span, op token.Token, operand Expr, postfix bool) *UnaryOp {
	n := &UnaryOp{base: base{kind: UnaryOpExpr, span: span}, Op: op, Operand: operand, Postfix: postfix}
	attachAll(n, operand)
	return n
}

func (n *UnaryOp) Children() []Node { return nonNil(n.Operand) }

type Call struct {
	base
	Callee Expr
	Args   []Expr
}

func NewCall(span token.Span, callee Expr, args []Expr) *Call {
	n := &Call{base: base{kind: CallExpr, span: span}, Callee: callee, Args: args}
	attachAll(n, callee)
	for _, a := range args {
		attachAll(n, a)
	}
	return n
}

func (n *Call) Children() []Node {
	out := nonNil(n.Callee)
	for _, a := range n.Args {
		out = append(out, nonNil(a)...)
	}
	return out
}

type Access struct {
	base
	Object Expr
	Member string
}

func NewAccess(span token.Span, object Expr, member string) *Access {
	n := &Access{base: base{kind: AccessExpr, span: span}, Object: object, Member: member}
	attachAll(n, object)
	return n
}

func (n *Access) Children() []Node { return nonNil(n.Object) }

type Subscript struct {
	base
	Object Expr
	Index  Expr
}

func NewSubscript(span token.Span, object, index Expr) *Subscript {
	n := &Subscript{base: base{kind: SubscriptExpr, span: span}, Object: object, Index: index}
	attachAll(n, object, index)
	return n
}

func (n *Subscript) Children() []Node { return nonNil(n.Object, n.Index) }

type Cast struct {
	base
	Type    Type
	Operand Expr
}

func NewCast(span token.Span, typ Type, operand Expr) *Cast {
	n := &Cast{base: base{kind: CastExpr, span: span}, Type: typ, Operand: operand}
	attachAll(n, typ, operand)
	return n
}

func (n *Cast) Children() []Node { return nonNil(n.Type, n.Operand) }

type Ternary struct {
	base
	Cond, Then, Else Expr
}

func NewTernary(span token.Span, cond, then, els Expr) *Ternary {
	n := &Ternary{base: base{kind: TernaryExpr, span: span}, Cond: cond, Then: then, Else: els}
	attachAll(n, cond, then, els)
	return n
}

func (n *Ternary) Children() []Node { return nonNil(n.Cond, n.Then, n.Else) }

type InitializerList struct {
	base
	Elements []Expr
}

func NewInitializerList(span token.Span, elements []Expr) *InitializerList {
	n := &InitializerList{base: base{kind: InitializerListExpr, span: span}, Elements: elements}
	for _, e := range elements {
		attachAll(n, e)
	}
	return n
}

func (n *InitializerList) Children() []Node {
	out := make([]Node, 0, len(n.Elements))
	for _, e := range n.Elements {
		out = append(out, nonNil(e)...)
	}
	return out
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

func (*Literal) exprNode()         {}
func (*Identifier) exprNode()      {}
func (*BinaryOp) exprNode()        {}
func (*UnaryOp) exprNode()         {}
func (*Call) exprNode()            {}
func (*Access) exprNode()          {}
func (*Subscript) exprNode()       {}
func (*Cast) exprNode()            {}
func (*Ternary) exprNode()         {}
func (*InitializerList) exprNode() {}
