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

package ast

import "rilllang.org/ls/lang/token"

// Type is implemented by every type-syntax node.
type Type interface {
	Node
	typeNode()
}

func (*TypeIdentifier) typeNode() {}
func (*PointerType) typeNode()    {}
func (*ArrayType) typeNode()      {}
func (*FunctionType) typeNode()   {}

// TypeIdentifier is a leading type-token reference: IDENT | TYPE_IDENT |
// CONST_IDENT naming a type.
type TypeIdentifier struct {
	base
	Name string
}

func NewTypeIdentifier(span token.Span, name string) *TypeIdentifier {
	return &TypeIdentifier{base: base{kind: TypeIdentifierNode, span: span}, Name: name}
}

func (n *TypeIdentifier) Children() []Node { return nil }

type PointerType struct {
	base
	Elem Type
}

func NewPointerType(span token.Span, elem Type) *PointerType {
	n := &PointerType{base: base{kind: PointerTypeNode, span: span}, Elem: elem}
	attachAll(n, elem)
	return n
}

func (n *PointerType) Children() []Node { return nonNil(n.Elem) }

// ArrayType is `[]T` (Size == nil) or `[N]T` (Size holding the size
// expression).
type ArrayType struct {
	base
	Elem Type
	Size Expr
}

func NewArrayType(span token.Span, elem Type, size Expr) *ArrayType {
	n := &ArrayType{base: base{kind: ArrayTypeNode, span: span}, Elem: elem, Size: size}
	attachAll(n, elem, size)
	return n
}

func (n *ArrayType) Children() []Node { return nonNil(n.Elem, n.Size) }

// FunctionType is `fn(T, T) -> T`.
type FunctionType struct {
	base
	Params []Type
	Ret    Type // nil when absent
}

func NewFunctionType(span token.Span, params []Type, ret Type) *FunctionType {
	n := &FunctionType{base: base{kind: FunctionTypeNode, span: span}, Params: params, Ret: ret}
	for _, p := range params {
		attachAll(n, p)
	}
	attachAll(n, ret)
	return n
}

func (n *FunctionType) Children() []Node {
	out := make([]Node, 0, len(n.Params)+1)
	for _, p := range n.Params {
		out = append(out, nonNil(p)...)
	}
	out = append(out, nonNil(n.Ret)...)
	return out
}

// PoisonedNode is a synthesized placeholder standing in for a
// declaration or type the parser could not recover, distinct from the
// "<error>" expression identifier used inside expression position
// ("POISONED" kind in the closed enumeration).
type PoisonedNode struct {
	base
}

func NewPoisoned(span token.Span) *PoisonedNode {
	return &PoisonedNode{base: base{kind: Poisoned, span: span}}
}

func (n *PoisonedNode) Children() []Node { return nil }
func (*PoisonedNode) declNode() {}
