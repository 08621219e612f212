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

// Decl is implemented by every declaration node.
type Decl interface {
	Node
	declNode()
}

func (*Function) declNode() {}
func (*Variable) declNode() {}
func (*Constant) declNode() {}
func (*Struct) declNode()   {}
func (*Enum) declNode()     {}
func (*Typedef) declNode()  {}
func (*Import) declNode()   {}
func (*Module) declNode()   {}

// Param is a single function parameter.
type Param struct {
	Name string
	Type Type
}

type Function struct {
	base
	Name   string
	Params []Param
	Ret    Type // nil when absent
	Body   *Compound
}

func NewFunction(span token.Span, name string, params []Param, ret Type, body *Compound) *Function {
	n := &Function{base: base{kind: FunctionDecl, span: span}, Name: name, Params: params, Ret: ret, Body: body}
	for _, p := range params {
		attachAll(n, p.Type)
	}
	attachAll(n, ret)
	if body != nil {
		attachAll(n, body)
	}
	return n
}

func (n *Function) Children() []Node {
	out := make([]Node, 0, len(n.Params)+2)
	for _, p := range n.Params {
		out = append(out, nonNil(p.Type)...)
	}
	out = append(out, nonNil(n.Ret)...)
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

type Variable struct {
	base
	Name  string
	Type  Type // nil when inferred
	Value Expr // nil when absent
}

func NewVariable(span token.Span, name string, typ Type, value Expr) *Variable {
	n := &Variable{base: base{kind: VariableDecl, span: span}, Name: name, Type: typ, Value: value}
	attachAll(n, typ, value)
	return n
}

func (n *Variable) Children() []Node { return nonNil(n.Type, n.Value) }

type Constant struct {
	base
	Name  string
	Type  Type
	Value Expr
}

func NewConstant(span token.Span, name string, typ Type, value Expr) *Constant {
	n := &Constant{base: base{kind: ConstantDecl, span: span}, Name: name, Type: typ, Value: value}
	attachAll(n, typ, value)
	return n
}

func (n *Constant) Children() []Node { return nonNil(n.Type, n.Value) }

// StructMember is a single member of a Struct/union declaration.
type StructMember struct {
	base
	Type     Type
	Name     string
	IsInline bool
}

func NewStructMember(span token.Span, typ Type, name string, isInline bool) *StructMember {
	n := &StructMember{base: base{kind: StructMemberNode, span: span}, Type: typ, Name: name, IsInline: isInline}
	attachAll(n, typ)
	return n
}

func (n *StructMember) Children() []Node { return nonNil(n.Type) }

type Struct struct {
	base
	Name    string
	IsUnion bool
	Members []*StructMember
}

func NewStruct(span token.Span, name string, isUnion bool, members []*StructMember) *Struct {
	n := &Struct{base: base{kind: StructDecl, span: span}, Name: name, IsUnion: isUnion, Members: members}
	for _, m := range members {
		attachAll(n, m)
	}
	return n
}

func (n *Struct) Children() []Node {
	out := make([]Node, 0, len(n.Members))
	for _, m := range n.Members {
		out = append(out, nonNil(m)...)
	}
	return out
}

// EnumMember is a single `name` or `name = value` entry in an Enum.
type EnumMember struct {
	Name  string
	Value Expr // nil when the value is implicit
}

type Enum struct {
	base
	Name    string
	Members []EnumMember
}

func NewEnum(span token.Span, name string, members []EnumMember) *Enum {
	n := &Enum{base: base{kind: EnumDecl, span: span}, Name: name, Members: members}
	for _, m := range members {
		attachAll(n, m.Value)
	}
	return n
}

func (n *Enum) Children() []Node {
	out := make([]Node, 0, len(n.Members))
	for _, m := range n.Members {
		out = append(out, nonNil(m.Value)...)
	}
	return out
}

type Typedef struct {
	base
	Name string
	Type Type
}

func NewTypedef(span token.Span, name string, typ Type) *Typedef {
	n := &Typedef{base: base{kind: TypedefDecl, span: span}, Name: name, Type: typ}
	attachAll(n, typ)
	return n
}

func (n *Typedef) Children() []Node { return nonNil(n.Type) }

// Import is an `import a::b::c, d::e;` declaration. Paths holds one
// ordered list of *Identifier per comma-separated path.
type Import struct {
	base
	Paths [][]*Identifier
}

func NewImport(span token.Span, paths [][]*Identifier) *Import {
	n := &Import{base: base{kind: ImportDecl, span: span}, Paths: paths}
	for _, path := range paths {
		for _, ident := range path {
			attachAll(n, ident)
		}
	}
	return n
}

func (n *Import) Children() []Node {
	out := make([]Node, 0)
	for _, path := range n.Paths {
		for _, ident := range path {
			out = append(out, nonNil(ident)...)
		}
	}
	return out
}

// PathString reconstructs the "a::b::c" textual form of the first path,
// or joins multiple comma-separated paths with ", " (scenario 1).
func (n *Import) PathString() string {
	out := ""
	for pi, path := range n.Paths {
		if pi > 0 {
			out += ", "
		}
		for i, ident := range path {
			if i > 0 {
				out += "::"
			}
			out += ident.Name
		}
	}
	return out
}

// Module is a `module a::b [@ version];` declaration.
type Module struct {
	base
	Path    []string
	Version string // empty when absent
}

func NewModule(span token.Span, path []string, version string) *Module {
	return &Module{base: base{kind: ModuleDecl, span: span}, Path: path, Version: version}
}

func (n *Module) Children() []Node { return nil }
