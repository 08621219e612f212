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

// TranslationUnit is the AST root for one parsed source file. Its line
// map and position<->offset conversions live on the underlying
// token.File (Span().File), reached via File.
type TranslationUnit struct {
	base
	Filename     string
	File         *token.File
	Declarations []Decl
}

// NewTranslationUnit creates an (initially empty) root node for file,
// spanning the whole source. Declarations are appended with AddDecl as
// the parser produces them.
func NewTranslationUnit(file *token.File) *TranslationUnit {
	return &TranslationUnit{
		base:     base{kind: TranslationUnitNode, span: token.NewSpan(file, 0, file.Size())},
		Filename: file.Name(),
		File:     file,
	}
}

// AddDecl appends decl to the translation unit and attaches it as decl's
// parent.
func (n *TranslationUnit) AddDecl(decl Decl) {
	if decl == nil {
		return
	}
	n.Declarations = append(n.Declarations, decl)
	attachAll(n, decl)
}

func (n *TranslationUnit) Children() []Node {
	out := make([]Node, 0, len(n.Declarations))
	for _, d := range n.Declarations {
		out = append(out, nonNil(d)...)
	}
	return out
}
