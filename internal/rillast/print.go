// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rillast renders an AST subtree as a deterministic, indented
// text tree for golden tests and the `rillls dump` subcommand. It is a
// structural debug dump, not a source-fidelity pretty-printer: there is
// no attempt to reproduce the original formatting of the parsed file,
// unlike the corpus's own ast/print.go which exists to re-emit valid
// CUE source.
package rillast

import (
	"fmt"
	"io"
	"strings"

	"rilllang.org/ls/lang/ast"
)

// Sprint renders node and its descendants as a multi-line string, one
// node per line, in the form:
//
//	KIND @[start,end) "label"
//
// with each child indented two spaces further than its parent.
func Sprint(node ast.Node) string {
	var b strings.Builder
	Fprint(&b, node)
	return b.String()
}

// Fprint writes the same rendering Sprint returns to w.
func Fprint(w io.Writer, node ast.Node) {
	fprint(w, node, 0)
}

func fprint(w io.Writer, node ast.Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	span := node.Span()
	fmt.Fprintf(w, "%s%s @[%d,%d) %s\n", indent, node.Kind(), span.Start, span.End, quoteLabel(label(node)))
	for _, child := range node.Children() {
		fprint(w, child, depth+1)
	}
}

// label extracts the short, node-kind-specific text a reader would use
// to recognize this node at a glance: an identifier's name, a
// literal's lexeme, a declaration's name, or an operator's symbol.
func label(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		return n.Lexeme
	case *ast.BinaryOp:
		return n.Op.String()
	case *ast.UnaryOp:
		return n.Op.String()
	case *ast.Access:
		return "." + n.Member
	case *ast.Function:
		return n.Name
	case *ast.Variable:
		return n.Name
	case *ast.Constant:
		return n.Name
	case *ast.Struct:
		return n.Name
	case *ast.Enum:
		return n.Name
	case *ast.Typedef:
		return n.Name
	case *ast.Module:
		return strings.Join(n.Path, "::")
	case *ast.StructMember:
		return n.Name
	case *ast.Import:
		return n.PathString()
	case *ast.TypeIdentifier:
		return n.Name
	case *ast.TranslationUnit:
		return n.Filename
	default:
		return ""
	}
}

func quoteLabel(s string) string {
	if s == "" {
		return `""`
	}
	return fmt.Sprintf("%q", s)
}
