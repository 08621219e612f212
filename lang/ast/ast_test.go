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

package ast

import (
	"testing"

	"rilllang.org/ls/lang/token"
)

func span(f *token.File, start, end int) token.Span { return token.NewSpan(f, start, end) }

func TestAttachSetsParent(t *testing.T) {
	f := token.NewFile("t.rill", 10)
	left := NewIdentifier(span(f, 0, 1), "a")
	right := NewIdentifier(span(f, 4, 5), "b")
	bin := NewBinaryOp(span(f, 0, 5), token.ADD, left, right)

	if left.Parent() != Node(bin) {
		t.Fatalf("left.Parent() = %v, want bin", left.Parent())
	}
	if right.Parent() != Node(bin) {
		t.Fatalf("right.Parent() = %v, want bin", right.Parent())
	}
	if bin.Parent() != nil {
		t.Fatalf("bin.Parent() = %v, want nil", bin.Parent())
	}
}

func TestTranslationUnitAddDeclWiresParent(t *testing.T) {
	f := token.NewFile("t.rill", 20)
	tu := NewTranslationUnit(f)
	v := NewVariable(span(f, 0, 10), "x", nil, nil)
	tu.AddDecl(v)

	if len(tu.Declarations) != 1 || tu.Declarations[0] != Decl(v) {
		t.Fatalf("declarations = %v", tu.Declarations)
	}
	if v.Parent() != Node(tu) {
		t.Fatalf("v.Parent() = %v, want tu", v.Parent())
	}
}

func TestChildSpanWithinParentSpan(t *testing.T) {
	f := token.NewFile("t.rill", 20)
	left := NewIdentifier(span(f, 2, 3), "a")
	right := NewIdentifier(span(f, 6, 7), "b")
	bin := NewBinaryOp(span(f, 2, 7), token.ADD, left, right)

	for _, c := range bin.Children() {
		if c.Span().Start < bin.Span().Start || c.Span().End > bin.Span().End {
			t.Fatalf("child span %v escapes parent span %v", c.Span(), bin.Span())
		}
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	f := token.NewFile("t.rill", 20)
	tu := NewTranslationUnit(f)
	tu.AddDecl(NewVariable(span(f, 0, 5), "a", nil, NewIdentifier(span(f, 4, 5), "b")))

	count := 0
	Walk(tu, func(Node) bool { count++; return true }, nil)
	if count != 3 { // tu, variable, identifier
		t.Fatalf("Walk visited %d nodes, want 3", count)
	}
}

func TestAttachHelperReparents(t *testing.T) {
	f := token.NewFile("t.rill", 10)
	id := NewIdentifier(span(f, 0, 1), "a")
	tu := NewTranslationUnit(f)

	Attach(tu, id)
	if id.Parent() != Node(tu) {
		t.Fatalf("Attach did not set parent")
	}
}
