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

package parser_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"rilllang.org/ls/lang/ast"
	"rilllang.org/ls/lang/parser"
	"rilllang.org/ls/lang/scanner"
	"rilllang.org/ls/lang/token"
)

func parse(t *testing.T, src string) (*ast.TranslationUnit, *parser.Parser) {
	t.Helper()
	file := token.NewFile("test.rill", len(src))
	file.SetLinesForContent([]byte(src))

	sc := new(scanner.Scanner)
	sc.Init(file, []byte(src), nil)

	p := parser.New(file, sc)
	tu := p.Parse("test.rill")
	return tu, p
}

// TestImportChain covers scenario 1.
func TestImportChain(t *testing.T) {
	src := "import std::io;"
	tu, p := parse(t, src)

	if p.HadError() {
		t.Fatalf("unexpected parse error(s): %v", p.Errors())
	}
	if len(tu.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(tu.Declarations))
	}

	imp, ok := tu.Declarations[0].(*ast.Import)
	if !ok {
		t.Fatalf("declaration is %T, want *ast.Import", tu.Declarations[0])
	}

	if got, want := imp.PathString(), "std::io"; got != want {
		t.Errorf("PathString = %q, want %q", got, want)
	}
	if diff := cmp.Diff(token.NewSpan(tu.File, 0, 15), imp.Span()); diff != "" {
		t.Errorf("import span mismatch (-want +got):\n%s", diff)
	}

	std := imp.Paths[0][0]
	io := imp.Paths[0][1]
	if diff := cmp.Diff(token.NewSpan(tu.File, 7, 10), std.Span()); diff != "" {
		t.Errorf(`"std" span mismatch (-want +got):\n%s`, diff)
	}
	if diff := cmp.Diff(token.NewSpan(tu.File, 12, 14), io.Span()); diff != "" {
		t.Errorf(`"io" span mismatch (-want +got):\n%s`, diff)
	}

	node := tu.FindNodeAtPosition(0, 7)
	if _, ok := node.(*ast.Identifier); !ok {
		t.Errorf("FindNodeAtPosition((0,7)) = %T, want *ast.Identifier", node)
	}
}

// TestStructWithInlineMember covers scenario 2.
func TestStructWithInlineMember(t *testing.T) {
	src := "struct Base { int x; inline Point pos; }"
	tu, p := parse(t, src)

	if p.HadError() {
		t.Fatalf("unexpected parse error(s): %v", p.Errors())
	}
	if len(tu.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(tu.Declarations))
	}

	st, ok := tu.Declarations[0].(*ast.Struct)
	if !ok {
		t.Fatalf("declaration is %T, want *ast.Struct", tu.Declarations[0])
	}
	if st.Name != "Base" {
		t.Errorf("Name = %q, want %q", st.Name, "Base")
	}
	if st.IsUnion {
		t.Errorf("IsUnion = true, want false")
	}
	if len(st.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(st.Members))
	}
	if st.Members[0].Name != "x" || st.Members[0].IsInline {
		t.Errorf("member 0 = %+v, want name=x is_inline=false", st.Members[0])
	}
	if st.Members[1].Name != "pos" || !st.Members[1].IsInline {
		t.Errorf("member 1 = %+v, want name=pos is_inline=true", st.Members[1])
	}
}

// TestRecoveryAcrossDeclarations covers scenario 3.
func TestRecoveryAcrossDeclarations(t *testing.T) {
	src := "struct Bad { invalid } struct Good { int x; }"
	tu, p := parse(t, src)

	if len(tu.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(tu.Declarations))
	}

	good, ok := tu.Declarations[1].(*ast.Struct)
	if !ok {
		t.Fatalf("declaration 1 is %T, want *ast.Struct", tu.Declarations[1])
	}
	if good.Name != "Good" {
		t.Errorf("Name = %q, want %q", good.Name, "Good")
	}
	if len(good.Members) != 1 {
		t.Errorf("got %d members, want 1", len(good.Members))
	}
	if !p.HadError() {
		t.Errorf("expected at least one recorded error for the malformed first struct")
	}
}

// TestMissingSemicolon covers scenario 4: the parser must not lock
// up in error-recovery mode, and both declarations must be recognized.
func TestMissingSemicolon(t *testing.T) {
	src := "int x = 42\nint y = 24;"
	tu, p := parse(t, src)

	if len(tu.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2 (parse errors: %v)", len(tu.Declarations), p.Errors())
	}

	x, ok := tu.Declarations[0].(*ast.Variable)
	if !ok || x.Name != "x" {
		t.Errorf("declaration 0 = %#v, want Variable named x", tu.Declarations[0])
	}
	y, ok := tu.Declarations[1].(*ast.Variable)
	if !ok || y.Name != "y" {
		t.Errorf("declaration 1 = %#v, want Variable named y", tu.Declarations[1])
	}
}

// TestLineMap covers scenario 5.
func TestLineMap(t *testing.T) {
	src := "import std::io;\nstruct Point {\n  int x;\n  int y;\n}"
	tu, _ := parse(t, src)

	wantStarts := []int{0, 16, 31, 40, 49}
	for i, want := range wantStarts {
		if got := tu.File.LineStart(i + 1); got != want {
			t.Errorf("LineStart(%d) = %d, want %d", i+1, got, want)
		}
	}

	line, col := tu.File.OffsetToLineCol(23)
	if line != 1 || col != 7 {
		t.Errorf("OffsetToLineCol(23) = (%d,%d), want (1,7)", line, col)
	}
}

// TestFindNodeAtPositionOnIdentifier exercises the behavioral law: any
// identifier's first byte resolves to an Identifier node whose name
// matches the lexeme.
func TestFindNodeAtPositionOnIdentifier(t *testing.T) {
	src := "fn main() { x; }"
	tu, p := parse(t, src)
	if p.HadError() {
		t.Fatalf("unexpected parse error(s): %v", p.Errors())
	}

	node := tu.FindNodeAtPosition(0, 12)
	ident, ok := node.(*ast.Identifier)
	if !ok {
		t.Fatalf("FindNodeAtPosition((0,12)) = %T, want *ast.Identifier", node)
	}
	if ident.Name != "x" {
		t.Errorf("Name = %q, want %q", ident.Name, "x")
	}
}

// TestParseNeverLoopsForever is a bounded-progress smoke test: a run of
// pure garbage tokens must still terminate.
func TestParseNeverLoopsForever(t *testing.T) {
	src := ")))}}}{{{:::,,,"
	done := make(chan struct{})
	go func() {
		parse(t, src)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Parse did not terminate on malformed input")
	}
}
