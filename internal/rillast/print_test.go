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

package rillast_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rilllang.org/ls/internal/rillast"
	"rilllang.org/ls/lang/ast"
	"rilllang.org/ls/lang/token"
)

func TestSprintIndentsChildren(t *testing.T) {
	f := token.NewFile("t.rill", 5)
	left := ast.NewIdentifier(token.NewSpan(f, 0, 1), "a")
	right := ast.NewIdentifier(token.NewSpan(f, 4, 5), "b")
	bin := ast.NewBinaryOp(token.NewSpan(f, 0, 5), token.ADD, left, right)

	got := rillast.Sprint(bin)
	want := strings.Join([]string{
		`BINARY_OP @[0,5) "+"`,
		`  IDENTIFIER @[0,1) "a"`,
		`  IDENTIFIER @[4,5) "b"`,
		``,
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sprint mismatch (-want +got):\n%s", diff)
	}
}

func TestSprintLeafHasNoChildren(t *testing.T) {
	f := token.NewFile("t.rill", 1)
	lit := ast.NewLiteral(token.NewSpan(f, 0, 1), "1", ast.LiteralValue{ValueKind: ast.IntValue})

	got := rillast.Sprint(lit)
	if strings.Count(got, "\n") != 1 {
		t.Errorf("expected exactly one line for a leaf node, got %q", got)
	}
}
