// Copyright 2025 CUE Authors
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

package cache_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"rilllang.org/ls/lang/errors"
	"rilllang.org/ls/lsp/cache"
)

func TestNewSourceFileParsesOnInit(t *testing.T) {
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", "import std::io;\n", 1)
	qt.Assert(t, qt.IsFalse(f.HadError()))
	qt.Assert(t, qt.Equals(len(f.AST().Declarations), 1))
}

func TestApplyTextChangesFullDocumentReparses(t *testing.T) {
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", "import std::io;\n", 1)
	err := f.ApplyTextChanges([]cache.TextChange{
		{Full: true, Text: "import std::fmt;\n"},
	}, 2)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(f.Version(), int32(2)))
	qt.Assert(t, qt.IsTrue(strings.Contains(f.Content(), "std::fmt")))
}

// TestApplyTextChangesIncremental mirrors scenario 6: replacing
// "int x" with "int y" inside a struct body via a range edit.
func TestApplyTextChangesIncremental(t *testing.T) {
	content := "import foo;\nstruct Point { int x; }\n"
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", content, 1)

	err := f.ApplyTextChanges([]cache.TextChange{
		{
			Start: cache.Position{Line: 1, Character: 15},
			End: cache.Position{Line: 1, Character: 20},
			Text: "int y",
		},
	}, 2)

	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(f.Version(), int32(2)))
	qt.Assert(t, qt.IsTrue(strings.Contains(f.Content(), "int y")))
	qt.Assert(t, qt.IsFalse(strings.Contains(f.Content(), "int x")))
}

func TestApplyTextChangesOverlappingRejected(t *testing.T) {
	content := "struct Point { int x; int y; }\n"
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", content, 1)

	err := f.ApplyTextChanges([]cache.TextChange{
		{Start: cache.Position{Line: 0, Character: 0}, End: cache.Position{Line: 0, Character: 10}, Text: "a"},
		{Start: cache.Position{Line: 0, Character: 5}, End: cache.Position{Line: 0, Character: 15}, Text: "b"},
	}, 2)

	qt.Assert(t, qt.ErrorIs(err, errors.InvalidRange))
	qt.Assert(t, qt.Equals(f.Content(), content))
	qt.Assert(t, qt.Equals(f.Version(), int32(1)))
}

func TestApplyTextChangesInvalidRangeLeavesContentUntouched(t *testing.T) {
	content := "import foo;\n"
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", content, 1)

	err := f.ApplyTextChanges([]cache.TextChange{
		{Start: cache.Position{Line: 5, Character: 0}, End: cache.Position{Line: 6, Character: 0}, Text: "x"},
	}, 2)

	qt.Assert(t, qt.ErrorIs(err, errors.InvalidRange))
	qt.Assert(t, qt.Equals(f.Content(), content))
	qt.Assert(t, qt.Equals(f.Version(), int32(1)))
}

func TestGetCompletionsRequiresAst(t *testing.T) {
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", "import std::io;\n", 1)
	out, err := f.GetCompletionsAtPosition(cache.Position{}, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(out) > 0))
}

func TestGetHoverInfoIdentifier(t *testing.T) {
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", "import std::io;\n", 1)
	info, err := f.GetHoverInfo(cache.Position{Line: 0, Character: 7})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(info, "Identifier: std"))
}

func TestGetHoverInfoInvalidPosition(t *testing.T) {
	f := cache.NewSourceFile("/a.rill", "file:///a.rill", "import std::io;\n", 1)
	_, err := f.GetHoverInfo(cache.Position{Line: 50, Character: 0})
	qt.Assert(t, qt.ErrorIs(err, errors.InvalidPosition))
}
