// Copyright 2025 CUE Authors
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

package cache_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"golang.org/x/tools/txtar"

	"rilllang.org/ls/lang/errors"
	"rilllang.org/ls/lsp/cache"
)

func TestAddOrUpdateFileIndexesBothKeys(t *testing.T) {
	p := cache.NewProject(nil)
	f := p.AddOrUpdateFile("/a.rill", "file:///a.rill", "import foo;\n", 1)

	byPath, err := p.GetFileByPath("/a.rill")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(byPath, f))

	byURI, err := p.GetFileByURI("file:///a.rill")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(byURI, f))

	qt.Assert(t, qt.Equals(p.FileCount(), 1))
}

func TestAddOrUpdateFileReplacesExistingGivesFreshIdentity(t *testing.T) {
	p := cache.NewProject(nil)
	first := p.AddOrUpdateFile("/a.rill", "file:///a.rill", "import foo;\n", 1)
	second := p.AddOrUpdateFile("/a.rill", "file:///a.rill", "import bar;\n", 2)

	qt.Assert(t, qt.Not(qt.Equals(first.ID(), second.ID())))
	qt.Assert(t, qt.Equals(p.FileCount(), 1))

	got, err := p.GetFileByPath("/a.rill")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, second))
}

func TestGetFileByPathNotFound(t *testing.T) {
	p := cache.NewProject(nil)
	_, err := p.GetFileByPath("/missing.rill")
	qt.Assert(t, qt.ErrorIs(err, errors.FileNotFound))
}

func TestUpdateFileContentIsFullDocumentEdit(t *testing.T) {
	p := cache.NewProject(nil)
	p.AddOrUpdateFile("/a.rill", "file:///a.rill", "import foo;\n", 1)

	err := p.UpdateFileContent("file:///a.rill", "import bar;\n", 2)
	qt.Assert(t, qt.IsNil(err))

	f, err := p.GetFileByURI("file:///a.rill")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(f.Content(), "import bar;\n"))
	qt.Assert(t, qt.Equals(f.Version(), int32(2)))
}

func TestRemoveFileByPathClearsBothIndexes(t *testing.T) {
	p := cache.NewProject(nil)
	p.AddOrUpdateFile("/a.rill", "file:///a.rill", "import foo;\n", 1)

	qt.Assert(t, qt.IsNil(p.RemoveFileByPath("/a.rill")))
	qt.Assert(t, qt.Equals(p.FileCount(), 0))

	_, err := p.GetFileByURI("file:///a.rill")
	qt.Assert(t, qt.ErrorIs(err, errors.FileNotFound))
}

func TestRemoveFileByPathMissingIsFileNotFound(t *testing.T) {
	p := cache.NewProject(nil)
	err := p.RemoveFileByPath("/missing.rill")
	qt.Assert(t, qt.ErrorIs(err, errors.FileNotFound))
}

func TestGetAllFilesReflectsIndexContents(t *testing.T) {
	p := cache.NewProject(nil)
	p.AddOrUpdateFile("/a.rill", "file:///a.rill", "import foo;\n", 1)
	p.AddOrUpdateFile("/b.rill", "file:///b.rill", "import bar;\n", 1)

	qt.Assert(t, qt.Equals(len(p.GetAllFiles()), 2))
}

// multiFileFixture is a small multi-file project encoded as a single
// txtar archive, the way the corpus bundles multi-file test fixtures
// in one literal string instead of scattering them across testdata
// files.
const multiFileFixture = `
-- a.rill --
import std::io;
-- b.rill --
struct Point { int x; int y; }
-- c.rill --
fn main() { return 0; }
`

func TestAddOrUpdateFileFromTxtarFixture(t *testing.T) {
	ar := txtar.Parse([]byte(multiFileFixture))
	p := cache.NewProject(nil)

	for _, file := range ar.Files {
		path := "/" + file.Name
		p.AddOrUpdateFile(path, "file://"+path, string(file.Data), 1)
	}

	qt.Assert(t, qt.Equals(p.FileCount(), len(ar.Files)))

	f, err := p.GetFileByPath("/b.rill")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(f.HadError()))
	qt.Assert(t, qt.Equals(len(f.AST().Declarations), 1))
}
