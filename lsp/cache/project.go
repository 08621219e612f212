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

package cache

import (
	"io"
	"log/slog"

	rillerrors "rilllang.org/ls/lang/errors"
)

// Project indexes every currently-open SourceFile by both its
// filesystem path and its client-facing URI. The two indexes must
// agree after every public method returns.
//
// The request loop that drives a Project is single-threaded and
// cooperative: no internal locking is needed.
type Project struct {
	log    *slog.Logger
	byPath map[string]*SourceFile
	byURI  map[string]*SourceFile
}

// NewProject creates an empty index. log may be nil, in which case a
// discarding logger is used, following the corpus's preference for an
// explicit *slog.Logger field over a package-level global.
func NewProject(log *slog.Logger) *Project {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Project{
		log:    log,
		byPath: make(map[string]*SourceFile),
		byURI:  make(map[string]*SourceFile),
	}
}

// AddOrUpdateFile releases any existing entry at path from both
// indexes first, then constructs a fresh SourceFile, inserts it into
// both indexes, and returns it. A removed-and-re-added file gets a new
// identity (a fresh UUID), which is why removal must happen before
// construction rather than updating the existing entry in place.
func (p *Project) AddOrUpdateFile(path, uri, content string, version int32) *SourceFile {
	if existing, ok := p.byPath[path]; ok {
		delete(p.byPath, existing.Path())
		delete(p.byURI, existing.URI())
	}
	f := NewSourceFile(path, uri, content, version)
	p.byPath[path] = f
	p.byURI[uri] = f
	p.log.Info("file indexed", "id", f.ID(), "path", path, "uri", uri, "version", version)
	return f
}

// GetFileByPath looks up a file by its canonical path.
func (p *Project) GetFileByPath(path string) (*SourceFile, error) {
	f, ok := p.byPath[path]
	if !ok {
		return nil, rillerrors.Wrap(rillerrors.FileNotFound, path)
	}
	return f, nil
}

// GetFileByURI looks up a file by its client-facing URI.
func (p *Project) GetFileByURI(uri string) (*SourceFile, error) {
	f, ok := p.byURI[uri]
	if !ok {
		return nil, rillerrors.Wrap(rillerrors.FileNotFound, uri)
	}
	return f, nil
}

// UpdateFileContent applies a single full-document edit, forwarded to
// the file's edit method.
func (p *Project) UpdateFileContent(uri, content string, version int32) error {
	f, err := p.GetFileByURI(uri)
	if err != nil {
		return err
	}
	return f.ApplyTextChanges([]TextChange{{Full: true, Text: content}}, version)
}

// ApplyIncrementalChanges forwards a batch of incremental edits to the
// file's edit method.
func (p *Project) ApplyIncrementalChanges(uri string, changes []TextChange, version int32) error {
	f, err := p.GetFileByURI(uri)
	if err != nil {
		return err
	}
	return f.ApplyTextChanges(changes, version)
}

// RemoveFileByPath removes a file from both indexes.
func (p *Project) RemoveFileByPath(path string) error {
	f, err := p.GetFileByPath(path)
	if err != nil {
		return err
	}
	delete(p.byPath, f.Path())
	delete(p.byURI, f.URI())
	p.log.Info("file removed", "id", f.ID(), "path", f.Path())
	return nil
}

// RemoveFileByURI removes a file from both indexes.
func (p *Project) RemoveFileByURI(uri string) error {
	f, err := p.GetFileByURI(uri)
	if err != nil {
		return err
	}
	delete(p.byPath, f.Path())
	delete(p.byURI, f.URI())
	p.log.Info("file removed", "id", f.ID(), "uri", f.URI())
	return nil
}

// FileCount reports how many files are currently indexed.
func (p *Project) FileCount() int { return len(p.byPath) }

// GetAllFiles returns every indexed file, in no particular order.
func (p *Project) GetAllFiles() []*SourceFile {
	out := make([]*SourceFile, 0, len(p.byPath))
	for _, f := range p.byPath {
		out = append(out, f)
	}
	return out
}
