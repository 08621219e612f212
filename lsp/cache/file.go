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

// Package cache holds the in-memory document model: a single open
// source file (SourceFile) and the project-wide index over all open
// files (Project). Neither type touches the filesystem or a network
// transport; both are pure in-memory state machines driven by the
// textDocument/* notifications a surrounding server receives.
package cache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"rilllang.org/ls/lang/ast"
	rillerrors "rilllang.org/ls/lang/errors"
	"rilllang.org/ls/lang/parser"
	"rilllang.org/ls/lang/scanner"
	"rilllang.org/ls/lang/token"
)

// completionKeywords is the static keyword list GetCompletionsAtPosition
// appends regardless of cursor position.
var completionKeywords = []string{
	"struct", "union", "enum", "fn", "macro", "const", "var",
	"if", "else", "while", "for", "foreach", "switch", "case", "default",
	"return", "break", "continue", "defer", "import", "module",
}

// TextChange is one incremental edit: a half-open [Start, End) position
// range to replace with Text. Full set to true denotes a full-document
// replacement instead, ignoring Start/End.
type TextChange struct {
	Full  bool
	Start Position
	End   Position
	Text  string
}

// Position is a 0-based (line, character) pair; character counts UTF-8
// bytes within the line.
type Position struct {
	Line      int
	Character int
}

// SourceFile is one open document: its identity, its current text, the
// AST produced by the most recent parse, and that parse's error
// summary.
type SourceFile struct {
	id      string // session-scoped identity, fresh on every add_or_update_file
	path    string
	uri     string
	content string
	version int32

	ast        *ast.TranslationUnit
	hadError   bool
	errorCount int
	parseErrs  rillerrors.List
}

// NewSourceFile copies the given strings into a fresh SourceFile,
// assigns it a fresh session-scoped id, and performs the initial
// parse.
func NewSourceFile(path, uri, content string, version int32) *SourceFile {
	f := &SourceFile{
		id:      uuid.NewString(),
		path:    path,
		uri:     uri,
		content: content,
		version: version,
	}
	f.parse()
	return f
}

// ID returns the session-scoped identity assigned at construction.
func (f *SourceFile) ID() string { return f.id }

// Path returns the file's canonical path key.
func (f *SourceFile) Path() string { return f.path }

// URI returns the file's client-facing URI key.
func (f *SourceFile) URI() string { return f.uri }

// Content returns the current full text.
func (f *SourceFile) Content() string { return f.content }

// Version returns the current document version.
func (f *SourceFile) Version() int32 { return f.version }

// AST returns the most recent parse's translation unit. A parse runs
// at construction and always produces one, so the result is never nil
// for a SourceFile built by this package.
func (f *SourceFile) AST() *ast.TranslationUnit { return f.ast }

// HadError reports whether the most recent parse recorded any error.
func (f *SourceFile) HadError() bool { return f.hadError }

// ErrorCount reports how many errors the most recent parse recorded.
func (f *SourceFile) ErrorCount() int { return f.errorCount }

// ParseErrors returns the most recent parse's diagnostic list.
func (f *SourceFile) ParseErrors() rillerrors.List { return f.parseErrs }

// parse builds a fresh Parser over the current content, invokes
// Parse(path), and replaces ast/hadError/errorCount/parseErrs from the
// result.
func (f *SourceFile) parse() {
	file := token.NewFile(f.path, len(f.content))
	file.SetLinesForContent([]byte(f.content))

	sc := new(scanner.Scanner)
	sc.Init(file, []byte(f.content), nil)

	p := parser.New(file, sc)
	f.ast = p.Parse(f.path)
	f.hadError = p.HadError()
	f.errorCount = p.ErrorCount()
	f.parseErrs = p.Errors()
}

// ApplyTextChanges implements apply_text_changes. Invalid
// ranges return InvalidRange and leave content/version untouched.
//
// Incremental-edit ordering (open question, resolved here):
// changes are sorted by (start_line, start_character) descending
// before splicing, so that earlier edits in the list don't shift the
// byte offsets later edits in the list were computed against —
// equivalent to applying them back-to-front. Overlapping ranges are
// rejected with InvalidRange rather than silently producing
// order-dependent results.
func (f *SourceFile) ApplyTextChanges(changes []TextChange, newVersion int32) error {
	if len(changes) == 0 {
		return nil
	}

	if full, ok := lastFullChange(changes); ok {
		f.content = full.Text
		f.version = newVersion
		f.parse()
		return nil
	}

	ranges := make([]byteRange, len(changes))
	for i, c := range changes {
		start, ok1 := f.positionToEditOffset(c.Start)
		end, ok2 := f.positionToEditOffset(c.End)
		if !ok1 || !ok2 || end < start {
			return rillerrors.Wrap(rillerrors.InvalidRange, "change range outside document")
		}
		ranges[i] = byteRange{start: start, end: end, text: c.Text}
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start > ranges[j].start
		}
		return ranges[i].end > ranges[j].end
	})

	for i := 1; i < len(ranges); i++ {
		if ranges[i].end > ranges[i-1].start {
			return rillerrors.Wrap(rillerrors.InvalidRange, "overlapping change ranges")
		}
	}

	content := f.content
	for _, r := range ranges {
		if r.start < 0 || r.end > len(content) || r.start > r.end {
			return rillerrors.Wrap(rillerrors.InvalidRange, "change range outside document")
		}
		content = content[:r.start] + r.text + content[r.end:]
	}

	f.content = content
	f.version = newVersion
	f.parse()
	return nil
}

type byteRange struct {
	start, end int
	text       string
}

func lastFullChange(changes []TextChange) (TextChange, bool) {
	var last TextChange
	found := false
	for _, c := range changes {
		if c.Full {
			last = c
			found = true
		}
	}
	return last, found
}

// positionToEditOffset scans newlines from the start of content to find
// line L's start, clamps the requested character to that line's end,
// and reports false for a line number past the end of the document.
func (f *SourceFile) positionToEditOffset(pos Position) (int, bool) {
	content := f.content
	line := 0
	lineStart := 0
	for line < pos.Line {
		idx := strings.IndexByte(content[lineStart:], '\n')
		if idx < 0 {
			return 0, false
		}
		lineStart += idx + 1
		line++
	}
	lineEnd := len(content)
	if idx := strings.IndexByte(content[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	offset := lineStart + pos.Character
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset, true
}

// GetCompletionsAtPosition appends the static keyword list to out,
// ignoring position. Requires a successful prior parse.
func (f *SourceFile) GetCompletionsAtPosition(_ Position, out []string) ([]string, error) {
	if f.ast == nil {
		return out, rillerrors.Wrap(rillerrors.NoAstDefined, "no AST defined")
	}
	return append(out, completionKeywords...), nil
}

// GetHoverInfo resolves the node at pos and formats a short
// description by node kind.
func (f *SourceFile) GetHoverInfo(pos Position) (string, error) {
	if f.ast == nil {
		return "", rillerrors.Wrap(rillerrors.NoAstDefined, "no AST defined")
	}
	node := f.ast.FindNodeAtPosition(pos.Line, pos.Character)
	if node == nil {
		return "", rillerrors.Wrap(rillerrors.InvalidPosition, "no node at position")
	}
	switch n := node.(type) {
	case *ast.Identifier:
		return fmt.Sprintf("Identifier: %s", n.Name), nil
	case *ast.Function:
		return fmt.Sprintf("Function: %s", n.Name), nil
	case *ast.Struct:
		return fmt.Sprintf("Struct: %s", n.Name), nil
	default:
		return fmt.Sprintf("AST Node: %s", node.Kind()), nil
	}
}
