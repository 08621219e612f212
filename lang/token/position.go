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

package token

import (
	"fmt"
	"sort"
)

// Position describes an arbitrary and printable source position within a
// file, including byte offset, line, and column.
//
// A Position is valid if Line > 0.
type Position struct {
	Filename string
	Offset   int // byte offset, starting at 0
	Line     int // line number, starting at 1
	Column   int // byte column within the line, starting at 1
}

// IsValid reports whether the position is valid.
func (pos *Position) IsValid() bool { return pos.Line > 0 }

// String returns a human-readable form of a position.
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Pos is a compact, comparable source position: a file plus a byte offset
// into it. The zero Pos (NoPos) carries no file and is always invalid.
type Pos struct {
	file   *File
	offset int
}

// NoPos is the zero value for Pos.
var NoPos = Pos{}

// IsValid reports whether p refers to a file.
func (p Pos) IsValid() bool { return p.file != nil }

// File returns the file containing p, or nil for NoPos.
func (p Pos) File() *File { return p.file }

// Offset reports the byte offset of p within its file.
func (p Pos) Offset() int { return p.offset }

// Add returns the position n bytes after p.
func (p Pos) Add(n int) Pos {
	return Pos{p.file, p.offset + n}
}

// Position unpacks p into a filename/line/column triple. The zero
// Position is returned for NoPos.
func (p Pos) Position() Position {
	if p.file == nil {
		return Position{}
	}
	return p.file.Position(p.offset)
}

// String renders p as a human-readable position.
func (p Pos) String() string {
	return p.Position().String()
}

// Compare returns -1, 0, or +1 if p sorts before, the same position as,
// or after q. NoPos sorts after every valid position.
func (p Pos) Compare(q Pos) int {
	switch {
	case p.file == q.file && p.offset == q.offset:
		return 0
	case p.file == nil:
		return +1
	case q.file == nil:
		return -1
	case p.file != q.file:
		if p.file.name < q.file.name {
			return -1
		}
		return +1
	case p.offset < q.offset:
		return -1
	default:
		return +1
	}
}

// Span is a half-open byte range [Start, End) within File. The File
// pointer serves as the file identity; Start <= End always holds for a
// well-formed Span.
type Span struct {
	File  *File
	Start int
	End   int
}

// NoSpan is the zero Span; it carries no file.
var NoSpan = Span{}

// IsValid reports whether s refers to a file.
func (s Span) IsValid() bool { return s.File != nil }

// Pos returns the starting position of s as a Pos.
func (s Span) Pos() Pos { return Pos{file: s.File, offset: s.Start} }

// EndPos returns the position immediately after s as a Pos.
func (s Span) EndPos() Pos { return Pos{file: s.File, offset: s.End} }

// Len returns the byte length of the span.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether the half-open span contains byte offset off,
// i.e. off is in [s.Start, s.End).
func (s Span) Contains(off int) bool { return s.Start <= off && off < s.End }

// NewSpan builds a Span from a file and a pair of byte offsets.
func NewSpan(f *File, start, end int) Span { return Span{File: f, Start: start, End: end} }

// Lexeme is one scanned token: its kind, its span, and the literal text
// of source it came from (`(kind, span, lexeme, data)` tuple,
// minus `data` — numeric/string/char values are recovered from Text by
// the parser and scanner helpers rather than bundled here, since Go's
// scanner has no natural tagged-union slot for a heterogeneous payload).
type Lexeme struct {
	Kind Token
	Span Span
	Text string
}

// IsName reports whether the lexeme is one of the three plain
// identifier lexical families usable as a name (IDENT, TYPE_IDENT,
// CONST_IDENT).
func (t Lexeme) IsName() bool {
	switch t.Kind {
	case IDENT, TYPE_IDENT, CONST_IDENT:
		return true
	}
	return false
}

// A File tracks a source file's name, size, and line-start offset
// table (its "line map"), used to convert between byte offsets and
// (line, column) positions.
type File struct {
	name string
	size int

	// lines[i] is the byte offset of the first character of line i+1
	// (0-based slice, 1-based line numbering). lines[0] == 0 always.
	lines []int
}

// NewFile creates a File for the given name and source size. The line
// map holds only line 1 (offset 0) until SetLinesForContent fills it.
func NewFile(filename string, size int) *File {
	return &File{name: filename, size: size, lines: []int{0}}
}

// Name returns the file's name.
func (f *File) Name() string { return f.name }

// Size returns the file's byte length.
func (f *File) Size() int { return f.size }

// SetLinesForContent (re)builds the line map by scanning src for '\n'
// bytes: the map always starts at offset 0, and each '\n' found at
// byte i contributes an entry for the line starting at i+1.
func (f *File) SetLinesForContent(src []byte) {
	lines := make([]int, 1, 64)
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	f.lines = lines
	f.size = len(src)
}

// LineCount returns the number of lines recorded in the line map
// (always the source's newline count + 1).
func (f *File) LineCount() int { return len(f.lines) }

// LineStart returns the byte offset of the first character of the given
// 1-based line number, clamped to the file's size.
func (f *File) LineStart(line int) int {
	switch {
	case line < 1:
		line = 1
	case line > len(f.lines):
		return f.size
	}
	return f.lines[line-1]
}

// fixOffset clamps offset into [0, f.size].
func (f *File) fixOffset(offset int) int {
	switch {
	case offset < 0:
		return 0
	case offset > f.size:
		return f.size
	default:
		return offset
	}
}

// unpackOffset finds the greatest 1-based line L with LineStart(L) <=
// offset via binary search over the line map, then returns the
// (line, column) pair.
func (f *File) unpackOffset(offset int) (line, column int) {
	offset = f.fixOffset(offset)
	// sort.Search finds the first index i for which lines[i] > offset;
	// the containing line is i-1 (0-based), i.e. line number i (1-based).
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset })
	line = i
	column = offset - f.lines[i-1] + 1
	return line, column
}

// Position returns the full Position for a byte offset in this file.
func (f *File) Position(offset int) Position {
	line, col := f.unpackOffset(offset)
	return Position{Filename: f.name, Offset: f.fixOffset(offset), Line: line, Column: col}
}

// Pos returns the compact Pos for a byte offset in this file.
func (f *File) Pos(offset int) Pos {
	return Pos{file: f, offset: f.fixOffset(offset)}
}

// OffsetLine returns the 1-based line number containing offset.
func (f *File) OffsetLine(offset int) int {
	line, _ := f.unpackOffset(offset)
	return line
}

// LineColToOffset implements position_to_offset: 0-based
// (line, column) to byte offset, clamping past-EOL and past-EOF
// positions as the spec requires ("this clamping is load-bearing for
// LSP positions past EOL").
func (f *File) LineColToOffset(line, col int) int {
	// spec positions are 0-based; the internal line map is 1-based.
	l := line + 1
	if l > len(f.lines) {
		return f.size
	}
	start := f.lines[l-1]
	off := start + col
	if off > f.size {
		off = f.size
	}
	return off
}

// OffsetToLineCol implements offset_to_position: byte offset
// to 0-based (line, column).
func (f *File) OffsetToLineCol(offset int) (line, col int) {
	l, c := f.unpackOffset(offset)
	return l - 1, c - 1
}
