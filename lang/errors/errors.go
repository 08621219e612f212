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

// Package errors defines the error types shared by the parser, the
// document model, and the project index.
//
// Parse errors (the Error/List types below) are always fully absorbed
// by the parser: they accumulate in a List and never
// surface as a failed function call. Edit/query/transport failures use
// the typed Kind sentinels further down instead, and are returned
// normally so callers can map them to JSON-RPC error codes.
package errors

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"rilllang.org/ls/lang/token"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Error is a single positioned parse error.
type Error interface {
	error
	Position() token.Pos
}

// posError is the concrete Error implementation produced by the parser.
type posError struct {
	pos    token.Pos
	format string
	args   []interface{}
}

func (e *posError) Error() string { return fmt.Sprintf(e.format, e.args...) }
func (e *posError) Position() token.Pos { return e.pos }

// Newf creates an Error at the given position.
func Newf(pos token.Pos, format string, args ...interface{}) Error {
	return &posError{pos: pos, format: format, args: args}
}

// List is an ordered list of parse errors. The zero value is an empty
// list ready to use.
type List []Error

// AddNewf appends a new positioned error to the list.
func (p *List) AddNewf(pos token.Pos, format string, args ...interface{}) {
	*p = append(*p, &posError{pos: pos, format: format, args: args})
}

// Add appends err to the list.
func (p *List) Add(err Error) { *p = append(*p, err) }

// Reset empties the list.
func (p *List) Reset() { *p = (*p)[:0] }

// Len reports the number of errors in the list.
func (p List) Len() int { return len(p) }

// Error implements the error interface. It returns the first error's
// message, followed by "(and N more errors)" when there is more than
// one error, mirroring how the corpus's error list formats itself.
func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
	}
}

// Position reports the position of the first error, or token.NoPos if
// the list is empty.
func (p List) Position() token.Pos {
	if len(p) == 0 {
		return token.NoPos
	}
	return p[0].Position()
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Sort orders the list by position, placing errors with no position
// first, following the corpus's comparePosWithNoPosFirst convention.
func (p List) Sort() {
	slices.SortFunc(p, func(a, b Error) int {
		return comparePosWithNoPosFirst(a.Position(), b.Position())
	})
}

func comparePosWithNoPosFirst(a, b token.Pos) int {
	switch {
	case a == b:
		return 0
	case a == token.NoPos:
		return -1
	case b == token.NoPos:
		return +1
	default:
		return a.Compare(b)
	}
}

// Print writes each error in the list to w, one per line.
func Print(w io.Writer, list List) {
	for _, e := range list {
		fmt.Fprintln(w, format(e))
	}
}

// Details returns the list rendered the way Print would write it.
func Details(list List) string {
	var b strings.Builder
	Print(&b, list)
	return b.String()
}

func format(e Error) string {
	if pos := e.Position(); pos.IsValid() {
		return fmt.Sprintf("%s: %s", pos, e.Error())
	}
	return e.Error()
}

// Kind is a sentinel identifying one of the error taxonomies that
// surface to callers rather than being absorbed into a List.
type Kind struct{ name string }

func (k *Kind) Error() string { return k.name }

var (
	InvalidRange    = &Kind{"invalid range"}
	InvalidPosition = &Kind{"invalid position"}
	FileNotFound    = &Kind{"file not found"}
	NoAstDefined    = &Kind{"no AST defined"}
	InvalidHeader   = &Kind{"invalid header"}
	ContentTooLarge = &Kind{"content too large"}
)

// Wrap returns an error reporting msg and wrapping kind, so that
// errors.Is(err, kind) holds for the typed-error checks callers use.
func Wrap(kind *Kind, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}
