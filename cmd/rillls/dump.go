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

package main

import (
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rilllang.org/ls/internal/rillast"
	"rilllang.org/ls/lang/parser"
	"rilllang.org/ls/lang/scanner"
	"rilllang.org/ls/lang/token"
)

func newDumpCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "parse a file and print its AST as an indented text tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], verbose)
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "also print a structured dump of every parse error")
	return cmd
}

func runDump(cmd *cobra.Command, path string, verbose bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	file := token.NewFile(path, len(content))
	file.SetLinesForContent(content)

	sc := new(scanner.Scanner)
	sc.Init(file, content, nil)

	p := parser.New(file, sc)
	tu := p.Parse(path)

	rillast.Fprint(cmd.OutOrStdout(), tu)

	if p.HadError() {
		printer := message.NewPrinter(dumpLang())
		printer.Fprintf(cmd.OutOrStderr(), "%d parse error(s)\n", p.ErrorCount())
		if verbose {
			pretty.Fprintf(cmd.OutOrStderr(), "%# v\n", p.Errors())
		}
	}
	return nil
}

// dumpLang mirrors the corpus's own locale detection for CLI output
// formatting: LC_ALL, falling back to LANG, falling back to the
// library default when neither is set.
func dumpLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}
