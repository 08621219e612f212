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

package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	rillerrors "rilllang.org/ls/lang/errors"
	"rilllang.org/ls/lsp/cache"
	"rilllang.org/ls/lsp/protocol"
)

func newServeCmd() *cobra.Command {
	var (
		stdio     bool
		logFile   string
		maxErrors int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the language server over stdio, reading and writing framed JSON-RPC messages",
		RunE:  func(cmd *cobra.Command, args []string) error {
			if !stdio {
				return errors.New("only --stdio transport is supported")
			}
			logger, closeLog, err := newLogger(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			s := &server{
				log:     logger,
				project: cache.NewProject(logger),
			}
			return s.run(os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", true, "communicate over stdin/stdout using Content-Length framing")
	cmd.Flags().StringVar(&logFile, "log-file", "", "path to write structured logs to (default: stderr)")
	cmd.Flags().IntVar(&maxErrors, "max-errors", 100, "accepted but not applied: every file is parsed with the parser's default cap of 100 diagnostics")
	return cmd
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}

// server drives the single-threaded cooperative request loop: one
// message is read and fully handled before the next is read.
type server struct {
	log     *slog.Logger
	project *cache.Project
}

func (s *server) run(in io.Reader, out io.Writer) error {
	reader := protocol.NewReader(in)
	writer := protocol.NewWriter(out)

	for {
		req, err := reader.ReadRequest()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			s.log.Error("failed to read message", "error", err)
			if rillerrors.Is(err, rillerrors.InvalidHeader) || rillerrors.Is(err, rillerrors.ContentTooLarge) {
				continue
			}
			return err
		}
		s.handle(req, writer)
	}
}

func (s *server) handle(req *protocol.Request, writer *protocol.Writer) {
	s.log.Info("handling request", "method", req.Method, "notification", req.IsNotification())

	switch req.Method {
	case "textDocument/didOpen":
		s.didOpen(req)
	case "textDocument/didChange":
		s.didChange(req)
	case "textDocument/didClose":
		s.didClose(req)
	case "textDocument/completion":
		s.completion(req, writer)
	case "textDocument/hover":
		s.hover(req, writer)
	default:
		if !req.IsNotification() {
			resp := protocol.NewErrorResponse(req.ID, protocol.CodeMethodNotFound, "method not found: "+req.Method)
			if err := writer.WriteMessage(resp); err != nil {
				s.log.Error("failed to write response", "error", err)
			}
		}
	}
}

type textDocumentItem struct {
	URI     string `json:"uri"`
	Version int32  `json:"version"`
	Text    string `json:"text"`
}

type versionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int32  `json:"version"`
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type lspPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start lspPosition `json:"start"`
	End   lspPosition `json:"end"`
}

type contentChangeEvent struct {
	Range *lspRange `json:"range,omitempty"`
	Text  string    `json:"text"`
}

func (s *server) didOpen(req *protocol.Request) {
	var params struct {
		TextDocument textDocumentItem `json:"textDocument"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.log.Error("invalid didOpen params", "error", err)
		return
	}
	td := params.TextDocument
	s.project.AddOrUpdateFile(pathFromURI(td.URI), td.URI, td.Text, td.Version)
}

func (s *server) didChange(req *protocol.Request) {
	var params struct {
		TextDocument   versionedTextDocumentIdentifier `json:"textDocument"`
		ContentChanges []contentChangeEvent            `json:"contentChanges"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.log.Error("invalid didChange params", "error", err)
		return
	}

	changes := make([]cache.TextChange, len(params.ContentChanges))
	for i, c := range params.ContentChanges {
		if c.Range == nil {
			changes[i] = cache.TextChange{Full: true, Text: c.Text}
			continue
		}
		changes[i] = cache.TextChange{
			Start: cache.Position{Line: c.Range.Start.Line, Character: c.Range.Start.Character},
			End:   cache.Position{Line: c.Range.End.Line, Character: c.Range.End.Character},
			Text:  c.Text,
		}
	}

	uri := params.TextDocument.URI
	if err := s.project.ApplyIncrementalChanges(uri, changes, params.TextDocument.Version); err != nil {
		s.log.Error("failed to apply changes", "uri", uri, "error", err)
	}
}

func (s *server) didClose(req *protocol.Request) {
	var params struct {
		TextDocument textDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.log.Error("invalid didClose params", "error", err)
		return
	}
	if err := s.project.RemoveFileByURI(params.TextDocument.URI); err != nil {
		s.log.Warn("failed to close file", "uri", params.TextDocument.URI, "error", err)
	}
}

type positionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     lspPosition            `json:"position"`
}

func (s *server) completion(req *protocol.Request, writer *protocol.Writer) {
	var params positionParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.respondError(req, writer, protocol.CodeInvalidParams, err)
		return
	}
	f, err := s.project.GetFileByURI(params.TextDocument.URI)
	if err != nil {
		s.respondError(req, writer, protocol.CodeInvalidParams, err)
		return
	}
	keywords, err := f.GetCompletionsAtPosition(cache.Position{Line: params.Position.Line, Character: params.Position.Character}, nil)
	if err != nil {
		s.respondError(req, writer, protocol.CodeInternalError, err)
		return
	}
	items := make([]map[string]interface{}, len(keywords))
	for i, kw := range keywords {
		items[i] = map[string]interface{}{"label": kw, "kind": 14 /* Keyword */}
	}
	s.respond(req, writer, items)
}

func (s *server) hover(req *protocol.Request, writer *protocol.Writer) {
	var params positionParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.respondError(req, writer, protocol.CodeInvalidParams, err)
		return
	}
	f, err := s.project.GetFileByURI(params.TextDocument.URI)
	if err != nil {
		s.respondError(req, writer, protocol.CodeInvalidParams, err)
		return
	}
	info, err := f.GetHoverInfo(cache.Position{Line: params.Position.Line, Character: params.Position.Character})
	if err != nil {
		s.respondError(req, writer, protocol.CodeInvalidParams, err)
		return
	}
	s.respond(req, writer, map[string]interface{}{
		"contents": map[string]string{"kind": "plaintext", "value": info},
	})
}

func (s *server) respond(req *protocol.Request, writer *protocol.Writer, result interface{}) {
	if req.IsNotification() {
		return
	}
	if err := writer.WriteMessage(protocol.NewResultResponse(req.ID, result)); err != nil {
		s.log.Error("failed to write response", "error", err)
	}
}

func (s *server) respondError(req *protocol.Request, writer *protocol.Writer, code int, err error) {
	if req.IsNotification() {
		s.log.Error("notification failed", "error", err)
		return
	}
	if werr := writer.WriteMessage(protocol.NewErrorResponse(req.ID, code, err.Error())); werr != nil {
		s.log.Error("failed to write error response", "error", werr)
	}
}

// pathFromURI strips a file:// scheme to recover the filesystem path
// half of the dual index; URIs of other schemes are kept as-is, since
// this core does no filesystem I/O of its own.
func pathFromURI(uri string) string {
	const scheme = "file://"
	if len(uri) >= len(scheme) && uri[:len(scheme)] == scheme {
		return uri[len(scheme):]
	}
	return uri
}
