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

package protocol_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"rilllang.org/ls/lang/errors"
	"rilllang.org/ls/lsp/protocol"
)

func TestReadRequestRoundTrip(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"textDocument/hover","params":{}}`
	frame := "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body

	rd := protocol.NewReader(strings.NewReader(frame))
	req, err := rd.ReadRequest()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(req.Method, "textDocument/hover"))
	qt.Assert(t, qt.IsFalse(req.IsNotification()))
}

func TestReadRequestNotificationHasNoID(t *testing.T) {
	body := `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{}}`
	frame := "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body

	rd := protocol.NewReader(strings.NewReader(frame))
	req, err := rd.ReadRequest()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(req.IsNotification()))
}

func TestReadMessageMissingContentLength(t *testing.T) {
	frame := "Content-Type: application/vscode-jsonrpc\r\n\r\n{}"
	rd := protocol.NewReader(strings.NewReader(frame))
	_, err := rd.ReadMessage()
	qt.Assert(t, qt.ErrorIs(err, errors.InvalidHeader))
}

func TestReadMessageMalformedContentLength(t *testing.T) {
	frame := "Content-Length: not-a-number\r\n\r\n{}"
	rd := protocol.NewReader(strings.NewReader(frame))
	_, err := rd.ReadMessage()
	qt.Assert(t, qt.ErrorIs(err, errors.InvalidHeader))
}

func TestReadMessageTooLarge(t *testing.T) {
	frame := "Content-Length: " + strconv.Itoa(protocol.MaxContentLength+1) + "\r\n\r\n"
	rd := protocol.NewReader(strings.NewReader(frame))
	_, err := rd.ReadMessage()
	qt.Assert(t, qt.ErrorIs(err, errors.ContentTooLarge))
}

func TestWriteMessageFramesBody(t *testing.T) {
	var buf bytes.Buffer
	wr := protocol.NewWriter(&buf)
	resp := protocol.NewResultResponse([]byte("1"), map[string]string{"ok": "true"})

	qt.Assert(t, qt.IsNil(wr.WriteMessage(resp)))

	out := buf.String()
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(out, "Content-Length: ")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `"ok":"true"`)))
}

