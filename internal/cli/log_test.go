// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LogTestSuite struct {
	suite.Suite

	buf      *bytes.Buffer
	logger   *slog.Logger
	exitCode int
	restore  func()
}

func (s *LogTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.logger = slog.New(slog.NewJSONHandler(s.buf, nil))
	s.exitCode = -1

	original := osExit
	osExit = func(code int) { s.exitCode = code }
	s.restore = func() { osExit = original }
}

func (s *LogTestSuite) TearDownTest() {
	s.restore()
}

func (s *LogTestSuite) record() map[string]any {
	var rec map[string]any
	s.Require().NoError(json.Unmarshal(s.buf.Bytes(), &rec))

	return rec
}

func (s *LogTestSuite) TestLogFatal() {
	tests := []struct {
		name    string
		msg     string
		err     error
		kvPairs []any
		want    map[string]any
		absent  []string
	}{
		{
			name: "when store unreachable logs the cause",
			msg:  "failed to open audit store",
			err:  errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			want: map[string]any{
				"level": "ERROR",
				"msg":   "failed to open audit store",
				"error": "dial tcp 127.0.0.1:5432: connection refused",
			},
		},
		{
			name:   "when error nil omits the error key",
			msg:    "no domains configured",
			want:   map[string]any{"msg": "no domains configured"},
			absent: []string{"error"},
		},
		{
			name:    "when key value pairs given logs them after the error",
			msg:     "failed to create kv bucket",
			err:     errors.New("insufficient resources"),
			kvPairs: []any{"bucket", "audit-events", "replicas", 3},
			want: map[string]any{
				"error":    "insufficient resources",
				"bucket":   "audit-events",
				"replicas": float64(3),
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.buf.Reset()
			s.exitCode = -1

			LogFatal(s.logger, tc.msg, tc.err, tc.kvPairs...)

			s.Equal(1, s.exitCode)
			rec := s.record()
			for k, v := range tc.want {
				s.Equal(v, rec[k], k)
			}
			for _, k := range tc.absent {
				s.NotContains(rec, k)
			}
		})
	}
}

func TestLogTestSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}
