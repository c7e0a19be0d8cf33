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

package cli_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/auditlog/internal/audit/dto"
	"github.com/retr0h/auditlog/internal/cli"
	"github.com/retr0h/auditlog/internal/client"
)

type UITestSuite struct {
	suite.Suite
}

func TestUITestSuite(t *testing.T) {
	suite.Run(t, new(UITestSuite))
}

func captureStdout(
	fn func(),
) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	out, _ := io.ReadAll(r)
	os.Stdout = old

	return string(out)
}

func (suite *UITestSuite) TestCalculateColumnWidths() {
	tests := []struct {
		name       string
		headers    []string
		rows       [][]string
		minPadding int
		want       []int
	}{
		{
			name:       "when empty headers returns empty",
			headers:    []string{},
			rows:       nil,
			minPadding: 1,
			want:       []int{},
		},
		{
			name:       "when headers wider than rows uses header width",
			headers:    []string{"HOSTNAME", "STATUS"},
			rows:       [][]string{{"a", "b"}},
			minPadding: 1,
			want:       []int{10, 8},
		},
		{
			name:       "when rows wider than headers uses row width",
			headers:    []string{"A", "B"},
			rows:       [][]string{{"longvalue", "anotherlongvalue"}},
			minPadding: 1,
			want:       []int{11, 18},
		},
		{
			name:       "when multi-line content uses longest line width",
			headers:    []string{"DATA"},
			rows:       [][]string{{"short\nvery long line here"}},
			minPadding: 0,
			want:       []int{19},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.CalculateColumnWidths(tc.headers, tc.rows, tc.minPadding)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestGetMaxLineWidth() {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "when single line returns its length",
			text: "hello",
			want: 5,
		},
		{
			name: "when multi-line returns longest",
			text: "short\na much longer line\nmed",
			want: 18,
		},
		{
			name: "when empty returns zero",
			text: "",
			want: 0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.GetMaxLineWidth(tc.text)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestSafeString() {
	str := "hello"

	tests := []struct {
		name string
		s    *string
		want string
	}{
		{
			name: "when non-nil returns value",
			s:    &str,
			want: "hello",
		},
		{
			name: "when nil returns empty",
			s:    nil,
			want: "",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.SafeString(tc.s)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestPrintKV() {
	tests := []struct {
		name       string
		pairs      []string
		wantOutput bool
	}{
		{
			name:       "when valid pairs prints output",
			pairs:      []string{"Key", "Value"},
			wantOutput: true,
		},
		{
			name:       "when multiple pairs prints all",
			pairs:      []string{"Name", "test", "Status", "ok"},
			wantOutput: true,
		},
		{
			name:       "when odd number of pairs prints nothing",
			pairs:      []string{"Key"},
			wantOutput: false,
		},
		{
			name:       "when empty prints nothing",
			pairs:      []string{},
			wantOutput: false,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.PrintKV(tc.pairs...)
			})

			if tc.wantOutput {
				assert.NotEmpty(suite.T(), output)
			} else {
				assert.Empty(suite.T(), output)
			}
		})
	}
}

func (suite *UITestSuite) TestTruncate() {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{
			name:  "when shorter than width returns input",
			input: "login",
			width: 10,
			want:  "login",
		},
		{
			name:  "when longer than width marks the cut",
			input: "user.invitation.accepted",
			width: 10,
			want:  "user.in...",
		},
		{
			name:  "when width too small for marker cuts hard",
			input: "abcdef",
			width: 2,
			want:  "ab",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.want, cli.Truncate(tc.input, tc.width))
		})
	}
}

func (suite *UITestSuite) TestFormatAge() {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{
			name: "when zero returns empty",
			d:    0,
			want: "",
		},
		{
			name: "when seconds",
			d:    42 * time.Second,
			want: "42s",
		},
		{
			name: "when minutes",
			d:    7*time.Minute + 3*time.Second,
			want: "7m",
		},
		{
			name: "when hours",
			d:    2*time.Hour + 15*time.Minute,
			want: "2h 15m",
		},
		{
			name: "when days",
			d:    50 * time.Hour,
			want: "2d 2h",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.want, cli.FormatAge(tc.d))
		})
	}
}

func (suite *UITestSuite) TestFormatParams() {
	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{
			name:   "when nil returns empty",
			params: nil,
			want:   "",
		},
		{
			name:   "when multiple sorts by key",
			params: map[string]string{"role": "admin", "email": "a@b.c"},
			want:   "email=a@b.c, role=admin",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.want, cli.FormatParams(tc.params))
		})
	}
}

func (suite *UITestSuite) TestHandleError() {
	tests := []struct {
		name      string
		err       error
		wantInLog []string
	}{
		{
			name: "when api error logs status and class",
			err: &client.APIError{
				StatusCode: 401,
				ErrorClass: "UserNotDomainAdminError",
				Message:    "User is not admin",
			},
			wantInLog: []string{"error in response", "401", "UserNotDomainAdminError", "User is not admin"},
		},
		{
			name:      "when transport error logs message",
			err:       errors.New("connection refused"),
			wantInLog: []string{"request failed", "connection refused"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			cli.HandleError(tc.err, logger)

			for _, want := range tc.wantInLog {
				assert.Contains(suite.T(), buf.String(), want)
			}
		})
	}
}

func (suite *UITestSuite) TestAuditEventRows() {
	recorded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []dto.AuditEventDTO{
		{
			ID:        "65e1c3c0aabbccddeeff0011",
			UserLogin: "jane@acme",
			Recorded:  recorded,
			UserIP:    "10.0.0.1",
			Success:   true,
			Type:      "login",
			Params:    map[string]string{"method": "sso"},
		},
		{
			ID:        "65e1c3c0aabbccddeeff0012",
			UserLogin: "joe@acme",
			Recorded:  recorded,
			Type:      "login",
		},
	}

	rows := cli.AuditEventRows(items, recorded.Add(90*time.Minute))

	assert.Equal(suite.T(), [][]string{
		{
			"65e1c3c0aabbccddeeff0011",
			"2026-03-01T12:00:00Z",
			"1h 30m",
			"jane@acme",
			"login",
			"ok",
			"10.0.0.1",
			"method=sso",
		},
		{
			"65e1c3c0aabbccddeeff0012",
			"2026-03-01T12:00:00Z",
			"1h 30m",
			"joe@acme",
			"login",
			"failed",
			"",
			"",
		},
	}, rows)
}

func (suite *UITestSuite) TestDisplayAuditPage() {
	next := "/gdc/audit/admin/events?offset=65e1c3c0aabbccddeeff0011&limit=1"

	tests := []struct {
		name     string
		page     dto.AuditEventsDTO
		contains []string
		excludes []string
	}{
		{
			name:     "when empty prints placeholder",
			page:     dto.AuditEventsDTO{Items: []dto.AuditEventDTO{}},
			contains: []string{"No audit events found."},
		},
		{
			name: "when more pages prints next link",
			page: dto.AuditEventsDTO{
				Items: []dto.AuditEventDTO{{
					ID:        "65e1c3c0aabbccddeeff0011",
					UserLogin: "jane@acme",
					Type:      "login",
				}},
				Paging: dto.Paging{NextURI: &next},
			},
			contains: []string{"Audit Events (1)", "jane@acme", "Next", "offset=65e1c3c0aabbccddeeff0011"},
		},
		{
			name: "when last page omits next link",
			page: dto.AuditEventsDTO{
				Items: []dto.AuditEventDTO{{ID: "65e1c3c0aabbccddeeff0011"}},
			},
			contains: []string{"Audit Events (1)"},
			excludes: []string{"Next"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.DisplayAuditPage(tc.page, time.Now())
			})

			for _, want := range tc.contains {
				assert.Contains(suite.T(), output, want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(suite.T(), output, unwanted)
			}
		})
	}
}

func (suite *UITestSuite) TestPrintCompactTable() {
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	tests := []struct {
		name     string
		sections []cli.Section
		contains []string
		excludes []string
	}{
		{
			name: "when section with title renders header and rows",
			sections: []cli.Section{{
				Title:   "Events",
				Headers: []string{"id", "type"},
				Rows:    [][]string{{"a", "login"}, {"b", "logout"}},
			}},
			contains: []string{"Events:", "ID", "TYPE", "login", "logout"},
		},
		{
			name: "when cell exceeds cap truncates it",
			sections: []cli.Section{{
				Headers: []string{"PARAMS"},
				Rows:    [][]string{{long}},
			}},
			contains: []string{"..."},
			excludes: []string{long},
		},
		{
			name: "when cell is multi-line flattens it",
			sections: []cli.Section{{
				Headers: []string{"DATA"},
				Rows:    [][]string{{"one\ntwo"}},
			}},
			contains: []string{"one two"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.PrintCompactTable(tc.sections)
			})

			for _, want := range tc.contains {
				assert.Contains(suite.T(), output, want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(suite.T(), output, unwanted)
			}
		})
	}
}
