//go:build integration

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

package integration_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type HealthSmokeSuite struct {
	suite.Suite
}

func (s *HealthSmokeSuite) TestHealthStatus() {
	tests := []struct {
		name         string
		args         []string
		validateFunc func(res cliResult)
	}{
		{
			name: "returns ok status with components",
			args: []string{"client", "health", "--json"},
			validateFunc: func(res cliResult) {
				s.Require().Equal(0, res.Code, res.Stderr)

				var result map[string]any
				s.Require().NoError(res.decode(&result))
				s.Equal("ok", result["status"])
				s.Contains(result, "components")
				components := result["components"].(map[string]any)
				s.Contains(components, "nats")
				s.Contains(components, "store")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := env.run(plainUser, tt.args...)
			tt.validateFunc(res)
		})
	}
}

func (s *HealthSmokeSuite) TestMetrics() {
	resp, err := http.Get(env.url("/metrics")) //nolint:gosec
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "go_goroutines")
	s.Contains(string(body), `service_name="auditlog"`)
}

func TestHealthSmokeSuite(
	t *testing.T,
) {
	suite.Run(t, new(HealthSmokeSuite))
}
