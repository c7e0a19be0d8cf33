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

// Package client provides the HTTP client for the audit log REST API.
package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/retr0h/auditlog/internal/api/common"
	"github.com/retr0h/auditlog/internal/config"
)

// Scope selects which events a listing returns.
type Scope string

// Listing scopes.
const (
	// ScopeAdmin lists every event of the caller's domain.
	ScopeAdmin Scope = "admin"
	// ScopeUser lists the caller's own events.
	ScopeUser Scope = "user"
)

// Client talks to the audit log API as one user.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	ErrorClass string
	Message    string
}

func (e *APIError) Error() string {
	if e.ErrorClass == "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s (%d): %s", e.ErrorClass, e.StatusCode, e.Message)
}

type userTransport struct {
	base   http.RoundTripper
	header string
	userID string
	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	appConfig config.Config,
) (*Client, error) {
	base, err := url.Parse(appConfig.API.Client.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing api url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parsing api url: %q is not absolute", appConfig.API.Client.URL)
	}

	header := appConfig.API.Server.UserHeader
	if header == "" {
		header = common.DefaultUserHeader
	}

	transport := &userTransport{
		base:   http.DefaultTransport,
		header: header,
		userID: appConfig.API.Client.UserID,
		logger: logger,
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		logger: logger,
	}, nil
}

// RoundTrip implements the http.RoundTripper interface.
func (t *userTransport) RoundTrip(
	req *http.Request,
) (*http.Response, error) {
	if t.userID != "" {
		req = req.Clone(req.Context())
		req.Header.Set(t.header, t.userID)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Debug("http request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return nil, err
	}

	t.logger.Debug("http response",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}
