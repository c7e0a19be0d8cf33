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

package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/auditlog/internal/api/common"
	"github.com/retr0h/auditlog/internal/audit/dto"
	"github.com/retr0h/auditlog/internal/client"
	"github.com/retr0h/auditlog/internal/config"
)

type ClientPublicTestSuite struct {
	suite.Suite

	ctx       context.Context
	server    *httptest.Server
	appConfig config.Config
	mu        sync.Mutex
	requests  []*http.Request
	handler   http.HandlerFunc
	sut       *client.Client
}

func (s *ClientPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.setHandler(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(context.Background()))
		handler := s.handler
		s.mu.Unlock()
		handler(w, r)
	}))

	s.appConfig = config.Config{
		API: config.API{
			Client: config.Client{
				URL:    s.server.URL,
				UserID: "jane@acme",
			},
		},
	}

	var err error
	s.sut, err = client.New(slog.Default(), s.appConfig)
	s.Require().NoError(err)
}

func (s *ClientPublicTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientPublicTestSuite) setHandler(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handler = h
	s.requests = nil
}

func (s *ClientPublicTestSuite) captured() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*http.Request(nil), s.requests...)
}

func writeJSON(
	w http.ResponseWriter,
	status int,
	body any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *ClientPublicTestSuite) TestNew() {
	tests := []struct {
		name        string
		url         string
		wantErr     bool
		errContains string
	}{
		{
			name: "absolute url",
			url:  "http://localhost:8080",
		},
		{
			name:        "relative url",
			url:         "/gdc",
			wantErr:     true,
			errContains: "is not absolute",
		},
		{
			name:        "unparsable url",
			url:         "http://[::1",
			wantErr:     true,
			errContains: "parsing api url",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			cfg := config.Config{API: config.API{Client: config.Client{URL: tc.url}}}

			c, err := client.New(slog.Default(), cfg)

			if tc.wantErr {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.errContains)
				s.Nil(c)
				return
			}
			s.Require().NoError(err)
			s.NotNil(c)
		})
	}
}

func (s *ClientPublicTestSuite) TestListAuditEvents() {
	next := "/gdc/audit/user/events?offset=5f5f5f5f5f5f5f5f5f5f5f5f&limit=2"

	tests := []struct {
		name        string
		scope       client.Scope
		params      client.ListParams
		handler     http.HandlerFunc
		wantPath    string
		wantQuery   url.Values
		wantItems   int
		wantNext    bool
		wantErr     bool
		validateErr func(error)
	}{
		{
			name:  "admin scope without params",
			scope: client.ScopeAdmin,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, dto.AuditEventsDTO{
					Items: []dto.AuditEventDTO{{ID: "a"}, {ID: "b"}},
					Links: dto.Links{Self: "/gdc/audit/admin/events"},
				})
			},
			wantPath:  "/gdc/audit/admin/events",
			wantQuery: url.Values{},
			wantItems: 2,
		},
		{
			name:  "user scope with every param",
			scope: client.ScopeUser,
			params: client.ListParams{
				From:  "2026-01-01",
				To:    "2026-02-01",
				Type:  "login",
				Limit: 2,
			},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, dto.AuditEventsDTO{
					Items:  []dto.AuditEventDTO{{ID: "a"}, {ID: "b"}},
					Paging: dto.Paging{NextURI: &next},
				})
			},
			wantPath: "/gdc/audit/user/events",
			wantQuery: url.Values{
				"from":  {"2026-01-01"},
				"to":    {"2026-02-01"},
				"type":  {"login"},
				"limit": {"2"},
			},
			wantItems: 2,
			wantNext:  true,
		},
		{
			name:  "error envelope becomes APIError",
			scope: client.ScopeAdmin,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusUnauthorized, common.ErrorResponse{
					Error: common.ErrorDetail{
						ErrorClass: common.ClassNotAdmin,
						Message:    common.MsgNotAdmin,
					},
				})
			},
			wantPath:  "/gdc/audit/admin/events",
			wantQuery: url.Values{},
			wantErr:   true,
			validateErr: func(err error) {
				var apiErr *client.APIError
				s.Require().True(errors.As(err, &apiErr))
				s.Equal(http.StatusUnauthorized, apiErr.StatusCode)
				s.Equal(common.ClassNotAdmin, apiErr.ErrorClass)
				s.Equal(common.MsgNotAdmin, apiErr.Message)
			},
		},
		{
			name:  "non json error body",
			scope: client.ScopeAdmin,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream down"))
			},
			wantPath:  "/gdc/audit/admin/events",
			wantQuery: url.Values{},
			wantErr:   true,
			validateErr: func(err error) {
				var apiErr *client.APIError
				s.Require().True(errors.As(err, &apiErr))
				s.Equal(http.StatusBadGateway, apiErr.StatusCode)
				s.Empty(apiErr.ErrorClass)
				s.Contains(err.Error(), "unexpected status 502")
			},
		},
		{
			name:  "malformed success body",
			scope: client.ScopeUser,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("{"))
			},
			wantPath:  "/gdc/audit/user/events",
			wantQuery: url.Values{},
			wantErr:   true,
			validateErr: func(err error) {
				s.Contains(err.Error(), "decoding response")
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.setHandler(tc.handler)

			page, err := s.sut.ListAuditEvents(s.ctx, tc.scope, tc.params)

			s.Require().Len(s.captured(), 1)
			req := s.captured()[0]
			s.Equal(http.MethodGet, req.Method)
			s.Equal(tc.wantPath, req.URL.Path)
			s.Equal(tc.wantQuery, req.URL.Query())
			s.Equal("jane@acme", req.Header.Get(common.DefaultUserHeader))

			if tc.wantErr {
				s.Require().Error(err)
				tc.validateErr(err)
				return
			}
			s.Require().NoError(err)
			s.Len(page.Items, tc.wantItems)
			s.Equal(tc.wantNext, page.Paging.NextURI != nil)
		})
	}
}

func (s *ClientPublicTestSuite) TestFollowAuditEvents() {
	tests := []struct {
		name        string
		uri         string
		wantPath    string
		wantRaw     string
		errContains string
	}{
		{
			name:     "relative next uri resolves against base",
			uri:      "/gdc/audit/admin/events?type=login&offset=00000001a1b2c3d4e5f60718&limit=10",
			wantPath: "/gdc/audit/admin/events",
			wantRaw:  "type=login&offset=00000001a1b2c3d4e5f60718&limit=10",
		},
		{
			name:        "unparsable uri",
			uri:         "%zz",
			errContains: "parsing next uri",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.setHandler(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, dto.AuditEventsDTO{
					Items: []dto.AuditEventDTO{},
				})
			})

			_, err := s.sut.FollowAuditEvents(s.ctx, tc.uri)

			if tc.errContains != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.errContains)
				s.Empty(s.captured())
				return
			}
			s.Require().NoError(err)
			s.Require().Len(s.captured(), 1)
			s.Equal(tc.wantPath, s.captured()[0].URL.Path)
			s.Equal(tc.wantRaw, s.captured()[0].URL.RawQuery)
		})
	}
}

func (s *ClientPublicTestSuite) TestDeleteAuditEvents() {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{
			name:   "no content",
			status: http.StatusNoContent,
		},
		{
			name:    "store unavailable",
			status:  http.StatusServiceUnavailable,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.setHandler(func(w http.ResponseWriter, _ *http.Request) {
				if tc.status == http.StatusNoContent {
					w.WriteHeader(tc.status)
					return
				}
				writeJSON(w, tc.status, common.ErrorResponse{
					Error: common.ErrorDetail{
						ErrorClass: common.ClassStoreUnavailable,
						Message:    common.MsgStoreUnavailable,
					},
				})
			})

			err := s.sut.DeleteAuditEvents(s.ctx)

			s.Require().Len(s.captured(), 1)
			s.Equal(http.MethodDelete, s.captured()[0].Method)
			s.Equal("/gdc/audit/admin/events", s.captured()[0].URL.Path)

			if tc.wantErr {
				var apiErr *client.APIError
				s.Require().True(errors.As(err, &apiErr))
				s.Equal(tc.status, apiErr.StatusCode)
				return
			}
			s.NoError(err)
		})
	}
}

func (s *ClientPublicTestSuite) TestFetcher() {
	next := "/gdc/audit/user/events?offset=ffffffffffffffffffffffff&limit=1"
	s.setHandler(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "" {
			writeJSON(w, http.StatusOK, dto.AuditEventsDTO{
				Items:  []dto.AuditEventDTO{{ID: "first"}},
				Paging: dto.Paging{NextURI: &next},
			})
			return
		}
		writeJSON(w, http.StatusOK, dto.AuditEventsDTO{
			Items: []dto.AuditEventDTO{{ID: "second"}},
		})
	})

	fetch := s.sut.Fetcher(client.ScopeUser, client.ListParams{Limit: 1})

	first, err := fetch(s.ctx, "")
	s.Require().NoError(err)
	s.Require().NotNil(first.Paging.NextURI)
	s.Equal("first", first.Items[0].ID)

	second, err := fetch(s.ctx, *first.Paging.NextURI)
	s.Require().NoError(err)
	s.Nil(second.Paging.NextURI)
	s.Equal("second", second.Items[0].ID)

	s.Require().Len(s.captured(), 2)
	s.Equal("1", s.captured()[0].URL.Query().Get("limit"))
	s.Equal("ffffffffffffffffffffffff", s.captured()[1].URL.Query().Get("offset"))
}

func (s *ClientPublicTestSuite) TestGetHealthStatus() {
	s.setHandler(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	status, err := s.sut.GetHealthStatus(s.ctx)

	s.Require().NoError(err)
	s.Equal("ok", status.Status)
	s.Equal("/health/status", s.captured()[0].URL.Path)
}

func (s *ClientPublicTestSuite) TestCustomUserHeader() {
	cfg := s.appConfig
	cfg.API.Server.UserHeader = "X-User"
	c, err := client.New(slog.Default(), cfg)
	s.Require().NoError(err)

	s.Require().NoError(c.DeleteAuditEvents(s.ctx))

	s.Require().Len(s.captured(), 1)
	s.Equal("jane@acme", s.captured()[0].Header.Get("X-User"))
	s.Empty(s.captured()[0].Header.Get(common.DefaultUserHeader))
}

func TestClientPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ClientPublicTestSuite))
}
