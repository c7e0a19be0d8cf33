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

// Package audit provides the audit event retrieval and purge handlers.
package audit

import (
	"context"
	"log/slog"

	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/domain"
)

//go:generate go tool mockgen -source=audit.go -destination=mocks/audit.gen.go -package=mocks

// Service is the subset of the audit service the handlers need.
type Service interface {
	ParseParams(raw audit.RawParams) (audit.Request, error)
	FindByDomain(ctx context.Context, domain string, req audit.Request) (audit.Page, error)
	FindByDomainAndUser(
		ctx context.Context,
		domain string,
		user string,
		req audit.Request,
	) (audit.Page, error)
	DeleteAllByDomain(ctx context.Context, domain string) error
}

// Audit serves the audit event endpoints.
type Audit struct {
	Service  Service
	Resolver domain.Resolver

	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	service Service,
	resolver domain.Resolver,
) *Audit {
	return &Audit{
		Service:  service,
		Resolver: resolver,
		logger:   logger.With(slog.String("component", "api.audit")),
	}
}
