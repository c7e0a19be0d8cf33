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

package audit

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/retr0h/auditlog/internal/validation"
)

const instrumentationName = "github.com/retr0h/auditlog/internal/audit"

// Service records events and serves pages of them. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	store   Store
	limits  Limits
	logger  *slog.Logger
	logged  metric.Int64Counter
	queried metric.Int64Counter
}

// NewService creates a Service over the given store.
func NewService(
	logger *slog.Logger,
	store Store,
	limits Limits,
) *Service {
	meter := otel.Meter(instrumentationName)

	logged, err := meter.Int64Counter(
		"auditlog.events.logged",
		metric.WithDescription("Audit events recorded."),
	)
	if err != nil {
		otel.Handle(err)
		logged = noop.Int64Counter{}
	}

	queried, err := meter.Int64Counter(
		"auditlog.pages.served",
		metric.WithDescription("Pages of audit events served."),
	)
	if err != nil {
		otel.Handle(err)
		queried = noop.Int64Counter{}
	}

	return &Service{
		store:   store,
		limits:  limits,
		logger:  logger.With("component", "audit"),
		logged:  logged,
		queried: queried,
	}
}

// Limits returns the page size limits requests are parsed with.
func (s *Service) Limits() Limits {
	return s.limits
}

// ParseParams validates raw request parameters against the service limits.
func (s *Service) ParseParams(
	raw RawParams,
) (Request, error) {
	return s.limits.Parse(raw)
}

// Log validates an event, assigns it a fresh identifier and stores it.
func (s *Service) Log(
	ctx context.Context,
	event Event,
) (Event, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "audit.log")
	defer span.End()

	if errMsg, ok := validation.Struct(event); !ok {
		return Event{}, fmt.Errorf("%w: %s", ErrInvalidEvent, errMsg)
	}

	event.ID = NewEventID()
	if err := s.store.Insert(ctx, event); err != nil {
		span.RecordError(err)
		return Event{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.logged.Add(ctx, 1, metric.WithAttributes(
		attribute.String("audit.type", event.Type),
	))

	s.logger.Debug(
		"audit event logged",
		slog.String("id", event.ID.Hex()),
		slog.String("domain", event.Domain),
		slog.String("type", event.Type),
	)

	return event, nil
}

// FindByDomain returns one page of the domain's events.
func (s *Service) FindByDomain(
	ctx context.Context,
	domain string,
	req Request,
) (Page, error) {
	return s.find(ctx, "admin", domain, "", req)
}

// FindByDomainAndUser returns one page of the events one user caused within
// the domain.
func (s *Service) FindByDomainAndUser(
	ctx context.Context,
	domain string,
	user string,
	req Request,
) (Page, error) {
	if user == "" {
		return Page{}, fmt.Errorf("%w: user is required", ErrInvalidQuery)
	}

	return s.find(ctx, "user", domain, user, req)
}

// DeleteAllByDomain purges every event of the domain.
func (s *Service) DeleteAllByDomain(
	ctx context.Context,
	domain string,
) error {
	if domain == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidQuery)
	}

	if err := s.store.DeleteAll(ctx, domain); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.logger.Info(
		"audit events purged",
		slog.String("domain", domain),
	)

	return nil
}

func (s *Service) find(
	ctx context.Context,
	scope string,
	domain string,
	user string,
	req Request,
) (Page, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "audit.find")
	defer span.End()

	q, err := s.limits.NewQuery(domain, user, req)
	if err != nil {
		return Page{}, err
	}

	raw, err := Execute(ctx, s.store, q)
	if err != nil {
		span.RecordError(err)
		s.logger.Error(
			"audit query failed",
			slog.String("domain", domain),
			slog.String("error", err.Error()),
		)
		return Page{}, err
	}

	items, hasMore := Assemble(raw, req.Limit)

	s.queried.Add(ctx, 1, metric.WithAttributes(
		attribute.String("audit.scope", scope),
	))
	span.SetAttributes(
		attribute.String("audit.scope", scope),
		attribute.Int("audit.items", len(items)),
		attribute.Bool("audit.has_more", hasMore),
	)

	return Page{
		Items:   items,
		HasMore: hasMore,
	}, nil
}
