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

package telemetry_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/retr0h/auditlog/internal/telemetry"
)

type SlogPublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	tracer trace.Tracer
	buf    *bytes.Buffer
	logger *slog.Logger
}

func (s *SlogPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tracer = sdktrace.NewTracerProvider().Tracer("test")
	s.buf = &bytes.Buffer{}
	s.logger = slog.New(telemetry.NewContextHandler(
		slog.NewTextHandler(s.buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))
}

func (s *SlogPublicTestSuite) TestHandle() {
	tests := []struct {
		name         string
		setupCtx     func() context.Context
		validateFunc func(output string)
	}{
		{
			name: "when span active adds trace ids",
			setupCtx: func() context.Context {
				ctx, _ := s.tracer.Start(s.ctx, "audit.find")
				return ctx
			},
			validateFunc: func(output string) {
				s.Contains(output, "trace_id=")
				s.Contains(output, "span_id=")
			},
		},
		{
			name: "when no span omits trace ids",
			setupCtx: func() context.Context {
				return s.ctx
			},
			validateFunc: func(output string) {
				s.NotContains(output, "trace_id=")
			},
		},
		{
			name: "when context carries attrs adds them",
			setupCtx: func() context.Context {
				return telemetry.ContextWithAttrs(s.ctx, slog.String("domain", "acme"))
			},
			validateFunc: func(output string) {
				s.Contains(output, "domain=acme")
			},
		},
		{
			name: "when attrs nested accumulates parent attrs",
			setupCtx: func() context.Context {
				ctx := telemetry.ContextWithAttrs(s.ctx, slog.String("domain", "acme"))
				return telemetry.ContextWithAttrs(ctx, slog.String("user", "alice"))
			},
			validateFunc: func(output string) {
				s.Contains(output, "domain=acme")
				s.Contains(output, "user=alice")
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.buf.Reset()
			s.logger.InfoContext(tc.setupCtx(), "audit events listed")
			tc.validateFunc(s.buf.String())
		})
	}
}

func (s *SlogPublicTestSuite) TestContextWithAttrsDoesNotMutateParent() {
	parent := telemetry.ContextWithAttrs(s.ctx, slog.String("domain", "acme"))
	_ = telemetry.ContextWithAttrs(parent, slog.String("user", "alice"))

	s.Len(telemetry.AttrsFromContext(parent), 1)
	s.Empty(telemetry.AttrsFromContext(s.ctx))
}

func (s *SlogPublicTestSuite) TestTraceIDMatchesSpan() {
	ctx, span := s.tracer.Start(s.ctx, "ingest.handle")
	defer span.End()

	s.logger.InfoContext(ctx, "audit event ingested")

	s.Contains(s.buf.String(), span.SpanContext().TraceID().String())
}

func (s *SlogPublicTestSuite) TestWithAttrsAndGroup() {
	logger := slog.New(s.logger.Handler().WithAttrs([]slog.Attr{slog.String("component", "ingest")}))
	logger.Info("consumer started")
	s.Contains(s.buf.String(), "component=ingest")

	s.buf.Reset()
	grouped := slog.New(s.logger.Handler().WithGroup("event"))
	grouped.Info("stored", slog.String("type", "login"))
	s.Contains(s.buf.String(), "event.type=login")
}

func (s *SlogPublicTestSuite) TestEnabled() {
	handler := telemetry.NewContextHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	s.False(handler.Enabled(s.ctx, slog.LevelInfo))
	s.True(handler.Enabled(s.ctx, slog.LevelError))
}

func TestSlogPublicTestSuite(t *testing.T) {
	suite.Run(t, new(SlogPublicTestSuite))
}
