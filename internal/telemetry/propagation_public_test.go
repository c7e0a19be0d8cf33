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
	"context"
	"strings"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/retr0h/auditlog/internal/telemetry"
)

type PropagationPublicTestSuite struct {
	suite.Suite

	ctx context.Context
}

func (s *PropagationPublicTestSuite) SetupTest() {
	s.ctx = context.Background()

	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})
}

func (s *PropagationPublicTestSuite) TestMsgRoundtrip() {
	tests := []struct {
		name         string
		setupCtx     func() context.Context
		mutate       func(nats.Header) nats.Header
		validateFunc func(originalCtx context.Context, msg *nats.Msg, extracted context.Context)
	}{
		{
			name: "when active span roundtrips trace context",
			setupCtx: func() context.Context {
				ctx, _ := otel.Tracer("test").Start(s.ctx, "publish")

				return ctx
			},
			validateFunc: func(originalCtx context.Context, msg *nats.Msg, extracted context.Context) {
				s.NotEmpty(msg.Header.Get("Traceparent"))
				s.Equal(
					trace.SpanContextFromContext(originalCtx).TraceID(),
					trace.SpanContextFromContext(extracted).TraceID(),
				)
			},
		},
		{
			name: "when header keys are lowercase extracts trace context",
			setupCtx: func() context.Context {
				ctx, _ := otel.Tracer("test").Start(s.ctx, "publish")

				return ctx
			},
			mutate: func(h nats.Header) nats.Header {
				lower := nats.Header{}
				for k, v := range h {
					lower[strings.ToLower(k)] = v
				}

				return lower
			},
			validateFunc: func(originalCtx context.Context, _ *nats.Msg, extracted context.Context) {
				s.Equal(
					trace.SpanContextFromContext(originalCtx).TraceID(),
					trace.SpanContextFromContext(extracted).TraceID(),
				)
			},
		},
		{
			name: "when no active span extract yields invalid span context",
			setupCtx: func() context.Context {
				return context.Background()
			},
			validateFunc: func(_ context.Context, msg *nats.Msg, extracted context.Context) {
				s.Empty(msg.Header.Get("Traceparent"))
				s.False(trace.SpanContextFromContext(extracted).IsValid())
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			ctx := tc.setupCtx()
			msg := nats.NewMsg("audit.events.log")
			telemetry.InjectMsgTraceContext(ctx, msg)

			header := msg.Header
			if tc.mutate != nil {
				header = tc.mutate(header)
			}

			extracted := telemetry.ExtractMsgTraceContext(context.Background(), header)
			tc.validateFunc(ctx, msg, extracted)
		})
	}
}

func TestPropagationPublicTestSuite(t *testing.T) {
	suite.Run(t, new(PropagationPublicTestSuite))
}
