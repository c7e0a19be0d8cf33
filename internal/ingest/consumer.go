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

package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/telemetry"
)

const instrumentationName = "github.com/retr0h/auditlog/internal/ingest"

// New creates a Consumer reading from consumer.
func New(
	logger *slog.Logger,
	recorder Recorder,
	consumer jetstream.Consumer,
) *Consumer {
	return &Consumer{
		logger:   logger.With(slog.String("component", "ingest")),
		recorder: recorder,
		consumer: consumer,
	}
}

// Start begins consuming without blocking.
func (c *Consumer) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cc, err := c.consumer.Consume(c.handle)
	if err != nil {
		c.logger.Error(
			"failed to start consuming",
			slog.String("error", err.Error()),
		)
		return
	}
	c.consumeCtx = cc

	c.logger.Info("ingest consumer started")
}

// Stop stops fetching and waits until every delivered message has been
// handled or the context expires.
func (c *Consumer) Stop(
	ctx context.Context,
) {
	c.mu.Lock()
	cc := c.consumeCtx
	c.consumeCtx = nil
	c.mu.Unlock()

	if cc == nil {
		return
	}

	cc.Drain()

	select {
	case <-cc.Closed():
		c.logger.Info("ingest consumer stopped gracefully")
	case <-ctx.Done():
		cc.Stop()
		c.logger.Warn("ingest consumer shutdown timed out")
	}
}

// handle records one message. Malformed or invalid events are terminated so
// they are never redelivered; store failures are nak'd for redelivery.
func (c *Consumer) handle(
	msg jetstream.Msg,
) {
	ctx := telemetry.ExtractMsgTraceContext(context.Background(), msg.Headers())
	ctx, span := otel.Tracer(instrumentationName).Start(
		ctx,
		"ingest.handle",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("messaging.subject", msg.Subject())),
	)
	defer span.End()

	var m Message
	if err := json.Unmarshal(msg.Data(), &m); err != nil {
		span.RecordError(err)
		c.logger.Warn(
			"dropping malformed audit message",
			slog.String("subject", msg.Subject()),
			slog.String("error", err.Error()),
		)
		c.settle(msg, msg.Term)
		return
	}

	ctx = telemetry.ContextWithAttrs(ctx, slog.String("domain", m.Domain))

	event, err := c.recorder.Log(ctx, m.Event())
	switch {
	case errors.Is(err, audit.ErrInvalidEvent):
		span.RecordError(err)
		c.logger.WarnContext(
			ctx,
			"dropping invalid audit event",
			slog.String("error", err.Error()),
		)
		c.settle(msg, msg.Term)
	case err != nil:
		span.RecordError(err)
		c.logger.ErrorContext(
			ctx,
			"failed to record audit event",
			slog.String("error", err.Error()),
		)
		c.settle(msg, msg.Nak)
	default:
		c.logger.DebugContext(
			ctx,
			"audit event ingested",
			slog.String("id", event.ID.Hex()),
		)
		c.settle(msg, msg.Ack)
	}
}

func (c *Consumer) settle(
	msg jetstream.Msg,
	fn func() error,
) {
	if err := fn(); err != nil {
		c.logger.Warn(
			"failed to settle message",
			slog.String("subject", msg.Subject()),
			slog.String("error", err.Error()),
		)
	}
}
