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
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/auditlog/internal/telemetry"
)

// Publisher sends audit messages to the ingestion stream.
type Publisher struct {
	js      jetstream.JetStream
	subject string
}

// NewPublisher creates a Publisher sending to subject.
func NewPublisher(
	js jetstream.JetStream,
	subject string,
) *Publisher {
	return &Publisher{
		js:      js,
		subject: subject,
	}
}

// Publish sends m and waits for the stream to acknowledge it. The current
// trace context travels in the message headers.
func (p *Publisher) Publish(
	ctx context.Context,
	m Message,
) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling audit message: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	telemetry.InjectMsgTraceContext(ctx, msg)

	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("publishing audit message: %w", err)
	}

	return nil
}
