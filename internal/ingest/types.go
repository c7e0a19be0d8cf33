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

// Package ingest consumes audit events published to JetStream and records
// them through the audit service.
package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/auditlog/internal/audit"
)

// Recorder stores one event and returns it with its assigned identifier.
type Recorder interface {
	Log(ctx context.Context, event audit.Event) (audit.Event, error)
}

// Message is the payload producers publish.
type Message struct {
	Domain    string            `json:"domain"`
	UserLogin string            `json:"userLogin"`
	Occurred  time.Time         `json:"occurred"`
	UserIP    string            `json:"userIp,omitempty"`
	Success   bool              `json:"success"`
	Type      string            `json:"type"`
	Params    map[string]string `json:"params,omitempty"`
	Links     map[string]string `json:"links,omitempty"`
}

// Event converts the message to an event without an identifier.
func (m Message) Event() audit.Event {
	return audit.Event{
		Domain:     m.Domain,
		UserLogin:  m.UserLogin,
		OccurredAt: m.Occurred,
		IP:         m.UserIP,
		Success:    m.Success,
		Type:       m.Type,
		Params:     m.Params,
		Links:      m.Links,
	}
}

// Consumer drains a durable JetStream consumer into a Recorder.
type Consumer struct {
	logger   *slog.Logger
	recorder Recorder
	consumer jetstream.Consumer

	mu         sync.Mutex
	consumeCtx jetstream.ConsumeContext
}
