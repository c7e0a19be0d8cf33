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

// Package export walks audit event pages by cursor and hands each event to
// a pluggable sink.
package export

import (
	"context"

	"github.com/retr0h/auditlog/internal/audit/dto"
)

// Fetcher returns the page addressed by uri. An empty uri requests the
// first page; later calls receive the previous page's nextUri verbatim.
type Fetcher func(
	ctx context.Context,
	uri string,
) (dto.AuditEventsDTO, error)

// Exporter receives events in cursor order.
type Exporter interface {
	Open(ctx context.Context) error
	Write(ctx context.Context, event dto.AuditEventDTO) error
	Close(ctx context.Context) error
}

// Checkpointer is implemented by exporters that can make every event
// written so far durable. Run checkpoints after each page, so LastID of an
// interrupted run always names an event that reached the sink.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// Result summarizes an export run.
type Result struct {
	ExportedEntries int
	Pages           int
	// LastID is the id of the last exported event; resume by passing it as
	// the offset of a fresh run.
	LastID string
}

// ProgressFunc is called after each page with the running exported count
// and the number of pages read.
type ProgressFunc func(exported int, pages int)
