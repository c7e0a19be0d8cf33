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

package cli

import (
	"context"
	"time"
)

// ShutdownTimeout bounds how long a component may take to stop once the
// process is signalled. The ingest consumer uses it to finish recording
// delivered messages.
const ShutdownTimeout = 10 * time.Second

// Lifecycle is a long-running component of the audit log: the API server,
// the ingest consumer, the maintenance job or the embedded NATS server.
type Lifecycle interface {
	// Start launches the component in the background.
	Start()
	// Stop shuts the component down, giving up when ctx expires.
	Stop(ctx context.Context)
}

// RunServer waits for ctx to be cancelled, stops l within ShutdownTimeout,
// then runs cleanupFns in order. Cleanups close what the components
// depended on, such as the store and the NATS connection.
func RunServer(
	ctx context.Context,
	l Lifecycle,
	cleanupFns ...func(),
) {
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	l.Stop(stopCtx)

	for _, fn := range cleanupFns {
		fn()
	}
}

// Group runs several components as one. Members start in order and stop
// in reverse, so the API stops taking requests before ingest and
// maintenance stop writing.
type Group []Lifecycle

// Start starts every member.
func (g Group) Start() {
	for _, l := range g {
		l.Start()
	}
}

// Stop stops every member, last started first. All members share ctx.
func (g Group) Stop(
	ctx context.Context,
) {
	for i := len(g) - 1; i >= 0; i-- {
		g[i].Stop(ctx)
	}
}
