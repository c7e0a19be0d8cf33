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

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/cli"
)

// startCmd represents the top-level start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start all components (NATS, API server, ingest, maintenance)",
	Long: `Start the embedded NATS server and the API server in a single process.

This is the recommended way to run auditlog on a single host. NATS starts
first, then the API server with the ingest consumer and the maintenance job
when they are enabled. Everything shuts down in reverse order on
SIGINT/SIGTERM.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		tb := initTelemetry(ctx, "auditlog")

		natsServer := setupNATSServer(logger.With("component", "nats"))
		bundle := setupAPIServer(
			ctx,
			logger.With("component", "api"),
			tb.metricsHandler,
			tb.metricsPath,
		)

		bundle.components.Start()
		cli.RunServer(ctx, bundle.components, bundle.close, func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			natsServer.Stop(stopCtx)
		}, tb.shutdown)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
