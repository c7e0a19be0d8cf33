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
	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/cli"
	"github.com/retr0h/auditlog/internal/maintenance"
)

// maintenanceCmd represents the maintenance command.
var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "The store maintenance subcommand",
}

// maintenanceRunCmd represents the maintenanceRun command.
var maintenanceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run store maintenance once",
	Long: `Run one maintenance pass against the configured store: events past
the retention period are removed. The API server runs the same pass on the
configured schedule when maintenance is enabled.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		log := logger.With("component", "maintenance")

		sb := openStoreDirect(ctx, log)
		defer sb.close()

		job, err := maintenance.New(log, sb.maintainer, appConfig.Maintenance.Schedule)
		if err != nil {
			sb.close()
			cli.LogFatal(log, "failed to create maintenance job", err)
		}

		if err := job.Run(ctx); err != nil {
			sb.close()
			cli.LogFatal(log, "maintenance failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(maintenanceCmd)
	maintenanceCmd.AddCommand(maintenanceRunCmd)
}
