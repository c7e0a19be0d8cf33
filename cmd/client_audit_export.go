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
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/audit/export"
	"github.com/retr0h/auditlog/internal/cli"
)

var (
	auditExportOutput  string
	auditExportBackend string
	auditExportResume  string
)

// clientAuditExportCmd represents the clientAuditExport command.
var clientAuditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit events to a file",
	Long: `Export every matching audit event to a file for long-term retention.

Pages are followed by cursor until the last one and each event is appended
as a JSON line (JSONL format). An interrupted export resumes with --resume
and the last exported id.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		scope, err := scopeFromFlag()
		if err != nil {
			cli.LogFatal(logger, "invalid flag", err)
		}

		var exporter export.Exporter
		switch auditExportBackend {
		case "file":
			exporter = export.NewFileExporter(appFs, auditExportOutput)
		default:
			cli.LogFatal(
				logger,
				"unsupported export backend",
				fmt.Errorf("backend %q is not supported, use \"file\"", auditExportBackend),
			)
		}

		params := auditParams
		if auditExportResume != "" {
			params.From = ""
			params.Offset = auditExportResume
		}

		result, err := export.Run(
			ctx,
			logger,
			apiClient.Fetcher(scope, params),
			exporter,
			"",
			func(exported int, pages int) {
				logger.Debug(
					"export progress",
					slog.Int("exported", exported),
					slog.Int("pages", pages),
				)
			},
		)
		if err != nil {
			cli.HandleError(err, logger)
			if result != nil && result.LastID != "" {
				cli.PrintKV("Resume", result.LastID)
			}
			return
		}

		fmt.Println()
		cli.PrintKV(
			"Exported", strconv.Itoa(result.ExportedEntries),
			"Pages", strconv.Itoa(result.Pages),
		)
		cli.PrintKV("Output", auditExportOutput)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditExportCmd)
	addAuditQueryFlags(clientAuditExportCmd)

	clientAuditExportCmd.Flags().
		StringVar(&auditExportOutput, "output", "", "Output file path (required)")
	clientAuditExportCmd.Flags().
		StringVar(&auditExportBackend, "backend", "file", "Export backend")
	clientAuditExportCmd.Flags().
		StringVar(&auditExportResume, "resume", "", "Continue after this event id")
	_ = clientAuditExportCmd.MarkFlagRequired("output")
}
