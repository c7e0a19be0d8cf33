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

	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/cli"
)

var purgeDomain string

// purgeCmd represents the purge command.
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every audit event of a domain",
	Long: `Delete every audit event of a domain directly in the configured store.
Use "client audit purge" to do the same through the API as a domain admin.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		log := logger.With("component", "purge")

		sb := openStoreDirect(ctx, log)
		defer sb.close()

		service := audit.NewService(log, sb.store, limits())
		if err := service.DeleteAllByDomain(ctx, purgeDomain); err != nil {
			sb.close()
			cli.LogFatal(log, "purge failed", err, slog.String("domain", purgeDomain))
		}

		fmt.Println()
		cli.PrintKV("Purged", purgeDomain)
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringVar(&purgeDomain, "domain", "", "Domain to purge (required)")
	_ = purgeCmd.MarkFlagRequired("domain")
}
