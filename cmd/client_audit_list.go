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
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/audit/dto"
	"github.com/retr0h/auditlog/internal/cli"
)

var auditListNext string

// clientAuditListCmd represents the clientAuditList command.
var clientAuditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit events",
	Long: `List one page of audit events, oldest first.

Pass the printed next link back with --next to read the following page.
The admin scope requires the user to be an administrator of its domain.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		var (
			page dto.AuditEventsDTO
			err  error
		)
		if auditListNext != "" {
			page, err = apiClient.FollowAuditEvents(ctx, auditListNext)
		} else {
			scope, scopeErr := scopeFromFlag()
			if scopeErr != nil {
				cli.LogFatal(logger, "invalid flag", scopeErr)
			}
			page, err = apiClient.ListAuditEvents(ctx, scope, auditParams)
		}
		if err != nil {
			cli.HandleError(err, logger)
			return
		}

		if jsonOutput {
			out, _ := json.Marshal(page)
			fmt.Println(string(out))
			return
		}

		cli.DisplayAuditPage(page, time.Now())
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditListCmd)
	addAuditQueryFlags(clientAuditListCmd)

	clientAuditListCmd.Flags().
		StringVar(&auditParams.Offset, "offset", "", "Start after this event id")
	clientAuditListCmd.Flags().
		StringVar(&auditListNext, "next", "", "Next link of a previous page")
}
