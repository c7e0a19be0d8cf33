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
	"sort"

	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/api/health"
	"github.com/retr0h/auditlog/internal/cli"
)

// clientHealthCmd represents the clientHealth command.
var clientHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Server status and component health",
	Long: `Show the server version, uptime and the health of each component
the server depends on.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		status, err := apiClient.GetHealthStatus(cmd.Context())
		if err != nil {
			cli.HandleError(err, logger)
			return
		}

		if jsonOutput {
			out, _ := json.Marshal(status)
			fmt.Println(string(out))
			return
		}

		displayStatusHealth(status)
	},
}

// displayStatusHealth renders health status output.
func displayStatusHealth(
	data health.StatusResponse,
) {
	fmt.Println()
	cli.PrintKV("Status", data.Status, "Version", data.Version, "Uptime", data.Uptime)

	if len(data.Components) == 0 {
		return
	}

	names := make([]string, 0, len(data.Components))
	for name := range data.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		component := data.Components[name]
		rows = append(rows, []string{name, component.Status, cli.SafeString(component.Error)})
	}

	cli.PrintCompactTable([]cli.Section{{
		Title:   "Components",
		Headers: []string{"COMPONENT", "STATUS", "ERROR"},
		Rows:    rows,
	}})
}

func init() {
	clientCmd.AddCommand(clientHealthCmd)
}
