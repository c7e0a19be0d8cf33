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

	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/client"
)

var (
	auditScope  string
	auditParams client.ListParams
)

// clientAuditCmd represents the clientAudit command.
var clientAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "The audit subcommand",
}

// scopeFromFlag resolves the --scope flag.
func scopeFromFlag() (client.Scope, error) {
	switch client.Scope(auditScope) {
	case client.ScopeAdmin, client.ScopeUser:
		return client.Scope(auditScope), nil
	default:
		return "", fmt.Errorf("scope %q is not supported, use \"admin\" or \"user\"", auditScope)
	}
}

// addAuditQueryFlags registers the filters shared by list and export.
func addAuditQueryFlags(
	cmd *cobra.Command,
) {
	cmd.Flags().
		StringVar(&auditScope, "scope", string(client.ScopeUser), "Events to read: admin (whole domain) or user (own)")
	cmd.Flags().
		StringVar(&auditParams.From, "from", "", "Inclusive lower bound on the recorded time")
	cmd.Flags().
		StringVar(&auditParams.To, "to", "", "Exclusive upper bound on the recorded time")
	cmd.Flags().
		StringVar(&auditParams.Type, "type", "", "Only events of this type")
	cmd.Flags().
		IntVar(&auditParams.Limit, "limit", 0, "Page size; the server default when zero")
}

func init() {
	clientCmd.AddCommand(clientAuditCmd)
}
