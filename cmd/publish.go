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
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/auditlog/internal/cli"
	"github.com/retr0h/auditlog/internal/ingest"
	"github.com/retr0h/auditlog/internal/messaging"
)

var (
	publishSubject string
	publishMessage ingest.Message
	publishFailed  bool
)

// publishCmd represents the publish command.
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish an audit event to the ingest stream",
	Long: `Publish one audit event to the ingest stream, the way producers do.
The API server's ingest consumer records it.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		log := logger.With("component", "publish")
		connCfg := appConfig.API.Server.NATS

		tb := initTelemetry(ctx, "auditlog-cli")
		defer tb.shutdown()

		conn := connectNATS(log, connCfg)
		defer conn.Close()

		msg := publishMessage
		msg.Success = !publishFailed
		if msg.Occurred.IsZero() {
			msg.Occurred = time.Now().UTC()
		}

		subject := messaging.SubjectName(connCfg.Namespace, publishSubject)
		if err := ingest.NewPublisher(conn.JS, subject).Publish(ctx, msg); err != nil {
			conn.Close()
			cli.LogFatal(log, "failed to publish audit event", err, slog.String("subject", subject))
		}

		fmt.Println()
		cli.PrintKV("Subject", subject, "Type", msg.Type)
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().
		StringVar(&publishSubject, "subject", "audit.events.log", "Subject to publish to")
	publishCmd.Flags().
		StringVar(&publishMessage.Domain, "domain", "", "Domain of the event (required)")
	publishCmd.Flags().
		StringVar(&publishMessage.UserLogin, "user", "", "Acting user (required)")
	publishCmd.Flags().
		StringVar(&publishMessage.Type, "type", "", "Event type (required)")
	publishCmd.Flags().
		StringVar(&publishMessage.UserIP, "ip", "", "Client IP of the acting user")
	publishCmd.Flags().
		StringToStringVar(&publishMessage.Params, "param", nil, "Event parameter as key=value")
	publishCmd.Flags().
		BoolVar(&publishFailed, "failed", false, "Record the action as failed")

	_ = publishCmd.MarkFlagRequired("domain")
	_ = publishCmd.MarkFlagRequired("user")
	_ = publishCmd.MarkFlagRequired("type")
}
