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
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/retr0h/auditlog/internal/cli"
	"github.com/retr0h/auditlog/internal/config"
	"github.com/retr0h/auditlog/internal/telemetry"
)

// version is reported by the health status endpoint.
const version = "0.1.0"

var (
	appConfig  config.Config
	appFs      = afero.NewOsFs()
	logger     = slog.New(slog.NewTextHandler(os.Stdout, nil))
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "auditlog",
	Short: "A per-domain audit event store with cursor paging.",
	Long: `A per-domain audit event store with cursor paging.

Events are ingested from NATS JetStream, kept in a NATS KV bucket,
PostgreSQL or memory, and served to domain administrators and users
page by page.

https://github.com/retr0h/auditlog
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogger, initConfig)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")

	rootCmd.PersistentFlags().
		StringP("config", "f", "/etc/auditlog/auditlog.yaml", "Path to config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("configFile", rootCmd.PersistentFlags().Lookup("config"))
}

func setDefaults() {
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.paging.default_limit", 100)
	viper.SetDefault("store.paging.max_limit", 1000)

	viper.SetDefault("api.client.url", "http://0.0.0.0:8080")
	viper.SetDefault("api.server.port", 8080)
	viper.SetDefault("api.server.record_purges", true)
	viper.SetDefault("api.server.nats.host", "localhost")
	viper.SetDefault("api.server.nats.port", 4222)
	viper.SetDefault("api.server.nats.client_name", "auditlog-api")

	viper.SetDefault("nats.server.host", "localhost")
	viper.SetDefault("nats.server.port", 4222)
	viper.SetDefault("nats.server.store_dir", "/tmp/auditlog-nats")
	viper.SetDefault("nats.audit.bucket", "audit-events")
	viper.SetDefault("nats.audit.storage", "file")
	viper.SetDefault("nats.audit.replicas", 1)
	viper.SetDefault("nats.stream.name", "AUDIT_EVENTS")
	viper.SetDefault("nats.stream.subjects", "audit.events.>")
	viper.SetDefault("nats.stream.storage", "file")
	viper.SetDefault("nats.stream.replicas", 1)
	viper.SetDefault("nats.stream.consumer", "audit-ingest")
	viper.SetDefault("nats.stream.max_deliver", 5)
	viper.SetDefault("nats.stream.ack_wait", "30s")

	viper.SetDefault("maintenance.schedule", "0 0 0 * * *")
}

func initConfig() {
	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetFs(appFs)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("auditlog")
	viper.SetConfigFile(viper.GetString("configFile"))

	if err := viper.ReadInConfig(); err != nil {
		cli.LogFatal(logger, "failed to read config", err, "configFile", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		cli.LogFatal(logger, "failed to unmarshal config", err, "configFile", viper.ConfigFileUsed())
	}

	// Debug turns on log correlation only; no exporter is configured.
	if appConfig.Debug && !appConfig.Telemetry.Tracing.Enabled {
		appConfig.Telemetry.Tracing.Enabled = true
	}

	cli.ValidateConfig(logger, &appConfig)

	if appConfig.Debug {
		masked, err := cli.MaskConfig(appConfig)
		if err != nil {
			logger.Warn("failed to mask config", slog.String("error", err.Error()))
			return
		}
		logger.Debug(
			"loaded configuration",
			slog.String("configFile", viper.ConfigFileUsed()),
			slog.Any("config", masked),
		)
	}
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}

	handler = telemetry.NewContextHandler(handler)
	logger = slog.New(handler)
}
