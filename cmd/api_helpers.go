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
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/auditlog/internal/api"
	"github.com/retr0h/auditlog/internal/api/health"
	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/cli"
	"github.com/retr0h/auditlog/internal/domain"
	"github.com/retr0h/auditlog/internal/ingest"
	"github.com/retr0h/auditlog/internal/maintenance"
	"github.com/retr0h/auditlog/internal/messaging"
)

// apiBundle is everything the API server runs, in start order, plus what
// has to be released once it stopped.
type apiBundle struct {
	components cli.Group
	closeFns   []func()
}

func (b *apiBundle) close() {
	for i := len(b.closeFns) - 1; i >= 0; i-- {
		b.closeFns[i]()
	}
}

// setupAPIServer opens the store and builds the API server together with
// the ingest consumer and maintenance job when they are enabled. It is used
// by the standalone API server start and combined start commands.
func setupAPIServer(
	ctx context.Context,
	log *slog.Logger,
	metricsHandler http.Handler,
	metricsPath string,
) *apiBundle {
	connCfg := appConfig.API.Server.NATS
	bundle := &apiBundle{}

	var conn *messaging.Conn
	components := make([]health.Component, 0, 2)
	if needsNATS() {
		conn = connectNATS(log, connCfg)
		bundle.closeFns = append(bundle.closeFns, conn.Close)
		components = append(components, natsComponent(conn))
	}

	sb := openStore(ctx, log, conn, connCfg.Namespace)
	bundle.closeFns = append(bundle.closeFns, sb.close)
	components = append(components, sb.components...)

	service := audit.NewService(log, sb.store, limits())
	resolver := domain.NewStaticResolver(appConfig.Domains)

	var opts []api.Option
	if appConfig.API.Server.RecordPurges {
		opts = append(opts, api.WithRecorder(service))
	}

	sm := api.New(appConfig, log, opts...)
	registerAPIHandlers(
		sm,
		service,
		resolver,
		health.NewDependencyChecker(components...),
		metricsHandler,
		metricsPath,
	)
	bundle.components = append(bundle.components, sm)

	if appConfig.NATS.Stream.Enabled {
		bundle.components = append(
			bundle.components,
			setupIngest(ctx, log.With("component", "ingest"), conn, connCfg.Namespace, service),
		)
	}

	if appConfig.Maintenance.Enabled {
		job, err := maintenance.New(
			log.With("component", "maintenance"),
			sb.maintainer,
			appConfig.Maintenance.Schedule,
		)
		if err != nil {
			cli.LogFatal(log, "failed to create maintenance job", err)
		}
		bundle.components = append(bundle.components, job)
	}

	return bundle
}

// setupIngest binds a durable consumer on the ingest stream.
func setupIngest(
	ctx context.Context,
	log *slog.Logger,
	conn *messaging.Conn,
	namespace string,
	recorder ingest.Recorder,
) *ingest.Consumer {
	stream, err := conn.EnsureStream(
		ctx,
		cli.BuildIngestStreamConfig(namespace, appConfig.NATS.Stream),
	)
	if err != nil {
		cli.LogFatal(log, "failed to create ingest stream", err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(
		ctx,
		cli.BuildIngestConsumerConfig(namespace, appConfig.NATS.Stream),
	)
	if err != nil {
		cli.LogFatal(log, "failed to create ingest consumer", err)
	}

	return ingest.New(log, recorder, consumer)
}

func registerAPIHandlers(
	sm *api.Server,
	service *audit.Service,
	resolver domain.Resolver,
	checker health.Checker,
	metricsHandler http.Handler,
	metricsPath string,
) {
	startTime := time.Now()

	handlers := make([]func(e *echo.Echo), 0, 3)
	handlers = append(handlers, sm.GetAuditHandler(service, resolver)...)
	handlers = append(handlers, sm.GetHealthHandler(checker, startTime, version)...)
	handlers = append(handlers, sm.GetMetricsHandler(metricsHandler, metricsPath)...)

	sm.RegisterHandlers(handlers)
}
