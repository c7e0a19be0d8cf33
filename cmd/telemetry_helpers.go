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
	"net/http"

	"github.com/retr0h/auditlog/internal/cli"
	"github.com/retr0h/auditlog/internal/telemetry"
)

// telemetryBundle holds the Prometheus scrape endpoint and the shutdown
// hooks of the tracer and meter providers.
type telemetryBundle struct {
	metricsHandler http.Handler
	metricsPath    string
	shutdownFns    []func(context.Context) error
}

func (b *telemetryBundle) shutdown() {
	for _, fn := range b.shutdownFns {
		_ = fn(context.Background())
	}
}

func initTelemetry(
	ctx context.Context,
	serviceName string,
) *telemetryBundle {
	svc := telemetry.Service{Name: serviceName, Version: version}

	shutdownTracer, err := telemetry.InitTracer(ctx, svc, appConfig.Telemetry.Tracing)
	if err != nil {
		cli.LogFatal(logger, "failed to initialize tracer", err)
	}

	meter, err := telemetry.InitMeter(ctx, svc, appConfig.Telemetry.Metrics)
	if err != nil {
		cli.LogFatal(logger, "failed to initialize meter", err)
	}

	return &telemetryBundle{
		metricsHandler: meter.Handler,
		metricsPath:    meter.Path,
		shutdownFns:    []func(context.Context) error{meter.Shutdown, shutdownTracer},
	}
}
