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

// Package health provides health check API handlers.
package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health serves liveness, readiness and status probes.
type Health struct {
	Checker   Checker
	StartTime time.Time
	Version   string

	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	checker Checker,
	startTime time.Time,
	version string,
) *Health {
	return &Health{
		Checker:   checker,
		StartTime: startTime,
		Version:   version,
		logger:    logger,
	}
}

// RegisterHandlers mounts the probes on e.
func (h *Health) RegisterHandlers(
	e *echo.Echo,
) {
	e.GET("/health", h.GetHealth)
	e.GET("/health/ready", h.GetHealthReady)
	e.GET("/health/status", h.GetHealthStatus)
}

// GetHealth liveness probe, always 200 while the process serves requests.
func (h *Health) GetHealth(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetHealthReady readiness probe, 200 when dependencies are reachable.
func (h *Health) GetHealthReady(
	c echo.Context,
) error {
	if err := h.Checker.CheckHealth(c.Request().Context()); err != nil {
		h.logger.Warn(
			"readiness check failed",
			slog.String("error", err.Error()),
		)
		errMsg := err.Error()
		return c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Error:  &errMsg,
		})
	}

	return c.JSON(http.StatusOK, ReadyResponse{Status: "ready"})
}

// GetHealthStatus returns per-component health.
func (h *Health) GetHealthStatus(
	c echo.Context,
) error {
	resp := StatusResponse{
		Status:     "ok",
		Components: map[string]ComponentHealth{},
		Version:    h.Version,
		Uptime:     time.Since(h.StartTime).Round(time.Second).String(),
	}

	checker, ok := h.Checker.(*DependencyChecker)
	if !ok {
		return c.JSON(http.StatusOK, resp)
	}

	for name, err := range checker.CheckComponents(c.Request().Context()) {
		if err != nil {
			errMsg := err.Error()
			resp.Components[name] = ComponentHealth{Status: "error", Error: &errMsg}
			resp.Status = "degraded"
			continue
		}
		resp.Components[name] = ComponentHealth{Status: "ok"}
	}

	return c.JSON(http.StatusOK, resp)
}
