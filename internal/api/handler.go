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

package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	auditapi "github.com/retr0h/auditlog/internal/api/audit"
	"github.com/retr0h/auditlog/internal/api/health"
	"github.com/retr0h/auditlog/internal/api/metrics"
	"github.com/retr0h/auditlog/internal/domain"
)

// Audit routes.
const (
	AuditBasePath   = "/gdc/audit"
	AdminEventsPath = AuditBasePath + "/admin/events"
	UserEventsPath  = AuditBasePath + "/user/events"
)

// GetAuditHandler returns audit handler for registration.
func (s *Server) GetAuditHandler(
	service auditapi.Service,
	resolver domain.Resolver,
) []func(e *echo.Echo) {
	auditHandler := auditapi.New(s.logger, service, resolver)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			middlewares := []echo.MiddlewareFunc{userMiddleware(s.userHeader, resolver, s.logger)}
			if s.recorder != nil {
				middlewares = append(middlewares, auditMiddleware(s.recorder, s.logger))
			}

			g := e.Group(AuditBasePath, middlewares...)
			g.GET("/admin/events", auditHandler.GetDomainEvents)
			g.DELETE("/admin/events", auditHandler.DeleteDomainEvents)
			g.GET("/user/events", auditHandler.GetUserEvents)
		},
	}
}

// GetHealthHandler returns health handler for registration.
func (s *Server) GetHealthHandler(
	checker health.Checker,
	startTime time.Time,
	version string,
) []func(e *echo.Echo) {
	healthHandler := health.New(s.logger, checker, startTime, version)

	return []func(e *echo.Echo){
		healthHandler.RegisterHandlers,
	}
}

// GetMetricsHandler returns the Prometheus scrape endpoint for registration.
func (s *Server) GetMetricsHandler(
	handler http.Handler,
	path string,
) []func(e *echo.Echo) {
	return []func(e *echo.Echo){
		metrics.New(handler, path).RegisterHandler(),
	}
}
