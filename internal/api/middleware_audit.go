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
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/auditlog/internal/api/common"
	"github.com/retr0h/auditlog/internal/audit"
)

// recordedMethods maps the audited HTTP methods to the recorded event type.
var recordedMethods = map[string]string{
	http.MethodDelete: "audit_purged",
}

// auditMiddleware returns Echo middleware that records mutating requests
// as audit events of the caller's domain. It must run after userMiddleware.
func auditMiddleware(
	recorder Recorder,
	logger *slog.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			eventType, ok := recordedMethods[c.Request().Method]
			if !ok {
				return next(c)
			}

			start := time.Now()

			err := next(c)

			user, _ := c.Get(common.ContextKeyUser).(string)
			domainName, _ := c.Get(common.ContextKeyDomain).(string)
			if user == "" || domainName == "" {
				return err
			}

			status := c.Response().Status
			if err != nil {
				status, _ = common.Classify(err)
			}

			event := audit.Event{
				Domain:     domainName,
				UserLogin:  user,
				OccurredAt: start.UTC(),
				IP:         c.RealIP(),
				Success:    status < http.StatusBadRequest,
				Type:       eventType,
				Params: map[string]string{
					"method": c.Request().Method,
					"path":   c.Request().URL.Path,
					"status": strconv.Itoa(status),
				},
			}

			ctx := context.WithoutCancel(c.Request().Context())
			if _, logErr := recorder.Log(ctx, event); logErr != nil {
				logger.WarnContext(
					ctx,
					"failed to record audit event",
					slog.String("type", eventType),
					slog.String("error", logErr.Error()),
				)
			}

			return err
		}
	}
}
