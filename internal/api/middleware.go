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
	"errors"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/auditlog/internal/api/common"
	"github.com/retr0h/auditlog/internal/domain"
	"github.com/retr0h/auditlog/internal/telemetry"
)

// userMiddleware reads the caller's user id from header, resolves the
// domain the user belongs to and stores both on the request context.
func userMiddleware(
	header string,
	resolver domain.Resolver,
	logger *slog.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := strings.TrimSpace(c.Request().Header.Get(header))
			if user == "" {
				return common.WriteError(c, common.ErrUserNotSpecified)
			}

			d, err := resolver.FindDomainForUser(c.Request().Context(), user)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					logger.Error(
						"resolving user domain",
						slog.String("user", user),
						slog.String("error", err.Error()),
					)
				}
				return common.WriteError(c, err)
			}

			c.Set(common.ContextKeyUser, user)
			c.Set(common.ContextKeyDomain, d)

			ctx := telemetry.ContextWithAttrs(
				c.Request().Context(),
				slog.String("domain", d),
				slog.String("user", user),
			)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
