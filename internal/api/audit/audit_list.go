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

package audit

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/auditlog/internal/api/common"
	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/audit/dto"
)

// GetDomainEvents returns one page of the caller's domain events. The caller
// must administer the domain.
func (a *Audit) GetDomainEvents(
	c echo.Context,
) error {
	ctx := c.Request().Context()
	user, domain := identity(c)

	if err := a.Resolver.AuthorizeAdmin(ctx, user, domain); err != nil {
		return a.fail(c, err)
	}

	req, err := a.Service.ParseParams(rawParams(c))
	if err != nil {
		return a.fail(c, err)
	}

	page, err := a.Service.FindByDomain(ctx, domain, req)
	if err != nil {
		return a.fail(c, err)
	}

	return a.respond(c, page, req)
}

// GetUserEvents returns one page of the events the caller caused.
func (a *Audit) GetUserEvents(
	c echo.Context,
) error {
	ctx := c.Request().Context()
	user, domain := identity(c)

	req, err := a.Service.ParseParams(rawParams(c))
	if err != nil {
		return a.fail(c, err)
	}

	page, err := a.Service.FindByDomainAndUser(ctx, domain, user, req)
	if err != nil {
		return a.fail(c, err)
	}

	return a.respond(c, page, req)
}

func (a *Audit) respond(
	c echo.Context,
	page audit.Page,
	req audit.Request,
) error {
	body, err := dto.BuildPage(c.Request().URL.Path, page.Items, page.HasMore, &req)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusOK, body)
}

func (a *Audit) fail(
	c echo.Context,
	err error,
) error {
	status, detail := common.Classify(err)
	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(
			c.Request().Context(),
			"audit request failed",
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}

	return c.JSON(status, common.ErrorResponse{Error: detail})
}

func identity(
	c echo.Context,
) (string, string) {
	user, _ := c.Get(common.ContextKeyUser).(string)
	domain, _ := c.Get(common.ContextKeyDomain).(string)

	return user, domain
}

func rawParams(
	c echo.Context,
) audit.RawParams {
	return audit.RawParams{
		Offset: c.QueryParam(audit.ParamOffset),
		From:   c.QueryParam(audit.ParamFrom),
		To:     c.QueryParam(audit.ParamTo),
		Limit:  c.QueryParam(audit.ParamLimit),
		Type:   c.QueryParam(audit.ParamType),
	}
}
