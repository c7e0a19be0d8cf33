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
	"net/http"

	"github.com/labstack/echo/v4"
)

// DeleteDomainEvents purges every event of the caller's domain.
func (a *Audit) DeleteDomainEvents(
	c echo.Context,
) error {
	ctx := c.Request().Context()
	user, domain := identity(c)

	if err := a.Resolver.AuthorizeAdmin(ctx, user, domain); err != nil {
		return a.fail(c, err)
	}

	if err := a.Service.DeleteAllByDomain(ctx, domain); err != nil {
		return a.fail(c, err)
	}

	a.logger.InfoContext(ctx, "domain events purged")

	return c.NoContent(http.StatusNoContent)
}
