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

// Package common holds the error envelope shared by every API handler.
package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/domain"
)

// Error classes reported in the errorClass field.
const (
	ClassValidation       = "ValidationError"
	ClassTypeMismatch     = "TypeMismatchError"
	ClassUserNotSpecified = "UserNotSpecifiedError"
	ClassUserNotFound     = "UserNotFoundError"
	ClassNotAdmin         = "UserNotDomainAdminError"
	ClassStoreUnavailable = "StoreUnavailableError"
	ClassNotFound         = "NotFoundError"
	ClassInternal         = "InternalError"
)

// Client messages that are part of the API contract.
const (
	MsgUserNotSpecified = "User ID is not specified"
	MsgNotAdmin         = "User is not admin"
	MsgUserNotFound     = "User not found"
	MsgStoreUnavailable = "Audit log store is unavailable"
	MsgInternal         = "Internal server error"
)

// ErrUserNotSpecified is returned when a request carries no user header.
var ErrUserNotSpecified = errors.New("user id is not specified")

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	ErrorClass string `json:"errorClass"`
	Message    string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Classify maps an error to its HTTP status and client-facing detail.
// Internal failures never leak their message.
func Classify(
	err error,
) (int, ErrorDetail) {
	var (
		validationErr *audit.ValidationError
		mismatchErr   *audit.TypeMismatchError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorDetail{ClassValidation, validationErr.Error()}
	case errors.As(err, &mismatchErr):
		return http.StatusBadRequest, ErrorDetail{ClassTypeMismatch, mismatchErr.Error()}
	case errors.Is(err, ErrUserNotSpecified):
		return http.StatusBadRequest, ErrorDetail{ClassUserNotSpecified, MsgUserNotSpecified}
	case errors.Is(err, domain.ErrNotAdmin):
		return http.StatusUnauthorized, ErrorDetail{ClassNotAdmin, MsgNotAdmin}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrorDetail{ClassUserNotFound, MsgUserNotFound}
	case errors.Is(err, audit.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrorDetail{ClassStoreUnavailable, MsgStoreUnavailable}
	case errors.As(err, &httpErr):
		// Middleware wraps plain handler errors in a 500 HTTPError whose
		// Internal field holds the cause.
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, ErrorDetail{ClassInternal, MsgInternal}
		}
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		if httpErr.Code == http.StatusNotFound {
			return httpErr.Code, ErrorDetail{ClassNotFound, msg}
		}
		return httpErr.Code, ErrorDetail{ClassInternal, msg}
	default:
		return http.StatusInternalServerError, ErrorDetail{ClassInternal, MsgInternal}
	}
}

// WriteError renders err as an ErrorResponse.
func WriteError(
	c echo.Context,
	err error,
) error {
	status, detail := Classify(err)
	return c.JSON(status, ErrorResponse{Error: detail})
}
