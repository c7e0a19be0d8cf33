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
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every error caused by malformed client input.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable wraps failures of the underlying store. Callers may
	// retry; nothing in this package does.
	ErrStoreUnavailable = errors.New("audit store unavailable")
	// ErrNilArgument marks a required reference that was not supplied.
	ErrNilArgument = errors.New("required argument is nil")
	// ErrInvalidQuery marks a query that violates the translator contract.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidEvent marks an event missing a required field.
	ErrInvalidEvent = errors.New("invalid audit event")
	// ErrDuplicateEvent is returned when an identifier is already stored.
	ErrDuplicateEvent = errors.New("duplicate audit event")
)

// Messages returned to clients verbatim.
const (
	MsgOffsetAndFrom   = `offset and time interval param "from" cannot be specified at once`
	MsgInvalidInterval = `"to" must be after "before"`
)

// ValidationError rejects a request whose parameters are individually well
// formed but not acceptable, or whose cursor cannot be decoded.
type ValidationError struct {
	// Param is the offending parameter name.
	Param string
	// Value is the raw value as supplied by the client.
	Value   string
	message string
}

// NewValidationError creates a ValidationError with the given client message.
func NewValidationError(
	param string,
	value string,
	message string,
) *ValidationError {
	return &ValidationError{
		Param:   param,
		Value:   value,
		message: message,
	}
}

func (e *ValidationError) Error() string {
	return e.message
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(
	target error,
) bool {
	return target == ErrValidation
}

// TypeMismatchError rejects a parameter that does not parse as its type.
type TypeMismatchError struct {
	Param string
	Value string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Value \"%s\" is not valid for parameter \"%s\"", e.Value, e.Param)
}

// Is makes every TypeMismatchError match ErrValidation.
func (e *TypeMismatchError) Is(
	target error,
) bool {
	return target == ErrValidation
}
