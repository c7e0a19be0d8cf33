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
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Query parameter names as they appear on the wire.
const (
	ParamOffset = "offset"
	ParamFrom   = "from"
	ParamTo     = "to"
	ParamLimit  = "limit"
	ParamType   = "type"
)

// timeLayouts are tried in order when parsing from and to.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Limits bounds the page size of a request.
type Limits struct {
	// Default is used when the request carries no limit.
	Default int
	// Max caps the page size; larger requests are clamped.
	Max int
}

// DefaultLimits are used when the configuration does not override them.
var DefaultLimits = Limits{
	Default: 100,
	Max:     1000,
}

// RawParams holds the query string of a retrieval request. An empty string
// means the parameter was not supplied.
type RawParams struct {
	Offset string
	From   string
	To     string
	Limit  string
	Type   string
}

// Request is a validated retrieval request. It is never modified after
// ParseParams returns it.
type Request struct {
	// Offset resumes after this identifier.
	Offset *bson.ObjectID
	// From is an inclusive lower bound on RecordedAt.
	From *time.Time
	// To is an exclusive upper bound on RecordedAt.
	To *time.Time
	// Limit is the page size.
	Limit int
	// Type restricts the page to one event type when not empty.
	Type string
}

// ParseParams validates raw parameters using DefaultLimits.
func ParseParams(
	raw RawParams,
) (Request, error) {
	return DefaultLimits.Parse(raw)
}

// Parse validates raw parameters. Offset and from are checked for mutual
// exclusion before anything is parsed, and the interval before the cursor,
// so both checks report their fixed message whatever else is wrong.
func (l Limits) Parse(
	raw RawParams,
) (Request, error) {
	if raw.Offset != "" && raw.From != "" {
		return Request{}, NewValidationError(ParamOffset, raw.Offset, MsgOffsetAndFrom)
	}

	req := Request{
		Limit: l.Default,
		Type:  raw.Type,
	}

	if raw.From != "" {
		from, err := parseTime(raw.From)
		if err != nil {
			return Request{}, &TypeMismatchError{Param: ParamFrom, Value: raw.From}
		}
		req.From = &from
	}

	if raw.To != "" {
		to, err := parseTime(raw.To)
		if err != nil {
			return Request{}, &TypeMismatchError{Param: ParamTo, Value: raw.To}
		}
		req.To = &to
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return Request{}, NewValidationError(ParamTo, raw.To, MsgInvalidInterval)
	}

	if raw.Offset != "" {
		offset, err := ParseEventID(raw.Offset)
		if err != nil {
			return Request{}, NewValidationError(
				ParamOffset,
				raw.Offset,
				`Invalid offset "`+raw.Offset+`"`,
			)
		}
		req.Offset = &offset
	}

	if raw.Limit != "" {
		limit, err := strconv.Atoi(raw.Limit)
		if err != nil || limit < 1 {
			return Request{}, &TypeMismatchError{Param: ParamLimit, Value: raw.Limit}
		}
		req.Limit = limit
	}

	if l.Max > 0 && req.Limit > l.Max {
		req.Limit = l.Max
	}

	return req, nil
}

// parseTime accepts RFC 3339 timestamps and zone-less date or date-time
// values, which are read as UTC.
func parseTime(
	s string,
) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, err
}

// FormatTime renders a bound so that parseTime reads back the same instant.
func FormatTime(
	t time.Time,
) string {
	return t.UTC().Format(time.RFC3339Nano)
}
