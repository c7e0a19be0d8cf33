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
	"context"
	"fmt"
)

// Query is a retrieval request bound to a domain and, optionally, a user.
type Query struct {
	Domain  string
	User    string
	Request Request
}

// NewQuery builds a query using DefaultLimits.
func NewQuery(
	domain string,
	user string,
	req Request,
) (Query, error) {
	return DefaultLimits.NewQuery(domain, user, req)
}

// NewQuery checks the translator contract. Requests produced by Parse always
// satisfy it; a failure here is a programming error, not a client error.
func (l Limits) NewQuery(
	domain string,
	user string,
	req Request,
) (Query, error) {
	switch {
	case domain == "":
		return Query{}, fmt.Errorf("%w: domain is required", ErrInvalidQuery)
	case req.Limit < 1:
		return Query{}, fmt.Errorf("%w: limit %d is not positive", ErrInvalidQuery, req.Limit)
	case l.Max > 0 && req.Limit > l.Max:
		return Query{}, fmt.Errorf("%w: limit %d exceeds %d", ErrInvalidQuery, req.Limit, l.Max)
	case req.Offset != nil && req.From != nil:
		return Query{}, fmt.Errorf("%w: offset and from are exclusive", ErrInvalidQuery)
	case req.From != nil && req.To != nil && !req.From.Before(*req.To):
		return Query{}, fmt.Errorf("%w: from is not before to", ErrInvalidQuery)
	}

	return Query{
		Domain:  domain,
		User:    user,
		Request: req,
	}, nil
}

// Range translates the query into a store range. The offset becomes an
// exclusive identifier bound and from an inclusive one; to stays a predicate
// on RecordedAt so an event recorded exactly at to is excluded. The range asks
// for one event more than the page size so the caller can tell whether
// another page exists without counting.
func (q Query) Range() Range {
	r := Range{
		Domain: q.Domain,
		User:   q.User,
		Type:   q.Request.Type,
		Limit:  q.Request.Limit + 1,
	}

	if q.Request.Offset != nil {
		after := *q.Request.Offset
		r.After = &after
	}

	if q.Request.From != nil {
		from := LowerBoundID(*q.Request.From)
		r.From = &from
	}

	if q.Request.To != nil {
		before := *q.Request.To
		r.Before = &before
	}

	return r
}

// Execute runs the over-fetching range query. Store failures are wrapped with
// ErrStoreUnavailable and returned as is.
func Execute(
	ctx context.Context,
	finder RangeFinder,
	q Query,
) ([]Event, error) {
	events, err := finder.FindRange(ctx, q.Range())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return events, nil
}
