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

// Package audit records audit events per domain and pages through them with a
// stable, identifier based cursor.
package audit

//go:generate go tool mockgen -source=types.go -destination=mocks/types.gen.go -package=mocks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Event represents a single audit log record.
type Event struct {
	// ID orders events and embeds the time the event was recorded.
	ID bson.ObjectID `json:"id"`
	// Domain is the tenant the event belongs to.
	Domain string `json:"domain"     validate:"required"`
	// UserLogin is the login of the acting user.
	UserLogin string `json:"userLogin"  validate:"required"`
	// OccurredAt is when the action happened on the emitting component.
	OccurredAt time.Time `json:"occurred"   validate:"required"`
	// IP is the client address of the acting user.
	IP string `json:"userIp"`
	// Success reports whether the action succeeded.
	Success bool `json:"success"`
	// Type names the action (e.g. STANDARD_LOGIN, INVITATION_SENT).
	Type string `json:"type"       validate:"required,event_type"`
	// Params carries type specific values.
	Params map[string]string `json:"params,omitempty"`
	// Links carries URIs of resources the event refers to.
	Links map[string]string `json:"links,omitempty"`
}

// RecordedAt returns the time embedded in the event identifier.
func (e Event) RecordedAt() time.Time {
	return RecordedAt(e.ID)
}

// Range is a store level query: every bound is already resolved and Limit is
// the number of rows to fetch, not the page size.
type Range struct {
	// Domain restricts the range to a single tenant.
	Domain string
	// User restricts the range to one login when not empty.
	User string
	// Type restricts the range to one event type when not empty.
	Type string
	// After is an exclusive lower bound on the identifier.
	After *bson.ObjectID
	// From is an inclusive lower bound on the identifier.
	From *bson.ObjectID
	// Before is an exclusive upper bound on RecordedAt.
	Before *time.Time
	// Limit is the maximum number of events to return.
	Limit int
}

// Matches reports whether the event satisfies every bound of the range.
func (r Range) Matches(
	e Event,
) bool {
	switch {
	case e.Domain != r.Domain:
		return false
	case r.User != "" && e.UserLogin != r.User:
		return false
	case r.Type != "" && e.Type != r.Type:
		return false
	case r.After != nil && CompareIDs(e.ID, *r.After) <= 0:
		return false
	case r.From != nil && CompareIDs(e.ID, *r.From) < 0:
		return false
	case r.Before != nil && !e.RecordedAt().Before(*r.Before):
		return false
	}

	return true
}

// Exhausted reports whether no event at or after id can satisfy the upper
// bound, which lets ordered scans stop early.
func (r Range) Exhausted(
	id bson.ObjectID,
) bool {
	return r.Before != nil && !RecordedAt(id).Before(*r.Before)
}

// Lower returns the identifier a scan starts from and whether it is inclusive.
// Nil means the scan starts at the beginning of the domain.
func (r Range) Lower() (*bson.ObjectID, bool) {
	if r.After != nil {
		return r.After, false
	}

	return r.From, true
}

// RangeFinder executes ordered range queries.
type RangeFinder interface {
	// FindRange returns events matching the range in ascending identifier
	// order, at most r.Limit of them.
	FindRange(ctx context.Context, r Range) ([]Event, error)
}

// Store persists audit events in identifier order per domain.
type Store interface {
	RangeFinder
	// Insert persists a new event. The identifier must already be set.
	Insert(ctx context.Context, event Event) error
	// DeleteAll removes every event of the domain.
	DeleteAll(ctx context.Context, domain string) error
}

// Maintainer is implemented by stores that need periodic administration, such
// as creating indexes or expiring events past retention.
type Maintainer interface {
	EnsureRetention(ctx context.Context) error
}
