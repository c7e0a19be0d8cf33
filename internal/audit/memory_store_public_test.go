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

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/retr0h/auditlog/internal/audit"
)

type MemoryStorePublicTestSuite struct {
	suite.Suite

	ctx   context.Context
	store *audit.MemoryStore
}

func (s *MemoryStorePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = audit.NewMemoryStore(0)

	// Inserted out of order on purpose.
	for _, e := range []audit.Event{
		newEvent(idAt(2, 0), "acme", "bob"),
		newEvent(idAt(0, 0), "acme", "alice"),
		newEvent(idAt(1, 0), "acme", "bob"),
		newEvent(idAt(1, 1), "acme", "alice"),
		newEvent(idAt(3, 0), "acme", "bob"),
		newEvent(idAt(1, 0), "other", "bob"),
	} {
		s.Require().NoError(s.store.Insert(s.ctx, e))
	}
}

func (s *MemoryStorePublicTestSuite) TestInsert() {
	tests := []struct {
		name    string
		event   audit.Event
		wantErr error
	}{
		{
			name:  "when identifier is new",
			event: newEvent(idAt(9, 0), "acme", "bob"),
		},
		{
			name:    "when identifier already exists",
			event:   newEvent(idAt(1, 0), "acme", "carol"),
			wantErr: audit.ErrDuplicateEvent,
		},
		{
			name:    "when identifier is missing",
			event:   newEvent(bson.NilObjectID, "acme", "bob"),
			wantErr: audit.ErrNilArgument,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := s.store.Insert(s.ctx, tt.event)
			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				return
			}

			s.NoError(err)
		})
	}
}

func (s *MemoryStorePublicTestSuite) TestFindRange() {
	tests := []struct {
		name string
		r    audit.Range
		want []bson.ObjectID
	}{
		{
			name: "when unbounded returns the domain in identifier order",
			r:    audit.Range{Domain: "acme", Limit: 10},
			want: []bson.ObjectID{idAt(0, 0), idAt(1, 0), idAt(1, 1), idAt(2, 0), idAt(3, 0)},
		},
		{
			name: "when limited",
			r:    audit.Range{Domain: "acme", Limit: 2},
			want: []bson.ObjectID{idAt(0, 0), idAt(1, 0)},
		},
		{
			name: "when after is exclusive",
			r:    audit.Range{Domain: "acme", After: idPtr(idAt(1, 0)), Limit: 10},
			want: []bson.ObjectID{idAt(1, 1), idAt(2, 0), idAt(3, 0)},
		},
		{
			name: "when from is inclusive",
			r:    audit.Range{Domain: "acme", From: idPtr(audit.LowerBoundID(base.Add(time.Second))), Limit: 10},
			want: []bson.ObjectID{idAt(1, 0), idAt(1, 1), idAt(2, 0), idAt(3, 0)},
		},
		{
			name: "when before is exclusive on recorded time",
			r:    audit.Range{Domain: "acme", Before: timePtr(base.Add(2 * time.Second)), Limit: 10},
			want: []bson.ObjectID{idAt(0, 0), idAt(1, 0), idAt(1, 1)},
		},
		{
			name: "when filtered by user",
			r:    audit.Range{Domain: "acme", User: "bob", Limit: 10},
			want: []bson.ObjectID{idAt(1, 0), idAt(2, 0), idAt(3, 0)},
		},
		{
			name: "when filtered by type",
			r:    audit.Range{Domain: "acme", Type: "INVITATION_SENT", Limit: 10},
			want: []bson.ObjectID{},
		},
		{
			name: "when domain is unknown",
			r:    audit.Range{Domain: "nobody", Limit: 10},
			want: []bson.ObjectID{},
		},
		{
			name: "when limit is not positive",
			r:    audit.Range{Domain: "other"},
			want: []bson.ObjectID{idAt(1, 0)},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.store.FindRange(s.ctx, tt.r)

			s.NoError(err)
			s.Equal(tt.want, ids(got))
		})
	}
}

func (s *MemoryStorePublicTestSuite) TestFindRangeReturnsCopies() {
	e := newEvent(idAt(5, 0), "copy", "bob")
	e.Params = map[string]string{"k": "v"}
	s.Require().NoError(s.store.Insert(s.ctx, e))

	got, err := s.store.FindRange(s.ctx, audit.Range{Domain: "copy", Limit: 1})
	s.Require().NoError(err)
	got[0].Params["k"] = "changed"

	again, err := s.store.FindRange(s.ctx, audit.Range{Domain: "copy", Limit: 1})
	s.Require().NoError(err)
	s.Equal("v", again[0].Params["k"])
}

func (s *MemoryStorePublicTestSuite) TestDeleteAll() {
	s.NoError(s.store.DeleteAll(s.ctx, "acme"))

	got, err := s.store.FindRange(s.ctx, audit.Range{Domain: "acme", Limit: 10})
	s.NoError(err)
	s.Empty(got)

	other, err := s.store.FindRange(s.ctx, audit.Range{Domain: "other", Limit: 10})
	s.NoError(err)
	s.Len(other, 1)
}

func (s *MemoryStorePublicTestSuite) TestEnsureRetentionWithoutRetention() {
	s.NoError(s.store.EnsureRetention(s.ctx))

	got, err := s.store.FindRange(s.ctx, audit.Range{Domain: "acme"})
	s.NoError(err)
	s.Len(got, 5)
}

func TestMemoryStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStorePublicTestSuite))
}
