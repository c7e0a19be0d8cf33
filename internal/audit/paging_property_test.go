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
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/retr0h/auditlog/internal/audit"
)

// seedStore inserts one event per (second, user) pair. Seconds may repeat, so
// several events can share a recorded second and differ only by counter.
func seedStore(
	seconds []uint8,
	users []bool,
) (*audit.MemoryStore, []audit.Event) {
	store := audit.NewMemoryStore(0)
	all := make([]audit.Event, 0, len(seconds))

	for i, sec := range seconds {
		user := "alice"
		if i < len(users) && users[i] {
			user = "bob"
		}
		e := newEvent(idAt(int(sec), byte(i)), "acme", user)
		if err := store.Insert(context.Background(), e); err != nil {
			continue
		}
		all = append(all, e)
	}

	slices.SortFunc(all, func(a, b audit.Event) int {
		return audit.CompareIDs(a.ID, b.ID)
	})

	return store, all
}

func TestPagingWalkProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	properties.Property("walking every page yields each event exactly once in order", prop.ForAll(
		func(seconds []uint8, users []bool, limit int, byUser bool) bool {
			store, all := seedStore(seconds, users)
			svc := audit.NewService(logger, store, audit.DefaultLimits)

			want := make([]bson.ObjectID, 0, len(all))
			for _, e := range all {
				if !byUser || e.UserLogin == "bob" {
					want = append(want, e.ID)
				}
			}

			got := make([]bson.ObjectID, 0, len(want))
			req := audit.Request{Limit: limit}
			for pages := 0; pages <= len(all)+1; pages++ {
				var page audit.Page
				var err error
				if byUser {
					page, err = svc.FindByDomainAndUser(context.Background(), "acme", "bob", req)
				} else {
					page, err = svc.FindByDomain(context.Background(), "acme", req)
				}
				if err != nil || len(page.Items) > limit {
					return false
				}
				if page.HasMore && len(page.Items) != limit {
					return false
				}

				got = append(got, ids(page.Items)...)
				if !page.HasMore {
					return slices.Equal(want, got)
				}

				last := page.Items[len(page.Items)-1].ID
				req.Offset = &last
			}

			return false
		},
		gen.SliceOf(gen.UInt8Range(0, 20)),
		gen.SliceOf(gen.Bool()),
		gen.IntRange(1, 7),
		gen.Bool(),
	))

	properties.Property("time windows honour inclusive from and exclusive to", prop.ForAll(
		func(seconds []uint8, fromSec int, span int, fromMillis int) bool {
			store, all := seedStore(seconds, nil)
			svc := audit.NewService(logger, store, audit.DefaultLimits)

			from := base.Add(time.Duration(fromSec)*time.Second + time.Duration(fromMillis)*time.Millisecond)
			to := from.Add(time.Duration(span) * time.Second)

			page, err := svc.FindByDomain(context.Background(), "acme", audit.Request{
				From:  &from,
				To:    &to,
				Limit: 1000,
			})
			if err != nil || page.HasMore {
				return false
			}

			want := make([]bson.ObjectID, 0)
			for _, e := range all {
				at := e.RecordedAt()
				if !at.Before(from) && at.Before(to) {
					want = append(want, e.ID)
				}
			}

			return slices.Equal(want, ids(page.Items))
		},
		gen.SliceOf(gen.UInt8Range(0, 20)),
		gen.IntRange(0, 20),
		gen.IntRange(1, 10),
		gen.IntRange(0, 999),
	))

	properties.TestingRun(t)
}
