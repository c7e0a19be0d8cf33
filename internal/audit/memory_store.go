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
	"maps"
	"slices"
	"sort"
	"sync"
	"time"
)

// ensure MemoryStore implements Store and Maintainer at compile time.
var (
	_ Store      = (*MemoryStore)(nil)
	_ Maintainer = (*MemoryStore)(nil)
)

// MemoryStore keeps events in memory, sorted by identifier per domain.
type MemoryStore struct {
	mu        sync.RWMutex
	events    map[string][]Event
	retention time.Duration
	now       func() time.Time
}

// NewMemoryStore creates a MemoryStore. A zero retention keeps events forever.
func NewMemoryStore(
	retention time.Duration,
) *MemoryStore {
	return &MemoryStore{
		events:    make(map[string][]Event),
		retention: retention,
		now:       time.Now,
	}
}

// Insert adds an event at its identifier position.
func (s *MemoryStore) Insert(
	_ context.Context,
	event Event,
) error {
	if event.ID.IsZero() {
		return fmt.Errorf("insert audit event: %w: id", ErrNilArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	domain := s.events[event.Domain]
	i, found := slices.BinarySearchFunc(domain, event, func(e Event, target Event) int {
		return CompareIDs(e.ID, target.ID)
	})
	if found {
		return fmt.Errorf("insert audit event %s: %w", event.ID.Hex(), ErrDuplicateEvent)
	}

	s.events[event.Domain] = slices.Insert(domain, i, cloneEvent(event))

	return nil
}

// FindRange scans the domain from the lower bound in identifier order. A
// non-positive limit returns every matching event.
func (s *MemoryStore) FindRange(
	_ context.Context,
	r Range,
) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	domain := s.events[r.Domain]
	start := 0
	if lower, inclusive := r.Lower(); lower != nil {
		start = sort.Search(len(domain), func(i int) bool {
			c := CompareIDs(domain[i].ID, *lower)
			if inclusive {
				return c >= 0
			}
			return c > 0
		})
	}

	result := make([]Event, 0)
	for _, e := range domain[start:] {
		if r.Exhausted(e.ID) {
			break
		}
		if !r.Matches(e) {
			continue
		}

		result = append(result, cloneEvent(e))
		if r.Limit > 0 && len(result) == r.Limit {
			break
		}
	}

	return result, nil
}

// DeleteAll drops every event of the domain.
func (s *MemoryStore) DeleteAll(
	_ context.Context,
	domain string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, domain)

	return nil
}

// EnsureRetention drops events recorded before the retention window.
func (s *MemoryStore) EnsureRetention(
	_ context.Context,
) error {
	if s.retention <= 0 {
		return nil
	}

	cutoff := LowerBoundID(s.now().Add(-s.retention))

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, domain := range s.events {
		i := sort.Search(len(domain), func(i int) bool {
			return CompareIDs(domain[i].ID, cutoff) >= 0
		})
		if i == len(domain) {
			delete(s.events, name)
			continue
		}
		s.events[name] = slices.Clone(domain[i:])
	}

	return nil
}

func cloneEvent(
	e Event,
) Event {
	e.Params = maps.Clone(e.Params)
	e.Links = maps.Clone(e.Links)

	return e
}
