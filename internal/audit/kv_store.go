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
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ensure KVStore implements Store and Maintainer at compile time.
var (
	_ Store      = (*KVStore)(nil)
	_ Maintainer = (*KVStore)(nil)
)

// KVStore implements Store backed by a NATS KeyValue bucket. Keys are
// "<domain>.<id>" where the domain is base64url encoded and the id is hex, so
// a domain's keys sort in identifier order.
//
// Buckets cannot list keys by range, so every FindRange lists and sorts the
// whole domain before reading from its lower bound. A full cursor walk costs
// one domain listing per page; large domains belong in the postgres store.
type KVStore struct {
	kv     jetstream.KeyValue
	logger *slog.Logger
}

// NewKVStore creates a new KVStore.
func NewKVStore(
	logger *slog.Logger,
	kv jetstream.KeyValue,
) *KVStore {
	return &KVStore{
		kv:     kv,
		logger: logger.With("component", "audit.kv"),
	}
}

// Insert persists an audit event. An existing key is never overwritten.
func (s *KVStore) Insert(
	ctx context.Context,
	event Event,
) error {
	if event.ID.IsZero() {
		return fmt.Errorf("insert audit event: %w: id", ErrNilArgument)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	if _, err := s.kv.Create(ctx, eventKey(event.Domain, event.ID), data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return fmt.Errorf("insert audit event %s: %w", event.ID.Hex(), ErrDuplicateEvent)
		}
		return fmt.Errorf("put audit event: %w", err)
	}

	return nil
}

// FindRange lists the domain's keys, then reads values in identifier order
// from the lower bound until the range is full or exhausted. Keys removed
// between listing and reading are skipped.
func (s *KVStore) FindRange(
	ctx context.Context,
	r Range,
) ([]Event, error) {
	ids, err := s.listIDs(ctx, r.Domain)
	if err != nil {
		return nil, err
	}

	start := 0
	if lower, inclusive := r.Lower(); lower != nil {
		start = sort.Search(len(ids), func(i int) bool {
			c := CompareIDs(ids[i], *lower)
			if inclusive {
				return c >= 0
			}
			return c > 0
		})
	}

	events := make([]Event, 0)
	for _, id := range ids[start:] {
		if r.Exhausted(id) {
			break
		}

		key := eventKey(r.Domain, id)
		kve, err := s.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("get audit event: %w", err)
		}

		var event Event
		if err := json.Unmarshal(kve.Value(), &event); err != nil {
			s.logger.Warn(
				"failed to unmarshal audit event",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		if !r.Matches(event) {
			continue
		}

		events = append(events, event)
		if r.Limit > 0 && len(events) == r.Limit {
			break
		}
	}

	return events, nil
}

// DeleteAll purges every key of the domain.
func (s *KVStore) DeleteAll(
	ctx context.Context,
	domain string,
) error {
	ids, err := s.listIDs(ctx, domain)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.kv.Purge(ctx, eventKey(domain, id)); err != nil {
			return fmt.Errorf("purge audit event: %w", err)
		}
	}

	s.logger.Info(
		"purged audit events",
		slog.String("domain", domain),
		slog.Int("count", len(ids)),
	)

	return nil
}

// EnsureRetention removes the purge markers left behind by DeleteAll. Expiry
// itself is enforced by the bucket TTL.
func (s *KVStore) EnsureRetention(
	ctx context.Context,
) error {
	if err := s.kv.PurgeDeletes(ctx, jetstream.DeleteMarkersOlderThan(-1)); err != nil {
		return fmt.Errorf("purge audit delete markers: %w", err)
	}

	return nil
}

// listIDs returns the domain's identifiers in ascending order.
func (s *KVStore) listIDs(
	ctx context.Context,
	domain string,
) ([]bson.ObjectID, error) {
	prefix := domainPrefix(domain)

	lister, err := s.kv.ListKeysFiltered(ctx, prefix+".*")
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []bson.ObjectID{}, nil
		}
		return nil, fmt.Errorf("list audit keys: %w", err)
	}
	defer func() { _ = lister.Stop() }()

	ids := make([]bson.ObjectID, 0)
	for key := range lister.Keys() {
		hex := strings.TrimPrefix(key, prefix+".")
		id, err := ParseEventID(hex)
		if err != nil {
			s.logger.Warn(
				"skipping malformed audit key",
				slog.String("key", key),
			)
			continue
		}
		ids = append(ids, id)
	}

	slices.SortFunc(ids, CompareIDs)

	return ids, nil
}

func domainPrefix(
	domain string,
) string {
	return base64.RawURLEncoding.EncodeToString([]byte(domain))
}

func eventKey(
	domain string,
	id bson.ObjectID,
) string {
	return domainPrefix(domain) + "." + id.Hex()
}
