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

// Package postgres stores audit events in PostgreSQL. Identifiers are kept as
// bytea, whose ordering is bytewise, so "ORDER BY id" is identifier order.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/config"
)

// ensure Store implements audit.Store and audit.Maintainer at compile time.
var (
	_ audit.Store      = (*Store)(nil)
	_ audit.Maintainer = (*Store)(nil)
)

// uniqueViolation is the SQLSTATE of a primary key conflict.
const uniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS audit_events (
		id          BYTEA PRIMARY KEY,
		domain      TEXT NOT NULL,
		user_login  TEXT NOT NULL,
		occurred_at TIMESTAMPTZ NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		user_ip     TEXT NOT NULL DEFAULT '',
		success     BOOLEAN NOT NULL,
		type        TEXT NOT NULL,
		params      JSONB,
		links       JSONB
	)`,
	`CREATE INDEX IF NOT EXISTS audit_events_domain_id
		ON audit_events (domain, id)`,
	`CREATE INDEX IF NOT EXISTS audit_events_domain_user_id
		ON audit_events (domain, user_login, id)`,
	`CREATE INDEX IF NOT EXISTS audit_events_recorded_at
		ON audit_events (recorded_at)`,
}

const selectColumns = `SELECT id, domain, user_login, occurred_at, user_ip, success, type, params, links
		FROM audit_events`

// Store implements audit.Store over database/sql with the lib/pq driver.
type Store struct {
	db        *sql.DB
	logger    *slog.Logger
	retention time.Duration
	clock     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithRetention deletes events older than d during maintenance.
func WithRetention(
	d time.Duration,
) Option {
	return func(s *Store) {
		s.retention = d
	}
}

// WithClock sets the clock used to compute the retention cutoff.
func WithClock(
	clock func() time.Time,
) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New creates a Store over an open database.
func New(
	logger *slog.Logger,
	db *sql.DB,
	opts ...Option,
) *Store {
	s := &Store{
		db:     db,
		logger: logger.With("component", "audit.postgres"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open connects to PostgreSQL and applies the pool settings.
func Open(
	cfg config.Postgres,
) (*sql.DB, error) {
	connector, err := pq.NewConnector(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	db := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	return db, nil
}

// Migrate creates the table and its indexes when missing.
func (s *Store) Migrate(
	ctx context.Context,
) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate audit schema: %w", err)
		}
	}

	return nil
}

// Insert writes a new event.
func (s *Store) Insert(
	ctx context.Context,
	event audit.Event,
) error {
	if event.ID.IsZero() {
		return fmt.Errorf("insert audit event: %w: id", audit.ErrNilArgument)
	}

	params, err := marshalMap(event.Params)
	if err != nil {
		return fmt.Errorf("marshal audit params: %w", err)
	}

	links, err := marshalMap(event.Links)
	if err != nil {
		return fmt.Errorf("marshal audit links: %w", err)
	}

	query := `
		INSERT INTO audit_events (
			id, domain, user_login, occurred_at, recorded_at,
			user_ip, success, type, params, links
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		event.ID[:],
		event.Domain,
		event.UserLogin,
		event.OccurredAt,
		event.RecordedAt(),
		event.IP,
		event.Success,
		event.Type,
		params,
		links,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("insert audit event %s: %w", event.ID.Hex(), audit.ErrDuplicateEvent)
		}
		return fmt.Errorf("insert audit event: %w", err)
	}

	return nil
}

// FindRange runs a single ordered SELECT, so each page is a consistent
// snapshot. A non-positive limit omits the LIMIT clause.
func (s *Store) FindRange(
	ctx context.Context,
	r audit.Range,
) ([]audit.Event, error) {
	query, args := buildRangeQuery(r)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]audit.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}

// DeleteAll removes every event of the domain.
func (s *Store) DeleteAll(
	ctx context.Context,
	domain string,
) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audit_events WHERE domain = $1`, domain)
	if err != nil {
		return fmt.Errorf("delete audit events: %w", err)
	}

	n, _ := res.RowsAffected()
	s.logger.Info(
		"purged audit events",
		slog.String("domain", domain),
		slog.Int64("count", n),
	)

	return nil
}

// EnsureRetention creates missing indexes and deletes events recorded before
// the retention window.
func (s *Store) EnsureRetention(
	ctx context.Context,
) error {
	if err := s.Migrate(ctx); err != nil {
		return err
	}

	if s.retention <= 0 {
		return nil
	}

	cutoff := s.clock().Add(-s.retention).UTC()
	res, err := s.db.ExecContext(ctx, `DELETE FROM audit_events WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("expire audit events: %w", err)
	}

	n, _ := res.RowsAffected()
	s.logger.Info(
		"expired audit events",
		slog.Time("cutoff", cutoff),
		slog.Int64("count", n),
	)

	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(
	ctx context.Context,
) error {
	return s.db.PingContext(ctx)
}

func buildRangeQuery(
	r audit.Range,
) (string, []any) {
	args := []any{r.Domain}
	where := []string{"domain = $1"}

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if r.User != "" {
		add("user_login = $%d", r.User)
	}
	if r.Type != "" {
		add("type = $%d", r.Type)
	}
	if r.After != nil {
		after := *r.After
		add("id > $%d", after[:])
	}
	if r.From != nil {
		from := *r.From
		add("id >= $%d", from[:])
	}
	if r.Before != nil {
		add("recorded_at < $%d", r.Before.UTC())
	}

	query := selectColumns + "\n\t\tWHERE " + strings.Join(where, " AND ") + "\n\t\tORDER BY id"
	if r.Limit > 0 {
		args = append(args, r.Limit)
		query += fmt.Sprintf("\n\t\tLIMIT $%d", len(args))
	}

	return query, args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(
	row scanner,
) (audit.Event, error) {
	var (
		event  audit.Event
		id     []byte
		params []byte
		links  []byte
	)

	if err := row.Scan(
		&id,
		&event.Domain,
		&event.UserLogin,
		&event.OccurredAt,
		&event.IP,
		&event.Success,
		&event.Type,
		&params,
		&links,
	); err != nil {
		return audit.Event{}, fmt.Errorf("scan audit event: %w", err)
	}

	if len(id) != len(bson.ObjectID{}) {
		return audit.Event{}, fmt.Errorf("scan audit event: id has %d bytes", len(id))
	}
	copy(event.ID[:], id)
	event.OccurredAt = event.OccurredAt.UTC()

	if len(params) > 0 {
		if err := json.Unmarshal(params, &event.Params); err != nil {
			return audit.Event{}, fmt.Errorf("unmarshal audit params: %w", err)
		}
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &event.Links); err != nil {
			return audit.Event{}, fmt.Errorf("unmarshal audit links: %w", err)
		}
	}

	return event, nil
}

// marshalMap encodes a map as JSON text. An empty map becomes NULL.
func marshalMap(
	m map[string]string,
) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	return string(data), nil
}
