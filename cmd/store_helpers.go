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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/retr0h/auditlog/internal/api/health"
	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/audit/postgres"
	"github.com/retr0h/auditlog/internal/cli"
	"github.com/retr0h/auditlog/internal/config"
	"github.com/retr0h/auditlog/internal/messaging"
)

// storeBundle is an opened audit store with what the API server needs
// alongside it.
type storeBundle struct {
	store      audit.Store
	maintainer audit.Maintainer
	components []health.Component
	closeFns   []func()
}

func (b *storeBundle) close() {
	for i := len(b.closeFns) - 1; i >= 0; i-- {
		b.closeFns[i]()
	}
}

// needsNATS reports whether the configured components talk to NATS.
func needsNATS() bool {
	return appConfig.Store.Backend == "nats" || appConfig.NATS.Stream.Enabled
}

func retention() time.Duration {
	d, _ := time.ParseDuration(appConfig.Store.Retention)
	return d
}

func limits() audit.Limits {
	l := audit.DefaultLimits
	if appConfig.Store.Paging.DefaultLimit > 0 {
		l.Default = appConfig.Store.Paging.DefaultLimit
	}
	if appConfig.Store.Paging.MaxLimit > 0 {
		l.Max = appConfig.Store.Paging.MaxLimit
	}

	return l
}

// connectNATS dials the server the API components use.
func connectNATS(
	log *slog.Logger,
	connCfg config.NATSConnection,
) *messaging.Conn {
	conn, err := messaging.Connect(log, connCfg)
	if err != nil {
		cli.LogFatal(log, "failed to connect to NATS", err)
	}

	return conn
}

func natsComponent(
	conn *messaging.Conn,
) health.Component {
	return health.Component{
		Name: "nats",
		Check: func(_ context.Context) error {
			if status := conn.NC.Status(); status != nats.CONNECTED {
				return fmt.Errorf("connection %s", status)
			}
			return nil
		},
	}
}

// openStore opens the configured backend. conn is only used by the nats
// backend and may be nil otherwise.
func openStore(
	ctx context.Context,
	log *slog.Logger,
	conn *messaging.Conn,
	namespace string,
) *storeBundle {
	switch appConfig.Store.Backend {
	case "nats":
		kvConfig := cli.BuildAuditKVConfig(namespace, appConfig.NATS.Audit, appConfig.Store.Retention)
		kv, err := conn.EnsureKeyValue(ctx, kvConfig)
		if err != nil {
			cli.LogFatal(log, "failed to create audit KV bucket", err)
		}

		store := audit.NewKVStore(log, kv)

		return &storeBundle{
			store:      store,
			maintainer: store,
			components: []health.Component{{
				Name: "store",
				Check: func(ctx context.Context) error {
					if _, err := kv.Status(ctx); err != nil {
						return fmt.Errorf("kv bucket not accessible: %w", err)
					}
					return nil
				},
			}},
		}

	case "postgres":
		db, err := postgres.Open(appConfig.Store.Postgres)
		if err != nil {
			cli.LogFatal(log, "failed to open postgres", err)
		}

		store := postgres.New(log, db, postgres.WithRetention(retention()))
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			cli.LogFatal(log, "failed to migrate postgres schema", err)
		}

		return &storeBundle{
			store:      store,
			maintainer: store,
			components: []health.Component{{
				Name:  "store",
				Check: store.Ping,
			}},
			closeFns: []func(){func() { _ = db.Close() }},
		}

	default:
		store := audit.NewMemoryStore(retention())

		return &storeBundle{
			store:      store,
			maintainer: store,
		}
	}
}
