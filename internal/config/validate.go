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

package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/retr0h/auditlog/internal/validation"
)

// Validate checks struct tags and the values tags cannot express.
func Validate(
	cfg *Config,
) error {
	if errMsg, ok := validation.Struct(cfg); !ok {
		return fmt.Errorf("config validation: %s", errMsg)
	}

	if cfg.Store.Backend == "postgres" && cfg.Store.Postgres.DSN == "" {
		return fmt.Errorf("config validation: store.postgres.dsn is required for the postgres backend")
	}

	if cfg.Store.Retention != "" {
		if _, err := time.ParseDuration(cfg.Store.Retention); err != nil {
			return fmt.Errorf("config validation: store.retention: %w", err)
		}
	}

	if cfg.Store.Paging.MaxLimit > 0 && cfg.Store.Paging.DefaultLimit > cfg.Store.Paging.MaxLimit {
		return fmt.Errorf(
			"config validation: store.paging.default_limit %d exceeds max_limit %d",
			cfg.Store.Paging.DefaultLimit,
			cfg.Store.Paging.MaxLimit,
		)
	}

	if cfg.Maintenance.Schedule != "" {
		if _, err := ParseSchedule(cfg.Maintenance.Schedule); err != nil {
			return fmt.Errorf("config validation: maintenance.schedule: %w", err)
		}
	}

	seen := make(map[string]string)
	for _, d := range cfg.Domains {
		for _, user := range append(append([]string{}, d.Admins...), d.Users...) {
			if other, ok := seen[user]; ok && other != d.Name {
				return fmt.Errorf(
					"config validation: user %q belongs to domains %q and %q",
					user,
					other,
					d.Name,
				)
			}
			seen[user] = d.Name
		}
	}

	return nil
}

// ParseSchedule parses a cron expression with a leading seconds field.
func ParseSchedule(
	expr string,
) (cron.Schedule, error) {
	return cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(expr)
}
