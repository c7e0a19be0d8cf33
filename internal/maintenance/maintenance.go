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

// Package maintenance runs store upkeep, such as retention enforcement, on a
// cron schedule.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/config"
)

// DefaultSchedule runs once a day at midnight.
const DefaultSchedule = "0 0 0 * * *"

// runTimeout bounds a single scheduled run.
const runTimeout = 10 * time.Minute

// Job enforces retention on a schedule.
type Job struct {
	logger     *slog.Logger
	maintainer audit.Maintainer
	schedule   string
	cron       *cron.Cron
}

// New creates a Job. An empty schedule uses DefaultSchedule.
func New(
	logger *slog.Logger,
	maintainer audit.Maintainer,
	schedule string,
) (*Job, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	if _, err := config.ParseSchedule(schedule); err != nil {
		return nil, fmt.Errorf("parsing maintenance schedule %q: %w", schedule, err)
	}

	logger = logger.With(slog.String("component", "maintenance"))
	cl := cronLogger{logger: logger}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	j := &Job{
		logger:     logger,
		maintainer: maintainer,
		schedule:   schedule,
		cron:       c,
	}

	if _, err := c.AddFunc(schedule, j.scheduled); err != nil {
		return nil, fmt.Errorf("scheduling maintenance: %w", err)
	}

	return j, nil
}

// Run performs one maintenance pass.
func (j *Job) Run(
	ctx context.Context,
) error {
	start := time.Now()
	j.logger.Info("maintenance started")

	if err := j.maintainer.EnsureRetention(ctx); err != nil {
		j.logger.Error(
			"maintenance failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("ensuring retention: %w", err)
	}

	j.logger.Info(
		"maintenance finished",
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// Start schedules runs without blocking.
func (j *Job) Start() {
	j.logger.Info(
		"starting maintenance scheduler",
		slog.String("schedule", j.schedule),
	)
	j.cron.Start()
}

// Stop stops scheduling and waits for a running pass to finish or the
// context to expire.
func (j *Job) Stop(
	ctx context.Context,
) {
	done := j.cron.Stop()

	select {
	case <-done.Done():
		j.logger.Info("maintenance scheduler stopped")
	case <-ctx.Done():
		j.logger.Warn("maintenance scheduler shutdown timed out")
	}
}

// scheduled runs one pass from the scheduler. Failures are logged by Run
// and the schedule continues.
func (j *Job) scheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	_ = j.Run(ctx)
}

// cronLogger adapts slog to the cron logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(
	msg string,
	keysAndValues ...interface{},
) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(
	err error,
	msg string,
	keysAndValues ...interface{},
) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
