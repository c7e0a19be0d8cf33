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

// Package messaging runs the embedded NATS server and connects JetStream
// clients to it.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/retr0h/auditlog/internal/config"
)

// readyTimeout bounds how long Start waits for the server to accept clients.
const readyTimeout = 10 * time.Second

// Server is an embedded NATS server with JetStream enabled.
type Server struct {
	ns     *server.Server
	logger *slog.Logger
}

// NewServer creates an embedded server from configuration. A zero port picks
// the NATS default; -1 picks a random free port.
func NewServer(
	logger *slog.Logger,
	cfg config.NATSServer,
) (*Server, error) {
	opts := &server.Options{
		Host:      cfg.Host,
		Port:      cfg.Port,
		JetStream: true,
		StoreDir:  cfg.StoreDir,
		NoSigs:    true,
	}

	switch cfg.Auth.Type {
	case "user_pass":
		for _, u := range cfg.Auth.Users {
			opts.Users = append(opts.Users, &server.User{
				Username: u.Username,
				Password: u.Password,
			})
		}
	case "nkey":
		for _, nk := range cfg.Auth.NKeys {
			opts.Nkeys = append(opts.Nkeys, &server.NkeyUser{Nkey: nk})
		}
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	ns.SetLoggerV2(&serverLogger{logger: logger}, false, false, false)

	return &Server{
		ns:     ns,
		logger: logger,
	}, nil
}

// Start runs the server and waits until it accepts connections.
func (s *Server) Start() {
	go s.ns.Start()

	if !s.ns.ReadyForConnections(readyTimeout) {
		s.logger.Error(
			"nats server not ready",
			slog.Duration("timeout", readyTimeout),
		)
		return
	}

	s.logger.Info(
		"nats server started",
		slog.String("url", s.ns.ClientURL()),
	)
}

// Stop shuts the server down, waiting until ctx expires at most.
func (s *Server) Stop(
	ctx context.Context,
) {
	done := make(chan struct{})
	go func() {
		s.ns.Shutdown()
		s.ns.WaitForShutdown()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("nats server stopped")
	case <-ctx.Done():
		s.logger.Warn("nats server shutdown timed out")
	}
}

// ClientURL returns the URL clients connect to.
func (s *Server) ClientURL() string {
	return s.ns.ClientURL()
}

// serverLogger routes NATS server logs through slog.
type serverLogger struct {
	logger *slog.Logger
}

func (l *serverLogger) Noticef(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *serverLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l *serverLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *serverLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *serverLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l *serverLogger) Tracef(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
