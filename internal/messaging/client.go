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

package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/auditlog/internal/config"
)

// Conn is a NATS connection with its JetStream context.
type Conn struct {
	NC *nats.Conn
	JS jetstream.JetStream
}

// Connect dials the configured server and opens a JetStream context.
func Connect(
	logger *slog.Logger,
	cfg config.NATSConnection,
) (*Conn, error) {
	url := "nats://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return ConnectURL(logger, url, cfg.ClientName, cfg.Auth)
}

// ConnectURL dials url directly.
func ConnectURL(
	logger *slog.Logger,
	url string,
	name string,
	auth config.NATSAuth,
) (*Conn, error) {
	opts, err := AuthOptions(auth)
	if err != nil {
		return nil, err
	}

	opts = append(opts,
		nats.Name(name),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	)

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	return &Conn{
		NC: nc,
		JS: js,
	}, nil
}

// Close closes the connection. A nil Conn is ignored.
func (c *Conn) Close() {
	if c != nil && c.NC != nil {
		c.NC.Close()
	}
}

// AuthOptions converts client auth configuration to connect options.
func AuthOptions(
	auth config.NATSAuth,
) ([]nats.Option, error) {
	switch auth.Type {
	case "user_pass":
		return []nats.Option{nats.UserInfo(auth.Username, auth.Password)}, nil
	case "nkey":
		opt, err := nats.NkeyOptionFromSeed(auth.NKeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading nkey seed: %w", err)
		}
		return []nats.Option{opt}, nil
	default:
		return []nats.Option{}, nil
	}
}

// EnsureKeyValue creates the bucket or updates its configuration.
func (c *Conn) EnsureKeyValue(
	ctx context.Context,
	cfg jetstream.KeyValueConfig,
) (jetstream.KeyValue, error) {
	kv, err := c.JS.CreateOrUpdateKeyValue(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating kv bucket %s: %w", cfg.Bucket, err)
	}

	return kv, nil
}

// EnsureStream creates the stream or updates its configuration.
func (c *Conn) EnsureStream(
	ctx context.Context,
	cfg jetstream.StreamConfig,
) (jetstream.Stream, error) {
	stream, err := c.JS.CreateOrUpdateStream(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating stream %s: %w", cfg.Name, err)
	}

	return stream, nil
}
