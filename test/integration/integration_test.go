//go:build integration

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

package integration_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Users configured in auditlog.yaml.
const (
	adminUser = "admin@acme"
	plainUser = "jane@acme"
)

// harness runs one auditlog binary with an embedded NATS server and API,
// and drives the CLI against it.
type harness struct {
	dir        string
	binary     string
	configPath string
	apiPort    int
	natsPort   int
	server     *exec.Cmd
}

// cliResult is the outcome of one CLI invocation.
type cliResult struct {
	Stdout string
	Stderr string
	Code   int
}

// decode unmarshals the invocation's stdout.
func (r cliResult) decode(
	target any,
) error {
	return json.Unmarshal([]byte(strings.TrimSpace(r.Stdout)), target)
}

var env *harness

func TestMain(
	m *testing.M,
) {
	h, err := newHarness()
	if err != nil {
		fmt.Fprintf(os.Stderr, "integration setup: %v\n", err)
		os.Exit(1)
	}

	if err := h.start(15 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "integration start: %v\n", err)
		h.stop()
		os.Exit(1)
	}
	env = h

	code := m.Run()

	h.stop()
	os.Exit(code)
}

func newHarness() (*harness, error) {
	dir, err := os.MkdirTemp("", "auditlog-integration-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	h := &harness{
		dir:    dir,
		binary: filepath.Join(dir, "auditlog"),
	}

	if h.apiPort, err = freePort(); err != nil {
		return nil, err
	}
	if h.natsPort, err = freePort(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		return nil, fmt.Errorf("resolving repo root: %w", err)
	}
	h.configPath = filepath.Join(root, "test", "integration", "auditlog.yaml")

	build := exec.Command("go", "build", "-o", h.binary, ".")
	build.Dir = root
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return nil, fmt.Errorf("building binary: %w", err)
	}

	return h, nil
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("reserving port: %w", err)
	}
	defer func() { _ = l.Close() }()

	return l.Addr().(*net.TCPAddr).Port, nil
}

// baseEnv points both the server and the CLI at the harness ports.
func (h *harness) baseEnv() []string {
	return append(os.Environ(),
		fmt.Sprintf("AUDITLOG_API_SERVER_PORT=%d", h.apiPort),
		fmt.Sprintf("AUDITLOG_API_SERVER_NATS_PORT=%d", h.natsPort),
		fmt.Sprintf("AUDITLOG_NATS_SERVER_PORT=%d", h.natsPort),
		fmt.Sprintf("AUDITLOG_NATS_SERVER_STORE_DIR=%s", filepath.Join(h.dir, "jetstream")),
		fmt.Sprintf("AUDITLOG_API_CLIENT_URL=%s", h.url("")),
	)
}

func (h *harness) url(
	path string,
) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", h.apiPort, path)
}

func (h *harness) start(
	timeout time.Duration,
) error {
	h.server = exec.Command(h.binary, "start", "-f", h.configPath)
	h.server.Env = h.baseEnv()
	h.server.Stdout = os.Stdout
	h.server.Stderr = os.Stderr
	if err := h.server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	fmt.Fprintf(os.Stderr, "integration: api=%d nats=%d dir=%s\n", h.apiPort, h.natsPort, h.dir)

	for deadline := time.Now().Add(timeout); time.Now().Before(deadline); {
		resp, err := http.Get(h.url("/health/ready")) //nolint:gosec
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(250 * time.Millisecond)
	}

	return fmt.Errorf("server not ready after %s", timeout)
}

func (h *harness) stop() {
	if h.server != nil && h.server.Process != nil {
		_ = h.server.Process.Kill()
		_ = h.server.Wait()
	}
	_ = os.RemoveAll(h.dir)
}

// run invokes the CLI as user. An empty user sends no user header.
func (h *harness) run(
	user string,
	args ...string,
) cliResult {
	cmd := exec.Command(h.binary, append([]string{"-f", h.configPath}, args...)...)
	cmd.Env = append(h.baseEnv(), "AUDITLOG_API_CLIENT_USER_ID="+user)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := cliResult{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitCode()
		} else {
			res.Code = -1
		}
	}
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	return res
}
