// Copyright (C) 2026 Allen Li
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type cliTestEnv struct {
	configPath string
	cachePath  string
}

// setupCLITestEnv writes a config pointing at baseURL into a temporary
// HOME.
func setupCLITestEnv(t *testing.T, baseURL string) *cliTestEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("TRACE_MOE_API_KEY", "")
	t.Setenv("NO_COLOR", "1")

	env := &cliTestEnv{
		configPath: filepath.Join(home, "config.toml"),
		cachePath:  filepath.Join(home, "cache", "search.gob"),
	}
	data := fmt.Sprintf(`[api]
base_url = %q
timeout_seconds = 5

[cache]
enabled = true
path = %q
ttl_hours = 1

[logging]
level = "error"
`, baseURL, env.cachePath)
	require.NoError(t, os.WriteFile(env.configPath, []byte(data), 0o600))
	return env
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// newFixtureServer serves the named file from the library testdata for
// every request and counts requests.
func newFixtureServer(t *testing.T, status int, name string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	d, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	var n atomic.Int32
	srv := newBodyServer(t, status, d, &n)
	return srv, &n
}

func newStatusServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return newBodyServer(t, status, []byte(body), new(atomic.Int32))
}

func newBodyServer(t *testing.T, status int, body []byte, n *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}
