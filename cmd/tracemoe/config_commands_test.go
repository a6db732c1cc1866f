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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t, "http://localhost:3311/")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, "config", "init", "--path", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sample configuration")
	assert.FileExists(t, target)

	_, _, err = runCLI(t, "config", "init", "--path", target)
	assert.Error(t, err)

	out, _, err = runCLI(t, "-c", env.configPath, "--api-key", "secretkey1234", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "http://localhost:3311/")
	assert.Contains(t, out, "*********1234")
	assert.NotContains(t, out, "secretkey")
}

func TestConfigLoadError(t *testing.T) {
	env := setupCLITestEnv(t, "ftp://example.com")

	_, _, err := runCLI(t, "-c", env.configPath, "me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "***", maskKey("abc"))
	assert.Equal(t, "****5678", maskKey("12345678"))
}
