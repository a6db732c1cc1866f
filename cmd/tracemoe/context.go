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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"go.felesatra.moe/tracemoe"
	"go.felesatra.moe/tracemoe/internal/config"
	"go.felesatra.moe/tracemoe/internal/logging"
)

type commandContext struct {
	configFlag *string
	apiKeyFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, apiKeyFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		apiKeyFlag: apiKeyFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if c.apiKeyFlag != nil {
			if key := strings.TrimSpace(*c.apiKeyFlag); key != "" {
				cfg.API.APIKey = key
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, w)
}

// newClient builds an API client from the loaded configuration.
// Request logs go to the command's stderr.
func (c *commandContext) newClient(cmd *cobra.Command) (*tracemoe.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	client := &tracemoe.Client{
		BaseURL:    cfg.API.BaseURL,
		APIKey:     cfg.API.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		Logger:     logging.Printf(logger),
	}
	if rpm := cfg.API.RequestsPerMinute; rpm > 0 {
		client.Limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
	}
	return client, nil
}

// cachePath returns the configured search cache location and whether
// caching is enabled.
func (c *commandContext) cachePath() (string, bool, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", false, err
	}
	path := cfg.Cache.Path
	if path == "" {
		path = tracemoe.DefaultSearchCachePath()
	}
	return path, cfg.Cache.Enabled, nil
}

// openCache opens the configured search cache.  It returns nil if
// caching is disabled.
func (c *commandContext) openCache() (*tracemoe.SearchCache, error) {
	path, enabled, err := c.cachePath()
	if err != nil || !enabled {
		return nil, err
	}
	cache, err := tracemoe.OpenSearchCache(path)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'tracemoe cache clear' to reset it)", err)
	}
	cache.TTL = c.config.CacheTTL()
	return cache, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
