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

package tracemoe

import (
	"context"
	"net/http"
	"time"
)

// DefaultBaseURL is the base URL of the public trace.moe API.
const DefaultBaseURL = "https://api.trace.moe/"

const (
	packageVersion = "0.1.0"
	userAgent      = "go.felesatra.moe/tracemoe " + packageVersion

	apiKeyHeader   = "x-trace-key"
	defaultTimeout = 30 * time.Second
)

var defaultHTTPClient = &http.Client{Timeout: defaultTimeout}

// A Client is a trace.moe API client.
// The zero value is an anonymous client for the public API.
// A Client is safe to use concurrently once configured.
type Client struct {
	// BaseURL is the API base URL.
	// If empty, DefaultBaseURL is used.
	BaseURL string
	// APIKey is sent with every request if set.
	// Without an API key, requests are rate limited by IP address.
	APIKey string
	// Header contains additional headers to send with every request.
	Header http.Header
	// HTTPClient is used to send requests.
	// If nil, a client with a 30 second timeout is used.
	HTTPClient *http.Client
	// UserAgent overrides the default User-Agent.
	UserAgent string
	// Limiter specifies a rate limiter to use.
	// If unset, no rate limiting is done.
	Limiter Limiter
	// Logger is used for request logging.  Optional.
	Logger Logger
}

// NewClient returns a Client for the public API using the given API
// key.  An empty key makes an anonymous client.
func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey}
}

// A Limiter implements rate limiting.
// The golang.org/x/time/rate package provides an implementation.
type Limiter interface {
	Wait(context.Context) error
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return userAgent
}

func (c *Client) logger() Logger {
	if c.Logger == nil {
		return nullLogger{}
	}
	return prefixLogger{prefix: "tracemoe: ", logger: c.Logger}
}
