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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// NewRequest returns a request for path, which is resolved relative
// to the client's base URL and may include a query string.
// Default headers and the API key are set on the request.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "application/json")
	for k, vs := range c.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.APIKey)
	}
	return req, nil
}

func (c *Client) resolve(path string) (*url.URL, error) {
	b := c.BaseURL
	if b == "" {
		b = DefaultBaseURL
	}
	base, err := url.Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "parse base url %q", b)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parse path %q", path)
	}
	return base.ResolveReference(ref), nil
}

// Do sends a request and decodes the JSON response into v.
// If v is nil, the response body is discarded.
// A non-2xx response is returned as an *HTTPError.
func (c *Client) Do(req *http.Request, v any) error {
	d, err := c.do(req)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(d, v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// GetJSON sends a GET request for path and decodes the JSON response
// into v.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.Do(req, v)
}

// PostJSON sends body as JSON in a POST request for path and decodes
// the JSON response into v.
func (c *Client) PostJSON(ctx context.Context, path string, body, v any) error {
	d, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}
	req, err := c.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(d))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Do(req, v)
}

// do sends a request and returns the response body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(req.Context()); err != nil {
			return nil, errors.Wrap(err, "wait for limiter")
		}
	}
	l := c.requestLogger()
	l.Printf("%s %s", req.Method, req.URL.Redacted())
	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		l.Printf("failed after %s: %s", time.Since(start).Round(time.Millisecond), err)
		return nil, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()
	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	l.Printf("%s (%d bytes in %s)", resp.Status, len(d), time.Since(start).Round(time.Millisecond))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(d),
		}
	}
	return d, nil
}
