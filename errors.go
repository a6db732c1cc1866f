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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"go.felesatra.moe/tracemoe/codes"
)

// An HTTPError is returned when the API responds with a non-2xx status.
// HTTPError unwraps to its codes.Code, so errors.Is(err, codes.Forbidden)
// can be used to check for an invalid API key.
type HTTPError struct {
	StatusCode int
	// Body is the raw response body.
	Body string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Code returns the status code as a codes.Code.
func (e *HTTPError) Code() codes.Code {
	return codes.Code(e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Code()
}

// Message returns the error message reported by the API.
// It falls back to the raw body, or the status description if the
// body is empty.
func (e *HTTPError) Message() string {
	if msg := checkAPIError([]byte(e.Body)); msg != "" {
		return msg
	}
	if b := strings.TrimSpace(e.Body); b != "" {
		return b
	}
	return e.Code().String()
}

// IsTemporary reports whether err was caused by an API status that
// may clear up if the request is retried later, such as an exhausted
// concurrency limit or a full search queue.
func IsTemporary(err error) bool {
	var c codes.Code
	if !errors.As(err, &c) {
		return false
	}
	return c.Temporary()
}

// checkAPIError returns the in-band error message of a JSON response
// body, if any.
func checkAPIError(d []byte) string {
	var a struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(d, &a); err != nil {
		return ""
	}
	return a.Error
}
