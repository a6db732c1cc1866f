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

// Package codes contains the HTTP status codes documented by the
// trace.moe API.
package codes

import (
	"fmt"
	"net/http"
)

// A Code is an HTTP status code returned by the trace.moe API.
// Note that even though Code implements error, not all Code values
// should be considered errors.
type Code int

const (
	OK                 Code = 200
	BadRequest         Code = 400 // invalid image or image url
	PaymentRequired    Code = 402 // search quota or concurrency limit reached
	Forbidden          Code = 403 // invalid api key
	NotFound           Code = 404
	MethodNotAllowed   Code = 405
	InternalError      Code = 500
	ServiceUnavailable Code = 503 // search queue is full
	GatewayTimeout     Code = 504 // server is overloaded
)

// String returns a short description of the code as used by trace.moe.
func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case BadRequest:
		return "invalid image or image url"
	case PaymentRequired:
		return "search quota or concurrency limit reached"
	case Forbidden:
		return "invalid api key"
	case NotFound:
		return "not found"
	case MethodNotAllowed:
		return "method not allowed"
	case InternalError:
		return "internal server error"
	case ServiceUnavailable:
		return "search queue is full"
	case GatewayTimeout:
		return "server is overloaded"
	}
	if t := http.StatusText(int(c)); t != "" {
		return t
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

func (c Code) Error() string {
	return fmt.Sprintf("status %d %s", int(c), c)
}

// Temporary reports whether a request that failed with this code may
// succeed if retried later.
func (c Code) Temporary() bool {
	switch c {
	case PaymentRequired, ServiceUnavailable, GatewayTimeout:
		return true
	}
	return false
}

// Success reports whether c is a 2xx code.
func (c Code) Success() bool {
	return c >= 200 && c < 300
}
