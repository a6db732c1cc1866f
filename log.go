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
	"fmt"
	"sync/atomic"
)

// A Logger can be used for logging.
// A Logger must be safe to use concurrently.
// *log.Logger satisfies this interface.
type Logger interface {
	Printf(string, ...any)
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...any) {}

type prefixLogger struct {
	prefix string
	logger Logger
}

func (l prefixLogger) Printf(format string, v ...any) {
	l.logger.Printf("%s%s", l.prefix, fmt.Sprintf(format, v...))
}

// lastRequestID numbers requests across all clients in the process, so
// the log lines of concurrent requests can be told apart.
var lastRequestID atomic.Uint64

// requestLogger returns a logger for a single request.  Its lines are
// tagged with a new request ID.
func (c *Client) requestLogger() Logger {
	if c.Logger == nil {
		return nullLogger{}
	}
	id := lastRequestID.Add(1)
	return prefixLogger{
		prefix: fmt.Sprintf("tracemoe: req %d: ", id),
		logger: c.Logger,
	}
}
