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

package config

import "go.felesatra.moe/tracemoe"

const (
	defaultConfigPath        = "~/.config/tracemoe/config.toml"
	defaultTimeoutSeconds    = 30
	defaultRequestsPerMinute = 0
	defaultCacheEnabled      = true
	defaultCacheTTLHours     = 24 * 7
	defaultLogLevel          = "warn"
	defaultLogFormat         = "console"

	apiKeyEnv = "TRACE_MOE_API_KEY"
)

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:           tracemoe.DefaultBaseURL,
			TimeoutSeconds:    defaultTimeoutSeconds,
			RequestsPerMinute: defaultRequestsPerMinute,
		},
		Cache: Cache{
			Enabled:  defaultCacheEnabled,
			TTLHours: defaultCacheTTLHours,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
