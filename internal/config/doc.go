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

// Package config loads, normalizes, and validates tracemoe CLI
// configuration.
//
// Settings are read from a TOML file (by default
// ~/.config/tracemoe/config.toml), with TRACE_MOE_API_KEY used when no
// API key is configured.  A missing file means defaults are used.
package config
