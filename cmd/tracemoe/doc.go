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

// Command tracemoe finds the anime scene a screenshot was taken from
// using the trace.moe API.
//
//	tracemoe search https://example.com/screenshot.jpg
//	tracemoe upload screenshot.png
//	tracemoe me
//
// Configuration is read from ~/.config/tracemoe/config.toml; run
// "tracemoe config init" to create one.
package main
