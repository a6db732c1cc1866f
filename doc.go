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

// Package tracemoe provides Go bindings for the trace.moe API.
//
// trace.moe finds the anime scene a screenshot was taken from.
// Searches can be made by image URL (Client.SearchByURL) or by
// uploading image data (Client.SearchUpload), and the quota of the
// calling account can be checked with Client.Me.
//
// Read the trace.moe API documentation for up to date information,
// especially about quota and concurrency limits.
// You are responsible for configuring rate limiting correctly.
//
// Documentation for the trace.moe API can be found at
// https://soruly.github.io/trace.moe-api/.
package tracemoe
