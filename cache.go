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
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"go.felesatra.moe/xdg"
)

// A SearchCache caches the responses of URL searches on disk, so
// repeated searches for the same image do not use up the search quota.
// Uploads are not cached.
//
// A SearchCache is not safe for concurrent use.  Saving is safe
// across processes: entries saved by other processes since the cache
// was opened are merged in rather than overwritten.
type SearchCache struct {
	Path string
	// TTL is how long an entry stays fresh.
	// Zero means entries never expire.
	TTL     time.Duration
	Entries map[string]CacheEntry
	updated bool
	cleared bool
}

// A CacheEntry is a cached search response.
type CacheEntry struct {
	Response SearchResponse
	Stored   time.Time
}

// DefaultSearchCache opens the search cache at the default location.
func DefaultSearchCache() (*SearchCache, error) {
	return OpenSearchCache(DefaultSearchCachePath())
}

// DefaultSearchCachePath returns the default location of the search
// cache under the XDG cache directory.
func DefaultSearchCachePath() string {
	return filepath.Join(xdg.CacheHome(), "go.felesatra.moe_tracemoe", "search.gob")
}

// OpenSearchCache opens the search cache at path.
// A missing file is treated as an empty cache.
func OpenSearchCache(path string) (*SearchCache, error) {
	e, err := readEntries(path)
	if err != nil {
		return nil, errors.Wrap(err, "open search cache")
	}
	return &SearchCache{
		Path:    path,
		Entries: e,
	}, nil
}

// Get returns the cached response for q if there is a fresh one.
func (c *SearchCache) Get(q SearchQuery) (*SearchResponse, bool) {
	e, ok := c.Entries[cacheKey(q)]
	if !ok || c.stale(e, time.Now()) {
		return nil, false
	}
	r := e.Response
	return &r, true
}

// Put stores the response for q.
func (c *SearchCache) Put(q SearchQuery, r *SearchResponse) {
	if c.Entries == nil {
		c.Entries = make(map[string]CacheEntry)
	}
	c.Entries[cacheKey(q)] = CacheEntry{
		Response: *r,
		Stored:   time.Now(),
	}
	c.updated = true
}

// SearchByURL returns the cached response for q if there is a fresh
// one, and otherwise searches using the client and caches the response.
func (c *SearchCache) SearchByURL(ctx context.Context, cl *Client, q SearchQuery) (*SearchResponse, error) {
	if r, ok := c.Get(q); ok {
		cl.logger().Printf("cache hit for %s", q.URL)
		return r, nil
	}
	r, err := cl.SearchByURL(ctx, q)
	if err != nil {
		return nil, err
	}
	c.Put(q, r)
	return r, nil
}

// Prune removes stale entries and returns the number removed.
func (c *SearchCache) Prune() int {
	now := time.Now()
	n := 0
	for k, e := range c.Entries {
		if c.stale(e, now) {
			delete(c.Entries, k)
			n++
		}
	}
	if n > 0 {
		c.updated = true
	}
	return n
}

// Clear removes all entries.  The next Save replaces the file on disk
// without merging or reading it, so Clear can be used to recover from
// a corrupt cache file.
func (c *SearchCache) Clear() {
	c.Entries = make(map[string]CacheEntry)
	c.cleared = true
	c.updated = true
}

// Save writes the cache to its path.
//
// Unless the cache was cleared, entries in the file that were saved by
// another process are merged in first.  For keys present in both, the
// newer entry is kept.  Stale entries in the file are dropped.
func (c *SearchCache) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return errors.Wrap(err, "save search cache")
	}
	l := flock.New(c.Path + ".lock")
	if err := l.Lock(); err != nil {
		return errors.Wrap(err, "save search cache: lock")
	}
	defer l.Unlock()
	if !c.cleared {
		disk, err := readEntries(c.Path)
		if err != nil {
			return errors.Wrap(err, "save search cache: merge")
		}
		c.merge(disk, time.Now())
	}
	if err := writeEntries(c.Path, c.Entries); err != nil {
		return errors.Wrap(err, "save search cache")
	}
	c.updated = false
	c.cleared = false
	return nil
}

func (c *SearchCache) merge(disk map[string]CacheEntry, now time.Time) {
	if c.Entries == nil {
		c.Entries = make(map[string]CacheEntry, len(disk))
	}
	for k, e := range disk {
		if c.stale(e, now) {
			continue
		}
		if cur, ok := c.Entries[k]; ok && !e.Stored.After(cur.Stored) {
			continue
		}
		c.Entries[k] = e
	}
}

// SaveIfUpdated saves the cache if it was changed since it was opened
// or last saved.
func (c *SearchCache) SaveIfUpdated() error {
	if !c.updated {
		return nil
	}
	return c.Save()
}

func (c *SearchCache) stale(e CacheEntry, now time.Time) bool {
	return c.TTL > 0 && now.Sub(e.Stored) > c.TTL
}

func cacheKey(q SearchQuery) string {
	return EncodeQuery("search", q)
}

// readEntries reads the entries of a cache file.
// A missing file has no entries.
func readEntries(path string) (map[string]CacheEntry, error) {
	e := make(map[string]CacheEntry)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return e, nil
		}
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&e); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return e, nil
}

// writeEntries atomically replaces the cache file at path.
func writeEntries(path string, e map[string]CacheEntry) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(e); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
