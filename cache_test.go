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
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestSearchCache(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sub", "search.gob")
	q := SearchQuery{URL: "https://example.com/a.jpg", CutBorders: true}
	r := &SearchResponse{
		FrameCount: 10,
		Result: []Result{{
			AniList:  AniList{ID: 1},
			Filename: "a.mp4",
			Episode:  Episode{Numbers: []float64{3}},
			From:     1,
			To:       2,
		}},
	}
	c := &SearchCache{Path: path}
	c.Put(q, r)
	if err := c.Save(); err != nil {
		t.Fatalf("Error saving: %s", err)
	}
	c, err := OpenSearchCache(path)
	if err != nil {
		t.Fatalf("Error loading: %s", err)
	}
	got, ok := c.Get(q)
	if !ok {
		t.Fatalf("Get(%#v) missed", q)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("got %#v; want %#v", got, r)
	}
	if _, ok := c.Get(SearchQuery{URL: q.URL}); ok {
		t.Errorf("Get with different flags hit")
	}
}

func TestOpenSearchCacheMissing(t *testing.T) {
	t.Parallel()
	c, err := OpenSearchCache(filepath.Join(t.TempDir(), "missing.gob"))
	if err != nil {
		t.Fatalf("OpenSearchCache returned error: %s", err)
	}
	if len(c.Entries) != 0 {
		t.Errorf("Got entries %#v", c.Entries)
	}
}

func TestOpenSearchCacheCorrupt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "search.gob")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenSearchCache(path); err == nil {
		t.Errorf("Expected error")
	}
}

func TestSearchCacheStale(t *testing.T) {
	t.Parallel()
	q1 := SearchQuery{URL: "https://example.com/old.jpg"}
	q2 := SearchQuery{URL: "https://example.com/new.jpg"}
	c := &SearchCache{
		TTL: time.Hour,
		Entries: map[string]CacheEntry{
			cacheKey(q1): {Stored: time.Now().Add(-2 * time.Hour)},
			cacheKey(q2): {Stored: time.Now()},
		},
	}
	if _, ok := c.Get(q1); ok {
		t.Errorf("Got stale entry")
	}
	if _, ok := c.Get(q2); !ok {
		t.Errorf("Missed fresh entry")
	}
	if n := c.Prune(); n != 1 {
		t.Errorf("Prune() = %d; want 1", n)
	}
	if len(c.Entries) != 1 {
		t.Errorf("Entries after prune: %#v", c.Entries)
	}
}

func TestSearchCacheSearchByURL(t *testing.T) {
	t.Parallel()
	n := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n++
		serveFile(t, w, "testdata/search.json")
	}))
	t.Cleanup(srv.Close)
	cl := &Client{BaseURL: srv.URL}
	path := filepath.Join(t.TempDir(), "search.gob")
	c, err := OpenSearchCache(path)
	if err != nil {
		t.Fatal(err)
	}
	q := SearchQuery{URL: "https://example.com/a.jpg"}
	ctx := context.Background()
	r1, err := c.SearchByURL(ctx, cl, q)
	if err != nil {
		t.Fatalf("SearchByURL returned error: %+v", err)
	}
	r2, err := c.SearchByURL(ctx, cl, q)
	if err != nil {
		t.Fatalf("SearchByURL returned error: %+v", err)
	}
	if n != 1 {
		t.Errorf("Server got %d requests; want 1", n)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("Cached response differs: %#v, %#v", r1, r2)
	}
	if err := c.SaveIfUpdated(); err != nil {
		t.Fatalf("SaveIfUpdated returned error: %s", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Cache not saved: %s", err)
	}
}

func TestSaveIfUpdatedNoop(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "search.gob")
	c, err := OpenSearchCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveIfUpdated(); err != nil {
		t.Fatalf("SaveIfUpdated returned error: %s", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Unchanged cache was written: %v", err)
	}
}

func TestSearchCacheSaveMerges(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "search.gob")
	a, err := OpenSearchCache(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := OpenSearchCache(path)
	if err != nil {
		t.Fatal(err)
	}
	q1 := SearchQuery{URL: "https://example.com/1.jpg"}
	q2 := SearchQuery{URL: "https://example.com/2.jpg"}
	a.Put(q1, &SearchResponse{FrameCount: 1})
	if err := a.Save(); err != nil {
		t.Fatalf("Error saving: %s", err)
	}
	b.Put(q2, &SearchResponse{FrameCount: 2})
	if err := b.Save(); err != nil {
		t.Fatalf("Error saving: %s", err)
	}
	c, err := OpenSearchCache(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range []SearchQuery{q1, q2} {
		if _, ok := c.Get(q); !ok {
			t.Errorf("Entry for %s lost", q.URL)
		}
	}
}

func TestSearchCacheSaveKeepsNewer(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "search.gob")
	q := SearchQuery{URL: "https://example.com/a.jpg"}
	now := time.Now()
	newer := &SearchCache{Path: path, Entries: map[string]CacheEntry{
		cacheKey(q): {Response: SearchResponse{FrameCount: 2}, Stored: now},
	}}
	if err := newer.Save(); err != nil {
		t.Fatalf("Error saving: %s", err)
	}
	older := &SearchCache{Path: path, Entries: map[string]CacheEntry{
		cacheKey(q): {Response: SearchResponse{FrameCount: 1}, Stored: now.Add(-time.Minute)},
	}}
	if err := older.Save(); err != nil {
		t.Fatalf("Error saving: %s", err)
	}
	c, err := OpenSearchCache(path)
	if err != nil {
		t.Fatal(err)
	}
	r, ok := c.Get(q)
	if !ok {
		t.Fatalf("Get(%#v) missed", q)
	}
	if r.FrameCount != 2 {
		t.Errorf("Got FrameCount %d; want newer entry with 2", r.FrameCount)
	}
}

func TestSearchCacheSaveDropsStale(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "search.gob")
	old := SearchQuery{URL: "https://example.com/old.jpg"}
	writer := &SearchCache{Path: path, Entries: map[string]CacheEntry{
		cacheKey(old): {Stored: time.Now().Add(-2 * time.Hour)},
	}}
	if err := writer.Save(); err != nil {
		t.Fatalf("Error saving: %s", err)
	}
	c := &SearchCache{Path: path, TTL: time.Hour}
	c.Put(SearchQuery{URL: "https://example.com/new.jpg"}, &SearchResponse{})
	if err := c.Save(); err != nil {
		t.Fatalf("Error saving: %s", err)
	}
	got, err := OpenSearchCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.Entries[cacheKey(old)]; ok {
		t.Errorf("Stale entry merged back in")
	}
	if len(got.Entries) != 1 {
		t.Errorf("Got entries %#v", got.Entries)
	}
}

func TestSearchCacheClearReplacesCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "search.gob")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &SearchCache{Path: path}
	c.Put(SearchQuery{URL: "https://example.com/a.jpg"}, &SearchResponse{})
	if err := c.Save(); err == nil {
		t.Errorf("Save merged into a corrupt file without error")
	}
	c.Clear()
	if err := c.Save(); err != nil {
		t.Fatalf("Save after Clear returned error: %s", err)
	}
	got, err := OpenSearchCache(path)
	if err != nil {
		t.Fatalf("Cache still unreadable: %s", err)
	}
	if len(got.Entries) != 0 {
		t.Errorf("Got entries %#v", got.Entries)
	}
}
