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
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A SearchResponse is the response to a search request.
type SearchResponse struct {
	// FrameCount is the number of frames that were compared.
	FrameCount int64 `json:"frameCount"`
	// Error is empty unless the API reported a problem.
	Error  string   `json:"error"`
	Result []Result `json:"result"`
}

// A Result is a single scene matching a search.
// Results are ordered by decreasing similarity.
type Result struct {
	AniList  AniList `json:"anilist"`
	Filename string  `json:"filename"`
	Episode  Episode `json:"episode"`
	// Duration is the length of the matched video file in seconds.
	Duration float64 `json:"duration"`
	// From and To bound the matched scene in seconds.
	From float64 `json:"from"`
	To   float64 `json:"to"`
	// At is the time of the best matching frame in seconds.
	At float64 `json:"at"`
	// Similarity is between 0 and 1.
	// Results below 0.9 are most likely incorrect.
	Similarity float64 `json:"similarity"`
	// Image and Video are preview URLs.
	Image string `json:"image"`
	Video string `json:"video"`
}

func (r *Result) UnmarshalJSON(d []byte) error {
	type result Result
	var a struct {
		result
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(d, &a); err != nil {
		return err
	}
	*r = Result(a.result)
	if r.Image == "" {
		r.Image = a.Picture
	}
	return nil
}

// An AniList references an anime on AniList.
//
// Search responses contain only the AniList ID unless AniList info
// was requested with SearchQuery.AniListInfo, in which case Info is
// also set.
type AniList struct {
	ID   int64
	Info *AniListInfo
}

func (a *AniList) UnmarshalJSON(d []byte) error {
	d = bytes.TrimSpace(d)
	switch {
	case bytes.Equal(d, []byte("null")):
		*a = AniList{}
		return nil
	case len(d) > 0 && d[0] == '{':
		var i AniListInfo
		if err := json.Unmarshal(d, &i); err != nil {
			return errors.Wrap(err, "decode anilist info")
		}
		*a = AniList{ID: i.ID, Info: &i}
		return nil
	}
	var id int64
	if err := json.Unmarshal(d, &id); err != nil {
		return errors.Wrap(err, "decode anilist id")
	}
	*a = AniList{ID: id}
	return nil
}

func (a AniList) MarshalJSON() ([]byte, error) {
	if a.Info != nil {
		return json.Marshal(a.Info)
	}
	return json.Marshal(a.ID)
}

// AniListInfo holds AniList metadata for an anime.
type AniListInfo struct {
	ID int64 `json:"id"`
	// IDMal is the MyAnimeList ID, or zero if unknown.
	IDMal    int64        `json:"idMal"`
	Title    AniListTitle `json:"title"`
	Synonyms []string     `json:"synonyms"`
	IsAdult  bool         `json:"isAdult"`
}

// AniListTitle holds the titles of an anime.
// Missing titles are empty.
type AniListTitle struct {
	Native  string `json:"native"`
	Romaji  string `json:"romaji"`
	English string `json:"english"`
}

// Preferred returns the English title, falling back to the romaji and
// then the native title.
func (t AniListTitle) Preferred() string {
	for _, s := range []string{t.English, t.Romaji, t.Native} {
		if s != "" {
			return s
		}
	}
	return ""
}

// An Episode identifies the episode a scene was found in.
//
// The API reports episodes as a number, a list of numbers (for files
// spanning several episodes), a string (for specials), or not at all.
type Episode struct {
	Numbers []float64
	Text    string
}

// IsZero reports whether the episode is unknown.
func (e Episode) IsZero() bool {
	return len(e.Numbers) == 0 && e.Text == ""
}

// Number returns the episode number if the episode is a single number.
func (e Episode) Number() (float64, bool) {
	if len(e.Numbers) != 1 {
		return 0, false
	}
	return e.Numbers[0], true
}

func (e Episode) String() string {
	if e.Text != "" {
		return e.Text
	}
	if len(e.Numbers) == 0 {
		return "-"
	}
	s := make([]string, len(e.Numbers))
	for i, n := range e.Numbers {
		s[i] = strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strings.Join(s, ",")
}

func (e *Episode) UnmarshalJSON(d []byte) error {
	d = bytes.TrimSpace(d)
	*e = Episode{}
	if len(d) == 0 || bytes.Equal(d, []byte("null")) {
		return nil
	}
	switch d[0] {
	case '"':
		return json.Unmarshal(d, &e.Text)
	case '[':
		if err := json.Unmarshal(d, &e.Numbers); err != nil {
			return errors.Wrap(err, "decode episode list")
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(d, &n); err != nil {
		return errors.Wrap(err, "decode episode")
	}
	e.Numbers = []float64{n}
	return nil
}

func (e Episode) MarshalJSON() ([]byte, error) {
	switch {
	case e.Text != "":
		return json.Marshal(e.Text)
	case len(e.Numbers) == 0:
		return []byte("null"), nil
	case len(e.Numbers) == 1:
		return json.Marshal(e.Numbers[0])
	}
	return json.Marshal(e.Numbers)
}

// A MeResponse describes the limits of the calling account.
type MeResponse struct {
	// ID is the account ID, or the IP address for anonymous use.
	ID          string `json:"id"`
	Priority    int64  `json:"priority"`
	Concurrency int64  `json:"concurrency"`
	Quota       int64  `json:"quota"`
	QuotaUsed   int64  `json:"quotaUsed"`
}

func (m *MeResponse) UnmarshalJSON(d []byte) error {
	type me MeResponse
	var a struct {
		me
		Competition *int64 `json:"competition"`
	}
	if err := json.Unmarshal(d, &a); err != nil {
		return err
	}
	*m = MeResponse(a.me)
	if a.Competition != nil && m.Concurrency == 0 {
		m.Concurrency = *a.Competition
	}
	return nil
}

// QuotaRemaining returns the number of searches left this month.
func (m MeResponse) QuotaRemaining() int64 {
	if r := m.Quota - m.QuotaUsed; r > 0 {
		return r
	}
	return 0
}

func decodeSearchResponse(d []byte) (*SearchResponse, error) {
	var r SearchResponse
	if err := json.Unmarshal(d, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeMe(d []byte) (*MeResponse, error) {
	var m MeResponse
	if err := json.Unmarshal(d, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
