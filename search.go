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
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A SearchQuery holds the parameters for a search.
// Zero fields are not sent.
type SearchQuery struct {
	// URL is the address of the image to search for.
	// It is only used by SearchByURL.
	URL string
	// AniListID restricts the search to a single anime.
	AniListID int64
	// CutBorders asks the API to remove black borders from the image.
	CutBorders bool
	// AniListInfo asks the API to include AniList metadata in results.
	AniListInfo bool
}

// EncodeQuery returns base with the parameters of q appended as a
// query string.  If no parameters are set, base is returned as is.
//
// Boolean parameters are flags and are sent without a value.
func EncodeQuery(base string, q SearchQuery) string {
	var p []string
	if q.URL != "" {
		p = append(p, "url="+url.QueryEscape(q.URL))
	}
	if q.AniListID != 0 {
		p = append(p, "anilist_id="+strconv.FormatInt(q.AniListID, 10))
	}
	if q.CutBorders {
		p = append(p, "cut_borders=")
	}
	if q.AniListInfo {
		p = append(p, "anilist_info=")
	}
	if len(p) == 0 {
		return base
	}
	return base + "?" + strings.Join(p, "&")
}

// SearchByURL searches for the image at q.URL.
func (c *Client) SearchByURL(ctx context.Context, q SearchQuery) (*SearchResponse, error) {
	if q.URL == "" {
		return nil, errors.New("tracemoe: search by url: empty url")
	}
	req, err := c.NewRequest(ctx, http.MethodGet, EncodeQuery("search", q), nil)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search by url")
	}
	d, err := c.do(req)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search by url")
	}
	r, err := decodeSearchResponse(d)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search by url")
	}
	return r, nil
}

// SearchUpload searches for an image by uploading its data.
// The remaining parameters of q are sent with the upload; q.URL must
// not be set.
func (c *Client) SearchUpload(ctx context.Context, image []byte, q SearchQuery) (*SearchResponse, error) {
	if len(image) == 0 {
		return nil, errors.New("tracemoe: search upload: empty image")
	}
	if q.URL != "" {
		return nil, errors.New("tracemoe: search upload: url set for upload")
	}
	body, contentType, err := encodeImageForm(image)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search upload")
	}
	req, err := c.NewRequest(ctx, http.MethodPost, EncodeQuery("search", q), body)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search upload")
	}
	req.Header.Set("Content-Type", contentType)
	d, err := c.do(req)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search upload")
	}
	r, err := decodeSearchResponse(d)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search upload")
	}
	return r, nil
}

// SearchFile searches for the image in the named file.
// See SearchUpload.
func (c *Client) SearchFile(ctx context.Context, name string, q SearchQuery) (*SearchResponse, error) {
	image, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: search file")
	}
	return c.SearchUpload(ctx, image, q)
}

// encodeImageForm encodes image as a multipart form with a single
// image field.
func encodeImageForm(image []byte) (*bytes.Buffer, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	fw, err := w.CreateFormFile("image", "image")
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &b, w.FormDataContentType(), nil
}
