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

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go.felesatra.moe/tracemoe"
)

type searchOptions struct {
	anilistID     int64
	cutBorders    bool
	anilistInfo   bool
	minSimilarity float64
	limit         int
	json          bool
	noCache       bool
}

func (o *searchOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&o.anilistID, "anilist-id", 0, "Only search within this AniList anime")
	cmd.Flags().BoolVar(&o.cutBorders, "cut-borders", true, "Cut black borders from the image")
	cmd.Flags().BoolVar(&o.anilistInfo, "anilist-info", false, "Include AniList titles in results")
	cmd.Flags().Float64Var(&o.minSimilarity, "min-similarity", 0, "Hide results below this similarity (0-1)")
	cmd.Flags().IntVarP(&o.limit, "limit", "n", 5, "Maximum number of results to show (0 for all)")
	cmd.Flags().BoolVar(&o.json, "json", false, "Output JSON")
}

func (o *searchOptions) query(url string) tracemoe.SearchQuery {
	return tracemoe.SearchQuery{
		URL:         url,
		AniListID:   o.anilistID,
		CutBorders:  o.cutBorders,
		AniListInfo: o.anilistInfo,
	}
}

func (o *searchOptions) validate() error {
	if o.minSimilarity < 0 || o.minSimilarity > 1 {
		return errors.New("--min-similarity must be between 0 and 1")
	}
	if o.limit < 0 {
		return errors.New("--limit must not be negative")
	}
	return nil
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var opts searchOptions
	cmd := &cobra.Command{
		Use:   "search <image-url>",
		Short: "Search by image URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			client, err := ctx.newClient(cmd)
			if err != nil {
				return err
			}
			q := opts.query(args[0])
			var cache *tracemoe.SearchCache
			if !opts.noCache {
				if cache, err = ctx.openCache(); err != nil {
					return err
				}
			}
			var resp *tracemoe.SearchResponse
			if cache != nil {
				resp, err = cache.SearchByURL(cmd.Context(), client, q)
			} else {
				resp, err = client.SearchByURL(cmd.Context(), q)
			}
			if err != nil {
				return describeAPIError(err)
			}
			if cache != nil {
				if err := cache.SaveIfUpdated(); err != nil {
					return fmt.Errorf("save cache: %w", err)
				}
			}
			return printSearch(cmd, resp, &opts)
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Do not use the search cache")
	return cmd
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var opts searchOptions
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Search by uploading a local image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			client, err := ctx.newClient(cmd)
			if err != nil {
				return err
			}
			resp, err := client.SearchFile(cmd.Context(), args[0], opts.query(""))
			if err != nil {
				return describeAPIError(err)
			}
			return printSearch(cmd, resp, &opts)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func printSearch(cmd *cobra.Command, resp *tracemoe.SearchResponse, opts *searchOptions) error {
	results := filterResults(resp.Result, opts.minSimilarity, opts.limit)
	if opts.json {
		out := *resp
		out.Result = results
		return writeJSON(cmd, out)
	}
	w := cmd.OutOrStdout()
	if resp.Error != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", resp.Error)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "No matches found")
		return nil
	}
	fmt.Fprintln(w, renderResults(results, shouldColorize(w)))
	return nil
}

// filterResults drops results below min similarity and keeps at most
// limit results.  A zero limit keeps all.
func filterResults(rs []tracemoe.Result, min float64, limit int) []tracemoe.Result {
	out := make([]tracemoe.Result, 0, len(rs))
	for _, r := range rs {
		if r.Similarity < min {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
