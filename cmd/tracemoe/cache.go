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
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"go.felesatra.moe/tracemoe"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the search cache",
	}
	cacheCmd.AddCommand(newCacheInfoCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cached searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cache == nil {
				fmt.Fprintln(out, "Search cache is disabled")
				return nil
			}
			fmt.Fprintf(out, "Cache path: %s\n", cache.Path)
			fmt.Fprintf(out, "Entries: %s\n", humanize.Comma(int64(len(cache.Entries))))
			if len(cache.Entries) == 0 {
				return nil
			}
			var oldest time.Time
			for _, e := range cache.Entries {
				if oldest.IsZero() || e.Stored.Before(oldest) {
					oldest = e.Stored
				}
			}
			fmt.Fprintf(out, "Oldest entry: %s\n", humanize.Time(oldest))
			if info, err := os.Stat(cache.Path); err == nil {
				fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(uint64(info.Size())))
			}
			return nil
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired searches from the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			if cache == nil {
				return errors.New("search cache is disabled")
			}
			n := cache.Prune()
			if err := cache.SaveIfUpdated(); err != nil {
				return fmt.Errorf("save cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", n)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, enabled, err := ctx.cachePath()
			if err != nil {
				return err
			}
			if !enabled {
				return errors.New("search cache is disabled")
			}
			// The old file is not read, so a corrupt cache can be reset.
			cache := &tracemoe.SearchCache{Path: path}
			cache.Clear()
			if err := cache.Save(); err != nil {
				return fmt.Errorf("save cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared search cache at %s\n", path)
			return nil
		},
	}
}
