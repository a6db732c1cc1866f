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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go.felesatra.moe/tracemoe"
)

var (
	goodStyle = color.New(color.FgGreen, color.Bold)
	fairStyle = color.New(color.FgYellow)
	poorStyle = color.New(color.FgRed)
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func renderResults(rs []tracemoe.Result, colorize bool) string {
	headers := []string{"#", "Similarity", "Anime", "Episode", "At", "File"}
	aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight, alignLeft}
	rows := make([][]string, 0, len(rs))
	for i, r := range rs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			similarity(r.Similarity, colorize),
			animeName(r.AniList),
			r.Episode.String(),
			formatTimestamp(r.At),
			r.Filename,
		})
	}
	return renderTable(headers, rows, aligns)
}

func renderMe(m *tracemoe.MeResponse) string {
	rows := [][]string{
		{"ID", m.ID},
		{"Priority", strconv.FormatInt(m.Priority, 10)},
		{"Concurrency", strconv.FormatInt(m.Concurrency, 10)},
		{"Quota", humanize.Comma(m.Quota)},
		{"Used", humanize.Comma(m.QuotaUsed)},
		{"Remaining", humanize.Comma(m.QuotaRemaining())},
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

// similarity formats s as a percentage.  trace.moe results below 90%
// are usually wrong matches.
func similarity(s float64, colorize bool) string {
	v := fmt.Sprintf("%.2f%%", s*100)
	if !colorize {
		return v
	}
	style := poorStyle
	switch {
	case s >= 0.9:
		style = goodStyle
	case s >= 0.8:
		style = fairStyle
	}
	style.EnableColor()
	return style.Sprint(v)
}

func animeName(a tracemoe.AniList) string {
	if a.Info != nil {
		if t := a.Info.Title.Preferred(); t != "" {
			return t
		}
	}
	if a.ID == 0 {
		return "-"
	}
	return "anilist:" + strconv.FormatInt(a.ID, 10)
}

// formatTimestamp formats seconds as h:mm:ss or m:ss.
func formatTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
