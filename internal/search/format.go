// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Year", "Score", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range out.Records {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		authors := formatAuthors(r.Authors)
		year := ""
		if !r.Date.IsZero() {
			year = fmt.Sprintf("%d", r.Date.Year())
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-6.2f  %s\n",
			i+1, title, authors, year, r.RelevanceScore, r.Source)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Records))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Records)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
