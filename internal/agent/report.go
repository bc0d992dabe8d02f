// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const topPapersInReport = 3

// renderReport builds the final Markdown response. The report is
// always produced: a failed LLM call degrades to a papers-only report
// with the failure noted.
func renderReport(query string, papers []types.PaperRecord, analysis string, analysisErr error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Research Report: %s\n", query)

	b.WriteString("\n---\n## Key Insights\n---\n\n")
	switch {
	case analysisErr != nil:
		fmt.Fprintf(&b, "Synthesis failed: %v\n", analysisErr)
	case analysis != "":
		b.WriteString(analysis)
		b.WriteString("\n")
	default:
		b.WriteString("No analysis available.\n")
	}

	if len(papers) > 0 {
		top := papers
		if len(top) > topPapersInReport {
			top = top[:topPapersInReport]
		}
		fmt.Fprintf(&b, "\n---\n## Top %d Papers\n---\n\n", len(top))
		for i, p := range top {
			fmt.Fprintf(&b, "**%d. %s**\n", i+1, p.Title)
			if len(p.Authors) > 0 {
				authors := p.Authors
				if len(authors) > 3 {
					authors = authors[:3]
				}
				fmt.Fprintf(&b, "Authors: %s\n", strings.Join(authors, ", "))
			}
			if p.URL != "" {
				fmt.Fprintf(&b, "[Paper Link](%s)\n", p.URL)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
