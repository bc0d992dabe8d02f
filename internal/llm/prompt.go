// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// systemPrompt sets the assistant's role for every analysis call.
const systemPrompt = "You are a research assistant specialized in analyzing scientific papers. " +
	"Focus on extracting concrete findings, methodologies, and quantitative results. " +
	"Provide detailed technical insights."

// Summaries are truncated so a handful of papers fits the context
// window alongside the instructions.
const (
	maxAbstractChars = 3000
	maxVisualChars   = 1500
	maxPromptAuthors = 3
)

// analysisPromptTmpl asks the model for structured insights across the
// paper summaries.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`Analyze these research papers for the query: "{{.Query}}"

Papers with extracted visuals:
{{.Summaries}}

Provide the following:
1. Answer the question with clear, well-researched and structured technical information
2. Reference relevant research areas or methodologies that support your explanation
3. Offer actionable insights or next steps where appropriate

Along with the above, provide comprehensive analysis including:
1. Key findings and quantitative results
2. Methodological approaches used
3. Notable contributions and innovations
4. Research trends and patterns
5. Limitations and future work mentioned

Focus on specific results, numbers, and concrete findings from the papers.`))

// comparePromptTmpl is the variant used when the query asks for a
// comparison.
var comparePromptTmpl = template.Must(template.New("compare").Parse(`Compare the approaches in these research papers for the query: "{{.Query}}"

Papers with extracted visuals:
{{.Summaries}}

Provide the following:
1. A direct comparison of the methods, assumptions, and settings across the papers
2. Quantitative results side by side where the papers report comparable metrics
3. Strengths and weaknesses of each approach relative to the others
4. Which approach is preferable under which conditions, and why

Focus on specific results, numbers, and concrete findings from the papers.`))

type promptData struct {
	Query     string
	Summaries string
}

// renderAnalysisPrompt builds the user prompt from the query and paper
// summaries.
func renderAnalysisPrompt(query string, papers []types.PaperRecord, compare bool) (string, error) {
	summaries := make([]string, 0, len(papers))
	for i, p := range papers {
		summaries = append(summaries, summarizePaper(i+1, p))
	}

	tmpl := analysisPromptTmpl
	if compare {
		tmpl = comparePromptTmpl
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, promptData{
		Query:     query,
		Summaries: strings.Join(summaries, "\n"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// summarizePaper formats one paper, its metadata, and any extracted
// visual text for inclusion in the prompt.
func summarizePaper(index int, p types.PaperRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Paper %d: %s\n", index, p.Title)
	if p.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", p.URL)
	}
	if !p.Date.IsZero() {
		fmt.Fprintf(&b, "Published: %s\n", p.Date.Format("2006-01-02"))
	}
	if p.Venue != "" {
		fmt.Fprintf(&b, "Venue: %s\n", p.Venue)
	}
	if len(p.Authors) > 0 {
		authors := p.Authors
		if len(authors) > maxPromptAuthors {
			authors = authors[:maxPromptAuthors]
		}
		fmt.Fprintf(&b, "Authors: %s\n", strings.Join(authors, ", "))
	}
	if p.Abstract != "" {
		fmt.Fprintf(&b, "Abstract: %s\n", truncateText(p.Abstract, maxAbstractChars))
	}

	if len(p.Visuals) > 0 {
		b.WriteString("\nVisual Data Found:\n")
		for j, v := range p.Visuals {
			fmt.Fprintf(&b, "- %s %d: %s\n", capitalize(string(v.Kind)), j+1, v.Description)
			if v.Text != "" {
				fmt.Fprintf(&b, "  Content: %s\n", truncateText(v.Text, maxVisualChars))
			}
		}
	}
	return b.String()
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
