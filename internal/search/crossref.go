// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// jatsTagPattern matches the JATS XML markup CrossRef embeds in abstracts.
var jatsTagPattern = regexp.MustCompile(`<[^>]+>`)

// CrossRefClient queries the CrossRef works API. No key required; the
// User-Agent identifies the caller per CrossRef's polite-pool etiquette.
type CrossRefClient struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the client identifier.
func (c *CrossRefClient) Name() string { return "crossref" }

// Search queries the CrossRef API and returns normalized records.
func (c *CrossRefClient) Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty CrossRef query")
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"query":  {query},
		"rows":   {fmt.Sprintf("%d", limit)},
		"select": {"title,author,abstract,published-print,published-online,container-title,URL,DOI"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}

	var records []types.PaperRecord
	for _, item := range cr.Message.Items {
		r := types.PaperRecord{
			Identifier: item.DOI,
			Title:      strings.Join(item.Title, " "),
			Abstract:   stripJATS(item.Abstract),
			Source:     "crossref",
			URL:        item.URL,
		}
		if len(item.ContainerTitle) > 0 {
			r.Venue = item.ContainerTitle[0]
		}

		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name != "" {
				r.Authors = append(r.Authors, name)
			}
		}

		if d := item.PublishedPrint.date(); !d.IsZero() {
			r.Date = d
		} else if d := item.PublishedOnline.date(); !d.IsZero() {
			r.Date = d
		}

		if r.Title == "" {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// stripJATS removes JATS markup from a CrossRef abstract and collapses
// whitespace.
func stripJATS(s string) string {
	if s == "" {
		return ""
	}
	s = jatsTagPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// CrossRef API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefItem `json:"items"`
}

type crossrefItem struct {
	DOI             string           `json:"DOI"`
	URL             string           `json:"URL"`
	Title           []string         `json:"title"`
	ContainerTitle  []string         `json:"container-title"`
	Abstract        string           `json:"abstract"`
	Author          []crossrefAuthor `json:"author"`
	PublishedPrint  crossrefDate     `json:"published-print"`
	PublishedOnline crossrefDate     `json:"published-online"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// date converts CrossRef date-parts into a time.Time. Missing month and
// day default to January 1st.
func (d crossrefDate) date() time.Time {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return time.Time{}
	}
	parts := d.DateParts[0]
	year := parts[0]
	month, day := 1, 1
	if len(parts) > 1 {
		month = parts[1]
	}
	if len(parts) > 2 {
		day = parts[2]
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
