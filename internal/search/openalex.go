// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// openAlexAPIBase is the OpenAlex works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlexClient queries the OpenAlex works API. No key required; an
// optional Mailto email joins OpenAlex's polite pool.
type OpenAlexClient struct {
	Client    *http.Client
	UserAgent string
	Mailto    string
}

// Name returns the client identifier.
func (c *OpenAlexClient) Name() string { return "openalex" }

// Search queries the OpenAlex API and returns normalized records.
func (c *OpenAlexClient) Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"search":   {query},
		"per-page": {fmt.Sprintf("%d", limit)},
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oa openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oa); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var records []types.PaperRecord
	for _, work := range oa.Results {
		r := types.PaperRecord{
			Identifier: openAlexIdentifier(work),
			Title:      work.DisplayName,
			Abstract:   reconstructAbstract(work.AbstractInvertedIndex),
			Source:     "openalex",
			URL:        work.ID,
		}

		for _, a := range work.Authorships {
			if a.Author.DisplayName != "" {
				r.Authors = append(r.Authors, a.Author.DisplayName)
			}
		}

		if work.PrimaryLocation != nil {
			if work.PrimaryLocation.Source != nil {
				r.Venue = work.PrimaryLocation.Source.DisplayName
			}
			if work.PrimaryLocation.LandingURL != "" {
				r.URL = work.PrimaryLocation.LandingURL
			}
		}
		if work.BestOALocation != nil {
			r.PDFURL = work.BestOALocation.PDFURL
		}
		if work.PublicationDate != "" {
			if t, parseErr := time.Parse("2006-01-02", work.PublicationDate); parseErr == nil {
				r.Date = t
			}
		}

		if r.Title == "" {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// openAlexIdentifier prefers the bare DOI, falling back to the OpenAlex
// work ID (the trailing path segment of the ID URL).
func openAlexIdentifier(work openAlexWork) string {
	if work.DOI != "" {
		return strings.TrimPrefix(work.DOI, "https://doi.org/")
	}
	if idx := strings.LastIndex(work.ID, "/"); idx >= 0 {
		return work.ID[idx+1:]
	}
	return work.ID
}

// reconstructAbstract rebuilds the abstract text from OpenAlex's inverted
// index, which maps each word to the positions it occupies.
func reconstructAbstract(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}
	type placed struct {
		pos  int
		word string
	}
	var words []placed
	for word, positions := range index {
		for _, pos := range positions {
			words = append(words, placed{pos: pos, word: word})
		}
	}
	sort.Slice(words, func(i, j int) bool { return words[i].pos < words[j].pos })

	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.word)
	}
	return strings.Join(parts, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string            `json:"id"`
	DOI                   string            `json:"doi"`
	DisplayName           string            `json:"display_name"`
	PublicationDate       string            `json:"publication_date"`
	Authorships           []openAlexAuthor  `json:"authorships"`
	PrimaryLocation       *openAlexLocation `json:"primary_location"`
	BestOALocation        *openAlexLocation `json:"best_oa_location"`
	AbstractInvertedIndex map[string][]int  `json:"abstract_inverted_index"`
}

type openAlexAuthor struct {
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
}

type openAlexLocation struct {
	PDFURL     string          `json:"pdf_url"`
	LandingURL string          `json:"landing_page_url"`
	Source     *openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName string `json:"display_name"`
}
