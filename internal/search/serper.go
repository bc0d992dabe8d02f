// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// serperAPIBase is the Serper.dev search endpoint. Declared as a var so
// tests can substitute an httptest server.
var serperAPIBase = "https://google.serper.dev/search"

// serperSiteFilter narrows Google results to scholarly hosts.
const serperSiteFilter = "site:arxiv.org OR site:scholar.google.com OR site:researchgate.net OR site:ieee.org OR site:acm.org OR filetype:pdf"

// SerperClient queries Google Scholar results through the Serper.dev
// proxy. It is an optional source: the aggregator only wires it when an
// API key is configured.
type SerperClient struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the client identifier.
func (c *SerperClient) Name() string { return "serper" }

// Search posts an academic-scoped query to Serper and returns normalized
// records. Serper snippets stand in for abstracts; they are short but
// enough for relevance scoring.
func (c *SerperClient) Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("serper API key not configured")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Serper query")
	}
	if limit <= 0 {
		limit = 10
	}

	body, err := json.Marshal(serperRequest{
		Q:   query + " " + serperSiteFilter,
		Num: limit,
		GL:  "us",
		HL:  "en",
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("X-API-KEY", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Serper API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper API returned HTTP %d", resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Serper response: %w", err)
	}

	var records []types.PaperRecord
	for _, item := range sr.Organic {
		if item.Title == "" {
			continue
		}
		r := types.PaperRecord{
			Identifier: item.Link,
			Title:      item.Title,
			Abstract:   item.Snippet,
			Source:     "serper",
			URL:        item.Link,
		}
		// Direct PDF hits can feed the visual extractor as-is.
		if strings.HasSuffix(strings.ToLower(item.Link), ".pdf") {
			r.PDFURL = item.Link
		}
		records = append(records, r)
	}
	for _, item := range sr.Scholar {
		if item.Title == "" {
			continue
		}
		records = append(records, types.PaperRecord{
			Identifier: item.Link,
			Title:      item.Title,
			Abstract:   item.Snippet,
			Source:     "serper_scholar",
			URL:        item.Link,
		})
	}
	return records, nil
}

// Serper API JSON structures.
type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
}

type serperResponse struct {
	Organic []serperItem `json:"organic"`
	Scholar []serperItem `json:"scholar"`
}

type serperItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
