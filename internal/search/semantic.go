// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,venue,year,publicationDate,openAccessPdf,url"

// SemanticScholarClient queries the Semantic Scholar graph API. An API
// key raises the rate limit but is not required.
type SemanticScholarClient struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the client identifier.
func (c *SemanticScholarClient) Name() string { return "semantic_scholar" }

// Search queries the Semantic Scholar API and returns normalized records.
func (c *SemanticScholarClient) Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var records []types.PaperRecord
	for _, paper := range sr.Data {
		r := types.PaperRecord{
			Title:    paper.Title,
			Abstract: paper.Abstract,
			Venue:    paper.Venue,
			Source:   "semantic_scholar",
			URL:      paper.URL,
		}

		for _, a := range paper.Authors {
			r.Authors = append(r.Authors, a.Name)
		}

		if paper.PublicationDate != "" {
			if t, parseErr := time.Parse("2006-01-02", paper.PublicationDate); parseErr == nil {
				r.Date = t
			}
		} else if paper.Year > 0 {
			r.Date = time.Date(paper.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		}

		// Prefer an arXiv ID as the canonical identifier, then DOI.
		switch {
		case paper.ExternalIDs.ArXiv != "":
			r.Identifier = paper.ExternalIDs.ArXiv
			if r.PDFURL == "" {
				r.PDFURL = "https://arxiv.org/pdf/" + paper.ExternalIDs.ArXiv
			}
		case paper.ExternalIDs.DOI != "":
			r.Identifier = paper.ExternalIDs.DOI
		default:
			r.Identifier = paper.PaperID
		}
		if paper.OpenAccessPDF.URL != "" {
			r.PDFURL = paper.OpenAccessPDF.URL
		}

		records = append(records, r)
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	Abstract        string              `json:"abstract"`
	Venue           string              `json:"venue"`
	Year            int                 `json:"year"`
	PublicationDate string              `json:"publicationDate"`
	URL             string              `json:"url"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
	OpenAccessPDF   semanticOpenAccess  `json:"openAccessPdf"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}

type semanticOpenAccess struct {
	URL string `json:"url"`
}
