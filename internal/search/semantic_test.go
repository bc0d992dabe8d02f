// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const semanticSample = `{
  "total": 2,
  "offset": 0,
  "data": [
    {
      "paperId": "649def34f8be52c8b66281af98ae884c09aef38b",
      "title": "Attention Is All You Need",
      "abstract": "The dominant sequence transduction models.",
      "venue": "NeurIPS",
      "year": 2017,
      "publicationDate": "2017-06-12",
      "url": "https://www.semanticscholar.org/paper/649def",
      "authors": [{"authorId": "1", "name": "Ashish Vaswani"}],
      "externalIds": {"ArXiv": "1706.03762", "DOI": "10.5555/3295222.3295349"}
    },
    {
      "paperId": "abcd1234",
      "title": "DOI Only Paper",
      "abstract": "",
      "venue": "",
      "year": 2020,
      "authors": [],
      "externalIds": {"DOI": "10.1000/example"},
      "openAccessPdf": {"url": "https://example.org/oa.pdf"}
    }
  ]
}`

func TestSemanticScholarSearch(t *testing.T) {
	var gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(semanticSample))
	}))
	defer srv.Close()

	old := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = old }()

	c := &SemanticScholarClient{Client: srv.Client(), UserAgent: "test/0.1", APIKey: "s2key"}
	records, err := c.Search(context.Background(), "attention", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotKey != "s2key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotQuery != "attention" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// ArXiv ID preferred over DOI, and it supplies the PDF URL.
	r := records[0]
	if r.Identifier != "1706.03762" {
		t.Errorf("Identifier = %q, want arXiv ID", r.Identifier)
	}
	if r.PDFURL != "https://arxiv.org/pdf/1706.03762" {
		t.Errorf("PDFURL = %q", r.PDFURL)
	}
	if r.Venue != "NeurIPS" || r.Date.Year() != 2017 || r.Date.Month() != 6 {
		t.Errorf("metadata = venue %q date %v", r.Venue, r.Date)
	}

	// DOI fallback, year-only date, open-access PDF.
	r = records[1]
	if r.Identifier != "10.1000/example" {
		t.Errorf("Identifier = %q, want DOI", r.Identifier)
	}
	if r.PDFURL != "https://example.org/oa.pdf" {
		t.Errorf("PDFURL = %q", r.PDFURL)
	}
	if r.Date.Year() != 2020 {
		t.Errorf("Date = %v, want year 2020", r.Date)
	}
}

func TestSemanticScholarSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 0, "offset": 0, "data": []}`))
	}))
	defer srv.Close()

	old := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = old }()

	c := &SemanticScholarClient{Client: srv.Client(), UserAgent: "test/0.1"}
	records, err := c.Search(context.Background(), "nonexistent topic", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
