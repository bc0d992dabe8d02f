// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestFormatCSL(t *testing.T) {
	out := Output{
		Records: []types.PaperRecord{
			{
				Identifier: "10.1038/nature14539",
				Title:      "Deep learning",
				Authors:    []string{"Yann LeCun", "Yoshua Bengio", "Hinton"},
				Abstract:   "Deep learning allows computational models.",
				Venue:      "Nature",
				Date:       time.Date(2015, 5, 28, 0, 0, 0, 0, time.UTC),
				URL:        "https://doi.org/10.1038/nature14539",
			},
			{
				Identifier: "1706.03762",
				Title:      "Attention Is All You Need",
			},
		},
	}

	var buf bytes.Buffer
	if err := FormatCSL(out, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("unmarshaling output: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	item := items[0]
	if item.ID != "10.1038/nature14539" || item.Type != "article" {
		t.Errorf("item = id %q type %q", item.ID, item.Type)
	}
	if item.DOI != "10.1038/nature14539" {
		t.Errorf("DOI = %q, want set for 10.x identifier", item.DOI)
	}
	if item.ContainerTitle != "Nature" {
		t.Errorf("ContainerTitle = %q", item.ContainerTitle)
	}
	if item.Issued == nil || len(item.Issued.DateParts) != 1 {
		t.Fatalf("Issued = %+v", item.Issued)
	}
	if p := item.Issued.DateParts[0]; p[0] != 2015 || p[1] != 5 || p[2] != 28 {
		t.Errorf("DateParts = %v", p)
	}
	if len(item.Author) != 3 {
		t.Fatalf("Author = %+v", item.Author)
	}
	if item.Author[0].Given != "Yann" || item.Author[0].Family != "LeCun" {
		t.Errorf("Author[0] = %+v", item.Author[0])
	}
	if item.Author[2].Literal != "Hinton" {
		t.Errorf("Author[2] = %+v, want literal single-token name", item.Author[2])
	}

	// arXiv identifiers are not DOIs.
	if items[1].DOI != "" {
		t.Errorf("items[1].DOI = %q, want empty", items[1].DOI)
	}
	if items[1].Issued != nil {
		t.Errorf("items[1].Issued = %+v, want nil for zero date", items[1].Issued)
	}
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Yann LeCun", CSLName{Given: "Yann", Family: "LeCun"}},
		{"Ashish B. Vaswani", CSLName{Given: "Ashish B.", Family: "Vaswani"}},
		{"Hinton", CSLName{Literal: "Hinton"}},
		{"  ", CSLName{}},
	}
	for _, tt := range tests {
		if got := parseAuthorName(tt.in); got != tt.want {
			t.Errorf("parseAuthorName(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFormatTable(t *testing.T) {
	out := Output{
		Records: []types.PaperRecord{
			{Title: "Deep learning", Authors: []string{"Yann LeCun", "Yoshua Bengio"},
				Date: time.Date(2015, 5, 28, 0, 0, 0, 0, time.UTC), RelevanceScore: 0.9, Source: "crossref"},
		},
		DupsRemoved: 3,
	}

	var buf bytes.Buffer
	FormatTable(out, &buf)
	s := buf.String()

	for _, want := range []string{"Deep learning", "Yann LeCun et al.", "2015", "crossref", "3 duplicates removed"} {
		if !strings.Contains(s, want) {
			t.Errorf("table output missing %q:\n%s", want, s)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Output{}, &buf)
	if !strings.Contains(buf.String(), "No results") {
		t.Errorf("empty table output = %q", buf.String())
	}
}
