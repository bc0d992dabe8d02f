// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant pipeline.
package types

import "time"

// PaperRecord is the normalized representation of one search result across
// sources. A source client constructs it; the aggregator and downstream
// stages only read it.
type PaperRecord struct {
	// Identifier is the canonical ID from the source (arXiv ID, DOI, or URL).
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract or result snippet.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Venue is the journal, conference, or repository name when known.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Date is the publication or preprint date.
	Date time.Time `json:"date" yaml:"date"`

	// Source identifies which client found this result
	// (e.g. "arxiv", "semantic_scholar", "crossref", "openalex").
	Source string `json:"source" yaml:"source"`

	// RelevanceScore is a value between 0.0 and 1.0 indicating relevance
	// to the query that produced this record.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// URL is the paper's landing page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// PDFURL is the direct PDF location when the source provides one.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// Visuals holds table and caption text pulled from the paper's PDF.
	// Populated by the visual extraction stage, empty otherwise.
	Visuals []VisualData `json:"visuals,omitempty" yaml:"visuals,omitempty"`
}

// VisualKind categorizes extracted visual content.
type VisualKind string

const (
	VisualTable   VisualKind = "table"
	VisualCaption VisualKind = "caption"
)

// VisualData is one piece of visual content pulled from a paper PDF.
type VisualData struct {
	// Kind is the content category: table or caption.
	Kind VisualKind `json:"kind" yaml:"kind"`

	// Description locates the content (e.g. "Table from page 3").
	Description string `json:"description" yaml:"description"`

	// Text is the extracted text content.
	Text string `json:"text" yaml:"text"`

	// Page is the 1-based page number the content came from.
	Page int `json:"page" yaml:"page"`
}
