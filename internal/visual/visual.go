// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package visual pulls table and caption text out of paper PDFs for use
// as analysis context.
package visual

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	defaultMaxPages   = 5
	defaultMaxVisuals = 3
	maxTablesPerPage  = 2

	// Table candidates shorter than this are noise (page numbers,
	// equation fragments).
	minTableChars = 50
)

var (
	numberPattern     = regexp.MustCompile(`\d+\.?\d*`)
	wideSpacePattern  = regexp.MustCompile(`\s{3,}`)
	pipeColumnPattern = regexp.MustCompile(`\|\s*\w+\s*\|`)
)

// captionKeywords mark lines that caption or reference a figure or
// table.
var captionKeywords = []string{"figure", "fig.", "table", "chart", "graph"}

// Extractor downloads paper PDFs and extracts visual-adjacent text.
// Extraction is best effort: every failure is logged and yields an
// empty visual list, never an error.
type Extractor struct {
	Client    *http.Client
	UserAgent string
	Config    types.VisualConfig
	Logger    *slog.Logger
}

// NewExtractor builds an extractor with the shared HTTP client.
func NewExtractor(client *http.Client, userAgent string, cfg types.VisualConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{Client: client, UserAgent: userAgent, Config: cfg, Logger: logger}
}

// Extract downloads the record's PDF and returns its table and caption
// text, walking at most the first few pages.
func (e *Extractor) Extract(ctx context.Context, record types.PaperRecord) []types.VisualData {
	pdfURL := resolvePDFURL(record)
	if pdfURL == "" {
		return nil
	}

	data, err := e.download(ctx, pdfURL)
	if err != nil {
		e.Logger.Warn("PDF download failed", "url", pdfURL, "error", err)
		return nil
	}

	visuals, err := e.extractFromPDF(data)
	if err != nil {
		e.Logger.Warn("PDF extraction failed", "url", pdfURL, "error", err)
		return nil
	}
	return visuals
}

// resolvePDFURL picks the best PDF location for a record. arXiv
// abstract pages rewrite to their PDF counterpart.
func resolvePDFURL(record types.PaperRecord) string {
	if record.PDFURL != "" {
		return record.PDFURL
	}
	if strings.Contains(record.URL, "arxiv.org") && strings.Contains(record.URL, "/abs/") {
		return strings.Replace(record.URL, "/abs/", "/pdf/", 1)
	}
	if strings.HasSuffix(strings.ToLower(record.URL), ".pdf") {
		return record.URL
	}
	return ""
}

func (e *Extractor) download(ctx context.Context, pdfURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", e.UserAgent)

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading PDF: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PDF download returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading PDF body: %w", err)
	}
	return data, nil
}

// extractFromPDF parses the PDF bytes and walks its leading pages for
// table candidates and caption lines.
func (e *Extractor) extractFromPDF(data []byte) ([]types.VisualData, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	maxPages := e.Config.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if reader.NumPage() < maxPages {
		maxPages = reader.NumPage()
	}
	maxVisuals := e.Config.MaxVisualsPerPaper
	if maxVisuals <= 0 {
		maxVisuals = defaultMaxVisuals
	}

	var visuals []types.VisualData
	for pageNum := 1; pageNum <= maxPages && len(visuals) < maxVisuals; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		for _, caption := range captionLines(text) {
			visuals = append(visuals, types.VisualData{
				Kind:        types.VisualCaption,
				Description: fmt.Sprintf("Caption from page %d", pageNum),
				Text:        caption,
				Page:        pageNum,
			})
		}

		tables := tableCandidates(text)
		if len(tables) > maxTablesPerPage {
			tables = tables[:maxTablesPerPage]
		}
		for _, table := range tables {
			visuals = append(visuals, types.VisualData{
				Kind:        types.VisualTable,
				Description: fmt.Sprintf("Table from page %d", pageNum),
				Text:        table,
				Page:        pageNum,
			})
		}
	}

	if len(visuals) > maxVisuals {
		visuals = visuals[:maxVisuals]
	}
	return visuals, nil
}

// tableCandidates finds runs of table-looking lines in page text. A
// line looks tabular when it has several numbers, tab separators, wide
// space runs, or pipe-delimited columns; a run must span more than two
// lines and carry enough text to matter.
func tableCandidates(text string) []string {
	var candidates []string
	var current []string

	flush := func() {
		if len(current) > 2 {
			block := strings.Join(current, "\n")
			if len(strings.TrimSpace(block)) > minTableChars {
				candidates = append(candidates, block)
			}
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if isTableLine(line) {
			current = append(current, line)
		} else {
			flush()
		}
	}
	flush()
	return candidates
}

func isTableLine(line string) bool {
	return len(numberPattern.FindAllString(line, -1)) > 2 ||
		strings.Count(line, "\t") > 1 ||
		len(wideSpacePattern.FindAllString(line, -1)) > 1 ||
		pipeColumnPattern.MatchString(line)
}

// captionLines returns the first two lines referencing a figure or
// table.
func captionLines(text string) []string {
	var captions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range captionKeywords {
			if strings.Contains(lower, kw) {
				captions = append(captions, line)
				break
			}
		}
		if len(captions) == 2 {
			break
		}
	}
	return captions
}
