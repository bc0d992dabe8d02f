// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries academic APIs and returns unified, deduplicated,
// relevance-ranked results.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Client searches a single academic API. Each source (arXiv, Semantic
// Scholar, CrossRef, OpenAlex, Serper) implements this interface.
type Client interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error)
}

// Output holds the aggregated results and per-run statistics.
type Output struct {
	// Records are the deduplicated, ranked results, at most TotalLimit.
	Records []types.PaperRecord

	// TotalFound is the number of unique papers before truncation.
	TotalFound int

	// DupsRemoved counts records merged away during deduplication.
	DupsRemoved int

	// ClientErrors lists per-source failures ("name: error"). A failed
	// source contributes no records but never aborts the run.
	ClientErrors []string
}

// Aggregate fans the query out to all clients, merges their results,
// deduplicates near-identical entries, scores relevance against the
// query, and returns the top cfg.TotalLimit records.
//
// Clients run concurrently but their results are collected in client
// order, so score ties break deterministically by configuration order.
// A client failure is logged and treated as an empty result set.
func Aggregate(ctx context.Context, query string, clients []Client, cfg types.SearchConfig, logger *slog.Logger) (Output, error) {
	if strings.TrimSpace(query) == "" {
		return Output{}, fmt.Errorf("query is empty")
	}
	if len(clients) == 0 {
		return Output{}, fmt.Errorf("no search clients configured")
	}
	if logger == nil {
		logger = slog.Default()
	}

	limit := cfg.PerSourceLimit
	if limit <= 0 {
		limit = 10
	}

	cleaned := CleanQuery(query)

	perClient := make([][]types.PaperRecord, len(clients))
	errs := make([]error, len(clients))

	var wg sync.WaitGroup
	for i, c := range clients {
		if i > 0 && cfg.InterClientDelay > 0 {
			time.Sleep(cfg.InterClientDelay)
		}
		wg.Add(1)
		go func(i int, c Client) {
			defer wg.Done()
			records, err := c.Search(ctx, cleaned, limit)
			perClient[i] = records
			errs[i] = err
		}(i, c)
	}
	wg.Wait()

	var all []types.PaperRecord
	var clientErrors []string
	for i, c := range clients {
		if errs[i] != nil {
			clientErrors = append(clientErrors, fmt.Sprintf("%s: %v", c.Name(), errs[i]))
			logger.Warn("source client failed", "client", c.Name(), "error", errs[i])
			continue
		}
		all = append(all, perClient[i]...)
	}

	threshold := cfg.DedupThreshold
	if threshold <= 0 {
		threshold = 0.80
	}
	deduped, removed := deduplicate(all, threshold)

	// Relevance is scored against the user's original wording.
	scoreRelevance(deduped, query)

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].RelevanceScore > deduped[j].RelevanceScore
	})

	total := len(deduped)
	if cfg.TotalLimit > 0 && len(deduped) > cfg.TotalLimit {
		deduped = deduped[:cfg.TotalLimit]
	}

	return Output{
		Records:      deduped,
		TotalFound:   total,
		DupsRemoved:  removed,
		ClientErrors: clientErrors,
	}, nil
}

// deduplicate merges records that share an identifier or whose normalized
// titles are more similar than threshold. The first occurrence (source
// order) is kept; duplicates are merged into it.
func deduplicate(records []types.PaperRecord, threshold float64) ([]types.PaperRecord, int) {
	byID := make(map[string]int)
	var kept []types.PaperRecord
	var keptTitles []string
	removed := 0

	for _, r := range records {
		if r.Title == "" && r.Identifier == "" {
			continue
		}

		if r.Identifier != "" {
			if idx, ok := byID[r.Identifier]; ok {
				mergeInto(&kept[idx], r)
				removed++
				continue
			}
		}

		norm := normalizeTitle(r.Title)
		dup := -1
		if norm != "" {
			for i, kt := range keptTitles {
				if titleSimilarity(norm, kt) >= threshold {
					dup = i
					break
				}
			}
		}
		if dup >= 0 {
			mergeInto(&kept[dup], r)
			removed++
			if r.Identifier != "" {
				byID[r.Identifier] = dup
			}
			continue
		}

		idx := len(kept)
		kept = append(kept, r)
		keptTitles = append(keptTitles, norm)
		if r.Identifier != "" {
			byID[r.Identifier] = idx
		}
	}
	return kept, removed
}

// mergeInto fills empty fields of dst from src and keeps the best
// metadata from either side.
func mergeInto(dst *types.PaperRecord, src types.PaperRecord) {
	if dst.Title == "" && src.Title != "" {
		dst.Title = src.Title
	}
	if len(dst.Authors) == 0 && len(src.Authors) > 0 {
		dst.Authors = src.Authors
	}
	if len(src.Abstract) > len(dst.Abstract) {
		dst.Abstract = src.Abstract
	}
	if dst.Venue == "" && src.Venue != "" {
		dst.Venue = src.Venue
	}
	if dst.Date.IsZero() && !src.Date.IsZero() {
		dst.Date = src.Date
	}
	if dst.URL == "" && src.URL != "" {
		dst.URL = src.URL
	}
	if dst.PDFURL == "" && src.PDFURL != "" {
		dst.PDFURL = src.PDFURL
	}
	if src.RelevanceScore > dst.RelevanceScore {
		dst.RelevanceScore = src.RelevanceScore
	}
	if dst.Source != src.Source && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// NewClients builds the source client list from the configuration.
// Order matters: it is the tie-break order for equal relevance scores.
// Optional sources needing an API key are skipped when unconfigured.
func NewClients(cfg types.SearchConfig, client *http.Client) []Client {
	var clients []Client
	if cfg.EnableArxiv {
		clients = append(clients, &ArxivClient{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnableSemanticScholar {
		clients = append(clients, &SemanticScholarClient{
			Client:    client,
			UserAgent: cfg.UserAgent,
			APIKey:    cfg.SemanticScholarAPIKey,
		})
	}
	if cfg.EnableCrossRef {
		clients = append(clients, &CrossRefClient{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnableOpenAlex {
		clients = append(clients, &OpenAlexClient{
			Client:    client,
			UserAgent: cfg.UserAgent,
			Mailto:    cfg.OpenAlexMailto,
		})
	}
	if cfg.SerperAPIKey != "" {
		clients = append(clients, &SerperClient{
			Client:    client,
			UserAgent: cfg.UserAgent,
			APIKey:    cfg.SerperAPIKey,
		})
	}
	return clients
}
