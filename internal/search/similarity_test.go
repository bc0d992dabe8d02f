// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"math"
	"testing"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Attention Is All You Need", "attention is all you need"},
		{"  Attention,   Is All: You Need! ", "attention is all you need"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "attention is all you need", "attention is all you need", 1.0},
		{"disjoint", "graph neural networks", "quantum error correction", 0.0},
		{"empty side", "", "attention is all you need", 0.0},
		{"partial overlap", "deep learning survey", "deep learning review", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titleSimilarity(tt.a, tt.b)
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Errorf("titleSimilarity(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScoreRelevanceOrdersByMatch(t *testing.T) {
	records := []types.PaperRecord{
		{Title: "Marine biology of coral reefs", Abstract: "corals and fish"},
		{Title: "Attention in transformer models", Abstract: "attention transformer models everywhere"},
		{Title: "Transformer models overview", Abstract: "a look at transformer models"},
	}

	scoreRelevance(records, "attention transformer models")

	if records[1].RelevanceScore <= records[2].RelevanceScore {
		t.Errorf("full match %.3f should outscore partial match %.3f",
			records[1].RelevanceScore, records[2].RelevanceScore)
	}
	if records[2].RelevanceScore <= records[0].RelevanceScore {
		t.Errorf("partial match %.3f should outscore non-match %.3f",
			records[2].RelevanceScore, records[0].RelevanceScore)
	}
	for i, r := range records {
		if r.RelevanceScore < 0 || r.RelevanceScore > 1.0000001 {
			t.Errorf("records[%d].RelevanceScore = %f, want within [0, 1]", i, r.RelevanceScore)
		}
	}
}

func TestScoreRelevanceStopwordQueryFallsBack(t *testing.T) {
	records := []types.PaperRecord{
		{Title: "What is this about", Abstract: ""},
		{Title: "Totally different words", Abstract: ""},
	}

	// Every query word is a stopword, so TF-IDF has nothing to vectorize
	// and keyword overlap takes over.
	scoreRelevance(records, "what is this")

	if records[0].RelevanceScore <= records[1].RelevanceScore {
		t.Errorf("fallback should favor the overlapping title: %f vs %f",
			records[0].RelevanceScore, records[1].RelevanceScore)
	}
}

func TestScoreRelevanceEmptyRecords(t *testing.T) {
	// Must not panic.
	scoreRelevance(nil, "attention")
	scoreRelevance([]types.PaperRecord{}, "attention")
}

func TestKeywordFallback(t *testing.T) {
	records := []types.PaperRecord{
		{Title: "Quantum computing advances", Abstract: "qubits and gates"},
		{Title: "Classical algorithms", Abstract: "sorting"},
	}

	keywordFallback(records, "quantum qubits")

	if records[0].RelevanceScore != 1.0 {
		t.Errorf("records[0].RelevanceScore = %f, want 1.0", records[0].RelevanceScore)
	}
	if records[1].RelevanceScore != 0.0 {
		t.Errorf("records[1].RelevanceScore = %f, want 0.0", records[1].RelevanceScore)
	}
}

func TestScoreRelevanceBitStableAcrossRuns(t *testing.T) {
	build := func() []types.PaperRecord {
		var records []types.PaperRecord
		for i := 0; i < 10; i++ {
			records = append(records, types.PaperRecord{
				Identifier: fmt.Sprintf("id-%d", i),
				Title:      fmt.Sprintf("quantum computing paperword%02d filler%02d extra%02d", i, i, i),
				Abstract:   fmt.Sprintf("we evaluate paperword%02d against quantum computing baselines", i),
			})
		}
		return records
	}

	first := build()
	scoreRelevance(first, "quantum computing")

	// Summation order is fixed, so re-scoring the same inputs must
	// reproduce every score to the bit.
	for run := 1; run < 20; run++ {
		records := build()
		scoreRelevance(records, "quantum computing")
		for i := range records {
			got := math.Float64bits(records[i].RelevanceScore)
			want := math.Float64bits(first[i].RelevanceScore)
			if got != want {
				t.Fatalf("run %d record %s: score bits %016x, want %016x",
					run, records[i].Identifier, got, want)
			}
		}
	}
}
