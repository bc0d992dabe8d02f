// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// normalizeTitle returns a lowercased, punctuation-stripped version of the
// title with collapsed whitespace.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// titleSimilarity computes the Jaccard similarity between the token sets
// of two normalized titles. Identical titles score 1.0, disjoint ones 0.0.
func titleSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	setA := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		setA[w] = true
	}
	setB := make(map[string]bool)
	for _, w := range strings.Fields(b) {
		setB[w] = true
	}

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// scoreRelevance assigns each record a relevance score in [0, 1] computed
// as the TF-IDF cosine similarity between the query and the record's
// title plus abstract. When the vectorization yields nothing usable
// (e.g. a query of pure stopwords) it falls back to keyword overlap.
func scoreRelevance(records []types.PaperRecord, query string) {
	if len(records) == 0 {
		return
	}

	docs := make([][]string, len(records)+1)
	for i, r := range records {
		docs[i] = contentTokens(r.Title + " " + r.Abstract)
	}
	queryTokens := contentTokens(query)
	docs[len(records)] = queryTokens

	if len(queryTokens) == 0 {
		keywordFallback(records, query)
		return
	}

	// Document frequency over the corpus, query included.
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, w := range doc {
			if !seen[w] {
				seen[w] = true
				df[w]++
			}
		}
	}

	n := float64(len(docs))
	idf := func(w string) float64 {
		return math.Log((n+1)/float64(df[w]+1)) + 1
	}

	// Float addition is not associative, so every summation below runs
	// over a sorted vocabulary. Map iteration order would make scores
	// differ in the last ulp between runs and reorder equal records.
	vectors := make([]map[string]float64, len(docs))
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, w := range doc {
			counts[w]++
		}
		words := make([]string, 0, len(counts))
		for w := range counts {
			words = append(words, w)
		}
		sort.Strings(words)

		vec := make(map[string]float64, len(counts))
		var norm float64
		for _, w := range words {
			// Sublinear term frequency.
			weight := (1 + math.Log(float64(counts[w]))) * idf(w)
			vec[w] = weight
			norm += weight * weight
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for _, w := range words {
				vec[w] /= norm
			}
		}
		vectors[i] = vec
	}

	queryVec := vectors[len(records)]
	queryWords := make([]string, 0, len(queryVec))
	for w := range queryVec {
		queryWords = append(queryWords, w)
	}
	sort.Strings(queryWords)

	anyScored := false
	for i := range records {
		var dot float64
		for _, w := range queryWords {
			if dw, ok := vectors[i][w]; ok {
				dot += queryVec[w] * dw
			}
		}
		records[i].RelevanceScore = dot
		if dot > 0 {
			anyScored = true
		}
	}

	if !anyScored {
		keywordFallback(records, query)
	}
}

// keywordFallback scores records by the fraction of raw query words
// found in the record text.
func keywordFallback(records []types.PaperRecord, query string) {
	words := tokenize(query)
	if len(words) == 0 {
		return
	}
	for i, r := range records {
		text := strings.ToLower(r.Title + " " + r.Abstract)
		matches := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				matches++
			}
		}
		records[i].RelevanceScore = float64(matches) / float64(len(words))
	}
}
