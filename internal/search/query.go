// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"
	"unicode"
)

// stopwords are common English words removed during query cleaning and
// relevance scoring.
var stopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"against": true, "all": true, "also": true, "am": true, "an": true,
	"and": true, "any": true, "are": true, "as": true, "at": true,
	"be": true, "because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "by": true,
	"can": true, "could": true, "did": true, "do": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "few": true,
	"for": true, "from": true, "further": true, "had": true, "has": true,
	"have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "him": true, "his": true, "how": true, "i": true,
	"if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "just": true, "me": true, "more": true, "most": true,
	"my": true, "no": true, "nor": true, "not": true, "now": true,
	"of": true, "off": true, "on": true, "once": true, "only": true,
	"or": true, "other": true, "our": true, "out": true, "over": true,
	"own": true, "same": true, "she": true, "should": true, "so": true,
	"some": true, "such": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"too": true, "under": true, "until": true, "up": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "whom": true,
	"why": true, "will": true, "with": true, "would": true, "you": true,
	"your": true, "yours": true,
}

// academicKeywords are terms kept during cleaning even when they would
// otherwise be filtered, because they carry weight in scholarly queries.
var academicKeywords = map[string]bool{
	"research": true, "study": true, "analysis": true, "method": true,
	"approach": true, "technique": true, "algorithm": true, "model": true,
	"learning": true, "neural": true, "network": true, "deep": true,
	"machine": true, "artificial": true, "intelligence": true, "data": true,
	"science": true, "computer": true, "vision": true, "processing": true,
	"natural": true, "language": true, "quantum": true, "computing": true,
	"robotics": true, "optimization": true, "classification": true,
	"regression": true, "clustering": true, "supervised": true,
	"unsupervised": true, "reinforcement": true, "transformer": true,
	"attention": true, "convolution": true, "graph": true, "embedding": true,
	"feature": true, "detection": true, "recognition": true,
	"segmentation": true, "generation": true, "prediction": true,
	"evaluation": true, "performance": true, "accuracy": true,
	"precision": true, "recall": true, "framework": true,
	"architecture": true, "implementation": true, "application": true,
	"development": true, "latest": true, "recent": true, "new": true,
	"novel": true, "advanced": true, "compared": true, "comparison": true,
	"survey": true, "review": true, "comprehensive": true,
}

// CleanQuery strips stopwords and punctuation from a raw user query while
// preserving academic vocabulary. If fewer than two words survive, the
// original query is returned unchanged.
func CleanQuery(query string) string {
	words := tokenize(query)
	filtered := words[:0]
	for _, w := range words {
		if len(w) > 2 && (!stopwords[w] || academicKeywords[w]) {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) < 2 {
		return query
	}
	return strings.Join(filtered, " ")
}

// tokenize lowercases s and splits it into words, treating any
// non-alphanumeric rune as a separator.
func tokenize(s string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// contentTokens returns the tokens of s that survive stopword filtering.
// Used for scoring, where short tokens are noise.
func contentTokens(s string) []string {
	words := tokenize(s)
	out := words[:0]
	for _, w := range words {
		if len(w) > 2 && (!stopwords[w] || academicKeywords[w]) {
			out = append(out, w)
		}
	}
	return out
}
