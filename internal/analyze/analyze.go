// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze classifies user research queries by intent and
// complexity and detects conversational follow-ups.
package analyze

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Keyword groups for intent classification. A query matching none of
// them defaults to search intent.
var (
	analyzeKeywords = []string{
		"analyze", "explain", "understand", "insights", "examine",
		"evaluate", "assess", "interpret", "breakdown", "dissect",
		"clarify", "describe", "elaborate", "detail",
	}

	compareKeywords = []string{
		"compare", "difference", "versus", "vs", "contrast",
		"distinguish", "differentiate", "between", "relative",
		"similarities", "differences", "comparison", "relate",
		"correlation", "against",
	}
)

// followupIndicators are phrases and reference words suggesting the
// query continues an earlier exchange rather than starting a new one.
var followupIndicators = []string{
	"tell me more", "give me more", "explain further", "more details", "elaborate",
	"what about", "how about", "why", "how", "when", "where",
	"this", "that", "these", "those", "it", "they", "them",
	"above", "previous", "mentioned", "discussed", "earlier",
	"compare", "difference", "versus", "vs", "contrast",
	"similar", "different", "same", "like",
	"additionally", "furthermore", "besides", "in addition",
	"but", "however", "still", "yet", "then", "next",
}

// questionStarters mark short interrogative queries that usually refer
// back to prior context.
var questionStarters = []string{
	"what", "how", "why", "which", "when", "where",
	"is", "are", "can", "could", "would",
}

// Analyze classifies a query against the recent conversation. Prior
// queries (most recent last) drive follow-up detection; pass nil for a
// fresh conversation.
func Analyze(query string, priorQueries []string) types.QueryAnalysis {
	lower := strings.ToLower(query)
	words := strings.Fields(query)

	intent := types.IntentSearch
	if containsAny(lower, analyzeKeywords) {
		intent = types.IntentAnalyze
	} else if containsAny(lower, compareKeywords) {
		intent = types.IntentCompare
	}

	complexity := types.ComplexityMedium
	switch {
	case len(words) < 5:
		complexity = types.ComplexitySimple
	case len(words) > 15:
		complexity = types.ComplexityComplex
	}

	qa := types.QueryAnalysis{
		Raw:             query,
		Contextualized:  query,
		Intent:          intent,
		Complexity:      complexity,
		Keywords:        words,
		NeedsComparison: containsAny(lower, compareKeywords),
	}

	if IsFollowUp(query, priorQueries) {
		qa.Contextualized = Contextualize(query, priorQueries)
		// Follow-up replaces the default intent only; an explicit
		// analyze or compare request keeps its classification.
		if intent == types.IntentSearch {
			qa.Intent = types.IntentFollowUp
		}
	}

	return qa
}

// IsFollowUp reports whether query continues the conversation in
// priorQueries. An empty history is never a follow-up.
func IsFollowUp(query string, priorQueries []string) bool {
	if len(priorQueries) == 0 {
		return false
	}

	lower := strings.ToLower(strings.TrimSpace(query))
	wordCount := len(strings.Fields(query))

	for _, ind := range followupIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	if wordCount < 3 {
		return true
	}
	if wordCount < 5 {
		for _, starter := range questionStarters {
			if strings.HasPrefix(lower, starter) {
				return true
			}
		}
	}
	return false
}

// Contextualize prefixes a follow-up query with the last two prior
// queries so downstream search and analysis see the full topic. A
// non-follow-up query passes through unchanged.
func Contextualize(query string, priorQueries []string) string {
	if !IsFollowUp(query, priorQueries) {
		return query
	}

	recent := priorQueries
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}
	parts := make([]string, 0, len(recent))
	for _, q := range recent {
		if q = strings.TrimSpace(q); q != "" {
			parts = append(parts, strings.ToLower(q))
		}
	}
	if len(parts) == 0 {
		return query
	}
	return fmt.Sprintf("Context: %s\nCurrent question: %s", strings.Join(parts, " "), query)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
