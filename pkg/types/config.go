// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the search aggregation stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// TotalLimit is the maximum number of aggregated results (default 20).
	TotalLimit int `json:"total_limit" yaml:"total_limit" mapstructure:"total_limit"`

	// PerSourceLimit is the maximum number of results requested from each
	// source client (default 10).
	PerSourceLimit int `json:"per_source_limit" yaml:"per_source_limit" mapstructure:"per_source_limit"`

	// DedupThreshold is the normalized-title similarity above which two
	// records are considered the same paper (default 0.80).
	DedupThreshold float64 `json:"dedup_threshold" yaml:"dedup_threshold" mapstructure:"dedup_threshold"`

	// EnableArxiv controls whether the arXiv client is used.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv" mapstructure:"enable_arxiv"`

	// EnableSemanticScholar controls whether the Semantic Scholar client is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar" mapstructure:"enable_semantic_scholar"`

	// EnableCrossRef controls whether the CrossRef client is used.
	EnableCrossRef bool `json:"enable_crossref" yaml:"enable_crossref" mapstructure:"enable_crossref"`

	// EnableOpenAlex controls whether the OpenAlex client is used
	// (default off; no key needed).
	EnableOpenAlex bool `json:"enable_openalex" yaml:"enable_openalex" mapstructure:"enable_openalex"`

	// OpenAlexMailto is the contact email sent to OpenAlex for polite-pool
	// rate limits. Optional.
	OpenAlexMailto string `json:"openalex_mailto,omitempty" yaml:"openalex_mailto,omitempty" mapstructure:"openalex_mailto"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// SerperAPIKey enables the Serper.dev Scholar proxy client when set.
	SerperAPIKey string `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty" mapstructure:"serper_api_key"`

	// InterClientDelay is the stagger between requests to different
	// sources (default 1s). Keeps the public APIs happy.
	InterClientDelay time.Duration `json:"inter_client_delay" yaml:"inter_client_delay" mapstructure:"inter_client_delay"`
}

// VisualConfig holds settings for the visual extraction stage.
type VisualConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxExtractions is the number of top-ranked papers to pull visuals
	// from (default 3).
	MaxExtractions int `json:"max_extractions" yaml:"max_extractions" mapstructure:"max_extractions"`

	// MaxVisualsPerPaper caps extracted items per paper (default 3).
	MaxVisualsPerPaper int `json:"max_visuals_per_paper" yaml:"max_visuals_per_paper" mapstructure:"max_visuals_per_paper"`

	// MaxPages limits how many leading pages are scanned (default 5).
	MaxPages int `json:"max_pages" yaml:"max_pages" mapstructure:"max_pages"`
}

// LLMConfig holds settings for the OpenRouter chat-completions calls.
type LLMConfig struct {
	// APIKey is the OpenRouter key. Required for analysis and synthesis.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Model is the model identifier (default "anthropic/claude-sonnet-4").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Temperature is the sampling temperature (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens is the completion token budget (default 5000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout is the request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxPapers is how many top-ranked papers are included in the
	// analysis prompt (default 3).
	MaxPapers int `json:"max_papers" yaml:"max_papers" mapstructure:"max_papers"`
}

// HistoryConfig holds settings for the conversation history store.
type HistoryConfig struct {
	// Path is the SQLite database file (default "data/history.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Window is how many recent turns the analyzer may recall (default 5).
	Window int `json:"window" yaml:"window" mapstructure:"window"`
}

// ServerConfig holds settings for the web UI server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups all stage configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Visual  VisualConfig  `json:"visual" yaml:"visual" mapstructure:"visual"`
	LLM     LLMConfig     `json:"llm" yaml:"llm" mapstructure:"llm"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
