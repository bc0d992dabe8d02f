// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm calls the OpenRouter chat-completions API to analyze
// aggregated paper results.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// openRouterAPIURL is the OpenRouter chat-completions endpoint.
// Package-level var for test substitution.
var openRouterAPIURL = "https://openrouter.ai/api/v1/chat/completions"

// Attribution headers OpenRouter uses to identify the calling app.
const (
	refererHeader = "https://research-assistant.local"
	titleHeader   = "Research Assistant"
)

const defaultMaxPapers = 3

// Client calls OpenRouter's chat-completions API.
type Client struct {
	Config types.LLMConfig
	HTTP   *http.Client
}

// NewClient builds an OpenRouter client from the configuration.
func NewClient(cfg types.LLMConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Config: cfg, HTTP: httpClient}
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat-completions API.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// chatResponse is the response body from the chat-completions API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message Message `json:"message"`
}

// Complete sends the messages to OpenRouter and returns the assistant's
// reply text.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.Config.APIKey == "" {
		return "", fmt.Errorf("OpenRouter API key not configured")
	}

	reqBody := chatRequest{
		Model:       c.Config.Model,
		Messages:    messages,
		Temperature: c.Config.Temperature,
		MaxTokens:   c.Config.MaxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Config.APIKey)
	req.Header.Set("HTTP-Referer", refererHeader)
	req.Header.Set("X-Title", titleHeader)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling OpenRouter API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding OpenRouter response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("OpenRouter API returned no choices")
	}
	return cResp.Choices[0].Message.Content, nil
}

// AnalyzePapers renders the analysis prompt for the query and papers
// and returns the model's analysis. Compare switches to the comparison
// prompt variant.
func (c *Client) AnalyzePapers(ctx context.Context, query string, papers []types.PaperRecord, compare bool) (string, error) {
	if len(papers) == 0 {
		return "", fmt.Errorf("no papers to analyze")
	}

	maxPapers := c.Config.MaxPapers
	if maxPapers <= 0 {
		maxPapers = defaultMaxPapers
	}
	if len(papers) > maxPapers {
		papers = papers[:maxPapers]
	}

	prompt, err := renderAnalysisPrompt(query, papers, compare)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	return c.Complete(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
}
