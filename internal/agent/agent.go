// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent orchestrates the research pipeline: query analysis,
// multi-source search, visual extraction, LLM analysis, and synthesis,
// streaming progress events as it goes.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdiddy/research-assistant/internal/analyze"
	"github.com/pdiddy/research-assistant/internal/history"
	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/internal/visual"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Searcher runs the multi-source paper aggregation.
type Searcher interface {
	Search(ctx context.Context, query string) (search.Output, error)
}

// Extractor pulls visual text from one paper's PDF.
type Extractor interface {
	Extract(ctx context.Context, record types.PaperRecord) []types.VisualData
}

// PaperAnalyzer produces the LLM analysis of the ranked papers.
type PaperAnalyzer interface {
	AnalyzePapers(ctx context.Context, query string, papers []types.PaperRecord, compare bool) (string, error)
}

// HistoryStore records completed turns and recalls recent queries.
type HistoryStore interface {
	Append(ctx context.Context, conv history.Conversation) (history.Conversation, error)
	RecentQueries(ctx context.Context) ([]string, error)
}

// Agent runs research queries through the pipeline. Each Run uses its
// own goroutine and carries no state between queries; the history store
// is the only shared component.
type Agent struct {
	Searcher  Searcher
	Extractor Extractor
	LLM       PaperAnalyzer
	History   HistoryStore

	VisualCfg types.VisualConfig
	Logger    *slog.Logger
}

// aggregateSearcher adapts search.Aggregate to the Searcher interface.
type aggregateSearcher struct {
	clients []search.Client
	cfg     types.SearchConfig
	logger  *slog.Logger
}

func (s *aggregateSearcher) Search(ctx context.Context, query string) (search.Output, error) {
	return search.Aggregate(ctx, query, s.clients, s.cfg, s.logger)
}

// New builds an agent from the configuration, wiring the real search
// clients, PDF extractor, OpenRouter client, and history store.
func New(cfg types.Config, store *history.Store, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}

	searchHTTP := httputil.NewClient(cfg.Search.Timeout)
	llmHTTP := httputil.NewClient(cfg.LLM.Timeout)

	a := &Agent{
		Searcher: &aggregateSearcher{
			clients: search.NewClients(cfg.Search, searchHTTP),
			cfg:     cfg.Search,
			logger:  logger,
		},
		Extractor: visual.NewExtractor(searchHTTP, cfg.Visual.UserAgent, cfg.Visual, logger),
		LLM:       llm.NewClient(cfg.LLM, llmHTTP),
		VisualCfg: cfg.Visual,
		Logger:    logger,
	}
	if store != nil {
		a.History = store
	}
	return a
}

// step identifiers for the planned pipeline.
type stepKind int

const (
	stepAnalyze stepKind = iota
	stepSearch
	stepVisuals
	stepLLM
	stepSynthesize
)

type step struct {
	kind stepKind
	name string
}

// planSteps builds the step list for the analyzed query. Visual
// extraction is dropped for simple plain-search queries where the
// abstracts alone answer the question.
func planSteps(qa types.QueryAnalysis) []step {
	steps := []step{
		{stepAnalyze, "Query Analysis"},
		{stepSearch, "Search Papers"},
	}
	if !(qa.Intent == types.IntentSearch && qa.Complexity == types.ComplexitySimple) {
		steps = append(steps, step{stepVisuals, "Extract Visual Data"})
	}
	steps = append(steps,
		step{stepLLM, "Analyze Papers"},
		step{stepSynthesize, "Synthesize Response"},
	)
	return steps
}

// Run processes a query and streams progress events. The channel is
// closed after the final event, which carries the synthesized report.
func (a *Agent) Run(ctx context.Context, query string) <-chan types.ProgressEvent {
	events := make(chan types.ProgressEvent, 16)
	go func() {
		defer close(events)
		a.run(ctx, query, events)
	}()
	return events
}

func (a *Agent) run(ctx context.Context, query string, events chan<- types.ProgressEvent) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var priorQueries []string
	if a.History != nil {
		prior, err := a.History.RecentQueries(ctx)
		if err != nil {
			logger.Warn("loading conversation history failed", "error", err)
		} else {
			priorQueries = prior
		}
	}

	qa := analyze.Analyze(query, priorQueries)
	steps := planSteps(qa)

	var (
		papers      []types.PaperRecord
		analysis    string
		analysisErr error
	)

	for i, st := range steps {
		num := i + 1
		events <- types.ProgressEvent{Step: num, Name: st.name, Status: types.StepRunning}
		start := time.Now()

		detail := ""
		status := types.StepCompleted

		switch st.kind {
		case stepAnalyze:
			detail = fmt.Sprintf("Intent: %s, Complexity: %s", qa.Intent, qa.Complexity)

		case stepSearch:
			out, err := a.Searcher.Search(ctx, qa.Contextualized)
			if err != nil {
				status = types.StepFailed
				detail = err.Error()
				logger.Warn("search step failed", "error", err)
				break
			}
			papers = out.Records
			detail = fmt.Sprintf("Found %d papers, selected top %d", out.TotalFound, len(papers))

		case stepVisuals:
			count := a.extractVisuals(ctx, papers)
			detail = fmt.Sprintf("Extracted %d visual elements", count)

		case stepLLM:
			if len(papers) == 0 {
				detail = "No papers found to analyze"
				break
			}
			compare := qa.NeedsComparison || qa.Intent == types.IntentCompare
			analysis, analysisErr = a.LLM.AnalyzePapers(ctx, qa.Contextualized, papers, compare)
			if analysisErr != nil {
				status = types.StepFailed
				detail = analysisErr.Error()
				logger.Warn("paper analysis failed", "error", analysisErr)
				break
			}
			detail = "Paper analysis completed"

		case stepSynthesize:
			// The final frame doubles as this step's completion so
			// consumers never see the synthesize step finish twice.
			report := renderReport(query, papers, analysis, analysisErr)

			if a.History != nil {
				_, err := a.History.Append(ctx, history.Conversation{
					Query:   query,
					Intent:  string(qa.Intent),
					Summary: summarize(analysis),
					Report:  report,
				})
				if err != nil {
					logger.Warn("saving conversation failed", "error", err)
				}
			}

			events <- types.ProgressEvent{
				Step:      num,
				Name:      st.name,
				Status:    types.StepCompleted,
				Detail:    "Synthesis completed",
				ElapsedMS: time.Since(start).Milliseconds(),
				Final:     true,
				Report:    report,
				Papers:    papers,
			}
			return
		}

		events <- types.ProgressEvent{
			Step:      num,
			Name:      st.name,
			Status:    status,
			Detail:    detail,
			ElapsedMS: time.Since(start).Milliseconds(),
		}
	}
}

// extractVisuals attaches extracted visuals to the top-ranked papers
// and returns the total count.
func (a *Agent) extractVisuals(ctx context.Context, papers []types.PaperRecord) int {
	if a.Extractor == nil || len(papers) == 0 {
		return 0
	}

	maxPapers := a.VisualCfg.MaxExtractions
	if maxPapers <= 0 {
		maxPapers = 3
	}
	if len(papers) < maxPapers {
		maxPapers = len(papers)
	}

	count := 0
	for i := 0; i < maxPapers; i++ {
		visuals := a.Extractor.Extract(ctx, papers[i])
		papers[i].Visuals = visuals
		count += len(visuals)
	}
	return count
}

// summarize trims the analysis text for history storage.
func summarize(analysis string) string {
	const maxSummary = 500
	if len(analysis) <= maxSummary {
		return analysis
	}
	return analysis[:maxSummary] + "..."
}
