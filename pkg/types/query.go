// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Intent is the inferred purpose of a user query.
type Intent string

const (
	IntentSearch   Intent = "search"
	IntentAnalyze  Intent = "analyze"
	IntentCompare  Intent = "compare"
	IntentFollowUp Intent = "followup"
)

// Complexity is the estimated difficulty of a user query.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// QueryAnalysis is the analyzer's reading of a raw user query. It gates
// which pipeline stages the agent runs.
type QueryAnalysis struct {
	// Raw is the user's text as entered.
	Raw string `json:"raw"`

	// Contextualized is the query after follow-up context has been
	// prepended. Equal to Raw when the query stands alone.
	Contextualized string `json:"contextualized"`

	// Intent is the primary intent: search, analyze, compare, or followup.
	Intent Intent `json:"intent"`

	// Complexity estimates query difficulty from length and structure.
	Complexity Complexity `json:"complexity"`

	// Keywords are the query tokens.
	Keywords []string `json:"keywords"`

	// NeedsComparison is set when the query asks to contrast things.
	NeedsComparison bool `json:"needs_comparison"`
}

// StepStatus is the lifecycle state of a pipeline step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// ProgressEvent is emitted by the agent as each pipeline step changes
// state. Events are transient: they are streamed to the UI and never
// persisted. The terminal event carries the synthesized report.
type ProgressEvent struct {
	// Step is the 1-based step number within the planned pipeline.
	Step int `json:"step"`

	// Name is the step's display name (e.g. "Search Papers").
	Name string `json:"name"`

	// Status is the step's current lifecycle state.
	Status StepStatus `json:"status"`

	// Detail is a one-line result or error summary for the step.
	Detail string `json:"detail,omitempty"`

	// ElapsedMS is the step execution time in milliseconds, set on
	// completion or failure.
	ElapsedMS int64 `json:"elapsed_ms,omitempty"`

	// Final marks the last event of a run.
	Final bool `json:"final,omitempty"`

	// Report is the synthesized Markdown response, set only on the
	// final event.
	Report string `json:"report,omitempty"`

	// Papers are the ranked results backing the report, set only on the
	// final event.
	Papers []PaperRecord `json:"papers,omitempty"`
}
