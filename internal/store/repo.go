package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// GenerationEventData captures one run of the exercise pipeline.
type GenerationEventData struct {
	PassageHash    string
	PassagePreview string
	Provider       string
	Success        bool
	// ErrorStage names the pipeline stage that failed, if any.
	ErrorStage      string
	ErrorMessage    string
	BlankCount      int
	MisalignedTiers []string
	// Degraded is set when normalization produced an empty exercise.
	Degraded bool
	// Artifact is the base name of the saved HTML page.
	Artifact     string
	LatencyMs    int64
	ExerciseJSON string
}

// GenerationEvent is a stored generation event.
type GenerationEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GenerationEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendGeneration records a pipeline run.
	AppendGeneration(ctx context.Context, data GenerationEventData) (*GenerationEvent, error)

	// QueryGenerations returns generation events newest first.
	QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error)

	// GetGeneration returns one generation event, or nil if it does not exist.
	GetGeneration(ctx context.Context, id int) (*GenerationEvent, error)
}
