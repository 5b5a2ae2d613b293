// Package gapfill runs the exercise pipeline: analyze a passage, ask the
// model for a four-tier gap-fill exercise, normalize and shuffle it, then
// render it to a standalone HTML page.
package gapfill

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/artifact"
	"github.com/abhisek/gapfill/internal/cache"
	"github.com/abhisek/gapfill/internal/exercise"
	"github.com/abhisek/gapfill/internal/llm"
	"github.com/abhisek/gapfill/internal/prompt"
	"github.com/abhisek/gapfill/internal/render"
	"github.com/abhisek/gapfill/internal/store"
)

// Model request settings shared by every stage.
const (
	Temperature = 0.2
	MaxTokens   = 8192
	TopP        = 0.8
	TopK        = 40
)

// Purposes attached to model calls for the event log and metrics.
const (
	PurposeAnalysis = llm.PurposeAnalysis
	PurposeGapfill  = llm.PurposeGapfill
	PurposeRender   = llm.PurposeRender
)

// EventRecorder is the part of the event store the generator writes to.
type EventRecorder interface {
	AppendGeneration(ctx context.Context, data store.GenerationEventData) (*store.GenerationEvent, error)
}

// ArtifactSaver persists rendered pages.
type ArtifactSaver interface {
	Save(html string) (artifact.Artifact, error)
}

// Options configures a Generator. Only the provider is required.
type Options struct {
	// ProviderName labels events. Defaults to the provider's model ID.
	ProviderName string

	Composer  *prompt.Composer
	Optimizer *render.Optimizer
	Shuffler  *exercise.Shuffler

	// Cache holds raw analysis responses. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	// Events receives one generation event per Generate call. Nil disables it.
	Events EventRecorder

	// Artifacts stores the rendered page. Nil leaves Result.Artifact empty.
	Artifacts ArtifactSaver

	Logger *zap.Logger
}

// Generator runs the pipeline. It is safe for concurrent use.
type Generator struct {
	provider llm.Provider
	opts     Options
}

// New creates a Generator, filling unset options with defaults.
func New(provider llm.Provider, opts Options) (*Generator, error) {
	if provider == nil {
		return nil, errors.New("gapfill: nil provider")
	}
	if opts.ProviderName == "" {
		opts.ProviderName = provider.ModelID()
	}
	if opts.Composer == nil {
		opts.Composer = prompt.NewComposer(nil)
	}
	if opts.Optimizer == nil {
		opt, err := render.NewOptimizer(render.DefaultTemplates(), opts.Composer.Focus())
		if err != nil {
			return nil, err
		}
		opts.Optimizer = opt
	}
	if opts.Shuffler == nil {
		opts.Shuffler = exercise.NewShuffler(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Generator{provider: provider, opts: opts}, nil
}

// call sends a single-turn request and returns the response parts.
func (g *Generator) call(ctx context.Context, purpose, userPrompt, system string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, purpose)
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
		TopP:        TopP,
		TopK:        TopK,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Parts) > 0 {
		return resp.Parts, nil
	}
	return []string{resp.Text()}, nil
}
