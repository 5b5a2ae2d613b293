package gapfill

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/cache"
	"github.com/abhisek/gapfill/internal/extract"
	"github.com/abhisek/gapfill/internal/metrics"
	"github.com/abhisek/gapfill/internal/prompt"
)

// Analysis is the pre-generation view of a passage.
type Analysis struct {
	BasicStats prompt.Stats
	Linguistic extract.Payload

	// Derived from Linguistic.
	DifficultyLevels  prompt.DifficultyLevels
	Categories        prompt.Categories
	ContrastivePoints []any
}

// MarshalJSON renders the analysis as it is embedded in the generation
// prompt. A raw linguistic payload becomes {"raw_analysis": text}.
func (a *Analysis) MarshalJSON() ([]byte, error) {
	var linguistic any = a.Linguistic
	if a.Linguistic.Kind == extract.KindRaw {
		linguistic = map[string]string{"raw_analysis": a.Linguistic.Text}
	}
	return json.Marshal(struct {
		BasicStats prompt.Stats `json:"basic_stats"`
		Linguistic any          `json:"linguistic_analysis"`
	}{a.BasicStats, linguistic})
}

// Analyze computes passage statistics and asks the model for a linguistic
// analysis. Raw responses are cached by passage.
func (g *Generator) Analyze(ctx context.Context, passage string) (*Analysis, error) {
	passage = strings.TrimSpace(passage)
	if passage == "" {
		return nil, ErrEmptyPassage
	}

	parts, err := g.analysisParts(ctx, passage)
	if err != nil {
		return nil, &StageError{Stage: StageAnalysis, Err: err}
	}

	linguistic, strategy := extract.FromParts(parts)
	if linguistic.Kind == extract.KindRaw {
		metrics.IncDegradation(StageAnalysis)
		g.opts.Logger.Debug("analysis response held no JSON", zap.String("strategy", string(strategy)))
	}

	return &Analysis{
		BasicStats:        prompt.BasicStats(passage),
		Linguistic:        linguistic,
		DifficultyLevels:  prompt.AnalyzeDifficulty(linguistic),
		Categories:        prompt.Categorize(linguistic),
		ContrastivePoints: prompt.ContrastivePoints(linguistic),
	}, nil
}

func (g *Generator) analysisParts(ctx context.Context, passage string) ([]string, error) {
	key := cache.Key(PurposeAnalysis, passage)
	if g.opts.Cache != nil {
		cached, ok, err := g.opts.Cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.IncCacheLookup("error")
			g.opts.Logger.Warn("analysis cache lookup failed", zap.Error(err))
		case ok:
			var parts []string
			if jerr := json.Unmarshal([]byte(cached), &parts); jerr == nil {
				metrics.IncCacheLookup("hit")
				return parts, nil
			}
			metrics.IncCacheLookup("error")
		default:
			metrics.IncCacheLookup("miss")
		}
	}

	userPrompt, system := g.opts.Composer.AnalysisPrompt(passage)
	parts, err := g.call(ctx, PurposeAnalysis, userPrompt, system)
	if err != nil {
		return nil, err
	}

	if g.opts.Cache != nil {
		data, _ := json.Marshal(parts)
		if err := g.opts.Cache.Set(ctx, key, string(data), g.opts.CacheTTL); err != nil {
			g.opts.Logger.Warn("analysis cache store failed", zap.Error(err))
		}
	}
	return parts, nil
}
