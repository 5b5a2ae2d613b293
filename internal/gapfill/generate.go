package gapfill

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/exercise"
	"github.com/abhisek/gapfill/internal/extract"
	"github.com/abhisek/gapfill/internal/llm"
	"github.com/abhisek/gapfill/internal/metrics"
	"github.com/abhisek/gapfill/internal/render"
	"github.com/abhisek/gapfill/internal/store"
)

const previewRunes = 80

// Result is the output of one pipeline run.
type Result struct {
	OriginalText string             `json:"original_text"`
	Analysis     *Analysis          `json:"analysis"`
	Exercise     *exercise.Exercise `json:"gapfill"`
	HTML         string             `json:"-"`

	// Artifact is the base name of the saved page, empty when the
	// generator has no artifact store.
	Artifact string `json:"artifact,omitempty"`

	// Fallback is set when the page was rendered locally because the
	// model's render response carried no HTML.
	Fallback bool `json:"fallback"`
}

// Generate runs the full pipeline for passage. Parse problems degrade the
// result; only model failures and storage failures are returned as errors.
func (g *Generator) Generate(ctx context.Context, passage string) (*Result, error) {
	passage = strings.TrimSpace(passage)
	if passage == "" {
		return nil, ErrEmptyPassage
	}

	start := time.Now()
	res, err := g.generate(ctx, passage)
	g.record(ctx, passage, res, err, time.Since(start))

	if err != nil {
		metrics.IncGeneration("error")
		return nil, err
	}
	metrics.IncGeneration("success")
	return res, nil
}

func (g *Generator) generate(ctx context.Context, passage string) (*Result, error) {
	log := g.opts.Logger

	analysis, err := g.Analyze(ctx, passage)
	if err != nil {
		return nil, err
	}

	userPrompt, system := g.opts.Composer.GenerationPrompt(passage, analysis)
	parts, err := g.call(ctx, PurposeGapfill, userPrompt, system)
	if err != nil {
		return nil, &StageError{Stage: StageGeneration, Err: err}
	}

	payload, strategy := extract.FromParts(parts)
	log.Debug("extracted exercise payload",
		zap.String("kind", payload.Kind.String()),
		zap.String("strategy", string(strategy)))

	ex := exercise.Normalize(payload)
	if ex.Empty() {
		metrics.IncDegradation("normalize")
		log.Warn("exercise normalized to empty", zap.String("kind", payload.Kind.String()))
	}
	for _, t := range ex.Misaligned() {
		c := ex.Tier(t)
		metrics.IncMisalignedTier(string(t))
		log.Warn("tier blanks and answers differ in length",
			zap.String("tier", string(t)),
			zap.Int("blanks", len(c.Blanks)),
			zap.Int("answers", len(c.Answers)))
	}
	g.opts.Shuffler.Shuffle(ex)

	if data, err := json.Marshal(ex); err != nil {
		log.Error("marshal exercise", zap.Error(err))
	} else if err := llm.ValidateJSON(ExerciseSchema, data); err != nil {
		log.Error("exercise failed schema validation", zap.Error(err))
	}

	res := &Result{OriginalText: passage, Analysis: analysis, Exercise: ex}

	html, fallback, err := g.render(ctx, passage, ex)
	if err != nil {
		return nil, err
	}
	res.HTML = g.opts.Optimizer.Optimize(html)
	res.Fallback = fallback

	if g.opts.Artifacts != nil {
		a, err := g.opts.Artifacts.Save(res.HTML)
		if err != nil {
			return nil, &StageError{Stage: StageArtifact, Err: err}
		}
		res.Artifact = a.Name
	}
	return res, nil
}

// render asks the model for a page and falls back to the local template
// when the response holds no HTML.
func (g *Generator) render(ctx context.Context, passage string, ex *exercise.Exercise) (string, bool, error) {
	userPrompt, system, err := g.opts.Composer.RenderPrompt(passage, ex)
	if err != nil {
		return "", false, &StageError{Stage: StageRender, Err: err}
	}
	parts, err := g.call(ctx, PurposeRender, userPrompt, system)
	if err != nil {
		return "", false, &StageError{Stage: StageRender, Err: err}
	}

	if html, ok := render.ExtractHTML(strings.Join(parts, "")); ok {
		return html, false, nil
	}

	metrics.IncDegradation(StageRender)
	g.opts.Logger.Warn("render response held no HTML, using fallback page")
	html, err := render.Fallback(passage, ex)
	if err != nil {
		return "", false, &StageError{Stage: StageRender, Err: err}
	}
	return html, true, nil
}

// record appends a generation event. It outlives the request context so a
// timed-out run is still logged.
func (g *Generator) record(ctx context.Context, passage string, res *Result, runErr error, elapsed time.Duration) {
	if g.opts.Events == nil {
		return
	}

	data := store.GenerationEventData{
		PassageHash:    PassageHash(passage),
		PassagePreview: preview(passage),
		Provider:       g.opts.ProviderName,
		Success:        runErr == nil,
		LatencyMs:      elapsed.Milliseconds(),
	}
	if runErr != nil {
		data.ErrorMessage = runErr.Error()
		var se *StageError
		if errors.As(runErr, &se) {
			data.ErrorStage = se.Stage
		}
	}
	if res != nil && res.Exercise != nil {
		data.BlankCount = res.Exercise.BlankCount()
		data.Degraded = res.Exercise.Empty()
		data.Artifact = res.Artifact
		for _, t := range res.Exercise.Misaligned() {
			data.MisalignedTiers = append(data.MisalignedTiers, string(t))
		}
		if raw, err := json.Marshal(res.Exercise); err == nil {
			data.ExerciseJSON = string(raw)
		}
	}

	if _, err := g.opts.Events.AppendGeneration(context.WithoutCancel(ctx), data); err != nil {
		g.opts.Logger.Warn("record generation event", zap.Error(err))
	}
}

// PassageHash identifies a passage in the event log.
func PassageHash(passage string) string {
	sum := sha256.Sum256([]byte(passage))
	return hex.EncodeToString(sum[:])
}

func preview(passage string) string {
	r := []rune(strings.Join(strings.Fields(passage), " "))
	if len(r) <= previewRunes {
		return string(r)
	}
	return string(r[:previewRunes]) + "…"
}
