package gapfill

import (
	"errors"
	"fmt"
)

// ErrEmptyPassage is returned before any model call when the passage is
// blank.
var ErrEmptyPassage = errors.New("empty passage")

// Pipeline stages, used in errors, events and metrics.
const (
	StageAnalysis   = "analysis"
	StageGeneration = "generation"
	StageRender     = "render"
	StageArtifact   = "artifact"
)

// StageError reports which pipeline stage failed. Err is usually one of the
// typed llm errors.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
