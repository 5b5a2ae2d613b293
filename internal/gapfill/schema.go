package gapfill

import "github.com/abhisek/gapfill/internal/llm"

func stringArray() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

func tierSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"text", "blanks", "answers", "hints", "shuffled_answers"},
		"properties": map[string]any{
			"text":             map[string]any{"type": "string"},
			"blanks":           stringArray(),
			"answers":          stringArray(),
			"hints":            stringArray(),
			"shuffled_answers": stringArray(),
		},
	}
}

// ExerciseSchema describes the canonical exercise. Every generated exercise
// is checked against it before rendering.
var ExerciseSchema = &llm.Schema{
	Name:        "gapfill-exercise",
	Description: "A four-tier gap-fill exercise with translation, answer key and cultural notes",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"tiers", "korean_translation", "answer_key", "cultural_notes"},
		"properties": map[string]any{
			"tiers": map[string]any{
				"type":                 "object",
				"required":             []any{"foundation", "intermediate", "advanced", "expert"},
				"additionalProperties": false,
				"properties": map[string]any{
					"foundation":   tierSchema(),
					"intermediate": tierSchema(),
					"advanced":     tierSchema(),
					"expert":       tierSchema(),
				},
			},
			"korean_translation": map[string]any{"type": "string"},
			"answer_key":         stringArray(),
			"cultural_notes":     stringArray(),
		},
	},
}
