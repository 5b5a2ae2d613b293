package prompt

import (
	"strings"

	"github.com/abhisek/gapfill/internal/exercise"
	"github.com/abhisek/gapfill/internal/extract"
)

// Linguistic categories an analysis groups words into.
const (
	CategoryLexicalSemantic       = "lexical_semantic"
	CategoryGrammaticalSyntactic  = "grammatical_syntactic"
	CategoryDiscoursePragmatic    = "discourse_pragmatic"
	CategoryConceptualCognitive   = "conceptual_cognitive"
	CategoryCulturalTranslational = "cultural_translational"
)

// categoryStems maps each category to the fragments that identify it in a
// model's label, English first then Korean. Checked in order; first wins.
var categoryStems = []struct {
	name  string
	stems []string
}{
	{CategoryLexicalSemantic, []string{"lexical", "semantic", "어휘", "의미"}},
	{CategoryGrammaticalSyntactic, []string{"grammatical", "syntactic", "문법", "구문"}},
	{CategoryDiscoursePragmatic, []string{"discourse", "pragmatic", "담화", "화용"}},
	{CategoryConceptualCognitive, []string{"conceptual", "cognitive", "개념", "인지"}},
	{CategoryCulturalTranslational, []string{"cultural", "translational", "문화", "번역"}},
}

// contrastiveKeys are tried in order by ContrastivePoints.
var contrastiveKeys = []string{"cultural_translational", "contrastive_points", "korean_english_contrast"}

// DifficultyLevels buckets analysed words by tier.
type DifficultyLevels map[exercise.Tier][]any

// Categories buckets analysed words by linguistic category.
type Categories map[string][]any

func newDifficultyLevels() DifficultyLevels {
	d := make(DifficultyLevels, len(exercise.AllTiers))
	for _, t := range exercise.AllTiers {
		d[t] = []any{}
	}
	return d
}

func newCategories() Categories {
	c := make(Categories, len(categoryStems))
	for _, cs := range categoryStems {
		c[cs.name] = []any{}
	}
	return c
}

// AnalyzeDifficulty buckets the analysis by difficulty. It reads the
// "difficulty" field of each "words" entry, or, without a words list, every
// top-level key containing "difficulty" whose value maps levels to words.
// All four tiers are always present.
func AnalyzeDifficulty(analysis extract.Payload) DifficultyLevels {
	levels := newDifficultyLevels()
	obj, ok := analysis.Object()
	if !ok {
		return levels
	}

	if words, ok := wordEntries(obj); ok {
		for _, w := range words {
			entry, ok := w.(*extract.Object)
			if !ok {
				continue
			}
			if tier, ok := resolveDifficulty(stringField(entry, "difficulty")); ok {
				levels[tier] = append(levels[tier], entry)
			}
		}
		return levels
	}

	for _, key := range obj.Keys() {
		if !strings.Contains(strings.ToLower(key), "difficulty") {
			continue
		}
		v, _ := obj.Get(key)
		byLevel, ok := v.(*extract.Object)
		if !ok {
			continue
		}
		for _, level := range byLevel.Keys() {
			tier, ok := resolveDifficulty(level)
			if !ok {
				continue
			}
			words, _ := byLevel.Get(level)
			levels[tier] = append(levels[tier], asList(words)...)
		}
	}
	return levels
}

// Categorize buckets the analysis by linguistic category, either from the
// "category" field of each "words" entry or from category-named top-level
// keys. All five categories are always present.
func Categorize(analysis extract.Payload) Categories {
	cats := newCategories()
	obj, ok := analysis.Object()
	if !ok {
		return cats
	}

	if words, ok := wordEntries(obj); ok {
		for _, w := range words {
			entry, ok := w.(*extract.Object)
			if !ok {
				continue
			}
			if name, ok := resolveCategory(stringField(entry, "category")); ok {
				cats[name] = append(cats[name], entry)
			}
		}
		return cats
	}

	for _, key := range obj.Keys() {
		name, ok := resolveCategory(key)
		if !ok {
			continue
		}
		v, _ := obj.Get(key)
		cats[name] = append(cats[name], asList(v)...)
	}
	return cats
}

// ContrastivePoints returns the Korean-English contrastive points the
// analysis carries, or an empty list.
func ContrastivePoints(analysis extract.Payload) []any {
	obj, ok := analysis.Object()
	if !ok {
		return []any{}
	}
	for _, key := range contrastiveKeys {
		if v, ok := obj.Get(key); ok && v != nil {
			return asList(v)
		}
	}
	return []any{}
}

func wordEntries(obj *extract.Object) ([]any, bool) {
	v, ok := obj.Get("words")
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

// resolveDifficulty maps a difficulty label to a tier through the alias
// table, then through the Korean tier labels.
func resolveDifficulty(label string) (exercise.Tier, bool) {
	if label == "" {
		return "", false
	}
	if t, ok := exercise.ResolveTier(label); ok {
		return t, true
	}
	for _, t := range exercise.AllTiers {
		if strings.Contains(label, t.Label()) {
			return t, true
		}
	}
	return "", false
}

func resolveCategory(label string) (string, bool) {
	lower := strings.ToLower(label)
	for _, cs := range categoryStems {
		for _, stem := range cs.stems {
			if strings.Contains(lower, stem) {
				return cs.name, true
			}
		}
	}
	return "", false
}

func stringField(obj *extract.Object, key string) string {
	v, _ := obj.Get(key)
	s, _ := v.(string)
	return s
}

func asList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}
