package exercise

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/gapfill/internal/extract"
)

func normalizeJSON(t *testing.T, doc string) *Exercise {
	t.Helper()
	p, strategy := extract.ExtractStrategy(doc)
	if p.Kind != extract.KindStructured {
		t.Fatalf("expected structured payload for %q, got %s via %s", doc, p.Kind, strategy)
	}
	return Normalize(p)
}

func TestResolveTier(t *testing.T) {
	tests := []struct {
		name string
		want Tier
		ok   bool
	}{
		{"Foundation", Foundation, true},
		{"Basic Level", Foundation, true},
		{"BEGINNER", Foundation, true},
		{"intermediate_tier", Intermediate, true},
		{"Medium", Intermediate, true},
		{"advanced", Advanced, true},
		{"High", Advanced, true},
		{"very high", Advanced, true},
		{"Expert", Expert, true},
		{"master_class", Expert, true},
		{"basic_high", Foundation, true},
		{"unknown_section", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveTier(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ResolveTier(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNormalize_AliasKeysAndUnknownSection(t *testing.T) {
	ex := normalizeJSON(t, `{"Foundation": {"text": "A", "answers": ["x","y"]}, "unknown_section": {"text":"Z"}}`)

	if ex.Tiers.Foundation.Text != "A" {
		t.Fatalf("foundation text = %q", ex.Tiers.Foundation.Text)
	}
	if !reflect.DeepEqual(ex.Tiers.Foundation.Answers, []string{"x", "y"}) {
		t.Fatalf("foundation answers = %v", ex.Tiers.Foundation.Answers)
	}
	for _, tier := range []Tier{Intermediate, Advanced, Expert} {
		if !ex.Tier(tier).empty() {
			t.Fatalf("tier %s should be empty, got %+v", tier, *ex.Tier(tier))
		}
	}
}

func TestNormalize_AllTiersAlwaysPresentInJSON(t *testing.T) {
	ex := normalizeJSON(t, `{"basic": {"text": "only one"}}`)

	b, err := json.Marshal(ex)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out struct {
		Tiers map[string]map[string]any `json:"tiers"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, tier := range AllTiers {
		c, ok := out.Tiers[string(tier)]
		if !ok {
			t.Fatalf("tier %s missing from output", tier)
		}
		for _, field := range []string{"blanks", "answers", "hints", "shuffled_answers"} {
			if _, isList := c[field].([]any); !isList {
				t.Fatalf("tier %s field %s should be a list, got %T", tier, field, c[field])
			}
		}
	}
}

func TestNormalize_EachAliasLandsInItsTier(t *testing.T) {
	ex := normalizeJSON(t, `{
		"beginner": {"text": "f"},
		"medium": {"text": "i"},
		"high": {"text": "a"},
		"master": {"text": "e"}
	}`)
	want := map[Tier]string{Foundation: "f", Intermediate: "i", Advanced: "a", Expert: "e"}
	for tier, text := range want {
		if got := ex.Tier(tier).Text; got != text {
			t.Fatalf("tier %s text = %q, want %q", tier, got, text)
		}
	}
}

func TestNormalize_ContainerKey(t *testing.T) {
	ex := normalizeJSON(t, `{
		"tiers": {
			"foundation": {"text": "T1", "blanks": ["a"], "answers": ["a"], "hints": ["h"]},
			"expert": {"text": "T4"}
		},
		"korean_translation": "번역",
		"answer_key": ["1. a"],
		"cultural_notes": "note one\nnote two"
	}`)

	if ex.Tiers.Foundation.Text != "T1" || ex.Tiers.Expert.Text != "T4" {
		t.Fatalf("unexpected tiers: %+v", ex.Tiers)
	}
	if ex.KoreanTranslation != "번역" {
		t.Fatalf("translation = %q", ex.KoreanTranslation)
	}
	if !reflect.DeepEqual(ex.AnswerKey, []string{"1. a"}) {
		t.Fatalf("answer key = %v", ex.AnswerKey)
	}
	if !reflect.DeepEqual(ex.CulturalNotes, []string{"note one", "note two"}) {
		t.Fatalf("cultural notes = %v", ex.CulturalNotes)
	}
}

func TestNormalize_ListOfEntries(t *testing.T) {
	ex := normalizeJSON(t, `{"exercises": [
		{"level": "Beginner", "text": "one"},
		{"tier": "nonsense", "name": "Advanced", "text": "three"},
		{"text": "no tier"},
		"not an object"
	]}`)

	if ex.Tiers.Foundation.Text != "one" {
		t.Fatalf("foundation text = %q", ex.Tiers.Foundation.Text)
	}
	if ex.Tiers.Advanced.Text != "three" {
		t.Fatalf("advanced text = %q", ex.Tiers.Advanced.Text)
	}
	if ex.Tiers.Intermediate.Text != "" || ex.Tiers.Expert.Text != "" {
		t.Fatalf("unexpected content: %+v", ex.Tiers)
	}
}

func TestNormalize_TopLevelArray(t *testing.T) {
	ex := normalizeJSON(t, `[{"tier": "Expert", "text": "x", "answers": ["a"]}, {"level": "Foundation", "text": "y"}]`)
	if ex.Tiers.Expert.Text != "x" {
		t.Fatalf("expert text = %q", ex.Tiers.Expert.Text)
	}
	if !reflect.DeepEqual(ex.Tiers.Expert.Answers, []string{"a"}) {
		t.Fatalf("expert answers = %v", ex.Tiers.Expert.Answers)
	}
	if ex.Tiers.Foundation.Text != "y" {
		t.Fatalf("foundation text = %q", ex.Tiers.Foundation.Text)
	}
}

func TestNormalize_SingleEntryList(t *testing.T) {
	entry := extract.NewObject()
	entry.Set("tier", "Expert")
	entry.Set("text", "x")
	ex := Normalize(extract.Structured([]any{entry}))
	if ex.Tiers.Expert.Text != "x" {
		t.Fatalf("expert text = %q", ex.Tiers.Expert.Text)
	}
}

// A one-element array reaches the normalizer as its inner object, whose
// keys name no tier.
func TestNormalize_SingleEntryArrayViaExtract(t *testing.T) {
	ex := normalizeJSON(t, `[{"tier": "Expert", "text": "x"}]`)
	if ex.Tiers.Expert.Text != "" {
		t.Fatalf("expected empty expert tier, got %q", ex.Tiers.Expert.Text)
	}
}

func TestNormalize_FieldCoercion(t *testing.T) {
	ex := normalizeJSON(t, `{"foundation": {
		"text": ["line one", "line two"],
		"blanks": "cat\n\n dog ",
		"answers": [{"word": "cat"}, {"answer": "dog"}, 3, true, null],
		"hints": {"1": "animal", "2": "pet"}
	}}`)
	c := ex.Tiers.Foundation

	if c.Text != "line one\nline two" {
		t.Fatalf("text = %q", c.Text)
	}
	if !reflect.DeepEqual(c.Blanks, []string{"cat", "dog"}) {
		t.Fatalf("blanks = %v", c.Blanks)
	}
	if !reflect.DeepEqual(c.Answers, []string{"cat", "dog", "3", "true", ""}) {
		t.Fatalf("answers = %v", c.Answers)
	}
	if !reflect.DeepEqual(c.Hints, []string{"animal", "pet"}) {
		t.Fatalf("hints = %v", c.Hints)
	}
}

func TestNormalize_NonObjectTierValueIgnored(t *testing.T) {
	ex := normalizeJSON(t, `{"foundation": "just a string", "expert": {"text": "ok"}}`)
	if ex.Tiers.Foundation.Text != "" {
		t.Fatalf("foundation should be empty, got %q", ex.Tiers.Foundation.Text)
	}
	if ex.Tiers.Expert.Text != "ok" {
		t.Fatalf("expert text = %q", ex.Tiers.Expert.Text)
	}
}

func TestNormalize_EmptyRoundTrip(t *testing.T) {
	fromNothing := Normalize(extract.Payload{})
	fromEmptyObject := Normalize(extract.Empty())
	if !reflect.DeepEqual(fromNothing, fromEmptyObject) {
		t.Fatalf("empty payloads differ:\n%+v\n%+v", fromNothing, fromEmptyObject)
	}
	if !reflect.DeepEqual(fromNothing, New()) {
		t.Fatalf("empty payload should equal New()")
	}
	if !fromNothing.Empty() {
		t.Fatal("expected Empty() to be true")
	}
}

func TestNormalize_ProseScenario(t *testing.T) {
	raw := "Foundation Tier\nText: The cat sat.\nBlanks: cat\nAnswers: cat\nHints: animal\nIntermediate Tier\n..."
	ex := Normalize(extract.Raw(raw))

	c := ex.Tiers.Foundation
	if c.Text != "The cat sat." {
		t.Fatalf("text = %q", c.Text)
	}
	if !reflect.DeepEqual(c.Blanks, []string{"cat"}) {
		t.Fatalf("blanks = %v", c.Blanks)
	}
	if !reflect.DeepEqual(c.Answers, []string{"cat"}) {
		t.Fatalf("answers = %v", c.Answers)
	}
	if !reflect.DeepEqual(c.Hints, []string{"animal"}) {
		t.Fatalf("hints = %v", c.Hints)
	}
	if ex.Tiers.Intermediate.Text != "" {
		t.Fatalf("intermediate text = %q", ex.Tiers.Intermediate.Text)
	}
}

func TestNormalize_ProseRegionsDoNotOverlap(t *testing.T) {
	raw := strings.Join([]string{
		"Expert Tier",
		"Text: Hard text.",
		"Answers:",
		"notwithstanding",
		"Korean Translation: 어려운 글.",
		"Answer Key:",
		"1. notwithstanding",
		"Cultural Notes: none",
	}, "\n")
	ex := Normalize(extract.Raw(raw))

	if !reflect.DeepEqual(ex.Tiers.Expert.Answers, []string{"notwithstanding"}) {
		t.Fatalf("expert answers = %v", ex.Tiers.Expert.Answers)
	}
	if ex.KoreanTranslation != "어려운 글." {
		t.Fatalf("translation = %q", ex.KoreanTranslation)
	}
	if !reflect.DeepEqual(ex.AnswerKey, []string{"1. notwithstanding"}) {
		t.Fatalf("answer key = %v", ex.AnswerKey)
	}
	if !reflect.DeepEqual(ex.CulturalNotes, []string{"none"}) {
		t.Fatalf("cultural notes = %v", ex.CulturalNotes)
	}
}

func TestNormalize_ProseWithoutHeadersDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{
		"Sorry, I cannot help with that.",
		"Text: orphan field with no tier header",
		"",
	} {
		ex := Normalize(extract.Raw(raw))
		for _, tier := range AllTiers {
			c := ex.Tier(tier)
			if c.Text != "" || len(c.Blanks) != 0 || len(c.Answers) != 0 || len(c.Hints) != 0 {
				t.Fatalf("%q: tier %s should be empty, got %+v", raw, tier, *c)
			}
			if c.Blanks == nil || c.Answers == nil || c.Hints == nil {
				t.Fatalf("%q: tier %s lists must be non-nil", raw, tier)
			}
		}
	}
}

func TestExercise_Misaligned(t *testing.T) {
	ex := normalizeJSON(t, `{
		"foundation": {"blanks": ["a","b"], "answers": ["a"]},
		"intermediate": {"blanks": ["a"], "answers": ["a"]},
		"advanced": {"blanks": [], "answers": ["a","b"]}
	}`)
	got := ex.Misaligned()
	if !reflect.DeepEqual(got, []Tier{Foundation}) {
		t.Fatalf("misaligned = %v", got)
	}
	if ex.Tiers.Foundation.Answers[0] != "a" || len(ex.Tiers.Foundation.Blanks) != 2 {
		t.Fatalf("misaligned data should be kept as parsed")
	}
}

func TestExercise_BlankCount(t *testing.T) {
	ex := normalizeJSON(t, `{"foundation": {"blanks": ["a","b"]}, "expert": {"blanks": ["c"]}}`)
	if got := ex.BlankCount(); got != 3 {
		t.Fatalf("BlankCount = %d, want 3", got)
	}
}

func TestTier_Label(t *testing.T) {
	if Foundation.Label() != "기초" || Expert.Label() != "전문가" {
		t.Fatalf("unexpected labels: %s %s", Foundation.Label(), Expert.Label())
	}
	if Tier("other").Label() != "other" {
		t.Fatal("unknown tier should label as itself")
	}
}
