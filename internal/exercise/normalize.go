package exercise

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/abhisek/gapfill/internal/extract"
)

// Normalize coerces an extracted payload into the canonical exercise.
// It never fails: anything it cannot place is dropped, and a payload with
// nothing recognizable yields New().
func Normalize(p extract.Payload) *Exercise {
	ex := New()
	switch p.Kind {
	case extract.KindRaw:
		parseProse(ex, p.Text)
	case extract.KindStructured:
		normalizeDocument(ex, p.Value)
	}
	return ex
}

// containerKeys hold tiers one level down, e.g. {"tiers": {"basic": ...}}.
var containerKeys = map[string]bool{
	"tiers":     true,
	"levels":    true,
	"exercises": true,
	"gapfill":   true,
	"gap_fill":  true,
	"problems":  true,
}

// entryTierFields name the fields a list entry may use to declare its tier.
var entryTierFields = []string{"tier", "level", "difficulty", "name", "title"}

const maxContainerDepth = 2

func normalizeDocument(ex *Exercise, v any) {
	switch doc := v.(type) {
	case *extract.Object:
		normalizeObject(ex, doc, 0)
		copySections(ex, doc)
	case []any:
		normalizeEntries(ex, doc)
	}
}

func normalizeObject(ex *Exercise, obj *extract.Object, depth int) {
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)

		if tier, ok := ResolveTier(key); ok {
			if entry, ok := v.(*extract.Object); ok {
				fillTier(ex.Tier(tier), entry)
			}
			continue
		}

		if depth >= maxContainerDepth || !containerKeys[strings.ToLower(key)] {
			continue
		}
		switch inner := v.(type) {
		case *extract.Object:
			normalizeObject(ex, inner, depth+1)
		case []any:
			normalizeEntries(ex, inner)
		}
	}
}

// normalizeEntries handles an explicit list of per-tier entries.
func normalizeEntries(ex *Exercise, entries []any) {
	for _, item := range entries {
		entry, ok := item.(*extract.Object)
		if !ok {
			continue
		}
		if tier, ok := entryTier(entry); ok {
			fillTier(ex.Tier(tier), entry)
		}
	}
}

func entryTier(entry *extract.Object) (Tier, bool) {
	for _, field := range entryTierFields {
		v, ok := entry.Get(field)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if tier, ok := ResolveTier(s); ok {
				return tier, true
			}
		}
	}
	return "", false
}

func fillTier(c *TierContent, entry *extract.Object) {
	if v, ok := entry.Get("text"); ok {
		c.Text = coerceText(v)
	}
	if v, ok := entry.Get("blanks"); ok {
		c.Blanks = coerceList(v)
	}
	if v, ok := entry.Get("answers"); ok {
		c.Answers = coerceList(v)
	}
	if v, ok := entry.Get("hints"); ok {
		c.Hints = coerceList(v)
	}
}

func copySections(ex *Exercise, obj *extract.Object) {
	if v, ok := obj.Get("korean_translation"); ok {
		ex.KoreanTranslation = coerceText(v)
	}
	if v, ok := obj.Get("answer_key"); ok {
		ex.AnswerKey = coerceList(v)
	}
	if v, ok := obj.Get("cultural_notes"); ok {
		ex.CulturalNotes = coerceList(v)
	}
}

func coerceText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []any:
		return strings.Join(coerceList(x), "\n")
	default:
		return itemString(x)
	}
}

func coerceList(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{}
	case string:
		return splitLines(x)
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, itemString(item))
		}
		return out
	case *extract.Object:
		// Numbered maps such as {"1": "cat", "2": "dog"}.
		out := make([]string, 0, x.Len())
		for _, k := range x.Keys() {
			item, _ := x.Get(k)
			out = append(out, itemString(item))
		}
		return out
	default:
		return []string{itemString(x)}
	}
}

// itemFields are tried in order when a list element is an object.
var itemFields = []string{"word", "answer", "text", "blank", "hint"}

func itemString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, itemString(item))
		}
		return strings.Join(parts, ", ")
	case *extract.Object:
		for _, f := range itemFields {
			if s, ok := x.Get(f); ok {
				if str, ok := s.(string); ok {
					return str
				}
			}
		}
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// splitLines splits on line breaks, trimming lines and dropping blanks.
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
