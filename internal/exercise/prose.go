package exercise

import "strings"

var tierHeaders = []struct {
	tier   Tier
	header string
}{
	{Foundation, "Foundation Tier"},
	{Intermediate, "Intermediate Tier"},
	{Advanced, "Advanced Tier"},
	{Expert, "Expert Tier"},
}

const (
	labelText        = "Text:"
	labelBlanks      = "Blanks:"
	labelAnswers     = "Answers:"
	labelHints       = "Hints:"
	labelTranslation = "Korean Translation:"
	labelAnswerKey   = "Answer Key:"
	labelCultural    = "Cultural Notes:"
)

var (
	fieldLabels   = []string{labelText, labelBlanks, labelAnswers, labelHints}
	sectionLabels = []string{labelTranslation, labelAnswerKey, labelCultural}

	// regionStops end a tier or section region.
	regionStops = func() []string {
		stops := make([]string, 0, len(tierHeaders)+len(sectionLabels))
		for _, h := range tierHeaders {
			stops = append(stops, h.header)
		}
		return append(stops, sectionLabels...)
	}()
)

// parseProse fills ex from an unstructured response laid out as
// "Foundation Tier / Text: / Blanks: / Answers: / Hints:" blocks. A tier
// whose header is missing stays empty.
func parseProse(ex *Exercise, text string) {
	for _, h := range tierHeaders {
		region, ok := boundedRegion(text, h.header, regionStops)
		if !ok {
			continue
		}
		c := ex.Tier(h.tier)
		if v, ok := boundedRegion(region, labelText, fieldLabels); ok {
			c.Text = v
		}
		if v, ok := boundedRegion(region, labelBlanks, fieldLabels); ok {
			c.Blanks = splitLines(v)
		}
		if v, ok := boundedRegion(region, labelAnswers, fieldLabels); ok {
			c.Answers = splitLines(v)
		}
		if v, ok := boundedRegion(region, labelHints, fieldLabels); ok {
			c.Hints = splitLines(v)
		}
	}

	if v, ok := boundedRegion(text, labelTranslation, regionStops); ok {
		ex.KoreanTranslation = v
	}
	if v, ok := boundedRegion(text, labelAnswerKey, regionStops); ok {
		ex.AnswerKey = splitLines(v)
	}
	if v, ok := boundedRegion(text, labelCultural, regionStops); ok {
		ex.CulturalNotes = splitLines(v)
	}
}

// boundedRegion returns the trimmed text after the first occurrence of label,
// up to the nearest following stop label or the end of text.
func boundedRegion(text, label string, stops []string) (string, bool) {
	start := strings.Index(text, label)
	if start < 0 {
		return "", false
	}
	body := text[start+len(label):]

	end := len(body)
	for _, stop := range stops {
		if stop == label {
			continue
		}
		if i := strings.Index(body, stop); i >= 0 && i < end {
			end = i
		}
	}
	return strings.TrimSpace(body[:end]), true
}
