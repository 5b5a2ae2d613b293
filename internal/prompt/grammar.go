package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern scan. Passages are short, so hitting
// it means a pathological input rather than a slow one.
const matchTimeout = 2 * time.Second

// GrammarFocus is a grammar area Korean learners find hard, with the
// patterns used to spot it in a passage.
type GrammarFocus struct {
	ID          string
	Patterns    []*regexp2.Regexp
	Description string
	Examples    []string
	KoreanNote  string
}

// GrammarMatch lists the distinct passage fragments one focus entry matched.
type GrammarMatch struct {
	Focus   *GrammarFocus
	Matches []string
}

func mustPatterns(exprs ...string) []*regexp2.Regexp {
	out := make([]*regexp2.Regexp, len(exprs))
	for i, expr := range exprs {
		re := regexp2.MustCompile(expr, regexp2.IgnoreCase)
		re.MatchTimeout = matchTimeout
		out[i] = re
	}
	return out
}

// DefaultGrammarFocus builds the grammar focus table. Several patterns use
// lookahead, which is why they compile with regexp2.
func DefaultGrammarFocus() []GrammarFocus {
	return []GrammarFocus{
		{
			ID: "relative_pronouns",
			Patterns: mustPatterns(
				`\b(who|whom|whose|which|that)\b(?=\s+\w+)`,
				`\b\w+\s+(who|whom|whose|which|that)\b`,
			),
			Description: "관계대명사",
			Examples:    []string{"The person who called you is waiting.", "The book that I read was interesting."},
			KoreanNote:  "관계대명사는 선행사를 수식하는 절을 이끄는 역할을 합니다.",
		},
		{
			ID: "subject_verb_agreement",
			Patterns: mustPatterns(
				`\b(is|are|was|were|has|have)\b`,
				`\b(he|she|it)\s+\w+s\b`,
				`\b(they|we|you)\s+\w+\b(?!\s+s)`,
			),
			Description: "수일치",
			Examples:    []string{"He walks to school.", "They walk to school."},
			KoreanNote:  "주어와 동사의 수가 일치해야 합니다.",
		},
		{
			ID: "conditionals",
			Patterns: mustPatterns(
				`\bif\s+\w+\s+\w+,\s+\w+\s+would\b`,
				`\bhad\s+\w+\s+\w+,\s+\w+\s+would\s+have\b`,
				`\bwere\s+\w+\s+to\b`,
			),
			Description: "가정법",
			Examples:    []string{"If I were you, I would study harder.", "Had I known, I would have told you."},
			KoreanNote:  "가정법은 현실과 다른 상황을 가정할 때 사용합니다.",
		},
		{
			ID: "infinitives",
			Patterns: mustPatterns(
				`\bto\s+\w+\b`,
				`\b(want|need|try|decide|plan)\s+to\s+\w+\b`,
			),
			Description: "부정사",
			Examples:    []string{"I want to study English.", "To succeed, you must work hard."},
			KoreanNote:  "부정사는 'to + 동사원형'의 형태로 명사, 형용사, 부사의 역할을 합니다.",
		},
		{
			ID: "gerunds",
			Patterns: mustPatterns(
				`\b\w+ing\b(?!\s+\w+ed)`,
				`\b(enjoy|avoid|consider|finish|practice)\s+\w+ing\b`,
			),
			Description: "동명사",
			Examples:    []string{"I enjoy swimming.", "Reading books is my hobby."},
			KoreanNote:  "동명사는 '-ing' 형태의 동사로 명사의 역할을 합니다.",
		},
		{
			ID: "participles",
			Patterns: mustPatterns(
				`\b\w+ing\s+\w+\b`,
				`\b\w+ed\s+\w+\b`,
				`\b\w+,\s+\w+ing\b`,
				`\b\w+,\s+\w+ed\b`,
			),
			Description: "분사",
			Examples:    []string{"The running water is clean.", "Excited students cheered loudly."},
			KoreanNote:  "분사는 '-ing'나 '-ed' 형태로 명사를 수식하거나 부수적 상황을 나타냅니다.",
		},
		{
			ID: "tenses",
			Patterns: mustPatterns(
				`\b(has|have)\s+\w+ed\b`,
				`\b(had)\s+\w+ed\b`,
				`\bwill\s+\w+\b`,
				`\b(is|are|was|were)\s+\w+ing\b`,
			),
			Description: "시제",
			Examples:    []string{"I have finished my homework.", "She is studying now."},
			KoreanNote:  "시제는 동작이 일어난 시간을 나타냅니다.",
		},
	}
}

// scanGrammar runs every pattern of every entry over text, in table order.
// Entries with no match are omitted. A pattern that errors (timeout) simply
// stops contributing; the scan only enriches prompt text.
func scanGrammar(focus []GrammarFocus, text string) []GrammarMatch {
	var out []GrammarMatch
	for i := range focus {
		f := &focus[i]
		seen := make(map[string]bool)
		var found []string
		for _, re := range f.Patterns {
			m, err := re.FindStringMatch(text)
			for err == nil && m != nil {
				s := m.String()
				if !seen[s] {
					seen[s] = true
					found = append(found, s)
				}
				m, err = re.FindNextMatch(m)
			}
		}
		if len(found) > 0 {
			out = append(out, GrammarMatch{Focus: f, Matches: found})
		}
	}
	return out
}

// FormatGrammar renders matches as "- description: a, b" lines.
func FormatGrammar(matches []GrammarMatch) string {
	var b strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s: %s\n", m.Focus.Description, strings.Join(m.Matches, ", "))
	}
	return b.String()
}
