// Package exercise defines the canonical four-tier gap-fill exercise and the
// rules that coerce model output into it.
package exercise

// Tier is one of the four fixed difficulty levels.
type Tier string

const (
	Foundation   Tier = "foundation"
	Intermediate Tier = "intermediate"
	Advanced     Tier = "advanced"
	Expert       Tier = "expert"
)

// AllTiers lists the tiers from easiest to hardest.
var AllTiers = []Tier{Foundation, Intermediate, Advanced, Expert}

// Label returns the Korean display name used in rendered pages and the TUI.
func (t Tier) Label() string {
	switch t {
	case Foundation:
		return "기초"
	case Intermediate:
		return "중급"
	case Advanced:
		return "고급"
	case Expert:
		return "전문가"
	default:
		return string(t)
	}
}

// TierContent is one tier's passage with its blanks, answers and hints.
// Answers[i] fills Blanks[i] when both are present. ShuffledAnswers is a
// permutation of Answers for word-bank display.
type TierContent struct {
	Text            string   `json:"text"`
	Blanks          []string `json:"blanks"`
	Answers         []string `json:"answers"`
	Hints           []string `json:"hints"`
	ShuffledAnswers []string `json:"shuffled_answers"`
}

func newTierContent() TierContent {
	return TierContent{
		Blanks:          []string{},
		Answers:         []string{},
		Hints:           []string{},
		ShuffledAnswers: []string{},
	}
}

func (c *TierContent) empty() bool {
	return c.Text == "" && len(c.Blanks) == 0 && len(c.Answers) == 0 && len(c.Hints) == 0
}

// TierSet holds all four tiers. It is a struct rather than a map so every
// tier is always present in the JSON output.
type TierSet struct {
	Foundation   TierContent `json:"foundation"`
	Intermediate TierContent `json:"intermediate"`
	Advanced     TierContent `json:"advanced"`
	Expert       TierContent `json:"expert"`
}

// Exercise is the canonical, fully normalized gap-fill exercise.
type Exercise struct {
	Tiers             TierSet  `json:"tiers"`
	KoreanTranslation string   `json:"korean_translation"`
	AnswerKey         []string `json:"answer_key"`
	CulturalNotes     []string `json:"cultural_notes"`
}

// New returns an exercise with all four tiers present and empty.
func New() *Exercise {
	return &Exercise{
		Tiers: TierSet{
			Foundation:   newTierContent(),
			Intermediate: newTierContent(),
			Advanced:     newTierContent(),
			Expert:       newTierContent(),
		},
		AnswerKey:     []string{},
		CulturalNotes: []string{},
	}
}

// Tier returns a pointer to the content for t, or nil for an unknown tier.
func (e *Exercise) Tier(t Tier) *TierContent {
	switch t {
	case Foundation:
		return &e.Tiers.Foundation
	case Intermediate:
		return &e.Tiers.Intermediate
	case Advanced:
		return &e.Tiers.Advanced
	case Expert:
		return &e.Tiers.Expert
	default:
		return nil
	}
}

// Misaligned lists tiers whose blanks and answers are both populated but
// differ in length. The data is kept as parsed; callers report it.
func (e *Exercise) Misaligned() []Tier {
	var out []Tier
	for _, t := range AllTiers {
		c := e.Tier(t)
		if len(c.Blanks) > 0 && len(c.Answers) > 0 && len(c.Blanks) != len(c.Answers) {
			out = append(out, t)
		}
	}
	return out
}

// Empty reports whether normalization degraded to no content at all.
func (e *Exercise) Empty() bool {
	for _, t := range AllTiers {
		if !e.Tier(t).empty() {
			return false
		}
	}
	return e.KoreanTranslation == "" && len(e.AnswerKey) == 0 && len(e.CulturalNotes) == 0
}

// BlankCount returns the total number of blanks across all tiers.
func (e *Exercise) BlankCount() int {
	n := 0
	for _, t := range AllTiers {
		n += len(e.Tier(t).Blanks)
	}
	return n
}
