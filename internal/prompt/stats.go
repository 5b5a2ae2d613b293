package prompt

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// punctuation matches everything that is neither a word character nor
// whitespace.
var punctuation = regexp2.MustCompile(`[^\w\s]`, regexp2.None)

const mostCommonLimit = 10

// WordCount is one entry of the most-common-words list.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Stats are surface statistics of a passage computed without the model.
type Stats struct {
	WordCount       int         `json:"word_count"`
	SentenceCount   int         `json:"sentence_count"`
	AvgWordLength   float64     `json:"avg_word_length"`
	MostCommonWords []WordCount `json:"most_common_words"`
}

// BasicStats computes word, sentence and frequency statistics for passage.
// Words are case-sensitive and stripped of punctuation. Sentences are the
// non-empty segments between runs of '.', '!' and '?'.
func BasicStats(passage string) Stats {
	clean, err := punctuation.Replace(passage, "", -1, -1)
	if err != nil {
		clean = passage
	}
	words := strings.Fields(clean)

	stats := Stats{
		WordCount:       len(words),
		SentenceCount:   countSentences(passage),
		MostCommonWords: []WordCount{},
	}
	if len(words) == 0 {
		return stats
	}

	total := 0
	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		total += utf8.RuneCountInString(w)
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	stats.AvgWordLength = float64(total) / float64(len(words))

	ranked := make([]WordCount, len(order))
	for i, w := range order {
		ranked[i] = WordCount{Word: w, Count: counts[w]}
	}
	// Stable keeps first-seen order among equal counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > mostCommonLimit {
		ranked = ranked[:mostCommonLimit]
	}
	stats.MostCommonWords = ranked
	return stats
}

func countSentences(text string) int {
	n := 0
	for _, seg := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}
