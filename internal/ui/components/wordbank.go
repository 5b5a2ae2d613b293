package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gapfill/internal/ui/theme"
)

// WordBank shows the shuffled answers of a tier. Words already placed are
// struck through; duplicates are consumed one at a time.
type WordBank struct {
	Words []string
	used  []bool
}

// NewWordBank creates a word bank over words.
func NewWordBank(words []string) WordBank {
	return WordBank{Words: words, used: make([]bool, len(words))}
}

// Use marks the first unused occurrence of word, compared case-insensitively,
// and reports whether one was found.
func (w *WordBank) Use(word string) bool {
	word = strings.TrimSpace(word)
	for i, candidate := range w.Words {
		if !w.used[i] && strings.EqualFold(candidate, word) {
			w.used[i] = true
			return true
		}
	}
	return false
}

// Remaining returns the number of unused words.
func (w WordBank) Remaining() int {
	n := 0
	for _, u := range w.used {
		if !u {
			n++
		}
	}
	return n
}

// View renders the bank, wrapping at width.
func (w WordBank) View(width int) string {
	if len(w.Words) == 0 {
		return theme.Hint.Render("(단어 목록 없음)")
	}

	var lines []string
	var line []string
	lineWidth := 0
	for i, word := range w.Words {
		style := theme.BankWord
		if w.used[i] {
			style = theme.BankWordUsed
		}
		cell := style.Render(word)
		cw := lipgloss.Width(word) + 3
		if lineWidth > 0 && lineWidth+cw > width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, lineWidth = nil, 0
		}
		line = append(line, cell, " ")
		lineWidth += cw
	}
	if len(line) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
