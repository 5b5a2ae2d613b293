package practice

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gapfill/internal/ui/components"
	"github.com/abhisek/gapfill/internal/ui/layout"
	"github.com/abhisek/gapfill/internal/ui/theme"
)

// summaryScreen shows the score and every answer of a finished drill.
type summaryScreen struct {
	drill *Drill
}

func newSummaryScreen(d *Drill) *summaryScreen {
	return &summaryScreen{drill: d}
}

func (s *summaryScreen) Init() tea.Cmd { return nil }

func (s *summaryScreen) Title() string { return "결과" }

func (s *summaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "난이도 선택"},
		{Key: "q", Description: "종료"},
	}
}

func (s *summaryScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, pop
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *summaryScreen) View(width, height int) string {
	correct, answered := s.drill.Score()
	inner := max(min(width-4, 90), 20)

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("%s 연습 완료!", s.drill.Tier.Label())))
	b.WriteString("\n\n")

	pct := 0.0
	if answered > 0 {
		pct = float64(correct) / float64(answered)
	}
	b.WriteString(components.NewProgressBar(fmt.Sprintf("점수 %d/%d", correct, answered), pct, true, inner).View())
	b.WriteString("\n\n")

	for i, a := range s.drill.Attempts() {
		mark := theme.Correct.Render("✓")
		detail := a.Answer
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
			detail = fmt.Sprintf("%s → %s", a.Given, a.Answer)
		}
		fmt.Fprintf(&b, "%s %2d. %s\n", mark, i+1, theme.Body.Render(detail))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}
