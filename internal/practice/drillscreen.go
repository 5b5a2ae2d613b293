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

// drillScreen asks for one blank at a time. Enter submits, and a second
// Enter after the result moves on.
type drillScreen struct {
	drill       *Drill
	translation string
	input       components.TextInput
	bank        components.WordBank
	last        *Attempt
	showHint    bool
}

func newDrillScreen(d *Drill, translation string) *drillScreen {
	return &drillScreen{
		drill:       d,
		translation: translation,
		input:       components.NewTextInput("정답 입력", 64),
		bank:        components.NewWordBank(d.Bank),
	}
}

func (s *drillScreen) Init() tea.Cmd { return s.input.Init() }

func (s *drillScreen) Title() string {
	return fmt.Sprintf("%s 연습", s.drill.Tier.Label())
}

func (s *drillScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "제출/다음"},
		{Key: "Tab", Description: "힌트"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (s *drillScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "esc":
		return s, pop
	case "tab":
		s.showHint = !s.showHint
		return s, nil
	case "enter":
		if s.last != nil {
			return s, s.next()
		}
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, nil
		}
		a, ok := s.drill.Submit(s.input.Value())
		if !ok {
			return s, nil
		}
		s.bank.Use(a.Answer)
		s.input.Submit(a.Correct)
		s.last = &a
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// next moves to the following blank, or to the summary when done.
func (s *drillScreen) next() tea.Cmd {
	s.last = nil
	s.showHint = false
	if s.drill.Done() {
		return replace(newSummaryScreen(s.drill))
	}
	s.input = components.NewTextInput("정답 입력", 64)
	return s.input.Init()
}

func (s *drillScreen) View(width, height int) string {
	inner := max(min(width-4, 90), 20)
	var b strings.Builder

	progress := float64(s.drill.Position()) / float64(s.drill.Len())
	label := fmt.Sprintf("%d/%d", min(s.drill.Position()+1, s.drill.Len()), s.drill.Len())
	b.WriteString(components.NewProgressBar(label, progress, false, inner).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Card.Width(inner).Render(s.highlightedText()))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render("단어 목록"))
	b.WriteString("\n")
	b.WriteString(s.bank.View(inner))
	b.WriteString("\n\n")

	item, ok := s.drill.Current()
	if s.last != nil {
		item, ok = s.last.Item, true
	}
	if ok {
		blank := item.Blank
		if blank == "" {
			blank = "___"
		}
		b.WriteString(theme.Body.Render(fmt.Sprintf("빈칸 %d ", s.drill.Position()+boolInt(s.last == nil))))
		b.WriteString(theme.Blank.Render(blank))
		b.WriteString("\n")
		if s.showHint {
			hint := item.Hint
			if hint == "" {
				hint = "힌트가 없습니다."
			}
			b.WriteString(theme.Hint.Render("힌트: " + hint))
			b.WriteString("\n")
		}
	}

	b.WriteString(s.input.View())
	b.WriteString("\n")

	if s.last != nil {
		if s.last.Correct {
			b.WriteString(theme.Correct.Render("정답입니다!"))
		} else {
			b.WriteString(theme.Incorrect.Render("오답입니다. 정답: " + s.last.Answer))
		}
		b.WriteString("\n")
	}

	if s.translation != "" && !layout.IsCompactWidth(width) {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(inner).Render(s.translation))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// highlightedText marks the current blank in the tier text when it can be
// found there.
func (s *drillScreen) highlightedText() string {
	text := s.drill.Text
	item, ok := s.drill.Current()
	if !ok || item.Blank == "" || !strings.Contains(text, item.Blank) {
		return theme.Body.Render(text)
	}
	i := strings.Index(text, item.Blank)
	return theme.Body.Render(text[:i]) + theme.Blank.Render(item.Blank) + theme.Body.Render(text[i+len(item.Blank):])
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
