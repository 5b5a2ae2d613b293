package practice

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gapfill/internal/exercise"
	"github.com/abhisek/gapfill/internal/ui/components"
	"github.com/abhisek/gapfill/internal/ui/layout"
	"github.com/abhisek/gapfill/internal/ui/theme"
)

// tierScreen lists the four tiers. Tiers without answers are disabled.
type tierScreen struct {
	ex   *exercise.Exercise
	menu components.Menu
}

func newTierScreen(ex *exercise.Exercise) *tierScreen {
	items := make([]components.MenuItem, 0, len(exercise.AllTiers))
	for _, t := range exercise.AllTiers {
		c := ex.Tier(t)
		item := components.MenuItem{
			Label:  fmt.Sprintf("%s (%s)", t.Label(), t),
			Detail: fmt.Sprintf("빈칸 %d개", len(c.Answers)),
		}
		if len(c.Answers) == 0 {
			item.Disabled = true
		} else {
			tier := t
			item.Action = func() tea.Cmd {
				d, err := NewDrill(ex, tier)
				if err != nil {
					return nil
				}
				return push(newDrillScreen(d, ex.KoreanTranslation))
			}
		}
		items = append(items, item)
	}
	return &tierScreen{ex: ex, menu: components.NewMenu(items)}
}

func (s *tierScreen) Init() tea.Cmd { return nil }

func (s *tierScreen) Title() string { return "난이도 선택" }

func (s *tierScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "시작"},
		{Key: "q", Description: "종료"},
	}
}

func (s *tierScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return s, tea.Quit
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *tierScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("갭필 연습"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("연습할 난이도를 선택하세요"))
	b.WriteString("\n\n")

	if allDisabled(s.menu) {
		b.WriteString(theme.Hint.Render("  연습할 수 있는 빈칸이 없습니다."))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.menu.View()))
	return b.String()
}

func allDisabled(m components.Menu) bool {
	for _, item := range m.Items {
		if !item.Disabled {
			return false
		}
	}
	return true
}
