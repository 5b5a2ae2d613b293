package practice

import (
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gapfill/internal/exercise"
	"github.com/abhisek/gapfill/internal/ui/layout"
)

// Model is the root Bubble Tea model.
type Model struct {
	screens *stack
	width   int
	height  int
}

// New returns a model starting at tier selection for ex.
func New(ex *exercise.Exercise) Model {
	return Model{screens: &stack{screens: []Screen{newTierScreen(ex)}}}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, m.screens.update(msg)
}

// status is the running score of the active drill, if any.
func (m Model) status() string {
	if d, ok := m.screens.active().(*drillScreen); ok {
		correct, answered := d.drill.Score()
		return fmt.Sprintf("✓ %d/%d", correct, answered)
	}
	return ""
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.screens.active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)
	footer := layout.RenderFooter(append(active.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "종료"}), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := active.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the practice program on the given terminal streams. Nil
// streams use the process defaults.
func Run(ex *exercise.Exercise, in io.Reader, out io.Writer) error {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	if _, err := tea.NewProgram(New(ex), opts...).Run(); err != nil {
		return fmt.Errorf("run practice: %w", err)
	}
	return nil
}
