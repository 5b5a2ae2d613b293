package practice

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gapfill/internal/ui/layout"
)

// Screen is one page of the practice program.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	Title() string
	KeyHints() []layout.KeyHint
}

// pushMsg puts a screen on top of the stack.
type pushMsg struct{ screen Screen }

// popMsg returns to the previous screen.
type popMsg struct{}

// replaceMsg swaps the top screen, so finishing a drill lands on its
// summary and Esc from there goes back to tier selection.
type replaceMsg struct{ screen Screen }

func push(s Screen) tea.Cmd    { return func() tea.Msg { return pushMsg{s} } }
func pop() tea.Msg             { return popMsg{} }
func replace(s Screen) tea.Cmd { return func() tea.Msg { return replaceMsg{s} } }

// stack holds the screen history. The bottom screen is never popped.
type stack struct {
	screens []Screen
}

func (s *stack) active() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

func (s *stack) depth() int { return len(s.screens) }

func (s *stack) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pushMsg:
		s.screens = append(s.screens, msg.screen)
		return msg.screen.Init()
	case popMsg:
		if len(s.screens) > 1 {
			s.screens = s.screens[:len(s.screens)-1]
		}
		return nil
	case replaceMsg:
		if len(s.screens) == 0 {
			s.screens = append(s.screens, msg.screen)
		} else {
			s.screens[len(s.screens)-1] = msg.screen
		}
		return msg.screen.Init()
	}

	active := s.active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	s.screens[len(s.screens)-1] = updated
	return cmd
}
