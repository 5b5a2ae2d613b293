// Package theme holds the colors and styles shared by the practice screens.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Calm study colors with one accent for blanks.
var (
	Primary   = lipgloss.Color("#4263EB") // Indigo, matches the rendered pages
	Secondary = lipgloss.Color("#12B886") // Teal
	Accent    = lipgloss.Color("#F59F00") // Amber
	Success   = lipgloss.Color("#40C057") // Green
	Error     = lipgloss.Color("#FA5252") // Red
	Text      = lipgloss.Color("#F8F9FA")
	TextDim   = lipgloss.Color("#868E96")
	BgCard    = lipgloss.Color("#212529")
	Border    = lipgloss.Color("#495057")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Word bank
var (
	// Blank highlights the blank being answered.
	Blank = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		Underline(true)

	BankWord = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(Secondary).
			Padding(0, 1)

	BankWordUsed = lipgloss.NewStyle().
			Foreground(TextDim).
			Strikethrough(true).
			Padding(0, 1)
)
