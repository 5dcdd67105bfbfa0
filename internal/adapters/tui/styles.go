package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/xlgraph/internal/ui/style"
)

var (
	sheetPendingStyle = lipgloss.NewStyle().
				Foreground(style.Slate)

	sheetReadingStyle = lipgloss.NewStyle().
				Foreground(style.Iris).
				Bold(true)

	sheetDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	sheetSkippedStyle = lipgloss.NewStyle().
				Foreground(style.Yellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.White)
)
