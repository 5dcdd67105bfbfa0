// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Gray   = lipgloss.Color("#98A2B3")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check    = "✓"
	Cross    = "✗"
	Warning  = "!"
	Tilde    = "~"
	Dot      = "●"
	Circle   = "○"
	Cycle    = "↺"
	Ellipsis = "…"
)

// Tree connectors used when rendering dependency trees.
const (
	Branch = "├── "
	Last   = "└── "
	Pipe   = "│   "
	Space  = "    "
)

// Shared text styles.
var (
	Title  = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Muted  = lipgloss.NewStyle().Foreground(Slate)
	Accent = lipgloss.NewStyle().Foreground(Yellow)
	Danger = lipgloss.NewStyle().Foreground(Red)
)
