// Package detector chooses how build progress is shown.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode represents the progress rendering mode.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI renders progress with the interactive bubbletea view.
	ModeTUI
	// ModeLinear prints one line per phase and sheet.
	ModeLinear
	// ModeQuiet suppresses progress output.
	ModeQuiet
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	case ModeQuiet:
		return "quiet"
	default:
		return "auto"
	}
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int on supported platforms
}

// DetectEnvironment returns the recommended mode for progress written to w.
// CI environments and non-terminal writers get linear output.
func DetectEnvironment(w io.Writer) OutputMode {
	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !IsTerminal(w) || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's --progress flag to auto-detection.
// userFlag should be one of: "auto", "tui", "linear", "ci", "quiet", "none", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci", "plain":
		return ModeLinear
	case "quiet", "none":
		return ModeQuiet
	default:
		return autoDetected
	}
}
