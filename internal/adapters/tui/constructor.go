// Package tui renders build progress as an interactive terminal view.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/xlgraph/internal/ui/output"
)

const defaultBarWidth = 24

// NewModel creates a progress model for the named workbook.
func NewModel(w io.Writer, workbook string) *Model {
	if w == nil {
		w = os.Stderr
	}

	lipgloss.SetColorProfile(output.New(w).Profile)

	return &Model{
		Workbook: workbook,
		SheetMap: make(map[string]*SheetRow),
		BarWidth: defaultBarWidth,
	}
}
