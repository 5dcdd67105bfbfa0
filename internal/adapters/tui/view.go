package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/xlgraph/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	var s strings.Builder

	title := titleStyle.Render("BUILD")
	if m.Err != nil {
		title = failureTitleStyle.Render("FAILED")
	}
	s.WriteString(title + " " + m.Workbook + "\n\n")

	nameWidth := 0
	for _, row := range m.Sheets {
		nameWidth = max(nameWidth, lipgloss.Width(row.Name))
	}

	for _, row := range m.Sheets {
		s.WriteString(m.renderSheetRow(row, nameWidth) + "\n")
	}
	if pending := m.SheetCount - len(m.Sheets); pending > 0 && !m.Done {
		s.WriteString(sheetPendingStyle.Render(fmt.Sprintf("%s %d more sheet(s)", style.Circle, pending)) + "\n")
	}

	s.WriteString("\n" + m.footer() + "\n")
	return s.String()
}

func (m *Model) renderSheetRow(row *SheetRow, nameWidth int) string {
	icon, st := style.Dot, sheetReadingStyle
	switch row.Status {
	case StatusDone:
		icon, st = style.Check, sheetDoneStyle
	case StatusSkipped:
		icon, st = style.Warning, sheetSkippedStyle
	case StatusPending:
		icon, st = style.Circle, sheetPendingStyle
	case StatusReading:
	}

	name := row.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(row.Name))
	line := fmt.Sprintf("%s %s %s %d/%d", icon, name, bar(row.RowsRead, row.RowsTotal, m.BarWidth), row.RowsRead, row.RowsTotal)
	if row.Skipped > 0 {
		line += fmt.Sprintf(" (%d skipped)", row.Skipped)
	}
	return st.Render(line)
}

func (m *Model) footer() string {
	switch {
	case m.Err != nil:
		return errorStyle.Render(style.Cross + " " + m.Err.Error())
	case m.Report != nil:
		return sheetDoneStyle.Render(fmt.Sprintf("%s %d nodes, %d edges from %d formulas",
			style.Check, m.Report.Nodes, m.Report.Edges, m.Report.FormulasProcessed))
	default:
		return mutedStyle.Render(fmt.Sprintf("%s %s %d formulas %s %d skipped %s q to cancel",
			m.Phase, style.Dot, m.Formulas, style.Dot, m.Skipped, style.Dot))
	}
}

// bar renders a fixed-width progress bar.
func bar(done, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := width
	if total > 0 {
		filled = min(width, done*width/total)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
