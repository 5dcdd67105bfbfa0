package tui_test

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/adapters/tui"
	"go.trai.ch/xlgraph/internal/core/domain"
)

func reading(sheet string, index, first, last, total, formulas, skipped int) tui.MsgProgress {
	return tui.MsgProgress{Progress: domain.BuildProgress{
		Phase:      domain.PhaseReading,
		Sheet:      sheet,
		SheetIndex: index,
		SheetCount: 2,
		Batch:      domain.RowRange{First: first, Last: last},
		RowsTotal:  total,
		Formulas:   formulas,
		Skipped:    skipped,
	}}
}

func update(t *testing.T, m *tui.Model, msgs ...tea.Msg) (*tui.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(*tui.Model)
	}
	return m, cmd
}

func TestModel_TracksSheets(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel(nil, "Q3.xlsx")

	m, _ = update(t, m,
		tui.MsgProgress{Progress: domain.BuildProgress{Phase: domain.PhaseListing}},
		reading("Inputs", 1, 1, 1000, 1500, 10, 0),
		reading("Inputs", 1, 1001, 1500, 1500, 12, 1),
	)

	require.Len(t, m.Sheets, 1)
	inputs := m.Sheets[0]
	assert.Equal(t, tui.StatusReading, inputs.Status)
	assert.Equal(t, 1500, inputs.RowsRead)
	assert.Equal(t, 1, inputs.Skipped)

	m, _ = update(t, m, reading("Model", 2, 1, 40, 40, 30, 1))

	require.Len(t, m.Sheets, 2)
	assert.Equal(t, tui.StatusSkipped, inputs.Status, "leaving a sheet finishes it")
	assert.Equal(t, tui.StatusReading, m.Sheets[1].Status)
	assert.Equal(t, 0, m.Sheets[1].Skipped)
	assert.Equal(t, 30, m.Formulas)

	m, _ = update(t, m, tui.MsgProgress{Progress: domain.BuildProgress{Phase: domain.PhaseIndexing, Formulas: 30, Skipped: 1}})
	assert.Equal(t, tui.StatusDone, m.Sheets[1].Status)
	assert.Equal(t, domain.PhaseIndexing, m.Phase)
}

func TestModel_CompleteQuits(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel(nil, "Q3.xlsx")

	m, cmd := update(t, m,
		reading("Inputs", 1, 1, 10, 10, 3, 0),
		tui.MsgComplete{Report: &domain.BuildReport{Nodes: 3, Edges: 4, FormulasProcessed: 3}},
	)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Done)
	assert.False(t, m.Interrupted)
	assert.Equal(t, tui.StatusDone, m.Sheets[0].Status)
	assert.Contains(t, m.View(), "✓ 3 nodes, 4 edges from 3 formulas")
}

func TestModel_Failure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel(nil, "Q3.xlsx")

	m, _ = update(t, m, tui.MsgComplete{Err: errors.New("workbook connection lost")})

	view := m.View()
	assert.Contains(t, view, "FAILED")
	assert.Contains(t, view, "✗ workbook connection lost")
}

func TestModel_QuitKeyInterrupts(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		m := tui.NewModel(nil, "Q3.xlsx")
		m, cmd := update(t, m, key)

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.Interrupted)
	}
}

func TestModel_View_InProgress(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel(nil, "Q3.xlsx")
	m.BarWidth = 10

	m, _ = update(t, m, reading("Inputs", 1, 1, 500, 1000, 7, 0))

	view := m.View()
	assert.Contains(t, view, "BUILD Q3.xlsx")
	assert.Contains(t, view, "● Inputs █████░░░░░ 500/1000")
	assert.Contains(t, view, "○ 1 more sheet(s)")
	assert.Contains(t, view, "reading ● 7 formulas ● 0 skipped ● q to cancel")
}
