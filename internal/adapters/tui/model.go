package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/xlgraph/internal/core/domain"
)

// SheetStatus represents the read state of one sheet.
type SheetStatus string

const (
	// StatusPending indicates the sheet has not been read yet.
	StatusPending SheetStatus = "Pending"
	// StatusReading indicates batches of the sheet are being read.
	StatusReading SheetStatus = "Reading"
	// StatusDone indicates every batch of the sheet was read.
	StatusDone SheetStatus = "Done"
	// StatusSkipped indicates at least one batch was dropped.
	StatusSkipped SheetStatus = "Skipped"
)

// SheetRow is one line of the progress view.
type SheetRow struct {
	Name      string
	Status    SheetStatus
	RowsTotal int
	RowsRead  int
	Skipped   int
}

// MsgProgress carries one build progress event.
type MsgProgress struct {
	Progress domain.BuildProgress
}

// MsgComplete carries the build outcome and ends the program.
type MsgComplete struct {
	Report *domain.BuildReport
	Err    error
}

// Model represents the build progress state.
type Model struct {
	Workbook    string
	Phase       domain.ProgressPhase
	SheetCount  int
	Sheets      []*SheetRow
	SheetMap    map[string]*SheetRow
	Formulas    int
	Skipped     int
	Report      *domain.BuildReport
	Err         error
	Done        bool
	Interrupted bool
	Width       int
	BarWidth    int
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Interrupted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case MsgProgress:
		m.apply(msg.Progress)

	case MsgComplete:
		m.Report = msg.Report
		m.Err = msg.Err
		m.Done = true
		if msg.Err == nil {
			m.Phase = domain.PhaseComplete
			for _, row := range m.Sheets {
				if row.Status == StatusReading {
					row.Status = StatusDone
				}
			}
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) apply(p domain.BuildProgress) {
	m.Phase = p.Phase
	m.Formulas = p.Formulas
	m.Skipped = p.Skipped

	if p.Phase != domain.PhaseReading {
		if p.Phase >= domain.PhaseIndexing {
			m.finishReading()
		}
		return
	}

	m.SheetCount = p.SheetCount
	row, ok := m.SheetMap[p.Sheet]
	if !ok {
		m.finishReading()
		row = &SheetRow{Name: p.Sheet, Status: StatusReading}
		m.Sheets = append(m.Sheets, row)
		m.SheetMap[p.Sheet] = row
	}

	row.RowsTotal = p.RowsTotal
	row.RowsRead = max(row.RowsRead, p.Batch.Last)
	if p.Skipped > skippedBefore(m.Sheets, row) {
		row.Skipped = p.Skipped - skippedBefore(m.Sheets, row)
	}
}

// finishReading marks sheets still being read as finished.
func (m *Model) finishReading() {
	for _, row := range m.Sheets {
		if row.Status != StatusReading {
			continue
		}
		row.Status = StatusDone
		if row.Skipped > 0 {
			row.Status = StatusSkipped
		}
	}
}

// skippedBefore sums the skipped batches of the sheets read before row.
func skippedBefore(rows []*SheetRow, row *SheetRow) int {
	total := 0
	for _, r := range rows {
		if r == row {
			break
		}
		total += r.Skipped
	}
	return total
}
