package domain

import "time"

// BatchFailure records a row batch that was skipped after exhausting retries.
type BatchFailure struct {
	Sheet    string `json:"sheet"`
	FirstRow int    `json:"first_row"`
	LastRow  int    `json:"last_row"`
	Attempts int    `json:"attempts"`
	Cause    string `json:"cause"`
}

// ScanStats summarizes a batched pass over a workbook.
type ScanStats struct {
	Sheets         int            `json:"sheets"`
	BatchesRead    int            `json:"batches_read"`
	CellsRead      int            `json:"cells_read"`
	SkippedBatches []BatchFailure `json:"skipped_batches,omitempty"`
}

// BuildReport is the structured summary of one full graph build.
type BuildReport struct {
	ScanStats

	BuildID            string        `json:"build_id"`
	Workbook           string        `json:"workbook"`
	FormulasProcessed  int           `json:"formulas_processed"`
	Nodes              int           `json:"nodes"`
	Edges              int           `json:"edges"`
	UnparsedReferences int           `json:"unparsed_references"`
	Cycles             int           `json:"cycles"`
	Duration           time.Duration `json:"duration"`
	Fingerprint        Fingerprint   `json:"fingerprint"`
}

// ProgressPhase is the stage a build is in.
type ProgressPhase uint8

const (
	// PhaseListing is enumerating sheets.
	PhaseListing ProgressPhase = iota
	// PhaseReading is reading and parsing row batches.
	PhaseReading
	// PhaseIndexing is building the dependents index.
	PhaseIndexing
	// PhaseComplete is emitted once after a successful build.
	PhaseComplete
)

// String returns the phase name.
func (p ProgressPhase) String() string {
	switch p {
	case PhaseListing:
		return "listing"
	case PhaseReading:
		return "reading"
	case PhaseIndexing:
		return "indexing"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// BuildProgress is a snapshot of build progress.
type BuildProgress struct {
	Phase      ProgressPhase
	Sheet      string
	SheetIndex int
	SheetCount int
	Batch      RowRange
	RowsTotal  int
	Formulas   int
	Skipped    int
}

// ProgressFunc receives build progress. It is called from the build goroutine.
type ProgressFunc func(BuildProgress)

// CacheStatus is the answer to a cache status query.
type CacheStatus struct {
	Workbook       string      `json:"workbook"`
	Backend        string      `json:"backend"`
	Enabled        bool        `json:"enabled"`
	Cached         bool        `json:"cached"`
	Stale          bool        `json:"stale"`
	StaleReason    StaleReason `json:"stale_reason,omitempty"`
	BuiltAt        time.Time   `json:"built_at,omitzero"`
	NodeCount      int         `json:"node_count"`
	EdgeCount      int         `json:"edge_count"`
	FormulaCount   int         `json:"formula_count"`
	SkippedBatches int         `json:"skipped_batches"`
	HasAnnotations bool        `json:"has_annotations"`
}
