package domain

import (
	"errors"
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// CacheSchemaVersion is bumped whenever the persisted layout changes.
const CacheSchemaVersion = 1

// Fingerprint captures the state of a workbook a graph was built from.
type Fingerprint struct {
	ModTime      time.Time `json:"mod_time"`
	FormulaHash  string    `json:"formula_hash"`
	FormulaCount int       `json:"formula_count"`
}

// StaleReason explains why a cached graph no longer matches a workbook.
type StaleReason string

const (
	// StaleNone means the fingerprints match.
	StaleNone StaleReason = ""
	// StaleModified means the workbook file was modified.
	StaleModified StaleReason = "modified"
	// StaleFormulas means the formula content changed.
	StaleFormulas StaleReason = "formulas_changed"
	// StaleSchema means the entry was written by an incompatible version.
	StaleSchema StaleReason = "schema_changed"
)

// Compare returns why f (the cached fingerprint) differs from live.
func (f Fingerprint) Compare(live Fingerprint) StaleReason {
	if !f.ModTime.Equal(live.ModTime) {
		return StaleModified
	}
	if f.FormulaHash != live.FormulaHash || f.FormulaCount != live.FormulaCount {
		return StaleFormulas
	}
	return StaleNone
}

// NodeRecord is the persisted form of a FormulaNode.
type NodeRecord struct {
	Cell       string    `json:"cell"`
	Formula    string    `json:"formula"`
	Value      CellValue `json:"value"`
	Precedents []string  `json:"precedents,omitempty"`
	Unparsed   int       `json:"unparsed,omitempty"`
}

// DependentsRecord is the persisted form of one dependents index entry.
type DependentsRecord struct {
	Cell       string   `json:"cell"`
	Dependents []string `json:"dependents"`
}

// CacheEntry is a persisted graph plus the metadata needed to validate it.
type CacheEntry struct {
	Version        int                `json:"version"`
	Identity       string             `json:"identity"`
	Name           string             `json:"name"`
	Fingerprint    Fingerprint        `json:"fingerprint"`
	BuiltAt        time.Time          `json:"built_at"`
	BuildID        string             `json:"build_id"`
	NodeCount      int                `json:"node_count"`
	EdgeCount      int                `json:"edge_count"`
	SkippedBatches int                `json:"skipped_batches"`
	Nodes          []NodeRecord       `json:"nodes"`
	Dependents     []DependentsRecord `json:"dependents"`
}

// NewCacheEntry serializes a sealed graph.
func NewCacheEntry(identity, name string, g *DependencyGraph, fp Fingerprint, report *BuildReport) (*CacheEntry, error) {
	if !g.Sealed() {
		return nil, With(ErrGraphNotSealed, "workbook", identity)
	}

	entry := &CacheEntry{
		Version:     CacheSchemaVersion,
		Identity:    identity,
		Name:        name,
		Fingerprint: fp,
		BuiltAt:     time.Now().UTC(),
		NodeCount:   g.NodeCount(),
		EdgeCount:   g.EdgeCount(),
		Nodes:       make([]NodeRecord, 0, g.NodeCount()),
	}
	if report != nil {
		entry.BuildID = report.BuildID
		entry.SkippedBatches = len(report.SkippedBatches)
	}

	for n := range g.Nodes() {
		entry.Nodes = append(entry.Nodes, NodeRecord{
			Cell:       n.Reference.String(),
			Formula:    n.Formula,
			Value:      n.Value,
			Precedents: refStrings(n.Precedents),
			Unparsed:   n.Unparsed,
		})
	}
	for ref, deps := range g.DependentsIndex() {
		entry.Dependents = append(entry.Dependents, DependentsRecord{
			Cell:       ref.String(),
			Dependents: refStrings(deps),
		})
	}
	return entry, nil
}

// Graph reconstructs the sealed graph and verifies the stored dependents
// index against the one rebuilt from the precedents.
func (e *CacheEntry) Graph() (*DependencyGraph, error) {
	g := NewDependencyGraph()
	for _, rec := range e.Nodes {
		ref, err := ParseCellReference(rec.Cell, "")
		if err != nil {
			return nil, errors.Join(ErrCacheCorrupt, err)
		}
		precedents := make([]CellReference, 0, len(rec.Precedents))
		for _, p := range rec.Precedents {
			pr, err := ParseCellReference(p, "")
			if err != nil {
				return nil, errors.Join(ErrCacheCorrupt, err)
			}
			precedents = append(precedents, pr)
		}
		if err := g.AddNode(FormulaNode{
			Reference:  ref,
			Formula:    rec.Formula,
			Value:      rec.Value,
			Precedents: precedents,
			Unparsed:   rec.Unparsed,
		}); err != nil {
			return nil, errors.Join(ErrCacheCorrupt, err)
		}
	}
	g.Seal()

	stored := make(map[CellKey][]string, len(e.Dependents))
	for _, rec := range e.Dependents {
		ref, err := ParseCellReference(rec.Cell, "")
		if err != nil {
			return nil, errors.Join(ErrCacheCorrupt, err)
		}
		stored[ref.Key()] = rec.Dependents
	}
	if len(stored) != len(g.dependents) {
		return nil, With(ErrCacheCorrupt, "workbook", e.Identity)
	}
	for ref, deps := range g.DependentsIndex() {
		if !slices.Equal(stored[ref.Key()], refStrings(deps)) {
			return nil, zerr.With(With(ErrCacheCorrupt, "workbook", e.Identity), "cell", ref.String())
		}
	}
	return g, nil
}

func refStrings(refs []CellReference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.String()
	}
	return out
}
