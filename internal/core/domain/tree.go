package domain

import (
	"iter"
	"strings"
)

// Direction selects which edges a trace follows.
type Direction string

const (
	// DirectionPrecedents follows the cells a formula reads (upstream).
	DirectionPrecedents Direction = "precedents"
	// DirectionDependents follows the cells that read a cell (downstream).
	DirectionDependents Direction = "dependents"
	// DirectionBoth produces both groups under the root.
	DirectionBoth Direction = "both"
)

// ParseDirection accepts the canonical names and the common aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "precedents", "upstream", "up", "inputs":
		return DirectionPrecedents, nil
	case "dependents", "downstream", "down", "outputs":
		return DirectionDependents, nil
	case "both", "all":
		return DirectionBoth, nil
	default:
		return "", With(ErrInvalidDirection, "direction", s)
	}
}

// Includes reports whether a trace in d expands edges of the single direction x.
func (d Direction) Includes(x Direction) bool {
	return d == x || d == DirectionBoth
}

// Mode selects the traversal engine.
type Mode string

const (
	// ModeFullGraph builds (or loads) the whole graph before answering.
	ModeFullGraph Mode = "full_graph"
	// ModeOnDemand reads only the cells a trace visits.
	ModeOnDemand Mode = "on_demand"
)

// ParseMode accepts the canonical names and hyphenated spellings.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full_graph", "full-graph", "full", "graph":
		return ModeFullGraph, nil
	case "on_demand", "on-demand", "ondemand", "lazy":
		return ModeOnDemand, nil
	default:
		return "", With(ErrInvalidMode, "mode", s)
	}
}

// DependencyNode is one entry of a trace result.
type DependencyNode struct {
	Cell        CellReference     `json:"cell"`
	Formula     string            `json:"formula,omitempty"`
	Value       CellValue         `json:"value"`
	Depth       int               `json:"depth"`
	Precedents  []*DependencyNode `json:"precedents,omitempty"`
	Dependents  []*DependencyNode `json:"dependents,omitempty"`
	Annotations []string          `json:"annotations,omitempty"`

	// CycleClosure marks a node that repeats an ancestor on the current path.
	CycleClosure bool `json:"cycle_closure,omitempty"`
	// Truncated marks a node at the depth limit that still has edges.
	Truncated bool `json:"truncated,omitempty"`
	// Partial marks a formula with references that could not be parsed.
	Partial bool `json:"partial,omitempty"`
}

// Children returns the child group for a single direction.
func (n *DependencyNode) Children(d Direction) []*DependencyNode {
	if d == DirectionDependents {
		return n.Dependents
	}
	return n.Precedents
}

// DependencyTree is the result of a trace request. Each request owns its tree.
type DependencyTree struct {
	Root      *DependencyNode `json:"root"`
	Direction Direction       `json:"direction"`
	MaxDepth  int             `json:"max_depth"`
	Mode      Mode            `json:"mode"`
}

// Walk yields every node in pre-order, the precedent group before the dependent group.
func (t *DependencyTree) Walk() iter.Seq[*DependencyNode] {
	return func(yield func(*DependencyNode) bool) {
		var visit func(n *DependencyNode) bool
		visit = func(n *DependencyNode) bool {
			if !yield(n) {
				return false
			}
			for _, c := range n.Precedents {
				if !visit(c) {
					return false
				}
			}
			for _, c := range n.Dependents {
				if !visit(c) {
					return false
				}
			}
			return true
		}
		if t.Root != nil {
			visit(t.Root)
		}
	}
}

// NodeCount returns the number of nodes in the tree, the root included.
func (t *DependencyTree) NodeCount() int {
	n := 0
	for range t.Walk() {
		n++
	}
	return n
}

// Depth returns the deepest level reached by any node.
func (t *DependencyTree) Depth() int {
	deepest := 0
	for n := range t.Walk() {
		deepest = max(deepest, n.Depth)
	}
	return deepest
}
