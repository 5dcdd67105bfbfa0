// Package domain contains the core domain models for formula dependency analysis.
package domain

import (
	"iter"
	"maps"
	"slices"
)

// FormulaNode is a cell that holds a formula.
type FormulaNode struct {
	Reference  CellReference
	Formula    string
	Value      CellValue
	Precedents []CellReference

	// SelfReferential is set when the formula reads its own cell.
	SelfReferential bool
	// Unparsed counts reference tokens the parser could not resolve.
	Unparsed int
}

// IsLeaf reports whether the node reads no other cells.
func (n *FormulaNode) IsLeaf() bool {
	return len(n.Precedents) == 0
}

// DependencyGraph holds every formula node of one workbook snapshot.
// It is populated with AddNode and then sealed; a sealed graph is read-only
// and safe for concurrent readers.
type DependencyGraph struct {
	nodes      map[CellKey]*FormulaNode
	referenced map[CellKey]CellReference
	dependents map[CellKey][]CellReference
	edges      int
	sealed     bool
}

// NewDependencyGraph creates an empty, unsealed graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[CellKey]*FormulaNode),
	}
}

// AddNode inserts a formula node. Precedents are de-duplicated and ordered.
func (g *DependencyGraph) AddNode(node FormulaNode) error {
	if g.sealed {
		return With(ErrGraphSealed, "cell", node.Reference.String())
	}
	key := node.Reference.Key()
	if _, exists := g.nodes[key]; exists {
		return With(ErrDuplicateNode, "cell", node.Reference.String())
	}

	seen := make(map[CellKey]struct{}, len(node.Precedents))
	precedents := make([]CellReference, 0, len(node.Precedents))
	for _, p := range node.Precedents {
		pk := p.Key()
		if _, dup := seen[pk]; dup {
			continue
		}
		seen[pk] = struct{}{}
		if pk == key {
			node.SelfReferential = true
		}
		precedents = append(precedents, p)
	}
	slices.SortFunc(precedents, CellReference.Compare)
	node.Precedents = precedents

	g.nodes[key] = &node
	g.edges += len(precedents)
	return nil
}

// Seal builds the dependents index by inverting every precedent edge.
// It runs once; later calls are no-ops.
func (g *DependencyGraph) Seal() {
	if g.sealed {
		return
	}

	g.dependents = make(map[CellKey][]CellReference, len(g.nodes))
	g.referenced = make(map[CellKey]CellReference)
	for _, node := range g.nodes {
		for _, p := range node.Precedents {
			pk := p.Key()
			g.dependents[pk] = append(g.dependents[pk], node.Reference)
			if _, ok := g.nodes[pk]; !ok {
				g.referenced[pk] = p
			}
		}
	}
	for k := range g.dependents {
		slices.SortFunc(g.dependents[k], CellReference.Compare)
	}
	g.sealed = true
}

// Sealed reports whether the dependents index has been built.
func (g *DependencyGraph) Sealed() bool {
	return g.sealed
}

// Node returns the formula node at ref.
func (g *DependencyGraph) Node(ref CellReference) (*FormulaNode, bool) {
	n, ok := g.nodes[ref.Key()]
	return n, ok
}

// Dependents returns the cells whose formulas read ref. The graph must be sealed.
func (g *DependencyGraph) Dependents(ref CellReference) []CellReference {
	return g.dependents[ref.Key()]
}

// Contains reports whether ref is a formula node or is read by one.
func (g *DependencyGraph) Contains(ref CellReference) bool {
	key := ref.Key()
	if _, ok := g.nodes[key]; ok {
		return true
	}
	_, ok := g.dependents[key]
	return ok
}

// Resolve returns the canonical reference stored in the graph for ref,
// preserving the sheet spelling used by the workbook.
func (g *DependencyGraph) Resolve(ref CellReference) CellReference {
	key := ref.Key()
	if n, ok := g.nodes[key]; ok {
		return n.Reference
	}
	if r, ok := g.referenced[key]; ok {
		return r
	}
	return ref
}

// NodeCount returns the number of formula nodes.
func (g *DependencyGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of precedent edges.
func (g *DependencyGraph) EdgeCount() int {
	return g.edges
}

// Nodes yields the formula nodes in reference order.
func (g *DependencyGraph) Nodes() iter.Seq[*FormulaNode] {
	return func(yield func(*FormulaNode) bool) {
		sorted := slices.SortedFunc(maps.Values(g.nodes), func(a, b *FormulaNode) int {
			return a.Reference.Compare(b.Reference)
		})
		for _, n := range sorted {
			if !yield(n) {
				return
			}
		}
	}
}

// DependentsIndex yields every (cell, dependents) entry in reference order.
func (g *DependencyGraph) DependentsIndex() iter.Seq2[CellReference, []CellReference] {
	return func(yield func(CellReference, []CellReference) bool) {
		refs := make([]CellReference, 0, len(g.dependents))
		for k := range g.dependents {
			refs = append(refs, g.resolveKey(k))
		}
		slices.SortFunc(refs, CellReference.Compare)
		for _, r := range refs {
			if !yield(r, g.dependents[r.Key()]) {
				return
			}
		}
	}
}

func (g *DependencyGraph) resolveKey(k CellKey) CellReference {
	if n, ok := g.nodes[k]; ok {
		return n.Reference
	}
	return g.referenced[k]
}

// Cycles returns one representative path per circular reference found by a
// depth-first walk over precedent edges. Each path starts and ends on the
// same cell.
func (g *DependencyGraph) Cycles() [][]CellReference {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[CellKey]int, len(g.nodes))
	var path []CellReference
	var cycles [][]CellReference

	var visit func(n *FormulaNode)
	visit = func(n *FormulaNode) {
		key := n.Reference.Key()
		state[key] = visiting
		path = append(path, n.Reference)

		for _, p := range n.Precedents {
			pk := p.Key()
			switch state[pk] {
			case visiting:
				cycles = append(cycles, cyclePath(path, p))
			case unvisited:
				if next, ok := g.nodes[pk]; ok {
					visit(next)
				}
			}
		}

		state[key] = done
		path = path[:len(path)-1]
	}

	for n := range g.Nodes() {
		if state[n.Reference.Key()] == unvisited {
			visit(n)
		}
	}
	return cycles
}

func cyclePath(path []CellReference, closing CellReference) []CellReference {
	start := 0
	for i, r := range path {
		if r.Equal(closing) {
			start = i
			break
		}
	}
	cycle := slices.Clone(path[start:])
	return append(cycle, closing)
}
