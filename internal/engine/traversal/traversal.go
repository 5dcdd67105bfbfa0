// Package traversal walks a sealed dependency graph into bounded trees.
package traversal

import "go.trai.ch/xlgraph/internal/core/domain"

// Trace walks g from start in the given direction, at most maxDepth levels
// deep. For DirectionBoth the root carries one independently bounded group
// per direction. The graph must be sealed.
func Trace(g *domain.DependencyGraph, start domain.CellReference, direction domain.Direction, maxDepth int) (*domain.DependencyTree, error) {
	if maxDepth < 0 {
		return nil, domain.With(domain.ErrInvalidDepth, "depth", maxDepth)
	}
	if !g.Contains(start) {
		return nil, domain.With(domain.ErrNodeNotFound, "cell", start.String())
	}

	w := walker{graph: g, maxDepth: maxDepth}
	root := w.describe(start, 0)

	for _, d := range []domain.Direction{domain.DirectionPrecedents, domain.DirectionDependents} {
		if !direction.Includes(d) {
			continue
		}
		children, truncated := w.expand(start, d, 0, map[domain.CellKey]struct{}{})
		root.Truncated = root.Truncated || truncated
		if d == domain.DirectionPrecedents {
			root.Precedents = children
		} else {
			root.Dependents = children
		}
	}

	return &domain.DependencyTree{
		Root:      root,
		Direction: direction,
		MaxDepth:  maxDepth,
		Mode:      domain.ModeFullGraph,
	}, nil
}

type walker struct {
	graph    *domain.DependencyGraph
	maxDepth int
}

// describe returns the tree node for ref without children.
func (w walker) describe(ref domain.CellReference, depth int) *domain.DependencyNode {
	n := &domain.DependencyNode{Cell: w.graph.Resolve(ref), Depth: depth}
	if fn, ok := w.graph.Node(ref); ok {
		n.Formula = fn.Formula
		n.Value = fn.Value
		n.Partial = fn.Unparsed > 0
	}
	return n
}

func (w walker) edges(ref domain.CellReference, d domain.Direction) []domain.CellReference {
	if d == domain.DirectionDependents {
		return w.graph.Dependents(ref)
	}
	if fn, ok := w.graph.Node(ref); ok {
		return fn.Precedents
	}
	return nil
}

// expand returns the children of ref at depth. When depth is the limit no
// children are produced and truncated reports whether edges were left out.
// path holds the ancestors of ref on the current branch.
func (w walker) expand(
	ref domain.CellReference,
	d domain.Direction,
	depth int,
	path map[domain.CellKey]struct{},
) (children []*domain.DependencyNode, truncated bool) {
	edges := w.edges(ref, d)
	if len(edges) == 0 {
		return nil, false
	}
	if depth >= w.maxDepth {
		return nil, true
	}

	key := ref.Key()
	path[key] = struct{}{}
	defer delete(path, key)

	children = make([]*domain.DependencyNode, 0, len(edges))
	for _, next := range edges {
		child := w.describe(next, depth+1)
		if _, onPath := path[next.Key()]; onPath {
			child.CycleClosure = true
			children = append(children, child)
			continue
		}

		grand, cut := w.expand(next, d, depth+1, path)
		child.Truncated = cut
		if d == domain.DirectionDependents {
			child.Dependents = grand
		} else {
			child.Precedents = grand
		}
		children = append(children, child)
	}
	return children, false
}
