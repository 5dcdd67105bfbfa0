package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/core/domain"
)

func refs(ss ...string) []domain.CellReference {
	out := make([]domain.CellReference, len(ss))
	for i, s := range ss {
		out[i] = domain.MustCellReference(s)
	}
	return out
}

func node(cell, formula string, precedents ...string) domain.FormulaNode {
	return domain.FormulaNode{
		Reference:  domain.MustCellReference(cell),
		Formula:    formula,
		Precedents: refs(precedents...),
	}
}

// scenarioGraph is Sheet1!B1 = A1*2, Sheet1!C1 = B1+Sheet2!D1.
func scenarioGraph(t *testing.T) *domain.DependencyGraph {
	t.Helper()
	g := domain.NewDependencyGraph()
	require.NoError(t, g.AddNode(node("Sheet1!B1", "A1*2", "Sheet1!A1")))
	require.NoError(t, g.AddNode(node("Sheet1!C1", "B1+Sheet2!D1", "Sheet1!B1", "Sheet2!D1")))
	g.Seal()
	return g
}

func TestDependencyGraph_InverseIndex(t *testing.T) {
	g := domain.NewDependencyGraph()
	require.NoError(t, g.AddNode(node("S!A1", "B1+C1", "S!B1", "S!C1")))
	require.NoError(t, g.AddNode(node("S!B1", "C1*2", "S!C1")))
	require.NoError(t, g.AddNode(node("S!D1", "SUM(A1:B1)", "S!A1", "S!B1")))
	require.NoError(t, g.AddNode(node("T!A1", "S!D1", "S!D1")))
	g.Seal()

	for n := range g.Nodes() {
		for _, p := range n.Precedents {
			assert.Contains(t, g.Dependents(p), n.Reference, "missing inverse of %s -> %s", n.Reference, p)
		}
	}

	edges := 0
	for _, deps := range g.DependentsIndex() {
		edges += len(deps)
	}
	assert.Equal(t, g.EdgeCount(), edges)
	assert.Equal(t, 6, g.EdgeCount())
	assert.Equal(t, refs("S!A1", "S!B1"), g.Dependents(domain.MustCellReference("s!c1")))
}

func TestDependencyGraph_AddNode(t *testing.T) {
	t.Run("deduplicates and orders precedents", func(t *testing.T) {
		g := domain.NewDependencyGraph()
		require.NoError(t, g.AddNode(node("S!A1", "B2+A2+b2", "S!B2", "S!A2", "s!B2")))

		n, ok := g.Node(domain.MustCellReference("S!A1"))
		require.True(t, ok)
		assert.Equal(t, refs("S!A2", "S!B2"), n.Precedents)
		assert.False(t, n.SelfReferential)
	})

	t.Run("flags self reference and keeps the edge", func(t *testing.T) {
		g := domain.NewDependencyGraph()
		require.NoError(t, g.AddNode(node("S!A1", "A1+1", "S!A1")))

		n, _ := g.Node(domain.MustCellReference("S!A1"))
		assert.True(t, n.SelfReferential)
		assert.Equal(t, refs("S!A1"), n.Precedents)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		g := domain.NewDependencyGraph()
		require.NoError(t, g.AddNode(node("S!A1", "1")))
		err := g.AddNode(node("s!a1", "2"))
		assert.ErrorIs(t, err, domain.ErrDuplicateNode)
	})

	t.Run("rejects inserts after sealing", func(t *testing.T) {
		g := domain.NewDependencyGraph()
		g.Seal()
		err := g.AddNode(node("S!A1", "1"))
		assert.ErrorIs(t, err, domain.ErrGraphSealed)
	})

	t.Run("zero references is a leaf", func(t *testing.T) {
		g := domain.NewDependencyGraph()
		require.NoError(t, g.AddNode(node("S!A1", "NOW()")))
		n, _ := g.Node(domain.MustCellReference("S!A1"))
		assert.True(t, n.IsLeaf())
		assert.Empty(t, n.Precedents)
	})
}

func TestDependencyGraph_Contains(t *testing.T) {
	g := scenarioGraph(t)

	assert.True(t, g.Contains(domain.MustCellReference("Sheet1!C1")), "formula node")
	assert.True(t, g.Contains(domain.MustCellReference("sheet1!a1")), "referenced constant")
	assert.True(t, g.Contains(domain.MustCellReference("Sheet2!D1")), "cross-sheet constant")
	assert.False(t, g.Contains(domain.MustCellReference("Sheet1!Z99")))

	assert.Equal(t, "Sheet1!A1", g.Resolve(domain.MustCellReference("SHEET1!a1")).String())
}

func TestDependencyGraph_Cycles(t *testing.T) {
	g := domain.NewDependencyGraph()
	require.NoError(t, g.AddNode(node("S!A1", "B1", "S!B1")))
	require.NoError(t, g.AddNode(node("S!B1", "A1", "S!A1")))
	require.NoError(t, g.AddNode(node("S!C1", "C1", "S!C1")))
	require.NoError(t, g.AddNode(node("S!D1", "A1", "S!A1")))
	g.Seal()

	cycles := g.Cycles()
	require.Len(t, cycles, 2)
	assert.Equal(t, refs("S!A1", "S!B1", "S!A1"), cycles[0])
	assert.Equal(t, refs("S!C1", "S!C1"), cycles[1])
}

func TestDependencyGraph_NodesOrder(t *testing.T) {
	g := scenarioGraph(t)

	var got []string
	for n := range g.Nodes() {
		got = append(got, n.Reference.String())
	}
	assert.Equal(t, []string{"Sheet1!B1", "Sheet1!C1"}, got)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())
}
