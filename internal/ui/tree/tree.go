// Package tree renders dependency trees for the terminal and as JSON.
package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/ui/output"
	"go.trai.ch/xlgraph/internal/ui/style"
)

const (
	precedentsHeading = "Precedents (inputs)"
	dependentsHeading = "Dependents (outputs)"

	maxFormulaWidth = 80
)

type styles struct {
	cell    lipgloss.Style
	root    lipgloss.Style
	formula lipgloss.Style
	value   lipgloss.Style
	heading lipgloss.Style
	marker  lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		cell:    r.NewStyle().Foreground(style.Iris),
		root:    r.NewStyle().Foreground(style.Iris).Bold(true),
		formula: r.NewStyle().Foreground(style.Slate),
		value:   r.NewStyle().Foreground(style.Green),
		heading: r.NewStyle().Bold(true),
		marker:  r.NewStyle().Foreground(style.Yellow),
		label:   r.NewStyle().Foreground(style.Gray).Italic(true),
		muted:   r.NewStyle().Foreground(style.Slate).Faint(true),
	}
}

// Render writes t as an indented tree with box-drawing connectors, followed
// by a summary line.
func Render(w io.Writer, t *domain.DependencyTree) error {
	s := newStyles(output.NewRenderer(w))

	var b strings.Builder
	if t == nil || t.Root == nil {
		b.WriteString(s.marker.Render("No dependencies found") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(s.nodeLine(t.Root, true) + "\n")

	type group struct {
		heading  string
		children []*domain.DependencyNode
	}
	var groups []group
	if len(t.Root.Precedents) > 0 {
		groups = append(groups, group{precedentsHeading, t.Root.Precedents})
	}
	if len(t.Root.Dependents) > 0 {
		groups = append(groups, group{dependentsHeading, t.Root.Dependents})
	}

	for i, g := range groups {
		last := i == len(groups)-1
		b.WriteString(connector(last) + s.heading.Render(g.heading) + "\n")
		s.writeChildren(&b, g.children, indent(last))
	}

	b.WriteString("\n" + s.muted.Render(fmt.Sprintf("Total nodes: %d, Max depth: %d", t.NodeCount(), t.Depth())) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes t as indented JSON.
func RenderJSON(w io.Writer, t *domain.DependencyTree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func (s styles) writeChildren(b *strings.Builder, children []*domain.DependencyNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		b.WriteString(prefix + connector(last) + s.nodeLine(child, false) + "\n")
		s.writeChildren(b, childrenOf(child), prefix+indent(last))
	}
}

func (s styles) nodeLine(n *domain.DependencyNode, root bool) string {
	cell := s.cell
	if root {
		cell = s.root
	}
	line := cell.Render(n.Cell.String())

	switch {
	case n.CycleClosure:
		return line + " " + s.marker.Render(style.Cycle+" circular")
	case n.Formula != "":
		line += " = " + s.formula.Render(shorten(n.Formula))
		if !n.Value.IsEmpty() {
			line += " " + s.value.Render("("+n.Value.String()+")")
		}
	case !n.Value.IsEmpty():
		line += " = " + s.value.Render(n.Value.String())
	}

	if n.Partial {
		line += " " + s.marker.Render("(partial)")
	}
	if n.Truncated {
		line += " " + s.muted.Render(style.Ellipsis)
	}
	if len(n.Annotations) > 0 {
		line += " " + s.label.Render("["+strings.Join(n.Annotations, ", ")+"]")
	}
	return line
}

// childrenOf returns the single child group of a non-root node.
func childrenOf(n *domain.DependencyNode) []*domain.DependencyNode {
	if len(n.Precedents) > 0 {
		return n.Precedents
	}
	return n.Dependents
}

func connector(last bool) string {
	if last {
		return style.Last
	}
	return style.Branch
}

func indent(last bool) string {
	if last {
		return style.Space
	}
	return style.Pipe
}

func shorten(formula string) string {
	r := []rune(formula)
	if len(r) <= maxFormulaWidth {
		return formula
	}
	return string(r[:maxFormulaWidth]) + "..."
}
