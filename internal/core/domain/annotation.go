package domain

import "time"

// Annotation is a free-text label attached to a range of cells.
type Annotation struct {
	Range       CellRange
	Label       string
	Description string
	CreatedAt   time.Time
	Metadata    map[string]string
}

// MatchKind describes how an annotation's range relates to a queried range.
type MatchKind uint8

const (
	// MatchNone means the ranges do not intersect.
	MatchNone MatchKind = iota
	// MatchExact means the ranges are identical.
	MatchExact
	// MatchSuperset means the annotation encloses the queried range.
	MatchSuperset
	// MatchSubset means the queried range encloses the annotation.
	MatchSubset
	// MatchPartial means the ranges overlap without either enclosing the other.
	MatchPartial
)

// String returns the match kind name.
func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchSuperset:
		return "superset"
	case MatchSubset:
		return "subset"
	case MatchPartial:
		return "partial"
	default:
		return "none"
	}
}

// Match classifies how the annotation relates to r.
func (a Annotation) Match(r CellRange) MatchKind {
	switch {
	case !a.Range.Overlaps(r):
		return MatchNone
	case a.Range == r || (a.Range.Encloses(r) && r.Encloses(a.Range)):
		return MatchExact
	case a.Range.Encloses(r):
		return MatchSuperset
	case r.Encloses(a.Range):
		return MatchSubset
	default:
		return MatchPartial
	}
}

// String renders the annotation as "'label' @ range".
func (a Annotation) String() string {
	s := "'" + a.Label + "' @ " + a.Range.String()
	if a.Description != "" {
		s += " - " + a.Description
	}
	return s
}
