package builder

import "time"

// WithClock replaces the build ID generator and clock for deterministic reports.
func (b *Builder) WithClock(newID func() string, now func() time.Time) *Builder {
	b.newID = newID
	b.now = now
	return b
}
