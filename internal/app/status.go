package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/ui/output"
	"go.trai.ch/xlgraph/internal/ui/style"
)

// printStatus writes a cache status as aligned key/value lines.
func printStatus(w io.Writer, s *domain.CacheStatus) error {
	r := output.NewRenderer(w)
	key := r.NewStyle().Foreground(style.Slate).Width(17)
	good := r.NewStyle().Foreground(style.Green)
	warn := r.NewStyle().Foreground(style.Yellow)

	yesNo := func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	}

	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(key.Render(k) + v + "\n")
	}

	line("Workbook", s.Workbook)
	line("Backend", s.Backend)
	if !s.Enabled {
		line("Cache", warn.Render("disabled"))
	}
	line("Cached", yesNo(s.Cached))
	if s.Cached {
		line("Built at", s.BuiltAt.Local().Format(time.DateTime))
		if s.Stale {
			line("Stale", warn.Render(fmt.Sprintf("yes (%s)", s.StaleReason)))
		} else {
			line("Stale", good.Render("no"))
		}
		line("Nodes", strconv.Itoa(s.NodeCount))
		line("Edges", strconv.Itoa(s.EdgeCount))
		line("Formulas", strconv.Itoa(s.FormulaCount))
		if s.SkippedBatches > 0 {
			line("Skipped batches", warn.Render(strconv.Itoa(s.SkippedBatches)))
		}
	}
	line("Annotations", yesNo(s.HasAnnotations))

	_, err := io.WriteString(w, b.String())
	return err
}
