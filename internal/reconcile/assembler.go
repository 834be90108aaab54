package reconcile

import (
	"sort"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// Assemble sorts the deduplicated sequence into final page order (stable, so
// same-page entries keep their appearance order), applies the continuity rule one
// last time after the sort may have reordered levels, and converts to the
// public output type. An empty sequence is an error: callers must treat "no
// structure found" as a failure, not a silent success.
func (c Config) Assemble(entries []toc.ResolvedTitle) ([]toc.OutlineEntry, error) {
	if len(entries) == 0 {
		return nil, &ReconciliationError{Reason: "no outline entries after filtering"}
	}

	sorted := make([]toc.ResolvedTitle, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Page < sorted[j].Page
	})

	sorted = c.ensureContinuity(sorted)

	out := make([]toc.OutlineEntry, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, toc.OutlineEntry{
			Title: e.Text,
			Level: e.Level,
			Page:  e.Page,
		})
	}
	return out, nil
}
