// Package reconcile turns per-chunk, possibly contradictory title candidates
// into one consistent, page-ordered document outline. Reconciliation is a
// pure, synchronous computation with no state outside the call, so separate
// documents can be reconciled concurrently.
package reconcile

import "github.com/dgallion1/pdfindex/internal/toc"

// Config holds the engine's tunable thresholds. Defaults match the behavior
// the system was calibrated with; every field may be overridden per run.
type Config struct {
	SimilarityThreshold float64 // normalized-text similarity above which titles are duplicates
	PageTolerance       int     // max page distance for a duplicate pair (chunk seam off-by-ones)
	MinTitleRunes       int     // shortest accepted title
	MaxTitleRunes       int     // longest accepted title (titles are not paragraphs)
	MinConfidence       float64 // floor for pattern-less candidates
	MaxLevel            int     // deepest emitted level (0 = unlimited)
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.8,
		PageTolerance:       2,
		MinTitleRunes:       3,
		MaxTitleRunes:       50,
		MinConfidence:       0.5,
		MaxLevel:            4,
	}
}

// Reconcile runs the full pipeline over ordered chunks: classify and filter
// each chunk's raw candidates, resolve levels with a stack that persists
// across chunk boundaries, merge and deduplicate, then assemble the final
// outline. It returns a *ReconciliationError when the chunks arrive out of
// order or when nothing survives filtering.
func (c Config) Reconcile(chunks []toc.Chunk) ([]toc.OutlineEntry, error) {
	lastIndex := -1
	for _, ch := range chunks {
		if ch.Index <= lastIndex {
			return nil, &ReconciliationError{Reason: "chunks not in ascending index order"}
		}
		lastIndex = ch.Index
	}

	resolved := make([][]toc.ResolvedTitle, 0, len(chunks))
	var stack levelStack
	for _, ch := range chunks {
		var accepted []toc.TitleCandidate
		for _, raw := range ch.Candidates {
			cand := ClassifyCandidate(raw, ch.Index)
			if cand.Confidence == 0 {
				continue
			}
			if !c.IsTitleLike(cand) {
				continue
			}
			accepted = append(accepted, cand)
		}
		var seq []toc.ResolvedTitle
		seq, stack = c.Resolve(accepted, stack)
		resolved = append(resolved, seq)
	}

	return c.Assemble(c.Merge(resolved))
}
