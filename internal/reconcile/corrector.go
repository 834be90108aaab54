package reconcile

import "github.com/dgallion1/pdfindex/internal/toc"

// levelStack tracks the currently open ancestor levels. It is carried as
// explicit state between resolution steps (and across chunk boundaries by the
// merger) rather than held on the engine, so per-document runs stay
// independent.
type levelStack []int

func (s levelStack) top() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// update pops levels at or below the new level and pushes it, so the stack
// always reads as the open ancestor chain.
func (s levelStack) update(level int) levelStack {
	for len(s) > 0 && s[len(s)-1] >= level {
		s = s[:len(s)-1]
	}
	return append(s, level)
}

// Resolve assigns a final level to each accepted candidate, in order. The
// stack parameter carries open levels from a previous chunk; pass nil for the
// first chunk. A hint that skips more than one level above the current top is
// clamped to top+1: no parent is synthesized, the gap is collapsed. Candidates
// without a hint inherit the level of the nearest preceding resolved entry.
func (c Config) Resolve(candidates []toc.TitleCandidate, stack levelStack) ([]toc.ResolvedTitle, levelStack) {
	resolved := make([]toc.ResolvedTitle, 0, len(candidates))

	for _, cand := range candidates {
		level := cand.LevelHint
		switch {
		case level <= 0:
			// No hint: sibling of the nearest preceding entry, or a new
			// top-level heading when nothing is open yet.
			level = stack.top()
			if level == 0 {
				level = 1
			}
		case len(stack) > 0 && level > stack.top()+1:
			level = stack.top() + 1
		}
		if level < 1 {
			level = 1
		}
		if c.MaxLevel > 0 && level > c.MaxLevel {
			level = c.MaxLevel
		}

		stack = stack.update(level)
		resolved = append(resolved, toc.ResolvedTitle{
			Text:       cand.Text,
			Page:       cand.Page,
			Level:      level,
			ChunkID:    cand.ChunkID,
			Category:   cand.Category,
			Confidence: cand.Confidence,
		})
	}

	return resolved, stack
}
