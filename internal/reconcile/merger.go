package reconcile

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// leadingNumberingRe strips the numbering prefix before similarity
// comparison, so "1.1 背景介绍" and "1.1背景介绍" compare on the words alone.
var leadingNumberingRe = regexp.MustCompile(`^[\d.．\s()（）、①②③④⑤⑥⑦⑧⑨⑩一二三四五六七八九十]+`)

// normalizeTitle lowercases and keeps only letters and digits.
func normalizeTitle(title string) string {
	title = leadingNumberingRe.ReplaceAllString(strings.TrimSpace(title), "")
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// titleSimilarity returns a 0–1 score between two normalized titles:
// exact match is 1.0, otherwise the fraction of positions with equal runes.
func titleSimilarity(a, b string) float64 {
	ra, rb := []rune(normalizeTitle(a)), []rune(normalizeTitle(b))
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	common := 0
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] == rb[i] {
			common++
		}
	}
	return float64(common) / float64(maxLen)
}

// isDuplicatePair reports whether two resolved titles represent the same
// logical heading: similar text and pages within the seam tolerance.
func (c Config) isDuplicatePair(a, b toc.ResolvedTitle) bool {
	delta := a.Page - b.Page
	if delta < 0 {
		delta = -delta
	}
	if delta > c.PageTolerance {
		return false
	}
	return titleSimilarity(a.Text, b.Text) > c.SimilarityThreshold
}

// chooseRepresentative picks the survivor of a duplicate pair. The tie-break
// order is a contract: higher classification confidence, then longer (more
// complete) text, then the earlier chunk's entry.
func chooseRepresentative(a, b toc.ResolvedTitle) toc.ResolvedTitle {
	if a.Confidence != b.Confidence {
		if a.Confidence > b.Confidence {
			return a
		}
		return b
	}
	if len(a.Text) != len(b.Text) {
		if len(a.Text) > len(b.Text) {
			return a
		}
		return b
	}
	if b.ChunkID < a.ChunkID {
		return b
	}
	return a
}

// Merge concatenates per-chunk resolved sequences in chunk order, collapses
// near-duplicate entries introduced by chunk overlap, and re-runs the
// level-continuity rule across chunk boundaries so a later chunk's first
// entries are evaluated against the last open level of the previous chunk.
func (c Config) Merge(chunks [][]toc.ResolvedTitle) []toc.ResolvedTitle {
	var merged []toc.ResolvedTitle
	for _, seq := range chunks {
		merged = append(merged, seq...)
	}
	if len(merged) == 0 {
		return nil
	}

	var unique []toc.ResolvedTitle
	for _, cur := range merged {
		dup := false
		for i, kept := range unique {
			if c.isDuplicatePair(cur, kept) {
				unique[i] = chooseRepresentative(kept, cur)
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, cur)
		}
	}

	return c.ensureContinuity(unique)
}

// ensureContinuity walks the deduplicated sequence with a fresh level stack,
// clamping any remaining upward jump greater than one. Deduplication can
// remove the entry whose level the next one depended on, so this pass is what
// restores the gap-free invariant document-wide.
func (c Config) ensureContinuity(entries []toc.ResolvedTitle) []toc.ResolvedTitle {
	out := make([]toc.ResolvedTitle, 0, len(entries))
	var stack levelStack
	for _, e := range entries {
		level := e.Level
		if len(stack) > 0 && level > stack.top()+1 {
			level = stack.top() + 1
		}
		if level < 1 {
			level = 1
		}
		stack = stack.update(level)
		e.Level = level
		out = append(out, e)
	}
	return out
}
