package reconcile

import (
	"testing"

	"github.com/dgallion1/pdfindex/internal/toc"
)

func resolved(text string, page, level, chunkID int, confidence float64) toc.ResolvedTitle {
	return toc.ResolvedTitle{Text: text, Page: page, Level: level, ChunkID: chunkID, Confidence: confidence}
}

func TestTitleSimilarity_IgnoresNumberingAndPunctuation(t *testing.T) {
	if s := titleSimilarity("1.1 背景介绍", "1.1背景介绍"); s != 1.0 {
		t.Errorf("expected similarity 1.0 across whitespace, got %v", s)
	}
	if s := titleSimilarity("(一) 基本原则", "基本原则"); s != 1.0 {
		t.Errorf("expected numbering prefix to be ignored, got %v", s)
	}
	if s := titleSimilarity("背景介绍", "研究目标"); s != 0 {
		t.Errorf("expected unrelated titles to score 0, got %v", s)
	}
}

func TestIsDuplicatePair_PageToleranceGates(t *testing.T) {
	cfg := DefaultConfig()
	a := resolved("1.1 背景介绍", 10, 2, 0, 1.0)
	b := resolved("1.1 背景介绍", 12, 2, 1, 1.0)
	if !cfg.isDuplicatePair(a, b) {
		t.Error("expected same title within page tolerance to be a duplicate pair")
	}

	b.Page = 13
	if cfg.isDuplicatePair(a, b) {
		t.Error("expected same title beyond page tolerance to not be a duplicate pair")
	}
}

func TestChooseRepresentative_TiebreakOrder(t *testing.T) {
	// Confidence wins first.
	a := resolved("背景", 2, 2, 1, 0.5)
	b := resolved("背景", 2, 2, 0, 1.0)
	if got := chooseRepresentative(a, b); got.Confidence != 1.0 {
		t.Error("expected higher confidence to win")
	}

	// Longer text wins on a confidence tie.
	a = resolved("1.1 背景", 2, 2, 1, 1.0)
	b = resolved("1.1 背景介绍", 2, 2, 0, 1.0)
	if got := chooseRepresentative(a, b); got.Text != "1.1 背景介绍" {
		t.Errorf("expected longer text to win, got %q", got.Text)
	}

	// Earlier chunk wins when all else ties.
	a = resolved("1.1 背景", 2, 2, 1, 1.0)
	b = resolved("1.1 背景", 2, 2, 0, 1.0)
	if got := chooseRepresentative(a, b); got.ChunkID != 0 {
		t.Errorf("expected earlier chunk to win, got chunk %d", got.ChunkID)
	}
}

func TestMerge_CollapsesSeamDuplicates(t *testing.T) {
	cfg := DefaultConfig()
	merged := cfg.Merge([][]toc.ResolvedTitle{
		{
			resolved("第一章 概述", 1, 1, 0, 1.0),
			resolved("1.1 背景介绍", 2, 2, 0, 1.0),
		},
		{
			resolved("1.1 背景介绍", 2, 2, 1, 1.0),
			resolved("1.2 研究目标", 5, 2, 1, 1.0),
		},
	})

	if len(merged) != 3 {
		t.Fatalf("expected 3 entries after seam dedup, got %d", len(merged))
	}
	if merged[1].ChunkID != 0 {
		t.Errorf("expected earlier chunk's duplicate to survive, got chunk %d", merged[1].ChunkID)
	}
}

func TestMerge_ContinuityAfterDedup(t *testing.T) {
	// Dedup can remove the parent a later entry's level depended on; the
	// continuity pass re-clamps the survivor sequence.
	cfg := DefaultConfig()
	merged := cfg.Merge([][]toc.ResolvedTitle{
		{
			resolved("第一章 概述", 1, 1, 0, 1.0),
			resolved("1.1.1 深层条目", 20, 3, 0, 1.0),
		},
	})

	if merged[1].Level != 2 {
		t.Errorf("expected orphaned level 3 clamped to 2, got %d", merged[1].Level)
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	if got := DefaultConfig().Merge(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
