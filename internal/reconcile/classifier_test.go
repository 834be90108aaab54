package reconcile

import (
	"testing"

	"github.com/dgallion1/pdfindex/internal/toc"
)

func TestClassify_NumberingForms(t *testing.T) {
	cases := []struct {
		text     string
		category toc.PatternCategory
		level    int
	}{
		{"第一章 概述", toc.PatternChapter, 1},
		{"第二部分 实施方案", toc.PatternChapter, 1},
		{"Chapter 3 Evaluation", toc.PatternChapter, 1},
		{"一、研究背景", toc.PatternChineseNumeral, 1},
		{"1. 引言", toc.PatternArabic, 1},
		{"1.1 研究现状", toc.PatternDecimal, 2},
		{"(一) 基本原则", toc.PatternParenthetical, 2},
		{"① 第一步", toc.PatternCircled, 2},
		{"1.1.1 具体问题", toc.PatternDoubleDecimal, 3},
		{"A) 备选方案", toc.PatternLetterParen, 3},
		{"ⅰ 细则", toc.PatternRoman, 3},
		{"1.1.1.1 补充说明", toc.PatternQuadDecimal, 4},
		{"a. 具体步骤", toc.PatternLetterDot, 4},
	}

	for _, tc := range cases {
		category, level, confidence := Classify(tc.text)
		if category != tc.category {
			t.Errorf("%q: expected category %s, got %s", tc.text, tc.category, category)
		}
		if level != tc.level {
			t.Errorf("%q: expected level %d, got %d", tc.text, tc.level, level)
		}
		if confidence != 1.0 {
			t.Errorf("%q: expected confidence 1.0 for structural match, got %v", tc.text, confidence)
		}
	}
}

func TestClassify_DeepFormsWinOverShallow(t *testing.T) {
	// "1.1.1.1" must not be misread as the level-1 "1." form.
	_, level, _ := Classify("1.1.1.1 深层标题")
	if level != 4 {
		t.Errorf("expected level 4, got %d", level)
	}
	_, level, _ = Classify("1.1.1 深层标题")
	if level != 3 {
		t.Errorf("expected level 3, got %d", level)
	}
}

func TestClassify_TitleLikeWithoutNumbering(t *testing.T) {
	category, level, confidence := Classify("研究方法与设计")
	if category != toc.PatternNone {
		t.Errorf("expected category none, got %s", category)
	}
	if level != 0 {
		t.Errorf("expected no level hint, got %d", level)
	}
	if confidence != 0.5 {
		t.Errorf("expected heuristic confidence 0.5, got %v", confidence)
	}
}

func TestClassify_NoiseGetsZeroConfidence(t *testing.T) {
	for _, text := range []string{
		"",
		"本文在前人研究的基础上提出了一种新的方法，并通过实验验证了其有效性。",
		"-- -- ==",
	} {
		_, _, confidence := Classify(text)
		if confidence != 0 {
			t.Errorf("%q: expected confidence 0, got %v", text, confidence)
		}
	}
}

func TestClassifyCandidate_PatternOverridesExtractorHint(t *testing.T) {
	cand := ClassifyCandidate(toc.RawCandidate{Text: "1.1 研究现状", Page: 3, LevelHint: 1}, 0)
	if cand.LevelHint != 2 {
		t.Errorf("expected structural level 2 to win over extractor hint, got %d", cand.LevelHint)
	}
}

func TestClassifyCandidate_HintKeptForPatternless(t *testing.T) {
	cand := ClassifyCandidate(toc.RawCandidate{Text: "研究方法与设计", Page: 3, LevelHint: 2}, 1)
	if cand.LevelHint != 2 {
		t.Errorf("expected extractor hint 2 to survive, got %d", cand.LevelHint)
	}
	if cand.ChunkID != 1 {
		t.Errorf("expected chunk id 1, got %d", cand.ChunkID)
	}
}
