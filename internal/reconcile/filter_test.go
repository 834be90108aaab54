package reconcile

import (
	"strings"
	"testing"

	"github.com/dgallion1/pdfindex/internal/toc"
)

func acceptedCandidate() toc.TitleCandidate {
	return toc.TitleCandidate{
		Text:       "1.1 研究现状",
		Page:       3,
		LevelHint:  2,
		Category:   toc.PatternDecimal,
		Confidence: 1.0,
	}
}

func TestIsTitleLike_StructuralTitlePasses(t *testing.T) {
	if !DefaultConfig().IsTitleLike(acceptedCandidate()) {
		t.Error("expected structural title to pass the filter")
	}
}

func TestIsTitleLike_LengthBounds(t *testing.T) {
	cfg := DefaultConfig()

	c := acceptedCandidate()
	c.Text = "短"
	if cfg.IsTitleLike(c) {
		t.Error("expected single-rune title to be rejected")
	}

	c.Text = strings.Repeat("长", cfg.MaxTitleRunes+1)
	if cfg.IsTitleLike(c) {
		t.Error("expected over-length title to be rejected")
	}
}

func TestIsTitleLike_Denylist(t *testing.T) {
	cfg := DefaultConfig()
	for _, text := range []string{
		"图 3 系统架构",
		"表 2 对比结果",
		"Figure 12 Overview",
		"Table 4 Results",
		"第 15 页",
		"Page 15 of 30",
		"2023年度报告摘要",
		"这是一个完整的句子。",
		"example.com/docs",
	} {
		c := acceptedCandidate()
		c.Text = text
		if cfg.IsTitleLike(c) {
			t.Errorf("%q: expected denylist rejection", text)
		}
	}
}

func TestIsTitleLike_PureNumbersAndDates(t *testing.T) {
	cfg := DefaultConfig()
	for _, text := range []string{"123", "2024-01-15", "12.5", "2024年1月"} {
		c := acceptedCandidate()
		c.Text = text
		c.Category = toc.PatternNone
		c.Confidence = 0.5
		if cfg.IsTitleLike(c) {
			t.Errorf("%q: expected numeric/date rejection", text)
		}
	}
}

func TestIsTitleLike_ExcessPunctuation(t *testing.T) {
	c := acceptedCandidate()
	c.Text = "首先，其次，然后，最后"
	if DefaultConfig().IsTitleLike(c) {
		t.Error("expected punctuation-heavy fragment to be rejected")
	}
}

func TestIsTitleLike_LowConfidencePatternless(t *testing.T) {
	c := acceptedCandidate()
	c.Text = "某些普通文字"
	c.Category = toc.PatternNone
	c.Confidence = 0.3
	if DefaultConfig().IsTitleLike(c) {
		t.Error("expected low-confidence patternless candidate to be rejected")
	}

	c.Confidence = 0.5
	if !DefaultConfig().IsTitleLike(c) {
		t.Error("expected threshold-confidence candidate to pass")
	}
}
