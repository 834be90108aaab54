package toc

// PatternCategory is the numbering-scheme class a title string structurally matches.
type PatternCategory string

const (
	PatternChapter        PatternCategory = "chapter"         // 第一章, Chapter 1, Part 1
	PatternChineseNumeral PatternCategory = "chinese_numeral" // 一、 二、
	PatternArabic         PatternCategory = "arabic"          // 1. 2、
	PatternDecimal        PatternCategory = "decimal"         // 1.1
	PatternParenthetical  PatternCategory = "parenthetical"   // (1) (一)
	PatternCircled        PatternCategory = "circled"         // ① ②
	PatternDoubleDecimal  PatternCategory = "double_decimal"  // 1.1.1
	PatternLetterParen    PatternCategory = "letter_paren"    // A) a)
	PatternRoman          PatternCategory = "roman"           // ⅰ ⅱ
	PatternQuadDecimal    PatternCategory = "quad_decimal"    // 1.1.1.1
	PatternLetterDot      PatternCategory = "letter_dot"      // a. b.
	PatternNone           PatternCategory = "none"
)

// TitleCandidate is a raw title produced for one chunk, annotated by the
// classifier. LevelHint of 0 means no hint. Candidates are never mutated after
// classification; the corrector emits ResolvedTitles instead.
type TitleCandidate struct {
	Text       string
	Page       int
	LevelHint  int
	ChunkID    int
	Category   PatternCategory
	Confidence float64
}

// ResolvedTitle is a candidate with a finalized hierarchy level. Within one
// chunk's resolved sequence the level never increases by more than 1 between
// consecutive entries.
type ResolvedTitle struct {
	Text       string
	Page       int
	Level      int
	ChunkID    int
	Category   PatternCategory
	Confidence float64
}

// OutlineEntry is the public output unit. Level 1 is the topmost. Over a full
// outline, pages are non-decreasing and the level never jumps up by more
// than 1 relative to the preceding entry.
type OutlineEntry struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Page  int    `json:"page"`
}

// RawCandidate is the minimal input contract from a title-extraction
// collaborator: text, a 1-based page, and an optional level hint (0 = absent).
type RawCandidate struct {
	Text      string `json:"title"`
	Page      int    `json:"page"`
	LevelHint int    `json:"level,omitempty"`
}

// Chunk is one chunk's ordered raw candidates plus the chunk's index in the
// document. Chunks must be supplied in ascending index order.
type Chunk struct {
	Index      int
	Candidates []RawCandidate
}
