package reconcile

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// recognizer matches one numbering scheme at the start of a normalized title
// and maps it to a nominal hierarchy depth.
type recognizer struct {
	category toc.PatternCategory
	level    int
	re       *regexp.Regexp
}

// recognizers is tried in order. Deeper decimal forms come first so that
// "1.1.1.1" is not misread as the level-1 "1." form.
var recognizers = []recognizer{
	{toc.PatternQuadDecimal, 4, regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+`)},
	{toc.PatternDoubleDecimal, 3, regexp.MustCompile(`^\d+\.\d+\.\d+`)},
	{toc.PatternDecimal, 2, regexp.MustCompile(`^\d+\.\d+`)},
	{toc.PatternChapter, 1, regexp.MustCompile(`^第[一二三四五六七八九十百\d]+(章|部分|节|篇)|^(Chapter|CHAPTER|Part|PART)\s+\d+`)},
	{toc.PatternChineseNumeral, 1, regexp.MustCompile(`^[一二三四五六七八九十]+\s*[、.．]`)},
	{toc.PatternArabic, 1, regexp.MustCompile(`^\d+\s*[、.．]`)},
	{toc.PatternParenthetical, 2, regexp.MustCompile(`^[(（][一二三四五六七八九十\d]+[)）]`)},
	{toc.PatternCircled, 2, regexp.MustCompile(`^[①②③④⑤⑥⑦⑧⑨⑩]`)},
	{toc.PatternLetterDot, 4, regexp.MustCompile(`^[a-z][.．]\s`)},
	{toc.PatternLetterParen, 3, regexp.MustCompile(`^[A-Za-z][)）]`)},
	{toc.PatternRoman, 3, regexp.MustCompile(`^[ⅰⅱⅲⅳⅴⅵⅶⅷⅸⅹⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩ]`)},
}

// Classify maps a title string to its numbering category, the nominal level
// for that category (0 when no structure is recognized), and a confidence.
// A structural match is unambiguous (confidence 1.0). Text with no recognized
// numbering but plausible title shape gets confidence 0.5 and no level hint,
// leaving the level entirely to the corrector. Everything else is
// (none, 0, 0.0) and should be dropped before filtering.
func Classify(text string) (toc.PatternCategory, int, float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return toc.PatternNone, 0, 0
	}
	for _, r := range recognizers {
		if r.re.MatchString(text) {
			return r.category, r.level, 1.0
		}
	}
	if looksTitleLike(text) {
		return toc.PatternNone, 0, 0.5
	}
	return toc.PatternNone, 0, 0
}

// ClassifyCandidate builds a classified TitleCandidate from a raw one.
// A structural pattern level overrides the extractor's hint; the hint is kept
// only for pattern-less candidates (the extractor saw layout the classifier
// cannot).
func ClassifyCandidate(raw toc.RawCandidate, chunkID int) toc.TitleCandidate {
	text := strings.TrimSpace(raw.Text)
	category, level, confidence := Classify(text)
	hint := level
	if hint == 0 && raw.LevelHint > 0 {
		hint = raw.LevelHint
	}
	return toc.TitleCandidate{
		Text:       text,
		Page:       raw.Page,
		LevelHint:  hint,
		ChunkID:    chunkID,
		Category:   category,
		Confidence: confidence,
	}
}

var sentenceEndRe = regexp.MustCompile(`[。！？.!?]$`)

// looksTitleLike applies the weak heuristics used when no numbering pattern
// matches: short, not a sentence, not mostly punctuation or digits.
func looksTitleLike(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 || len(runes) > 40 {
		return false
	}
	if sentenceEndRe.MatchString(text) {
		return false
	}
	letters := 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	// A title is mostly letters (Han characters count as letters).
	return letters*2 >= len(runes)
}
