package reconcile

import (
	"regexp"
	"unicode/utf8"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// Filtering is deliberately conservative: dropping a real title degrades the
// outline, but keeping noise corrupts hierarchy inference for everything that
// follows it, so borderline candidates are rejected.
var (
	numericOnlyRe  = regexp.MustCompile(`^[\d\s.．\-_年月日/]+$`)
	tooMuchPunctRe = regexp.MustCompile(`[，。；：！？“”‘’（）,;:!?()]`)

	denylist = []*regexp.Regexp{
		regexp.MustCompile(`^图\s*\d+`),
		regexp.MustCompile(`^表\s*\d+`),
		regexp.MustCompile(`(?i)^figure\s*\d+`),
		regexp.MustCompile(`(?i)^table\s*\d+`),
		regexp.MustCompile(`第\s*\d+\s*页`),
		regexp.MustCompile(`(?i)page\s*\d+`),
		regexp.MustCompile(`^\d{4}年`),
		regexp.MustCompile(`[。！？]$`),
		regexp.MustCompile(`(?i)^[a-z0-9-]+\.(com|cn|org|net|jp)`),
	}
)

// IsTitleLike reports whether a classified candidate should reach the
// corrector. Rejection is final.
func (c Config) IsTitleLike(cand toc.TitleCandidate) bool {
	n := utf8.RuneCountInString(cand.Text)
	if n < c.MinTitleRunes || n > c.MaxTitleRunes {
		return false
	}
	if numericOnlyRe.MatchString(cand.Text) {
		return false
	}
	for _, re := range denylist {
		if re.MatchString(cand.Text) {
			return false
		}
	}
	if len(tooMuchPunctRe.FindAllString(cand.Text, -1)) > 2 {
		return false
	}
	if cand.Category == toc.PatternNone && cand.Confidence < c.MinConfidence {
		return false
	}
	return true
}
