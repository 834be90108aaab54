package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/pdfindex/internal/toc"
)

const (
	minRawTitleRunes = 2
	maxRawTitleRunes = 40
)

// ParseTitles decodes the model's JSON response into raw candidates and
// normalizes each reported page into the chunk's [startPage, endPage] range.
// Obvious junk is dropped here so downstream filtering sees plausible input.
func ParseTitles(raw string, startPage, endPage int) ([]toc.RawCandidate, error) {
	text := stripCodeBlock(raw)
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var candidates []toc.RawCandidate
	if err := json.Unmarshal([]byte(text), &candidates); err != nil {
		return nil, fmt.Errorf("parse titles json: %w (raw: %s)", err, truncate(text, 200))
	}

	kept := candidates[:0]
	for _, c := range candidates {
		c.Text = strings.TrimSpace(c.Text)
		n := utf8.RuneCountInString(c.Text)
		if n < minRawTitleRunes || n > maxRawTitleRunes {
			continue
		}
		c.Page = normalizePage(c.Page, startPage, endPage)
		kept = append(kept, c)
	}
	return kept, nil
}

// normalizePage maps a model-reported page onto the chunk's absolute range.
// Models sometimes report pages relative to the chunk instead of the
// document; a small relative page is shifted by the chunk's offset, and
// anything still implausible falls back to the chunk's first page.
func normalizePage(page, startPage, endPage int) int {
	if page >= startPage && page <= endPage {
		return page
	}
	if page >= 1 && startPage+page-1 <= endPage {
		return startPage + page - 1
	}
	return startPage
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return s
}
