package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/pdfindex/internal/reconcile"
	"github.com/dgallion1/pdfindex/internal/toc"
)

// TextParser scans plain text line by line and keeps only lines whose shape
// matches a known numbering pattern. Plain text has no markup, so pattern
// recognition is the sole signal; levels are left for the engine to derive.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]toc.RawCandidate, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var candidates []toc.RawCandidate
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		category, _, _ := reconcile.Classify(line)
		if category == toc.PatternNone {
			continue
		}
		candidates = append(candidates, toc.RawCandidate{
			Text: line,
			Page: len(candidates) + 1,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}
