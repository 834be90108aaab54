package parser

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// MarkdownParser collects ATX and setext headings using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]toc.RawCandidate, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var candidates []toc.RawCandidate
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(string(heading.Text(src)))
		if title == "" {
			continue
		}
		candidates = append(candidates, toc.RawCandidate{
			Text:      title,
			Page:      len(candidates) + 1,
			LevelHint: heading.Level,
		})
	}
	return candidates, nil
}
