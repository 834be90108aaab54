package extract

import (
	"fmt"
	"strings"
)

const extractionRules = `Extract every heading and section title from this document fragment. Return a JSON array where each object has these fields:

- "title": the heading text exactly as printed, including any numbering prefix (string)
- "page": the page number the heading appears on (integer)
- "level": hierarchy depth, 1 for top-level chapters, 2 for sections, deeper as needed (integer, optional)

Rules:
- Include chapter headings, numbered sections (1., 1.1, 1.1.1), lettered items, and unnumbered headings that are visually set apart
- Do NOT include running headers, footers, page numbers, figure or table captions, or body sentences
- Titles are short; skip anything longer than a line or ending with sentence punctuation
- Keep document order
- Return an empty array [] if the fragment has no headings

Respond with ONLY the JSON array, no other text.`

// BuildPDFPrompt creates the extraction prompt for a chunk sent as PDF bytes.
// The page range tells the model how to report absolute page numbers even
// though the chunk's own pages are renumbered from 1.
func BuildPDFPrompt(startPage, endPage int) string {
	var sb strings.Builder
	sb.WriteString(extractionRules)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "This fragment covers pages %d to %d of the full document. Report page numbers in that range.\n", startPage, endPage)
	return sb.String()
}

// BuildTextPrompt creates the extraction prompt for the plain-text fallback.
// The text carries per-page markers produced by the chunker.
func BuildTextPrompt(text string, startPage, endPage int) string {
	var sb strings.Builder
	sb.WriteString(extractionRules)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "This fragment covers pages %d to %d of the full document. Page boundaries are marked with \"--- Page N ---\" lines.\n", startPage, endPage)
	sb.WriteString("---\n")
	sb.WriteString(text)
	return sb.String()
}
