package chunker

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// pageText extracts plain text from a single page of an in-memory PDF.
func pageText(data []byte, page int) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	if page < 1 || page > reader.NumPage() {
		return "", fmt.Errorf("page %d out of range", page)
	}
	p := reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

// ExtractText returns the plain text of a chunk with per-page markers, used
// by the text-only extraction fallback. startPage is the chunk's first page
// number in the source document, so the markers carry absolute page numbers.
func ExtractText(data []byte, startPage int) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		fmt.Fprintf(&buf, "--- Page %d ---\n", startPage+i-1)
		buf.WriteString(strings.TrimSpace(text))
		buf.WriteString("\n\n")
	}
	return buf.String(), nil
}
