// Package parser extracts heading candidates from non-PDF document formats.
// PDF documents go through the chunker and the Gemini extractor instead;
// everything here works offline from the document's own markup.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// Parser converts raw document bytes into heading candidates. Candidates
// carry a 1-based sequence number in the Page field since these formats
// have no physical pages; the ordering contract is the same.
type Parser interface {
	Parse(r io.Reader, filename string) ([]toc.RawCandidate, error)
}

// SupportedExtensions lists file extensions handled by offline parsers.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
