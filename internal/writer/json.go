package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// ExportMetadata summarizes an exported outline.
type ExportMetadata struct {
	SourceFile        string      `json:"source_file"`
	GeneratedAt       time.Time   `json:"generated_at"`
	EntryCount        int         `json:"entry_count"`
	LevelDistribution map[int]int `json:"level_distribution"`
	FirstPage         int         `json:"first_page,omitempty"`
	LastPage          int         `json:"last_page,omitempty"`
}

// Export is the JSON document written for an outline.
type Export struct {
	Metadata ExportMetadata     `json:"metadata"`
	Outline  []toc.OutlineEntry `json:"outline"`
}

// BuildExport assembles the export document for a reconciled outline.
// Entries are assumed to be in page order.
func BuildExport(sourceFile string, entries []toc.OutlineEntry) Export {
	meta := ExportMetadata{
		SourceFile:        filepath.Base(sourceFile),
		GeneratedAt:       time.Now().UTC(),
		EntryCount:        len(entries),
		LevelDistribution: make(map[int]int),
	}
	for _, e := range entries {
		meta.LevelDistribution[e.Level]++
	}
	if len(entries) > 0 {
		meta.FirstPage = entries[0].Page
		meta.LastPage = entries[len(entries)-1].Page
	}
	return Export{Metadata: meta, Outline: entries}
}

// WriteJSON writes the export document to w.
func WriteJSON(w io.Writer, export Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("encode outline json: %w", err)
	}
	return nil
}

// WriteJSONFile writes the export document to path.
func WriteJSONFile(path string, export Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, export)
}
