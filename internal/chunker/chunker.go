package chunker

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Config controls how a document is split into page-range chunks.
type Config struct {
	MaxPages     int // Maximum pages per chunk.
	OverlapPages int // Pages repeated at the seam between consecutive chunks.
	SamplePages  int // Pages sampled when estimating document size.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxPages:     1000,
		OverlapPages: 1,
		SamplePages:  5,
	}
}

// Chunk is one contiguous page range of the source document, materialized as
// a standalone PDF. StartPage/EndPage are 1-based page numbers in the source
// document; pages inside Data are renumbered from 1.
type Chunk struct {
	Index     int
	StartPage int
	EndPage   int
	Data      []byte
}

// Info describes a PDF prior to chunking.
type Info struct {
	PageCount      int
	EstimatedChars int
}

// pdfcpuConf returns the relaxed-validation configuration used for all
// pdfcpu operations; real-world scans frequently fail strict validation.
func pdfcpuConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// GetInfo returns the page count and an estimated total character size based
// on the text of the first few pages.
func GetInfo(path string, cfg Config) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pageCount, err := api.PageCount(f, pdfcpuConf())
	if err != nil {
		return Info{}, fmt.Errorf("page count: %w", err)
	}

	info := Info{PageCount: pageCount}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, nil
	}
	sample := cfg.SamplePages
	if sample <= 0 {
		sample = 5
	}
	if sample > pageCount {
		sample = pageCount
	}
	sampleChars := 0
	for page := 1; page <= sample; page++ {
		text, err := pageText(data, page)
		if err != nil {
			continue
		}
		sampleChars += len(text)
	}
	if sample > 0 {
		info.EstimatedChars = (sampleChars / sample) * pageCount
	}
	return info, nil
}

// PageRange is a half-open piece of the chunk plan, 1-based and inclusive.
type PageRange struct {
	Start int
	End   int
}

// pageRanges computes the chunk plan for a document of total pages. Every
// chunk after the first starts OverlapPages earlier than its nominal
// boundary, so the same titles can be seen on both sides of a seam.
func pageRanges(total int, cfg Config) []PageRange {
	if total <= 0 {
		return nil
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1000
	}

	var ranges []PageRange
	for start := 1; start <= total; start += maxPages {
		end := start + maxPages - 1
		if end > total {
			end = total
		}
		from := start
		if len(ranges) > 0 {
			from -= cfg.OverlapPages
			if from < 1 {
				from = 1
			}
		}
		ranges = append(ranges, PageRange{Start: from, End: end})
	}
	return ranges
}

// Split divides the PDF at path into page-range chunks, each a standalone
// PDF byte slice. Chunks are returned in document order with ascending
// indexes, which is the ordering contract the reconciliation engine relies on.
func Split(path string, cfg Config) ([]Chunk, error) {
	info, err := GetInfo(path, cfg)
	if err != nil {
		return nil, err
	}

	ranges := pageRanges(info.PageCount, cfg)
	chunks := make([]Chunk, 0, len(ranges))
	conf := pdfcpuConf()

	for i, r := range ranges {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open pdf: %w", err)
		}
		var buf bytes.Buffer
		err = api.Trim(f, &buf, []string{fmt.Sprintf("%d-%d", r.Start, r.End)}, conf)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("extract pages %d-%d: %w", r.Start, r.End, err)
		}
		chunks = append(chunks, Chunk{
			Index:     i,
			StartPage: r.Start,
			EndPage:   r.End,
			Data:      buf.Bytes(),
		})
	}
	return chunks, nil
}
