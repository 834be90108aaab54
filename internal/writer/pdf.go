// Package writer persists a reconciled outline, either into the PDF itself
// as a bookmark tree or as a JSON export.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// buildBookmarkTree nests a flat, level-annotated outline into the bookmark
// tree pdfcpu expects. Pages are clamped to [1, pageCount] so a slightly
// off model answer never produces an invalid destination.
func buildBookmarkTree(entries []toc.OutlineEntry, pageCount int) []pdfcpu.Bookmark {
	var roots []pdfcpu.Bookmark
	// Stack of pointers into the tree, one per open level.
	var stack []*pdfcpu.Bookmark

	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		page := e.Page
		if page < 1 {
			page = 1
		}
		if pageCount > 0 && page > pageCount {
			page = pageCount
		}
		bm := pdfcpu.Bookmark{Title: e.Title, PageFrom: page}

		for len(stack) >= e.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, bm)
			stack = append(stack, &roots[len(roots)-1])
		} else {
			parent := stack[len(stack)-1]
			parent.Kids = append(parent.Kids, bm)
			stack = append(stack, &parent.Kids[len(parent.Kids)-1])
		}
	}
	return roots
}

// WriteBookmarks writes the outline into the PDF at inPath, producing
// outPath. When outPath equals inPath the original is first copied to a
// timestamped backup next to it. Existing bookmarks are replaced.
func WriteBookmarks(inPath, outPath string, entries []toc.OutlineEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no outline entries to write")
	}

	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pageCount, err := api.PageCount(f, conf)
	f.Close()
	if err != nil {
		return fmt.Errorf("page count: %w", err)
	}

	if outPath == "" {
		outPath = inPath
	}
	if outPath == inPath {
		if _, err := backupFile(inPath); err != nil {
			return fmt.Errorf("backup original: %w", err)
		}
	}

	bms := buildBookmarkTree(entries, pageCount)
	if err := api.AddBookmarksFile(inPath, outPath, bms, true, conf); err != nil {
		return fmt.Errorf("add bookmarks: %w", err)
	}
	return nil
}

// backupFile copies path to path's directory under a timestamped name and
// returns the backup path.
func backupFile(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	backup := fmt.Sprintf("%s_backup_%s%s", base, time.Now().Format("20060102_150405"), ext)

	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(backup)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(backup)
		return "", err
	}
	return backup, nil
}
