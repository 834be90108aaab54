// Package batch runs the indexing pipeline over every PDF under a directory.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/pdfindex/internal/pipeline"
)

// Options controls a batch run.
type Options struct {
	Recursive     bool
	SkipProcessed bool   // Skip files that already have an indexed copy.
	OutputDir     string // Empty means write next to each source file.
}

// Result summarizes a batch run.
type Result struct {
	Processed   int
	Failed      int
	Skipped     int
	Entries     int // Total outline entries written across all documents.
	FailedFiles []string
	Elapsed     time.Duration
}

// outputPrefix marks files the batch has already produced.
const outputPrefix = "indexed_"

// FindPDFs returns the PDFs under root in a stable order. Files named like
// "book-2.pdf" sort numerically so multi-volume scans keep their order.
func FindPDFs(root string, recursive bool) ([]string, error) {
	var paths []string
	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSourcePDF(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", root, err)
		}
		for _, e := range entries {
			if !e.IsDir() && isSourcePDF(e.Name()) {
				paths = append(paths, filepath.Join(root, e.Name()))
			}
		}
	}
	return sortPDFsByNumber(paths), nil
}

func isSourcePDF(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".pdf") && !strings.HasPrefix(name, outputPrefix)
}

var trailingNumberRe = regexp.MustCompile(`(\d+)\.pdf$`)

// sortPDFsByNumber sorts paths by trailing number when both sides have one,
// lexicographically otherwise.
func sortPDFsByNumber(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	sort.Slice(sorted, func(i, j int) bool {
		mi := trailingNumberRe.FindStringSubmatch(strings.ToLower(sorted[i]))
		mj := trailingNumberRe.FindStringSubmatch(strings.ToLower(sorted[j]))
		if len(mi) > 1 && len(mj) > 1 {
			var ni, nj int
			fmt.Sscanf(mi[1], "%d", &ni)
			fmt.Sscanf(mj[1], "%d", &nj)
			if ni != nj {
				return ni < nj
			}
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

// outputPath returns where the indexed copy of src goes under opts.
func outputPath(src string, opts Options) string {
	dir := filepath.Dir(src)
	if opts.OutputDir != "" {
		dir = opts.OutputDir
	}
	return filepath.Join(dir, outputPrefix+filepath.Base(src))
}

// Run processes every PDF under root with the given worker. A failure in one
// document never stops the rest of the batch.
func Run(ctx context.Context, worker *pipeline.Worker, log *slog.Logger, root string, opts Options) (Result, error) {
	start := time.Now()

	paths, err := FindPDFs(root, opts.Recursive)
	if err != nil {
		return Result{}, err
	}
	if len(paths) == 0 {
		return Result{Elapsed: time.Since(start)}, fmt.Errorf("no PDF files found under %s", root)
	}
	log.Info("batch started", "root", root, "files", len(paths))

	var res Result
	for _, src := range paths {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		out := outputPath(src, opts)
		if opts.SkipProcessed {
			if _, err := os.Stat(out); err == nil {
				log.Info("skipping already indexed file", "file", src)
				res.Skipped++
				continue
			}
		}

		job := pipeline.NewJob(filepath.Base(src), src, out)
		worker.Process(ctx, job)

		switch snap := job.Snapshot(); snap.Status {
		case pipeline.StatusCompleted, pipeline.StatusPartial:
			res.Processed++
			res.Entries += snap.Progress.OutlineEntries
			log.Info("indexed document", "file", src, "status", snap.Status, "entries", snap.Progress.OutlineEntries)
		default:
			res.Failed++
			res.FailedFiles = append(res.FailedFiles, src)
			log.Error("document failed", "file", src, "errors", snap.Progress.Errors)
		}
	}

	res.Elapsed = time.Since(start)
	log.Info("batch finished",
		"processed", res.Processed,
		"failed", res.Failed,
		"skipped", res.Skipped,
		"entries", res.Entries,
		"elapsed", res.Elapsed.Round(time.Second).String(),
	)
	return res, nil
}
