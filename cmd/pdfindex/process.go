package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pdfindex/internal/chunker"
	"github.com/dgallion1/pdfindex/internal/config"
	"github.com/dgallion1/pdfindex/internal/extract"
	"github.com/dgallion1/pdfindex/internal/parser"
	"github.com/dgallion1/pdfindex/internal/pipeline"
	"github.com/dgallion1/pdfindex/internal/toc"
	"github.com/dgallion1/pdfindex/internal/writer"
)

var (
	processOutput  string
	processJSON    string
	processDryRun  bool
	processPreview int
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Build and write the outline for a single document",
	Long: `Process one document end to end.

For PDFs the reconciled outline is written back as bookmarks; use --output
to keep the original untouched, or --dry-run to only print the outline.
Markdown, HTML, DOCX and plain-text inputs always go to JSON/preview since
they have nothing to write bookmarks into.

Examples:
  pdfindex process report.pdf
  pdfindex process report.pdf --output indexed.pdf --json outline.json
  pdfindex process notes.md --json outline.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		log := newLogger(false)
		cfg := config.Load()

		var outline []toc.OutlineEntry
		var err error
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			outline, err = processPDF(cmd.Context(), cfg, log, path)
		} else {
			outline, err = processOffline(cfg, path)
		}
		if err != nil {
			return err
		}

		fmt.Print(writer.FormatPreview(outline, processPreview))

		if processJSON != "" {
			if err := writer.WriteJSONFile(processJSON, writer.BuildExport(path, outline)); err != nil {
				return err
			}
			log.Info("outline exported", "path", processJSON)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "write bookmarked PDF here instead of in place")
	processCmd.Flags().StringVar(&processJSON, "json", "", "also export the outline as JSON to this path")
	processCmd.Flags().BoolVar(&processDryRun, "dry-run", false, "reconcile and print the outline without writing the PDF")
	processCmd.Flags().IntVar(&processPreview, "preview", 0, "limit preview output to N entries (0 = all)")
}

// processPDF runs the chunk/extract/reconcile pipeline for one PDF and,
// unless --dry-run is set, writes the bookmarks back.
func processPDF(ctx context.Context, cfg config.Config, log *slog.Logger, path string) ([]toc.OutlineEntry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := chunker.GetInfo(path, pipeline.ChunkConfig(cfg))
	if err != nil {
		return nil, err
	}
	log.Info("document info", "pages", info.PageCount, "estimated_chars", info.EstimatedChars)

	stats := extract.NewLLMStats(0)
	gemini, err := extract.NewGeminiClient(ctx, cfg.GoogleAIAPIKey, cfg.GeminiModel, stats)
	if err != nil {
		return nil, err
	}

	if processDryRun {
		chunks, err := chunker.Split(path, pipeline.ChunkConfig(cfg))
		if err != nil {
			return nil, err
		}
		engineChunks := make([]toc.Chunk, 0, len(chunks))
		for _, chunk := range chunks {
			candidates, err := gemini.ExtractTitles(ctx, chunk.Data, chunk.StartPage, chunk.EndPage)
			if err != nil {
				return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}
			engineChunks = append(engineChunks, toc.Chunk{Index: chunk.Index, Candidates: candidates})
		}
		return pipeline.ReconcileConfig(cfg).Reconcile(engineChunks)
	}

	worker := pipeline.NewWorker(gemini, log, pipeline.ChunkConfig(cfg), pipeline.ReconcileConfig(cfg), cfg.MaxConcurrentExtract, cfg.TextFallback)
	job := pipeline.NewJob(filepath.Base(path), path, processOutput)
	worker.Process(ctx, job)

	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted && snap.Status != pipeline.StatusPartial {
		return nil, fmt.Errorf("processing failed: %s", strings.Join(snap.Progress.Errors, "; "))
	}
	log.Info("bookmarks written", "path", job.OutputPath(), "entries", snap.Progress.OutlineEntries)
	return job.Outline(), nil
}

// processOffline builds an outline from a document's own markup, no LLM.
func processOffline(cfg config.Config, path string) ([]toc.OutlineEntry, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	candidates, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return pipeline.ReconcileConfig(cfg).Reconcile([]toc.Chunk{{Index: 0, Candidates: candidates}})
}
