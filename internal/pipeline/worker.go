package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/pdfindex/internal/chunker"
	"github.com/dgallion1/pdfindex/internal/extract"
	"github.com/dgallion1/pdfindex/internal/reconcile"
	"github.com/dgallion1/pdfindex/internal/toc"
	"github.com/dgallion1/pdfindex/internal/writer"
)

// Worker processes a single document job.
type Worker struct {
	gemini       *extract.GeminiClient
	log          *slog.Logger
	chunkCfg     chunker.Config
	reconcileCfg reconcile.Config

	maxConcurrentExtract int
	textFallback         bool
}

func NewWorker(gemini *extract.GeminiClient, log *slog.Logger, chunkCfg chunker.Config, reconcileCfg reconcile.Config, maxExtract int, textFallback bool) *Worker {
	return &Worker{
		gemini:               gemini,
		log:                  log,
		chunkCfg:             chunkCfg,
		reconcileCfg:         reconcileCfg,
		maxConcurrentExtract: maxExtract,
		textFallback:         textFallback,
	}
}

// Process runs the full indexing pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Split into page-range chunks.
	job.SetStatus(StatusChunking, "chunking")
	chunks, err := chunker.Split(job.SourcePath(), w.chunkCfg)
	if err != nil {
		log.Error("chunking failed", "error", err)
		job.AddError(fmt.Sprintf("chunk: %s", err))
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	job.SetTotalChunks(len(chunks))
	log.Info("chunked document", "chunks", len(chunks))

	if len(chunks) == 0 {
		job.AddError("document has no pages")
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	// Phase 2: Extract title candidates with bounded concurrency. Results
	// are collected per chunk index so document order is preserved no
	// matter which extraction finishes first.
	job.SetStatus(StatusExtracting, "extracting")
	type chunkResult struct {
		candidates []toc.RawCandidate
		err        error
	}
	results := make([]chunkResult, len(chunks))
	sem := make(chan struct{}, w.maxConcurrentExtract)
	done := make(chan int, len(chunks))

	for i, chunk := range chunks {
		sem <- struct{}{}
		go func(i int, chunk chunker.Chunk) {
			defer func() { <-sem }()
			candidates, err := w.extractChunk(ctx, log, chunk)
			results[i] = chunkResult{candidates: candidates, err: err}
			done <- i
		}(i, chunk)
	}
	for range chunks {
		<-done
		job.IncrChunksProcessed()
	}

	hadErrors := false
	engineChunks := make([]toc.Chunk, 0, len(chunks))
	for i, r := range results {
		if r.err != nil {
			log.Error("extraction failed", "chunk", i, "retryable", IsRetryable(r.err), "error", r.err)
			job.AddError(fmt.Sprintf("chunk %d: %s", i, r.err))
			hadErrors = true
			continue
		}
		job.AddTitles(len(r.candidates))
		engineChunks = append(engineChunks, toc.Chunk{Index: i, Candidates: r.candidates})
	}
	if len(engineChunks) == 0 {
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 3: Reconcile candidates into one outline.
	job.SetStatus(StatusReconciling, "reconciling")
	outline, err := w.reconcileCfg.Reconcile(engineChunks)
	if err != nil {
		log.Error("reconciliation failed", "error", err)
		job.AddError(fmt.Sprintf("reconcile: %s", err))
		job.SetStatus(StatusFailed, "reconciling")
		return
	}
	job.SetOutline(outline)
	log.Info("reconciled outline", "entries", len(outline))

	// Phase 4: Write bookmarks back into the PDF.
	job.SetStatus(StatusWriting, "writing")
	if err := writer.WriteBookmarks(job.SourcePath(), job.OutputPath(), outline); err != nil {
		log.Error("bookmark write failed", "error", err)
		job.AddError(fmt.Sprintf("write: %s", err))
		job.SetStatus(StatusFailed, "writing")
		return
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// extractChunk sends one chunk to Gemini, falling back to plain-text
// extraction when enabled and the PDF-bytes path fails.
func (w *Worker) extractChunk(ctx context.Context, log *slog.Logger, chunk chunker.Chunk) ([]toc.RawCandidate, error) {
	candidates, err := w.gemini.ExtractTitles(ctx, chunk.Data, chunk.StartPage, chunk.EndPage)
	if err == nil {
		return candidates, nil
	}
	if !w.textFallback || ctx.Err() != nil {
		return nil, err
	}

	log.Warn("pdf extraction failed, trying text fallback", "chunk", chunk.Index, "error", err)
	text, textErr := chunker.ExtractText(chunk.Data, chunk.StartPage)
	if textErr != nil || strings.TrimSpace(text) == "" {
		return nil, err
	}
	candidates, textErr = w.gemini.ExtractTitlesFromText(ctx, text, chunk.StartPage, chunk.EndPage)
	if textErr != nil {
		return nil, err
	}
	return candidates, nil
}
