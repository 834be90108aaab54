package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/pdfindex/internal/batch"
	"github.com/dgallion1/pdfindex/internal/config"
	"github.com/dgallion1/pdfindex/internal/extract"
	"github.com/dgallion1/pdfindex/internal/pipeline"
)

var (
	batchRecursive bool
	batchSkip      bool
	batchOutputDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Index every PDF under a directory",
	Long: `Process all PDFs under a directory, one at a time. A failure in one
document is reported and the batch continues.

Examples:
  pdfindex batch ./scans
  pdfindex batch ./scans --recursive --skip-processed
  pdfindex batch ./scans --output-dir ./indexed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(false)
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		stats := extract.NewLLMStats(0)
		gemini, err := extract.NewGeminiClient(cmd.Context(), cfg.GoogleAIAPIKey, cfg.GeminiModel, stats)
		if err != nil {
			return err
		}
		worker := pipeline.NewWorker(gemini, log, pipeline.ChunkConfig(cfg), pipeline.ReconcileConfig(cfg), cfg.MaxConcurrentExtract, cfg.TextFallback)

		_, err = batch.Run(cmd.Context(), worker, log, args[0], batch.Options{
			Recursive:     batchRecursive,
			SkipProcessed: batchSkip,
			OutputDir:     batchOutputDir,
		})
		return err
	},
}

func init() {
	batchCmd.Flags().BoolVarP(&batchRecursive, "recursive", "r", false, "descend into subdirectories")
	batchCmd.Flags().BoolVar(&batchSkip, "skip-processed", false, "skip PDFs that already have an indexed copy")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "write indexed copies here instead of next to the sources")
}
