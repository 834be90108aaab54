package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pdfindex",
	Short: "Add navigable bookmarks to PDFs using LLM title extraction",
	Long: `pdfindex builds a hierarchical table of contents for PDF documents.

Large documents are split into page-range chunks, each chunk's headings are
extracted with Gemini, and the per-chunk results are reconciled into one
consistent outline that is written back into the PDF as bookmarks.

Markdown, HTML, DOCX and plain-text documents are supported through offline
parsers and produce a JSON outline instead.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the CLI logger; serve uses JSON, everything else text.
func newLogger(json bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
