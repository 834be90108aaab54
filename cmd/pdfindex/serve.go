package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pdfindex/internal/api"
	"github.com/dgallion1/pdfindex/internal/config"
	"github.com/dgallion1/pdfindex/internal/extract"
	"github.com/dgallion1/pdfindex/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pdfindex HTTP server",
	Long: `Start the HTTP API server.

The server accepts PDF uploads, processes them asynchronously through the
worker pool, and serves the reconciled outline and the bookmarked PDF.

Endpoints:
  GET  /health
  POST /api/documents
  GET  /api/documents/{jobID}/status
  GET  /api/documents/{jobID}/outline
  GET  /api/documents/{jobID}/download
  GET  /api/stats/llm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger(true)

		cfg := config.Load()
		if err := cfg.ValidateServe(); err != nil {
			log.Error("invalid configuration", "error", err)
			return err
		}

		stats := extract.NewLLMStats(time.Hour)
		gemini, err := extract.NewGeminiClient(ctx, cfg.GoogleAIAPIKey, cfg.GeminiModel, stats)
		if err != nil {
			log.Error("gemini client init failed", "error", err)
			return err
		}

		orch := pipeline.NewOrchestrator(cfg, gemini, log)
		orch.Start(ctx)

		srv := api.NewServer(orch, gemini, log, cfg)
		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown when the root context is cancelled.
		go func() {
			<-ctx.Done()
			log.Info("shutting down...")

			orch.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting pdfindex", "port", cfg.Port, "model", cfg.GeminiModel)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
		return nil
	},
}
