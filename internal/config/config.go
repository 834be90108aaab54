package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for the HTTP API.
	APIKey string

	// Gemini extraction
	GoogleAIAPIKey string
	GeminiModel    string

	// Worker pool
	WorkerCount          int
	MaxQueueSize         int
	MaxConcurrentExtract int

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults
	MaxChunkPages int
	OverlapPages  int

	// Reconciliation thresholds
	SimilarityThreshold float64
	PageTolerance       int
	MinTitleRunes       int
	MaxTitleRunes       int
	MaxOutlineLevel     int

	// Job state
	JobTTL time.Duration

	// Fall back to text extraction when Gemini cannot read the PDF bytes.
	TextFallback bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PDFINDEX_API_KEY"),

		GoogleAIAPIKey: os.Getenv("GOOGLE_AI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.5-flash"),

		WorkerCount:          envInt("WORKER_COUNT", 4),
		MaxQueueSize:         envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentExtract: envInt("MAX_CONCURRENT_EXTRACT", 3),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 104857600), // 100MB

		MaxChunkPages: envInt("MAX_CHUNK_PAGES", 1000),
		OverlapPages:  envInt("OVERLAP_PAGES", 1),

		SimilarityThreshold: envFloat("SIMILARITY_THRESHOLD", 0.8),
		PageTolerance:       envInt("PAGE_TOLERANCE", 2),
		MinTitleRunes:       envInt("MIN_TITLE_RUNES", 3),
		MaxTitleRunes:       envInt("MAX_TITLE_RUNES", 50),
		MaxOutlineLevel:     envInt("MAX_OUTLINE_LEVEL", 4),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		TextFallback: envBool("TEXT_FALLBACK", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentExtract <= 0 {
		cfg.MaxConcurrentExtract = 3
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 104857600
	}
	if cfg.MaxChunkPages <= 0 {
		cfg.MaxChunkPages = 1000
	}
	if cfg.OverlapPages < 0 {
		cfg.OverlapPages = 0
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the requirements of any path that calls Gemini.
func (c Config) Validate() error {
	if c.GoogleAIAPIKey == "" {
		return fmt.Errorf("GOOGLE_AI_API_KEY is required")
	}
	return nil
}

// ValidateServe checks the additional requirements of the HTTP server.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("PDFINDEX_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
