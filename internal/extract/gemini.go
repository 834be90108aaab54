package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v4"
	genai "google.golang.org/genai"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// GeminiClient extracts title candidates from PDF chunks via the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	stats  *LLMStats

	// MaxAttempts bounds retries on transient API failures.
	MaxAttempts uint
}

func NewGeminiClient(ctx context.Context, apiKey, model string, stats *LLMStats) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing Google AI API key")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:      c,
		model:       model,
		stats:       stats,
		MaxAttempts: 3,
	}, nil
}

// Model returns the configured model name.
func (g *GeminiClient) Model() string {
	return g.model
}

// Stats returns the latency tracker shared with the API layer.
func (g *GeminiClient) Stats() *LLMStats {
	return g.stats
}

// ExtractTitles sends one PDF chunk to the model and parses the candidates.
// Pages reported by the model are normalized into the chunk's page range.
func (g *GeminiClient) ExtractTitles(ctx context.Context, pdfData []byte, startPage, endPage int) ([]toc.RawCandidate, error) {
	content := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: BuildPDFPrompt(startPage, endPage)},
				{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: pdfData}},
			},
		},
	}
	return g.generate(ctx, content, startPage, endPage)
}

// ExtractTitlesFromText is the fallback path when a chunk's PDF bytes cannot
// be sent, for example when the document is scanned from plain text.
func (g *GeminiClient) ExtractTitlesFromText(ctx context.Context, text string, startPage, endPage int) ([]toc.RawCandidate, error) {
	content := []*genai.Content{
		genai.NewContentFromText(BuildTextPrompt(text, startPage, endPage), genai.RoleUser),
	}
	return g.generate(ctx, content, startPage, endPage)
}

func (g *GeminiClient) generate(ctx context.Context, content []*genai.Content, startPage, endPage int) ([]toc.RawCandidate, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	var res *genai.GenerateContentResponse
	err := retry.Do(
		func() error {
			start := time.Now()
			var callErr error
			res, callErr = g.client.Models.GenerateContent(ctx, g.model, content, cfg)
			if g.stats != nil {
				tokens := int64(0)
				if res != nil && res.UsageMetadata != nil {
					tokens = int64(res.UsageMetadata.TotalTokenCount)
				}
				g.stats.Record(time.Since(start).Milliseconds(), tokens)
			}
			if callErr != nil {
				return classifyAPIError(callErr)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(g.MaxAttempts),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var retryErr *RetryableError
			return errors.As(err, &retryErr)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini api: %w", err)
	}

	return ParseTitles(res.Text(), startPage, endPage)
}

// classifyAPIError wraps transient API failures in RetryableError so the
// retry policy and the job-level failure handling can tell them apart.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return &RetryableError{StatusCode: apiErr.Code, Message: apiErr.Message}
		}
	}
	return err
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
