package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiConfig holds configuration for the Gemini generator.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:  apiKey,
		Model:   "gemini-2.0-flash",
		Timeout: 30 * time.Second,
	}
}

// Gemini implements Generator on the Google GenAI API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGemini creates a Gemini generator.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate implements Generator. A timeout is applied when the caller's
// context carries no deadline, so a hung API call cannot stall the session
// indefinitely.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty completion")
	}

	g.logger.Debug("gemini completion",
		zap.String("model", g.model),
		zap.Duration("took", time.Since(start)),
		zap.Int("response_len", len(text)))

	return text, nil
}
