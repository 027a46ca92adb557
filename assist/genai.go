package assist

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the default generation model.
	DefaultModel = "gemini-3-flash-preview"

	// DefaultMaxOutputTokens bounds the reply size.
	DefaultMaxOutputTokens = 16384
)

// Config holds the configuration for the Gemini-backed provider.
type Config struct {
	APIKey string
	Model  string
}

// GeminiProvider implements Provider on top of the Gemini API. It makes a
// single generation call per request; retry policy belongs to the caller
// (the conversion engine's deterministic fallback is the retry policy).
type GeminiProvider struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// GeminiOption configures the GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) GeminiOption {
	return func(p *GeminiProvider) {
		p.log = log
	}
}

// NewGeminiProvider creates a new Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, cfg Config, opts ...GeminiOption) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("assist: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assist: creating genai client: %w", err)
	}

	p := &GeminiProvider{
		client: client,
		model:  cfg.Model,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Complete sends the prompt and returns the raw reply text. Temperature
// is pinned to zero for deterministic structured output.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0)
	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      &temperature,
			MaxOutputTokens:  DefaultMaxOutputTokens,
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("assist: generate content: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("assist: empty completion")
	}
	p.log.Debug("collaborator completion received",
		zap.String("model", p.model),
		zap.Int("prompt_length", len(prompt)),
		zap.Int("reply_length", len(text)),
	)
	return text, nil
}

// IsConfigured returns true if the provider can serve requests.
func (p *GeminiProvider) IsConfigured() bool {
	return p != nil && p.client != nil
}
