package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

const defaultAnthropicModel = "claude-3-5-haiku-20241022"

// ErrAPIKeyRequired is returned when a provider needs a key and none is configured
var ErrAPIKeyRequired = errors.New("API key required")

// AnthropicClient wraps the Anthropic Messages API as a Generator
type AnthropicClient struct {
	client  anthropic.Client
	model   anthropic.Model
	limiter *rate.Limiter
}

// NewAnthropicClient creates a client from config. Retries are left to the caller.
func NewAnthropicClient(cfg config.AIConfig, opts ...option.RequestOption) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set AI_API_KEY", ErrAPIKeyRequired)
	}

	model := cfg.Model
	if model == "" || strings.HasPrefix(model, "llama") {
		model = defaultAnthropicModel
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(cfg.Timeout))
	}
	reqOpts = append(reqOpts, opts...)

	return &AnthropicClient{
		client:  anthropic.NewClient(reqOpts...),
		model:   anthropic.Model(model),
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// Complete sends one message and returns the first text block
func (a *AnthropicClient) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(in.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(in.Prompt)),
		},
	}
	if in.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: in.System}}
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "anthropic", StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", err
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", ErrEmptyCompletion
}
