package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when the backend answers without any text
var ErrEmptyCompletion = errors.New("empty completion")

// CompletionRequest is one prompt sent to a text generator
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Generator produces text completions. Implementations must be safe for concurrent use.
type Generator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// StatusError is a non-2xx answer from a generator backend
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if sent again
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
