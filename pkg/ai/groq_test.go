package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func newGroqTestClient(url string) *GroqClient {
	return NewGroqClient(config.AIConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "llama-test",
		Timeout: 5 * time.Second,
	})
}

func TestGroqClient_Complete(t *testing.T) {
	t.Run("sends system and user messages", func(t *testing.T) {
		var got ChatRequest
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Acme Corp|Company\n"}}]}`))
		}))
		defer ts.Close()

		out, err := newGroqTestClient(ts.URL).Complete(context.Background(), CompletionRequest{
			System:      "extract entities",
			Prompt:      "transcript",
			Temperature: 0.1,
			MaxTokens:   300,
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp|Company", out)

		assert.Equal(t, "llama-test", got.Model)
		assert.Equal(t, 300, got.MaxTokens)
		assert.InDelta(t, 0.1, got.Temperature, 1e-9)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "user", got.Messages[1].Role)
	})

	t.Run("status errors carry the code", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		}))
		defer ts.Close()

		_, err := newGroqTestClient(ts.URL).Complete(context.Background(), CompletionRequest{Prompt: "x"})
		require.Error(t, err)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
		assert.True(t, statusErr.Retryable())
	})

	t.Run("no choices", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer ts.Close()

		_, err := newGroqTestClient(ts.URL).Complete(context.Background(), CompletionRequest{Prompt: "x"})
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newGroqTestClient("http://127.0.0.1:0").Complete(ctx, CompletionRequest{Prompt: "x"})
		assert.Error(t, err)
	})
}

func TestStatusError_Retryable(t *testing.T) {
	assert.True(t, (&StatusError{StatusCode: 503}).Retryable())
	assert.False(t, (&StatusError{StatusCode: 400}).Retryable())
	assert.Contains(t, (&StatusError{Provider: "groq", StatusCode: 401, Body: "bad key"}).Error(), "status 401")
}
