package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-master/internal/core/ai"
	"recipe-master/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))

		var body Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "google/gemini-2.5-flash", body.Model)
		assert.Equal(t, 2048, body.MaxTokens)
		assert.Len(t, body.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "gen-1", "model": "google/gemini-2.5-flash",
			"choices": [{"message": {"role": "assistant", "content": "Dal Tadka"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}}`))
	}))
	defer srv.Close()

	client := NewClient(provider.Config{APIKey: "or-key", Model: "google/gemini-2.5-flash", BaseURL: srv.URL, MaxTokens: 2048})
	resp, err := client.Generate(context.Background(), provider.NewTextRequest("recipe please"))
	require.NoError(t, err)
	assert.Equal(t, "Dal Tadka", resp.Content)
	assert.Equal(t, 30, resp.Usage.TotalTokens)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error": {"message": "slow down", "code": 429}}`, ai.ErrRateLimited},
		{"upstream failure", http.StatusBadGateway, `{"error": {"message": "provider down"}}`, ai.ErrServiceUnavailable},
		{"no choices", http.StatusOK, `{"choices": []}`, ai.ErrEmptyResponse},
		{"blank content", http.StatusOK, `{"choices": [{"message": {"role": "assistant", "content": "  "}}]}`, ai.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(provider.Config{Model: "m", BaseURL: srv.URL})
			_, err := client.Generate(context.Background(), provider.NewTextRequest("x"))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
