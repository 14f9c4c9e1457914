package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"recipe-master/internal/core/ai"
	"recipe-master/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(provider.Config{
		APIKey:      "test-key",
		Model:       "gemini-2.5-flash",
		BaseURL:     srv.URL,
		Timeout:     5 * time.Second,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
}

func TestGenerate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body generateRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) && assert.Len(t, body.Contents, 1) {
			assert.Equal(t, "user", body.Contents[0].Role)
			assert.Equal(t, "Create a recipe", body.Contents[0].Parts[0].Text)
		}
		if assert.NotNil(t, body.GenerationConfig) {
			assert.Equal(t, 1024, body.GenerationConfig.MaxOutputTokens)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Paneer "}, {"text": "Butter Masala"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 340, "totalTokenCount": 352}
		}`))
	})

	resp, err := client.Generate(context.Background(), provider.NewTextRequest("Create a recipe"))
	require.NoError(t, err)
	assert.Equal(t, "Paneer Butter Masala", resp.Content)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Equal(t, 352, resp.Usage.TotalTokens)
}

func TestGenerateRateLimited(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "Quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.Generate(context.Background(), provider.NewTextRequest("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load(), "no retries")

	var apiErr *ai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "RESOURCE_EXHAUSTED", apiErr.Status)
	assert.Equal(t, "Quota exceeded", apiErr.Message)
}

func TestGenerateServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Generate(context.Background(), provider.NewTextRequest("x"))
	assert.ErrorIs(t, err, ai.ErrServiceUnavailable)
	assert.NotErrorIs(t, err, ai.ErrRateLimited)
}

func TestGenerateEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`))
	})

	_, err := client.Generate(context.Background(), provider.NewTextRequest("x"))
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestBuildRequestRoles(t *testing.T) {
	c := NewClient(provider.Config{})
	body := c.buildRequest(&provider.Request{Messages: []provider.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}})

	require.NotNil(t, body.SystemInstruction)
	assert.Equal(t, "be brief", body.SystemInstruction.Parts[0].Text)
	require.Len(t, body.Contents, 2)
	assert.Equal(t, "model", body.Contents[1].Role)
	assert.Nil(t, body.GenerationConfig)
	assert.Equal(t, defaultModel, c.GetModel())
}
