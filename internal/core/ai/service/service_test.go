package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"recipe-master/internal/core/ai"
	"recipe-master/internal/core/ai/cache"
	"recipe-master/internal/core/ai/provider"
	"recipe-master/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls atomic.Int32
	err   error
}

func (f *fakeProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: "recipe for: " + req.Messages[0].Content, Model: "fake-model"}, nil
}

func (f *fakeProvider) GetModel() string          { return "fake-model" }
func (f *fakeProvider) GetTimeout() time.Duration { return time.Second }
func (f *fakeProvider) Close() error              { return nil }

func testConfig(cacheEnabled bool) *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{Provider: "gemini", Workers: 1, MaxQueueSize: 4},
		Cache:      config.CacheConfig{Enabled: cacheEnabled, Backend: "memory", MaxSize: 10, TTL: time.Minute},
	}
}

func TestProcessRequestCaches(t *testing.T) {
	cfg := testConfig(true)
	p := &fakeProvider{}
	c := cache.NewManager(cfg.Cache)
	defer c.Close()

	s := NewService(cfg, p, c)
	defer s.Close()

	ctx := context.Background()
	first, err := s.ProcessRequest(ctx, "Paneer\n  Butter Masala")
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.True(t, strings.HasPrefix(first.Content, "recipe for: Paneer\n"))

	// 空白差異視為同一個 prompt
	second, err := s.ProcessRequest(ctx, "Paneer Butter   Masala ")
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestProcessRequestWithoutCache(t *testing.T) {
	p := &fakeProvider{}
	s := NewService(testConfig(false), p, nil)
	defer s.Close()

	for i := 0; i < 2; i++ {
		_, err := s.ProcessRequest(context.Background(), "Dal")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), p.calls.Load())
	assert.Equal(t, int64(2), s.QueueStatus().ProcessedCount)
}

func TestProcessRequestErrors(t *testing.T) {
	p := &fakeProvider{err: &ai.APIError{Provider: "fake", StatusCode: 429}}
	s := NewService(testConfig(true), p, cache.NewManager(testConfig(true).Cache))
	defer s.Close()

	_, err := s.ProcessRequest(context.Background(), "Dal")
	assert.ErrorIs(t, err, ai.ErrRateLimited)

	_, err = s.ProcessRequest(context.Background(), "   ")
	assert.Error(t, err)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestNewProvider(t *testing.T) {
	cfg := &config.Config{Generation: config.GenerationConfig{Provider: "openrouter"}}
	cfg.OpenRouter.Model = "google/gemini-2.5-flash"
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.5-flash", p.GetModel())

	cfg.Generation.Provider = "gemini"
	cfg.Gemini.Model = "gemini-2.5-flash"
	p, err = NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", p.GetModel())

	cfg.Generation.Provider = "bard"
	_, err = NewProvider(cfg)
	assert.Error(t, err)
}
