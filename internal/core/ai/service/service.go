package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-master/internal/core/ai/cache"
	"recipe-master/internal/core/ai/provider"
	"recipe-master/internal/core/ai/queue"
	"recipe-master/internal/infrastructure/config"
	"recipe-master/internal/pkg/common"

	"go.uber.org/zap"
)

const responseCachePrefix = "ai:response:"

// Response AI 回應結構
type Response struct {
	Content  string
	Model    string
	CacheHit bool
	Usage    provider.Usage
}

// Service AI 服務：回應快取、排隊與呼叫 provider
type Service struct {
	provider provider.Provider
	queue    *queue.Manager
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService 創建 AI 服務並啟動 worker；cache 可為 nil
func NewService(cfg *config.Config, p provider.Provider, c cache.Cache) *Service {
	s := &Service{
		provider: p,
		queue:    queue.NewManager(cfg.Generation),
	}
	if cfg.Cache.Enabled {
		s.cache = c
		s.cacheTTL = cfg.Cache.TTL
	}
	s.queue.Start(s.generate)
	return s
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*Response, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, common.NewInvalidRequestError("prompt", "must not be empty")
	}

	key := s.cacheKey(prompt)
	if s.cache != nil {
		val, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && val != "":
			common.LogCacheHit("ai_response")
			return &Response{Content: val, Model: s.provider.GetModel(), CacheHit: true}, nil
		case err != nil && !errors.Is(err, common.ErrCacheMiss):
			common.LogWarn("讀取回應快取失敗", zap.Error(err))
		default:
			common.LogCacheMiss("ai_response")
		}
	}

	resp, err := s.queue.Submit(ctx, provider.NewTextRequest(prompt))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp.Content, s.cacheTTL); err != nil {
			common.LogWarn("寫入回應快取失敗", zap.Error(err))
		}
	}

	return &Response{Content: resp.Content, Model: resp.Model, Usage: resp.Usage}, nil
}

// generate 由 worker 呼叫
func (s *Service) generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	start := time.Now()
	resp, err := s.provider.Generate(ctx, req)
	common.LogAICall(s.provider.GetModel(), time.Since(start), err, common.RequestIDFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	return resp, nil
}

// cacheKey 統一 prompt 空白後與模型一起哈希，確保快取 key 一致
func (s *Service) cacheKey(prompt string) string {
	normalized := strings.Join(strings.Fields(prompt), " ")
	return responseCachePrefix + cache.HashKey(s.provider.GetModel(), normalized)
}

// Model 目前使用的模型
func (s *Service) Model() string {
	return s.provider.GetModel()
}

// QueueStatus 隊列狀態
func (s *Service) QueueStatus() *queue.Status {
	return s.queue.GetQueueStatus()
}

// Close 停止 worker 並關閉 provider
func (s *Service) Close() error {
	s.queue.Close()
	return s.provider.Close()
}
