package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"recipe-master/internal/infrastructure/config"
)

// Cache 字串鍵值快取，未命中時回傳 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set ttl 為 0 時使用預設存活時間
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetStats() map[string]interface{}
	Close() error
}

// New 依設定建立記憶體或 Redis 快取
func New(ctx context.Context, cacheCfg config.CacheConfig, redisCfg config.RedisConfig) (Cache, error) {
	switch cacheCfg.Backend {
	case "", "memory":
		return NewManager(cacheCfg), nil
	case "redis":
		return NewService(ctx, redisCfg, cacheCfg.TTL)
	}
	return nil, fmt.Errorf("unknown cache backend: %q", cacheCfg.Backend)
}

// HashKey 計算字串的 SHA-256 哈希值
func HashKey(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
