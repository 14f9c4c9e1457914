package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-master/internal/core/ai/cache"
	"recipe-master/internal/pkg/common"
)

const storeKeyPrefix = "recipe:"

// Store 以 ID 保存已生成的食譜，過期後無法再下載
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewStore 創建食譜保存區
func NewStore(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

// Save 保存食譜，ID 為空時自動產生
func (s *Store) Save(ctx context.Context, r *GeneratedRecipe) error {
	if r.ID == "" {
		r.ID = common.GenerateUUID()
	}
	data, err := common.ToJSON(r)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}
	if err := s.cache.Set(ctx, storeKeyPrefix+r.ID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// Load 取回食譜，不存在或已過期時回傳 common.ErrRecipeNotFound
func (s *Store) Load(ctx context.Context, id string) (*GeneratedRecipe, error) {
	if !common.IsValidUUID(id) {
		return nil, common.ErrRecipeNotFound
	}

	data, err := s.cache.Get(ctx, storeKeyPrefix+id)
	if err != nil {
		if errors.Is(err, common.ErrCacheMiss) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	var r GeneratedRecipe
	if err := common.ParseJSON(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	return &r, nil
}
