package service

import (
	"fmt"

	"recipe-master/internal/core/ai/gemini"
	"recipe-master/internal/core/ai/openrouter"
	"recipe-master/internal/core/ai/provider"
	"recipe-master/internal/infrastructure/config"
)

// NewProvider 依 generation.provider 建立對應的客戶端
func NewProvider(cfg *config.Config) (provider.Provider, error) {
	switch cfg.Generation.Provider {
	case "", "gemini":
		return gemini.NewClient(provider.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			BaseURL:     cfg.Gemini.BaseURL,
			Timeout:     cfg.Gemini.Timeout,
			MaxTokens:   cfg.Gemini.MaxTokens,
			Temperature: cfg.Gemini.Temperature,
		}), nil
	case "openrouter":
		return openrouter.NewClient(provider.Config{
			APIKey:      cfg.OpenRouter.APIKey,
			Model:       cfg.OpenRouter.Model,
			BaseURL:     cfg.OpenRouter.BaseURL,
			Timeout:     cfg.OpenRouter.Timeout,
			MaxTokens:   cfg.OpenRouter.MaxTokens,
			Temperature: cfg.OpenRouter.Temperature,
		}), nil
	}
	return nil, fmt.Errorf("unknown generation provider: %q", cfg.Generation.Provider)
}
