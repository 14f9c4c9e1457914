package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// 生成服務錯誤，呼叫端以 errors.Is 判斷
var (
	ErrRateLimited        = errors.New("generation rate limited")
	ErrServiceUnavailable = errors.New("generation service unavailable")
	ErrEmptyResponse      = errors.New("empty generation response")
)

// APIError 生成服務回傳的非 2xx 響應
type APIError struct {
	Provider   string
	StatusCode int
	Status     string // 例如 RESOURCE_EXHAUSTED
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s API error (status %d %s): %s", e.Provider, e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Unwrap 429 與配額耗盡視為限流，其餘皆為服務不可用
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests || e.Status == "RESOURCE_EXHAUSTED" {
		return ErrRateLimited
	}
	return ErrServiceUnavailable
}
