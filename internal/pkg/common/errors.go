package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"error"`             // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 取得原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Wrap 以相同代碼包裝原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// Response 轉換成 API 錯誤響應，debug 模式下附上原始錯誤
func (e *CustomError) Response(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// InvalidRequestError 表示呼叫端違反請求前置條件
type InvalidRequestError struct {
	Field   string
	Message string
}

// Error 實現 error 介面
func (e *InvalidRequestError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewInvalidRequestError 創建新的請求驗證錯誤
func NewInvalidRequestError(field, message string) error {
	return &InvalidRequestError{
		Field:   field,
		Message: message,
	}
}

// IsInvalidRequestError 檢查是否為請求驗證錯誤
func IsInvalidRequestError(err error) bool {
	var target *InvalidRequestError
	return errors.As(err, &target)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// 業務錯誤
	ErrCodeExportEncoding = "EXPORT_ENCODING_ERROR"
	ErrCodeExportFailed   = "EXPORT_FAILED"
	ErrCodeRateLimited    = "GENERATION_RATE_LIMITED"
	ErrCodeAIService      = "AI_SERVICE_ERROR"
	ErrCodeQueueFull      = "QUEUE_FULL"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "Invalid request", http.StatusBadRequest, nil)
	ErrMissingDishName = NewError(ErrCodeInvalidRequest, "Please enter a recipe name first", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "Resource not found", http.StatusNotFound, nil)
	ErrRecipeNotFound  = NewError(ErrCodeNotFound, "Recipe not found or expired", http.StatusNotFound, nil)
	ErrUnknownFormat   = NewError(ErrCodeNotFound, "Unknown export format", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "Service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "Gateway timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrExportEncoding      = NewError(ErrCodeExportEncoding, "Text contains characters the PDF encoder cannot represent", http.StatusUnprocessableEntity, nil)
	ErrExportFailed        = NewError(ErrCodeExportFailed, "Export failed", http.StatusInternalServerError, nil)
	ErrGenerationLimited   = NewError(ErrCodeRateLimited, "Generation service rate limit reached, try again later", http.StatusTooManyRequests, nil)
	ErrAIServiceError      = NewError(ErrCodeAIService, "Generation service error", http.StatusBadGateway, nil)
	ErrGenerationQueueFull = NewError(ErrCodeQueueFull, "Generation queue is full", http.StatusServiceUnavailable, nil)
	ErrCacheFull           = NewError("CACHE_FULL", "Cache is full", http.StatusServiceUnavailable, nil)
	ErrCacheMiss           = NewError("CACHE_MISS", "Cache miss", http.StatusNotFound, nil)
)
