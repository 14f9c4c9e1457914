package recipe

import (
	"context"
	"errors"

	"recipe-master/internal/core/ai"
	"recipe-master/internal/core/ai/queue"
	"recipe-master/internal/core/export"
	"recipe-master/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// getRequestID 取得請求 ID，沒有時產生一個並寫回響應頭
func getRequestID(c *gin.Context) string {
	requestID := requestid.Get(c)
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// ToCustomError 將領域錯誤轉換成 API 錯誤
func ToCustomError(err error) *common.CustomError {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		return custom
	}

	var invalid *common.InvalidRequestError
	if errors.As(err, &invalid) {
		if invalid.Field == "dish_name" {
			return common.ErrMissingDishName.Wrap(err)
		}
		return common.NewError(common.ErrCodeInvalidRequest, invalid.Error(), common.ErrInvalidRequest.Status, err)
	}

	var encErr *export.EncodingError
	switch {
	case errors.As(err, &encErr):
		return common.ErrExportEncoding.Wrap(err)
	case errors.Is(err, ai.ErrRateLimited):
		return common.ErrGenerationLimited.Wrap(err)
	case errors.Is(err, ai.ErrServiceUnavailable), errors.Is(err, ai.ErrEmptyResponse):
		return common.ErrAIServiceError.Wrap(err)
	case errors.Is(err, queue.ErrQueueFull):
		return common.ErrGenerationQueueFull.Wrap(err)
	case errors.Is(err, queue.ErrClosed):
		return common.ErrServiceUnavailable.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.Wrap(err)
	}
	return common.ErrInternalError.Wrap(err)
}

// writeError 記錄並回傳錯誤響應
func (h *Handler) writeError(c *gin.Context, requestID string, err error) {
	custom := ToCustomError(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", custom.Code),
		zap.String("request_id", requestID),
	}
	if custom.Status >= 500 {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求處理失敗", fields...)
	}

	c.AbortWithStatusJSON(custom.Status, custom.Response(h.debug))
}

// artifactError 單一匯出檔失敗的描述
func artifactError(err error) *common.ErrorResponse {
	if err == nil {
		return nil
	}
	custom := ToCustomError(err)
	if custom.Code == common.ErrCodeInternalError {
		custom = common.ErrExportFailed.Wrap(err)
	}
	resp := custom.Response(true)
	return &resp
}
