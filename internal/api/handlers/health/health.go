package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-master/internal/core/ai/queue"
	"recipe-master/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueueReporter 提供生成隊列狀態
type QueueReporter interface {
	QueueStatus() *queue.Status
	Model() string
}

// StatsReporter 提供快取統計
type StatsReporter interface {
	GetStats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Model     string                 `json:"model,omitempty"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	version string
	queue   QueueReporter
	cache   StatsReporter
}

// NewHandler 創建健康檢查處理器，cache 可為 nil
func NewHandler(version string, q QueueReporter, cache StatsReporter) *Handler {
	return &Handler{version: version, queue: q, cache: cache}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.queue != nil {
		response.Queue = h.queue.QueueStatus()
		response.Model = h.queue.Model()
	}
	if h.cache != nil {
		response.Cache = h.cache.GetStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 隊列已滿時回報尚未就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.queue != nil {
		if status := h.queue.QueueStatus(); status.QueueLength >= status.MaxQueueSize {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "busy",
				"queue":  status,
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
