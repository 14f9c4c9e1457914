package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"recipe-master/internal/core/ai/provider"
	"recipe-master/internal/infrastructure/config"
	"recipe-master/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull 隊列已滿，請求不會排隊等待
	ErrQueueFull = errors.New("generation queue is full")
	// ErrClosed 隊列管理器已關閉
	ErrClosed = errors.New("queue manager is closed")
)

// Handler 實際處理請求的函式，通常是 provider.Generate
type Handler func(ctx context.Context, req *provider.Request) (*provider.Response, error)

// Request 隊列請求
type Request struct {
	Context context.Context
	Request *provider.Request
	Result  chan Result
}

// Result 處理結果
type Result struct {
	Response *provider.Response
	Error    error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 隊列管理器，固定數量的 worker 消化有上限的請求隊列
type Manager struct {
	workers   int
	maxSize   int
	queue     chan *Request
	done      chan struct{}
	processed int64
	mu        sync.RWMutex
	closed    bool
	started   bool
	wg        sync.WaitGroup
}

// NewManager 創建新的隊列管理器
func NewManager(cfg config.GenerationConfig) *Manager {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	maxSize := cfg.MaxQueueSize
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Manager{
		workers: workers,
		maxSize: maxSize,
		queue:   make(chan *Request, maxSize),
		done:    make(chan struct{}),
	}
}

// Start 啟動 worker，重複呼叫無效
func (m *Manager) Start(handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started || m.closed {
		return
	}
	m.started = true

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(handler)
	}
	common.LogInfo("Generation workers started",
		zap.Int("workers", m.workers),
		zap.Int("max_queue_size", m.maxSize),
	)
}

func (m *Manager) worker(handler Handler) {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			return
		case req := <-m.queue:
			m.process(handler, req)
		}
	}
}

func (m *Manager) process(handler Handler, req *Request) {
	// 等待期間已取消的請求不再送出
	if err := req.Context.Err(); err != nil {
		m.IncrementProcessed()
		req.Result <- Result{Error: err}
		return
	}

	resp, err := handler(req.Context, req.Request)
	m.IncrementProcessed()
	req.Result <- Result{Response: resp, Error: err}
}

// Enqueue 將請求加入隊列，隊列已滿時立即回傳 ErrQueueFull
func (m *Manager) Enqueue(ctx context.Context, req *provider.Request) (chan Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	queueReq := &Request{
		Context: ctx,
		Request: req,
		Result:  make(chan Result, 1),
	}

	select {
	case m.queue <- queueReq:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.maxSize),
		)
		return queueReq.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		common.LogWarn("Generation queue full", zap.Int("max_queue_size", m.maxSize))
		return nil, ErrQueueFull
	}
}

// Submit 排隊並等待結果
func (m *Manager) Submit(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	ch, err := m.Enqueue(ctx, req)
	if err != nil {
		return nil, err
	}
	select {
	case res := <-ch:
		return res.Response, res.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
	}
}

// IncrementProcessed 增加處理計數
func (m *Manager) IncrementProcessed() {
	atomic.AddInt64(&m.processed, 1)
}

// Close 停止 worker，仍在隊列中的請求回傳 ErrClosed；可重複呼叫
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.done)
	m.mu.Unlock()

	m.wg.Wait()

	for {
		select {
		case req := <-m.queue:
			req.Result <- Result{Error: ErrClosed}
		default:
			return
		}
	}
}
