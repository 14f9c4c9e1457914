package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"recipe-master/internal/core/ai/provider"
	"recipe-master/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	return &provider.Response{Content: req.Messages[0].Content, Model: "echo"}, nil
}

func TestSubmit(t *testing.T) {
	m := NewManager(config.GenerationConfig{Workers: 2, MaxQueueSize: 4})
	m.Start(echoHandler)
	defer m.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := m.Submit(context.Background(), provider.NewTextRequest("hello"))
			assert.NoError(t, err)
			assert.Equal(t, "hello", resp.Content)
		}()
	}
	wg.Wait()

	status := m.GetQueueStatus()
	assert.Equal(t, int64(4), status.ProcessedCount)
	assert.Equal(t, 2, status.Workers)
	assert.Equal(t, 4, status.MaxQueueSize)
}

func TestEnqueueFull(t *testing.T) {
	// 未啟動 worker，隊列只進不出
	m := NewManager(config.GenerationConfig{Workers: 1, MaxQueueSize: 1})
	defer m.Close()

	_, err := m.Enqueue(context.Background(), provider.NewTextRequest("a"))
	require.NoError(t, err)

	_, err = m.Enqueue(context.Background(), provider.NewTextRequest("b"))
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 1, m.GetQueueStatus().QueueLength)
}

func TestSubmitContextCancelled(t *testing.T) {
	block := make(chan struct{})
	m := NewManager(config.GenerationConfig{Workers: 1, MaxQueueSize: 2})
	m.Start(func(ctx context.Context, req *provider.Request) (*provider.Response, error) {
		<-block
		return &provider.Response{Content: "late"}, nil
	})
	defer m.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Submit(ctx, provider.NewTextRequest("x"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseDrainsQueue(t *testing.T) {
	m := NewManager(config.GenerationConfig{Workers: 1, MaxQueueSize: 2})
	ch, err := m.Enqueue(context.Background(), provider.NewTextRequest("pending"))
	require.NoError(t, err)

	m.Close()
	m.Close()

	res := <-ch
	assert.ErrorIs(t, res.Error, ErrClosed)

	_, err = m.Enqueue(context.Background(), provider.NewTextRequest("after"))
	assert.ErrorIs(t, err, ErrClosed)
}
