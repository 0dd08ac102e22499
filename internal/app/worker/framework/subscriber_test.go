package framework

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/pkg/logger"
)

// countingSource 每次拉取返回一条新任务
type countingSource struct {
	consumed *atomic.Int64
}

func (s *countingSource) Consume(queue string, _, _ time.Duration) (*Message, error) {
	n := s.consumed.Inc()
	return &Message{ID: strconv.FormatInt(n, 10), Queue: queue}, nil
}

func (s *countingSource) Ack(string, string) error { return nil }

func TestSubscriber_StopBeforeStart(t *testing.T) {
	source := &countingSource{consumed: atomic.NewInt64(0)}
	sub := NewSubscriber("origin_determine", config.SubscriberConfig{Threads: 3}, source, logger.NewNopLogger())

	sub.Stop()
	started := sub.Start(context.Background(), make(chan *Message))

	assert.False(t, started)
	sub.Wait()
	assert.Zero(t, source.consumed.Load())
}

func TestSubscriber_StopUnblocksPendingSend(t *testing.T) {
	source := &countingSource{consumed: atomic.NewInt64(0)}
	sub := NewSubscriber("origin_determine", config.SubscriberConfig{Threads: 2}, source, logger.NewNopLogger())

	// 无人接收，拉取协程阻塞在发送上
	out := make(chan *Message)
	require.True(t, sub.Start(context.Background(), out))
	require.Eventually(t, func() bool { return source.consumed.Load() >= 2 }, time.Second, 5*time.Millisecond)

	sub.Stop()
	sub.Stop()

	done := make(chan struct{})
	go func() {
		sub.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscriber did not exit after stop")
	}
}
