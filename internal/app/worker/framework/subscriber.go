package framework

import (
	"context"
	"sync"
	"time"

	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/pkg/logger"
)

// Subscriber 从判定队列预留任务并交给 Processor
type Subscriber struct {
	queue  string
	cfg    config.SubscriberConfig
	source JobSource
	logger logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

// NewSubscriber 创建订阅者
func NewSubscriber(queue string, cfg config.SubscriberConfig, source JobSource, log logger.Logger) *Subscriber {
	return &Subscriber{
		queue:  queue,
		cfg:    cfg,
		source: source,
		logger: log,
	}
}

// Start 启动拉取协程，已 Stop 的订阅者不再启动并返回 false
func (s *Subscriber) Start(parentCtx context.Context, out chan<- *Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.logger.Warnf(parentCtx, "[Subscriber] %s already stopped, skip start", s.queue)
		return false
	}

	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	s.logger.Infof(ctx, "[Subscriber] Pulling %s with %d threads", s.queue, s.cfg.Threads)
	for i := 0; i < s.cfg.Threads; i++ {
		s.wg.Add(1)
		go s.loop(ctx, i, out)
	}
	return true
}

// Stop 停止拉取新任务，可重复调用
func (s *Subscriber) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	if s.cancel != nil {
		s.cancel()
	}
}

// Wait 等待拉取协程退出，需在 Stop 之后调用
func (s *Subscriber) Wait() {
	s.wg.Wait()
}

func (s *Subscriber) loop(ctx context.Context, id int, out chan<- *Message) {
	defer s.wg.Done()

	for ctx.Err() == nil {
		msg, err := s.source.Consume(s.queue, s.cfg.Timeout, s.cfg.TTR)
		if err != nil {
			s.logger.Warnf(ctx, "[Subscriber-%d] consume %s failed: %v", id, s.queue, err)
			if !sleep(ctx, s.cfg.ErrorBackoff) {
				return
			}
			continue
		}
		if msg == nil {
			continue
		}

		select {
		case out <- msg:
		case <-ctx.Done():
			// 未 ACK，TTR 到期后重新投递
			s.logger.Warnf(ctx, "[Subscriber-%d] shutdown with reserved job %s", id, msg.ID)
			return
		}

		if !sleep(ctx, s.cfg.Rate) {
			return
		}
	}
}

// sleep 可被取消的等待，ctx 取消时返回 false
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
