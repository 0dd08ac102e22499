package worker

import (
	"context"
	"sync"

	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/pkg/lmstfyx"
	"ftaorigin/internal/app/pkg/logger"
	"ftaorigin/internal/app/worker/framework"
)

// Worker 消费单个判定队列
type Worker interface {
	Start()
	Shutdown()
	GetName() string
}

// QueueWorker 一个队列对应一组拉取协程和一组判定协程，经 jobs 通道衔接
type QueueWorker struct {
	ctx        context.Context
	name       string
	subscriber *framework.Subscriber
	processor  *framework.Processor
	jobs       chan *framework.Message
	logger     logger.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
}

// NewWorkerInstance 按 worker 配置创建队列消费者
func NewWorkerInstance(ctx context.Context, wc config.WorkerConfig, source framework.JobSource, proc lmstfyx.Proc, log logger.Logger) Worker {
	return &QueueWorker{
		ctx:        ctx,
		name:       wc.Name,
		subscriber: framework.NewSubscriber(wc.QueueName, wc.Subscriber, source, log),
		processor:  framework.NewProcessor(wc.Processor, proc, source, log),
		jobs:       make(chan *framework.Message, wc.Processor.BufferSize),
		logger:     log,
		done:       make(chan struct{}),
	}
}

// Start 启动消费并阻塞到 Shutdown 完成，Shutdown 之后调用直接返回
func (w *QueueWorker) Start() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		w.logger.Warnf(w.ctx, "[Worker] %s already shut down, skip start", w.name)
		return
	}
	w.processor.Start(w.ctx, w.jobs)
	w.subscriber.Start(w.ctx, w.jobs)
	w.started = true
	w.mu.Unlock()

	w.logger.Infof(w.ctx, "[Worker] %s consuming", w.name)
	<-w.done
}

// Shutdown 先停止预留新任务，再处理完已取出的任务
func (w *QueueWorker) Shutdown() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	if started {
		w.subscriber.Stop()
		w.subscriber.Wait()

		w.processor.SignalShutdown()
		w.processor.Wait()
	}

	close(w.done)
	w.logger.Infof(w.ctx, "[Worker] %s stopped", w.name)
}

// GetName Worker 名称
func (w *QueueWorker) GetName() string {
	return w.name
}
