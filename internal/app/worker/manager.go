package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/pkg/logger"
	"ftaorigin/internal/app/worker/framework"
	"ftaorigin/internal/app/worker/jobs"
)

// Manager 接口
type Manager interface {
	Start() error
	Shutdown()
}

// ManagerInstance Manager 实例
type ManagerInstance struct {
	ctx        context.Context
	cfgs       []config.WorkerConfig
	source     framework.JobSource
	deps       *jobs.Deps
	workers    []Worker
	mu         sync.Mutex
	closing    *atomic.Bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	logger     logger.Logger
}

// NewManagerInstance 创建 Manager
func NewManagerInstance(cfgs []config.WorkerConfig, source framework.JobSource, deps *jobs.Deps, log logger.Logger) (Manager, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("at least one worker config is required")
	}
	if source == nil {
		return nil, fmt.Errorf("message source is required")
	}

	m := &ManagerInstance{
		ctx:        context.Background(),
		cfgs:       cfgs,
		source:     source,
		deps:       deps,
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		logger:     log,
	}
	m.loadWorkers()
	log.Infof(m.ctx, "[Manager] All workers loaded, count: %d", len(m.workers))

	return m, nil
}

// Start 启动所有 Worker，阻塞直到 Shutdown
func (m *ManagerInstance) Start() error {
	m.mu.Lock()
	if m.closing.Load() {
		m.mu.Unlock()
		return nil
	}
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	for _, w := range m.workers {
		w := w
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			w.Start()
		}()
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}
	m.mu.Unlock()

	<-m.shutdownCh
	return nil
}

// Shutdown 优雅退出，可重复调用
func (m *ManagerInstance) Shutdown() {
	m.mu.Lock()
	if !m.closing.CAS(false, true) {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	for _, w := range m.workers {
		m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", w.GetName())
		w.Shutdown()
	}
	m.wg.Wait()

	close(m.shutdownCh)
	m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
}

// loadWorkers 按配置创建 Worker，所有队列共用同一个判定处理函数
func (m *ManagerInstance) loadWorkers() {
	proc := jobs.GetProcess(m.logger, m.deps)

	for _, wc := range m.cfgs {
		m.workers = append(m.workers, NewWorkerInstance(m.ctx, wc, m.source, proc, m.logger))
	}
}
