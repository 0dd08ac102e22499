package framework

import (
	"context"
	"time"
)

// Message 从判定队列预留出的一条任务
type Message struct {
	ID    string
	Queue string
	Data  []byte // 任务 JSON（model.OriginDetermineJob）
}

// JobSource 判定任务来源，生产环境为 lmstfy
// Consume 预留任务 ttr 时长，未 Ack 的任务到期后重新可见
type JobSource interface {
	Consume(queue string, timeout, ttr time.Duration) (*Message, error)
	Ack(queue, jobID string) error
}

// Handler 已解析任务的业务处理，返回值写入 JobResp.Data
type Handler interface {
	Handle(ctx context.Context) ([]byte, error)
}
