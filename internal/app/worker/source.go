package worker

import (
	"time"

	"ftaorigin/internal/app/infra/mq/lmstfy"
	"ftaorigin/internal/app/worker/framework"
)

// lmstfySource 将 lmstfy 客户端适配为 framework.JobSource
type lmstfySource struct {
	cli *lmstfy.Client
}

// NewLmstfySource 创建 lmstfy 消息源
func NewLmstfySource(cli *lmstfy.Client) framework.JobSource {
	return &lmstfySource{cli: cli}
}

func (s *lmstfySource) Consume(queue string, timeout, ttr time.Duration) (*framework.Message, error) {
	msg, err := s.cli.Consume(queue, timeout, ttr)
	if err != nil || msg == nil {
		return nil, err
	}
	return &framework.Message{
		ID:    msg.ID,
		Queue: msg.Queue,
		Data:  msg.Data,
	}, nil
}

func (s *lmstfySource) Ack(queue, jobID string) error {
	return s.cli.Ack(queue, jobID)
}
