package framework

import (
	"context"
	"fmt"
)

// StepFunc Handler 内的单个处理步骤
type StepFunc func(ctx context.Context) error

// Chain 顺序执行的步骤链，任一步骤失败即停止
type Chain struct {
	steps []StepFunc
}

// NewChain 创建步骤链
func NewChain(steps ...StepFunc) *Chain {
	return &Chain{steps: steps}
}

// Run 执行步骤链
// 返回的错误保留原始错误链，便于上层判断是否可重试
func (c *Chain) Run(ctx context.Context) error {
	for i, step := range c.steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step[%d] aborted: %w", i, err)
		}
		if err := step(ctx); err != nil {
			return fmt.Errorf("step[%d] failed: %w", i, err)
		}
	}
	return nil
}
