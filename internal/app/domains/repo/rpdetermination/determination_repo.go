package rpdetermination

import (
	"context"

	"ftaorigin/internal/app/domains/entity/etorigin"
)

// DeterminationRepository 判定历史仓储接口
type DeterminationRepository interface {
	// Append 追加判定记录，回写自增 ID
	Append(ctx context.Context, d *etorigin.Determination) error

	// List 按时间倒序查询判定记录，partID 为空表示全部，limit <= 0 表示不限制
	List(ctx context.Context, partID string, limit int) ([]*etorigin.Determination, error)

	// Count 判定记录总数
	Count(ctx context.Context) (int64, error)

	// Clear 清空判定历史
	Clear(ctx context.Context) error
}
