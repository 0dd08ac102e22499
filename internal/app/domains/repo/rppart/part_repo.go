package rppart

import (
	"context"

	"ftaorigin/internal/app/domains/entity/etpart"
)

// PartRepository 零件与 BOM 仓储接口
// 实现在 part_repo_impl.go（gorm）
type PartRepository interface {
	// GetByID 根据物料号查询零件，不存在时返回 errorx.ErrPartNotFound
	GetByID(ctx context.Context, partID string) (*etpart.Part, error)

	// GetChildren 查询直接子件（按 BOM 录入顺序），父件不存在时返回空
	GetChildren(ctx context.Context, parentID string) ([]*etpart.Child, error)

	// List 查询零件列表，partType 为空时返回全部
	List(ctx context.Context, partType string) ([]*etpart.Part, error)

	// Create 创建零件
	Create(ctx context.Context, part *etpart.Part) error

	// CreateEdge 创建 BOM 边
	CreateEdge(ctx context.Context, edge *etpart.BOMEdge) error

	// ListEdges 查询全部 BOM 边
	ListEdges(ctx context.Context) ([]*etpart.BOMEdge, error)

	// Clear 清空零件与 BOM
	Clear(ctx context.Context) error
}
