package rppart

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ftaorigin/common/entity"
	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/pkg/errorx"
)

// PartRepositoryImpl 零件仓储实现（MySQL/SQLite）
type PartRepositoryImpl struct {
	db *gorm.DB
}

// NewPartRepository 创建零件仓储实例
func NewPartRepository(db *gorm.DB) PartRepository {
	return &PartRepositoryImpl{db: db}
}

// childRow BOM 与子件物料的联表结果
type childRow struct {
	Matnr  string
	Mtart  string
	Maktx  string
	HSCode string `gorm:"column:hscode"`
	Origin string
	Price  decimal.Decimal
	Menge  decimal.Decimal
}

// GetByID 根据物料号查询零件
func (r *PartRepositoryImpl) GetByID(ctx context.Context, partID string) (*etpart.Part, error) {
	var po entity.Material
	err := r.db.WithContext(ctx).Where("matnr = ?", partID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrPartNotFound
		}
		return nil, errorx.Lookup("get part", err)
	}
	return r.toDomainModel(&po), nil
}

// GetChildren 查询直接子件
// 子件物料缺失的 BOM 行被忽略（内连接）
func (r *PartRepositoryImpl) GetChildren(ctx context.Context, parentID string) ([]*etpart.Child, error) {
	var rows []childRow
	err := r.db.WithContext(ctx).
		Table("zpp_bom AS b").
		Select("c.matnr, c.mtart, c.maktx, c.hscode, c.origin, c.price, b.menge").
		Joins("JOIN zmm_material AS c ON c.matnr = b.matnr_c").
		Where("b.matnr_p = ?", parentID).
		Order("b.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errorx.Lookup("get children", err)
	}

	children := make([]*etpart.Child, 0, len(rows))
	for _, row := range rows {
		children = append(children, &etpart.Child{
			Part: &etpart.Part{
				ID:          row.Matnr,
				Type:        row.Mtart,
				Description: row.Maktx,
				HSCode:      row.HSCode,
				Origin:      row.Origin,
				UnitPrice:   row.Price,
			},
			Quantity: row.Menge,
		})
	}
	return children, nil
}

// List 查询零件列表
func (r *PartRepositoryImpl) List(ctx context.Context, partType string) ([]*etpart.Part, error) {
	var pos []entity.Material

	query := r.db.WithContext(ctx).Model(&entity.Material{})
	if partType != "" {
		query = query.Where("mtart = ?", partType)
	}
	if err := query.Order("matnr ASC").Find(&pos).Error; err != nil {
		return nil, errorx.Lookup("list parts", err)
	}

	parts := make([]*etpart.Part, 0, len(pos))
	for i := range pos {
		parts = append(parts, r.toDomainModel(&pos[i]))
	}
	return parts, nil
}

// Create 创建零件
func (r *PartRepositoryImpl) Create(ctx context.Context, part *etpart.Part) error {
	po := &entity.Material{
		Matnr:     part.ID,
		Mtart:     part.Type,
		Maktx:     part.Description,
		HSCode:    part.HSCode,
		Origin:    part.Origin,
		Price:     part.UnitPrice,
		CreatedAt: time.Now(),
	}
	return errorx.Lookup("create part", r.db.WithContext(ctx).Create(po).Error)
}

// CreateEdge 创建 BOM 边
func (r *PartRepositoryImpl) CreateEdge(ctx context.Context, edge *etpart.BOMEdge) error {
	po := &entity.BOMItem{
		MatnrP:    edge.ParentID,
		MatnrC:    edge.ChildID,
		Menge:     edge.Quantity,
		CreatedAt: time.Now(),
	}
	return errorx.Lookup("create bom edge", r.db.WithContext(ctx).Create(po).Error)
}

// ListEdges 查询全部 BOM 边（按录入顺序）
func (r *PartRepositoryImpl) ListEdges(ctx context.Context) ([]*etpart.BOMEdge, error) {
	var pos []entity.BOMItem
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&pos).Error; err != nil {
		return nil, errorx.Lookup("list bom edges", err)
	}

	edges := make([]*etpart.BOMEdge, 0, len(pos))
	for _, po := range pos {
		edges = append(edges, &etpart.BOMEdge{
			ParentID: po.MatnrP,
			ChildID:  po.MatnrC,
			Quantity: po.Menge,
		})
	}
	return edges, nil
}

// Clear 清空零件与 BOM
func (r *PartRepositoryImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.BOMItem{}).Error; err != nil {
			return errorx.Lookup("clear bom", err)
		}
		if err := tx.Where("1 = 1").Delete(&entity.Material{}).Error; err != nil {
			return errorx.Lookup("clear parts", err)
		}
		return nil
	})
}

// toDomainModel GORM 模型转换为领域对象
func (r *PartRepositoryImpl) toDomainModel(po *entity.Material) *etpart.Part {
	return &etpart.Part{
		ID:          po.Matnr,
		Type:        po.Mtart,
		Description: po.Maktx,
		HSCode:      po.HSCode,
		Origin:      po.Origin,
		UnitPrice:   po.Price,
	}
}
