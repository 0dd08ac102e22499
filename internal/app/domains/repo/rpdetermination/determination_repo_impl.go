package rpdetermination

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"ftaorigin/common/entity"
	"ftaorigin/common/model"
	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/pkg/errorx"
)

// DeterminationRepositoryImpl 判定历史仓储实现（MySQL/SQLite）
type DeterminationRepositoryImpl struct {
	db *gorm.DB
}

// NewDeterminationRepository 创建判定历史仓储实例
func NewDeterminationRepository(db *gorm.DB) DeterminationRepository {
	return &DeterminationRepositoryImpl{db: db}
}

// Append 追加判定记录
func (r *DeterminationRepositoryImpl) Append(ctx context.Context, d *etorigin.Determination) error {
	po, err := r.toGormModel(d)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return errorx.Lookup("append determination", err)
	}
	// 将数据库生成的ID回写到领域对象
	d.ID = po.DetermineID
	return nil
}

// List 按 determine_id 倒序查询
func (r *DeterminationRepositoryImpl) List(ctx context.Context, partID string, limit int) ([]*etorigin.Determination, error) {
	var pos []entity.FTAHistory

	query := r.db.WithContext(ctx).Order("determine_id DESC")
	if partID != "" {
		query = query.Where("matnr = ?", partID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&pos).Error; err != nil {
		return nil, errorx.Lookup("list determinations", err)
	}

	result := make([]*etorigin.Determination, 0, len(pos))
	for i := range pos {
		d, err := r.toDomainModel(&pos[i])
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

// Count 判定记录总数
func (r *DeterminationRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.FTAHistory{}).Count(&count).Error
	return count, errorx.Lookup("count determinations", err)
}

// Clear 清空判定历史
func (r *DeterminationRepositoryImpl) Clear(ctx context.Context) error {
	return errorx.Lookup("clear determinations", r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.FTAHistory{}).Error)
}

// toGormModel 领域对象转换为 GORM 模型
func (r *DeterminationRepositoryImpl) toGormModel(d *etorigin.Determination) (*entity.FTAHistory, error) {
	trailJSON, err := json.Marshal(etorigin.ToTrailItems(d.Trail))
	if err != nil {
		return nil, fmt.Errorf("marshal trail failed: %w", err)
	}

	return &entity.FTAHistory{
		Matnr:         d.PartID,
		DestCountry:   d.DestCountry,
		Result:        string(d.Result),
		RuleApplied:   d.RuleApplied,
		Trail:         trailJSON,
		DetermineDate: d.DeterminedAt,
	}, nil
}

// toDomainModel GORM 模型转换为领域对象
func (r *DeterminationRepositoryImpl) toDomainModel(po *entity.FTAHistory) (*etorigin.Determination, error) {
	d := &etorigin.Determination{
		ID:           po.DetermineID,
		PartID:       po.Matnr,
		DestCountry:  po.DestCountry,
		Result:       etorigin.Verdict(po.Result),
		RuleApplied:  po.RuleApplied,
		DeterminedAt: po.DetermineDate,
	}

	if len(po.Trail) > 0 {
		var items []model.TrailItem
		if err := json.Unmarshal(po.Trail, &items); err != nil {
			return nil, fmt.Errorf("unmarshal trail failed: %w", err)
		}
		d.Trail = etorigin.FromTrailItems(items)
	}
	return d, nil
}
