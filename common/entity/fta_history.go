package entity

import (
	"time"

	"gorm.io/datatypes"
)

// FTAHistory 原产地判定历史
type FTAHistory struct {
	DetermineID   int64          `gorm:"column:determine_id;primaryKey;autoIncrement"`
	Matnr         string         `gorm:"column:matnr;type:varchar(64);not null;index:idx_matnr"`
	DestCountry   string         `gorm:"column:dest_country;type:varchar(16);not null"`
	Result        string         `gorm:"column:result;type:varchar(16);not null"`
	RuleApplied   string         `gorm:"column:rule_applied;type:varchar(64);not null"`
	Trail         datatypes.JSON `gorm:"column:trail;type:json"`
	DetermineDate time.Time      `gorm:"column:determine_date;not null;index:idx_determine_date"`
}

// TableName 指定表名
func (FTAHistory) TableName() string {
	return "zsd_fta_hist"
}

// AllModels 需要迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&Material{},
		&BOMItem{},
		&FTAHistory{},
	}
}
