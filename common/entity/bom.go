package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMItem BOM 行项（父件 → 子件）
// 自增 ID 决定同一父件下子件的返回顺序
type BOMItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	MatnrP    string          `gorm:"column:matnr_p;type:varchar(64);not null;index:idx_parent"`
	MatnrC    string          `gorm:"column:matnr_c;type:varchar(64);not null;index:idx_child"`
	Menge     decimal.Decimal `gorm:"column:menge;type:decimal(15,4);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (BOMItem) TableName() string {
	return "zpp_bom"
}
