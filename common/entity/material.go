package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material 物料主数据（零件）
type Material struct {
	Matnr     string          `gorm:"column:matnr;primaryKey;type:varchar(64)"`
	Mtart     string          `gorm:"column:mtart;type:varchar(8);not null;index:idx_mtart"`
	Maktx     string          `gorm:"column:maktx;type:varchar(255)"`
	HSCode    string          `gorm:"column:hscode;type:varchar(16);not null"`
	Origin    string          `gorm:"column:origin;type:varchar(8);not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,2)"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (Material) TableName() string {
	return "zmm_material"
}

// 物料类型常量
const (
	MaterialTypeFinished = "FERT"
	MaterialTypeSemi     = "HALB"
	MaterialTypeRaw      = "ROH"
)
