package request

import (
	"github.com/shopspring/decimal"

	"ftaorigin/internal/app/domains/entity/etpart"
)

// CreatePartRequest 创建零件请求（DTO）
type CreatePartRequest struct {
	ID          string          `json:"id" binding:"required,max=64"`
	Type        string          `json:"type" binding:"required,oneof=FERT HALB ROH"`
	Description string          `json:"description" binding:"max=255"`
	HSCode      string          `json:"hs_code" binding:"omitempty,numeric,max=16"`
	Origin      string          `json:"origin" binding:"required,len=2"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ToEntity 转换为领域对象
func (r *CreatePartRequest) ToEntity() (*etpart.Part, error) {
	return etpart.NewPart(r.ID, r.Type, r.Description, r.HSCode, r.Origin, r.UnitPrice)
}

// CreateBOMRequest 创建 BOM 边请求（DTO）
type CreateBOMRequest struct {
	ParentID string          `json:"parent_id" binding:"required"`
	ChildID  string          `json:"child_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ToEntity 转换为领域对象
func (r *CreateBOMRequest) ToEntity() (*etpart.BOMEdge, error) {
	return etpart.NewBOMEdge(r.ParentID, r.ChildID, r.Quantity)
}
