package etpart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BOMEdge BOM 边（父件 → 子件，数量）
type BOMEdge struct {
	ParentID string
	ChildID  string
	Quantity decimal.Decimal
}

// NewBOMEdge 创建 BOM 边（工厂方法）
func NewBOMEdge(parentID, childID string, quantity decimal.Decimal) (*BOMEdge, error) {
	parentID = strings.TrimSpace(parentID)
	childID = strings.TrimSpace(childID)

	if parentID == "" || childID == "" {
		return nil, ErrInvalidPartID
	}
	if parentID == childID {
		return nil, ErrSelfReference
	}
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	return &BOMEdge{
		ParentID: parentID,
		ChildID:  childID,
		Quantity: quantity,
	}, nil
}

// Child 直接子件（带零件数据和用量）
type Child struct {
	Part     *Part
	Quantity decimal.Decimal
}
