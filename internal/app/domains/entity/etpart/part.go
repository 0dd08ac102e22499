package etpart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// 错误定义
var (
	ErrInvalidPartID   = errors.New("part ID cannot be empty")
	ErrInvalidOrigin   = errors.New("origin country cannot be empty")
	ErrInvalidQuantity = errors.New("bom quantity must be greater than zero")
	ErrSelfReference   = errors.New("bom parent and child must differ")
)

// HeadingLength HS 编码中品目（heading）的位数
const HeadingLength = 4

// Part 零件实体
type Part struct {
	ID          string          // 物料号（全局唯一，关联键）
	Type        string          // 物料类型 FERT/HALB/ROH，仅展示
	Description string          // 描述
	HSCode      string          // HS 编码
	Origin      string          // 原产国（2 位代码）
	UnitPrice   decimal.Decimal // 单价，仅展示
}

// NewPart 创建零件（工厂方法）
// HS 编码不足 4 位时不报错，品目视为空串
func NewPart(id, partType, description, hsCode, origin string, unitPrice decimal.Decimal) (*Part, error) {
	id = strings.TrimSpace(id)
	origin = strings.ToUpper(strings.TrimSpace(origin))

	if id == "" {
		return nil, ErrInvalidPartID
	}
	if origin == "" {
		return nil, ErrInvalidOrigin
	}

	return &Part{
		ID:          id,
		Type:        strings.TrimSpace(partType),
		Description: description,
		HSCode:      strings.TrimSpace(hsCode),
		Origin:      origin,
		UnitPrice:   unitPrice,
	}, nil
}

// Heading 返回零件 HS 编码的 4 位品目
func (p *Part) Heading() string {
	return Heading(p.HSCode)
}

// Heading 截取 HS 编码前 4 个字符；不足 4 个字符返回空串
func Heading(hsCode string) string {
	runes := []rune(hsCode)
	if len(runes) < HeadingLength {
		return ""
	}
	return string(runes[:HeadingLength])
}
