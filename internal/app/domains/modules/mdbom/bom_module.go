package mdbom

import (
	"context"

	"github.com/shopspring/decimal"

	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/pkg/errorx"
)

// DefaultMaxDepth 默认最大展开层级
const DefaultMaxDepth = 32

// BOMModule BOM 展开模块（只读）
type BOMModule struct {
	partRepo rppart.PartRepository
	maxDepth int
}

// NewBOMModule 创建 BOM 展开模块，maxDepth <= 0 时使用默认值
func NewBOMModule(partRepo rppart.PartRepository, maxDepth int) *BOMModule {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &BOMModule{
		partRepo: partRepo,
		maxDepth: maxDepth,
	}
}

// Node BOM 树节点（展示用）
type Node struct {
	PartID   string
	Type     string
	HSCode   string
	Origin   string
	Quantity decimal.Decimal
	Depth    int
	Children []*Node
}

// Expand 将根物料的 BOM 展开为先序扁平列表
// 每条边对应一条记录，共用子件按出现位置重复出现
// 根物料不存在时返回空列表；路径上出现环或超过最大深度时返回 errorx.ErrCyclicBOM
func (m *BOMModule) Expand(ctx context.Context, rootID string) ([]etorigin.Component, error) {
	var components []etorigin.Component
	err := m.walk(ctx, rootID, 0, []string{rootID}, func(c etorigin.Component) {
		components = append(components, c)
	})
	if err != nil {
		return nil, err
	}
	return components, nil
}

// Tree 返回嵌套结构的 BOM，根节点为 depth 0
func (m *BOMModule) Tree(ctx context.Context, rootID string) (*Node, error) {
	root, err := m.partRepo.GetByID(ctx, rootID)
	if err != nil {
		return nil, err
	}

	rootNode := &Node{
		PartID:   root.ID,
		Type:     root.Type,
		HSCode:   root.HSCode,
		Origin:   root.Origin,
		Quantity: decimal.NewFromInt(1),
	}

	// 先序展开结果按 parent 回挂；栈顶为当前路径
	stack := []*Node{rootNode}
	err = m.walk(ctx, rootID, 0, []string{rootID}, func(c etorigin.Component) {
		node := &Node{
			PartID:   c.PartID,
			Type:     c.Type,
			HSCode:   c.HSCode,
			Origin:   c.Origin,
			Quantity: c.Quantity,
			Depth:    c.Depth,
		}
		stack = stack[:c.Depth]
		parent := stack[c.Depth-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	})
	if err != nil {
		return nil, err
	}
	return rootNode, nil
}

// walk 深度优先遍历，path 为当前路径上的祖先
func (m *BOMModule) walk(ctx context.Context, parentID string, depth int, path []string, visit func(etorigin.Component)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	children, err := m.partRepo.GetChildren(ctx, parentID)
	if err != nil {
		return errorx.Lookup("get children", err)
	}

	for _, child := range children {
		part := child.Part
		childPath := append(path[:len(path):len(path)], part.ID)

		if contains(path, part.ID) {
			return &errorx.CycleError{Path: childPath}
		}
		if depth+1 > m.maxDepth {
			return &errorx.CycleError{Path: childPath, MaxDepth: m.maxDepth}
		}

		visit(etorigin.Component{
			PartID:   part.ID,
			Type:     part.Type,
			HSCode:   part.HSCode,
			Origin:   part.Origin,
			Quantity: child.Quantity,
			Depth:    depth + 1,
			ParentID: parentID,
		})

		if err := m.walk(ctx, part.ID, depth+1, childPath, visit); err != nil {
			return err
		}
	}
	return nil
}

func contains(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}
