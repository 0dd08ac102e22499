package mdorigin

import (
	"context"
	"errors"
	"strings"

	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/pkg/errorx"
)

// Options 判定参数
type Options struct {
	DomesticCountry string // 国内国家代码，默认 KR
	DestCountry     string // 目的国占位，默认 GLOBAL
}

// OriginModule 原产地判定模块（CTSH 4 位品目变更规则）
type OriginModule struct {
	partRepo          rppart.PartRepository
	determinationRepo rpdetermination.DeterminationRepository
	bomModule         *mdbom.BOMModule
	domestic          string
	dest              string
}

// NewOriginModule 创建原产地判定模块
func NewOriginModule(
	partRepo rppart.PartRepository,
	determinationRepo rpdetermination.DeterminationRepository,
	bomModule *mdbom.BOMModule,
	opts Options,
) *OriginModule {
	domestic := strings.ToUpper(strings.TrimSpace(opts.DomesticCountry))
	if domestic == "" {
		domestic = etorigin.DefaultDomesticCountry
	}
	dest := strings.TrimSpace(opts.DestCountry)
	if dest == "" {
		dest = etorigin.DefaultDestCountry
	}

	return &OriginModule{
		partRepo:          partRepo,
		determinationRepo: determinationRepo,
		bomModule:         bomModule,
		domestic:          domestic,
		dest:              dest,
	}
}

// DomesticCountry 国内国家代码
func (m *OriginModule) DomesticCountry() string {
	return m.domestic
}

// Determine 判定成品原产地并追加一条判定记录
// 1. 成品不存在返回 errorx.ErrPartNotFound，不写记录
// 2. 展开 BOM；为空时判定为国内原产
// 3. 非国内原产的组件逐一比较 4 位品目：相同记 FAIL，不同记 PASS，不提前终止
// 4. 无 FAIL 即为国内原产
func (m *OriginModule) Determine(ctx context.Context, rootID string) (*etorigin.Result, error) {
	root, err := m.partRepo.GetByID(ctx, rootID)
	if err != nil {
		if errors.Is(err, errorx.ErrPartNotFound) {
			return nil, err
		}
		return nil, errorx.Lookup("get part", err)
	}

	fgHeading := root.Heading()

	components, err := m.bomModule.Expand(ctx, root.ID)
	if err != nil {
		return nil, err
	}

	verdict, trail := m.evaluate(fgHeading, components)

	result := &etorigin.Result{
		PartID:     root.ID,
		HSCode:     root.HSCode,
		Heading:    fgHeading,
		Verdict:    verdict,
		Domestic:   verdict != etorigin.VerdictForeign,
		Trail:      trail,
		Components: components,
	}

	d := etorigin.NewDetermination(root.ID, m.dest, verdict, trail)
	if err := m.determinationRepo.Append(ctx, d); err != nil {
		return nil, errorx.Lookup("append determination", err)
	}
	result.Determination = d

	return result, nil
}

// evaluate 对展开结果应用 CTSH 规则
func (m *OriginModule) evaluate(fgHeading string, components []etorigin.Component) (etorigin.Verdict, []etorigin.TrailEntry) {
	domesticVerdict := etorigin.DomesticVerdict(m.domestic)

	if len(components) == 0 {
		return domesticVerdict, []etorigin.TrailEntry{etorigin.NewNoComponentsEntry(m.domestic)}
	}

	verdict := domesticVerdict
	trail := make([]etorigin.TrailEntry, 0, len(components))
	for _, c := range components {
		if strings.EqualFold(c.Origin, m.domestic) {
			continue
		}

		partHeading := etpart.Heading(c.HSCode)
		// 品目为空（HS 编码不足 4 位）时视为不相同
		if partHeading != "" && partHeading == fgHeading {
			trail = append(trail, etorigin.NewFailEntry(c, partHeading, fgHeading))
			verdict = etorigin.VerdictForeign
			continue
		}
		trail = append(trail, etorigin.NewPassEntry(c, partHeading, fgHeading))
	}

	return verdict, trail
}
