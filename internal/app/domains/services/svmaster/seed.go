package svmaster

import (
	"github.com/shopspring/decimal"

	"ftaorigin/common/entity"
	"ftaorigin/internal/app/domains/entity/etpart"
)

// SeedRootID 示例成品
const SeedRootID = "EV_BATTERY_PACK"

type seedPart struct {
	id, typ, desc, hs, origin string
	price                     int64
}

type seedEdge struct {
	parent, child string
	qty           int64
}

// 电动车电池包示例：LITHIUM_CELL 与成品同品目 8507，判定为 FOREIGN
var (
	seedParts = []seedPart{
		{SeedRootID, entity.MaterialTypeFinished, "High Performance EV Battery Pack", "850760", "KR", 5000000},
		{"BATTERY_MODULE", entity.MaterialTypeSemi, "Li-ion Battery Module", "850790", "KR", 1000000},
		{"LITHIUM_CELL", entity.MaterialTypeRaw, "Li-ion Cell 3.7V", "850790", "CN", 50000},
		{"AL_CASE", entity.MaterialTypeRaw, "Aluminum Module Case", "760429", "KR", 20000},
		{"BMS_CONTROLLER", entity.MaterialTypeRaw, "Battery Management System", "853710", "DE", 300000},
		{"COOLING_FAN", entity.MaterialTypeRaw, "Cooling Fan Unit", "841459", "VN", 50000},
		{"SCREW_SET", entity.MaterialTypeRaw, "Steel Screw Set", "731815", "CN", 100},
	}

	seedEdges = []seedEdge{
		{SeedRootID, "BATTERY_MODULE", 4},
		{SeedRootID, "BMS_CONTROLLER", 1},
		{SeedRootID, "COOLING_FAN", 2},
		{SeedRootID, "SCREW_SET", 20},
		{"BATTERY_MODULE", "LITHIUM_CELL", 12},
		{"BATTERY_MODULE", "AL_CASE", 1},
		{"BATTERY_MODULE", "SCREW_SET", 8},
	}
)

// SeedData 构造示例物料与 BOM
func SeedData() ([]*etpart.Part, []*etpart.BOMEdge, error) {
	parts := make([]*etpart.Part, 0, len(seedParts))
	for _, sp := range seedParts {
		p, err := etpart.NewPart(sp.id, sp.typ, sp.desc, sp.hs, sp.origin, decimal.NewFromInt(sp.price))
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, p)
	}

	edges := make([]*etpart.BOMEdge, 0, len(seedEdges))
	for _, se := range seedEdges {
		e, err := etpart.NewBOMEdge(se.parent, se.child, decimal.NewFromInt(se.qty))
		if err != nil {
			return nil, nil, err
		}
		edges = append(edges, e)
	}
	return parts, edges, nil
}
