package etorigin

import "ftaorigin/common/model"

// ToTrailItems 判定日志转换为传输模型
func ToTrailItems(trail []TrailEntry) []model.TrailItem {
	items := make([]model.TrailItem, 0, len(trail))
	for _, e := range trail {
		items = append(items, model.TrailItem{
			Status:      string(e.Status),
			PartID:      e.PartID,
			Origin:      e.Origin,
			HSCode:      e.HSCode,
			PartHeading: e.PartHeading,
			FGHeading:   e.FGHeading,
			Message:     e.Message,
		})
	}
	return items
}

// FromTrailItems 传输模型转换为判定日志
func FromTrailItems(items []model.TrailItem) []TrailEntry {
	trail := make([]TrailEntry, 0, len(items))
	for _, item := range items {
		trail = append(trail, TrailEntry{
			Status:      TrailStatus(item.Status),
			PartID:      item.PartID,
			Origin:      item.Origin,
			HSCode:      item.HSCode,
			PartHeading: item.PartHeading,
			FGHeading:   item.FGHeading,
			Message:     item.Message,
		})
	}
	return trail
}

// ToResultData 判定结果转换为传输模型
func ToResultData(result *Result) *model.DeterminationResultData {
	if result == nil {
		return nil
	}

	data := &model.DeterminationResultData{
		PartID:   result.PartID,
		Verdict:  string(result.Verdict),
		Domestic: result.Domestic,
		Trail:    ToTrailItems(result.Trail),
	}
	if d := result.Determination; d != nil {
		data.DeterminationID = d.ID
		data.RuleApplied = d.RuleApplied
		data.DestCountry = d.DestCountry
		data.DeterminedAt = d.DeterminedAt.Unix()
	}
	return data
}
