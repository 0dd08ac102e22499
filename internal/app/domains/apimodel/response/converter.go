package response

import (
	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/services/svorigin"
)

// FromPartEntity 从领域对象转换为响应 DTO
func FromPartEntity(p *etpart.Part) *PartResponse {
	return &PartResponse{
		ID:          p.ID,
		Type:        p.Type,
		Description: p.Description,
		HSCode:      p.HSCode,
		Heading:     p.Heading(),
		Origin:      p.Origin,
		UnitPrice:   p.UnitPrice.StringFixed(2),
	}
}

// FromPartEntities 批量转换
func FromPartEntities(parts []*etpart.Part) []*PartResponse {
	resp := make([]*PartResponse, 0, len(parts))
	for _, p := range parts {
		resp = append(resp, FromPartEntity(p))
	}
	return resp
}

// FromBOMEdges 批量转换 BOM 边
func FromBOMEdges(edges []*etpart.BOMEdge) []*BOMEdgeResponse {
	resp := make([]*BOMEdgeResponse, 0, len(edges))
	for _, e := range edges {
		resp = append(resp, &BOMEdgeResponse{
			ParentID: e.ParentID,
			ChildID:  e.ChildID,
			Quantity: e.Quantity.String(),
		})
	}
	return resp
}

// FromBOMNode 递归转换 BOM 树
func FromBOMNode(n *mdbom.Node) *BOMNodeResponse {
	if n == nil {
		return nil
	}
	resp := &BOMNodeResponse{
		PartID:   n.PartID,
		Type:     n.Type,
		HSCode:   n.HSCode,
		Origin:   n.Origin,
		Quantity: n.Quantity.String(),
		Depth:    n.Depth,
	}
	for _, child := range n.Children {
		resp.Children = append(resp.Children, FromBOMNode(child))
	}
	return resp
}

// FromResult 从判定结果转换为响应 DTO
func FromResult(r *etorigin.Result) *DeterminationResponse {
	components := make([]*ComponentResponse, 0, len(r.Components))
	for _, c := range r.Components {
		components = append(components, &ComponentResponse{
			PartID:   c.PartID,
			Type:     c.Type,
			HSCode:   c.HSCode,
			Origin:   c.Origin,
			Quantity: c.Quantity.String(),
			Depth:    c.Depth,
			ParentID: c.ParentID,
		})
	}

	return &DeterminationResponse{
		DeterminationResultData: etorigin.ToResultData(r),
		HSCode:                  r.HSCode,
		Heading:                 r.Heading,
		Components:              components,
	}
}

// FromDeterminations 判定历史转换
func FromDeterminations(list []*etorigin.Determination) []*HistoryItemResponse {
	resp := make([]*HistoryItemResponse, 0, len(list))
	for _, d := range list {
		resp = append(resp, &HistoryItemResponse{
			ID:           d.ID,
			PartID:       d.PartID,
			DestCountry:  d.DestCountry,
			Result:       string(d.Result),
			RuleApplied:  d.RuleApplied,
			DeterminedAt: d.DeterminedAt,
			Trail:        etorigin.ToTrailItems(d.Trail),
		})
	}
	return resp
}

// FromJobTicket 异步任务结果转换
func FromJobTicket(t *svorigin.JobTicket) *JobResponse {
	resp := &JobResponse{
		RequestID: t.RequestID,
		PartID:    t.PartID,
		JobID:     t.JobID,
	}
	if n := t.Notification; n != nil {
		resp.Status = n.Status
		resp.Result = n.Result
		resp.Error = n.Error
	}
	return resp
}
