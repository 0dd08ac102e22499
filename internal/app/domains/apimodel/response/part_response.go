package response

// PartResponse 零件响应
type PartResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	HSCode      string `json:"hs_code"`
	Heading     string `json:"heading"`
	Origin      string `json:"origin"`
	UnitPrice   string `json:"unit_price"`
}

// BOMEdgeResponse BOM 边响应
type BOMEdgeResponse struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
	Quantity string `json:"quantity"`
}

// BOMNodeResponse BOM 树节点
type BOMNodeResponse struct {
	PartID   string             `json:"part_id"`
	Type     string             `json:"type"`
	HSCode   string             `json:"hs_code"`
	Origin   string             `json:"origin"`
	Quantity string             `json:"quantity"`
	Depth    int                `json:"depth"`
	Children []*BOMNodeResponse `json:"children,omitempty"`
}
