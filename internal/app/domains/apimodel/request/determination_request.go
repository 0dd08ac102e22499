package request

// DetermineRequest 原产地判定请求（DTO）
type DetermineRequest struct {
	PartID string `json:"part_id" binding:"required,max=64"`
}
