package response

import (
	"time"

	"ftaorigin/common/model"
)

// DeterminationResponse 同步判定响应
type DeterminationResponse struct {
	*model.DeterminationResultData
	HSCode     string               `json:"hs_code"`
	Heading    string               `json:"heading"`
	Components []*ComponentResponse `json:"components"`
}

// ComponentResponse 展开后的组件
type ComponentResponse struct {
	PartID   string `json:"part_id"`
	Type     string `json:"type"`
	HSCode   string `json:"hs_code"`
	Origin   string `json:"origin"`
	Quantity string `json:"quantity"`
	Depth    int    `json:"depth"`
	ParentID string `json:"parent_id"`
}

// HistoryItemResponse 判定历史条目
type HistoryItemResponse struct {
	ID           int64             `json:"id"`
	PartID       string            `json:"part_id"`
	DestCountry  string            `json:"dest_country"`
	Result       string            `json:"result"`
	RuleApplied  string            `json:"rule_applied"`
	DeterminedAt time.Time         `json:"determined_at"`
	Trail        []model.TrailItem `json:"trail"`
}

// JobResponse 异步判定响应（Smart Wait 拿到结果）
type JobResponse struct {
	RequestID string                         `json:"request_id"`
	PartID    string                         `json:"part_id"`
	JobID     string                         `json:"job_id"`
	Status    string                         `json:"status"`
	Result    *model.DeterminationResultData `json:"result,omitempty"`
	Error     string                         `json:"error,omitempty"`
}
