package model

// DeterminationResultData 原产地判定结果
type DeterminationResultData struct {
	DeterminationID int64       `json:"determination_id"`
	PartID          string      `json:"part_id"`
	Verdict         string      `json:"verdict"`
	Domestic        bool        `json:"domestic"`
	RuleApplied     string      `json:"rule_applied"`
	DestCountry     string      `json:"dest_country"`
	Trail           []TrailItem `json:"trail"`
	DeterminedAt    int64       `json:"determined_at"`
}

// TrailItem 判定日志条目
type TrailItem struct {
	Status      string `json:"status"` // PASS/FAIL/INFO
	PartID      string `json:"part_id,omitempty"`
	Origin      string `json:"origin,omitempty"`
	HSCode      string `json:"hs_code,omitempty"`
	PartHeading string `json:"part_heading,omitempty"`
	FGHeading   string `json:"fg_heading,omitempty"`
	Message     string `json:"message"`
}

// DeterminationNotification 判定完成通知（worker → redis → apiserver）
type DeterminationNotification struct {
	RequestID   string                   `json:"request_id"`
	PartID      string                   `json:"part_id"`
	Status      string                   `json:"status"` // SUCCESS/FAILED
	Result      *DeterminationResultData `json:"result,omitempty"`
	Error       string                   `json:"error,omitempty"`
	ProcessedAt int64                    `json:"processed_at"`
}

// 通知状态常量
const (
	NotificationStatusSuccess = "SUCCESS"
	NotificationStatusFailed  = "FAILED"
)
