package model

// ActionTypeOriginDetermine 原产地判定任务的动作类型（路由键）
const ActionTypeOriginDetermine = "origin_determine"

// OriginDetermineJob 原产地判定任务消息（标准化）
// 用于 apiserver → worker 的消息传递
type OriginDetermineJob struct {
	Payload OriginDeterminePayload `json:"payload"`
}

// OriginDeterminePayload Job 负载
type OriginDeterminePayload struct {
	Data OriginDetermineData `json:"data"`
}

// OriginDetermineData Job 数据层
type OriginDetermineData struct {
	// 元信息
	RequestID  string `json:"request_id"`  // 请求 ID（全链路追踪，同时决定结果频道）
	OrgID      string `json:"org_id"`      // 组织 ID（固定为 "0"）
	ActionType string `json:"action_type"` // 动作类型，固定值 "origin_determine"
	ID         string `json:"id"`          // 成品物料号

	// 业务数据
	Data OriginDetermineBusinessData `json:"data"`
}

// OriginDetermineBusinessData 原产地判定业务数据
type OriginDetermineBusinessData struct {
	PartID string `json:"part_id"`
}
