package jobs

import (
	"encoding/json"
	"fmt"
)

// Job 标准 Job 结构
type Job struct {
	Payload *JobPayload `json:"payload"`
}

// JobPayload Job 负载
type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

// JobPayloadData Job 数据，Data 按 ActionType 由具体 Handler 解析
type JobPayloadData struct {
	RequestID  string          `json:"request_id"`
	OrgID      string          `json:"org_id"`
	ActionType string          `json:"action_type"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

// Meta 元数据
type Meta struct {
	RequestID  string
	OrgID      string
	ActionType string
	ID         string
}

// parseJob 解析标准 Job
func parseJob(raw []byte) (*Meta, json.RawMessage, error) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if job.Payload == nil || job.Payload.Data == nil {
		return nil, nil, fmt.Errorf("invalid job structure: payload.data is nil")
	}

	data := job.Payload.Data
	if data.ActionType == "" {
		return nil, nil, fmt.Errorf("invalid job structure: action_type is empty")
	}

	return &Meta{
		RequestID:  data.RequestID,
		OrgID:      data.OrgID,
		ActionType: data.ActionType,
		ID:         data.ID,
	}, data.Data, nil
}
