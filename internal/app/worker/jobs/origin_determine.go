package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ftaorigin/common/model"
	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/pkg/errorx"
	"ftaorigin/internal/app/worker/framework"
)

// OriginDetermineHandler 原产地判定 Handler
type OriginDetermineHandler struct {
	meta   *Meta
	partID string
	origin OriginDeterminer
}

// NewOriginDetermineHandler 解析判定任务业务数据
func NewOriginDetermineHandler(_ context.Context, meta *Meta, payload json.RawMessage, deps *Deps) (framework.Handler, error) {
	if deps == nil || deps.Origin == nil {
		return nil, fmt.Errorf("origin determiner is not configured")
	}

	var biz model.OriginDetermineBusinessData
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &biz); err != nil {
			return nil, errorx.NonRetriable(fmt.Sprintf("unmarshal business data failed: %v", err))
		}
	}

	partID := strings.TrimSpace(biz.PartID)
	if partID == "" {
		partID = strings.TrimSpace(meta.ID)
	}
	if partID == "" {
		return nil, errorx.NonRetriable("part_id is required")
	}

	return &OriginDetermineHandler{
		meta:   meta,
		partID: partID,
		origin: deps.Origin,
	}, nil
}

// Handle 执行判定，结果同时由 OriginService 发布到结果频道
func (h *OriginDetermineHandler) Handle(ctx context.Context) ([]byte, error) {
	var (
		result *etorigin.Result
		output []byte
	)

	err := framework.NewChain(
		func(ctx context.Context) error {
			var err error
			result, err = h.origin.DetermineAndNotify(ctx, h.meta.RequestID, h.partID)
			return err
		},
		func(context.Context) error {
			var err error
			output, err = json.Marshal(etorigin.ToResultData(result))
			return err
		},
	).Run(ctx)
	if err != nil {
		return nil, err
	}
	return output, nil
}
