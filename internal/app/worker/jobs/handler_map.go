package jobs

import (
	"context"
	"encoding/json"

	"ftaorigin/common/model"
	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/worker/framework"
)

// OriginDeterminer 判定并发布结果（svorigin.OriginService）
type OriginDeterminer interface {
	DetermineAndNotify(ctx context.Context, requestID, partID string) (*etorigin.Result, error)
}

// Deps Handler 依赖
type Deps struct {
	Origin OriginDeterminer
}

// HandlerFactory Handler 构造函数类型
type HandlerFactory func(ctx context.Context, meta *Meta, payload json.RawMessage, deps *Deps) (framework.Handler, error)

// HandlerMap 路由表（ActionType → Handler）
var HandlerMap = map[string]HandlerFactory{
	model.ActionTypeOriginDetermine: NewOriginDetermineHandler,
}
