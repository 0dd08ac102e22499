package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"ftaorigin/internal/app/pkg/errorx"
	"ftaorigin/internal/app/pkg/lmstfyx"
	"ftaorigin/internal/app/pkg/logger"
	"ftaorigin/internal/app/pkg/metrics"
)

// GetProcess 返回核心处理函数（注入到 Processor）
func GetProcess(log logger.Logger, deps *Deps) lmstfyx.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) *lmstfyx.JobResp {
		startTime := time.Now()

		// 1. 解析 Job
		meta, payload, err := parseJob(lmstfyJob.Data)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed: job_id=%s, error=%v", lmstfyJob.ID, err)
			metrics.RecordJob("unknown", lmstfyx.JobRespStatusBury.String())
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}
		if meta.RequestID == "" {
			meta.RequestID = uuid.New().String()
		}

		// 2. 注入 TraceID
		ctx = logger.WithTraceID(ctx, meta.RequestID)
		ctx = logger.WithActionType(ctx, meta.ActionType)

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, id=%s", meta.ActionType, meta.ID)

		// 3. 路由到 Handler
		factory, ok := HandlerMap[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			metrics.RecordJob(meta.ActionType, lmstfyx.JobRespStatusBury.String())
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		// 4. 调用 Handler（捕获 panic）
		resp := run(ctx, log, func() ([]byte, error) {
			handler, err := factory(ctx, meta, payload, deps)
			if err != nil {
				return nil, err
			}
			return handler.Handle(ctx)
		})

		metrics.RecordJob(meta.ActionType, resp.Action.String())
		log.Infof(ctx, "[GetProcess] Processing complete: action=%s, duration=%v", resp.Action, time.Since(startTime))

		return resp
	}
}

// run 执行 Handler 并把错误映射为 ACK/Release
func run(ctx context.Context, log logger.Logger, fn func() ([]byte, error)) (resp *lmstfyx.JobResp) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
			resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}
	}()

	data, err := fn()
	if err == nil {
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusSuccess, Data: data}
	}

	jobErr := errorx.WrapJob(err)
	log.Warnf(ctx, "[GetProcess] handler failed: code=%d, retryable=%v, error=%v", jobErr.Code, jobErr.Retryable, err)
	if jobErr.Retryable {
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusRelease}
	}
	errData, _ := json.Marshal(jobErr)
	return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury, Data: errData}
}
