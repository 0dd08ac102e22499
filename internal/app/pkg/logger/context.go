package logger

import "context"

type ctxKey int

const (
	traceIDKey ctxKey = iota
	workerIDKey
	actionTypeKey
	partIDKey
)

// WithTraceID 注入 trace_id
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID 读取 trace_id
func TraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// WithWorkerID 注入 worker_id
func WithWorkerID(ctx context.Context, workerID int) context.Context {
	return context.WithValue(ctx, workerIDKey, workerID)
}

// WithActionType 注入 action_type
func WithActionType(ctx context.Context, actionType string) context.Context {
	return context.WithValue(ctx, actionTypeKey, actionType)
}

// WithPartID 注入 part_id
func WithPartID(ctx context.Context, partID string) context.Context {
	return context.WithValue(ctx, partIDKey, partID)
}
