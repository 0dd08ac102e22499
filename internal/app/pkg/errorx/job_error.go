package errorx

import (
	"errors"
	"fmt"
)

// JobError 任务错误（包含可重试标记）
type JobError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
}

// Error 实现 error 接口
func (e *JobError) Error() string {
	return e.Message
}

// Retriable 创建可重试错误（网络错误、临时故障等）
func Retriable(message string) *JobError {
	return &JobError{
		Code:      500,
		Message:   message,
		Retryable: true,
	}
}

// NonRetriable 创建不可重试错误（参数错误、业务规则错误等）
func NonRetriable(message string) *JobError {
	return &JobError{
		Code:      400,
		Message:   message,
		Retryable: false,
	}
}

// WrapJob 包装错误（根据错误类型判断是否可重试）
// 判定链路上的仓储失败直接上报，不重新投递
func WrapJob(err error) *JobError {
	if err == nil {
		return nil
	}

	var je *JobError
	if errors.As(err, &je) {
		return je
	}

	switch {
	case errors.Is(err, ErrPartNotFound):
		return &JobError{Code: 404, Message: err.Error()}
	case errors.Is(err, ErrCyclicBOM):
		return &JobError{Code: 422, Message: err.Error()}
	case errors.Is(err, ErrLookupFailed):
		return &JobError{Code: 500, Message: err.Error(), DevDetails: fmt.Sprintf("%+v", err)}
	}

	return &JobError{
		Code:       500,
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
	}
}
