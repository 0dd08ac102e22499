package errorx

import (
	"errors"
	"fmt"
	"strings"
)

// 业务错误定义
var (
	ErrPartNotFound = errors.New("part not found")
	ErrLookupFailed = errors.New("lookup failed")
	ErrCyclicBOM    = errors.New("cyclic bom")
	ErrWaitTimeout  = errors.New("determination wait timeout")

	ErrQueueUnavailable = errors.New("determination queue not configured")
)

// LookupError 存储层读写失败
type LookupError struct {
	Op  string
	Err error
}

// Error 实现 error 接口
func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup failed: %s: %v", e.Op, e.Err)
}

// Unwrap 同时匹配 ErrLookupFailed 与底层错误
func (e *LookupError) Unwrap() []error {
	return []error{ErrLookupFailed, e.Err}
}

// Lookup 包装存储层错误；nil 原样返回，已包装的不重复包装
func Lookup(op string, err error) error {
	if err == nil {
		return nil
	}
	var le *LookupError
	if errors.As(err, &le) {
		return err
	}
	return &LookupError{Op: op, Err: err}
}

// CycleError BOM 展开时发现环或超过最大深度
type CycleError struct {
	Path     []string
	MaxDepth int
}

// Error 实现 error 接口
func (e *CycleError) Error() string {
	if e.MaxDepth > 0 {
		return fmt.Sprintf("cyclic bom: depth limit %d exceeded at %s", e.MaxDepth, strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("cyclic bom: %s", strings.Join(e.Path, " -> "))
}

// Unwrap 匹配 ErrCyclicBOM
func (e *CycleError) Unwrap() error {
	return ErrCyclicBOM
}

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}
