package ginx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ftaorigin/common/model"
	"ftaorigin/internal/app/pkg/errorx"
)

// CodeProcessing Smart Wait 超时，任务仍在处理
const CodeProcessing = 3001

// ProcessingData Smart Wait 超时返回的数据
type ProcessingData struct {
	RequestID string `json:"request_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PartID    string `json:"part_id" example:"EV_BATTERY_PACK"`
	JobID     string `json:"job_id"`
	PollURL   string `json:"poll_url" example:"/api/v1/determinations?limit=10"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, model.Response{
		Meta: model.MetaInfo{
			Code:    200,
			Type:    model.ResponseTypeOK,
			Message: "OK",
		},
		Data: data,
	})
}

// Created 创建成功（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, model.Response{
		Meta: model.MetaInfo{
			Code:    201,
			Type:    model.ResponseTypeOK,
			Message: "Created",
		},
		Data: data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, message string) {
	ErrorWithDetails(c, httpCode, message, nil)
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpCode int, message string, details []model.ErrorDetail) {
	c.JSON(httpCode, model.Response{
		Meta: model.MetaInfo{
			Code:    httpCode,
			Type:    responseType(httpCode),
			Message: message,
			Details: details,
		},
	})
}

// Processing 处理中响应（3001），用于 Smart Wait 超时场景
func Processing(c *gin.Context, data ProcessingData) {
	c.JSON(http.StatusOK, model.Response{
		Meta: model.MetaInfo{
			Code:    CodeProcessing,
			Type:    model.ResponseTypeProcessing,
			Message: "Determination is being processed, please poll for results",
		},
		Data: data,
	})
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// BadRequestWithValidation 400 错误（带验证详情）
func BadRequestWithValidation(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]model.ErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, model.ErrorDetail{
				Path: fieldErr.Field(),
				Info: getValidationErrorMessage(fieldErr),
			})
		}
		ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details)
		return
	}

	BadRequest(c, err.Error())
}

// NotFound 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FromError 按错误类型映射 HTTP 状态码
func FromError(c *gin.Context, err error) {
	var be *errorx.BusinessError
	switch {
	case errors.As(err, &be):
		details := make([]model.ErrorDetail, 0, len(be.Details))
		for _, d := range be.Details {
			details = append(details, model.ErrorDetail{Path: d.Path, Info: d.Info})
		}
		ErrorWithDetails(c, be.Code, be.Message, details)
	case errors.Is(err, errorx.ErrPartNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, errorx.ErrCyclicBOM):
		Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errorx.ErrQueueUnavailable):
		Error(c, http.StatusServiceUnavailable, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func responseType(httpCode int) string {
	switch {
	case httpCode < 300:
		return model.ResponseTypeOK
	case httpCode == http.StatusNotFound:
		return model.ResponseTypeNotFound
	case httpCode == http.StatusUnprocessableEntity:
		return model.ResponseTypeUnprocessable
	case httpCode < 500:
		return model.ResponseTypeValidationError
	default:
		return model.ResponseTypeInternalError
	}
}

// getValidationErrorMessage 根据验证错误类型返回友好的错误消息
func getValidationErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "len":
		return fieldErr.Field() + " must be exactly " + fieldErr.Param() + " characters"
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param()
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param()
	case "numeric":
		return fieldErr.Field() + " must be numeric"
	case "oneof":
		return fieldErr.Field() + " must be one of " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid"
	}
}
