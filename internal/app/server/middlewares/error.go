package middlewares

import (
	"github.com/gin-gonic/gin"

	"ftaorigin/internal/app/pkg/ginx"
	"ftaorigin/internal/app/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 捕获 panic；handler 通过 c.Error 登记且尚未写响应的错误按类型映射状态码
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "panic recovered: %v", r)
				ginx.InternalError(c, "internal server error")
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			ginx.FromError(c, c.Errors.Last().Err)
		}
	}
}
