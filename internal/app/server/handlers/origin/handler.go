package origin

import (
	"ftaorigin/internal/app/domains/services/svorigin"
	"ftaorigin/internal/app/pkg/logger"
)

// maxWaitSeconds Smart Wait 上限
const maxWaitSeconds = 30

// OriginHandler 原产地判定 HTTP 处理器
type OriginHandler struct {
	originService *svorigin.OriginService
	logger        logger.Logger
}

// NewOriginHandler 创建判定处理器实例
func NewOriginHandler(originService *svorigin.OriginService, log logger.Logger) *OriginHandler {
	return &OriginHandler{
		originService: originService,
		logger:        log,
	}
}
