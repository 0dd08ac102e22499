package part

import (
	"ftaorigin/internal/app/domains/services/svmaster"
	"ftaorigin/internal/app/domains/services/svorigin"
	"ftaorigin/internal/app/pkg/logger"
)

// PartHandler 物料与 BOM HTTP 处理器
type PartHandler struct {
	masterService *svmaster.MasterService
	originService *svorigin.OriginService
	logger        logger.Logger
}

// NewPartHandler 创建物料处理器实例
func NewPartHandler(masterService *svmaster.MasterService, originService *svorigin.OriginService, log logger.Logger) *PartHandler {
	return &PartHandler{
		masterService: masterService,
		originService: originService,
		logger:        log,
	}
}
