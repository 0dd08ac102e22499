package part

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ftaorigin/internal/app/domains/apimodel/response"
	"ftaorigin/internal/app/pkg/ginx"
)

// List 查询零件列表
// GET /api/v1/parts?type=FERT
func (h *PartHandler) List(c *gin.Context) {
	partType := strings.ToUpper(strings.TrimSpace(c.Query("type")))

	parts, err := h.masterService.ListParts(c.Request.Context(), partType)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "list parts failed: %v", err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromPartEntities(parts))
}

// Get 查询零件详情
// GET /api/v1/parts/:id
func (h *PartHandler) Get(c *gin.Context) {
	partID := c.Param("id")

	part, err := h.masterService.GetPart(c.Request.Context(), partID)
	if err != nil {
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromPartEntity(part))
}

// BOM 查询零件的多级 BOM 树
// GET /api/v1/parts/:id/bom
func (h *PartHandler) BOM(c *gin.Context) {
	partID := c.Param("id")

	tree, err := h.originService.Explode(c.Request.Context(), partID)
	if err != nil {
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromBOMNode(tree))
}

// ListEdges 查询全部 BOM 边
// GET /api/v1/boms
func (h *PartHandler) ListEdges(c *gin.Context) {
	edges, err := h.masterService.ListEdges(c.Request.Context())
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "list bom edges failed: %v", err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromBOMEdges(edges))
}
