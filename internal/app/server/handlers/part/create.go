package part

import (
	"github.com/gin-gonic/gin"

	"ftaorigin/internal/app/domains/apimodel/request"
	"ftaorigin/internal/app/domains/apimodel/response"
	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/pkg/ginx"
)

// Create 创建零件
// POST /api/v1/parts
func (h *PartHandler) Create(c *gin.Context) {
	var req request.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	part, err := req.ToEntity()
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	if err := h.masterService.CreatePart(c.Request.Context(), part); err != nil {
		ginx.FromError(c, err)
		return
	}

	ginx.Created(c, response.FromPartEntity(part))
}

// CreateEdge 创建 BOM 边
// POST /api/v1/boms
func (h *PartHandler) CreateEdge(c *gin.Context) {
	var req request.CreateBOMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	edge, err := req.ToEntity()
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	if err := h.masterService.CreateEdge(c.Request.Context(), edge); err != nil {
		ginx.FromError(c, err)
		return
	}

	ginx.Created(c, response.FromBOMEdges([]*etpart.BOMEdge{edge})[0])
}
