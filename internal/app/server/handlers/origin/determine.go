package origin

import (
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ftaorigin/internal/app/domains/apimodel/request"
	"ftaorigin/internal/app/domains/apimodel/response"
	"ftaorigin/internal/app/pkg/ginx"
)

// Determine 同步判定
// POST /api/v1/determinations
func (h *OriginHandler) Determine(c *gin.Context) {
	var req request.DetermineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	result, err := h.originService.Determine(c.Request.Context(), req.PartID)
	if err != nil {
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromResult(result))
}

// SubmitJob 异步判定
// POST /api/v1/determinations/jobs?wait=10
// 在 wait 秒内拿到结果时直接返回，否则返回 3001 处理中
func (h *OriginHandler) SubmitJob(c *gin.Context) {
	waitSeconds := 0
	if waitStr := c.Query("wait"); waitStr != "" {
		if w, err := strconv.Atoi(waitStr); err == nil && w > 0 {
			waitSeconds = min(w, maxWaitSeconds)
		}
	}

	var req request.DetermineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ticket, err := h.originService.SubmitJob(c.Request.Context(), req.PartID, time.Duration(waitSeconds)*time.Second)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "submit determination job failed: %v", err)
		ginx.FromError(c, err)
		return
	}

	if !ticket.Done() {
		ginx.Processing(c, ginx.ProcessingData{
			RequestID: ticket.RequestID,
			PartID:    ticket.PartID,
			JobID:     ticket.JobID,
			PollURL:   "/api/v1/determinations?part_id=" + url.QueryEscape(ticket.PartID),
		})
		return
	}

	ginx.Success(c, response.FromJobTicket(ticket))
}

// History 判定历史（最新的在前）
// GET /api/v1/determinations?limit=20&part_id=X
func (h *OriginHandler) History(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			ginx.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = l
	}

	list, err := h.originService.History(c.Request.Context(), c.Query("part_id"), limit)
	if err != nil {
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromDeterminations(list))
}
