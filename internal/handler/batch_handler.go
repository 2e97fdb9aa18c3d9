package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/constant"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/payout"
	"mkt-settle-api/internal/service"
)

// BatchHandler 批量出款处理器
type BatchHandler struct{ svc *service.BatchService }

func NewBatchHandler() *BatchHandler {
	return &BatchHandler{svc: service.NewBatchService()}
}

// Process 批量出款。锁定竞争失败按批次占用处理。
func (h *BatchHandler) Process(c *gin.Context) {
	var req dto.ProcessBatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "batch", "process", 0, req.Operator)

	resp, err := h.svc.ProcessBatch(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, payout.ErrConcurrentClaim) {
			failCode(c, constant.CodeBatchBusy, err)
			return
		}
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Detail 按批次号查询（内部）
func (h *BatchHandler) Detail(c *gin.Context) {
	var req dto.BatchDetailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	vo, err := h.svc.GetBatch(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, vo)
}

// List 最近批次（内部）
func (h *BatchHandler) List(c *gin.Context) {
	var req dto.PageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	req.Normalize()
	items, total, err := h.svc.ListBatches(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, dto.PageResp{Total: total, Page: req.Page, PageSize: req.PageSize, List: items})
}
