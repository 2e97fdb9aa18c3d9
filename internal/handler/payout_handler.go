package handler

import (
	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/service"
)

// PayoutHandler 出款队列处理器
type PayoutHandler struct{ svc *service.PayoutService }

func NewPayoutHandler() *PayoutHandler {
	return &PayoutHandler{svc: service.NewPayoutService()}
}

// Enqueue 按周期聚合佣金并生成出款项
func (h *PayoutHandler) Enqueue(c *gin.Context) {
	var req dto.EnqueuePayoutsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "payout", "enqueue", 0, req.Operator)

	resp, err := h.svc.Enqueue(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Retry 失败出款重新入队
func (h *PayoutHandler) Retry(c *gin.Context) {
	var req dto.RetryPayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "payout", "retry", req.PayoutID, req.Operator)

	resp, err := h.svc.Retry(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Cancel 取消待处理出款
func (h *PayoutHandler) Cancel(c *gin.Context) {
	var req dto.CancelPayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "payout", "cancel", req.PayoutID, req.Operator)

	resp, err := h.svc.Cancel(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Intervention 重试耗尽待人工处理的清单
func (h *PayoutHandler) Intervention(c *gin.Context) {
	var req dto.InterventionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	resp, err := h.svc.Intervention(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// EnableRail 人工恢复熔断通道
func (h *PayoutHandler) EnableRail(c *gin.Context) {
	var req dto.RailEnableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "payout", "rail_enable", 0, req.Operator)

	resp, err := h.svc.EnableRail(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// List 出款项分页查询（内部）
func (h *PayoutHandler) List(c *gin.Context) {
	var req dto.PayoutListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	req.Normalize()
	items, total, err := h.svc.List(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, dto.PageResp{Total: total, Page: req.Page, PageSize: req.PageSize, List: items})
}

// Detail 出款项详情与关联对账差异（内部）
func (h *PayoutHandler) Detail(c *gin.Context) {
	var req dto.IDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	vo, err := h.svc.Get(req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	diffs, err := h.svc.DiscrepanciesOf(req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"item": vo, "discrepancies": diffs})
}
