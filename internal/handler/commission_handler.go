package handler

import (
	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/service"
)

// CommissionHandler 佣金处理器
type CommissionHandler struct{ svc *service.CommissionService }

func NewCommissionHandler() *CommissionHandler {
	return &CommissionHandler{svc: service.NewCommissionService()}
}

// Compute 佣金试算，不落库
func (h *CommissionHandler) Compute(c *gin.Context) {
	var req dto.ComputeCommissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	resp, err := h.svc.Compute(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// PreviewAdjust 调整预览，返回 base_version 供 apply 带回
func (h *CommissionHandler) PreviewAdjust(c *gin.Context) {
	var req dto.PreviewAdjustReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	resp, err := h.svc.PreviewAdjust(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// ApplyAdjust 调整落库，base_version 不匹配则拒绝
func (h *CommissionHandler) ApplyAdjust(c *gin.Context) {
	var req dto.ApplyAdjustReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "adjust", req.AdjustType, req.CommissionID, req.Operator)

	resp, err := h.svc.ApplyAdjust(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Query 按订单号查佣金与调整流水
func (h *CommissionHandler) Query(c *gin.Context) {
	var req dto.CommissionQueryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	vo, adjusts, err := h.svc.GetByOrderNo(req.OrderNo)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"commission": vo, "adjusts": adjusts})
}
