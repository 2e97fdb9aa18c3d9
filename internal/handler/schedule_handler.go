package handler

import (
	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/service"
)

// ScheduleHandler 费率表处理器
type ScheduleHandler struct{ svc *service.ScheduleService }

func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{svc: service.NewScheduleService()}
}

// Resolve 单供应商费率解析
func (h *ScheduleHandler) Resolve(c *gin.Context) {
	var req dto.ResolveRateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	resp, err := h.svc.Resolve(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Get 费率表查询，version 为 0 返回当前版本
func (h *ScheduleHandler) Get(c *gin.Context) {
	var req dto.GetScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), req.Version)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// History 变更流水分页
func (h *ScheduleHandler) History(c *gin.Context) {
	var req dto.ScheduleHistoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	req.Normalize()
	logs, total, err := h.svc.History(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, dto.PageResp{Total: total, Page: req.Page, PageSize: req.PageSize, List: logs})
}

// SetCategoryRate 设置品类费率，追加新版本
func (h *ScheduleHandler) SetCategoryRate(c *gin.Context) {
	var req dto.SetCategoryRateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "schedule", "category_set", req.CategoryID, req.Operator)

	resp, err := h.svc.SetCategoryRate(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// RemoveCategoryRate 移除品类费率
func (h *ScheduleHandler) RemoveCategoryRate(c *gin.Context) {
	var req dto.RemoveCategoryRateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "schedule", "category_remove", req.CategoryID, req.Operator)

	resp, err := h.svc.RemoveCategoryRate(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// SetSupplierOverride 设置供应商专属费率
func (h *ScheduleHandler) SetSupplierOverride(c *gin.Context) {
	var req dto.SetSupplierOverrideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "schedule", "supplier_set", req.SupplierID, req.Operator)

	resp, err := h.svc.SetSupplierOverride(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// RemoveSupplierOverride 移除供应商专属费率
func (h *ScheduleHandler) RemoveSupplierOverride(c *gin.Context) {
	var req dto.RemoveSupplierOverrideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "schedule", "supplier_remove", req.SupplierID, req.Operator)

	resp, err := h.svc.RemoveSupplierOverride(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// UpdateTierRates 默认费率与等级费率整体调整
func (h *ScheduleHandler) UpdateTierRates(c *gin.Context) {
	var req dto.UpdateTierRatesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}
	fillAudit(c, "schedule", "tiers_update", req.BaseVersion, req.Operator)

	resp, err := h.svc.UpdateTierRates(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}
