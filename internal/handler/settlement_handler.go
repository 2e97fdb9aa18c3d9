package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/callback"
	"mkt-settle-api/internal/constant"
	"mkt-settle-api/internal/dto"
)

// SettlementHandler 代付服务结算确认回调入口
// 应答走对方的协议格式而非平台统一响应体
type SettlementHandler struct {
	cb *callback.SettlementCallback
}

func NewSettlementHandler() *SettlementHandler {
	return &SettlementHandler{cb: callback.NewSettlementCallback()}
}

// Settlement POST /callback/payment/settlement
func (h *SettlementHandler) Settlement(c *gin.Context) {
	var req dto.SettlementCallbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.SettlementCallbackResp{Code: constant.CodeInvalidParams, Msg: "bad request"})
		return
	}

	fillAudit(c, "recon", "settlement_file", 0, req.AppId)
	resp := h.cb.HandleSettlementFile(&req)
	if p := auditCtx(c); p != nil {
		if resp.Code == 0 {
			p.Status = "ok"
		} else {
			p.Status = "fail"
			p.ErrorMsg = resp.Msg
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Discrepancies GET /internal/v1/recon/discrepancies 差异记录分页查询
func (h *SettlementHandler) Discrepancies(c *gin.Context) {
	var req dto.PageReq
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}
	req.Normalize()

	rows, total, err := h.cb.ListDiscrepancies(req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, dto.PageResp{Total: total, Page: req.Page, PageSize: req.PageSize, List: rows})
}
