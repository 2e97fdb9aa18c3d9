package handler

import (
	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/service"
)

// ImpactHandler 费率变更影响评估处理器
type ImpactHandler struct{ svc *service.ImpactService }

func NewImpactHandler() *ImpactHandler {
	return &ImpactHandler{svc: service.NewImpactService()}
}

// Analyze 在当前版本之上叠加候选值做模拟，只读不落库
func (h *ImpactHandler) Analyze(c *gin.Context) {
	var req dto.ImpactAnalyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	resp, err := h.svc.Analyze(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}
