package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"mkt-settle-api/internal/commission"
	"mkt-settle-api/internal/constant"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/payout"
	"mkt-settle-api/internal/rate"
	"mkt-settle-api/internal/service"
	"mkt-settle-api/internal/utils"
)

// auditCtx 取中间件注入的审计上下文
func auditCtx(c *gin.Context) *dto.AuditContextPayload {
	if v, ok := c.Get("audit_ctx"); ok {
		if p, ok := v.(*dto.AuditContextPayload); ok {
			return p
		}
	}
	return nil
}

func traceID(c *gin.Context) string {
	if p := auditCtx(c); p != nil {
		return p.TraceID
	}
	return ""
}

// fillAudit 补充审计上下文的业务字段，请求结束后随流水落库
func fillAudit(c *gin.Context, biz, action string, refID uint64, operator string) {
	if p := auditCtx(c); p != nil {
		p.Biz = biz
		p.Action = action
		p.RefID = refID
		p.Operator = operator
	}
}

// bizCode 服务层错误到响应码的映射
func bizCode(err error) int {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		return constant.CodeScheduleNotFound
	case errors.Is(err, rate.ErrStaleSchedule):
		return constant.CodeScheduleVersionStale
	case errors.Is(err, rate.ErrFieldMissing):
		return constant.CodeScheduleFieldEmpty
	case errors.Is(err, rate.ErrInvalidRate):
		return constant.CodeRateValueInvalid
	case errors.Is(err, service.ErrSupplierNotFound):
		return constant.CodeSupplierNotFound
	case errors.Is(err, service.ErrCommissionNotFound):
		return constant.CodeCommissionNotFound
	case errors.Is(err, commission.ErrStaleCommission):
		return constant.CodeCommissionStale
	case errors.Is(err, commission.ErrInvalidAdjustment):
		return constant.CodeAdjustAmountError
	case errors.Is(err, service.ErrPayoutNotFound):
		return constant.CodePayoutNotFound
	case errors.Is(err, payout.ErrRetryExhausted):
		return constant.CodePayoutExhausted
	case errors.Is(err, payout.ErrConcurrentClaim):
		return constant.CodePayoutClaimed
	case errors.Is(err, payout.ErrBelowMinimum):
		return constant.CodePayoutBelowMin
	case errors.Is(err, payout.ErrNotDue):
		return constant.CodePayoutNotDue
	case errors.Is(err, payout.ErrNotEligible):
		return constant.CodePayoutTransition
	case errors.Is(err, payout.ErrInvalidTransition):
		return constant.CodePayoutTransition
	case errors.Is(err, service.ErrBatchNotFound):
		return constant.CodeBatchNotFound
	case errors.Is(err, service.ErrBatchSizeInvalid):
		return constant.CodeBatchSizeInvalid
	default:
		return constant.CodeSystemError
	}
}

// ok 统一成功出口
func ok(c *gin.Context, data interface{}) {
	if p := auditCtx(c); p != nil {
		p.Status = "ok"
	}
	c.JSON(http.StatusOK, utils.SuccessWithTrace(data, traceID(c)))
}

// fail 统一错误出口。业务码透传底层原因，系统错误只回注册表文案。
func fail(c *gin.Context, err error) {
	if p := auditCtx(c); p != nil {
		p.Status = "fail"
		p.ErrorMsg = err.Error()
	}

	code := bizCode(err)
	if code == constant.CodeSystemError {
		c.JSON(http.StatusOK, utils.ErrorWithTrace(code, traceID(c)))
		return
	}
	c.JSON(http.StatusOK, utils.ErrorMsgWithTrace(code, err.Error(), traceID(c)))
}

// failCode 指定响应码的错误出口（handler 按场景覆盖默认映射时用）
func failCode(c *gin.Context, code int, err error) {
	if p := auditCtx(c); p != nil {
		p.Status = "fail"
		p.ErrorMsg = err.Error()
	}
	c.JSON(http.StatusOK, utils.ErrorMsgWithTrace(code, err.Error(), traceID(c)))
}

// badParams 参数绑定失败，字段校验错误逐项翻译
func badParams(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		errFields := make([]map[string]string, 0, len(ve))
		for _, fe := range ve {
			errFields = append(errFields, map[string]string{
				"field": fe.Field(),
				"error": utils.ValidationMsg(fe),
			})
		}
		c.JSON(http.StatusOK, utils.ErrorWithData(constant.CodeInvalidParams, errFields))
		return
	}
	c.JSON(http.StatusOK, utils.ErrorMsgWithTrace(constant.CodeInvalidParams, err.Error(), traceID(c)))
}
