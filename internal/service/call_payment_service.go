package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/dto"
	mainmodel "mkt-settle-api/internal/model/main"
	"mkt-settle-api/internal/notify"
	"mkt-settle-api/internal/payout"
	"mkt-settle-api/internal/utils"
)

const (
	paymentRetryTimes    = 2
	paymentRetryInterval = 2 * time.Second
)

// CallPaymentSubmit 调用代付服务提交单笔出款
// 幂等键为 出款ID-已尝试次数，同一次尝试重复提交不会重复扣款
func CallPaymentSubmit(ctx context.Context, item *mainmodel.PayoutItemM, sup *mainmodel.Supplier) (*dto.PaymentSubmitData, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, time.Duration(config.C.Payment.TimeoutSec)*time.Second)
	defer cancel()

	method, err := utils.ParsePayoutMethod(item.Method)
	if err != nil {
		return nil, err
	}

	payoutNo := strconv.FormatUint(item.PayoutID, 10)
	timestamp := strconv.FormatInt(utils.GetTimestampMs(), 10)
	req := dto.PaymentSubmitReq{
		AppId:     config.C.Payment.AppId,
		PayoutNo:  payoutNo,
		Amount:    item.NetAmount.StringFixed(2),
		Currency:  item.Currency,
		Method:    method.Method,
		Rail:      method.Rail,
		Remark:    fmt.Sprintf("settle %s", item.Period),
		Timestamp: timestamp,
	}
	req.AccNo = sup.AccountNo
	req.AccName = sup.AccountName
	if method.NeedBankInfo {
		req.BankCode = sup.BankCode
	}
	req.Sign = utils.GenerateSign(map[string]string{
		"appId":     req.AppId,
		"payoutNo":  req.PayoutNo,
		"amount":    req.Amount,
		"currency":  req.Currency,
		"method":    req.Method,
		"rail":      req.Rail,
		"accNo":     req.AccNo,
		"accName":   req.AccName,
		"bankCode":  req.BankCode,
		"timestamp": req.Timestamp,
	}, config.C.Payment.Secret)

	submitUrl := config.C.Payment.ApiUrl
	log.Printf("[Payment-Submit] 请求地址: %s, 出款单号: %s, 净额: %s %s", submitUrl, payoutNo, req.Amount, req.Currency)

	// ✅ 健康检查
	if err := utils.CheckUpstreamHealth(ctxTimeout, submitUrl); err != nil {
		log.Printf("[Payment-Submit] 健康检查失败: %v", err)
		notify.NotifyPaymentAlert("warn", "代付服务不可用", submitUrl, req, nil, map[string]string{
			"错误": err.Error(),
		})
		return nil, fmt.Errorf("payment service unavailable")
	}

	// ✅ 带重试逻辑（幂等键保证同一次尝试不会重复下单）
	idemKey := payout.IdempotencyKey(item.PayoutID, item.AttemptCount)
	var resp string
	err = utils.DoWithRetry(ctxTimeout, paymentRetryTimes, paymentRetryInterval, func() error {
		r, e := utils.HttpPostJsonWithHeaders(ctxTimeout, submitUrl, req, map[string]string{
			"X-Idempotency-Key": idemKey,
		})
		if e != nil {
			return e
		}
		resp = r
		return nil
	})
	if err != nil {
		log.Printf("[Payment-Submit] 请求失败(重试后仍失败): %v", err)
		notify.NotifyPaymentAlert("error", "代付请求失败(重试后仍失败)", submitUrl, req, resp, map[string]string{
			"错误":   err.Error(),
			"重试次数": strconv.Itoa(paymentRetryTimes),
		})
		return nil, fmt.Errorf("payment request failed")
	}

	log.Printf("[Payment-Submit] 响应原始数据: %s", resp)

	// ✅ JSON解析
	var response struct {
		Code utils.StringOrNumber `json:"code"` // 顶层code（无用）
		Msg  utils.FlexibleMsg    `json:"msg"`
		Data struct {
			Code          utils.StringOrNumber `json:"code"` // 实际判断的字段
			Msg           utils.FlexibleMsg    `json:"msg"`
			Status        string               `json:"status"`
			TransactionId utils.StringOrNumber `json:"transaction_id"`
			PayoutNo      string               `json:"payout_no"`
			FailReason    string               `json:"fail_reason"`
		} `json:"data"`
	}

	if respErr := json.Unmarshal([]byte(resp), &response); respErr != nil {
		log.Printf("[Payment-Submit] JSON解析失败: %v", respErr)
		notify.NotifyPaymentAlert("error", "代付响应解析失败", submitUrl, req, resp, map[string]string{
			"错误": respErr.Error(),
		})
		return nil, fmt.Errorf("payment response malformed")
	}

	// ✅ 判断响应成功
	if !isSuccessCode(string(response.Code)) || string(response.Data.Code) != "0" {
		reason := strings.TrimSpace(response.Data.FailReason)
		if reason == "" {
			reason = strings.TrimSpace(response.Data.Msg.Text)
		}
		log.Printf("[Payment-Submit] 代付方返回错误: data.code=%s, reason=%s", response.Data.Code, reason)
		notify.NotifyPaymentAlert("warn", "代付方拒绝出款", submitUrl, req, response, map[string]string{
			"代付方Code": string(response.Data.Code),
			"拒绝原因":    reason,
		})
		return &dto.PaymentSubmitData{
			Status:     "FAILED",
			PayoutNo:   payoutNo,
			FailReason: reason,
		}, nil
	}

	// 代付方受理即占款，PROCESSING 与 SUCCESS 同等对待，差异由结算对账文件兜底
	status := strings.ToUpper(strings.TrimSpace(response.Data.Status))
	txnID := strings.TrimSpace(string(response.Data.TransactionId))
	if status == "FAILED" {
		reason := strings.TrimSpace(response.Data.FailReason)
		return &dto.PaymentSubmitData{Status: "FAILED", PayoutNo: payoutNo, FailReason: reason}, nil
	}
	if txnID == "" {
		log.Printf("[Payment-Submit] 代付方返回缺少交易号, payoutNo=%s", payoutNo)
		notify.NotifyPaymentAlert("warn", "代付方返回缺少交易号", submitUrl, req, response, nil)
		return nil, fmt.Errorf("payment response missing transaction id")
	}

	log.Printf("[Payment-Submit] 出款受理成功, payoutNo=%s, transactionId=%s, status=%s", payoutNo, txnID, status)

	return &dto.PaymentSubmitData{
		Status:        "SUCCESS",
		TransactionId: txnID,
		PayoutNo:      payoutNo,
	}, nil
}

// isSuccessCode 检查响应码是否为成功（支持字符串和数字类型）
func isSuccessCode(code interface{}) bool {
	switch v := code.(type) {
	case string:
		return v == "0" || v == "0000" || v == "success" || v == "SUCCESS"
	case int:
		return v == 0 || v == 200
	case float64:
		return v == 0 || v == 200
	default:
		return false
	}
}
