package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"mkt-settle-api/internal/system"
	"mkt-settle-api/internal/utils/timeutil"
)

// NotifyPaymentAlert 代付服务异常报警（自动提取出款单要素 + 简洁 JSON 展示）
func NotifyPaymentAlert(
	level, title, url string,
	req interface{},
	resp interface{},
	extra map[string]string,
) {
	// 先序列化请求与响应
	reqJSON, _ := json.Marshal(req)
	respJSON, _ := json.Marshal(resp)

	// 尝试解析 req 为 map
	var reqMap map[string]interface{}
	_ = json.Unmarshal(reqJSON, &reqMap)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n", escapeMarkdown(title)))
	sb.WriteString(fmt.Sprintf("*服务接口:* %s\n", escapeMarkdown(url)))
	sb.WriteString(fmt.Sprintf("*请求时间:* %s\n", timeutil.NowShanghai().Format("2006-01-02 15:04:05")))

	// ========== 自动提取出款单要素 ==========
	writeIf := func(label string, keys ...string) {
		for _, k := range keys {
			if v, ok := reqMap[k]; ok {
				val := fmt.Sprintf("%v", v)
				if val != "" && val != "<nil>" {
					sb.WriteString(fmt.Sprintf("%s: %s\n", escapeMarkdown(label), escapeMarkdown(val)))
					break
				}
			}
		}
	}

	writeIf("出款单号", "payoutNo")
	writeIf("接入方编号", "appId")
	writeIf("货币", "currency")
	writeIf("净额", "amount")
	writeIf("出款方式", "method")
	writeIf("通道类型", "rail")

	// ========== 额外信息（例如代付方Code、Msg） ==========
	if len(extra) > 0 {
		for k, v := range extra {
			if v != "" {
				sb.WriteString(fmt.Sprintf("%s: %s\n", escapeMarkdown(k), escapeMarkdown(v)))
			}
		}
	}

	// ========== 请求参数（单行 JSON） ==========
	sReq := strings.TrimSpace(string(reqJSON))
	if sReq != "" && sReq != "{}" {
		sb.WriteString("\n*请求参数:*\n")
		sb.WriteString(fmt.Sprintf("`%s`\n", escapeMarkdown(sReq)))
	}

	// ========== 代付方返回（单行 JSON） ==========
	sResp := strings.TrimSpace(string(respJSON))
	if sResp != "" && sResp != "{}" {
		sb.WriteString("\n*代付方返回:*\n")
		sb.WriteString(fmt.Sprintf("`%s`\n", escapeMarkdown(sResp)))
	}

	Notify(system.BotChatID, level, title, sb.String(), true)
}

// NotifyInterventionAlert 出款重试耗尽，提示人工介入
func NotifyInterventionAlert(payoutID, supplierID uint64, period, netAmount, reason string, attemptCount int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*出款单:* %d\n", payoutID))
	sb.WriteString(fmt.Sprintf("*供应商:* %d\n", supplierID))
	sb.WriteString(fmt.Sprintf("*结算周期:* %s\n", escapeMarkdown(period)))
	sb.WriteString(fmt.Sprintf("*净额:* %s\n", escapeMarkdown(netAmount)))
	sb.WriteString(fmt.Sprintf("*已尝试:* %d 次\n", attemptCount))
	if reason != "" {
		sb.WriteString(fmt.Sprintf("*末次失败原因:* %s\n", escapeMarkdown(reason)))
	}
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", timeutil.NowShanghai().Format("2006-01-02 15:04:05")))

	Notify(system.BotChatID, "error", "出款重试耗尽，需人工介入", sb.String(), true)
}

// NotifyDiscrepancyAlert 结算对账差异报警
func NotifyDiscrepancyAlert(batchNo, fileNo string, count int, detail string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*对账批次:* %s\n", escapeMarkdown(batchNo)))
	sb.WriteString(fmt.Sprintf("*对账文件:* %s\n", escapeMarkdown(fileNo)))
	sb.WriteString(fmt.Sprintf("*差异条数:* %d\n", count))
	if detail != "" {
		sb.WriteString(fmt.Sprintf("\n`%s`\n", escapeMarkdown(detail)))
	}

	Notify(system.BotChatID, "warn", "结算对账发现差异", sb.String(), true)
}

// NotifyRateChangeAlert 费率表高风险变更提醒
func NotifyRateChangeAlert(version uint64, operator string, affected int, riskLevel string, changePct string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*新版本:* %d\n", version))
	sb.WriteString(fmt.Sprintf("*操作人:* %s\n", escapeMarkdown(operator)))
	sb.WriteString(fmt.Sprintf("*受影响供应商:* %d\n", affected))
	sb.WriteString(fmt.Sprintf("*风险等级:* %s\n", escapeMarkdown(riskLevel)))
	sb.WriteString(fmt.Sprintf("*预估佣金变动:* %s%%\n", escapeMarkdown(changePct)))

	Notify(system.BotChatID, "warn", "费率表高风险变更", sb.String(), false)
}

// escapeMarkdown 转义 Telegram Markdown V2 特殊字符
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(s)
}
