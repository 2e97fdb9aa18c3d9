package dto

import "time"

// AuditContextPayload 请求审计上下文。
// 中间件创建并注入 gin context，handler 补充业务字段，请求结束后落审计分表。
type AuditContextPayload struct {
	CreatedAt    time.Time
	StartTime    time.Time
	RefID        uint64 //业务主键：佣金ID/出款ID/批次ID/费率版本
	Biz          string //业务域 schedule/adjust/stamp/batch/recon
	Action       string
	Operator     string
	TraceID      string
	RequestBody  string
	ResponseBody string
	Status       string
	ErrorMsg     string
	IP           string
	UserAgent    string
	LatencyMs    int64
}
