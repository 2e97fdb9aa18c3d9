package ledgermodel

import "time"

// SettleLogM 结算动作审计日志（分表，只追加）
type SettleLogM struct {
	LogID      uint64    `gorm:"column:log_id;primaryKey;autoIncrement" json:"logId"`          // 主键
	RefID      uint64    `gorm:"column:ref_id;index;not null" json:"refId"`                    // 关联实体ID（佣金/出款/批次/版本）
	Biz        string    `gorm:"column:biz;type:varchar(16);not null" json:"biz"`              // 业务域 schedule/adjust/stamp/batch/recon
	Action     string    `gorm:"column:action;type:varchar(32);not null" json:"action"`        // 动作名
	TraceID    string    `gorm:"column:trace_id;type:varchar(64)" json:"traceId"`              // 请求链路ID
	Detail     string    `gorm:"column:detail;type:text" json:"detail"`                        // 动作明细 JSON
	Status     string    `gorm:"column:status;type:varchar(8)" json:"status"`                  // 处理结果 ok/fail
	ErrorMsg   string    `gorm:"column:error_msg;type:varchar(255)" json:"errorMsg"`           // 失败原因
	Operator   string    `gorm:"column:operator;type:varchar(32)" json:"operator"`             // 操作人
	IP         string    `gorm:"column:ip;type:varchar(32)" json:"ip"`                         // 来源IP
	LatencyMs  int64     `gorm:"column:latency_ms;not null;default:0" json:"latencyMs"`        // 处理耗时
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"` // 时间戳
}
