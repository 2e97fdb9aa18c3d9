package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCompletedEvent 订单完成事件（order_completed 队列）
type OrderCompletedEvent struct {
	OrderID     uint64 `json:"order_id"`
	OrderNo     string `json:"order_no"`
	SupplierID  uint64 `json:"supplier_id"`
	CategoryID  uint64 `json:"category_id"` //0表示无品类
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	CompletedAt int64  `json:"completed_at"`          //毫秒时间戳
	RetryCount  int    `json:"retry_count,omitempty"` //消费端重投计数
}

// CommissionStampedEvent 佣金落账事件
type CommissionStampedEvent struct {
	CommissionID    uint64 `json:"commission_id"`
	OrderID         uint64 `json:"order_id"`
	OrderNo         string `json:"order_no"`
	SupplierID      uint64 `json:"supplier_id"`
	OrderAmount     string `json:"order_amount"`
	Rate            string `json:"rate"`
	Source          string `json:"source"`
	ScheduleVersion uint64 `json:"schedule_version"`
	Amount          string `json:"amount"`
	CreatedAt       int64  `json:"created_at"`
}

// ScheduleChangedEvent 费率表变更事件
type ScheduleChangedEvent struct {
	Version   uint64 `json:"version"`
	Field     string `json:"field"` //default/tier/category/supplier
	EntityKey string `json:"entity_key,omitempty"`
	Operator  string `json:"operator"`
	ChangedAt int64  `json:"changed_at"`
}

// PayoutNotifyMsg 出款结果通知（payout_notify 队列，投递到供应商 webhook）
type PayoutNotifyMsg struct {
	PayoutID      uint64 `json:"payout_id"`
	SupplierID    uint64 `json:"supplier_id"`
	Period        string `json:"period"`
	Status        string `json:"status"` //completed/failed
	NetAmount     string `json:"net_amount"`
	Currency      string `json:"currency"`
	TransactionID string `json:"transaction_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
	BatchNo       string `json:"batch_no"`
	NotifiedAt    int64  `json:"notified_at"`
}

// BatchFinishedEvent 批次完结事件
type BatchFinishedEvent struct {
	BatchID     uint64 `json:"batch_id"`
	BatchNo     string `json:"batch_no"`
	Status      string `json:"status"`
	Processed   int    `json:"processed"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	TotalAmount string `json:"total_amount"`
	FinishedAt  int64  `json:"finished_at"`
}

// SupplierWebhookPayload 投递到供应商回调地址的消息体（附 MD5 签名）
type SupplierWebhookPayload struct {
	PayoutID      string          `json:"payout_id"`
	Period        string          `json:"period"`
	Status        string          `json:"status"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Currency      string          `json:"currency"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	BatchNo       string          `json:"batch_no"`
	Timestamp     string          `json:"timestamp"` //毫秒时间戳
	Sign          string          `json:"sign"`      //MD5 签名 32大写
}

// SettleLogPayload 审计流水内容（入 p_settle_log 分表）
type SettleLogPayload struct {
	RefID     uint64      `json:"ref_id"`
	Biz       string      `json:"biz"` //schedule/adjust/stamp/batch/recon
	Action    string      `json:"action"`
	Detail    interface{} `json:"detail,omitempty"`
	Operator  string      `json:"operator,omitempty"`
	IP        string      `json:"ip,omitempty"`
	LatencyMs int64       `json:"latency_ms,omitempty"`
	LoggedAt  time.Time   `json:"logged_at"`
}
