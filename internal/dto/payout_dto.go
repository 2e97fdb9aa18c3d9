package dto

import "time"

// EnqueuePayoutsReq 出款入队请求（按供应商+周期聚合未结算佣金）
type EnqueuePayoutsReq struct {
	Period        string   `json:"period" binding:"required,len=6"` //结算周期 YYYYMM
	SupplierIDs   []uint64 `json:"supplier_ids"`                    //为空表示全部启用中的供应商
	ScheduledDate string   `json:"scheduled_date"`                  //计划出款日 YYYY-MM-DD，空为当天
	Operator      string   `json:"operator" binding:"required"`
}

// EnqueueSkipVO 入队被跳过的供应商及原因
type EnqueueSkipVO struct {
	SupplierID uint64 `json:"supplier_id"`
	NetAmount  string `json:"net_amount,omitempty"`
	Reason     string `json:"reason"`
}

// EnqueuePayoutsResp 入队结果
type EnqueuePayoutsResp struct {
	Period       string          `json:"period"`
	CreatedCount int             `json:"created_count"`
	TotalAmount  string          `json:"total_amount"` //本次入队净额合计
	Created      []PayoutItemVO  `json:"created"`
	Skipped      []EnqueueSkipVO `json:"skipped,omitempty"`
}

// PayoutItemVO 出款项视图
type PayoutItemVO struct {
	PayoutID         uint64     `json:"payout_id"`
	SupplierID       uint64     `json:"supplier_id"`
	Period           string     `json:"period"`
	GrossAmount      string     `json:"gross_amount"`      //窗口期订单总额
	CommissionAmount string     `json:"commission_amount"` //抽佣合计
	NetAmount        string     `json:"net_amount"`        //应付净额
	Currency         string     `json:"currency"`
	Method           string     `json:"method"`
	Status           string     `json:"status"`
	ScheduledDate    time.Time  `json:"scheduled_date"`
	ProcessedDate    *time.Time `json:"processed_date,omitempty"`
	TransactionID    string     `json:"transaction_id,omitempty"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	AttemptCount     int        `json:"attempt_count"`
	ClaimBatchID     uint64     `json:"claim_batch_id,omitempty"`
	CreateTime       time.Time  `json:"create_time"`
}

// ProcessBatchReq 批量出款请求
type ProcessBatchReq struct {
	ItemIDs   []uint64 `json:"item_ids" binding:"required,min=1"`
	BatchSize int      `json:"batch_size"` //子批大小，0取配置默认
	Operator  string   `json:"operator" binding:"required"`
}

// ItemResultVO 批次内单项处理结果
type ItemResultVO struct {
	PayoutID      uint64 `json:"payout_id"`
	Status        string `json:"status"` //completed/failed
	TransactionID string `json:"transaction_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
	AttemptCount  int    `json:"attempt_count"`
}

// BatchResultVO 批次处理汇总
type BatchResultVO struct {
	BatchID     uint64         `json:"batch_id"`
	BatchNo     string         `json:"batch_no"`
	Status      string         `json:"status"`
	Processed   int            `json:"processed"`
	Successful  int            `json:"successful"`
	Failed      int            `json:"failed"`
	TotalAmount string         `json:"total_amount"` //成功项净额合计
	Results     []ItemResultVO `json:"results"`
}

// RetryPayoutReq 失败出款重试
type RetryPayoutReq struct {
	PayoutID uint64 `json:"payout_id" binding:"required"`
	Operator string `json:"operator" binding:"required"`
}

// CancelPayoutReq 取消待处理出款
type CancelPayoutReq struct {
	PayoutID uint64 `json:"payout_id" binding:"required"`
	Operator string `json:"operator" binding:"required"`
	Reason   string `json:"reason"`
}

// InterventionReq 人工介入清单查询
type InterventionReq struct {
	PageReq
}

// InterventionItemVO 重试次数耗尽、需人工处理的出款项
type InterventionItemVO struct {
	PayoutID      uint64    `json:"payout_id"`
	SupplierID    uint64    `json:"supplier_id"`
	Period        string    `json:"period"`
	NetAmount     string    `json:"net_amount"`
	Currency      string    `json:"currency"`
	AttemptCount  int       `json:"attempt_count"`
	FailureReason string    `json:"failure_reason"`
	UpdateTime    time.Time `json:"update_time"`
}

// RailHealthVO 出款通道健康快照
type RailHealthVO struct {
	Method      string  `json:"method"`
	Rail        string  `json:"rail"`
	SuccessRate float64 `json:"success_rate"`
	Disabled    bool    `json:"disabled"` //是否熔断中
}

// InterventionResp 人工介入清单，附带通道成功率辅助研判
type InterventionResp struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	List     []InterventionItemVO `json:"list"`
	Rails    []RailHealthVO       `json:"rails"`
}

// RailEnableReq 人工解除通道熔断
type RailEnableReq struct {
	Method   string `json:"method" binding:"required"`
	Operator string `json:"operator" binding:"required"`
}

// PayoutListReq 内部出款项列表查询
type PayoutListReq struct {
	PageReq
	SupplierID uint64 `json:"supplier_id" form:"supplier_id"`
	Period     string `json:"period" form:"period"`
	Status     string `json:"status" form:"status"` //pending/processing/completed/failed/cancelled，空为全部
}

// BatchDetailReq 批次查询
type BatchDetailReq struct {
	BatchNo string `json:"batch_no" form:"batch_no" binding:"required"`
}

// BatchVO 批次视图
type BatchVO struct {
	BatchID      uint64     `json:"batch_id"`
	BatchNo      string     `json:"batch_no"`
	MemberIDs    []uint64   `json:"member_ids"`
	TotalAmount  string     `json:"total_amount"`
	TotalCount   int        `json:"total_count"`
	SuccessCount int        `json:"success_count"`
	FailCount    int        `json:"fail_count"`
	Status       string     `json:"status"`
	SubBatchSize int        `json:"sub_batch_size"`
	ProcessedBy  string     `json:"processed_by"`
	CreateTime   time.Time  `json:"create_time"`
	CompleteTime *time.Time `json:"complete_time,omitempty"`
}
