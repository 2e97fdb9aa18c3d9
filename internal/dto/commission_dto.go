package dto

import "time"

// ComputeCommissionReq 佣金试算请求（不落库）
type ComputeCommissionReq struct {
	SupplierID  uint64 `json:"supplier_id" binding:"required"` //供应商ID
	CategoryID  uint64 `json:"category_id"`                    //品类ID
	OrderAmount string `json:"order_amount" binding:"required"`
}

// ComputeCommissionResp 佣金试算结果
type ComputeCommissionResp struct {
	OrderAmount      string `json:"order_amount"`
	Rate             string `json:"rate"`
	Source           string `json:"source"`
	CommissionAmount string `json:"commission_amount"`
	ScheduleVersion  uint64 `json:"schedule_version"`
	Currency         string `json:"currency"`
}

// PreviewAdjustReq 佣金调整预览请求
type PreviewAdjustReq struct {
	CommissionID uint64 `json:"commission_id" binding:"required"`
	AdjustType   string `json:"adjust_type" binding:"required,oneof=refund penalty bonus correction"`
	Amount       string `json:"amount" binding:"required"` //refund为退款金额，其余为调整额
	Reason       string `json:"reason"`
}

// AdjustPreviewVO 调整预览结果（apply 前的快照）
type AdjustPreviewVO struct {
	CommissionID   uint64 `json:"commission_id"`
	AdjustType     string `json:"adjust_type"`
	Amount         string `json:"amount"`
	Ratio          string `json:"ratio,omitempty"` //仅 refund 返回
	PrevCommission string `json:"prev_commission"`
	NewCommission  string `json:"new_commission"`
	Impact         string `json:"impact"`
	ImpactPct      string `json:"impact_pct"`
	BaseVersion    int    `json:"base_version"` //apply 时原样带回
}

// ApplyAdjustReq 佣金调整落库请求（乐观并发）
type ApplyAdjustReq struct {
	CommissionID uint64 `json:"commission_id" binding:"required"`
	AdjustType   string `json:"adjust_type" binding:"required,oneof=refund penalty bonus correction"`
	Amount       string `json:"amount" binding:"required"`
	BaseVersion  int    `json:"base_version"` //预览时的 adjust_version
	Operator     string `json:"operator" binding:"required"`
	Reason       string `json:"reason"`
}

// ApplyAdjustResp 调整落库结果
type ApplyAdjustResp struct {
	AdjustID      uint64 `json:"adjust_id"`
	CommissionID  uint64 `json:"commission_id"`
	NewCommission string `json:"new_commission"`
	AdjustVersion int    `json:"adjust_version"` //落库后的新版本
}

// CommissionVO 佣金记录视图
type CommissionVO struct {
	CommissionID     uint64    `json:"commission_id"`
	OrderID          uint64    `json:"order_id"`
	OrderNo          string    `json:"order_no"`
	SupplierID       uint64    `json:"supplier_id"`
	CategoryID       uint64    `json:"category_id"`
	OrderAmount      string    `json:"order_amount"`
	Currency         string    `json:"currency"`
	ResolvedRate     string    `json:"resolved_rate"`
	ResolvedFrom     string    `json:"resolved_from"`
	ScheduleVersion  uint64    `json:"schedule_version"`
	CommissionAmount string    `json:"commission_amount"` //初始佣金
	CurrentAmount    string    `json:"current_amount"`    //调整后佣金
	AdjustVersion    int       `json:"adjust_version"`
	Settled          int8      `json:"settled"`
	CreateTime       time.Time `json:"create_time"`
}

// AdjustLogVO 调整流水视图
type AdjustLogVO struct {
	AdjustID   uint64    `json:"adjust_id"`
	AdjustType string    `json:"adjust_type"`
	Amount     string    `json:"amount"`
	PrevAmount string    `json:"prev_amount"`
	NewAmount  string    `json:"new_amount"`
	Impact     string    `json:"impact"`
	ImpactPct  string    `json:"impact_pct"`
	Reason     string    `json:"reason"`
	Operator   string    `json:"operator"`
	CreateTime time.Time `json:"create_time"`
}

// CommissionQueryReq 内部佣金查询
type CommissionQueryReq struct {
	OrderNo string `json:"order_no" form:"order_no" binding:"required"`
}
