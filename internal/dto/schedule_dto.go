package dto

import "time"

// ResolveRateReq 费率解析请求
type ResolveRateReq struct {
	SupplierID uint64 `json:"supplier_id" binding:"required"` //供应商ID
	CategoryID uint64 `json:"category_id"`                    //品类ID，0表示无品类
}

// ResolveRateResp 费率解析结果
type ResolveRateResp struct {
	SupplierID      uint64 `json:"supplier_id"`
	Tier            string `json:"tier"`             //供应商等级
	Rate            string `json:"rate"`             //抽佣百分比
	Source          string `json:"source"`           //命中层级 supplier/category/tier/default
	ScheduleVersion uint64 `json:"schedule_version"` //费率表版本
}

// ScheduleVO 费率表视图
type ScheduleVO struct {
	Version           uint64            `json:"version"`
	DefaultRate       string            `json:"default_rate"`
	TierRates         map[string]string `json:"tier_rates"`
	CategoryRates     map[string]string `json:"category_rates"`
	SupplierOverrides map[string]string `json:"supplier_overrides"`
	EffectiveFrom     time.Time         `json:"effective_from"`
	ChangedBy         string            `json:"changed_by,omitempty"`
	ChangeReason      string            `json:"change_reason,omitempty"`
}

// GetScheduleReq 费率表查询
type GetScheduleReq struct {
	Version uint64 `json:"version"` //0表示当前版本
}

// SetCategoryRateReq 设置品类费率
type SetCategoryRateReq struct {
	CategoryID  uint64 `json:"category_id" binding:"required"`  //品类ID
	Rate        string `json:"rate" binding:"required"`         //百分比 0-100
	BaseVersion uint64 `json:"base_version" binding:"required"` //基准版本（乐观并发）
	Operator    string `json:"operator" binding:"required"`     //操作人
	Reason      string `json:"reason"`                          //变更原因
}

// RemoveCategoryRateReq 移除品类费率
type RemoveCategoryRateReq struct {
	CategoryID  uint64 `json:"category_id" binding:"required"`
	BaseVersion uint64 `json:"base_version" binding:"required"`
	Operator    string `json:"operator" binding:"required"`
	Reason      string `json:"reason"`
}

// SetSupplierOverrideReq 设置供应商专属费率
type SetSupplierOverrideReq struct {
	SupplierID  uint64 `json:"supplier_id" binding:"required"`
	Rate        string `json:"rate" binding:"required"`
	BaseVersion uint64 `json:"base_version" binding:"required"`
	Operator    string `json:"operator" binding:"required"`
	Reason      string `json:"reason"`
}

// RemoveSupplierOverrideReq 移除供应商专属费率
type RemoveSupplierOverrideReq struct {
	SupplierID  uint64 `json:"supplier_id" binding:"required"`
	BaseVersion uint64 `json:"base_version" binding:"required"`
	Operator    string `json:"operator" binding:"required"`
	Reason      string `json:"reason"`
}

// UpdateTierRatesReq 批量调整默认费率与全部等级费率（单版本内原子生效）
type UpdateTierRatesReq struct {
	DefaultRate string            `json:"default_rate" binding:"required"`
	TierRates   map[string]string `json:"tier_rates" binding:"required"` //必须覆盖 free/silver/gold/platinum
	BaseVersion uint64            `json:"base_version" binding:"required"`
	Operator    string            `json:"operator" binding:"required"`
	Reason      string            `json:"reason"`
}

// ScheduleMutationResp 费率表变更结果
type ScheduleMutationResp struct {
	Version       uint64    `json:"version"` //新版本号
	EffectiveFrom time.Time `json:"effective_from"`
}

// ImpactAnalyzeReq 费率变更影响评估（候选值在当前版本之上叠加）
type ImpactAnalyzeReq struct {
	DefaultRate       *string           `json:"default_rate"`       //为空表示不变
	TierRates         map[string]string `json:"tier_rates"`         //仅覆盖给出的等级
	CategoryRates     map[string]string `json:"category_rates"`     //key 为品类ID
	SupplierOverrides map[string]string `json:"supplier_overrides"` //key 为供应商ID
	RemoveCategories  []uint64          `json:"remove_categories"`
	RemoveSuppliers   []uint64          `json:"remove_suppliers"`
	WindowDays        int               `json:"window_days"` //回看窗口，0取配置默认
}

// SupplierImpactVO 单供应商影响明细
type SupplierImpactVO struct {
	SupplierID    uint64 `json:"supplier_id"`
	Tier          string `json:"tier"`
	OldRate       string `json:"old_rate"`
	NewRate       string `json:"new_rate"`
	OldSource     string `json:"old_source"`
	NewSource     string `json:"new_source"`
	TrailingOrder string `json:"trailing_order_amount"` //窗口期订单额
	RevenueChange string `json:"revenue_change"`        //佣金收入变化
}

// ImpactAnalyzeResp 影响评估报告
type ImpactAnalyzeResp struct {
	BaseVersion            uint64             `json:"base_version"`
	WindowDays             int                `json:"window_days"`
	TotalSuppliers         int                `json:"total_suppliers"`
	AffectedCount          int                `json:"affected_count"`
	Affected               []SupplierImpactVO `json:"affected"`
	EstimatedRevenueChange string             `json:"estimated_revenue_change"`
	TrailingCommission     string             `json:"trailing_commission"`
	ChangePct              string             `json:"change_pct"`
	RiskLevel              string             `json:"risk_level"` //low/medium/high
	Recommendations        []string           `json:"recommendations"`
}

// ScheduleLogVO 费率表变更流水
type ScheduleLogVO struct {
	ID         uint64    `json:"id"`
	Version    uint64    `json:"version"`
	Field      string    `json:"field"` //default/tier/category/supplier
	EntityKey  string    `json:"entity_key"`
	PrevValue  string    `json:"prev_value"`
	NewValue   string    `json:"new_value"`
	Actor      string    `json:"actor"`
	Reason     string    `json:"reason"`
	CreateTime time.Time `json:"create_time"`
}

// ScheduleHistoryReq 变更历史查询
type ScheduleHistoryReq struct {
	PageReq
	Version uint64 `json:"version" form:"version"` //0表示全部版本
}
