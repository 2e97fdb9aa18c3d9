package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutItemM 出款队列项
type PayoutItemM struct {
	PayoutID         uint64          `gorm:"column:payout_id;primaryKey;not null" json:"payoutId"`                        // 全局唯一出款ID
	SupplierID       uint64          `gorm:"column:supplier_id;index:idx_supplier_period;not null" json:"supplierId"`    // 供应商ID
	Period           string          `gorm:"column:period;type:char(6);index:idx_supplier_period;not null" json:"period"` // 结算周期 yyyyMM
	GrossAmount      decimal.Decimal `gorm:"column:gross_amount;type:decimal(18,4);not null" json:"grossAmount"`          // 周期内订单总额
	CommissionAmount decimal.Decimal `gorm:"column:commission_amount;type:decimal(13,2);not null" json:"commissionAmount"` // 周期内平台佣金
	NetAmount        decimal.Decimal `gorm:"column:net_amount;type:decimal(18,4);not null" json:"netAmount"`              // 应付净额 = 总额 - 佣金
	Currency         string          `gorm:"column:currency;type:char(3);not null" json:"currency"`                       // 货币代码
	Method           string          `gorm:"column:method;type:varchar(30);not null" json:"method"`                       // 出款方式
	Status           int8            `gorm:"column:status;index;not null" json:"status"`                                  // 出款状态
	ScheduledDate    time.Time       `gorm:"column:scheduled_date;not null" json:"scheduledDate"`                         // 计划出款日期
	ProcessedDate    *time.Time      `gorm:"column:processed_date" json:"processedDate"`                                  // 最近一次处理时间
	TransactionID    *string         `gorm:"column:transaction_id;type:varchar(64)" json:"transactionId"`                 // 代付方交易号
	FailureReason    *string         `gorm:"column:failure_reason;type:varchar(255)" json:"failureReason"`                // 最近一次失败原因
	AttemptCount     int             `gorm:"column:attempt_count;not null;default:0" json:"attemptCount"`                 // 已尝试次数
	ClaimBatchID     uint64          `gorm:"column:claim_batch_id;not null;default:0" json:"claimBatchId"`                // 锁定批次ID，0表示未锁定
	CreateTime       time.Time       `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`                // 创建时间
	UpdateTime       time.Time       `gorm:"column:update_time;autoUpdateTime;not null" json:"updateTime"`                // 更新时间
}

func (PayoutItemM) TableName() string { return "w_payout_item" }
