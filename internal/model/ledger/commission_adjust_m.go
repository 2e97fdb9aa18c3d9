package ledgermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionAdjustM 佣金调整记录（分表，只追加，创建后不再修改）
type CommissionAdjustM struct {
	AdjustID     uint64           `gorm:"column:adjust_id;primaryKey;not null" json:"adjustId"`               // 全局唯一调整ID
	CommissionID uint64           `gorm:"column:commission_id;index;not null" json:"commissionId"`            // 佣金记录ID
	AdjustType   string           `gorm:"column:adjust_type;type:varchar(16);not null" json:"adjustType"`     // refund/penalty/bonus/correction
	Amount       decimal.Decimal  `gorm:"column:amount;type:decimal(13,2);not null" json:"amount"`            // 调整输入金额，correction 可为负
	Ratio        *decimal.Decimal `gorm:"column:ratio;type:decimal(9,6)" json:"ratio"`                        // 退款比例 = 退款额/订单额，仅 refund
	PrevAmount   decimal.Decimal  `gorm:"column:prev_amount;type:decimal(13,2);not null" json:"prevAmount"`   // 调整前佣金
	NewAmount    decimal.Decimal  `gorm:"column:new_amount;type:decimal(13,2);not null" json:"newAmount"`     // 调整后佣金
	Impact       decimal.Decimal  `gorm:"column:impact;type:decimal(13,2);not null" json:"impact"`            // 差额 = 新 - 旧
	ImpactPct    decimal.Decimal  `gorm:"column:impact_pct;type:decimal(9,2);not null" json:"impactPct"`      // 差额百分比，旧值为0时记0
	Reason       string           `gorm:"column:reason;type:varchar(128);not null" json:"reason"`             // 调整原因
	Operator     string           `gorm:"column:operator;type:varchar(32);not null" json:"operator"`          // 操作人
	CreateTime   time.Time        `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`       // 应用时间
}
