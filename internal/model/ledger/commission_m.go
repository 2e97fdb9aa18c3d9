package ledgermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// 佣金结算状态
const (
	SettleStateOpen     int8 = 0 // 未结算
	SettleStateReserved int8 = 1 // 已入出款队列
	SettleStatePaid     int8 = 2 // 已出款
)

// CommissionM 佣金入账记录（分表，无固定表名，由 shard 引擎路由）
type CommissionM struct {
	CommissionID     uint64          `gorm:"column:commission_id;primaryKey;not null" json:"commissionId"`                 // 全局唯一佣金ID
	OrderID          uint64          `gorm:"column:order_id;not null" json:"orderId"`                                      // 订单ID
	OrderNo          string          `gorm:"column:order_no;type:varchar(50);not null" json:"orderNo"`                     // 订单号
	SupplierID       uint64          `gorm:"column:supplier_id;index;not null" json:"supplierId"`                          // 供应商ID
	CategoryID       uint64          `gorm:"column:category_id;not null" json:"categoryId"`                                // 类目ID
	OrderAmount      decimal.Decimal `gorm:"column:order_amount;type:decimal(18,4);not null" json:"orderAmount"`           // 订单金额
	Currency         string          `gorm:"column:currency;type:char(3);not null" json:"currency"`                        // 货币代码
	ResolvedRate     decimal.Decimal `gorm:"column:resolved_rate;type:decimal(5,2);not null" json:"resolvedRate"`          // 生效费率(%)
	ResolvedFrom     string          `gorm:"column:resolved_from;type:varchar(10);not null" json:"resolvedFrom"`           // 费率来源层 supplier/category/tier/default
	ScheduleVersion  uint64          `gorm:"column:schedule_version;not null" json:"scheduleVersion"`                      // 费率表版本
	CommissionAmount decimal.Decimal `gorm:"column:commission_amount;type:decimal(13,2);not null" json:"commissionAmount"` // 原始佣金
	CurrentAmount    decimal.Decimal `gorm:"column:current_amount;type:decimal(13,2);not null" json:"currentAmount"`       // 当前佣金 = 原始 + 调整合计，下限0
	AdjustVersion    int             `gorm:"column:adjust_version;not null;default:0" json:"adjustVersion"`                // 调整乐观锁版本
	Settled          int8            `gorm:"column:settled;not null;default:0" json:"settled"`                             // 结算状态 0未结算 1已入队 2已出款
	CompletedAt      time.Time       `gorm:"column:completed_at;not null" json:"completedAt"`                              // 订单完成时间
	CreateTime       time.Time       `gorm:"column:create_time;not null" json:"createTime"`                                // 落账时间，与雪花ID时间戳同月（分表路由依据）
	UpdateTime       time.Time       `gorm:"column:update_time;autoUpdateTime;not null" json:"updateTime"`                 // 更新时间
}
