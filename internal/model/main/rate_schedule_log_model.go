package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateScheduleLog 费率变更历史，只追加
type RateScheduleLog struct {
	ID         uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`                 // 主键
	Version    uint64           `gorm:"column:version;index;not null" json:"version"`                 // 产生该变更的新版本号
	Field      string           `gorm:"column:field;type:varchar(16);not null" json:"field"`          // 变更层 default/tier/category/supplier
	EntityKey  string           `gorm:"column:entity_key;type:varchar(32);not null" json:"entityKey"` // 等级名或类目/供应商ID，默认层为空
	PrevValue  *decimal.Decimal `gorm:"column:prev_value;type:decimal(5,2)" json:"prevValue"`         // 原费率，新增时为空
	NewValue   *decimal.Decimal `gorm:"column:new_value;type:decimal(5,2)" json:"newValue"`           // 新费率，移除时为空
	Actor      string           `gorm:"column:actor;type:varchar(32);not null" json:"actor"`          // 操作人
	Reason     string           `gorm:"column:reason;type:varchar(128);not null" json:"reason"`       // 变更原因
	CreateTime time.Time        `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"` // 时间戳
}

func (RateScheduleLog) TableName() string { return "w_rate_schedule_log" }
