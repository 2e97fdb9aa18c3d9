package mainmodel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TierRateMap 等级费率快照，JSON 列
type TierRateMap map[string]decimal.Decimal

func (m *TierRateMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("TierRateMap scan failed: %v", value)
	}
	return json.Unmarshal(bytes, m)
}

func (m TierRateMap) Value() (driver.Value, error) {
	if m == nil {
		m = TierRateMap{}
	}
	return json.Marshal(m)
}

// IDRateMap 按ID（类目/供应商）的费率覆盖快照，JSON 列
type IDRateMap map[uint64]decimal.Decimal

func (m *IDRateMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("IDRateMap scan failed: %v", value)
	}
	return json.Unmarshal(bytes, m)
}

func (m IDRateMap) Value() (driver.Value, error) {
	if m == nil {
		m = IDRateMap{}
	}
	return json.Marshal(m)
}

// RateScheduleM 费率表版本行，只追加不修改
type RateScheduleM struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`                             // 版本行ID
	Version           uint64          `gorm:"column:version;uniqueIndex;not null" json:"version"`                       // 单调递增版本号
	DefaultRate       decimal.Decimal `gorm:"column:default_rate;type:decimal(5,2);not null" json:"defaultRate"`        // 默认费率(%)
	TierRates         TierRateMap     `gorm:"column:tier_rates;type:json;not null" json:"tierRates"`                    // 等级费率
	CategoryRates     IDRateMap       `gorm:"column:category_rates;type:json;not null" json:"categoryRates"`            // 类目费率覆盖
	SupplierOverrides IDRateMap       `gorm:"column:supplier_overrides;type:json;not null" json:"supplierOverrides"`    // 供应商费率覆盖
	EffectiveFrom     time.Time       `gorm:"column:effective_from;not null" json:"effectiveFrom"`                      // 生效时间
	ChangedBy         string          `gorm:"column:changed_by;type:varchar(32);not null" json:"changedBy"`             // 操作人
	ChangeReason      string          `gorm:"column:change_reason;type:varchar(128);not null" json:"changeReason"`      // 变更原因
	CreateTime        time.Time       `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`             // 写入时间
}

func (RateScheduleM) TableName() string { return "w_rate_schedule" }
