package rate

import (
	"github.com/shopspring/decimal"
)

// 费率来源层
const (
	FromSupplier = "supplier"
	FromCategory = "category"
	FromTier     = "tier"
	FromDefault  = "default"
)

// Resolve 按 供应商覆盖 > 类目 > 等级 > 默认 的严格优先级取第一个命中层，
// 不做任何混合。未配置的等级名（含未知等级）直接落到默认费率，不报错。
// categoryID 为 0 表示订单未携带类目。
func Resolve(s *Schedule, supplierID uint64, tier string, categoryID uint64) (decimal.Decimal, string) {
	if p, ok := s.SupplierOverrides[supplierID]; ok {
		return p, FromSupplier
	}
	if categoryID != 0 {
		if p, ok := s.CategoryRates[categoryID]; ok {
			return p, FromCategory
		}
	}
	if p, ok := s.TierRates[tier]; ok {
		return p, FromTier
	}
	return s.DefaultRate, FromDefault
}
