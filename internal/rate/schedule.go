package rate

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// 供应商会员等级
const (
	TierFree     = "free"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// KnownTiers 全部合法等级名
var KnownTiers = []string{TierFree, TierSilver, TierGold, TierPlatinum}

var (
	// ErrInvalidRate 费率越界或等级名非法，拒绝构建版本
	ErrInvalidRate = errors.New("rate: percentage out of [0,100]")
	// ErrStaleSchedule 版本追加时基准版本已过期
	ErrStaleSchedule = errors.New("rate: schedule base version is stale")
	// ErrFieldMissing 移除操作的目标键不存在
	ErrFieldMissing = errors.New("rate: schedule field not present")
)

// Schedule 分层费率表。每个版本都是不可变值，任何修改都产生新版本，
// 历史版本按 version 追加保存，禁止原地更新。
type Schedule struct {
	Version           uint64
	DefaultRate       decimal.Decimal
	TierRates         map[string]decimal.Decimal
	CategoryRates     map[uint64]decimal.Decimal
	SupplierOverrides map[uint64]decimal.Decimal
	EffectiveFrom     time.Time
	ChangedBy         string
	ChangeReason      string
}

// ValidPercent 费率范围校验，[0,100] 闭区间
func ValidPercent(p decimal.Decimal) bool {
	return p.Cmp(decimal.Zero) >= 0 && p.Cmp(decimal.NewFromInt(100)) <= 0
}

// IsKnownTier 等级名是否合法
func IsKnownTier(tier string) bool {
	for _, t := range KnownTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// Validate 校验整张费率表的取值范围与等级名
func (s *Schedule) Validate() error {
	if !ValidPercent(s.DefaultRate) {
		return fmt.Errorf("%w: defaultRate=%s", ErrInvalidRate, s.DefaultRate)
	}
	for tier, p := range s.TierRates {
		if !IsKnownTier(tier) {
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidRate, tier)
		}
		if !ValidPercent(p) {
			return fmt.Errorf("%w: tier %s rate=%s", ErrInvalidRate, tier, p)
		}
	}
	for id, p := range s.CategoryRates {
		if !ValidPercent(p) {
			return fmt.Errorf("%w: category %d rate=%s", ErrInvalidRate, id, p)
		}
	}
	for id, p := range s.SupplierOverrides {
		if !ValidPercent(p) {
			return fmt.Errorf("%w: supplier %d rate=%s", ErrInvalidRate, id, p)
		}
	}
	return nil
}

// Clone 深拷贝，修改前的快照基础
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{
		Version:           s.Version,
		DefaultRate:       s.DefaultRate,
		TierRates:         make(map[string]decimal.Decimal, len(s.TierRates)),
		CategoryRates:     make(map[uint64]decimal.Decimal, len(s.CategoryRates)),
		SupplierOverrides: make(map[uint64]decimal.Decimal, len(s.SupplierOverrides)),
		EffectiveFrom:     s.EffectiveFrom,
		ChangedBy:         s.ChangedBy,
		ChangeReason:      s.ChangeReason,
	}
	for k, v := range s.TierRates {
		c.TierRates[k] = v
	}
	for k, v := range s.CategoryRates {
		c.CategoryRates[k] = v
	}
	for k, v := range s.SupplierOverrides {
		c.SupplierOverrides[k] = v
	}
	return c
}

// WithCategoryRate 返回设置了类目费率的新快照
func (s *Schedule) WithCategoryRate(categoryID uint64, p decimal.Decimal) (*Schedule, error) {
	if !ValidPercent(p) {
		return nil, fmt.Errorf("%w: category %d rate=%s", ErrInvalidRate, categoryID, p)
	}
	n := s.Clone()
	n.CategoryRates[categoryID] = p
	return n, nil
}

// WithoutCategoryRate 返回移除了类目费率的新快照
func (s *Schedule) WithoutCategoryRate(categoryID uint64) (*Schedule, error) {
	if _, ok := s.CategoryRates[categoryID]; !ok {
		return nil, fmt.Errorf("%w: category %d", ErrFieldMissing, categoryID)
	}
	n := s.Clone()
	delete(n.CategoryRates, categoryID)
	return n, nil
}

// WithSupplierOverride 返回设置了供应商覆盖费率的新快照
func (s *Schedule) WithSupplierOverride(supplierID uint64, p decimal.Decimal) (*Schedule, error) {
	if !ValidPercent(p) {
		return nil, fmt.Errorf("%w: supplier %d rate=%s", ErrInvalidRate, supplierID, p)
	}
	n := s.Clone()
	n.SupplierOverrides[supplierID] = p
	return n, nil
}

// WithoutSupplierOverride 返回移除了供应商覆盖的新快照
func (s *Schedule) WithoutSupplierOverride(supplierID uint64) (*Schedule, error) {
	if _, ok := s.SupplierOverrides[supplierID]; !ok {
		return nil, fmt.Errorf("%w: supplier %d", ErrFieldMissing, supplierID)
	}
	n := s.Clone()
	delete(n.SupplierOverrides, supplierID)
	return n, nil
}

// WithTierRates 整体替换默认费率与四个等级费率，五个字段一次性生效
func (s *Schedule) WithTierRates(defaultRate decimal.Decimal, tiers map[string]decimal.Decimal) (*Schedule, error) {
	if !ValidPercent(defaultRate) {
		return nil, fmt.Errorf("%w: defaultRate=%s", ErrInvalidRate, defaultRate)
	}
	for tier, p := range tiers {
		if !IsKnownTier(tier) {
			return nil, fmt.Errorf("%w: unknown tier %q", ErrInvalidRate, tier)
		}
		if !ValidPercent(p) {
			return nil, fmt.Errorf("%w: tier %s rate=%s", ErrInvalidRate, tier, p)
		}
	}
	n := s.Clone()
	n.DefaultRate = defaultRate
	n.TierRates = make(map[string]decimal.Decimal, len(tiers))
	for tier, p := range tiers {
		n.TierRates[tier] = p
	}
	return n, nil
}
