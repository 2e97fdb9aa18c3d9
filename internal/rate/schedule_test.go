package rate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidate_RejectsOutOfRange(t *testing.T) {
	s := testSchedule()
	s.DefaultRate = pct(101)
	if err := s.Validate(); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Validate() = %v, want ErrInvalidRate", err)
	}

	s = testSchedule()
	s.CategoryRates[101] = pct(-0.5)
	if err := s.Validate(); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Validate() = %v, want ErrInvalidRate", err)
	}

	s = testSchedule()
	s.TierRates["diamond"] = pct(5)
	if err := s.Validate(); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Validate() = %v, want ErrInvalidRate for unknown tier", err)
	}
}

func TestValidate_AcceptsBoundaries(t *testing.T) {
	s := testSchedule()
	s.DefaultRate = pct(0)
	s.SupplierOverrides[1] = pct(100)
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil at [0,100] boundaries", err)
	}
}

func TestWithCategoryRate_RejectsInvalid(t *testing.T) {
	s := testSchedule()
	if _, err := s.WithCategoryRate(300, pct(100.01)); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("WithCategoryRate = %v, want ErrInvalidRate", err)
	}
}

func TestWithoutCategoryRate_MissingKey(t *testing.T) {
	s := testSchedule()
	if _, err := s.WithoutCategoryRate(999); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("WithoutCategoryRate = %v, want ErrFieldMissing", err)
	}
}

// 新快照的修改不得影响旧版本
func TestCopyOnWrite_NeverMutatesBase(t *testing.T) {
	base := testSchedule()
	next, err := base.WithSupplierOverride(7777, pct(1))
	if err != nil {
		t.Fatalf("WithSupplierOverride: %v", err)
	}
	if _, ok := base.SupplierOverrides[7777]; ok {
		t.Fatal("base schedule mutated by WithSupplierOverride")
	}
	if _, ok := next.SupplierOverrides[7777]; !ok {
		t.Fatal("new schedule missing the override")
	}

	next.CategoryRates[101] = pct(50)
	if !base.CategoryRates[101].Equal(pct(4)) {
		t.Fatal("mutating clone leaked into base maps")
	}
}

func TestWithTierRates_ReplacesAllFiveFields(t *testing.T) {
	base := testSchedule()
	next, err := base.WithTierRates(pct(6), map[string]decimal.Decimal{
		TierFree:     pct(8),
		TierSilver:   pct(7),
		TierGold:     pct(6),
		TierPlatinum: pct(5),
	})
	if err != nil {
		t.Fatalf("WithTierRates: %v", err)
	}
	if !next.DefaultRate.Equal(pct(6)) {
		t.Errorf("DefaultRate = %s, want 6", next.DefaultRate)
	}
	if len(next.TierRates) != 4 {
		t.Errorf("TierRates size = %d, want 4 (full replacement)", len(next.TierRates))
	}
	if !base.DefaultRate.Equal(pct(5)) || len(base.TierRates) != 1 {
		t.Error("base schedule changed by bulk tier update")
	}
}

func TestWithTierRates_RejectsPartialBadInput(t *testing.T) {
	base := testSchedule()
	_, err := base.WithTierRates(pct(6), map[string]decimal.Decimal{
		TierFree: pct(120),
	})
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("WithTierRates = %v, want ErrInvalidRate", err)
	}
	// 全有或全无：失败后基表必须保持原状
	if !base.DefaultRate.Equal(pct(5)) {
		t.Error("base default rate changed after rejected bulk update")
	}
}
