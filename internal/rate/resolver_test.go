package rate

import (
	"testing"

	"github.com/shopspring/decimal"
)

func pct(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testSchedule() *Schedule {
	return &Schedule{
		Version:     1,
		DefaultRate: pct(5),
		TierRates: map[string]decimal.Decimal{
			TierGold: pct(3),
		},
		CategoryRates: map[uint64]decimal.Decimal{
			101: pct(4),
		},
		SupplierOverrides: map[uint64]decimal.Decimal{
			9001: pct(2),
		},
	}
}

func TestResolve_SupplierWins(t *testing.T) {
	s := testSchedule()
	got, from := Resolve(s, 9001, TierGold, 101)
	if !got.Equal(pct(2)) || from != FromSupplier {
		t.Errorf("Resolve = (%s, %s), want (2, supplier)", got, from)
	}
}

func TestResolve_CategoryBeatsTier(t *testing.T) {
	s := testSchedule()
	got, from := Resolve(s, 9002, TierGold, 101)
	if !got.Equal(pct(4)) || from != FromCategory {
		t.Errorf("Resolve = (%s, %s), want (4, category)", got, from)
	}
}

func TestResolve_TierFallback(t *testing.T) {
	s := testSchedule()
	got, from := Resolve(s, 9002, TierGold, 202)
	if !got.Equal(pct(3)) || from != FromTier {
		t.Errorf("Resolve = (%s, %s), want (3, tier)", got, from)
	}
}

func TestResolve_DefaultFallback(t *testing.T) {
	s := testSchedule()
	got, from := Resolve(s, 9002, TierSilver, 202)
	if !got.Equal(pct(5)) || from != FromDefault {
		t.Errorf("Resolve = (%s, %s), want (5, default)", got, from)
	}
}

func TestResolve_UnknownTierFallsThrough(t *testing.T) {
	s := testSchedule()
	got, from := Resolve(s, 9002, "diamond", 0)
	if !got.Equal(pct(5)) || from != FromDefault {
		t.Errorf("Resolve = (%s, %s), want (5, default)", got, from)
	}
}

func TestResolve_NoCategoryGiven(t *testing.T) {
	s := testSchedule()
	got, from := Resolve(s, 9002, TierGold, 0)
	if !got.Equal(pct(3)) || from != FromTier {
		t.Errorf("Resolve = (%s, %s), want (3, tier)", got, from)
	}
}

// 逐层移除后应依次落到下一层
func TestResolve_RemovalFallthroughChain(t *testing.T) {
	s := testSchedule()

	s1, err := s.WithoutSupplierOverride(9001)
	if err != nil {
		t.Fatalf("WithoutSupplierOverride: %v", err)
	}
	got, from := Resolve(s1, 9001, TierGold, 101)
	if !got.Equal(pct(4)) || from != FromCategory {
		t.Fatalf("after removing override: (%s, %s), want (4, category)", got, from)
	}

	s2, err := s1.WithoutCategoryRate(101)
	if err != nil {
		t.Fatalf("WithoutCategoryRate: %v", err)
	}
	got, from = Resolve(s2, 9001, TierGold, 101)
	if !got.Equal(pct(3)) || from != FromTier {
		t.Fatalf("after removing category: (%s, %s), want (3, tier)", got, from)
	}

	s3, err := s2.WithTierRates(s2.DefaultRate, map[string]decimal.Decimal{})
	if err != nil {
		t.Fatalf("WithTierRates: %v", err)
	}
	got, from = Resolve(s3, 9001, TierGold, 101)
	if !got.Equal(pct(5)) || from != FromDefault {
		t.Fatalf("after clearing tiers: (%s, %s), want (5, default)", got, from)
	}
}
