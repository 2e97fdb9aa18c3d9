package rate

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testThresholds() Thresholds {
	return Thresholds{
		HighPct:       pct(10),
		MediumPct:     pct(3),
		RateDeltaWarn: pct(2),
	}
}

func snapshot(id uint64, tier string, cat uint64, orders, commission float64) SupplierSnapshot {
	return SupplierSnapshot{
		SupplierID:          id,
		Tier:                tier,
		CategoryID:          cat,
		TrailingOrderAmount: decimal.NewFromFloat(orders),
		TrailingCommission:  decimal.NewFromFloat(commission),
	}
}

func TestAnalyze_AffectedAndRevenueChange(t *testing.T) {
	current := testSchedule()
	candidate, err := current.WithCategoryRate(101, pct(6)) // 4 -> 6
	if err != nil {
		t.Fatalf("WithCategoryRate: %v", err)
	}

	pop := []SupplierSnapshot{
		snapshot(9001, TierGold, 101, 10000, 200), // override 2%，不受影响
		snapshot(9002, TierGold, 101, 5000, 200),  // category 4% -> 6%
		snapshot(9003, TierSilver, 202, 8000, 400), // default 5%，不受影响
	}

	r := Analyze(current, candidate, pop, testThresholds())
	if r.TotalSuppliers != 3 {
		t.Errorf("TotalSuppliers = %d, want 3", r.TotalSuppliers)
	}
	if r.AffectedCount != 1 || len(r.Affected) != 1 {
		t.Fatalf("AffectedCount = %d, want 1", r.AffectedCount)
	}
	a := r.Affected[0]
	if a.SupplierID != 9002 {
		t.Errorf("affected supplier = %d, want 9002", a.SupplierID)
	}
	// (6-4)/100 * 5000 = 100
	if !a.RevenueChange.Equal(decimal.NewFromInt(100)) {
		t.Errorf("RevenueChange = %s, want 100", a.RevenueChange)
	}
	if !r.EstimatedRevenueChange.Equal(decimal.NewFromInt(100)) {
		t.Errorf("EstimatedRevenueChange = %s, want 100", r.EstimatedRevenueChange)
	}
}

func TestAnalyze_RiskLevels(t *testing.T) {
	current := testSchedule()

	cases := []struct {
		name     string
		newRate  float64
		trailing float64
		want     string
	}{
		// 佣金基数 1000，订单基数 10000：每上调1个百分点带来100变化
		{"low", 4.2, 1000, RiskLow},       // 20/1000 = 2%
		{"medium", 4.5, 1000, RiskMedium}, // 50/1000 = 5%
		{"high", 6, 1000, RiskHigh},       // 200/1000 = 20%
	}
	for _, tc := range cases {
		candidate, err := current.WithCategoryRate(101, pct(tc.newRate))
		if err != nil {
			t.Fatalf("%s: WithCategoryRate: %v", tc.name, err)
		}
		pop := []SupplierSnapshot{snapshot(9002, TierGold, 101, 10000, tc.trailing)}
		r := Analyze(current, candidate, pop, testThresholds())
		if r.RiskLevel != tc.want {
			t.Errorf("%s: RiskLevel = %s (changePct=%s), want %s", tc.name, r.RiskLevel, r.ChangePct, tc.want)
		}
	}
}

func TestAnalyze_ZeroTrailingCommission(t *testing.T) {
	current := testSchedule()
	candidate, _ := current.WithCategoryRate(101, pct(6))
	pop := []SupplierSnapshot{snapshot(9002, TierGold, 101, 1000, 0)}

	r := Analyze(current, candidate, pop, testThresholds())
	if r.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %s, want high when change exists without trailing base", r.RiskLevel)
	}
}

func TestAnalyze_NoChangeIsNoop(t *testing.T) {
	current := testSchedule()
	candidate := current.Clone()
	pop := []SupplierSnapshot{snapshot(9002, TierGold, 101, 1000, 100)}

	r := Analyze(current, candidate, pop, testThresholds())
	if r.AffectedCount != 0 || r.RiskLevel != RiskLow {
		t.Errorf("no-op change: affected=%d risk=%s", r.AffectedCount, r.RiskLevel)
	}
	if len(r.Recommendations) != 1 || !strings.Contains(r.Recommendations[0], "no-op") {
		t.Errorf("Recommendations = %v, want single no-op note", r.Recommendations)
	}
}

func TestAnalyze_RecommendationsDeterministic(t *testing.T) {
	current := testSchedule()
	candidate, _ := current.WithCategoryRate(101, pct(9)) // +5 points，超过 delta 阈值

	pop := []SupplierSnapshot{
		snapshot(9005, TierGold, 101, 3000, 50),
		snapshot(9002, TierGold, 101, 5000, 50),
	}

	first := Analyze(current, candidate, pop, testThresholds())
	second := Analyze(current, candidate, pop, testThresholds())
	if len(first.Recommendations) != len(second.Recommendations) {
		t.Fatalf("recommendation count unstable: %d vs %d", len(first.Recommendations), len(second.Recommendations))
	}
	for i := range first.Recommendations {
		if first.Recommendations[i] != second.Recommendations[i] {
			t.Errorf("recommendation %d differs between runs:\n%s\n%s", i, first.Recommendations[i], second.Recommendations[i])
		}
	}

	// 受影响清单按供应商ID升序
	if first.Affected[0].SupplierID != 9002 || first.Affected[1].SupplierID != 9005 {
		t.Errorf("affected order = %d,%d, want 9002,9005", first.Affected[0].SupplierID, first.Affected[1].SupplierID)
	}

	foundDelta := false
	for _, rec := range first.Recommendations {
		if strings.Contains(rec, "supplier 9002") && strings.Contains(rec, "points") {
			foundDelta = true
		}
	}
	if !foundDelta {
		t.Errorf("missing rate-delta recommendation, got %v", first.Recommendations)
	}
}
