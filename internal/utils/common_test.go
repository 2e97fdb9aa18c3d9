package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMatchAmountRange(t *testing.T) {
	amt := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad test amount %q: %v", s, err)
		}
		return d
	}

	// 区间规则，边界含两端
	if !MatchAmountRange(amt("1.00"), "1-50000") {
		t.Error("lower bound should match")
	}
	if !MatchAmountRange(amt("50000"), "1-50000") {
		t.Error("upper bound should match")
	}
	if MatchAmountRange(amt("0.99"), "1-50000") {
		t.Error("below range must not match")
	}
	if MatchAmountRange(amt("50000.01"), "1-50000") {
		t.Error("above range must not match")
	}

	// 多段规则任一命中即可
	if !MatchAmountRange(amt("100"), "1-50, 100, 200-300") {
		t.Error("exact value rule should match")
	}
	if !MatchAmountRange(amt("250"), "1-50, 100, 200-300") {
		t.Error("second range rule should match")
	}
	if MatchAmountRange(amt("75"), "1-50, 100, 200-300") {
		t.Error("gap between rules must not match")
	}

	// 非法片段跳过，不影响其余规则
	if !MatchAmountRange(amt("10"), "abc, 1-50") {
		t.Error("bad segment should be skipped")
	}
	if MatchAmountRange(amt("10"), "") {
		t.Error("empty rule must not match")
	}
}
