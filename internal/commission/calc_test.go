package commission

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestCompute_RoundHalfUp(t *testing.T) {
	// 19.995 * 5% = 0.99975 -> 1.00
	got := Compute(d(19.995), d(5), DefaultMinFee)
	if !got.Equal(d(1.00)) {
		t.Errorf("Compute(19.995, 5) = %s, want 1.00", got)
	}
}

func TestCompute_Scenario(t *testing.T) {
	// 1000 @ 2% -> 20.00, 1000 @ 4% -> 40.00
	if got := Compute(d(1000), d(2), DefaultMinFee); !got.Equal(d(20.00)) {
		t.Errorf("Compute(1000, 2) = %s, want 20.00", got)
	}
	if got := Compute(d(1000), d(4), DefaultMinFee); !got.Equal(d(40.00)) {
		t.Errorf("Compute(1000, 4) = %s, want 40.00", got)
	}
}

func TestCompute_MinFeeFloor(t *testing.T) {
	// 0.10 @ 1% = 0.001 -> 下限 0.01
	got := Compute(d(0.10), d(1), DefaultMinFee)
	if !got.Equal(d(0.01)) {
		t.Errorf("Compute(0.10, 1) = %s, want floor 0.01", got)
	}
}

func TestCompute_ZeroAndNegativeAmount(t *testing.T) {
	if got := Compute(decimal.Zero, d(5), DefaultMinFee); !got.IsZero() {
		t.Errorf("Compute(0, 5) = %s, want 0", got)
	}
	if got := Compute(d(-10), d(5), DefaultMinFee); !got.IsZero() {
		t.Errorf("Compute(-10, 5) = %s, want 0", got)
	}
}

func TestCompute_ZeroRate(t *testing.T) {
	// 费率为0时仍然收最低佣金
	got := Compute(d(1000), decimal.Zero, DefaultMinFee)
	if !got.Equal(d(0.01)) {
		t.Errorf("Compute(1000, 0) = %s, want 0.01", got)
	}
}

func TestCompute_ConfigurableFloor(t *testing.T) {
	got := Compute(d(1), d(1), d(0.05))
	if !got.Equal(d(0.05)) {
		t.Errorf("Compute with floor 0.05 = %s, want 0.05", got)
	}
}

func TestCurrentAmount_FlooredAtZero(t *testing.T) {
	impacts := []decimal.Decimal{d(-8), d(2), d(-20)}
	got := CurrentAmount(d(10), impacts)
	if !got.IsZero() {
		t.Errorf("CurrentAmount = %s, want 0", got)
	}

	got = CurrentAmount(d(10), []decimal.Decimal{d(-3), d(1)})
	if !got.Equal(d(8)) {
		t.Errorf("CurrentAmount = %s, want 8", got)
	}
}
