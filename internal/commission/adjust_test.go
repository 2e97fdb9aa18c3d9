package commission

import (
	"errors"
	"testing"
)

func record(orderAmount, current float64) Record {
	return Record{
		CommissionID:  1,
		OrderAmount:   d(orderAmount),
		Current:       d(current),
		AdjustVersion: 3,
	}
}

func TestPreview_Refund(t *testing.T) {
	// 退一半：40 * (1 - 500/1000) = 20
	p, err := PreviewAdjustment(record(1000, 40), AdjustRefund, d(500))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !p.NewCommission.Equal(d(20)) {
		t.Errorf("NewCommission = %s, want 20", p.NewCommission)
	}
	if !p.Impact.Equal(d(-20)) {
		t.Errorf("Impact = %s, want -20", p.Impact)
	}
	if !p.ImpactPct.Equal(d(-50)) {
		t.Errorf("ImpactPct = %s, want -50", p.ImpactPct)
	}
	if p.Ratio == nil || !p.Ratio.Equal(d(0.5)) {
		t.Errorf("Ratio = %v, want 0.5", p.Ratio)
	}
	if p.BaseVersion != 3 {
		t.Errorf("BaseVersion = %d, want 3", p.BaseVersion)
	}
}

func TestPreview_FullRefundHitsExactZero(t *testing.T) {
	p, err := PreviewAdjustment(record(1000, 40), AdjustRefund, d(1000))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !p.NewCommission.IsZero() {
		t.Errorf("NewCommission = %s, want exactly 0", p.NewCommission)
	}
	if p.NewCommission.Sign() < 0 {
		t.Error("NewCommission went negative")
	}
}

func TestPreview_RefundZeroOrderAmount(t *testing.T) {
	_, err := PreviewAdjustment(record(0, 40), AdjustRefund, d(10))
	if !errors.Is(err, ErrInvalidAdjustment) {
		t.Errorf("err = %v, want ErrInvalidAdjustment", err)
	}
}

func TestPreview_RefundExceedsOrderAmount(t *testing.T) {
	_, err := PreviewAdjustment(record(1000, 40), AdjustRefund, d(1500))
	if !errors.Is(err, ErrInvalidAdjustment) {
		t.Errorf("err = %v, want ErrInvalidAdjustment", err)
	}
}

func TestPreview_Penalty(t *testing.T) {
	p, err := PreviewAdjustment(record(1000, 40), AdjustPenalty, d(15))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !p.NewCommission.Equal(d(55)) {
		t.Errorf("NewCommission = %s, want 55", p.NewCommission)
	}
	if !p.ImpactPct.Equal(d(37.5)) {
		t.Errorf("ImpactPct = %s, want 37.5", p.ImpactPct)
	}
}

func TestPreview_BonusFlooredAtZero(t *testing.T) {
	p, err := PreviewAdjustment(record(1000, 40), AdjustBonus, d(100))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !p.NewCommission.IsZero() {
		t.Errorf("NewCommission = %s, want 0", p.NewCommission)
	}
}

func TestPreview_CorrectionSigned(t *testing.T) {
	p, err := PreviewAdjustment(record(1000, 40), AdjustCorrection, d(-12.5))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !p.NewCommission.Equal(d(27.5)) {
		t.Errorf("NewCommission = %s, want 27.5", p.NewCommission)
	}

	// 大额负修正触底 0
	p, err = PreviewAdjustment(record(1000, 40), AdjustCorrection, d(-90))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !p.NewCommission.IsZero() {
		t.Errorf("NewCommission = %s, want 0", p.NewCommission)
	}
}

func TestPreview_NegativeAmountRejected(t *testing.T) {
	for _, typ := range []string{AdjustRefund, AdjustPenalty, AdjustBonus} {
		if _, err := PreviewAdjustment(record(1000, 40), typ, d(-1)); !errors.Is(err, ErrInvalidAdjustment) {
			t.Errorf("%s: err = %v, want ErrInvalidAdjustment", typ, err)
		}
	}
}

func TestPreview_UnknownType(t *testing.T) {
	_, err := PreviewAdjustment(record(1000, 40), "chargeback", d(1))
	if !errors.Is(err, ErrInvalidAdjustment) {
		t.Errorf("err = %v, want ErrInvalidAdjustment", err)
	}
}

func TestPreview_ZeroBaseImpactPct(t *testing.T) {
	p, err := PreviewAdjustment(record(1000, 0), AdjustPenalty, d(5))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !p.ImpactPct.IsZero() {
		t.Errorf("ImpactPct = %s, want 0 when base commission is 0", p.ImpactPct)
	}
}

func TestPreview_IsPure(t *testing.T) {
	rec := record(1000, 40)
	first, err := PreviewAdjustment(rec, AdjustRefund, d(250))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	second, err := PreviewAdjustment(rec, AdjustRefund, d(250))
	if err != nil {
		t.Fatalf("PreviewAdjustment: %v", err)
	}
	if !first.NewCommission.Equal(second.NewCommission) || !rec.Current.Equal(d(40)) {
		t.Error("preview mutated input or is unstable")
	}
}
