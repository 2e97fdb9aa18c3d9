package health

import (
	"math"
	"testing"
)

func TestEWMAStrategy(t *testing.T) {
	s := &EWMAStrategy{Alpha: 0.2}

	got := s.Update(100, false)
	if math.Abs(got-80) > 1e-9 {
		t.Errorf("failure from 100: got %v want 80", got)
	}
	got = s.Update(50, true)
	if math.Abs(got-60) > 1e-9 {
		t.Errorf("success from 50: got %v want 60", got)
	}

	// 连续失败单调下降但不为负
	rate := 100.0
	prev := rate
	for i := 0; i < 50; i++ {
		rate = s.Update(rate, false)
		if rate >= prev || rate < 0 {
			t.Fatalf("round %d: rate %v not strictly decreasing in [0,100)", i, rate)
		}
		prev = rate
	}

	// 连续成功趋向 100
	for i := 0; i < 100; i++ {
		rate = s.Update(rate, true)
	}
	if rate < 99 || rate > 100 {
		t.Errorf("after recovery rate = %v, want close to 100", rate)
	}
}

func TestDecayStrategy(t *testing.T) {
	s := &DecayStrategy{Factor: 0.95}

	if got := s.Update(80, true); got != 80 {
		t.Errorf("success must not change rate, got %v", got)
	}
	if got := s.Update(80, false); math.Abs(got-76) > 1e-9 {
		t.Errorf("failure from 80: got %v want 76", got)
	}
	if got := s.Update(0, false); got != 0 {
		t.Errorf("floor must hold at 0, got %v", got)
	}
}

func TestSlidingStrategy(t *testing.T) {
	s := &SlidingStrategy{StepUp: 5, StepDown: 20}

	if got := s.Update(98, true); got != 100 {
		t.Errorf("cap at 100, got %v", got)
	}
	if got := s.Update(10, false); got != 0 {
		t.Errorf("floor at 0, got %v", got)
	}
	if got := s.Update(50, true); got != 55 {
		t.Errorf("step up from 50: got %v want 55", got)
	}
	if got := s.Update(50, false); got != 30 {
		t.Errorf("step down from 50: got %v want 30", got)
	}
}

// 阈值场景：EWMA 下连续失败多少次会把满分通道打到 60 以下
func TestEWMAFailuresToThreshold(t *testing.T) {
	s := &EWMAStrategy{Alpha: 0.2}
	rate := 100.0
	n := 0
	for rate >= 60 && n < 100 {
		rate = s.Update(rate, false)
		n++
	}
	if n != 3 {
		t.Errorf("failures to cross 60 from 100 = %d, want 3", n)
	}
}
