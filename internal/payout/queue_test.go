package payout

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mkt-settle-api/internal/constant"
)

func TestCanTransition_LegalPaths(t *testing.T) {
	legal := [][2]int8{
		{constant.PayoutStatusPending, constant.PayoutStatusProcessing},
		{constant.PayoutStatusPending, constant.PayoutStatusCancelled},
		{constant.PayoutStatusProcessing, constant.PayoutStatusCompleted},
		{constant.PayoutStatusProcessing, constant.PayoutStatusFailed},
		{constant.PayoutStatusFailed, constant.PayoutStatusPending},
	}
	for _, p := range legal {
		if !CanTransition(p[0], p[1]) {
			t.Errorf("expected %s -> %s to be legal",
				constant.PayoutStatusText[p[0]], constant.PayoutStatusText[p[1]])
		}
	}
}

func TestCanTransition_Closure(t *testing.T) {
	all := []int8{
		constant.PayoutStatusPending,
		constant.PayoutStatusProcessing,
		constant.PayoutStatusCompleted,
		constant.PayoutStatusFailed,
		constant.PayoutStatusCancelled,
	}
	legal := map[[2]int8]bool{
		{constant.PayoutStatusPending, constant.PayoutStatusProcessing}:   true,
		{constant.PayoutStatusPending, constant.PayoutStatusCancelled}:    true,
		{constant.PayoutStatusProcessing, constant.PayoutStatusCompleted}: true,
		{constant.PayoutStatusProcessing, constant.PayoutStatusFailed}:    true,
		{constant.PayoutStatusFailed, constant.PayoutStatusPending}:       true,
	}
	for _, from := range all {
		for _, to := range all {
			got := CanTransition(from, to)
			want := legal[[2]int8{from, to}]
			if got != want {
				t.Errorf("%s -> %s: got %v want %v",
					constant.PayoutStatusText[from], constant.PayoutStatusText[to], got, want)
			}
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	targets := []int8{
		constant.PayoutStatusPending,
		constant.PayoutStatusProcessing,
		constant.PayoutStatusCompleted,
		constant.PayoutStatusFailed,
		constant.PayoutStatusCancelled,
	}
	for _, to := range targets {
		if CanTransition(constant.PayoutStatusCompleted, to) {
			t.Errorf("completed must be terminal, got transition to %s", constant.PayoutStatusText[to])
		}
		if CanTransition(constant.PayoutStatusCancelled, to) {
			t.Errorf("cancelled must be terminal, got transition to %s", constant.PayoutStatusText[to])
		}
	}
}

func TestCheckTransition_Error(t *testing.T) {
	err := CheckTransition(constant.PayoutStatusCompleted, constant.PayoutStatusPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := CheckTransition(constant.PayoutStatusFailed, constant.PayoutStatusPending); err != nil {
		t.Fatalf("retry path should be legal, got %v", err)
	}
}

func TestCanRetry(t *testing.T) {
	if !CanRetry(0, 3) || !CanRetry(2, 3) {
		t.Error("attempts below the cap must be retryable")
	}
	if CanRetry(3, 3) || CanRetry(5, 3) {
		t.Error("attempts at or past the cap must not be retryable")
	}
}

// 重试场景：3 次失败后第 4 次重试必须被拒绝，尝试次数停在 3
func TestRetryScenario_Exhaustion(t *testing.T) {
	const maxAttempts = 3
	status := constant.PayoutStatusPending
	attempts := 0

	for i := 0; i < maxAttempts; i++ {
		if err := CheckTransition(status, constant.PayoutStatusProcessing); err != nil {
			t.Fatalf("round %d claim: %v", i, err)
		}
		status = constant.PayoutStatusProcessing
		if err := CheckTransition(status, constant.PayoutStatusFailed); err != nil {
			t.Fatalf("round %d fail: %v", i, err)
		}
		status = constant.PayoutStatusFailed
		attempts++

		if CanRetry(attempts, maxAttempts) {
			status = constant.PayoutStatusPending
		}
	}
	if attempts != 3 {
		t.Errorf("attempt count = %d, want 3", attempts)
	}
	if status != constant.PayoutStatusFailed {
		t.Errorf("exhausted item should stay failed, got %s", constant.PayoutStatusText[status])
	}
	if CanRetry(attempts, maxAttempts) {
		t.Error("exhausted item must not be retryable")
	}
}

func TestCheckEligible(t *testing.T) {
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	min := decimal.NewFromInt(1)
	net := decimal.NewFromInt(150)
	due := now.AddDate(0, 0, -1)

	if err := CheckEligible(constant.PayoutStatusPending, 0, net, min, due, now); err != nil {
		t.Fatalf("eligible item rejected: %v", err)
	}

	err := CheckEligible(constant.PayoutStatusProcessing, 0, net, min, due, now)
	if !errors.Is(err, ErrNotEligible) {
		t.Errorf("non-pending status: got %v", err)
	}
	err = CheckEligible(constant.PayoutStatusPending, 42, net, min, due, now)
	if !errors.Is(err, ErrConcurrentClaim) {
		t.Errorf("claimed item: got %v", err)
	}
	err = CheckEligible(constant.PayoutStatusPending, 0, decimal.NewFromFloat(0.50), min, due, now)
	if !errors.Is(err, ErrNotEligible) {
		t.Errorf("below minimum: got %v", err)
	}
	err = CheckEligible(constant.PayoutStatusPending, 0, net, min, now.AddDate(0, 0, 3), now)
	if !errors.Is(err, ErrNotEligible) {
		t.Errorf("not yet due: got %v", err)
	}
	// 计划日期等于当前时间视为已到期
	if err := CheckEligible(constant.PayoutStatusPending, 0, net, min, now, now); err != nil {
		t.Errorf("due today rejected: %v", err)
	}
}

func TestPartition(t *testing.T) {
	ids := []uint64{1, 2, 3, 4, 5, 6, 7}
	got := Partition(ids, 3)
	if len(got) != 3 {
		t.Fatalf("chunk count = %d, want 3", len(got))
	}
	if len(got[0]) != 3 || len(got[1]) != 3 || len(got[2]) != 1 {
		t.Errorf("chunk sizes = %d/%d/%d, want 3/3/1", len(got[0]), len(got[1]), len(got[2]))
	}
	if got[2][0] != 7 {
		t.Errorf("order not preserved, last chunk = %v", got[2])
	}

	if got := Partition(ids, 10); len(got) != 1 || len(got[0]) != 7 {
		t.Errorf("oversize chunk: got %v", got)
	}
	if got := Partition(nil, 3); got != nil {
		t.Errorf("empty input: got %v", got)
	}
	if got := Partition(ids, 0); got != nil {
		t.Errorf("zero size: got %v", got)
	}
}

func TestDeriveBatchStatus(t *testing.T) {
	if s := DeriveBatchStatus(5, 5, 0); s != constant.BatchStatusCompleted {
		t.Errorf("all success: got %s", constant.BatchStatusText[s])
	}
	if s := DeriveBatchStatus(5, 3, 2); s != constant.BatchStatusFailed {
		t.Errorf("partial failure: got %s", constant.BatchStatusText[s])
	}
	if s := DeriveBatchStatus(5, 0, 5); s != constant.BatchStatusFailed {
		t.Errorf("all failed: got %s", constant.BatchStatusText[s])
	}
	if s := DeriveBatchStatus(5, 2, 0); s != constant.BatchStatusProcessing {
		t.Errorf("in flight: got %s", constant.BatchStatusText[s])
	}
}

func TestIdempotencyKey(t *testing.T) {
	if k := IdempotencyKey(900123, 0); k != "900123-0" {
		t.Errorf("key = %q", k)
	}
	if IdempotencyKey(900123, 1) == IdempotencyKey(900123, 0) {
		t.Error("retry must produce a fresh idempotency key")
	}
	if IdempotencyKey(900123, 0) != IdempotencyKey(900123, 0) {
		t.Error("same attempt must produce a stable key")
	}
}
