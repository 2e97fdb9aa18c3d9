package payout

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mkt-settle-api/internal/constant"
)

var (
	// ErrInvalidTransition 非法的出款状态流转
	ErrInvalidTransition = errors.New("payout: illegal state transition")
	// ErrConcurrentClaim 出款项已被其他批次锁定
	ErrConcurrentClaim = errors.New("payout: item claimed by another batch")
	// ErrNotEligible 出款项不满足批次选取条件
	ErrNotEligible = errors.New("payout: item not eligible for selection")
	// ErrRetryExhausted 重试次数已用尽，转人工处理
	ErrRetryExhausted = errors.New("payout: retry attempts exhausted")

	// ErrBelowMinimum 净额低于出款门槛，属于 ErrNotEligible 的细分
	ErrBelowMinimum = fmt.Errorf("%w: net below minimum", ErrNotEligible)
	// ErrNotDue 未到计划出款日，属于 ErrNotEligible 的细分
	ErrNotDue = fmt.Errorf("%w: not due", ErrNotEligible)
)

// CanTransition 出款状态机：
//
//	pending    -> processing | cancelled
//	processing -> completed | failed
//	failed     -> pending（仅显式重试）
//
// completed / cancelled 为终态，其余一律非法。
func CanTransition(from, to int8) bool {
	switch from {
	case constant.PayoutStatusPending:
		return to == constant.PayoutStatusProcessing || to == constant.PayoutStatusCancelled
	case constant.PayoutStatusProcessing:
		return to == constant.PayoutStatusCompleted || to == constant.PayoutStatusFailed
	case constant.PayoutStatusFailed:
		return to == constant.PayoutStatusPending
	default:
		return false
	}
}

// CheckTransition 同 CanTransition，非法时返回 ErrInvalidTransition
func CheckTransition(from, to int8) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition,
			constant.PayoutStatusText[from], constant.PayoutStatusText[to])
	}
	return nil
}

// CanRetry 失败项是否还允许重试
func CanRetry(attemptCount, maxAttempts int) bool {
	return attemptCount < maxAttempts
}

// CheckEligible 批次选取条件：状态为 pending、未被锁定、净额达到门槛、已到计划日期
func CheckEligible(status int8, claimBatchID uint64, netAmount, minAmount decimal.Decimal, scheduledDate, now time.Time) error {
	if status != constant.PayoutStatusPending {
		return fmt.Errorf("%w: status is %s", ErrNotEligible, constant.PayoutStatusText[status])
	}
	if claimBatchID != 0 {
		return fmt.Errorf("%w: already claimed by batch %d", ErrConcurrentClaim, claimBatchID)
	}
	if netAmount.Cmp(minAmount) < 0 {
		return fmt.Errorf("%w: %s < %s", ErrBelowMinimum, netAmount, minAmount)
	}
	if scheduledDate.After(now) {
		return fmt.Errorf("%w: scheduled for %s", ErrNotDue, scheduledDate.Format("2006-01-02"))
	}
	return nil
}

// Partition 将选中的出款项切成不超过 size 的子批次，保持原始顺序
func Partition(ids []uint64, size int) [][]uint64 {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	out := make([][]uint64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}

// DeriveBatchStatus 批次状态由成员终态派生：全部成功为 completed，
// 有失败为 failed，否则仍在处理中
func DeriveBatchStatus(total, success, fail int) int8 {
	switch {
	case fail > 0:
		return constant.BatchStatusFailed
	case success == total:
		return constant.BatchStatusCompleted
	default:
		return constant.BatchStatusProcessing
	}
}

// IdempotencyKey 代付幂等键：同一出款项的同一次尝试取同一个键
func IdempotencyKey(payoutID uint64, attemptCount int) string {
	return fmt.Sprintf("%d-%d", payoutID, attemptCount)
}
