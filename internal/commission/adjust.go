package commission

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// 调整类型
const (
	AdjustRefund     = "refund"
	AdjustPenalty    = "penalty"
	AdjustBonus      = "bonus"
	AdjustCorrection = "correction"
)

var (
	// ErrInvalidAdjustment 无法成立的调整（零金额订单按比例退款、负金额、未知类型）
	ErrInvalidAdjustment = errors.New("commission: invalid adjustment")
	// ErrStaleCommission 预览后记录已被并发调整，乐观锁失配
	ErrStaleCommission = errors.New("commission: record adjusted concurrently")
)

// IsValidAdjustType 调整类型是否合法
func IsValidAdjustType(t string) bool {
	switch t {
	case AdjustRefund, AdjustPenalty, AdjustBonus, AdjustCorrection:
		return true
	}
	return false
}

// Record 调整计算的输入快照：订单金额、当前佣金与乐观锁版本
type Record struct {
	CommissionID  uint64
	OrderAmount   decimal.Decimal
	Current       decimal.Decimal // 当前佣金（原始值加上既往调整）
	AdjustVersion int
}

// Preview 一次调整的试算结果，套用与否不影响试算本身
type Preview struct {
	AdjustType     string           `json:"adjustType"`
	Amount         decimal.Decimal  `json:"amount"`
	Ratio          *decimal.Decimal `json:"ratio,omitempty"` // 仅 refund：退款额/订单额
	PrevCommission decimal.Decimal  `json:"prevCommission"`
	NewCommission  decimal.Decimal  `json:"newCommission"`
	Impact         decimal.Decimal  `json:"impact"`
	ImpactPct      decimal.Decimal  `json:"impactPct"`
	BaseVersion    int              `json:"baseVersion"`
}

// PreviewAdjustment 按类型试算调整后的佣金，纯计算、无副作用：
//
//	refund     按退款比例核减：new = cur * (1 - amount/orderAmount)，下限 0
//	penalty    罚金：new = cur + amount
//	bonus      奖励核减：new = max(0, cur - amount)
//	correction 人工修正：new = cur + amount，amount 可为负，下限 0
func PreviewAdjustment(rec Record, adjustType string, amount decimal.Decimal) (Preview, error) {
	p := Preview{
		AdjustType:     adjustType,
		Amount:         amount,
		PrevCommission: rec.Current,
		BaseVersion:    rec.AdjustVersion,
	}

	if !IsValidAdjustType(adjustType) {
		return p, fmt.Errorf("%w: unknown type %q", ErrInvalidAdjustment, adjustType)
	}
	if adjustType != AdjustCorrection && amount.Cmp(decimal.Zero) < 0 {
		return p, fmt.Errorf("%w: %s amount must be >= 0", ErrInvalidAdjustment, adjustType)
	}

	switch adjustType {
	case AdjustRefund:
		if rec.OrderAmount.IsZero() {
			return p, fmt.Errorf("%w: refund against zero order amount", ErrInvalidAdjustment)
		}
		ratio := amount.Div(rec.OrderAmount)
		if ratio.Cmp(decimal.NewFromInt(1)) > 0 {
			return p, fmt.Errorf("%w: refund %s exceeds order amount %s", ErrInvalidAdjustment, amount, rec.OrderAmount)
		}
		p.Ratio = &ratio
		p.NewCommission = rec.Current.Mul(decimal.NewFromInt(1).Sub(ratio)).Round(2)
	case AdjustPenalty:
		p.NewCommission = rec.Current.Add(amount).Round(2)
	case AdjustBonus:
		p.NewCommission = MaxDecimal(rec.Current.Sub(amount), decimal.Zero).Round(2)
	case AdjustCorrection:
		p.NewCommission = rec.Current.Add(amount).Round(2)
	}
	p.NewCommission = MaxDecimal(p.NewCommission, decimal.Zero)

	p.Impact = p.NewCommission.Sub(rec.Current)
	if rec.Current.IsZero() {
		p.ImpactPct = decimal.Zero
	} else {
		p.ImpactPct = p.Impact.Div(rec.Current).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return p, nil
}
