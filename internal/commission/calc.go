package commission

import (
	"github.com/shopspring/decimal"
)

// DefaultMinFee 正金额订单的最低佣金下限
var DefaultMinFee = decimal.NewFromFloat(0.01)

// Compute 按费率计算订单佣金：round(orderAmount * rate / 100, 2)，
// 四舍五入到分。正金额订单不低于 minFee，非正金额订单佣金为 0。
func Compute(orderAmount, ratePct, minFee decimal.Decimal) decimal.Decimal {
	if orderAmount.Cmp(decimal.Zero) <= 0 {
		return decimal.Zero.Round(2)
	}
	fee := orderAmount.Mul(ratePct).Div(decimal.NewFromInt(100)).Round(2)
	if fee.Cmp(minFee) < 0 {
		return minFee
	}
	return fee
}

// MaxDecimal 比较两个数值，返回最大值
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// CurrentAmount 原始佣金加上全部调整差额的当前值，下限 0。
// 与台账里增量维护的 current_amount 语义一致，可用于重放核对。
func CurrentAmount(original decimal.Decimal, impacts []decimal.Decimal) decimal.Decimal {
	cur := original
	for _, d := range impacts {
		cur = cur.Add(d)
	}
	return MaxDecimal(cur, decimal.Zero)
}
