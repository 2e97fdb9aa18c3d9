package rate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// 风险等级
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// SupplierSnapshot 影响分析的供应商画像：等级、类目与回看窗口内的历史量。
// TrailingOrderAmount / TrailingCommission 是窗口内订单金额与已入账佣金的合计，
// 由调用方从佣金台账聚合得到，分析本身不回查存储。
type SupplierSnapshot struct {
	SupplierID          uint64
	Tier                string
	CategoryID          uint64
	TrailingOrderAmount decimal.Decimal
	TrailingCommission  decimal.Decimal
}

// Thresholds 风险评定阈值，运行时可调
type Thresholds struct {
	HighPct       decimal.Decimal // 高风险线：|营收变化| 占回看期佣金总额百分比
	MediumPct     decimal.Decimal // 中风险线
	RateDeltaWarn decimal.Decimal // 单供应商费率上调多少个百分点值得点名
}

// SupplierImpact 单供应商的费率变化
type SupplierImpact struct {
	SupplierID    uint64          `json:"supplierId"`
	OldRate       decimal.Decimal `json:"oldRate"`
	NewRate       decimal.Decimal `json:"newRate"`
	OldProvenance string          `json:"oldProvenance"`
	NewProvenance string          `json:"newProvenance"`
	RevenueChange decimal.Decimal `json:"revenueChange"` // (new-old)/100 * 窗口订单额
}

// ImpactReport 模拟结果。数字全部由输入快照推出，可重放。
type ImpactReport struct {
	TotalSuppliers         int              `json:"totalSuppliers"`
	AffectedCount          int              `json:"affectedCount"`
	Affected               []SupplierImpact `json:"affected"`
	EstimatedRevenueChange decimal.Decimal  `json:"estimatedRevenueChange"`
	TrailingCommission     decimal.Decimal  `json:"trailingCommission"`
	ChangePct              decimal.Decimal  `json:"changePct"` // 变化占回看期佣金总额的百分比
	RiskLevel              string           `json:"riskLevel"`
	Recommendations        []string         `json:"recommendations"`
}

// Analyze 用候选费率表对全量供应商做一次确定性模拟：
// 两张表各解析一次生效费率，费率不同者记为受影响；
// 营收变化按窗口订单额线性估算，风险等级按占比阈值评定。
func Analyze(current, candidate *Schedule, population []SupplierSnapshot, th Thresholds) ImpactReport {
	report := ImpactReport{
		TotalSuppliers:         len(population),
		EstimatedRevenueChange: decimal.Zero,
		TrailingCommission:     decimal.Zero,
	}

	hundred := decimal.NewFromInt(100)
	sorted := make([]SupplierSnapshot, len(population))
	copy(sorted, population)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SupplierID < sorted[j].SupplierID })

	for _, sup := range sorted {
		report.TrailingCommission = report.TrailingCommission.Add(sup.TrailingCommission)

		oldRate, oldFrom := Resolve(current, sup.SupplierID, sup.Tier, sup.CategoryID)
		newRate, newFrom := Resolve(candidate, sup.SupplierID, sup.Tier, sup.CategoryID)
		if oldRate.Equal(newRate) {
			continue
		}

		change := newRate.Sub(oldRate).Div(hundred).Mul(sup.TrailingOrderAmount)
		report.Affected = append(report.Affected, SupplierImpact{
			SupplierID:    sup.SupplierID,
			OldRate:       oldRate,
			NewRate:       newRate,
			OldProvenance: oldFrom,
			NewProvenance: newFrom,
			RevenueChange: change,
		})
		report.EstimatedRevenueChange = report.EstimatedRevenueChange.Add(change)
	}
	report.AffectedCount = len(report.Affected)

	report.ChangePct, report.RiskLevel = riskOf(report.EstimatedRevenueChange, report.TrailingCommission, th)
	report.Recommendations = recommend(report, th)
	return report
}

// riskOf 以 |营收变化|/回看期佣金 评风险；无历史佣金时只要有变化即视为高风险
func riskOf(change, trailing decimal.Decimal, th Thresholds) (decimal.Decimal, string) {
	abs := change.Abs()
	if trailing.IsZero() {
		if abs.IsZero() {
			return decimal.Zero, RiskLow
		}
		return decimal.NewFromInt(100), RiskHigh
	}
	pct := abs.Div(trailing).Mul(decimal.NewFromInt(100))
	switch {
	case pct.Cmp(th.HighPct) > 0:
		return pct, RiskHigh
	case pct.Cmp(th.MediumPct) > 0:
		return pct, RiskMedium
	default:
		return pct, RiskLow
	}
}

// recommend 规则化建议清单，顺序与内容完全确定
func recommend(r ImpactReport, th Thresholds) []string {
	var out []string

	if r.AffectedCount == 0 {
		out = append(out, "no supplier is affected by this change; applying it is a no-op for the current population")
		return out
	}

	if r.RiskLevel == RiskHigh {
		out = append(out, fmt.Sprintf(
			"estimated revenue change %s is %s%% of trailing commission; stage the rollout or split the change",
			r.EstimatedRevenueChange.StringFixed(2), r.ChangePct.StringFixed(2)))
	}

	for _, a := range r.Affected {
		delta := a.NewRate.Sub(a.OldRate)
		if delta.Cmp(th.RateDeltaWarn) > 0 {
			out = append(out, fmt.Sprintf(
				"supplier %d rate rises %s points (%s%% -> %s%%); confirm contract terms before applying",
				a.SupplierID, delta.StringFixed(2), a.OldRate.StringFixed(2), a.NewRate.StringFixed(2)))
		}
	}

	shifts := 0
	for _, a := range r.Affected {
		if a.OldProvenance != a.NewProvenance {
			shifts++
		}
	}
	if shifts > 0 {
		out = append(out, fmt.Sprintf(
			"%d supplier(s) change pricing layer (e.g. tier -> category); verify overrides are intentional", shifts))
	}

	if len(out) == 0 {
		out = append(out, fmt.Sprintf("%d supplier(s) affected within normal bounds; safe to apply", r.AffectedCount))
	}
	return out
}
