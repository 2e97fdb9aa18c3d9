package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/dao"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/notify"
	"mkt-settle-api/internal/rate"
	"mkt-settle-api/internal/system"
)

type ImpactService struct {
	scheduleDao   *dao.ScheduleDao
	supplierDao   *dao.SupplierDao
	commissionDao *dao.CommissionDao
}

func NewImpactService() *ImpactService {
	return &ImpactService{
		scheduleDao:   dao.NewScheduleDao(),
		supplierDao:   dao.NewSupplierDao(),
		commissionDao: dao.NewCommissionDao(),
	}
}

// Analyze 费率变更影响评估：候选值叠加在当前版本上，
// 对全量活跃供应商用回看窗口的真实成交做确定性模拟。
func (s *ImpactService) Analyze(ctx context.Context, req dto.ImpactAnalyzeReq) (*dto.ImpactAnalyzeResp, error) {
	// 1. 当前版本直读库，分析基准不走缓存
	curM, err := s.scheduleDao.GetCurrent()
	if err != nil {
		return nil, err
	}
	if curM == nil {
		return nil, ErrScheduleNotFound
	}
	current := scheduleFromModel(curM)

	// 2. 构造候选费率表
	candidate, err := buildCandidate(current, req)
	if err != nil {
		return nil, err
	}

	// 3. 人群画像：活跃供应商 + 窗口内成交聚合
	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = system.ImpactWindowDays()
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -windowDays)

	suppliers, err := s.supplierDao.ListActive()
	if err != nil {
		return nil, err
	}
	aggs, err := s.commissionDao.SumTrailingBySupplier(from, to)
	if err != nil {
		return nil, err
	}

	population := make([]rate.SupplierSnapshot, 0, len(suppliers))
	tierOf := make(map[uint64]string, len(suppliers))
	for _, sup := range suppliers {
		agg := aggs[sup.SupplierID]
		population = append(population, rate.SupplierSnapshot{
			SupplierID:          sup.SupplierID,
			Tier:                sup.Tier,
			CategoryID:          sup.CategoryID,
			TrailingOrderAmount: agg.OrderAmount,
			TrailingCommission:  agg.CommissionAmount,
		})
		tierOf[sup.SupplierID] = sup.Tier
	}

	// 4. 确定性模拟
	report := rate.Analyze(current, candidate, population, rate.Thresholds{
		HighPct:       decimal.NewFromFloat(config.C.Impact.HighPct),
		MediumPct:     decimal.NewFromFloat(config.C.Impact.MediumPct),
		RateDeltaWarn: decimal.NewFromFloat(config.C.Impact.RateDeltaWarn),
	})

	resp := &dto.ImpactAnalyzeResp{
		BaseVersion:            current.Version,
		WindowDays:             windowDays,
		TotalSuppliers:         report.TotalSuppliers,
		AffectedCount:          report.AffectedCount,
		Affected:               make([]dto.SupplierImpactVO, 0, len(report.Affected)),
		EstimatedRevenueChange: report.EstimatedRevenueChange.StringFixed(2),
		TrailingCommission:     report.TrailingCommission.StringFixed(2),
		ChangePct:              report.ChangePct.StringFixed(2),
		RiskLevel:              report.RiskLevel,
		Recommendations:        report.Recommendations,
	}
	for _, a := range report.Affected {
		resp.Affected = append(resp.Affected, dto.SupplierImpactVO{
			SupplierID:    a.SupplierID,
			Tier:          tierOf[a.SupplierID],
			OldRate:       a.OldRate.String(),
			NewRate:       a.NewRate.String(),
			OldSource:     a.OldProvenance,
			NewSource:     a.NewProvenance,
			TrailingOrder: aggs[a.SupplierID].OrderAmount.StringFixed(2),
			RevenueChange: a.RevenueChange.StringFixed(2),
		})
	}

	// 5. 高风险候选变更提醒
	if report.RiskLevel == rate.RiskHigh {
		notify.NotifyRateChangeAlert(current.Version, "impact-analysis",
			report.AffectedCount, report.RiskLevel, report.ChangePct.StringFixed(2))
	}
	return resp, nil
}

// buildCandidate 把请求里的增量叠加到当前版本的副本之上
func buildCandidate(current *rate.Schedule, req dto.ImpactAnalyzeReq) (*rate.Schedule, error) {
	candidate := current.Clone()

	if req.DefaultRate != nil {
		p, err := parsePercent(*req.DefaultRate)
		if err != nil {
			return nil, err
		}
		candidate.DefaultRate = p
	}
	for tier, raw := range req.TierRates {
		if !rate.IsKnownTier(tier) {
			return nil, fmt.Errorf("%w: unknown tier %q", rate.ErrInvalidRate, tier)
		}
		p, err := parsePercent(raw)
		if err != nil {
			return nil, fmt.Errorf("tier %s: %w", tier, err)
		}
		candidate.TierRates[tier] = p
	}
	for idStr, raw := range req.CategoryRates {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: category id %q", rate.ErrInvalidRate, idStr)
		}
		p, pErr := parsePercent(raw)
		if pErr != nil {
			return nil, fmt.Errorf("category %s: %w", idStr, pErr)
		}
		candidate.CategoryRates[id] = p
	}
	for idStr, raw := range req.SupplierOverrides {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: supplier id %q", rate.ErrInvalidRate, idStr)
		}
		p, pErr := parsePercent(raw)
		if pErr != nil {
			return nil, fmt.Errorf("supplier %s: %w", idStr, pErr)
		}
		candidate.SupplierOverrides[id] = p
	}
	for _, id := range req.RemoveCategories {
		delete(candidate.CategoryRates, id)
	}
	for _, id := range req.RemoveSuppliers {
		delete(candidate.SupplierOverrides, id)
	}

	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	return candidate, nil
}
