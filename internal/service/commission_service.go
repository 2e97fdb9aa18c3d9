package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"mkt-settle-api/internal/commission"
	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/dao"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/event"
	"mkt-settle-api/internal/idgen"
	ledgermodel "mkt-settle-api/internal/model/ledger"
	"mkt-settle-api/internal/rate"
)

type CommissionService struct {
	commissionDao *dao.CommissionDao
	supplierDao   *dao.SupplierDao
	scheduleSvc   *ScheduleService
}

func NewCommissionService() *CommissionService {
	return &CommissionService{
		commissionDao: dao.NewCommissionDao(),
		supplierDao:   dao.NewSupplierDao(),
		scheduleSvc:   NewScheduleService(),
	}
}

// minFee 正金额订单的佣金下限，可配置
func minFee() decimal.Decimal {
	if d, err := decimal.NewFromString(config.C.Commission.MinFee); err == nil && d.IsPositive() {
		return d
	}
	return commission.DefaultMinFee
}

// StampFromEvent 订单完成事件落佣金账，按 order_no 幂等。
// 返回 false 表示该订单已落过账（重复消息）。
func (s *CommissionService) StampFromEvent(ctx context.Context, ev *dto.OrderCompletedEvent) (bool, error) {
	orderAmount, err := decimal.NewFromString(ev.Amount)
	if err != nil {
		return false, fmt.Errorf("order %s amount %q invalid: %w", ev.OrderNo, ev.Amount, err)
	}

	sup, err := s.supplierDao.GetByIDCached(ev.SupplierID)
	if err != nil {
		return false, err
	}
	if sup == nil {
		return false, fmt.Errorf("%w: supplier %d", ErrSupplierNotFound, ev.SupplierID)
	}

	sched, err := s.scheduleSvc.Current(ctx)
	if err != nil {
		return false, err
	}

	categoryID := ev.CategoryID
	if categoryID == 0 {
		categoryID = sup.CategoryID
	}
	p, source := rate.Resolve(sched, ev.SupplierID, sup.Tier, categoryID)
	fee := commission.Compute(orderAmount, p, minFee())

	// 落账时间取雪花ID时间戳，保证与分表月份一致
	commissionID := idgen.New()
	stampTime := idgen.TimeOf(commissionID)
	m := &ledgermodel.CommissionM{
		CommissionID:     commissionID,
		OrderID:          ev.OrderID,
		OrderNo:          ev.OrderNo,
		SupplierID:       ev.SupplierID,
		CategoryID:       categoryID,
		OrderAmount:      orderAmount,
		Currency:         ev.Currency,
		ResolvedRate:     p,
		ResolvedFrom:     source,
		ScheduleVersion:  sched.Version,
		CommissionAmount: fee,
		CurrentAmount:    fee,
		AdjustVersion:    0,
		Settled:          ledgermodel.SettleStateOpen,
		CompletedAt:      time.UnixMilli(ev.CompletedAt),
		CreateTime:       stampTime,
		UpdateTime:       stampTime,
	}

	stamped, err := s.commissionDao.StampWithIndex(m)
	if err != nil {
		return false, err
	}
	if !stamped {
		return false, nil
	}

	event.PublishCommissionStamped(&dto.CommissionStampedEvent{
		CommissionID:    commissionID,
		OrderID:         ev.OrderID,
		OrderNo:         ev.OrderNo,
		SupplierID:      ev.SupplierID,
		OrderAmount:     orderAmount.String(),
		Rate:            p.String(),
		Source:          source,
		ScheduleVersion: sched.Version,
		Amount:          fee.String(),
		CreatedAt:       stampTime.UnixMilli(),
	})
	return true, nil
}

// Compute 佣金试算，不落库
func (s *CommissionService) Compute(ctx context.Context, req dto.ComputeCommissionReq) (*dto.ComputeCommissionResp, error) {
	orderAmount, err := decimal.NewFromString(req.OrderAmount)
	if err != nil {
		return nil, fmt.Errorf("order amount %q invalid: %w", req.OrderAmount, err)
	}

	sup, err := s.supplierDao.GetByID(req.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil || sup.Status != 1 {
		return nil, fmt.Errorf("%w: supplier %d", ErrSupplierNotFound, req.SupplierID)
	}

	sched, err := s.scheduleSvc.Current(ctx)
	if err != nil {
		return nil, err
	}

	categoryID := req.CategoryID
	if categoryID == 0 {
		categoryID = sup.CategoryID
	}
	p, source := rate.Resolve(sched, req.SupplierID, sup.Tier, categoryID)
	fee := commission.Compute(orderAmount, p, minFee())

	return &dto.ComputeCommissionResp{
		OrderAmount:      orderAmount.String(),
		Rate:             p.String(),
		Source:           source,
		CommissionAmount: fee.StringFixed(2),
		ScheduleVersion:  sched.Version,
		Currency:         config.C.Commission.Currency,
	}, nil
}

// PreviewAdjust 调整试算，返回的 base_version 在 apply 时原样带回
func (s *CommissionService) PreviewAdjust(req dto.PreviewAdjustReq) (*dto.AdjustPreviewVO, error) {
	c, err := s.commissionDao.GetByID(req.CommissionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %d", ErrCommissionNotFound, req.CommissionID)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", commission.ErrInvalidAdjustment, req.Amount)
	}

	p, err := commission.PreviewAdjustment(commission.Record{
		CommissionID:  c.CommissionID,
		OrderAmount:   c.OrderAmount,
		Current:       c.CurrentAmount,
		AdjustVersion: c.AdjustVersion,
	}, req.AdjustType, amount)
	if err != nil {
		return nil, err
	}

	vo := &dto.AdjustPreviewVO{
		CommissionID:   c.CommissionID,
		AdjustType:     p.AdjustType,
		Amount:         p.Amount.StringFixed(2),
		PrevCommission: p.PrevCommission.StringFixed(2),
		NewCommission:  p.NewCommission.StringFixed(2),
		Impact:         p.Impact.StringFixed(2),
		ImpactPct:      p.ImpactPct.StringFixed(2),
		BaseVersion:    p.BaseVersion,
	}
	if p.Ratio != nil {
		vo.Ratio = p.Ratio.String()
	}
	return vo, nil
}

// ApplyAdjust 调整落库。base_version 与当前版本不一致
// 说明预览后记录已被并发调整，拒绝套用。
func (s *CommissionService) ApplyAdjust(req dto.ApplyAdjustReq) (*dto.ApplyAdjustResp, error) {
	c, err := s.commissionDao.GetByID(req.CommissionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %d", ErrCommissionNotFound, req.CommissionID)
	}
	if c.AdjustVersion != req.BaseVersion {
		return nil, fmt.Errorf("%w: commission %d version %d superseded by %d",
			commission.ErrStaleCommission, c.CommissionID, req.BaseVersion, c.AdjustVersion)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", commission.ErrInvalidAdjustment, req.Amount)
	}

	p, err := commission.PreviewAdjustment(commission.Record{
		CommissionID:  c.CommissionID,
		OrderAmount:   c.OrderAmount,
		Current:       c.CurrentAmount,
		AdjustVersion: c.AdjustVersion,
	}, req.AdjustType, amount)
	if err != nil {
		return nil, err
	}

	adj := &ledgermodel.CommissionAdjustM{
		AdjustID:     idgen.New(),
		CommissionID: c.CommissionID,
		AdjustType:   p.AdjustType,
		Amount:       p.Amount,
		Ratio:        p.Ratio,
		PrevAmount:   p.PrevCommission,
		NewAmount:    p.NewCommission,
		Impact:       p.Impact,
		ImpactPct:    p.ImpactPct,
		Reason:       req.Reason,
		Operator:     req.Operator,
	}
	if err := s.commissionDao.ApplyAdjust(c, req.BaseVersion, adj); err != nil {
		return nil, err
	}

	return &dto.ApplyAdjustResp{
		AdjustID:      adj.AdjustID,
		CommissionID:  c.CommissionID,
		NewCommission: p.NewCommission.StringFixed(2),
		AdjustVersion: req.BaseVersion + 1,
	}, nil
}

// GetByOrderNo 按订单号查佣金记录与调整流水
func (s *CommissionService) GetByOrderNo(orderNo string) (*dto.CommissionVO, []dto.AdjustLogVO, error) {
	c, err := s.commissionDao.GetByOrderNo(orderNo)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, fmt.Errorf("%w: order %s", ErrCommissionNotFound, orderNo)
	}

	var vo dto.CommissionVO
	_ = copier.Copy(&vo, c)
	vo.OrderAmount = c.OrderAmount.String()
	vo.ResolvedRate = c.ResolvedRate.String()
	vo.CommissionAmount = c.CommissionAmount.StringFixed(2)
	vo.CurrentAmount = c.CurrentAmount.StringFixed(2)

	adjusts, err := s.commissionDao.ListAdjusts(c.CommissionID)
	if err != nil {
		return nil, nil, err
	}
	logs := make([]dto.AdjustLogVO, 0, len(adjusts))
	for _, a := range adjusts {
		var lv dto.AdjustLogVO
		_ = copier.Copy(&lv, &a)
		lv.Amount = a.Amount.StringFixed(2)
		lv.PrevAmount = a.PrevAmount.StringFixed(2)
		lv.NewAmount = a.NewAmount.StringFixed(2)
		lv.Impact = a.Impact.StringFixed(2)
		lv.ImpactPct = a.ImpactPct.StringFixed(2)
		logs = append(logs, lv)
	}
	return &vo, logs, nil
}
