package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"mkt-settle-api/internal/channel/health"
	"mkt-settle-api/internal/constant"
	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/dao"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/idgen"
	mainmodel "mkt-settle-api/internal/model/main"
	"mkt-settle-api/internal/payout"
	"mkt-settle-api/internal/system"
	rediskey "mkt-settle-api/internal/types/redis-key"
	"mkt-settle-api/internal/utils"
	"mkt-settle-api/internal/utils/timeutil"
)

// 入队幂等锁 TTL，只挡并发窗口，落库后由 DB 唯一性接管
const enqueueGuardTTL = 10 * time.Minute

type PayoutService struct {
	payoutDao      *dao.PayoutDao
	supplierDao    *dao.SupplierDao
	commissionDao  *dao.CommissionDao
	discrepancyDao *dao.DiscrepancyDao
	railHealth     *health.RailHealthManager
}

func NewPayoutService() *PayoutService {
	return &PayoutService{
		payoutDao:      dao.NewPayoutDao(),
		supplierDao:    dao.NewSupplierDao(),
		commissionDao:  dao.NewCommissionDao(),
		discrepancyDao: dao.NewDiscrepancyDao(),
		railHealth: &health.RailHealthManager{
			Redis:     dal.RedisClient,
			Strategy:  &health.EWMAStrategy{Alpha: railEWMAAlpha},
			Threshold: railHealthThreshold,
			TTL:       railHealthTTL,
		},
	}
}

// Enqueue 按供应商+周期聚合未结算佣金并生成出款项。
// 单个供应商失败不影响其他供应商，逐个返回跳过原因。
func (s *PayoutService) Enqueue(ctx context.Context, req dto.EnqueuePayoutsReq) (*dto.EnqueuePayoutsResp, error) {
	// 1. 解析周期与计划出款日
	from, err := timeutil.ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	to, _ := timeutil.PeriodEnd(req.Period)

	scheduled := time.Now().UTC().Truncate(24 * time.Hour)
	if req.ScheduledDate != "" {
		scheduled, err = timeutil.ParseDate(req.ScheduledDate, "UTC")
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled date %q: %w", req.ScheduledDate, err)
		}
	}

	// 2. 圈定供应商
	var sups []mainmodel.Supplier
	if len(req.SupplierIDs) > 0 {
		sups, err = s.supplierDao.ListByIDs(req.SupplierIDs)
	} else {
		sups, err = s.supplierDao.ListActive()
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.EnqueuePayoutsResp{Period: req.Period}
	found := make(map[uint64]bool, len(sups))
	for _, sup := range sups {
		found[sup.SupplierID] = true
	}
	for _, id := range req.SupplierIDs {
		if !found[id] {
			resp.Skipped = append(resp.Skipped, dto.EnqueueSkipVO{
				SupplierID: id,
				Reason:     "supplier not found or disabled",
			})
		}
	}

	// 3. 逐供应商入队
	minAmount := system.MinPayoutAmount()
	total := decimal.Zero
	for i := range sups {
		vo, skip := s.enqueueOne(ctx, &sups[i], req.Period, from, to, scheduled, minAmount)
		if skip != nil {
			resp.Skipped = append(resp.Skipped, *skip)
			continue
		}
		resp.Created = append(resp.Created, *vo)
		net, _ := decimal.NewFromString(vo.NetAmount)
		total = total.Add(net)
	}

	resp.CreatedCount = len(resp.Created)
	resp.TotalAmount = total.StringFixed(2)
	return resp, nil
}

// enqueueOne 单供应商入队。佣金台账预占在前，主库插入失败时释放预占补偿。
func (s *PayoutService) enqueueOne(
	ctx context.Context,
	sup *mainmodel.Supplier,
	period string,
	from, to time.Time,
	scheduled time.Time,
	minAmount decimal.Decimal,
) (*dto.PayoutItemVO, *dto.EnqueueSkipVO) {
	skip := func(net, reason string) *dto.EnqueueSkipVO {
		return &dto.EnqueueSkipVO{SupplierID: sup.SupplierID, NetAmount: net, Reason: reason}
	}

	// a. 出款方式
	method, err := utils.ParsePayoutMethod(sup.PayoutMethod)
	if err != nil {
		return nil, skip("", err.Error())
	}

	// b. 并发入队锁
	guardKey := rediskey.EnqueueGuardKey(sup.SupplierID, period)
	locked, err := dal.RedisClient.SetNX(ctx, guardKey, 1, enqueueGuardTTL).Result()
	if err != nil {
		return nil, skip("", fmt.Sprintf("enqueue guard failed: %v", err))
	}
	if !locked {
		return nil, skip("", "enqueue already in progress")
	}
	defer dal.RedisClient.Del(ctx, guardKey)

	// c. 周期内已有未取消的出款项则拒绝重复入队
	existing, err := s.payoutDao.GetActiveByPeriod(sup.SupplierID, period)
	if err != nil {
		return nil, skip("", fmt.Sprintf("dedupe check failed: %v", err))
	}
	if existing != nil {
		return nil, skip("", fmt.Sprintf("already enqueued as payout %d (%s)",
			existing.PayoutID, constant.PayoutStatusText[existing.Status]))
	}

	// d. 预占周期内未结算佣金并聚合
	agg, err := s.commissionDao.ReserveForPayout(sup.SupplierID, from, to)
	if err != nil {
		return nil, skip("", fmt.Sprintf("reserve commissions failed: %v", err))
	}
	if agg.Cnt == 0 {
		return nil, skip("", "no unsettled commission in period")
	}

	// e. 净额校验
	net := agg.OrderAmount.Sub(agg.CommissionAmount)
	release := func() {
		if rErr := s.commissionDao.ReleaseReserved(sup.SupplierID, from, to); rErr != nil {
			log.Printf("[PAYOUT-ENQUEUE] 释放预占失败 supplier=%d period=%s: %v", sup.SupplierID, period, rErr)
		}
	}
	if net.Cmp(decimal.Zero) <= 0 {
		release()
		return nil, skip(net.StringFixed(2), "net amount not positive")
	}
	if net.Cmp(minAmount) < 0 {
		release()
		return nil, skip(net.StringFixed(2), fmt.Sprintf("net below minimum %s", minAmount))
	}
	if method.AmountRange != "" && !utils.MatchAmountRange(net, method.AmountRange) {
		release()
		return nil, skip(net.StringFixed(2), fmt.Sprintf("net outside %s range %s", method.Method, method.AmountRange))
	}

	// f. 入队，失败时补偿释放预占
	item := &mainmodel.PayoutItemM{
		PayoutID:         idgen.New(),
		SupplierID:       sup.SupplierID,
		Period:           period,
		GrossAmount:      agg.OrderAmount,
		CommissionAmount: agg.CommissionAmount,
		NetAmount:        net,
		Currency:         method.Currency,
		Method:           method.Method,
		Status:           constant.PayoutStatusPending,
		ScheduledDate:    scheduled,
		AttemptCount:     0,
		ClaimBatchID:     0,
	}
	if err := s.payoutDao.Insert(item); err != nil {
		release()
		return nil, skip(net.StringFixed(2), fmt.Sprintf("enqueue insert failed: %v", err))
	}

	return payoutItemVO(item), nil
}

// Retry 失败出款重新入队，重试次数耗尽时拒绝
func (s *PayoutService) Retry(ctx context.Context, req dto.RetryPayoutReq) (*dto.PayoutItemVO, error) {
	item, err := s.payoutDao.GetByID(req.PayoutID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %d", ErrPayoutNotFound, req.PayoutID)
	}

	if err := payout.CheckTransition(item.Status, constant.PayoutStatusPending); err != nil {
		return nil, err
	}
	maxAttempts := system.PayoutMaxAttempts()
	if !payout.CanRetry(item.AttemptCount, maxAttempts) {
		return nil, fmt.Errorf("%w: %d attempts used (max %d)", payout.ErrRetryExhausted, item.AttemptCount, maxAttempts)
	}

	rows, err := s.payoutDao.Retry(req.PayoutID, maxAttempts)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// 读取与更新之间状态被并发改动
		return nil, fmt.Errorf("%w: payout %d changed concurrently", payout.ErrInvalidTransition, req.PayoutID)
	}

	log.Printf("[PAYOUT-RETRY] 出款 %d 重新入队, operator=%s, attempt=%d/%d",
		req.PayoutID, req.Operator, item.AttemptCount, maxAttempts)

	fresh, err := s.payoutDao.GetByID(req.PayoutID)
	if err != nil {
		return nil, err
	}
	return payoutItemVO(fresh), nil
}

// Cancel 取消待处理出款并释放佣金预占。已被批次锁定的不可取消。
func (s *PayoutService) Cancel(ctx context.Context, req dto.CancelPayoutReq) (*dto.PayoutItemVO, error) {
	item, err := s.payoutDao.GetByID(req.PayoutID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %d", ErrPayoutNotFound, req.PayoutID)
	}

	if item.ClaimBatchID != 0 {
		return nil, fmt.Errorf("%w: batch %d", payout.ErrConcurrentClaim, item.ClaimBatchID)
	}
	if err := payout.CheckTransition(item.Status, constant.PayoutStatusCancelled); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = fmt.Sprintf("cancelled by %s", req.Operator)
	}
	rows, err := s.payoutDao.Cancel(req.PayoutID, reason)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		fresh, _ := s.payoutDao.GetByID(req.PayoutID)
		if fresh != nil && fresh.ClaimBatchID != 0 {
			return nil, fmt.Errorf("%w: batch %d", payout.ErrConcurrentClaim, fresh.ClaimBatchID)
		}
		return nil, fmt.Errorf("%w: payout %d changed concurrently", payout.ErrInvalidTransition, req.PayoutID)
	}

	// 释放周期内的佣金预占，允许下次重新聚合入队
	from, err := timeutil.ParsePeriod(item.Period)
	if err == nil {
		to, _ := timeutil.PeriodEnd(item.Period)
		if rErr := s.commissionDao.ReleaseReserved(item.SupplierID, from, to); rErr != nil {
			log.Printf("[PAYOUT-CANCEL] 释放预占失败 supplier=%d period=%s: %v", item.SupplierID, item.Period, rErr)
		}
	}

	log.Printf("[PAYOUT-CANCEL] 出款 %d 已取消, operator=%s", req.PayoutID, req.Operator)

	fresh, err := s.payoutDao.GetByID(req.PayoutID)
	if err != nil {
		return nil, err
	}
	return payoutItemVO(fresh), nil
}

// Get 出款项详情
func (s *PayoutService) Get(payoutID uint64) (*dto.PayoutItemVO, error) {
	item, err := s.payoutDao.GetByID(payoutID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %d", ErrPayoutNotFound, payoutID)
	}
	return payoutItemVO(item), nil
}

// DiscrepanciesOf 出款项关联的对账差异
func (s *PayoutService) DiscrepanciesOf(payoutID uint64) ([]dto.DiscrepancyVO, error) {
	rows, err := s.discrepancyDao.ListByPayout(payoutID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscrepancyVO, 0, len(rows))
	for i := range rows {
		out = append(out, dto.DiscrepancyVO{
			ID:           rows[i].ID,
			PayoutID:     rows[i].PayoutID,
			BatchID:      rows[i].BatchID,
			LocalTxnID:   rows[i].LocalTxnID,
			RemoteTxnID:  rows[i].RemoteTxnID,
			RemoteAmount: rows[i].RemoteAmount.StringFixed(2),
			Kind:         rows[i].Kind,
			Remark:       rows[i].Remark,
		})
	}
	return out, nil
}

// Intervention 重试耗尽、等待人工处理的出款清单，附各通道成功率快照
func (s *PayoutService) Intervention(req dto.InterventionReq) (*dto.InterventionResp, error) {
	req.Normalize()
	items, total, err := s.payoutDao.ListExhausted(system.PayoutMaxAttempts(), req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return nil, err
	}

	out := make([]dto.InterventionItemVO, 0, len(items))
	for _, m := range items {
		vo := dto.InterventionItemVO{
			PayoutID:     m.PayoutID,
			SupplierID:   m.SupplierID,
			Period:       m.Period,
			NetAmount:    m.NetAmount.StringFixed(2),
			Currency:     m.Currency,
			AttemptCount: m.AttemptCount,
			UpdateTime:   m.UpdateTime,
		}
		if m.FailureReason != nil {
			vo.FailureReason = *m.FailureReason
		}
		out = append(out, vo)
	}

	return &dto.InterventionResp{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     out,
		Rails:    s.railSnapshot(),
	}, nil
}

// railSnapshot 全量出款方式的健康状态，固定按方式名排序
func (s *PayoutService) railSnapshot() []dto.RailHealthVO {
	methods := make([]string, 0, len(utils.PayoutMethodMap))
	for m := range utils.PayoutMethodMap {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	rails := make([]dto.RailHealthVO, 0, len(methods))
	for _, m := range methods {
		rails = append(rails, dto.RailHealthVO{
			Method:      m,
			Rail:        utils.PayoutMethodMap[m].Rail,
			SuccessRate: s.railHealth.Rate(m),
			Disabled:    s.railHealth.IsDisabled(m),
		})
	}
	return rails
}

// EnableRail 人工解除通道熔断，返回解除后的健康状态
func (s *PayoutService) EnableRail(req dto.RailEnableReq) (*dto.RailHealthVO, error) {
	info, err := utils.ParsePayoutMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if err := s.railHealth.Enable(info.Method); err != nil {
		return nil, err
	}
	log.Printf("[RAIL-ENABLE] ✅ 通道 %s 熔断已解除, operator=%s", info.Method, req.Operator)

	return &dto.RailHealthVO{
		Method:      info.Method,
		Rail:        info.Rail,
		SuccessRate: s.railHealth.Rate(info.Method),
		Disabled:    false,
	}, nil
}

// List 出款项分页查询
func (s *PayoutService) List(req dto.PayoutListReq) ([]dto.PayoutItemVO, int64, error) {
	req.Normalize()

	var status *int8
	if req.Status != "" {
		code, ok := payoutStatusCode(req.Status)
		if !ok {
			return nil, 0, fmt.Errorf("unknown payout status %q", req.Status)
		}
		status = &code
	}

	items, total, err := s.payoutDao.List(req.SupplierID, req.Period, status, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.PayoutItemVO, 0, len(items))
	for i := range items {
		out = append(out, *payoutItemVO(&items[i]))
	}
	return out, total, nil
}

// payoutStatusCode 状态名转存储码
func payoutStatusCode(name string) (int8, bool) {
	for code, text := range constant.PayoutStatusText {
		if text == name {
			return code, true
		}
	}
	return 0, false
}

// payoutItemVO 模型转视图
func payoutItemVO(m *mainmodel.PayoutItemM) *dto.PayoutItemVO {
	var vo dto.PayoutItemVO
	_ = copier.Copy(&vo, m)
	vo.GrossAmount = m.GrossAmount.StringFixed(2)
	vo.CommissionAmount = m.CommissionAmount.StringFixed(2)
	vo.NetAmount = m.NetAmount.StringFixed(2)
	vo.Status = constant.PayoutStatusText[m.Status]
	if m.TransactionID != nil {
		vo.TransactionID = *m.TransactionID
	}
	if m.FailureReason != nil {
		vo.FailureReason = *m.FailureReason
	}
	return &vo
}
