package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"mkt-settle-api/internal/channel/health"
	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/constant"
	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/dao"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/event"
	"mkt-settle-api/internal/idgen"
	mainmodel "mkt-settle-api/internal/model/main"
	"mkt-settle-api/internal/notify"
	"mkt-settle-api/internal/payout"
	"mkt-settle-api/internal/system"
	rediskey "mkt-settle-api/internal/types/redis-key"
	"mkt-settle-api/internal/utils/timeutil"
)

const (
	railEWMAAlpha       = 0.2
	railHealthThreshold = 60.0
	railHealthTTL       = 24 * time.Hour
	batchSeqTTL         = 48 * time.Hour
)

type BatchService struct {
	payoutDao     *dao.PayoutDao
	batchDao      *dao.BatchDao
	supplierDao   *dao.SupplierDao
	commissionDao *dao.CommissionDao
	railHealth    *health.RailHealthManager
}

func NewBatchService() *BatchService {
	return &BatchService{
		payoutDao:     dao.NewPayoutDao(),
		batchDao:      dao.NewBatchDao(),
		supplierDao:   dao.NewSupplierDao(),
		commissionDao: dao.NewCommissionDao(),
		railHealth: &health.RailHealthManager{
			Redis:     dal.RedisClient,
			Strategy:  &health.EWMAStrategy{Alpha: railEWMAAlpha},
			Threshold: railHealthThreshold,
			TTL:       railHealthTTL,
		},
	}
}

// ProcessBatch 批量出款主流程。
// 全量校验通过后一次性锁定全部明细，任何一项不满足则整批拒绝；
// 锁定后按子批次推进，单项失败不影响同批其他项。
func (s *BatchService) ProcessBatch(ctx context.Context, req dto.ProcessBatchReq) (*dto.BatchResultVO, error) {
	// 1. 子批次大小
	size := req.BatchSize
	if size == 0 {
		size = config.C.Payout.DefaultBatchSize
	}
	if size <= 0 || size > config.C.Payout.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrBatchSizeInvalid, size, config.C.Payout.MaxBatchSize)
	}

	// 2. 载入明细并全量校验
	ids := uniqueIDs(req.ItemIDs)
	items, err := s.payoutDao.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	itemByID := make(map[uint64]*mainmodel.PayoutItemM, len(items))
	for i := range items {
		itemByID[items[i].PayoutID] = &items[i]
	}

	now := time.Now().UTC()
	minAmount := system.MinPayoutAmount()
	for _, id := range ids {
		item, ok := itemByID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrPayoutNotFound, id)
		}
		if err := payout.CheckEligible(item.Status, item.ClaimBatchID, item.NetAmount, minAmount, item.ScheduledDate, now); err != nil {
			return nil, fmt.Errorf("payout %d: %w", id, err)
		}
		if s.railHealth.IsDisabled(item.Method) {
			return nil, fmt.Errorf("payout %d: %w: method %s circuit open", id, payout.ErrNotEligible, item.Method)
		}
	}

	// 3. 预载供应商（出款账户信息）
	supByID, err := s.loadSuppliers(items)
	if err != nil {
		return nil, err
	}

	// 4. 批次号与整批锁定，锁定与批次落库同一事务
	batchID := idgen.New()
	batchNo, err := s.nextBatchNo(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].NetAmount)
	}
	batch := &mainmodel.PayoutBatchM{
		BatchID:      batchID,
		BatchNo:      batchNo,
		MemberIDs:    ids,
		TotalAmount:  total,
		TotalCount:   len(ids),
		Status:       constant.BatchStatusProcessing,
		SubBatchSize: size,
		ProcessedBy:  req.Operator,
	}
	err = s.payoutDao.WithTransaction(func(tx *gorm.DB) error {
		rows, err := dao.NewPayoutDaoWithDB(tx).ClaimAll(ids, batchID)
		if err != nil {
			return err
		}
		if rows != int64(len(ids)) {
			return fmt.Errorf("%w: claimed %d of %d", payout.ErrConcurrentClaim, rows, len(ids))
		}
		return dao.NewBatchDaoWithDB(tx).Insert(batch)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BATCH-PROCESS] 批次 %s 锁定 %d 项, operator=%s, sub_size=%d", batchNo, len(ids), req.Operator, size)

	// 5. 子批次推进，子批内并发，结果槽位互不共享
	results := make([]dto.ItemResultVO, len(ids))
	slot := make(map[uint64]int, len(ids))
	for i, id := range ids {
		slot[id] = i
	}

	maxAttempts := system.PayoutMaxAttempts()
	for _, sub := range payout.Partition(ids, size) {
		g := new(errgroup.Group)
		for _, id := range sub {
			item := itemByID[id]
			idx := slot[id]
			g.Go(func() error {
				results[idx] = s.processOne(ctx, item, supByID[item.SupplierID], batchID, batchNo, maxAttempts)
				return nil
			})
		}
		_ = g.Wait()
	}

	// 6. 汇总回填批次
	success, fail := 0, 0
	successTotal := decimal.Zero
	for i := range results {
		if results[i].Status == constant.PayoutStatusText[constant.PayoutStatusCompleted] {
			success++
			successTotal = successTotal.Add(itemByID[results[i].PayoutID].NetAmount)
		} else {
			fail++
		}
	}
	status := payout.DeriveBatchStatus(len(ids), success, fail)
	if err := s.batchDao.FinishBatch(batchID, success, fail, status, time.Now()); err != nil {
		log.Printf("❌ [BATCH-PROCESS] 批次 %s 汇总回填失败: %v", batchNo, err)
	}

	event.PublishBatchFinished(&dto.BatchFinishedEvent{
		BatchID:     batchID,
		BatchNo:     batchNo,
		Status:      constant.BatchStatusText[status],
		Processed:   len(ids),
		Successful:  success,
		Failed:      fail,
		TotalAmount: successTotal.StringFixed(2),
		FinishedAt:  time.Now().UnixMilli(),
	})

	log.Printf("✅ [BATCH-PROCESS] 批次 %s 完成: 成功 %d / 失败 %d", batchNo, success, fail)

	return &dto.BatchResultVO{
		BatchID:     batchID,
		BatchNo:     batchNo,
		Status:      constant.BatchStatusText[status],
		Processed:   len(ids),
		Successful:  success,
		Failed:      fail,
		TotalAmount: successTotal.StringFixed(2),
		Results:     results,
	}, nil
}

// processOne 单项出款：调代付、落状态、刷通道成功率、发结果通知。
// 返回结果只写入本项槽位。
func (s *BatchService) processOne(
	ctx context.Context,
	item *mainmodel.PayoutItemM,
	sup *mainmodel.Supplier,
	batchID uint64,
	batchNo string,
	maxAttempts int,
) dto.ItemResultVO {
	if sup == nil {
		return s.finishFailed(item, batchID, batchNo, "supplier not found or disabled", maxAttempts)
	}

	data, err := CallPaymentSubmit(ctx, item, sup)
	if err != nil {
		return s.finishFailed(item, batchID, batchNo, err.Error(), maxAttempts)
	}
	if data.Status == "FAILED" {
		reason := data.FailReason
		if reason == "" {
			reason = "rejected by payment service"
		}
		return s.finishFailed(item, batchID, batchNo, reason, maxAttempts)
	}

	return s.finishCompleted(item, batchID, batchNo, data.TransactionId)
}

func (s *BatchService) finishCompleted(item *mainmodel.PayoutItemM, batchID uint64, batchNo, transactionID string) dto.ItemResultVO {
	now := time.Now()
	if err := s.payoutDao.MarkCompleted(item.PayoutID, batchID, transactionID, now); err != nil {
		// 已打款但状态落库失败，结算对账兜底，这里只能告警
		log.Printf("🚨 [BATCH-PROCESS] 出款 %d 已打款但落库失败 txn=%s: %v", item.PayoutID, transactionID, err)
	}

	// 佣金台账预占转已结算
	if from, err := timeutil.ParsePeriod(item.Period); err == nil {
		to, _ := timeutil.PeriodEnd(item.Period)
		if err := s.commissionDao.MarkPaid(item.SupplierID, from, to); err != nil {
			log.Printf("❌ [BATCH-PROCESS] 佣金结清标记失败 supplier=%d period=%s: %v", item.SupplierID, item.Period, err)
		}
	}

	go func(method string) {
		if _, err := s.railHealth.Update(method, true); err != nil {
			log.Printf("update rail health failed: %v", err)
		}
	}(item.Method)

	event.PublishPayoutNotify(&dto.PayoutNotifyMsg{
		PayoutID:      item.PayoutID,
		SupplierID:    item.SupplierID,
		Period:        item.Period,
		Status:        constant.PayoutStatusText[constant.PayoutStatusCompleted],
		NetAmount:     item.NetAmount.StringFixed(2),
		Currency:      item.Currency,
		TransactionID: transactionID,
		BatchNo:       batchNo,
		NotifiedAt:    now.UnixMilli(),
	})

	return dto.ItemResultVO{
		PayoutID:      item.PayoutID,
		Status:        constant.PayoutStatusText[constant.PayoutStatusCompleted],
		TransactionID: transactionID,
		AttemptCount:  item.AttemptCount,
	}
}

func (s *BatchService) finishFailed(item *mainmodel.PayoutItemM, batchID uint64, batchNo, reason string, maxAttempts int) dto.ItemResultVO {
	now := time.Now()
	if err := s.payoutDao.MarkFailed(item.PayoutID, batchID, reason, now); err != nil {
		log.Printf("❌ [BATCH-PROCESS] 出款 %d 失败状态落库失败: %v", item.PayoutID, err)
	}

	go func(method string) {
		if _, err := s.railHealth.Update(method, false); err != nil {
			log.Printf("update rail health failed: %v", err)
		}
	}(item.Method)

	attempts := item.AttemptCount + 1
	if !payout.CanRetry(attempts, maxAttempts) {
		notify.NotifyInterventionAlert(item.PayoutID, item.SupplierID, item.Period,
			item.NetAmount.StringFixed(2), reason, attempts)
	}

	event.PublishPayoutNotify(&dto.PayoutNotifyMsg{
		PayoutID:   item.PayoutID,
		SupplierID: item.SupplierID,
		Period:     item.Period,
		Status:     constant.PayoutStatusText[constant.PayoutStatusFailed],
		NetAmount:  item.NetAmount.StringFixed(2),
		Currency:   item.Currency,
		Reason:     reason,
		BatchNo:    batchNo,
		NotifiedAt: now.UnixMilli(),
	})

	return dto.ItemResultVO{
		PayoutID:     item.PayoutID,
		Status:       constant.PayoutStatusText[constant.PayoutStatusFailed],
		Reason:       reason,
		AttemptCount: attempts,
	}
}

// nextBatchNo 当日序列批次号 PB-yyyyMMdd-NNNN，Redis INCR 保证单调
func (s *BatchService) nextBatchNo(ctx context.Context) (string, error) {
	day := time.Now().UTC().Format("20060102")
	key := rediskey.BatchSeqKey(day)
	seq, err := dal.RedisClient.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("batch sequence failed: %w", err)
	}
	if seq == 1 {
		dal.RedisClient.Expire(ctx, key, batchSeqTTL)
	}
	return fmt.Sprintf("PB-%s-%04d", day, seq), nil
}

func (s *BatchService) loadSuppliers(items []mainmodel.PayoutItemM) (map[uint64]*mainmodel.Supplier, error) {
	idSet := make(map[uint64]bool, len(items))
	supIDs := make([]uint64, 0, len(items))
	for i := range items {
		if !idSet[items[i].SupplierID] {
			idSet[items[i].SupplierID] = true
			supIDs = append(supIDs, items[i].SupplierID)
		}
	}
	sups, err := s.supplierDao.ListByIDs(supIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]*mainmodel.Supplier, len(sups))
	for i := range sups {
		out[sups[i].SupplierID] = &sups[i]
	}
	return out, nil
}

// GetBatch 按批次号查询
func (s *BatchService) GetBatch(req dto.BatchDetailReq) (*dto.BatchVO, error) {
	m, err := s.batchDao.GetByNo(req.BatchNo)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, req.BatchNo)
	}
	return batchVO(m), nil
}

// ListBatches 最近批次
func (s *BatchService) ListBatches(req dto.PageReq) ([]dto.BatchVO, int64, error) {
	req.Normalize()
	ms, total, err := s.batchDao.ListRecent(req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.BatchVO, 0, len(ms))
	for i := range ms {
		out = append(out, *batchVO(&ms[i]))
	}
	return out, total, nil
}

func batchVO(m *mainmodel.PayoutBatchM) *dto.BatchVO {
	return &dto.BatchVO{
		BatchID:      m.BatchID,
		BatchNo:      m.BatchNo,
		MemberIDs:    m.MemberIDs,
		TotalAmount:  m.TotalAmount.StringFixed(2),
		TotalCount:   m.TotalCount,
		SuccessCount: m.SuccessCount,
		FailCount:    m.FailCount,
		Status:       constant.BatchStatusText[m.Status],
		SubBatchSize: m.SubBatchSize,
		ProcessedBy:  m.ProcessedBy,
		CreateTime:   m.CreateTime,
		CompleteTime: m.CompleteTime,
	}
}

func uniqueIDs(in []uint64) []uint64 {
	seen := make(map[uint64]bool, len(in))
	out := make([]uint64, 0, len(in))
	for _, id := range in {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
