package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"mkt-settle-api/internal/constant"
	"mkt-settle-api/internal/dal"
	mainmodel "mkt-settle-api/internal/model/main"
)

type PayoutDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.MainDB
func NewPayoutDao() *PayoutDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &PayoutDao{DB: dal.MainDB}
}

// 支持传入自定义 DB（比如 txDB）
func NewPayoutDaoWithDB(db *gorm.DB) *PayoutDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &PayoutDao{DB: db}
}

// 安全检查方法
func (r *PayoutDao) checkDB() error {
	if r == nil {
		return errors.New("PayoutDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *PayoutDao) Insert(o *mainmodel.PayoutItemM) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert payout failed: %w", err)
	}
	return r.DB.Create(o).Error
}

func (r *PayoutDao) GetByID(payoutID uint64) (*mainmodel.PayoutItemM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get payout by id failed: %w", err)
	}

	var m mainmodel.PayoutItemM
	err := r.DB.Where("payout_id = ?", payoutID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// ListByIDs 按主键集合查询（保持入参顺序交给调用方处理）
func (r *PayoutDao) ListByIDs(ids []uint64) ([]mainmodel.PayoutItemM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list payouts failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var out []mainmodel.PayoutItemM
	if err := r.DB.Where("payout_id IN (?)", ids).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

// GetActiveByPeriod 查询供应商在周期内未取消的出款项（入队幂等检查）
func (r *PayoutDao) GetActiveByPeriod(supplierID uint64, period string) (*mainmodel.PayoutItemM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get active payout failed: %w", err)
	}

	var m mainmodel.PayoutItemM
	err := r.DB.Where("supplier_id = ? AND period = ? AND status <> ?",
		supplierID, period, constant.PayoutStatusCancelled).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// ClaimAll 单条条件更新锁定整组出款项。
// 仅锁定 status=pending 且未被其它批次占用的行，返回实际锁定行数；
// 行数不足时由调用方在事务内回滚。
func (r *PayoutDao) ClaimAll(ids []uint64, batchID uint64) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("claim payouts failed: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := r.DB.Model(&mainmodel.PayoutItemM{}).
		Where("payout_id IN (?) AND status = ? AND claim_batch_id = 0", ids, constant.PayoutStatusPending).
		Updates(map[string]interface{}{
			"status":         constant.PayoutStatusProcessing,
			"claim_batch_id": batchID,
			"update_time":    time.Now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("claim update failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// MarkCompleted 批内单项出款成功
func (r *PayoutDao) MarkCompleted(payoutID, batchID uint64, transactionID string, processedAt time.Time) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("mark completed failed: %w", err)
	}

	res := r.DB.Model(&mainmodel.PayoutItemM{}).
		Where("payout_id = ? AND status = ? AND claim_batch_id = ?",
			payoutID, constant.PayoutStatusProcessing, batchID).
		Updates(map[string]interface{}{
			"status":         constant.PayoutStatusCompleted,
			"transaction_id": transactionID,
			"processed_date": processedAt,
			"update_time":    time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payout %d not in processing state for batch %d", payoutID, batchID)
	}
	return nil
}

// MarkFailed 批内单项出款失败，失败原因覆盖、尝试次数加一
func (r *PayoutDao) MarkFailed(payoutID, batchID uint64, reason string, processedAt time.Time) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("mark failed failed: %w", err)
	}

	res := r.DB.Model(&mainmodel.PayoutItemM{}).
		Where("payout_id = ? AND status = ? AND claim_batch_id = ?",
			payoutID, constant.PayoutStatusProcessing, batchID).
		Updates(map[string]interface{}{
			"status":         constant.PayoutStatusFailed,
			"failure_reason": reason,
			"processed_date": processedAt,
			"attempt_count":  gorm.Expr("attempt_count + 1"),
			"update_time":    time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payout %d not in processing state for batch %d", payoutID, batchID)
	}
	return nil
}

// Retry 失败项重新入队（条件更新兜底并发）
func (r *PayoutDao) Retry(payoutID uint64, maxAttempts int) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("retry payout failed: %w", err)
	}

	res := r.DB.Model(&mainmodel.PayoutItemM{}).
		Where("payout_id = ? AND status = ? AND attempt_count < ?",
			payoutID, constant.PayoutStatusFailed, maxAttempts).
		Updates(map[string]interface{}{
			"status":         constant.PayoutStatusPending,
			"claim_batch_id": 0,
			"update_time":    time.Now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Cancel 取消待处理且未被锁定的出款项
func (r *PayoutDao) Cancel(payoutID uint64, reason string) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("cancel payout failed: %w", err)
	}

	res := r.DB.Model(&mainmodel.PayoutItemM{}).
		Where("payout_id = ? AND status = ? AND claim_batch_id = 0",
			payoutID, constant.PayoutStatusPending).
		Updates(map[string]interface{}{
			"status":         constant.PayoutStatusCancelled,
			"failure_reason": reason,
			"update_time":    time.Now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// List 出款项分页查询
func (r *PayoutDao) List(supplierID uint64, period string, status *int8, limit, offset int) ([]mainmodel.PayoutItemM, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list payouts failed: %w", err)
	}

	q := r.DB.Model(&mainmodel.PayoutItemM{})
	if supplierID > 0 {
		q = q.Where("supplier_id = ?", supplierID)
	}
	if period != "" {
		q = q.Where("period = ?", period)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var out []mainmodel.PayoutItemM
	if err := q.Order("payout_id DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("query failed: %w", err)
	}
	return out, total, nil
}

// ListExhausted 重试耗尽、需人工介入的失败项
func (r *PayoutDao) ListExhausted(maxAttempts, limit, offset int) ([]mainmodel.PayoutItemM, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list exhausted failed: %w", err)
	}

	q := r.DB.Model(&mainmodel.PayoutItemM{}).
		Where("status = ? AND attempt_count >= ?", constant.PayoutStatusFailed, maxAttempts)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var out []mainmodel.PayoutItemM
	if err := q.Order("update_time ASC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("query failed: %w", err)
	}
	return out, total, nil
}

// WithTransaction 执行事务操作
func (r *PayoutDao) WithTransaction(fn func(tx *gorm.DB) error) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("payout transaction failed: %w", err)
	}
	return r.DB.Transaction(fn)
}
