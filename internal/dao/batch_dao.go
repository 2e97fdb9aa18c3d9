package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"mkt-settle-api/internal/dal"
	mainmodel "mkt-settle-api/internal/model/main"
)

type BatchDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.MainDB
func NewBatchDao() *BatchDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &BatchDao{DB: dal.MainDB}
}

func NewBatchDaoWithDB(db *gorm.DB) *BatchDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &BatchDao{DB: db}
}

func (r *BatchDao) checkDB() error {
	if r == nil {
		return errors.New("BatchDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *BatchDao) Insert(b *mainmodel.PayoutBatchM) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert batch failed: %w", err)
	}
	return r.DB.Create(b).Error
}

// FinishBatch 批次出款完成后回填汇总结果
func (r *BatchDao) FinishBatch(batchID uint64, successCount, failCount int, status int8, completeTime time.Time) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("finish batch failed: %w", err)
	}

	return r.DB.Model(&mainmodel.PayoutBatchM{}).
		Where("batch_id = ?", batchID).
		Updates(map[string]interface{}{
			"success_count": successCount,
			"fail_count":    failCount,
			"status":        status,
			"complete_time": completeTime,
		}).Error
}

func (r *BatchDao) GetByID(batchID uint64) (*mainmodel.PayoutBatchM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get batch by id failed: %w", err)
	}

	var m mainmodel.PayoutBatchM
	err := r.DB.Where("batch_id = ?", batchID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *BatchDao) GetByNo(batchNo string) (*mainmodel.PayoutBatchM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get batch by no failed: %w", err)
	}

	var m mainmodel.PayoutBatchM
	err := r.DB.Where("batch_no = ?", batchNo).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// ListRecent 最近批次（看板用）
func (r *BatchDao) ListRecent(limit, offset int) ([]mainmodel.PayoutBatchM, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list batches failed: %w", err)
	}

	var total int64
	if err := r.DB.Model(&mainmodel.PayoutBatchM{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var out []mainmodel.PayoutBatchM
	if err := r.DB.Order("batch_id DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("query failed: %w", err)
	}
	return out, total, nil
}
