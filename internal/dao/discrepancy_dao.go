package dao

import (
	"mkt-settle-api/internal/dal"
	mainmodel "mkt-settle-api/internal/model/main"
)

type DiscrepancyDao struct{}

func NewDiscrepancyDao() *DiscrepancyDao {
	return &DiscrepancyDao{}
}

// InsertBatch 批量写入对账差异
func (r *DiscrepancyDao) InsertBatch(rows []*mainmodel.PayoutDiscrepancy) error {
	if len(rows) == 0 {
		return nil
	}
	return dal.MainDB.Create(&rows).Error
}

// ListRecent 按时间倒序分页查询差异记录
func (r *DiscrepancyDao) ListRecent(limit, offset int) ([]mainmodel.PayoutDiscrepancy, int64, error) {
	var out []mainmodel.PayoutDiscrepancy
	var total int64
	db := dal.MainDB.Model(&mainmodel.PayoutDiscrepancy{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("id DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByPayout 查询某笔出款的全部差异
func (r *DiscrepancyDao) ListByPayout(payoutID uint64) ([]mainmodel.PayoutDiscrepancy, error) {
	var out []mainmodel.PayoutDiscrepancy
	if err := dal.MainDB.Where("payout_id = ?", payoutID).
		Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
