package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mkt-settle-api/internal/commission"
	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/idgen"
	ledgermodel "mkt-settle-api/internal/model/ledger"
	"mkt-settle-api/internal/shard"
)

// 按 order_no 反查时最多回看的月数
const indexLookbackMonths = 12

type CommissionDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.LedgerDB
func NewCommissionDao() *CommissionDao {
	if dal.LedgerDB == nil {
		log.Panic("[FATAL] dal.LedgerDB is nil - database not initialized")
	}
	return &CommissionDao{DB: dal.LedgerDB}
}

// 支持传入自定义 DB（比如 txDB）
func NewCommissionDaoWithDB(db *gorm.DB) *CommissionDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &CommissionDao{DB: db}
}

func (r *CommissionDao) checkDB() error {
	if r == nil {
		return errors.New("CommissionDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// StampWithIndex 落佣金账：索引表先行（order_no 唯一键做幂等），佣金主表随后。
// 订单已落过账时返回 (false, nil)，消费端按重复消息跳过。
func (r *CommissionDao) StampWithIndex(c *ledgermodel.CommissionM) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("stamp commission failed: %w", err)
	}

	commissionTable := shard.CommissionShard.GetTable(c.CommissionID, c.CreateTime)
	indexTable := shard.IndexTable(c.CreateTime)

	duplicated := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		idx := ledgermodel.CommissionIndexM{
			OrderNo:      c.OrderNo,
			CommissionID: c.CommissionID,
			SupplierID:   c.SupplierID,
			CreateTime:   c.CreateTime,
		}
		if err := tx.Table(indexTable).Create(&idx).Error; err != nil {
			if isDuplicateKey(err) {
				duplicated = true
				return nil
			}
			return fmt.Errorf("insert commission index failed: %w", err)
		}
		if err := tx.Table(commissionTable).Create(c).Error; err != nil {
			return fmt.Errorf("insert commission failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return !duplicated, nil
}

// GetByID 按佣金ID查询，月份从雪花ID时间戳反解
func (r *CommissionDao) GetByID(commissionID uint64) (*ledgermodel.CommissionM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get commission failed: %w", err)
	}

	table := shard.CommissionShard.GetTable(commissionID, idgen.TimeOf(commissionID))
	var m ledgermodel.CommissionM
	err := r.DB.Table(table).Where("commission_id = ?", commissionID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetByOrderNo 按订单号查询，逐月回查索引表
func (r *CommissionDao) GetByOrderNo(orderNo string) (*ledgermodel.CommissionM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get commission by order no failed: %w", err)
	}

	now := time.Now()
	for i := 0; i < indexLookbackMonths; i++ {
		indexTable := shard.IndexTable(now.AddDate(0, -i, 0))

		var idx ledgermodel.CommissionIndexM
		err := r.DB.Table(indexTable).Where("order_no = ?", orderNo).First(&idx).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			// 月表可能尚未建出来，跳过继续回查
			continue
		}
		return r.GetByID(idx.CommissionID)
	}
	return nil, nil
}

// ApplyAdjust 落库一次佣金调整：
// 版本号条件更新佣金当前值，预览基准版本已过期时返回 commission.ErrStaleCommission；
// 调整流水与所属佣金按同一分片键落同一月表。
func (r *CommissionDao) ApplyAdjust(c *ledgermodel.CommissionM, baseVersion int, adj *ledgermodel.CommissionAdjustM) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("apply adjust failed: %w", err)
	}

	commissionTable := shard.CommissionShard.GetTable(c.CommissionID, c.CreateTime)
	adjustTable := shard.CommissionAdjustShard.GetTable(c.CommissionID, c.CreateTime)

	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Table(commissionTable).
			Where("commission_id = ? AND adjust_version = ?", c.CommissionID, baseVersion).
			Updates(map[string]interface{}{
				"current_amount": adj.NewAmount,
				"adjust_version": baseVersion + 1,
				"update_time":    time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("update commission failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: commission %d version %d superseded",
				commission.ErrStaleCommission, c.CommissionID, baseVersion)
		}

		if err := tx.Table(adjustTable).Create(adj).Error; err != nil {
			return fmt.Errorf("insert adjust log failed: %w", err)
		}
		return nil
	})
}

// ListAdjusts 佣金的调整流水（与佣金同分片）
func (r *CommissionDao) ListAdjusts(commissionID uint64) ([]ledgermodel.CommissionAdjustM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list adjusts failed: %w", err)
	}

	table := shard.CommissionAdjustShard.GetTable(commissionID, idgen.TimeOf(commissionID))
	var out []ledgermodel.CommissionAdjustM
	if err := r.DB.Table(table).
		Where("commission_id = ?", commissionID).
		Order("adjust_id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

// SupplierAgg 供应商维度的佣金聚合
type SupplierAgg struct {
	SupplierID       uint64          `gorm:"column:supplier_id"`
	OrderAmount      decimal.Decimal `gorm:"column:order_amount"`
	CommissionAmount decimal.Decimal `gorm:"column:commission_amount"`
	Cnt              int64           `gorm:"column:cnt"`
}

// SumTrailingBySupplier 回看窗口内全供应商成交与当前佣金聚合（影响评估用）
func (r *CommissionDao) SumTrailingBySupplier(from, to time.Time) (map[uint64]SupplierAgg, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("sum trailing failed: %w", err)
	}

	out := make(map[uint64]SupplierAgg)
	for _, table := range shard.CommissionShard.AllTablesInRange(from, to) {
		var rows []SupplierAgg
		err := r.DB.Table(table).
			Select("supplier_id, SUM(order_amount) AS order_amount, SUM(current_amount) AS commission_amount, COUNT(*) AS cnt").
			Where("create_time >= ? AND create_time < ?", from, to).
			Group("supplier_id").Scan(&rows).Error
		if err != nil {
			// 未建出的月表直接跳过
			continue
		}
		for _, row := range rows {
			agg := out[row.SupplierID]
			agg.SupplierID = row.SupplierID
			agg.OrderAmount = agg.OrderAmount.Add(row.OrderAmount)
			agg.CommissionAmount = agg.CommissionAmount.Add(row.CommissionAmount)
			agg.Cnt += row.Cnt
			out[row.SupplierID] = agg
		}
	}
	return out, nil
}

// ReserveForPayout 将周期内未结算佣金标记为已入队，并返回聚合金额。
// 标记与聚合同一事务，入队失败由调用方调用 ReleaseReserved 回滚标记。
func (r *CommissionDao) ReserveForPayout(supplierID uint64, from, to time.Time) (SupplierAgg, error) {
	var agg SupplierAgg
	if err := r.checkDB(); err != nil {
		return agg, fmt.Errorf("reserve commissions failed: %w", err)
	}

	agg.SupplierID = supplierID
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range shard.CommissionShard.AllTablesInRange(from, to) {
			res := tx.Table(table).
				Where("supplier_id = ? AND settled = ? AND create_time >= ? AND create_time < ?",
					supplierID, ledgermodel.SettleStateOpen, from, to).
				Updates(map[string]interface{}{
					"settled":     ledgermodel.SettleStateReserved,
					"update_time": time.Now(),
				})
			if res.Error != nil {
				return fmt.Errorf("reserve in %s failed: %w", table, res.Error)
			}
			if res.RowsAffected == 0 {
				continue
			}

			var row SupplierAgg
			err := tx.Table(table).
				Select("SUM(order_amount) AS order_amount, SUM(current_amount) AS commission_amount, COUNT(*) AS cnt").
				Where("supplier_id = ? AND settled = ? AND create_time >= ? AND create_time < ?",
					supplierID, ledgermodel.SettleStateReserved, from, to).
				Scan(&row).Error
			if err != nil {
				return fmt.Errorf("sum reserved in %s failed: %w", table, err)
			}
			agg.OrderAmount = agg.OrderAmount.Add(row.OrderAmount)
			agg.CommissionAmount = agg.CommissionAmount.Add(row.CommissionAmount)
			agg.Cnt += row.Cnt
		}
		return nil
	})
	if err != nil {
		return SupplierAgg{SupplierID: supplierID}, err
	}
	return agg, nil
}

// ReleaseReserved 出款取消或入队失败时释放预占标记
func (r *CommissionDao) ReleaseReserved(supplierID uint64, from, to time.Time) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("release reserved failed: %w", err)
	}

	for _, table := range shard.CommissionShard.AllTablesInRange(from, to) {
		err := r.DB.Table(table).
			Where("supplier_id = ? AND settled = ? AND create_time >= ? AND create_time < ?",
				supplierID, ledgermodel.SettleStateReserved, from, to).
			Updates(map[string]interface{}{
				"settled":     ledgermodel.SettleStateOpen,
				"update_time": time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("release in %s failed: %w", table, err)
		}
	}
	return nil
}

// MarkPaid 出款成功后预占转已结算
func (r *CommissionDao) MarkPaid(supplierID uint64, from, to time.Time) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("mark paid failed: %w", err)
	}

	for _, table := range shard.CommissionShard.AllTablesInRange(from, to) {
		err := r.DB.Table(table).
			Where("supplier_id = ? AND settled = ? AND create_time >= ? AND create_time < ?",
				supplierID, ledgermodel.SettleStateReserved, from, to).
			Updates(map[string]interface{}{
				"settled":     ledgermodel.SettleStatePaid,
				"update_time": time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("mark paid in %s failed: %w", table, err)
		}
	}
	return nil
}
