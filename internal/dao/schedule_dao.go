package dao

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"mkt-settle-api/internal/dal"
	mainmodel "mkt-settle-api/internal/model/main"
	"mkt-settle-api/internal/rate"
)

type ScheduleDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.MainDB
func NewScheduleDao() *ScheduleDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &ScheduleDao{DB: dal.MainDB}
}

// 支持传入自定义 DB（比如 txDB）
func NewScheduleDaoWithDB(db *gorm.DB) *ScheduleDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &ScheduleDao{DB: db}
}

func (r *ScheduleDao) checkDB() error {
	if r == nil {
		return errors.New("ScheduleDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetCurrent 取最新版本的费率表
func (r *ScheduleDao) GetCurrent() (*mainmodel.RateScheduleM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get current schedule failed: %w", err)
	}

	var m mainmodel.RateScheduleM
	err := r.DB.Order("version DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetByVersion 取指定版本的费率表
func (r *ScheduleDao) GetByVersion(version uint64) (*mainmodel.RateScheduleM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get schedule by version failed: %w", err)
	}

	var m mainmodel.RateScheduleM
	err := r.DB.Where("version = ?", version).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// AppendVersion 在 base 版本之上追加新版本（只增不改）。
// base 已不是最新版本时返回 rate.ErrStaleSchedule；
// version 唯一索引兜底并发写入，冲突同样归为过期。
func (r *ScheduleDao) AppendVersion(base uint64, m *mainmodel.RateScheduleM, logs []mainmodel.RateScheduleLog) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("append schedule version failed: %w", err)
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var maxVersion uint64
		if err := tx.Model(&mainmodel.RateScheduleM{}).
			Select("COALESCE(MAX(version), 0)").Scan(&maxVersion).Error; err != nil {
			return fmt.Errorf("read max version failed: %w", err)
		}
		if maxVersion != base {
			return fmt.Errorf("%w: base version %d superseded by %d", rate.ErrStaleSchedule, base, maxVersion)
		}

		if err := tx.Create(m).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: version %d already written", rate.ErrStaleSchedule, m.Version)
			}
			return fmt.Errorf("insert schedule failed: %w", err)
		}

		for i := range logs {
			logs[i].Version = m.Version
		}
		if len(logs) > 0 {
			if err := tx.Create(&logs).Error; err != nil {
				return fmt.Errorf("insert schedule log failed: %w", err)
			}
		}
		return nil
	})
}

// History 变更流水，version 为 0 时查全部
func (r *ScheduleDao) History(version uint64, limit, offset int) ([]mainmodel.RateScheduleLog, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("schedule history failed: %w", err)
	}

	q := r.DB.Model(&mainmodel.RateScheduleLog{})
	if version > 0 {
		q = q.Where("version = ?", version)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var out []mainmodel.RateScheduleLog
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("query failed: %w", err)
	}
	return out, total, nil
}

// isDuplicateKey MySQL 1062 唯一键冲突
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
