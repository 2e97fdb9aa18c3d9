package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mkt-settle-api/internal/dal"
	mainmodel "mkt-settle-api/internal/model/main"
	rediskey "mkt-settle-api/internal/types/redis-key"
	"mkt-settle-api/internal/utils"
)

// 画像缓存有效期，等级/类目变更最迟 5 分钟生效
const supplierCacheTTL = 5 * time.Minute

type SupplierDao struct{}

func NewSupplierDao() *SupplierDao {
	return &SupplierDao{}
}

// GetByID 查询供应商
func (r *SupplierDao) GetByID(supplierID uint64) (*mainmodel.Supplier, error) {
	var m mainmodel.Supplier
	err := dal.MainDB.Where("supplier_id = ?", supplierID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByIDCached 缓存优先查询。账号与密钥字段 json 不序列化，缓存副本不含，
// 仅供佣金落账等只读画像场景使用，出款与通知路径仍走 GetByID。
func (r *SupplierDao) GetByIDCached(supplierID uint64) (*mainmodel.Supplier, error) {
	ctx := context.Background()
	key := rediskey.SupplierKey(supplierID)
	if raw, _ := dal.RedisClient.Get(ctx, key).Result(); raw != "" {
		var m mainmodel.Supplier
		if err := utils.JSONToMap(raw, &m); err == nil {
			return &m, nil
		}
	}
	m, err := r.GetByID(supplierID)
	if err != nil || m == nil {
		return m, err
	}
	dal.RedisClient.Set(ctx, key, utils.MapToJSON(m), supplierCacheTTL)
	return m, nil
}

// ListActive 查询全部启用中的供应商
func (r *SupplierDao) ListActive() ([]mainmodel.Supplier, error) {
	var out []mainmodel.Supplier
	if err := dal.MainDB.Where("status = ?", 1).Order("supplier_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByIDs 按ID集合查询（只返回启用中的）
func (r *SupplierDao) ListByIDs(ids []uint64) ([]mainmodel.Supplier, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []mainmodel.Supplier
	if err := dal.MainDB.Where("supplier_id IN (?) AND status = ?", ids, 1).
		Order("supplier_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
