package ledgermodel

import "time"

// CommissionIndexM 订单号到佣金分表的寻址索引（按月表，无分片）
type CommissionIndexM struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`                 // 主键
	OrderNo      string    `gorm:"column:order_no;type:varchar(50);uniqueIndex;not null" json:"orderNo"` // 订单号，唯一约束兜底幂等
	CommissionID uint64    `gorm:"column:commission_id;not null" json:"commissionId"`            // 佣金记录ID
	SupplierID   uint64    `gorm:"column:supplier_id;not null" json:"supplierId"`                // 供应商ID
	CreateTime   time.Time `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"` // 写入时间
}
