package mainmodel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// U64List 出款批次成员ID集合，JSON 列
type U64List []uint64

func (l *U64List) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("U64List scan failed: %v", value)
	}
	return json.Unmarshal(bytes, l)
}

func (l U64List) Value() (driver.Value, error) {
	if l == nil {
		l = U64List{}
	}
	return json.Marshal(l)
}

// PayoutBatchM 出款批次
type PayoutBatchM struct {
	BatchID      uint64          `gorm:"column:batch_id;primaryKey;not null" json:"batchId"`               // 全局唯一批次ID
	BatchNo      string          `gorm:"column:batch_no;type:varchar(32);uniqueIndex;not null" json:"batchNo"` // 人类可读批次号 PB-yyyyMMdd-NNNN
	MemberIDs    U64List         `gorm:"column:member_ids;type:json;not null" json:"memberIds"`            // 成员出款项ID，跨批次互斥
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:decimal(18,4);not null" json:"totalAmount"` // 成员净额合计
	TotalCount   int             `gorm:"column:total_count;not null" json:"totalCount"`                    // 成员数
	SuccessCount int             `gorm:"column:success_count;not null" json:"successCount"`                // 成功数
	FailCount    int             `gorm:"column:fail_count;not null" json:"failCount"`                      // 失败数
	Status       int8            `gorm:"column:status;not null" json:"status"`                             // 批次状态（派生）
	SubBatchSize int             `gorm:"column:sub_batch_size;not null" json:"subBatchSize"`               // 子批次大小
	ProcessedBy  string          `gorm:"column:processed_by;type:varchar(32);not null" json:"processedBy"` // 操作人
	CreateTime   time.Time       `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`     // 创建时间
	CompleteTime *time.Time      `gorm:"column:complete_time" json:"completeTime"`                         // 处理完成时间
}

func (PayoutBatchM) TableName() string { return "w_payout_batch" }
