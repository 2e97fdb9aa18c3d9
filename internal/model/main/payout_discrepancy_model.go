package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutDiscrepancy 对账差异记录，代付方结算确认与本地记录不一致时写入
type PayoutDiscrepancy struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`                  // 主键
	PayoutID     uint64          `gorm:"column:payout_id;index;not null" json:"payoutId"`               // 出款项ID
	BatchID      uint64          `gorm:"column:batch_id;not null" json:"batchId"`                       // 所属批次ID
	LocalTxnID   string          `gorm:"column:local_txn_id;type:varchar(64)" json:"localTxnId"`        // 本地记录的交易号
	RemoteTxnID  string          `gorm:"column:remote_txn_id;type:varchar(64)" json:"remoteTxnId"`      // 代付方回传的交易号
	RemoteAmount decimal.Decimal `gorm:"column:remote_amount;type:decimal(18,4)" json:"remoteAmount"`   // 代付方回传金额
	Kind         string          `gorm:"column:kind;type:varchar(20);not null" json:"kind"`             // 差异类型 txn_mismatch/amount_mismatch/status_conflict/unknown_item
	Remark       string          `gorm:"column:remark;type:varchar(255)" json:"remark"`                 // 备注
	CreateTime   time.Time       `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`  // 时间戳
}

func (PayoutDiscrepancy) TableName() string { return "w_payout_discrepancy" }
