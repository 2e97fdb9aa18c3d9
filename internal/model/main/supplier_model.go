package mainmodel

import (
	"time"
)

// Supplier 供应商目录（结算视角的只读画像）
type Supplier struct {
	SupplierID    uint64    `gorm:"column:supplier_id;primaryKey" json:"supplierId"`              // 供应商ID
	Name          string    `gorm:"column:name;type:varchar(64);not null" json:"name"`            // 供应商名称
	Tier          string    `gorm:"column:tier;type:varchar(16);not null" json:"tier"`            // 会员等级 free/silver/gold/platinum
	CategoryID    uint64    `gorm:"column:category_id;not null" json:"categoryId"`                // 主营类目ID
	PayoutMethod  string    `gorm:"column:payout_method;type:varchar(30)" json:"payoutMethod"`    // 出款方式，见 utils.PayoutMethodMap
	AccountNo     string    `gorm:"column:account_no;type:varchar(64)" json:"-"`                  // 收款账号
	AccountName   string    `gorm:"column:account_name;type:varchar(64)" json:"-"`                // 收款户名
	BankCode      string    `gorm:"column:bank_code;type:varchar(32)" json:"-"`                   // 银行编码，银行类出款方式必填
	WebhookURL    string    `gorm:"column:webhook_url;type:varchar(128)" json:"webhookUrl"`       // 出款结果通知URL
	WebhookSecret string    `gorm:"column:webhook_secret;type:varchar(64)" json:"-"`              // 通知签名密钥
	Status        int8      `gorm:"column:status;not null;default:1" json:"status"`               // 状态 1正常 0禁用
	CreateTime    time.Time `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"` // 创建时间
	UpdateTime    time.Time `gorm:"column:update_time;autoUpdateTime;not null" json:"updateTime"` // 更新时间
}

func (Supplier) TableName() string { return "w_supplier" }
