package rediskey

import "fmt"

// 统一的 redis key 前缀，避免与同实例其他服务冲突
const prefix = "mkt-settle"

const (
	// 配置表数据 redis key
	SysConfigKey = prefix + ":system:config"

	// 当前费率表缓存 key
	RateScheduleKey = prefix + ":rate:schedule:current"
)

// SupplierKey 供应商信息缓存
func SupplierKey(supplierID uint64) string {
	return fmt.Sprintf("%s:supplier:%d", prefix, supplierID)
}

// EnqueueGuardKey 出款入队幂等锁（供应商 + 结算周期）
func EnqueueGuardKey(supplierID uint64, period string) string {
	return fmt.Sprintf("%s:payout:enqueue:%d:%s", prefix, supplierID, period)
}

// BatchSeqKey 批次号日内自增序列
func BatchSeqKey(day string) string {
	return fmt.Sprintf("%s:payout:batchseq:%s", prefix, day)
}

// NonceKey 请求 nonce 防重放
func NonceKey(nonce string) string {
	return fmt.Sprintf("%s:sign:nonce:%s", prefix, nonce)
}

// ChannelHealthKey 出款方式成功率
func ChannelHealthKey(method string) string {
	return fmt.Sprintf("%s:channel:health:%s", prefix, method)
}

// ChannelDisabledKey 出款方式熔断标记
func ChannelDisabledKey(method string) string {
	return fmt.Sprintf("%s:channel:disabled:%s", prefix, method)
}
